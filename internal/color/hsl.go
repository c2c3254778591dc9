package color

import (
	"fmt"
	"math"

	"github.com/crazy3lf/colorconv"

	domainerrors "github.com/listenupapp/colorhash/internal/errors"
)

// HSL is a hue/saturation/lightness color.
// H is in degrees [0, 360); S and L are fractions in [0, 1].
type HSL struct {
	H float64 `json:"h" doc:"Hue in degrees, 0 <= h < 360"`
	S float64 `json:"s" doc:"Saturation fraction, 0 <= s <= 1"`
	L float64 `json:"l" doc:"Lightness fraction, 0 <= l <= 1"`
}

// RGB is a display-ready color with 8-bit channels.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Valid reports whether every component is within its bounds.
func (c HSL) Valid() bool {
	return c.H >= 0 && c.H < 360 &&
		c.S >= 0 && c.S <= 1 &&
		c.L >= 0 && c.L <= 1
}

// RGB converts c using the standard HSL to RGB formula.
func (c HSL) RGB() (RGB, error) {
	if !c.Valid() {
		return RGB{}, domainerrors.Validationf("hsl(%v, %v, %v) is out of range", c.H, c.S, c.L)
	}
	r, g, b, err := colorconv.HSLToRGB(c.H, c.S, c.L)
	if err != nil {
		return RGB{}, domainerrors.Wrap(err, domainerrors.CodeInternal, "hsl to rgb conversion failed")
	}
	return RGB{R: r, G: g, B: b}, nil
}

// CSS formats c as a CSS hsl() value.
func (c HSL) CSS() string {
	return fmt.Sprintf("hsl(%s, %s%%, %s%%)", trim(c.H), trim(c.S*100), trim(c.L*100))
}

// Hex formats c as #RRGGBB.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// CSS formats c as a CSS rgb() value.
func (c RGB) CSS() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// ANSI returns the 24-bit foreground escape sequence for c.
func (c RGB) ANSI() string {
	return fmt.Sprintf("\033[38;2;%d;%d;%dm", c.R, c.G, c.B)
}

// trim rounds to two decimals and drops trailing zeros.
func trim(v float64) string {
	v = math.Round(v*100) / 100
	return fmt.Sprintf("%g", v)
}
