// Package color derives stable colors from arbitrary strings.
//
// A Deriver digests its input with SHA-256 and carves hue, saturation and
// lightness out of the digest, so the same string always maps to the same
// color on every platform. The digest layout is:
//
//	bytes 0..3  big-endian uint32 n, hue = n mod 360 (or a hue range bucket)
//	byte  4     saturation fraction, scaled into the saturation range
//	byte  5     lightness fraction, scaled into the lightness range
package color

import (
	"crypto/sha256"
	"encoding/binary"
	"math"

	domainerrors "github.com/listenupapp/colorhash/internal/errors"
)

// hueResolution is the number of hue buckets inside a hue range. Prime.
const hueResolution = 727

// Range is a closed interval of saturation or lightness fractions.
type Range struct {
	Min float64 `json:"min" validate:"gte=0,lte=1"`
	Max float64 `json:"max" validate:"gte=0,lte=1,gtefield=Min"`
}

// HueRange is a half-open interval of hue degrees. Min == Max pins the hue.
type HueRange struct {
	Min float64 `json:"min" validate:"gte=0,lt=360"`
	Max float64 `json:"max" validate:"gte=0,lte=360,gtefield=Min"`
}

// Default ranges keep colors away from gray, black and white.
var (
	DefaultSaturation = Range{Min: 0.35, Max: 0.65}
	DefaultLightness  = Range{Min: 0.35, Max: 0.65}
)

// Deriver maps input bytes to colors. It is immutable once constructed and
// safe for concurrent use.
type Deriver struct {
	saturation Range
	lightness  Range
	hueRanges  []HueRange
}

// Default returns a deriver with the default saturation and lightness ranges
// and no hue restriction.
func Default() *Deriver {
	return &Deriver{
		saturation: DefaultSaturation,
		lightness:  DefaultLightness,
	}
}

// WithRanges returns a deriver using the given saturation and lightness
// ranges. Each range must satisfy 0 <= Min <= Max <= 1, otherwise an
// INVALID_RANGE error is returned.
func WithRanges(saturation, lightness Range) (*Deriver, error) {
	if err := saturation.validate("saturation"); err != nil {
		return nil, err
	}
	if err := lightness.validate("lightness"); err != nil {
		return nil, err
	}
	return &Deriver{
		saturation: saturation,
		lightness:  lightness,
	}, nil
}

// WithHueRanges returns a copy of d whose hues are drawn from ranges. The
// range used for an input is picked by its hash. Passing no ranges restores
// the full color wheel.
func (d *Deriver) WithHueRanges(ranges ...HueRange) (*Deriver, error) {
	for i, r := range ranges {
		if err := r.validate(); err != nil {
			return nil, err.WithDetails(map[string]int{"index": i})
		}
	}
	var hues []HueRange
	if len(ranges) > 0 {
		hues = make([]HueRange, len(ranges))
		copy(hues, ranges)
	}
	return &Deriver{
		saturation: d.saturation,
		lightness:  d.lightness,
		hueRanges:  hues,
	}, nil
}

// Saturation returns the configured saturation range.
func (d *Deriver) Saturation() Range { return d.saturation }

// Lightness returns the configured lightness range.
func (d *Deriver) Lightness() Range { return d.lightness }

// HueRanges returns a copy of the configured hue ranges.
func (d *Deriver) HueRanges() []HueRange {
	out := make([]HueRange, len(d.hueRanges))
	copy(out, d.hueRanges)
	return out
}

// Hash derives the color of input.
func (d *Deriver) Hash(input []byte) HSL {
	sum := sha256.Sum256(input)
	n := binary.BigEndian.Uint32(sum[0:4])

	return HSL{
		H: d.hue(n),
		S: d.saturation.scale(sum[4]),
		L: d.lightness.scale(sum[5]),
	}
}

// HashString derives the color of s.
func (d *Deriver) HashString(s string) HSL {
	return d.Hash([]byte(s))
}

// RGB derives the color of input in RGB.
func (d *Deriver) RGB(input []byte) RGB {
	// hue clamps into [Min, Max) and scale into [Min, Max], and construction
	// keeps both inside the valid HSL bounds, so conversion cannot fail.
	rgb, _ := d.Hash(input).RGB()
	return rgb
}

// Hex derives the color of input as an HTML hex string.
func (d *Deriver) Hex(input []byte) string {
	return d.RGB(input).Hex()
}

func (d *Deriver) hue(n uint32) float64 {
	k := uint32(len(d.hueRanges))
	if k == 0 {
		return float64(n % 360)
	}
	r := d.hueRanges[n%k]
	bucket := float64((n / k) % hueResolution)
	h := r.Min + float64(bucket*(r.Max-r.Min)/hueResolution)
	// Narrow ranges can round up onto Max, which is excluded.
	if h >= r.Max && r.Max > r.Min {
		h = math.Nextafter(r.Max, r.Min)
	}
	return h
}

// scale maps a digest byte onto the range. The explicit conversion keeps the
// product from being fused into an FMA, which would change results on some
// architectures.
func (r Range) scale(b byte) float64 {
	v := r.Min + float64(float64(b)/255*(r.Max-r.Min))
	return math.Min(v, r.Max)
}

func (r Range) validate(name string) *domainerrors.Error {
	switch {
	case math.IsNaN(r.Min) || math.IsNaN(r.Max):
		return domainerrors.InvalidRangef("%s range must be numeric", name)
	case r.Min < 0 || r.Max > 1:
		return domainerrors.InvalidRangef("%s range [%v, %v] must lie within [0, 1]", name, r.Min, r.Max)
	case r.Min > r.Max:
		return domainerrors.InvalidRangef("%s min %v exceeds max %v", name, r.Min, r.Max)
	}
	return nil
}

func (r HueRange) validate() *domainerrors.Error {
	switch {
	case math.IsNaN(r.Min) || math.IsNaN(r.Max):
		return domainerrors.InvalidRange("hue range must be numeric")
	case r.Min < 0 || r.Min >= 360 || r.Max > 360:
		return domainerrors.InvalidRangef("hue range [%v, %v) must lie within [0, 360)", r.Min, r.Max)
	case r.Min > r.Max:
		return domainerrors.InvalidRangef("hue min %v exceeds max %v", r.Min, r.Max)
	}
	return nil
}
