package color

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Avatar palette: fixed saturation and lightness for pleasant, readable colors.
var avatarDeriver = mustRanges(Range{Min: 0.4, Max: 0.4}, Range{Min: 0.65, Max: 0.65})

var (
	// Matches any run of non-alphanumeric characters.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)
)

// Avatar returns the deriver used for avatar colors.
func Avatar() *Deriver {
	return avatarDeriver
}

// ForUser returns the hex avatar color for a user ID.
// The same user always gets the same color; only the hue varies.
func ForUser(userID string) string {
	return avatarDeriver.Hex([]byte(userID))
}

// ForTag returns the hex color for a tag name. Names are compared by slug,
// so "Sci-Fi", "sci fi" and "Sci Fi!" share a color.
func ForTag(name string) string {
	return Default().Hex([]byte(TagKey(name)))
}

// TagKey normalizes a tag name to its slug.
// "Science Fiction" -> "science-fiction".
// "Café Noir" -> "cafe-noir".
func TagKey(name string) string {
	// Decompose accented characters, then drop what is left outside ASCII.
	s := norm.NFKD.String(name)
	s = strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, s)

	s = strings.ToLower(s)
	s = nonAlphanumeric.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

func mustRanges(saturation, lightness Range) *Deriver {
	d, err := WithRanges(saturation, lightness)
	if err != nil {
		panic(err)
	}
	return d
}
