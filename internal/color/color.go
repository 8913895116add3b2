package color

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a single sampled pixel. The A, R, G, B uint8 fields are the source
// of truth; all output formats are derived from them. Alpha is carried along
// but never reaches template output.
type Color struct {
	A, R, G, B uint8
}

// Channel selects one visible component of a Color.
type Channel int

const (
	Red Channel = iota
	Green
	Blue
)

// String returns the one-letter designator used in format templates.
func (ch Channel) String() string {
	switch ch {
	case Red:
		return "r"
	case Green:
		return "g"
	case Blue:
		return "b"
	}
	return fmt.Sprintf("Channel(%d)", int(ch))
}

// New returns an opaque color.
func New(r, g, b uint8) Color {
	return Color{A: 0xff, R: r, G: g, B: b}
}

// Channel returns the value of the given channel. Unknown channels read as 0.
func (c Color) Channel(ch Channel) uint8 {
	switch ch {
	case Red:
		return c.R
	case Green:
		return c.G
	case Blue:
		return c.B
	}
	return 0
}

// Compactable reports whether both nibbles of n are equal, i.e. whether n can
// be written as a single hex digit in shorthand notation.
func Compactable(n uint8) bool {
	return n>>4 == n&0xf
}

// IsCompactable reports whether the color's hex form can shrink from six to
// three digits. Alpha is ignored.
func (c Color) IsCompactable() bool {
	return Compactable(c.R) && Compactable(c.G) && Compactable(c.B)
}

// ParseHex parses "#rgb", "#rrggbb" or "#aarrggbb" (the leading # is optional).
// Every character after the # must be a hex digit. Colors without an alpha
// component are opaque.
func ParseHex(s string) (Color, error) {
	digits := strings.TrimPrefix(s, "#")
	switch len(digits) {
	case 3, 6, 8:
	default:
		return Color{}, fmt.Errorf("invalid hex color %q: must be 3, 6 or 8 hex digits", s)
	}
	if i := strings.IndexFunc(digits, func(r rune) bool { return !isHexDigit(r) }); i >= 0 {
		return Color{}, fmt.Errorf("invalid hex color %q: %q is not a hex digit", s, digits[i])
	}

	alpha := uint64(0xff)
	if len(digits) == 8 {
		alpha, _ = strconv.ParseUint(digits[:2], 16, 8)
		digits = digits[2:]
	}

	c, err := colorful.Hex("#" + digits)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return Color{A: uint8(alpha), R: r, G: g, B: b}, nil
}

func isHexDigit(r rune) bool {
	return ('0' <= r && r <= '9') || ('a' <= r && r <= 'f') || ('A' <= r && r <= 'F')
}

// Hex returns the color as a hex string with leading #, e.g. "#eb6f92".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// HexAlpha returns the color with its alpha channel first, e.g. "#ffeb6f92".
func (c Color) HexAlpha() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.A, c.R, c.G, c.B)
}

// RGB returns the color as an rgb() string, e.g. "rgb(235, 111, 146)".
func (c Color) RGB() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}
