package format

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Base is the numeric base an expansion is rendered in.
type Base int

const (
	Decimal Base = iota
	LowerHex
	UpperHex
	Octal
	Binary
)

// baseLetters maps template letters to bases.
var baseLetters = map[byte]Base{
	'h': LowerHex,
	'H': UpperHex,
	'o': Octal,
	'B': Binary,
	'd': Decimal,
}

// String returns the template letter for the base.
func (b Base) String() string {
	switch b {
	case LowerHex:
		return "h"
	case UpperHex:
		return "H"
	case Octal:
		return "o"
	case Binary:
		return "B"
	}
	return "d"
}

// Format renders v with the minimum number of digits, e.g. 3 in Binary is "11".
func (b Base) Format(v uint8) string {
	n := uint64(v)
	switch b {
	case LowerHex:
		return strconv.FormatUint(n, 16)
	case UpperHex:
		return strings.ToUpper(strconv.FormatUint(n, 16))
	case Octal:
		return strconv.FormatUint(n, 8)
	case Binary:
		return strconv.FormatUint(n, 2)
	}
	return strconv.FormatUint(n, 10)
}

// Pad left-pads rendered numbers to a minimum width.
type Pad struct {
	Fill  rune
	Width uint16
}

// Apply left-pads s with Fill until it is Width characters long. Strings
// already at or above Width are returned unchanged.
func (p Pad) Apply(s string) string {
	n := utf8.RuneCountInString(s)
	if n >= int(p.Width) {
		return s
	}
	return strings.Repeat(string(p.Fill), int(p.Width)-n) + s
}
