package format

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/jsvensson/xcolor/internal/color"
)

// maxWidthDigits bounds the digit run of a pad width. Five digits cover the
// full uint16 range; a sixth digit starts the next element.
const maxWidthDigits = 5

var channelLetters = map[byte]color.Channel{
	'r': color.Red,
	'g': color.Green,
	'b': color.Blue,
}

// Parse compiles a format string. The grammar is
//
//	template  := (literal | expansion)*
//	literal   := one or more characters other than '%'
//	expansion := "%%" | "%{" pad? base? channel "}"
//	pad       := any character followed by 1-5 digits (fill, width)
//	base      := "h" | "H" | "o" | "B" | "d"
//	channel   := "r" | "g" | "b"
//
// The whole input must be valid UTF-8 and must match. Any mismatch yields
// an error wrapping ErrInvalidFormatString.
func Parse(input string) (*Template, error) {
	if !utf8.ValidString(input) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormatString, input)
	}
	p := &parser{input: input}
	nodes, ok := p.template()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormatString, input)
	}
	return &Template{nodes: nodes}, nil
}

// MustParse is like Parse but panics on error.
func MustParse(input string) *Template {
	t, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return t
}

type parser struct {
	input string
	pos   int
}

func (p *parser) eof() bool {
	return p.pos >= len(p.input)
}

// peek returns the next byte, or 0 at end of input.
func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.input[p.pos]
}

func (p *parser) consume(prefix string) bool {
	if !strings.HasPrefix(p.input[p.pos:], prefix) {
		return false
	}
	p.pos += len(prefix)
	return true
}

func (p *parser) template() ([]Node, bool) {
	var nodes []Node
	for !p.eof() {
		if p.peek() != '%' {
			nodes = append(nodes, p.literal())
			continue
		}
		n, ok := p.expansion()
		if !ok {
			return nil, false
		}
		nodes = append(nodes, n)
	}
	return nodes, true
}

func (p *parser) literal() Literal {
	rest := p.input[p.pos:]
	end := strings.IndexByte(rest, '%')
	if end < 0 {
		end = len(rest)
	}
	p.pos += end
	return Literal(rest[:end])
}

func (p *parser) expansion() (Node, bool) {
	if p.consume("%%") {
		return Literal("%"), true
	}
	if !p.consume("%{") {
		return nil, false
	}

	pad, ok := p.pad()
	if !ok {
		return nil, false
	}

	base := Decimal
	if b, ok := baseLetters[p.peek()]; ok {
		base = b
		p.pos++
	}

	ch, ok := channelLetters[p.peek()]
	if !ok {
		return nil, false
	}
	p.pos++

	if !p.consume("}") {
		return nil, false
	}
	return Expansion{Channel: ch, Base: base, Pad: pad}, true
}

// pad parses an optional fill character and width. It consumes nothing and
// returns a nil Pad when the character after the fill is not a digit; it
// fails only when the width does not fit in 16 bits.
func (p *parser) pad() (*Pad, bool) {
	fill, size := utf8.DecodeRuneInString(p.input[p.pos:])
	if size == 0 {
		return nil, true
	}

	start := p.pos + size
	end := start
	for end < len(p.input) && end-start < maxWidthDigits && isDigit(p.input[end]) {
		end++
	}
	if end == start {
		return nil, true
	}

	width, err := strconv.ParseUint(p.input[start:end], 10, 16)
	if err != nil {
		return nil, false
	}
	p.pos = end
	return &Pad{Fill: fill, Width: uint16(width)}, true
}

func isDigit(b byte) bool {
	return '0' <= b && b <= '9'
}
