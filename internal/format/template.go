package format

import (
	"slices"
	"strconv"
	"strings"

	"github.com/jsvensson/xcolor/internal/color"
)

// Node is one element of a parsed template: a Literal or an Expansion.
type Node interface {
	isNode()
}

// Literal is template text copied verbatim to the output.
type Literal string

// Expansion is a %{...} placeholder replaced by a rendered channel value.
// Pad is nil when the placeholder has no padding.
type Expansion struct {
	Channel color.Channel
	Base    Base
	Pad     *Pad
}

func (Literal) isNode()   {}
func (Expansion) isNode() {}

// Render returns the channel value of c in the expansion's base, padded.
func (e Expansion) Render(c color.Color) string {
	s := e.Base.Format(c.Channel(e.Channel))
	if e.Pad != nil {
		s = e.Pad.Apply(s)
	}
	return s
}

// Template is a parsed format string. It is never modified after Parse and
// may be rendered concurrently.
type Template struct {
	nodes []Node
}

// Nodes returns a copy of the template's nodes in source order.
func (t *Template) Nodes() []Node {
	return slices.Clone(t.nodes)
}

// Render formats c according to the template.
func (t *Template) Render(c color.Color) string {
	var sb strings.Builder
	for _, n := range t.nodes {
		switch n := n.(type) {
		case Literal:
			sb.WriteString(string(n))
		case Expansion:
			sb.WriteString(n.Render(c))
		}
	}
	return sb.String()
}

// String returns the template in canonical source form. Parsing the result
// yields an equivalent template.
func (t *Template) String() string {
	var sb strings.Builder
	for _, n := range t.nodes {
		switch n := n.(type) {
		case Literal:
			sb.WriteString(strings.ReplaceAll(string(n), "%", "%%"))
		case Expansion:
			sb.WriteString("%{")
			if n.Pad != nil {
				sb.WriteRune(n.Pad.Fill)
				sb.WriteString(strconv.Itoa(int(n.Pad.Width)))
			}
			if n.Base != Decimal {
				sb.WriteString(n.Base.String())
			}
			sb.WriteString(n.Channel.String())
			sb.WriteString("}")
		}
	}
	return sb.String()
}
