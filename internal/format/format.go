// Package format implements the color output language: number rendering,
// the %{...} template grammar and the built-in presets.
//
// A template is parsed once and rendered any number of times:
//
//	tmpl, err := format.Parse("#%{02hr}%{02hg}%{02hb}")
//	if err != nil {
//		return err
//	}
//	s := tmpl.Render(c) // "#ff00ff"
//
// Parsed templates, presets and formatters are immutable and safe for
// concurrent use.
package format

import "errors"

var (
	// ErrInvalidFormatString is returned for templates that do not match
	// the template grammar.
	ErrInvalidFormatString = errors.New("invalid format string")

	// ErrInvalidFormat is returned for preset names outside the built-in table.
	ErrInvalidFormat = errors.New("invalid format")
)
