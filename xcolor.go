// Package xcolor renders sampled colors as text. A color is formatted either
// with one of the built-in presets (hex, HEX, hex!, HEX!, plain, rgb) or
// with a custom template such as "#%{02hr}%{02hg}%{02hb}".
package xcolor

import (
	"errors"

	"github.com/jsvensson/xcolor/internal/color"
	"github.com/jsvensson/xcolor/internal/format"
)

// Color is one sampled pixel with 8-bit alpha, red, green and blue channels.
type Color = color.Color

// Formatter renders colors. It holds either a parsed template or a preset
// and is safe for concurrent use.
type Formatter = format.Formatter

var (
	// ErrInvalidFormatString reports a malformed custom template.
	ErrInvalidFormatString = format.ErrInvalidFormatString
	// ErrInvalidFormat reports an unknown preset name.
	ErrInvalidFormat = format.ErrInvalidFormat
	// ErrConflictingFormats is returned by Resolve when both a template and
	// a preset name are given.
	ErrConflictingFormats = errors.New("custom template and preset are mutually exclusive")
)

// DefaultPreset is used when neither a template nor a preset is requested.
const DefaultPreset = "hex"

// ParseTemplate compiles a custom template.
func ParseTemplate(raw string) (Formatter, error) {
	t, err := format.Parse(raw)
	if err != nil {
		return Formatter{}, err
	}
	return format.TemplateFormatter(t), nil
}

// ResolvePreset looks up a built-in preset by name.
func ResolvePreset(name string) (Formatter, error) {
	p, err := format.ParsePreset(name)
	if err != nil {
		return Formatter{}, err
	}
	return format.PresetFormatter(p), nil
}

// Resolve picks the formatter for a command invocation: the custom template
// if one was given, else the named preset, else DefaultPreset. A nil custom
// means no template was given; an empty one is a valid template that
// renders nothing.
func Resolve(custom *string, preset string) (Formatter, error) {
	switch {
	case custom != nil && preset != "":
		return Formatter{}, ErrConflictingFormats
	case custom != nil:
		return ParseTemplate(*custom)
	case preset != "":
		return ResolvePreset(preset)
	}
	return ResolvePreset(DefaultPreset)
}

// Presets returns the names of the built-in presets.
func Presets() []string {
	return format.PresetNames()
}
