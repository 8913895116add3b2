package format

import "github.com/jsvensson/xcolor/internal/color"

// Formatter is either a custom template or a preset. The zero value is the
// hex preset.
type Formatter struct {
	tmpl   *Template
	preset Preset
}

// TemplateFormatter returns a Formatter rendering with t.
func TemplateFormatter(t *Template) Formatter {
	return Formatter{tmpl: t}
}

// PresetFormatter returns a Formatter rendering with p.
func PresetFormatter(p Preset) Formatter {
	return Formatter{preset: p}
}

// Template returns the custom template, if the formatter has one.
func (f Formatter) Template() (*Template, bool) {
	return f.tmpl, f.tmpl != nil
}

// Preset returns the preset, if the formatter is not a custom template.
func (f Formatter) Preset() (Preset, bool) {
	return f.preset, f.tmpl == nil
}

// Render formats c.
func (f Formatter) Render(c color.Color) string {
	if f.tmpl != nil {
		return f.tmpl.Render(c)
	}
	return f.preset.Render(c)
}

// String describes the formatter: the preset name or the template source.
func (f Formatter) String() string {
	if f.tmpl != nil {
		return f.tmpl.String()
	}
	return f.preset.String()
}
