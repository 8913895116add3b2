package format

import (
	"fmt"

	"github.com/jsvensson/xcolor/internal/color"
)

// Preset is one of the built-in output formats.
type Preset int

const (
	Hex Preset = iota
	HexUpper
	HexCompact
	HexUpperCompact
	Plain
	RGB
)

var presetNames = []string{
	Hex:             "hex",
	HexUpper:        "HEX",
	HexCompact:      "hex!",
	HexUpperCompact: "HEX!",
	Plain:           "plain",
	RGB:             "rgb",
}

// PresetNames returns the preset names in table order.
func PresetNames() []string {
	return append([]string(nil), presetNames...)
}

// IsPreset reports whether name is a built-in preset name.
func IsPreset(name string) bool {
	_, err := ParsePreset(name)
	return err == nil
}

// ParsePreset looks up a preset by its exact, case-sensitive name.
func ParsePreset(name string) (Preset, error) {
	for i, n := range presetNames {
		if n == name {
			return Preset(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, name)
}

// String returns the preset's name.
func (p Preset) String() string {
	if p < 0 || int(p) >= len(presetNames) {
		return fmt.Sprintf("Preset(%d)", int(p))
	}
	return presetNames[p]
}

// Render formats c. The compact presets fall back to six digits when c
// is not compactable.
func (p Preset) Render(c color.Color) string {
	switch p {
	case Hex, HexCompact:
		if p == HexCompact && c.IsCompactable() {
			return fmt.Sprintf("#%x%x%x", c.R&0xf, c.G&0xf, c.B&0xf)
		}
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	case HexUpper, HexUpperCompact:
		if p == HexUpperCompact && c.IsCompactable() {
			return fmt.Sprintf("#%X%X%X", c.R&0xf, c.G&0xf, c.B&0xf)
		}
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	case Plain:
		return fmt.Sprintf("%d;%d;%d", c.R, c.G, c.B)
	case RGB:
		return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
	}
	return ""
}
