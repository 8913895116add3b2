package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/jsvensson/xcolor/internal/color"
	"github.com/jsvensson/xcolor/internal/format"
	"github.com/zclconf/go-cty/cty"
)

// Config is a fully-validated xcolor configuration file.
type Config struct {
	// Default names the formatter used when none is given on the command
	// line. Empty means the hex preset.
	Default string
	Formats map[string]Format
	Samples map[string]color.Color
}

// Format is a named custom template.
type Format struct {
	Name        string
	Description string
	Template    *format.Template
}

// fileConfig mirrors the HCL layout for gohcl decoding.
type fileConfig struct {
	Default string        `hcl:"default,optional"`
	Formats []formatBlock `hcl:"format,block"`
	Samples *samplesBlock `hcl:"samples,block"`
}

type formatBlock struct {
	Name        string `hcl:"name,label"`
	Template    string `hcl:"template"`
	Description string `hcl:"description,optional"`
}

type samplesBlock struct {
	Entries hcl.Body `hcl:",remain"`
}

// DefaultPath returns $XDG_CONFIG_HOME/xcolor/config.hcl, or the platform
// equivalent.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config directory: %w", err)
	}
	return filepath.Join(dir, "xcolor", "config.hcl"), nil
}

// Load reads and validates the configuration file at path.
func Load(path string) (*Config, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(src, path)
}

// Parse validates HCL configuration source. Every template is compiled
// eagerly, so a Config never holds an unparseable format.
func Parse(src []byte, filename string) (*Config, error) {
	file, diags := hclsyntax.ParseConfig(src, filename, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing HCL: %s", diags.Error())
	}

	ctx := EvalContext()

	var raw fileConfig
	if diags := gohcl.DecodeBody(file.Body, ctx, &raw); diags.HasErrors() {
		return nil, fmt.Errorf("decoding config: %s", diags.Error())
	}

	cfg := &Config{
		Default: raw.Default,
		Formats: make(map[string]Format, len(raw.Formats)),
		Samples: make(map[string]color.Color),
	}

	for _, block := range raw.Formats {
		if err := ValidateFormatName(block.Name); err != nil {
			return nil, err
		}
		if _, dup := cfg.Formats[block.Name]; dup {
			return nil, fmt.Errorf("format %q: defined more than once", block.Name)
		}
		tmpl, err := format.Parse(block.Template)
		if err != nil {
			return nil, fmt.Errorf("format %q: %w", block.Name, err)
		}
		cfg.Formats[block.Name] = Format{
			Name:        block.Name,
			Description: block.Description,
			Template:    tmpl,
		}
	}

	if raw.Samples != nil {
		if err := parseSamples(raw.Samples.Entries, ctx, cfg.Samples); err != nil {
			return nil, fmt.Errorf("parsing samples: %w", err)
		}
	}

	if cfg.Default != "" {
		if _, err := cfg.Formatter(cfg.Default); err != nil {
			return nil, fmt.Errorf("default: %w", err)
		}
	}

	return cfg, nil
}

// ValidateFormatName rejects names that would shadow a preset.
func ValidateFormatName(name string) error {
	if format.IsPreset(name) {
		return fmt.Errorf("format %q: name is reserved for a built-in preset", name)
	}
	return nil
}

func parseSamples(body hcl.Body, ctx *hcl.EvalContext, dest map[string]color.Color) error {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return fmt.Errorf("getting attributes: %s", diags.Error())
	}

	// Sort names so the first error reported is deterministic.
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		val, diags := attrs[name].Expr.Value(ctx)
		if diags.HasErrors() {
			return fmt.Errorf("evaluating %s: %s", name, diags.Error())
		}
		c, err := SampleValue(val)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		dest[name] = c
	}
	return nil
}

// SampleValue converts an evaluated sample attribute to a Color.
func SampleValue(val cty.Value) (color.Color, error) {
	if val.IsNull() || !val.IsKnown() || val.Type() != cty.String {
		return color.Color{}, fmt.Errorf("expected a hex color string, got %s", val.Type().FriendlyName())
	}
	return color.ParseHex(val.AsString())
}

// Formatter resolves name to a preset or, failing that, a custom format.
// A nil Config knows only the presets.
func (c *Config) Formatter(name string) (format.Formatter, error) {
	if p, err := format.ParsePreset(name); err == nil {
		return format.PresetFormatter(p), nil
	}
	if c != nil {
		if f, ok := c.Formats[name]; ok {
			return format.TemplateFormatter(f.Template), nil
		}
	}
	return format.Formatter{}, fmt.Errorf("%w: %q", format.ErrInvalidFormat, name)
}

// DefaultFormatter returns the configured default, or the hex preset.
func (c *Config) DefaultFormatter() (format.Formatter, error) {
	if c == nil || c.Default == "" {
		return format.PresetFormatter(format.Hex), nil
	}
	return c.Formatter(c.Default)
}

// Sample looks up a named sample color.
func (c *Config) Sample(name string) (color.Color, bool) {
	if c == nil {
		return color.Color{}, false
	}
	s, ok := c.Samples[name]
	return s, ok
}

// FormatNames returns the custom format names in sorted order.
func (c *Config) FormatNames() []string {
	if c == nil {
		return nil
	}
	names := make([]string, 0, len(c.Formats))
	for name := range c.Formats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
