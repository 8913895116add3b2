package lsp

import (
	"strings"
	"testing"

	"github.com/jsvensson/xcolor/internal/color"
	"github.com/jsvensson/xcolor/internal/config"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

const validConfig = `
default = "css"

format "css" {
  description = "CSS rgb() notation"
  template    = "rgb(%%{r}, %%{g}, %%{b})"
}

format "ansi" {
  template = "%%{r};%%{g};%%{b}"
}

samples {
  love = "#eb6f92"
  pine = rgb(49, 116, 143)
  mist = argb(128, 238, 238, 238)
}
`

func TestAnalyze_ValidConfig(t *testing.T) {
	result := Analyze("config.hcl", validConfig)

	if len(result.Diagnostics) != 0 {
		for _, d := range result.Diagnostics {
			t.Logf("  diagnostic: [%v] %s", *d.Severity, d.Message)
		}
		t.Fatalf("expected 0 diagnostics, got %d", len(result.Diagnostics))
	}

	if got := result.FormatNames(); len(got) != 2 || got[0] != "ansi" || got[1] != "css" {
		t.Errorf("FormatNames() = %v, want [ansi css]", got)
	}

	if len(result.Templates) != 2 {
		t.Fatalf("expected 2 templates, got %d", len(result.Templates))
	}
	css := result.Templates[0]
	if css.Name != "css" || css.Description != "CSS rgb() notation" {
		t.Errorf("first template = %q (%q), want css with description", css.Name, css.Description)
	}
	if got := css.Template.Render(color.New(1, 2, 3)); got != "rgb(1, 2, 3)" {
		t.Errorf("css renders %q", got)
	}

	if result.Default == nil || result.Default.Name != "css" {
		t.Fatalf("Default = %+v, want css", result.Default)
	}
}

func TestAnalyze_SampleLocations(t *testing.T) {
	result := Analyze("config.hcl", validConfig)

	want := []struct {
		name   string
		color  color.Color
		isCall bool
		line   uint32
	}{
		{"love", color.New(0xeb, 0x6f, 0x92), false, 13},
		{"pine", color.New(49, 116, 143), true, 14},
		{"mist", color.Color{A: 128, R: 238, G: 238, B: 238}, true, 15},
	}

	if len(result.Samples) != len(want) {
		t.Fatalf("expected %d samples, got %d", len(want), len(result.Samples))
	}
	for i, w := range want {
		got := result.Samples[i]
		if got.Name != w.name || got.Color != w.color || got.IsCall != w.isCall {
			t.Errorf("sample %d = {%s %v call=%v}, want {%s %v call=%v}",
				i, got.Name, got.Color, got.IsCall, w.name, w.color, w.isCall)
		}
		if got.Range.Start.Line != w.line || got.Range.Start.Character != 9 {
			t.Errorf("sample %s starts at %+v, want line %d column 9", w.name, got.Range.Start, w.line)
		}
	}
}

func TestAnalyze_SyntaxError(t *testing.T) {
	content := `
samples {
  love = "#eb6f92"
  this is not valid HCL!!!!
}
`
	result := Analyze("config.hcl", content)

	if len(result.Diagnostics) == 0 {
		t.Fatal("expected at least 1 diagnostic for syntax error")
	}

	// All syntax errors should be error-level
	for _, d := range result.Diagnostics {
		if d.Severity == nil || *d.Severity != protocol.DiagnosticSeverityError {
			t.Errorf("expected error severity, got %v", d.Severity)
		}
		if d.Source == nil || *d.Source != "xcolor" {
			t.Errorf("expected source xcolor, got %v", d.Source)
		}
	}
}

func TestAnalyze_Diagnostics(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		severity protocol.DiagnosticSeverity
		line     uint32
		contains string
	}{
		{
			name: "invalid template",
			content: `format "bad" {
  template = "%%{x}"
}
`,
			severity: protocol.DiagnosticSeverityError,
			line:     1,
			contains: "invalid format string",
		},
		{
			name: "width overflow",
			content: `format "wide" {
  template = "%%{ 65536r}"
}
`,
			severity: protocol.DiagnosticSeverityError,
			line:     1,
			contains: "invalid format string",
		},
		{
			name: "preset name reserved",
			content: `format "hex" {
  template = "%%{r}"
}
`,
			severity: protocol.DiagnosticSeverityError,
			line:     0,
			contains: "reserved",
		},
		{
			name: "duplicate format",
			content: `format "a" {
  template = "%%{r}"
}
format "a" {
  template = "%%{g}"
}
`,
			severity: protocol.DiagnosticSeverityError,
			line:     3,
			contains: "defined more than once",
		},
		{
			name: "missing template",
			content: `format "empty" {
  description = "nothing here"
}
`,
			severity: protocol.DiagnosticSeverityError,
			line:     0,
			contains: "missing template",
		},
		{
			name: "template not a string",
			content: `format "list" {
  template = ["%%{r}"]
}
`,
			severity: protocol.DiagnosticSeverityError,
			line:     1,
			contains: "expected a string",
		},
		{
			name: "unknown format attribute",
			content: `format "css" {
  template = "%%{r}"
  colour   = "red"
}
`,
			severity: protocol.DiagnosticSeverityError,
			line:     2,
			contains: `unsupported argument "colour"`,
		},
		{
			name:     "unknown block",
			content:  "palette {\n}\n",
			severity: protocol.DiagnosticSeverityError,
			line:     0,
			contains: `unknown block type "palette"`,
		},
		{
			name:     "unknown top-level attribute",
			content:  "verbose = true\n",
			severity: protocol.DiagnosticSeverityError,
			line:     0,
			contains: `unsupported argument "verbose"`,
		},
		{
			name: "duplicate samples block",
			content: `samples {
  love = "#eb6f92"
}

samples {
  pine = "#31748f"
}
`,
			severity: protocol.DiagnosticSeverityError,
			line:     4,
			contains: "duplicate samples block",
		},
		{
			name:     "default names nothing",
			content:  "default = \"css\"\n",
			severity: protocol.DiagnosticSeverityError,
			line:     0,
			contains: "invalid format",
		},
		{
			name: "invalid hex sample",
			content: `samples {
  love = "#eb6f9"
}
`,
			severity: protocol.DiagnosticSeverityError,
			line:     1,
			contains: "samples.love",
		},
		{
			name: "channel out of range",
			content: `samples {
  love = rgb(256, 0, 0)
}
`,
			severity: protocol.DiagnosticSeverityError,
			line:     1,
			contains: "between 0 and 255",
		},
		{
			name: "sample not a string",
			content: `samples {
  love = true
}
`,
			severity: protocol.DiagnosticSeverityError,
			line:     1,
			contains: "expected a hex color string",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Analyze("config.hcl", tt.content)

			if len(result.Diagnostics) != 1 {
				for _, d := range result.Diagnostics {
					t.Logf("  diagnostic: %s", d.Message)
				}
				t.Fatalf("expected 1 diagnostic, got %d", len(result.Diagnostics))
			}

			d := result.Diagnostics[0]
			if d.Severity == nil || *d.Severity != tt.severity {
				t.Errorf("severity = %v, want %v", d.Severity, tt.severity)
			}
			if d.Range.Start.Line != tt.line {
				t.Errorf("diagnostic on line %d, want %d", d.Range.Start.Line, tt.line)
			}
			if !strings.Contains(d.Message, tt.contains) {
				t.Errorf("message %q does not contain %q", d.Message, tt.contains)
			}
		})
	}
}

func TestAnalyze_NumberTemplate(t *testing.T) {
	content := `format "five" {
  template = 5
}
`
	result := Analyze("config.hcl", content)
	if len(result.Diagnostics) != 0 {
		t.Fatalf("expected 0 diagnostics, got %d: %s", len(result.Diagnostics), result.Diagnostics[0].Message)
	}
	if len(result.Templates) != 1 {
		t.Fatalf("expected 1 template, got %d", len(result.Templates))
	}
	if got := result.Templates[0].Template.Render(color.New(1, 2, 3)); got != "5" {
		t.Errorf("five renders %q, want %q", got, "5")
	}
}

// The editor must flag exactly the files the CLI refuses to load.
func TestAnalyze_AgreesWithConfigParse(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"valid", validConfig},
		{"number template", "format \"five\" {\n  template = 5\n}\n"},
		{"bool description", "format \"t\" {\n  template = \"%%{r}\"\n  description = true\n}\n"},
		{"unknown root attribute", "verbose = true\n"},
		{"unknown format attribute", "format \"css\" {\n  template = \"%%{r}\"\n  colour = \"red\"\n}\n"},
		{"duplicate samples", "samples {\n  a = \"#fff\"\n}\nsamples {\n  b = \"#000\"\n}\n"},
		{"list template", "format \"l\" {\n  template = [\"x\"]\n}\n"},
		{"bad template", "format \"q\" {\n  template = \"%%{q}\"\n}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Parse([]byte(tt.content), "config.hcl")
			result := Analyze("config.hcl", tt.content)

			hasErrors := false
			for _, d := range result.Diagnostics {
				if d.Severity != nil && *d.Severity == protocol.DiagnosticSeverityError {
					hasErrors = true
				}
			}
			if hasErrors != (err != nil) {
				t.Errorf("Analyze errors = %v, config.Parse error = %v", hasErrors, err)
			}
		})
	}
}

func TestAnalyze_CollectsAllErrors(t *testing.T) {
	content := `default = "missing"

format "bad" {
  template = "%%{q}"
}

samples {
  a = "#zzzzzz"
  b = rgb(1, 2)
}
`
	result := Analyze("config.hcl", content)

	if len(result.Diagnostics) != 4 {
		for _, d := range result.Diagnostics {
			t.Logf("  diagnostic: %s", d.Message)
		}
		t.Fatalf("expected 4 diagnostics, got %d", len(result.Diagnostics))
	}
}

func TestAnalyze_DefaultBeforeFormat(t *testing.T) {
	// default may name a format declared further down.
	content := `default = "later"

format "later" {
  template = "%%{hr}"
}
`
	result := Analyze("config.hcl", content)
	if len(result.Diagnostics) != 0 {
		t.Fatalf("expected 0 diagnostics, got %d: %s", len(result.Diagnostics), result.Diagnostics[0].Message)
	}
}

func TestAnalyze_SymbolTable(t *testing.T) {
	result := Analyze("config.hcl", validConfig)

	tests := []struct {
		name string
		line uint32
	}{
		{"css", 3},
		{"ansi", 8},
	}
	for _, tt := range tests {
		rng, ok := result.Symbols[tt.name]
		if !ok {
			t.Errorf("expected %q in symbol table", tt.name)
			continue
		}
		if rng.Start.Line != tt.line {
			t.Errorf("%s defined on line %d, want %d", tt.name, rng.Start.Line, tt.line)
		}
	}

	if _, ok := result.Symbols["hex"]; ok {
		t.Error("presets must not appear in the symbol table")
	}
}

func TestHCLPosToLSP(t *testing.T) {
	result := Analyze("config.hcl", "samples {\n  love = \"#eb6f92\"\n}\n")
	if len(result.Samples) != 1 {
		t.Fatalf("expected 1 sample, got %d", len(result.Samples))
	}
	want := protocol.Range{
		Start: protocol.Position{Line: 1, Character: 9},
		End:   protocol.Position{Line: 1, Character: 18},
	}
	if got := result.Samples[0].Range; got != want {
		t.Errorf("sample range = %+v, want %+v", got, want)
	}
}
