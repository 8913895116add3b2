package config

import (
	"strings"
	"testing"
)

func TestFormatSource(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "basic formatting",
			input:    `samples{love="#eb6f92"gold="#f6c177"}`,
			expected: `samples { love = "#eb6f92" gold = "#f6c177" }`,
		},
		{
			name: "already formatted stays same",
			input: `samples {
  love = "#eb6f92"
}
`,
			expected: `samples {
  love = "#eb6f92"
}
`,
		},
		{
			name:     "extra whitespace normalized",
			input:    `default   =   "hex"`,
			expected: `default = "hex"`,
		},
		{
			name:     "empty content",
			input:    "",
			expected: "",
		},
		{
			name:     "multiple blank lines collapsed to one",
			input:    "default = \"hex\"\n\n\n\nsamples { love = \"#eb6f92\" }",
			expected: "default = \"hex\"\n\nsamples { love = \"#eb6f92\" }",
		},
		{
			name:     "single blank line preserved",
			input:    "default = \"hex\"\n\nsamples { love = \"#eb6f92\" }",
			expected: "default = \"hex\"\n\nsamples { love = \"#eb6f92\" }",
		},
		{
			name:     "blank line after opening brace removed",
			input:    "samples {\n\n  love = \"#eb6f92\"\n}",
			expected: "samples {\n  love = \"#eb6f92\"\n}",
		},
		{
			name:     "blank line before closing brace removed",
			input:    "samples {\n  love = \"#eb6f92\"\n\n}",
			expected: "samples {\n  love = \"#eb6f92\"\n}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := strings.TrimSuffix(FormatSource(tt.input), "\n")
			expected := strings.TrimSuffix(tt.expected, "\n")

			if result != expected {
				t.Errorf("FormatSource() = %q, want %q", result, expected)
			}
		})
	}
}

func TestFormatSourceInvalidHCL(t *testing.T) {
	input := `samples { love = "#eb6f92"`
	if got := FormatSource(input); !strings.Contains(got, "love") {
		t.Errorf("FormatSource() on incomplete HCL dropped content: %q", got)
	}
}
