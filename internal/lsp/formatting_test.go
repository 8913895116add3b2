package lsp

import (
	"testing"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

func TestFormatDocument(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantEnd protocol.Position
	}{
		{
			name:    "format block",
			input:   "format \"css\" {\ntemplate=\"rgb(%%{r})\"\n}\n",
			want:    "format \"css\" {\n  template = \"rgb(%%{r})\"\n}\n",
			wantEnd: protocol.Position{Line: 3, Character: 0},
		},
		{
			name:    "samples without trailing newline",
			input:   "samples {\nlove   =   \"#eb6f92\"\n}",
			want:    "samples {\n  love = \"#eb6f92\"\n}",
			wantEnd: protocol.Position{Line: 2, Character: 1},
		},
		{
			name:    "blank lines collapsed",
			input:   "default = \"rgb\"\n\n\n\nsamples {\n}\n",
			want:    "default = \"rgb\"\n\nsamples {\n}\n",
			wantEnd: protocol.Position{Line: 6, Character: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			edits := formatDocument(tt.input)
			if len(edits) != 1 {
				t.Fatalf("got %d edits, want 1", len(edits))
			}
			if edits[0].NewText != tt.want {
				t.Errorf("NewText = %q, want %q", edits[0].NewText, tt.want)
			}
			if edits[0].Range.Start != (protocol.Position{}) {
				t.Errorf("Start = %+v, want document start", edits[0].Range.Start)
			}
			if edits[0].Range.End != tt.wantEnd {
				t.Errorf("End = %+v, want %+v", edits[0].Range.End, tt.wantEnd)
			}
		})
	}
}

func TestFormatDocumentAlreadyFormatted(t *testing.T) {
	input := "default = \"hex!\"\n\nformat \"css\" {\n  template = \"rgb(%%{r}, %%{g}, %%{b})\"\n}\n"
	if edits := formatDocument(input); len(edits) != 0 {
		t.Errorf("got %d edits for formatted input, want 0: %+v", len(edits), edits)
	}
}

func TestFormatDocumentIncomplete(t *testing.T) {
	// Partial input while typing must not panic.
	_ = formatDocument(`format "css" { template = "%%{r}"`)
}

func TestDocumentEndUTF16(t *testing.T) {
	got := documentEnd("a\n# \U0001F3A8")
	if want := (protocol.Position{Line: 1, Character: 4}); got != want {
		t.Errorf("documentEnd = %+v, want %+v", got, want)
	}
}
