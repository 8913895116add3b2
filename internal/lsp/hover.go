package lsp

import (
	"fmt"
	"strings"

	"github.com/jsvensson/xcolor/internal/color"
	"github.com/jsvensson/xcolor/internal/format"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// posInRange returns true if pos is within the range [r.Start, r.End).
// The end position is exclusive.
func posInRange(pos protocol.Position, r protocol.Range) bool {
	if pos.Line < r.Start.Line || pos.Line > r.End.Line {
		return false
	}
	if pos.Line == r.Start.Line && pos.Character < r.Start.Character {
		return false
	}
	if pos.Line == r.End.Line && pos.Character >= r.End.Character {
		return false
	}
	return true
}

// extractText extracts the source text at a given LSP range from document content.
func extractText(content string, r protocol.Range) string {
	lines := strings.Split(content, "\n")

	startLine := int(r.Start.Line)
	endLine := int(r.End.Line)

	if startLine >= len(lines) {
		return ""
	}
	if endLine >= len(lines) {
		endLine = len(lines) - 1
	}

	if startLine == endLine {
		line := lines[startLine]
		startChar := int(r.Start.Character)
		endChar := int(r.End.Character)
		if startChar > len(line) {
			startChar = len(line)
		}
		if endChar > len(line) {
			endChar = len(line)
		}
		return line[startChar:endChar]
	}

	// Multi-line range
	var parts []string
	for i := startLine; i <= endLine; i++ {
		line := lines[i]
		if i == startLine {
			startChar := int(r.Start.Character)
			if startChar > len(line) {
				startChar = len(line)
			}
			parts = append(parts, line[startChar:])
		} else if i == endLine {
			endChar := int(r.End.Character)
			if endChar > len(line) {
				endChar = len(line)
			}
			parts = append(parts, line[:endChar])
		} else {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, "\n")
}

// previewColor is rendered when a file defines no samples of its own.
var previewColor = color.New(0xeb, 0x6f, 0x92)

// hover produces a Hover response for the given cursor position.
// On a sample value it shows the color and every preset rendering of it.
// On a template, or on the value of default, it shows the output for each
// sample in the file. Returns nil if nothing is under the cursor.
func hover(result *AnalysisResult, pos protocol.Position) *protocol.Hover {
	if result == nil {
		return nil
	}

	for _, sl := range result.Samples {
		if posInRange(pos, sl.Range) {
			return markdownHover(sampleHover(sl), sl.Range)
		}
	}

	for _, tl := range result.Templates {
		if !posInRange(pos, tl.Range) {
			continue
		}
		md := fmt.Sprintf("**%s**", tl.Name)
		if tl.Description != "" {
			md += " \u00b7 " + tl.Description
		}
		md += "\n\n`" + tl.Template.String() + "`\n\n" + previewTable(result.Samples, tl.Template.Render)
		return markdownHover(md, tl.Range)
	}

	if d := result.Default; d != nil && posInRange(pos, d.Range) {
		if p, err := format.ParsePreset(d.Name); err == nil {
			md := fmt.Sprintf("**%s** \u00b7 preset\n\n", d.Name) + previewTable(result.Samples, p.Render)
			return markdownHover(md, d.Range)
		}
		for _, tl := range result.Templates {
			if tl.Name == d.Name {
				md := fmt.Sprintf("**%s** \u00b7 `%s`\n\n", d.Name, tl.Template.String()) + previewTable(result.Samples, tl.Template.Render)
				return markdownHover(md, d.Range)
			}
		}
	}

	return nil
}

func sampleHover(sl SampleLocation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**%s**\n\n`%s` \u00b7 `%s`", sl.Name, sl.Color.Hex(), sl.Color.RGB())
	if sl.Color.A != 0xff {
		fmt.Fprintf(&b, " \u00b7 alpha `%d`", sl.Color.A)
	}
	b.WriteString("\n\n| preset | output |\n|---|---|\n")
	for _, name := range format.PresetNames() {
		p, _ := format.ParsePreset(name)
		fmt.Fprintf(&b, "| `%s` | `%s` |\n", name, tableCell(p.Render(sl.Color)))
	}
	return b.String()
}

// previewTable renders each sample with render as a markdown table.
func previewTable(samples []SampleLocation, render func(color.Color) string) string {
	if len(samples) == 0 {
		samples = []SampleLocation{{Name: previewColor.Hex(), Color: previewColor}}
	}

	var b strings.Builder
	b.WriteString("| sample | output |\n|---|---|\n")
	for _, sl := range samples {
		fmt.Fprintf(&b, "| %s | `%s` |\n", sl.Name, tableCell(render(sl.Color)))
	}
	return b.String()
}

func tableCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}

func markdownHover(md string, rng protocol.Range) *protocol.Hover {
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: md,
		},
		Range: &rng,
	}
}

// textDocumentHover handles textDocument/hover requests.
func (s *Server) textDocumentHover(_ *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	return hover(s.getResult(string(params.TextDocument.URI)), params.Position), nil
}
