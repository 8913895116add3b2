package lsp

import (
	"regexp"
	"strings"

	"github.com/jsvensson/xcolor/internal/color"
	"github.com/jsvensson/xcolor/internal/config"
	"github.com/jsvensson/xcolor/internal/format"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// splitLines splits content into lines, preserving empty trailing lines.
func splitLines(content string) []string {
	return strings.Split(content, "\n")
}

// blockContext represents the kind of block the cursor is in.
type blockContext int

const (
	contextRoot    blockContext = iota
	contextFormat               // inside format "name" {}
	contextSamples              // inside samples {}
	contextNested               // anywhere else; nothing to offer
)

// formatAttributes are the valid attributes inside a format block.
var formatAttributes = []string{"template", "description"}

var (
	// openExpansion matches an unterminated %%{ at the end of the text
	// before the cursor. Inside HCL strings %{ must be written %%{.
	openExpansion = regexp.MustCompile(`%%\{[^}"]*$`)

	// defaultValue matches the cursor inside the string of default = "...".
	defaultValue = regexp.MustCompile(`^\s*default\s*=\s*"[^"]*$`)

	// formatLabel finds format block names in text that may not parse.
	formatLabel = regexp.MustCompile(`(?m)^\s*format\s+"([^"]+)"`)
)

// complete produces completion items given an analysis result, document content,
// and cursor position. This is the core logic, decoupled from the LSP protocol
// handler for testability.
func complete(result *AnalysisResult, content string, pos protocol.Position) []protocol.CompletionItem {
	lines := splitLines(content)
	if int(pos.Line) >= len(lines) {
		return nil
	}

	line := lines[pos.Line]
	charPos := min(int(pos.Character), len(line))
	textBeforeCursor := line[:charPos]

	if openExpansion.MatchString(textBeforeCursor) {
		return expansionCompletions()
	}

	if defaultValue.MatchString(textBeforeCursor) {
		return formatNameCompletions(result, content)
	}

	// Determine which block the cursor is in by scanning backwards
	ctx := determineBlockContext(lines, int(pos.Line))

	if isValuePosition(textBeforeCursor) {
		if ctx == contextSamples {
			return sampleValueCompletions()
		}
		return nil
	}

	switch ctx {
	case contextFormat:
		return formatAttributeCompletions(lines, int(pos.Line))
	case contextRoot:
		return topLevelCompletions(result)
	}

	return nil
}

// expansionCompletions offers the channel designators, with and without a
// base letter, plus the common two-digit zero-padded hex form.
func expansionCompletions() []protocol.CompletionItem {
	kind := protocol.CompletionItemKindOperator
	bases := []struct {
		prefix string
		detail string
	}{
		{"", "decimal"},
		{"h", "lowercase hex"},
		{"H", "uppercase hex"},
		{"o", "octal"},
		{"B", "binary"},
		{"02h", "two-digit lowercase hex"},
	}

	var items []protocol.CompletionItem
	for _, b := range bases {
		for _, ch := range []color.Channel{color.Red, color.Green, color.Blue} {
			label := b.prefix + ch.String()
			example := format.MustParse("%{" + label + "}").Render(previewColor)
			items = append(items, protocol.CompletionItem{
				Label:         label,
				Kind:          &kind,
				Detail:        strPtr(b.detail + " " + channelName(ch)),
				Documentation: previewColor.Hex() + " \u2192 " + example,
			})
		}
	}
	return items
}

func channelName(ch color.Channel) string {
	switch ch {
	case color.Red:
		return "red"
	case color.Green:
		return "green"
	}
	return "blue"
}

// formatNameCompletions offers every preset and every format block in the
// file, each with a rendering of the preview color. An open default string
// rarely parses, so format names are scanned from the raw content and
// enriched from the last analysis when it has them.
func formatNameCompletions(result *AnalysisResult, content string) []protocol.CompletionItem {
	presetKind := protocol.CompletionItemKindConstant
	formatKind := protocol.CompletionItemKindReference

	var items []protocol.CompletionItem
	for _, name := range format.PresetNames() {
		p, _ := format.ParsePreset(name)
		items = append(items, protocol.CompletionItem{
			Label:  name,
			Kind:   &presetKind,
			Detail: strPtr("preset: " + p.Render(previewColor)),
		})
	}

	templates := make(map[string]TemplateLocation)
	if result != nil {
		for _, tl := range result.Templates {
			templates[tl.Name] = tl
		}
	}

	seen := make(map[string]bool)
	for _, m := range formatLabel.FindAllStringSubmatch(content, -1) {
		name := m[1]
		if seen[name] || format.IsPreset(name) {
			continue
		}
		seen[name] = true

		item := protocol.CompletionItem{
			Label:  name,
			Kind:   &formatKind,
			Detail: strPtr("format"),
		}
		if tl, ok := templates[name]; ok {
			item.Detail = strPtr("format: " + tl.Template.Render(previewColor))
			if tl.Description != "" {
				item.Documentation = tl.Description
			}
		}
		items = append(items, item)
	}
	return items
}

// isValuePosition returns true if the text before the cursor indicates we are
// at a value position (after an "=" sign with nothing meaningful following it).
func isValuePosition(textBeforeCursor string) bool {
	trimmed := strings.TrimSpace(textBeforeCursor)
	eqIdx := strings.LastIndex(trimmed, "=")
	if eqIdx == -1 {
		return false
	}
	afterEq := strings.TrimSpace(trimmed[eqIdx+1:])
	return afterEq == ""
}

// sampleValueCompletions returns the color function snippets and a hex
// literal snippet for a sample value.
func sampleValueCompletions() []protocol.CompletionItem {
	snippetFormat := protocol.InsertTextFormatSnippet

	snippets := map[string]string{
		"rgb":  "rgb(${1:0}, ${2:0}, ${3:0})",
		"argb": "argb(${1:255}, ${2:0}, ${3:0}, ${4:0})",
	}
	details := map[string]string{
		"rgb":  "rgb(r, g, b)",
		"argb": "argb(a, r, g, b)",
	}

	var items []protocol.CompletionItem
	for _, name := range config.FunctionNames() {
		snippet := snippets[name]
		items = append(items, protocol.CompletionItem{
			Label:            name,
			Kind:             completionKindPtr(protocol.CompletionItemKindFunction),
			Detail:           strPtr(details[name]),
			InsertText:       &snippet,
			InsertTextFormat: &snippetFormat,
		})
	}

	hexSnippet := `"#${1:000000}"`
	items = append(items, protocol.CompletionItem{
		Label:            "#rrggbb",
		Kind:             completionKindPtr(protocol.CompletionItemKindColor),
		Detail:           strPtr("hex color literal"),
		InsertText:       &hexSnippet,
		InsertTextFormat: &snippetFormat,
	})
	return items
}

// determineBlockContext scans from the top of the file down to the cursor line
// to determine which block the cursor is in, using brace nesting.
func determineBlockContext(lines []string, cursorLine int) blockContext {
	type blockInfo struct {
		name string
	}

	var stack []blockInfo

	for i := 0; i <= cursorLine; i++ {
		line := strings.TrimSpace(lines[i])

		opens := strings.Count(line, "{")
		closes := strings.Count(line, "}")

		// Process opening braces: extract the block name (first word on the line)
		if opens > 0 {
			parts := strings.Fields(line)
			if len(parts) >= 1 {
				name := parts[0]
				for i := 0; i < opens; i++ {
					stack = append(stack, blockInfo{name: name})
				}
			}
		}

		// Process closing braces
		if closes > 0 {
			for i := 0; i < closes; i++ {
				if len(stack) > 0 {
					stack = stack[:len(stack)-1]
				}
			}
		}
	}

	if len(stack) == 0 {
		return contextRoot
	}

	current := stack[len(stack)-1]

	if len(stack) > 1 {
		return contextNested
	}

	switch current.name {
	case "format":
		return contextFormat
	case "samples":
		return contextSamples
	}
	return contextNested
}

// findDefinedAttributes scans the current block (from the nearest opening brace
// before cursorLine to cursorLine) and returns attribute names already defined
// (lines containing "name = ...").
func findDefinedAttributes(lines []string, cursorLine int) map[string]bool {
	defined := make(map[string]bool)

	// Scan backwards to find the opening brace of the current block
	startLine := 0
	depth := 0
	for i := cursorLine; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		closes := strings.Count(line, "}")
		opens := strings.Count(line, "{")
		depth += closes - opens
		if depth < 0 {
			startLine = i
			break
		}
	}

	// Scan forward from startLine to cursorLine, collecting attribute names
	for i := startLine; i <= cursorLine; i++ {
		line := strings.TrimSpace(lines[i])
		if eqIdx := strings.Index(line, "="); eqIdx > 0 {
			name := strings.TrimSpace(line[:eqIdx])
			if !strings.Contains(name, " ") && !strings.Contains(name, "{") {
				defined[name] = true
			}
		}
	}

	return defined
}

// formatAttributeCompletions returns the format block attributes not yet
// defined in the block surrounding the cursor.
func formatAttributeCompletions(lines []string, cursorLine int) []protocol.CompletionItem {
	defined := findDefinedAttributes(lines, cursorLine)
	snippetFormat := protocol.InsertTextFormatSnippet
	kind := protocol.CompletionItemKindProperty

	var items []protocol.CompletionItem
	for _, name := range formatAttributes {
		if defined[name] {
			continue
		}
		snippet := name + ` = "$0"`
		items = append(items, protocol.CompletionItem{
			Label:            name,
			Kind:             &kind,
			InsertText:       &snippet,
			InsertTextFormat: &snippetFormat,
		})
	}

	return items
}

// topLevelCompletions returns completion items for the top-level blocks and
// the default attribute, unless it is already set.
func topLevelCompletions(result *AnalysisResult) []protocol.CompletionItem {
	snippetFormat := protocol.InsertTextFormatSnippet
	kind := protocol.CompletionItemKindSnippet

	type entry struct {
		label   string
		snippet string
	}
	entries := []entry{
		{"format", "format \"${1:name}\" {\n  template = \"$0\"\n}"},
		{"samples", "samples {\n  $0\n}"},
	}
	if result == nil || result.Default == nil {
		entries = append([]entry{{"default", `default = "${1:hex}"`}}, entries...)
	}

	var items []protocol.CompletionItem
	for _, e := range entries {
		snippet := e.snippet
		items = append(items, protocol.CompletionItem{
			Label:            e.label,
			Kind:             &kind,
			InsertText:       &snippet,
			InsertTextFormat: &snippetFormat,
		})
	}

	return items
}

// completionKindPtr returns a pointer to a CompletionItemKind.
func completionKindPtr(k protocol.CompletionItemKind) *protocol.CompletionItemKind {
	return &k
}

// textDocumentCompletion is the LSP handler for textDocument/completion requests.
func (s *Server) textDocumentCompletion(_ *glsp.Context, params *protocol.CompletionParams) (any, error) {
	uri := string(params.TextDocument.URI)

	content, ok := s.docs.Get(uri)
	if !ok {
		return nil, nil
	}

	items := complete(s.getResult(uri), content, params.Position)
	return items, nil
}
