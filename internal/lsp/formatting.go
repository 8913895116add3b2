package lsp

import (
	"strings"
	"unicode/utf16"

	"github.com/jsvensson/xcolor/internal/config"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// formatDocument returns the edits that bring content into canonical style:
// a single edit replacing the whole document, or none if it is already
// formatted.
func formatDocument(content string) []protocol.TextEdit {
	formatted := config.FormatSource(content)
	if formatted == content {
		return []protocol.TextEdit{}
	}
	return []protocol.TextEdit{{
		Range:   protocol.Range{End: documentEnd(content)},
		NewText: formatted,
	}}
}

// documentEnd returns the position just past the last character of content,
// counting characters in UTF-16 code units.
func documentEnd(content string) protocol.Position {
	lines := strings.Split(content, "\n")
	last := lines[len(lines)-1]
	return protocol.Position{
		Line:      uint32(len(lines) - 1),
		Character: uint32(len(utf16.Encode([]rune(last)))),
	}
}

// textDocumentFormatting handles textDocument/formatting requests.
func (s *Server) textDocumentFormatting(_ *glsp.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	content, ok := s.docs.Get(string(params.TextDocument.URI))
	if !ok {
		return nil, nil
	}
	return formatDocument(content), nil
}
