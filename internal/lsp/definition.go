package lsp

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// definition returns the location of the format block named by the default
// attribute when the cursor is on its value. Presets have no definition in
// the file, so it returns nil for them, for any other position, and for
// names without a format block.
func definition(result *AnalysisResult, uri string, pos protocol.Position) *protocol.Location {
	if result == nil || result.Default == nil {
		return nil
	}

	if !posInRange(pos, result.Default.Range) {
		return nil
	}

	symRange, ok := result.Symbols[result.Default.Name]
	if !ok {
		return nil
	}

	return &protocol.Location{
		URI:   protocol.DocumentUri(uri),
		Range: symRange,
	}
}

// textDocumentDefinition handles textDocument/definition requests.
func (s *Server) textDocumentDefinition(_ *glsp.Context, params *protocol.DefinitionParams) (any, error) {
	uri := string(params.TextDocument.URI)

	loc := definition(s.getResult(uri), uri, params.Position)
	if loc == nil {
		return nil, nil
	}
	return loc, nil
}
