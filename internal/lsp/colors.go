package lsp

import (
	"fmt"
	"strings"

	"github.com/jsvensson/xcolor/internal/color"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// colorToLSP converts an internal color.Color (uint8 ARGB) to a protocol.Color (float32 0.0-1.0).
func colorToLSP(c color.Color) protocol.Color {
	return protocol.Color{
		Red:   float32(c.R) / 255.0,
		Green: float32(c.G) / 255.0,
		Blue:  float32(c.B) / 255.0,
		Alpha: float32(c.A) / 255.0,
	}
}

// colorFromLSP is the inverse of colorToLSP, rounding to the nearest channel value.
func colorFromLSP(c protocol.Color) color.Color {
	return color.Color{
		A: unitToByte(c.Alpha),
		R: unitToByte(c.Red),
		G: unitToByte(c.Green),
		B: unitToByte(c.Blue),
	}
}

func unitToByte(f float32) uint8 {
	switch {
	case f <= 0:
		return 0
	case f >= 1:
		return 255
	}
	return uint8(f*255 + 0.5)
}

// documentColors converts the analysis result's sample locations into LSP ColorInformation items.
func documentColors(result *AnalysisResult) []protocol.ColorInformation {
	if result == nil {
		return []protocol.ColorInformation{}
	}

	infos := make([]protocol.ColorInformation, 0, len(result.Samples))
	for _, sl := range result.Samples {
		infos = append(infos, protocol.ColorInformation{
			Range: sl.Range,
			Color: colorToLSP(sl.Color),
		})
	}
	return infos
}

// colorPresentation produces the ways a picked color can be written back
// into a sample value. The notation already used at the range comes first,
// so accepting the default keeps a hex literal a hex literal and a function
// call a function call.
func colorPresentation(content string, params *protocol.ColorPresentationParams) []protocol.ColorPresentation {
	c := colorFromLSP(params.Color)
	text := extractText(content, params.Range)

	hex := c.Hex()
	call := fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
	if c.A != 0xff {
		hex = c.HexAlpha()
		call = fmt.Sprintf("argb(%d, %d, %d, %d)", c.A, c.R, c.G, c.B)
	}

	quotedHex := `"` + hex + `"`
	if strings.HasPrefix(text, "#") {
		quotedHex = hex
	}

	edit := func(label, newText string) protocol.ColorPresentation {
		return protocol.ColorPresentation{
			Label:    label,
			TextEdit: &protocol.TextEdit{Range: params.Range, NewText: newText},
		}
	}

	switch {
	case strings.HasPrefix(text, "rgb(") || strings.HasPrefix(text, "argb("):
		return []protocol.ColorPresentation{edit(call, call), edit(hex, `"`+hex+`"`)}
	case strings.HasPrefix(text, `"`) || strings.HasPrefix(text, "#"):
		return []protocol.ColorPresentation{edit(hex, quotedHex), edit(call, call)}
	}

	// Unknown notation, leave it alone.
	return []protocol.ColorPresentation{}
}

// textDocumentDocumentColor handles textDocument/documentColor requests.
func (s *Server) textDocumentDocumentColor(_ *glsp.Context, params *protocol.DocumentColorParams) ([]protocol.ColorInformation, error) {
	uri := string(params.TextDocument.URI)
	result := s.getResult(uri)
	return documentColors(result), nil
}

// textDocumentColorPresentation handles textDocument/colorPresentation requests.
func (s *Server) textDocumentColorPresentation(_ *glsp.Context, params *protocol.ColorPresentationParams) ([]protocol.ColorPresentation, error) {
	uri := string(params.TextDocument.URI)
	content, ok := s.docs.Get(uri)
	if !ok {
		return []protocol.ColorPresentation{}, nil
	}
	return colorPresentation(content, params), nil
}
