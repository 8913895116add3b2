package lsp

import (
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/jsvensson/xcolor/internal/color"
	"github.com/jsvensson/xcolor/internal/config"
	"github.com/jsvensson/xcolor/internal/format"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

var (
	DiagError   = protocol.DiagnosticSeverityError
	DiagWarning = protocol.DiagnosticSeverityWarning
)

const diagSource = "xcolor"

// AnalysisResult holds all information produced by analyzing a config file.
type AnalysisResult struct {
	Diagnostics []protocol.Diagnostic
	Symbols     map[string]protocol.Range // "css" -> format block definition range
	Templates   []TemplateLocation
	Samples     []SampleLocation
	Default     *DefaultLocation
}

// TemplateLocation records a successfully parsed template and the range of
// its string expression.
type TemplateLocation struct {
	Range       protocol.Range
	Name        string
	Description string
	Template    *format.Template
}

// SampleLocation records a resolved sample color at a specific source position.
type SampleLocation struct {
	Range  protocol.Range
	Name   string
	Color  color.Color
	IsCall bool // true if the value is an rgb()/argb() call rather than a hex literal
}

// DefaultLocation records the value of the top-level default attribute.
type DefaultLocation struct {
	Range protocol.Range
	Name  string
}

// FormatNames returns the names of all format blocks, sorted.
func (r *AnalysisResult) FormatNames() []string {
	names := make([]string, 0, len(r.Symbols))
	for name := range r.Symbols {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// hclPosToLSP converts an HCL position to an LSP position.
// HCL positions are 1-based; LSP positions are 0-based.
func hclPosToLSP(pos hcl.Pos) protocol.Position {
	return protocol.Position{
		Line:      uint32(pos.Line - 1),
		Character: uint32(pos.Column - 1),
	}
}

// hclRangeToLSP converts an HCL range to an LSP range.
func hclRangeToLSP(r hcl.Range) protocol.Range {
	return protocol.Range{
		Start: hclPosToLSP(r.Start),
		End:   hclPosToLSP(r.End),
	}
}

// Analyze parses config content from memory and produces diagnostics, a
// symbol table, template and sample locations. It collects all errors
// rather than stopping at the first.
func Analyze(filename, content string) *AnalysisResult {
	result := &AnalysisResult{
		Symbols: make(map[string]protocol.Range),
	}

	file, diags := hclsyntax.ParseConfig([]byte(content), filename, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		for _, d := range diags {
			result.Diagnostics = append(result.Diagnostics, hclDiagToLSP(d))
		}
		return result
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		result.addError(hcl.Range{}, "internal error: parsed body is not *hclsyntax.Body")
		return result
	}

	ctx := config.EvalContext()

	var samplesSeen bool
	for _, block := range body.Blocks {
		switch block.Type {
		case "format":
			result.analyzeFormatBlock(block, ctx)
		case "samples":
			if samplesSeen {
				result.addError(block.TypeRange, "duplicate samples block: only one samples block is allowed")
				continue
			}
			samplesSeen = true
			result.analyzeSamplesBody(block.Body, ctx)
		default:
			result.addError(block.TypeRange, fmt.Sprintf("unknown block type %q", block.Type))
		}
	}

	// Attributes last: default may name a format defined further down.
	for _, attr := range sortedAttributes(body) {
		if attr.Name != "default" {
			result.addError(attr.NameRange, fmt.Sprintf("unsupported argument %q", attr.Name))
			continue
		}
		result.analyzeDefault(attr)
	}

	return result
}

func sortedAttributes(body *hclsyntax.Body) []*hclsyntax.Attribute {
	attrs := make([]*hclsyntax.Attribute, 0, len(body.Attributes))
	for _, attr := range body.Attributes {
		attrs = append(attrs, attr)
	}
	sort.Slice(attrs, func(i, j int) bool {
		return attrs[i].SrcRange.Start.Byte < attrs[j].SrcRange.Start.Byte
	})
	return attrs
}

// hclDiagToLSP converts an HCL diagnostic to an LSP diagnostic.
func hclDiagToLSP(d *hcl.Diagnostic) protocol.Diagnostic {
	sev := DiagError
	if d.Severity == hcl.DiagWarning {
		sev = DiagWarning
	}

	diag := protocol.Diagnostic{
		Severity: &sev,
		Message:  d.Summary,
		Source:   strPtr(diagSource),
	}

	if d.Detail != "" {
		diag.Message = d.Summary + ": " + d.Detail
	}

	if d.Subject != nil {
		diag.Range = hclRangeToLSP(*d.Subject)
	}

	return diag
}

// addError adds an error-level diagnostic at the given range.
func (r *AnalysisResult) addError(rng hcl.Range, msg string) {
	r.Diagnostics = append(r.Diagnostics, protocol.Diagnostic{
		Range:    hclRangeToLSP(rng),
		Severity: &DiagError,
		Source:   strPtr(diagSource),
		Message:  msg,
	})
}

func strPtr(s string) *string {
	return &s
}

// stringAttr evaluates attr and converts the result to a string the way
// gohcl does, so numbers and bools are accepted.
func (r *AnalysisResult) stringAttr(attr *hclsyntax.Attribute, ctx *hcl.EvalContext, where string) (string, bool) {
	val, diags := attr.Expr.Value(ctx)
	if diags.HasErrors() {
		r.addError(attr.SrcRange, fmt.Sprintf("evaluating %s: %s", where, diags.Error()))
		return "", false
	}
	if val.IsNull() || !val.IsKnown() {
		r.addError(attr.Expr.Range(), fmt.Sprintf("%s: expected a string, got null", where))
		return "", false
	}
	str, err := convert.Convert(val, cty.String)
	if err != nil {
		r.addError(attr.Expr.Range(), fmt.Sprintf("%s: expected a string, got %s", where, val.Type().FriendlyName()))
		return "", false
	}
	return str.AsString(), true
}

func (r *AnalysisResult) analyzeFormatBlock(block *hclsyntax.Block, ctx *hcl.EvalContext) {
	if len(block.Labels) != 1 {
		r.addError(block.DefRange(), "format block needs exactly one name label")
		return
	}
	name := block.Labels[0]
	labelRange := block.LabelRanges[0]

	if err := config.ValidateFormatName(name); err != nil {
		r.addError(labelRange, err.Error())
	} else if _, dup := r.Symbols[name]; dup {
		r.addError(labelRange, fmt.Sprintf("format %q: defined more than once", name))
	} else {
		r.Symbols[name] = hclRangeToLSP(block.DefRange())
	}

	loc := TemplateLocation{Name: name}
	var tmplAttr *hclsyntax.Attribute
	for _, attr := range block.Body.Attributes {
		switch attr.Name {
		case "template":
			tmplAttr = attr
		case "description":
			if s, ok := r.stringAttr(attr, ctx, "format "+name+" description"); ok {
				loc.Description = s
			}
		default:
			r.addError(attr.NameRange, fmt.Sprintf("format %q: unsupported argument %q", name, attr.Name))
		}
	}
	for _, nested := range block.Body.Blocks {
		r.addError(nested.TypeRange, fmt.Sprintf("format %q: unexpected block %q", name, nested.Type))
	}

	if tmplAttr == nil {
		r.addError(block.DefRange(), fmt.Sprintf("format %q: missing template", name))
		return
	}

	raw, ok := r.stringAttr(tmplAttr, ctx, "format "+name+" template")
	if !ok {
		return
	}
	tmpl, err := format.Parse(raw)
	if err != nil {
		r.addError(tmplAttr.Expr.Range(), fmt.Sprintf("format %q: %s", name, err))
		return
	}

	loc.Range = hclRangeToLSP(tmplAttr.Expr.Range())
	loc.Template = tmpl
	r.Templates = append(r.Templates, loc)
}

func (r *AnalysisResult) analyzeSamplesBody(body *hclsyntax.Body, ctx *hcl.EvalContext) {
	for _, nested := range body.Blocks {
		r.addError(nested.TypeRange, fmt.Sprintf("samples: unexpected block %q", nested.Type))
	}

	for _, attr := range sortedAttributes(body) {
		val, diags := attr.Expr.Value(ctx)
		if diags.HasErrors() {
			r.addError(attr.SrcRange, fmt.Sprintf("samples.%s: %s", attr.Name, diags.Error()))
			continue
		}

		c, err := config.SampleValue(val)
		if err != nil {
			r.addError(attr.Expr.Range(), fmt.Sprintf("samples.%s: %s", attr.Name, err))
			continue
		}

		_, isCall := attr.Expr.(*hclsyntax.FunctionCallExpr)
		r.Samples = append(r.Samples, SampleLocation{
			Range:  hclRangeToLSP(attr.Expr.Range()),
			Name:   attr.Name,
			Color:  c,
			IsCall: isCall,
		})
	}
}

func (r *AnalysisResult) analyzeDefault(attr *hclsyntax.Attribute) {
	name, ok := r.stringAttr(attr, nil, "default")
	if !ok {
		return
	}
	r.Default = &DefaultLocation{
		Range: hclRangeToLSP(attr.Expr.Range()),
		Name:  name,
	}
	if format.IsPreset(name) {
		return
	}
	if _, ok := r.Symbols[name]; !ok {
		r.addError(attr.Expr.Range(), fmt.Sprintf("default: %s: %q is neither a preset nor a format in this file", format.ErrInvalidFormat, name))
	}
}
