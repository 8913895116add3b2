package config

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/jsvensson/xcolor/internal/color"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

// MakeRGBFunc creates an HCL function that builds an opaque hex color.
// Usage: rgb(235, 111, 146)
func MakeRGBFunc() function.Function {
	return function.New(&function.Spec{
		Description: "Builds a hex color from red, green and blue channels (0-255)",
		Params: []function.Parameter{
			{Name: "r", Type: cty.Number},
			{Name: "g", Type: cty.Number},
			{Name: "b", Type: cty.Number},
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			ch, err := channelArgs(args, []string{"r", "g", "b"})
			if err != nil {
				return cty.NilVal, err
			}
			return cty.StringVal(color.New(ch[0], ch[1], ch[2]).Hex()), nil
		},
	})
}

// MakeARGBFunc creates an HCL function that builds a hex color with alpha.
// Usage: argb(128, 235, 111, 146)
func MakeARGBFunc() function.Function {
	return function.New(&function.Spec{
		Description: "Builds a hex color from alpha, red, green and blue channels (0-255)",
		Params: []function.Parameter{
			{Name: "a", Type: cty.Number},
			{Name: "r", Type: cty.Number},
			{Name: "g", Type: cty.Number},
			{Name: "b", Type: cty.Number},
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			ch, err := channelArgs(args, []string{"a", "r", "g", "b"})
			if err != nil {
				return cty.NilVal, err
			}
			c := color.Color{A: ch[0], R: ch[1], G: ch[2], B: ch[3]}
			return cty.StringVal(c.HexAlpha()), nil
		},
	})
}

func channelArgs(args []cty.Value, names []string) ([]uint8, error) {
	out := make([]uint8, len(args))
	for i, arg := range args {
		f := arg.AsBigFloat()
		if !f.IsInt() {
			return nil, function.NewArgErrorf(i, "%s must be a whole number", names[i])
		}
		n, _ := f.Int64()
		if n < 0 || n > 255 {
			return nil, function.NewArgErrorf(i, "%s must be between 0 and 255, got %d", names[i], n)
		}
		out[i] = uint8(n)
	}
	return out, nil
}

// EvalContext returns the evaluation context for config expressions.
func EvalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Functions: map[string]function.Function{
			"rgb":  MakeRGBFunc(),
			"argb": MakeARGBFunc(),
		},
	}
}

// FunctionNames lists the functions available in config expressions.
func FunctionNames() []string {
	return []string{"argb", "rgb"}
}
