// Package sample produces color samples for rendering. It stands in for
// on-screen pixel picking: colors come from literal hex strings, named
// config samples or pixels of image files.
package sample

import (
	"fmt"
	"image"
	stdcolor "image/color"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/jsvensson/xcolor/internal/color"
)

// FromImage returns the pixel at (x, y) of the image file at path.
func FromImage(path string, x, y int) (color.Color, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return color.Color{}, fmt.Errorf("opening image: %w", err)
	}
	return At(img, x, y)
}

// At returns the pixel at (x, y) relative to the image's top-left corner,
// with alpha un-premultiplied.
func At(img image.Image, x, y int) (color.Color, error) {
	bounds := img.Bounds()
	px, py := bounds.Min.X+x, bounds.Min.Y+y
	if x < 0 || y < 0 || px >= bounds.Max.X || py >= bounds.Max.Y {
		return color.Color{}, fmt.Errorf("coordinates (%d,%d) outside image bounds %dx%d", x, y, bounds.Dx(), bounds.Dy())
	}

	c := stdcolor.NRGBAModel.Convert(img.At(px, py)).(stdcolor.NRGBA)
	return color.Color{A: c.A, R: c.R, G: c.G, B: c.B}, nil
}

// ParsePoint parses an "X,Y" coordinate pair.
func ParsePoint(s string) (x, y int, err error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("invalid point %q: want X,Y", s)
	}
	x, err = strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid point %q: %w", s, err)
	}
	y, err = strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid point %q: %w", s, err)
	}
	return x, y, nil
}

// Resolver turns command-line color arguments into samples: names defined
// in Named take precedence over hex parsing.
type Resolver struct {
	Named map[string]color.Color
}

// Resolve returns the sample for arg.
func (r Resolver) Resolve(arg string) (color.Color, error) {
	if c, ok := r.Named[arg]; ok {
		return c, nil
	}
	c, err := color.ParseHex(arg)
	if err != nil {
		return color.Color{}, fmt.Errorf("%q is neither a sample name nor a hex color", arg)
	}
	return c, nil
}
