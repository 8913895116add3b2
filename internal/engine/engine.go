package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"text/template"

	"github.com/jsvensson/xcolor/internal/color"
	"github.com/jsvensson/xcolor/internal/config"
)

// Engine renders Go templates against the samples of a config, using the
// config's presets and custom formats as template functions.
type Engine struct {
	TemplatesDir string
	OutputDir    string
	Files        []string // if non-empty, only render these template basenames
}

// Run loads all .tmpl files from the templates directory, executes them
// against cfg and writes one output file per template.
func (e *Engine) Run(cfg *config.Config) error {
	pattern := filepath.Join(e.TemplatesDir, "*.tmpl")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return fmt.Errorf("globbing templates: %w", err)
	}
	if len(matches) == 0 {
		return fmt.Errorf("no .tmpl files found in %s", e.TemplatesDir)
	}

	if err := os.MkdirAll(e.OutputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	data := buildTemplateData(cfg)

	for _, tmplPath := range matches {
		baseName := strings.TrimSuffix(filepath.Base(tmplPath), ".tmpl")

		if !e.shouldRender(baseName) {
			continue
		}

		if err := e.renderTemplate(tmplPath, baseName, data); err != nil {
			return err
		}
	}

	return nil
}

func (e *Engine) shouldRender(name string) bool {
	if len(e.Files) == 0 {
		return true
	}
	return slices.Contains(e.Files, name)
}

func (e *Engine) renderTemplate(tmplPath, outputName string, data templateData) error {
	tmpl, err := template.New(filepath.Base(tmplPath)).Funcs(data.FuncMap).ParseFiles(tmplPath)
	if err != nil {
		return fmt.Errorf("parsing template %s: %w", tmplPath, err)
	}

	outPath := filepath.Join(e.OutputDir, outputName)
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating output file %s: %w", outPath, err)
	}
	defer f.Close()

	if err := tmpl.Execute(f, data); err != nil {
		return fmt.Errorf("executing template %s: %w", tmplPath, err)
	}

	return nil
}

// Sample is a named color as seen by templates.
type Sample struct {
	Name  string
	Color color.Color
}

// templateData is the data passed to templates.
type templateData struct {
	Samples []Sample
	FuncMap template.FuncMap
}

func buildTemplateData(cfg *config.Config) templateData {
	var samples []Sample
	if cfg != nil {
		for name, c := range cfg.Samples {
			samples = append(samples, Sample{Name: name, Color: c})
		}
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i].Name < samples[j].Name })

	return templateData{
		Samples: samples,
		FuncMap: template.FuncMap{
			// format renders a color with a preset or custom format name:
			// {{ format "hex!" .Color }}
			"format": func(name string, c color.Color) (string, error) {
				f, err := cfg.Formatter(name)
				if err != nil {
					return "", err
				}
				return f.Render(c), nil
			},
			"sample": func(name string) (color.Color, error) {
				c, ok := cfg.Sample(name)
				if !ok {
					return color.Color{}, fmt.Errorf("sample %q not defined", name)
				}
				return c, nil
			},
			"hex": func(c color.Color) string {
				return c.Hex()
			},
			"rgb": func(c color.Color) string {
				return c.RGB()
			},
		},
	}
}
