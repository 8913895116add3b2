package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/jsvensson/xcolor/internal/color"
	"github.com/jsvensson/xcolor/internal/config"
	"github.com/jsvensson/xcolor/internal/engine"
	"github.com/jsvensson/xcolor/internal/format"
	"github.com/spf13/cobra"
)

// presetExample is rendered next to each preset in `xcolor presets`.
var presetExample = color.New(0xee, 0xee, 0xee)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List built-in presets and config formats",
	Args:  cobra.NoArgs,
	RunE:  runPresets,
}

var checkCmd = &cobra.Command{
	Use:   "check TEMPLATE...",
	Short: "Validate custom templates",
	Long:  "Parse each template and report whether it is valid. Exits non-zero if any template is invalid.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Render text templates with the config's samples",
	Args:  cobra.NoArgs,
	RunE:  runGenerate,
}

var fmtCmd = &cobra.Command{
	Use:   "fmt [files...]",
	Short: "Format xcolor config files",
	Long:  "Format one or more config files in-place. Prints the name of each file that was modified.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFmt,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version)
	},
}

func runPresets(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, name := range format.PresetNames() {
		p, _ := format.ParsePreset(name)
		fmt.Fprintf(w, "%s\t%s\n", name, p.Render(presetExample))
	}
	for _, name := range cfg.FormatNames() {
		f := cfg.Formats[name]
		fmt.Fprintf(w, "%s\t%s\t%s\n", name, f.Template.Render(presetExample), f.Description)
	}
	return w.Flush()
}

func runCheck(cmd *cobra.Command, args []string) error {
	failed := 0
	for _, raw := range args {
		tmpl, err := format.Parse(raw)
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), err)
			failed++
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "ok\t%s\t%s\n", tmpl, tmpl.Render(presetExample))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d templates invalid", failed, len(args))
	}
	return nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	e := &engine.Engine{
		TemplatesDir: flagTemplates,
		OutputDir:    flagOut,
		Files:        flagFile,
	}

	if err := e.Run(cfg); err != nil {
		return fmt.Errorf("generating: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Generated files in %s\n", flagOut)
	return nil
}

func runFmt(cmd *cobra.Command, args []string) error {
	hasErrors := false
	needsFormatting := false

	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error reading %s: %v\n", path, err)
			hasErrors = true
			continue
		}

		content := string(data)
		formatted := config.FormatSource(content)
		if formatted == content {
			continue
		}

		fmt.Fprintln(cmd.OutOrStdout(), path)
		needsFormatting = true

		if !flagCheck {
			if err := os.WriteFile(path, []byte(formatted), 0o644); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error writing %s: %v\n", path, err)
				hasErrors = true
			}
		}
	}

	if hasErrors || (flagCheck && needsFormatting) {
		os.Exit(1)
	}

	return nil
}
