package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/jsvensson/xcolor/internal/color"
	"github.com/jsvensson/xcolor/internal/config"
	"github.com/jsvensson/xcolor/internal/format"
	"github.com/jsvensson/xcolor/internal/sample"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

var (
	flagFormat    string
	flagCustom    string
	flagConfig    string
	flagImage     string
	flagAt        string
	flagVerbose   int
	flagOut       string
	flagTemplates string
	flagFile      []string
	flagCheck     bool
	version       = "dev" // Injected at build time via ldflags
)

var log = commonlog.GetLogger("xcolor")

var rootCmd = &cobra.Command{
	Use:   "xcolor [flags] [COLOR...]",
	Short: "Render colors as text using presets or custom templates",
	Long: `Render colors as text using presets or custom templates.

Colors are read from the arguments (hex values or sample names from the
config file), from one pixel of an image (--image, --at), or one per line
from standard input.

Custom templates expand %{[pad][base]channel}: channel is r, g or b; base
is h (hex), H (upper hex), o (octal), B (binary) or d (decimal, default);
pad is a fill character followed by a width. %% is a literal percent sign.`,
	Example: `  xcolor '#eb6f92'
  xcolor -f rgb love
  xcolor -c '#%{02hr}%{02hg}%{02hb}' --image shot.png --at 10,20`,
	Args:              cobra.ArbitraryArgs,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              runRender,
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&flagVerbose, "verbose", "v", "increase log verbosity (can be repeated)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file (default $XDG_CONFIG_HOME/xcolor/config.hcl)")

	rootCmd.Flags().StringVarP(&flagFormat, "format", "f", "", "output format: a preset ("+strings.Join(format.PresetNames(), ", ")+") or a config format name")
	rootCmd.Flags().StringVarP(&flagCustom, "custom", "c", "", "custom output template")
	rootCmd.Flags().StringVar(&flagImage, "image", "", "sample a pixel from this image file")
	rootCmd.Flags().StringVar(&flagAt, "at", "0,0", "pixel coordinates X,Y for --image")
	rootCmd.MarkFlagsMutuallyExclusive("format", "custom")

	generateCmd.Flags().StringVar(&flagOut, "out", "output", "output directory")
	generateCmd.Flags().StringVar(&flagTemplates, "templates", "templates", "templates directory")
	generateCmd.Flags().StringArrayVar(&flagFile, "file", nil, "generate only specific files (can be repeated)")
	fmtCmd.Flags().BoolVar(&flagCheck, "check", false, "check if files are formatted (do not write changes)")

	rootCmd.AddCommand(presetsCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(versionCmd)
}

func setup(cmd *cobra.Command, args []string) error {
	commonlog.Configure(flagVerbose, nil)
	return nil
}

// loadConfig loads the config file. A missing file at the default location
// is not an error and yields a nil Config.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path := flagConfig
	explicit := cmd.Flags().Changed("config")
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			log.Debugf("no default config path: %s", err)
			return nil, nil
		}
		path = p
	}

	cfg, err := config.Load(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			log.Debugf("no config file at %s", path)
			return nil, nil
		}
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}
	log.Infof("loaded config %s (%d formats, %d samples)", path, len(cfg.Formats), len(cfg.Samples))
	return cfg, nil
}

// resolveFormatter picks the custom template when one was given, even an
// empty one, then the named format, then the config default.
func resolveFormatter(cfg *config.Config, customSet bool) (format.Formatter, error) {
	switch {
	case customSet:
		tmpl, err := format.Parse(flagCustom)
		if err != nil {
			return format.Formatter{}, err
		}
		return format.TemplateFormatter(tmpl), nil
	case flagFormat != "":
		return cfg.Formatter(flagFormat)
	}
	return cfg.DefaultFormatter()
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	f, err := resolveFormatter(cfg, cmd.Flags().Changed("custom"))
	if err != nil {
		return err
	}
	log.Infof("formatter: %s", f)

	samples, err := collectSamples(cmd.InOrStdin(), cfg, args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, c := range samples {
		fmt.Fprintln(out, f.Render(c))
	}
	return nil
}

// collectSamples gathers the colors to render from the image flag, the
// arguments, or standard input, in that order of preference.
func collectSamples(stdin io.Reader, cfg *config.Config, args []string) ([]color.Color, error) {
	if flagImage != "" {
		if len(args) > 0 {
			return nil, fmt.Errorf("--image cannot be combined with color arguments")
		}
		x, y, err := sample.ParsePoint(flagAt)
		if err != nil {
			return nil, err
		}
		log.Infof("sampling %s at %d,%d", flagImage, x, y)
		c, err := sample.FromImage(flagImage, x, y)
		if err != nil {
			return nil, err
		}
		return []color.Color{c}, nil
	}

	var resolver sample.Resolver
	if cfg != nil {
		resolver.Named = cfg.Samples
	}

	if len(args) > 0 {
		return resolveAll(resolver, args)
	}

	log.Debugf("reading colors from standard input")
	var lines []string
	scanner := bufio.NewScanner(stdin)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading standard input: %w", err)
	}
	return resolveAll(resolver, lines)
}

func resolveAll(r sample.Resolver, args []string) ([]color.Color, error) {
	colors := make([]color.Color, 0, len(args))
	for _, arg := range args {
		c, err := r.Resolve(arg)
		if err != nil {
			return nil, err
		}
		colors = append(colors, c)
	}
	return colors, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
