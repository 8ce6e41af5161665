package main

import (
	"errors"
	"fmt"
	"os"

	"keylight/internal/config"
	"keylight/internal/lighting"
	"keylight/internal/logging"
	"keylight/internal/render"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	verbose    bool
	configPath string
	format     string
	color      bool

	// Resolved configuration
	cfg *config.Config

	// Logger
	logger *zap.Logger
)

// errNoInput mirrors the message printed when no configuration file is given.
var errNoInput = errors.New("please provide an input file as argument")

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "keylight [file]",
	Short: "Validate keyboard lighting configurations",
	Long: `keylight parses a per-key lighting configuration and prints the
resulting effect of every key, sorted by key code.

A configuration is a sequence of three-line declarations:

  a,b,c              keys (letters only)
  disco              effect: static | wave | disco
  red,blue,green     colors: green, blue, red, yellow, orange

Static takes exactly one color, disco exactly three, wave any number.
A key declared again further down overrides the earlier declaration.`,
	Args:              requireFile,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runParse,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigPath(), "Path to keylight.yaml (or set KEYLIGHT_CONFIG env)")
	rootCmd.PersistentFlags().StringVarP(&format, "format", "f", "", "Output format: text, json, yaml, config (default from config)")
	rootCmd.PersistentFlags().BoolVar(&color, "color", false, "Colorize color names in text output")

	rootCmd.AddCommand(parseCmd, checkCmd, watchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func defaultConfigPath() string {
	if p := os.Getenv("KEYLIGHT_CONFIG"); p != "" {
		return p
	}
	return config.DefaultPath
}

// requireFile accepts exactly one configuration file argument.
func requireFile(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return errNoInput
	}
	return nil
}

// setup loads configuration, applies flag overrides and builds the logger.
func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		loaded.Output.Format = format
	}
	if flags.Changed("color") {
		loaded.Output.Color = color
	}
	if err := loaded.Validate(); err != nil {
		return fmt.Errorf("invalid configuration %s: %w", configPath, err)
	}

	root, err := logging.New(loaded.Logging, verbose)
	if err != nil {
		return err
	}
	root, runID := logging.WithRun(root)

	cfg = loaded
	logger = root
	logging.For(logger, logging.CategoryBoot).Debug("configuration loaded",
		zap.String("config", configPath),
		zap.String("run", runID),
		zap.String("format", cfg.Output.Format))
	return nil
}

// settings returns the active configuration, falling back to defaults.
func settings() *config.Config {
	if cfg == nil {
		return config.DefaultConfig()
	}
	return cfg
}

func newParser() *lighting.Parser {
	return lighting.NewParser(lighting.WithLogger(logging.For(logger, logging.CategoryParser)))
}

func renderOptions() (render.Options, error) {
	s := settings()
	f, err := render.ParseFormat(s.Output.Format)
	if err != nil {
		return render.Options{}, err
	}
	return render.Options{Format: f, Color: s.Output.Color}, nil
}
