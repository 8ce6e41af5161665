package main

import (
	"keylight/internal/logging"
	"keylight/internal/render"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// parseCmd parses one file and prints the result
var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a configuration and print every key's effect",
	Long: `Parses the configuration file and prints one line per key:

  <key>, static, <color>
  <key>, wave, [<color>-<color>-...]
  <key>, disco, <color>, <color>, <color>

Use --format json|yaml for structured output, or --format config to
re-emit a canonical configuration.`,
	Args: requireFile,
	RunE: runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	opts, err := renderOptions()
	if err != nil {
		return err
	}

	path := args[0]
	effects, err := newParser().ParseFile(path)
	if err != nil {
		return err
	}

	logging.For(logger, logging.CategoryRender).Debug("rendering",
		zap.String("path", path),
		zap.Int("effects", len(effects)),
		zap.String("format", string(opts.Format)))
	return render.Write(cmd.OutOrStdout(), effects, opts)
}
