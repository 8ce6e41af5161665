package main

import (
	"context"
	"fmt"
	"runtime"

	"keylight/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// checkCmd validates several files at once
var checkCmd = &cobra.Command{
	Use:   "check [file...]",
	Short: "Validate one or more configurations",
	Long: `Validates every file concurrently and reports one line per file,
in argument order. Exits non-zero if any file is invalid.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

type checkResult struct {
	keys int
	err  error
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	log := logging.For(logger, logging.CategoryCheck)
	parser := newParser()

	results := make([]checkResult, len(args))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.NumCPU())
	for i, path := range args {
		i, path := i, path
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				results[i] = checkResult{err: err}
				return nil
			}
			effects, err := parser.ParseFile(path)
			results[i] = checkResult{keys: len(effects), err: err}
			log.Debug("checked", zap.String("path", path), zap.Error(err))
			return nil
		})
	}
	_ = eg.Wait()

	out := cmd.OutOrStdout()
	failed := 0
	for i, path := range args {
		r := results[i]
		if r.err != nil {
			failed++
			fmt.Fprintf(out, "fail %s: %v\n", path, r.err)
			continue
		}
		fmt.Fprintf(out, "ok %s (%d keys)\n", path, r.keys)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files invalid", failed, len(args))
	}
	return nil
}
