package main

import (
	"context"
	"fmt"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"keylight/internal/lighting"
	"keylight/internal/logging"
	"keylight/internal/render"
	"keylight/internal/watch"

	"github.com/spf13/cobra"
)

// watchCmd re-prints the result whenever the file changes
var watchCmd = &cobra.Command{
	Use:   "watch [file]",
	Short: "Re-parse a configuration every time it changes",
	Long: `Parses the file, prints the result, then keeps watching it and prints
the new result (or the error) after every change. Stop with Ctrl+C.`,
	Args: requireFile,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	opts, err := renderOptions()
	if err != nil {
		return err
	}

	base := cmd.Context()
	if base == nil {
		base = context.Background()
	}
	ctx, stop := signal.NotifyContext(base, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	path := args[0]
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	var mu sync.Mutex

	handler := func(effects []lighting.KeyEffect, err error) {
		mu.Lock()
		defer mu.Unlock()
		stamp := time.Now().Format("15:04:05")
		if err != nil {
			fmt.Fprintf(errOut, "[%s] Error: %v\n", stamp, err)
			return
		}
		fmt.Fprintf(out, "[%s] %s (%d keys)\n", stamp, path, len(effects))
		if err := render.Write(out, effects, opts); err != nil {
			fmt.Fprintf(errOut, "[%s] Error: %v\n", stamp, err)
		}
	}

	w, err := watch.New(path, handler,
		watch.WithDebounce(settings().GetDebounce()),
		watch.WithParser(newParser()),
		watch.WithLogger(logging.For(logger, logging.CategoryWatch)))
	if err != nil {
		return err
	}
	if err := w.Start(ctx); err != nil {
		w.Stop()
		return err
	}

	select {
	case <-ctx.Done():
	case <-w.Done():
	}
	w.Stop()
	return nil
}
