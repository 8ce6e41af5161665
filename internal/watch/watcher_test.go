package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"keylight/internal/lighting"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type result struct {
	effects []lighting.KeyEffect
	err     error
}

func collect(ch chan<- result) Handler {
	return func(effects []lighting.KeyEffect, err error) {
		ch <- result{effects: effects, err: err}
	}
}

// waitFor reads results until match accepts one or the deadline passes.
func waitFor(t *testing.T, ch <-chan result, match func(result) bool) result {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case r := <-ch:
			if match(r) {
				return r
			}
		case <-deadline:
			t.Fatal("timed out waiting for parse result")
			return result{}
		}
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestWatcher_ReparsesOnChange(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "keys.cfg")
	writeFile(t, path, "a\nstatic\nred\n")

	results := make(chan result, 16)
	w, err := New(path, collect(results), WithDebounce(20*time.Millisecond))
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	initial := waitFor(t, results, func(result) bool { return true })
	require.NoError(t, initial.err)
	assert.Equal(t, []lighting.KeyEffect{lighting.Static{Key: "a", Color: lighting.Red}}, initial.effects)
	assert.True(t, w.IsWatching())

	writeFile(t, path, "a,b\ndisco\nred,blue,green\n")
	changed := waitFor(t, results, func(r result) bool { return r.err == nil && len(r.effects) == 2 })
	assert.Equal(t, "b", changed.effects[1].Code())

	writeFile(t, path, "a\nrainbow\nred\n")
	failed := waitFor(t, results, func(r result) bool { return r.err != nil })
	assert.True(t, errors.Is(failed.err, lighting.ErrUnknownEffect))

	stats := w.Stats()
	assert.GreaterOrEqual(t, stats.Parses, 3)
	assert.GreaterOrEqual(t, stats.Failures, 1)
	assert.GreaterOrEqual(t, stats.Events, 2)
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "keys.cfg")
	writeFile(t, path, "a\nwave\n\n")

	results := make(chan result, 16)
	w, err := New(path, collect(results), WithDebounce(20*time.Millisecond))
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))

	waitFor(t, results, func(result) bool { return true })

	writeFile(t, filepath.Join(dir, "other.cfg"), "noise")
	time.Sleep(200 * time.Millisecond)

	w.Stop()
	assert.Equal(t, 1, w.Stats().Parses)
	assert.Equal(t, 0, w.Stats().Events)
	assert.False(t, w.IsWatching())
}

func TestWatcher_ContextCancelStopsLoop(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "keys.cfg")
	writeFile(t, path, "")

	ctx, cancel := context.WithCancel(context.Background())
	w, err := New(path, func([]lighting.KeyEffect, error) {})
	require.NoError(t, err)
	require.NoError(t, w.Start(ctx))

	cancel()
	select {
	case <-w.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("event loop did not exit after cancel")
	}
	w.Stop()
}

func TestWatcher_StartFailsForMissingDirectory(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "missing", "keys.cfg")
	w, err := New(path, func([]lighting.KeyEffect, error) {})
	require.NoError(t, err)

	assert.Error(t, w.Start(context.Background()))
	assert.False(t, w.IsWatching())
	w.Stop()
}

func TestWatcher_StopWithoutStart(t *testing.T) {
	defer goleak.VerifyNone(t)

	w, err := New(filepath.Join(t.TempDir(), "keys.cfg"), func([]lighting.KeyEffect, error) {})
	require.NoError(t, err)
	w.Stop()
}

func TestNew_RequiresHandler(t *testing.T) {
	_, err := New("keys.cfg", nil)
	assert.Error(t, err)
}
