// Package watch re-parses a lighting configuration whenever its file changes.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"keylight/internal/lighting"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Handler receives the outcome of every parse.
// Exactly one of effects or err is meaningful.
type Handler func(effects []lighting.KeyEffect, err error)

// Stats tracks watcher activity.
type Stats struct {
	Events        int
	Parses        int
	Failures      int
	Errors        int
	LastEventTime time.Time
	LastEventType string
}

// Watcher watches a single configuration file.
// The parent directory is watched rather than the file itself so that
// editors replacing the file by rename are still observed.
type Watcher struct {
	mu          sync.RWMutex
	watcher     *fsnotify.Watcher
	parser      *lighting.Parser
	handler     Handler
	logger      *zap.Logger
	path        string
	dir         string
	pending     bool
	lastEvent   time.Time
	debounceDur time.Duration
	tick        time.Duration
	stopCh      chan struct{}
	doneCh      chan struct{}
	running     bool
	closeOnce   sync.Once

	stats Stats
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period after the last change before re-parsing.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounceDur = d
		}
	}
}

// WithLogger sets the watcher's logger.
func WithLogger(l *zap.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithParser sets the parser used on every change.
func WithParser(p *lighting.Parser) Option {
	return func(w *Watcher) {
		if p != nil {
			w.parser = p
		}
	}
}

// New creates a Watcher for the configuration file at path.
func New(path string, handler Handler, opts ...Option) (*Watcher, error) {
	if handler == nil {
		return nil, fmt.Errorf("watch handler required")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		watcher:     fw,
		parser:      lighting.NewParser(),
		handler:     handler,
		logger:      zap.NewNop(),
		path:        abs,
		dir:         filepath.Dir(abs),
		debounceDur: 250 * time.Millisecond,
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.tick = w.debounceDur / 4
	if w.tick < 10*time.Millisecond {
		w.tick = 10 * time.Millisecond
	}
	return w, nil
}

// Start parses the file once, then watches it for changes.
// This method is non-blocking; the event loop runs in a goroutine.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if err := w.watcher.Add(w.dir); err != nil {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		w.closeWatcher()
		close(w.doneCh)
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}
	w.logger.Info("watching", zap.String("path", w.path))

	w.parse()

	go w.run(ctx)

	return nil
}

// Stop stops the watcher and waits for the event loop to exit.
// It is safe to call Stop on a watcher that was never started.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		w.closeWatcher()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh

	w.closeWatcher()
	w.logger.Info("stopped")
}

func (w *Watcher) closeWatcher() {
	w.closeOnce.Do(func() {
		if err := w.watcher.Close(); err != nil {
			w.logger.Error("error closing watcher", zap.Error(err))
		}
	})
}

// Done is closed once the event loop has exited.
func (w *Watcher) Done() <-chan struct{} {
	return w.doneCh
}

// Stats returns the current watcher statistics.
func (w *Watcher) Stats() Stats {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.stats
}

// IsWatching returns true if the watcher is currently running.
func (w *Watcher) IsWatching() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.running
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Debug("context cancelled")
			return

		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("watcher error", zap.Error(err))
			w.mu.Lock()
			w.stats.Errors++
			w.mu.Unlock()

		case <-ticker.C:
			w.flush()
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}

	var eventType string
	switch {
	case event.Op&fsnotify.Create != 0:
		eventType = "create"
	case event.Op&fsnotify.Write != 0:
		eventType = "modify"
	case event.Op&fsnotify.Rename != 0:
		eventType = "rename"
	case event.Op&fsnotify.Remove != 0:
		eventType = "delete"
	default:
		return
	}

	w.logger.Debug("file event", zap.String("type", eventType))

	w.mu.Lock()
	w.stats.Events++
	w.stats.LastEventTime = time.Now()
	w.stats.LastEventType = eventType
	w.pending = true
	w.lastEvent = time.Now()
	w.mu.Unlock()
}

// flush re-parses once changes have settled past the debounce window.
func (w *Watcher) flush() {
	w.mu.Lock()
	if !w.pending || time.Since(w.lastEvent) < w.debounceDur {
		w.mu.Unlock()
		return
	}
	w.pending = false
	w.mu.Unlock()

	w.parse()
}

func (w *Watcher) parse() {
	effects, err := w.parser.ParseFile(w.path)

	w.mu.Lock()
	w.stats.Parses++
	if err != nil {
		w.stats.Failures++
	}
	w.mu.Unlock()

	if err != nil {
		w.logger.Warn("parse failed", zap.Error(err))
	} else {
		w.logger.Debug("parsed", zap.Int("effects", len(effects)))
	}
	w.handler(effects, err)
}
