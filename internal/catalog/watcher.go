// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package catalog

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/jeranaias/rigrun-overlay/internal/logging"
)

// =============================================================================
// RELOAD MESSAGE
// =============================================================================

// Reload is delivered after the catalog file changes. Err is set when the new
// file could not be read or validated; the live widgets are then left alone.
type Reload struct {
	Path    string
	Catalog *Catalog
	Err     error
}

// =============================================================================
// WATCHER
// =============================================================================

// Watcher reloads a catalog file when it changes. It watches the parent
// directory so editors that save by rename are seen, and falls back to
// polling the modification time when fsnotify is unavailable.
type Watcher struct {
	path     string
	debounce time.Duration
	poll     time.Duration
	log      *slog.Logger

	// limiter caps reloads when an editor or generator rewrites the file
	// continuously; a change it refuses stays pending.
	limiter *rate.Limiter

	watcher *fsnotify.Watcher
	reloads chan Reload

	mu      sync.Mutex
	pending time.Time
	modTime time.Time

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets how long the file must be quiet before it is reloaded.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) { w.debounce = d }
}

// WithPollInterval sets the polling fallback interval.
func WithPollInterval(d time.Duration) WatcherOption {
	return func(w *Watcher) { w.poll = d }
}

// WithReloadLimit allows at most one reload per interval.
func WithReloadLimit(every time.Duration) WatcherOption {
	return func(w *Watcher) { w.limiter = rate.NewLimiter(rate.Every(every), 1) }
}

// WithWatchLogger sets the logger.
func WithWatchLogger(l *slog.Logger) WatcherOption {
	return func(w *Watcher) { w.log = l }
}

// NewWatcher creates a watcher for the catalog at path. Call Watch to start
// it.
func NewWatcher(path string, opts ...WatcherOption) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		path:     filepath.Clean(path),
		debounce: 150 * time.Millisecond,
		poll:     2 * time.Second,
		log:      logging.Discard(),
		limiter:  rate.NewLimiter(rate.Every(500*time.Millisecond), 1),
		reloads:  make(chan Reload, 1),
		ctx:      ctx,
		cancel:   cancel,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Watch starts watching. It never fails on a missing fsnotify backend; the
// polling fallback is used instead.
func (w *Watcher) Watch() error {
	if info, err := os.Stat(w.path); err == nil {
		w.modTime = info.ModTime()
	}

	fw, err := fsnotify.NewWatcher()
	if err == nil {
		if err = fw.Add(filepath.Dir(w.path)); err == nil {
			w.watcher = fw
			w.wg.Add(2)
			go w.processEvents()
			go w.processPending()
			return nil
		}
		fw.Close()
	}

	w.log.Warn("catalog watcher falling back to polling", "path", w.path, "error", err)
	w.wg.Add(1)
	go w.pollLoop()
	return nil
}

// Reloads delivers reload results. The channel holds the latest result only.
func (w *Watcher) Reloads() <-chan Reload { return w.reloads }

// Next returns a command that waits for the next reload. Re-issue it from
// Update after each Reload message.
func (w *Watcher) Next() tea.Cmd {
	return func() tea.Msg {
		select {
		case r := <-w.reloads:
			return r
		case <-w.ctx.Done():
			return nil
		}
	}
}

// Close stops watching and releases resources.
func (w *Watcher) Close() error {
	w.cancel()
	var err error
	if w.watcher != nil {
		err = w.watcher.Close()
	}
	w.wg.Wait()
	return err
}

// processEvents marks the catalog pending on any event for its file.
func (w *Watcher) processEvents() {
	defer w.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			w.log.Error("catalog watcher panic", "panic", r)
		}
	}()

	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			w.mu.Lock()
			w.pending = time.Now()
			w.mu.Unlock()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("catalog watcher error", "error", err)
		}
	}
}

// processPending reloads once the file has been quiet for the debounce
// period.
func (w *Watcher) processPending() {
	defer w.wg.Done()
	tick := w.debounce / 3
	if tick <= 0 {
		tick = 10 * time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return

		case <-ticker.C:
			w.mu.Lock()
			due := !w.pending.IsZero() && time.Since(w.pending) >= w.debounce && w.limiter.Allow()
			if due {
				w.pending = time.Time{}
			}
			w.mu.Unlock()

			if due {
				w.reload()
			}
		}
	}
}

// pollLoop reloads when the file's modification time changes.
func (w *Watcher) pollLoop() {
	defer w.wg.Done()
	ticker := time.NewTicker(w.poll)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return

		case <-ticker.C:
			info, err := os.Stat(w.path)
			if err != nil {
				continue
			}
			w.mu.Lock()
			changed := !info.ModTime().Equal(w.modTime)
			w.modTime = info.ModTime()
			w.mu.Unlock()
			if changed {
				w.reload()
			}
		}
	}
}

// reload parses the file and publishes the result, replacing any result the
// consumer has not picked up yet.
func (w *Watcher) reload() {
	if _, err := os.Stat(w.path); os.IsNotExist(err) {
		// Mid-rename; the following Create schedules another reload.
		return
	}

	c, err := Load(w.path)
	r := Reload{Path: w.path, Catalog: c, Err: err}
	if err != nil {
		w.log.Warn("catalog reload failed", "path", w.path, "error", err)
	} else {
		w.log.Info("catalog reloaded", "path", w.path, "menus", len(c.Menus), "dropdowns", len(c.Dropdowns))
	}

	select {
	case <-w.reloads:
	default:
	}
	select {
	case w.reloads <- r:
	case <-w.ctx.Done():
	}
}
