// Package fswatch reports debounced changes to files in watched directories.
package fswatch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces the burst of events editors produce on save.
const DefaultDebounce = 150 * time.Millisecond

// MatchFunc reports whether a changed path is of interest.
type MatchFunc func(path string) bool

// Files matches the given paths exactly.
func Files(paths ...string) MatchFunc {
	set := make(map[string]bool, len(paths))
	for _, p := range paths {
		set[filepath.Clean(p)] = true
	}
	return func(path string) bool { return set[filepath.Clean(path)] }
}

// Ext matches files with the given extension, e.g. ".css".
func Ext(ext string) MatchFunc {
	return func(path string) bool { return filepath.Ext(path) == ext }
}

// Watcher watches directories rather than files so that atomic
// write-then-rename saves are seen.
type Watcher struct {
	mu       sync.RWMutex
	logger   *slog.Logger
	dirs     []string
	match    MatchFunc
	debounce time.Duration

	onChangeCallback func(path string)

	fsw    *fsnotify.Watcher
	stopCh chan struct{}
	doneCh chan struct{}

	running bool
}

// New creates a watcher for the files in dirs accepted by match. A nil
// match accepts everything.
func New(logger *slog.Logger, match MatchFunc, dirs ...string) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	if match == nil {
		match = func(string) bool { return true }
	}
	return &Watcher{
		logger:   logger,
		dirs:     dirs,
		match:    match,
		debounce: DefaultDebounce,
	}
}

// SetChangeCallback sets the callback invoked with the last changed path
// once a burst of events settles. It runs on the watcher goroutine.
func (w *Watcher) SetChangeCallback(callback func(path string)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChangeCallback = callback
}

// Start begins watching. It fails if none of the directories can be watched.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	added := 0
	for _, dir := range w.dirs {
		if err := fsw.Add(dir); err != nil {
			w.logger.Debug("cannot watch directory", "dir", dir, "error", err)
			continue
		}
		added++
	}
	if added == 0 {
		_ = fsw.Close()
		return fmt.Errorf("failed to watch any of %v", w.dirs)
	}

	w.fsw = fsw
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	w.running = true

	go w.loop(ctx, fsw, w.stopCh, w.doneCh, w.debounce)

	w.logger.Debug("file watcher started", "dirs", w.dirs)
	return nil
}

// Stop stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	close(w.stopCh)
	done := w.doneCh
	fsw := w.fsw
	w.mu.Unlock()

	<-done
	_ = fsw.Close()
	w.logger.Debug("file watcher stopped", "dirs", w.dirs)
}

// IsRunning returns whether the watcher is running.
func (w *Watcher) IsRunning() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.running
}

func (w *Watcher) loop(ctx context.Context, fsw *fsnotify.Watcher, stopCh, doneCh chan struct{}, debounce time.Duration) {
	defer close(doneCh)

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	var last string
	for {
		select {
		case <-ctx.Done():
			return
		case <-stopCh:
			return

		case ev, ok := <-fsw.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if !w.match(ev.Name) {
				continue
			}
			last = ev.Name
			timer.Reset(debounce)

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("file watcher error", "error", err)

		case <-timer.C:
			w.mu.RLock()
			callback := w.onChangeCallback
			w.mu.RUnlock()

			w.logger.Debug("file changed", "path", last)
			if callback != nil {
				callback(last)
			}
		}
	}
}
