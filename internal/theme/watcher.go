package theme

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/jmylchreest/wayshell/internal/fswatch"
)

// Watcher reloads a file-backed theme when it or any stylesheet next to it
// changes, so edits to imported partials are picked up too.
type Watcher struct {
	mu     sync.Mutex
	logger *slog.Logger
	theme  *Theme
	fs     *fswatch.Watcher

	onChangeCallback func(css string)
}

// NewWatcher creates a watcher for theme.
func NewWatcher(theme *Theme, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{logger: logger, theme: theme}
}

// SetChangeCallback sets the callback invoked with the new CSS. It runs on
// the watcher goroutine.
func (w *Watcher) SetChangeCallback(callback func(css string)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChangeCallback = callback
}

// Start begins watching. Bundled themes have nothing to watch.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.fs != nil {
		return nil
	}
	if w.theme == nil || w.theme.Bundled {
		w.logger.Debug("not watching bundled theme")
		return nil
	}

	fs := fswatch.New(w.logger, fswatch.Ext(".css"), filepath.Dir(w.theme.Path))
	fs.SetChangeCallback(func(string) { w.reload() })
	if err := fs.Start(ctx); err != nil {
		return err
	}
	w.fs = fs
	return nil
}

// Stop stops watching.
func (w *Watcher) Stop() {
	w.mu.Lock()
	fs := w.fs
	w.fs = nil
	w.mu.Unlock()

	if fs != nil {
		fs.Stop()
	}
}

// IsRunning returns whether the watcher is running.
func (w *Watcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.fs != nil && w.fs.IsRunning()
}

func (w *Watcher) reload() {
	w.mu.Lock()
	theme := w.theme
	callback := w.onChangeCallback
	w.mu.Unlock()

	changed, err := theme.Reload()
	if err != nil {
		w.logger.Warn("failed to reload theme", "path", theme.Path, "error", err)
		return
	}
	if !changed {
		return
	}

	w.logger.Info("theme file changed, reloading", "name", theme.Name)
	if callback != nil {
		callback(theme.CSS)
	}
}
