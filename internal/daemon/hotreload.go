package daemon

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/jmylchreest/wayshell/internal/config"
	"github.com/jmylchreest/wayshell/internal/fswatch"
)

// ConfigWatcher watches the config file and hands validated reloads to a
// callback. Invalid files are reported and the previous config is kept.
type ConfigWatcher struct {
	mu     sync.RWMutex
	logger *slog.Logger

	configPath    string
	currentConfig *config.Config
	watcher       *fswatch.Watcher

	onReloadCallback func(newConfig *config.Config)
	onErrorCallback  func(err error)
}

// NewConfigWatcher creates a watcher for path, or the default config path
// when path is empty.
func NewConfigWatcher(path string, logger *slog.Logger) (*ConfigWatcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if path == "" {
		p, err := config.ConfigPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return &ConfigWatcher{logger: logger, configPath: path}, nil
}

// SetReloadCallback sets the callback invoked with a successfully reloaded config.
func (w *ConfigWatcher) SetReloadCallback(callback func(newConfig *config.Config)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onReloadCallback = callback
}

// SetErrorCallback sets the callback invoked when a changed file fails to load.
func (w *ConfigWatcher) SetErrorCallback(callback func(err error)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onErrorCallback = callback
}

// Start begins watching. The config directory must exist.
func (w *ConfigWatcher) Start(ctx context.Context, initialConfig *config.Config) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.watcher != nil {
		return nil
	}

	w.currentConfig = initialConfig
	fw := fswatch.New(w.logger, fswatch.Files(w.configPath), filepath.Dir(w.configPath))
	fw.SetChangeCallback(func(string) { w.reload() })
	if err := fw.Start(ctx); err != nil {
		return err
	}
	w.watcher = fw

	w.logger.Debug("config watcher started", "path", w.configPath)
	return nil
}

// Stop stops watching.
func (w *ConfigWatcher) Stop() {
	w.mu.Lock()
	fw := w.watcher
	w.watcher = nil
	w.mu.Unlock()

	if fw != nil {
		fw.Stop()
		w.logger.Debug("config watcher stopped")
	}
}

// Path returns the watched file.
func (w *ConfigWatcher) Path() string {
	return w.configPath
}

// current returns the last valid configuration.
func (w *ConfigWatcher) current() *config.Config {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.currentConfig
}

func (w *ConfigWatcher) reload() {
	w.mu.RLock()
	reloadCallback := w.onReloadCallback
	errorCallback := w.onErrorCallback
	w.mu.RUnlock()

	newConfig, err := config.LoadConfig(w.configPath)
	if err != nil {
		w.logger.Warn("config file changed but failed to load", "error", err)
		if errorCallback != nil {
			errorCallback(err)
		}
		return
	}

	w.mu.Lock()
	w.currentConfig = newConfig
	w.mu.Unlock()

	w.logger.Info("config reloaded", "path", w.configPath)
	if reloadCallback != nil {
		reloadCallback(newConfig)
	}
}
