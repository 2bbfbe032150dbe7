package display

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/wayshell/internal/theme"
)

// ThemeLoader owns the application CSS provider and keeps it in sync with the
// configured theme.
type ThemeLoader struct {
	mu        sync.RWMutex
	logger    *slog.Logger
	provider  *gtk.CSSProvider
	themesDir string
	theme     *theme.Theme
	watcher   *theme.Watcher
}

// NewThemeLoader creates a loader. Must be called on the GTK main thread.
func NewThemeLoader(logger *slog.Logger) *ThemeLoader {
	if logger == nil {
		logger = slog.Default()
	}

	dir, err := theme.ThemesDir()
	if err != nil {
		logger.Warn("failed to get themes directory", "error", err)
	}

	return &ThemeLoader{
		logger:    logger,
		provider:  gtk.NewCSSProvider(),
		themesDir: dir,
	}
}

// LoadTheme resolves name and loads it into the provider. Unknown themes
// fall back to the bundled default.
func (l *ThemeLoader) LoadTheme(name string) error {
	t, err := theme.Resolve(l.themesDir, name)
	if errors.Is(err, theme.ErrThemeNotFound) {
		l.logger.Warn("theme not found, using default", "theme", name)
		t, err = theme.Resolve("", theme.DefaultThemeName)
	}
	if err != nil {
		return err
	}

	l.mu.Lock()
	l.theme = t
	l.mu.Unlock()

	l.provider.LoadFromString(t.CSS)
	l.logger.Info("loaded theme", "name", t.Name, "path", t.Path, "bundled", t.Bundled)
	return nil
}

// Apply attaches the provider to display, or the default display if nil.
func (l *ThemeLoader) Apply(display *gdk.Display) {
	if display == nil {
		display = gdk.DisplayGetDefault()
	}
	if display == nil {
		l.logger.Warn("no display available, cannot apply theme")
		return
	}
	gtk.StyleContextAddProviderForDisplay(display, l.provider, gtk.STYLE_PROVIDER_PRIORITY_APPLICATION)
}

// ApplyColorScheme forces libadwaita to light or dark, or follows the
// system preference for "system".
func (l *ThemeLoader) ApplyColorScheme(scheme string) {
	sm := adw.StyleManagerGetDefault()
	switch scheme {
	case "dark":
		sm.SetColorScheme(adw.ColorSchemeForceDark)
	case "light":
		sm.SetColorScheme(adw.ColorSchemeForceLight)
	default:
		sm.SetColorScheme(adw.ColorSchemeDefault)
	}
	l.logger.Debug("applied color scheme", "scheme", scheme, "dark", sm.Dark())
}

// SystemDark reports whether libadwaita is currently rendering dark.
func (l *ThemeLoader) SystemDark() bool {
	return adw.StyleManagerGetDefault().Dark()
}

// StartHotReload watches the current theme and reloads the provider on the
// GTK main loop when it changes.
func (l *ThemeLoader) StartHotReload(ctx context.Context) {
	l.StopHotReload()

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.theme == nil || l.theme.Bundled {
		return
	}

	w := theme.NewWatcher(l.theme, l.logger)
	w.SetChangeCallback(func(css string) {
		glib.IdleAdd(func() {
			l.provider.LoadFromString(css)
		})
	})
	if err := w.Start(ctx); err != nil {
		l.logger.Warn("failed to start theme watcher", "error", err)
		return
	}
	l.watcher = w
}

// StopHotReload stops watching the theme.
func (l *ThemeLoader) StopHotReload() {
	l.mu.Lock()
	w := l.watcher
	l.watcher = nil
	l.mu.Unlock()

	if w != nil {
		w.Stop()
	}
}

// Theme returns the loaded theme.
func (l *ThemeLoader) Theme() *theme.Theme {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.theme
}

// ThemesDir returns the user themes directory the loader searches.
func (l *ThemeLoader) ThemesDir() string {
	return l.themesDir
}
