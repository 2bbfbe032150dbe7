package display

import (
	"fmt"
	"log/slog"

	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/wayshell/internal/hyprland"
	"github.com/jmylchreest/wayshell/internal/session"
)

// Host owns the shell's windows. It knows nothing about ranking or
// lifecycle rules; it creates what it is asked to and reports input.
type Host struct {
	app     *gtk.Application
	logger  *slog.Logger
	emit    func(session.Event)
	display *gdk.Display
	opts    BarOptions
	scheme  string

	bar     *Bar
	overlay *Overlay
}

// NewHost creates a host. emit receives widget input and must not block for
// long, since it runs on the GTK main thread.
func NewHost(app *gtk.Application, opts BarOptions, emit func(session.Event), logger *slog.Logger) *Host {
	if logger == nil {
		logger = slog.Default()
	}
	return &Host{
		app:    app,
		logger: logger,
		emit:   emit,
		opts:   opts,
	}
}

// Start binds the host to the default display.
func (h *Host) Start() error {
	h.display = gdk.DisplayGetDefault()
	if h.display == nil {
		return &DisplayError{Message: "no display available"}
	}
	h.logger.Info("display host started")
	return nil
}

// Stop destroys every surface.
func (h *Host) Stop() {
	if h.overlay != nil {
		h.overlay.Close()
		h.overlay = nil
	}
	if h.bar != nil {
		h.bar.Close()
		h.bar = nil
	}
	h.logger.Info("display host stopped")
}

// SetBarOptions applies reloaded bar settings.
func (h *Host) SetBarOptions(opts BarOptions) {
	h.opts = opts
	if h.bar != nil {
		h.bar.SetOptions(opts)
	}
}

// CreateSurface creates the bar or the overlay.
func (h *Host) CreateSurface(req session.CreateSurface) error {
	switch req.Role {
	case session.RoleBar:
		if h.bar != nil {
			h.bar.Close()
		}
		h.bar = newBar(h.app, h.display, req.ID, req.Config, h.opts, h.emit)
	case session.RoleOverlay:
		if h.overlay != nil {
			h.logger.Warn("replacing live overlay", "old", h.overlay.id, "new", req.ID)
			h.overlay.Close()
		}
		h.overlay = newOverlay(h.app, req.ID, req.Config, h.emit)
	default:
		return &DisplayError{Message: fmt.Sprintf("cannot create surface with role %s", req.Role)}
	}
	h.applyScheme()

	h.logger.Debug("created surface",
		"surface", req.ID,
		"role", req.Role,
		"layer", req.Config.Layer,
		"anchor", req.Config.Anchor,
		"output", req.Config.Output,
	)
	return nil
}

// DestroySurface tears down the surface with id. Unknown ids are ignored.
func (h *Host) DestroySurface(id session.SurfaceID) {
	switch {
	case h.overlay != nil && h.overlay.id == id:
		h.overlay.Close()
		h.overlay = nil
	case h.bar != nil && h.bar.id == id:
		h.bar.Close()
		h.bar = nil
	default:
		h.logger.Debug("destroy for unknown surface", "surface", id)
		return
	}
	h.logger.Debug("destroyed surface", "surface", id)
}

// FocusInput focuses a named field on the overlay.
func (h *Host) FocusInput(req session.FocusInput) error {
	if h.overlay == nil || h.overlay.id != req.Surface {
		return &DisplayError{Message: fmt.Sprintf("no overlay with id %d", req.Surface)}
	}
	h.overlay.Focus(req.Field)
	return nil
}

// RenderOverlay redraws the launcher.
func (h *Host) RenderOverlay(req session.RenderOverlay) error {
	if h.overlay == nil || h.overlay.id != req.Surface {
		return &DisplayError{Message: fmt.Sprintf("no overlay with id %d", req.Surface)}
	}
	h.overlay.Render(req.View)
	return nil
}

// RenderBar redraws the bar. workspaces is nil when the list is unchanged.
func (h *Host) RenderBar(req session.RenderBar, workspaces []hyprland.Workspace) error {
	if h.bar == nil || h.bar.id != req.Surface {
		return &DisplayError{Message: fmt.Sprintf("no bar with id %d", req.Surface)}
	}
	h.bar.Render(req, workspaces)
	return nil
}

// SetColorScheme tags every window with class, "light" or "dark", so themes
// can style both variants. New windows get the same class.
func (h *Host) SetColorScheme(class string) {
	h.scheme = class
	h.applyScheme()
}

func (h *Host) applyScheme() {
	var windows []*gtk.Window
	if h.bar != nil {
		for _, bw := range h.bar.windows {
			windows = append(windows, bw.window)
		}
	}
	if h.overlay != nil {
		windows = append(windows, h.overlay.window)
	}
	for _, w := range windows {
		for _, c := range []string{"light", "dark"} {
			if c != h.scheme {
				w.RemoveCSSClass(c)
			}
		}
		if h.scheme != "" {
			w.AddCSSClass(h.scheme)
		}
	}
}
