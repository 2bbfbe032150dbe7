package display

import (
	"unsafe"

	layershell "github.com/diamondburned/gotk4-layer-shell/pkg/gtk4layershell"
	"github.com/diamondburned/gotk4/pkg/core/glib"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/wayshell/internal/session"
)

// newLayerWindow creates an undecorated window and configures it as a
// layer surface. A nil monitor leaves output selection to the compositor,
// which places the surface on the focused output.
func newLayerWindow(app *gtk.Application, cfg session.SurfaceConfig, monitor *gdk.Monitor) *gtk.Window {
	w := gtk.NewWindow()
	w.SetApplication(app)
	w.SetDecorated(false)
	w.SetResizable(false)
	if cfg.Height > 0 {
		w.SetDefaultSize(-1, cfg.Height)
		w.SetSizeRequest(-1, cfg.Height)
	}

	layershell.InitForWindow(w)
	layershell.SetNamespace(w, cfg.Namespace)

	if cfg.Layer == session.LayerTop {
		layershell.SetLayer(w, layershell.LayerShellLayerTop)
	} else {
		layershell.SetLayer(w, layershell.LayerShellLayerBottom)
	}

	layershell.SetAnchor(w, layershell.LayerShellEdgeTop, true)
	layershell.SetAnchor(w, layershell.LayerShellEdgeLeft, true)
	layershell.SetAnchor(w, layershell.LayerShellEdgeRight, true)
	layershell.SetAnchor(w, layershell.LayerShellEdgeBottom, cfg.Anchor == session.AnchorAll)

	layershell.SetExclusiveZone(w, cfg.ExclusiveZone)

	if cfg.ExclusiveKeyboard {
		layershell.SetKeyboardMode(w, layershell.LayerShellKeyboardModeExclusive)
	} else {
		layershell.SetKeyboardMode(w, layershell.LayerShellKeyboardModeNone)
	}

	if monitor != nil {
		layershell.SetMonitor(w, monitor)
	}
	return w
}

// targetMonitors returns the monitors a surface should be created on. For
// OutputActive it returns a single nil entry so the compositor decides.
func targetMonitors(display *gdk.Display, output session.Output) []*gdk.Monitor {
	if output != session.OutputAll || display == nil {
		return []*gdk.Monitor{nil}
	}

	list := display.Monitors()
	if list == nil || list.NItems() == 0 {
		return []*gdk.Monitor{nil}
	}

	monitors := make([]*gdk.Monitor, 0, list.NItems())
	for i := uint(0); i < list.NItems(); i++ {
		if m := wrapMonitor(list.Item(i)); m != nil {
			monitors = append(monitors, m)
		}
	}
	if len(monitors) == 0 {
		return []*gdk.Monitor{nil}
	}
	return monitors
}

// wrapMonitor wraps a list item as a gdk.Monitor. gotk4 does not export
// its own wrapper, so this mirrors the struct layout it uses internally.
func wrapMonitor(obj *glib.Object) *gdk.Monitor {
	if obj == nil {
		return nil
	}
	type monitor struct {
		_ [0]func()
		*glib.Object
	}
	m := &monitor{Object: obj}
	return (*gdk.Monitor)(unsafe.Pointer(m))
}
