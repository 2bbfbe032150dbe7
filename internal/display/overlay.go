package display

import (
	"path/filepath"

	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/wayshell/internal/session"
)

const iconSize = 32

// Overlay is the launcher surface: a full-screen backdrop holding a centered
// panel with the query entry and the ranked results.
type Overlay struct {
	id     session.SurfaceID
	emit   func(session.Event)
	window *gtk.Window
	panel  *gtk.Box
	entry  *gtk.Entry
	list   *gtk.Box
	rows   []gtk.Widgetter
}

func newOverlay(app *gtk.Application, id session.SurfaceID, cfg session.SurfaceConfig, emit func(session.Event)) *Overlay {
	o := &Overlay{id: id, emit: emit}
	o.window = newLayerWindow(app, cfg, nil)

	backdrop := gtk.NewBox(gtk.OrientationVertical, 0)
	backdrop.AddCSSClass("launcher-backdrop")
	backdrop.SetHExpand(true)
	backdrop.SetVExpand(true)

	o.panel = gtk.NewBox(gtk.OrientationVertical, 4)
	o.panel.AddCSSClass("launcher-panel")
	o.panel.SetHAlign(gtk.AlignCenter)
	o.panel.SetVAlign(gtk.AlignCenter)
	o.panel.SetVExpand(true)

	o.entry = gtk.NewEntry()
	o.entry.AddCSSClass("launcher-entry")
	o.entry.SetPlaceholderText("Search applications")
	o.entry.ConnectChanged(func() {
		o.emit(session.TextInput{Surface: o.id, Text: o.entry.Text()})
	})
	o.entry.ConnectActivate(func() {
		o.emit(session.Submitted{Surface: o.id})
	})
	o.panel.Append(o.entry)

	o.list = gtk.NewBox(gtk.OrientationVertical, 2)
	o.list.AddCSSClass("launcher-results")
	o.panel.Append(o.list)

	backdrop.Append(o.panel)
	o.window.SetChild(backdrop)

	o.connectInput()
	o.window.Present()
	return o
}

func (o *Overlay) connectInput() {
	// Arrows are ours even when the entry would use them.
	arrows := gtk.NewEventControllerKey()
	arrows.SetPropagationPhase(gtk.PhaseCapture)
	arrows.ConnectKeyPressed(func(keyval, keycode uint, state gdk.ModifierType) bool {
		key := keyFor(keyval)
		if key != session.KeyUp && key != session.KeyDown {
			return false
		}
		o.emit(session.KeyPressed{Surface: o.id, Key: key, Status: session.StatusCaptured})
		return true
	})
	o.window.AddController(arrows)

	// Bubble phase only sees keys no widget consumed.
	unclaimed := gtk.NewEventControllerKey()
	unclaimed.ConnectKeyPressed(func(keyval, keycode uint, state gdk.ModifierType) bool {
		if keyFor(keyval) != session.KeyEscape {
			return false
		}
		o.emit(session.KeyPressed{Surface: o.id, Key: session.KeyEscape, Status: session.StatusIgnored})
		return true
	})
	o.window.AddController(unclaimed)

	click := gtk.NewGestureClick()
	click.ConnectPressed(func(nPress int, x, y float64) {
		status := session.StatusIgnored
		if o.insidePanel(x, y) {
			status = session.StatusCaptured
		}
		o.emit(session.PointerPressed{Surface: o.id, Status: status})
	})
	o.window.AddController(click)

	o.window.NotifyProperty("is-active", func() {
		if o.window.IsActive() {
			o.emit(session.SurfaceFocused{Surface: o.id})
		}
	})
}

func (o *Overlay) insidePanel(x, y float64) bool {
	bounds, ok := o.panel.ComputeBounds(o.window)
	if !ok {
		return false
	}
	return contains(float64(bounds.X()), float64(bounds.Y()), float64(bounds.Width()), float64(bounds.Height()), x, y)
}

// Focus gives the query entry keyboard focus.
func (o *Overlay) Focus(field string) {
	if field == session.LauncherField {
		o.entry.GrabFocus()
	}
}

// Render shows view. The entry text is only replaced when it differs, so
// rendering never feeds back into another TextInput.
func (o *Overlay) Render(view session.OverlayView) {
	if o.entry.Text() != view.Query {
		o.entry.SetText(view.Query)
		o.entry.SetPosition(-1)
	}

	for _, row := range o.rows {
		o.list.Remove(row)
	}
	o.rows = o.rows[:0]

	if len(view.Items) == 0 {
		if view.Query != "" {
			empty := gtk.NewLabel("No matching applications")
			empty.AddCSSClass("launcher-empty")
			empty.SetXAlign(0)
			o.list.Append(empty)
			o.rows = append(o.rows, empty)
		}
		return
	}

	for i, item := range view.Items {
		row := buildResultRow(item, i == view.Selected)
		o.list.Append(row)
		o.rows = append(o.rows, row)
	}
}

func buildResultRow(item session.ViewItem, selected bool) *gtk.Box {
	row := gtk.NewBox(gtk.OrientationHorizontal, 10)
	row.AddCSSClass("launcher-item")
	if selected {
		row.AddCSSClass("selected")
	}

	icon := gtk.NewImage()
	icon.SetPixelSize(iconSize)
	switch {
	case item.Icon == "":
		icon.SetFromIconName("application-x-executable")
	case filepath.IsAbs(item.Icon):
		icon.SetFromFile(item.Icon)
	default:
		icon.SetFromIconName(item.Icon)
	}
	row.Append(icon)

	text := gtk.NewBox(gtk.OrientationVertical, 0)
	name := gtk.NewLabel(item.Name)
	name.AddCSSClass("launcher-item-name")
	name.SetXAlign(0)
	name.SetEllipsize(3) // PANGO_ELLIPSIZE_END
	text.Append(name)

	if item.Comment != "" {
		comment := gtk.NewLabel(item.Comment)
		comment.AddCSSClass("launcher-item-comment")
		comment.SetXAlign(0)
		comment.SetEllipsize(3)
		comment.SetMaxWidthChars(60)
		text.Append(comment)
	}
	row.Append(text)
	return row
}

// Close destroys the overlay window.
func (o *Overlay) Close() {
	o.window.Destroy()
}

func keyFor(keyval uint) session.Key {
	switch keyval {
	case gdk.KEY_Escape:
		return session.KeyEscape
	case gdk.KEY_Up, gdk.KEY_KP_Up:
		return session.KeyUp
	case gdk.KEY_Down, gdk.KEY_KP_Down:
		return session.KeyDown
	default:
		return session.KeyOther
	}
}

func contains(bx, by, bw, bh, x, y float64) bool {
	return x >= bx && x < bx+bw && y >= by && y < by+bh
}
