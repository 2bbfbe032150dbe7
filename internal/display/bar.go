package display

import (
	"slices"
	"strconv"
	"time"

	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/wayshell/internal/hyprland"
	"github.com/jmylchreest/wayshell/internal/session"
)

// Button is an extra bar button that launches a command.
type Button struct {
	Label   string
	Command string
}

// BarOptions controls what the bar shows.
type BarOptions struct {
	ClockFormat    string
	ShowWorkspaces bool
	Buttons        []Button
}

// Bar is the status bar surface. It has one window per monitor; all of them
// share the same session surface id.
type Bar struct {
	id      session.SurfaceID
	emit    func(session.Event)
	opts    BarOptions
	windows []*barWindow

	workspaces []hyprland.Workspace
	active     int
	drawnKey   string
}

type barWindow struct {
	window     *gtk.Window
	workspaces *gtk.Box
	buttons    []*gtk.Button
	title      *gtk.Label
	clock      *gtk.Label
}

func newBar(app *gtk.Application, display *gdk.Display, id session.SurfaceID, cfg session.SurfaceConfig, opts BarOptions, emit func(session.Event)) *Bar {
	b := &Bar{id: id, emit: emit, opts: opts, active: -1}
	for _, m := range targetMonitors(display, cfg.Output) {
		b.windows = append(b.windows, b.buildWindow(app, cfg, m, opts))
	}
	return b
}

func (b *Bar) buildWindow(app *gtk.Application, cfg session.SurfaceConfig, monitor *gdk.Monitor, opts BarOptions) *barWindow {
	bw := &barWindow{window: newLayerWindow(app, cfg, monitor)}

	row := gtk.NewBox(gtk.OrientationHorizontal, 10)
	row.AddCSSClass("wayshell-bar")
	row.SetVAlign(gtk.AlignFill)

	bw.workspaces = gtk.NewBox(gtk.OrientationHorizontal, 0)
	bw.workspaces.AddCSSClass("bar-workspaces")
	bw.workspaces.SetVisible(opts.ShowWorkspaces)
	row.Append(bw.workspaces)

	bw.title = gtk.NewLabel("")
	bw.title.AddCSSClass("bar-title")
	bw.title.SetHExpand(true)
	row.Append(bw.title)

	for _, btn := range opts.Buttons {
		command := btn.Command
		gb := gtk.NewButtonWithLabel(btn.Label)
		gb.AddCSSClass("bar-button")
		gb.SetTooltipText(command)
		gb.ConnectClicked(func() {
			b.emit(session.LaunchRequested{Command: command})
		})
		row.Append(gb)
	}

	bw.clock = gtk.NewLabel("")
	bw.clock.AddCSSClass("bar-clock")
	row.Append(bw.clock)

	bw.window.SetChild(row)
	bw.window.Present()
	return bw
}

// Render redraws the clock and, when the workspace list or the active
// workspace changed, the workspace buttons. A nil workspaces keeps the
// previous list.
func (b *Bar) Render(req session.RenderBar, workspaces []hyprland.Workspace) {
	if workspaces != nil {
		b.workspaces = sortWorkspaces(workspaces)
	}
	b.active = req.ActiveWorkspace

	clock := formatClock(req.At, b.opts.ClockFormat)
	title := activeTitle(b.workspaces, b.active)
	key := workspaceKey(b.workspaces, b.active)

	for _, bw := range b.windows {
		if bw.clock.Text() != clock {
			bw.clock.SetText(clock)
		}
		if bw.title.Text() != title {
			bw.title.SetText(title)
		}
		if key != b.drawnKey {
			b.drawWorkspaces(bw)
		}
	}
	b.drawnKey = key
}

func (b *Bar) drawWorkspaces(bw *barWindow) {
	for _, btn := range bw.buttons {
		bw.workspaces.Remove(btn)
	}
	bw.buttons = bw.buttons[:0]

	for _, ws := range b.workspaces {
		target := ws
		btn := gtk.NewButtonWithLabel(workspaceLabel(ws))
		btn.AddCSSClass("workspace-button")
		if ws.ID == b.active {
			btn.AddCSSClass("active")
			btn.SetSensitive(false)
		}
		btn.ConnectClicked(func() {
			b.emit(session.WorkspaceRequested{ID: target.ID, Name: target.Name})
		})
		bw.workspaces.Append(btn)
		bw.buttons = append(bw.buttons, btn)
	}
}

// SetOptions applies new clock and workspace settings. Button changes take
// effect the next time the bar is created.
func (b *Bar) SetOptions(opts BarOptions) {
	b.opts.ClockFormat = opts.ClockFormat
	b.opts.ShowWorkspaces = opts.ShowWorkspaces
	for _, bw := range b.windows {
		bw.workspaces.SetVisible(opts.ShowWorkspaces)
	}
}

// Close destroys every bar window.
func (b *Bar) Close() {
	for _, bw := range b.windows {
		bw.window.Destroy()
	}
	b.windows = nil
}

// workspaceLabel returns the button text, falling back to the id for
// unnamed workspaces.
func workspaceLabel(w hyprland.Workspace) string {
	if w.Name != "" {
		return w.Name
	}
	return strconv.Itoa(w.ID)
}

func formatClock(at time.Time, layout string) string {
	if at.IsZero() {
		at = time.Now()
	}
	if layout == "" {
		layout = time.DateTime
	}
	return at.Format(layout)
}

func sortWorkspaces(ws []hyprland.Workspace) []hyprland.Workspace {
	out := slices.Clone(ws)
	slices.SortStableFunc(out, func(a, b hyprland.Workspace) int { return a.ID - b.ID })
	return out
}

func activeTitle(ws []hyprland.Workspace, active int) string {
	for _, w := range ws {
		if w.ID == active {
			return workspaceLabel(w)
		}
	}
	return ""
}

// workspaceKey identifies what the workspace buttons currently show.
func workspaceKey(ws []hyprland.Workspace, active int) string {
	key := strconv.Itoa(active)
	for _, w := range ws {
		key += "|" + strconv.Itoa(w.ID) + ":" + w.Name
	}
	return key
}
