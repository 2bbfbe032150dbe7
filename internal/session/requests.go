package session

import "time"

// Request is an effect the host must carry out on behalf of the Router.
type Request interface {
	request()
}

// CreateSurface asks the host to create a layer surface.
type CreateSurface struct {
	ID     SurfaceID
	Role   Role
	Config SurfaceConfig
}

// DestroySurface asks the host to tear a surface down.
type DestroySurface struct {
	ID SurfaceID
}

// FocusInput asks the host to focus a named input field on a surface.
type FocusInput struct {
	Surface SurfaceID
	Field   string
}

// SpawnProcess asks the host to run a command line detached.
type SpawnProcess struct {
	Command string
}

// SwitchWorkspace asks the compositor to activate a workspace.
// Name takes precedence over ID when set.
type SwitchWorkspace struct {
	ID   int
	Name string
}

// RenderOverlay asks the host to redraw the launcher.
type RenderOverlay struct {
	Surface SurfaceID
	View    OverlayView
}

// RenderBar asks the host to redraw the bar. RefreshWorkspaces asks the
// host to reload the workspace list before drawing.
type RenderBar struct {
	Surface           SurfaceID
	ActiveWorkspace   int
	At                time.Time
	RefreshWorkspaces bool
}

func (CreateSurface) request()   {}
func (DestroySurface) request()  {}
func (FocusInput) request()      {}
func (SpawnProcess) request()    {}
func (SwitchWorkspace) request() {}
func (RenderOverlay) request()   {}
func (RenderBar) request()       {}

// LauncherField is the name of the overlay's text input.
const LauncherField = "launcher"

// OverlayView is the render state of the launcher.
type OverlayView struct {
	Query    string
	Items    []ViewItem
	Selected int
}

// ViewItem is one visible launcher result.
type ViewItem struct {
	Name    string
	Comment string
	Icon    string
	Score   float64
}
