package session

import "time"

// Event is an input to the Router. The set of event types is closed.
type Event interface {
	event()
}

// TimerTick is emitted by the clock producer.
type TimerTick struct {
	At time.Time
}

// WorkspaceChanged reports a new active workspace from the compositor.
type WorkspaceChanged struct {
	ID   int
	Name string
}

// ShortcutActivated reports a global shortcut press.
type ShortcutActivated struct {
	Name string
}

// KeyPressed reports a key press on a surface.
type KeyPressed struct {
	Surface SurfaceID
	Key     Key
	Status  Status
}

// PointerPressed reports a pointer button press on a surface.
// StatusIgnored means no widget took the click.
type PointerPressed struct {
	Surface SurfaceID
	Status  Status
}

// TextInput reports the current text of the launcher input field.
type TextInput struct {
	Surface SurfaceID
	Text    string
}

// Submitted reports that the launcher input field was activated.
type Submitted struct {
	Surface SurfaceID
}

// SurfaceFocused reports that a surface received keyboard focus.
type SurfaceFocused struct {
	Surface SurfaceID
}

// WorkspacesUpdated reports that workspaces were created, destroyed or renamed.
type WorkspacesUpdated struct{}

// WorkspaceRequested is emitted when a bar workspace button is pressed.
type WorkspaceRequested struct {
	ID   int
	Name string
}

// LaunchRequested is emitted when a bar launcher button is pressed.
type LaunchRequested struct {
	Command string
}

// ControlCommand is an overlay command from the control bus.
type ControlCommand struct {
	Op ControlOp
}

// ProducerStopped is emitted by the Queue when a producer returns.
type ProducerStopped struct {
	Name string
	Err  error
}

func (TimerTick) event()          {}
func (WorkspaceChanged) event()   {}
func (ShortcutActivated) event()  {}
func (KeyPressed) event()         {}
func (PointerPressed) event()     {}
func (TextInput) event()          {}
func (Submitted) event()          {}
func (SurfaceFocused) event()     {}
func (WorkspacesUpdated) event()  {}
func (WorkspaceRequested) event() {}
func (LaunchRequested) event()    {}
func (ControlCommand) event()     {}
func (ProducerStopped) event()    {}
