// Package session implements the shell's session core: the launcher selection
// state, the overlay lifecycle and the router that dispatches external events.
//
// The core is single-threaded. Producers push events into a Queue; the Router
// consumes them one at a time and returns Requests for the host to execute.
package session

import "fmt"

// SurfaceID identifies a compositor surface. IDs are allocated by the Router
// and never reused within a process.
type SurfaceID uint64

// Role is the part a live surface plays in the shell.
type Role int

const (
	RoleNone Role = iota
	RoleBar
	RoleOverlay
)

// String returns the role name.
func (r Role) String() string {
	switch r {
	case RoleBar:
		return "bar"
	case RoleOverlay:
		return "overlay"
	default:
		return "none"
	}
}

// Layer is the layer-shell stacking layer.
type Layer int

const (
	LayerBottom Layer = iota
	LayerTop
)

// String returns the layer name.
func (l Layer) String() string {
	if l == LayerTop {
		return "top"
	}
	return "bottom"
}

// Anchor is the set of screen edges a surface attaches to.
type Anchor int

const (
	// AnchorAll attaches to all four edges (fullscreen overlay).
	AnchorAll Anchor = iota
	// AnchorTop attaches to the top, left and right edges (bar).
	AnchorTop
)

// String returns the anchor name.
func (a Anchor) String() string {
	if a == AnchorTop {
		return "top"
	}
	return "all"
}

// Output selects which monitors receive a surface.
type Output int

const (
	OutputActive Output = iota
	OutputAll
)

// String returns the output name.
func (o Output) String() string {
	if o == OutputAll {
		return "all"
	}
	return "active"
}

// SurfaceConfig describes how the host should create a surface.
type SurfaceConfig struct {
	ExclusiveKeyboard bool
	Anchor            Anchor
	Layer             Layer
	Output            Output
	Height            int // 0 lets the host size the surface
	ExclusiveZone     int // -1 ignores other exclusive zones
	Namespace         string
}

// Status reports whether a toolkit widget already consumed an input event.
type Status int

const (
	StatusIgnored Status = iota
	StatusCaptured
)

// String returns the status name.
func (s Status) String() string {
	if s == StatusCaptured {
		return "captured"
	}
	return "ignored"
}

// Key is a logical key the core reacts to.
type Key int

const (
	KeyOther Key = iota
	KeyEscape
	KeyUp
	KeyDown
)

// String returns the key name.
func (k Key) String() string {
	switch k {
	case KeyEscape:
		return "escape"
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	default:
		return "other"
	}
}

// Direction is a selection movement.
type Direction int

const (
	DirUp   Direction = -1
	DirDown Direction = 1
)

// ControlOp is an overlay command received over the control bus.
type ControlOp string

const (
	ControlOpen   ControlOp = "open"
	ControlClose  ControlOp = "close"
	ControlToggle ControlOp = "toggle"
)

// ParseControlOp parses a control operation name.
func ParseControlOp(s string) (ControlOp, error) {
	switch op := ControlOp(s); op {
	case ControlOpen, ControlClose, ControlToggle:
		return op, nil
	default:
		return "", fmt.Errorf("unknown control operation %q", s)
	}
}

// surfaceTable allocates surface ids and maps live ids to roles.
type surfaceTable struct {
	next  SurfaceID
	roles map[SurfaceID]Role
}

func newSurfaceTable() *surfaceTable {
	return &surfaceTable{roles: make(map[SurfaceID]Role)}
}

func (t *surfaceTable) allocate(role Role) SurfaceID {
	t.next++
	t.roles[t.next] = role
	return t.next
}

func (t *surfaceTable) release(id SurfaceID) {
	delete(t.roles, id)
}

// route returns the role of a live surface, or RoleNone for unknown and stale ids.
func (t *surfaceTable) route(id SurfaceID) Role {
	if role, ok := t.roles[id]; ok {
		return role
	}
	return RoleNone
}
