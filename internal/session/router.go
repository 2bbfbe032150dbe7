package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmylchreest/wayshell/internal/core"
	"github.com/jmylchreest/wayshell/internal/model"
)

// Defaults for Options.
const (
	DefaultShortcutID = "ToggleLauncher"
	DefaultBarHeight  = 30
	BarNamespace      = "wayshell-bar"
)

// Executor carries out Router requests on the host.
type Executor interface {
	Execute(ctx context.Context, req Request) error
}

// ExecutorFunc adapts a function to the Executor interface.
type ExecutorFunc func(ctx context.Context, req Request) error

// Execute calls f(ctx, req).
func (f ExecutorFunc) Execute(ctx context.Context, req Request) error {
	return f(ctx, req)
}

// Options configures a Router.
type Options struct {
	// ActiveWorkspace is the compositor's active workspace at startup.
	ActiveWorkspace int
	// BarHeight is the bar height and exclusive zone in pixels.
	BarHeight int
	// ShortcutID is the global shortcut that toggles the launcher.
	ShortcutID string
	// BuildIndex loads the application index on every launcher open.
	BuildIndex func() model.Index
	// Rank ranks the index against the query. Defaults to the trigram scorer.
	Rank core.RankFunc
	// Now returns the wall clock time for bar renders.
	Now    func() time.Time
	Logger *slog.Logger
}

// Router owns all session state and dispatches events to it.
// It is not safe for concurrent use; Run serialises events from a Queue.
type Router struct {
	surfaces   *surfaceTable
	bar        SurfaceID
	overlay    *Overlay
	active     int
	shortcutID string
	now        func() time.Time
	logger     *slog.Logger
}

// New creates a Router and returns the requests that create and draw the bar.
func New(opts Options) (*Router, []Request) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.BarHeight <= 0 {
		opts.BarHeight = DefaultBarHeight
	}
	if opts.ShortcutID == "" {
		opts.ShortcutID = DefaultShortcutID
	}
	if opts.BuildIndex == nil {
		opts.BuildIndex = func() model.Index { return model.Index{} }
	}
	if opts.Rank == nil {
		opts.Rank = core.Ranker(core.TrigramScorer{})
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	surfaces := newSurfaceTable()
	r := &Router{
		surfaces:   surfaces,
		overlay:    newOverlay(surfaces, opts.BuildIndex, opts.Rank, opts.Logger),
		active:     opts.ActiveWorkspace,
		shortcutID: opts.ShortcutID,
		now:        opts.Now,
		logger:     opts.Logger,
	}
	r.bar = surfaces.allocate(RoleBar)

	startup := []Request{
		CreateSurface{
			ID:   r.bar,
			Role: RoleBar,
			Config: SurfaceConfig{
				Anchor:        AnchorTop,
				Layer:         LayerBottom,
				Output:        OutputAll,
				Height:        opts.BarHeight,
				ExclusiveZone: opts.BarHeight,
				Namespace:     BarNamespace,
			},
		},
		r.refreshBar(),
	}
	return r, startup
}

// Handle applies one event and returns the resulting requests.
func (r *Router) Handle(ev Event) []Request {
	switch e := ev.(type) {
	case TimerTick:
		return []Request{r.renderBar()}

	case WorkspaceChanged:
		r.active = e.ID
		r.logger.Debug("workspace changed", "id", e.ID, "name", e.Name)
		return append([]Request{r.refreshBar()}, r.overlay.Close()...)

	case WorkspacesUpdated:
		return []Request{r.refreshBar()}

	case WorkspaceRequested:
		if e.ID == r.active {
			return nil
		}
		return []Request{SwitchWorkspace{ID: e.ID, Name: e.Name}}

	case LaunchRequested:
		if e.Command == "" {
			return nil
		}
		return []Request{SpawnProcess{Command: e.Command}}

	case ShortcutActivated:
		if e.Name != r.shortcutID {
			r.logger.Debug("ignoring shortcut", "name", e.Name)
			return nil
		}
		return r.overlay.Toggle()

	case ControlCommand:
		switch e.Op {
		case ControlOpen:
			return r.overlay.Open()
		case ControlClose:
			return r.overlay.Close()
		case ControlToggle:
			return r.overlay.Toggle()
		}
		r.logger.Debug("ignoring control command", "op", e.Op)
		return nil

	case KeyPressed:
		if r.surfaces.route(e.Surface) != RoleOverlay {
			return nil
		}
		switch e.Key {
		case KeyEscape:
			if e.Status == StatusIgnored {
				return r.overlay.Cancel()
			}
		case KeyUp:
			return r.overlay.Arrow(DirUp)
		case KeyDown:
			return r.overlay.Arrow(DirDown)
		}
		return nil

	case PointerPressed:
		if r.surfaces.route(e.Surface) == RoleOverlay && e.Status == StatusIgnored {
			return r.overlay.Cancel()
		}
		return nil

	case TextInput:
		if r.surfaces.route(e.Surface) != RoleOverlay {
			return nil
		}
		return r.overlay.Input(e.Text)

	case Submitted:
		if r.surfaces.route(e.Surface) != RoleOverlay {
			return nil
		}
		return r.overlay.Submit()

	case SurfaceFocused:
		return r.overlay.Focused(e.Surface)

	case ProducerStopped:
		if e.Err != nil {
			r.logger.Warn("event source stopped", "producer", e.Name, "error", e.Err)
		} else {
			r.logger.Debug("event source finished", "producer", e.Name)
		}
		return nil
	}

	r.logger.Debug("unhandled event", "type", fmt.Sprintf("%T", ev))
	return nil
}

// Run handles events until ctx is cancelled or events is closed.
// Execution errors other than cancellation are logged and skipped.
func (r *Router) Run(ctx context.Context, events <-chan Event, exec Executor) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			for _, req := range r.Handle(ev) {
				if err := exec.Execute(ctx, req); err != nil {
					if errors.Is(err, context.Canceled) {
						return err
					}
					r.logger.Debug("request failed", "request", requestName(req), "error", err)
				}
			}
		}
	}
}

func (r *Router) renderBar() RenderBar {
	return RenderBar{Surface: r.bar, ActiveWorkspace: r.active, At: r.now()}
}

func (r *Router) refreshBar() RenderBar {
	req := r.renderBar()
	req.RefreshWorkspaces = true
	return req
}

func requestName(req Request) string {
	switch req.(type) {
	case CreateSurface:
		return "create_surface"
	case DestroySurface:
		return "destroy_surface"
	case FocusInput:
		return "focus_input"
	case SpawnProcess:
		return "spawn_process"
	case SwitchWorkspace:
		return "switch_workspace"
	case RenderOverlay:
		return "render_overlay"
	case RenderBar:
		return "render_bar"
	default:
		return "unknown"
	}
}
