package daemon

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmylchreest/wayshell/internal/hyprland"
	"github.com/jmylchreest/wayshell/internal/launcher"
	"github.com/jmylchreest/wayshell/internal/session"
)

// Surfaces is the display host. Its methods are only called from the
// executor's main-loop function.
type Surfaces interface {
	CreateSurface(req session.CreateSurface) error
	DestroySurface(id session.SurfaceID)
	FocusInput(req session.FocusInput) error
	RenderOverlay(req session.RenderOverlay) error
	RenderBar(req session.RenderBar, workspaces []hyprland.Workspace) error
}

// Workspaces is the compositor's workspace API.
type Workspaces interface {
	Workspaces(ctx context.Context) ([]hyprland.Workspace, error)
	SwitchWorkspace(ctx context.Context, id int, name string) error
}

// VisibilityEmitter announces launcher visibility changes.
type VisibilityEmitter interface {
	EmitVisibilityChanged(visible bool) error
}

// MainLoop schedules f on the GUI thread, e.g. glib.IdleAdd.
type MainLoop func(f func())

// ExecutorOptions configures an Executor.
type ExecutorOptions struct {
	Surfaces   Surfaces
	Workspaces Workspaces
	Spawner    launcher.Spawner
	Visibility VisibilityEmitter // optional
	Notifier   *Notifier         // optional
	MainLoop   MainLoop          // nil runs inline
	Logger     *slog.Logger
}

// Executor carries out session requests. Surface work is queued on the main
// loop in request order and its errors are logged there; compositor and
// spawn work happens on the caller's goroutine and errors are returned.
type Executor struct {
	surfaces   Surfaces
	workspaces Workspaces
	spawner    launcher.Spawner
	visibility VisibilityEmitter
	notifier   *Notifier
	mainLoop   MainLoop
	logger     *slog.Logger

	overlay session.SurfaceID
}

// NewExecutor creates an executor.
func NewExecutor(opts ExecutorOptions) *Executor {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	mainLoop := opts.MainLoop
	if mainLoop == nil {
		mainLoop = func(f func()) { f() }
	}
	return &Executor{
		surfaces:   opts.Surfaces,
		workspaces: opts.Workspaces,
		spawner:    opts.Spawner,
		visibility: opts.Visibility,
		notifier:   opts.Notifier,
		mainLoop:   mainLoop,
		logger:     logger,
	}
}

// Execute implements session.Executor.
func (e *Executor) Execute(ctx context.Context, req session.Request) error {
	switch r := req.(type) {
	case session.CreateSurface:
		e.onMain("create surface", func() error { return e.surfaces.CreateSurface(r) })
		if r.Role == session.RoleOverlay {
			e.overlay = r.ID
			e.emitVisibility(true)
		}
		return nil

	case session.DestroySurface:
		e.onMain("destroy surface", func() error {
			e.surfaces.DestroySurface(r.ID)
			return nil
		})
		if r.ID == e.overlay {
			e.overlay = 0
			e.emitVisibility(false)
		}
		return nil

	case session.FocusInput:
		e.onMain("focus input", func() error { return e.surfaces.FocusInput(r) })
		return nil

	case session.RenderOverlay:
		e.onMain("render overlay", func() error { return e.surfaces.RenderOverlay(r) })
		return nil

	case session.RenderBar:
		return e.renderBar(ctx, r)

	case session.SpawnProcess:
		if err := e.spawner.Spawn(ctx, r.Command); err != nil {
			if e.notifier != nil {
				e.notifier.NotifyLaunchError(r.Command, err)
			}
			return fmt.Errorf("failed to spawn %q: %w", r.Command, err)
		}
		e.logger.Info("launched", "command", r.Command)
		return nil

	case session.SwitchWorkspace:
		if err := e.workspaces.SwitchWorkspace(ctx, r.ID, r.Name); err != nil {
			return fmt.Errorf("failed to switch workspace: %w", err)
		}
		return nil

	default:
		return fmt.Errorf("unsupported request %T", req)
	}
}

// renderBar fetches the workspace list off the main loop when asked to,
// then renders. A failed fetch still renders the clock.
func (e *Executor) renderBar(ctx context.Context, r session.RenderBar) error {
	var list []hyprland.Workspace
	var fetchErr error
	if r.RefreshWorkspaces && e.workspaces != nil {
		list, fetchErr = e.workspaces.Workspaces(ctx)
		if fetchErr != nil {
			list = nil
		} else if list == nil {
			list = []hyprland.Workspace{}
		}
	}

	e.onMain("render bar", func() error { return e.surfaces.RenderBar(r, list) })

	if fetchErr != nil {
		return fmt.Errorf("failed to list workspaces: %w", fetchErr)
	}
	return nil
}

func (e *Executor) onMain(what string, f func() error) {
	e.mainLoop(func() {
		if err := f(); err != nil {
			e.logger.Warn("display request failed", "request", what, "error", err)
		}
	})
}

func (e *Executor) emitVisibility(visible bool) {
	if e.visibility == nil {
		return
	}
	if err := e.visibility.EmitVisibilityChanged(visible); err != nil {
		e.logger.Debug("failed to emit visibility change", "visible", visible, "error", err)
	}
}
