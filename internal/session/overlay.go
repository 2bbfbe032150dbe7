package session

import (
	"log/slog"

	"github.com/jmylchreest/wayshell/internal/core"
	"github.com/jmylchreest/wayshell/internal/launcher"
	"github.com/jmylchreest/wayshell/internal/model"
)

// OverlayNamespace is the layer-shell namespace of the launcher surface.
const OverlayNamespace = "wayshell-launcher"

// OverlayConfig is the surface configuration of the launcher.
func OverlayConfig() SurfaceConfig {
	return SurfaceConfig{
		ExclusiveKeyboard: true,
		Anchor:            AnchorAll,
		Layer:             LayerTop,
		Output:            OutputActive,
		ExclusiveZone:     -1,
		Namespace:         OverlayNamespace,
	}
}

// Overlay manages the launcher lifecycle. While closed it holds no query,
// results or index; everything is rebuilt on the next Open.
type Overlay struct {
	surfaces *surfaceTable
	build    func() model.Index
	rank     core.RankFunc
	logger   *slog.Logger

	open      bool
	handle    SurfaceID
	sessionID string
	index     model.Index
	selection Selection
}

func newOverlay(surfaces *surfaceTable, build func() model.Index, rank core.RankFunc, logger *slog.Logger) *Overlay {
	return &Overlay{
		surfaces: surfaces,
		build:    build,
		rank:     rank,
		logger:   logger,
	}
}

// Open creates the launcher surface and loads a fresh index.
func (o *Overlay) Open() []Request {
	if o.open {
		return nil
	}

	id := o.surfaces.allocate(RoleOverlay)
	sessionID, err := model.NewSessionID()
	if err != nil {
		o.logger.Debug("failed to mint session id", "error", err)
	}

	o.selection.Reset()
	o.index = o.build()
	o.sessionID = sessionID
	o.handle = id
	o.open = true

	o.logger.Debug("launcher opened", "session", o.sessionID, "surface", id, "entries", len(o.index))

	return []Request{
		CreateSurface{ID: id, Role: RoleOverlay, Config: OverlayConfig()},
		RenderOverlay{Surface: id, View: o.selection.View()},
	}
}

// Close destroys the launcher surface and discards all session state.
func (o *Overlay) Close() []Request {
	if !o.open {
		return nil
	}

	id := o.handle
	o.logger.Debug("launcher closed", "session", o.sessionID, "surface", id)

	o.surfaces.release(id)
	o.selection.Reset()
	o.index = nil
	o.sessionID = ""
	o.handle = 0
	o.open = false

	return []Request{DestroySurface{ID: id}}
}

// Toggle closes an open launcher, otherwise opens it.
func (o *Overlay) Toggle() []Request {
	if o.open {
		return o.Close()
	}
	return o.Open()
}

// Focused requests input focus when id is the launcher surface.
func (o *Overlay) Focused(id SurfaceID) []Request {
	if !o.open || id != o.handle {
		return nil
	}
	return []Request{FocusInput{Surface: id, Field: LauncherField}}
}

// Input re-ranks the index against text.
func (o *Overlay) Input(text string) []Request {
	if !o.open {
		return nil
	}
	o.selection.Input(text, o.index, o.rank)
	return o.render()
}

// Arrow moves the highlighted row.
func (o *Overlay) Arrow(dir Direction) []Request {
	if !o.open || len(o.selection.Results()) == 0 {
		return nil
	}
	o.selection.Move(dir)
	return o.render()
}

// Submit launches the highlighted entry and closes the launcher.
// With no results the launcher stays open.
func (o *Overlay) Submit() []Request {
	if !o.open {
		return nil
	}
	entry, ok := o.selection.Current()
	if !ok {
		return nil
	}

	var reqs []Request
	if cmd, ok := launcher.Command(entry); ok {
		o.logger.Debug("launching", "session", o.sessionID, "name", entry.Name, "command", cmd)
		reqs = append(reqs, SpawnProcess{Command: cmd})
	} else {
		o.logger.Debug("entry has no command", "session", o.sessionID, "name", entry.Name, "path", entry.Path)
	}
	return append(reqs, o.Close()...)
}

// Cancel closes the launcher on escape or a click outside it.
func (o *Overlay) Cancel() []Request {
	return o.Close()
}

func (o *Overlay) render() []Request {
	return []Request{RenderOverlay{Surface: o.handle, View: o.selection.View()}}
}
