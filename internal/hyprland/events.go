package hyprland

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/thiagokokada/hyprland-go/event"

	"github.com/jmylchreest/wayshell/internal/session"
)

// Event names read from the socket. hyprland-go's handler interface only
// covers the legacy workspace events, so the v2 ones are matched here.
const (
	eventWorkspace   event.EventType = "workspace"
	eventWorkspaceV2 event.EventType = "workspacev2"
)

// workspace events that change the set of workspaces shown on the bar
var listEvents = map[event.EventType]bool{
	"createworkspacev2":  true,
	"destroyworkspacev2": true,
	"renameworkspace":    true,
	"moveworkspacev2":    true,
}

// EventSource is a session.Producer that translates compositor events.
type EventSource struct {
	client *Client
}

// NewEventSource creates an EventSource reading from client's event socket.
func NewEventSource(client *Client) *EventSource {
	return &EventSource{client: client}
}

// Name implements session.Producer.
func (s *EventSource) Name() string { return "hyprland" }

// Run implements session.Producer. It returns when the socket closes or ctx ends.
func (s *EventSource) Run(ctx context.Context, emit func(session.Event)) error {
	conn, err := event.NewClient(s.client.eventPath)
	if err != nil {
		return fmt.Errorf("failed to connect to event socket: %w", err)
	}
	defer conn.Close()

	// Closing the socket unblocks Receive; the read itself is not bound to ctx.
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	// Hyprland sends both "workspace" and "workspacev2" for each change.
	// Once a v2 event is seen the legacy one is ignored.
	sawV2 := false

	for {
		batch, err := conn.Receive(context.Background())
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			return fmt.Errorf("event socket read failed: %w", err)
		}

		for _, ev := range batch {
			switch {
			case ev.Type == eventWorkspaceV2:
				sawV2 = true
				if changed, ok := parseWorkspaceV2(string(ev.Data)); ok {
					emit(changed)
				}
			case ev.Type == eventWorkspace && !sawV2:
				ws, err := s.client.ActiveWorkspace(ctx)
				if err != nil {
					s.client.logger.Debug("failed to resolve workspace", "name", ev.Data, "error", err)
					continue
				}
				emit(session.WorkspaceChanged{ID: ws.ID, Name: ws.Name})
			case listEvents[ev.Type]:
				emit(session.WorkspacesUpdated{})
			}
		}
	}
}

// parseWorkspaceV2 parses "ID,NAME". Names may contain commas.
func parseWorkspaceV2(data string) (session.WorkspaceChanged, bool) {
	idStr, name, ok := strings.Cut(data, ",")
	if !ok {
		return session.WorkspaceChanged{}, false
	}
	id, err := strconv.Atoi(idStr)
	if err != nil {
		return session.WorkspaceChanged{}, false
	}
	return session.WorkspaceChanged{ID: id, Name: name}, true
}
