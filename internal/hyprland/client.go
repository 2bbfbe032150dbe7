// Package hyprland provides a client for the Hyprland compositor's IPC sockets.
//
// Requests go through hyprland-go's RequestClient on .socket.sock. Events are
// read from .socket2.sock as "EVENT>>DATA" lines.
package hyprland

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	hyprgo "github.com/thiagokokada/hyprland-go"
	"github.com/thiagokokada/hyprland-go/helpers"
)

// DefaultTimeout bounds a single IPC request.
const DefaultTimeout = 2 * time.Second

// ErrNoInstance is returned when HYPRLAND_INSTANCE_SIGNATURE is not set.
var ErrNoInstance = errors.New("HYPRLAND_INSTANCE_SIGNATURE is not set; is Hyprland running?")

// IPCError reports a failed request.
type IPCError struct {
	Command string
	Message string
	Cause   error
}

func (e *IPCError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("hyprland %q: %s: %v", e.Command, e.Message, e.Cause)
	}
	return fmt.Sprintf("hyprland %q: %s", e.Command, e.Message)
}

func (e *IPCError) Unwrap() error {
	return e.Cause
}

// Workspace is a Hyprland workspace as reported by j/workspaces.
type Workspace struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Monitor string `json:"monitor"`
	Windows int    `json:"windows"`
}

func fromHypr(w hyprgo.Workspace) Workspace {
	return Workspace{ID: w.Id, Name: w.Name, Monitor: w.Monitor, Windows: w.Windows}
}

// Client talks to one Hyprland instance.
type Client struct {
	requests  *hyprgo.RequestClient
	eventPath string
	timeout   time.Duration
	logger    *slog.Logger
}

// NewClient creates a client for the instance named by the environment.
func NewClient(logger *slog.Logger) (*Client, error) {
	if os.Getenv("HYPRLAND_INSTANCE_SIGNATURE") == "" {
		return nil, ErrNoInstance
	}
	requestPath, err := helpers.GetSocket(helpers.RequestSocket)
	if err != nil {
		return nil, fmt.Errorf("failed to locate request socket: %w", err)
	}
	eventPath, err := helpers.GetSocket(helpers.EventSocket)
	if err != nil {
		return nil, fmt.Errorf("failed to locate event socket: %w", err)
	}
	return NewClientWithPaths(requestPath, eventPath, logger), nil
}

// NewClientWithPaths creates a client for explicit socket paths.
func NewClientWithPaths(requestPath, eventPath string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		requests:  hyprgo.NewClient(requestPath),
		eventPath: eventPath,
		timeout:   DefaultTimeout,
		logger:    logger,
	}
}

// call runs a blocking request, giving up when ctx ends or the timeout passes.
// The request itself finishes in the background since the socket always answers.
func (c *Client) call(ctx context.Context, command string, fn func() error) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- fn() }()

	select {
	case err := <-done:
		if err == nil {
			return nil
		}
		if errors.Is(err, hyprgo.ErrorValidation) {
			return &IPCError{Command: command, Message: "rejected", Cause: err}
		}
		return &IPCError{Command: command, Message: "request failed", Cause: err}
	case <-ctx.Done():
		return &IPCError{Command: command, Message: "request abandoned", Cause: ctx.Err()}
	}
}

// ActiveWorkspace returns the focused workspace.
func (c *Client) ActiveWorkspace(ctx context.Context) (Workspace, error) {
	var ws hyprgo.Workspace
	err := c.call(ctx, "activeworkspace", func() (err error) {
		ws, err = c.requests.ActiveWorkspace()
		return err
	})
	if err != nil {
		return Workspace{}, err
	}
	return fromHypr(ws), nil
}

// Workspaces returns all workspaces sorted by id.
func (c *Client) Workspaces(ctx context.Context) ([]Workspace, error) {
	var raw []hyprgo.Workspace
	err := c.call(ctx, "workspaces", func() (err error) {
		raw, err = c.requests.Workspaces()
		return err
	})
	if err != nil {
		return nil, err
	}
	list := make([]Workspace, 0, len(raw))
	for _, w := range raw {
		list = append(list, fromHypr(w))
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

// Dispatch runs a dispatcher. Hyprland answers "ok" on success and an error
// message otherwise, which surfaces as an IPCError wrapping ErrorValidation.
func (c *Client) Dispatch(ctx context.Context, dispatcher, args string) error {
	param := dispatcher
	if args != "" {
		param += " " + args
	}
	return c.call(ctx, "dispatch "+dispatcher, func() error {
		_, err := c.requests.Dispatch(param)
		return err
	})
}

// SwitchWorkspace activates a workspace by name, or by id when name is empty.
func (c *Client) SwitchWorkspace(ctx context.Context, id int, name string) error {
	target := strconv.Itoa(id)
	if name != "" {
		target = "name:" + name
	}
	return c.Dispatch(ctx, "workspace", target)
}

// Spawn asks the compositor to execute command. It satisfies launcher.Spawner.
func (c *Client) Spawn(ctx context.Context, command string) error {
	if strings.TrimSpace(command) == "" {
		return &IPCError{Command: "dispatch exec", Message: "empty command"}
	}
	return c.Dispatch(ctx, "exec", command)
}
