package launcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"syscall"
)

// Spawner starts a command without waiting for it.
type Spawner interface {
	Spawn(ctx context.Context, command string) error
}

// SpawnerFunc adapts a function to the Spawner interface.
type SpawnerFunc func(ctx context.Context, command string) error

// Spawn calls f(ctx, command).
func (f SpawnerFunc) Spawn(ctx context.Context, command string) error {
	return f(ctx, command)
}

// Spawn methods accepted by configuration.
const (
	SpawnHyprland = "hyprland"
	SpawnShell    = "shell"
)

// ErrEmptyCommand is returned when asked to spawn an empty command line.
var ErrEmptyCommand = errors.New("command is empty")

// ShellSpawner runs commands through a shell in a new session, detached from
// the launcher. Output is discarded and the child is reaped in the background.
type ShellSpawner struct {
	shell  string
	logger *slog.Logger
}

// NewShellSpawner creates a ShellSpawner. An empty shell uses $SHELL, then /bin/sh.
func NewShellSpawner(shell string, logger *slog.Logger) *ShellSpawner {
	if shell == "" {
		shell = os.Getenv("SHELL")
	}
	if shell == "" {
		shell = "/bin/sh"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ShellSpawner{shell: shell, logger: logger}
}

// Shell returns the shell used to interpret commands.
func (s *ShellSpawner) Shell() string {
	return s.shell
}

// Spawn starts command and returns once the process exists.
// The context is not bound to the child; closing the launcher must not kill it.
func (s *ShellSpawner) Spawn(ctx context.Context, command string) error {
	if command == "" {
		return ErrEmptyCommand
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	cmd := exec.Command(s.shell, "-c", command)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %q: %w", command, err)
	}

	pid := cmd.Process.Pid
	s.logger.Debug("spawned process", "pid", pid, "command", command)

	go func() {
		if err := cmd.Wait(); err != nil {
			s.logger.Debug("process exited", "pid", pid, "error", err)
		}
	}()
	return nil
}
