package daemon

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/jmylchreest/wayshell/internal/config"
	"github.com/jmylchreest/wayshell/internal/core"
	"github.com/jmylchreest/wayshell/internal/hyprland"
	"github.com/jmylchreest/wayshell/internal/launcher"
	"github.com/jmylchreest/wayshell/internal/session"
)

// NewRanker returns the ranking function selected by the launcher config.
func NewRanker(cfg config.LauncherConfig) (core.RankFunc, error) {
	scorer, err := core.ScorerByName(cfg.Matcher)
	if err != nil {
		return nil, err
	}
	return core.Ranker(scorer), nil
}

// NewSpawner returns the spawner selected by the launcher config. client is
// used for the hyprland method; when it is nil the shell is used instead.
func NewSpawner(cfg config.LauncherConfig, client *hyprland.Client, logger *slog.Logger) (launcher.Spawner, error) {
	if logger == nil {
		logger = slog.Default()
	}
	switch cfg.Spawn {
	case launcher.SpawnHyprland:
		if client != nil {
			return client, nil
		}
		logger.Warn("no compositor connection, spawning through the shell")
		return launcher.NewShellSpawner(cfg.Shell, logger), nil
	case launcher.SpawnShell:
		return launcher.NewShellSpawner(cfg.Shell, logger), nil
	default:
		return nil, fmt.Errorf("unknown spawn method %q", cfg.Spawn)
	}
}

// TickPeriod returns the clock period for the bar config.
func TickPeriod(cfg config.BarConfig) time.Duration {
	if d := cfg.Tick.Duration(); d >= session.MinTickPeriod {
		return d
	}
	return session.MinTickPeriod
}
