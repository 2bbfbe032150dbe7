package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/wayshell/internal/daemon"
	"github.com/jmylchreest/wayshell/internal/hyprland"
	"github.com/jmylchreest/wayshell/internal/tui"
)

var launchOpts struct {
	scores bool
}

var launchCmd = &cobra.Command{
	Use:   "launch",
	Short: "Run the application launcher in the terminal",
	Long: `Run the application launcher as a terminal UI. It uses the same index,
matcher and spawn method as the overlay.

Key bindings:
  type         Filter applications
  ↑/↓          Move selection
  enter        Launch the selected application
  ctrl+y       Copy its command to the clipboard
  ctrl+u       Clear the query
  f1           Toggle help
  esc          Quit`,
	Aliases: []string{"tui"},
	Args:    cobra.NoArgs,
	RunE:    runLaunch,
}

func init() {
	rootCmd.AddCommand(launchCmd)

	launchCmd.Flags().BoolVar(&launchOpts.scores, "scores", false,
		"Show match scores (default from config)")
}

func runLaunch(cmd *cobra.Command, args []string) error {
	rank, err := daemon.NewRanker(cfg.Launcher)
	if err != nil {
		return err
	}

	var client *hyprland.Client
	if c, err := hyprland.NewClient(logger); err == nil {
		client = c
	} else {
		logger.Debug("compositor not available", "error", err)
	}
	spawner, err := daemon.NewSpawner(cfg.Launcher, client, logger)
	if err != nil {
		return err
	}

	launched, err := tui.Run(tui.Options{
		Index:      buildIndex(),
		Rank:       rank,
		Spawner:    spawner,
		ShowHelp:   cfg.TUI.ShowHelp,
		ShowScores: cfg.TUI.ShowScores || launchOpts.scores,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("launcher failed: %w", err)
	}
	if launched != "" {
		logger.Info("launched", "command", launched)
	}
	return nil
}
