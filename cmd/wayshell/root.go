// Package main provides the CLI entrypoint for wayshell.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/wayshell/internal/config"
	"github.com/jmylchreest/wayshell/internal/index"
	"github.com/jmylchreest/wayshell/internal/model"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Global configuration and state
var (
	cfg        *config.Config
	globalOpts struct {
		verbose    bool
		configPath string
		roots      []string
	}
	logger *slog.Logger
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "wayshell",
	Short: "Companion CLI for the wayshell desktop shell",
	Long: `wayshell is the command line companion to wayshelld, a Wayland desktop
shell with a status bar and an application launcher.

It can list and rank the installed applications using the same index and
matcher as the launcher overlay, control a running daemon over D-Bus, and
run the launcher in a terminal.

Running wayshell without a subcommand launches the terminal launcher.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogger()

		var err error
		cfg, err = config.LoadConfig(globalOpts.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLaunch(cmd, args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: ~/.config/wayshell/wayshell.toml)")
	rootCmd.PersistentFlags().StringSliceVar(&globalOpts.roots, "roots", nil,
		"Application directories to scan (default: XDG data dirs)")
}

func main() {
	Execute()
}

// setupLogger configures the global slog logger.
func setupLogger() {
	level := slog.LevelWarn
	if globalOpts.verbose {
		level = slog.LevelDebug
	}

	// Log to stderr so stdout is clean for output
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	logger = slog.New(handler)
	slog.SetDefault(logger)
}

// buildIndex scans the configured roots.
func buildIndex() model.Index {
	roots := globalOpts.roots
	if len(roots) == 0 {
		roots = index.SearchRoots()
	}
	return index.NewBuilder(roots, nil, logger).Build()
}
