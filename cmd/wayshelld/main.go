// Package main is the entry point for the wayshelld desktop shell daemon.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/glib/v2"

	"github.com/jmylchreest/wayshell/internal/config"
	"github.com/jmylchreest/wayshell/internal/daemon"
	"github.com/jmylchreest/wayshell/internal/dbus"
	"github.com/jmylchreest/wayshell/internal/display"
	"github.com/jmylchreest/wayshell/internal/hyprland"
	"github.com/jmylchreest/wayshell/internal/index"
	"github.com/jmylchreest/wayshell/internal/session"
	"github.com/jmylchreest/wayshell/internal/theme"
)

const (
	appID   = "io.github.jmylchreest.wayshelld"
	appName = "wayshelld"
)

var (
	// Build-time variables
	version = "dev"
)

// startupTimeout bounds the initial compositor query.
const startupTimeout = 5 * time.Second

func main() {
	configPath := flag.String("config", "", "Path to config file (default: ~/.config/wayshell/wayshell.toml)")
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(appName, "version", version)
		os.Exit(0)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	os.Exit(run(*configPath, logger))
}

func run(configPath string, logger *slog.Logger) int {
	logger.Info("starting wayshelld", "version", version)

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return 1
	}

	app := adw.NewApplication(appID, 0)

	// Shared state between GTK main loop and signal handlers
	var (
		host          *display.Host
		themeLoader   *display.ThemeLoader
		configWatcher *daemon.ConfigWatcher
		queue         *session.Queue
		running       atomic.Bool
		exitCode      atomic.Int32
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigCh:
			logger.Info("received signal, shutting down", "signal", sig)
		case <-ctx.Done():
			return
		}
		cancel()
		glib.IdleAdd(func() {
			app.Quit()
		})
	}()

	fail := func(msg string, err error) {
		logger.Error(msg, "error", err)
		exitCode.Store(1)
		cancel()
		app.Quit()
	}

	app.ConnectActivate(func() {
		if running.Load() {
			logger.Warn("application already running")
			return
		}
		running.Store(true)

		themeLoader = display.NewThemeLoader(logger)
		if err := themeLoader.LoadTheme(cfg.Theme.Name); err != nil {
			logger.Warn("failed to load theme", "error", err)
		}
		themeLoader.Apply(nil)
		themeLoader.ApplyColorScheme(cfg.Theme.ColorScheme)
		themeLoader.StartHotReload(ctx)

		notifier := daemon.NewNotifier(logger)
		notifier.Configure(cfg.Notifications)

		client, err := hyprland.NewClient(logger)
		if err != nil {
			fail("compositor not available", err)
			return
		}
		startCtx, startCancel := context.WithTimeout(ctx, startupTimeout)
		active, err := client.ActiveWorkspace(startCtx)
		startCancel()
		if err != nil {
			fail("failed to query active workspace", err)
			return
		}

		rank, err := daemon.NewRanker(cfg.Launcher)
		if err != nil {
			fail("invalid matcher", err)
			return
		}
		spawner, err := daemon.NewSpawner(cfg.Launcher, client, logger)
		if err != nil {
			fail("invalid spawn method", err)
			return
		}
		builder := index.NewBuilder(index.SearchRoots(), nil, logger)
		logger.Debug("application search roots", "roots", builder.Roots())

		queue = session.NewQueue(session.DefaultQueueSize, logger)

		host = display.NewHost(&app.Application, barOptions(cfg.Bar), queue.Push, logger)
		if err := host.Start(); err != nil {
			fail("failed to start display host", err)
			return
		}
		host.SetColorScheme(theme.ColorSchemeClass(cfg.Theme.ColorScheme, themeLoader.SystemDark()))

		control := dbus.NewControlServer(logger)

		router, startup := session.New(session.Options{
			ActiveWorkspace: active.ID,
			BarHeight:       cfg.Bar.Height,
			ShortcutID:      cfg.Shortcut.ID,
			BuildIndex:      builder.Build,
			Rank:            rank,
			Logger:          logger,
		})

		executor := daemon.NewExecutor(daemon.ExecutorOptions{
			Surfaces:   host,
			Workspaces: client,
			Spawner:    spawner,
			Visibility: control,
			Notifier:   notifier,
			MainLoop:   func(f func()) { glib.IdleAdd(f) },
			Logger:     logger,
		})

		ticker := session.NewTicker(daemon.TickPeriod(cfg.Bar))
		queue.Attach(ctx, ticker)
		queue.Attach(ctx, daemon.WithStopNotification(hyprland.NewEventSource(client), notifier))
		queue.Attach(ctx, daemon.WithStopNotification(control, notifier))
		if cfg.Shortcut.Portal {
			shortcuts := dbus.NewShortcutSource(cfg.Shortcut.ID, cfg.Shortcut.Description, logger)
			queue.Attach(ctx, daemon.WithStopNotification(shortcuts, notifier))
		}

		go func() {
			for _, req := range startup {
				if err := executor.Execute(ctx, req); err != nil {
					logger.Warn("startup request failed", "error", err)
				}
			}
			if err := router.Run(ctx, queue.Events(), executor); err != nil && ctx.Err() == nil {
				logger.Error("router stopped", "error", err)
			}
		}()

		configWatcher, err = daemon.NewConfigWatcher(configPath, logger)
		if err != nil {
			logger.Warn("failed to create config watcher", "error", err)
		} else {
			configWatcher.SetReloadCallback(func(newConfig *config.Config) {
				ticker.SetPeriod(daemon.TickPeriod(newConfig.Bar))

				glib.IdleAdd(func() {
					if needsRestart(cfg, newConfig) {
						logger.Warn("launcher, shortcut and bar height changes apply after restart")
					}
					if newConfig.Theme.Name != cfg.Theme.Name {
						themeLoader.StopHotReload()
						if err := themeLoader.LoadTheme(newConfig.Theme.Name); err != nil {
							logger.Warn("failed to load new theme", "theme", newConfig.Theme.Name, "error", err)
							notifier.NotifyThemeError(err)
						}
						themeLoader.StartHotReload(ctx)
					}
					themeLoader.ApplyColorScheme(newConfig.Theme.ColorScheme)
					host.SetColorScheme(theme.ColorSchemeClass(newConfig.Theme.ColorScheme, themeLoader.SystemDark()))
					host.SetBarOptions(barOptions(newConfig.Bar))

					cfg = newConfig
					notifier.Configure(newConfig.Notifications)
					notifier.NotifyConfigReloaded()
				})
			})
			configWatcher.SetErrorCallback(func(err error) {
				notifier.NotifyConfigError(err)
			})
			if err := configWatcher.Start(ctx, cfg); err != nil {
				logger.Warn("failed to start config watcher", "error", err)
			}
		}

		// Layer surfaces come and go; keep the application alive regardless.
		app.Hold()

		themeName := ""
		if t := themeLoader.Theme(); t != nil {
			themeName = t.Name
		}
		logger.Info("wayshelld ready",
			"workspace", active.ID,
			"theme", themeName,
			"control", dbus.ControlBusName,
		)
	})

	app.ConnectShutdown(func() {
		logger.Info("application shutting down")
		cancel()
		if configWatcher != nil {
			configWatcher.Stop()
		}
		if themeLoader != nil {
			themeLoader.StopHotReload()
		}
		if queue != nil {
			queue.Close()
		}
		if host != nil {
			host.Stop()
		}
		running.Store(false)
	})

	// Flags are ours; GApplication only sees the program name.
	status := app.Run(os.Args[:1])
	cancel()

	if status != 0 {
		logger.Error("application exited with error", "status", status)
		return status
	}
	if code := exitCode.Load(); code != 0 {
		return int(code)
	}

	logger.Info("wayshelld stopped")
	return 0
}

// barOptions converts the bar config into display options.
func barOptions(cfg config.BarConfig) display.BarOptions {
	opts := display.BarOptions{
		ClockFormat:    cfg.ClockFormat,
		ShowWorkspaces: cfg.ShowWorkspaces,
	}
	for _, b := range cfg.Buttons {
		opts.Buttons = append(opts.Buttons, display.Button{Label: b.Label, Command: b.Command})
	}
	return opts
}

// needsRestart reports whether a reload changed settings that are bound at
// startup.
func needsRestart(old, updated *config.Config) bool {
	return old.Launcher != updated.Launcher ||
		old.Shortcut != updated.Shortcut ||
		old.Bar.Height != updated.Bar.Height
}
