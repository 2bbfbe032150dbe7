// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Default configuration values.
const (
	DefaultBarHeight    = 30
	DefaultTick         = 100 * time.Millisecond
	MinTick             = 50 * time.Millisecond
	DefaultClockFormat  = "Monday, January _2, 2006  15:04:05"
	DefaultMatcher      = "trigram"
	DefaultSpawn        = "hyprland"
	DefaultShortcutID   = "ToggleLauncher"
	DefaultShortcutDesc = "Toggles the Application Launcher menu"
	DefaultTheme        = "default"
	DefaultNotifyEvery  = 5 * time.Second
)

// Config represents the wayshell configuration.
// Loaded from ~/.config/wayshell/wayshell.toml
type Config struct {
	Bar      BarConfig      `toml:"bar"`
	Launcher LauncherConfig `toml:"launcher"`
	Shortcut ShortcutConfig `toml:"shortcut"`
	Theme    ThemeConfig    `toml:"theme"`
	TUI      TUIConfig      `toml:"tui"`

	Notifications NotificationsConfig `toml:"notifications"`
}

// BarConfig contains status bar settings.
type BarConfig struct {
	Height         int            `toml:"height"`          // Bar height and exclusive zone in pixels
	Tick           Duration       `toml:"tick"`            // Clock refresh period, e.g. "100ms" or "1s"
	ClockFormat    string         `toml:"clock_format"`    // Go time layout
	ShowWorkspaces bool           `toml:"show_workspaces"` // Workspace buttons
	Buttons        []ButtonConfig `toml:"buttons"`         // Extra launcher buttons
}

// ButtonConfig is a bar button that runs a command.
type ButtonConfig struct {
	Label   string `toml:"label"`
	Command string `toml:"command"`
}

// LauncherConfig contains application launcher settings.
type LauncherConfig struct {
	Matcher string `toml:"matcher"` // "trigram" or "subsequence"
	Spawn   string `toml:"spawn"`   // "hyprland" or "shell"
	Shell   string `toml:"shell"`   // Shell for spawn = "shell"; $SHELL if empty
}

// ShortcutConfig contains global shortcut settings.
type ShortcutConfig struct {
	ID          string `toml:"id"`
	Description string `toml:"description"`
	Portal      bool   `toml:"portal"` // Register through xdg-desktop-portal
}

// ThemeConfig contains theme settings.
type ThemeConfig struct {
	Name        string `toml:"name"`         // Theme name without .css extension
	ColorScheme string `toml:"color_scheme"` // "system", "light", or "dark"
}

// TUIConfig holds terminal launcher settings.
type TUIConfig struct {
	ShowHelp   bool `toml:"show_help"`
	ShowScores bool `toml:"show_scores"`
}

// NotificationsConfig controls desktop notifications about the daemon itself.
type NotificationsConfig struct {
	Enabled     bool     `toml:"enabled"`
	MinInterval Duration `toml:"min_interval"` // Minimum gap between repeats of one message
}

// ColorScheme represents the color scheme preference.
type ColorScheme string

const (
	ColorSchemeSystem ColorScheme = "system"
	ColorSchemeLight  ColorScheme = "light"
	ColorSchemeDark   ColorScheme = "dark"
)

// ValidColorSchemes returns all valid color scheme values.
func ValidColorSchemes() []ColorScheme {
	return []ColorScheme{ColorSchemeSystem, ColorSchemeLight, ColorSchemeDark}
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Bar: BarConfig{
			Height:         DefaultBarHeight,
			Tick:           Duration(DefaultTick),
			ClockFormat:    DefaultClockFormat,
			ShowWorkspaces: true,
		},
		Launcher: LauncherConfig{
			Matcher: DefaultMatcher,
			Spawn:   DefaultSpawn,
			Shell:   "", // $SHELL
		},
		Shortcut: ShortcutConfig{
			ID:          DefaultShortcutID,
			Description: DefaultShortcutDesc,
			Portal:      true,
		},
		Theme: ThemeConfig{
			Name:        DefaultTheme,
			ColorScheme: string(ColorSchemeSystem),
		},
		TUI: TUIConfig{
			ShowHelp:   true,
			ShowScores: false,
		},
		Notifications: NotificationsConfig{
			Enabled:     true,
			MinInterval: Duration(DefaultNotifyEvery),
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "wayshell", "wayshell.toml"), nil
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns the default config if the file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return nil, fmt.Errorf("failed to get config path: %w", err)
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults, then overlay with file contents
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}
		path = p
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write atomically via temp file
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return os.Rename(tmpPath, path)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Bar.Height < 10 || c.Bar.Height > 200 {
		return fmt.Errorf("bar height must be between 10 and 200, got %d", c.Bar.Height)
	}
	if c.Bar.Tick.Duration() < MinTick {
		return fmt.Errorf("bar tick must be at least %s, got %s", MinTick, c.Bar.Tick.Duration())
	}
	if strings.TrimSpace(c.Bar.ClockFormat) == "" {
		return errors.New("bar clock_format cannot be empty")
	}
	for i, b := range c.Bar.Buttons {
		if strings.TrimSpace(b.Label) == "" || strings.TrimSpace(b.Command) == "" {
			return fmt.Errorf("bar button %d needs both label and command", i)
		}
	}

	switch c.Launcher.Matcher {
	case "trigram", "subsequence":
	default:
		return fmt.Errorf("invalid matcher %q, must be one of: trigram, subsequence", c.Launcher.Matcher)
	}
	switch c.Launcher.Spawn {
	case "hyprland", "shell":
	default:
		return fmt.Errorf("invalid spawn method %q, must be one of: hyprland, shell", c.Launcher.Spawn)
	}

	if strings.TrimSpace(c.Shortcut.ID) == "" {
		return errors.New("shortcut id cannot be empty")
	}

	validScheme := false
	for _, s := range ValidColorSchemes() {
		if c.Theme.ColorScheme == string(s) {
			validScheme = true
			break
		}
	}
	if !validScheme {
		return fmt.Errorf("invalid color_scheme %q, must be one of: %v", c.Theme.ColorScheme, ValidColorSchemes())
	}
	if strings.ContainsAny(c.Theme.Name, `/\`) {
		return fmt.Errorf("invalid theme name %q", c.Theme.Name)
	}

	if c.Notifications.MinInterval.Duration() < 0 {
		return fmt.Errorf("notifications min_interval cannot be negative, got %s", c.Notifications.MinInterval.Duration())
	}

	return nil
}
