package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 30, cfg.Bar.Height)
	assert.Equal(t, 100*time.Millisecond, cfg.Bar.Tick.Duration())
	assert.Equal(t, DefaultClockFormat, cfg.Bar.ClockFormat)
	assert.True(t, cfg.Bar.ShowWorkspaces)
	assert.Empty(t, cfg.Bar.Buttons)
	assert.Equal(t, "trigram", cfg.Launcher.Matcher)
	assert.Equal(t, "hyprland", cfg.Launcher.Spawn)
	assert.Equal(t, "ToggleLauncher", cfg.Shortcut.ID)
	assert.Equal(t, "Toggles the Application Launcher menu", cfg.Shortcut.Description)
	assert.True(t, cfg.Shortcut.Portal)
	assert.Equal(t, "default", cfg.Theme.Name)
	assert.Equal(t, "system", cfg.Theme.ColorScheme)
	assert.True(t, cfg.Notifications.Enabled)
	assert.Equal(t, 5*time.Second, cfg.Notifications.MinInterval.Duration())
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_DefaultsWhenNoFile(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/wayshell.toml")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_ParsesTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wayshell.toml")

	content := `
[bar]
height = 36
tick = "250ms"
clock_format = "15:04"
show_workspaces = false

[[bar.buttons]]
label = "BT"
command = "blueman-manager"

[launcher]
matcher = "subsequence"
spawn = "shell"
shell = "/bin/bash"

[shortcut]
id = "Launcher"
portal = false

[theme]
name = "minimal"
color_scheme = "dark"

[tui]
show_scores = true

[notifications]
enabled = false
min_interval = "30s"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 36, cfg.Bar.Height)
	assert.Equal(t, 250*time.Millisecond, cfg.Bar.Tick.Duration())
	assert.Equal(t, "15:04", cfg.Bar.ClockFormat)
	assert.False(t, cfg.Bar.ShowWorkspaces)
	assert.Equal(t, []ButtonConfig{{Label: "BT", Command: "blueman-manager"}}, cfg.Bar.Buttons)
	assert.Equal(t, "subsequence", cfg.Launcher.Matcher)
	assert.Equal(t, "shell", cfg.Launcher.Spawn)
	assert.Equal(t, "/bin/bash", cfg.Launcher.Shell)
	assert.Equal(t, "Launcher", cfg.Shortcut.ID)
	assert.Equal(t, DefaultShortcutDesc, cfg.Shortcut.Description)
	assert.False(t, cfg.Shortcut.Portal)
	assert.Equal(t, "minimal", cfg.Theme.Name)
	assert.Equal(t, "dark", cfg.Theme.ColorScheme)
	assert.True(t, cfg.TUI.ShowScores)
	assert.True(t, cfg.TUI.ShowHelp)
	assert.False(t, cfg.Notifications.Enabled)
	assert.Equal(t, 30*time.Second, cfg.Notifications.MinInterval.Duration())
}

func TestLoadConfig_PartialConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wayshell.toml")
	require.NoError(t, os.WriteFile(path, []byte("[launcher]\nmatcher = \"subsequence\"\n"), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "subsequence", cfg.Launcher.Matcher)
	assert.Equal(t, DefaultBarHeight, cfg.Bar.Height)
	assert.Equal(t, DefaultSpawn, cfg.Launcher.Spawn)
}

func TestLoadConfig_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wayshell.toml")
	require.NoError(t, os.WriteFile(path, []byte("[bar\nheight = "), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wayshell.toml")
	require.NoError(t, os.WriteFile(path, []byte("[launcher]\nmatcher = \"regex\"\n"), 0644))

	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "invalid matcher")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"bar too short", func(c *Config) { c.Bar.Height = 5 }, true},
		{"bar too tall", func(c *Config) { c.Bar.Height = 500 }, true},
		{"tick too fast", func(c *Config) { c.Bar.Tick = Duration(10 * time.Millisecond) }, true},
		{"empty clock", func(c *Config) { c.Bar.ClockFormat = " " }, true},
		{"button without command", func(c *Config) { c.Bar.Buttons = []ButtonConfig{{Label: "x"}} }, true},
		{"bad spawn", func(c *Config) { c.Launcher.Spawn = "systemd" }, true},
		{"empty shortcut", func(c *Config) { c.Shortcut.ID = "" }, true},
		{"bad scheme", func(c *Config) { c.Theme.ColorScheme = "sepia" }, true},
		{"theme path", func(c *Config) { c.Theme.Name = "../etc/passwd" }, true},
		{"shell spawn", func(c *Config) { c.Launcher.Spawn = "shell" }, false},
		{"negative notify interval", func(c *Config) { c.Notifications.MinInterval = Duration(-time.Second) }, true},
		{"no notify interval", func(c *Config) { c.Notifications.MinInterval = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_Save(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "wayshell.toml")

	cfg := DefaultConfig()
	cfg.Bar.Height = 40
	cfg.Bar.Buttons = []ButtonConfig{{Label: "T", Command: "foot"}}
	require.NoError(t, cfg.Save(path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 40, loaded.Bar.Height)
	assert.Equal(t, cfg.Bar.Tick, loaded.Bar.Tick)
	assert.Equal(t, cfg.Bar.Buttons, loaded.Bar.Buttons)
}

func TestConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	path, err := ConfigPath()
	require.NoError(t, err)
	assert.Equal(t, "/custom/config/wayshell/wayshell.toml", path)
}

func TestDuration_UnmarshalText(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"100ms", 100 * time.Millisecond, false},
		{"1s", time.Second, false},
		{"250", 250 * time.Millisecond, false},
		{"soon", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tt.in))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Duration())
		})
	}

	out, err := Duration(1500 * time.Millisecond).MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "1.5s", string(out))
	assert.Equal(t, 1500, Duration(1500*time.Millisecond).Milliseconds())
}
