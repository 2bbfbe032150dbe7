package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jmylchreest/wayshell/internal/config"
	"github.com/jmylchreest/wayshell/internal/display"
)

func TestBarOptions(t *testing.T) {
	cfg := config.DefaultConfig().Bar
	cfg.Buttons = []config.ButtonConfig{{Label: "BT", Command: "blueman-manager"}}

	opts := barOptions(cfg)
	assert.Equal(t, config.DefaultClockFormat, opts.ClockFormat)
	assert.True(t, opts.ShowWorkspaces)
	assert.Equal(t, []display.Button{{Label: "BT", Command: "blueman-manager"}}, opts.Buttons)
}

func TestNeedsRestart(t *testing.T) {
	old := config.DefaultConfig()

	same := config.DefaultConfig()
	same.Theme.Name = "minimal"
	same.Bar.ClockFormat = "15:04"
	assert.False(t, needsRestart(old, same))

	matcher := config.DefaultConfig()
	matcher.Launcher.Matcher = "subsequence"
	assert.True(t, needsRestart(old, matcher))

	height := config.DefaultConfig()
	height.Bar.Height = 40
	assert.True(t, needsRestart(old, height))
}
