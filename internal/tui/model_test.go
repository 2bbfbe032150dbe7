package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/wayshell/internal/core"
	"github.com/jmylchreest/wayshell/internal/launcher"
	"github.com/jmylchreest/wayshell/internal/model"
)

func testIndex() model.Index {
	return model.Index{
		{ID: "firefox.desktop", Name: "Firefox", Exec: "firefox %u", Comment: "Browse the web", Path: "/a/firefox.desktop"},
		{ID: "files.desktop", Name: "Files", Exec: "nautilus --new-window %U", Path: "/a/files.desktop"},
		{ID: "nodisplay.desktop", Name: "Fire Settings", Path: "/a/nodisplay.desktop"},
	}
}

type spawnRecorder struct {
	commands []string
	err      error
}

func (s *spawnRecorder) Spawn(_ context.Context, command string) error {
	s.commands = append(s.commands, command)
	return s.err
}

func newTestModel(spawner launcher.Spawner) Model {
	return New(Options{
		Index:   testIndex(),
		Rank:    core.Ranker(core.SubsequenceScorer{}),
		Spawner: spawner,
	})
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return next.(Model)
}

func press(t *testing.T, m Model, k tea.KeyType) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(tea.KeyMsg{Type: k})
	return next.(Model), cmd
}

func TestModel_TypingRanks(t *testing.T) {
	m := newTestModel(nil)
	assert.Empty(t, m.Results())

	m = typeText(t, m, "fi")
	assert.Equal(t, "fi", m.Query())
	require.NotEmpty(t, m.Results())
	assert.Equal(t, 0, m.Selected())
	assert.Contains(t, m.View(), "Firefox")
}

func TestModel_ArrowsMoveSelection(t *testing.T) {
	m := newTestModel(nil)
	m = typeText(t, m, "fi")
	n := len(m.Results())
	require.Greater(t, n, 1)

	m, _ = press(t, m, tea.KeyUp)
	assert.Equal(t, 0, m.Selected())

	m, _ = press(t, m, tea.KeyDown)
	assert.Equal(t, 1, m.Selected())

	for i := 0; i < n+2; i++ {
		m, _ = press(t, m, tea.KeyDown)
	}
	assert.Equal(t, n-1, m.Selected())
	assert.Equal(t, "fi", m.Query())
}

func TestModel_EnterLaunchesExpandedCommand(t *testing.T) {
	spawner := &spawnRecorder{}
	m := newTestModel(spawner)
	m = typeText(t, m, "firefox")

	m, cmd := press(t, m, tea.KeyEnter)
	require.NotNil(t, cmd)

	msg := cmd()
	require.IsType(t, launchResultMsg{}, msg)
	assert.Equal(t, []string{"firefox "}, spawner.commands)

	m2, quit := m.Update(msg)
	assert.Equal(t, "firefox ", m2.(Model).Launched())
	require.NotNil(t, quit)
	assert.IsType(t, tea.QuitMsg{}, quit())
}

func TestModel_EnterWithoutResultsDoesNothing(t *testing.T) {
	spawner := &spawnRecorder{}
	m := newTestModel(spawner)

	_, cmd := press(t, m, tea.KeyEnter)
	assert.Nil(t, cmd)
	assert.Empty(t, spawner.commands)
}

func TestModel_LaunchFailureShowsStatus(t *testing.T) {
	spawner := &spawnRecorder{err: errors.New("not found")}
	m := newTestModel(spawner)
	m = typeText(t, m, "firefox")

	m, cmd := press(t, m, tea.KeyEnter)
	next, cmd := m.Update(cmd())
	m = next.(Model)
	require.NotNil(t, cmd)

	next, _ = m.Update(cmd())
	m = next.(Model)
	assert.Empty(t, m.Launched())
	assert.Contains(t, m.View(), "Launch failed: not found")
}

func TestModel_ClearResetsSelection(t *testing.T) {
	m := newTestModel(nil)
	m = typeText(t, m, "fi")
	m, _ = press(t, m, tea.KeyDown)

	m, _ = press(t, m, tea.KeyCtrlU)
	assert.Empty(t, m.Query())
	assert.Empty(t, m.Results())
	assert.Equal(t, 0, m.Selected())
}

func TestModel_NoMatches(t *testing.T) {
	m := newTestModel(nil)
	m = typeText(t, m, "zzzz")
	assert.Empty(t, m.Results())
	assert.Contains(t, m.View(), "No matching applications")
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(nil)
	_, cmd := press(t, m, tea.KeyEsc)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_ShowScores(t *testing.T) {
	m := New(Options{
		Index:      testIndex(),
		Rank:       core.Ranker(core.SubsequenceScorer{}),
		ShowScores: true,
	})
	m = typeText(t, m, "firefox")
	assert.Regexp(t, `Firefox.*\d\.\d{3}`, m.View())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "", truncate("hello", 0))
	assert.Equal(t, "…", truncate("hello", 1))
	assert.Equal(t, "he…", truncate("hello", 3))
	assert.Equal(t, "hello", truncate("hello", 5))
	assert.Equal(t, "日本…", truncate("日本語テキスト", 3))
}
