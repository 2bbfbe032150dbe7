// Package tui provides a BubbleTea terminal launcher over the same index and
// ranking as the overlay.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/wayshell/internal/core"
	"github.com/jmylchreest/wayshell/internal/launcher"
	"github.com/jmylchreest/wayshell/internal/model"
	"github.com/jmylchreest/wayshell/internal/session"
)

// Options configures the terminal launcher.
type Options struct {
	Index      model.Index
	Rank       core.RankFunc
	Spawner    launcher.Spawner
	ShowHelp   bool
	ShowScores bool
	Logger     *slog.Logger
}

// Model is the terminal launcher model.
type Model struct {
	opts   Options
	logger *slog.Logger

	input     textinput.Model
	help      help.Model
	keys      KeyMap
	selection session.Selection

	width    int
	showHelp bool

	statusMsg string
	statusErr bool

	launched string
}

var (
	promptStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	nameStyle     = lipgloss.NewStyle()
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	commentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	scoreStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
)

// New creates a terminal launcher model.
func New(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Rank == nil {
		opts.Rank = core.Ranker(core.TrigramScorer{})
	}

	input := textinput.New()
	input.Placeholder = "Search applications..."
	input.Prompt = promptStyle.Render("> ")
	input.CharLimit = 256
	input.Focus()

	h := help.New()
	h.ShowAll = opts.ShowHelp

	return Model{
		opts:     opts,
		logger:   logger,
		input:    input,
		help:     h,
		keys:     DefaultKeyMap(),
		showHelp: opts.ShowHelp,
	}
}

// Launched returns the command started before the launcher exited, if any.
func (m Model) Launched() string { return m.launched }

// Query returns the current query.
func (m Model) Query() string { return m.selection.Query() }

// Results returns the ranked results for the current query.
func (m Model) Results() []model.RankedCandidate { return m.selection.Results() }

// Selected returns the highlighted row.
func (m Model) Selected() int { return m.selection.Selected() }

// Init initializes the TUI.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

type launchResultMsg struct {
	command string
	err     error
}

type copyResultMsg struct {
	err error
}

type statusMsg struct {
	text  string
	isErr bool
}

type clearStatusMsg struct{}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case launchResultMsg:
		if msg.err != nil {
			return m, status("Launch failed: "+msg.err.Error(), true)
		}
		m.launched = msg.command
		return m, tea.Quit

	case copyResultMsg:
		if msg.err != nil {
			return m, status("Copy failed: "+msg.err.Error(), true)
		}
		return m, status("Copied command to clipboard", false)

	case statusMsg:
		m.statusMsg = msg.text
		m.statusErr = msg.isErr
		return m, tea.Tick(3*time.Second, func(time.Time) tea.Msg {
			return clearStatusMsg{}
		})

	case clearStatusMsg:
		m.statusMsg = ""
		m.statusErr = false
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func status(text string, isErr bool) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text, isErr: isErr} }
}

// handleKey handles key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.selection.Move(session.DirUp)
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.selection.Move(session.DirDown)
		return m, nil

	case key.Matches(msg, m.keys.Clear):
		m.input.SetValue("")
		m.selection.Reset()
		return m, nil

	case key.Matches(msg, m.keys.Launch):
		command, ok := m.currentCommand()
		if !ok {
			return m, nil
		}
		return m, m.launch(command)

	case key.Matches(msg, m.keys.Copy):
		command, ok := m.currentCommand()
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg { return copyResultMsg{err: copyText(command)} }
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if text := m.input.Value(); text != m.selection.Query() {
		m.selection.Input(text, m.opts.Index, m.opts.Rank)
	}
	return m, cmd
}

// currentCommand returns the expanded command of the selected entry.
func (m Model) currentCommand() (string, bool) {
	entry, ok := m.selection.Current()
	if !ok {
		return "", false
	}
	return launcher.Command(entry)
}

func (m Model) launch(command string) tea.Cmd {
	spawner := m.opts.Spawner
	logger := m.logger
	return func() tea.Msg {
		if spawner == nil {
			return launchResultMsg{command: command, err: fmt.Errorf("no spawner configured")}
		}
		err := spawner.Spawn(context.Background(), command)
		if err != nil {
			logger.Debug("launch failed", "command", command, "error", err)
		}
		return launchResultMsg{command: command, err: err}
	}
}

// View renders the TUI.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	results := m.selection.Results()
	switch {
	case len(results) == 0 && m.selection.Query() != "":
		b.WriteString(commentStyle.Render("  No matching applications"))
		b.WriteString("\n")
	default:
		for i, r := range results {
			b.WriteString(m.renderRow(i, r))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	if m.statusMsg != "" {
		if m.statusErr {
			b.WriteString(errorStyle.Render(m.statusMsg))
		} else {
			b.WriteString(statusStyle.Render(m.statusMsg))
		}
	} else {
		b.WriteString(m.help.View(m.keys))
	}
	return b.String()
}

func (m Model) renderRow(i int, r model.RankedCandidate) string {
	cursor := "  "
	style := nameStyle
	if i == m.selection.Selected() {
		cursor = "▸ "
		style = selectedStyle
	}

	line := cursor + style.Render(r.Entry.Name)
	if m.opts.ShowScores {
		line += " " + scoreStyle.Render(fmt.Sprintf("%.3f", r.Score))
	}
	if r.Entry.Comment != "" {
		comment := r.Entry.Comment
		if m.width > 0 {
			room := m.width - lipgloss.Width(line) - 3
			comment = truncate(comment, room)
		}
		if comment != "" {
			line += "  " + commentStyle.Render(comment)
		}
	}
	return line
}

// truncate shortens s to at most n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(runes[:n-1]) + "…"
}

// Run starts the terminal launcher and returns the command it launched, or
// "" when the user quit without launching.
func Run(opts Options) (string, error) {
	p := tea.NewProgram(New(opts), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return "", err
	}
	if m, ok := final.(Model); ok {
		return m.Launched(), nil
	}
	return "", nil
}
