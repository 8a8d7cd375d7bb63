// Package tui implements the interactive scoreboard: a live summary table,
// an activity feed of board events and a command prompt.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/scoreboard/internal/command"
	"github.com/Iron-Ham/scoreboard/internal/errors"
	"github.com/Iron-Ham/scoreboard/internal/match"
	"github.com/Iron-Ham/scoreboard/internal/render"
	"github.com/Iron-Ham/scoreboard/internal/tui/styles"
)

// maxFeedLines is how many recent events the activity feed keeps.
const maxFeedLines = 6

// Options configure the model.
type Options struct {
	// Title is shown above the table.
	Title string
	// MaxNameWidth truncates team names in the table.
	MaxNameWidth int
}

// Model is the Bubbletea model for an interactive scoreboard session.
type Model struct {
	board    command.Board
	executor *command.Executor
	keys     keyMap
	opts     Options

	input   textinput.Model
	summary []match.Snapshot
	feed    []feedLine

	status   string
	errMsg   string
	showHelp bool
	quitting bool
	width    int
	height   int
}

// NewModel creates a model driving b.
func NewModel(b command.Board, opts Options) Model {
	if opts.Title == "" {
		opts.Title = "Live Scoreboard"
	}

	ti := textinput.New()
	ti.Placeholder = "start Mexico Canada"
	ti.Prompt = "> "
	ti.CharLimit = 256
	ti.Width = 60
	ti.Focus()

	m := Model{
		board:    b,
		executor: command.NewExecutor(b),
		keys:     defaultKeyMap(),
		opts:     opts,
		input:    ti,
		status:   "Type a command, or help to list them.",
	}
	m.applyTheme()
	m.summary = b.Summary()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(20, msg.Width-4)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			return m, nil
		case key.Matches(msg, m.keys.Clear):
			m.feed = nil
			m.errMsg = ""
			m.status = ""
			return m, nil
		case key.Matches(msg, m.keys.Submit):
			return m.submit()
		}

	case EventMsg:
		if line, ok := describeEvent(msg.Event); ok {
			m.feed = append(m.feed, line)
			if len(m.feed) > maxFeedLines {
				m.feed = m.feed[len(m.feed)-maxFeedLines:]
			}
		}
		return m, nil

	case ThemeChangedMsg:
		styles.SetActiveTheme(msg.Name)
		m.applyTheme()
		m.status = fmt.Sprintf("Theme changed to %s", msg.Name)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())
	m.input.Reset()
	if line == "" {
		return m, nil
	}

	res, err := m.executor.ExecuteLine(line)
	m.summary = m.board.Summary()
	if err != nil {
		m.errMsg = errors.UserMessage(err)
		return m, nil
	}
	m.errMsg = ""

	switch {
	case res.Quit:
		m.quitting = true
		return m, tea.Quit
	case res.Help != "":
		m.showHelp = true
	case res.ShowSummary:
		m.status = fmt.Sprintf("%d matches in progress", len(res.Summary))
	case res.Message != "":
		m.status = res.Message
	}
	return m, nil
}

func (m *Model) applyTheme() {
	t := styles.GetActiveTheme()
	m.input.PromptStyle = t.Prompt
	m.input.PlaceholderStyle = t.Muted
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	t := styles.GetActiveTheme()

	var b strings.Builder
	b.WriteString(t.Title.Render(m.opts.Title))
	b.WriteString("\n")

	if len(m.summary) == 0 {
		b.WriteString(t.Muted.Render(render.EmptyMessage))
	} else {
		b.WriteString(render.Table(m.summary, render.Options{
			MaxNameWidth: m.opts.MaxNameWidth,
			Styles:       t,
		}))
	}
	b.WriteString("\n\n")

	if len(m.feed) > 0 {
		b.WriteString(t.Subtitle.Render("Recent"))
		b.WriteString("\n")
		for _, line := range m.feed {
			if line.rejected {
				b.WriteString(t.Warning.Render("  " + line.text))
			} else {
				b.WriteString(t.Info.Render("  " + line.text))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if m.errMsg != "" {
		b.WriteString(t.Error.Render(m.errMsg))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(t.Muted.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if m.showHelp {
		b.WriteString(command.Help())
		b.WriteString("\n\n")
	}
	b.WriteString(m.helpBar(t))
	return b.String()
}

func (m Model) helpBar(t *styles.ThemedStyles) string {
	parts := make([]string, 0, len(m.keys.shortHelp()))
	for _, binding := range m.keys.shortHelp() {
		h := binding.Help()
		parts = append(parts, t.HelpKey.Render(h.Key)+" "+t.HelpDesc.Render(h.Desc))
	}
	return t.StatusBar.Render(strings.Join(parts, "  "))
}
