// SPDX-License-Identifier: EPL-2.0

// Package ui is the Bubbletea front end of the audiscope command. The
// engine runs on its own goroutine and reports through ProgramSink; the
// model only renders what it is sent.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ik5/audiscope/internal/cli"
)

// Model is the Bubbletea model for a batch run.
type Model struct {
	Title    string
	Lines    []string
	Progress string

	StartTime  time.Time
	Cancelling bool
	Done       bool
	Result     DoneMsg

	cancel func()
	width  int
}

// NewModel creates a model; cancel is called on ctrl+c or q.
func NewModel(title string, cancel func()) Model {
	if cancel == nil {
		cancel = func() {}
	}

	return Model{
		Title:     title,
		StartTime: time.Now(),
		cancel:    cancel,
	}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			if m.Done {
				return m, tea.Quit
			}
			if !m.Cancelling {
				m.Cancelling = true
				m.cancel()
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case LineMsg:
		m.Lines = append(m.Lines, string(msg))
		m.Progress = ""

	case ProgressMsg:
		m.Progress = string(msg)

	case ClearMsg:
		m.Lines = nil
		m.Progress = ""

	case DoneMsg:
		m.Done = true
		m.Result = msg
		return m, tea.Quit
	}

	return m, nil
}

var (
	subtitleStyle = lipgloss.NewStyle().
			Foreground(cli.MutedColor).
			Italic(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(cli.AccentColor).
			Bold(true)
)

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(cli.TitleStyle.Render("Audiscope - " + m.Title))
	b.WriteString("\n")

	for _, line := range m.Lines {
		b.WriteString(cli.StyleLine(line))
		b.WriteString("\n")
	}
	if m.Progress != "" {
		b.WriteString(cli.ProgressStyle.Render(m.Progress))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.status())
	b.WriteString("\n")

	return b.String()
}

func (m Model) status() string {
	switch {
	case m.Done && m.Result.Summary.Cancelled:
		return statusStyle.Render("Cancelled.")
	case m.Done:
		s := m.Result.Summary
		return subtitleStyle.Render(fmt.Sprintf("%d file(s) done, %d failed, %d output(s) in %s",
			s.Files, s.Failed, len(s.Outputs), time.Since(m.StartTime).Round(time.Second)))
	case m.Cancelling:
		return statusStyle.Render("Cancelling...")
	}

	return subtitleStyle.Render("Press ctrl+c to cancel")
}
