// Package tui provides the interactive task board.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/thinktodo/tt/internal/domain"
)

// Colors used across the board.
var (
	colorPrimary = lipgloss.Color("#6C5CE7")
	colorMuted   = lipgloss.Color("#636E72")
	colorActive  = lipgloss.Color("#FDCB6E")
	colorDone    = lipgloss.Color("#00B894")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			Padding(0, 1)
	footerStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1)
	tableStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(colorMuted)
)

// refreshInterval controls how often the board re-reads the store.
const refreshInterval = 2 * time.Second

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Model is the bubbletea model for the task board.
type Model struct {
	tasks domain.TaskRepository
	table table.Model
	err   error
}

// NewModel creates a board backed by the task repository.
func NewModel(tasks domain.TaskRepository) *Model {
	columns := []table.Column{
		{Title: "ID", Width: 16},
		{Title: "Status", Width: 12},
		{Title: "Assignee", Width: 12},
		{Title: "Engine", Width: 10},
		{Title: "Title", Width: 40},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.Bold(true).Foreground(colorPrimary)
	s.Selected = s.Selected.Foreground(colorActive).Bold(true)
	t.SetStyles(s)

	return &Model{tasks: tasks, table: t}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	m.refresh()
	return tick()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			m.refresh()
			return m, nil
		}
	case tickMsg:
		m.refresh()
		return m, tick()
	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 6)
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.err != nil {
		return titleStyle.Render("Think Todo") + "\n\n  " + m.err.Error() + "\n\n" + footerStyle.Render("q: quit")
	}
	return titleStyle.Render("Think Todo") + "\n" +
		tableStyle.Render(m.table.View()) + "\n" +
		footerStyle.Render("r: refresh  q: quit")
}

func (m *Model) refresh() {
	tasks, err := m.tasks.List()
	if err != nil {
		m.err = err
		return
	}
	m.err = nil

	rows := make([]table.Row, 0, len(tasks))
	for _, t := range tasks {
		assignee := t.Assignee
		if assignee == "" {
			assignee = "-"
		}
		engine := t.Engine
		if engine == "" {
			engine = "-"
		}
		rows = append(rows, table.Row{t.ID, statusLabel(t.Status), assignee, engine, t.Title})
	}
	m.table.SetRows(rows)
}

func statusLabel(s domain.Status) string {
	switch s {
	case domain.StatusInProgress:
		return lipgloss.NewStyle().Foreground(colorActive).Render(s.Display())
	case domain.StatusClosed:
		return lipgloss.NewStyle().Foreground(colorDone).Render(s.Display())
	default:
		return s.Display()
	}
}

// Run launches the board and blocks until the user quits.
func Run(tasks domain.TaskRepository) error {
	p := tea.NewProgram(NewModel(tasks), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
