// Package tui provides the Bubble Tea pomodoro interface.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/pomotui/internal/app"
	"github.com/verte-zerg/pomotui/internal/timer"
)

const (
	tickInterval  = time.Second
	recentRecords = 10
	barWidth      = 40
)

var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	accentStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	pausedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true)
	bannerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	optionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#B0B0B0")).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A")).
			Padding(1, 2)
)

type tickMsg time.Time

// Model implements the Bubble Tea pomodoro UI around the controller.
type Model struct {
	app      *app.App
	progress progress.Model
	records  table.Model

	width  int
	height int
}

// NewModel constructs the TUI model for the controller.
func NewModel(a *app.App) *Model {
	prog := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	prog.Width = barWidth

	records := table.New(
		table.WithColumns(recordColumns()),
		table.WithHeight(recentRecords),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Foreground(lipgloss.Color("#8C8C8C")).Bold(true)
	styles.Selected = lipgloss.NewStyle()
	records.SetStyles(styles)

	m := &Model{
		app:      a,
		progress: prog,
		records:  records,
	}
	m.refreshRecords()
	return m
}

func recordColumns() []table.Column {
	return []table.Column{
		{Title: "Completed", Width: 20},
		{Title: "Mode", Width: 14},
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		width := barWidth
		if msg.Width > 0 && msg.Width-12 < width {
			width = msg.Width - 12
		}
		if width < 1 {
			width = 1
		}
		m.progress.Width = width
		return m, nil
	case tickMsg:
		m.app.Tick()
		if !m.app.Running {
			return m, tea.Quit
		}
		return m, tickCmd()
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if cmd, ok := m.commandForKey(msg); ok {
			m.app.Handle(cmd)
			m.refreshRecords()
		}
		if !m.app.Running {
			return m, tea.Quit
		}
		return m, nil
	default:
		return m, nil
	}
}

// commandForKey maps a key press to a controller command for the active
// screen and dialog state. The controller owns all semantics; this table
// only routes.
func (m *Model) commandForKey(msg tea.KeyMsg) (app.Command, bool) {
	key := msg.String()
	switch m.app.Screen {
	case app.ScreenModeSelection:
		switch key {
		case "q":
			return app.CmdQuit, true
		case "j", "down":
			return app.CmdNavigateDown, true
		case "k", "up":
			return app.CmdNavigateUp, true
		case "enter":
			return app.CmdConfirm, true
		case "a":
			return app.CmdOpenAnalytics, true
		}
	case app.ScreenTimer:
		if m.app.ShowExitConfirm {
			switch key {
			case "y", "enter":
				return app.CmdConfirmAbandon, true
			case "n", "esc":
				return app.CmdCancelAbandon, true
			}
			return 0, false
		}
		if m.app.WaitingForNextPhase {
			switch key {
			case "enter", " ":
				return app.CmdAcknowledgeTransition, true
			case "q":
				return app.CmdQuit, true
			case "m", "esc":
				return app.CmdRequestAbandon, true
			}
			return 0, false
		}
		switch key {
		case "q":
			return app.CmdQuit, true
		case " ":
			return app.CmdTogglePause, true
		case "r":
			return app.CmdReset, true
		case "s":
			return app.CmdSkip, true
		case "m", "esc":
			return app.CmdRequestAbandon, true
		}
	case app.ScreenAnalytics:
		switch key {
		case "q":
			return app.CmdQuit, true
		case "b", "esc":
			return app.CmdBack, true
		case "c":
			return app.CmdClearAnalytics, true
		}
	}
	return 0, false
}

func (m *Model) refreshRecords() {
	records := m.app.Analytics.Records()
	start := 0
	if len(records) > recentRecords {
		start = len(records) - recentRecords
	}
	rows := make([]table.Row, 0, len(records)-start)
	// Newest first.
	for i := len(records) - 1; i >= start; i-- {
		rows = append(rows, table.Row{
			records[i].Timestamp.Format("2006-01-02 15:04"),
			records[i].Mode,
		})
	}
	m.records.SetRows(rows)
}

// View implements tea.Model.
func (m *Model) View() string {
	var content string
	switch m.app.Screen {
	case app.ScreenModeSelection:
		content = m.viewModeSelection()
	case app.ScreenTimer:
		content = m.viewTimer()
	case app.ScreenAnalytics:
		content = m.viewAnalytics()
	}
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) viewModeSelection() string {
	lines := []string{titleStyle.Render("pomotui"), ""}
	options := []timer.Mode{timer.ModeShort, timer.ModeLong}
	for i, mode := range options {
		style := optionStyle
		if i == m.app.SelectedMode {
			style = selectedStyle
		}
		lines = append(lines, style.Render(mode.String()))
	}
	lines = append(lines, "", footerStyle.Render("j/k move · enter start · a analytics · q quit"))
	return strings.Join(lines, "\n")
}

func (m *Model) viewTimer() string {
	t := m.app.Timer
	if t == nil {
		return ""
	}

	lines := []string{
		accentStyle.Render(t.Phase().String()) + mutedStyle.Render("  ·  "+t.Mode().String()),
		"",
		titleStyle.Render(t.FormatRemaining()),
		m.progress.ViewAs(t.Progress()),
	}

	switch {
	case m.app.ShowExitConfirm:
		lines = append(lines, "", dialogStyle.Render("Abandon this session?\n\ny abandon · n keep going"))
	case m.app.WaitingForNextPhase:
		next := timer.PhaseBreak
		if t.Phase() == timer.PhaseBreak {
			next = timer.PhaseWork
		}
		if m.app.ShowCompletionMessage {
			lines = append(lines, "", bannerStyle.Render("Pomodoro complete!"))
		}
		lines = append(lines, "", mutedStyle.Render(fmt.Sprintf("Press enter to start %s", strings.ToLower(next.String()))))
	default:
		if t.Paused() {
			lines = append(lines, "", pausedStyle.Render("paused"))
		}
		if m.app.ShowCompletionMessage {
			lines = append(lines, "", bannerStyle.Render("Pomodoro complete!"))
		}
		lines = append(lines, "", footerStyle.Render("space pause · r reset · s skip · m menu · q quit"))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) viewAnalytics() string {
	a := m.app.Analytics
	summary := []string{
		fmt.Sprintf("Total   %d", a.TotalCount()),
		fmt.Sprintf("Today   %d", a.TodayCount()),
		fmt.Sprintf("Week    %d", a.WeekCount()),
		fmt.Sprintf("Streak  %d days", a.CurrentStreak()),
		fmt.Sprintf("Short   %d · Long %d", a.ShortModeCount(), a.LongModeCount()),
	}
	lines := []string{titleStyle.Render("Analytics"), "", strings.Join(summary, "\n"), ""}
	if a.TotalCount() > 0 {
		lines = append(lines, m.records.View(), "")
	} else {
		lines = append(lines, mutedStyle.Render("No pomodoros recorded yet."), "")
	}
	lines = append(lines, footerStyle.Render("b back · c clear · q quit"))
	return strings.Join(lines, "\n")
}
