// Package tui renders a Session in the terminal with bubbletea.
package tui

import (
	"fmt"
	"strings"

	"timekeeper/internal/core/timekeeper"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// maxVisibleLaps bounds the lap list so the view fits a small terminal.
const maxVisibleLaps = 10

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	activeTab     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("12")).Padding(0, 1)
	inactiveTab   = lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Padding(0, 1)
	displayStyle  = lipgloss.NewStyle().Bold(true).Padding(1, 2)
	finishedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	noticeStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
)

// Model is the bubbletea model driving one Session.
type Model struct {
	session  *timekeeper.Session
	keys     keyMap
	help     help.Model
	width    int
	quitting bool
}

// New creates a model with the timer tab active.
func New(session *timekeeper.Session) Model {
	session.Activate(timekeeper.TabTimer)
	return Model{
		session: session,
		keys:    defaultKeyMap(),
		help:    help.New(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if msg.run != nil {
			msg.run()
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	countdown := m.session.Countdown()
	stopwatch := m.session.Stopwatch()
	onTimer := m.session.ActiveTab() == timekeeper.TabTimer

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.session.Deactivate()
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Toggle):
		if active := m.session.Active(); active != nil {
			if active.Running() {
				active.Pause()
			} else {
				active.Start()
			}
		}

	case key.Matches(msg, m.keys.Reset):
		if active := m.session.Active(); active != nil {
			active.Reset()
		}

	case key.Matches(msg, m.keys.Lap):
		if !onTimer {
			stopwatch.Lap()
		}

	case key.Matches(msg, m.keys.MinutesUp):
		if onTimer {
			countdown.AdjustMinutes(1)
		}
	case key.Matches(msg, m.keys.MinutesDown):
		if onTimer {
			countdown.AdjustMinutes(-1)
		}
	case key.Matches(msg, m.keys.SecondsUp):
		if onTimer {
			countdown.AdjustSeconds(1)
		}
	case key.Matches(msg, m.keys.SecondsDown):
		if onTimer {
			countdown.AdjustSeconds(-1)
		}
	case key.Matches(msg, m.keys.Apply):
		if onTimer {
			countdown.ApplyConfiguration()
		}

	case key.Matches(msg, m.keys.Switch):
		if onTimer {
			m.session.Activate(timekeeper.TabStopwatch)
		} else {
			m.session.Activate(timekeeper.TabTimer)
		}

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("TimeKeeper"))
	b.WriteString("\n")
	b.WriteString(m.tabsView())
	b.WriteString("\n")

	if m.session.ActiveTab() == timekeeper.TabStopwatch {
		b.WriteString(m.stopwatchView())
	} else {
		b.WriteString(m.countdownView())
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}

func (m Model) tabsView() string {
	timer := inactiveTab.Render("Timer")
	stopwatch := inactiveTab.Render("Stopwatch")
	if m.session.ActiveTab() == timekeeper.TabStopwatch {
		stopwatch = activeTab.Render("Stopwatch")
	} else {
		timer = activeTab.Render("Timer")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, timer, " ", stopwatch)
}

func (m Model) countdownView() string {
	snapshot := m.session.Countdown().Snapshot()

	display := timekeeper.FormatCountdown(snapshot.RemainingSeconds)
	style := displayStyle
	if snapshot.Finished {
		style = style.Inherit(finishedStyle)
	}

	var b strings.Builder
	b.WriteString(style.Render(display))
	b.WriteString("\n")
	if snapshot.State != timekeeper.StateRunning {
		b.WriteString(dimStyle.Render(fmt.Sprintf("Set: %02d:%02d", snapshot.Minutes, snapshot.Seconds)))
		b.WriteString("\n")
	}
	if snapshot.Finished {
		b.WriteString(noticeStyle.Render("Time's Up!"))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) stopwatchView() string {
	snapshot := m.session.Stopwatch().Snapshot()

	var b strings.Builder
	b.WriteString(displayStyle.Render(timekeeper.FormatStopwatch(snapshot.ElapsedMillis)))
	b.WriteString("\n")
	if len(snapshot.Laps) > 0 {
		b.WriteString(titleStyle.Render("Lap Times"))
		b.WriteString("\n")
	}
	for index, lap := range snapshot.Laps {
		if index == maxVisibleLaps {
			b.WriteString(dimStyle.Render(fmt.Sprintf("... %d more", len(snapshot.Laps)-maxVisibleLaps)))
			b.WriteString("\n")
			break
		}
		fmt.Fprintf(&b, "%-8s %s\n", timekeeper.LapLabel(index, len(snapshot.Laps)), timekeeper.FormatStopwatch(lap))
	}
	return b.String()
}
