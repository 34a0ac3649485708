// Package terminal renders the stopwatch as a bubbletea program.
package terminal

import (
	"fmt"
	"strings"

	"lapwatch/internal/core/format"
	"lapwatch/internal/core/stopwatch"
	"lapwatch/internal/input"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const maxVisibleLaps = 12

var (
	timeStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#E8BE42")).Padding(1, 2)
	stateStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).PaddingLeft(2)
	headStyle  = lipgloss.NewStyle().Bold(true).PaddingLeft(2)
	rowStyle   = lipgloss.NewStyle().PaddingLeft(2)
	bestStyle  = rowStyle.Foreground(lipgloss.Color("#2EA043"))
	worstStyle = rowStyle.Foreground(lipgloss.Color("#DA3633"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(1, 2, 0)
)

type eventMsg stopwatch.Event

type closedMsg struct{}

// Model is the bubbletea model for one stopwatch.
type Model struct {
	stopwatch *stopwatch.Stopwatch
	keymap    input.Keymap
	events    <-chan stopwatch.Event
	snapshot  stopwatch.Snapshot
	width     int
}

// NewModel subscribes to sw and returns a model rendering it.
func NewModel(sw *stopwatch.Stopwatch, keymap input.Keymap) Model {
	return Model{
		stopwatch: sw,
		keymap:    keymap,
		events:    sw.Subscribe(32),
		snapshot:  sw.Snapshot(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tea.SetWindowTitle("LapWatch"), waitForEvent(m.events))
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		if msg.Type == stopwatch.EventTick {
			m.snapshot.Elapsed = msg.Elapsed
		} else {
			m.snapshot = m.stopwatch.Snapshot()
		}
		return m, waitForEvent(m.events)
	case closedMsg:
		return m, tea.Quit
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		key := keyName(msg)
		if key == "ctrl+c" {
			return m, tea.Quit
		}
		if m.keymap.DispatchKey(m.stopwatch, key) != input.ActionNone {
			m.snapshot = m.stopwatch.Snapshot()
			return m, nil
		}
		if key == "q" || key == "esc" {
			return m, tea.Quit
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(timeStyle.Render(format.Clock(m.snapshot.Elapsed)))
	b.WriteString("\n")
	b.WriteString(stateStyle.Render(string(m.snapshot.State)))
	b.WriteString("\n\n")

	if len(m.snapshot.Laps) > 0 {
		b.WriteString(headStyle.Render(fmt.Sprintf("%-4s %-12s %-12s", "#", "Lap", "Total")))
		b.WriteString("\n")
		for i, lap := range m.snapshot.Laps {
			if i == maxVisibleLaps {
				b.WriteString(rowStyle.Render(fmt.Sprintf("… %d more", len(m.snapshot.Laps)-maxVisibleLaps)))
				b.WriteString("\n")
				break
			}
			b.WriteString(lapStyle(m.snapshot.Extremes, lap).Render(
				fmt.Sprintf("%-4d %-12s %-12s", lap.Number, format.Clock(lap.Split), format.Clock(lap.Total))))
			b.WriteString("\n")
		}
	}

	b.WriteString(helpStyle.Render(m.help()))
	b.WriteString("\n")
	return b.String()
}

func (m Model) help() string {
	parts := []string{
		fmt.Sprintf("%s start/pause", m.keymap.Toggle),
		fmt.Sprintf("%s lap", m.keymap.Lap),
		fmt.Sprintf("%s reset", m.keymap.Reset),
	}
	if m.keymap.ClearLaps != "" {
		parts = append(parts, fmt.Sprintf("%s clear laps", m.keymap.ClearLaps))
	}
	parts = append(parts, "q quit")
	return strings.Join(parts, " • ")
}

func lapStyle(extremes stopwatch.Extremes, lap stopwatch.Lap) lipgloss.Style {
	switch {
	case extremes.IsBest(lap):
		return bestStyle
	case extremes.IsWorst(lap):
		return worstStyle
	default:
		return rowStyle
	}
}

func keyName(msg tea.KeyMsg) string {
	if msg.Type == tea.KeySpace {
		return "space"
	}
	return msg.String()
}

func waitForEvent(events <-chan stopwatch.Event) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return closedMsg{}
		}
		return eventMsg(event)
	}
}
