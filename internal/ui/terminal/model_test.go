package terminal

import (
	"io"
	"testing"
	"time"

	"lapwatch/internal/core/model"
	"lapwatch/internal/core/stopwatch"
	"lapwatch/internal/input"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func newTestModel(t *testing.T) (tea.Model, *stopwatch.Stopwatch, *clockwork.FakeClock) {
	t.Helper()
	clock := clockwork.NewFakeClock()
	sw := stopwatch.New(model.StopwatchConfig{NewestFirst: true}, stopwatch.Options{Clock: clock, Logger: log.New(io.Discard)})
	t.Cleanup(sw.Close)
	return NewModel(sw, input.DefaultKeymap()), sw, clock
}

func TestModelKeysDriveStopwatch(t *testing.T) {
	m, sw, clock := newTestModel(t)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace})
	require.True(t, sw.Running())

	clock.Advance(2 * time.Second)
	m, _ = m.Update(runeKey('l'))
	clock.Advance(time.Second)
	m, _ = m.Update(runeKey('l'))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace})
	assert.False(t, sw.Running())

	view := m.View()
	assert.Contains(t, view, "00:00:03.00")
	assert.Contains(t, view, "00:00:02.00")
	assert.Contains(t, view, "00:00:01.00")
	assert.Contains(t, view, "stopped")

	m, _ = m.Update(runeKey('r'))
	assert.Zero(t, sw.Elapsed())
	assert.NotContains(t, m.View(), "Total")
}

func TestModelTickUpdatesElapsedOnly(t *testing.T) {
	m, _, _ := newTestModel(t)

	m, cmd := m.Update(eventMsg{Type: stopwatch.EventTick, Elapsed: 90 * time.Second})
	assert.NotNil(t, cmd, "model keeps listening for events")
	assert.Contains(t, m.View(), "00:01:30.00")
}

func TestModelQuits(t *testing.T) {
	m, _, _ := newTestModel(t)

	_, cmd := m.Update(runeKey('q'))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())

	_, cmd = m.Update(closedMsg{})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestWaitForEvent(t *testing.T) {
	events := make(chan stopwatch.Event, 1)
	events <- stopwatch.Event{Type: stopwatch.EventLap}

	msg := waitForEvent(events)()
	assert.Equal(t, eventMsg{Type: stopwatch.EventLap}, msg)

	close(events)
	assert.Equal(t, closedMsg{}, waitForEvent(events)())
}

func TestHelpListsBindings(t *testing.T) {
	keymap := input.DefaultKeymap()
	keymap.ClearLaps = "C"
	m := Model{keymap: keymap}

	help := m.help()
	assert.Contains(t, help, "Space start/pause")
	assert.Contains(t, help, "C clear laps")
}
