package stopwatch

import (
	"io"
	"testing"
	"time"

	"lapwatch/internal/core/model"

	"github.com/charmbracelet/log"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStopwatch(t *testing.T, config model.StopwatchConfig) (*Stopwatch, *clockwork.FakeClock) {
	t.Helper()
	clock := clockwork.NewFakeClock()
	sw := New(config, Options{Clock: clock, Logger: log.New(io.Discard)})
	t.Cleanup(sw.Close)
	return sw, clock
}

func nextEvent(t *testing.T, events <-chan Event, want EventType) Event {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case event, ok := <-events:
			require.True(t, ok, "event channel closed while waiting for %s", want)
			if event.Type == want {
				return event
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %s event", want)
		}
	}
}

func TestStopwatchScenario(t *testing.T) {
	sw, clock := newTestStopwatch(t, model.StopwatchConfig{})

	sw.Start()
	clock.Advance(1000 * time.Millisecond)
	sw.Pause()
	assert.Equal(t, 1000*time.Millisecond, sw.Elapsed())

	sw.Start()
	clock.Advance(1000 * time.Millisecond)
	sw.Pause()
	assert.Equal(t, 2000*time.Millisecond, sw.Elapsed())

	lap := sw.RecordLap()
	assert.Equal(t, 2000*time.Millisecond, lap.Split)
	assert.Equal(t, 2000*time.Millisecond, lap.Total)

	sw.Reset()
	assert.Zero(t, sw.Elapsed())
	assert.Empty(t, sw.Laps())
	assert.Equal(t, StateStopped, sw.State())
}

func TestStopwatchLapsFollowElapsed(t *testing.T) {
	sw, clock := newTestStopwatch(t, model.StopwatchConfig{})

	sw.Start()
	for _, step := range []time.Duration{300, 450, 125} {
		clock.Advance(step * time.Millisecond)
		sw.RecordLap()
	}

	laps := sw.Laps()
	require.Len(t, laps, 3)
	assert.Equal(t, []time.Duration{300 * time.Millisecond, 450 * time.Millisecond, 125 * time.Millisecond},
		[]time.Duration{laps[0].Split, laps[1].Split, laps[2].Split})
	assert.Equal(t, 875*time.Millisecond, laps[2].Total)

	best, ok := sw.Best()
	require.True(t, ok)
	assert.Equal(t, 3, best.Number)
	worst, ok := sw.Worst()
	require.True(t, ok)
	assert.Equal(t, 2, worst.Number)
}

func TestStopwatchClearLapsKeepsBaseline(t *testing.T) {
	sw, clock := newTestStopwatch(t, model.StopwatchConfig{})

	sw.Start()
	clock.Advance(500 * time.Millisecond)
	sw.RecordLap()
	clock.Advance(300 * time.Millisecond)

	sw.ClearLaps()
	assert.Empty(t, sw.Laps())
	assert.Equal(t, 800*time.Millisecond, sw.Elapsed(), "clearing laps must not touch elapsed time")

	clock.Advance(200 * time.Millisecond)
	lap := sw.RecordLap()
	assert.Equal(t, Lap{Number: 1, Split: 200 * time.Millisecond, Total: time.Second}, lap)
}

func TestStopwatchResetWhileRunning(t *testing.T) {
	sw, clock := newTestStopwatch(t, model.StopwatchConfig{})

	sw.Start()
	clock.Advance(3 * time.Second)
	sw.RecordLap()
	sw.Reset()

	clock.Advance(time.Second)
	assert.Zero(t, sw.Elapsed())
	assert.False(t, sw.Running())

	lap := sw.RecordLap()
	assert.Zero(t, lap.Split, "after reset laps measure from zero")
}

func TestStopwatchToggle(t *testing.T) {
	sw, clock := newTestStopwatch(t, model.StopwatchConfig{})

	assert.Equal(t, StateRunning, sw.Toggle())
	clock.Advance(250 * time.Millisecond)
	assert.Equal(t, StateStopped, sw.Toggle())
	assert.Equal(t, 250*time.Millisecond, sw.Elapsed())
}

func TestStopwatchNewestFirst(t *testing.T) {
	sw, clock := newTestStopwatch(t, model.StopwatchConfig{NewestFirst: true})

	sw.Start()
	clock.Advance(time.Second)
	sw.RecordLap()
	clock.Advance(time.Second)
	sw.RecordLap()

	snapshot := sw.Snapshot()
	require.Len(t, snapshot.Laps, 2)
	assert.Equal(t, 2, snapshot.Laps[0].Number)
	assert.Equal(t, StateRunning, snapshot.State)
	assert.True(t, snapshot.Extremes.Valid)
}

func TestStopwatchPublishesTicks(t *testing.T) {
	sw, clock := newTestStopwatch(t, model.StopwatchConfig{TickInterval: 10 * time.Millisecond})
	events := sw.Subscribe(16)

	sw.Start()
	started := nextEvent(t, events, EventStateChange)
	assert.Equal(t, StateRunning, started.State)
	assert.Equal(t, sw.ID(), started.StopwatchID)

	clock.Advance(10 * time.Millisecond)
	tick := nextEvent(t, events, EventTick)
	assert.Equal(t, StateRunning, tick.State)
	assert.Equal(t, 10*time.Millisecond, tick.Elapsed)
}

func TestStopwatchPublishesLapEvents(t *testing.T) {
	sw, clock := newTestStopwatch(t, model.StopwatchConfig{})
	events := sw.Subscribe(16)

	sw.Start()
	clock.Advance(time.Second)
	sw.Pause()
	sw.RecordLap()

	event := nextEvent(t, events, EventLap)
	require.NotNil(t, event.Lap)
	assert.Equal(t, time.Second, event.Lap.Total)

	sw.ClearLaps()
	cleared := nextEvent(t, events, EventLapsCleared)
	assert.Equal(t, time.Second, cleared.Elapsed)

	sw.Reset()
	reset := nextEvent(t, events, EventReset)
	assert.Zero(t, reset.Elapsed)
	assert.Equal(t, StateStopped, reset.State)
}

func TestStopwatchDiscardsStaleTick(t *testing.T) {
	sw, clock := newTestStopwatch(t, model.StopwatchConfig{})
	events := sw.Subscribe(16)

	sw.Start()
	sw.mu.Lock()
	generation := sw.generation
	sw.mu.Unlock()

	clock.Advance(time.Second)
	sw.Reset()

	// A tick from the cancelled segment must not resurrect elapsed time.
	sw.tick(generation)
	assert.Zero(t, sw.Elapsed())

	for {
		select {
		case event := <-events:
			if event.Type == EventReset {
				select {
				case late := <-events:
					assert.NotEqual(t, EventTick, late.Type)
				default:
				}
				return
			}
		case <-time.After(2 * time.Second):
			t.Fatal("reset event not published")
		}
	}
}

func TestStopwatchUpdateConfigKeepsElapsed(t *testing.T) {
	sw, clock := newTestStopwatch(t, model.StopwatchConfig{})

	sw.Start()
	clock.Advance(700 * time.Millisecond)
	sw.UpdateConfig(model.StopwatchConfig{TickInterval: 50 * time.Millisecond, NewestFirst: true})

	assert.Equal(t, 50*time.Millisecond, sw.Config().TickInterval)
	assert.True(t, sw.Running())
	clock.Advance(300 * time.Millisecond)
	assert.Equal(t, time.Second, sw.Elapsed())

	sw.UpdateConfig(model.StopwatchConfig{})
	assert.Equal(t, model.DefaultTickInterval, sw.Config().TickInterval)
}

func TestStopwatchCloseClosesSubscribers(t *testing.T) {
	sw, _ := newTestStopwatch(t, model.StopwatchConfig{})
	events := sw.Subscribe(1)

	sw.Close()
	sw.Close()

	_, ok := <-events
	assert.False(t, ok)

	late := sw.Subscribe(1)
	_, ok = <-late
	assert.False(t, ok)

	sw.Start()
	assert.False(t, sw.Running(), "a closed stopwatch does not start")
}

func TestStopwatchInstancesAreIndependent(t *testing.T) {
	first, clock := newTestStopwatch(t, model.StopwatchConfig{})
	second := New(model.StopwatchConfig{}, Options{Clock: clock, Logger: log.New(io.Discard)})
	t.Cleanup(second.Close)

	first.Start()
	clock.Advance(time.Second)
	second.Start()
	clock.Advance(time.Second)

	assert.Equal(t, 2*time.Second, first.Elapsed())
	assert.Equal(t, time.Second, second.Elapsed())
	assert.NotEqual(t, first.ID(), second.ID())
}
