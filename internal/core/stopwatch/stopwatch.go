package stopwatch

import (
	"sync"
	"time"

	"lapwatch/internal/core/model"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// Options contains runtime dependencies for a Stopwatch.
type Options struct {
	Clock  clockwork.Clock
	Logger *log.Logger
}

// Snapshot is a consistent view of a Stopwatch for rendering.
type Snapshot struct {
	State    State
	Elapsed  time.Duration
	Laps     []Lap
	Extremes Extremes
}

// Stopwatch owns one elapsed-time accumulator and its lap history, and
// publishes ticks while running.
type Stopwatch struct {
	mu         sync.Mutex
	id         string
	clock      clockwork.Clock
	logger     *log.Logger
	config     model.StopwatchConfig
	acc        *Accumulator
	laps       LapRecorder
	events     []chan Event
	stopTick   chan struct{}
	generation uint64
	closed     bool
}

// New creates a stopped Stopwatch with the provided configuration.
func New(config model.StopwatchConfig, options Options) *Stopwatch {
	if options.Clock == nil {
		options.Clock = clockwork.NewRealClock()
	}
	if options.Logger == nil {
		options.Logger = log.Default()
	}
	id := uuid.NewString()

	return &Stopwatch{
		id:     id,
		clock:  options.Clock,
		logger: options.Logger.With("stopwatch", id[:8]),
		config: config.Normalized(),
		acc:    NewAccumulator(options.Clock),
	}
}

// ID returns the unique identifier of this stopwatch instance.
func (sw *Stopwatch) ID() string {
	return sw.id
}

// Subscribe registers a new observer channel.
func (sw *Stopwatch) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	sw.mu.Lock()
	defer sw.mu.Unlock()
	if sw.closed {
		close(ch)
		return ch
	}
	sw.events = append(sw.events, ch)
	return ch
}

// Start begins or resumes counting. Starting a running stopwatch is a no-op.
func (sw *Stopwatch) Start() {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	sw.startLocked()
}

// Pause freezes the elapsed time. Pausing a stopped stopwatch is a no-op.
func (sw *Stopwatch) Pause() {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	sw.pauseLocked()
}

// Toggle pauses a running stopwatch or starts a stopped one, and returns
// the resulting state.
func (sw *Stopwatch) Toggle() State {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	if sw.acc.Running() {
		sw.pauseLocked()
	} else {
		sw.startLocked()
	}
	return sw.stateLocked()
}

// Reset stops the stopwatch, zeroes elapsed time and drops all laps.
func (sw *Stopwatch) Reset() {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	if sw.closed {
		return
	}
	sw.stopTickerLocked()
	sw.acc.Reset()
	sw.laps.Reset()
	sw.logger.Debug("stopwatch reset")
	sw.emitLocked(sw.eventLocked(EventReset, 0))
}

// RecordLap records a split at the current elapsed time.
func (sw *Stopwatch) RecordLap() Lap {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	elapsed := sw.acc.Elapsed()
	lap := sw.laps.Record(elapsed)
	sw.logger.Debug("lap recorded", "number", lap.Number, "split", lap.Split, "total", lap.Total)

	event := sw.eventLocked(EventLap, elapsed)
	event.Lap = &lap
	sw.emitLocked(event)
	return lap
}

// ClearLaps drops all laps without touching elapsed time. The next lap is
// measured from the current elapsed time.
func (sw *Stopwatch) ClearLaps() {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	elapsed := sw.acc.Elapsed()
	sw.laps.Clear(elapsed)
	sw.logger.Debug("laps cleared", "baseline", elapsed)
	sw.emitLocked(sw.eventLocked(EventLapsCleared, elapsed))
}

// Elapsed returns the current elapsed time.
func (sw *Stopwatch) Elapsed() time.Duration {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	return sw.acc.Elapsed()
}

// Running reports whether the stopwatch is counting.
func (sw *Stopwatch) Running() bool {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	return sw.acc.Running()
}

// State returns the current mode.
func (sw *Stopwatch) State() State {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	return sw.stateLocked()
}

// Laps returns the recorded laps in display order.
func (sw *Stopwatch) Laps() []Lap {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	return sw.lapsLocked()
}

// Best returns the lap with the shortest split.
func (sw *Stopwatch) Best() (Lap, bool) {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	return sw.laps.Best()
}

// Worst returns the lap with the longest split.
func (sw *Stopwatch) Worst() (Lap, bool) {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	return sw.laps.Worst()
}

// Snapshot returns state, elapsed time and laps read under one lock.
func (sw *Stopwatch) Snapshot() Snapshot {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	return Snapshot{
		State:    sw.stateLocked(),
		Elapsed:  sw.acc.Elapsed(),
		Laps:     sw.lapsLocked(),
		Extremes: sw.laps.Extremes(),
	}
}

// Config returns the active configuration.
func (sw *Stopwatch) Config() model.StopwatchConfig {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	return sw.config
}

// UpdateConfig replaces the configuration. A running stopwatch restarts
// its ticker with the new interval; elapsed time is unaffected.
func (sw *Stopwatch) UpdateConfig(config model.StopwatchConfig) {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	config = config.Normalized()
	intervalChanged := config.TickInterval != sw.config.TickInterval
	sw.config = config
	if intervalChanged && sw.acc.Running() && !sw.closed {
		sw.stopTickerLocked()
		sw.startTickerLocked()
	}
}

// Close stops the ticker and closes observers.
func (sw *Stopwatch) Close() {
	sw.mu.Lock()
	if sw.closed {
		sw.mu.Unlock()
		return
	}
	sw.closed = true
	sw.stopTickerLocked()
	events := sw.events
	sw.events = nil
	sw.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

func (sw *Stopwatch) startLocked() {
	if sw.closed || !sw.acc.Start() {
		return
	}
	sw.startTickerLocked()
	sw.logger.Debug("stopwatch started", "elapsed", sw.acc.Elapsed())
	sw.emitLocked(sw.eventLocked(EventStateChange, sw.acc.Elapsed()))
}

func (sw *Stopwatch) pauseLocked() {
	if !sw.acc.Pause() {
		return
	}
	sw.stopTickerLocked()
	sw.logger.Debug("stopwatch paused", "elapsed", sw.acc.Elapsed())
	sw.emitLocked(sw.eventLocked(EventStateChange, sw.acc.Elapsed()))
}

func (sw *Stopwatch) startTickerLocked() {
	sw.generation++
	stop := make(chan struct{})
	sw.stopTick = stop
	go sw.run(sw.clock.NewTicker(sw.config.TickInterval), stop, sw.generation)
}

// stopTickerLocked also bumps the generation so that a tick already
// waiting on the mutex is discarded.
func (sw *Stopwatch) stopTickerLocked() {
	if sw.stopTick != nil {
		close(sw.stopTick)
		sw.stopTick = nil
	}
	sw.generation++
}

func (sw *Stopwatch) run(ticker clockwork.Ticker, stop <-chan struct{}, generation uint64) {
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.Chan():
			sw.tick(generation)
		}
	}
}

func (sw *Stopwatch) tick(generation uint64) {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	if generation != sw.generation || !sw.acc.Running() {
		return
	}
	sw.emitLocked(sw.eventLocked(EventTick, sw.acc.Tick()))
}

func (sw *Stopwatch) stateLocked() State {
	if sw.acc.Running() {
		return StateRunning
	}
	return StateStopped
}

func (sw *Stopwatch) lapsLocked() []Lap {
	if sw.config.NewestFirst {
		return sw.laps.NewestFirst()
	}
	return sw.laps.Laps()
}

func (sw *Stopwatch) eventLocked(eventType EventType, elapsed time.Duration) Event {
	return Event{
		Type:        eventType,
		StopwatchID: sw.id,
		State:       sw.stateLocked(),
		Elapsed:     elapsed,
		At:          sw.clock.Now(),
	}
}

func (sw *Stopwatch) emitLocked(event Event) {
	for _, ch := range sw.events {
		select {
		case ch <- event:
		default:
		}
	}
}
