package stopwatch

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// Accumulator tracks running time across start/pause cycles.
// It is not safe for concurrent use; Stopwatch serializes access to it.
type Accumulator struct {
	clock   clockwork.Clock
	running bool
	anchor  time.Time
	elapsed time.Duration
}

// NewAccumulator creates a stopped accumulator reading time from clock.
func NewAccumulator(clock clockwork.Clock) *Accumulator {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Accumulator{clock: clock}
}

// Start resumes counting from the current elapsed value.
// It reports whether the accumulator changed state.
func (acc *Accumulator) Start() bool {
	if acc.running {
		return false
	}
	acc.anchor = acc.clock.Now().Add(-acc.elapsed)
	acc.running = true
	return true
}

// Pause freezes the elapsed value. It reports whether the accumulator
// changed state.
func (acc *Accumulator) Pause() bool {
	if !acc.running {
		return false
	}
	acc.elapsed = acc.live()
	acc.running = false
	acc.anchor = time.Time{}
	return true
}

// Reset stops the accumulator and zeroes elapsed time.
func (acc *Accumulator) Reset() {
	acc.running = false
	acc.anchor = time.Time{}
	acc.elapsed = 0
}

// Running reports whether time is currently being accumulated.
func (acc *Accumulator) Running() bool {
	return acc.running
}

// Elapsed returns the accumulated duration. While running this is a live
// read of the clock, independent of the last tick.
func (acc *Accumulator) Elapsed() time.Duration {
	if !acc.running {
		return acc.elapsed
	}
	return acc.live()
}

// Tick refreshes the cached elapsed value from the anchor and returns it.
func (acc *Accumulator) Tick() time.Duration {
	if acc.running {
		acc.elapsed = acc.live()
	}
	return acc.elapsed
}

// live never reports less than the cached value, so reads stay monotonic.
func (acc *Accumulator) live() time.Duration {
	current := acc.clock.Since(acc.anchor)
	if current < acc.elapsed {
		return acc.elapsed
	}
	return current
}
