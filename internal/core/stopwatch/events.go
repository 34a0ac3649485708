package stopwatch

import "time"

// State represents the Stopwatch mode.
type State string

const (
	StateStopped State = "stopped"
	StateRunning State = "running"
)

// EventType defines the type of Stopwatch event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventTick        EventType = "tick"
	EventLap         EventType = "lap"
	EventLapsCleared EventType = "laps_cleared"
	EventReset       EventType = "reset"
)

// Event represents a Stopwatch update for observers.
type Event struct {
	Type        EventType
	StopwatchID string
	State       State
	Elapsed     time.Duration
	Lap         *Lap
	At          time.Time
}
