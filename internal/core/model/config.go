package model

import "time"

const (
	// DefaultTickInterval refreshes the display at centisecond resolution.
	DefaultTickInterval = 10 * time.Millisecond

	MinTickInterval = time.Millisecond
	MaxTickInterval = time.Second
)

// StopwatchConfig contains runtime settings for the Stopwatch.
type StopwatchConfig struct {
	TickInterval time.Duration
	NewestFirst  bool
}

// Normalized returns a copy with the tick interval passed through
// ClampTickInterval.
func (config StopwatchConfig) Normalized() StopwatchConfig {
	config.TickInterval = ClampTickInterval(config.TickInterval)
	return config
}

// ClampTickInterval maps a non-positive interval to the default and bounds
// the rest to [MinTickInterval, MaxTickInterval].
func ClampTickInterval(interval time.Duration) time.Duration {
	switch {
	case interval <= 0:
		return DefaultTickInterval
	case interval < MinTickInterval:
		return MinTickInterval
	case interval > MaxTickInterval:
		return MaxTickInterval
	default:
		return interval
	}
}
