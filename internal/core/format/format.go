// Package format renders durations for stopwatch displays.
package format

import (
	"fmt"
	"time"
)

const centisecond = 10 * time.Millisecond

// Clock formats value as HH:MM:SS.cc. Centiseconds are truncated and
// negative values render as zero.
func Clock(value time.Duration) string {
	hours, minutes, seconds, centis := split(value)
	return fmt.Sprintf("%02d:%02d:%02d.%02d", hours, minutes, seconds, centis)
}

// Compact drops the hour field below one hour.
func Compact(value time.Duration) string {
	hours, minutes, seconds, centis := split(value)
	if hours > 0 {
		return Clock(value)
	}
	return fmt.Sprintf("%02d:%02d.%02d", minutes, seconds, centis)
}

func split(value time.Duration) (hours, minutes, seconds, centis int64) {
	if value < 0 {
		value = 0
	}
	total := int64(value / centisecond)
	hours = total / 360000
	minutes = total / 6000 % 60
	seconds = total / 100 % 60
	centis = total % 100
	return hours, minutes, seconds, centis
}

// Coarse formats value to whole seconds as MM:SS, or H:MM:SS from one hour.
func Coarse(value time.Duration) string {
	hours, minutes, seconds, _ := split(value)
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
