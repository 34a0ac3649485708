package stopwatch

import "time"

// Lap is a recorded split.
type Lap struct {
	// Number is the 1-based position in the current lap list.
	Number int
	// Split is the time since the previous lap, or since the baseline for
	// the first lap.
	Split time.Duration
	// Total is the accumulated elapsed time when the lap was taken.
	Total time.Duration
}

// LapRecorder keeps the ordered lap history.
// It is not safe for concurrent use.
type LapRecorder struct {
	laps     []Lap
	baseline time.Duration
}

// Record appends a lap taken at the given accumulated elapsed time.
func (rec *LapRecorder) Record(total time.Duration) Lap {
	lap := Lap{
		Number: len(rec.laps) + 1,
		Split:  total - rec.baseline,
		Total:  total,
	}
	rec.laps = append(rec.laps, lap)
	rec.baseline = total
	return lap
}

// Clear drops all laps while the stopwatch keeps its elapsed time.
// The next lap is measured from baseline, normally the current elapsed
// value, not from zero.
func (rec *LapRecorder) Clear(baseline time.Duration) {
	rec.laps = nil
	rec.baseline = baseline
}

// Reset drops all laps and measures the next lap from zero.
func (rec *LapRecorder) Reset() {
	rec.laps = nil
	rec.baseline = 0
}

// Len returns the number of recorded laps.
func (rec *LapRecorder) Len() int {
	return len(rec.laps)
}

// Baseline returns the total the next lap is measured from.
func (rec *LapRecorder) Baseline() time.Duration {
	return rec.baseline
}

// Laps returns a copy of the laps in recording order.
func (rec *LapRecorder) Laps() []Lap {
	if len(rec.laps) == 0 {
		return nil
	}
	return append([]Lap(nil), rec.laps...)
}

// NewestFirst returns a copy of the laps with the most recent first.
func (rec *LapRecorder) NewestFirst() []Lap {
	laps := rec.Laps()
	for left, right := 0, len(laps)-1; left < right; left, right = left+1, right-1 {
		laps[left], laps[right] = laps[right], laps[left]
	}
	return laps
}

// Best returns the earliest lap with the shortest split.
func (rec *LapRecorder) Best() (Lap, bool) {
	return rec.pick(func(candidate, current Lap) bool {
		return candidate.Split < current.Split
	})
}

// Worst returns the earliest lap with the longest split.
func (rec *LapRecorder) Worst() (Lap, bool) {
	return rec.pick(func(candidate, current Lap) bool {
		return candidate.Split > current.Split
	})
}

// Extremes returns the best and worst splits of the recorded laps.
func (rec *LapRecorder) Extremes() Extremes {
	return ExtremesOf(rec.laps)
}

func (rec *LapRecorder) pick(better func(candidate, current Lap) bool) (Lap, bool) {
	if len(rec.laps) == 0 {
		return Lap{}, false
	}
	chosen := rec.laps[0]
	for _, lap := range rec.laps[1:] {
		if better(lap, chosen) {
			chosen = lap
		}
	}
	return chosen, true
}

// Extremes holds the shortest and longest split of a lap set. Laps are
// matched by value, so every lap tying an extreme is highlighted.
type Extremes struct {
	Best  time.Duration
	Worst time.Duration
	Valid bool
}

// ExtremesOf computes the extremes over laps.
func ExtremesOf(laps []Lap) Extremes {
	if len(laps) == 0 {
		return Extremes{}
	}
	extremes := Extremes{Best: laps[0].Split, Worst: laps[0].Split, Valid: true}
	for _, lap := range laps[1:] {
		if lap.Split < extremes.Best {
			extremes.Best = lap.Split
		}
		if lap.Split > extremes.Worst {
			extremes.Worst = lap.Split
		}
	}
	return extremes
}

// IsBest reports whether lap has the shortest split.
func (extremes Extremes) IsBest(lap Lap) bool {
	return extremes.Valid && lap.Split == extremes.Best
}

// IsWorst reports whether lap has the longest split.
func (extremes Extremes) IsWorst(lap Lap) bool {
	return extremes.Valid && lap.Split == extremes.Worst
}
