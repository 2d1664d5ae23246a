package viewport

// DefaultThreshold is the boundary movement, in positions, below which a
// viewport change is ignored.
const DefaultThreshold = 100

// Tracker remembers the last viewport that triggered a recomputation.
//
// Scroll notifications arrive for every sub-line movement. Only changes
// that alter the number of visible ranges, or move a boundary by more than
// the threshold, are significant.
type Tracker struct {
	threshold int
	last      Ranges
}

// NewTracker creates a tracker whose snapshot is initial.
// A non-positive threshold selects DefaultThreshold.
func NewTracker(threshold int, initial Ranges) *Tracker {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Tracker{threshold: threshold, last: initial.Clone()}
}

// Threshold returns the significance threshold.
func (t *Tracker) Threshold() int {
	return t.threshold
}

// Snapshot returns a copy of the last committed viewport.
func (t *Tracker) Snapshot() Ranges {
	return t.last.Clone()
}

// Significant reports whether next differs enough from the snapshot.
// It does not modify the tracker.
func (t *Tracker) Significant(next Ranges) bool {
	if len(next) != len(t.last) {
		return true
	}
	for i, prev := range t.last {
		if abs(prev.From-next[i].From) > t.threshold || abs(prev.To-next[i].To) > t.threshold {
			return true
		}
	}
	return false
}

// Observe reports whether next is significant and, if so, makes it the
// new snapshot. Insignificant viewports leave the tracker untouched, so
// slow drift accumulates until it crosses the threshold.
func (t *Tracker) Observe(next Ranges) bool {
	if !t.Significant(next) {
		return false
	}
	t.last = next.Clone()
	return true
}

// Reset replaces the snapshot unconditionally.
func (t *Tracker) Reset(r Ranges) {
	t.last = r.Clone()
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
