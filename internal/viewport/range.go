// Package viewport tracks the document ranges an editor view renders and
// decides when a scroll is large enough to warrant recomputing decorations.
package viewport

import "sort"

// Range is one contiguous visible region [From, To] of document positions.
type Range struct {
	From int
	To   int
}

// Contains reports whether pos lies within the range, counting both ends.
func (r Range) Contains(pos int) bool {
	return pos >= r.From && pos <= r.To
}

// Ranges is the set of visible ranges reported by a view, in the order the
// view reported them.
type Ranges []Range

// Clone returns an independent copy.
func (rs Ranges) Clone() Ranges {
	if rs == nil {
		return nil
	}
	out := make(Ranges, len(rs))
	copy(out, rs)
	return out
}

// Equal reports whether both sets hold the same ranges in the same order.
func (rs Ranges) Equal(other Ranges) bool {
	if len(rs) != len(other) {
		return false
	}
	for i := range rs {
		if rs[i] != other[i] {
			return false
		}
	}
	return true
}

// Membership answers position queries against a set of ranges in
// O(log n) without materializing every visible position.
type Membership struct {
	ranges Ranges
}

// NewMembership builds a membership index over rs.
func NewMembership(rs Ranges) Membership {
	sorted := rs.Clone()
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].From < sorted[j].From
	})

	// Coalesce overlapping ranges so a binary search finds at most one candidate.
	merged := make(Ranges, 0, len(sorted))
	for _, r := range sorted {
		if r.To < r.From {
			continue
		}
		if n := len(merged); n > 0 && r.From <= merged[n-1].To {
			if r.To > merged[n-1].To {
				merged[n-1].To = r.To
			}
			continue
		}
		merged = append(merged, r)
	}
	return Membership{ranges: merged}
}

// Contains reports whether pos falls inside any range.
func (m Membership) Contains(pos int) bool {
	i := sort.Search(len(m.ranges), func(i int) bool {
		return m.ranges[i].To >= pos
	})
	return i < len(m.ranges) && m.ranges[i].Contains(pos)
}

// Contains reports whether pos falls inside any of the ranges.
func (rs Ranges) Contains(pos int) bool {
	for _, r := range rs {
		if r.Contains(pos) {
			return true
		}
	}
	return false
}
