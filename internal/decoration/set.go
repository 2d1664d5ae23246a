package decoration

import "sort"

// Set is an immutable, position-ordered collection of decorations built
// once per rebuild.
type Set struct {
	items []Decoration
}

// Empty is the set with no decorations.
var Empty = Set{}

// NewSet builds a set from items. When sorted is false the items are
// ordered by (From, To) first; passing true for out-of-order items yields
// a set that renderers will draw incorrectly.
func NewSet(items []Decoration, sorted bool) Set {
	if len(items) == 0 {
		return Empty
	}
	owned := make([]Decoration, len(items))
	copy(owned, items)
	if !sorted {
		sort.SliceStable(owned, func(i, j int) bool {
			if owned[i].From != owned[j].From {
				return owned[i].From < owned[j].From
			}
			return owned[i].To < owned[j].To
		})
	}
	return Set{items: owned}
}

// Merge combines several sets into one ordered set.
func Merge(sets ...Set) Set {
	total := 0
	for _, s := range sets {
		total += s.Len()
	}
	if total == 0 {
		return Empty
	}
	items := make([]Decoration, 0, total)
	for _, s := range sets {
		items = append(items, s.items...)
	}
	return NewSet(items, len(sets) == 1)
}

// Len returns the number of decorations.
func (s Set) Len() int {
	return len(s.items)
}

// At returns the i-th decoration in position order.
func (s Set) At(i int) Decoration {
	return s.items[i]
}

// All returns a copy of the decorations in position order.
func (s Set) All() []Decoration {
	out := make([]Decoration, len(s.items))
	copy(out, s.items)
	return out
}

// Find returns the first decoration containing pos.
func (s Set) Find(pos int) (Decoration, bool) {
	for _, d := range s.Overlapping(pos, pos+1) {
		if d.Contains(pos) {
			return d, true
		}
	}
	return Decoration{}, false
}

// Overlapping returns the decorations intersecting [from, to).
func (s Set) Overlapping(from, to int) []Decoration {
	// Items are ordered by From; everything starting at or after to is out.
	end := sort.Search(len(s.items), func(i int) bool {
		return s.items[i].From >= to
	})
	var out []Decoration
	for _, d := range s.items[:end] {
		if d.To > from {
			out = append(out, d)
		}
	}
	return out
}

// Equal reports whether both sets hold the same decorations in the same order.
func (s Set) Equal(other Set) bool {
	if len(s.items) != len(other.items) {
		return false
	}
	for i := range s.items {
		if s.items[i] != other.items[i] {
			return false
		}
	}
	return true
}
