package viewport

import "testing"

func TestRangeContains(t *testing.T) {
	r := Range{From: 10, To: 20}
	tests := map[int]bool{9: false, 10: true, 15: true, 20: true, 21: false}
	for pos, want := range tests {
		if got := r.Contains(pos); got != want {
			t.Errorf("Contains(%d) = %v, want %v", pos, got, want)
		}
	}
}

func TestMembership(t *testing.T) {
	m := NewMembership(Ranges{{From: 500, To: 600}, {From: 0, To: 100}, {From: 90, To: 150}, {From: 30, To: 10}})

	tests := []struct {
		pos  int
		want bool
	}{
		{0, true},
		{100, true},
		{120, true},
		{150, true},
		{151, false},
		{499, false},
		{500, true},
		{600, true},
		{601, false},
		{-1, false},
	}
	for _, tt := range tests {
		if got := m.Contains(tt.pos); got != tt.want {
			t.Errorf("Contains(%d) = %v, want %v", tt.pos, got, tt.want)
		}
	}
}

func TestMembershipEmpty(t *testing.T) {
	if NewMembership(nil).Contains(0) {
		t.Error("empty membership should contain nothing")
	}
}

func TestTrackerSignificant(t *testing.T) {
	initial := Ranges{{From: 0, To: 1000}}

	tests := []struct {
		name string
		next Ranges
		want bool
	}{
		{"unchanged", Ranges{{From: 0, To: 1000}}, false},
		{"small scroll", Ranges{{From: 100, To: 1100}}, false},
		{"boundary at threshold", Ranges{{From: 0, To: 1100}}, false},
		{"large scroll", Ranges{{From: 101, To: 1101}}, true},
		{"one boundary past threshold", Ranges{{From: 0, To: 1101}}, true},
		{"range count changed", Ranges{{From: 0, To: 400}, {From: 600, To: 1000}}, true},
		{"empty", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTracker(0, initial)
			if got := tr.Significant(tt.next); got != tt.want {
				t.Errorf("Significant() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTrackerObserveCommitsOnlySignificant(t *testing.T) {
	tr := NewTracker(DefaultThreshold, Ranges{{From: 0, To: 1000}})

	if tr.Observe(Ranges{{From: 60, To: 1060}}) {
		t.Fatal("first drift should be insignificant")
	}
	if got := tr.Snapshot(); !got.Equal(Ranges{{From: 0, To: 1000}}) {
		t.Errorf("snapshot moved on insignificant change: %v", got)
	}

	// Drift accumulates against the committed snapshot.
	if !tr.Observe(Ranges{{From: 120, To: 1120}}) {
		t.Fatal("accumulated drift should be significant")
	}
	if got := tr.Snapshot(); !got.Equal(Ranges{{From: 120, To: 1120}}) {
		t.Errorf("snapshot = %v, want the committed viewport", got)
	}
}

func TestTrackerSnapshotIsCopy(t *testing.T) {
	initial := Ranges{{From: 0, To: 10}}
	tr := NewTracker(5, initial)
	initial[0].From = 99

	if tr.Snapshot()[0].From != 0 {
		t.Error("tracker must not alias its input")
	}
	if tr.Threshold() != 5 {
		t.Errorf("Threshold() = %d, want 5", tr.Threshold())
	}
	tr.Reset(Ranges{{From: 50, To: 60}})
	if tr.Snapshot()[0].From != 50 {
		t.Error("Reset should replace the snapshot")
	}
}
