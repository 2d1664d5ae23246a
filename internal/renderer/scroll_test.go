package renderer

import "testing"

func TestScrollerReveal(t *testing.T) {
	s := NewScroller(10, 100)

	if !s.Reveal(50) {
		t.Fatal("Reveal(50) did not scroll")
	}
	if got := s.Top(); got != 43 {
		t.Errorf("Top() = %d, want 43", got)
	}
	if got := s.Row(50); got != 7 {
		t.Errorf("Row(50) = %d, want 7", got)
	}
	if s.Reveal(47) {
		t.Error("Reveal of a line inside the margins scrolled")
	}

	s.Reveal(0)
	if got := s.Top(); got != 0 {
		t.Errorf("Top() after Reveal(0) = %d, want 0", got)
	}
}

func TestScrollerClamp(t *testing.T) {
	s := NewScroller(10, 100)
	s.ScrollTo(1000)
	if got := s.Top(); got != 90 {
		t.Errorf("Top() = %d, want 90", got)
	}
	first, end := s.Visible()
	if first != 90 || end != 100 {
		t.Errorf("Visible() = (%d, %d), want (90, 100)", first, end)
	}

	s.SetLines(95)
	if got := s.Top(); got != 85 {
		t.Errorf("Top() after shrinking = %d, want 85", got)
	}
	if got := s.Row(10); got != -1 {
		t.Errorf("Row(10) = %d, want -1", got)
	}
}

func TestScrollerShortDocument(t *testing.T) {
	s := NewScroller(10, 3)
	if s.ScrollBy(5) {
		t.Error("ScrollBy scrolled a document shorter than the screen")
	}
	first, end := s.Visible()
	if first != 0 || end != 3 {
		t.Errorf("Visible() = (%d, %d), want (0, 3)", first, end)
	}
}

func TestScrollerPageSize(t *testing.T) {
	if got := NewScroller(1, 10).PageSize(); got != 1 {
		t.Errorf("PageSize() = %d, want 1", got)
	}
	if got := NewScroller(24, 10).PageSize(); got != 23 {
		t.Errorf("PageSize() = %d, want 23", got)
	}
}
