package renderer

// DefaultScrollMargin is the number of lines kept between the cursor line
// and the top or bottom edge when scrolling to reveal it.
const DefaultScrollMargin = 2

// Scroller tracks which document lines are on screen.
type Scroller struct {
	top    int
	height int
	lines  int
	margin int
}

// NewScroller creates a scroller showing height lines of a document with
// lines lines. Height is clamped to at least 1.
func NewScroller(height, lines int) *Scroller {
	s := &Scroller{margin: DefaultScrollMargin}
	s.Resize(height)
	s.SetLines(lines)
	return s
}

// Top returns the first visible line.
func (s *Scroller) Top() int {
	return s.top
}

// Height returns the number of rows available for text.
func (s *Scroller) Height() int {
	return s.height
}

// Visible returns the first and one-past-last visible lines.
func (s *Scroller) Visible() (first, end int) {
	return s.top, min(s.top+s.height, s.lines)
}

// Resize changes the number of rows.
func (s *Scroller) Resize(height int) {
	if height < 1 {
		height = 1
	}
	s.height = height
	s.clamp()
}

// SetLines updates the document line count after an edit.
func (s *Scroller) SetLines(lines int) {
	if lines < 1 {
		lines = 1
	}
	s.lines = lines
	s.clamp()
}

// SetMargin sets the reveal margin.
func (s *Scroller) SetMargin(n int) {
	s.margin = max(n, 0)
}

// ScrollTo makes line the first visible line. It reports whether the top
// line changed.
func (s *Scroller) ScrollTo(line int) bool {
	prev := s.top
	s.top = line
	s.clamp()
	return s.top != prev
}

// ScrollBy moves the top line by delta.
func (s *Scroller) ScrollBy(delta int) bool {
	return s.ScrollTo(s.top + delta)
}

// PageSize is the scroll distance of one page, keeping a line of overlap.
func (s *Scroller) PageSize() int {
	return max(s.height-1, 1)
}

// Reveal scrolls minimally so line sits inside the margins.
func (s *Scroller) Reveal(line int) bool {
	margin := min(s.margin, (s.height-1)/2)
	switch {
	case line < s.top+margin:
		return s.ScrollTo(line - margin)
	case line > s.top+s.height-1-margin:
		return s.ScrollTo(line - s.height + 1 + margin)
	}
	return false
}

// Row returns the screen row of line, or -1 when it is off screen.
func (s *Scroller) Row(line int) int {
	first, end := s.Visible()
	if line < first || line >= end {
		return -1
	}
	return line - s.top
}

func (s *Scroller) clamp() {
	maxTop := max(s.lines-s.height, 0)
	s.top = min(max(s.top, 0), maxTop)
}
