package renderer

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/dshills/compactlinks/internal/renderer/backend"
	"github.com/dshills/compactlinks/internal/view"
)

// TabWidth is the number of columns a tab expands to.
const TabWidth = 4

// Painter draws composed lines on a backend.
type Painter struct {
	out   backend.Backend
	theme Theme
}

// NewPainter creates a painter drawing on out.
func NewPainter(out backend.Backend, theme Theme) *Painter {
	return &Painter{out: out, theme: theme}
}

// Theme returns the painter's theme.
func (p *Painter) Theme() Theme {
	return p.theme
}

// Line draws segs on row y and blanks the rest of the row. It returns, for
// every column drawn, the document offset shown there. Text beyond the
// screen width is clipped.
func (p *Painter) Line(y int, segs []Segment, sel view.Selection) []int {
	width, _ := p.out.Size()
	cols := make([]int, 0, width)
	x := 0

	for _, seg := range segs {
		style := p.theme.Resolve(seg.Class)
		if !sel.Empty() && seg.From < sel.To && seg.To > sel.From && seg.Replaced {
			style = Selected(style)
		}

		state := -1
		rest := seg.Text
		offset := seg.From
		for len(rest) > 0 {
			var cluster string
			cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
			pos := offset
			if !seg.Replaced {
				offset += len(cluster)
			}

			cellStyle := style
			if !seg.Replaced && !sel.Empty() && pos >= sel.From && pos < sel.To {
				cellStyle = Selected(style)
			}

			if cluster == "\t" {
				for i := 0; i < TabWidth && x < width; i++ {
					p.out.SetCell(x, y, backend.Cell{Rune: ' ', Width: 1, Style: cellStyle})
					cols = append(cols, pos)
					x++
				}
				continue
			}

			// Cell widths follow runewidth, which matches what terminals draw
			// for ambiguous clusters.
			w := runewidth.StringWidth(cluster)
			if w == 0 {
				continue
			}
			if x+w > width {
				p.fill(x, y, width)
				return cols
			}

			runes := []rune(cluster)
			p.out.SetCell(x, y, backend.Cell{Rune: runes[0], Combining: runes[1:], Width: w, Style: cellStyle})
			for i := 0; i < w; i++ {
				cols = append(cols, pos)
			}
			x += w
		}
	}

	p.fill(x, y, width)
	return cols
}

// Status draws text on row y in the status style.
func (p *Painter) Status(y int, text string) {
	width, _ := p.out.Size()
	x := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() && x < width {
		runes := g.Runes()
		w := runewidth.StringWidth(g.Str())
		if w == 0 || x+w > width {
			continue
		}
		p.out.SetCell(x, y, backend.Cell{Rune: runes[0], Combining: runes[1:], Width: w, Style: p.theme.Status})
		x += w
	}
	for ; x < width; x++ {
		p.out.SetCell(x, y, backend.Cell{Rune: ' ', Width: 1, Style: p.theme.Status})
	}
}

func (p *Painter) fill(x, y, width int) {
	blank := backend.Cell{Rune: ' ', Width: 1, Style: p.theme.Text}
	for ; x < width; x++ {
		p.out.SetCell(x, y, blank)
	}
}

// Column returns the screen column of document offset pos on a line whose
// column map is cols. Offsets past the drawn text map to the column after
// the last one.
func Column(cols []int, pos int) int {
	for x, off := range cols {
		if off >= pos {
			return x
		}
	}
	return len(cols)
}

// Offset returns the document offset shown at column x, or lineEnd when x
// lies past the drawn text.
func Offset(cols []int, x, lineEnd int) int {
	if x >= 0 && x < len(cols) {
		return cols[x]
	}
	return lineEnd
}
