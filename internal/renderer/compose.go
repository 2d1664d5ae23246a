package renderer

import "github.com/dshills/compactlinks/internal/decoration"

// Segment is a run of one line as it is displayed.
type Segment struct {
	// From and To are the document span the segment stands for.
	From int
	To   int

	// Text is what is drawn.
	Text string

	// Class is the decoration class, empty for plain text.
	Class string

	// Tooltip is the full text a decorated segment hides.
	Tooltip string

	// Replaced reports whether Text differs from the document text.
	Replaced bool
}

// Decorated reports whether the segment comes from a decoration.
func (s Segment) Decorated() bool {
	return s.Class != ""
}

// Compose splits text, the line starting at document offset from, into
// display segments. Decorations starting before the line or inside one
// already applied are skipped; those running past the line end are clamped.
func Compose(text string, from int, decos decoration.Set) []Segment {
	end := from + len(text)
	var segs []Segment
	pos := from

	plain := func(to int) {
		if to > pos {
			segs = append(segs, Segment{From: pos, To: to, Text: text[pos-from : to-from]})
		}
	}

	for _, d := range decos.Overlapping(from, end) {
		if d.From < pos {
			continue
		}
		dFrom, dTo := d.From, min(d.To, end)
		plain(dFrom)
		pos = dTo

		switch {
		case d.Hides():
			// Nothing drawn; keep a zero-width marker so the cursor can land on it.
			segs = append(segs, Segment{From: dFrom, To: dTo, Class: d.Class, Tooltip: d.Tooltip, Replaced: true})
		case d.Type == decoration.TypeReplace:
			segs = append(segs, Segment{From: dFrom, To: dTo, Text: d.Text, Class: d.Class, Tooltip: d.Tooltip, Replaced: true})
		default:
			segs = append(segs, Segment{From: dFrom, To: dTo, Text: text[dFrom-from : dTo-from], Class: d.Class, Tooltip: d.Tooltip})
		}
	}
	plain(end)
	return segs
}

// Text joins the drawn text of segs.
func Text(segs []Segment) string {
	n := 0
	for _, s := range segs {
		n += len(s.Text)
	}
	b := make([]byte, 0, n)
	for _, s := range segs {
		b = append(b, s.Text...)
	}
	return string(b)
}
