// Package renderer draws decorated markdown lines on a terminal backend.
//
// Rendering happens in two steps. Compose splits one document line into
// segments, applying the decorations that overlap it: hidden marks drop
// their text, replacements show their display text, and everything else is
// passed through. A Painter then draws segments cell by cell, resolving each
// decoration class to a terminal style and recording which document offset
// every column shows so the host can map the cursor and mouse clicks back to
// document positions.
//
// Usage:
//
//	term, _ := backend.NewTerminal()
//	p := renderer.NewPainter(term, renderer.DefaultTheme())
//	cols := p.Line(0, renderer.Compose(line, lineStart, decos), sel)
package renderer
