package compact

import (
	"strings"

	"github.com/dshills/compactlinks/internal/config"
	"github.com/dshills/compactlinks/internal/decoration"
	"github.com/dshills/compactlinks/internal/finder"
	"github.com/dshills/compactlinks/internal/textwidth"
	"github.com/dshills/compactlinks/internal/viewport"
)

// AltBuilder shortens the alt text of ![alt](src) images.
type AltBuilder struct {
	// UseText scans the raw visible text with a regular expression
	// instead of walking the syntax tree.
	UseText bool

	// Script formats custom display mode. Without it custom mode is off.
	Script Formatter
}

// Kind implements Builder.
func (AltBuilder) Kind() decoration.Kind { return decoration.KindAltText }

// Enabled implements Builder.
func (AltBuilder) Enabled(s config.Settings) bool { return s.Alt.Enable }

// Scan implements Builder.
func (b AltBuilder) Scan(src Source, r viewport.Range, visit Visitor) {
	if !b.UseText {
		scanTree(src, r, finder.IsAltTextNode, finder.AltRange, visit)
		return
	}
	for _, sp := range finder.AltTextSpans(src.SliceString(r.From, r.To), r.From) {
		visit(sp.Start, func() (finder.Span, bool) {
			return sp, true
		})
	}
}

// Build implements Builder.
func (b AltBuilder) Build(src Source, span finder.Span, s config.Settings) (decoration.Decoration, bool) {
	l := s.Alt
	text := src.SliceString(span.Start, span.End)
	if strings.TrimSpace(text) == "" {
		return decoration.Decoration{}, false
	}

	d := decoration.Decoration{
		Type:    decoration.TypeReplace,
		Kind:    decoration.KindAltText,
		From:    span.Start,
		To:      span.End,
		Tooltip: tooltip(l, text),
		Reveal:  span,
	}

	switch l.DisplayMode {
	case config.DisplayHidden:
		d.Class = decoration.ClassAltHidden

	case config.DisplayTruncated, config.DisplayDomain:
		// Domain means nothing for alt text; it shares truncation.
		d.Text = textwidth.Truncate(text, l.Length())
		d.Class = decoration.ClassAltTruncated

	case config.DisplayCustom:
		if b.Script == nil {
			return decoration.Decoration{}, false
		}
		out, ok := b.Script.Format(decoration.KindAltText.String(), text, "", "")
		if !ok {
			return decoration.Decoration{}, false
		}
		d.Text = out
		d.Class = decoration.ClassAltCustom

	default:
		return decoration.Decoration{}, false
	}

	return d, true
}
