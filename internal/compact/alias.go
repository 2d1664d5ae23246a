package compact

import (
	"github.com/dshills/compactlinks/internal/config"
	"github.com/dshills/compactlinks/internal/decoration"
	"github.com/dshills/compactlinks/internal/finder"
	"github.com/dshills/compactlinks/internal/viewport"
)

// AliasBuilder hides the target of internal links written as
// [[target|alias]], so only the alias shows. The anchor is the
// link-start marker; the span runs from after it to the pipe.
type AliasBuilder struct {
	// Script formats custom display mode. Without it custom mode hides.
	Script Formatter
}

// Kind implements Builder.
func (AliasBuilder) Kind() decoration.Kind { return decoration.KindAlias }

// Enabled implements Builder.
func (AliasBuilder) Enabled(s config.Settings) bool { return s.Alias.Enable }

// Scan implements Builder.
func (AliasBuilder) Scan(src Source, r viewport.Range, visit Visitor) {
	scanTree(src, r, finder.IsAliasAnchor, finder.AliasRange, visit)
}

// Build implements Builder.
func (b AliasBuilder) Build(src Source, span finder.Span, s config.Settings) (decoration.Decoration, bool) {
	l := s.Alias
	d := decoration.Decoration{
		Type:   decoration.TypeMark,
		Kind:   decoration.KindAlias,
		From:   span.Start,
		To:     span.End,
		Class:  decoration.ClassAliasHidden,
		Reveal: span,
	}

	if l.DisplayMode == config.DisplayCustom && b.Script != nil {
		text := src.SliceString(span.Start, span.End)
		out, ok := b.Script.Format(decoration.KindAlias.String(), text, "", "")
		if !ok {
			return decoration.Decoration{}, false
		}
		d.Type = decoration.TypeReplace
		d.Class = decoration.ClassAliasCustom
		d.Text = out
		d.Tooltip = tooltip(l, text)
		return d, true
	}

	if l.EnableTooltip {
		d.Tooltip = src.SliceString(span.Start, span.End)
	}
	return d, true
}
