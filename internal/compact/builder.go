package compact

import (
	"github.com/dshills/compactlinks/internal/config"
	"github.com/dshills/compactlinks/internal/decoration"
	"github.com/dshills/compactlinks/internal/finder"
	"github.com/dshills/compactlinks/internal/syntax"
	"github.com/dshills/compactlinks/internal/viewport"
)

// Source is the part of a view a builder reads.
type Source interface {
	Tree() syntax.Tree
	SliceString(from, to int) string
}

// Visitor receives one anchor found during a scan. anchor is the position
// the span is cached under; resolve computes the span and is only valid
// until the visitor returns.
type Visitor func(anchor int, resolve func() (finder.Span, bool))

// Builder finds and decorates the spans of one kind.
type Builder interface {
	// Kind returns the span kind this builder produces.
	Kind() decoration.Kind

	// Enabled reports whether the kind is switched on in s.
	Enabled(s config.Settings) bool

	// Scan visits every anchor inside r in document order.
	Scan(src Source, r viewport.Range, visit Visitor)

	// Build constructs the decoration for span. It returns false when the
	// span should not be decorated.
	Build(src Source, span finder.Span, s config.Settings) (decoration.Decoration, bool)
}

// Formatter computes display text for DisplayCustom mode.
// *script.Formatter satisfies it.
type Formatter interface {
	Format(kind, text, scheme, domain string) (string, bool)
}

// scanTree walks src's tree over r and reports nodes accepted by match,
// resolving them with span.
func scanTree(src Source, r viewport.Range, match func(syntax.Node) bool, span func(syntax.Node) (finder.Span, bool), visit Visitor) {
	tree := src.Tree()
	if tree == nil {
		return
	}
	tree.Iterate(r.From, r.To, func(n syntax.Node) {
		if !match(n) {
			return
		}
		visit(n.From(), func() (finder.Span, bool) {
			return span(n)
		})
	})
}

func tooltip(l config.LinkSettings, text string) string {
	if !l.EnableTooltip {
		return ""
	}
	return text
}
