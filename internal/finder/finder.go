// Package finder locates the spans that compact link decorations cover.
//
// Each finder recognizes an anchor node by the grammar's naming convention
// and derives a Span from it, either from the node's own extent or from a
// walk along its sibling chain. A finder that does not match reports false;
// that is the common case, not an error.
package finder

import "github.com/dshills/compactlinks/internal/syntax"

// Node name fragments of the markdown grammar.
const (
	LinkStartName  = "formatting-link-start"
	LinkEndName    = "formatting-link-end"
	AliasPipeName  = "link-alias-pipe"
	URLName        = "string_url"
	StrongURLName  = "string_strong_url"
	AltTextName    = "image-alt-text"
	FormattingName = "formatting_formatting"
)

// Span is a half-open document range [Start, End) targeted by a decoration.
type Span struct {
	Start int
	End   int
}

// Empty reports whether the span covers no text.
func (s Span) Empty() bool {
	return s.Start >= s.End
}

// Contains reports whether pos lies within the span, counting both ends.
// A cursor resting on either boundary is editing the span.
func (s Span) Contains(pos int) bool {
	return pos >= s.Start && pos <= s.End
}

// Len returns the span length, or 0 for degenerate spans.
func (s Span) Len() int {
	if s.Empty() {
		return 0
	}
	return s.End - s.Start
}

// nodeSpan returns the node's own extent.
func nodeSpan(n syntax.Node) Span {
	return Span{Start: n.From(), End: n.To()}
}
