// Package decoration describes cosmetic replacements over document spans
// and caches them between rebuilds.
//
// A Decoration is plain data: what to show over which span and with which
// style class. Turning it into something interactive (a widget with a click
// handler, a styled terminal cell) is the host renderer's job.
package decoration

import (
	"fmt"

	"github.com/dshills/compactlinks/internal/finder"
)

// Type is how a decoration alters its span.
type Type uint8

const (
	// TypeMark styles the span in place. With a hiding class the span is
	// not drawn at all.
	TypeMark Type = iota

	// TypeReplace draws Text instead of the span.
	TypeReplace
)

// String returns the type name.
func (t Type) String() string {
	switch t {
	case TypeMark:
		return "mark"
	case TypeReplace:
		return "replace"
	default:
		return "unknown"
	}
}

// Kind identifies the link syntax a decoration was built for.
type Kind uint8

const (
	// KindAlias hides the target of an aliased internal link.
	KindAlias Kind = iota

	// KindURL shortens the URL of a markdown link.
	KindURL

	// KindAltText shortens the alt text of an image.
	KindAltText
)

// Kinds lists every kind in build order.
var Kinds = []Kind{KindAlias, KindURL, KindAltText}

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindAlias:
		return "alias"
	case KindURL:
		return "url"
	case KindAltText:
		return "alt"
	default:
		return "unknown"
	}
}

// Style classes.
const (
	ClassAliasHidden  = "suppress-alias"
	ClassAliasCustom  = "compact-alias-custom"
	ClassURLHidden    = "compact-url-hidden"
	ClassURLDomain    = "compact-url-domain"
	ClassURLScheme    = "compact-url-scheme"
	ClassURLTruncated = "compact-url-truncated"
	ClassURLCustom    = "compact-url-custom"
	ClassAltHidden    = "compact-alt-hidden"
	ClassAltTruncated = "compact-alt-truncated"
	ClassAltCustom    = "compact-alt-custom"
)

// HiddenURLText is shown in place of a URL in hidden display mode.
const HiddenURLText = "..."

// Decoration is one cosmetic change over [From, To).
type Decoration struct {
	Type Type
	Kind Kind

	From int
	To   int

	// Class is a space-separated list of style classes.
	Class string

	// Text replaces the span for TypeReplace.
	Text string

	// Tooltip is the full original text, empty when tooltips are off.
	Tooltip string

	// Reveal is the span selected when the decoration is clicked.
	Reveal finder.Span
}

// Key returns the cache key derived from the decoration's span.
func (d Decoration) Key() Key {
	return Key{From: d.From, To: d.To}
}

// Span returns the decorated span.
func (d Decoration) Span() finder.Span {
	return finder.Span{Start: d.From, End: d.To}
}

// Contains reports whether pos lies inside [From, To).
func (d Decoration) Contains(pos int) bool {
	return pos >= d.From && pos < d.To
}

// Hides reports whether the decoration removes its span from display
// without drawing anything in its place.
func (d Decoration) Hides() bool {
	if d.Type == TypeReplace {
		return d.Text == ""
	}
	return d.Class == ClassAliasHidden
}

// String returns a debug representation.
func (d Decoration) String() string {
	return fmt.Sprintf("%s/%s[%d,%d) %q .%s", d.Kind, d.Type, d.From, d.To, d.Text, d.Class)
}
