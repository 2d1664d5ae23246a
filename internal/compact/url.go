package compact

import (
	"github.com/dshills/compactlinks/internal/config"
	"github.com/dshills/compactlinks/internal/decoration"
	"github.com/dshills/compactlinks/internal/finder"
	"github.com/dshills/compactlinks/internal/textwidth"
	"github.com/dshills/compactlinks/internal/urlparse"
	"github.com/dshills/compactlinks/internal/viewport"
)

// URLBuilder replaces the destination of [text](url) links with a short
// form. Targets that do not classify as URLs are left alone.
type URLBuilder struct {
	// Script formats custom display mode. Without it custom mode is off.
	Script Formatter
}

// Kind implements Builder.
func (URLBuilder) Kind() decoration.Kind { return decoration.KindURL }

// Enabled implements Builder.
func (URLBuilder) Enabled(s config.Settings) bool { return s.URL.Enable }

// Scan implements Builder.
func (URLBuilder) Scan(src Source, r viewport.Range, visit Visitor) {
	scanTree(src, r, finder.IsURLNode, finder.URLRange, visit)
}

// Build implements Builder.
func (b URLBuilder) Build(src Source, span finder.Span, s config.Settings) (decoration.Decoration, bool) {
	l := s.URL
	text := src.SliceString(span.Start, span.End)
	res := urlparse.Parse(text)
	if !res.IsURL {
		return decoration.Decoration{}, false
	}

	d := decoration.Decoration{
		Type:    decoration.TypeReplace,
		Kind:    decoration.KindURL,
		From:    span.Start,
		To:      span.End,
		Tooltip: tooltip(l, text),
		Reveal:  span,
	}

	switch l.DisplayMode {
	case config.DisplayHidden:
		d.Text = decoration.HiddenURLText
		d.Class = decoration.ClassURLHidden

	case config.DisplayDomain:
		if res.Domain == "" {
			// Opaque URLs such as mailto: have nothing to shorten to.
			d.Text = textwidth.Truncate(text, l.Length())
			d.Class = decoration.ClassURLTruncated
			break
		}
		d.Text = res.DisplayDomain()
		d.Class = decoration.ClassURLDomain
		if res.Scheme != "" {
			d.Class += " " + decoration.ClassURLScheme
		}

	case config.DisplayTruncated:
		d.Text = textwidth.Truncate(text, l.Length())
		d.Class = decoration.ClassURLTruncated

	case config.DisplayCustom:
		if b.Script == nil {
			return decoration.Decoration{}, false
		}
		out, ok := b.Script.Format(decoration.KindURL.String(), text, res.Scheme, res.Domain)
		if !ok {
			return decoration.Decoration{}, false
		}
		d.Text = out
		d.Class = decoration.ClassURLCustom

	default:
		return decoration.Decoration{}, false
	}

	return d, true
}
