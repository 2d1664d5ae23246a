package finder

import (
	"regexp"

	"github.com/dshills/compactlinks/internal/syntax"
)

// altTextPattern matches image alt text. RE2 has no lookbehind, so the
// text between "![" and "]" is captured in group 1.
var altTextPattern = regexp.MustCompile(`!\[([^\[\]]+)\]`)

// IsAltTextNode reports whether n holds image alt text. The "![" and "]"
// punctuation nodes carry the same image name plus a formatting marker and
// are excluded.
func IsAltTextNode(n syntax.Node) bool {
	if n == nil {
		return false
	}
	name := n.TypeName()
	return containsName(name, AltTextName) && !containsName(name, FormattingName)
}

// AltRange returns the span of an alt text node.
func AltRange(n syntax.Node) (Span, bool) {
	if !IsAltTextNode(n) {
		return Span{}, false
	}
	return nodeSpan(n), true
}

// AltTextSpans scans raw document text for image alt text. offset is the
// document position of text[0]; returned spans are document positions in
// ascending order.
func AltTextSpans(text string, offset int) []Span {
	matches := altTextPattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return nil
	}
	spans := make([]Span, 0, len(matches))
	for _, m := range matches {
		spans = append(spans, Span{Start: offset + m[2], End: offset + m[3]})
	}
	return spans
}
