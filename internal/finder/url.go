package finder

import (
	"strings"

	"github.com/dshills/compactlinks/internal/syntax"
)

// IsURLNode reports whether n holds the URL of a markdown link.
func IsURLNode(n syntax.Node) bool {
	if n == nil {
		return false
	}
	name := n.TypeName()
	return containsName(name, URLName) || containsName(name, StrongURLName)
}

// URLRange returns the span of a URL node.
func URLRange(n syntax.Node) (Span, bool) {
	if !IsURLNode(n) {
		return Span{}, false
	}
	return nodeSpan(n), true
}

func containsName(name, fragment string) bool {
	return strings.Contains(name, fragment)
}
