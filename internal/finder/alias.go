package finder

import "github.com/dshills/compactlinks/internal/syntax"

// IsAliasAnchor reports whether n opens an internal link.
func IsAliasAnchor(n syntax.Node) bool {
	return syntax.Contains(n, LinkStartName)
}

// AliasRange finds the span hidden for an aliased internal link: from the
// node after anchor up to the alias pipe. It fails when the link closes or
// the sibling chain ends before a pipe is seen.
//
// The returned span may be degenerate (an empty link target); callers
// must not decorate those.
func AliasRange(anchor syntax.Node) (Span, bool) {
	if anchor == nil {
		return Span{}, false
	}
	first := anchor.NextSibling()
	if first == nil {
		return Span{}, false
	}

	pipe, ok := findPipe(first)
	if !ok {
		return Span{}, false
	}
	return Span{Start: first.From(), End: pipe.From()}, true
}

// findPipe walks the sibling chain starting at n. The walk ends on one of
// three nodes: the pipe, the link end marker, or the end of the chain.
func findPipe(n syntax.Node) (syntax.Node, bool) {
	for ; n != nil; n = n.NextSibling() {
		name := n.TypeName()
		switch {
		case containsName(name, LinkEndName):
			return nil, false
		case containsName(name, AliasPipeName):
			return n, true
		}
	}
	return nil, false
}
