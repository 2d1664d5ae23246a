// Package syntax defines the read-only syntax tree capability consumed by
// the decoration engines.
//
// Trees are owned by the host's parse layer. A Node is only valid for the
// duration of the walk that produced it; callers keep positions, never nodes.
package syntax

import "strings"

// Node is a typed span of the document with sibling and parent links.
type Node interface {
	// TypeName returns the grammar's name for this node.
	TypeName() string

	// From returns the start offset (inclusive).
	From() int

	// To returns the end offset (exclusive).
	To() int

	// NextSibling returns the following sibling, or nil at the end of the chain.
	NextSibling() Node

	// Parent returns the enclosing node, or nil for the root.
	Parent() Node
}

// Tree walks the nodes of a parsed document.
type Tree interface {
	// Iterate calls enter for every node overlapping [from, to], parents
	// before children, in document order.
	Iterate(from, to int, enter func(Node))
}

// Contains reports whether n's type name contains pattern. Grammar names
// are compound ("formatting_formatting-link_link"), so matching is by substring.
func Contains(n Node, pattern string) bool {
	return n != nil && strings.Contains(n.TypeName(), pattern)
}

// Overlaps reports whether n overlaps the inclusive range [from, to].
func Overlaps(n Node, from, to int) bool {
	return n.To() >= from && n.From() <= to
}
