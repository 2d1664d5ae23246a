package syntax

import (
	"fmt"
	"sort"
)

// Spec describes one node when building a Static tree.
type Spec struct {
	Name     string
	From     int
	To       int
	Children []Spec
}

// Static is an immutable in-memory tree. Hosts that receive flat token
// streams (and tests) build one instead of adapting a parser's node type.
type Static struct {
	root *StaticNode
}

// StaticNode is a node of a Static tree.
type StaticNode struct {
	name     string
	from, to int
	parent   *StaticNode
	next     *StaticNode
	children []*StaticNode
}

// NewStatic builds a tree whose root spans [0, length] and contains specs as
// top-level children. Children are ordered by position; overlapping siblings
// are rejected.
func NewStatic(rootName string, length int, specs ...Spec) (*Static, error) {
	root := &StaticNode{name: rootName, from: 0, to: length}
	if err := root.attach(specs); err != nil {
		return nil, err
	}
	return &Static{root: root}, nil
}

// MustStatic is like NewStatic but panics on invalid specs.
func MustStatic(rootName string, length int, specs ...Spec) *Static {
	t, err := NewStatic(rootName, length, specs...)
	if err != nil {
		panic(err)
	}
	return t
}

func (n *StaticNode) attach(specs []Spec) error {
	if len(specs) == 0 {
		return nil
	}
	sorted := make([]Spec, len(specs))
	copy(sorted, specs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].From < sorted[j].From
	})

	n.children = make([]*StaticNode, 0, len(sorted))
	var prev *StaticNode
	for _, s := range sorted {
		if s.To < s.From {
			return fmt.Errorf("node %q has end %d before start %d", s.Name, s.To, s.From)
		}
		if s.From < n.from || s.To > n.to {
			return fmt.Errorf("node %q [%d,%d) outside parent %q [%d,%d)", s.Name, s.From, s.To, n.name, n.from, n.to)
		}
		if prev != nil && s.From < prev.to {
			return fmt.Errorf("node %q [%d,%d) overlaps sibling %q [%d,%d)", s.Name, s.From, s.To, prev.name, prev.from, prev.to)
		}
		child := &StaticNode{name: s.Name, from: s.From, to: s.To, parent: n}
		if err := child.attach(s.Children); err != nil {
			return err
		}
		if prev != nil {
			prev.next = child
		}
		n.children = append(n.children, child)
		prev = child
	}
	return nil
}

// Root returns the root node.
func (t *Static) Root() Node {
	return t.root
}

// Iterate implements Tree.
func (t *Static) Iterate(from, to int, enter func(Node)) {
	if t == nil || t.root == nil {
		return
	}
	// Explicit stack; deeply nested documents must not grow the goroutine stack.
	stack := []*StaticNode{t.root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n.to < from || n.from > to {
			continue
		}
		enter(n)
		for i := len(n.children) - 1; i >= 0; i-- {
			stack = append(stack, n.children[i])
		}
	}
}

// TypeName implements Node.
func (n *StaticNode) TypeName() string { return n.name }

// From implements Node.
func (n *StaticNode) From() int { return n.from }

// To implements Node.
func (n *StaticNode) To() int { return n.to }

// NextSibling implements Node.
func (n *StaticNode) NextSibling() Node {
	if n.next == nil {
		return nil
	}
	return n.next
}

// Parent implements Node.
func (n *StaticNode) Parent() Node {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

// Children returns the node's children in document order.
func (n *StaticNode) Children() []*StaticNode {
	return n.children
}

// String returns a debug representation: name[from,to).
func (n *StaticNode) String() string {
	return fmt.Sprintf("%s[%d,%d)", n.name, n.from, n.to)
}
