// Package view defines the editor view capability the decoration engines
// consume. The view owns the document, its syntax tree and the selection;
// engines only read them during one update and never keep node handles.
package view

import (
	"github.com/dshills/compactlinks/internal/syntax"
	"github.com/dshills/compactlinks/internal/viewport"
)

// Selection is the main selection of a view.
type Selection struct {
	From int
	To   int

	// Head is the cursor end of the selection.
	Head int
}

// Cursor returns a collapsed selection at pos.
func Cursor(pos int) Selection {
	return Selection{From: pos, To: pos, Head: pos}
}

// Empty reports whether the selection is a bare cursor.
func (s Selection) Empty() bool {
	return s.From == s.To
}

// Transaction is a change the decoration layer asks the view to apply.
type Transaction struct {
	// Selection replaces the main selection when non-nil.
	Selection *Selection

	// ScrollIntoView asks the view to scroll the new selection into view.
	ScrollIntoView bool
}

// View is the capability an editor view exposes to the engines.
type View interface {
	// VisibleRanges returns the rendered document ranges in ascending order.
	VisibleRanges() viewport.Ranges

	// Selection returns the main selection.
	Selection() Selection

	// SliceString returns the document text in [from, to).
	SliceString(from, to int) string

	// Tree returns the current syntax tree, or nil if none is available.
	Tree() syntax.Tree

	// Dispatch applies a transaction.
	Dispatch(tr Transaction)
}

// Update describes what changed in a view since the previous update.
type Update struct {
	View View

	DocChanged      bool
	SelectionSet    bool
	ViewportChanged bool
}
