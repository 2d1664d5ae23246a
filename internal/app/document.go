// Package app hosts the decoration adapter in a terminal markdown viewer.
//
// The Application owns one document and implements view.View over it, so
// the decoration engines read the same text, tree, selection and visible
// ranges the screen shows. Key presses move the cursor and scroll; file
// watchers reload the document and the link settings while running.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dshills/compactlinks/internal/syntax"
	"github.com/dshills/compactlinks/internal/syntax/mdtree"
)

// Document is a markdown file with a line index and its syntax tree.
type Document struct {
	// Path is the absolute file path (empty for in-memory documents).
	Path string

	// Name is the display name.
	Name string

	text    string
	lines   []int
	tree    *syntax.Static
	version int64
}

// NewDocument creates a document from content and parses it.
func NewDocument(ctx context.Context, path string, content []byte) (*Document, error) {
	name := filepath.Base(path)
	if path == "" {
		name = "Untitled"
	}
	d := &Document{Path: path, Name: name}
	if err := d.SetContent(ctx, content); err != nil {
		return nil, err
	}
	return d, nil
}

// OpenDocument reads and parses the file at path.
func OpenDocument(ctx context.Context, path string) (*Document, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, NewOperationError("open", path, err)
	}
	content, err := os.ReadFile(abs)
	if err != nil {
		return nil, NewOperationError("open", path, err)
	}
	return NewDocument(ctx, abs, content)
}

// Reload reads the file again. The document keeps its old content when
// reading or parsing fails.
func (d *Document) Reload(ctx context.Context) error {
	if d.Path == "" {
		return nil
	}
	content, err := os.ReadFile(d.Path)
	if err != nil {
		return NewOperationError("reload", d.Path, err)
	}
	return d.SetContent(ctx, content)
}

// SetContent replaces the text and reparses it.
func (d *Document) SetContent(ctx context.Context, content []byte) error {
	tree, err := mdtree.Parse(ctx, content)
	if err != nil {
		return NewOperationError("parse", d.Name, err)
	}
	d.text = string(content)
	d.tree = tree
	d.lines = indexLines(d.text)
	d.version++
	return nil
}

// Version increases with every content change.
func (d *Document) Version() int64 {
	return d.version
}

// Text returns the whole document.
func (d *Document) Text() string {
	return d.text
}

// Len returns the document length in bytes.
func (d *Document) Len() int {
	return len(d.text)
}

// LineCount returns the number of lines. An empty document has one.
func (d *Document) LineCount() int {
	return len(d.lines)
}

// LineStart returns the offset of the first byte of line i.
func (d *Document) LineStart(i int) int {
	if i <= 0 {
		return 0
	}
	if i >= len(d.lines) {
		return len(d.text)
	}
	return d.lines[i]
}

// LineEnd returns the offset just past the last character of line i,
// excluding the newline.
func (d *Document) LineEnd(i int) int {
	if i < 0 {
		return 0
	}
	if i+1 >= len(d.lines) {
		return len(d.text)
	}
	return d.lines[i+1] - 1
}

// Line returns the text of line i without its newline.
func (d *Document) Line(i int) string {
	return d.text[d.LineStart(i):d.LineEnd(i)]
}

// LineOf returns the line containing offset pos.
func (d *Document) LineOf(pos int) int {
	i := sort.Search(len(d.lines), func(i int) bool {
		return d.lines[i] > pos
	})
	return max(i-1, 0)
}

// SliceString returns the text in [from, to), clamped to the document.
func (d *Document) SliceString(from, to int) string {
	from = min(max(from, 0), len(d.text))
	to = min(max(to, from), len(d.text))
	return d.text[from:to]
}

// Tree returns the syntax tree.
func (d *Document) Tree() syntax.Tree {
	if d.tree == nil {
		return nil
	}
	return d.tree
}

// String returns a debug representation.
func (d *Document) String() string {
	return fmt.Sprintf("%s (%d lines, v%d)", d.Name, d.LineCount(), d.version)
}

func indexLines(text string) []int {
	lines := make([]int, 1, strings.Count(text, "\n")+1)
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			lines = append(lines, i+1)
		}
	}
	return lines
}
