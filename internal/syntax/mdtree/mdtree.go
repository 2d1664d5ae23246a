// Package mdtree parses markdown with tree-sitter and presents the result
// as a syntax.Static tree using the token names the finders match on.
//
// Tree-sitter's markdown grammar has no wikilinks, so [[target|alias]]
// links are recognised separately and added as token chains. Positions
// are byte offsets into the source.
package mdtree

import (
	"context"
	"fmt"
	"regexp"
	"sort"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/markdown"

	"github.com/dshills/compactlinks/internal/syntax"
)

// RootName is the type name of the root node.
const RootName = "Document"

// Token names.
const (
	NameLinkOpen  = "formatting-link_formatting-link-open"
	NameLinkStart = "formatting-link_formatting-link-start"
	NameLinkEnd   = "formatting-link_formatting-link-end"
	NameTarget    = "hmd-internal-link"
	NamePipe      = "link-alias-pipe"
	NameAlias     = "hmd-internal-link_link-alias"
	NameURL       = "string_url"
	NameImageOpen = "formatting_formatting-image_image_image-marker"
	NameAltText   = "image_image-alt-text_link"
	NameAltClose  = "formatting_formatting-image_image_image-alt-text_link"
)

// wikilinkPattern matches [[target]] and [[target|alias]].
var wikilinkPattern = regexp.MustCompile(`\[\[([^\]\[|]+)(?:\|([^\]]+))?\]\]`)

// Parse parses src and returns its token tree.
func Parse(ctx context.Context, src []byte) (*syntax.Static, error) {
	tree, err := markdown.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parsing markdown: %w", err)
	}

	c := &collector{src: src}
	if bt := tree.BlockTree(); bt != nil {
		c.walk(bt.RootNode(), c.block)
	}
	for _, it := range tree.InlineTrees() {
		if it != nil {
			c.walk(it.RootNode(), c.inline)
		}
	}

	links := Wikilinks(src, c.code)
	return syntax.NewStatic(RootName, len(src), merge(links, c.tokens)...)
}

// Range is a half-open byte range.
type Range struct {
	From, To int
}

func (r Range) overlaps(from, to int) bool {
	return from < r.To && r.From < to
}

// Wikilinks returns the token chains of the wikilinks in src that do not
// start inside one of the skip ranges (code).
func Wikilinks(src []byte, skip []Range) [][]syntax.Spec {
	var out [][]syntax.Spec
	for _, m := range wikilinkPattern.FindAllSubmatchIndex(src, -1) {
		if inAny(skip, m[0]) {
			continue
		}
		chain := []syntax.Spec{
			{Name: NameLinkOpen, From: m[0], To: m[0] + 1},
			{Name: NameLinkStart, From: m[0] + 1, To: m[0] + 2},
			{Name: NameTarget, From: m[2], To: m[3]},
		}
		if m[4] >= 0 {
			chain = append(chain,
				syntax.Spec{Name: NamePipe, From: m[3], To: m[3] + 1},
				syntax.Spec{Name: NameAlias, From: m[4], To: m[5]},
			)
		}
		chain = append(chain, syntax.Spec{Name: NameLinkEnd, From: m[1] - 2, To: m[1]})
		out = append(out, chain)
	}
	return out
}

func inAny(rs []Range, pos int) bool {
	for _, r := range rs {
		if pos >= r.From && pos < r.To {
			return true
		}
	}
	return false
}

// merge flattens wikilink chains and tree tokens into one ordered,
// non-overlapping list. Tree tokens that collide with a wikilink are dropped.
func merge(links [][]syntax.Spec, tokens []syntax.Spec) []syntax.Spec {
	var (
		out   []syntax.Spec
		spans []Range
	)
	for _, chain := range links {
		out = append(out, chain...)
		spans = append(spans, Range{From: chain[0].From, To: chain[len(chain)-1].To})
	}
	for _, t := range tokens {
		collides := false
		for _, s := range spans {
			if s.overlaps(t.From, t.To) {
				collides = true
				break
			}
		}
		if !collides {
			out = append(out, t)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].From < out[j].From
	})

	// Drop anything still overlapping its predecessor.
	kept := out[:0]
	end := -1
	for _, t := range out {
		if t.From < end {
			continue
		}
		kept = append(kept, t)
		end = t.To
	}
	return kept
}

type collector struct {
	src    []byte
	tokens []syntax.Spec
	code   []Range
}

// walk visits n and its descendants in document order.
func (c *collector) walk(n *sitter.Node, visit func(*sitter.Node)) {
	if n == nil {
		return
	}
	stack := []*sitter.Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		visit(cur)
		for i := int(cur.ChildCount()) - 1; i >= 0; i-- {
			if child := cur.Child(i); child != nil {
				stack = append(stack, child)
			}
		}
	}
}

func (c *collector) block(n *sitter.Node) {
	switch n.Type() {
	case "fenced_code_block", "indented_code_block", "html_block":
		c.code = append(c.code, nodeRange(n))
	}
}

func (c *collector) inline(n *sitter.Node) {
	switch n.Type() {
	case "code_span":
		c.code = append(c.code, nodeRange(n))

	case "inline_link":
		if dest := childOfType(n, "link_destination"); dest != nil {
			r := c.trim(nodeRange(dest), '<', '>')
			if r.From < r.To {
				c.tokens = append(c.tokens, syntax.Spec{Name: NameURL, From: r.From, To: r.To})
			}
		}

	case "image":
		c.image(n)
	}
}

// image emits the "![", alt text and "]" tokens of an image.
func (c *collector) image(n *sitter.Node) {
	desc := childOfType(n, "image_description")
	if desc == nil {
		return
	}
	img := nodeRange(n)
	alt := c.trim(nodeRange(desc), '[', ']')
	if alt.From >= alt.To || alt.To >= len(c.src) || c.src[alt.To] != ']' {
		return
	}
	if alt.From-img.From != 2 {
		return
	}
	c.tokens = append(c.tokens,
		syntax.Spec{Name: NameImageOpen, From: img.From, To: alt.From},
		syntax.Spec{Name: NameAltText, From: alt.From, To: alt.To},
		syntax.Spec{Name: NameAltClose, From: alt.To, To: alt.To + 1},
	)
}

// trim narrows r past a leading open and trailing close byte.
func (c *collector) trim(r Range, open, close byte) Range {
	if r.From < r.To && c.src[r.From] == open {
		r.From++
	}
	if r.From < r.To && c.src[r.To-1] == close {
		r.To--
	}
	return r
}

func nodeRange(n *sitter.Node) Range {
	return Range{From: int(n.StartByte()), To: int(n.EndByte())}
}

func childOfType(n *sitter.Node, typ string) *sitter.Node {
	for i := 0; i < int(n.ChildCount()); i++ {
		if child := n.Child(i); child != nil && child.Type() == typ {
			return child
		}
	}
	return nil
}
