package compact

import (
	"fmt"
	"strings"

	"github.com/dshills/compactlinks/internal/syntax"
	"github.com/dshills/compactlinks/internal/view"
	"github.com/dshills/compactlinks/internal/viewport"
)

// fakeView is an in-memory view.View.
type fakeView struct {
	text       string
	tree       syntax.Tree
	ranges     viewport.Ranges
	sel        view.Selection
	dispatched []view.Transaction
}

func newFakeView(text string, specs ...syntax.Spec) *fakeView {
	return &fakeView{
		text:   text,
		tree:   syntax.MustStatic("Document", len(text), specs...),
		ranges: viewport.Ranges{{From: 0, To: len(text)}},
		sel:    view.Cursor(len(text)),
	}
}

func (v *fakeView) VisibleRanges() viewport.Ranges { return v.ranges }
func (v *fakeView) Selection() view.Selection      { return v.sel }
func (v *fakeView) Tree() syntax.Tree              { return v.tree }
func (v *fakeView) Dispatch(tr view.Transaction)  { v.dispatched = append(v.dispatched, tr) }

func (v *fakeView) SliceString(from, to int) string {
	from = max(0, min(from, len(v.text)))
	to = max(from, min(to, len(v.text)))
	return v.text[from:to]
}

// aliasText is "[alias|target]" followed by plain text; the alias tokens
// cover the first 14 characters.
const aliasText = "[alias|target] and more text"

func aliasSpecs() []syntax.Spec {
	return []syntax.Spec{
		{Name: "formatting-link_formatting-link-start", From: 0, To: 1},
		{Name: "hmd-internal-link", From: 1, To: 6},
		{Name: "link-alias-pipe", From: 6, To: 7},
		{Name: "hmd-internal-link_link-alias", From: 7, To: 13},
		{Name: "formatting-link_formatting-link-end", From: 13, To: 14},
	}
}

// urlDoc returns n markdown links, one per line, and their URL nodes.
func urlDoc(n int) (string, []syntax.Spec) {
	var (
		b     strings.Builder
		specs []syntax.Spec
	)
	for i := 0; i < n; i++ {
		url := fmt.Sprintf("https://site%03d.example/page", i)
		b.WriteString("[l](")
		from := b.Len()
		b.WriteString(url)
		specs = append(specs, syntax.Spec{Name: "string_url", From: from, To: from + len(url)})
		b.WriteString(")\n")
	}
	return b.String(), specs
}

// fakeFormatter returns a fixed string, or fails when fail is set.
type fakeFormatter struct {
	out   string
	fail  bool
	calls int
}

func (f *fakeFormatter) Format(kind, text, scheme, domain string) (string, bool) {
	f.calls++
	if f.fail {
		return "", false
	}
	return f.out + ":" + kind + ":" + domain, true
}
