package app

import (
	"io"

	"github.com/dshills/compactlinks/internal/config"
	"github.com/dshills/compactlinks/internal/renderer"
	"github.com/dshills/compactlinks/internal/syntax"
	"github.com/dshills/compactlinks/internal/view"
	"github.com/dshills/compactlinks/internal/view/adapter"
	"github.com/dshills/compactlinks/internal/viewport"
)

// staticView shows the whole document with no cursor.
type staticView struct {
	doc *Document
}

func (v staticView) VisibleRanges() viewport.Ranges {
	return viewport.Ranges{{From: 0, To: v.doc.Len()}}
}

func (v staticView) Selection() view.Selection { return view.Cursor(-1) }

func (v staticView) SliceString(from, to int) string { return v.doc.SliceString(from, to) }

func (v staticView) Tree() syntax.Tree { return v.doc.Tree() }

func (v staticView) Dispatch(view.Transaction) {}

// Print writes doc with its decorations applied, as an unfocused view
// would display it.
func Print(w io.Writer, doc *Document, s config.Settings, opts ...adapter.Option) error {
	a, err := adapter.New(staticView{doc: doc}, s, opts...)
	if err != nil {
		return err
	}
	defer a.Close()

	decos := a.Decorations()
	for i := 0; i < doc.LineCount(); i++ {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		segs := renderer.Compose(doc.Line(i), doc.LineStart(i), decos)
		if _, err := io.WriteString(w, renderer.Text(segs)); err != nil {
			return err
		}
	}
	return nil
}
