package renderer

import (
	"testing"

	"github.com/dshills/compactlinks/internal/decoration"
)

func urlReplace(from, to int, text string) decoration.Decoration {
	return decoration.Decoration{
		Type:  decoration.TypeReplace,
		Kind:  decoration.KindURL,
		From:  from,
		To:    to,
		Class: decoration.ClassURLDomain,
		Text:  text,
	}
}

func TestComposeReplace(t *testing.T) {
	line := "see [x](https://example.com/a) end"
	decos := decoration.NewSet([]decoration.Decoration{urlReplace(108, 129, "example.com")}, true)

	segs := Compose(line, 100, decos)
	want := []Segment{
		{From: 100, To: 108, Text: "see [x]("},
		{From: 108, To: 129, Text: "example.com", Class: decoration.ClassURLDomain, Replaced: true},
		{From: 129, To: 134, Text: ") end"},
	}
	if len(segs) != len(want) {
		t.Fatalf("Compose() = %+v, want %+v", segs, want)
	}
	for i := range want {
		if segs[i] != want[i] {
			t.Errorf("segment %d = %+v, want %+v", i, segs[i], want[i])
		}
	}
	if got := Text(segs); got != "see [x](example.com) end" {
		t.Errorf("Text() = %q", got)
	}
}

func TestComposeHiddenAlias(t *testing.T) {
	hidden := decoration.Decoration{
		Type:  decoration.TypeMark,
		Kind:  decoration.KindAlias,
		From:  2,
		To:    7,
		Class: decoration.ClassAliasHidden,
	}
	segs := Compose("[[note|Alias]]", 0, decoration.NewSet([]decoration.Decoration{hidden}, true))

	if got := Text(segs); got != "[[Alias]]" {
		t.Errorf("Text() = %q, want %q", got, "[[Alias]]")
	}
	if len(segs) != 3 || segs[1].Text != "" || !segs[1].Decorated() {
		t.Errorf("segments = %+v, want a zero-width decorated middle segment", segs)
	}
}

func TestComposeEdges(t *testing.T) {
	mark := func(from, to int) decoration.Decoration {
		return decoration.Decoration{Type: decoration.TypeMark, From: from, To: to, Class: decoration.ClassAltTruncated}
	}

	tests := []struct {
		name  string
		decos []decoration.Decoration
		want  string
		n     int
	}{
		{"none", nil, "abcdef", 1},
		{"starts before line", []decoration.Decoration{mark(8, 12)}, "abcdef", 1},
		{"clamped at line end", []decoration.Decoration{mark(12, 20)}, "abcdef", 2},
		{"overlap skipped", []decoration.Decoration{urlReplace(10, 13, "X"), urlReplace(11, 14, "Y")}, "Xdef", 2},
		{"adjacent", []decoration.Decoration{urlReplace(10, 12, "X"), urlReplace(12, 14, "Y")}, "XYef", 3},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			segs := Compose("abcdef", 10, decoration.NewSet(tc.decos, false))
			if got := Text(segs); got != tc.want {
				t.Errorf("Text() = %q, want %q", got, tc.want)
			}
			if len(segs) != tc.n {
				t.Errorf("len(segments) = %d, want %d: %+v", len(segs), tc.n, segs)
			}
		})
	}
}

func TestComposeEmptyLine(t *testing.T) {
	if segs := Compose("", 5, decoration.Empty); len(segs) != 0 {
		t.Errorf("Compose(\"\") = %+v, want none", segs)
	}
}
