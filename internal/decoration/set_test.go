package decoration

import "testing"

func TestNewSetSorts(t *testing.T) {
	s := NewSet([]Decoration{testDecoration(20, 25), testDecoration(5, 9), testDecoration(5, 7)}, false)

	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}
	want := []Key{{5, 7}, {5, 9}, {20, 25}}
	for i, k := range want {
		if s.At(i).Key() != k {
			t.Errorf("At(%d) = %v, want %v", i, s.At(i).Key(), k)
		}
	}
}

func TestNewSetSortedKeepsOrder(t *testing.T) {
	items := []Decoration{testDecoration(1, 2), testDecoration(3, 4)}
	s := NewSet(items, true)
	items[0].Text = "mutated"

	if s.At(0).Text == "mutated" {
		t.Error("NewSet must copy its input")
	}
}

func TestNewSetEmpty(t *testing.T) {
	if !NewSet(nil, false).Equal(Empty) {
		t.Error("NewSet(nil) should equal Empty")
	}
}

func TestSetFindAndOverlapping(t *testing.T) {
	s := NewSet([]Decoration{testDecoration(0, 5), testDecoration(10, 20), testDecoration(30, 31)}, true)

	if d, ok := s.Find(12); !ok || d.From != 10 {
		t.Errorf("Find(12) = %v, %v", d, ok)
	}
	if _, ok := s.Find(5); ok {
		t.Error("Find(5) should miss: spans are half-open")
	}
	if got := s.Overlapping(4, 11); len(got) != 2 {
		t.Errorf("Overlapping(4, 11) = %v, want 2 items", got)
	}
	if got := s.Overlapping(21, 30); len(got) != 0 {
		t.Errorf("Overlapping(21, 30) = %v, want none", got)
	}
}

func TestMerge(t *testing.T) {
	a := NewSet([]Decoration{testDecoration(10, 12)}, true)
	b := NewSet([]Decoration{testDecoration(0, 2), testDecoration(20, 22)}, true)

	m := Merge(a, b)
	if m.Len() != 3 || m.At(0).From != 0 || m.At(2).From != 20 {
		t.Errorf("Merge() = %v", m.All())
	}
	if Merge().Len() != 0 {
		t.Error("Merge() of nothing should be empty")
	}
}

func TestDecorationHides(t *testing.T) {
	tests := []struct {
		d    Decoration
		want bool
	}{
		{Decoration{Type: TypeMark, Class: ClassAliasHidden}, true},
		{Decoration{Type: TypeMark, Class: "other"}, false},
		{Decoration{Type: TypeReplace, Text: ""}, true},
		{Decoration{Type: TypeReplace, Text: "x"}, false},
	}
	for _, tt := range tests {
		if got := tt.d.Hides(); got != tt.want {
			t.Errorf("%v.Hides() = %v, want %v", tt.d, got, tt.want)
		}
	}
}

func TestTypeAndKindString(t *testing.T) {
	if TypeMark.String() != "mark" || TypeReplace.String() != "replace" || Type(9).String() != "unknown" {
		t.Error("Type.String() mismatch")
	}
	if KindAlias.String() != "alias" || KindURL.String() != "url" || KindAltText.String() != "alt" || Kind(9).String() != "unknown" {
		t.Error("Kind.String() mismatch")
	}
}
