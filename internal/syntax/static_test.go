package syntax

import (
	"strings"
	"testing"
)

func aliasLinkTree(t *testing.T) *Static {
	t.Helper()
	tree, err := NewStatic("Document", 20,
		Spec{Name: "formatting-link_formatting-link-start", From: 0, To: 1},
		Spec{Name: "hmd-internal-link", From: 1, To: 6},
		Spec{Name: "link-alias-pipe", From: 6, To: 7},
		Spec{Name: "hmd-internal-link_link-alias", From: 7, To: 13},
		Spec{Name: "formatting-link_formatting-link-end", From: 13, To: 14},
	)
	if err != nil {
		t.Fatalf("NewStatic() error = %v", err)
	}
	return tree
}

func collect(tree Tree, from, to int) []string {
	var names []string
	tree.Iterate(from, to, func(n Node) {
		names = append(names, n.TypeName())
	})
	return names
}

func TestStaticIterateOrder(t *testing.T) {
	tree := aliasLinkTree(t)

	got := strings.Join(collect(tree, 0, 20), ",")
	want := "Document,formatting-link_formatting-link-start,hmd-internal-link,link-alias-pipe,hmd-internal-link_link-alias,formatting-link_formatting-link-end"
	if got != want {
		t.Errorf("Iterate order = %s, want %s", got, want)
	}
}

func TestStaticIterateRestricted(t *testing.T) {
	tree := aliasLinkTree(t)

	got := collect(tree, 8, 12)
	if len(got) != 2 || got[1] != "hmd-internal-link_link-alias" {
		t.Errorf("Iterate(8, 12) = %v, want [Document hmd-internal-link_link-alias]", got)
	}
}

func TestStaticSiblingChain(t *testing.T) {
	tree := aliasLinkTree(t)

	var first Node
	tree.Iterate(0, 0, func(n Node) {
		if Contains(n, "formatting-link-start") {
			first = n
		}
	})
	if first == nil {
		t.Fatal("link start node not found")
	}

	count := 0
	for n := first; n != nil; n = n.NextSibling() {
		count++
		if n.Parent() == nil || n.Parent().TypeName() != "Document" {
			t.Errorf("Parent of %s should be Document", n.TypeName())
		}
	}
	if count != 5 {
		t.Errorf("sibling chain length = %d, want 5", count)
	}
}

func TestStaticNilLinksAreNilInterfaces(t *testing.T) {
	tree := aliasLinkTree(t)

	if tree.Root().Parent() != nil {
		t.Error("root Parent() should be a nil interface")
	}
	var last Node
	tree.Iterate(13, 14, func(n Node) { last = n })
	if last.NextSibling() != nil {
		t.Error("last sibling NextSibling() should be a nil interface")
	}
}

func TestStaticNested(t *testing.T) {
	tree := MustStatic("Document", 30,
		Spec{Name: "paragraph", From: 0, To: 30, Children: []Spec{
			{Name: "image", From: 2, To: 10, Children: []Spec{
				{Name: "image_image-alt-text_link", From: 4, To: 8},
			}},
		}},
	)

	got := strings.Join(collect(tree, 0, 30), ",")
	if got != "Document,paragraph,image,image_image-alt-text_link" {
		t.Errorf("Iterate = %s", got)
	}
}

func TestNewStaticRejectsInvalid(t *testing.T) {
	tests := []struct {
		name  string
		specs []Spec
	}{
		{"reversed", []Spec{{Name: "a", From: 5, To: 2}}},
		{"outside", []Spec{{Name: "a", From: 0, To: 50}}},
		{"overlap", []Spec{{Name: "a", From: 0, To: 5}, {Name: "b", From: 3, To: 8}}},
		{"child outside", []Spec{{Name: "a", From: 0, To: 5, Children: []Spec{{Name: "b", From: 4, To: 6}}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewStatic("Document", 20, tt.specs...); err == nil {
				t.Error("NewStatic() should fail")
			}
		})
	}
}

func TestContains(t *testing.T) {
	tree := aliasLinkTree(t)
	if !Contains(tree.Root(), "Doc") {
		t.Error("Contains(root, Doc) = false")
	}
	if Contains(nil, "x") {
		t.Error("Contains(nil) should be false")
	}
}
