package cell

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSplitPath(t *testing.T) {
	tests := []struct {
		path, next, rest string
	}{
		{"", "", ""},
		{"/", "", ""},
		{"///", "", ""},
		{"list", "list", ""},
		{"/list", "list", ""},
		{"//list/items", "list", "items"},
		{"a/b/c", "a", "b/c"},
		{"/a/b/c/", "a", "b/c/"},
	}
	for _, tt := range tests {
		next, rest := SplitPath(tt.path)
		if next != tt.next || rest != tt.rest {
			t.Errorf("SplitPath(%q) = (%q, %q), want (%q, %q)", tt.path, next, rest, tt.next, tt.rest)
		}
	}
}

func TestJoinPath(t *testing.T) {
	tests := []struct {
		parent, name, want string
	}{
		{"", "list", "/list"},
		{"/", "list", "/list"},
		{"/list", "items", "/list/items"},
		{"/a/b", "c", "/a/b/c"},
	}
	for _, tt := range tests {
		if got := JoinPath(tt.parent, tt.name); got != tt.want {
			t.Errorf("JoinPath(%q, %q) = %q, want %q", tt.parent, tt.name, got, tt.want)
		}
	}
}

func TestComponents(t *testing.T) {
	got := Components("//a/b//c/")
	want := []string{"a", "b", "c"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Components mismatch (-want +got):\n%s", diff)
	}
	if got := Components("/"); len(got) != 0 {
		t.Errorf("Components(/) = %v, want empty", got)
	}
}

func TestValidName(t *testing.T) {
	for _, name := range []string{"list", "item-2", "a.b"} {
		if !validName(name) {
			t.Errorf("validName(%q) = false, want true", name)
		}
	}
	for _, name := range []string{"", "a/b", "/"} {
		if validName(name) {
			t.Errorf("validName(%q) = true, want false", name)
		}
	}
}
