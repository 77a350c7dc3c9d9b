package source

import (
	"errors"
	"slices"
	"testing"

	"github.com/mwantia/vtree"
)

func TestAddKeys_StripsPrefix(t *testing.T) {
	// Listing order of a KV store or bucket below "vtree/"
	keys := []string{
		"vtree/",
		"vtree/a/",
		"vtree/a/b.txt",
		"vtree/a/c/d.txt",
		"vtree/e.txt",
		"vtree/f/",
	}

	b := NewBuilder()
	if err := addKeys(b, "vtree/", keys); err != nil {
		t.Fatalf("addKeys failed: %v", err)
	}

	content, err := b.Content()
	if err != nil {
		t.Fatalf("Content failed: %v", err)
	}

	var got []string
	it := content.Iter()
	for entry, ok := it.Next(); ok; entry, ok = it.Next() {
		p := it.GetPath("/")
		if entry.IsDir() {
			p += "/"
		}
		got = append(got, p)
	}

	expected := []string{"a/", "a/b.txt", "a/c/", "a/c/d.txt", "e.txt", "f/"}
	if !slices.Equal(got, expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestAddKeys_PrefixBoundary(t *testing.T) {
	keys := []string{
		"photo",
		"photo/a.jpg",
		"photos/b.jpg",
		"photography/c.jpg",
		"photo/album/d.jpg",
	}

	for _, prefix := range []string{"photo", "photo/"} {
		t.Run(prefix, func(tst *testing.T) {
			b := NewBuilder()
			if err := addKeys(b, prefix, keys); err != nil {
				tst.Fatalf("addKeys failed: %v", err)
			}

			content, err := b.Content()
			if err != nil {
				tst.Fatalf("Content failed: %v", err)
			}

			var got []string
			it := content.Iter()
			for _, ok := it.Next(); ok; _, ok = it.Next() {
				got = append(got, it.GetPath("/"))
			}

			expected := []string{"a.jpg", "album", "album/d.jpg"}
			if !slices.Equal(got, expected) {
				tst.Errorf("Expected %v, got %v", expected, got)
			}
		})
	}
}

func TestTrimKeyPrefix(t *testing.T) {
	tests := []struct {
		key, prefix string
		rel         string
		ok          bool
	}{
		{"a/b", "", "a/b", true},
		{"photo/x", "photo", "/x", true},
		{"photo/x", "photo/", "x", true},
		{"photo", "photo", "", true},
		{"photos/x", "photo", "", false},
		{"other/x", "photo/", "", false},
	}

	for _, tt := range tests {
		rel, ok := trimKeyPrefix(tt.key, tt.prefix)
		if rel != tt.rel || ok != tt.ok {
			t.Errorf("trimKeyPrefix(%q, %q): expected (%q, %v), got (%q, %v)", tt.key, tt.prefix, tt.rel, tt.ok, rel, ok)
		}
	}
}

func TestAddKeys_Conflict(t *testing.T) {
	b := NewBuilder()
	err := addKeys(b, "", []string{"a", "a/b"})
	if !errors.Is(err, vtree.ErrNotDirectory) {
		t.Errorf("Expected ErrNotDirectory, got %v", err)
	}
}

func TestResolveTable(t *testing.T) {
	tests := map[string]struct {
		expected string
		valid    bool
	}{
		"":             {defaultTable, true},
		"entries":      {"entries", true},
		"_tree_2":      {"_tree_2", true},
		"2tree":        {"", false},
		"tree; DROP":   {"", false},
		"schema.table": {"", false},
	}

	for table, tt := range tests {
		t.Run(table, func(tst *testing.T) {
			got, err := resolveTable(table)
			if tt.valid != (err == nil) {
				tst.Fatalf("Expected valid=%v, got error %v", tt.valid, err)
			}
			if got != tt.expected {
				tst.Errorf("Expected '%s', got '%s'", tt.expected, got)
			}
		})
	}
}
