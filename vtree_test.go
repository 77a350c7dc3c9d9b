package vtree_test

import (
	"bytes"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/mwantia/vtree"
	"github.com/mwantia/vtree/log"
)

// newExampleContent builds a/{c.txt, d/{e.txt}, b.txt, i/{}, f.txt}, g.txt, h/{}.
func newExampleContent(t *testing.T, opts ...vtree.ContentOption) *vtree.Content {
	t.Helper()

	opts = append([]vtree.ContentOption{vtree.WithLogger(log.Discard())}, opts...)
	content, err := vtree.NewContent([]vtree.Entry{
		vtree.NewFolder("a",
			vtree.NewFile("c.txt"),
			vtree.NewFolder("d",
				vtree.NewFile("e.txt"),
			),
			vtree.NewFile("b.txt"),
			vtree.NewFolder("i"),
			vtree.NewFile("f.txt"),
		),
		vtree.NewFile("g.txt"),
		vtree.NewFolder("h"),
	}, opts...)
	if err != nil {
		t.Fatalf("Failed to create content: %v", err)
	}

	return content
}

func newContent(t *testing.T, entries ...vtree.Entry) *vtree.Content {
	t.Helper()

	content, err := vtree.NewContent(entries, vtree.WithLogger(log.Discard()))
	if err != nil {
		t.Fatalf("Failed to create content: %v", err)
	}
	return content
}

// collectPaths drains it and returns GetPath after every pull.
func collectPaths(it *vtree.EntryIterator, separator string) []string {
	var paths []string
	for _, ok := it.Next(); ok; _, ok = it.Next() {
		paths = append(paths, it.GetPath(separator))
	}
	return paths
}

// TestEntryIterator_ExampleTree verifies the pre-order sequence and path of every entry.
func TestEntryIterator_ExampleTree(t *testing.T) {
	content := newExampleContent(t)

	var output []string
	it := content.Iter()
	for entry, ok := it.Next(); ok; entry, ok = it.Next() {
		output = append(output, it.GetPath("/"))
		if !entry.IsDir() && entry.Name() == "b.txt" {
			output = append(output, "b.txt found")
		}
	}

	expected := []string{
		"a",
		"a/c.txt",
		"a/d",
		"a/d/e.txt",
		"a/b.txt",
		"b.txt found",
		"a/i",
		"a/f.txt",
		"g.txt",
		"h",
	}
	if !slices.Equal(output, expected) {
		t.Errorf("Expected %v, got %v", expected, output)
	}
}

// TestEntryIterator_Names verifies entries are produced in insertion order, folders before children.
func TestEntryIterator_Names(t *testing.T) {
	content := newExampleContent(t)

	var names []string
	for entry := range content.All() {
		names = append(names, entry.Name())
	}

	expected := []string{"a", "c.txt", "d", "e.txt", "b.txt", "i", "f.txt", "g.txt", "h"}
	if !slices.Equal(names, expected) {
		t.Errorf("Expected %v, got %v", expected, names)
	}
}

func TestEntryIterator_Separator(t *testing.T) {
	content := newExampleContent(t)

	cases := map[string][]string{
		"\\": {"a", "a\\c.txt", "a\\d", "a\\d\\e.txt", "a\\b.txt", "a\\i", "a\\f.txt", "g.txt", "h"},
		" > ": {"a", "a > c.txt", "a > d", "a > d > e.txt", "a > b.txt", "a > i", "a > f.txt", "g.txt", "h"},
		"":    {"a", "ac.txt", "ad", "ade.txt", "ab.txt", "ai", "af.txt", "g.txt", "h"},
	}

	for separator, expected := range cases {
		t.Run(separator, func(tst *testing.T) {
			got := collectPaths(content.Iter(), separator)
			if !slices.Equal(got, expected) {
				tst.Errorf("Expected %v, got %v", expected, got)
			}
		})
	}
}

// TestEntryIterator_Exhaustion verifies the terminal state is idempotent and the path is empty.
func TestEntryIterator_Exhaustion(t *testing.T) {
	content := newExampleContent(t)
	it := content.Iter()

	if it.GetPath("/") != "" {
		t.Errorf("Expected empty path before first pull, got %q", it.GetPath("/"))
	}
	if it.Current() != nil || it.Depth() != 0 || it.Done() {
		t.Errorf("Expected fresh iterator state")
	}

	for _, ok := it.Next(); ok; _, ok = it.Next() {
	}

	for i := 0; i < 3; i++ {
		entry, ok := it.Next()
		if ok || entry != nil {
			t.Fatalf("Expected no more entries on call %d, got %v", i, entry)
		}
	}

	if !it.Done() {
		t.Errorf("Expected iterator to be done")
	}
	if it.GetPath("/") != "" || it.Depth() != 0 || it.Current() != nil {
		t.Errorf("Expected empty path after exhaustion, got %q", it.GetPath("/"))
	}
}

func TestEntryIterator_EmptyContent(t *testing.T) {
	content := newContent(t)
	it := content.Iter()

	if _, ok := it.Next(); ok {
		t.Fatalf("Expected no entries")
	}
	if !it.Done() || it.GetPath("/") != "" {
		t.Errorf("Expected exhausted iterator with empty path")
	}
}

// TestEntryIterator_EmptyFolders verifies consecutive empty folders and files at the same level.
func TestEntryIterator_EmptyFolders(t *testing.T) {
	content := newContent(t,
		vtree.NewFolder("x",
			vtree.NewFolder("e1"),
			vtree.NewFolder("e2"),
			vtree.NewFile("f1"),
			vtree.NewFolder("e3"),
			vtree.NewFile("f2"),
			vtree.NewFile("f3"),
		),
		vtree.NewFolder("y"),
		vtree.NewFolder("z",
			vtree.NewFolder("deep",
				vtree.NewFolder("deeper"),
			),
		),
	)

	expected := []string{
		"x", "x/e1", "x/e2", "x/f1", "x/e3", "x/f2", "x/f3",
		"y",
		"z", "z/deep", "z/deep/deeper",
	}
	got := collectPaths(content.Iter(), "/")
	if !slices.Equal(got, expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

// TestEntryIterator_DeepBacktrack verifies several frames ending at once return to the right sibling.
func TestEntryIterator_DeepBacktrack(t *testing.T) {
	content := newContent(t,
		vtree.NewFolder("1",
			vtree.NewFolder("2",
				vtree.NewFolder("3",
					vtree.NewFolder("4",
						vtree.NewFile("leaf"),
					),
				),
			),
			vtree.NewFile("after"),
		),
		vtree.NewFile("root"),
	)

	expected := []string{"1", "1/2", "1/2/3", "1/2/3/4", "1/2/3/4/leaf", "1/after", "root"}
	got := collectPaths(content.Iter(), "/")
	if !slices.Equal(got, expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

// TestEntryIterator_FileCleanup verifies a file never remains on the path once the next pull begins.
func TestEntryIterator_FileCleanup(t *testing.T) {
	content := newExampleContent(t)
	it := content.Iter()

	var files []string
	for entry, ok := it.Next(); ok; entry, ok = it.Next() {
		segments := it.Segments()
		if segments[len(segments)-1] != entry.Name() {
			t.Fatalf("Expected last segment %q, got %v", entry.Name(), segments)
		}
		if len(segments) != it.Depth() {
			t.Fatalf("Expected depth %d, got %d", len(segments), it.Depth())
		}

		for _, name := range segments[:len(segments)-1] {
			if slices.Contains(files, name) {
				t.Errorf("File %q still on path %v", name, segments)
			}
		}

		if !entry.IsDir() {
			files = append(files, entry.Name())
		}
	}
}

func TestEntryIterator_Duplicates(t *testing.T) {
	content := newContent(t,
		vtree.NewFile("same"),
		vtree.NewFile("same"),
		vtree.NewFolder("same", vtree.NewFile("same")),
	)

	expected := []string{"same", "same", "same", "same/same"}
	got := collectPaths(content.Iter(), "/")
	if !slices.Equal(got, expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

// TestEntryIterator_Completeness verifies the sequence length equals the node count.
func TestEntryIterator_Completeness(t *testing.T) {
	content := newExampleContent(t)

	n := 0
	for range content.All() {
		n++
	}

	if n != 9 {
		t.Errorf("Expected 9 entries, got %d", n)
	}
	if got := vtree.Count(content.Entries()); got != n {
		t.Errorf("Expected Count %d, got %d", n, got)
	}
}

// TestEntryIterator_Independent verifies iterators over the same content do not share state.
func TestEntryIterator_Independent(t *testing.T) {
	content := newExampleContent(t)

	first := content.Iter()
	first.Next()
	first.Next()
	first.Next()

	second := content.Iter()
	second.Next()

	if first.GetPath("/") != "a/d" {
		t.Errorf("Expected 'a/d', got %q", first.GetPath("/"))
	}
	if second.GetPath("/") != "a" {
		t.Errorf("Expected 'a', got %q", second.GetPath("/"))
	}
}

func TestEntryIterator_AllBreak(t *testing.T) {
	content := newExampleContent(t)
	it := content.Iter()

	for entry := range it.All() {
		if entry.Name() == "d" {
			break
		}
	}

	if it.GetPath("/") != "a/d" {
		t.Errorf("Expected 'a/d' after break, got %q", it.GetPath("/"))
	}

	entry, ok := it.Next()
	if !ok || entry.Name() != "e.txt" {
		t.Errorf("Expected to resume at e.txt, got %v", entry)
	}
}

func TestFindFile(t *testing.T) {
	content := newExampleContent(t)

	tests := []struct {
		name     string
		filename string
		want     string
		found    bool
	}{
		{"nested file", "b.txt", "a/b.txt", true},
		{"deep file", "e.txt", "a/d/e.txt", true},
		{"top-level file", "g.txt", "g.txt", true},
		{"folder name", "h", "", false},
		{"nested folder name", "d", "", false},
		{"missing", "nope.txt", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(tst *testing.T) {
			got, found := content.Iter().FindFile(tt.filename, "/")
			if found != tt.found || got != tt.want {
				tst.Errorf("FindFile(%q): expected (%q, %v), got (%q, %v)", tt.filename, tt.want, tt.found, got, found)
			}
		})
	}
}

// TestFindFile_StopsAtMatch verifies no entries are consumed after the first match.
func TestFindFile_StopsAtMatch(t *testing.T) {
	content := newContent(t,
		vtree.NewFolder("x", vtree.NewFile("dup")),
		vtree.NewFile("dup"),
	)
	it := content.Iter()

	got, found := it.FindFile("dup", "/")
	if !found || got != "x/dup" {
		t.Fatalf("Expected 'x/dup', got (%q, %v)", got, found)
	}

	got, found = it.FindFile("dup", "/")
	if !found || got != "dup" {
		t.Fatalf("Expected second match 'dup', got (%q, %v)", got, found)
	}

	if _, found := it.FindFile("dup", "/"); found {
		t.Errorf("Expected no third match")
	}
}

func TestContent_FindFile(t *testing.T) {
	content := newExampleContent(t)

	if got, found := content.FindFile("b.txt", "/"); !found || got != "a/b.txt" {
		t.Errorf("Expected 'a/b.txt', got (%q, %v)", got, found)
	}
	if _, found := content.FindFile("h", "/"); found {
		t.Errorf("Expected folder 'h' not to match")
	}
}

func TestFindGlob(t *testing.T) {
	content := newExampleContent(t)

	tests := []struct {
		pattern string
		want    string
		found   bool
	}{
		{"**/e.txt", "a\\d\\e.txt", true},
		{"a/*.txt", "a\\c.txt", true},
		{"*.txt", "g.txt", true},
		{"h", "", false},
		{"**/*.md", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(tst *testing.T) {
			got, found, err := content.Iter().FindGlob(tt.pattern, "\\")
			if err != nil {
				tst.Fatalf("FindGlob failed: %v", err)
			}
			if found != tt.found || got != tt.want {
				tst.Errorf("FindGlob(%q): expected (%q, %v), got (%q, %v)", tt.pattern, tt.want, tt.found, got, found)
			}
		})
	}

	if _, _, err := content.Iter().FindGlob("a/[", "/"); !errors.Is(err, vtree.ErrInvalidPattern) {
		t.Errorf("Expected ErrInvalidPattern, got %v", err)
	}
}

func TestNewContent_Validation(t *testing.T) {
	var nilFile *vtree.File

	cases := map[string][]vtree.Entry{
		"nil entry":        {nil},
		"nil file":         {nilFile},
		"nested nil entry": {vtree.NewFolder("a", vtree.NewFolder("b", nil))},
	}

	for name, entries := range cases {
		t.Run(name, func(tst *testing.T) {
			if _, err := vtree.NewContent(entries); !errors.Is(err, vtree.ErrInvalidEntry) {
				tst.Errorf("Expected ErrInvalidEntry, got %v", err)
			}
		})
	}

	if _, err := vtree.NewContent(nil, vtree.WithLogger(nil)); !errors.Is(err, vtree.ErrInvalidOption) {
		t.Errorf("Expected ErrInvalidOption, got %v", err)
	}
}

func TestContent_Metadata(t *testing.T) {
	first := newExampleContent(t)
	second := newExampleContent(t)

	if first.ID() == "" || first.ID() == second.ID() {
		t.Errorf("Expected unique ids, got %q and %q", first.ID(), second.ID())
	}
	if first.Len() != 3 {
		t.Errorf("Expected 3 top-level entries, got %d", first.Len())
	}

	folder, ok := first.Entries()[0].(*vtree.Folder)
	if !ok || folder.Type() != vtree.EntryTypeFolder || len(folder.Entries()) != 5 {
		t.Errorf("Expected folder 'a' with 5 children")
	}
	if first.Entries()[1].Type().String() != "file" {
		t.Errorf("Expected 'file', got %q", first.Entries()[1].Type())
	}
}

func TestContent_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWriterLogger("test", log.Debug, &buf)

	content, err := vtree.NewContent([]vtree.Entry{vtree.NewFile("only")}, vtree.WithLogger(logger))
	if err != nil {
		t.Fatalf("Failed to create content: %v", err)
	}

	for range content.All() {
	}

	out := buf.String()
	if !strings.Contains(out, "created content "+content.ID()) {
		t.Errorf("Expected creation line, got %q", out)
	}
	if !strings.Contains(out, "traversal exhausted after 1 entries") {
		t.Errorf("Expected exhaustion line, got %q", out)
	}
}

func TestEntryIterator_Position(t *testing.T) {
	content := newExampleContent(t)
	it := content.Iter()

	if it.Current() != nil || it.Depth() != 0 || it.Done() {
		t.Fatalf("Expected fresh iterator without position")
	}

	tests := map[string]struct {
		segments []string
		last     []bool
	}{
		"e.txt": {[]string{"a", "d", "e.txt"}, []bool{false, false, true}},
		"f.txt": {[]string{"a", "f.txt"}, []bool{false, true}},
		"h":     {[]string{"h"}, []bool{true}},
	}

	for entry, ok := it.Next(); ok; entry, ok = it.Next() {
		if it.Current() != entry {
			t.Fatalf("Expected Current to return the yielded entry '%s'", entry.Name())
		}

		tt, found := tests[entry.Name()]
		if !found {
			continue
		}

		if !slices.Equal(it.Segments(), tt.segments) {
			t.Errorf("Expected segments %v, got %v", tt.segments, it.Segments())
		}
		if it.Depth() != len(tt.segments) {
			t.Errorf("Expected depth %d, got %d", len(tt.segments), it.Depth())
		}
		for level, want := range tt.last {
			if got := it.IsLast(level); got != want {
				t.Errorf("'%s': expected IsLast(%d) = %v, got %v", entry.Name(), level, want, got)
			}
		}
		if it.IsLast(-1) || it.IsLast(len(tt.segments)) {
			t.Errorf("'%s': expected IsLast to be false outside the path", entry.Name())
		}
	}

	if !it.Done() || it.Current() != nil || it.Depth() != 0 {
		t.Errorf("Expected exhausted iterator without position")
	}
}
