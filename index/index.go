package index

import (
	"fmt"
	"strings"

	"github.com/mwantia/vtree"
	"github.com/tidwall/btree"
)

// Index is a sorted snapshot of every rendered path of a tree.
//
// Layer 1: B-tree for path → entry lookups and ordered prefix scans
// Layer 2: Stats collected during the same traversal
//
// An Index is never modified after Build, so it is safe for concurrent readers.
type Index struct {
	separator string
	paths     *btree.Map[string, vtree.Entry]

	duplicates int
	stats      Stats
}

// Stats describes the shape of an indexed tree.
type Stats struct {
	Entries  int `json:"entries"`
	Files    int `json:"files"`
	Folders  int `json:"folders"`
	MaxDepth int `json:"max_depth"`
}

// Build walks a fresh iterator of content and indexes every path joined with separator.
// Same-named siblings render to the same path; the first one in traversal
// order is kept and the others are counted as duplicates.
func Build(content *vtree.Content, separator string) (*Index, error) {
	if separator == "" {
		return nil, fmt.Errorf("%w: index requires a non-empty separator", vtree.ErrInvalidSeparator)
	}

	idx := &Index{
		separator: separator,
		paths:     btree.NewMap[string, vtree.Entry](0),
	}

	it := content.Iter()
	for entry, ok := it.Next(); ok; entry, ok = it.Next() {
		idx.stats.Entries++
		if entry.IsDir() {
			idx.stats.Folders++
		} else {
			idx.stats.Files++
		}
		idx.stats.MaxDepth = max(idx.stats.MaxDepth, it.Depth())

		p := it.GetPath(separator)
		if _, exists := idx.paths.Get(p); exists {
			idx.duplicates++
			continue
		}
		idx.paths.Set(p, entry)
	}

	return idx, nil
}

// Separator returns the separator used to render indexed paths.
func (idx *Index) Separator() string {
	return idx.separator
}

// Get returns the entry stored for path.
func (idx *Index) Get(path string) (vtree.Entry, bool) {
	return idx.paths.Get(path)
}

// Len returns the number of distinct paths.
func (idx *Index) Len() int {
	return idx.paths.Len()
}

// Duplicates returns the number of entries shadowed by an earlier entry with the same path.
func (idx *Index) Duplicates() int {
	return idx.duplicates
}

// Stats returns the counters collected while building the index.
func (idx *Index) Stats() Stats {
	return idx.stats
}

// Scan calls fn in sorted order for prefix itself and every path below it.
// An empty prefix scans everything. Scanning stops when fn returns false.
func (idx *Index) Scan(prefix string, fn func(path string, entry vtree.Entry) bool) {
	if prefix == "" {
		idx.paths.Scan(fn)
		return
	}

	below := prefix + idx.separator
	idx.paths.Ascend(prefix, func(p string, entry vtree.Entry) bool {
		// Keys sharing the raw prefix are contiguous, but siblings like
		// "a-b" sort between "a" and "a/b" and must be skipped.
		if !strings.HasPrefix(p, prefix) {
			return false
		}
		if p != prefix && !strings.HasPrefix(p, below) {
			return true
		}
		return fn(p, entry)
	})
}

// Paths returns every indexed path below prefix in sorted order.
func (idx *Index) Paths(prefix string) []string {
	var paths []string
	idx.Scan(prefix, func(p string, _ vtree.Entry) bool {
		paths = append(paths, p)
		return true
	})
	return paths
}
