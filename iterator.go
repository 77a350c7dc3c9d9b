package vtree

import (
	"iter"
	"strings"

	"github.com/mwantia/vtree/log"
)

// frame is a cursor over the remaining siblings at one depth.
type frame struct {
	entries []Entry
	next    int
}

// EntryIterator walks a tree in pre-order using an explicit stack of
// sibling cursors, and keeps the chain of entries leading to the last
// yielded entry.
//
// An EntryIterator is forward-only and must not be shared between
// goroutines. Create a new one from Content.Iter to restart a walk.
type EntryIterator struct {
	log *log.Logger

	frames []frame
	path   []Entry

	yielded int
}

func newEntryIterator(entries []Entry, logger *log.Logger) *EntryIterator {
	if logger == nil {
		logger = log.Discard()
	}

	return &EntryIterator{
		log:    logger,
		frames: []frame{{entries: entries}},
	}
}

// Next advances to the next entry in pre-order.
// Returns false once every entry has been produced, and keeps returning
// false on subsequent calls.
func (it *EntryIterator) Next() (Entry, bool) {
	for len(it.frames) > 0 {
		// A file has no children, it leaves the path as soon as we move on
		if n := len(it.path); n > 0 && !it.path[n-1].IsDir() {
			it.path = it.path[:n-1]
		}

		top := &it.frames[len(it.frames)-1]
		if top.next < len(top.entries) {
			entry := top.entries[top.next]
			top.next++

			// Empty folders still get a frame, it is exhausted on the next call
			if folder, ok := entry.(*Folder); ok {
				it.frames = append(it.frames, frame{entries: folder.entries})
			}

			it.path = append(it.path, entry)
			it.yielded++
			return entry, true
		}

		it.frames = it.frames[:len(it.frames)-1]
		// The root level has no folder of its own on the path
		if n := len(it.path); n > 0 {
			it.path = it.path[:n-1]
		}

		if len(it.frames) == 0 {
			it.log.Debug("traversal exhausted after %d entries", it.yielded)
		}
	}

	return nil, false
}

// All returns the remaining entries as a lazy sequence.
// Breaking out of the loop leaves the iterator positioned on the last
// produced entry.
func (it *EntryIterator) All() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for entry, ok := it.Next(); ok; entry, ok = it.Next() {
			if !yield(entry) {
				return
			}
		}
	}
}

// GetPath joins the names from the root down to the last yielded entry.
// Returns an empty string before the first call to Next and after
// the traversal is exhausted.
func (it *EntryIterator) GetPath(separator string) string {
	switch len(it.path) {
	case 0:
		return ""
	case 1:
		return it.path[0].Name()
	}

	var sb strings.Builder
	for i, entry := range it.path {
		if i > 0 {
			sb.WriteString(separator)
		}
		sb.WriteString(entry.Name())
	}
	return sb.String()
}

// Segments returns a copy of the names currently on the path.
func (it *EntryIterator) Segments() []string {
	segments := make([]string, len(it.path))
	for i, entry := range it.path {
		segments[i] = entry.Name()
	}
	return segments
}

// Current returns the last yielded entry, or nil before the first call
// to Next and after the traversal is exhausted.
func (it *EntryIterator) Current() Entry {
	if len(it.path) == 0 {
		return nil
	}
	return it.path[len(it.path)-1]
}

// Depth returns the number of entries on the path, 1 for a top-level entry.
func (it *EntryIterator) Depth() int {
	return len(it.path)
}

// Done returns true once the traversal is exhausted.
func (it *EntryIterator) Done() bool {
	return len(it.frames) == 0
}

// IsLast reports whether the path entry at level (0 for top-level) is the
// last of its siblings. Returns false for levels outside the current path.
func (it *EntryIterator) IsLast(level int) bool {
	if level < 0 || level >= len(it.path) {
		return false
	}

	// frames[level] produced path[level] and has already moved past it
	f := it.frames[level]
	return f.next == len(f.entries)
}
