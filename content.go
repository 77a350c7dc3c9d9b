package vtree

import (
	"fmt"
	"iter"

	"github.com/google/uuid"
	"github.com/mwantia/vtree/log"
)

// Content is the unnamed root of a tree and owns its top-level entries.
// A Content must not be modified while iterators created from it are in use.
type Content struct {
	id      string
	log     *log.Logger
	entries []Entry
}

// NewContent creates a new tree root over the given top-level entries.
// Returns ErrInvalidEntry if any entry in the tree is nil.
func NewContent(entries []Entry, opts ...ContentOption) (*Content, error) {
	options := newDefaultContentOptions()
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}

	if err := validateEntries(entries, ""); err != nil {
		return nil, err
	}

	id := uuid.Must(uuid.NewV7()).String()
	content := &Content{
		id:      id,
		log:     options.logger(),
		entries: entries,
	}

	content.log.Debug("created content %s with %d top-level entries", id, len(entries))
	return content, nil
}

// validateEntries rejects nil entries anywhere below entries.
func validateEntries(entries []Entry, parent string) error {
	for i, entry := range entries {
		switch e := entry.(type) {
		case *File:
			if e == nil {
				return fmt.Errorf("%w: nil file at index %d of '%s'", ErrInvalidEntry, i, parent)
			}
		case *Folder:
			if e == nil {
				return fmt.Errorf("%w: nil folder at index %d of '%s'", ErrInvalidEntry, i, parent)
			}
			if err := validateEntries(e.entries, parent+"/"+e.name); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: nil entry at index %d of '%s'", ErrInvalidEntry, i, parent)
		}
	}
	return nil
}

// ID returns the unique identifier assigned to this content.
func (c *Content) ID() string {
	return c.id
}

// Entries returns the ordered top-level entries.
// The returned slice must not be modified.
func (c *Content) Entries() []Entry {
	return c.entries
}

// Len returns the number of top-level entries.
func (c *Content) Len() int {
	return len(c.entries)
}

// Iter creates a new iterator positioned before the first top-level entry.
func (c *Content) Iter() *EntryIterator {
	return newEntryIterator(c.entries, c.log.Named(c.id))
}

// All returns a lazy pre-order sequence over a fresh iterator.
func (c *Content) All() iter.Seq[Entry] {
	return c.Iter().All()
}

// FindFile searches a fresh iterator for the first file named filename.
func (c *Content) FindFile(filename, separator string) (string, bool) {
	return c.Iter().FindFile(filename, separator)
}
