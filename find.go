package vtree

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// FindFile pulls entries until a file named filename is produced and
// returns its path. Folders never match. The iterator stays positioned
// on the match, so a further call continues with the next entry.
func (it *EntryIterator) FindFile(filename, separator string) (string, bool) {
	for entry, ok := it.Next(); ok; entry, ok = it.Next() {
		if entry.IsDir() {
			continue
		}

		if entry.Name() == filename {
			p := it.GetPath(separator)
			it.log.Debug("found file '%s' at '%s'", filename, p)
			return p, true
		}
	}

	return "", false
}

// FindGlob pulls entries until a file whose slash-joined path matches
// pattern is produced, and returns its path joined with separator.
// Patterns follow doublestar syntax, so "**/*.txt" matches at any depth.
func (it *EntryIterator) FindGlob(pattern, separator string) (string, bool, error) {
	if !doublestar.ValidatePattern(pattern) {
		return "", false, fmt.Errorf("%w: '%s'", ErrInvalidPattern, pattern)
	}

	for entry, ok := it.Next(); ok; entry, ok = it.Next() {
		if entry.IsDir() {
			continue
		}

		segments := it.Segments()
		matched, err := doublestar.Match(pattern, strings.Join(segments, "/"))
		if err != nil {
			return "", false, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
		}

		if matched {
			return strings.Join(segments, separator), true, nil
		}
	}

	return "", false, nil
}
