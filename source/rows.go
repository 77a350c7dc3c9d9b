package source

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mwantia/vtree"
)

const defaultTable = "vtree_entries"

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// rowScanner is satisfied by both *sql.Rows and pgx.Rows.
type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

// resolveTable returns the default table for an empty name and rejects
// anything that is not a plain identifier.
func resolveTable(table string) (string, error) {
	if table == "" {
		return defaultTable, nil
	}
	if !tableNamePattern.MatchString(table) {
		return "", fmt.Errorf("%w: invalid table name '%s'", vtree.ErrInvalidOption, table)
	}
	return table, nil
}

func selectEntriesQuery(table string) string {
	return fmt.Sprintf("SELECT path, is_dir FROM %s ORDER BY position", table)
}

// scanEntries adds every (path, is_dir) row to b.
func scanEntries(rows rowScanner, b *Builder) error {
	for rows.Next() {
		var key string
		var isDir bool
		if err := rows.Scan(&key, &isDir); err != nil {
			return fmt.Errorf("failed to scan entry: %w", err)
		}
		if err := b.Add(key, isDir); err != nil {
			return err
		}
	}
	return rows.Err()
}

// addKeys adds object-store style keys to b after removing prefix.
// Keys ending in "/" are folders; the prefix marker itself is skipped,
// and so are keys that only share the prefix text, like "photos/x"
// below "photo".
func addKeys(b *Builder, prefix string, keys []string) error {
	for _, key := range keys {
		rel, ok := trimKeyPrefix(key, prefix)
		if !ok || rel == "" || rel == "/" {
			continue
		}
		if err := b.Add(rel, false); err != nil {
			return err
		}
	}
	return nil
}

// trimKeyPrefix removes prefix from key at a "/" boundary, so prefix
// "photo" matches "photo" and "photo/x" but not "photos/x".
func trimKeyPrefix(key, prefix string) (string, bool) {
	if prefix == "" {
		return key, true
	}

	rel, ok := strings.CutPrefix(key, prefix)
	if !ok {
		return "", false
	}
	if rel == "" || strings.HasSuffix(prefix, "/") || strings.HasPrefix(rel, "/") {
		return rel, true
	}
	return "", false
}
