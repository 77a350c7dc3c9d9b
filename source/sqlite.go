package source

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mwantia/vtree"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteSource reads entries from a SQLite table with the columns
// (path TEXT, is_dir INTEGER, position INTEGER), ordered by position.
type SQLiteSource struct {
	db    *sql.DB
	table string
}

// NewSQLiteSource opens the database at dbPath.
// An empty table name selects "vtree_entries".
func NewSQLiteSource(dbPath, table string) (*SQLiteSource, error) {
	table, err := resolveTable(table)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	// A single connection keeps ":memory:" databases consistent
	db.SetMaxOpenConns(1)

	return &SQLiteSource{
		db:    db,
		table: table,
	}, nil
}

// Name returns the identifier name defined for this source
func (*SQLiteSource) Name() string {
	return "sqlite"
}

// DB returns the underlying database handle.
func (ss *SQLiteSource) DB() *sql.DB {
	return ss.db
}

// Load queries every row of the table and returns the rows as a new Content.
func (ss *SQLiteSource) Load(ctx context.Context, opts ...vtree.ContentOption) (*vtree.Content, error) {
	rows, err := ss.db.QueryContext(ctx, selectEntriesQuery(ss.table))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer rows.Close()

	b := NewBuilder()
	if err := scanEntries(rows, b); err != nil {
		return nil, err
	}

	return b.Content(opts...)
}

// Close releases the database handle.
func (ss *SQLiteSource) Close() error {
	return ss.db.Close()
}
