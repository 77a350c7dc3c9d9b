package source

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kr/fs"
	"github.com/mwantia/vtree"
)

// LocalSource snapshots a directory of the local filesystem.
// Entries are read in lexical order; symbolic links are kept as files
// and never followed.
type LocalSource struct {
	path string
}

func NewLocalSource(path string) *LocalSource {
	return &LocalSource{
		path: filepath.Clean(path),
	}
}

// Name returns the identifier name defined for this source
func (*LocalSource) Name() string {
	return "local"
}

// Load walks the directory and returns its contents as a new Content.
func (ls *LocalSource) Load(ctx context.Context, opts ...vtree.ContentOption) (*vtree.Content, error) {
	info, err := os.Stat(ls.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSourceUnavailable, ls.path)
		}
		return nil, err
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", vtree.ErrNotDirectory, ls.path)
	}

	b := NewBuilder()
	// The walker lstats every path and visits directory children sorted by name
	walker := fs.Walk(ls.path)
	for walker.Step() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := walker.Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
		}

		rel, err := filepath.Rel(ls.path, walker.Path())
		if err != nil {
			return nil, err
		}
		if rel == "." {
			continue
		}

		if err := b.Add(filepath.ToSlash(rel), walker.Stat().IsDir()); err != nil {
			return nil, err
		}
	}

	return b.Content(opts...)
}
