package source

import (
	"fmt"
	"strings"

	"github.com/mwantia/vtree"
)

// node tracks the folders and files already created below one folder,
// so keys sharing a prefix end up in the same folder.
type node struct {
	folder  *vtree.Folder
	folders map[string]*node
	files   map[string]struct{}
}

func newNode(folder *vtree.Folder) *node {
	return &node{
		folder:  folder,
		folders: make(map[string]*node),
		files:   make(map[string]struct{}),
	}
}

// Builder turns slash-separated keys into a tree, keeping the order in
// which keys are added.
//
// Folders are merged by name: adding "a/b" and "a/c" yields one folder "a".
// Files are always appended, so repeating a file key repeats the file.
// Within one folder a name belongs either to one folder or to files, never
// to both: adding a file over a folder, or a folder over a file, returns
// ErrNameConflict in either order.
type Builder struct {
	root *node
	keys int
}

func NewBuilder() *Builder {
	return &Builder{
		root: newNode(vtree.NewFolder("")),
	}
}

// Add inserts key as a folder (isDir, or a trailing "/") or as a file.
// Missing parent folders are created on demand.
// Returns ErrInvalidPath for empty, "." or ".." segments,
// ErrNotDirectory if a parent segment already exists as a file and
// ErrNameConflict if the last segment exists with the other type.
func (b *Builder) Add(key string, isDir bool) error {
	key = strings.TrimPrefix(key, "/")
	if strings.HasSuffix(key, "/") {
		isDir = true
		key = strings.TrimSuffix(key, "/")
	}

	if key == "" {
		if isDir {
			// The root folder always exists
			return nil
		}
		return fmt.Errorf("%w: empty file key", vtree.ErrInvalidPath)
	}

	segments := strings.Split(key, "/")
	for _, segment := range segments {
		if err := validateSegment(segment); err != nil {
			return fmt.Errorf("%w: '%s'", err, key)
		}
	}

	parent := b.root
	for _, segment := range segments[:len(segments)-1] {
		next, err := parent.child(segment)
		if err != nil {
			return fmt.Errorf("%w: '%s'", err, key)
		}
		parent = next
	}

	name := segments[len(segments)-1]
	if isDir {
		if _, exists := parent.files[name]; exists {
			return fmt.Errorf("%w: folder '%s' over an existing file", ErrNameConflict, key)
		}
		if _, err := parent.child(name); err != nil {
			return fmt.Errorf("%w: '%s'", err, key)
		}
	} else {
		if _, exists := parent.folders[name]; exists {
			return fmt.Errorf("%w: file '%s' over an existing folder", ErrNameConflict, key)
		}
		parent.folder.Add(vtree.NewFile(name))
		parent.files[name] = struct{}{}
	}

	b.keys++
	return nil
}

// child returns the child folder called name, creating it if needed.
func (n *node) child(name string) (*node, error) {
	if child, exists := n.folders[name]; exists {
		return child, nil
	}

	if _, exists := n.files[name]; exists {
		return nil, vtree.ErrNotDirectory
	}

	child := newNode(vtree.NewFolder(name))
	n.folder.Add(child.folder)
	n.folders[name] = child

	return child, nil
}

// Len returns the number of keys added so far.
func (b *Builder) Len() int {
	return b.keys
}

// Content creates the tree from every key added so far.
// The builder must not be used afterwards.
func (b *Builder) Content(opts ...vtree.ContentOption) (*vtree.Content, error) {
	return vtree.NewContent(b.root.folder.Entries(), opts...)
}

func validateSegment(segment string) error {
	switch segment {
	case "", ".", "..":
		return vtree.ErrInvalidPath
	}
	return nil
}
