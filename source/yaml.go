package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mwantia/vtree"
	"gopkg.in/yaml.v3"
)

// YAMLSource reads a tree described as nested YAML sequences:
//
//	- a:
//	    - c.txt
//	    - d: [e.txt]
//	    - i: []
//	- g.txt
//	- h/
//
// A scalar is a file, or an empty folder when it ends in "/". A mapping
// key is a folder holding the entries of its value.
type YAMLSource struct {
	path string
}

func NewYAMLSource(path string) *YAMLSource {
	return &YAMLSource{path: path}
}

// Name returns the identifier name defined for this source
func (*YAMLSource) Name() string {
	return "yaml"
}

// Load parses the YAML file into a new Content.
func (ys *YAMLSource) Load(ctx context.Context, opts ...vtree.ContentOption) (*vtree.Content, error) {
	f, err := os.Open(ys.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer f.Close()

	return ParseYAML(f, opts...)
}

// ParseYAML decodes a single YAML document and returns it as a new Content.
// Document order is kept, including repeated names.
func ParseYAML(r io.Reader, opts ...vtree.ContentOption) (*vtree.Content, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return vtree.NewContent(nil, opts...)
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedTree, err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}

	entries, err := yamlEntries(root)
	if err != nil {
		return nil, err
	}

	return vtree.NewContent(entries, opts...)
}

// yamlEntries converts the value of a folder into its children.
func yamlEntries(node *yaml.Node) ([]vtree.Entry, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: line %d: expected a list or mapping, got %q", ErrMalformedTree, node.Line, node.Value)

	case yaml.MappingNode:
		return yamlFolders(node)

	case yaml.AliasNode:
		return nil, fmt.Errorf("%w: line %d: aliases are not supported, got *%s", ErrMalformedTree, node.Line, node.Value)

	case yaml.SequenceNode:
		var entries []vtree.Entry
		for _, item := range node.Content {
			switch item.Kind {
			case yaml.ScalarNode:
				entry, err := yamlScalar(item)
				if err != nil {
					return nil, err
				}
				entries = append(entries, entry)

			case yaml.MappingNode:
				folders, err := yamlFolders(item)
				if err != nil {
					return nil, err
				}
				entries = append(entries, folders...)

			case yaml.AliasNode:
				return nil, fmt.Errorf("%w: line %d: aliases are not supported, got *%s", ErrMalformedTree, item.Line, item.Value)

			default:
				return nil, fmt.Errorf("%w: line %d: nested lists need a folder name", ErrMalformedTree, item.Line)
			}
		}
		return entries, nil
	}

	return nil, fmt.Errorf("%w: line %d: unsupported yaml node", ErrMalformedTree, node.Line)
}

func yamlFolders(node *yaml.Node) ([]vtree.Entry, error) {
	var folders []vtree.Entry
	// Content alternates between key and value nodes
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if key.Kind != yaml.ScalarNode || key.Tag == "!!null" {
			return nil, fmt.Errorf("%w: line %d: folder names must be plain strings", ErrMalformedTree, key.Line)
		}

		name := strings.TrimSuffix(key.Value, "/")
		if err := validateName(name); err != nil {
			return nil, fmt.Errorf("%w: line %d: %q", err, key.Line, key.Value)
		}

		children, err := yamlEntries(value)
		if err != nil {
			return nil, err
		}
		folders = append(folders, vtree.NewFolder(name, children...))
	}
	return folders, nil
}

func yamlScalar(node *yaml.Node) (vtree.Entry, error) {
	if node.Tag == "!!null" {
		return nil, fmt.Errorf("%w: line %d: empty list item", ErrMalformedTree, node.Line)
	}

	name, dir := strings.CutSuffix(node.Value, "/")
	if err := validateName(name); err != nil {
		return nil, fmt.Errorf("%w: line %d: %q", err, node.Line, node.Value)
	}

	if dir {
		return vtree.NewFolder(name), nil
	}
	return vtree.NewFile(name), nil
}
