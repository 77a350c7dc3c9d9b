package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/mwantia/vtree"
)

// Markers contains the connector strings drawn in front of each entry.
type Markers struct {
	Branch   string
	Last     string
	Continue string
	Empty    string
}

var (
	// UnicodeMarkers matches the default output of tree(1).
	UnicodeMarkers = Markers{Branch: "├── ", Last: "└── ", Continue: "│   ", Empty: "    "}
	// ASCIIMarkers matches the output of tree(1) with --charset=ascii.
	ASCIIMarkers = Markers{Branch: "|-- ", Last: "`-- ", Continue: "|   ", Empty: "    "}
)

type TreeOptions struct {
	Root    string
	Markers Markers
	Summary bool
}

type TreeOption func(*TreeOptions)

func newDefaultTreeOptions() *TreeOptions {
	return &TreeOptions{
		Root:    ".",
		Markers: UnicodeMarkers,
	}
}

// WithRoot sets the label printed on the first line.
func WithRoot(root string) TreeOption {
	return func(opts *TreeOptions) {
		opts.Root = root
	}
}

func WithASCII() TreeOption {
	return func(opts *TreeOptions) {
		opts.Markers = ASCIIMarkers
	}
}

// WithSummary appends the "N directories, M files" line.
func WithSummary() TreeOption {
	return func(opts *TreeOptions) {
		opts.Summary = true
	}
}

// Tree writes a tree(1)-style listing of content to w.
// Folders are suffixed with "/" so the output can be parsed back.
func Tree(w io.Writer, content *vtree.Content, opts ...TreeOption) error {
	options := newDefaultTreeOptions()
	for _, opt := range opts {
		opt(options)
	}

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, options.Root); err != nil {
		return err
	}

	var folders, files int
	var line strings.Builder

	it := content.Iter()
	for entry, ok := it.Next(); ok; entry, ok = it.Next() {
		line.Reset()

		depth := it.Depth()
		for level := 0; level < depth-1; level++ {
			if it.IsLast(level) {
				line.WriteString(options.Markers.Empty)
			} else {
				line.WriteString(options.Markers.Continue)
			}
		}

		if it.IsLast(depth - 1) {
			line.WriteString(options.Markers.Last)
		} else {
			line.WriteString(options.Markers.Branch)
		}

		line.WriteString(entry.Name())
		if entry.IsDir() {
			line.WriteString("/")
			folders++
		} else {
			files++
		}

		if _, err := fmt.Fprintln(bw, line.String()); err != nil {
			return err
		}
	}

	if options.Summary {
		if _, err := fmt.Fprintf(bw, "\n%d directories, %d files\n", folders, files); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// Paths writes the path of every entry joined with separator, one per line.
func Paths(w io.Writer, content *vtree.Content, separator string) error {
	bw := bufio.NewWriter(w)

	it := content.Iter()
	for _, ok := it.Next(); ok; _, ok = it.Next() {
		if _, err := fmt.Fprintln(bw, it.GetPath(separator)); err != nil {
			return err
		}
	}

	return bw.Flush()
}
