package source

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/mwantia/vtree"
)

// TextSource reads a tree(1)-style listing from a file.
type TextSource struct {
	path string
}

func NewTextSource(path string) *TextSource {
	return &TextSource{path: path}
}

// Name returns the identifier name defined for this source
func (*TextSource) Name() string {
	return "text"
}

// Load parses the listing file into a new Content.
func (ts *TextSource) Load(ctx context.Context, opts ...vtree.ContentOption) (*vtree.Content, error) {
	f, err := os.Open(ts.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer f.Close()

	return ParseText(f, opts...)
}

// textNode is one parsed line of a listing.
type textNode struct {
	name  string
	dir   bool
	depth int
}

var (
	treeMarkers      = []string{"├── ", "└── ", "|-- ", "`-- ", "+-- "}
	treeMarkersTight = []string{"├──", "└──", "|--", "`--", "+--"}
)

// ParseText reads tree(1)-style text and returns it as a new Content.
// The first non-empty line names the root and is skipped. An entry is a
// folder if its name ends in "/" or the next line is nested below it.
func ParseText(r io.Reader, opts ...vtree.ContentOption) (*vtree.Content, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 1024), 1024*1024)

	var nodes []textNode
	rootSeen := false
	lineNum := 0

	for sc.Scan() {
		lineNum++
		raw := strings.TrimRight(sc.Text(), "\r\n")
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if !rootSeen {
			rootSeen = true
			continue
		}

		if isTreeSummary(line) {
			continue
		}

		depth, name, ok := parseTreeLine(raw)
		if !ok {
			return nil, fmt.Errorf("%w: line %d is not a tree line: %q", ErrMalformedTree, lineNum, raw)
		}

		// Symbolic links are listed as "name -> target"
		if link, _, ok := strings.Cut(name, " -> "); ok {
			name = link
		}

		dir := strings.HasSuffix(name, "/")
		name = strings.TrimSuffix(name, "/")
		if err := validateName(name); err != nil {
			return nil, fmt.Errorf("%w: line %d: %q", err, lineNum, name)
		}

		nodes = append(nodes, textNode{
			name:  name,
			dir:   dir,
			depth: depth,
		})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	// Second pass: a node followed by a deeper node is a folder
	for i := range nodes {
		if !nodes[i].dir && i+1 < len(nodes) && nodes[i+1].depth > nodes[i].depth {
			nodes[i].dir = true
		}
	}

	root := vtree.NewFolder("")
	stack := []*vtree.Folder{root}

	for _, n := range nodes {
		if n.depth >= len(stack) {
			return nil, fmt.Errorf("%w: entry %q at depth %d has no parent", ErrMalformedTree, n.name, n.depth)
		}
		// stack[d] is the folder receiving entries at depth d
		stack = stack[:n.depth+1]

		if !n.dir {
			stack[n.depth].Add(vtree.NewFile(n.name))
			continue
		}

		folder := vtree.NewFolder(n.name)
		stack[n.depth].Add(folder)
		stack = append(stack, folder)
	}

	return vtree.NewContent(root.Entries(), opts...)
}

// parseTreeLine returns the depth (0 for top-level entries) and the name of a listing line.
func parseTreeLine(line string) (int, string, bool) {
	idx, used := findMarker(line, treeMarkers)
	if idx == -1 {
		idx, used = findMarker(line, treeMarkersTight)
	}
	if idx == -1 {
		return 0, "", false
	}

	name := strings.TrimSpace(line[idx+len(used):])
	if name == "" {
		return 0, "", false
	}

	return countDepth(line[:idx]), name, true
}

func findMarker(line string, markers []string) (int, string) {
	idx := -1
	used := ""
	for _, m := range markers {
		if i := strings.Index(line, m); i != -1 && (idx == -1 || i < idx) {
			idx = i
			used = m
		}
	}
	return idx, used
}

// countDepth counts groups of four columns in the indentation prefix.
// Every rune is one column: tree(1) indents with "│   ", "|   " or, in
// UTF-8 mode, "│\u00a0\u00a0 " and "    " below a last entry.
func countDepth(prefix string) int {
	return utf8.RuneCountInString(prefix) / 4
}

// isTreeSummary matches the trailing "N directories, M files" line of tree(1).
func isTreeSummary(line string) bool {
	s := strings.ToLower(line)
	var dirs, files int
	var dirWord, fileWord string
	if _, err := fmt.Sscanf(s, "%d %s %d %s", &dirs, &dirWord, &files, &fileWord); err != nil {
		return false
	}
	return strings.HasPrefix(dirWord, "director") && strings.HasPrefix(fileWord, "file")
}

func validateName(name string) error {
	if err := validateSegment(name); err != nil {
		return err
	}
	if strings.ContainsAny(name, `/\`) {
		return vtree.ErrInvalidPath
	}
	return nil
}
