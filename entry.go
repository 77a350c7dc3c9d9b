package vtree

// EntryType identifies which variant an Entry holds.
type EntryType int

const (
	EntryTypeFile EntryType = iota
	EntryTypeFolder
)

func (t EntryType) String() string {
	switch t {
	case EntryTypeFile:
		return "file"
	case EntryTypeFolder:
		return "folder"
	default:
		return "unknown"
	}
}

// Entry is a node of the tree: either a *File or a *Folder.
// The set of implementations is closed.
type Entry interface {
	// Name returns the display name of the entry.
	Name() string
	// Type returns the variant of this entry.
	Type() EntryType
	// IsDir returns true if this entry is a *Folder.
	IsDir() bool

	entry()
}

// File is a leaf entry.
type File struct {
	name string
}

// NewFile creates a new file entry.
func NewFile(name string) *File {
	return &File{name: name}
}

func (f *File) Name() string    { return f.name }
func (f *File) Type() EntryType { return EntryTypeFile }
func (f *File) IsDir() bool     { return false }
func (*File) entry()            {}

// Folder is an entry with ordered children.
// Children are visited in insertion order and duplicate names are kept.
type Folder struct {
	name    string
	entries []Entry
}

// NewFolder creates a new folder entry with the given children.
func NewFolder(name string, entries ...Entry) *Folder {
	return &Folder{
		name:    name,
		entries: entries,
	}
}

func (f *Folder) Name() string    { return f.name }
func (f *Folder) Type() EntryType { return EntryTypeFolder }
func (f *Folder) IsDir() bool     { return true }
func (*Folder) entry()            {}

// Entries returns the ordered children of this folder.
// The returned slice must not be modified.
func (f *Folder) Entries() []Entry {
	return f.entries
}

// Add appends children to this folder.
// Must not be called once an iterator over the owning Content exists.
func (f *Folder) Add(entries ...Entry) {
	f.entries = append(f.entries, entries...)
}

// Count returns the number of nodes reachable from entries, folders included.
func Count(entries []Entry) int {
	it := newEntryIterator(entries, nil)

	n := 0
	for _, ok := it.Next(); ok; _, ok = it.Next() {
		n++
	}
	return n
}
