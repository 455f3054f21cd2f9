package filesystem

import (
	"os"

	"github.com/pkg/errors"
)

// Directory represents a point-in-time snapshot of a single directory's
// contents. It is populated by one enumeration pass, holds its entries
// sorted byte-wise by name (excluding "." and ".."), and exposes a cursor
// for lockstep merge traversal. It is read-only after construction.
type Directory struct {
	// path is the root-qualified path of the directory.
	path string
	// entries are the directory's members, sorted byte-wise by name.
	entries []*Entry
	// cursor is the current traversal position within entries.
	cursor int
}

// List creates a snapshot of the directory at the specified path. Entry
// names and kinds are captured from the enumeration's type information; all
// other entry attributes are resolved lazily. Directory enumeration
// guarantees name uniqueness, and the returned entries are sorted byte-wise
// by name.
func List(path string) (*Directory, error) {
	contents, err := os.ReadDir(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read directory %s", path)
	}

	// Convert enumeration results to entries. ReadDir returns contents
	// already sorted by name using byte-wise comparison and never includes
	// "." or "..".
	directory := &Directory{path: path}
	directory.entries = make([]*Entry, 0, len(contents))
	for _, content := range contents {
		directory.entries = append(directory.entries, &Entry{
			parent: directory,
			name:   content.Name(),
			kind:   kindFromFileMode(content.Type()),
		})
	}

	return directory, nil
}

// Path returns the path with which the directory snapshot was created.
func (d *Directory) Path() string {
	return d.path
}

// Count returns the number of entries in the directory snapshot.
func (d *Directory) Count() int {
	return len(d.entries)
}

// Current returns the entry at the cursor position, or nil if the cursor has
// advanced past the last entry.
func (d *Directory) Current() *Entry {
	if d.cursor >= len(d.entries) {
		return nil
	}
	return d.entries[d.cursor]
}

// Advance moves the cursor forward by one entry.
func (d *Directory) Advance() {
	d.cursor++
}

// Rewind resets the cursor to the first entry.
func (d *Directory) Rewind() {
	d.cursor = 0
}
