package filesystem

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// EntryKind specifies the type of a directory entry. It is determined from
// the directory enumeration's type information at discovery time and fixed
// for the lifetime of the entry.
type EntryKind uint8

const (
	// EntryKindUnknown represents an entry whose type could not be
	// determined or is not otherwise classifiable.
	EntryKindUnknown EntryKind = iota
	// EntryKindFile represents a regular file.
	EntryKindFile
	// EntryKindDirectory represents a directory.
	EntryKindDirectory
	// EntryKindSymbolicLink represents a symbolic link.
	EntryKindSymbolicLink
	// EntryKindCharacterDevice represents a character device.
	EntryKindCharacterDevice
	// EntryKindBlockDevice represents a block device.
	EntryKindBlockDevice
	// EntryKindFIFO represents a named pipe.
	EntryKindFIFO
	// EntryKindSocket represents a Unix domain socket.
	EntryKindSocket
)

// String provides a human-readable representation of an entry kind.
func (k EntryKind) String() string {
	switch k {
	case EntryKindFile:
		return "file"
	case EntryKindDirectory:
		return "directory"
	case EntryKindSymbolicLink:
		return "symbolic link"
	case EntryKindCharacterDevice:
		return "character device"
	case EntryKindBlockDevice:
		return "block device"
	case EntryKindFIFO:
		return "fifo"
	case EntryKindSocket:
		return "socket"
	default:
		return "unknown"
	}
}

// kindFromFileMode converts directory enumeration type information to an
// entry kind.
func kindFromFileMode(mode fs.FileMode) EntryKind {
	switch mode.Type() {
	case 0:
		return EntryKindFile
	case fs.ModeDir:
		return EntryKindDirectory
	case fs.ModeSymlink:
		return EntryKindSymbolicLink
	case fs.ModeDevice | fs.ModeCharDevice:
		return EntryKindCharacterDevice
	case fs.ModeDevice:
		return EntryKindBlockDevice
	case fs.ModeNamedPipe:
		return EntryKindFIFO
	case fs.ModeSocket:
		return EntryKindSocket
	default:
		return EntryKindUnknown
	}
}

// Entry represents a single member of a directory snapshot. Its name and
// kind are fixed at discovery; its path, metadata, and symbolic link target
// are resolved lazily and memoized on first success. Entries are owned
// exclusively by their parent Directory and must not be retained after the
// comparison using that Directory completes.
type Entry struct {
	// parent is the directory snapshot that owns the entry.
	parent *Directory
	// name is the base name of the entry.
	name string
	// kind is the type of the entry.
	kind EntryKind
	// path is the memoized qualified path of the entry. An empty value
	// indicates that the path has not been computed yet.
	path string
	// metadata is the memoized stat result for the entry. A nil value
	// indicates that no stat has succeeded yet.
	metadata *Metadata
	// target is the memoized symbolic link target of the entry, only valid
	// if targetValid is set.
	target string
	// targetValid indicates that target has been resolved.
	targetValid bool
}

// Name returns the base name of the entry.
func (e *Entry) Name() string {
	return e.name
}

// Kind returns the type of the entry.
func (e *Entry) Kind() EntryKind {
	return e.kind
}

// Path returns the root-qualified path of the entry, computing and memoizing
// it on first use.
func (e *Entry) Path() string {
	if e.path == "" {
		e.path = filepath.Join(e.parent.path, e.name)
	}
	return e.path
}

// ReadLink returns the target of the entry, which must be a symbolic link.
// The result is memoized on first success.
func (e *Entry) ReadLink() (string, error) {
	if !e.targetValid {
		target, err := os.Readlink(e.Path())
		if err != nil {
			return "", errors.Wrapf(err, "unable to read link %s", e.Path())
		}
		e.target = target
		e.targetValid = true
	}
	return e.target, nil
}

// Open opens the entry for reading. The caller is responsible for closing
// the resulting file.
func (e *Entry) Open() (*os.File, error) {
	file, err := os.Open(e.Path())
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open %s", e.Path())
	}
	return file, nil
}

// Descend creates a directory snapshot of the entry, which must be a
// directory. The resulting Directory is owned by the caller and should be
// discarded as soon as the comparison using it completes.
func (e *Entry) Descend() (*Directory, error) {
	return List(e.Path())
}
