package filesystem

import (
	"time"
)

// Metadata encodes information about a filesystem entry. It is the result of
// a non-following stat operation, so symbolic links report their own
// attributes rather than those of their targets.
type Metadata struct {
	// Name is the base name of the filesystem entry.
	Name string
	// Mode is the raw mode of the filesystem entry, including both type and
	// permission information.
	Mode Mode
	// UserID is the id of the user owning the filesystem entry.
	UserID uint32
	// GroupID is the id of the group owning the filesystem entry.
	GroupID uint32
	// Size is the size of the filesystem entry in bytes.
	Size uint64
	// Device is the raw device number of the filesystem entry. It is only
	// meaningful for character and block devices.
	Device uint64
	// ModificationTime is the modification time of the filesystem entry.
	ModificationTime time.Time
}
