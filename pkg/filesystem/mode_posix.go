//go:build !windows
// +build !windows

package filesystem

import (
	"golang.org/x/sys/unix"
)

// Mode is an opaque type representing a file mode. It is guaranteed to be
// convertable to a uint32 value. On POSIX systems, it is the raw underlying
// file mode from the Stat_t structure (as opposed to the os package's
// FileMode implementation).
type Mode uint32

const (
	// ModeTypeMask is a bit mask that isolates type information. After
	// masking, the resulting value can be compared with any of the ModeType*
	// values (other than ModeTypeMask).
	ModeTypeMask = Mode(unix.S_IFMT)
	// ModeTypeDirectory represents a directory.
	ModeTypeDirectory = Mode(unix.S_IFDIR)
	// ModeTypeFile represents a regular file.
	ModeTypeFile = Mode(unix.S_IFREG)
	// ModeTypeSymbolicLink represents a symbolic link.
	ModeTypeSymbolicLink = Mode(unix.S_IFLNK)
	// ModeTypeCharacterDevice represents a character device.
	ModeTypeCharacterDevice = Mode(unix.S_IFCHR)
	// ModeTypeBlockDevice represents a block device.
	ModeTypeBlockDevice = Mode(unix.S_IFBLK)
	// ModeTypeFIFO represents a named pipe.
	ModeTypeFIFO = Mode(unix.S_IFIFO)
	// ModeTypeSocket represents a Unix domain socket.
	ModeTypeSocket = Mode(unix.S_IFSOCK)
)

const (
	// ModePermissionsMask is a bit mask that isolates the nine portable
	// permission bits.
	ModePermissionsMask = Mode(0777)

	// ModeSetUserID is the set-user-id bit.
	ModeSetUserID = Mode(unix.S_ISUID)
	// ModeSetGroupID is the set-group-id bit.
	ModeSetGroupID = Mode(unix.S_ISGID)
	// ModeSticky is the sticky bit.
	ModeSticky = Mode(unix.S_ISVTX)

	// ModeSetIDStickyMask is a bit mask that isolates the set-user-id,
	// set-group-id, and sticky bits.
	ModeSetIDStickyMask = ModeSetUserID | ModeSetGroupID | ModeSticky

	// ModePermissionUserRead is the user readable bit.
	ModePermissionUserRead = Mode(0400)
	// ModePermissionUserWrite is the user writable bit.
	ModePermissionUserWrite = Mode(0200)
	// ModePermissionUserExecute is the user executable bit.
	ModePermissionUserExecute = Mode(0100)
	// ModePermissionGroupRead is the group readable bit.
	ModePermissionGroupRead = Mode(0040)
	// ModePermissionGroupWrite is the group writable bit.
	ModePermissionGroupWrite = Mode(0020)
	// ModePermissionGroupExecute is the group executable bit.
	ModePermissionGroupExecute = Mode(0010)
	// ModePermissionOthersRead is the others readable bit.
	ModePermissionOthersRead = Mode(0004)
	// ModePermissionOthersWrite is the others writable bit.
	ModePermissionOthersWrite = Mode(0002)
	// ModePermissionOthersExecute is the others executable bit.
	ModePermissionOthersExecute = Mode(0001)
)
