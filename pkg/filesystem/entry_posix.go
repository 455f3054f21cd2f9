//go:build !windows
// +build !windows

package filesystem

import (
	"time"

	"github.com/pkg/errors"

	"golang.org/x/sys/unix"
)

// Stat returns metadata for the entry using a non-following stat operation,
// so symbolic links report their own attributes. The result is memoized on
// first success, making the entry's metadata stable for its lifetime even if
// the underlying filesystem changes.
func (e *Entry) Stat() (*Metadata, error) {
	if e.metadata == nil {
		var metadata unix.Stat_t
		if err := unix.Lstat(e.Path(), &metadata); err != nil {
			return nil, errors.Wrapf(err, "unable to stat %s", e.Path())
		}
		e.metadata = &Metadata{
			Name:             e.name,
			Mode:             Mode(metadata.Mode),
			UserID:           metadata.Uid,
			GroupID:          metadata.Gid,
			Size:             uint64(metadata.Size),
			Device:           uint64(metadata.Rdev),
			ModificationTime: time.Unix(metadata.Mtim.Unix()),
		}
	}
	return e.metadata, nil
}
