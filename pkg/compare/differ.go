package compare

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/okirch/ftreecmp/pkg/filesystem"
	"github.com/okirch/ftreecmp/pkg/logging"
)

// Configuration encodes the immutable settings for a comparison.
type Configuration struct {
	// IgnoreBuildID enables the build identifier exemption during regular
	// file content comparison.
	IgnoreBuildID bool
}

// Differ performs the comparison of two filesystem hierarchies. It is a
// single-use object: create it with NewDiffer and invoke Compare once.
type Differ struct {
	// configuration is the comparison configuration.
	configuration Configuration
	// sink is the destination for change events.
	sink Sink
	// logger is the logger used for debug tracing and diagnostics.
	logger *logging.Logger
	// failed latches whether or not any non-fatal failure occurred during
	// the traversal.
	failed bool
}

// NewDiffer creates a differ delivering change events to the specified sink.
// The logger may be nil, in which case no tracing or diagnostics are
// produced.
func NewDiffer(configuration Configuration, sink Sink, logger *logging.Logger) *Differ {
	return &Differ{
		configuration: configuration,
		sink:          sink,
		logger:        logger,
	}
}

// fail reports a non-fatal failure and latches the overall failure state.
// The affected pairing or subtree is abandoned, but sibling comparisons
// continue.
func (d *Differ) fail(err error) {
	d.logger.Error(err)
	d.failed = true
}

// Compare snapshots the two specified root directories and compares them
// recursively, delivering a change event to the sink for every difference.
// Enumeration failure on either root is fatal and returns immediately; any
// other failure is reported as a diagnostic, skips the affected pairing or
// subtree, and causes a non-nil error return once the full traversal has
// completed.
func (d *Differ) Compare(oldPath, newPath string) error {
	// Snapshot both roots. Failure here means we cannot see what changed,
	// which aborts the whole comparison.
	oldRoot, err := filesystem.List(oldPath)
	if err != nil {
		return err
	}
	newRoot, err := filesystem.List(newPath)
	if err != nil {
		return err
	}

	// Run the merge-join traversal.
	d.compareDirectories(oldRoot, newRoot)

	// Differences alone are not failures, but any I/O or reporting failure
	// anywhere forces an overall error.
	if d.failed {
		return errors.New("comparison completed with errors")
	}
	return nil
}

// compareDirectories performs a single forward merge-join pass over two
// sorted directory snapshots. Both snapshots are owned by this call frame
// and must not be used afterwards.
func (d *Differ) compareDirectories(old, new *filesystem.Directory) {
	d.logger.Debugf("Comparing %s vs %s", old.Path(), new.Path())

	old.Rewind()
	new.Rewind()

	for {
		oldEntry := old.Current()
		newEntry := new.Current()

		// If one side is exhausted, the remainder of the other side consists
		// entirely of additions or removals.
		if oldEntry == nil {
			for newEntry != nil {
				d.reportRecursively(ChangeAdded, newEntry)
				new.Advance()
				newEntry = new.Current()
			}
			return
		}
		if newEntry == nil {
			for oldEntry != nil {
				d.reportRecursively(ChangeRemoved, oldEntry)
				old.Advance()
				oldEntry = old.Current()
			}
			return
		}

		// Both sides have a current entry. Names are unique within a
		// directory, so equality is the only possible tie.
		comparison := strings.Compare(oldEntry.Name(), newEntry.Name())
		if comparison < 0 {
			d.reportRecursively(ChangeRemoved, oldEntry)
			old.Advance()
		} else if comparison > 0 {
			d.reportRecursively(ChangeAdded, newEntry)
			new.Advance()
		} else {
			d.classifyPair(oldEntry, newEntry)
			old.Advance()
			new.Advance()
		}
	}
}

// classifyPair compares two entries bearing the same name and reports any
// discrepancies to the sink. A changed entry is reported as a remove+add
// pair carrying the same classification bits, so that a consumer sees both
// the "before" and "after" attributes.
func (d *Differ) classifyPair(old, new *filesystem.Entry) {
	// A type change is inherently a full replacement, so both sides are
	// reported wholesale and no further comparison is performed.
	if old.Kind() != new.Kind() {
		d.reportRecursively(ChangeRemoved, old)
		d.reportRecursively(ChangeAdded, new)
		return
	}

	// Stat both sides. Failure here abandons the pairing.
	oldMetadata, err := old.Stat()
	if err != nil {
		d.fail(err)
		return
	}
	newMetadata, err := new.Stat()
	if err != nil {
		d.fail(err)
		return
	}

	// Classify metadata changes.
	change := classifyMetadata(oldMetadata, newMetadata)

	// Perform the type-specific content check.
	switch old.Kind() {
	case filesystem.EntryKindFile:
		if !d.compareRegularFiles(old, new) {
			change |= ChangeData
		}
	case filesystem.EntryKindSymbolicLink:
		oldTarget, err := old.ReadLink()
		if err != nil {
			d.fail(err)
			return
		}
		newTarget, err := new.ReadLink()
		if err != nil {
			d.fail(err)
			return
		}
		if oldTarget != newTarget {
			change |= ChangeData
		}
	case filesystem.EntryKindCharacterDevice, filesystem.EntryKindBlockDevice:
		if oldMetadata.Device != newMetadata.Device {
			change |= ChangeData
		}
	default:
		// No content checks beyond the inode attribute checks above.
	}

	// Report any change as a remove+add pair with shared classification
	// bits.
	if change != 0 {
		d.record(change|ChangeRemoved, old)
		d.record(change|ChangeAdded, new)
	}

	// Recurse into matched directories. The subdirectory snapshots are
	// scoped to this frame; a failure below is already latched and must not
	// prevent sibling pairings in the caller.
	if old.Kind() == filesystem.EntryKindDirectory {
		oldSubdirectory, err := old.Descend()
		if err != nil {
			d.fail(err)
			return
		}
		newSubdirectory, err := new.Descend()
		if err != nil {
			d.fail(err)
			return
		}
		d.compareDirectories(oldSubdirectory, newSubdirectory)
	}
}

// classifyMetadata computes the classification bits arising from the
// difference between two metadata values.
func classifyMetadata(old, new *filesystem.Metadata) Change {
	var change Change
	if (old.Mode^new.Mode)&filesystem.ModeSetIDStickyMask != 0 {
		change |= ChangeCritical
	}
	if old.UserID != new.UserID || old.GroupID != new.GroupID {
		change |= ChangeCritical
	}
	if (old.Mode^new.Mode)&filesystem.ModePermissionsMask != 0 {
		change |= ChangeMode
	}
	return change
}

// reportRecursively reports an entry that exists on only one side. The entry
// itself is reported first, and if it is a directory every descendant is
// reported depth-first with the same polarity. A failure on any descendant
// is reported but does not stop enumeration of its siblings.
func (d *Differ) reportRecursively(change Change, entry *filesystem.Entry) {
	// The sink renders inode attributes, so the entry must be statable
	// before it can be reported.
	if _, err := entry.Stat(); err != nil {
		d.fail(err)
		return
	}

	if !d.record(change, entry) {
		return
	}

	if entry.Kind() == filesystem.EntryKindDirectory {
		subdirectory, err := entry.Descend()
		if err != nil {
			d.fail(err)
			return
		}
		for subentry := subdirectory.Current(); subentry != nil; subentry = subdirectory.Current() {
			d.reportRecursively(change, subentry)
			subdirectory.Advance()
		}
	}
}

// record delivers a single change event to the sink, reporting and latching
// any delivery failure.
func (d *Differ) record(change Change, entry *filesystem.Entry) bool {
	if err := d.sink.Record(change, entry); err != nil {
		d.fail(errors.Wrapf(err, "unable to report change to %s", entry.Path()))
		return false
	}
	return true
}
