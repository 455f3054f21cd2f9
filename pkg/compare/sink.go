package compare

import (
	"github.com/okirch/ftreecmp/pkg/filesystem"
)

// Sink receives classified change events from the differ. Events are
// delivered in traversal order and are not retained by the differ after
// delivery. A non-nil error marks the reporting call site as failed, but
// does not stop the traversal.
type Sink interface {
	// Record accepts a single change event for the specified entry.
	Record(change Change, entry *filesystem.Entry) error
}
