package compare

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/okirch/ftreecmp/pkg/filesystem"
)

// testEvent is a recorded change event.
type testEvent struct {
	// change is the change bitmask of the event.
	change Change
	// path is the path of the entry the event describes.
	path string
}

// testSink records change events for verification.
type testSink struct {
	// events are the recorded events, in delivery order.
	events []testEvent
}

// Record implements Sink.Record.
func (s *testSink) Record(change Change, entry *filesystem.Entry) error {
	s.events = append(s.events, testEvent{change, entry.Path()})
	return nil
}

// relative converts recorded event paths to root-relative form for
// comparison against expectations.
func (s *testSink) relative(t *testing.T, root string) []testEvent {
	t.Helper()
	result := make([]testEvent, 0, len(s.events))
	for _, event := range s.events {
		path, err := filepath.Rel(root, event.path)
		if err != nil {
			t.Fatal("unable to relativize event path:", err)
		}
		result = append(result, testEvent{event.change, path})
	}
	return result
}

// expectEvents verifies that the recorded events match the expected
// sequence of root-relative events exactly.
func expectEvents(t *testing.T, sink *testSink, root string, expected []testEvent) {
	t.Helper()
	actual := sink.relative(t, root)
	if len(actual) != len(expected) {
		t.Fatalf("unexpected event count: %d != %d (%v)", len(actual), len(expected), actual)
	}
	for i, event := range actual {
		if event != expected[i] {
			t.Errorf("event %d does not match: {%v %s} != {%v %s}",
				i, event.change, event.path, expected[i].change, expected[i].path)
		}
	}
}

// createFile creates a file with the specified contents and mode, failing
// the test on error.
func createFile(t *testing.T, path string, contents []byte, mode os.FileMode) {
	t.Helper()
	if err := os.WriteFile(path, contents, 0600); err != nil {
		t.Fatal("unable to create file:", err)
	}
	if err := os.Chmod(path, mode); err != nil {
		t.Fatal("unable to set file mode:", err)
	}
}

// createDirectory creates a directory, failing the test on error.
func createDirectory(t *testing.T, path string) {
	t.Helper()
	if err := os.Mkdir(path, 0700); err != nil {
		t.Fatal("unable to create directory:", err)
	}
}

// createSymbolicLink creates a symbolic link, failing the test on error.
func createSymbolicLink(t *testing.T, path, target string) {
	t.Helper()
	if err := os.Symlink(target, path); err != nil {
		t.Fatal("unable to create symbolic link:", err)
	}
}

// findEntry returns the entry with the specified name from a directory
// snapshot of root, failing the test if it doesn't exist.
func findEntry(t *testing.T, root, name string) *filesystem.Entry {
	t.Helper()
	directory, err := filesystem.List(root)
	if err != nil {
		t.Fatal("unable to list directory:", err)
	}
	for entry := directory.Current(); entry != nil; entry = directory.Current() {
		if entry.Name() == name {
			return entry
		}
		directory.Advance()
	}
	t.Fatalf("entry %s not found in %s", name, root)
	return nil
}
