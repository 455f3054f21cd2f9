package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/okirch/ftreecmp/pkg/compare"
	"github.com/okirch/ftreecmp/pkg/filesystem"
)

// TestSymbolicPermissions tests ls -l style permission rendering.
func TestSymbolicPermissions(t *testing.T) {
	tests := []struct {
		mode     filesystem.Mode
		expected string
	}{
		{filesystem.ModeTypeFile | 0644, "-rw-r--r--"},
		{filesystem.ModeTypeFile | 0755, "-rwxr-xr-x"},
		{filesystem.ModeTypeFile | filesystem.ModeSetUserID | 0755, "-rwsr-xr-x"},
		{filesystem.ModeTypeFile | filesystem.ModeSetUserID | 0644, "-rwSr--r--"},
		{filesystem.ModeTypeFile | filesystem.ModeSetGroupID | 0755, "-rwxr-sr-x"},
		{filesystem.ModeTypeDirectory | filesystem.ModeSticky | 0777, "drwxrwxrwt"},
		{filesystem.ModeTypeDirectory | filesystem.ModeSticky | 0776, "drwxrwxrwT"},
		{filesystem.ModeTypeSymbolicLink | 0777, "lrwxrwxrwx"},
		{filesystem.ModeTypeCharacterDevice | 0660, "crw-rw----"},
		{filesystem.ModeTypeBlockDevice | 0660, "brw-rw----"},
		{filesystem.ModeTypeFIFO | 0600, "frw-------"},
		{filesystem.ModeTypeSocket | 0600, "srw-------"},
	}
	for i, test := range tests {
		if rendered := symbolicPermissions(test.mode); rendered != test.expected {
			t.Errorf("test index %d: rendering does not match expected: %s != %s",
				i, rendered, test.expected)
		}
	}
}

// TestRenderChangePrefix tests change bit column rendering.
func TestRenderChangePrefix(t *testing.T) {
	tests := []struct {
		change   compare.Change
		expected string
	}{
		{compare.ChangeAdded, "   + ... "},
		{compare.ChangeRemoved, "   - ... "},
		{compare.ChangeAdded | compare.ChangeData, "   + ..D "},
		{compare.ChangeRemoved | compare.ChangeCritical | compare.ChangeMode, "   - CM. "},
		{compare.ChangeAdded | compare.ChangeCritical | compare.ChangeMode | compare.ChangeData, "   + CMD "},
	}
	for i, test := range tests {
		if rendered := renderChangePrefix(test.change); rendered != test.expected {
			t.Errorf("test index %d: rendering does not match expected: %q != %q",
				i, rendered, test.expected)
		}
	}
}

// listEntry returns the sole entry of a directory snapshot.
func listEntry(t *testing.T, root string) *filesystem.Entry {
	t.Helper()
	directory, err := filesystem.List(root)
	if err != nil {
		t.Fatal("unable to list directory:", err)
	}
	entry := directory.Current()
	if entry == nil {
		t.Fatal("directory has no entries")
	}
	return entry
}

// TestReporterFileRow tests header emission and the layout of a regular
// file row.
func TestReporterFileRow(t *testing.T) {
	// Create a file with fixed mode and contents.
	root := t.TempDir()
	path := filepath.Join(root, "file")
	if err := os.WriteFile(path, []byte("contents"), 0600); err != nil {
		t.Fatal("unable to create file:", err)
	}
	if err := os.Chmod(path, 0644); err != nil {
		t.Fatal("unable to set file mode:", err)
	}

	// Record a single event.
	output := &bytes.Buffer{}
	reporter := NewReporter("testpkg", output)
	if err := reporter.Record(compare.ChangeAdded|compare.ChangeData, listEntry(t, root)); err != nil {
		t.Fatal("unable to record event:", err)
	}
	reporter.Close()

	lines := strings.Split(output.String(), "\n")
	if lines[0] != "testpkg: file changes" {
		t.Error("unexpected header line:", lines[0])
	}
	expected := fmt.Sprintf("   + ..D     -rw-r--r-- uid %03d gid %03d %13d %s",
		os.Getuid(), os.Getgid(), 8, path)
	if lines[1] != expected {
		t.Errorf("unexpected file row: %q != %q", lines[1], expected)
	}
	if !strings.Contains(output.String(), "Description of change bits:") {
		t.Error("legend not rendered")
	}
}

// TestReporterSymbolicLinkRow tests the layout of a symbolic link row.
func TestReporterSymbolicLinkRow(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "link")
	if err := os.Symlink("target", path); err != nil {
		t.Fatal("unable to create symbolic link:", err)
	}

	output := &bytes.Buffer{}
	reporter := NewReporter("", output)
	if err := reporter.Record(compare.ChangeRemoved, listEntry(t, root)); err != nil {
		t.Fatal("unable to record event:", err)
	}

	if !strings.HasPrefix(output.String(), "<unknown package>: file changes\n") {
		t.Error("default package name not used in header")
	}
	if !strings.Contains(output.String(), path+" -> target") {
		t.Error("symbolic link row does not show target")
	}
}

// TestReporterSilentWithoutEvents tests that a reporter that never saw an
// event renders neither header nor legend.
func TestReporterSilentWithoutEvents(t *testing.T) {
	output := &bytes.Buffer{}
	reporter := NewReporter("testpkg", output)
	reporter.Close()
	if output.Len() != 0 {
		t.Error("reporter produced output without events:", output.String())
	}
}

// TestReporterHeaderAndLegendOnce tests that the header and legend are each
// rendered exactly once across multiple events.
func TestReporterHeaderAndLegendOnce(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "file"), nil, 0600); err != nil {
		t.Fatal("unable to create file:", err)
	}

	output := &bytes.Buffer{}
	reporter := NewReporter("testpkg", output)
	entry := listEntry(t, root)
	for i := 0; i < 3; i++ {
		if err := reporter.Record(compare.ChangeAdded, entry); err != nil {
			t.Fatal("unable to record event:", err)
		}
	}
	reporter.Close()

	if count := strings.Count(output.String(), "testpkg: file changes"); count != 1 {
		t.Error("header rendered more than once:", count)
	}
	if count := strings.Count(output.String(), "Description of change bits:"); count != 1 {
		t.Error("legend rendered more than once:", count)
	}
}
