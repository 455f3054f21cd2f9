// Package report renders change events as a columnar, human-readable
// report: a one-time header naming the audited package, one row per event
// showing the change bits, symbolic permissions, ownership, size (or device
// numbers or link target), and path, and a one-time trailing legend
// describing the change bits.
package report

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/mattn/go-isatty"

	"github.com/okirch/ftreecmp/pkg/compare"
	"github.com/okirch/ftreecmp/pkg/filesystem"
)

// defaultPackageName is the header label used when no package name has been
// provided.
const defaultPackageName = "<unknown package>"

// Reporter is the production change sink. It implements compare.Sink and
// must be closed once the comparison has completed so that the legend can be
// rendered.
type Reporter struct {
	// packageName is the label used in the report header.
	packageName string
	// output is the destination for the report.
	output io.Writer
	// linesWritten counts the lines written so far. The header is emitted
	// before the first line and the legend is only rendered if at least one
	// line was written.
	linesWritten int
	// added is the style used for rows with the added polarity.
	added *color.Color
	// removed is the style used for rows with the removed polarity.
	removed *color.Color
}

// NewReporter creates a reporter writing to the specified writer. Rows are
// colorized by polarity only when the writer is a terminal.
func NewReporter(packageName string, output io.Writer) *Reporter {
	if packageName == "" {
		packageName = defaultPackageName
	}

	added := color.New(color.FgGreen)
	removed := color.New(color.FgRed)
	if file, ok := output.(*os.File); !ok || !isatty.IsTerminal(file.Fd()) {
		added.DisableColor()
		removed.DisableColor()
	}

	return &Reporter{
		packageName: packageName,
		output:      output,
		added:       added,
		removed:     removed,
	}
}

// printf writes one report line, emitting the header before the first.
func (r *Reporter) printf(style *color.Color, format string, v ...interface{}) {
	if r.linesWritten == 0 {
		fmt.Fprintf(r.output, "%s: file changes\n", r.packageName)
	}
	r.linesWritten++
	if style != nil {
		style.Fprintf(r.output, format, v...)
	} else {
		fmt.Fprintf(r.output, format, v...)
	}
}

// style selects the row style for a change.
func (r *Reporter) style(change compare.Change) *color.Color {
	if change.Added() {
		return r.added
	} else if change.Removed() {
		return r.removed
	}
	return nil
}

// Record implements compare.Sink.Record. It renders a single change event as
// one report row. The entry's metadata (and, for symbolic links, target)
// comes from the entry's memoized accessors, so no additional filesystem
// traffic occurs for entries the differ has already examined.
func (r *Reporter) Record(change compare.Change, entry *filesystem.Entry) error {
	metadata, err := entry.Stat()
	if err != nil {
		return err
	}

	prefix := renderChangePrefix(change)
	style := r.style(change)
	attributes := renderAttributes(metadata)

	switch entry.Kind() {
	case filesystem.EntryKindFile:
		r.printf(style, "%-12s %s %13d %s\n",
			prefix, attributes, metadata.Size, entry.Path())
	case filesystem.EntryKindSymbolicLink:
		target, err := entry.ReadLink()
		if err != nil {
			return err
		}
		r.printf(style, "%-12s %s               %s -> %s\n",
			prefix, attributes, entry.Path(), target)
	case filesystem.EntryKindCharacterDevice, filesystem.EntryKindBlockDevice:
		r.printf(style, "%-12s %s dev %04x:%04x %s\n",
			prefix, attributes,
			filesystem.DeviceMajor(metadata.Device),
			filesystem.DeviceMinor(metadata.Device),
			entry.Path())
	default:
		r.printf(style, "%-12s %s               %s\n",
			prefix, attributes, entry.Path())
	}

	return nil
}

// Close renders the legend if any rows were written. The reporter must not
// be used afterwards.
func (r *Reporter) Close() {
	if r.linesWritten == 0 {
		return
	}
	r.printf(nil, "\nDescription of change bits:\n")
	r.printf(nil, " +   added\n")
	r.printf(nil, " -   removed\n")
	r.printf(nil, " C   critical change (file type, owner, set*id bits etc)\n")
	r.printf(nil, " M   mode change (file permissions)\n")
	r.printf(nil, " D   data change (file content, symlink target, device major/minor)\n")
	r.printf(nil, "\n")
}

// renderChangePrefix renders the change bit column, e.g. "   + C.D ".
func renderChangePrefix(change compare.Change) string {
	result := make([]byte, 0, 9)
	result = append(result, ' ', ' ', ' ')
	if change.Added() {
		result = append(result, '+')
	} else if change.Removed() {
		result = append(result, '-')
	} else {
		result = append(result, '?')
	}
	result = append(result, ' ')
	result = append(result, changeBitSymbol(change, compare.ChangeCritical, 'C'))
	result = append(result, changeBitSymbol(change, compare.ChangeMode, 'M'))
	result = append(result, changeBitSymbol(change, compare.ChangeData, 'D'))
	result = append(result, ' ')
	return string(result)
}

// changeBitSymbol renders one change bit as its symbol or a placeholder.
func changeBitSymbol(change, mask compare.Change, symbol byte) byte {
	if change&mask != 0 {
		return symbol
	}
	return '.'
}

// renderAttributes renders the symbolic permission string and ownership
// columns.
func renderAttributes(metadata *filesystem.Metadata) string {
	return fmt.Sprintf("%s uid %03d gid %03d",
		symbolicPermissions(metadata.Mode), metadata.UserID, metadata.GroupID)
}

// typeSymbol renders the file type character of a symbolic permission
// string.
func typeSymbol(mode filesystem.Mode) byte {
	switch mode & filesystem.ModeTypeMask {
	case filesystem.ModeTypeDirectory:
		return 'd'
	case filesystem.ModeTypeFile:
		return '-'
	case filesystem.ModeTypeCharacterDevice:
		return 'c'
	case filesystem.ModeTypeBlockDevice:
		return 'b'
	case filesystem.ModeTypeSymbolicLink:
		return 'l'
	case filesystem.ModeTypeSocket:
		return 's'
	case filesystem.ModeTypeFIFO:
		return 'f'
	}
	return '?'
}

// permissionSymbol renders a plain permission bit.
func permissionSymbol(mode, mask filesystem.Mode, symbol byte) byte {
	if mode&mask != 0 {
		return symbol
	}
	return '-'
}

// executeSymbol renders an execute permission bit combined with a set-id or
// sticky bit: 'x' for execute only, the overlay symbol if both are set, and
// the upper-cased overlay symbol if only the overlay bit is set.
func executeSymbol(mode, executeMask filesystem.Mode, overlayMask filesystem.Mode, overlay byte) byte {
	if mode&executeMask != 0 {
		if mode&overlayMask != 0 {
			return overlay
		}
		return 'x'
	} else if mode&overlayMask != 0 {
		return overlay - 'a' + 'A'
	}
	return '-'
}

// symbolicPermissions renders a mode in ls -l style, e.g. "drwxr-sr-x".
func symbolicPermissions(mode filesystem.Mode) string {
	result := make([]byte, 0, 10)
	result = append(result, typeSymbol(mode))
	result = append(result, permissionSymbol(mode, filesystem.ModePermissionUserRead, 'r'))
	result = append(result, permissionSymbol(mode, filesystem.ModePermissionUserWrite, 'w'))
	result = append(result, executeSymbol(mode, filesystem.ModePermissionUserExecute, filesystem.ModeSetUserID, 's'))
	result = append(result, permissionSymbol(mode, filesystem.ModePermissionGroupRead, 'r'))
	result = append(result, permissionSymbol(mode, filesystem.ModePermissionGroupWrite, 'w'))
	result = append(result, executeSymbol(mode, filesystem.ModePermissionGroupExecute, filesystem.ModeSetGroupID, 's'))
	result = append(result, permissionSymbol(mode, filesystem.ModePermissionOthersRead, 'r'))
	result = append(result, permissionSymbol(mode, filesystem.ModePermissionOthersWrite, 'w'))
	result = append(result, executeSymbol(mode, filesystem.ModePermissionOthersExecute, filesystem.ModeSticky, 't'))
	return string(result)
}
