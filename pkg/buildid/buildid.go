// Package buildid locates the volatile build identifier embedded in ELF
// binaries via the .gnu_debuglink section. The section consists of a
// NUL-terminated debug file name, alignment padding, and a fixed-size
// identifier that changes on every rebuild even when the functional content
// of the binary is identical. The identifier's byte range can be excluded
// from content comparison so that rebuilds with identical functional content
// compare equal.
package buildid

import (
	"bytes"
	"debug/elf"
	"io"
)

const (
	// debugLinkSectionName is the name of the ELF section containing the
	// debug link structure.
	debugLinkSectionName = ".gnu_debuglink"
	// maximumDebugLinkSectionSize is the maximum debug link section size
	// that will be processed. Larger sections are treated as not containing
	// a build identifier.
	maximumDebugLinkSectionSize = 4096
)

// IgnoreRange identifies a region of a file's content that should be
// excluded from equality comparison. It is only valid for the single
// comparison in which it was computed.
type IgnoreRange struct {
	// Offset is the byte offset of the region within the file.
	Offset uint64
	// Length is the length of the region in bytes.
	Length uint64
}

// Equal determines whether or not two ignore ranges identify the same byte
// region. Two nil ranges are not considered equal, because the absence of a
// range on both sides means there is nothing to exempt.
func (r *IgnoreRange) Equal(other *IgnoreRange) bool {
	return r != nil && other != nil &&
		r.Offset == other.Offset && r.Length == other.Length
}

// Contains determines whether or not the specified absolute file offset
// falls inside the ignore range.
func (r *IgnoreRange) Contains(offset uint64) bool {
	return offset >= r.Offset && offset < r.Offset+r.Length
}

// Locate finds the byte range of the build identifier within an ELF image.
// It returns the range and true if the image contains a well-formed debug
// link structure, and nil and false otherwise. Malformed or oversized debug
// link sections are treated as "not found" rather than as errors.
func Locate(reader io.ReaderAt) (*IgnoreRange, bool) {
	// Parse the container's section table. Anything that isn't a valid ELF
	// image simply doesn't have a build identifier.
	file, err := elf.NewFile(reader)
	if err != nil {
		return nil, false
	}

	// Find the debug link section and bound its size.
	section := file.Section(debugLinkSectionName)
	if section == nil {
		return nil, false
	} else if section.Size == 0 || section.Size > maximumDebugLinkSectionSize {
		return nil, false
	}

	// Read the section's raw bytes. The debug link structure is never
	// compressed, so raw file offsets apply directly.
	contents := make([]byte, section.Size)
	if _, err := reader.ReadAt(contents, int64(section.Offset)); err != nil {
		return nil, false
	}

	// Find the end of the embedded debug file name.
	terminator := bytes.IndexByte(contents, 0)
	if terminator < 0 {
		return nil, false
	}

	// Round the offset just past the terminator up to the section's declared
	// alignment, which must be a power of two.
	alignment := section.Addralign
	if alignment == 0 || alignment&(alignment-1) != 0 {
		return nil, false
	}
	identifierOffset := (uint64(terminator) + 1 + alignment - 1) &^ (alignment - 1)
	if identifierOffset > section.Size {
		return nil, false
	}

	// The remaining bytes are the identifier, which must be exactly 4 or 8
	// bytes long.
	identifierLength := section.Size - identifierOffset
	if identifierLength != 4 && identifierLength != 8 {
		return nil, false
	}

	// Success.
	return &IgnoreRange{
		Offset: section.Offset + identifierOffset,
		Length: identifierLength,
	}, true
}
