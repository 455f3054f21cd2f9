package compare

import (
	"bytes"
	"io"

	"github.com/dustin/go-humanize"

	"github.com/pkg/errors"

	"github.com/okirch/ftreecmp/pkg/buildid"
	"github.com/okirch/ftreecmp/pkg/filesystem"
)

// contentChunkSize is the size of the chunks used for streaming content
// comparison.
const contentChunkSize = 8192

// compareRegularFiles determines whether or not the contents of two regular
// files are equal. It returns false on any I/O error as well, with the error
// additionally reported as a diagnostic; the pairing is then simply treated
// as "different". When the build identifier exemption is enabled and both
// files locate a structurally identical identifier range, that byte range is
// excluded from the comparison.
func (d *Differ) compareRegularFiles(old, new *filesystem.Entry) bool {
	// Grab cached metadata for the size fast path. Both entries were statted
	// during classification, so these cannot fail, but guard anyway.
	oldMetadata, err := old.Stat()
	if err != nil {
		d.fail(err)
		return false
	}
	newMetadata, err := new.Stat()
	if err != nil {
		d.fail(err)
		return false
	}
	if oldMetadata.Size != newMetadata.Size {
		return false
	}

	// Open both files for reading, ensuring closure on every exit path.
	oldFile, err := old.Open()
	if err != nil {
		d.fail(err)
		return false
	}
	defer oldFile.Close()
	newFile, err := new.Open()
	if err != nil {
		d.fail(err)
		return false
	}
	defer newFile.Close()

	d.logger.Debugf("comparing regular files %s vs %s (%s)",
		old.Name(), new.Name(), humanize.Bytes(oldMetadata.Size))

	// Optionally locate the build identifier on both sides. The exemption
	// only applies when both sides yield byte-identical ranges; otherwise
	// comparison proceeds unmodified. Location uses positioned reads, so the
	// files' read offsets remain at 0.
	var ignore *buildid.IgnoreRange
	if d.configuration.IgnoreBuildID {
		oldRange, oldFound := buildid.Locate(oldFile)
		newRange, newFound := buildid.Locate(newFile)
		if oldFound && newFound && oldRange.Equal(newRange) {
			ignore = oldRange
			d.logger.Debugf("ignoring build identifier at offset %d (%d bytes)",
				ignore.Offset, ignore.Length)
		}
	}

	// Stream both files in lockstep chunks from offset 0.
	oldBuffer := make([]byte, contentChunkSize)
	newBuffer := make([]byte, contentChunkSize)
	var offset uint64
	for {
		oldCount, err := oldFile.Read(oldBuffer)
		if err != nil && err != io.EOF {
			d.fail(errors.Wrapf(err, "unable to read from %s", old.Path()))
			return false
		}
		newCount, err := newFile.Read(newBuffer)
		if err != nil && err != io.EOF {
			d.fail(errors.Wrapf(err, "unable to read from %s", new.Path()))
			return false
		}

		// Differing read lengths are a mismatch; simultaneous zero-length
		// reads signal end-of-file equality.
		if oldCount != newCount {
			return false
		} else if oldCount == 0 {
			return true
		}

		// Zero out any ignored bytes within the in-memory copies and compare
		// the adjusted chunks.
		oldChunk := oldBuffer[:oldCount]
		newChunk := newBuffer[:newCount]
		if ignore != nil {
			zeroIgnoredBytes(oldChunk, offset, ignore)
			zeroIgnoredBytes(newChunk, offset, ignore)
		}
		if !bytes.Equal(oldChunk, newChunk) {
			return false
		}

		offset += uint64(oldCount)
	}
}

// zeroIgnoredBytes zeroes the bytes of a chunk that fall inside the ignore
// range, using absolute file offset arithmetic. The range may start or end
// mid-chunk and is clipped at the chunk boundaries.
func zeroIgnoredBytes(chunk []byte, chunkOffset uint64, ignore *buildid.IgnoreRange) {
	start := ignore.Offset
	end := ignore.Offset + ignore.Length
	chunkEnd := chunkOffset + uint64(len(chunk))
	if end <= chunkOffset || start >= chunkEnd {
		return
	}
	if start < chunkOffset {
		start = chunkOffset
	}
	if end > chunkEnd {
		end = chunkEnd
	}
	for i := start - chunkOffset; i < end-chunkOffset; i++ {
		chunk[i] = 0
	}
}
