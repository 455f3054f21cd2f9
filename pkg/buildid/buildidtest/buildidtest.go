// Package buildidtest provides ELF image synthesis for tests that need
// binaries with (or without) a .gnu_debuglink section. The images it builds
// are minimal but well-formed 64-bit little-endian ELF files that the
// debug/elf package will parse.
package buildidtest

import (
	"bytes"
	"encoding/binary"
)

const (
	// headerSize is the size of an ELF64 file header.
	headerSize = 64
	// sectionHeaderSize is the size of an ELF64 section header.
	sectionHeaderSize = 64
)

// sectionHeader describes one ELF64 section header entry.
type sectionHeader struct {
	name      uint32
	kind      uint32
	flags     uint64
	address   uint64
	offset    uint64
	size      uint64
	link      uint32
	info      uint32
	alignment uint64
	entrySize uint64
}

// writeHeader writes the ELF64 file header.
func writeHeader(buffer *bytes.Buffer, sectionHeaderOffset uint64, sectionCount, stringTableIndex uint16) {
	identification := [16]byte{0x7f, 'E', 'L', 'F', 2, 1, 1}
	buffer.Write(identification[:])
	binary.Write(buffer, binary.LittleEndian, uint16(2))  // e_type (ET_EXEC)
	binary.Write(buffer, binary.LittleEndian, uint16(62)) // e_machine (EM_X86_64)
	binary.Write(buffer, binary.LittleEndian, uint32(1))  // e_version
	binary.Write(buffer, binary.LittleEndian, uint64(0))  // e_entry
	binary.Write(buffer, binary.LittleEndian, uint64(0))  // e_phoff
	binary.Write(buffer, binary.LittleEndian, sectionHeaderOffset)
	binary.Write(buffer, binary.LittleEndian, uint32(0)) // e_flags
	binary.Write(buffer, binary.LittleEndian, uint16(headerSize))
	binary.Write(buffer, binary.LittleEndian, uint16(0)) // e_phentsize
	binary.Write(buffer, binary.LittleEndian, uint16(0)) // e_phnum
	binary.Write(buffer, binary.LittleEndian, uint16(sectionHeaderSize))
	binary.Write(buffer, binary.LittleEndian, sectionCount)
	binary.Write(buffer, binary.LittleEndian, stringTableIndex)
}

// writeSectionHeader writes one ELF64 section header entry.
func writeSectionHeader(buffer *bytes.Buffer, header sectionHeader) {
	binary.Write(buffer, binary.LittleEndian, header.name)
	binary.Write(buffer, binary.LittleEndian, header.kind)
	binary.Write(buffer, binary.LittleEndian, header.flags)
	binary.Write(buffer, binary.LittleEndian, header.address)
	binary.Write(buffer, binary.LittleEndian, header.offset)
	binary.Write(buffer, binary.LittleEndian, header.size)
	binary.Write(buffer, binary.LittleEndian, header.link)
	binary.Write(buffer, binary.LittleEndian, header.info)
	binary.Write(buffer, binary.LittleEndian, header.alignment)
	binary.Write(buffer, binary.LittleEndian, header.entrySize)
}

// ImageWithDebugLink builds an ELF image containing a .gnu_debuglink section
// composed of the NUL-terminated debug file name, zero padding up to the
// specified section alignment, and the identifier bytes. It also returns the
// absolute file offset of the identifier within the image. Alignments that
// aren't powers of two and identifiers of unusual lengths are permitted so
// that malformed structures can be synthesized.
func ImageWithDebugLink(name string, alignment uint64, identifier []byte) ([]byte, uint64) {
	// Assemble the section contents.
	link := append([]byte(name), 0)
	if alignment > 1 {
		for uint64(len(link))%alignment != 0 {
			link = append(link, 0)
		}
	}
	identifierOffset := headerSize + uint64(len(link))
	link = append(link, identifier...)

	// Lay out section data: the debug link section directly follows the
	// header, then the section name string table, then the section header
	// table (8-aligned).
	linkOffset := uint64(headerSize)
	stringTable := []byte("\x00.gnu_debuglink\x00.shstrtab\x00")
	stringTableOffset := linkOffset + uint64(len(link))
	sectionHeaderOffset := (stringTableOffset + uint64(len(stringTable)) + 7) &^ 7

	// Write the image.
	buffer := &bytes.Buffer{}
	writeHeader(buffer, sectionHeaderOffset, 3, 2)
	buffer.Write(link)
	buffer.Write(stringTable)
	for uint64(buffer.Len()) < sectionHeaderOffset {
		buffer.WriteByte(0)
	}
	writeSectionHeader(buffer, sectionHeader{})
	writeSectionHeader(buffer, sectionHeader{
		name:      1,
		kind:      1, // SHT_PROGBITS
		offset:    linkOffset,
		size:      uint64(len(link)),
		alignment: alignment,
	})
	writeSectionHeader(buffer, sectionHeader{
		name:      16,
		kind:      3, // SHT_STRTAB
		offset:    stringTableOffset,
		size:      uint64(len(stringTable)),
		alignment: 1,
	})

	return buffer.Bytes(), identifierOffset
}

// Image builds an ELF image without a .gnu_debuglink section.
func Image() []byte {
	stringTable := []byte("\x00.shstrtab\x00")
	stringTableOffset := uint64(headerSize)
	sectionHeaderOffset := (stringTableOffset + uint64(len(stringTable)) + 7) &^ 7

	buffer := &bytes.Buffer{}
	writeHeader(buffer, sectionHeaderOffset, 2, 1)
	buffer.Write(stringTable)
	for uint64(buffer.Len()) < sectionHeaderOffset {
		buffer.WriteByte(0)
	}
	writeSectionHeader(buffer, sectionHeader{})
	writeSectionHeader(buffer, sectionHeader{
		name:      1,
		kind:      3, // SHT_STRTAB
		offset:    stringTableOffset,
		size:      uint64(len(stringTable)),
		alignment: 1,
	})

	return buffer.Bytes()
}
