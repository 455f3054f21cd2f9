package buildid

import (
	"bytes"
	"strings"
	"testing"

	"github.com/okirch/ftreecmp/pkg/buildid/buildidtest"
)

// TestLocate tests build identifier location in well-formed images.
func TestLocate(t *testing.T) {
	tests := []struct {
		name       string
		alignment  uint64
		identifier []byte
	}{
		{"app.debug", 4, []byte{1, 2, 3, 4}},
		{"app.debug", 4, []byte{1, 2, 3, 4, 5, 6, 7, 8}},
		{"x", 1, []byte{9, 9, 9, 9}},
		{"long-name-needing-padding.debug", 8, []byte{1, 2, 3, 4, 5, 6, 7, 8}},
	}
	for i, test := range tests {
		image, identifierOffset := buildidtest.ImageWithDebugLink(test.name, test.alignment, test.identifier)
		ignore, found := Locate(bytes.NewReader(image))
		if !found {
			t.Errorf("test index %d: identifier not located", i)
			continue
		}
		if ignore.Offset != identifierOffset {
			t.Errorf("test index %d: unexpected offset: %d != %d", i, ignore.Offset, identifierOffset)
		}
		if ignore.Length != uint64(len(test.identifier)) {
			t.Errorf("test index %d: unexpected length: %d != %d", i, ignore.Length, len(test.identifier))
		}
		// The located range must cover exactly the identifier bytes.
		if !bytes.Equal(image[ignore.Offset:ignore.Offset+ignore.Length], test.identifier) {
			t.Errorf("test index %d: located range does not cover identifier", i)
		}
	}
}

// TestLocateNotFound tests the conditions that must yield "not found" rather
// than an error or a bogus range.
func TestLocateNotFound(t *testing.T) {
	malformed := func(name string, alignment uint64, identifier []byte) []byte {
		image, _ := buildidtest.ImageWithDebugLink(name, alignment, identifier)
		return image
	}
	tests := []struct {
		description string
		image       []byte
	}{
		{"not an ELF image", []byte("just some text, definitely not ELF")},
		{"empty image", nil},
		{"no debug link section", buildidtest.Image()},
		{"non-power-of-two alignment", malformed("app.debug", 3, []byte{1, 2, 3, 4})},
		{"zero alignment", malformed("app.debug", 0, []byte{1, 2, 3, 4})},
		{"five byte identifier", malformed("app.debug", 4, []byte{1, 2, 3, 4, 5})},
		{"missing identifier", malformed("app.debug", 4, nil)},
		{"oversized debug link section", malformed(strings.Repeat("n", 8192), 4, []byte{1, 2, 3, 4})},
	}
	for _, test := range tests {
		if _, found := Locate(bytes.NewReader(test.image)); found {
			t.Errorf("%s: identifier unexpectedly located", test.description)
		}
	}
}

// TestIgnoreRangeEqual tests ignore range equality semantics.
func TestIgnoreRangeEqual(t *testing.T) {
	a := &IgnoreRange{Offset: 10, Length: 4}
	b := &IgnoreRange{Offset: 10, Length: 4}
	c := &IgnoreRange{Offset: 10, Length: 8}
	if !a.Equal(b) {
		t.Error("identical ranges compared unequal")
	}
	if a.Equal(c) {
		t.Error("ranges of different length compared equal")
	}
	if a.Equal(nil) || (*IgnoreRange)(nil).Equal(a) || (*IgnoreRange)(nil).Equal(nil) {
		t.Error("nil range compared equal")
	}
}

// TestIgnoreRangeContains tests offset containment.
func TestIgnoreRangeContains(t *testing.T) {
	r := &IgnoreRange{Offset: 10, Length: 4}
	for offset, expected := range map[uint64]bool{
		9:  false,
		10: true,
		13: true,
		14: false,
	} {
		if r.Contains(offset) != expected {
			t.Errorf("containment of offset %d does not match expected", offset)
		}
	}
}
