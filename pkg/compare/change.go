package compare

// Change is a bitmask describing the nature of a detected difference. The
// classification bits (ChangeCritical, ChangeMode, ChangeData) are
// independent and may combine freely with each other and with one polarity
// bit; ChangeAdded and ChangeRemoved are mutually exclusive within a single
// event.
type Change uint8

const (
	// ChangeCritical indicates a critical metadata change: owning user or
	// group, or set-user-id, set-group-id, or sticky bits.
	ChangeCritical Change = 1 << iota
	// ChangeMode indicates a change to the nine permission bits.
	ChangeMode
	// ChangeData indicates a content change: file data, symbolic link
	// target, or device major/minor numbers.
	ChangeData
	_
	// ChangeAdded indicates that the entry exists only in the new tree.
	ChangeAdded
	// ChangeRemoved indicates that the entry exists only in the old tree.
	ChangeRemoved
)

// Added indicates whether or not the change carries the added polarity.
func (c Change) Added() bool {
	return c&ChangeAdded != 0
}

// Removed indicates whether or not the change carries the removed polarity.
func (c Change) Removed() bool {
	return c&ChangeRemoved != 0
}

// String provides a compact human-readable representation of the change
// bits, e.g. "+C.D" for an added entry with critical and data changes.
func (c Change) String() string {
	result := make([]byte, 0, 4)
	if c.Added() {
		result = append(result, '+')
	} else if c.Removed() {
		result = append(result, '-')
	} else {
		result = append(result, '?')
	}
	for _, bit := range []struct {
		mask   Change
		symbol byte
	}{
		{ChangeCritical, 'C'},
		{ChangeMode, 'M'},
		{ChangeData, 'D'},
	} {
		if c&bit.mask != 0 {
			result = append(result, bit.symbol)
		} else {
			result = append(result, '.')
		}
	}
	return string(result)
}
