// Package filesystem provides point-in-time snapshots of directories and
// their entries. A Directory is populated by a single enumeration pass and
// holds its entries sorted byte-wise by name; an Entry resolves its absolute
// path, metadata, and symbolic link target lazily, memoizing each on first
// success. None of the operations in this package follow symbolic links.
package filesystem
