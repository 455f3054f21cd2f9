//go:build !windows
// +build !windows

package filesystem

import (
	"golang.org/x/sys/unix"
)

// DeviceMajor extracts the major component from a raw device number.
func DeviceMajor(device uint64) uint32 {
	return unix.Major(device)
}

// DeviceMinor extracts the minor component from a raw device number.
func DeviceMinor(device uint64) uint32 {
	return unix.Minor(device)
}
