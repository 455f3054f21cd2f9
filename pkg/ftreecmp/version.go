// Package ftreecmp provides version information for the tool.
package ftreecmp

import (
	"fmt"
)

const (
	// VersionMajor represents the current major version of ftreecmp.
	VersionMajor = 0
	// VersionMinor represents the current minor version of ftreecmp.
	VersionMinor = 1
	// VersionPatch represents the current patch version of ftreecmp.
	VersionPatch = 0
)

// Version provides a stringified version of the current ftreecmp version.
var Version string

// init performs global initialization.
func init() {
	Version = fmt.Sprintf("%d.%d.%d", VersionMajor, VersionMinor, VersionPatch)
}
