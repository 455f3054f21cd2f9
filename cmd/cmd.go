// Package cmd provides shared helpers for command line entry points.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Warning prints a warning message to standard error.
func Warning(message string) {
	fmt.Fprintln(os.Stderr, "Warning:", message)
}

// Error prints an error message to standard error.
func Error(err error) {
	fmt.Fprintln(os.Stderr, "Error:", err)
}

// Fatal prints an error message to standard error and then terminates the
// process with an error exit code.
func Fatal(err error) {
	Error(err)
	os.Exit(1)
}

// Mainify wraps an error-returning Cobra entry point into a standard Cobra
// entry point. The wrapped entry point can rely on defer-based cleanup,
// which would not run if it terminated the process itself; any error it
// returns is reported via Fatal only after it has returned.
func Mainify(entry func(*cobra.Command, []string) error) func(*cobra.Command, []string) {
	return func(command *cobra.Command, arguments []string) {
		if err := entry(command, arguments); err != nil {
			Fatal(err)
		}
	}
}
