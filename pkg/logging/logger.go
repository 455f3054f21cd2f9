// Package logging provides the logger used for debug tracing and error
// diagnostics. Trace output is kept separate from diagnostics so that it can
// share standard output with the change report while errors go to standard
// error.
package logging

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Logger is the main logger type. It has the novel property that it still
// functions if nil, but it doesn't log anything.
type Logger struct {
	// prefix is any prefix specified for the logger.
	prefix string
	// debug indicates whether or not debug tracing is enabled.
	debug bool
	// output is the destination for trace output.
	output io.Writer
	// diagnostics is the destination for warning and error diagnostics.
	diagnostics io.Writer
}

// NewLogger creates a logger writing trace output and diagnostics to the
// specified writers. Debug tracing is only performed if debug is true.
func NewLogger(debug bool, output, diagnostics io.Writer) *Logger {
	return &Logger{
		debug:       debug,
		output:      output,
		diagnostics: diagnostics,
	}
}

// Sublogger creates a new sublogger with the specified name.
func (l *Logger) Sublogger(name string) *Logger {
	// If the logger is nil, then the sublogger will be as well.
	if l == nil {
		return nil
	}

	// Compute the new prefix.
	prefix := name
	if l.prefix != "" {
		prefix = l.prefix + "." + name
	}

	// Create the new logger.
	return &Logger{
		prefix:      prefix,
		debug:       l.debug,
		output:      l.output,
		diagnostics: l.diagnostics,
	}
}

// trace is the internal trace output method.
func (l *Logger) trace(line string) {
	if l.prefix != "" {
		line = fmt.Sprintf("[%s] %s", l.prefix, line)
	}
	fmt.Fprintln(l.output, "D:", line)
}

// Debugf writes trace output with semantics equivalent to fmt.Printf, but
// only if debug tracing is enabled (otherwise it's a no-op).
func (l *Logger) Debugf(format string, v ...interface{}) {
	if l != nil && l.debug {
		l.trace(fmt.Sprintf(format, v...))
	}
}

// Warn writes error information to the diagnostic stream with a warning
// prefix and yellow color.
func (l *Logger) Warn(err error) {
	if l != nil {
		fmt.Fprintln(l.diagnostics, color.YellowString("Warning: %v", err))
	}
}

// Error writes error information to the diagnostic stream with an error
// prefix and red color.
func (l *Logger) Error(err error) {
	if l != nil {
		fmt.Fprintln(l.diagnostics, color.RedString("Error: %v", err))
	}
}
