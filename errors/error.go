package errors

import (
	"fmt"
)

// NilArgumentError occurs when a required argument was not supplied
type NilArgumentError struct{ Name string }

// Error returns a textual representation of this NilArgumentError
func (e NilArgumentError) Error() string {
	return fmt.Sprintf("Argument %s must not be nil or empty", e.Name)
}

// ConfigurationError occurs when the supplied arguments are structurally invalid
type ConfigurationError struct{ Msg string }

// Error returns a textual representation of this ConfigurationError
func (e ConfigurationError) Error() string {
	return fmt.Sprintf("Invalid configuration: %s", e.Msg)
}

// IOFailureError occurs when the file system fails to open, inspect or read a file.
// The original failure is preserved as the Cause.
type IOFailureError struct {
	Op    string
	Path  string
	Cause error
}

// Error returns a textual representation of this IOFailureError
func (e IOFailureError) Error() string {
	return fmt.Sprintf("Unable to %s file %q: %v", e.Op, e.Path, e.Cause)
}

// Unwrap returns the underlying cause of this IOFailureError
func (e IOFailureError) Unwrap() error {
	return e.Cause
}

// NoMoreLinesError occurs when there are no more lines in a LineIterator
type NoMoreLinesError struct{}

// Error returns a textual representation of this NoMoreLinesError
func (e NoMoreLinesError) Error() string {
	return "No more lines"
}
