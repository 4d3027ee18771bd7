// Package assemble turns a generation outcome into the final README text
// and writes it to disk.
package assemble

import (
	"errors"
	"fmt"
)

// ErrOutputWrite indicates the output document could not be written.
var ErrOutputWrite = errors.New("output write failed")

// IOError reports a failed filesystem operation on the output path.
type IOError struct {
	Op   string
	Path string
	Err  error
}

// Error implements the error interface.
func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *IOError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrOutputWrite.
func (e *IOError) Is(target error) bool {
	return target == ErrOutputWrite
}
