// Package project inspects a local source tree and produces the read-only
// fact set that drives README generation: primary language, frameworks,
// dependencies, manifest files, and descriptive metadata.
package project

import (
	"errors"
	"fmt"
)

// Sentinel errors for the project package.
var (
	// ErrInvalidRoot indicates the given project root does not exist or is not a directory.
	ErrInvalidRoot = errors.New("invalid project root path")

	// ErrUnreadableRoot indicates the project root exists but cannot be listed.
	ErrUnreadableRoot = errors.New("project root is not readable")

	// ErrManifestParse indicates a manifest could not be parsed. It is never
	// returned from Analyze; it is recorded in Facts.ManifestErrors.
	ErrManifestParse = errors.New("manifest parse failed")
)

// AnalysisError is returned when a project cannot be analyzed at all.
// It is fatal for the run.
type AnalysisError struct {
	Root string
	Err  error
}

// Error implements the error interface.
func (e *AnalysisError) Error() string {
	return fmt.Sprintf("analyze %s: %v", e.Root, e.Err)
}

// Unwrap returns the underlying cause.
func (e *AnalysisError) Unwrap() error {
	return e.Err
}
