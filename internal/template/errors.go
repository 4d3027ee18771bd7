// Package template renders the final README from generated section text,
// using either the built-in layout or a user-supplied text/template file.
package template

import (
	"errors"
	"fmt"
)

// Sentinel errors for template rendering.
var (
	// ErrTemplateNotFound indicates the template file could not be read.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrTemplateParse indicates the template source is not a valid template.
	ErrTemplateParse = errors.New("template parse failed")

	// ErrTemplateExecute indicates the template failed while rendering.
	ErrTemplateExecute = errors.New("template execution failed")
)

// TemplateError reports a problem with a custom template. Callers treat it
// as non-fatal and fall back to the built-in template.
type TemplateError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *TemplateError) Error() string {
	return fmt.Sprintf("template %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *TemplateError) Unwrap() error {
	return e.Err
}
