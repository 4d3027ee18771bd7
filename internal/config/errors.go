// Package config resolves the effective ai-readme settings from built-in
// defaults, the user config file, AI_README_* environment variables and
// command-line flags, and persists the user config file.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for configuration operations.
var (
	// ErrInvalidConfig is matched by every ConfigError.
	ErrInvalidConfig = errors.New("config: invalid configuration")

	// ErrMissingAPIKey indicates no layer supplied a non-empty api_key.
	ErrMissingAPIKey = errors.New("config: api_key is required")

	// ErrTemperatureRange indicates temperature is outside [0.0, 2.0].
	ErrTemperatureRange = errors.New("config: temperature must be between 0.0 and 2.0")

	// ErrInvalidTimeout indicates timeout is not a positive integer.
	ErrInvalidTimeout = errors.New("config: timeout must be a positive integer")

	// ErrParseValue indicates a typed value could not be parsed from its string form.
	ErrParseValue = errors.New("config: malformed value")

	// ErrInvalidYAML indicates the config file is not valid YAML.
	ErrInvalidYAML = errors.New("config: invalid YAML syntax")

	// ErrUnknownKey indicates a key that is not a recognized option.
	ErrUnknownKey = errors.New("config: unknown option")

	// ErrWriteConfig indicates the config file could not be persisted.
	ErrWriteConfig = errors.New("config: write config file")
)

// FieldError describes one invalid field together with the layer it came from.
type FieldError struct {
	Field   string
	Source  Source
	Message string
	Value   any
	Wrapped error
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("field %q (%s): %s (got: %v)", e.Field, e.Source, e.Message, e.Value)
	}
	return fmt.Sprintf("field %q (%s): %s", e.Field, e.Source, e.Message)
}

// Unwrap returns the underlying sentinel error.
func (e *FieldError) Unwrap() error {
	return e.Wrapped
}

// ConfigError is returned when resolution fails. No Settings value is produced
// alongside it.
type ConfigError struct {
	Errors []FieldError
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if len(e.Errors) == 0 {
		return "config: invalid configuration"
	}
	msgs := make([]string, len(e.Errors))
	for i := range e.Errors {
		msgs[i] = e.Errors[i].Error()
	}
	return fmt.Sprintf("config: %d error(s): %s", len(e.Errors), strings.Join(msgs, "; "))
}

// Is supports errors.Is against ErrInvalidConfig and any wrapped field sentinel.
func (e *ConfigError) Is(target error) bool {
	if target == ErrInvalidConfig {
		return true
	}
	for _, fe := range e.Errors {
		if fe.Wrapped != nil && errors.Is(fe.Wrapped, target) {
			return true
		}
	}
	return false
}

// HasField reports whether any contained error refers to field.
func (e *ConfigError) HasField(field string) bool {
	for _, fe := range e.Errors {
		if fe.Field == field {
			return true
		}
	}
	return false
}

func newConfigError(errs ...FieldError) *ConfigError {
	return &ConfigError{Errors: errs}
}
