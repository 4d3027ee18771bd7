package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultPath returns the fixed per-user config file location,
// <UserConfigDir>/ai-readme/config.yaml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate user config dir: %w", err)
	}
	return filepath.Join(dir, AppDirName, FileName), nil
}

// LoadFile reads the config file at path. A missing file is not an error and
// yields (nil, nil). An unreadable or malformed file yields a *ConfigError.
func LoadFile(path string) (*FileSettings, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, newConfigError(FieldError{
			Field: "file", Source: SourceFile,
			Message: fmt.Sprintf("read %s: %v", path, err), Wrapped: ErrInvalidConfig,
		})
	}
	return parseFile(path, data)
}

func parseFile(path string, data []byte) (*FileSettings, error) {
	fs := &FileSettings{}
	if len(bytes.TrimSpace(data)) == 0 {
		return fs, nil
	}

	// Reject unknown keys so typos do not silently fall back to defaults.
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(fs); err != nil {
		return nil, newConfigError(FieldError{
			Field: "file", Source: SourceFile,
			Message: fmt.Sprintf("parse %s: %v", path, err), Wrapped: ErrInvalidYAML,
		})
	}
	return fs, nil
}

// SaveFile writes fs to path atomically, creating parent directories.
// The file is created with 0600 permissions because it may hold an API key.
func SaveFile(path string, fs *FileSettings) error {
	if fs == nil {
		fs = &FileSettings{}
	}
	data, err := yaml.Marshal(fs)
	if err != nil {
		return fmt.Errorf("%w: marshal: %v", ErrWriteConfig, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("%w: create config directory: %v", ErrWriteConfig, err)
	}
	if err := atomicWrite(path, data, 0o600); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteConfig, err)
	}
	return nil
}

// atomicWrite writes data to a file atomically using temp file + os.Rename.
func atomicWrite(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".ai-readme-config-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }() // cleanup on error path

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Chmod(perm); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	return os.Rename(tmpName, path)
}
