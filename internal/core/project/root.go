package project

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ResolveRoot converts a user-supplied project path into an absolute,
// cleaned directory path. An empty path means the current working directory.
func ResolveRoot(path string) (string, error) {
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		path = wd
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	if err := validateRoot(abs); err != nil {
		return "", err
	}
	return abs, nil
}

// validateRoot checks that root is an existing, listable directory.
func validateRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return &AnalysisError{Root: root, Err: ErrUnreadableRoot}
		}
		return &AnalysisError{Root: root, Err: fmt.Errorf("%w: %v", ErrInvalidRoot, err)}
	}
	if !info.IsDir() {
		return &AnalysisError{Root: root, Err: fmt.Errorf("%w: not a directory", ErrInvalidRoot)}
	}
	if _, err := os.ReadDir(root); err != nil {
		return &AnalysisError{Root: root, Err: fmt.Errorf("%w: %v", ErrUnreadableRoot, err)}
	}
	return nil
}

// fileExists checks if a path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
