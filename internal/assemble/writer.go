package assemble

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Writer is the filesystem capability used for the output document.
type Writer interface {
	Exists(path string) (bool, error)
	WriteFile(path string, data []byte) error
}

// FileWriter writes to the local filesystem. Writes go to a temp file in
// the target directory first and are renamed into place.
type FileWriter struct{}

// Exists reports whether path exists.
func (FileWriter) Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// WriteFile creates missing parent directories and writes data atomically.
func (FileWriter) WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".ai-readme-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	return os.Rename(tmpName, path)
}

// MemWriter keeps written files in memory. Tests use it.
type MemWriter struct {
	mu    sync.Mutex
	files map[string][]byte

	// Err, when set, is returned by every WriteFile call.
	Err error
}

// NewMemWriter creates a MemWriter seeded with existing files.
func NewMemWriter(existing map[string]string) *MemWriter {
	m := &MemWriter{files: make(map[string][]byte, len(existing))}
	for p, data := range existing {
		m.files[p] = []byte(data)
	}
	return m
}

// Exists implements Writer.
func (m *MemWriter) Exists(path string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.files[path]
	return ok, nil
}

// WriteFile implements Writer.
func (m *MemWriter) WriteFile(path string, data []byte) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = append([]byte(nil), data...)
	return nil
}

// File returns the content written to path.
func (m *MemWriter) File(path string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[path]
	return string(data), ok
}
