package config

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"sync"
)

// Manager edits the persisted user config file. It is used by the
// "config" command; generation runs only ever read the file through
// LoadFile and Resolve.
type Manager struct {
	mu   sync.RWMutex
	path string
	file *FileSettings
}

// NewManager creates a Manager bound to path. Call Load before reading.
func NewManager(path string) *Manager {
	return &Manager{path: path}
}

// Path returns the config file location.
func (m *Manager) Path() string {
	return m.path
}

// Load reads the file from disk. A missing file yields empty settings.
func (m *Manager) Load() (*FileSettings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	fs, err := LoadFile(m.path)
	if err != nil {
		return nil, err
	}
	if fs == nil {
		fs = &FileSettings{}
	}
	m.file = fs
	return m.snapshotLocked(), nil
}

// Get returns a copy of the in-memory file settings.
func (m *Manager) Get() *FileSettings {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshotLocked()
}

// Set parses value for key and stores it in memory. Typed keys are range
// checked so an invalid value never reaches disk.
func (m *Manager) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.file == nil {
		m.file = &FileSettings{}
	}

	switch key {
	case KeyAPIKey:
		m.file.APIKey = &value
	case KeyModel:
		m.file.Model = &value
	case KeyOutputFile:
		m.file.OutputFile = &value
	case KeyTemplate:
		m.file.Template = &value
	case KeyTemperature:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%w: temperature %q", ErrParseValue, value)
		}
		if math.IsNaN(f) || f < MinTemperature || f > MaxTemperature {
			return fmt.Errorf("%w (got: %v)", ErrTemperatureRange, f)
		}
		m.file.Temperature = &f
	case KeyTimeout:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: timeout %q", ErrParseValue, value)
		}
		if n <= 0 {
			return fmt.Errorf("%w (got: %d)", ErrInvalidTimeout, n)
		}
		m.file.Timeout = &n
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	return nil
}

// SetDefaultSections stores the section list used when none is given on the
// command line of a non-interactive run.
func (m *Manager) SetDefaultSections(ids []string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.file == nil {
		m.file = &FileSettings{}
	}
	m.file.DefaultSections = slices.Clone(ids)
}

// Save persists the in-memory settings atomically.
func (m *Manager) Save() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return SaveFile(m.path, m.file)
}

func (m *Manager) snapshotLocked() *FileSettings {
	if m.file == nil {
		return &FileSettings{}
	}
	cp := *m.file
	cp.DefaultSections = slices.Clone(m.file.DefaultSections)
	return &cp
}
