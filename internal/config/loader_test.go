package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestLoadFileMissing(t *testing.T) {
	t.Parallel()

	fs, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if fs != nil {
		t.Errorf("expected nil settings for missing file, got %+v", fs)
	}
}

func TestLoadFileEmpty(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "config.yaml", "\n  \n")
	fs, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if fs == nil || fs.Model != nil {
		t.Errorf("expected empty settings, got %+v", fs)
	}
}

func TestLoadFileValid(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "config.yaml", `api_key: sk-file
model: gpt-4o-mini
temperature: 0.2
timeout: 15
default_sections:
  - overview
  - installation
`)
	fs, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if fs.APIKey == nil || *fs.APIKey != "sk-file" {
		t.Errorf("APIKey = %v", fs.APIKey)
	}
	if fs.Temperature == nil || *fs.Temperature != 0.2 {
		t.Errorf("Temperature = %v", fs.Temperature)
	}
	if len(fs.DefaultSections) != 2 {
		t.Errorf("DefaultSections = %v", fs.DefaultSections)
	}

	s, err := Resolve(NewDefaultSettings(), fs, nil, Overrides{})
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if s.Model != "gpt-4o-mini" || s.Timeout != 15 || s.OutputFile != DefaultOutputFile {
		t.Errorf("Resolve() = %+v", s)
	}
}

func TestLoadFileMalformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{"bad syntax", "model: [unterminated\n"},
		{"unknown key", "modle: gpt-4o\n"},
		{"wrong type", "timeout: soon\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			path := writeFile(t, t.TempDir(), "config.yaml", tt.content)
			fs, err := LoadFile(path)
			if err == nil {
				t.Fatalf("LoadFile() expected error, got %+v", fs)
			}
			if !errors.Is(err, ErrInvalidYAML) {
				t.Errorf("expected ErrInvalidYAML, got %v", err)
			}
			var ce *ConfigError
			if !errors.As(err, &ce) {
				t.Errorf("expected *ConfigError, got %T", err)
			}
		})
	}
}

func TestSaveFileCreatesParents(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "a", "b", "config.yaml")
	model := "gpt-4o"
	if err := SaveFile(path, &FileSettings{Model: &model}); err != nil {
		t.Fatalf("SaveFile() error: %v", err)
	}
	fs, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if fs.Model == nil || *fs.Model != model {
		t.Errorf("Model = %v, want %q", fs.Model, model)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("ReadDir() error: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only config.yaml, temp files left behind: %v", entries)
	}
}
