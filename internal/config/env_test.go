package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestParseAssignment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		key     string
		value   string
		wantErr error
	}{
		{in: "model=gpt-4o", key: "model", value: "gpt-4o"},
		{in: " timeout = 30 ", key: "timeout", value: "30"},
		{in: "template=a=b.tmpl", key: "template", value: "a=b.tmpl"},
		{in: "model", wantErr: ErrParseValue},
		{in: "=x", wantErr: ErrParseValue},
		{in: "colour=blue", wantErr: ErrUnknownKey},
	}
	for _, tt := range tests {
		key, value, err := ParseAssignment(tt.in)
		if tt.wantErr != nil {
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ParseAssignment(%q) error = %v, want %v", tt.in, err, tt.wantErr)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseAssignment(%q) unexpected error: %v", tt.in, err)
			continue
		}
		if key != tt.key || value != tt.value {
			t.Errorf("ParseAssignment(%q) = (%q, %q), want (%q, %q)", tt.in, key, value, tt.key, tt.value)
		}
	}
}

// Not parallel: mutates the process environment.
func TestLoadDotEnvDoesNotOverrideEnvironment(t *testing.T) {
	dir := t.TempDir()
	content := "AI_README_MODEL=from-dotenv\nAI_README_TIMEOUT=42\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("AI_README_MODEL", "from-shell")
	t.Setenv("AI_README_TIMEOUT", "")
	os.Unsetenv("AI_README_TIMEOUT")

	if err := LoadDotEnv(dir, dir, filepath.Join(dir, "missing")); err != nil {
		t.Fatalf("LoadDotEnv() error: %v", err)
	}

	env := EnvFromOS()
	if env["AI_README_MODEL"] != "from-shell" {
		t.Errorf("AI_README_MODEL = %q, want from-shell", env["AI_README_MODEL"])
	}
	if env["AI_README_TIMEOUT"] != "42" {
		t.Errorf("AI_README_TIMEOUT = %q, want 42", env["AI_README_TIMEOUT"])
	}
	if _, ok := env["PATH"]; ok {
		t.Error("EnvFromOS() captured an unrelated variable")
	}
}
