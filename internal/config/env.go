package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// EnvFromOS captures the recognized AI_README_* variables from the process
// environment. Only recognized names are copied.
func EnvFromOS() map[string]string {
	env := make(map[string]string, len(optionKeys))
	for _, k := range optionKeys {
		name := EnvName(k)
		if v, ok := os.LookupEnv(name); ok {
			env[name] = v
		}
	}
	return env
}

// LoadDotEnv loads .env files from each of dirs into the process
// environment. Earlier directories win, and variables already set in the
// real environment are never overwritten. Missing files are ignored.
func LoadDotEnv(dirs ...string) error {
	seen := make(map[string]bool, len(dirs))
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		path := filepath.Join(filepath.Clean(dir), ".env")
		if seen[path] {
			continue
		}
		seen[path] = true

		err := godotenv.Load(path)
		if err == nil || errors.Is(err, os.ErrNotExist) {
			continue
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// ParseAssignment splits a KEY=VALUE string and validates the key.
func ParseAssignment(s string) (key, value string, err error) {
	key, value, ok := strings.Cut(s, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return "", "", fmt.Errorf("%w: expected KEY=VALUE, got %q", ErrParseValue, s)
	}
	if !IsOptionKey(key) {
		return "", "", fmt.Errorf("%w: %q (valid: %s)", ErrUnknownKey, key, strings.Join(optionKeys, ", "))
	}
	return key, strings.TrimSpace(value), nil
}
