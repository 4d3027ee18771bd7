package config

import (
	"slices"
	"strings"
	"time"
)

// Source identifies the layer a value was resolved from.
type Source string

const (
	SourceDefault Source = "default"
	SourceFile    Source = "file"
	SourceEnv     Source = "env"
	SourceFlag    Source = "flag"
)

// Option keys recognized in the config file, as AI_README_<OPTION> environment
// variables and as --<option> flags (with '_' replaced by '-').
const (
	KeyAPIKey      = "api_key"
	KeyModel       = "model"
	KeyOutputFile  = "output_file"
	KeyTemplate    = "template"
	KeyTemperature = "temperature"
	KeyTimeout     = "timeout"
)

// optionKeys lists the recognized option keys in resolution order.
var optionKeys = []string{
	KeyAPIKey, KeyModel, KeyOutputFile, KeyTemplate, KeyTemperature, KeyTimeout,
}

// OptionKeys returns all recognized option keys.
func OptionKeys() []string {
	return slices.Clone(optionKeys)
}

// IsOptionKey reports whether key is a recognized option.
func IsOptionKey(key string) bool {
	return slices.Contains(optionKeys, key)
}

// Settings is the effective configuration for one invocation. It is produced
// only by Resolve and is passed by value, so components cannot alter the
// copy held by others.
type Settings struct {
	APIKey      string
	Model       string
	OutputFile  string
	Template    string // empty means the built-in template
	Temperature float64
	Timeout     int // seconds

	// Sources records which layer supplied each option key.
	Sources map[string]Source
}

// TimeoutDuration returns Timeout as a time.Duration.
func (s Settings) TimeoutDuration() time.Duration {
	return time.Duration(s.Timeout) * time.Second
}

// SourceOf returns the layer that supplied key.
func (s Settings) SourceOf(key string) Source {
	if src, ok := s.Sources[key]; ok {
		return src
	}
	return SourceDefault
}

// MaskedAPIKey returns the first 8 characters of the key followed by '*' for
// every remaining character.
func (s Settings) MaskedAPIKey() string {
	return MaskKey(s.APIKey)
}

// MaskKey masks all but the first 8 characters of key. Keys of 8
// characters or fewer are masked entirely.
func MaskKey(key string) string {
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	b := []byte(key[:8])
	for range len(key) - 8 {
		b = append(b, '*')
	}
	return string(b)
}

// FileSettings mirrors the YAML config file. Pointer fields distinguish keys
// that are absent from keys set to their zero value.
type FileSettings struct {
	APIKey          *string  `yaml:"api_key,omitempty"`
	Model           *string  `yaml:"model,omitempty"`
	OutputFile      *string  `yaml:"output_file,omitempty"`
	Template        *string  `yaml:"template,omitempty"`
	Temperature     *float64 `yaml:"temperature,omitempty"`
	Timeout         *int     `yaml:"timeout,omitempty"`
	DefaultSections []string `yaml:"default_sections,omitempty"`
}

// Overrides carries values supplied on the command line. Nil fields were not
// set by the user.
type Overrides struct {
	APIKey      *string
	Model       *string
	OutputFile  *string
	Template    *string
	Temperature *float64
	Timeout     *int
}
