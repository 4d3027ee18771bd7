package config

import (
	"errors"
	"testing"
)

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }
func intPtr(n int) *int           { return &n }

func TestResolveDefaultsOnlyRequiresAPIKey(t *testing.T) {
	t.Parallel()

	_, err := Resolve(NewDefaultSettings(), nil, nil, Overrides{})
	if err == nil {
		t.Fatal("Resolve() expected error when api_key is missing")
	}
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("expected ErrMissingAPIKey, got %v", err)
	}
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ConfigError to match ErrInvalidConfig, got %v", err)
	}
}

func TestResolveAppliesDefaults(t *testing.T) {
	t.Parallel()

	s, err := Resolve(NewDefaultSettings(), nil, nil, Overrides{APIKey: strPtr("k")})
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if s.Model != DefaultModel {
		t.Errorf("Model = %q, want %q", s.Model, DefaultModel)
	}
	if s.OutputFile != DefaultOutputFile {
		t.Errorf("OutputFile = %q, want %q", s.OutputFile, DefaultOutputFile)
	}
	if s.Temperature != DefaultTemperature {
		t.Errorf("Temperature = %v, want %v", s.Temperature, DefaultTemperature)
	}
	if s.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %d, want %d", s.Timeout, DefaultTimeout)
	}
	if s.SourceOf(KeyModel) != SourceDefault {
		t.Errorf("SourceOf(model) = %q, want %q", s.SourceOf(KeyModel), SourceDefault)
	}
	if s.SourceOf(KeyAPIKey) != SourceFlag {
		t.Errorf("SourceOf(api_key) = %q, want %q", s.SourceOf(KeyAPIKey), SourceFlag)
	}
}

func TestResolveEnvModelWithoutFlagOrFile(t *testing.T) {
	t.Parallel()

	env := map[string]string{
		"AI_README_API_KEY": "k",
		"AI_README_MODEL":   "gemini-1.5-pro",
	}
	s, err := Resolve(NewDefaultSettings(), nil, env, Overrides{})
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if s.Model != "gemini-1.5-pro" {
		t.Errorf("Model = %q, want %q", s.Model, "gemini-1.5-pro")
	}
	if s.SourceOf(KeyModel) != SourceEnv {
		t.Errorf("SourceOf(model) = %q, want env", s.SourceOf(KeyModel))
	}
}

func TestResolvePrecedence(t *testing.T) {
	t.Parallel()

	file := &FileSettings{
		APIKey:      strPtr("file-key"),
		Model:       strPtr("file-model"),
		OutputFile:  strPtr("FILE.md"),
		Template:    strPtr("file.tmpl"),
		Temperature: floatPtr(0.1),
		Timeout:     intPtr(10),
	}
	env := map[string]string{
		"AI_README_API_KEY":     "env-key",
		"AI_README_MODEL":       "env-model",
		"AI_README_OUTPUT_FILE": "ENV.md",
		"AI_README_TEMPLATE":    "env.tmpl",
		"AI_README_TEMPERATURE": "0.2",
		"AI_README_TIMEOUT":     "20",
	}
	cli := Overrides{
		APIKey:      strPtr("cli-key"),
		Model:       strPtr("cli-model"),
		OutputFile:  strPtr("CLI.md"),
		Template:    strPtr("cli.tmpl"),
		Temperature: floatPtr(0.3),
		Timeout:     intPtr(30),
	}

	tests := []struct {
		name string
		file *FileSettings
		env  map[string]string
		cli  Overrides
		want Settings
	}{
		{
			name: "file over default",
			file: file,
			want: Settings{APIKey: "file-key", Model: "file-model", OutputFile: "FILE.md", Template: "file.tmpl", Temperature: 0.1, Timeout: 10},
		},
		{
			name: "env over file",
			file: file,
			env:  env,
			want: Settings{APIKey: "env-key", Model: "env-model", OutputFile: "ENV.md", Template: "env.tmpl", Temperature: 0.2, Timeout: 20},
		},
		{
			name: "flag over env",
			file: file,
			env:  env,
			cli:  cli,
			want: Settings{APIKey: "cli-key", Model: "cli-model", OutputFile: "CLI.md", Template: "cli.tmpl", Temperature: 0.3, Timeout: 30},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Resolve(NewDefaultSettings(), tt.file, tt.env, tt.cli)
			if err != nil {
				t.Fatalf("Resolve() error: %v", err)
			}
			if got.APIKey != tt.want.APIKey || got.Model != tt.want.Model ||
				got.OutputFile != tt.want.OutputFile || got.Template != tt.want.Template ||
				got.Temperature != tt.want.Temperature || got.Timeout != tt.want.Timeout {
				t.Errorf("Resolve() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

// Overriding one key in one layer must change only that key.
func TestResolveSingleKeyOverrideIsolation(t *testing.T) {
	t.Parallel()

	baseFile := &FileSettings{APIKey: strPtr("k"), Model: strPtr("m1")}
	base, err := Resolve(NewDefaultSettings(), baseFile, nil, Overrides{})
	if err != nil {
		t.Fatalf("Resolve() base error: %v", err)
	}

	tests := []struct {
		name  string
		env   map[string]string
		cli   Overrides
		check func(Settings) bool
	}{
		{
			name:  "env timeout",
			env:   map[string]string{"AI_README_TIMEOUT": "5"},
			check: func(s Settings) bool { return s.Timeout == 5 },
		},
		{
			name:  "flag temperature",
			cli:   Overrides{Temperature: floatPtr(1.5)},
			check: func(s Settings) bool { return s.Temperature == 1.5 },
		},
		{
			name:  "flag output",
			cli:   Overrides{OutputFile: strPtr("DOCS.md")},
			check: func(s Settings) bool { return s.OutputFile == "DOCS.md" },
		},
		{
			name:  "env template",
			env:   map[string]string{"AI_README_TEMPLATE": "t.tmpl"},
			check: func(s Settings) bool { return s.Template == "t.tmpl" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Resolve(NewDefaultSettings(), baseFile, tt.env, tt.cli)
			if err != nil {
				t.Fatalf("Resolve() error: %v", err)
			}
			if !tt.check(got) {
				t.Fatalf("override not applied: %+v", got)
			}
			diff := 0
			if got.APIKey != base.APIKey {
				diff++
			}
			if got.Model != base.Model {
				diff++
			}
			if got.OutputFile != base.OutputFile {
				diff++
			}
			if got.Template != base.Template {
				diff++
			}
			if got.Temperature != base.Temperature {
				diff++
			}
			if got.Timeout != base.Timeout {
				diff++
			}
			if diff != 1 {
				t.Errorf("expected exactly one changed field, got %d: %+v vs %+v", diff, got, base)
			}
		})
	}
}

func TestResolveRejectsTemperatureOutOfRange(t *testing.T) {
	t.Parallel()

	for _, temp := range []float64{-0.1, 2.01, 10} {
		_, err := Resolve(NewDefaultSettings(), nil, nil, Overrides{
			APIKey:      strPtr("k"),
			Temperature: floatPtr(temp),
		})
		if !errors.Is(err, ErrTemperatureRange) {
			t.Errorf("temperature %v: expected ErrTemperatureRange, got %v", temp, err)
		}
	}
}

func TestResolveAcceptsTemperatureBounds(t *testing.T) {
	t.Parallel()

	for _, temp := range []float64{0.0, 2.0} {
		if _, err := Resolve(NewDefaultSettings(), nil, nil, Overrides{
			APIKey:      strPtr("k"),
			Temperature: floatPtr(temp),
		}); err != nil {
			t.Errorf("temperature %v: unexpected error %v", temp, err)
		}
	}
}

func TestResolveRejectsEmptyAPIKeyFromFlag(t *testing.T) {
	t.Parallel()

	// An explicitly empty flag still wins over the env value, then fails validation.
	env := map[string]string{"AI_README_API_KEY": "env-key"}
	_, err := Resolve(NewDefaultSettings(), nil, env, Overrides{APIKey: strPtr("  ")})
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("expected ErrMissingAPIKey, got %v", err)
	}
}

func TestResolveMalformedEnvIsAtomic(t *testing.T) {
	t.Parallel()

	env := map[string]string{
		"AI_README_API_KEY":     "k",
		"AI_README_TEMPERATURE": "warm",
		"AI_README_TIMEOUT":     "soon",
	}
	s, err := Resolve(NewDefaultSettings(), nil, env, Overrides{})
	if err == nil {
		t.Fatal("Resolve() expected error for malformed env values")
	}
	if s.APIKey != "" || s.Model != "" {
		t.Errorf("expected zero Settings on failure, got %+v", s)
	}

	var ce *ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *ConfigError, got %T", err)
	}
	if !ce.HasField(KeyTemperature) || !ce.HasField(KeyTimeout) {
		t.Errorf("expected errors for temperature and timeout, got %v", ce)
	}
	if !errors.Is(err, ErrParseValue) {
		t.Errorf("expected ErrParseValue, got %v", err)
	}
}

func TestResolveRejectsNonPositiveTimeout(t *testing.T) {
	t.Parallel()

	_, err := Resolve(NewDefaultSettings(), &FileSettings{APIKey: strPtr("k"), Timeout: intPtr(0)}, nil, Overrides{})
	if !errors.Is(err, ErrInvalidTimeout) {
		t.Errorf("expected ErrInvalidTimeout, got %v", err)
	}
}

func TestResolveEmptyEnvValueIsUnset(t *testing.T) {
	t.Parallel()

	file := &FileSettings{APIKey: strPtr("k"), Model: strPtr("file-model")}
	s, err := Resolve(NewDefaultSettings(), file, map[string]string{"AI_README_MODEL": ""}, Overrides{})
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if s.Model != "file-model" {
		t.Errorf("Model = %q, want file-model", s.Model)
	}
}

func TestMaskKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "short", want: "*****"},
		{in: "12345678", want: "********"},
		{in: "sk-12345678abcd", want: "sk-12345*******"},
	}
	for _, tt := range tests {
		if got := MaskKey(tt.in); got != tt.want {
			t.Errorf("MaskKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
