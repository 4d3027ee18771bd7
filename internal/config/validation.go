package config

import (
	"maps"
	"math"
	"strconv"
	"strings"
)

// EnvName returns the environment variable name for an option key.
func EnvName(key string) string {
	return EnvPrefix + strings.ToUpper(key)
}

// Resolve merges the configuration layers into one Settings value.
//
// Precedence is flag > env > file > default, applied key by key: a layer
// only overrides the keys it actually supplies. Any parse or validation
// failure aborts the whole resolution with a *ConfigError and a zero
// Settings. Resolve performs no I/O.
func Resolve(defaults Settings, file *FileSettings, env map[string]string, cli Overrides) (Settings, error) {
	s := defaults
	s.Sources = make(map[string]Source, len(optionKeys))
	for _, k := range optionKeys {
		s.Sources[k] = SourceDefault
	}

	var errs []FieldError

	if file != nil {
		applyFile(&s, file)
	}

	errs = append(errs, applyEnv(&s, env)...)

	applyOverrides(&s, cli)

	errs = append(errs, validate(s)...)
	if len(errs) > 0 {
		return Settings{}, newConfigError(errs...)
	}

	s.Sources = maps.Clone(s.Sources)
	return s, nil
}

func applyFile(s *Settings, f *FileSettings) {
	if f.APIKey != nil {
		s.APIKey = *f.APIKey
		s.Sources[KeyAPIKey] = SourceFile
	}
	if f.Model != nil {
		s.Model = *f.Model
		s.Sources[KeyModel] = SourceFile
	}
	if f.OutputFile != nil {
		s.OutputFile = *f.OutputFile
		s.Sources[KeyOutputFile] = SourceFile
	}
	if f.Template != nil {
		s.Template = *f.Template
		s.Sources[KeyTemplate] = SourceFile
	}
	if f.Temperature != nil {
		s.Temperature = *f.Temperature
		s.Sources[KeyTemperature] = SourceFile
	}
	if f.Timeout != nil {
		s.Timeout = *f.Timeout
		s.Sources[KeyTimeout] = SourceFile
	}
}

// applyEnv overlays AI_README_* values. A variable that is present but empty
// is treated as unset.
func applyEnv(s *Settings, env map[string]string) []FieldError {
	var errs []FieldError
	lookup := func(key string) (string, bool) {
		v, ok := env[EnvName(key)]
		if !ok || strings.TrimSpace(v) == "" {
			return "", false
		}
		return v, true
	}

	if v, ok := lookup(KeyAPIKey); ok {
		s.APIKey = v
		s.Sources[KeyAPIKey] = SourceEnv
	}
	if v, ok := lookup(KeyModel); ok {
		s.Model = v
		s.Sources[KeyModel] = SourceEnv
	}
	if v, ok := lookup(KeyOutputFile); ok {
		s.OutputFile = v
		s.Sources[KeyOutputFile] = SourceEnv
	}
	if v, ok := lookup(KeyTemplate); ok {
		s.Template = v
		s.Sources[KeyTemplate] = SourceEnv
	}
	if v, ok := lookup(KeyTemperature); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			errs = append(errs, FieldError{
				Field: KeyTemperature, Source: SourceEnv,
				Message: "not a number", Value: v, Wrapped: ErrParseValue,
			})
		} else {
			s.Temperature = f
			s.Sources[KeyTemperature] = SourceEnv
		}
	}
	if v, ok := lookup(KeyTimeout); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			errs = append(errs, FieldError{
				Field: KeyTimeout, Source: SourceEnv,
				Message: "not an integer", Value: v, Wrapped: ErrParseValue,
			})
		} else {
			s.Timeout = n
			s.Sources[KeyTimeout] = SourceEnv
		}
	}
	return errs
}

func applyOverrides(s *Settings, o Overrides) {
	if o.APIKey != nil {
		s.APIKey = *o.APIKey
		s.Sources[KeyAPIKey] = SourceFlag
	}
	if o.Model != nil {
		s.Model = *o.Model
		s.Sources[KeyModel] = SourceFlag
	}
	if o.OutputFile != nil {
		s.OutputFile = *o.OutputFile
		s.Sources[KeyOutputFile] = SourceFlag
	}
	if o.Template != nil {
		s.Template = *o.Template
		s.Sources[KeyTemplate] = SourceFlag
	}
	if o.Temperature != nil {
		s.Temperature = *o.Temperature
		s.Sources[KeyTemperature] = SourceFlag
	}
	if o.Timeout != nil {
		s.Timeout = *o.Timeout
		s.Sources[KeyTimeout] = SourceFlag
	}
}

// validate checks the merged settings. Every violation is collected so the
// user sees all problems at once.
func validate(s Settings) []FieldError {
	var errs []FieldError

	if strings.TrimSpace(s.APIKey) == "" {
		errs = append(errs, FieldError{
			Field: KeyAPIKey, Source: s.SourceOf(KeyAPIKey),
			Message: "must be set via --api-key, " + EnvName(KeyAPIKey) + " or the config file",
			Wrapped: ErrMissingAPIKey,
		})
	}
	if strings.TrimSpace(s.Model) == "" {
		errs = append(errs, FieldError{
			Field: KeyModel, Source: s.SourceOf(KeyModel),
			Message: "must not be empty", Wrapped: ErrInvalidConfig,
		})
	}
	if strings.TrimSpace(s.OutputFile) == "" {
		errs = append(errs, FieldError{
			Field: KeyOutputFile, Source: s.SourceOf(KeyOutputFile),
			Message: "must not be empty", Wrapped: ErrInvalidConfig,
		})
	}
	if math.IsNaN(s.Temperature) || s.Temperature < MinTemperature || s.Temperature > MaxTemperature {
		errs = append(errs, FieldError{
			Field: KeyTemperature, Source: s.SourceOf(KeyTemperature),
			Message: "must be between 0.0 and 2.0", Value: s.Temperature,
			Wrapped: ErrTemperatureRange,
		})
	}
	if s.Timeout <= 0 {
		errs = append(errs, FieldError{
			Field: KeyTimeout, Source: s.SourceOf(KeyTimeout),
			Message: "must be a positive number of seconds", Value: s.Timeout,
			Wrapped: ErrInvalidTimeout,
		})
	}
	return errs
}
