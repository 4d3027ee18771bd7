package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ai-readme/ai-readme/internal/config"
)

// configPath returns --config or the default user config location.
func configPath(cmd *cobra.Command) (string, error) {
	if p := getStringFlag(cmd, "config"); p != "" {
		return p, nil
	}
	return deps.ConfigPath()
}

// overridesFromFlags collects the flags the user actually set.
func overridesFromFlags(cmd *cobra.Command) config.Overrides {
	var o config.Overrides
	flags := cmd.Flags()
	if flags.Changed("api-key") {
		v := getStringFlag(cmd, "api-key")
		o.APIKey = &v
	}
	if flags.Changed("model") {
		v := getStringFlag(cmd, "model")
		o.Model = &v
	}
	if flags.Lookup("output-file") != nil && flags.Changed("output-file") {
		v := getStringFlag(cmd, "output-file")
		o.OutputFile = &v
	}
	if flags.Lookup("template") != nil && flags.Changed("template") {
		v := getStringFlag(cmd, "template")
		o.Template = &v
	}
	if flags.Changed("temperature") {
		if v, err := flags.GetFloat64("temperature"); err == nil {
			o.Temperature = &v
		}
	}
	if flags.Changed("timeout") {
		if v, err := flags.GetInt("timeout"); err == nil {
			o.Timeout = &v
		}
	}
	return o
}

// resolveSettings loads .env files from the working directory and root,
// reads the config file and merges every layer. Any failure is a
// *config.ConfigError.
func resolveSettings(cmd *cobra.Command, root string) (config.Settings, *config.FileSettings, error) {
	cwd, _ := os.Getwd()
	if err := deps.LoadDotEnv(cwd, root); err != nil {
		deps.Logger.Warn("ignoring .env file", "error", err)
	}

	path, err := configPath(cmd)
	if err != nil {
		return config.Settings{}, nil, err
	}
	file, err := config.LoadFile(path)
	if err != nil {
		return config.Settings{}, nil, err
	}

	settings, err := config.Resolve(config.NewDefaultSettings(), file, deps.Env(), overridesFromFlags(cmd))
	if err != nil {
		return config.Settings{}, nil, err
	}
	deps.Logger.Debug("settings resolved",
		"config", path,
		"model", settings.Model,
		"model_source", settings.SourceOf(config.KeyModel),
		"api_key", settings.MaskedAPIKey(),
	)
	return settings, file, nil
}

// targetPath resolves a path relative to the project root.
func targetPath(root, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(root, p)
}

// absRoot returns the absolute form of the optional path argument without
// checking that it exists.
func absRoot(args []string) string {
	p := "."
	if len(args) > 0 && args[0] != "" {
		p = args[0]
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return p
	}
	return abs
}
