package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ai-readme/ai-readme/internal/config"
	"github.com/ai-readme/ai-readme/internal/section"
	"github.com/ai-readme/ai-readme/internal/ui"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "View or change the persistent user configuration",
		Long: `Edit the user config file (config.yaml under the user config directory).
Without flags in a terminal, a short setup asks for the API key and the
default sections.

Values in the file are overridden by AI_README_* environment variables, which
are in turn overridden by command-line flags.`,
		Args: cobra.NoArgs,
		RunE: runConfig,
	}
	cmd.Flags().String("set-api-key", "", "Store the API key")
	cmd.Flags().Bool("get-api-key", false, "Print the stored API key (masked)")
	cmd.Flags().StringSlice("set-sections", nil, "Store the default sections for non-interactive runs")
	cmd.Flags().Bool("get-sections", false, "Print the stored default sections")
	cmd.Flags().StringArray("set", nil, "Set an option, KEY=VALUE (repeatable)")
	cmd.Flags().Bool("show", false, "Show every option with its file and environment value")
	return cmd
}

func runConfig(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	styles := ui.NewStyles(deps.Theme)

	path, err := configPath(cmd)
	if err != nil {
		return err
	}
	mgr := config.NewManager(path)
	if _, err := mgr.Load(); err != nil {
		return err
	}

	dirty := false
	flags := cmd.Flags()
	if flags.Changed("set-api-key") {
		if err := mgr.Set(config.KeyAPIKey, getStringFlag(cmd, "set-api-key")); err != nil {
			return err
		}
		dirty = true
	}
	if flags.Changed("set-sections") {
		names, _ := flags.GetStringSlice("set-sections")
		ids := make([]string, 0, len(names))
		for _, name := range names {
			id, err := section.Resolve(name)
			if err != nil {
				return err
			}
			ids = append(ids, string(id))
		}
		mgr.SetDefaultSections(ids)
		dirty = true
	}
	assignments, _ := flags.GetStringArray("set")
	for _, a := range assignments {
		key, value, err := config.ParseAssignment(a)
		if err != nil {
			return err
		}
		if err := mgr.Set(key, value); err != nil {
			return err
		}
		dirty = true
	}

	if dirty {
		if err := mgr.Save(); err != nil {
			return fmt.Errorf("save config: %w", err)
		}
		_, _ = fmt.Fprintln(out, styles.Success("Saved "+mgr.Path()))
	}

	file := mgr.Get()
	shown := false
	if getBoolFlag(cmd, "get-api-key") {
		shown = true
		if file.APIKey == nil || *file.APIKey == "" {
			_, _ = fmt.Fprintln(out, styles.Muted("No API key stored."))
		} else {
			_, _ = fmt.Fprintln(out, config.MaskKey(*file.APIKey))
		}
	}
	if getBoolFlag(cmd, "get-sections") {
		shown = true
		if len(file.DefaultSections) == 0 {
			_, _ = fmt.Fprintln(out, styles.Muted("No default sections stored; the built-in defaults apply."))
		} else {
			_, _ = fmt.Fprintln(out, strings.Join(file.DefaultSections, ", "))
		}
	}
	if getBoolFlag(cmd, "show") {
		shown = true
		_, _ = fmt.Fprintln(out, styles.Muted("Config file: "+mgr.Path()))
		_, _ = fmt.Fprintln(out, styles.Table([]string{"Key", "File", "Environment"}, configRows(file, deps.Env())))
	}

	if !dirty && !shown {
		if deps.Headless.IsHeadless() {
			return cmd.Help()
		}
		return runConfigSetup(cmd, mgr, styles)
	}
	return nil
}

// runConfigSetup asks for the API key, then whether each optional default
// section belongs in non-interactive runs, and saves the answers. An
// empty key answer keeps the stored key.
func runConfigSetup(cmd *cobra.Command, mgr *config.Manager, styles *ui.Styles) error {
	out := cmd.OutOrStdout()
	key, err := deps.Prompter.AskSecret("API key (leave empty to keep the current one)")
	if err != nil {
		return setupError(out, styles, err)
	}
	if key = strings.TrimSpace(key); key != "" {
		if err := mgr.Set(config.KeyAPIKey, key); err != nil {
			return err
		}
	}

	stored := map[string]bool{}
	for _, id := range mgr.Get().DefaultSections {
		stored[id] = true
	}
	var ids []string
	for _, id := range section.DefaultIDs() {
		d, _ := section.Lookup(id)
		if !d.Required {
			include, err := deps.Prompter.AskConfirm(fmt.Sprintf("Include %s by default?", d.Name), len(stored) == 0 || stored[string(id)])
			if err != nil {
				return setupError(out, styles, err)
			}
			if !include {
				continue
			}
		}
		ids = append(ids, string(id))
	}
	mgr.SetDefaultSections(ids)

	if err := mgr.Save(); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	_, _ = fmt.Fprintln(out, styles.Success("Saved "+mgr.Path()))
	return nil
}

// setupError turns a cancelled prompt into a quiet exit.
func setupError(out io.Writer, styles *ui.Styles, err error) error {
	if errors.Is(err, ui.ErrCancelled) {
		_, _ = fmt.Fprintln(out, styles.Muted("Cancelled; nothing saved."))
		return nil
	}
	return err
}

// configRows lists each option with its file and environment values. API
// keys are masked.
func configRows(file *config.FileSettings, env map[string]string) [][]string {
	fileValue := map[string]string{}
	if file.APIKey != nil {
		fileValue[config.KeyAPIKey] = config.MaskKey(*file.APIKey)
	}
	if file.Model != nil {
		fileValue[config.KeyModel] = *file.Model
	}
	if file.OutputFile != nil {
		fileValue[config.KeyOutputFile] = *file.OutputFile
	}
	if file.Template != nil {
		fileValue[config.KeyTemplate] = *file.Template
	}
	if file.Temperature != nil {
		fileValue[config.KeyTemperature] = strconv.FormatFloat(*file.Temperature, 'g', -1, 64)
	}
	if file.Timeout != nil {
		fileValue[config.KeyTimeout] = strconv.Itoa(*file.Timeout)
	}

	var rows [][]string
	for _, key := range config.OptionKeys() {
		envValue := env[config.EnvName(key)]
		if key == config.KeyAPIKey {
			envValue = config.MaskKey(envValue)
		}
		rows = append(rows, []string{key, fileValue[key], envValue})
	}
	if len(file.DefaultSections) > 0 {
		rows = append(rows, []string{"default_sections", strings.Join(file.DefaultSections, ", "), ""})
	}
	return rows
}
