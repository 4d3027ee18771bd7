package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ai-readme/ai-readme/internal/ui"
	"github.com/ai-readme/ai-readme/pkg/version"
)

// newRootCmd builds the command tree. The root command generates a README.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "ai-readme [path]",
		Short: "Generate a README for a project with a language model",
		Long: `ai-readme inspects a project directory, works out its language,
frameworks and dependencies, and asks a language model to write each README
section in turn. The sections are assembled into a single Markdown file.

Examples:
  ai-readme                         Generate README.md for the current directory
  ai-readme ./service --section Overview --section Usage
  ai-readme --non-interactive --model gemini-1.5-pro`,
		Args:          cobra.MaximumNArgs(1),
		Version:       version.GetVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if deps == nil {
				InitDependencies()
			}
			deps.configureLogging(getBoolFlag(cmd, "verbose"), cmd.ErrOrStderr())
		},
		RunE: runGenerate,
	}
	root.SetVersionTemplate(fmt.Sprintf("ai-readme %s\n", version.GetFullVersion()))

	root.PersistentFlags().String("config", "", "Config file path (default: user config dir)")
	root.PersistentFlags().BoolP("verbose", "v", false, "Log debug output to stderr")

	addModelFlags(root)
	root.Flags().StringP("output-file", "o", "", "Output file, relative to the project root (default: README.md)")
	root.Flags().String("template", "", "Custom text/template file for the README layout, relative to the project root")
	root.Flags().StringArrayP("section", "s", nil, "Section to generate (repeatable; see \"ai-readme sections\")")
	root.Flags().Bool("non-interactive", false, "Never prompt; accept every generated section")

	root.AddCommand(newConfigCmd(), newSectionsCmd(), newRefineCmd(), newVersionCmd())
	return root
}

// addModelFlags registers the flags that reach the model transport.
func addModelFlags(cmd *cobra.Command) {
	cmd.Flags().String("api-key", "", "API key for the model provider")
	cmd.Flags().StringP("model", "m", "", "Model name (default: gpt-4o; gemini-* models use Gemini)")
	cmd.Flags().Float64("temperature", 0, "Sampling temperature, 0.0-2.0 (default: 0.7)")
	cmd.Flags().Int("timeout", 0, "Per-call timeout in seconds (default: 60)")
}

// Execute initializes dependencies and runs the root command.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with ctx, which is cancelled on
// interrupt by the caller.
func ExecuteContext(ctx context.Context) error {
	if deps == nil {
		InitDependencies()
	}
	return executeArgs(ctx, newRootCmd(), nil)
}

// executeArgs runs cmd and reports errors that were not already shown.
func executeArgs(ctx context.Context, cmd *cobra.Command, args []string) error {
	if args != nil {
		cmd.SetArgs(args)
	}
	err := cmd.ExecuteContext(ctx)
	var ee *ExitError
	if err != nil && !(errors.As(err, &ee) && ee.Silent) {
		styles := ui.NewStyles(deps.Theme)
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), styles.Error(err.Error()))
	}
	return err
}

// getStringFlag retrieves a string flag value from the command.
func getStringFlag(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		return ""
	}
	return val
}

// getBoolFlag retrieves a bool flag value from the command.
func getBoolFlag(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		return false
	}
	return val
}
