package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	"github.com/ai-readme/ai-readme/internal/assemble"
	"github.com/ai-readme/ai-readme/internal/llm"
	"github.com/ai-readme/ai-readme/internal/prompt"
	"github.com/ai-readme/ai-readme/internal/resilience"
	"github.com/ai-readme/ai-readme/internal/ui"
)

// errTruncated marks a refined document that stops mid-sentence.
var errTruncated = errors.New("response looks truncated")

func newRefineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refine [path]",
		Short: "Revise an existing README with free-form feedback",
		Long: `Send the current README and your feedback to the model and write back the
revised document. Without --feedback an interactive session asks for it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runRefine,
	}
	addModelFlags(cmd)
	cmd.Flags().StringP("feedback", "f", "", "What to change in the README")
	cmd.Flags().StringP("output-file", "o", "", "README to refine, relative to the project root (default: README.md)")
	cmd.Flags().String("output", "", "Where to write the refined README, relative to the project root (default: the README being refined)")
	cmd.Flags().Bool("diff", false, "Print a unified diff of the changes")
	cmd.Flags().Bool("dry-run", false, "Do not write the refined README")
	cmd.Flags().Bool("non-interactive", false, "Never prompt")
	return cmd
}

func runRefine(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	styles := ui.NewStyles(deps.Theme)
	root := absRoot(args)

	settings, _, err := resolveSettings(cmd, root)
	if err != nil {
		return err
	}
	interactive := !getBoolFlag(cmd, "non-interactive") && !deps.Headless.IsHeadless()

	path := targetPath(root, settings.OutputFile)
	dest := path
	if o := getStringFlag(cmd, "output"); o != "" {
		dest = targetPath(root, o)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	original := string(data)

	feedback := strings.TrimSpace(getStringFlag(cmd, "feedback"))
	if feedback == "" && interactive {
		feedback, err = deps.Prompter.AskText("What should change in the README?", "")
		if err != nil {
			if errors.Is(err, ui.ErrCancelled) {
				_, _ = fmt.Fprintln(out, styles.Muted("Cancelled."))
				return nil
			}
			return err
		}
		feedback = strings.TrimSpace(feedback)
	}
	if feedback == "" {
		return errors.New("no feedback given (use --feedback)")
	}

	transport := deps.NewTransport(settings.APIKey)
	req := llm.Request{
		Prompt:      prompt.BuildRefine(original, feedback),
		Model:       settings.Model,
		Temperature: settings.Temperature,
		Timeout:     settings.TimeoutDuration(),
	}

	spinner := ui.NewProgress(deps.Theme, deps.Headless).Spinner("Refining " + path)
	var text string
	err = resilience.Retry(cmd.Context(), resilience.DefaultPolicy(), deps.Sleeper, func(ctx context.Context) error {
		var callErr error
		text, callErr = transport.Invoke(ctx, req)
		if callErr == nil && truncated(text) {
			callErr = &llm.TransportError{Kind: llm.KindUnknown, Provider: "refine", Err: errTruncated}
		}
		if callErr != nil {
			deps.Logger.Debug("refine attempt failed", "kind", llm.KindOf(callErr), "error", callErr)
		}
		return callErr
	})
	spinner.Stop()
	if err != nil {
		return fmt.Errorf("refine: %w", err)
	}
	refined := assemble.NormalizeDocument(text)

	if getBoolFlag(cmd, "diff") {
		diff, err := unifiedDiff(path, original, refined)
		if err != nil {
			return err
		}
		if diff == "" {
			_, _ = fmt.Fprintln(out, styles.Muted("No changes."))
		} else {
			_, _ = fmt.Fprint(out, diff)
		}
	}
	if getBoolFlag(cmd, "dry-run") {
		return nil
	}
	if interactive {
		ok, err := deps.Prompter.AskConfirm("Write the refined README to "+dest+"?", true)
		if err != nil || !ok {
			_, _ = fmt.Fprintln(out, styles.Muted("Kept the existing README."))
			return nil
		}
	}

	if err := deps.Writer.WriteFile(dest, []byte(refined)); err != nil {
		return &assemble.IOError{Op: "write", Path: dest, Err: err}
	}
	_, _ = fmt.Fprintln(out, styles.Success(fmt.Sprintf("Refined %s into %s", path, dest)))
	return nil
}

// truncated reports whether text stops on an ellipsis.
func truncated(text string) bool {
	t := strings.TrimSpace(text)
	return strings.HasSuffix(t, "...") || strings.HasSuffix(t, "…")
}

// unifiedDiff renders the change from before to after with three lines of
// context.
func unifiedDiff(path, before, after string) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: path,
		ToFile:   path + " (refined)",
		Context:  3,
	})
}
