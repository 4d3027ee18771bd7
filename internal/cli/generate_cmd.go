package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ai-readme/ai-readme/internal/assemble"
	"github.com/ai-readme/ai-readme/internal/config"
	"github.com/ai-readme/ai-readme/internal/core/project"
	"github.com/ai-readme/ai-readme/internal/generate"
	"github.com/ai-readme/ai-readme/internal/prompt"
	"github.com/ai-readme/ai-readme/internal/resilience"
	"github.com/ai-readme/ai-readme/internal/section"
	"github.com/ai-readme/ai-readme/internal/ui"
)

// runGenerate is the root command: resolve settings, analyze, plan,
// generate, assemble and write.
func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	styles := ui.NewStyles(deps.Theme)

	settings, file, err := resolveSettings(cmd, absRoot(args))
	if err != nil {
		return err
	}

	root, err := project.ResolveRoot(absRoot(args))
	if err != nil {
		return err
	}
	facts, err := deps.Analyzer.Analyze(root)
	if err != nil {
		return err
	}
	for _, me := range facts.ManifestErrors {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), styles.Warn(fmt.Sprintf("could not parse %s: %s", me.Path, me.Message)))
	}

	interactive := !getBoolFlag(cmd, "non-interactive") && !deps.Headless.IsHeadless()
	plan, err := planSections(cmd, facts, file, interactive)
	if err != nil {
		return err
	}
	if len(plan) == 0 {
		return errors.New("no sections selected")
	}

	var confirmer assemble.Confirmer
	if interactive {
		confirmer = deps.Prompter
	}
	assembler := assemble.New(deps.Writer, deps.Renderer, confirmer, deps.Logger)
	outputPath := targetPath(root, settings.OutputFile)
	ok, err := assembler.CheckDestination(outputPath, interactive)
	if err != nil {
		if errors.Is(err, ui.ErrCancelled) {
			_, _ = fmt.Fprintln(out, styles.Muted("Cancelled."))
			return nil
		}
		return err
	}
	if !ok {
		_, _ = fmt.Fprintln(out, styles.Muted(fmt.Sprintf("Kept the existing %s; nothing generated.", outputPath)))
		return nil
	}

	_, _ = fmt.Fprintln(out, styles.Title(fmt.Sprintf("Generating %d sections for %s with %s", len(plan), facts.Name, settings.Model)))

	observer := newProgressObserver(ui.NewProgress(deps.Theme, deps.Headless), styles, out)
	opts := generate.Options{
		Model:       settings.Model,
		Temperature: settings.Temperature,
		Timeout:     settings.TimeoutDuration(),
		Policy:      resilience.DefaultPolicy(),
		Sleeper:     deps.Sleeper,
		Observer:    observer,
		Logger:      deps.Logger,
	}
	if interactive {
		md := ui.NewMarkdownRenderer(deps.Theme, 100)
		opts.Prompter = deps.Prompter
		opts.Preview = func(name, text string) {
			observer.stop()
			_, _ = fmt.Fprintln(out, md.Render(assemble.NormalizeSection(name, text)))
		}
	}

	builder := prompt.NewBuilder(prompt.Options{Plan: section.Names(plan)})
	outcome := generate.New(deps.NewTransport(settings.APIKey), builder, opts).Run(ctx, plan, facts)
	observer.stop()

	if outcome.Status == generate.RunCancelled {
		printSummary(out, styles, outcome, "")
		return &ExitError{Code: outcome.Status.ExitCode(), Err: errors.New("generation cancelled"), Silent: true}
	}

	templatePath := settings.Template
	if templatePath != "" {
		templatePath = targetPath(root, templatePath)
	}
	doc, err := assembler.Assemble(outcome, facts, templatePath)
	if err != nil {
		return err
	}
	for _, w := range doc.Warnings {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), styles.Warn(w))
	}
	if err := assembler.Write(outputPath, doc); err != nil {
		return err
	}

	printSummary(out, styles, outcome, outputPath)
	if !outcome.Status.Success() {
		return &ExitError{
			Code:   outcome.Status.ExitCode(),
			Err:    fmt.Errorf("required sections not generated: %s", strings.Join(outcome.MissingRequired(), ", ")),
			Silent: true,
		}
	}
	return nil
}

// planSections picks the user selection: --section flags first, then an
// interactive pass over the optional default sections, then the
// default_sections list from the config file for non-interactive runs.
func planSections(cmd *cobra.Command, facts *project.Facts, file *config.FileSettings, interactive bool) ([]section.Spec, error) {
	selection, _ := cmd.Flags().GetStringArray("section")
	if len(selection) > 0 {
		return section.Plan(selection, facts)
	}
	if !interactive {
		if file != nil && len(file.DefaultSections) > 0 {
			return section.Plan(file.DefaultSections, facts)
		}
		return section.Plan(nil, facts)
	}

	plan, err := section.Plan(nil, facts)
	if err != nil {
		return nil, err
	}
	var kept []section.Spec
	for _, spec := range plan {
		if !spec.Required {
			include, err := deps.Prompter.AskConfirm(fmt.Sprintf("Include the %s section?", spec.Name), true)
			if err != nil {
				return nil, err
			}
			if !include {
				continue
			}
		}
		spec.Order = len(kept)
		kept = append(kept, spec)
	}
	return kept, nil
}

// printSummary writes the end-of-run card.
func printSummary(w io.Writer, styles *ui.Styles, outcome *generate.Outcome, path string) {
	var details []string
	if path != "" {
		details = append(details, "Written to "+path)
	}
	details = append(details, fmt.Sprintf("Generated: %d  Failed: %d  Skipped: %d  Pending: %d",
		outcome.Count(generate.StatusGenerated),
		outcome.Count(generate.StatusFailed),
		outcome.Count(generate.StatusSkippedByUser),
		outcome.Count(generate.StatusPending),
	))
	if omitted := outcome.Omitted(); len(omitted) > 0 {
		details = append(details, "Not generated: "+strings.Join(omitted, ", "))
	}

	kind, title := "success", "README generated"
	switch outcome.Status {
	case generate.RunDegraded:
		kind, title = "warn", "README generated with missing optional sections"
	case generate.RunFailed:
		kind, title = "error", "Required sections failed"
	case generate.RunCancelled:
		kind, title = "warn", "Generation cancelled"
	}
	_, _ = fmt.Fprintln(w, styles.Card(kind, title, details...))
}
