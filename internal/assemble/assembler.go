package assemble

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/ai-readme/ai-readme/internal/core/project"
	"github.com/ai-readme/ai-readme/internal/generate"
	"github.com/ai-readme/ai-readme/internal/template"
)

// Confirmer asks a yes/no question. The overwrite check uses it in
// interactive mode.
type Confirmer interface {
	AskConfirm(title string, def bool) (bool, error)
}

// Document is the rendered README.
type Document struct {
	Text string

	// Sections names the sections included, in plan order.
	Sections []string

	// Omitted names planned sections that are missing from Text.
	Omitted []string

	// Warnings collects non-fatal problems, such as a broken custom template.
	Warnings []string
}

// Assembler renders and writes the final document.
type Assembler struct {
	writer    Writer
	renderer  template.Renderer
	confirmer Confirmer
	logger    *slog.Logger
}

// New creates an Assembler. A nil confirmer never asks and always
// overwrites; a nil logger discards output.
func New(writer Writer, renderer template.Renderer, confirmer Confirmer, logger *slog.Logger) *Assembler {
	if writer == nil {
		writer = FileWriter{}
	}
	if renderer == nil {
		renderer = template.NewRenderer(nil)
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Assembler{writer: writer, renderer: renderer, confirmer: confirmer, logger: logger}
}

// Assemble renders the generated sections of outcome, in plan order.
// Failed, skipped and pending sections never appear in the text; when any
// planned section is missing a notice naming them is appended, also for
// custom templates that do not place {{.Notice}} themselves. A broken
// custom template falls back to the built-in one.
func (a *Assembler) Assemble(outcome *generate.Outcome, facts *project.Facts, templatePath string) (*Document, error) {
	if facts == nil {
		facts = &project.Facts{}
	}
	doc := &Document{Omitted: outcome.Omitted()}

	data := template.Data{
		ProjectName: facts.Name,
		Description: facts.Description,
		Badges:      Badges(facts),
		Notice:      Notice(doc.Omitted),
	}
	for _, r := range outcome.Generated() {
		data.Sections = append(data.Sections, template.Section{
			ID:   string(r.ID),
			Name: r.Name,
			Text: NormalizeSection(r.Name, r.Text),
		})
		doc.Sections = append(doc.Sections, r.Name)
	}

	if templatePath != "" {
		text, err := a.renderer.Custom(templatePath, data)
		if err == nil {
			if data.Notice != "" && !strings.Contains(text, data.Notice) {
				text = strings.TrimRight(text, "\n") + "\n\n" + data.Notice
			}
			doc.Text = ensureTrailingNewline(text)
			return doc, nil
		}
		var te *template.TemplateError
		if !errors.As(err, &te) {
			return nil, err
		}
		a.logger.Warn("custom template failed, using built-in template", "template", templatePath, "error", err)
		doc.Warnings = append(doc.Warnings, fmt.Sprintf("%v; used the built-in template", err))
	}

	text, err := a.renderer.Default(data)
	if err != nil {
		return nil, fmt.Errorf("render built-in template: %w", err)
	}
	doc.Text = text
	return doc, nil
}

// Notice returns the trailing note listing sections that were not
// generated, or "" when none are missing.
func Notice(omitted []string) string {
	if len(omitted) == 0 {
		return ""
	}
	return "> **Note:** The following sections were not generated: " + strings.Join(omitted, ", ") + "."
}

// CheckDestination decides whether path may be written. A missing file is
// always writable. An existing file is overwritten without asking unless
// interactive is set and a confirmer is available.
func (a *Assembler) CheckDestination(path string, interactive bool) (bool, error) {
	exists, err := a.writer.Exists(path)
	if err != nil {
		return false, &IOError{Op: "stat", Path: path, Err: err}
	}
	if !exists || !interactive || a.confirmer == nil {
		return true, nil
	}
	ok, err := a.confirmer.AskConfirm(fmt.Sprintf("%s already exists. Overwrite it?", path), false)
	if err != nil {
		return false, err
	}
	a.logger.Debug("overwrite confirmation", "path", path, "overwrite", ok)
	return ok, nil
}

// Write stores doc at path.
func (a *Assembler) Write(path string, doc *Document) error {
	if err := a.writer.WriteFile(path, []byte(doc.Text)); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	a.logger.Info("document written", "path", path, "sections", len(doc.Sections), "bytes", len(doc.Text))
	return nil
}

func ensureTrailingNewline(s string) string {
	if strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
