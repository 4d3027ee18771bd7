package template

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"text/template"
)

//go:embed templates/default.md.tmpl
var builtinFS embed.FS

// defaultTemplateName is the built-in layout inside builtinFS.
const defaultTemplateName = "templates/default.md.tmpl"

// templateFuncMap provides helper functions available in all templates.
var templateFuncMap = template.FuncMap{
	"trim":  strings.TrimSpace,
	"upper": strings.ToUpper,
	"lower": strings.ToLower,
}

// Renderer renders README text from Data.
type Renderer interface {
	// Default renders the built-in layout.
	Default(data Data) (string, error)

	// Custom renders the template file at path. Missing keys render as
	// empty strings. Any failure is a *TemplateError.
	Custom(path string, data Data) (string, error)
}

// renderer is the concrete implementation of Renderer.
type renderer struct {
	fsys fs.FS
}

// NewRenderer creates a Renderer that reads custom templates from fsys.
// A nil fsys reads paths from the operating system.
func NewRenderer(fsys fs.FS) Renderer {
	return &renderer{fsys: fsys}
}

// Default renders the built-in layout.
func (r *renderer) Default(data Data) (string, error) {
	content, err := fs.ReadFile(builtinFS, defaultTemplateName)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrTemplateNotFound, defaultTemplateName)
	}
	tmpl, err := template.New("default").Funcs(templateFuncMap).Parse(string(content))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateParse, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, map[string]string{
		"ProjectName": data.ProjectName,
		"Description": strings.TrimSpace(data.Description),
		"Badges":      strings.TrimSpace(data.Badges),
		"Body":        data.Body(),
		"Notice":      data.Notice,
	}); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateExecute, err)
	}
	return strings.TrimRight(buf.String(), "\n") + "\n", nil
}

// Custom parses and executes the template at path with missingkey=zero.
func (r *renderer) Custom(path string, data Data) (string, error) {
	content, err := r.read(path)
	if err != nil {
		return "", &TemplateError{Path: path, Err: fmt.Errorf("%w: %v", ErrTemplateNotFound, err)}
	}

	tmpl, err := template.New(path).
		Funcs(templateFuncMap).
		Option("missingkey=zero").
		Parse(string(content))
	if err != nil {
		return "", &TemplateError{Path: path, Err: fmt.Errorf("%w: %v", ErrTemplateParse, err)}
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data.Values()); err != nil {
		return "", &TemplateError{Path: path, Err: fmt.Errorf("%w: %v", ErrTemplateExecute, err)}
	}
	return buf.String(), nil
}

func (r *renderer) read(path string) ([]byte, error) {
	if r.fsys == nil {
		return os.ReadFile(path)
	}
	return fs.ReadFile(r.fsys, path)
}
