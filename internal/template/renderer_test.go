package template

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
)

func sampleData() Data {
	return Data{
		ProjectName: "widget",
		Description: "Makes widgets.",
		Sections: []Section{
			{ID: "overview", Name: "Overview", Text: "## Overview\n\nWidgets."},
			{ID: "tech-stack", Name: "Tech Stack", Text: "## Tech Stack\n\nGo."},
		},
	}
}

func TestRendererDefault(t *testing.T) {
	t.Parallel()

	got, err := NewRenderer(nil).Default(sampleData())
	if err != nil {
		t.Fatalf("Default() error: %v", err)
	}
	want := "# widget\n\nMakes widgets.\n\n## Overview\n\nWidgets.\n\n## Tech Stack\n\nGo.\n"
	if got != want {
		t.Errorf("Default() = %q, want %q", got, want)
	}
}

func TestRendererDefaultWithNotice(t *testing.T) {
	t.Parallel()

	d := Data{ProjectName: "widget", Notice: "> **Note:** missing"}
	got, err := NewRenderer(nil).Default(d)
	if err != nil {
		t.Fatalf("Default() error: %v", err)
	}
	want := "# widget\n\n> **Note:** missing\n"
	if got != want {
		t.Errorf("Default() = %q, want %q", got, want)
	}
}

func TestRendererDefaultWithBadges(t *testing.T) {
	t.Parallel()

	d := sampleData()
	d.Badges = "![License](https://img.shields.io/badge/license-MIT-blue.svg)"
	got, err := NewRenderer(nil).Default(d)
	if err != nil {
		t.Fatalf("Default() error: %v", err)
	}
	want := "# widget\n\n![License](https://img.shields.io/badge/license-MIT-blue.svg)\n\nMakes widgets.\n\n## Overview\n\nWidgets.\n\n## Tech Stack\n\nGo.\n"
	if got != want {
		t.Errorf("Default() = %q, want %q", got, want)
	}
}

func TestRendererCustom(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "by_identifier",
			src:  "# {{.ProjectName}}\n{{.Overview}}\n{{.TechStack}}",
			want: "# widget\n## Overview\n\nWidgets.\n## Tech Stack\n\nGo.",
		},
		{
			name: "by_display_name_and_id",
			src:  `{{index . "Tech Stack"}}|{{index . "tech-stack"}}`,
			want: "## Tech Stack\n\nGo.|## Tech Stack\n\nGo.",
		},
		{
			name: "missing_key_renders_empty",
			src:  "[{{.Installation}}][{{index . \"License\"}}]",
			want: "[][]",
		},
		{
			name: "helpers",
			src:  "{{upper .ProjectName}} {{trim \"  x  \"}}",
			want: "WIDGET x",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			fsys := fstest.MapFS{"custom.tmpl": &fstest.MapFile{Data: []byte(tt.src)}}
			got, err := NewRenderer(fsys).Custom("custom.tmpl", sampleData())
			if err != nil {
				t.Fatalf("Custom() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Custom() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRendererCustomErrors(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"bad-parse.tmpl": &fstest.MapFile{Data: []byte("{{.ProjectName")},
		"bad-exec.tmpl":  &fstest.MapFile{Data: []byte("{{template \"nope\"}}")},
	}
	tests := []struct {
		path string
		want error
	}{
		{"missing.tmpl", ErrTemplateNotFound},
		{"bad-parse.tmpl", ErrTemplateParse},
		{"bad-exec.tmpl", ErrTemplateExecute},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			_, err := NewRenderer(fsys).Custom(tt.path, sampleData())
			var te *TemplateError
			if !errors.As(err, &te) {
				t.Fatalf("Custom() error = %v, want *TemplateError", err)
			}
			if te.Path != tt.path {
				t.Errorf("TemplateError.Path = %q, want %q", te.Path, tt.path)
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Custom() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRendererCustomFromDisk(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "readme.tmpl")
	if err := os.WriteFile(path, []byte("{{.Body}}"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := NewRenderer(nil).Custom(path, sampleData())
	if err != nil {
		t.Fatalf("Custom() error: %v", err)
	}
	if !strings.HasPrefix(got, "## Overview") || !strings.HasSuffix(got, "Go.") {
		t.Errorf("Custom() = %q", got)
	}
}
