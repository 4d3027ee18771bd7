package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ai-readme/ai-readme/internal/core/project"
	"github.com/ai-readme/ai-readme/internal/section"
)

func sampleFacts() *project.Facts {
	return &project.Facts{
		Name:            "widget",
		Description:     "Makes widgets",
		PrimaryLanguage: "Go",
		Languages: []project.Language{
			{Name: "Go", FileCount: 12},
			{Name: "Shell", FileCount: 2},
		},
		Frameworks: []string{"Cobra"},
		Dependencies: []project.Dependency{
			{Name: "github.com/spf13/cobra", Version: "v1.8.0", Ecosystem: "go", Manifest: "go.mod"},
			{Name: "github.com/stretchr/testify", Ecosystem: "go", Manifest: "go.mod", Dev: true},
		},
		ManifestFiles: []string{"go.mod"},
		CloneURL:      "https://github.com/acme/widget.git",
		FileTree:      "├── cmd/\n└── go.mod",
		CodeSamples:   []project.CodeSample{{Path: "main.go", Content: "package main\n"}},
		TestFiles:     4,
	}
}

func spec(t *testing.T, name string) section.Spec {
	t.Helper()
	plan, err := section.Plan([]string{name}, nil)
	require.NoError(t, err)
	require.Len(t, plan, 1)
	return plan[0]
}

func TestBuildIsDeterministic(t *testing.T) {
	t.Parallel()

	b := NewBuilder(Options{})
	prior := []Prior{{Name: "Overview", Text: "## Overview\n\nWidgets."}}
	first := b.Build(spec(t, "Usage"), sampleFacts(), prior)
	second := b.Build(spec(t, "Usage"), sampleFacts(), prior)
	assert.Equal(t, first, second)
}

func TestBuildSelectsRelevantFacts(t *testing.T) {
	t.Parallel()

	b := NewBuilder(Options{})
	facts := sampleFacts()

	overview := b.Build(spec(t, "Overview"), facts, nil)
	assert.Contains(t, overview, `"Overview"`)
	assert.Contains(t, overview, "## Overview")
	assert.Contains(t, overview, "Primary language: Go")
	assert.Contains(t, overview, "Frameworks: Cobra")
	assert.Contains(t, overview, "https://github.com/acme/widget.git")
	assert.NotContains(t, overview, "github.com/spf13/cobra v1.8.0")

	deps := b.Build(spec(t, "Dependencies"), facts, nil)
	assert.Contains(t, deps, "github.com/spf13/cobra v1.8.0 (go.mod)")
	assert.Contains(t, deps, "github.com/stretchr/testify unknown (go.mod, dev)")
	assert.NotContains(t, deps, "Primary language")
	assert.NotContains(t, deps, "Frameworks:")

	usage := b.Build(spec(t, "Usage"), facts, nil)
	assert.Contains(t, usage, "File: main.go")

	structure := b.Build(spec(t, "Project Structure"), facts, nil)
	assert.Contains(t, structure, "├── cmd/")
}

func TestBuildLicenseContext(t *testing.T) {
	t.Parallel()

	b := NewBuilder(Options{})
	noFile := b.Build(spec(t, "License"), &project.Facts{License: "MIT"}, nil)
	assert.Contains(t, noFile, "License type: MIT")
	assert.Contains(t, noFile, "No license file exists")

	withFile := b.Build(spec(t, "License"), &project.Facts{License: "MIT", LicenseFile: "LICENSE"}, nil)
	assert.Contains(t, withFile, "License file: LICENSE (exists in the repository)")
}

func TestBuildTableOfContentsListsPlan(t *testing.T) {
	t.Parallel()

	b := NewBuilder(Options{Plan: []string{"Overview", "Table of Contents", "Installation", "Usage"}})
	p := b.Build(spec(t, "Table of Contents"), sampleFacts(), nil)
	assert.Contains(t, p, "  - Overview\n  - Installation\n  - Usage\n")
	assert.NotContains(t, p, "  - Table of Contents")
}

func TestBuildCapsDependencies(t *testing.T) {
	t.Parallel()

	facts := &project.Facts{}
	for i := 0; i < 10; i++ {
		facts.Dependencies = append(facts.Dependencies, project.Dependency{Name: "dep" + string(rune('a'+i)), Manifest: "package.json"})
	}
	p := NewBuilder(Options{MaxDependencies: 3}).Build(spec(t, "Dependencies"), facts, nil)
	assert.Contains(t, p, "Dependencies (10):")
	assert.Contains(t, p, "... and 7 more")
	assert.NotContains(t, p, "depd ")
}

func TestWindowKeepsMostRecentSections(t *testing.T) {
	t.Parallel()

	b := NewBuilder(Options{})
	prior := []Prior{
		{Name: "A", Text: "a"},
		{Name: "B", Text: "b"},
		{Name: "C", Text: "c"},
		{Name: "D", Text: "d"},
	}
	got := b.Window(prior)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"B", "C", "D"}, []string{got[0].Name, got[1].Name, got[2].Name})
}

func TestWindowDropsOlderTextFirst(t *testing.T) {
	t.Parallel()

	b := NewBuilder(Options{MaxPriorChars: 10})
	prior := []Prior{
		{Name: "Old", Text: "123456"},
		{Name: "New", Text: "abcdef"},
	}
	got := b.Window(prior)
	require.Len(t, got, 1)
	assert.Equal(t, "New", got[0].Name)
	assert.Equal(t, "abcdef", got[0].Text)
}

func TestWindowTruncatesOversizedSectionFromFront(t *testing.T) {
	t.Parallel()

	b := NewBuilder(Options{MaxPriorChars: 5})
	got := b.Window([]Prior{{Name: "Big", Text: "0123456789"}})
	require.Len(t, got, 1)
	assert.Equal(t, "56789", got[0].Text)
}

func TestBuildPriorWindowIsBounded(t *testing.T) {
	t.Parallel()

	b := NewBuilder(Options{})
	big := strings.Repeat("x", 5000)
	prior := []Prior{
		{Name: "Overview", Text: big},
		{Name: "Features", Text: big},
		{Name: "Installation", Text: big},
	}
	p := b.Build(spec(t, "Usage"), sampleFacts(), prior)
	assert.LessOrEqual(t, strings.Count(p, "x"), DefaultMaxPriorChars+10)
	assert.Contains(t, p, "<<< Installation >>>")
	assert.NotContains(t, p, "<<< Overview >>>")
}

func TestBuildRefine(t *testing.T) {
	t.Parallel()

	p := BuildRefine("# Widget\n\nOld text.\n", "  Add a FAQ section.  ")
	assert.Contains(t, p, "# Widget\n\nOld text.")
	assert.Contains(t, p, "Feedback:\nAdd a FAQ section.\n")
	assert.Contains(t, p, "without wrapping it in a code fence")
}
