package project

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"testing"
)

// writeFile creates root/rel with content, creating parent directories.
func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll(%s) error: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile(%s) error: %v", path, err)
	}
}

// mkDir creates root/rel.
func mkDir(t *testing.T, root, rel string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Join(root, filepath.FromSlash(rel)), 0o755); err != nil {
		t.Fatalf("MkdirAll(%s) error: %v", rel, err)
	}
}

func analyze(t *testing.T, root string) *Facts {
	t.Helper()
	facts, err := NewAnalyzer(nil).Analyze(root)
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}
	return facts
}

const goModFixture = `module github.com/acme/widget/v2

go 1.22

require (
	github.com/spf13/cobra v1.8.0
	github.com/gin-gonic/gin v1.9.1
	golang.org/x/sys v0.20.0 // indirect
)
`

func TestAnalyzeMissingRoot(t *testing.T) {
	t.Parallel()

	_, err := NewAnalyzer(nil).Analyze(filepath.Join(t.TempDir(), "nope"))
	if err == nil {
		t.Fatal("expected error for missing root")
	}
	var ae *AnalysisError
	if !errors.As(err, &ae) {
		t.Fatalf("expected *AnalysisError, got %T", err)
	}
	if !errors.Is(err, ErrInvalidRoot) {
		t.Errorf("expected ErrInvalidRoot, got %v", err)
	}
}

func TestAnalyzeRootIsFile(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "file.txt", "x")
	_, err := NewAnalyzer(nil).Analyze(filepath.Join(root, "file.txt"))
	if !errors.Is(err, ErrInvalidRoot) {
		t.Errorf("expected ErrInvalidRoot, got %v", err)
	}
}

func TestAnalyzeGoProject(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "go.mod", goModFixture)
	writeFile(t, root, "main.go", "package main\n\nfunc main() {}\n")
	writeFile(t, root, "internal/app/app.go", "package app\n")
	writeFile(t, root, "internal/app/app_test.go", "package app\n")

	facts := analyze(t, root)

	if facts.PrimaryLanguage != "Go" {
		t.Errorf("PrimaryLanguage = %q, want Go", facts.PrimaryLanguage)
	}
	if facts.Name != "widget" {
		t.Errorf("Name = %q, want widget", facts.Name)
	}
	if want := []string{"Cobra", "Gin"}; !slices.Equal(facts.Frameworks, want) {
		t.Errorf("Frameworks = %v, want %v", facts.Frameworks, want)
	}
	if want := []string{"go.mod"}; !slices.Equal(facts.ManifestFiles, want) {
		t.Errorf("ManifestFiles = %v, want %v", facts.ManifestFiles, want)
	}

	var names []string
	for _, d := range facts.Dependencies {
		names = append(names, d.Name)
		if d.Ecosystem != "go" || d.Manifest != "go.mod" {
			t.Errorf("dependency %q tagged %q/%q", d.Name, d.Ecosystem, d.Manifest)
		}
	}
	if want := []string{"github.com/gin-gonic/gin", "github.com/spf13/cobra"}; !slices.Equal(names, want) {
		t.Errorf("Dependencies = %v, want %v (indirect excluded, sorted)", names, want)
	}
	if facts.TestFiles != 1 {
		t.Errorf("TestFiles = %d, want 1", facts.TestFiles)
	}
	if len(facts.CodeSamples) != 2 || facts.CodeSamples[0].Path != "go.mod" || facts.CodeSamples[1].Path != "main.go" {
		t.Errorf("CodeSamples = %+v, want go.mod then main.go", facts.CodeSamples)
	}
}

func TestAnalyzeMalformedManifestIsNonFatal(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "go.mod", goModFixture)
	writeFile(t, root, "package.json", "{ not json")
	writeFile(t, root, "main.go", "package main\n")

	facts := analyze(t, root)

	if len(facts.ManifestErrors) != 1 || facts.ManifestErrors[0].Path != "package.json" {
		t.Fatalf("ManifestErrors = %+v, want package.json", facts.ManifestErrors)
	}
	if want := []string{"go.mod", "package.json"}; !slices.Equal(facts.ManifestFiles, want) {
		t.Errorf("ManifestFiles = %v, want %v", facts.ManifestFiles, want)
	}
	for _, d := range facts.Dependencies {
		if d.Manifest == "package.json" {
			t.Errorf("unexpected dependency from malformed manifest: %+v", d)
		}
	}
	if !facts.HasDependencies() {
		t.Error("expected go.mod dependencies to survive")
	}
}

func TestAnalyzePrimaryLanguageRanking(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		files map[string]string
		want  string
	}{
		{
			name: "equal manifests tie on source counts",
			files: map[string]string{
				"go.mod":     "module example.com/tie\n",
				"Cargo.toml": "[package]\nname = \"tie\"\n",
				"main.go":    "package main\n",
				"main.rs":    "fn main() {}\n",
			},
			want: LanguageUnknown,
		},
		{
			name: "equal manifests broken by source counts",
			files: map[string]string{
				"go.mod":     "module example.com/tie\n",
				"Cargo.toml": "[package]\nname = \"tie\"\n",
				"main.go":    "package main\n",
				"util.go":    "package main\n",
				"main.rs":    "fn main() {}\n",
			},
			want: "Go",
		},
		{
			name: "top-level manifest beats nested one",
			files: map[string]string{
				"package.json":       `{"name":"web"}`,
				"services/go/go.mod": "module example.com/svc\n",
				"services/go/a.go":   "package a\n",
				"services/go/b.go":   "package a\n",
				"index.js":           "console.log(1)\n",
			},
			want: "JavaScript",
		},
		{
			name: "build manifest beats auxiliary one at same depth",
			files: map[string]string{
				"package.json": `{"name":"tooling"}`,
				"go.mod":       "module example.com/tool\n",
				"a.js":         "",
				"b.js":         "",
				"main.go":      "package main\n",
			},
			want: "Go",
		},
		{
			name: "tsconfig upgrades javascript",
			files: map[string]string{
				"package.json":  `{"name":"app"}`,
				"tsconfig.json": "{}",
				"src/index.ts":  "export {}\n",
			},
			want: "TypeScript",
		},
		{
			name: "no manifests uses histogram",
			files: map[string]string{
				"a.py":       "",
				"b.py":       "",
				"index.html": "",
				"c.html":     "",
				"d.html":     "",
				"run.sh":     "",
			},
			want: "Python",
		},
		{
			name: "no manifests and tied histogram",
			files: map[string]string{
				"a.py": "",
				"b.rb": "",
			},
			want: LanguageUnknown,
		},
		{
			name:  "empty project",
			files: map[string]string{"notes.txt": "hello"},
			want:  LanguageUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			root := t.TempDir()
			for rel, content := range tt.files {
				writeFile(t, root, rel, content)
			}
			if got := analyze(t, root).PrimaryLanguage; got != tt.want {
				t.Errorf("PrimaryLanguage = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAnalyzeManifestDepthAndSkipDirs(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "a/package.json", `{"dependencies":{"react":"^18.0.0"}}`)
	writeFile(t, root, "a/b/requirements.txt", "flask==3.0\n")
	writeFile(t, root, "a/b/c/go.mod", "module example.com/deep\n")
	writeFile(t, root, "node_modules/left-pad/package.json", `{"name":"left-pad"}`)
	writeFile(t, root, ".hidden/Cargo.toml", "[package]\nname = \"x\"\n")

	facts := analyze(t, root)

	if want := []string{"a/b/requirements.txt", "a/package.json"}; !slices.Equal(facts.ManifestFiles, want) {
		t.Errorf("ManifestFiles = %v, want %v", facts.ManifestFiles, want)
	}
	if want := []string{"Flask", "React"}; !slices.Equal(facts.Frameworks, want) {
		t.Errorf("Frameworks = %v, want %v", facts.Frameworks, want)
	}
	if facts.Dependencies[0].Manifest != "a/b/requirements.txt" {
		t.Errorf("dependencies not ordered by manifest path: %+v", facts.Dependencies)
	}
}

func TestAnalyzeIsDeterministic(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "package.json", `{
  "name": "@acme/site",
  "description": "Marketing site",
  "keywords": ["web", "site"],
  "license": "MIT",
  "dependencies": {"react": "^18.2.0", "next": "14.0.0", "zod": "3.22.0"},
  "devDependencies": {"vitest": "1.0.0", "react": "^18.2.0"}
}`)
	writeFile(t, root, "src/index.js", "export default 1\n")
	writeFile(t, root, "src/app.test.js", "test()\n")
	writeFile(t, root, "tools/requirements.txt", "requests>=2\n")

	first := analyze(t, root)
	second := analyze(t, root)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Analyze() not deterministic:\n%+v\n%+v", first, second)
	}

	if first.Name != "site" || first.Description != "Marketing site" || first.License != "MIT" {
		t.Errorf("metadata = %q/%q/%q", first.Name, first.Description, first.License)
	}
	var reactCount int
	for _, d := range first.Dependencies {
		if d.Name == "react" {
			reactCount++
			if d.Dev {
				t.Error("react should keep its runtime entry over the dev duplicate")
			}
		}
	}
	if reactCount != 1 {
		t.Errorf("react listed %d times, want 1", reactCount)
	}
}

func TestAnalyzeLicenseAndRemote(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "LICENSE", "MIT License\n\nCopyright (c) 2024 Acme\n")
	writeFile(t, root, ".git/config", `[core]
	bare = false
[remote "origin"]
	url = git@github.com:acme/gizmo.git
	fetch = +refs/heads/*:refs/remotes/origin/*
`)
	writeFile(t, root, "gizmo.py", "print('hi')\n")

	facts := analyze(t, root)

	if facts.License != "MIT" || facts.LicenseFile != "LICENSE" {
		t.Errorf("License = %q (%q), want MIT (LICENSE)", facts.License, facts.LicenseFile)
	}
	if facts.CloneURL != "https://github.com/acme/gizmo.git" {
		t.Errorf("CloneURL = %q", facts.CloneURL)
	}
	if facts.Name != "gizmo" {
		t.Errorf("Name = %q, want gizmo (from remote)", facts.Name)
	}
	if !facts.HasLicense() {
		t.Error("HasLicense() = false")
	}
}

func TestAnalyzeNameFallsBackToDirectory(t *testing.T) {
	t.Parallel()

	root := filepath.Join(t.TempDir(), "plain-dir")
	mkDir(t, root, "")
	writeFile(t, root, "notes.md", "# notes\n")

	if got := analyze(t, root).Name; got != "plain-dir" {
		t.Errorf("Name = %q, want plain-dir", got)
	}
}

func TestFactsClone(t *testing.T) {
	t.Parallel()

	f := &Facts{Frameworks: []string{"Gin"}, Dependencies: []Dependency{{Name: "a"}}}
	cp := f.Clone()
	cp.Frameworks[0] = "Echo"
	cp.Dependencies[0].Name = "b"
	if f.Frameworks[0] != "Gin" || f.Dependencies[0].Name != "a" {
		t.Error("Clone() shares slices with the original")
	}
	if (*Facts)(nil).Clone() != nil {
		t.Error("Clone() of nil should be nil")
	}
}

func TestResolveRoot(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	got, err := ResolveRoot(dir)
	if err != nil {
		t.Fatalf("ResolveRoot() error: %v", err)
	}
	if !filepath.IsAbs(got) {
		t.Errorf("ResolveRoot() = %q, want absolute", got)
	}
	if _, err := ResolveRoot(filepath.Join(dir, "missing")); !errors.Is(err, ErrInvalidRoot) {
		t.Errorf("expected ErrInvalidRoot, got %v", err)
	}
}
