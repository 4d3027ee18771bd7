package project

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"
)

const (
	// treeDepth is the number of directory levels rendered in the file tree.
	treeDepth = 2

	// sampleLimit is the maximum number of bytes kept per code sample.
	sampleLimit = 1000
)

// treeVisibleDotfiles are hidden names that still appear in the file tree.
var treeVisibleDotfiles = map[string]bool{
	".env.example": true,
	".gitignore":   true,
}

// importantFiles are sampled for every project, in this order.
var importantFiles = []string{
	"README.md", "package.json", "pyproject.toml", "requirements.txt",
	"Cargo.toml", "go.mod", "pom.xml", "build.gradle",
}

// entryPoints lists conventional entry files per primary language.
var entryPoints = map[string][]string{
	"JavaScript": {"index.js", "app.js", "main.js", "src/index.js"},
	"TypeScript": {"index.ts", "app.ts", "main.ts", "src/index.ts"},
	"Python":     {"main.py", "app.py", "__init__.py", "setup.py"},
	"Java":       {"Main.java", "App.java"},
	"Go":         {"main.go"},
	"Rust":       {"main.rs", "lib.rs", "src/main.rs", "src/lib.rs"},
	"C++":        {"main.cpp", "main.cc"},
	"C":          {"main.c"},
	"Ruby":       {"app.rb", "main.rb"},
	"PHP":        {"index.php", "app.php"},
	"Dart":       {"lib/main.dart"},
}

// buildFileTree renders root as an indented tree, directories first, with
// names compared case-insensitively.
func buildFileTree(root string) string {
	var lines []string
	var walk func(dir, prefix string, depth int)
	walk = func(dir, prefix string, depth int) {
		if depth >= treeDepth {
			return
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			return
		}

		visible := entries[:0]
		for _, e := range entries {
			name := e.Name()
			if strings.HasPrefix(name, ".") && !treeVisibleDotfiles[name] {
				continue
			}
			if e.IsDir() && skipDirs[name] {
				continue
			}
			visible = append(visible, e)
		}
		sort.SliceStable(visible, func(i, j int) bool {
			if visible[i].IsDir() != visible[j].IsDir() {
				return visible[i].IsDir()
			}
			a, b := strings.ToLower(visible[i].Name()), strings.ToLower(visible[j].Name())
			if a != b {
				return a < b
			}
			return visible[i].Name() < visible[j].Name()
		})

		for i, e := range visible {
			last := i == len(visible)-1
			connector, childPrefix := "├── ", prefix+"│   "
			if last {
				connector, childPrefix = "└── ", prefix+"    "
			}
			if e.IsDir() {
				lines = append(lines, prefix+connector+e.Name()+"/")
				walk(filepath.Join(dir, e.Name()), childPrefix, depth+1)
				continue
			}
			lines = append(lines, prefix+connector+e.Name())
		}
	}
	walk(root, "", 0)
	return strings.Join(lines, "\n")
}

// collectCodeSamples reads the leading part of important files and the
// entry points of the primary language. Unreadable or non-UTF-8 files are
// skipped.
func collectCodeSamples(root, primaryLanguage string) []CodeSample {
	candidates := append(append([]string{}, importantFiles...), entryPoints[primaryLanguage]...)
	seen := make(map[string]bool, len(candidates))

	var samples []CodeSample
	for _, rel := range candidates {
		if seen[rel] {
			continue
		}
		seen[rel] = true

		data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
		if err != nil || !utf8.Valid(data) {
			continue
		}
		samples = append(samples, CodeSample{Path: rel, Content: truncateUTF8(string(data), sampleLimit)})
	}
	return samples
}

// truncateUTF8 cuts s to at most n bytes without splitting a rune.
func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
