package project

import (
	"sort"
	"strings"
)

// manifestInfo is what a manifest parser extracts from one file.
type manifestInfo struct {
	Name         string
	Description  string
	Keywords     []string
	Homepage     string
	License      string
	Dependencies []Dependency
}

// manifestSpec describes one known dependency-declaration file.
type manifestSpec struct {
	FileName  string
	Language  string
	Ecosystem string
	Tier      int // 1 for build manifests, 2 for auxiliary ones
	Parse     func(data []byte) (*manifestInfo, error)
}

// knownManifests lists recognized manifests. The order is also the metadata
// precedence: the first top-level manifest that supplies a field wins.
var knownManifests = []manifestSpec{
	{FileName: "package.json", Language: "JavaScript", Ecosystem: "npm", Tier: 2, Parse: parsePackageJSON},
	{FileName: "pyproject.toml", Language: "Python", Ecosystem: "pypi", Tier: 1, Parse: parsePyProject},
	{FileName: "Cargo.toml", Language: "Rust", Ecosystem: "cargo", Tier: 1, Parse: parseCargoToml},
	{FileName: "go.mod", Language: "Go", Ecosystem: "go", Tier: 1, Parse: parseGoMod},
	{FileName: "composer.json", Language: "PHP", Ecosystem: "composer", Tier: 1, Parse: parseComposerJSON},
	{FileName: "pubspec.yaml", Language: "Dart", Ecosystem: "pub", Tier: 1, Parse: parsePubspec},
	{FileName: "pom.xml", Language: "Java", Ecosystem: "maven", Tier: 1, Parse: parsePomXML},
	{FileName: "build.gradle", Language: "Java", Ecosystem: "gradle", Tier: 1, Parse: parseGradle},
	{FileName: "build.gradle.kts", Language: "Kotlin", Ecosystem: "gradle", Tier: 1, Parse: parseGradle},
	{FileName: "Gemfile", Language: "Ruby", Ecosystem: "rubygems", Tier: 1, Parse: parseGemfile},
	{FileName: "requirements.txt", Language: "Python", Ecosystem: "pypi", Tier: 2, Parse: parseRequirements},
}

// manifestByName indexes knownManifests by file name.
var manifestByName = func() map[string]*manifestSpec {
	m := make(map[string]*manifestSpec, len(knownManifests))
	for i := range knownManifests {
		m[knownManifests[i].FileName] = &knownManifests[i]
	}
	return m
}()

// manifestPrecedence returns the index of a manifest in knownManifests.
func manifestPrecedence(fileName string) int {
	for i := range knownManifests {
		if knownManifests[i].FileName == fileName {
			return i
		}
	}
	return len(knownManifests)
}

// normalizeDependencies sorts deps by name and drops duplicate names, keeping
// the first (non-dev entries sort ahead of dev ones).
func normalizeDependencies(deps []Dependency) []Dependency {
	sort.SliceStable(deps, func(i, j int) bool {
		if deps[i].Name != deps[j].Name {
			return deps[i].Name < deps[j].Name
		}
		return !deps[i].Dev && deps[j].Dev
	})
	out := deps[:0]
	var last string
	for i, d := range deps {
		if d.Name == "" || (i > 0 && d.Name == last) {
			continue
		}
		last = d.Name
		out = append(out, d)
	}
	return out
}

// depsFromVersionMap converts a name -> version map.
func depsFromVersionMap(m map[string]string, dev bool) []Dependency {
	deps := make([]Dependency, 0, len(m))
	for name, version := range m {
		deps = append(deps, Dependency{Name: name, Version: strings.TrimSpace(version), Dev: dev})
	}
	return deps
}
