package project

import "slices"

// LanguageUnknown is reported when no primary language can be chosen.
const LanguageUnknown = "unknown"

// VersionUnknown is displayed for dependencies declared without a version.
const VersionUnknown = "unknown"

// Facts is the read-only snapshot produced by one analysis. It is created
// once per invocation and never mutated afterwards; callers that need to
// change a field must work on a copy.
type Facts struct {
	Root string

	// Core facts.
	PrimaryLanguage string
	Frameworks      []string     // sorted, unique
	Dependencies    []Dependency // ordered by manifest path, then name
	ManifestFiles   []string     // slash-separated paths relative to Root, sorted

	// Descriptive metadata.
	Name        string
	Description string
	Keywords    []string
	Homepage    string
	License     string
	LicenseFile string
	CloneURL    string

	Languages      []Language
	FileTree       string
	CodeSamples    []CodeSample
	TestFiles      int
	ManifestErrors []ManifestError
}

// Dependency is one declared dependency.
type Dependency struct {
	Name      string
	Version   string // empty when the manifest gives none
	Ecosystem string
	Manifest  string // relative path of the declaring manifest
	Dev       bool
}

// VersionOrUnknown returns Version, or VersionUnknown when it is empty.
func (d Dependency) VersionOrUnknown() string {
	if d.Version == "" {
		return VersionUnknown
	}
	return d.Version
}

// Language is a source language with its file count across the tree.
type Language struct {
	Name       string
	Confidence float64 // share of recognized source files, 0.0-1.0
	FileCount  int
}

// CodeSample is the leading part of a representative file.
type CodeSample struct {
	Path    string
	Content string
}

// ManifestError records a manifest whose contents could not be used.
type ManifestError struct {
	Path    string
	Message string
}

// HasDependencies reports whether any dependency was found.
func (f *Facts) HasDependencies() bool {
	return f != nil && len(f.Dependencies) > 0
}

// HasLicense reports whether a license was detected.
func (f *Facts) HasLicense() bool {
	return f != nil && (f.License != "" || f.LicenseFile != "")
}

// Clone returns a deep copy of f.
func (f *Facts) Clone() *Facts {
	if f == nil {
		return nil
	}
	cp := *f
	cp.Frameworks = slices.Clone(f.Frameworks)
	cp.Dependencies = slices.Clone(f.Dependencies)
	cp.ManifestFiles = slices.Clone(f.ManifestFiles)
	cp.Keywords = slices.Clone(f.Keywords)
	cp.Languages = slices.Clone(f.Languages)
	cp.CodeSamples = slices.Clone(f.CodeSamples)
	cp.ManifestErrors = slices.Clone(f.ManifestErrors)
	return &cp
}
