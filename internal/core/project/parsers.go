package project

import (
	"bufio"
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"
)

// packageJSON covers the fields of package.json that feed Facts.
type packageJSON struct {
	Name            string            `json:"name"`
	Description     string            `json:"description"`
	Keywords        []string          `json:"keywords"`
	Homepage        string            `json:"homepage"`
	License         json.RawMessage   `json:"license"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

func parsePackageJSON(data []byte) (*manifestInfo, error) {
	var pkg packageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, fmt.Errorf("parse package.json: %w", err)
	}
	deps := depsFromVersionMap(pkg.Dependencies, false)
	deps = append(deps, depsFromVersionMap(pkg.DevDependencies, true)...)
	return &manifestInfo{
		Name:         pkg.Name,
		Description:  pkg.Description,
		Keywords:     pkg.Keywords,
		Homepage:     pkg.Homepage,
		License:      jsonLicense(pkg.License),
		Dependencies: deps,
	}, nil
}

// composerJSON covers the fields of composer.json that feed Facts.
type composerJSON struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Keywords    []string          `json:"keywords"`
	Homepage    string            `json:"homepage"`
	License     json.RawMessage   `json:"license"`
	Require     map[string]string `json:"require"`
	RequireDev  map[string]string `json:"require-dev"`
}

func parseComposerJSON(data []byte) (*manifestInfo, error) {
	var c composerJSON
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse composer.json: %w", err)
	}
	var deps []Dependency
	for _, d := range append(depsFromVersionMap(c.Require, false), depsFromVersionMap(c.RequireDev, true)...) {
		// Platform requirements are not packages.
		if d.Name == "php" || strings.HasPrefix(d.Name, "ext-") {
			continue
		}
		deps = append(deps, d)
	}
	return &manifestInfo{
		Name:         c.Name,
		Description:  c.Description,
		Keywords:     c.Keywords,
		Homepage:     c.Homepage,
		License:      jsonLicense(c.License),
		Dependencies: deps,
	}, nil
}

// jsonLicense accepts the string, object and array forms of a license field.
func jsonLicense(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	var obj struct {
		Type string `json:"type"`
	}
	if json.Unmarshal(raw, &obj) == nil && obj.Type != "" {
		return obj.Type
	}
	var list []string
	if json.Unmarshal(raw, &list) == nil {
		return strings.Join(list, " OR ")
	}
	return ""
}

func parseGoMod(data []byte) (*manifestInfo, error) {
	f, err := modfile.ParseLax("go.mod", data, nil)
	if err != nil {
		return nil, fmt.Errorf("parse go.mod: %w", err)
	}
	info := &manifestInfo{}
	if f.Module != nil {
		modPath := f.Module.Mod.Path
		if prefix, _, ok := module.SplitPathVersion(modPath); ok {
			modPath = prefix
		}
		info.Name = path.Base(modPath)
	}
	for _, r := range f.Require {
		if r.Indirect {
			continue
		}
		info.Dependencies = append(info.Dependencies, Dependency{Name: r.Mod.Path, Version: r.Mod.Version})
	}
	return info, nil
}

// pyProject covers PEP 621 and Poetry metadata.
type pyProject struct {
	Project struct {
		Name                 string              `toml:"name"`
		Description          string              `toml:"description"`
		Keywords             []string            `toml:"keywords"`
		License              any                 `toml:"license"`
		URLs                 map[string]string   `toml:"urls"`
		Dependencies         []string            `toml:"dependencies"`
		OptionalDependencies map[string][]string `toml:"optional-dependencies"`
	} `toml:"project"`
	Tool struct {
		Poetry struct {
			Name            string         `toml:"name"`
			Description     string         `toml:"description"`
			Keywords        []string       `toml:"keywords"`
			Homepage        string         `toml:"homepage"`
			License         string         `toml:"license"`
			Dependencies    map[string]any `toml:"dependencies"`
			DevDependencies map[string]any `toml:"dev-dependencies"`
		} `toml:"poetry"`
	} `toml:"tool"`
}

func parsePyProject(data []byte) (*manifestInfo, error) {
	var p pyProject
	if err := toml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse pyproject.toml: %w", err)
	}
	poetry := p.Tool.Poetry
	info := &manifestInfo{
		Name:        firstNonEmpty(poetry.Name, p.Project.Name),
		Description: firstNonEmpty(poetry.Description, p.Project.Description),
		Homepage:    firstNonEmpty(poetry.Homepage, urlsHomepage(p.Project.URLs)),
		License:     firstNonEmpty(poetry.License, tomlLicense(p.Project.License)),
	}
	info.Keywords = poetry.Keywords
	if len(info.Keywords) == 0 {
		info.Keywords = p.Project.Keywords
	}

	for _, req := range p.Project.Dependencies {
		if d, ok := parsePEP508(req); ok {
			info.Dependencies = append(info.Dependencies, d)
		}
	}
	extras := make([]string, 0, len(p.Project.OptionalDependencies))
	for group := range p.Project.OptionalDependencies {
		extras = append(extras, group)
	}
	sort.Strings(extras)
	for _, group := range extras {
		for _, req := range p.Project.OptionalDependencies[group] {
			if d, ok := parsePEP508(req); ok {
				d.Dev = true
				info.Dependencies = append(info.Dependencies, d)
			}
		}
	}
	for name, v := range poetry.Dependencies {
		if strings.EqualFold(name, "python") {
			continue
		}
		info.Dependencies = append(info.Dependencies, Dependency{Name: normalizePyName(name), Version: tableVersion(v)})
	}
	for name, v := range poetry.DevDependencies {
		info.Dependencies = append(info.Dependencies, Dependency{Name: normalizePyName(name), Version: tableVersion(v), Dev: true})
	}
	return info, nil
}

func urlsHomepage(urls map[string]string) string {
	for k, v := range urls {
		if strings.EqualFold(k, "homepage") {
			return v
		}
	}
	return ""
}

// tomlLicense accepts `license = "MIT"` and `license = { text = "MIT" }`.
func tomlLicense(v any) string {
	switch l := v.(type) {
	case string:
		return l
	case map[string]any:
		if s, ok := l["text"].(string); ok {
			return s
		}
	}
	return ""
}

// cargoToml covers the fields of Cargo.toml that feed Facts.
type cargoToml struct {
	Package struct {
		Name        string   `toml:"name"`
		Description string   `toml:"description"`
		Keywords    []string `toml:"keywords"`
		Homepage    string   `toml:"homepage"`
		Repository  string   `toml:"repository"`
		License     string   `toml:"license"`
	} `toml:"package"`
	Dependencies    map[string]any `toml:"dependencies"`
	DevDependencies map[string]any `toml:"dev-dependencies"`
}

func parseCargoToml(data []byte) (*manifestInfo, error) {
	var c cargoToml
	if err := toml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse Cargo.toml: %w", err)
	}
	info := &manifestInfo{
		Name:        c.Package.Name,
		Description: c.Package.Description,
		Keywords:    c.Package.Keywords,
		Homepage:    firstNonEmpty(c.Package.Homepage, c.Package.Repository),
		License:     c.Package.License,
	}
	for name, v := range c.Dependencies {
		info.Dependencies = append(info.Dependencies, Dependency{Name: name, Version: tableVersion(v)})
	}
	for name, v := range c.DevDependencies {
		info.Dependencies = append(info.Dependencies, Dependency{Name: name, Version: tableVersion(v), Dev: true})
	}
	return info, nil
}

// tableVersion reads a version from `dep = "1.0"` or `dep = { version = "1.0" }`.
func tableVersion(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case map[string]any:
		if s, ok := t["version"].(string); ok {
			return s
		}
	}
	return ""
}

// pubspec covers the fields of pubspec.yaml that feed Facts.
type pubspec struct {
	Name            string         `yaml:"name"`
	Description     string         `yaml:"description"`
	Homepage        string         `yaml:"homepage"`
	Repository      string         `yaml:"repository"`
	Topics          []string       `yaml:"topics"`
	Dependencies    map[string]any `yaml:"dependencies"`
	DevDependencies map[string]any `yaml:"dev_dependencies"`
}

func parsePubspec(data []byte) (*manifestInfo, error) {
	var p pubspec
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse pubspec.yaml: %w", err)
	}
	info := &manifestInfo{
		Name:        p.Name,
		Description: strings.TrimSpace(p.Description),
		Keywords:    p.Topics,
		Homepage:    firstNonEmpty(p.Homepage, p.Repository),
	}
	for name, v := range p.Dependencies {
		info.Dependencies = append(info.Dependencies, Dependency{Name: name, Version: tableVersion(v)})
	}
	for name, v := range p.DevDependencies {
		info.Dependencies = append(info.Dependencies, Dependency{Name: name, Version: tableVersion(v), Dev: true})
	}
	return info, nil
}

// pomXML covers the fields of a Maven pom.xml that feed Facts.
type pomXML struct {
	ArtifactID  string `xml:"artifactId"`
	Name        string `xml:"name"`
	Description string `xml:"description"`
	URL         string `xml:"url"`
	Licenses    []struct {
		Name string `xml:"name"`
	} `xml:"licenses>license"`
	Dependencies []struct {
		GroupID    string `xml:"groupId"`
		ArtifactID string `xml:"artifactId"`
		Version    string `xml:"version"`
		Scope      string `xml:"scope"`
	} `xml:"dependencies>dependency"`
}

func parsePomXML(data []byte) (*manifestInfo, error) {
	var p pomXML
	if err := xml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse pom.xml: %w", err)
	}
	info := &manifestInfo{
		Name:        firstNonEmpty(strings.TrimSpace(p.Name), p.ArtifactID),
		Description: strings.TrimSpace(p.Description),
		Homepage:    p.URL,
	}
	if len(p.Licenses) > 0 {
		info.License = strings.TrimSpace(p.Licenses[0].Name)
	}
	for _, d := range p.Dependencies {
		info.Dependencies = append(info.Dependencies, Dependency{
			Name:    d.GroupID + ":" + d.ArtifactID,
			Version: d.Version,
			Dev:     d.Scope == "test",
		})
	}
	return info, nil
}

var gradleDependencyRe = regexp.MustCompile(
	`(implementation|api|compileOnly|runtimeOnly|testImplementation|kapt|ksp)\s*\(?\s*["']([^:"'\s]+):([^:"'\s]+)(?::([^"'\s]+))?["']`)

func parseGradle(data []byte) (*manifestInfo, error) {
	info := &manifestInfo{}
	for _, m := range gradleDependencyRe.FindAllSubmatch(data, -1) {
		info.Dependencies = append(info.Dependencies, Dependency{
			Name:    string(m[2]) + ":" + string(m[3]),
			Version: string(m[4]),
			Dev:     strings.HasPrefix(string(m[1]), "test"),
		})
	}
	return info, nil
}

var gemLineRe = regexp.MustCompile(`^\s*gem\s+["']([^"']+)["'](?:\s*,\s*["']([^"']+)["'])?`)

func parseGemfile(data []byte) (*manifestInfo, error) {
	info := &manifestInfo{}
	inDevGroup := false
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "group ") && (strings.Contains(trimmed, ":development") || strings.Contains(trimmed, ":test")):
			inDevGroup = true
			continue
		case trimmed == "end":
			inDevGroup = false
			continue
		}
		if m := gemLineRe.FindStringSubmatch(line); m != nil {
			info.Dependencies = append(info.Dependencies, Dependency{Name: m[1], Version: m[2], Dev: inDevGroup})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read Gemfile: %w", err)
	}
	return info, nil
}

func parseRequirements(data []byte) (*manifestInfo, error) {
	info := &manifestInfo{}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := scanner.Text()
		if i := strings.Index(line, "#"); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		// Options (-r, -e, --index-url) and direct URLs are not named packages.
		if line == "" || strings.HasPrefix(line, "-") || strings.Contains(line, "://") {
			continue
		}
		if d, ok := parsePEP508(line); ok {
			info.Dependencies = append(info.Dependencies, d)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read requirements.txt: %w", err)
	}
	return info, nil
}

var pep508NameRe = regexp.MustCompile(`^([A-Za-z0-9][A-Za-z0-9._-]*)(\[[^\]]*\])?\s*(.*)$`)

// parsePEP508 extracts the name and version specifier of a requirement string.
func parsePEP508(req string) (Dependency, bool) {
	if i := strings.Index(req, ";"); i >= 0 {
		req = req[:i]
	}
	m := pep508NameRe.FindStringSubmatch(strings.TrimSpace(req))
	if m == nil {
		return Dependency{}, false
	}
	version := strings.Trim(strings.TrimSpace(m[3]), "()")
	return Dependency{Name: normalizePyName(m[1]), Version: strings.TrimSpace(version)}, true
}

// normalizePyName applies PEP 503 style normalization.
func normalizePyName(name string) string {
	name = strings.ToLower(name)
	return strings.NewReplacer("_", "-", ".", "-").Replace(name)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
