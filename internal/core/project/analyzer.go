package project

import (
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// maxManifestDepth bounds how far below the root manifests are collected.
// Depth 0 is the root itself.
const maxManifestDepth = 2

// skipDirs lists directories to skip during filesystem walks.
var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"vendor":       true,
	".venv":        true,
	"venv":         true,
	"__pycache__":  true,
	"target":       true,
	"build":        true,
	"dist":         true,
	".next":        true,
	".cargo":       true,
}

// Analyzer turns a project directory into Facts.
type Analyzer interface {
	// Analyze scans root and returns its facts. It fails with *AnalysisError
	// when root does not exist or cannot be read. Problems with individual
	// files never fail the analysis.
	Analyze(root string) (*Facts, error)
}

// projectAnalyzer is the concrete implementation of Analyzer.
type projectAnalyzer struct {
	logger *slog.Logger
}

// NewAnalyzer creates an Analyzer. A nil logger discards output.
func NewAnalyzer(logger *slog.Logger) Analyzer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &projectAnalyzer{logger: logger}
}

// foundManifest is a manifest located during the walk.
type foundManifest struct {
	RelPath string // slash-separated
	Depth   int
	Spec    *manifestSpec
}

// scanResult is everything gathered in the single tree walk.
type scanResult struct {
	langCounts  map[string]int
	testFiles   int
	manifests   []foundManifest
	hasTSConfig bool
}

// Analyze scans root and returns its facts.
func (a *projectAnalyzer) Analyze(root string) (*Facts, error) {
	root = filepath.Clean(root)
	if err := validateRoot(root); err != nil {
		return nil, err
	}

	a.logger.Debug("analyzing project", "root", root)

	scan, err := a.scan(root)
	if err != nil {
		return nil, &AnalysisError{Root: root, Err: err}
	}

	facts := &Facts{
		Root:      root,
		Languages: buildLanguages(scan.langCounts),
		TestFiles: scan.testFiles,
	}

	var (
		candidates []manifestCandidate
		topLevel   []*manifestInfo
		topSpecs   []*manifestSpec
	)
	for _, m := range scan.manifests {
		facts.ManifestFiles = append(facts.ManifestFiles, m.RelPath)
		candidates = append(candidates, manifestCandidate{Language: m.Spec.Language, Depth: m.Depth, Tier: m.Spec.Tier})

		info, err := a.readManifest(root, m)
		if err != nil {
			a.logger.Debug("manifest skipped", "path", m.RelPath, "error", err)
			facts.ManifestErrors = append(facts.ManifestErrors, ManifestError{Path: m.RelPath, Message: err.Error()})
			continue
		}
		facts.Dependencies = append(facts.Dependencies, info.Dependencies...)
		if m.Depth == 0 {
			topLevel = append(topLevel, info)
			topSpecs = append(topSpecs, m.Spec)
		}
	}

	facts.PrimaryLanguage = rankPrimaryLanguage(candidates, scan.langCounts, scan.hasTSConfig)
	facts.Frameworks = detectFrameworks(facts.Dependencies)
	applyMetadata(facts, topLevel, topSpecs)

	facts.LicenseFile = findLicenseFile(root)
	if facts.License == "" && facts.LicenseFile != "" {
		facts.License = sniffLicense(root, facts.LicenseFile)
	}

	remote := readOriginRemote(root)
	facts.CloneURL = remote.CloneURL
	if facts.Name == "" {
		facts.Name = remote.Repo
	}
	if facts.Name == "" {
		facts.Name = filepath.Base(root)
	}

	facts.FileTree = buildFileTree(root)
	facts.CodeSamples = collectCodeSamples(root, facts.PrimaryLanguage)

	a.logger.Debug("project analyzed",
		"primary_language", facts.PrimaryLanguage,
		"manifests", len(facts.ManifestFiles),
		"dependencies", len(facts.Dependencies),
		"frameworks", len(facts.Frameworks),
	)
	return facts, nil
}

// scan walks the tree once, counting source files and locating manifests.
func (a *projectAnalyzer) scan(root string) (*scanResult, error) {
	res := &scanResult{langCounts: make(map[string]int)}

	err := filepath.WalkDir(root, func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			if p == root {
				return err
			}
			a.logger.Debug("skipping unreadable entry", "path", p, "error", err)
			if entry != nil && entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		name := entry.Name()
		if entry.IsDir() {
			if p != root && (skipDirs[name] || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if !entry.Type().IsRegular() {
			return nil
		}

		rel, relErr := filepath.Rel(root, p)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		depth := strings.Count(rel, "/")

		if spec, ok := manifestByName[name]; ok && depth <= maxManifestDepth {
			res.manifests = append(res.manifests, foundManifest{RelPath: rel, Depth: depth, Spec: spec})
		}
		if depth == 0 && name == "tsconfig.json" {
			res.hasTSConfig = true
		}
		if lang := languageForFile(name); lang != "" {
			res.langCounts[lang]++
			if isTestFile(name) {
				res.testFiles++
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableRoot, err)
	}

	sort.Slice(res.manifests, func(i, j int) bool {
		return res.manifests[i].RelPath < res.manifests[j].RelPath
	})
	return res, nil
}

// readManifest reads and parses one manifest. Dependencies are normalized
// and tagged with their ecosystem and manifest path.
func (a *projectAnalyzer) readManifest(root string, m foundManifest) (*manifestInfo, error) {
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(m.RelPath)))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrManifestParse, m.RelPath, err)
	}
	info, err := m.Spec.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrManifestParse, err)
	}
	for i := range info.Dependencies {
		info.Dependencies[i].Ecosystem = m.Spec.Ecosystem
		info.Dependencies[i].Manifest = m.RelPath
	}
	info.Dependencies = normalizeDependencies(info.Dependencies)
	return info, nil
}

// applyMetadata fills descriptive fields from top-level manifests, taking
// each field from the first manifest in precedence order that supplies it.
func applyMetadata(facts *Facts, infos []*manifestInfo, specs []*manifestSpec) {
	order := make([]int, len(infos))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return manifestPrecedence(specs[order[i]].FileName) < manifestPrecedence(specs[order[j]].FileName)
	})

	for _, idx := range order {
		info := infos[idx]
		if facts.Name == "" {
			facts.Name = displayName(info.Name)
		}
		if facts.Description == "" {
			facts.Description = info.Description
		}
		if len(facts.Keywords) == 0 && len(info.Keywords) > 0 {
			facts.Keywords = append([]string(nil), info.Keywords...)
		}
		if facts.Homepage == "" {
			facts.Homepage = info.Homepage
		}
		if facts.License == "" {
			facts.License = info.License
		}
	}
}

// displayName strips an npm scope or composer vendor from a package name.
func displayName(name string) string {
	name = strings.TrimSpace(name)
	if strings.Contains(name, "/") {
		return path.Base(name)
	}
	return name
}
