package project

import (
	"path/filepath"
	"sort"
	"strings"
)

// extensionLanguageMap maps lower-cased file extensions to language names.
var extensionLanguageMap = map[string]string{
	".js":     "JavaScript",
	".jsx":    "JavaScript",
	".mjs":    "JavaScript",
	".cjs":    "JavaScript",
	".ts":     "TypeScript",
	".tsx":    "TypeScript",
	".py":     "Python",
	".java":   "Java",
	".cpp":    "C++",
	".cc":     "C++",
	".hpp":    "C++",
	".c":      "C",
	".h":      "C",
	".cs":     "C#",
	".go":     "Go",
	".rs":     "Rust",
	".rb":     "Ruby",
	".php":    "PHP",
	".kt":     "Kotlin",
	".kts":    "Kotlin",
	".swift":  "Swift",
	".scala":  "Scala",
	".sh":     "Shell",
	".ps1":    "PowerShell",
	".html":   "HTML",
	".css":    "CSS",
	".scss":   "SCSS",
	".less":   "Less",
	".vue":    "Vue",
	".svelte": "Svelte",
	".dart":   "Dart",
	".lua":    "Lua",
	".r":      "R",
	".m":      "Objective-C",
	".mm":     "Objective-C++",
	".sql":    "SQL",
	".ex":     "Elixir",
	".exs":    "Elixir",
	".zig":    "Zig",
}

// markupLanguages are counted in the histogram but never chosen as the
// primary language.
var markupLanguages = map[string]bool{
	"HTML":       true,
	"CSS":        true,
	"SCSS":       true,
	"Less":       true,
	"SQL":        true,
	"Shell":      true,
	"PowerShell": true,
}

// languageForFile returns the language implied by a file name, or "".
func languageForFile(name string) string {
	return extensionLanguageMap[strings.ToLower(filepath.Ext(name))]
}

// testPattern detects test files for one language.
type testPattern struct {
	Language   string
	IsTestFile func(name string) bool
}

// knownTestPatterns lists language-specific test file conventions.
var knownTestPatterns = []testPattern{
	{
		Language:   "Go",
		IsTestFile: func(name string) bool { return strings.HasSuffix(name, "_test.go") },
	},
	{
		Language: "Python",
		IsTestFile: func(name string) bool {
			return strings.HasSuffix(name, ".py") && (strings.HasPrefix(name, "test_") || strings.HasSuffix(name, "_test.py"))
		},
	},
	{
		Language: "JavaScript",
		IsTestFile: func(name string) bool {
			for _, suffix := range []string{".test.js", ".spec.js", ".test.jsx", ".spec.jsx"} {
				if strings.HasSuffix(name, suffix) {
					return true
				}
			}
			return false
		},
	},
	{
		Language: "TypeScript",
		IsTestFile: func(name string) bool {
			for _, suffix := range []string{".test.ts", ".spec.ts", ".test.tsx", ".spec.tsx"} {
				if strings.HasSuffix(name, suffix) {
					return true
				}
			}
			return false
		},
	},
	{
		Language:   "Rust",
		IsTestFile: func(name string) bool { return strings.HasSuffix(name, "_test.rs") },
	},
	{
		Language: "Java",
		IsTestFile: func(name string) bool {
			return strings.HasSuffix(name, "Test.java") || strings.HasSuffix(name, "Tests.java")
		},
	},
	{
		Language:   "Ruby",
		IsTestFile: func(name string) bool { return strings.HasSuffix(name, "_spec.rb") || strings.HasSuffix(name, "_test.rb") },
	},
	{
		Language:   "PHP",
		IsTestFile: func(name string) bool { return strings.HasSuffix(name, "Test.php") },
	},
	{
		Language:   "Dart",
		IsTestFile: func(name string) bool { return strings.HasSuffix(name, "_test.dart") },
	},
}

// isTestFile reports whether name follows any known test file convention.
func isTestFile(name string) bool {
	for _, p := range knownTestPatterns {
		if p.IsTestFile(name) {
			return true
		}
	}
	return false
}

// buildLanguages converts a file-count histogram into a sorted Language slice.
func buildLanguages(counts map[string]int) []Language {
	total := 0
	for _, n := range counts {
		total += n
	}
	if total == 0 {
		return nil
	}

	languages := make([]Language, 0, len(counts))
	for name, count := range counts {
		languages = append(languages, Language{
			Name:       name,
			Confidence: float64(count) / float64(total),
			FileCount:  count,
		})
	}

	// Sort by file count descending, then by name for stability
	sort.Slice(languages, func(i, j int) bool {
		if languages[i].FileCount != languages[j].FileCount {
			return languages[i].FileCount > languages[j].FileCount
		}
		return languages[i].Name < languages[j].Name
	})
	return languages
}

// manifestCandidate is a language implied by a found manifest.
type manifestCandidate struct {
	Language string
	Depth    int // path depth below the root, 0 for top level
	Tier     int // manifest strength, lower is stronger
}

// rankPrimaryLanguage picks the primary language.
//
// Manifests decide first: the shallowest, strongest manifests name the
// candidates. If they disagree, the candidate with the most source files
// wins. Without manifests the whole histogram is used. Any remaining tie
// yields LanguageUnknown.
func rankPrimaryLanguage(candidates []manifestCandidate, counts map[string]int, hasTSConfig bool) string {
	var names []string
	if len(candidates) > 0 {
		best := candidates[0]
		for _, c := range candidates[1:] {
			if c.Depth < best.Depth || (c.Depth == best.Depth && c.Tier < best.Tier) {
				best = c
			}
		}
		seen := make(map[string]bool)
		for _, c := range candidates {
			if c.Depth == best.Depth && c.Tier == best.Tier && !seen[c.Language] {
				seen[c.Language] = true
				names = append(names, c.Language)
			}
		}
	} else {
		for name := range counts {
			if !markupLanguages[name] {
				names = append(names, name)
			}
		}
	}
	if len(names) == 0 {
		return LanguageUnknown
	}
	sort.Strings(names)

	chosen := names[0]
	if len(names) > 1 {
		chosen = LanguageUnknown
		bestCount := -1
		for _, name := range names {
			n := sourceCount(name, counts)
			switch {
			case n > bestCount:
				bestCount, chosen = n, name
			case n == bestCount:
				chosen = LanguageUnknown
			}
		}
		if chosen == LanguageUnknown || bestCount == 0 {
			return LanguageUnknown
		}
	}

	if chosen == "JavaScript" && (hasTSConfig || counts["TypeScript"] > counts["JavaScript"]) {
		return "TypeScript"
	}
	return chosen
}

// sourceCount returns the number of source files counted toward a language.
// The JavaScript ecosystem includes TypeScript sources.
func sourceCount(lang string, counts map[string]int) int {
	if lang == "JavaScript" {
		return counts["JavaScript"] + counts["TypeScript"]
	}
	return counts[lang]
}
