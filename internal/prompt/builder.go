// Package prompt turns a planned section and the project facts into the
// text sent to the language model.
package prompt

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/ai-readme/ai-readme/internal/core/project"
	"github.com/ai-readme/ai-readme/internal/section"
)

// Defaults for the prior-sections window and fact rendering.
const (
	DefaultMaxPriorSections = 3
	DefaultMaxPriorChars    = 6000
	DefaultMaxDependencies  = 40
)

// Prior is a previously generated section offered for consistency.
type Prior struct {
	Name string
	Text string
}

// Options configures a Builder.
type Options struct {
	// MaxPriorSections caps how many prior sections are included.
	MaxPriorSections int

	// MaxPriorChars caps the combined size of included prior text.
	MaxPriorChars int

	// MaxDependencies caps the dependency list; the rest is summarized.
	MaxDependencies int

	// Plan lists the display names of every planned section, in order.
	// Sections that list the document (Table of Contents) use it.
	Plan []string
}

// Builder renders prompts. It is deterministic and performs no I/O.
type Builder struct {
	opts Options
}

// NewBuilder creates a Builder. Zero option values take the defaults.
func NewBuilder(opts Options) *Builder {
	if opts.MaxPriorSections <= 0 {
		opts.MaxPriorSections = DefaultMaxPriorSections
	}
	if opts.MaxPriorChars <= 0 {
		opts.MaxPriorChars = DefaultMaxPriorChars
	}
	if opts.MaxDependencies <= 0 {
		opts.MaxDependencies = DefaultMaxDependencies
	}
	opts.Plan = slices.Clone(opts.Plan)
	return &Builder{opts: opts}
}

// Build returns the prompt for one section.
func (b *Builder) Build(spec section.Spec, facts *project.Facts, prior []Prior) string {
	def := spec.Definition()
	if facts == nil {
		facts = &project.Facts{}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "You are a senior technical writer producing the README of the project %q.\n", projectName(facts))
	fmt.Fprintf(&sb, "Write ONLY the %q section, in Markdown, starting with the heading \"## %s\".\n", spec.Name, spec.Name)
	if def.Description != "" {
		fmt.Fprintf(&sb, "Section purpose: %s.\n", def.Description)
	}

	sb.WriteString("\nProject facts:\n")
	b.writeFacts(&sb, def.Facts, spec, facts)

	if window := b.Window(prior); len(window) > 0 {
		sb.WriteString("\nPreviously written sections, for consistency. Do not repeat their content:\n")
		for _, p := range window {
			fmt.Fprintf(&sb, "\n<<< %s >>>\n%s\n", p.Name, p.Text)
		}
	}

	if len(def.Instructions) > 0 {
		sb.WriteString("\nThis section should:\n")
		writeBullets(&sb, def.Instructions)
	}

	sb.WriteString("\nWriting guidelines:\n")
	writeBullets(&sb, commonGuidelines)

	fmt.Fprintf(&sb, "\nRespond with only the section content, beginning with \"## %s\". Do not wrap the answer in a code fence.\n", spec.Name)
	return sb.String()
}

// Window selects the prior sections to include: the most recent ones, up
// to MaxPriorSections and MaxPriorChars in total. Older text is dropped
// first; a single newest section over the cap keeps only its tail.
// The result is in chronological order.
func (b *Builder) Window(prior []Prior) []Prior {
	if len(prior) == 0 {
		return nil
	}
	start := max(0, len(prior)-b.opts.MaxPriorSections)
	recent := prior[start:]

	budget := b.opts.MaxPriorChars
	var picked []Prior
	for i := len(recent) - 1; i >= 0; i-- {
		p := recent[i]
		if len(p.Text) <= budget {
			picked = append(picked, p)
			budget -= len(p.Text)
			continue
		}
		if len(picked) == 0 {
			picked = append(picked, Prior{Name: p.Name, Text: tailUTF8(p.Text, budget)})
		}
		break
	}
	slices.Reverse(picked)
	return picked
}

func (b *Builder) writeFacts(sb *strings.Builder, set section.FactSet, spec section.Spec, f *project.Facts) {
	if set.Has(section.FactIdentity) {
		fmt.Fprintf(sb, "- Name: %s\n", projectName(f))
		fmt.Fprintf(sb, "- Description: %s\n", orDefault(f.Description, "No description provided"))
		if len(f.Keywords) > 0 {
			fmt.Fprintf(sb, "- Keywords: %s\n", strings.Join(f.Keywords, ", "))
		}
	}
	if set.Has(section.FactLanguage) {
		fmt.Fprintf(sb, "- Primary language: %s\n", orDefault(f.PrimaryLanguage, project.LanguageUnknown))
		if len(f.Languages) > 1 {
			parts := make([]string, 0, len(f.Languages))
			for _, l := range f.Languages {
				parts = append(parts, fmt.Sprintf("%s (%d files)", l.Name, l.FileCount))
			}
			fmt.Fprintf(sb, "- Languages: %s\n", strings.Join(parts, ", "))
		}
	}
	if set.Has(section.FactFrameworks) {
		fmt.Fprintf(sb, "- Frameworks: %s\n", orDefault(strings.Join(f.Frameworks, ", "), "none detected"))
	}
	if set.Has(section.FactRepository) {
		if f.CloneURL != "" {
			fmt.Fprintf(sb, "- Clone URL: %s\n", f.CloneURL)
		}
		if f.Homepage != "" {
			fmt.Fprintf(sb, "- Homepage: %s\n", f.Homepage)
		}
	}
	if set.Has(section.FactManifests) {
		fmt.Fprintf(sb, "- Manifest files: %s\n", orDefault(strings.Join(f.ManifestFiles, ", "), "none found"))
	}
	if set.Has(section.FactDependencies) {
		b.writeDependencies(sb, f.Dependencies)
	}
	if set.Has(section.FactLicense) {
		fmt.Fprintf(sb, "- License type: %s\n", orDefault(f.License, "not specified"))
		if f.LicenseFile != "" {
			fmt.Fprintf(sb, "- License file: %s (exists in the repository)\n", f.LicenseFile)
		} else {
			sb.WriteString("- No license file exists in the repository root\n")
		}
	}
	if set.Has(section.FactTests) {
		fmt.Fprintf(sb, "- Test files found: %d\n", f.TestFiles)
	}
	if set.Has(section.FactPlan) {
		var others []string
		for _, name := range b.opts.Plan {
			if name != spec.Name {
				others = append(others, name)
			}
		}
		if len(others) > 0 {
			sb.WriteString("- Sections in this README, in order:\n")
			for _, name := range others {
				fmt.Fprintf(sb, "  - %s\n", name)
			}
		}
	}
	if set.Has(section.FactFileTree) && f.FileTree != "" {
		fmt.Fprintf(sb, "\nDirectory tree:\n```text\n%s\n```\n", f.FileTree)
	}
	if set.Has(section.FactCodeSamples) && len(f.CodeSamples) > 0 {
		sb.WriteString("\nCode samples for reference:\n")
		for _, s := range f.CodeSamples {
			fmt.Fprintf(sb, "\nFile: %s\n```\n%s\n```\n", s.Path, strings.TrimRight(s.Content, "\n"))
		}
	}
}

func (b *Builder) writeDependencies(sb *strings.Builder, deps []project.Dependency) {
	if len(deps) == 0 {
		sb.WriteString("- Dependencies: none declared\n")
		return
	}
	fmt.Fprintf(sb, "- Dependencies (%d):\n", len(deps))
	for i, d := range deps {
		if i == b.opts.MaxDependencies {
			fmt.Fprintf(sb, "  - ... and %d more\n", len(deps)-i)
			break
		}
		kind := ""
		if d.Dev {
			kind = ", dev"
		}
		fmt.Fprintf(sb, "  - %s %s (%s%s)\n", d.Name, d.VersionOrUnknown(), d.Manifest, kind)
	}
}

// commonGuidelines are appended to every section prompt.
var commonGuidelines = []string{
	"Write with authority in active voice; use the imperative mood for instructions",
	"Never use first person; address the reader as you or refer to the project",
	"Be specific: give exact commands, versions and values taken from the facts above",
	"Do not invent facts, URLs or files that the facts above do not support",
	"Keep paragraphs to two to four sentences and use lists for steps",
	"Put every command, code snippet and configuration in a fenced code block",
	"Avoid filler, marketing language and vague phrases such as \"recent version\"",
}

func writeBullets(sb *strings.Builder, items []string) {
	for _, it := range items {
		fmt.Fprintf(sb, "- %s\n", it)
	}
}

func projectName(f *project.Facts) string {
	return orDefault(f.Name, "this project")
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

// tailUTF8 returns at most the last n bytes of s without splitting a rune.
func tailUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	i := len(s) - n
	for i < len(s) && !utf8.RuneStart(s[i]) {
		i++
	}
	return s[i:]
}
