package section

import (
	"github.com/ai-readme/ai-readme/internal/core/project"
)

// ID identifies a registered section.
type ID string

// Registered sections, listed in canonical document order.
const (
	Overview         ID = "overview"
	TableOfContents  ID = "table-of-contents"
	Features         ID = "features"
	TechStack        ID = "tech-stack"
	Prerequisites    ID = "prerequisites"
	Installation     ID = "installation"
	Usage            ID = "usage"
	Configuration    ID = "configuration"
	Dependencies     ID = "dependencies"
	APIReference     ID = "api-reference"
	ProjectStructure ID = "project-structure"
	Testing          ID = "testing"
	Deployment       ID = "deployment"
	Contributing     ID = "contributing"
	License          ID = "license"
)

// FactSet selects the subset of project facts a section's prompt receives.
type FactSet uint16

const (
	FactIdentity     FactSet = 1 << iota // name, description, keywords
	FactLanguage                         // primary language and language histogram
	FactFrameworks                       // detected frameworks
	FactDependencies                     // dependency list
	FactManifests                        // manifest file paths
	FactRepository                       // clone URL and homepage
	FactLicense                          // license type and file
	FactCodeSamples                      // leading part of key files
	FactFileTree                         // directory tree
	FactTests                            // test file count
	FactPlan                             // names of the other planned sections
)

// Has reports whether fs includes f.
func (fs FactSet) Has(f FactSet) bool {
	return fs&f != 0
}

// Definition is one entry of the section registry.
type Definition struct {
	ID           ID
	Name         string
	Description  string
	Instructions []string
	Facts        FactSet

	// Default marks sections planned when the user selects nothing.
	Default bool

	// Required marks sections whose failure fails the run.
	Required bool

	// Include filters a default section by the analyzed facts. Nil means
	// always include. It is never consulted for explicit selections.
	Include func(*project.Facts) bool
}

// registry holds every section in canonical order.
var registry = []Definition{
	{
		ID:          Overview,
		Name:        "Overview",
		Description: "What the project does, the problem it solves, and its key benefits",
		Instructions: []string{
			"Open with one clear sentence stating what the project does",
			"Name the specific problem or use case it addresses",
			"Highlight two or three concrete benefits",
			"Keep it to at most three short paragraphs",
		},
		Facts:    FactIdentity | FactLanguage | FactFrameworks | FactRepository,
		Default:  true,
		Required: true,
	},
	{
		ID:          TableOfContents,
		Name:        "Table of Contents",
		Description: "Links to every section that follows",
		Instructions: []string{
			"Write a bulleted list of markdown links to every section listed below, in that order",
			"Use GitHub anchors: lowercase, spaces replaced with hyphens",
			"Do not link the Table of Contents itself",
		},
		Facts: FactIdentity | FactPlan,
	},
	{
		ID:          Features,
		Name:        "Features",
		Description: "The project's key user-facing capabilities",
		Instructions: []string{
			"Use one concise bullet per feature",
			"Describe what users can accomplish, not implementation details",
			"Avoid vague adjectives such as powerful or flexible",
		},
		Facts:   FactIdentity | FactLanguage | FactFrameworks | FactCodeSamples,
		Default: true,
	},
	{
		ID:          TechStack,
		Name:        "Tech Stack",
		Description: "Languages, frameworks and major libraries used",
		Instructions: []string{
			"Group technologies by category such as Backend, Frontend, Tooling or Testing",
			"List five to ten major technologies with versions when the manifests pin them",
			"Never leave the section empty",
		},
		Facts: FactLanguage | FactFrameworks | FactDependencies | FactManifests,
	},
	{
		ID:          Prerequisites,
		Name:        "Prerequisites",
		Description: "Software and accounts needed before installation",
		Instructions: []string{
			"List required software with minimum versions",
			"Mention accounts or API keys the project needs",
			"Separate required from optional prerequisites",
		},
		Facts: FactLanguage | FactFrameworks | FactManifests,
	},
	{
		ID:          Installation,
		Name:        "Installation",
		Description: "Step-by-step local setup",
		Instructions: []string{
			"Give numbered steps in order, one code block per step",
			"Start with the git clone command using the clone URL when known",
			"Show the package installation command for the detected ecosystem",
			"Stop once installation is complete; running the project belongs in Usage",
		},
		Facts:    FactIdentity | FactLanguage | FactManifests | FactRepository,
		Default:  true,
		Required: true,
	},
	{
		ID:          Usage,
		Name:        "Usage",
		Description: "How to run and use the project, with examples",
		Instructions: []string{
			"Start with how to run the project",
			"Show the simplest working example, then two or three common use cases",
			"Use real, runnable code with syntax highlighting",
			"Do not repeat installation steps",
		},
		Facts:    FactIdentity | FactLanguage | FactFrameworks | FactCodeSamples,
		Default:  true,
		Required: true,
	},
	{
		ID:          Configuration,
		Name:        "Configuration",
		Description: "Environment variables, configuration files and options",
		Instructions: []string{
			"Document options in a table with name, type, default and description",
			"Show an example configuration file or environment setup",
			"Mark required and optional settings explicitly",
		},
		Facts:   FactLanguage | FactFrameworks | FactCodeSamples | FactManifests,
		Default: true,
	},
	{
		ID:          Dependencies,
		Name:        "Dependencies",
		Description: "Declared runtime and development dependencies",
		Instructions: []string{
			"Summarize the declared dependencies, grouped by purpose",
			"Distinguish runtime from development dependencies",
			"Include versions exactly as declared",
		},
		Facts:   FactDependencies | FactManifests,
		Default: true,
		Include: (*project.Facts).HasDependencies,
	},
	{
		ID:          APIReference,
		Name:        "API Reference",
		Description: "Key endpoints, functions or types",
		Instructions: []string{
			"Document each item with signature, parameters, return value and an example",
			"Include HTTP methods and routes for web APIs",
		},
		Facts: FactLanguage | FactFrameworks | FactCodeSamples,
	},
	{
		ID:          ProjectStructure,
		Name:        "Project Structure",
		Description: "Layout of the main directories and files",
		Instructions: []string{
			"Show the directory tree in a code block",
			"Add a short description for each important directory",
		},
		Facts: FactFileTree | FactManifests,
	},
	{
		ID:          Testing,
		Name:        "Testing",
		Description: "How to run the test suite",
		Instructions: []string{
			"Give the commands that run the tests for the detected ecosystem",
			"Name the test frameworks in use",
			"Show how to run a single suite and how to collect coverage when available",
		},
		Facts: FactLanguage | FactDependencies | FactTests,
	},
	{
		ID:          Deployment,
		Name:        "Deployment",
		Description: "Building and deploying to production",
		Instructions: []string{
			"Give deployment steps in order, including build commands",
			"Name target platforms when the project makes them evident",
		},
		Facts: FactLanguage | FactFrameworks | FactFileTree,
	},
	{
		ID:          Contributing,
		Name:        "Contributing",
		Description: "How to report issues and submit changes",
		Instructions: []string{
			"Explain how to report issues and open pull requests",
			"Outline development setup and coding conventions briefly",
		},
		Facts:   FactIdentity | FactRepository | FactTests,
		Default: true,
	},
	{
		ID:          License,
		Name:        "License",
		Description: "Licensing terms",
		Instructions: []string{
			"State the license type first",
			"Link the license file only if it exists",
			"Summarize key permissions without legal interpretation",
		},
		Facts:   FactLicense,
		Default: true,
	},
}

// byID indexes registry by ID.
var byID = func() map[ID]int {
	m := make(map[ID]int, len(registry))
	for i, d := range registry {
		m[d.ID] = i
	}
	return m
}()

// All returns every registered section in canonical order.
func All() []Definition {
	out := make([]Definition, len(registry))
	copy(out, registry)
	return out
}

// Lookup returns the definition for id.
func Lookup(id ID) (Definition, bool) {
	i, ok := byID[id]
	if !ok {
		return Definition{}, false
	}
	return registry[i], true
}

// canonicalIndex returns the position of id in the registry.
func canonicalIndex(id ID) int {
	if i, ok := byID[id]; ok {
		return i
	}
	return len(registry)
}
