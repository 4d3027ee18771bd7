package section

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"github.com/ai-readme/ai-readme/internal/core/project"
)

// Spec is one planned section. The ordered slice of Specs returned by Plan
// is fixed before generation starts.
type Spec struct {
	ID       ID
	Name     string
	Order    int // position in the plan, starting at 0
	Required bool
}

// Definition returns the registry entry for s.
func (s Spec) Definition() Definition {
	d, _ := Lookup(s.ID)
	return d
}

// aliases maps alternative spellings to registered sections.
var aliases = map[string]ID{
	"introduction": Overview,
	"intro":        Overview,
	"toc":          TableOfContents,
	"contents":     TableOfContents,
	"api":          APIReference,
	"structure":    ProjectStructure,
	"tests":        Testing,
	"setup":        Installation,
}

// normalizeKey folds case and maps spaces and underscores to hyphens, so
// "Tech Stack", "tech_stack" and "TECH-STACK" compare equal.
func normalizeKey(s string) string {
	s = cases.Fold().String(strings.TrimSpace(s))
	s = strings.Join(strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '_' || r == '-'
	}), "-")
	return s
}

// byKey indexes registry entries by their normalized ID and Name.
var byKey = func() map[string]ID {
	m := make(map[string]ID, 2*len(registry)+len(aliases))
	for alias, id := range aliases {
		m[alias] = id
	}
	for _, d := range registry {
		m[normalizeKey(string(d.ID))] = d.ID
		m[normalizeKey(d.Name)] = d.ID
	}
	return m
}()

// Resolve maps a user-supplied section name or ID to its ID.
func Resolve(name string) (ID, error) {
	if id, ok := byKey[normalizeKey(name)]; ok {
		return id, nil
	}
	return "", fmt.Errorf("%w: %q (run \"ai-readme sections\" to list them)", ErrUnknownSection, name)
}

// Plan decides which sections to generate and in what order.
//
// An empty selection yields the default sections in canonical order,
// filtered by facts. A non-empty selection yields exactly the selected
// sections, deduplicated, in canonical order and all marked required.
// Plan performs no I/O and never consults the model.
func Plan(selection []string, facts *project.Facts) ([]Spec, error) {
	if len(selection) == 0 {
		return defaultPlan(facts), nil
	}

	seen := make(map[ID]bool, len(selection))
	ids := make([]ID, 0, len(selection))
	for _, name := range selection {
		id, err := Resolve(name)
		if err != nil {
			return nil, err
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	sort.SliceStable(ids, func(i, j int) bool {
		return canonicalIndex(ids[i]) < canonicalIndex(ids[j])
	})

	plan := make([]Spec, len(ids))
	for i, id := range ids {
		d, _ := Lookup(id)
		plan[i] = Spec{ID: id, Name: d.Name, Order: i, Required: true}
	}
	return plan, nil
}

func defaultPlan(facts *project.Facts) []Spec {
	var plan []Spec
	for _, d := range registry {
		if !d.Default {
			continue
		}
		if d.Include != nil && !d.Include(facts) {
			continue
		}
		plan = append(plan, Spec{ID: d.ID, Name: d.Name, Order: len(plan), Required: d.Required})
	}
	return plan
}

// Names returns the display names of a plan in order.
func Names(plan []Spec) []string {
	names := make([]string, len(plan))
	for i, s := range plan {
		names[i] = s.Name
	}
	return names
}

// DefaultIDs returns the IDs of every default section in canonical order,
// ignoring fact filters. Interactive selection offers these.
func DefaultIDs() []ID {
	var ids []ID
	for _, d := range registry {
		if d.Default {
			ids = append(ids, d.ID)
		}
	}
	return ids
}
