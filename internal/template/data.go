package template

import (
	"strings"
	"unicode"
)

// Section is one generated section handed to the template.
type Section struct {
	ID   string
	Name string
	Text string
}

// Data is everything a template can reference.
type Data struct {
	ProjectName string
	Description string
	Badges      string    // shields.io image links, one line
	Sections    []Section // plan order
	Notice      string
}

// Body joins every section's text in order, separated by blank lines.
func (d Data) Body() string {
	parts := make([]string, 0, len(d.Sections))
	for _, s := range d.Sections {
		if t := strings.TrimSpace(s.Text); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, "\n\n")
}

// Values flattens d into the map custom templates execute against. Each
// section is reachable by its display name ("Tech Stack"), its ID
// ("tech-stack") and an identifier form ("TechStack") usable as
// {{.TechStack}}. Keys that are absent render as empty strings.
func (d Data) Values() map[string]string {
	v := map[string]string{
		"ProjectName": d.ProjectName,
		"Description": d.Description,
		"Badges":      d.Badges,
		"Notice":      d.Notice,
		"Body":        d.Body(),
	}
	for _, s := range d.Sections {
		v[s.Name] = s.Text
		if s.ID != "" {
			v[s.ID] = s.Text
		}
		if key := identifier(s.Name); key != "" {
			if _, taken := v[key]; !taken {
				v[key] = s.Text
			}
		}
	}
	return v
}

// identifier strips everything but letters and digits from name.
func identifier(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
