package assemble

import (
	"net/url"
	"strings"

	"github.com/ai-readme/ai-readme/internal/core/project"
)

const shieldsBase = "https://img.shields.io/badge/"

// Badges builds the license and language shields for the header from
// facts alone. It returns "" when neither is known.
func Badges(facts *project.Facts) string {
	if facts == nil {
		return ""
	}
	var out []string
	if l := strings.TrimSpace(facts.License); l != "" {
		out = append(out, "![License]("+shieldsBase+"license-"+shieldEscape(l)+"-blue.svg)")
	}
	if l := strings.TrimSpace(facts.PrimaryLanguage); l != "" {
		out = append(out, "![Language]("+shieldsBase+"language-"+shieldEscape(l)+"-informational.svg)")
	}
	return strings.Join(out, " ")
}

// shieldEscape doubles the dash and underscore separators shields.io
// treats specially, then path-escapes the rest.
func shieldEscape(s string) string {
	s = strings.ReplaceAll(s, "-", "--")
	s = strings.ReplaceAll(s, "_", "__")
	return url.PathEscape(s)
}
