package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// MarkdownRenderer renders markdown for the terminal. It falls back to
// the raw text when styling is unavailable.
type MarkdownRenderer struct {
	r *glamour.TermRenderer
}

// NewMarkdownRenderer creates a renderer wrapping at width columns. With a
// NoColor theme it returns a plain-text renderer.
func NewMarkdownRenderer(theme *Theme, width int) *MarkdownRenderer {
	if width <= 0 {
		width = 100
	}
	if theme != nil && theme.NoColor {
		return &MarkdownRenderer{}
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return &MarkdownRenderer{}
	}
	return &MarkdownRenderer{r: r}
}

// Render converts markdown text to terminal-formatted output.
func (m *MarkdownRenderer) Render(text string) string {
	if m == nil || m.r == nil {
		return text
	}
	out, err := m.r.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n")
}
