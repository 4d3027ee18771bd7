package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Styles renders status lines, cards and tables for a Theme.
type Styles struct {
	theme   *Theme
	primary lipgloss.Style
	success lipgloss.Style
	warn    lipgloss.Style
	err     lipgloss.Style
	muted   lipgloss.Style
	border  lipgloss.Style
}

// NewStyles creates Styles for theme. A NoColor theme renders plain text.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = NewTheme(false)
	}
	s := &Styles{theme: theme}
	if theme.NoColor {
		plain := lipgloss.NewStyle()
		s.primary, s.success, s.warn, s.err, s.muted, s.border = plain, plain, plain, plain, plain, plain
		return s
	}
	s.primary = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#C45A3C", Dark: theme.Colors.Primary})
	s.success = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#059669", Dark: theme.Colors.Success})
	s.warn = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D97706", Dark: theme.Colors.Warning})
	s.err = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#DC2626", Dark: theme.Colors.Error})
	s.muted = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#6B7280", Dark: theme.Colors.Muted})
	s.border = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: theme.Colors.Border})
	return s
}

// Success renders a check-marked line.
func (s *Styles) Success(msg string) string { return s.success.Render("✓") + " " + msg }

// Warn renders a warning line.
func (s *Styles) Warn(msg string) string { return s.warn.Render("!") + " " + msg }

// Error renders a failure line.
func (s *Styles) Error(msg string) string { return s.err.Render("✗") + " " + msg }

// Muted renders secondary text.
func (s *Styles) Muted(msg string) string { return s.muted.Render(msg) }

// Title renders a bold heading.
func (s *Styles) Title(msg string) string { return s.primary.Bold(true).Render(msg) }

// Card renders title and detail lines inside a rounded border. kind picks
// the title marker: "success", "warn", "error" or anything else for info.
func (s *Styles) Card(kind, title string, details ...string) string {
	var head string
	switch kind {
	case "success":
		head = s.Success(title)
	case "warn":
		head = s.Warn(title)
	case "error":
		head = s.Error(title)
	default:
		head = s.Title(title)
	}

	var body strings.Builder
	body.WriteString(head)
	if len(details) > 0 {
		body.WriteString("\n\n")
		body.WriteString(strings.Join(details, "\n"))
	}

	card := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 2)
	if !s.theme.NoColor {
		card = card.BorderForeground(s.border.GetForeground())
	}
	return card.Render(body.String())
}

// Table renders rows under headers with a rounded border.
func (s *Styles) Table(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(headers...).
		Rows(rows...)
	if !s.theme.NoColor {
		header := s.primary.Bold(true).Padding(0, 1)
		cell := lipgloss.NewStyle().Padding(0, 1)
		t = t.BorderStyle(s.border).StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
	} else {
		cell := lipgloss.NewStyle().Padding(0, 1)
		t = t.StyleFunc(func(int, int) lipgloss.Style { return cell })
	}
	return t.Render()
}
