package prompt

import (
	"fmt"
	"strings"
)

// BuildRefine returns the prompt that revises an existing README according
// to user feedback.
func BuildRefine(content, feedback string) string {
	var sb strings.Builder
	sb.WriteString("You are a senior technical writer improving README documentation.\n\n")
	sb.WriteString("Revise the README below according to the feedback. Keep correct Markdown,\n")
	sb.WriteString("keep every fact that the feedback does not ask to change, and keep the\n")
	sb.WriteString("existing section structure unless the feedback asks otherwise.\n\n")
	fmt.Fprintf(&sb, "README:\n````markdown\n%s\n````\n\n", strings.TrimSpace(content))
	fmt.Fprintf(&sb, "Feedback:\n%s\n\n", strings.TrimSpace(feedback))
	sb.WriteString("Respond with only the complete revised README in Markdown, without commentary\n")
	sb.WriteString("and without wrapping it in a code fence.\n")
	return sb.String()
}
