package assemble

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var markdown = goldmark.New()

// NormalizeSection trims text, removes a code fence wrapped around the
// whole answer and makes sure it opens with "## <name>".
func NormalizeSection(name, body string) string {
	body = stripFence(strings.TrimSpace(body))
	if body == "" {
		return "## " + name
	}
	return ensureHeading(name, body)
}

// NormalizeDocument trims a whole document returned by the model, removes
// an outer code fence and ends it with a single newline.
func NormalizeDocument(body string) string {
	body = stripFence(strings.TrimSpace(body))
	if body == "" {
		return ""
	}
	return body + "\n"
}

// stripFence removes one outer ``` fence, with or without an info string.
func stripFence(s string) string {
	if !strings.HasPrefix(s, "```") || !strings.HasSuffix(s, "```") || len(s) < 6 {
		return s
	}
	nl := strings.IndexByte(s, '\n')
	if nl < 0 {
		return s
	}
	info := strings.TrimSpace(s[3:nl])
	if info != "" && info != "markdown" && info != "md" {
		return s
	}
	inner := s[nl+1 : len(s)-3]
	return strings.TrimSpace(inner)
}

// ensureHeading checks the first block of body. A level-2 heading is kept
// as is. A heading of another level that names the section is rewritten to
// level 2. Anything else gets the heading prepended.
func ensureHeading(name, body string) string {
	src := []byte(body)
	doc := markdown.Parser().Parse(text.NewReader(src))

	first, ok := doc.FirstChild().(*ast.Heading)
	if !ok {
		return "## " + name + "\n\n" + body
	}
	if first.Level == 2 {
		return body
	}
	if !strings.EqualFold(headingText(first, src), name) {
		return "## " + name + "\n\n" + body
	}

	lines := first.Lines()
	if lines.Len() == 0 {
		return "## " + name + "\n\n" + body
	}
	end := lines.At(lines.Len() - 1).Stop
	if nl := strings.IndexByte(body[end:], '\n'); nl >= 0 {
		end += nl + 1
	} else {
		end = len(body)
	}
	rest := body[end:]
	if underline := firstLine(rest); underline != "" && strings.Trim(underline, "=- ") == "" {
		rest = strings.TrimPrefix(rest[len(underline):], "\n")
	}
	rest = strings.TrimLeft(rest, "\n")
	if rest == "" {
		return "## " + name
	}
	return "## " + name + "\n\n" + rest
}

func headingText(h *ast.Heading, src []byte) string {
	var b strings.Builder
	lines := h.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(src))
	}
	return strings.TrimSpace(b.String())
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
