// Package htmlsanitize cleans free-text form input before it is sent to the
// school API or echoed back into a page.
package htmlsanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// PlainText strips every tag from s, collapses the result to a single
// trimmed line, and returns it unescaped.
func PlainText(s string) string {
	if s == "" {
		return ""
	}
	cleaned := html.UnescapeString(strict.Sanitize(s))
	return strings.Join(strings.Fields(cleaned), " ")
}

// PlainTextMultiline is PlainText for fields such as addresses where line
// breaks are kept. Each line is trimmed and blank lines are dropped.
func PlainTextMultiline(s string) string {
	if s == "" {
		return ""
	}
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	out := lines[:0]
	for _, ln := range lines {
		if c := PlainText(ln); c != "" {
			out = append(out, c)
		}
	}
	return strings.Join(out, "\n")
}
