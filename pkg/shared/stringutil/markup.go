package stringutil

import (
	"html"
	"regexp"
	"strings"
)

var (
	htmlTagRE    = regexp.MustCompile(`<[^>]*>`)
	whitespaceRE = regexp.MustCompile(`\s+`)
)

// StripHTML removes inline HTML tags such as the <strong> highlights search
// APIs put in snippets, decodes entities and collapses whitespace.
func StripHTML(text string) string {
	if !strings.ContainsAny(text, "<&") {
		return strings.TrimSpace(text)
	}
	text = htmlTagRE.ReplaceAllString(text, "")
	text = html.UnescapeString(text)
	text = whitespaceRE.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
