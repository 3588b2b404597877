// Package plaintext projects markdown onto the human-readable words it
// contains, for search indexing and snippet generation.
package plaintext

import (
	"regexp"
	"strings"
)

// The substitutions run once each, in declaration order. Link and image
// syntax must be rewritten before stray brackets are dropped so visible
// labels survive the bracket cleanup.
var substitutions = []struct {
	pattern *regexp.Regexp
	repl    string
}{
	{regexp.MustCompile("(?m)^```.*$"), ""},                 // fence delimiters
	{regexp.MustCompile(`!\[([^\]]*)\]\(([^)]*)\)`), "$1"},  // images keep alt text
	{regexp.MustCompile(`\[([^\]]*)\]\(([^)]*)\)`), "$1"},   // links keep labels
	{regexp.MustCompile(`(?m)^#{1,6}\s+`), ""},              // heading markers
	{regexp.MustCompile(`\*\*([^*]+)\*\*`), "$1"},           // bold
	{regexp.MustCompile(`__([^_]+)__`), "$1"},               // bold (underscore)
	{regexp.MustCompile(`\*([^*]+)\*`), "$1"},               // italic
	{regexp.MustCompile("`([^`]*)`"), "$1"},                 // inline code
	{regexp.MustCompile(`(?m)^>\s?`), ""},                   // blockquote markers
	{regexp.MustCompile(`(?m)^\s*[-*+]\s+`), ""},            // unordered list markers
	{regexp.MustCompile(`(?m)^\s*\d+\.\s+`), ""},            // ordered list markers
	{regexp.MustCompile(`(?m)^\s*\|?[\s:|-]+\|[\s:|-]*$`), ""}, // table separator rows
	{regexp.MustCompile(`\|`), " "},                         // table pipes
	{regexp.MustCompile(`[\[\]]`), ""},                      // stray brackets
	{regexp.MustCompile(`[ \t]{2,}`), " "},                  // collapse runs
}

// Extract strips markdown syntax and returns the plain-text projection of
// the content. Returns "" for empty input. A single well-ordered pass over
// the substitution table removes every construct without reintroducing
// artifacts.
func Extract(content string) string {
	if strings.TrimSpace(content) == "" {
		return ""
	}

	out := content
	for _, sub := range substitutions {
		out = sub.pattern.ReplaceAllString(out, sub.repl)
	}
	return strings.TrimSpace(out)
}
