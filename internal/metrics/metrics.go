// Package metrics derives word counts and reading-time estimates from
// markdown content. Both functions are pure and safe for concurrent use.
package metrics

import (
	"strings"
	"unicode"
)

// wordsPerMinute is the average adult silent-reading speed used for
// estimates.
const wordsPerMinute = 200

// WordCount splits content on whitespace runs and counts the tokens that
// carry at least one letter or digit. Markdown punctuation-only tokens such
// as "**", "-" or "#" are not words. Returns 0 for empty input.
func WordCount(content string) int {
	count := 0
	for _, token := range strings.Fields(content) {
		if strings.ContainsFunc(token, isWordRune) {
			count++
		}
	}
	return count
}

// ReadingTime estimates the reading time in whole minutes, rounding up and
// never returning less than 1. Empty input degrades to the minimum valid
// value rather than 0 so UIs never display a zero-minute read.
func ReadingTime(content string) int {
	words := WordCount(content)
	if words == 0 {
		return 1
	}
	estimate := (words + wordsPerMinute - 1) / wordsPerMinute
	if estimate < 1 {
		return 1
	}
	return estimate
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
