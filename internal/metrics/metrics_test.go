package metrics

import (
	"strings"
	"testing"
)

func TestWordCountSkipsMarkdownPunctuation(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    int
	}{
		{"empty", "", 0},
		{"whitespace", "   \n\t", 0},
		{"heading marker not counted", "# Hello World\n\nThis is a **test** document.", 7},
		{"plain sentence", "# Hello World\n\nThis is a test document with multiple words.", 10},
		{"punctuation only tokens", "** * ` - --- #", 0},
		{"numbers count", "version 2 of 3", 4},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := WordCount(tc.content); got != tc.want {
				t.Fatalf("WordCount(%q) = %d, want %d", tc.content, got, tc.want)
			}
		})
	}
}

func TestReadingTimeRoundsUpWithFloorOfOne(t *testing.T) {
	if got := ReadingTime(""); got != 1 {
		t.Fatalf("expected empty content to degrade to 1 minute, got %d", got)
	}
	if got := ReadingTime("a few words"); got != 1 {
		t.Fatalf("expected short content to read in 1 minute, got %d", got)
	}

	twoHundred := strings.Repeat("word ", 200)
	if got := ReadingTime(twoHundred); got != 1 {
		t.Fatalf("expected 200 words to read in 1 minute, got %d", got)
	}

	sixHundred := strings.Repeat("word ", 600)
	if got := ReadingTime(sixHundred); got != 3 {
		t.Fatalf("expected 600 words to read in 3 minutes, got %d", got)
	}

	if got := ReadingTime(strings.Repeat("word ", 201)); got != 2 {
		t.Fatalf("expected 201 words to round up to 2 minutes, got %d", got)
	}
}
