package validator

import (
	"fmt"
	"strings"
	"testing"

	"github.com/goliatone/go-markdown/pkg/interfaces"
	"github.com/goliatone/go-markdown/policy"
)

func newTestValidator() *Validator {
	return New(nil, nil)
}

func hasCode(findings []interfaces.Finding, code string) bool {
	for _, f := range findings {
		if f.Code == code {
			return true
		}
	}
	return false
}

func TestValidateEmptyContent(t *testing.T) {
	v := newTestValidator()

	for _, content := range []string{"", "   \n\t "} {
		result := v.Validate(content, interfaces.ProcessingOptions{})

		if result.Valid {
			t.Fatalf("expected invalid result for %q", content)
		}
		if len(result.Errors) != 1 {
			t.Fatalf("expected exactly one error, got %d", len(result.Errors))
		}
		if result.Errors[0].Message != "Content must be a non-empty string" {
			t.Fatalf("unexpected message %q", result.Errors[0].Message)
		}
		if result.Warnings == nil || len(result.Warnings) != 0 {
			t.Fatalf("expected empty non-nil warnings, got %#v", result.Warnings)
		}
		if result.WordCount != 0 || result.ReadingTime != 1 {
			t.Fatalf("expected zero words and 1 minute, got %d/%d", result.WordCount, result.ReadingTime)
		}
	}
}

func TestValidateCleanContent(t *testing.T) {
	v := newTestValidator()

	result := v.Validate("# Hello World\n\nThis is a **test** document.", interfaces.ProcessingOptions{})

	if !result.Valid {
		t.Fatalf("expected valid result, errors: %v", result.ErrorMessages())
	}
	if len(result.Errors) != 0 {
		t.Fatalf("expected no errors, got %v", result.ErrorMessages())
	}
	if result.WordCount != 7 {
		t.Fatalf("expected 7 words, got %d", result.WordCount)
	}
	if result.ReadingTime != 1 {
		t.Fatalf("expected 1 minute, got %d", result.ReadingTime)
	}
}

func TestValidateScriptModeSplit(t *testing.T) {
	v := newTestValidator()
	content := `hello <script>alert("xss")</script> world`

	normal := v.Validate(content, interfaces.ProcessingOptions{})
	if !normal.Valid {
		t.Fatalf("expected script to degrade to a warning in normal mode, errors: %v", normal.ErrorMessages())
	}
	if !hasCode(normal.Warnings, interfaces.CodeSecurityError) {
		t.Fatalf("expected security warning, got %v", normal.WarningMessages())
	}
	if !strings.Contains(normal.Warnings[0].Message, "dangerous pattern") {
		t.Fatalf("unexpected warning message %q", normal.Warnings[0].Message)
	}

	strict := v.Validate(content, interfaces.ProcessingOptions{StrictMode: true})
	if strict.Valid {
		t.Fatalf("expected script to block in strict mode")
	}
	if !hasCode(strict.Errors, interfaces.CodeSecurityError) {
		t.Fatalf("expected security error, got %v", strict.ErrorMessages())
	}
}

func TestValidateDisallowedLinkProtocolBlocksInBothModes(t *testing.T) {
	v := newTestValidator()
	content := `[click](javascript:alert(1))`

	for _, strict := range []bool{false, true} {
		result := v.Validate(content, interfaces.ProcessingOptions{StrictMode: strict})
		if result.Valid {
			t.Fatalf("expected invalid result (strict=%v)", strict)
		}
		if !hasCode(result.Errors, interfaces.CodeInvalidLink) {
			t.Fatalf("expected invalid-link error (strict=%v), got %v", strict, result.ErrorMessages())
		}
		found := false
		for _, msg := range result.ErrorMessages() {
			if strings.Contains(msg, "disallowed protocol") {
				found = true
			}
		}
		if !found {
			t.Fatalf("expected protocol message (strict=%v), got %v", strict, result.ErrorMessages())
		}
	}
}

func TestValidateLinkCountCeiling(t *testing.T) {
	v := newTestValidator()

	var b strings.Builder
	for i := 0; i < 150; i++ {
		fmt.Fprintf(&b, "[link %d](https://example.com/%d) ", i, i)
	}

	result := v.Validate(b.String(), interfaces.ProcessingOptions{})

	if result.Valid {
		t.Fatalf("expected invalid result for 150 links")
	}
	if len(result.Errors) != 1 {
		t.Fatalf("expected a single ceiling error, got %v", result.ErrorMessages())
	}
	if !strings.Contains(result.Errors[0].Message, "maximum allowed number of links") {
		t.Fatalf("unexpected message %q", result.Errors[0].Message)
	}
}

func TestValidateContentLength(t *testing.T) {
	p := policy.Default()
	p.Limits.MaxContentLength = 100
	v := New(p, nil)

	result := v.Validate(strings.Repeat("a", 101), interfaces.ProcessingOptions{})
	if result.Valid || !hasCode(result.Errors, interfaces.CodeContentTooLarge) {
		t.Fatalf("expected content-too-large error, got %v", result.ErrorMessages())
	}
	if result.WordCount != 1 {
		t.Fatalf("expected metrics computed for oversized content, got %d words", result.WordCount)
	}
}

func TestValidateContentLengthCountsRunes(t *testing.T) {
	p := policy.Default()
	p.Limits.MaxContentLength = 100
	v := New(p, nil)

	// 100 runes but 200 bytes.
	within := v.Validate(strings.Repeat("é", 100), interfaces.ProcessingOptions{})
	if hasCode(within.Errors, interfaces.CodeContentTooLarge) {
		t.Fatalf("expected multi-byte content within the limit, got %v", within.ErrorMessages())
	}

	over := v.Validate(strings.Repeat("é", 101), interfaces.ProcessingOptions{})
	if !hasCode(over.Errors, interfaces.CodeContentTooLarge) {
		t.Fatalf("expected content-too-large error, got %v", over.ErrorMessages())
	}
}

func TestValidateImageProtocol(t *testing.T) {
	v := newTestValidator()

	result := v.Validate(`![pic](ftp://host/p.png)`, interfaces.ProcessingOptions{})
	if result.Valid || !hasCode(result.Errors, interfaces.CodeInvalidImage) {
		t.Fatalf("expected invalid-image error, got %v", result.ErrorMessages())
	}
}

func TestValidateLinkErrorsPrecedeImageErrors(t *testing.T) {
	v := newTestValidator()

	result := v.Validate("![pic](ftp://host/p.png) then [x](ftp://host/f)", interfaces.ProcessingOptions{})
	if len(result.Errors) != 2 {
		t.Fatalf("expected two errors, got %v", result.ErrorMessages())
	}
	if result.Errors[0].Code != interfaces.CodeInvalidLink || result.Errors[1].Code != interfaces.CodeInvalidImage {
		t.Fatalf("expected link error before image error, got %v", result.Errors)
	}
}

func TestValidateStructuralWarnings(t *testing.T) {
	v := newTestValidator()

	result := v.Validate("unbalanced [ bracket and ( paren", interfaces.ProcessingOptions{})
	if !result.Valid {
		t.Fatalf("expected structural findings to stay advisory, errors: %v", result.ErrorMessages())
	}
	if !hasCode(result.Warnings, interfaces.CodeUnbalancedBrackets) {
		t.Fatalf("expected bracket warning, got %v", result.WarningMessages())
	}
	if !hasCode(result.Warnings, interfaces.CodeUnbalancedParentheses) {
		t.Fatalf("expected paren warning, got %v", result.WarningMessages())
	}

	result = v.Validate(strings.Repeat("x", 1001), interfaces.ProcessingOptions{})
	if !hasCode(result.Warnings, interfaces.CodeLongLines) {
		t.Fatalf("expected long-line warning, got %v", result.WarningMessages())
	}
}

func TestValidateDeepNesting(t *testing.T) {
	p := policy.Default()
	p.Limits.MaxNestingDepth = 2
	v := New(p, nil)

	content := "- one\n  - two\n    - three"
	result := v.Validate(content, interfaces.ProcessingOptions{})
	if !hasCode(result.Warnings, interfaces.CodeDeepNesting) {
		t.Fatalf("expected nesting warning, got %v", result.WarningMessages())
	}

	shallow := v.Validate("- one\n  - two", interfaces.ProcessingOptions{})
	if hasCode(shallow.Warnings, interfaces.CodeDeepNesting) {
		t.Fatalf("unexpected nesting warning: %v", shallow.WarningMessages())
	}
}

func TestValidateLargeTable(t *testing.T) {
	p := policy.Default()
	p.Limits.MaxTableCells = 4
	v := New(p, nil)

	content := "| a | b |\n| --- | --- |\n| c | d |\n| e | f |"
	result := v.Validate(content, interfaces.ProcessingOptions{})
	if !hasCode(result.Warnings, interfaces.CodeLargeTable) {
		t.Fatalf("expected large-table warning, got %v", result.WarningMessages())
	}
}

func TestValidateExternalLinksAdvisory(t *testing.T) {
	v := newTestValidator()
	content := "[a](https://example.com) and [b](http://example.org)"

	silent := v.Validate(content, interfaces.ProcessingOptions{})
	if hasCode(silent.Warnings, interfaces.CodeExternalLinks) {
		t.Fatalf("expected no external-link advisory by default, got %v", silent.WarningMessages())
	}

	flagged := v.Validate(content, interfaces.ProcessingOptions{AllowExternalLinks: true})
	if !hasCode(flagged.Warnings, interfaces.CodeExternalLinks) {
		t.Fatalf("expected external-link advisory, got %v", flagged.WarningMessages())
	}
	if !flagged.Valid {
		t.Fatalf("advisory must not block, errors: %v", flagged.ErrorMessages())
	}
}

func TestValidateDataURLImages(t *testing.T) {
	v := newTestValidator()

	result := v.Validate("![inline](data:image/png;base64,AAAA)", interfaces.ProcessingOptions{})
	if !result.Valid {
		t.Fatalf("expected data image to stay advisory, errors: %v", result.ErrorMessages())
	}
	if !hasCode(result.Warnings, interfaces.CodeDataURLs) {
		t.Fatalf("expected data-url warning, got %v", result.WarningMessages())
	}
}

func TestValidateSuspiciousDomains(t *testing.T) {
	v := newTestValidator()

	result := v.Validate("[short](https://bit.ly/abc) [short2](https://bit.ly/def)", interfaces.ProcessingOptions{})
	count := 0
	for _, w := range result.Warnings {
		if w.Code == interfaces.CodeSuspiciousDomain {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected one warning per distinct host, got %v", result.WarningMessages())
	}
	if !strings.Contains(result.Warnings[len(result.Warnings)-1].Message, "bit.ly") {
		t.Fatalf("expected host in message, got %v", result.WarningMessages())
	}
}

func TestValidateValidMirrorsErrors(t *testing.T) {
	v := newTestValidator()

	cases := []struct {
		content string
		opts    interfaces.ProcessingOptions
	}{
		{"plain text", interfaces.ProcessingOptions{}},
		{`<script>x</script>`, interfaces.ProcessingOptions{}},
		{`<script>x</script>`, interfaces.ProcessingOptions{StrictMode: true}},
		{"[x](javascript:1)", interfaces.ProcessingOptions{}},
		{"unbalanced [", interfaces.ProcessingOptions{}},
	}

	for _, tc := range cases {
		result := v.Validate(tc.content, tc.opts)
		if result.Valid != (len(result.Errors) == 0) {
			t.Fatalf("Valid flag out of sync for %q: valid=%v errors=%v", tc.content, result.Valid, result.ErrorMessages())
		}
	}
}
