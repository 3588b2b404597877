// Package validator inspects untrusted markdown and produces a structured
// verdict without ever failing: malformed content becomes findings, not
// errors.
package validator

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-markdown/internal/logging"
	"github.com/goliatone/go-markdown/internal/metrics"
	"github.com/goliatone/go-markdown/pkg/interfaces"
	"github.com/goliatone/go-markdown/policy"
)

var (
	linkPattern   = regexp.MustCompile(`(!?)\[([^\]]*)\]\(([^)]*)\)`)
	schemePattern = regexp.MustCompile(`^\s*([a-zA-Z][a-zA-Z0-9+.\-]*):`)
	hostPattern   = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.\-]*://([^/\s?#]+)`)
	listItem      = regexp.MustCompile(`^(\s*)(?:[-*+]|\d+\.)\s`)
)

// Validator runs the full check sequence against raw markdown. The emission
// order of findings is a contract: input guard, length, dangerous patterns,
// links, images, then structural checks. UIs surface only the first N
// findings in some contexts and depend on that ordering.
type Validator struct {
	policy *policy.Policy
	logger interfaces.Logger
}

// New constructs a Validator bound to the shared policy table.
func New(p *policy.Policy, logger interfaces.Logger) *Validator {
	if p == nil {
		p = policy.Default()
	}
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Validator{policy: p, logger: logger}
}

// Validate checks content against the policy and returns a fresh result.
// Metrics are always computed, even for invalid content.
func (v *Validator) Validate(content string, opts interfaces.ProcessingOptions) *interfaces.ValidationResult {
	if strings.TrimSpace(content) == "" {
		return &interfaces.ValidationResult{
			Valid: false,
			Errors: []interfaces.Finding{{
				Code:    interfaces.CodeValidationError,
				Message: "Content must be a non-empty string",
			}},
			Warnings:    []interfaces.Finding{},
			WordCount:   0,
			ReadingTime: 1,
		}
	}

	run := &checkRun{policy: v.policy, opts: opts}

	run.checkLength(content)
	run.checkDangerousPatterns(content)
	run.checkLinksAndImages(content)
	run.checkStructure(content)

	result := &interfaces.ValidationResult{
		Valid:       len(run.errors) == 0,
		Errors:      run.errors,
		Warnings:    run.warnings,
		WordCount:   metrics.WordCount(content),
		ReadingTime: metrics.ReadingTime(content),
	}

	v.logger.Debug("validator.validate.done",
		"valid", result.Valid,
		"errors", len(result.Errors),
		"warnings", len(result.Warnings),
		"strict", opts.StrictMode,
	)
	return result
}

// checkRun accumulates findings for a single validation pass.
type checkRun struct {
	policy   *policy.Policy
	opts     interfaces.ProcessingOptions
	errors   []interfaces.Finding
	warnings []interfaces.Finding

	externalLinks int
	dataImages    int
}

func (r *checkRun) addError(code, message string) {
	r.errors = append(r.errors, interfaces.Finding{Code: code, Message: message})
}

func (r *checkRun) addWarning(code, message string) {
	r.warnings = append(r.warnings, interfaces.Finding{Code: code, Message: message})
}

// checkLength measures characters, not bytes; the byte length is a lower
// bound on the rune count.
func (r *checkRun) checkLength(content string) {
	max := r.policy.Limits.MaxContentLength
	if len(content) > max && utf8.RuneCountInString(content) > max {
		r.addError(interfaces.CodeContentTooLarge,
			fmt.Sprintf("Content exceeds maximum length of %d characters", max))
	}
}

// checkDangerousPatterns runs every policy signature once; only the severity
// mapping depends on the mode.
func (r *checkRun) checkDangerousPatterns(content string) {
	for _, rule := range r.policy.DangerousPatterns {
		if !rule.Pattern.MatchString(content) {
			continue
		}
		message := fmt.Sprintf("Content contains dangerous pattern: %s", rule.Name)
		if rule.Severity.Blocking(r.opts.StrictMode) {
			r.addError(rule.Code, message)
		} else {
			r.addWarning(rule.Code, message)
		}
	}
}

// checkLinksAndImages extracts every [text](url) and ![alt](url) construct
// and verifies the URL scheme. Links are reported before images, and the
// link-count ceiling produces a single error regardless of how far it is
// exceeded.
func (r *checkRun) checkLinksAndImages(content string) {
	matches := linkPattern.FindAllStringSubmatch(content, -1)

	linkCount := 0
	var imageFindings []interfaces.Finding

	for _, match := range matches {
		isImage := match[1] == "!"
		label, url := match[2], strings.TrimSpace(match[3])
		scheme := extractScheme(url)

		if isImage {
			if scheme == "data" {
				r.dataImages++
				continue
			}
			if scheme != "" && !r.policy.ProtocolAllowed(scheme) {
				imageFindings = append(imageFindings, interfaces.Finding{
					Code:    interfaces.CodeInvalidImage,
					Message: fmt.Sprintf("Image %q uses disallowed protocol %q", label, scheme),
				})
			}
			continue
		}

		linkCount++
		if scheme == "" {
			continue
		}
		if !r.policy.ProtocolAllowed(scheme) {
			r.addError(interfaces.CodeInvalidLink,
				fmt.Sprintf("Link %q uses disallowed protocol %q", label, scheme))
			continue
		}
		if scheme == "http" || scheme == "https" {
			r.externalLinks++
		}
	}

	if linkCount > r.policy.Limits.MaxLinkCount {
		r.addError(interfaces.CodeInvalidLink,
			fmt.Sprintf("Content exceeds the maximum allowed number of links (%d)", r.policy.Limits.MaxLinkCount))
	}

	r.errors = append(r.errors, imageFindings...)
}

// checkStructure runs the advisory checks. Each category contributes at most
// one finding.
func (r *checkRun) checkStructure(content string) {
	if strings.Count(content, "[") != strings.Count(content, "]") {
		r.addWarning(interfaces.CodeUnbalancedBrackets,
			"Content has unbalanced square brackets")
	}
	if strings.Count(content, "(") != strings.Count(content, ")") {
		r.addWarning(interfaces.CodeUnbalancedParentheses,
			"Content has unbalanced parentheses")
	}

	lines := strings.Split(content, "\n")
	r.checkLongLines(lines)
	r.checkNesting(lines)
	r.checkTables(lines)

	if r.opts.AllowExternalLinks && r.externalLinks > 0 {
		r.addWarning(interfaces.CodeExternalLinks,
			fmt.Sprintf("Content contains %d external links", r.externalLinks))
	}
	if r.dataImages > 0 {
		r.addWarning(interfaces.CodeDataURLs,
			"Content embeds data: URLs in images")
	}

	r.checkSuspiciousDomains(content)
}

func (r *checkRun) checkLongLines(lines []string) {
	max := r.policy.Limits.MaxLineLength
	for _, line := range lines {
		if len(line) > max {
			r.addWarning(interfaces.CodeLongLines,
				fmt.Sprintf("Content has lines longer than %d characters", max))
			return
		}
	}
}

// checkNesting derives list depth from leading indentation, two spaces per
// level.
func (r *checkRun) checkNesting(lines []string) {
	max := r.policy.Limits.MaxNestingDepth
	for _, line := range lines {
		match := listItem.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		indent := strings.ReplaceAll(match[1], "\t", "  ")
		depth := len(indent)/2 + 1
		if depth > max {
			r.addWarning(interfaces.CodeDeepNesting,
				fmt.Sprintf("Content nests lists deeper than %d levels", max))
			return
		}
	}
}

// checkTables counts the cells of each contiguous pipe-table block.
func (r *checkRun) checkTables(lines []string) {
	max := r.policy.Limits.MaxTableCells
	cells := 0
	inTable := false

	flag := func() bool {
		if inTable && cells > max {
			r.addWarning(interfaces.CodeLargeTable,
				fmt.Sprintf("Content contains a table with more than %d cells", max))
			return true
		}
		return false
	}

	for _, line := range lines {
		if strings.Contains(line, "|") {
			if !inTable {
				inTable = true
				cells = 0
			}
			cells += countCells(line)
			continue
		}
		if flag() {
			return
		}
		inTable = false
	}
	flag()
}

func (r *checkRun) checkSuspiciousDomains(content string) {
	seen := map[string]struct{}{}
	for _, match := range linkPattern.FindAllStringSubmatch(content, -1) {
		url := strings.TrimSpace(match[3])
		host := extractHost(url)
		if host == "" {
			continue
		}
		if _, dup := seen[host]; dup {
			continue
		}
		if r.policy.DomainSuspicious(host) {
			seen[host] = struct{}{}
			r.addWarning(interfaces.CodeSuspiciousDomain,
				fmt.Sprintf("Link points at suspicious domain %q", host))
		}
	}
}

func countCells(line string) int {
	trimmed := strings.Trim(strings.TrimSpace(line), "|")
	if strings.TrimSpace(trimmed) == "" {
		return 0
	}
	return len(strings.Split(trimmed, "|"))
}

func extractScheme(url string) string {
	parts := schemePattern.FindStringSubmatch(url)
	if parts == nil {
		return ""
	}
	return strings.ToLower(parts[1])
}

func extractHost(url string) string {
	parts := hostPattern.FindStringSubmatch(url)
	if parts == nil {
		return ""
	}
	host := strings.ToLower(parts[1])
	if at := strings.LastIndex(host, "@"); at >= 0 {
		host = host[at+1:]
	}
	if colon := strings.IndexByte(host, ':'); colon >= 0 {
		host = host[:colon]
	}
	return host
}
