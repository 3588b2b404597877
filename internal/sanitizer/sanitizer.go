// Package sanitizer strips unsafe constructs from untrusted markdown and
// hosts the bluemonday policies used to scrub rendered HTML.
package sanitizer

import (
	"regexp"
	"strings"

	"github.com/goliatone/go-markdown/internal/logging"
	"github.com/goliatone/go-markdown/pkg/interfaces"
	"github.com/goliatone/go-markdown/policy"
)

// maxStripPasses bounds the sanitization fixed-point loops. Each pass can
// only shrink the content, so the bound is a safety net rather than an
// expected iteration count.
const maxStripPasses = 10

var (
	linkPattern   = regexp.MustCompile(`(!?)\[([^\]]*)\]\(([^)]*)\)`)
	schemePattern = regexp.MustCompile(`^\s*([a-zA-Z][a-zA-Z0-9+.\-]*):`)
	htmlTag       = regexp.MustCompile(`</?([a-zA-Z][a-zA-Z0-9]*)\b[^>]*>`)
)

// Sanitizer removes disallowed constructs from markdown while leaving safe
// syntax untouched. Stateless across calls; a single instance can be shared
// freely.
type Sanitizer struct {
	policy *policy.Policy
	logger interfaces.Logger
}

// New constructs a Sanitizer bound to the shared policy table.
func New(p *policy.Policy, logger interfaces.Logger) *Sanitizer {
	if p == nil {
		p = policy.Default()
	}
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Sanitizer{policy: p, logger: logger}
}

// Sanitize runs the three cleanup passes in their documented order:
// dangerous-pattern stripping, disallowed-protocol URL rewriting, and HTML
// tag filtering. The whole sequence repeats until the output stabilizes, so
// a dangerous construct reassembled by a tag deletion (e.g.
// "javascript<x>:" collapsing into "javascript:") never survives. Within one
// iteration the passes are not reconciled with each other; a URL partially
// consumed by the pattern strip can leave a dangling "()" behind, which is
// accepted behavior. Returns "" for empty input and never fails.
func (s *Sanitizer) Sanitize(content string, opts interfaces.ProcessingOptions) string {
	if strings.TrimSpace(content) == "" {
		return ""
	}

	out := content
	for pass := 0; pass < maxStripPasses; pass++ {
		next := s.stripDangerous(out)
		next = s.rewriteDisallowedURLs(next)
		next = s.stripDisallowedTags(next, opts.StrictMode)
		if next == out {
			return next
		}
		out = next
	}
	s.logger.Warn("sanitizer.pass_limit_reached", "passes", maxStripPasses)
	return out
}

// stripDangerous deletes every dangerous-pattern match, repeating until no
// pattern matches so constructs reassembled by an earlier deletion (e.g.
// "<scr<script>ipt>") cannot survive. Runs in every mode.
func (s *Sanitizer) stripDangerous(content string) string {
	out := content
	for pass := 0; pass < maxStripPasses; pass++ {
		changed := false
		for _, rule := range s.policy.DangerousPatterns {
			next := rule.Pattern.ReplaceAllString(out, "")
			if next != out {
				changed = true
				out = next
			}
		}
		if !changed {
			return out
		}
	}
	s.logger.Warn("sanitizer.strip.pass_limit_reached", "passes", maxStripPasses)
	return out
}

// rewriteDisallowedURLs blanks the URL segment of links and images whose
// scheme is off the allow-list, keeping the visible label intact. data: URLs
// survive on images only; the validator reports them as advisories.
func (s *Sanitizer) rewriteDisallowedURLs(content string) string {
	return linkPattern.ReplaceAllStringFunc(content, func(match string) string {
		parts := linkPattern.FindStringSubmatch(match)
		bang, label, url := parts[1], parts[2], parts[3]

		scheme := extractScheme(url)
		if scheme == "" {
			return match
		}
		if s.policy.ProtocolAllowed(scheme) {
			return match
		}
		if bang == "!" && strings.EqualFold(scheme, "data") {
			return match
		}
		return bang + "[" + label + "]()"
	})
}

// stripDisallowedTags removes HTML tags outside the mode's allow-list. Only
// the tag markup is deleted; enclosed text is preserved.
func (s *Sanitizer) stripDisallowedTags(content string, strictMode bool) string {
	return htmlTag.ReplaceAllStringFunc(content, func(match string) string {
		parts := htmlTag.FindStringSubmatch(match)
		if s.policy.TagAllowed(parts[1], strictMode) {
			return match
		}
		return ""
	})
}

func extractScheme(url string) string {
	parts := schemePattern.FindStringSubmatch(url)
	if parts == nil {
		return ""
	}
	return strings.ToLower(parts[1])
}
