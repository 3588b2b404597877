package policy

import (
	"regexp"
	"strings"

	"github.com/goliatone/go-markdown/pkg/interfaces"
)

// Severity controls how a dangerous-pattern match is reported.
type Severity string

const (
	// SeverityError blocks content in every mode.
	SeverityError Severity = "error"
	// SeverityStrict blocks content in strict mode and downgrades to an
	// advisory warning otherwise. This is the default for security findings.
	SeverityStrict Severity = "strict"
	// SeverityWarning never blocks content.
	SeverityWarning Severity = "warning"
)

// Blocking resolves the severity against the active mode. Detection happens
// once; only this mapping is mode dependent.
func (s Severity) Blocking(strictMode bool) bool {
	switch s {
	case SeverityError:
		return true
	case SeverityStrict:
		return strictMode
	default:
		return false
	}
}

// PatternRule is a compiled signature for a known script-injection construct.
type PatternRule struct {
	// Name appears in user-facing messages ("script tag", "javascript: URL").
	Name string
	// Code is the stable finding code emitted on match.
	Code string
	// Severity maps the match to an error or warning given the active mode.
	Severity Severity
	// Pattern matches the offending construct, including its surrounding tag
	// when the construct is tag shaped, so sanitization can delete the whole
	// match.
	Pattern *regexp.Regexp
}

// Limits holds the numeric bounds enforced by validation.
type Limits struct {
	MaxContentLength int
	MaxLinkCount     int
	MaxNestingDepth  int
	MaxTableCells    int
	MaxLineLength    int
}

// Policy is the process-wide configuration table shared by every pipeline
// component. It is constructed once at startup and never mutated afterwards,
// so concurrent readers need no coordination.
type Policy struct {
	DangerousPatterns []PatternRule
	AllowedProtocols  []string
	// AllowedHTMLTags is the normal-mode tag allow-list. StrictHTMLTags is
	// the smaller set applied in strict mode.
	AllowedHTMLTags   []string
	StrictHTMLTags    []string
	SuspiciousDomains []string
	Limits            Limits

	protocols map[string]struct{}
	tags      map[string]struct{}
	strict    map[string]struct{}
	domains   map[string]struct{}
}

// Default returns the built-in policy. Callers needing overrides should go
// through Parse or LoadFile rather than mutating the returned value.
func Default() *Policy {
	p := &Policy{
		DangerousPatterns: defaultPatterns(),
		AllowedProtocols:  []string{"http", "https", "mailto"},
		AllowedHTMLTags: []string{
			"p", "br", "hr", "div", "span",
			"h1", "h2", "h3", "h4", "h5", "h6",
			"strong", "em", "b", "i", "u", "del", "code", "pre",
			"blockquote", "ul", "ol", "li",
			"table", "thead", "tbody", "tr", "th", "td",
			"a", "img",
		},
		StrictHTMLTags: []string{
			"p", "br", "strong", "em", "b", "i", "code", "pre",
			"blockquote", "ul", "ol", "li",
		},
		SuspiciousDomains: []string{
			"bit.ly", "tinyurl.com", "goo.gl", "t.co", "ow.ly",
		},
		Limits: Limits{
			MaxContentLength: 1_000_000,
			MaxLinkCount:     100,
			MaxNestingDepth:  10,
			MaxTableCells:    500,
			MaxLineLength:    1000,
		},
	}
	p.index()
	return p
}

func defaultPatterns() []PatternRule {
	return []PatternRule{
		{
			Name:     "script tag",
			Code:     interfaces.CodeSecurityError,
			Severity: SeverityStrict,
			Pattern:  regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script\s*>|<script\b[^>]*/?>`),
		},
		{
			Name:     "javascript: URL",
			Code:     interfaces.CodeSecurityError,
			Severity: SeverityStrict,
			Pattern:  regexp.MustCompile(`(?i)javascript\s*:`),
		},
		{
			Name:     "vbscript: URL",
			Code:     interfaces.CodeSecurityError,
			Severity: SeverityStrict,
			Pattern:  regexp.MustCompile(`(?i)vbscript\s*:`),
		},
		{
			Name:     "data:text/html URL",
			Code:     interfaces.CodeSecurityError,
			Severity: SeverityStrict,
			Pattern:  regexp.MustCompile(`(?i)data\s*:\s*text/html`),
		},
		{
			Name:     "inline event handler",
			Code:     interfaces.CodeSecurityError,
			Severity: SeverityStrict,
			Pattern:  regexp.MustCompile(`(?i)\bon[a-z]+\s*=\s*["'][^"']*["']`),
		},
		{
			Name:     "embedded frame or object",
			Code:     interfaces.CodeSecurityError,
			Severity: SeverityStrict,
			Pattern:  regexp.MustCompile(`(?is)</?(?:iframe|object|embed)\b[^>]*>`),
		},
	}
}

// ProtocolAllowed reports whether the URL scheme is on the allow-list.
// Scheme matching is case insensitive.
func (p *Policy) ProtocolAllowed(scheme string) bool {
	_, ok := p.protocols[strings.ToLower(scheme)]
	return ok
}

// TagAllowed reports whether the HTML tag survives sanitization in the given
// mode.
func (p *Policy) TagAllowed(tag string, strictMode bool) bool {
	set := p.tags
	if strictMode {
		set = p.strict
	}
	_, ok := set[strings.ToLower(tag)]
	return ok
}

// DomainSuspicious reports whether the host matches a flagged domain, either
// exactly or as a subdomain.
func (p *Policy) DomainSuspicious(host string) bool {
	host = strings.ToLower(host)
	if _, ok := p.domains[host]; ok {
		return true
	}
	for domain := range p.domains {
		if strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

func (p *Policy) index() {
	p.protocols = toSet(p.AllowedProtocols)
	p.tags = toSet(p.AllowedHTMLTags)
	p.strict = toSet(p.StrictHTMLTags)
	p.domains = toSet(p.SuspiciousDomains)
}

func toSet(values []string) map[string]struct{} {
	out := make(map[string]struct{}, len(values))
	for _, value := range values {
		value = strings.ToLower(strings.TrimSpace(value))
		if value == "" {
			continue
		}
		out[value] = struct{}{}
	}
	return out
}
