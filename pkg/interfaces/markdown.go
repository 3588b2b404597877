package interfaces

import "time"

// ProcessingOptions customises a single validation, sanitization, or render
// pass. The zero value is a usable default: normal mode, HTML sanitization
// enabled, external links treated by the protocol scan alone. Options are
// never mutated by the pipeline.
type ProcessingOptions struct {
	// StrictMode tightens the dangerous-pattern severity mapping and switches
	// to the smaller strict-mode HTML tag allow-list.
	StrictMode bool
	// SanitizeHTML gates the HTML-sanitization pass applied to rendered
	// output. Nil means enabled; callers must opt out explicitly.
	SanitizeHTML *bool
	// AllowExternalLinks reclassifies external links as an informational
	// warning instead of leaving them to the protocol scan.
	AllowExternalLinks bool
}

// HTMLSanitizeEnabled reports whether the rendered output should pass through
// the HTML sanitizer. Defaults to true when the option was never set.
func (o ProcessingOptions) HTMLSanitizeEnabled() bool {
	if o.SanitizeHTML == nil {
		return true
	}
	return *o.SanitizeHTML
}

// Bool returns a pointer to v, for populating optional option fields inline.
func Bool(v bool) *bool { return &v }

// Stable finding codes consuming UIs key off of. These strings are part of
// the public contract and must not change between releases.
const (
	CodeValidationError       = "MARKDOWN_VALIDATION_ERROR"
	CodeContentTooLarge       = "MARKDOWN_CONTENT_TOO_LARGE"
	CodeSecurityError         = "MARKDOWN_SECURITY_ERROR"
	CodeInvalidLink           = "INVALID_LINK"
	CodeInvalidImage          = "INVALID_IMAGE"
	CodeUnbalancedBrackets    = "UNBALANCED_BRACKETS"
	CodeUnbalancedParentheses = "UNBALANCED_PARENTHESES"
	CodeLongLines             = "LONG_LINES"
	CodeDeepNesting           = "DEEP_NESTING"
	CodeLargeTable            = "LARGE_TABLE"
	CodeExternalLinks         = "EXTERNAL_LINKS"
	CodeDataURLs              = "DATA_URLS"
	CodeSuspiciousDomain      = "SUSPICIOUS_DOMAIN"
)

// Finding is a single validation outcome: a stable code for programmatic
// handling plus a fully formed, user-facing message.
type Finding struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationResult is the verdict produced by one validation pass. Errors
// block save/submit flows, warnings are advisory. Valid is true exactly when
// Errors is empty. Results are created fresh per call and owned by the
// caller.
type ValidationResult struct {
	Valid       bool      `json:"is_valid"`
	Errors      []Finding `json:"errors"`
	Warnings    []Finding `json:"warnings"`
	WordCount   int       `json:"word_count"`
	ReadingTime int       `json:"estimated_reading_time"`
}

// ErrorMessages returns the error messages in emission order, preserving the
// check ordering contract (length, dangerous patterns, links, images,
// structural checks).
func (r *ValidationResult) ErrorMessages() []string {
	return findingMessages(r.Errors)
}

// WarningMessages returns the warning messages in emission order.
func (r *ValidationResult) WarningMessages() []string {
	return findingMessages(r.Warnings)
}

func findingMessages(findings []Finding) []string {
	out := make([]string, 0, len(findings))
	for _, f := range findings {
		out = append(out, f.Message)
	}
	return out
}

// ContentValidator produces a structured verdict for untrusted markdown. It
// never fails for malformed content; bad input becomes findings.
type ContentValidator interface {
	Validate(content string, opts ProcessingOptions) *ValidationResult
}

// ContentSanitizer strips unsafe constructs from untrusted markdown while
// leaving safe markdown syntax untouched. Invalid input yields "".
type ContentSanitizer interface {
	Sanitize(content string, opts ProcessingOptions) string
}

// HTMLRenderer converts markdown to HTML, optionally passing the output
// through an HTML sanitizer.
type HTMLRenderer interface {
	Render(content string, opts ProcessingOptions) (string, error)
}

// Document represents a markdown file with parsed metadata and content. The
// struct is shared between this package and internal implementations so
// consumers can depend on a stable contract.
type Document struct {
	FilePath     string
	FrontMatter  FrontMatter
	Body         []byte
	BodyHTML     []byte
	LastModified time.Time
	// Checksum stores a SHA-256 digest of the original file content so batch
	// workflows can detect changes without reprocessing unchanged files.
	Checksum []byte
}

// FrontMatter models metadata extracted from markdown documents. Fields stay
// flexible thanks to the Custom map for host-specific values.
type FrontMatter struct {
	Title      string         `yaml:"title" json:"title"`
	Slug       string         `yaml:"slug" json:"slug"`
	Summary    string         `yaml:"summary" json:"summary"`
	Status     string         `yaml:"status" json:"status"`
	Author     string         `yaml:"author" json:"author"`
	Department string         `yaml:"department" json:"department"`
	Tags       []string       `yaml:"tags" json:"tags"`
	Date       time.Time      `yaml:"date" json:"date"`
	Draft      bool           `yaml:"draft" json:"draft"`
	Custom     map[string]any `yaml:",inline" json:"custom"`
	Raw        map[string]any `yaml:"-" json:"raw"`
}
