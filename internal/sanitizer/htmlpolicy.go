package sanitizer

import (
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-markdown/policy"
)

// HTMLSanitizer scrubs rendered HTML through bluemonday policies derived
// from the shared policy table. bluemonday policies are safe for concurrent
// use after construction, so both variants are built once.
type HTMLSanitizer struct {
	normal *bluemonday.Policy
	strict *bluemonday.Policy
}

// NewHTMLSanitizer builds the normal- and strict-mode bluemonday policies
// from the pipeline policy's tag allow-lists and protocol allow-list.
func NewHTMLSanitizer(p *policy.Policy) *HTMLSanitizer {
	if p == nil {
		p = policy.Default()
	}
	return &HTMLSanitizer{
		normal: buildHTMLPolicy(p, p.AllowedHTMLTags),
		strict: buildHTMLPolicy(p, p.StrictHTMLTags),
	}
}

// Sanitize removes any markup outside the mode's allow-list from rendered
// HTML. Scripts, event handlers, and off-list URL schemes never survive.
func (h *HTMLSanitizer) Sanitize(html string, strictMode bool) string {
	if h == nil {
		return html
	}
	if strictMode {
		return h.strict.Sanitize(html)
	}
	return h.normal.Sanitize(html)
}

func buildHTMLPolicy(p *policy.Policy, tags []string) *bluemonday.Policy {
	bm := bluemonday.NewPolicy()
	bm.AllowElements(tags...)
	bm.AllowURLSchemes(p.AllowedProtocols...)

	// Attribute grants are no-ops for elements missing from the allow-list,
	// so these are applied unconditionally.
	bm.AllowAttrs("href", "title").OnElements("a")
	bm.AllowAttrs("src", "alt", "title", "width", "height").OnElements("img")
	bm.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	bm.AllowAttrs("class").OnElements("code", "pre")
	bm.AllowAttrs("align").OnElements("th", "td")
	bm.RequireNoFollowOnLinks(true)

	return bm
}
