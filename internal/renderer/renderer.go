// Package renderer converts markdown to HTML using the goldmark engine,
// with an optional bluemonday pass over the output.
package renderer

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmrenderer "github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/goliatone/go-markdown/internal/logging"
	"github.com/goliatone/go-markdown/internal/sanitizer"
	"github.com/goliatone/go-markdown/pkg/interfaces"
)

// HTMLSanitizer is the capability the renderer probes at render time. A nil
// sanitizer switches the renderer into degraded mode: goldmark escapes raw
// HTML instead of the sanitizer scrubbing it, and rendering still succeeds.
type HTMLSanitizer interface {
	Sanitize(html string, strictMode bool) string
}

// Renderer is stateless across calls; a single instance can be reused
// without locking. Two goldmark engines are kept because the unsafe-HTML
// renderer option is fixed at engine construction.
type Renderer struct {
	safe      goldmark.Markdown
	unsafe    goldmark.Markdown
	sanitizer HTMLSanitizer
	logger    interfaces.Logger
}

// New constructs a Renderer. The sanitizer may be nil; see HTMLSanitizer.
func New(htmlSanitizer *sanitizer.HTMLSanitizer, logger interfaces.Logger) *Renderer {
	if logger == nil {
		logger = logging.NoOp()
	}

	r := &Renderer{
		safe:   newEngine(false),
		unsafe: newEngine(true),
		logger: logger,
	}
	// A typed nil must not masquerade as a present capability.
	if htmlSanitizer != nil {
		r.sanitizer = htmlSanitizer
	}
	return r
}

// Render converts markdown to HTML. With HTML sanitization enabled (the
// default) author-embedded HTML passes through goldmark and is scrubbed by
// bluemonday, so allow-listed tags survive. Without a sanitizer the renderer
// degrades to the escaping engine: raw HTML becomes text, output stays valid
// for the safe subset, and rendering still succeeds. Disabling sanitization
// is the caller's explicit risk acceptance and returns the raw rendered
// HTML.
func (r *Renderer) Render(content string, opts interfaces.ProcessingOptions) (string, error) {
	sanitize := opts.HTMLSanitizeEnabled()

	engine := r.unsafe
	if sanitize && r.sanitizer == nil {
		r.logger.Debug("renderer.sanitizer_unavailable", "mode", "degraded")
		engine = r.safe
	}

	var buf bytes.Buffer
	if err := engine.Convert([]byte(content), &buf); err != nil {
		return "", fmt.Errorf("renderer: convert markdown: %w", err)
	}
	out := buf.String()

	if sanitize && r.sanitizer != nil {
		return r.sanitizer.Sanitize(out, opts.StrictMode), nil
	}
	return out, nil
}

func newEngine(unsafeHTML bool) goldmark.Markdown {
	rendererOptions := []gmrenderer.Option{}
	if unsafeHTML {
		rendererOptions = append(rendererOptions, html.WithUnsafe())
	}

	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Linkify,
			extension.TaskList,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(rendererOptions...),
	)
}
