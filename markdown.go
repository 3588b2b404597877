// Package markdown is the public surface of the content-processing
// pipeline: validation, sanitization, plain-text extraction, metrics, and
// HTML rendering for untrusted user-authored markdown.
package markdown

import (
	"context"
	"fmt"

	"github.com/goliatone/go-markdown/internal/commands"
	"github.com/goliatone/go-markdown/internal/commands/processing"
	"github.com/goliatone/go-markdown/internal/documents"
	"github.com/goliatone/go-markdown/internal/logging"
	"github.com/goliatone/go-markdown/internal/logging/gologger"
	"github.com/goliatone/go-markdown/internal/metrics"
	"github.com/goliatone/go-markdown/internal/plaintext"
	"github.com/goliatone/go-markdown/internal/renderer"
	"github.com/goliatone/go-markdown/internal/sanitizer"
	"github.com/goliatone/go-markdown/internal/validator"
	"github.com/goliatone/go-markdown/pkg/interfaces"
	"github.com/goliatone/go-markdown/policy"
)

// Re-exported contracts so consumers only import this package.
type (
	ProcessingOptions = interfaces.ProcessingOptions
	ValidationResult  = interfaces.ValidationResult
	Finding           = interfaces.Finding
	Document          = interfaces.Document
	FrontMatter       = interfaces.FrontMatter
	ProcessedDocument = documents.ProcessedDocument

	ValidateDirectoryCommand = processing.ValidateDirectoryCommand
	RenderDirectoryCommand   = processing.RenderDirectoryCommand
)

// Bool mirrors interfaces.Bool for populating optional option fields.
func Bool(v bool) *bool { return interfaces.Bool(v) }

// Module is the top-level pipeline runtime façade. All components share one
// immutable policy table, so a Module is safe for concurrent use and calls
// never coordinate with each other.
type Module struct {
	cfg       Config
	policy    *policy.Policy
	provider  interfaces.LoggerProvider
	validator *validator.Validator
	sanitizer *sanitizer.Sanitizer
	renderer  *renderer.Renderer
}

// New constructs a pipeline module using the provided configuration.
func New(cfg Config) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	pol, err := loadPolicy(cfg)
	if err != nil {
		return nil, err
	}

	provider, err := buildLoggerProvider(cfg)
	if err != nil {
		return nil, err
	}

	htmlSanitizer := sanitizer.NewHTMLSanitizer(pol)

	return &Module{
		cfg:       cfg,
		policy:    pol,
		provider:  provider,
		validator: validator.New(pol, logging.ValidatorLogger(provider)),
		sanitizer: sanitizer.New(pol, logging.SanitizerLogger(provider)),
		renderer:  renderer.New(htmlSanitizer, logging.RendererLogger(provider)),
	}, nil
}

// Policy exposes the active policy table for inspection.
func (m *Module) Policy() *policy.Policy {
	return m.policy
}

// Validate checks content and returns a structured verdict. It never fails
// for malformed content; the context parameter exists for API uniformity
// with the rest of the application stack and the call completes without
// suspension.
func (m *Module) Validate(ctx context.Context, content string, opts ProcessingOptions) (*ValidationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return m.validator.Validate(content, opts), nil
}

// Sanitize strips unsafe constructs from content, returning "" for empty
// input. Sanitizing already-clean content is a no-op.
func (m *Module) Sanitize(content string, opts ProcessingOptions) string {
	return m.sanitizer.Sanitize(content, opts)
}

// ExtractPlainText strips markdown syntax, keeping the human-readable words
// for search and snippets.
func (m *Module) ExtractPlainText(content string) string {
	return plaintext.Extract(content)
}

// WordCount counts the words in content, ignoring markdown punctuation
// tokens.
func (m *Module) WordCount(content string) int {
	return metrics.WordCount(content)
}

// ReadingTime estimates reading time in whole minutes, never less than 1.
func (m *Module) ReadingTime(content string) int {
	return metrics.ReadingTime(content)
}

// RenderHTML sanitizes content at the markdown level, renders it to HTML,
// and (by default) scrubs the output through the HTML sanitizer.
func (m *Module) RenderHTML(content string, opts ProcessingOptions) (string, error) {
	clean := m.sanitizer.Sanitize(content, opts)
	return m.renderer.Render(clean, opts)
}

// Documents returns a filesystem-backed document service rooted at the
// configured base path.
func (m *Module) Documents() (*documents.Service, error) {
	return documents.NewService(documents.Config{
		BasePath:  m.cfg.Documents.BasePath,
		Pattern:   m.cfg.Documents.Pattern,
		Recursive: m.cfg.Documents.Recursive,
	}, m.pipeline(), logging.DocumentsLogger(m.provider))
}

// ValidateDirectoryHandler builds the batch validation command handler.
func (m *Module) ValidateDirectoryHandler() (*processing.ValidateDirectoryHandler, error) {
	svc, err := m.Documents()
	if err != nil {
		return nil, err
	}
	logger := logging.ModuleLogger(m.provider, "markdown.commands.processing")
	return processing.NewValidateDirectoryHandler(svc, logger,
		commands.WithTimeout[ValidateDirectoryCommand](m.cfg.Commands.Timeout)), nil
}

// RenderDirectoryHandler builds the batch render command handler.
func (m *Module) RenderDirectoryHandler() (*processing.RenderDirectoryHandler, error) {
	svc, err := m.Documents()
	if err != nil {
		return nil, err
	}
	logger := logging.ModuleLogger(m.provider, "markdown.commands.processing")
	return processing.NewRenderDirectoryHandler(svc, logger,
		commands.WithTimeout[RenderDirectoryCommand](m.cfg.Commands.Timeout)), nil
}

func (m *Module) pipeline() documents.Pipeline {
	return documents.Pipeline{
		Validator: m.validator,
		Sanitizer: m.sanitizer,
		Renderer:  m.renderer,
	}
}

func loadPolicy(cfg Config) (*policy.Policy, error) {
	if cfg.Policy.OverridesPath == "" {
		return policy.Default(), nil
	}
	pol, err := policy.LoadFile(cfg.Policy.OverridesPath)
	if err != nil {
		return nil, fmt.Errorf("markdown: load policy overrides: %w", err)
	}
	return pol, nil
}

func buildLoggerProvider(cfg Config) (interfaces.LoggerProvider, error) {
	switch cfg.Logging.Provider {
	case "", "noop":
		return nil, nil
	case "gologger":
		return gologger.NewProvider(gologger.Config{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			AddSource: cfg.Logging.AddSource,
		})
	default:
		return nil, fmt.Errorf("markdown: unknown logging provider %q", cfg.Logging.Provider)
	}
}
