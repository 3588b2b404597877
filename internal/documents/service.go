package documents

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-markdown/internal/logging"
	"github.com/goliatone/go-markdown/internal/metrics"
	"github.com/goliatone/go-markdown/internal/plaintext"
	"github.com/goliatone/go-markdown/pkg/interfaces"
)

// Config controls how the document service discovers and processes files.
type Config struct {
	BasePath  string
	Pattern   string
	Recursive bool
}

// ProcessedDocument bundles a loaded document with every pipeline artifact a
// consumer might need: the verdict, the sanitized body, rendered HTML, and
// the plain-text projection.
type ProcessedDocument struct {
	Document  *interfaces.Document
	Result    *interfaces.ValidationResult
	Sanitized string
	PlainText string
	WordCount int
}

// Pipeline is the subset of processing capabilities the service drives for
// each loaded document.
type Pipeline struct {
	Validator interfaces.ContentValidator
	Sanitizer interfaces.ContentSanitizer
	Renderer  interfaces.HTMLRenderer
}

// Service implements filesystem-backed document workflows: load markdown
// files, run them through the pipeline, and hand back processed artifacts.
type Service struct {
	cfg      Config
	loader   *Loader
	pipeline Pipeline
	logger   interfaces.Logger
}

// NewService constructs a document service rooted at cfg.BasePath.
func NewService(cfg Config, pipeline Pipeline, logger interfaces.Logger) (*Service, error) {
	filesystem, err := prepareFilesystem(cfg.BasePath)
	if err != nil {
		return nil, err
	}
	return NewServiceWithFS(filesystem, cfg, pipeline, logger)
}

// NewServiceWithFS constructs a document service over an explicit fs.FS,
// which keeps tests and embedded filesystems away from the host disk.
func NewServiceWithFS(filesystem fs.FS, cfg Config, pipeline Pipeline, logger interfaces.Logger) (*Service, error) {
	if pipeline.Validator == nil || pipeline.Sanitizer == nil || pipeline.Renderer == nil {
		return nil, errors.New("documents: pipeline requires validator, sanitizer, and renderer")
	}
	if logger == nil {
		logger = logging.NoOp()
	}

	loader := NewLoader(filesystem, LoaderConfig{
		BasePath:  cfg.BasePath,
		Pattern:   cfg.Pattern,
		Recursive: cfg.Recursive,
	})

	return &Service{
		cfg:      cfg,
		loader:   loader,
		pipeline: pipeline,
		logger:   logger,
	}, nil
}

// Load reads a single markdown document relative to the configured base
// path without processing it.
func (s *Service) Load(ctx context.Context, path string) (*interfaces.Document, error) {
	result, err := s.loader.LoadFile(ctx, s.normalisePath(path), LoadParams{})
	if err != nil {
		return nil, err
	}
	return result.Document, nil
}

// Process loads a document and runs the full pipeline over its body.
func (s *Service) Process(ctx context.Context, path string, opts interfaces.ProcessingOptions) (*ProcessedDocument, error) {
	doc, err := s.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	return s.process(doc, opts)
}

// ProcessDirectory loads every matching document under dir and processes
// each one. Processing continues past invalid documents; the per-document
// verdict carries the findings.
func (s *Service) ProcessDirectory(ctx context.Context, dir string, opts interfaces.ProcessingOptions) ([]*ProcessedDocument, error) {
	results, err := s.loader.LoadDirectory(ctx, s.normalisePath(dir), LoadParams{})
	if err != nil {
		return nil, err
	}

	processed := make([]*ProcessedDocument, 0, len(results))
	for _, result := range results {
		out, err := s.process(result.Document, opts)
		if err != nil {
			return nil, err
		}
		processed = append(processed, out)
	}
	return processed, nil
}

func (s *Service) process(doc *interfaces.Document, opts interfaces.ProcessingOptions) (*ProcessedDocument, error) {
	body := string(doc.Body)

	verdict := s.pipeline.Validator.Validate(body, opts)
	sanitized := s.pipeline.Sanitizer.Sanitize(body, opts)

	html, err := s.pipeline.Renderer.Render(sanitized, opts)
	if err != nil {
		return nil, fmt.Errorf("documents: render %s: %w", doc.FilePath, err)
	}
	doc.BodyHTML = []byte(html)

	logging.WithFields(s.logger, map[string]any{
		"path":     doc.FilePath,
		"valid":    verdict.Valid,
		"warnings": len(verdict.Warnings),
	}).Debug("documents.process.done")

	return &ProcessedDocument{
		Document:  doc,
		Result:    verdict,
		Sanitized: sanitized,
		PlainText: plaintext.Extract(body),
		WordCount: metrics.WordCount(body),
	}, nil
}

func (s *Service) normalisePath(path string) string {
	if strings.TrimSpace(path) == "" {
		return "."
	}
	return path
}

func prepareFilesystem(basePath string) (fs.FS, error) {
	if strings.TrimSpace(basePath) == "" {
		basePath = "."
	}
	if _, err := os.Stat(basePath); err != nil {
		return nil, fmt.Errorf("documents: stat base path %s: %w", basePath, err)
	}
	return os.DirFS(basePath), nil
}
