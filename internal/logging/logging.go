// Package logging provides the shared logger plumbing used across the
// pipeline: a no-op fallback, module-scoped child loggers, and structured
// field helpers.
package logging

import (
	"context"
	"maps"

	"github.com/goliatone/go-markdown/pkg/interfaces"
)

const (
	rootModule      = "markdown"
	validatorModule = "markdown.validator"
	sanitizerModule = "markdown.sanitizer"
	rendererModule  = "markdown.renderer"
	documentsModule = "markdown.documents"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// ValidatorLogger returns the logger namespace reserved for validation.
func ValidatorLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, validatorModule)
}

// SanitizerLogger returns the logger namespace reserved for sanitization.
func SanitizerLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, sanitizerModule)
}

// RendererLogger returns the logger namespace reserved for HTML rendering.
func RendererLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, rendererModule)
}

// DocumentsLogger returns the logger namespace reserved for document
// workflows.
func DocumentsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, documentsModule)
}

// WithFields attaches structured fields to a logger when the implementation
// supports the optional FieldsLogger extension. Callers can pass nil or an
// empty map to skip allocation safely.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		copied := make(map[string]any, len(fields))
		maps.Copy(copied, fields)
		return fieldsLogger.WithFields(copied)
	}

	return logger
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// and FieldsLogger contracts so it can stand in anywhere a logger is needed.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithContext(context.Context) interfaces.Logger { return n }
func (n noopLogger) WithFields(map[string]any) interfaces.Logger   { return n }
