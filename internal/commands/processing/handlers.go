package processing

import (
	"context"
	"fmt"

	command "github.com/goliatone/go-command"
	"github.com/google/uuid"

	"github.com/goliatone/go-markdown/internal/commands"
	"github.com/goliatone/go-markdown/internal/documents"
	"github.com/goliatone/go-markdown/internal/logging"
	"github.com/goliatone/go-markdown/pkg/interfaces"
)

const (
	validateOperation = "processing.validate_directory"
	renderOperation   = "processing.render_directory"
)

var (
	_ command.Commander[ValidateDirectoryCommand] = (*ValidateDirectoryHandler)(nil)
	_ command.Commander[RenderDirectoryCommand]   = (*RenderDirectoryHandler)(nil)
)

// ValidateDirectoryHandler orchestrates directory-wide validation runs via
// the shared command handler foundation.
type ValidateDirectoryHandler struct {
	inner *commands.Handler[ValidateDirectoryCommand]
}

// NewValidateDirectoryHandler creates a handler bound to the supplied
// document service.
func NewValidateDirectoryHandler(service *documents.Service, logger interfaces.Logger, opts ...commands.HandlerOption[ValidateDirectoryCommand]) *ValidateDirectoryHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg ValidateDirectoryCommand) error {
		processed, err := service.ProcessDirectory(ctx, msg.Directory, interfaces.ProcessingOptions{
			StrictMode: msg.StrictMode,
		})
		if err != nil {
			return err
		}

		invalid := 0
		warnings := 0
		for _, doc := range processed {
			warnings += len(doc.Result.Warnings)
			if doc.Result.Valid {
				continue
			}
			invalid++
			if msg.FailFast {
				return fmt.Errorf("processing: document %s failed validation: %s",
					doc.Document.FilePath, doc.Result.Errors[0].Message)
			}
		}

		logging.WithFields(baseLogger, map[string]any{
			"document_count": len(processed),
			"invalid_count":  invalid,
			"warning_count":  warnings,
			"strict":         msg.StrictMode,
		}).Info("processing.command.validate_directory.completed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[ValidateDirectoryCommand]{
		commands.WithLogger[ValidateDirectoryCommand](baseLogger),
		commands.WithOperation[ValidateDirectoryCommand](validateOperation),
		commands.WithMessageFields(func(msg ValidateDirectoryCommand) map[string]any {
			fields := map[string]any{
				"directory": msg.Directory,
			}
			if msg.AuthorID != uuid.Nil {
				fields["author_id"] = msg.AuthorID
			}
			if msg.StrictMode {
				fields["strict_mode"] = true
			}
			if msg.FailFast {
				fields["fail_fast"] = true
			}
			return fields
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ValidateDirectoryHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ValidateDirectoryCommand].
func (h *ValidateDirectoryHandler) Execute(ctx context.Context, msg ValidateDirectoryCommand) error {
	return h.inner.Execute(ctx, msg)
}

// RenderDirectoryHandler orchestrates directory-wide render runs via the
// shared command handler foundation.
type RenderDirectoryHandler struct {
	inner *commands.Handler[RenderDirectoryCommand]
}

// NewRenderDirectoryHandler creates a handler bound to the supplied document
// service.
func NewRenderDirectoryHandler(service *documents.Service, logger interfaces.Logger, opts ...commands.HandlerOption[RenderDirectoryCommand]) *RenderDirectoryHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg RenderDirectoryCommand) error {
		processingOpts := interfaces.ProcessingOptions{
			StrictMode: msg.StrictMode,
		}
		if msg.SkipHTMLSanitize {
			processingOpts.SanitizeHTML = interfaces.Bool(false)
		}

		processed, err := service.ProcessDirectory(ctx, msg.Directory, processingOpts)
		if err != nil {
			return err
		}

		rendered := 0
		for _, doc := range processed {
			if len(doc.Document.BodyHTML) > 0 {
				rendered++
			}
		}

		logging.WithFields(baseLogger, map[string]any{
			"document_count": len(processed),
			"rendered_count": rendered,
			"strict":         msg.StrictMode,
		}).Info("processing.command.render_directory.completed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[RenderDirectoryCommand]{
		commands.WithLogger[RenderDirectoryCommand](baseLogger),
		commands.WithOperation[RenderDirectoryCommand](renderOperation),
		commands.WithMessageFields(func(msg RenderDirectoryCommand) map[string]any {
			fields := map[string]any{
				"directory": msg.Directory,
			}
			if msg.AuthorID != uuid.Nil {
				fields["author_id"] = msg.AuthorID
			}
			if msg.StrictMode {
				fields["strict_mode"] = true
			}
			if msg.SkipHTMLSanitize {
				fields["skip_html_sanitize"] = true
			}
			return fields
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &RenderDirectoryHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[RenderDirectoryCommand].
func (h *RenderDirectoryHandler) Execute(ctx context.Context, msg RenderDirectoryCommand) error {
	return h.inner.Execute(ctx, msg)
}
