// Package processing exposes the batch commands hosts can wire into CLIs or
// schedulers: directory-wide validation and rendering runs.
package processing

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

const (
	validateDirectoryMessageType = "markdown.processing.validate_directory"
	renderDirectoryMessageType   = "markdown.processing.render_directory"
)

// ValidateDirectoryCommand runs the validator over every markdown document
// under Directory and logs a summary. StrictMode tightens the severity
// mapping for the whole run.
type ValidateDirectoryCommand struct {
	// Directory selects the filesystem path (relative to the configured base
	// path) to load markdown files from.
	Directory string `json:"directory"`
	// StrictMode applies the strict severity mapping and tag allow-list.
	StrictMode bool `json:"strict_mode,omitempty"`
	// AuthorID attributes the batch run in logs and downstream records.
	AuthorID uuid.UUID `json:"author_id,omitempty"`
	// FailFast stops the run at the first invalid document.
	FailFast bool `json:"fail_fast,omitempty"`
}

// Type implements command.Message.
func (ValidateDirectoryCommand) Type() string { return validateDirectoryMessageType }

// Validate ensures directory input is present before handlers execute.
func (cmd ValidateDirectoryCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(requireNonBlank(
			"markdown.processing.validate_directory.directory_required"))),
	)
}

// RenderDirectoryCommand sanitizes and renders every markdown document under
// Directory, populating each document's HTML body.
type RenderDirectoryCommand struct {
	// Directory selects the filesystem path (relative to the configured base
	// path) to load markdown files from.
	Directory string `json:"directory"`
	// StrictMode applies the strict severity mapping and tag allow-list.
	StrictMode bool `json:"strict_mode,omitempty"`
	// SkipHTMLSanitize disables the bluemonday pass over rendered output.
	SkipHTMLSanitize bool `json:"skip_html_sanitize,omitempty"`
	// AuthorID attributes the batch run in logs and downstream records.
	AuthorID uuid.UUID `json:"author_id,omitempty"`
}

// Type implements command.Message.
func (RenderDirectoryCommand) Type() string { return renderDirectoryMessageType }

// Validate ensures directory input is present before handlers execute.
func (cmd RenderDirectoryCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(requireNonBlank(
			"markdown.processing.render_directory.directory_required"))),
	)
}

func requireNonBlank(code string) func(value any) error {
	return func(value any) error {
		if strings.TrimSpace(value.(string)) == "" {
			return validation.NewError(code, "directory is required")
		}
		return nil
	}
}
