// Package runtimeconfig defines the host-facing configuration for the
// pipeline runtime and its validation rules.
package runtimeconfig

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	ErrLoggingProviderUnknown = errors.New("config: unknown logging provider")
	ErrLoggingLevelInvalid    = errors.New("config: invalid logging level")
	ErrLoggingFormatInvalid   = errors.New("config: invalid logging format")
)

// Config is the top-level runtime configuration consumed by markdown.New.
type Config struct {
	Logging   LoggingConfig
	Policy    PolicyConfig
	Documents DocumentsConfig
	Commands  CommandsConfig
}

// LoggingConfig selects and tunes the logger provider.
type LoggingConfig struct {
	// Provider picks the logging backend: "gologger" or "noop".
	Provider  string
	Level     string
	Format    string
	AddSource bool
}

// PolicyConfig points at an optional JSON policy overlay. An empty path
// means the built-in defaults apply.
type PolicyConfig struct {
	OverridesPath string
}

// DocumentsConfig roots the filesystem document workflows.
type DocumentsConfig struct {
	BasePath  string
	Pattern   string
	Recursive bool
}

// CommandsConfig tunes the batch command handlers.
type CommandsConfig struct {
	Timeout time.Duration
}

// DefaultConfig returns the configuration used when hosts pass the zero
// value: no-op logging, built-in policy, documents rooted at the working
// directory.
func DefaultConfig() Config {
	return Config{
		Logging: LoggingConfig{
			Provider: "noop",
			Level:    "info",
			Format:   "json",
		},
		Documents: DocumentsConfig{
			BasePath:  ".",
			Pattern:   "*.md",
			Recursive: true,
		},
		Commands: CommandsConfig{
			Timeout: 30 * time.Second,
		},
	}
}

// Validate rejects configurations the runtime cannot honour. Unlike content
// processing, configuration mistakes are programming errors and do fail.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Logging),
	)
}

// Validate implements validation.Validatable for the logging section.
func (l LoggingConfig) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Provider,
			validation.In("", "noop", "gologger").Error(ErrLoggingProviderUnknown.Error())),
		validation.Field(&l.Level,
			validation.In("", "trace", "debug", "info", "warn", "warning", "error", "fatal").
				Error(ErrLoggingLevelInvalid.Error())),
		validation.Field(&l.Format,
			validation.In("", "json", "console", "pretty").
				Error(ErrLoggingFormatInvalid.Error())),
	)
}
