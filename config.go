package markdown

import "github.com/goliatone/go-markdown/internal/runtimeconfig"

var (
	ErrLoggingProviderUnknown = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid    = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid   = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config          = runtimeconfig.Config
	LoggingConfig   = runtimeconfig.LoggingConfig
	PolicyConfig    = runtimeconfig.PolicyConfig
	DocumentsConfig = runtimeconfig.DocumentsConfig
	CommandsConfig  = runtimeconfig.CommandsConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
