package mdserve

import "github.com/goliatone/go-mdserve/internal/runtimeconfig"

var (
	ErrServerAddrRequired      = runtimeconfig.ErrServerAddrRequired
	ErrServerAddrInvalid       = runtimeconfig.ErrServerAddrInvalid
	ErrShutdownTimeoutInvalid  = runtimeconfig.ErrShutdownTimeoutInvalid
	ErrMarkdownBaseDirRequired = runtimeconfig.ErrMarkdownBaseDirRequired
	ErrLoggingProviderRequired = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config               = runtimeconfig.Config
	ServerConfig         = runtimeconfig.ServerConfig
	MarkdownConfig       = runtimeconfig.MarkdownConfig
	MarkdownParserConfig = runtimeconfig.MarkdownParserConfig
	LoggingConfig        = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
