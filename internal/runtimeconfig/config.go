package runtimeconfig

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	ErrServerAddrRequired      = errors.New("server addr is required")
	ErrServerAddrInvalid       = errors.New("server addr must be host:port")
	ErrShutdownTimeoutInvalid  = errors.New("server shutdown timeout must not be negative")
	ErrMarkdownBaseDirRequired = errors.New("markdown base directory is required")
	ErrLoggingProviderRequired = errors.New("logging provider is required")
	ErrLoggingProviderUnknown  = errors.New("logging provider is not supported")
	ErrLoggingLevelInvalid     = errors.New("logging level is not supported")
	ErrLoggingFormatInvalid    = errors.New("logging format is not supported")
)

// Config holds every runtime setting. The binary always runs with
// DefaultConfig; tests and embedding hosts adjust fields in code.
type Config struct {
	Server   ServerConfig
	Markdown MarkdownConfig
	Logging  LoggingConfig
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Addr            string
	AppName         string
	ShutdownTimeout time.Duration
}

// MarkdownConfig captures filesystem and parser behaviour for served files.
type MarkdownConfig struct {
	BaseDir string
	// FrontMatter strips YAML/TOML front matter before rendering.
	FrontMatter bool
	// Confine rejects request paths that resolve outside BaseDir.
	Confine bool
	Parser  MarkdownParserConfig
}

// MarkdownParserConfig mirrors interfaces.ParseOptions for runtime configuration.
type MarkdownParserConfig struct {
	Extensions []string
	Sanitize   bool
	HardWraps  bool
	SafeMode   bool
	HeadingIDs bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns the settings the server ships with.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Addr:            "127.0.0.1:3000",
			AppName:         "mdserve",
			ShutdownTimeout: 5 * time.Second,
		},
		Markdown: MarkdownConfig{
			BaseDir: "static",
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Validate performs consistency checks and reports the first failure as one
// of the exported sentinel errors.
func (cfg Config) Validate() error {
	addr := strings.TrimSpace(cfg.Server.Addr)
	if err := validation.Validate(addr, validation.Required); err != nil {
		return ErrServerAddrRequired
	}
	if err := validation.Validate(addr, validation.By(hostPort)); err != nil {
		return fmt.Errorf("%w: %v", ErrServerAddrInvalid, err)
	}
	if err := validation.Validate(cfg.Server.ShutdownTimeout, validation.Min(time.Duration(0))); err != nil {
		return ErrShutdownTimeoutInvalid
	}
	if err := validation.Validate(strings.TrimSpace(cfg.Markdown.BaseDir), validation.Required); err != nil {
		return ErrMarkdownBaseDirRequired
	}

	provider := NormalizeProvider(cfg.Logging.Provider)
	if err := validation.Validate(provider, validation.Required); err != nil {
		return ErrLoggingProviderRequired
	}
	if err := validation.Validate(provider, validation.In(supportedProviders...)); err != nil {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	level := strings.ToLower(strings.TrimSpace(cfg.Logging.Level))
	if err := validation.Validate(level, validation.In(supportedLevels...)); err != nil {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, cfg.Logging.Level)
	}
	if provider == "gologger" {
		format := strings.ToLower(strings.TrimSpace(cfg.Logging.Format))
		if err := validation.Validate(format, validation.In(supportedFormats...)); err != nil {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, cfg.Logging.Format)
		}
	}
	return nil
}

// NormalizeProvider lowercases and trims a logging provider name.
func NormalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

var (
	supportedProviders = []any{"console", "gologger", "tint"}
	supportedLevels    = []any{"trace", "debug", "info", "warn", "warning", "error", "fatal"}
	supportedFormats   = []any{"json", "console", "pretty"}
)

func hostPort(value any) error {
	addr, _ := value.(string)
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return validation.NewError("validation_addr_host_port", err.Error())
	}
	return nil
}
