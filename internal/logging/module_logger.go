package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-mdserve/pkg/interfaces"
)

const (
	rootModule     = "mdserve"
	httpModule     = "mdserve.http"
	serverModule   = "mdserve.server"
	markdownModule = "mdserve.markdown"
)

const (
	fieldMarkdownPath = "markdown_path"
	fieldAction       = "action"
	fieldHTTPMethod   = "http_method"
	fieldRequestPath  = "request_path"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The module identifier is
// attached as a structured field.
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

// HTTPLogger returns the logger namespace reserved for request handling.
func HTTPLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, httpModule)
}

// ServerLogger returns the logger namespace reserved for listener lifecycle events.
func ServerLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, serverModule)
}

// MarkdownLogger returns the logger namespace reserved for markdown loading.
func MarkdownLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, markdownModule)
}

// WithMarkdownContext enriches the logger with the resolved file path and
// an optional action label. Empty values are ignored.
func WithMarkdownContext(logger interfaces.Logger, path, action string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		fields[fieldMarkdownPath] = trimmed
	}
	if trimmed := strings.TrimSpace(action); trimmed != "" {
		fields[fieldAction] = trimmed
	}
	return WithFields(logger, fields)
}

// WithRequestContext attaches the HTTP method and raw request path.
func WithRequestContext(logger interfaces.Logger, method, path string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(method); trimmed != "" {
		fields[fieldHTTPMethod] = trimmed
	}
	if path != "" {
		fields[fieldRequestPath] = path
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every log entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var (
	_ interfaces.Logger       = noopLogger{}
	_ interfaces.FieldsLogger = noopLogger{}
)

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
