// Package slogtint adapts log/slog with the tint handler to the logging
// interfaces, producing colourised human-readable output for local runs.
package slogtint

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/lmittmann/tint"

	"github.com/goliatone/go-mdserve/internal/logging"
	"github.com/goliatone/go-mdserve/pkg/interfaces"
)

const (
	levelTrace = slog.Level(-8)
	levelFatal = slog.Level(12)
)

// Config captures the options exposed by the tint adapter.
type Config struct {
	Level     string
	AddSource bool
	NoColor   bool
	// Writer defaults to stderr.
	Writer     io.Writer
	TimeFormat string
}

// Provider hands out slog loggers sharing a single tint handler.
type Provider struct {
	root *slog.Logger
}

var _ interfaces.LoggerProvider = (*Provider)(nil)

// NewProvider builds a tint-backed provider.
func NewProvider(cfg Config) (*Provider, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	writer := cfg.Writer
	if writer == nil {
		writer = os.Stderr
	}

	timeFormat := cfg.TimeFormat
	if timeFormat == "" {
		timeFormat = time.Kitchen
	}

	handler := tint.NewHandler(writer, &tint.Options{
		Level:      level,
		AddSource:  cfg.AddSource,
		NoColor:    cfg.NoColor,
		TimeFormat: timeFormat,
		ReplaceAttr: func(_ []string, attr slog.Attr) slog.Attr {
			if attr.Key != slog.LevelKey {
				return attr
			}
			switch attr.Value.Any() {
			case levelTrace:
				attr.Value = slog.StringValue("TRC")
			case levelFatal:
				attr.Value = slog.StringValue("FTL")
			}
			return attr
		},
	})

	return &Provider{root: slog.New(handler)}, nil
}

// GetLogger returns a logger tagged with the module name.
func (p *Provider) GetLogger(name string) interfaces.Logger {
	if p == nil || p.root == nil {
		return logging.NoOp()
	}
	inner := p.root
	if trimmed := strings.TrimSpace(name); trimmed != "" {
		inner = inner.With("logger", trimmed)
	}
	return &adapter{inner: inner, ctx: context.Background()}
}

type adapter struct {
	inner *slog.Logger
	ctx   context.Context
}

var (
	_ interfaces.Logger       = (*adapter)(nil)
	_ interfaces.FieldsLogger = (*adapter)(nil)
)

func (l *adapter) Trace(msg string, args ...any) { l.log(levelTrace, msg, args...) }
func (l *adapter) Debug(msg string, args ...any) { l.log(slog.LevelDebug, msg, args...) }
func (l *adapter) Info(msg string, args ...any)  { l.log(slog.LevelInfo, msg, args...) }
func (l *adapter) Warn(msg string, args ...any)  { l.log(slog.LevelWarn, msg, args...) }
func (l *adapter) Error(msg string, args ...any) { l.log(slog.LevelError, msg, args...) }

// Fatal logs at a level above error. It does not exit the process.
func (l *adapter) Fatal(msg string, args ...any) { l.log(levelFatal, msg, args...) }

func (l *adapter) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return l
	}
	return &adapter{inner: l.inner.With(sortedArgs(fields)...), ctx: l.ctx}
}

func (l *adapter) WithContext(ctx context.Context) interfaces.Logger {
	if ctx == nil {
		return l
	}
	return &adapter{inner: l.inner, ctx: ctx}
}

func (l *adapter) log(level slog.Level, msg string, args ...any) {
	if fields := logging.ContextFields(l.ctx); len(fields) > 0 {
		args = append(sortedArgs(fields), args...)
	}
	l.inner.Log(l.ctx, level, msg, args...)
}

func sortedArgs(fields map[string]any) []any {
	cloned := maps.Clone(fields)
	keys := make([]string, 0, len(cloned))
	for k := range cloned {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	args := make([]any, 0, len(keys)*2)
	for _, k := range keys {
		args = append(args, k, cloned[k])
	}
	return args
}

func parseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "trace":
		return levelTrace, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	case "fatal":
		return levelFatal, nil
	default:
		return slog.LevelInfo, fmt.Errorf("logging: unsupported tint level %q", name)
	}
}
