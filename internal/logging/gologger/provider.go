// Package gologger backs the logging interfaces with go-logger. Structured
// fields travel as trailing key/value pairs on every entry, so the adapter
// works the same for JSON, console and pretty output.
package gologger

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	glog "github.com/goliatone/go-logger/glog"
	"github.com/samber/lo"

	"github.com/goliatone/go-mdserve/internal/logging"
	"github.com/goliatone/go-mdserve/pkg/interfaces"
)

// Config captures the options exposed by the go-logger adapter.
type Config struct {
	Level string
	// Format is json (default), console or pretty.
	Format    string
	AddSource bool
	// Focus limits output to the named modules, e.g. "mdserve.http".
	Focus []string
}

var levelNames = map[string]string{
	"trace":   glog.Trace,
	"debug":   glog.Debug,
	"info":    glog.Info,
	"warn":    glog.Warn,
	"warning": glog.Warn,
	"error":   glog.Error,
	"fatal":   glog.Fatal,
}

var formatOptions = map[string]glog.Option{
	"":        glog.WithLoggerTypeJSON(),
	"json":    glog.WithLoggerTypeJSON(),
	"console": glog.WithLoggerTypeConsole(),
	"pretty":  glog.WithLoggerTypePretty(),
}

// Provider hands out go-logger children named after mdserve modules.
type Provider struct {
	root *glog.BaseLogger
}

var _ interfaces.LoggerProvider = (*Provider)(nil)

// NewProvider builds the root go-logger from cfg. Unknown formats fail;
// unknown levels keep go-logger's default.
func NewProvider(cfg Config) (*Provider, error) {
	format, ok := formatOptions[strings.ToLower(strings.TrimSpace(cfg.Format))]
	if !ok {
		return nil, fmt.Errorf("logging: unsupported go-logger format %q", cfg.Format)
	}

	options := []glog.Option{format}
	if level, ok := levelNames[strings.ToLower(strings.TrimSpace(cfg.Level))]; ok {
		options = append(options, glog.WithLevel(level))
	}
	if cfg.AddSource {
		options = append(options, glog.WithAddSource(true))
	}

	root := glog.NewLogger(options...)
	if focus := focusModules(cfg.Focus); len(focus) > 0 {
		root.Focus(focus...)
	}
	return &Provider{root: root}, nil
}

// GetLogger returns the child logger for module. A blank name yields the root.
func (p *Provider) GetLogger(module string) interfaces.Logger {
	if p == nil || p.root == nil {
		return logging.NoOp()
	}
	if module = strings.TrimSpace(module); module == "" {
		return newAdapter(p.root, nil)
	}
	return newAdapter(p.root.GetLogger(module), nil)
}

func focusModules(names []string) []string {
	return lo.Compact(lo.Map(names, func(name string, _ int) string {
		return strings.TrimSpace(name)
	}))
}

type adapter struct {
	inner  glog.Logger
	fields map[string]any
}

var (
	_ interfaces.Logger       = (*adapter)(nil)
	_ interfaces.FieldsLogger = (*adapter)(nil)
)

func newAdapter(inner glog.Logger, fields map[string]any) interfaces.Logger {
	if inner == nil {
		return logging.NoOp()
	}
	return &adapter{inner: inner, fields: fields}
}

func (l *adapter) Trace(msg string, args ...any) { l.inner.Trace(msg, l.withFields(args)...) }
func (l *adapter) Debug(msg string, args ...any) { l.inner.Debug(msg, l.withFields(args)...) }
func (l *adapter) Info(msg string, args ...any)  { l.inner.Info(msg, l.withFields(args)...) }
func (l *adapter) Warn(msg string, args ...any)  { l.inner.Warn(msg, l.withFields(args)...) }
func (l *adapter) Error(msg string, args ...any) { l.inner.Error(msg, l.withFields(args)...) }
func (l *adapter) Fatal(msg string, args ...any) { l.inner.Fatal(msg, l.withFields(args)...) }

// WithFields returns a child carrying a private copy of fields.
func (l *adapter) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return l
	}
	merged := make(map[string]any, len(l.fields)+len(fields))
	maps.Copy(merged, l.fields)
	maps.Copy(merged, fields)
	return newAdapter(l.inner, merged)
}

// WithContext binds ctx to go-logger and lifts request fields stored with
// logging.ContextWithFields onto the child.
func (l *adapter) WithContext(ctx context.Context) interfaces.Logger {
	if ctx == nil {
		return l
	}
	child := newAdapter(l.inner.WithContext(ctx), l.fields)
	return logging.WithFields(child, logging.ContextFields(ctx))
}

// withFields appends the bound fields, sorted by key, after the call's own args.
func (l *adapter) withFields(args []any) []any {
	if len(l.fields) == 0 {
		return args
	}
	out := make([]any, 0, len(args)+len(l.fields)*2)
	out = append(out, args...)
	for _, key := range slices.Sorted(maps.Keys(l.fields)) {
		out = append(out, key, l.fields[key])
	}
	return out
}
