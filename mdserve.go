package mdserve

import (
	"context"

	"github.com/goliatone/go-mdserve/internal/di"
	"github.com/goliatone/go-mdserve/internal/http"
	"github.com/goliatone/go-mdserve/pkg/interfaces"
)

// MarkdownService exports the markdown loading and rendering contract.
type MarkdownService = interfaces.MarkdownService

// PageRenderer exports the HTML page wrapper contract.
type PageRenderer = interfaces.PageRenderer

// Server exports the HTTP server type.
type Server = *http.Server

// Option customises the module's dependency graph.
type Option = di.Option

var (
	WithLoggerProvider  = di.WithLoggerProvider
	WithMarkdownParser  = di.WithMarkdownParser
	WithMarkdownService = di.WithMarkdownService
	WithPageRenderer    = di.WithPageRenderer
	WithStdout          = di.WithStdout
)

// Module represents the top level server façade.
type Module struct {
	container *di.Container
}

// New constructs a module using the provided configuration and optional DI overrides.
func New(cfg Config, opts ...Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Server returns the HTTP server bound to the configured address.
func (m *Module) Server() Server {
	return m.container.Server()
}

// Markdown returns the configured markdown service.
func (m *Module) Markdown() MarkdownService {
	return m.container.MarkdownService()
}

// Pages returns the configured page renderer.
func (m *Module) Pages() PageRenderer {
	return m.container.PageRenderer()
}

// Run binds the configured address and serves until ctx is done.
func (m *Module) Run(ctx context.Context) error {
	return m.container.Server().Listen(ctx)
}
