package di

import (
	"fmt"
	"io"
	"os"

	"github.com/goliatone/go-mdserve/internal/http"
	"github.com/goliatone/go-mdserve/internal/logging"
	"github.com/goliatone/go-mdserve/internal/logging/console"
	"github.com/goliatone/go-mdserve/internal/logging/gologger"
	"github.com/goliatone/go-mdserve/internal/logging/slogtint"
	"github.com/goliatone/go-mdserve/internal/markdown"
	"github.com/goliatone/go-mdserve/internal/page"
	"github.com/goliatone/go-mdserve/internal/runtimeconfig"
	"github.com/goliatone/go-mdserve/pkg/interfaces"
)

// Container wires module dependencies.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	stdout         io.Writer

	markdownParser interfaces.MarkdownParser
	markdownSvc    interfaces.MarkdownService
	pageRenderer   interfaces.PageRenderer

	pageHandler *http.PageHandler
	server      *http.Server
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the provider selected from Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithMarkdownParser overrides the default Goldmark parser.
func WithMarkdownParser(parser interfaces.MarkdownParser) Option {
	return func(c *Container) {
		c.markdownParser = parser
	}
}

// WithMarkdownService overrides the filesystem-backed markdown service.
func WithMarkdownService(svc interfaces.MarkdownService) Option {
	return func(c *Container) {
		c.markdownSvc = svc
	}
}

// WithPageRenderer overrides the default HTML page renderer.
func WithPageRenderer(renderer interfaces.PageRenderer) Option {
	return func(c *Container) {
		c.pageRenderer = renderer
	}
}

// WithStdout redirects the startup announcement and the console logger.
func WithStdout(w io.Writer) Option {
	return func(c *Container) {
		c.stdout = w
	}
}

// NewContainer validates cfg and builds the server graph.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{
		Config: cfg,
		stdout: os.Stdout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	if err := c.configureMarkdown(); err != nil {
		return nil, err
	}
	if c.pageRenderer == nil {
		c.pageRenderer = page.NewRenderer()
	}
	c.configureServer()

	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil {
		return nil
	}

	cfg := c.Config.Logging
	switch runtimeconfig.NormalizeProvider(cfg.Provider) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
			Focus:     cfg.Focus,
		})
		if err != nil {
			return fmt.Errorf("configure logger: %w", err)
		}
		c.loggerProvider = provider
	case "tint":
		provider, err := slogtint.NewProvider(slogtint.Config{
			Level:     cfg.Level,
			AddSource: cfg.AddSource,
		})
		if err != nil {
			return fmt.Errorf("configure logger: %w", err)
		}
		c.loggerProvider = provider
	default:
		opts := console.Options{Writer: c.stdout}
		if level, ok := console.ParseLevel(cfg.Level); ok {
			opts.MinLevel = &level
		}
		c.loggerProvider = console.NewProvider(opts)
	}
	return nil
}

func (c *Container) configureMarkdown() error {
	if c.markdownSvc != nil {
		return nil
	}

	cfg := c.Config.Markdown
	svc, err := markdown.NewService(markdown.Config{
		BaseDir:     cfg.BaseDir,
		FrontMatter: cfg.FrontMatter,
		Confine:     cfg.Confine,
		Parser: interfaces.ParseOptions{
			Extensions: append([]string(nil), cfg.Parser.Extensions...),
			Sanitize:   cfg.Parser.Sanitize,
			HardWraps:  cfg.Parser.HardWraps,
			SafeMode:   cfg.Parser.SafeMode,
			HeadingIDs: cfg.Parser.HeadingIDs,
		},
	}, c.markdownParser, markdown.WithLogger(logging.MarkdownLogger(c.loggerProvider)))
	if err != nil {
		return fmt.Errorf("configure markdown: %w", err)
	}
	c.markdownSvc = svc
	return nil
}

func (c *Container) configureServer() {
	c.pageHandler = http.NewPageHandler(c.markdownSvc, c.pageRenderer, logging.HTTPLogger(c.loggerProvider))
	c.server = http.NewServer(http.ServerConfig{
		Addr:            c.Config.Server.Addr,
		AppName:         c.Config.Server.AppName,
		ShutdownTimeout: c.Config.Server.ShutdownTimeout,
	}, c.pageHandler,
		http.WithServerLogger(logging.ServerLogger(c.loggerProvider)),
		http.WithStdout(c.stdout),
	)
}

// LoggerProvider returns the provider every module logger is drawn from.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// MarkdownService returns the configured markdown service.
func (c *Container) MarkdownService() interfaces.MarkdownService {
	return c.markdownSvc
}

// PageRenderer returns the configured page renderer.
func (c *Container) PageRenderer() interfaces.PageRenderer {
	return c.pageRenderer
}

// PageHandler returns the wildcard page handler.
func (c *Container) PageHandler() *http.PageHandler {
	return c.pageHandler
}

// Server returns the HTTP server.
func (c *Container) Server() *http.Server {
	return c.server
}
