package markdown

import (
	"context"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/goliatone/go-mdserve/internal/logging"
	"github.com/goliatone/go-mdserve/pkg/interfaces"
)

// Config controls how the Markdown service reads and parses files.
type Config struct {
	BaseDir     string
	FrontMatter bool
	Confine     bool
	Parser      interfaces.ParseOptions
}

// Service implements interfaces.MarkdownService for filesystem-backed documents.
type Service struct {
	cfg    Config
	parser interfaces.MarkdownParser
	loader *Loader
	logger interfaces.Logger
}

var _ interfaces.MarkdownService = (*Service)(nil)

// ServiceOption configures optional collaborators.
type ServiceOption func(*Service)

// WithLogger sets the logger used for document diagnostics.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService constructs a Markdown service. When parser is nil, a Goldmark
// parser with the configured default options is created.
func NewService(cfg Config, parser interfaces.MarkdownParser, opts ...ServiceOption) (*Service, error) {
	if strings.TrimSpace(cfg.BaseDir) == "" {
		return nil, errors.New("markdown service: base directory is required")
	}

	if parser == nil {
		parser = NewGoldmarkParser(cfg.Parser)
	}

	svc := &Service{
		cfg:    cfg,
		parser: parser,
		loader: NewLoader(LoaderConfig{
			BaseDir: cfg.BaseDir,
			Confine: cfg.Confine,
		}),
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Resolve returns the filesystem path a request path maps to.
func (s *Service) Resolve(path string) string {
	return s.loader.Resolve(path)
}

// Load reads a single Markdown document and renders its body.
func (s *Service) Load(ctx context.Context, path string, opts interfaces.LoadOptions) (*interfaces.Document, error) {
	withFrontMatter := s.cfg.FrontMatter
	if opts.FrontMatter != nil {
		withFrontMatter = *opts.FrontMatter
	}

	result, err := s.loader.LoadFile(ctx, path, withFrontMatter)
	if err != nil {
		return nil, err
	}

	doc := result.Document
	if err := s.renderDocument(ctx, doc, opts.Parser); err != nil {
		return nil, err
	}

	logging.WithMarkdownContext(s.logger, doc.FilePath, "").Debug("markdown.document.rendered",
		"document_id", doc.ID.String(),
		"slug", doc.FrontMatter.Slug,
		"checksum", hex.EncodeToString(doc.Checksum),
		"last_modified", doc.LastModified,
		"bytes", len(result.Source),
		"html_bytes", len(doc.BodyHTML),
		"front_matter_title", doc.FrontMatter.Title,
	)
	return doc, nil
}

// Render parses Markdown bytes into HTML using the configured parser.
func (s *Service) Render(ctx context.Context, markdown []byte, opts interfaces.ParseOptions) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	return s.parser.ParseWithOptions(markdown, mergeParseOptions(s.cfg.Parser, opts))
}

// RenderDocument converts the document's Markdown body into HTML.
func (s *Service) RenderDocument(ctx context.Context, doc *interfaces.Document, opts interfaces.ParseOptions) ([]byte, error) {
	if doc == nil {
		return nil, errors.New("markdown service: document is nil")
	}
	if err := s.renderDocument(ctx, doc, opts); err != nil {
		return nil, err
	}
	return doc.BodyHTML, nil
}

func (s *Service) renderDocument(ctx context.Context, doc *interfaces.Document, overrides interfaces.ParseOptions) error {
	html, err := s.Render(ctx, doc.Body, overrides)
	if err != nil {
		return wrapRenderError(doc.FilePath, err)
	}
	doc.BodyHTML = html
	return nil
}

func mergeParseOptions(base, override interfaces.ParseOptions) interfaces.ParseOptions {
	result := base
	if len(override.Extensions) > 0 {
		result.Extensions = append([]string(nil), override.Extensions...)
	}
	if override.Sanitize {
		result.Sanitize = true
	}
	if override.HardWraps {
		result.HardWraps = true
	}
	if override.SafeMode {
		result.SafeMode = true
	}
	if override.HeadingIDs {
		result.HeadingIDs = true
	}
	return result
}
