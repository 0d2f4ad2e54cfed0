package interfaces

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MarkdownParser defines how raw Markdown bytes are converted into HTML.
// Implementations must be safe for concurrent use since a single parser
// serves every request.
type MarkdownParser interface {
	// Parse converts Markdown into HTML using the parser's default settings.
	Parse(markdown []byte) ([]byte, error)
	// ParseWithOptions converts Markdown into HTML using the supplied overrides.
	ParseWithOptions(markdown []byte, opts ParseOptions) ([]byte, error)
}

// ParseOptions customises Markdown parsing behaviour.
type ParseOptions struct {
	Extensions []string
	Sanitize   bool
	HardWraps  bool
	SafeMode   bool
	HeadingIDs bool
}

// MarkdownService resolves request paths to files under the base directory
// and turns them into rendered documents.
type MarkdownService interface {
	Resolve(path string) string
	Load(ctx context.Context, path string, opts LoadOptions) (*Document, error)
	Render(ctx context.Context, markdown []byte, opts ParseOptions) ([]byte, error)
	RenderDocument(ctx context.Context, doc *Document, opts ParseOptions) ([]byte, error)
}

// Document represents a Markdown file read for a single request.
type Document struct {
	// ID is derived from FilePath and stays stable for the same file.
	ID uuid.UUID
	// FilePath is the resolved path, base directory included.
	FilePath string
	// Name is the base name of FilePath and doubles as the page title.
	Name         string
	FrontMatter  FrontMatter
	Body         []byte
	BodyHTML     []byte
	LastModified time.Time
	// Checksum stores the SHA-256 digest of the original file content.
	Checksum []byte
}

// FrontMatter models metadata extracted from Markdown files when front
// matter parsing is enabled.
type FrontMatter struct {
	Title   string         `yaml:"title" json:"title"`
	Slug    string         `yaml:"slug" json:"slug"`
	Summary string         `yaml:"summary" json:"summary"`
	Tags    []string       `yaml:"tags" json:"tags"`
	Author  string         `yaml:"author" json:"author"`
	Date    time.Time      `yaml:"date" json:"date"`
	Draft   bool           `yaml:"draft" json:"draft"`
	Custom  map[string]any `yaml:",inline" json:"custom"`
	Raw     map[string]any `yaml:"-" json:"raw"`
}

// LoadOptions fine-tunes how a single document is read and parsed.
type LoadOptions struct {
	// FrontMatter overrides the service default for front matter stripping.
	FrontMatter *bool
	Parser      ParseOptions
}
