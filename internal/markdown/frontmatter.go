package markdown

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/goliatone/go-slug"

	"github.com/goliatone/go-mdserve/internal/identity"
	"github.com/goliatone/go-mdserve/pkg/interfaces"
)

// ParseFrontMatter extracts YAML or TOML metadata from the head of the source
// and returns it with the remaining Markdown body. Sources without front
// matter come back unchanged.
func ParseFrontMatter(source []byte) (interfaces.FrontMatter, []byte, error) {
	var meta frontMatterEnvelope

	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return interfaces.FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	return envelopeToFrontMatter(meta), body, nil
}

// BuildDocument assembles a document for the resolved path. When
// withFrontMatter is false the whole source is treated as Markdown body.
// BodyHTML is left empty so callers render lazily.
func BuildDocument(resolved string, source []byte, modified time.Time, withFrontMatter bool) (*interfaces.Document, error) {
	doc := &interfaces.Document{
		ID:           identity.DocumentUUID(resolved),
		FilePath:     resolved,
		Name:         filepath.Base(resolved),
		Body:         source,
		LastModified: modified,
	}

	if withFrontMatter {
		fm, body, err := ParseFrontMatter(source)
		if err != nil {
			return nil, err
		}
		if fm.Slug == "" {
			fm.Slug = slugFromName(doc.Name)
		}
		doc.FrontMatter = fm
		doc.Body = body
	}

	sum := sha256.Sum256(source)
	doc.Checksum = sum[:]

	return doc, nil
}

// slugFromName derives a slug from a file name without its extension.
// Names that normalise to nothing yield "".
func slugFromName(name string) string {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	normalized, err := slug.Normalize(stem)
	if err != nil {
		return ""
	}
	return normalized
}

type frontMatterEnvelope struct {
	Title   string         `yaml:"title" toml:"title"`
	Slug    string         `yaml:"slug" toml:"slug"`
	Summary string         `yaml:"summary" toml:"summary"`
	Tags    []string       `yaml:"tags" toml:"tags"`
	Author  string         `yaml:"author" toml:"author"`
	Date    time.Time      `yaml:"date" toml:"date"`
	Draft   bool           `yaml:"draft" toml:"draft"`
	Custom  map[string]any `yaml:",inline"`
}

func envelopeToFrontMatter(env frontMatterEnvelope) interfaces.FrontMatter {
	raw := make(map[string]any, len(env.Custom)+7)
	for key, value := range env.Custom {
		raw[key] = value
	}

	if env.Title != "" {
		raw["title"] = env.Title
	}
	if env.Slug != "" {
		raw["slug"] = env.Slug
	}
	if env.Summary != "" {
		raw["summary"] = env.Summary
	}
	if len(env.Tags) > 0 {
		raw["tags"] = append([]string(nil), env.Tags...)
	}
	if env.Author != "" {
		raw["author"] = env.Author
	}
	if !env.Date.IsZero() {
		raw["date"] = env.Date
	}
	raw["draft"] = env.Draft

	custom := make(map[string]any, len(env.Custom))
	for key, value := range env.Custom {
		custom[key] = value
	}

	return interfaces.FrontMatter{
		Title:   env.Title,
		Slug:    env.Slug,
		Summary: env.Summary,
		Tags:    append([]string(nil), env.Tags...),
		Author:  env.Author,
		Date:    env.Date,
		Draft:   env.Draft,
		Custom:  custom,
		Raw:     raw,
	}
}
