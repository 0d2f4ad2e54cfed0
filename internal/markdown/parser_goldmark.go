package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/samber/lo"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/goliatone/go-mdserve/pkg/interfaces"
)

// GoldmarkParser implements interfaces.MarkdownParser using the goldmark engine.
// The parser is stateless so a single instance serves every request.
type GoldmarkParser struct {
	defaultOptions interfaces.ParseOptions
	policy         *bluemonday.Policy
}

// NewGoldmarkParser constructs a parser with the supplied defaults. With zero
// options it renders plain CommonMark and lets raw HTML through untouched.
func NewGoldmarkParser(defaults interfaces.ParseOptions) *GoldmarkParser {
	return &GoldmarkParser{
		defaultOptions: defaults,
		policy:         bluemonday.UGCPolicy(),
	}
}

// Parse renders Markdown into HTML using the parser's default configuration.
func (p *GoldmarkParser) Parse(markdown []byte) ([]byte, error) {
	return p.ParseWithOptions(markdown, p.defaultOptions)
}

// ParseWithOptions renders Markdown into HTML using the provided options.
// Conversion never fails on malformed input; errors only come from the writer.
func (p *GoldmarkParser) ParseWithOptions(markdown []byte, opts interfaces.ParseOptions) ([]byte, error) {
	engine := newGoldmarkEngine(opts)
	var buf bytes.Buffer
	if err := engine.Convert(markdown, &buf); err != nil {
		return nil, fmt.Errorf("markdown parse: %w", err)
	}
	if opts.Sanitize {
		return p.policy.SanitizeBytes(buf.Bytes()), nil
	}
	return buf.Bytes(), nil
}

func newGoldmarkEngine(opts interfaces.ParseOptions) goldmark.Markdown {
	exts := collectExtensions(opts.Extensions)

	parserOptions := []parser.Option{}
	if opts.HeadingIDs {
		parserOptions = append(parserOptions, parser.WithAutoHeadingID())
	}

	rendererOptions := []renderer.Option{}

	if opts.HardWraps {
		rendererOptions = append(rendererOptions, html.WithHardWraps())
	}

	// Sanitize keeps raw HTML in the goldmark output; bluemonday scrubs it afterwards.
	if !opts.SafeMode {
		rendererOptions = append(rendererOptions, html.WithUnsafe())
	}

	engineOptions := []goldmark.Option{}

	if len(parserOptions) > 0 {
		engineOptions = append(engineOptions, goldmark.WithParserOptions(parserOptions...))
	}

	if len(rendererOptions) > 0 {
		engineOptions = append(engineOptions, goldmark.WithRendererOptions(rendererOptions...))
	}

	if len(exts) > 0 {
		engineOptions = append(engineOptions, goldmark.WithExtensions(exts...))
	}

	return goldmark.New(engineOptions...)
}

var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"tables":        extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"autolink":      extension.Linkify,
	"tasklist":      extension.TaskList,
	"definition":    extension.DefinitionList,
	"footnote":      extension.Footnote,
	"typographer":   extension.Typographer,
}

// collectExtensions maps extension names to goldmark extenders. An empty
// list and unknown names such as "none" leave plain CommonMark.
func collectExtensions(names []string) []goldmark.Extender {
	if len(names) == 0 {
		return nil
	}

	keys := lo.Uniq(lo.Map(names, func(name string, _ int) string {
		return strings.ToLower(strings.TrimSpace(name))
	}))

	return lo.FilterMap(keys, func(key string, _ int) (goldmark.Extender, bool) {
		ext, ok := extensionRegistry[key]
		return ext, ok
	})
}
