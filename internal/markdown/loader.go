package markdown

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/goliatone/go-mdserve/pkg/interfaces"
)

// LoaderConfig configures where requested files are read from.
type LoaderConfig struct {
	// BaseDir is prefixed to every request path.
	BaseDir string
	// Confine bounds reads to BaseDir. Paths escaping it fail as unreadable.
	Confine bool
}

// Loader turns request paths into Markdown documents.
type Loader struct {
	baseDir string
	confine bool
}

// NewLoader constructs a Loader for the supplied base directory.
func NewLoader(cfg LoaderConfig) *Loader {
	base := cfg.BaseDir
	if len(base) > 1 {
		base = strings.TrimSuffix(base, string(filepath.Separator))
	}
	return &Loader{
		baseDir: base,
		confine: cfg.Confine,
	}
}

// Resolve joins the base directory and the request path. The request path is
// not cleaned, so ".." segments reach the filesystem as written.
func (l *Loader) Resolve(path string) string {
	return l.baseDir + string(filepath.Separator) + path
}

// LoadFile reads the file behind path and builds its document.
func (l *Loader) LoadFile(ctx context.Context, path string, withFrontMatter bool) (*DocumentResult, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	resolved := l.Resolve(path)

	var (
		data     []byte
		modified time.Time
		err      error
	)
	if l.confine {
		data, modified, err = l.readConfined(path)
	} else {
		data, modified, err = readFile(resolved)
	}
	if err != nil {
		return nil, wrapReadError(resolved, err)
	}

	if !utf8.Valid(data) {
		return nil, wrapEncodingError(resolved)
	}

	doc, err := BuildDocument(resolved, data, modified, withFrontMatter)
	if err != nil {
		return nil, err
	}

	return &DocumentResult{
		Document: doc,
		Source:   data,
	}, nil
}

func (l *Loader) readConfined(path string) ([]byte, time.Time, error) {
	root, err := os.OpenRoot(l.baseDir)
	if err != nil {
		return nil, time.Time{}, err
	}
	defer root.Close()

	f, err := root.Open(filepath.FromSlash(path))
	if err != nil {
		return nil, time.Time{}, err
	}
	defer f.Close()

	return readOpened(f)
}

func readFile(resolved string) ([]byte, time.Time, error) {
	f, err := os.Open(resolved)
	if err != nil {
		return nil, time.Time{}, err
	}
	defer f.Close()

	return readOpened(f)
}

func readOpened(f *os.File) ([]byte, time.Time, error) {
	info, err := f.Stat()
	if err != nil {
		return nil, time.Time{}, err
	}
	if info.IsDir() {
		return nil, time.Time{}, ErrIsDirectory
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, time.Time{}, err
	}
	return data, info.ModTime(), nil
}

// DocumentResult carries the parsed document along with the raw source.
type DocumentResult struct {
	Document *interfaces.Document
	Source   []byte
}
