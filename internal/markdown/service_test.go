package markdown

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-mdserve/internal/logging"
	"github.com/goliatone/go-mdserve/internal/logging/console"
	"github.com/goliatone/go-mdserve/pkg/interfaces"
)

func TestServiceResolve(t *testing.T) {
	svc := newTestService(t, Config{BaseDir: "static"})

	cases := map[string]string{
		"hello.md":          filepath.Join("static", "hello.md"),
		"sub/dir/page.md":   "static" + string(filepath.Separator) + "sub/dir/page.md",
		"../outside.md":     "static" + string(filepath.Separator) + "../outside.md",
		"":                  "static" + string(filepath.Separator),
		"with space/a b.md": "static" + string(filepath.Separator) + "with space/a b.md",
	}
	for input, want := range cases {
		if got := svc.Resolve(input); got != want {
			t.Fatalf("Resolve(%q): want %q, got %q", input, want, got)
		}
	}
}

func TestServiceLoad(t *testing.T) {
	svc := newTestService(t, Config{BaseDir: filepath.Join("testdata", "site")})

	doc, err := svc.Load(context.Background(), "hello.md", interfaces.LoadOptions{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if doc.Name != "hello.md" {
		t.Fatalf("expected name hello.md, got %s", doc.Name)
	}
	if !strings.Contains(string(doc.BodyHTML), "<h1>Title</h1>") {
		t.Fatalf("expected BodyHTML to be populated, got %q", string(doc.BodyHTML))
	}
	if len(doc.Checksum) == 0 {
		t.Fatalf("expected checksum to be populated")
	}
	if doc.LastModified.IsZero() {
		t.Fatalf("expected modification time to be populated")
	}
}

func TestServiceLoad_NestedPath(t *testing.T) {
	svc := newTestService(t, Config{BaseDir: filepath.Join("testdata", "site")})

	doc, err := svc.Load(context.Background(), "sub/dir/page.md", interfaces.LoadOptions{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if doc.Name != "page.md" {
		t.Fatalf("expected name page.md, got %s", doc.Name)
	}
	if !strings.Contains(string(doc.BodyHTML), "<h2>Nested</h2>") {
		t.Fatalf("unexpected html %q", string(doc.BodyHTML))
	}
}

func TestServiceLoad_EmptyFile(t *testing.T) {
	svc := newTestService(t, Config{BaseDir: filepath.Join("testdata", "site")})

	doc, err := svc.Load(context.Background(), "empty.md", interfaces.LoadOptions{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(doc.BodyHTML) != 0 {
		t.Fatalf("expected empty fragment, got %q", string(doc.BodyHTML))
	}
}

func TestServiceLoad_Unreadable(t *testing.T) {
	svc := newTestService(t, Config{BaseDir: filepath.Join("testdata", "site")})

	for _, path := range []string{"missing.md", "sub", "latin1.md", ""} {
		_, err := svc.Load(context.Background(), path, interfaces.LoadOptions{})
		if err == nil {
			t.Fatalf("expected error loading %q", path)
		}
		if !IsNotFound(err) {
			t.Fatalf("expected not-found category for %q, got %v", path, err)
		}
	}
}

func TestServiceLoad_PermissionDenied(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "locked.md")
	if err := os.WriteFile(path, []byte("# locked"), 0o000); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	svc := newTestService(t, Config{BaseDir: dir})
	_, err := svc.Load(context.Background(), "locked.md", interfaces.LoadOptions{})
	if !IsNotFound(err) {
		t.Fatalf("expected not-found category, got %v", err)
	}
}

func TestServiceLoad_FrontMatter(t *testing.T) {
	svc := newTestService(t, Config{BaseDir: filepath.Join("testdata", "site")})

	doc, err := svc.Load(context.Background(), "frontmatter.md", interfaces.LoadOptions{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !strings.Contains(string(doc.BodyHTML), "slug: release-notes") {
		t.Fatalf("expected front matter rendered as markdown by default, got %q", string(doc.BodyHTML))
	}

	enabled := true
	doc, err = svc.Load(context.Background(), "frontmatter.md", interfaces.LoadOptions{FrontMatter: &enabled})
	if err != nil {
		t.Fatalf("Load with front matter: %v", err)
	}
	if strings.Contains(string(doc.BodyHTML), "slug:") {
		t.Fatalf("expected front matter stripped, got %q", string(doc.BodyHTML))
	}
	if doc.FrontMatter.Title != "Release Notes" {
		t.Fatalf("expected front matter title, got %q", doc.FrontMatter.Title)
	}
	if doc.Name != "frontmatter.md" {
		t.Fatalf("expected name to stay the file name, got %q", doc.Name)
	}
}

func TestServiceLoad_LogsDocumentMetadata(t *testing.T) {
	base := t.TempDir()
	source := []byte("---\ntitle: Weekly\n---\n# Weekly")
	if err := os.WriteFile(filepath.Join(base, "weekly-report.md"), source, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	var logs bytes.Buffer
	provider := console.NewProvider(console.Options{Writer: &logs})
	svc, err := NewService(Config{BaseDir: base, FrontMatter: true}, nil,
		WithLogger(logging.MarkdownLogger(provider)))
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	doc, err := svc.Load(context.Background(), "weekly-report.md", interfaces.LoadOptions{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	sum := sha256.Sum256(source)
	out := logs.String()
	for _, want := range []string{
		"markdown.document.rendered",
		"slug=weekly-report",
		"checksum=" + hex.EncodeToString(sum[:]),
		"last_modified=" + doc.LastModified.UTC().Format(time.RFC3339Nano),
		"document_id=" + doc.ID.String(),
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in logs:\n%s", want, out)
		}
	}
}

func TestServiceLoad_Traversal(t *testing.T) {
	root := t.TempDir()
	base := filepath.Join(root, "static")
	if err := os.MkdirAll(base, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "secret.md"), []byte("# secret"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	open := newTestService(t, Config{BaseDir: base})
	doc, err := open.Load(context.Background(), "../secret.md", interfaces.LoadOptions{})
	if err != nil {
		t.Fatalf("expected unconfined loader to follow ..: %v", err)
	}
	if !strings.Contains(string(doc.BodyHTML), "secret") {
		t.Fatalf("unexpected html %q", string(doc.BodyHTML))
	}

	confined := newTestService(t, Config{BaseDir: base, Confine: true})
	if _, err := confined.Load(context.Background(), "../secret.md", interfaces.LoadOptions{}); !IsNotFound(err) {
		t.Fatalf("expected confined loader to reject traversal, got %v", err)
	}
}

func TestServiceLoad_ConfinedReadsInsideBase(t *testing.T) {
	svc := newTestService(t, Config{BaseDir: filepath.Join("testdata", "site"), Confine: true})

	doc, err := svc.Load(context.Background(), "sub/dir/page.md", interfaces.LoadOptions{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if doc.FilePath != svc.Resolve("sub/dir/page.md") {
		t.Fatalf("expected resolved path, got %q", doc.FilePath)
	}
}

func TestServiceLoad_CancelledContext(t *testing.T) {
	svc := newTestService(t, Config{BaseDir: filepath.Join("testdata", "site")})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.Load(ctx, "hello.md", interfaces.LoadOptions{}); err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestNewService_RequiresBaseDir(t *testing.T) {
	if _, err := NewService(Config{BaseDir: " "}, nil); err == nil {
		t.Fatal("expected error for empty base directory")
	}
}

func TestServiceRenderDocument_UsesInjectedParser(t *testing.T) {
	parser := &recordingParser{output: []byte("<p>stub</p>")}
	svc, err := NewService(Config{BaseDir: "static"}, parser)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	doc := &interfaces.Document{Body: []byte("anything")}
	html, err := svc.RenderDocument(context.Background(), doc, interfaces.ParseOptions{HardWraps: true})
	if err != nil {
		t.Fatalf("RenderDocument: %v", err)
	}
	if string(html) != "<p>stub</p>" || string(doc.BodyHTML) != "<p>stub</p>" {
		t.Fatalf("expected stub output, got %q", string(html))
	}
	if !parser.last.HardWraps {
		t.Fatalf("expected override options to reach the parser")
	}
}

type recordingParser struct {
	output []byte
	last   interfaces.ParseOptions
}

func (p *recordingParser) Parse(markdown []byte) ([]byte, error) {
	return p.ParseWithOptions(markdown, interfaces.ParseOptions{})
}

func (p *recordingParser) ParseWithOptions(_ []byte, opts interfaces.ParseOptions) ([]byte, error) {
	p.last = opts
	return p.output, nil
}

func newTestService(tb testing.TB, cfg Config) *Service {
	tb.Helper()

	svc, err := NewService(cfg, nil)
	if err != nil {
		tb.Fatalf("NewService: %v", err)
	}
	return svc
}
