package mdserve_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-mdserve"
	"github.com/goliatone/go-mdserve/pkg/interfaces"
)

func TestDefaultConfigMatchesShippedBehaviour(t *testing.T) {
	cfg := mdserve.DefaultConfig()
	if cfg.Server.Addr != "127.0.0.1:3000" {
		t.Fatalf("expected 127.0.0.1:3000, got %q", cfg.Server.Addr)
	}
	if cfg.Markdown.BaseDir != "static" {
		t.Fatalf("expected static base dir, got %q", cfg.Markdown.BaseDir)
	}
	if cfg.Markdown.Confine || cfg.Markdown.FrontMatter || cfg.Markdown.Parser.Sanitize {
		t.Fatalf("expected hardening and front matter to be off by default: %+v", cfg.Markdown)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := mdserve.DefaultConfig()
	cfg.Markdown.BaseDir = " "

	if _, err := mdserve.New(cfg); !errors.Is(err, mdserve.ErrMarkdownBaseDirRequired) {
		t.Fatalf("expected ErrMarkdownBaseDirRequired, got %v", err)
	}
}

func TestModuleExposesServices(t *testing.T) {
	base := t.TempDir()
	if err := os.WriteFile(filepath.Join(base, "notes.md"), []byte("Some *notes*"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cfg := mdserve.DefaultConfig()
	cfg.Markdown.BaseDir = base
	cfg.Logging.Level = "error"

	module, err := mdserve.New(cfg, mdserve.WithStdout(io.Discard))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	doc, err := module.Markdown().Load(context.Background(), "notes.md", interfaces.LoadOptions{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !strings.Contains(string(doc.BodyHTML), "<em>notes</em>") {
		t.Fatalf("unexpected html %q", doc.BodyHTML)
	}

	html, err := module.Pages().Render(interfaces.Page{Title: doc.Name, Body: "x"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(string(html), "<title>notes.md</title>") {
		t.Fatalf("unexpected page %q", html)
	}

	resp, err := module.Server().App().Test(httptest.NewRequest(http.MethodGet, "/notes.md", nil), -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if module.Container() == nil {
		t.Fatalf("expected container")
	}
}
