package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/goliatone/go-mdserve/internal/logging"
	"github.com/goliatone/go-mdserve/internal/page"
	"github.com/goliatone/go-mdserve/pkg/interfaces"
)

// PageHandler serves rendered Markdown pages.
type PageHandler struct {
	markdown interfaces.MarkdownService
	pages    interfaces.PageRenderer
	logger   interfaces.Logger
}

// NewPageHandler wires the handler. A nil logger disables request logging.
func NewPageHandler(markdown interfaces.MarkdownService, pages interfaces.PageRenderer, logger interfaces.Logger) *PageHandler {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &PageHandler{
		markdown: markdown,
		pages:    pages,
		logger:   logger,
	}
}

// Register mounts the wildcard route on router.
func (h *PageHandler) Register(router fiber.Router) {
	router.Get("/*", h.Serve)
}

// Serve resolves the wildcard path, renders the file and writes the page.
// Every unreadable path yields 404; the bare root answers an empty 404.
func (h *PageHandler) Serve(c *fiber.Ctx) error {
	// fiber reuses the param buffer after the handler returns.
	requested := strings.Clone(c.Params("*"))
	if requested == "" {
		// The wildcard needs at least one segment; "/" is a route miss.
		c.Status(fiber.StatusNotFound)
		return nil
	}
	resolved := h.markdown.Resolve(requested)

	ctx := c.UserContext()
	logger := logging.WithMarkdownContext(
		logging.WithRequestContext(h.logger, c.Method(), requested),
		resolved, "serve",
	).WithContext(ctx)
	logger.Info("page.request")

	doc, err := h.markdown.Load(ctx, requested, interfaces.LoadOptions{})
	if err != nil {
		status, body := mapError(resolved, err)
		logger.Warn("page.unavailable", "status", status, "error", err)
		return writeText(c, status, body)
	}

	body, err := h.pages.Render(page.FromDocument(doc))
	if err != nil {
		status, msg := mapError(resolved, err)
		logger.Error("page.render_failed", "status", status, "error", err)
		return writeText(c, status, msg)
	}

	logger.Debug("page.served", "document_id", doc.ID.String(), "bytes", len(body))
	return writeHTML(c, body)
}
