package http

import (
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/goliatone/go-mdserve/internal/markdown"
)

const (
	contentTypeHTML = "text/html; charset=utf-8"
	notFoundPrefix  = "Fichier non trouvé: "
)

// NotFoundMessage is the plain-text body returned for unreadable paths.
func NotFoundMessage(resolved string) string {
	return notFoundPrefix + resolved
}

// mapError turns a load or render failure into a status and plain-text body.
func mapError(resolved string, err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, "unknown error"
	}
	if markdown.IsNotFound(err) {
		return http.StatusNotFound, NotFoundMessage(resolved)
	}
	return http.StatusInternalServerError, fmt.Sprintf("Erreur de rendu: %s", resolved)
}

func writeText(c *fiber.Ctx, status int, body string) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.Status(status).SendString(body)
}

func writeHTML(c *fiber.Ctx, body []byte) error {
	c.Set(fiber.HeaderContentType, contentTypeHTML)
	return c.Status(http.StatusOK).Send(body)
}
