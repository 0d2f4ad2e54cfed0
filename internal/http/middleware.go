package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/goliatone/go-mdserve/internal/logging"
)

const (
	headerRequestID = "X-Request-ID"
	fieldRequestID  = "request_id"
)

// requestContext tags every request with a correlation id, reusing the
// caller's X-Request-ID when present, and stores it in the user context so
// loggers pick it up.
func requestContext() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := strings.Clone(c.Get(headerRequestID))
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(headerRequestID, id)
		c.SetUserContext(logging.ContextWithFields(c.UserContext(), map[string]any{
			fieldRequestID: id,
		}))
		return c.Next()
	}
}
