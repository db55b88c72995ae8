package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/reportly/backend/internal/config"
)

// RequestID accepts an inbound correlation ID from the configured header, or
// mints one, and stores it under the "request_id" local for log sites. The ID
// is echoed back on the response so callers can correlate too.
func RequestID(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		hdr := cfg.Features.RequestIDHeader
		var reqID string
		if hdr != "" {
			reqID = c.Get(hdr)
		}
		if reqID == "" {
			reqID = uuid.New().String()
		}

		c.Locals("request_id", reqID)
		if hdr != "" {
			c.Set(hdr, reqID)
		}
		return c.Next()
	}
}
