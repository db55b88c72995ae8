package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/reportly/backend/internal/config"
	"github.com/reportly/backend/internal/transport/http/dto"
)

// AdminAuth gates report routes on a configured API key, taken from either
// X-Admin-Token or a bearer Authorization header. With no key configured it
// enforces nothing — the same simulated-authentication posture the original
// deployment had. It is not a security boundary.
func AdminAuth(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		apiKey := cfg.Auth.AdminAPIKey
		if apiKey == "" {
			return c.Next()
		}

		token := c.Get("X-Admin-Token")
		if token == "" {
			token = bearerToken(c.Get("Authorization"))
		}

		if token != apiKey {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: "unauthorized",
				Kind:  dto.KindUnauthorized,
			})
		}

		return c.Next()
	}
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return header[len(prefix):]
}
