package middleware

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/reportly/backend/internal/config"
)

// The handler must see the ID under the "request_id" local; log sites read it
// from there.
func newRequestIDApp(header string) *fiber.App {
	cfg := &config.Config{}
	cfg.Features.RequestIDHeader = header

	app := fiber.New()
	app.Use(RequestID(cfg))
	app.Get("/", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("request_id").(string)
		return c.SendString(reqID)
	})
	return app
}

func TestRequestIDAcceptsInboundHeader(t *testing.T) {
	app := newRequestIDApp("X-Request-ID")

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Request-ID", "caller-supplied-id")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}

	body, _ := io.ReadAll(resp.Body)
	if string(body) != "caller-supplied-id" {
		t.Errorf("request_id local = %q, want %q", body, "caller-supplied-id")
	}
	if got := resp.Header.Get("X-Request-ID"); got != "caller-supplied-id" {
		t.Errorf("echoed header = %q, want %q", got, "caller-supplied-id")
	}
}

func TestRequestIDGeneratesWhenAbsent(t *testing.T) {
	app := newRequestIDApp("X-Request-ID")

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}

	body, _ := io.ReadAll(resp.Body)
	if _, err := uuid.Parse(string(body)); err != nil {
		t.Errorf("request_id local %q is not a uuid: %v", body, err)
	}
	if resp.Header.Get("X-Request-ID") != string(body) {
		t.Errorf("echoed header %q does not match local %q", resp.Header.Get("X-Request-ID"), body)
	}
}

func TestRequestIDNoHeaderConfigured(t *testing.T) {
	app := newRequestIDApp("")

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Request-ID", "ignored-without-config")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}

	body, _ := io.ReadAll(resp.Body)
	if _, err := uuid.Parse(string(body)); err != nil {
		t.Errorf("request_id local %q is not a generated uuid: %v", body, err)
	}
}
