package http

import (
	"encoding/json"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/reportly/backend/internal/config"
	"github.com/reportly/backend/internal/infrastructure/logger"
	"github.com/reportly/backend/internal/transport/http/dto"
)

func fakeUpstream(t *testing.T, path, body string, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.URL.Path != path {
			nethttp.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newWiredApp(t *testing.T, tasksURL, notesURL string) *fiber.App {
	t.Helper()

	cfg := &config.Config{}
	cfg.Upstreams.Tasks = config.UpstreamConfig{BaseURL: tasksURL, Timeout: 2 * time.Second, StrictRecords: true}
	cfg.Upstreams.Notes = config.UpstreamConfig{BaseURL: notesURL, Timeout: 2 * time.Second, StrictRecords: true}

	app := fiber.New()
	SetupRoutes(app, RouterConfig{
		Logger: logger.NewNop(),
		Config: cfg,
	})
	return app
}

func TestReportEndToEnd(t *testing.T) {
	tasksSrv := fakeUpstream(t, "/tasks", `[
		{"id": 1, "status": "completed"},
		{"id": 2, "status": "pending"},
		{"id": 3, "status": "completed"}
	]`, nethttp.StatusOK)
	notesSrv := fakeUpstream(t, "/notes", `[
		{"id": 1, "content": "a", "createdAt": "2024-05-01T10:00:00Z"},
		{"id": 2, "content": "b", "createdAt": "2024-05-02T10:00:00Z"}
	]`, nethttp.StatusOK)

	app := newWiredApp(t, tasksSrv.URL, notesSrv.URL)

	for _, route := range []string{"/reports", "/api/v1/reports"} {
		resp, err := app.Test(httptest.NewRequest("GET", route, nil), 5000)
		if err != nil {
			t.Fatalf("app.Test(%s) error = %v", route, err)
		}
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("GET %s status = %d, want 200", route, resp.StatusCode)
		}

		raw, _ := io.ReadAll(resp.Body)
		var body dto.ReportResponse
		if err := json.Unmarshal(raw, &body); err != nil {
			t.Fatalf("failed to decode %q: %v", raw, err)
		}
		if body.CompletedTasksCount != 2 {
			t.Errorf("GET %s completedTasksCount = %d, want 2", route, body.CompletedTasksCount)
		}
		if body.TotalNotesCount != 2 {
			t.Errorf("GET %s totalNotesCount = %d, want 2", route, body.TotalNotesCount)
		}
	}
}

func TestReportEndToEndTasksDown(t *testing.T) {
	// tasks upstream not running at all
	deadSrv := httptest.NewServer(nethttp.NotFoundHandler())
	deadSrv.Close()
	notesSrv := fakeUpstream(t, "/notes", `[{"id": 1, "content": "a"}]`, nethttp.StatusOK)

	app := newWiredApp(t, deadSrv.URL, notesSrv.URL)

	resp, err := app.Test(httptest.NewRequest("GET", "/reports", nil), 5000)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != fiber.StatusBadGateway {
		t.Fatalf("status = %d, want 502", resp.StatusCode)
	}

	raw, _ := io.ReadAll(resp.Body)
	var body dto.ErrorResponse
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("failed to decode %q: %v", raw, err)
	}
	if body.Kind != dto.KindUpstreamUnavailable {
		t.Errorf("kind = %q, want %q", body.Kind, dto.KindUpstreamUnavailable)
	}
}

func TestReportEndToEndNotesBadPayload(t *testing.T) {
	tasksSrv := fakeUpstream(t, "/tasks", `[]`, nethttp.StatusOK)
	notesSrv := fakeUpstream(t, "/notes", `{"oops": true}`, nethttp.StatusOK)

	app := newWiredApp(t, tasksSrv.URL, notesSrv.URL)

	resp, err := app.Test(httptest.NewRequest("GET", "/reports", nil), 5000)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != fiber.StatusBadGateway {
		t.Fatalf("status = %d, want 502", resp.StatusCode)
	}

	raw, _ := io.ReadAll(resp.Body)
	var body dto.ErrorResponse
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("failed to decode %q: %v", raw, err)
	}
	if body.Kind != dto.KindUpstreamBadResponse {
		t.Errorf("kind = %q, want %q", body.Kind, dto.KindUpstreamBadResponse)
	}
}
