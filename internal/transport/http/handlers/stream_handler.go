package handlers

import (
	"context"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/reportly/backend/internal/core/ports"
	"github.com/reportly/backend/internal/infrastructure/logger"
	"github.com/reportly/backend/internal/transport/http/dto"
)

// ReportStreamHandler pushes a freshly built report over a websocket on a
// fixed interval, for dashboards that poll would otherwise hammer the
// upstreams from many tabs at once.
type ReportStreamHandler struct {
	service  ports.ReportService
	logger   *logger.Logger
	interval time.Duration
}

func NewReportStreamHandler(service ports.ReportService, logger *logger.Logger, interval time.Duration) *ReportStreamHandler {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &ReportStreamHandler{service: service, logger: logger, interval: interval}
}

// jsonWriter is the slice of *websocket.Conn the push loop needs; narrowed
// so the loop can be exercised without a live connection.
type jsonWriter interface {
	WriteJSON(v interface{}) error
}

func (h *ReportStreamHandler) Handle(c *websocket.Conn) {
	defer c.Close()

	h.logger.Infow("report_stream_connected", "remote", c.RemoteAddr().String())

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		if err := h.push(c); err != nil {
			h.logger.Infow("report_stream_closed", "error", err)
			return
		}
		<-ticker.C
	}
}

// push builds one report and writes either the report body or the same
// machine-readable error body the REST endpoint returns. A build failure
// keeps the stream open; only a write failure means the client went away.
func (h *ReportStreamHandler) push(w jsonWriter) error {
	report, err := h.service.GenerateReport(context.Background())
	if err != nil {
		_, body := MapReportError(err)
		h.logger.Warnw("report_stream_build_failed", "kind", body.Kind, "error", err)
		return w.WriteJSON(body)
	}
	return w.WriteJSON(dto.ReportToResponse(report))
}
