package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/reportly/backend/internal/core/ports"
	"github.com/reportly/backend/internal/domain"
	"github.com/reportly/backend/internal/infrastructure/logger"
	"github.com/reportly/backend/internal/transport/http/dto"
)

type ReportHandler struct {
	service ports.ReportService
	logger  *logger.Logger
}

func NewReportHandler(service ports.ReportService, logger *logger.Logger) *ReportHandler {
	return &ReportHandler{service: service, logger: logger}
}

func (h *ReportHandler) GetReport(c *fiber.Ctx) error {
	h.logger.Infow("report_request", "request_id", c.Locals("request_id"))

	report, err := h.service.GenerateReport(c.Context())
	if err != nil {
		status, body := MapReportError(err)
		if status == fiber.StatusInternalServerError {
			h.logger.Errorw("report_failed", "kind", body.Kind, "error", err)
		} else {
			h.logger.Warnw("report_upstream_failed", "kind", body.Kind, "error", err)
		}
		return c.Status(status).JSON(body)
	}

	return c.JSON(dto.ReportToResponse(report))
}

// MapReportError translates the upstream failure taxonomy into a status code
// and a machine-readable body. Both upstream kinds land in the dependency-
// failure class (502), distinct from internal errors (500).
func MapReportError(err error) (int, dto.ErrorResponse) {
	switch {
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		return fiber.StatusBadGateway, dto.ErrorResponse{
			Error: err.Error(),
			Kind:  dto.KindUpstreamUnavailable,
		}
	case errors.Is(err, domain.ErrUpstreamBadResponse):
		return fiber.StatusBadGateway, dto.ErrorResponse{
			Error: err.Error(),
			Kind:  dto.KindUpstreamBadResponse,
		}
	default:
		return fiber.StatusInternalServerError, dto.ErrorResponse{
			Error: "internal error",
			Kind:  dto.KindInternalError,
		}
	}
}
