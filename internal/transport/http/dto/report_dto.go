package dto

import "github.com/reportly/backend/internal/domain"

// Error kinds exposed in error bodies so callers can dispatch without
// parsing the human message.
const (
	KindUpstreamUnavailable = "upstream_unavailable"
	KindUpstreamBadResponse = "upstream_bad_response"
	KindInternalError       = "internal_error"
	KindUnauthorized        = "unauthorized"
)

type ReportResponse struct {
	CompletedTasksCount int `json:"completedTasksCount"`
	TotalNotesCount     int `json:"totalNotesCount"`
}

func ReportToResponse(report *domain.Report) ReportResponse {
	return ReportResponse{
		CompletedTasksCount: report.CompletedTasksCount,
		TotalNotesCount:     report.TotalNotesCount,
	}
}

type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}
