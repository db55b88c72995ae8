package ports

import (
	"context"

	"github.com/reportly/backend/internal/domain"
)

// TasksSource fetches the full task collection from the tasks upstream.
type TasksSource interface {
	FetchTasks(ctx context.Context) ([]domain.Task, error)
}

// NotesSource fetches the full note collection from the notes upstream.
type NotesSource interface {
	FetchNotes(ctx context.Context) ([]domain.Note, error)
}

// ReportService builds an aggregate report from both upstreams. There is no
// partial result: either both fetches succeed and a report is returned, or
// the first upstream failure is returned and the report is nil.
type ReportService interface {
	GenerateReport(ctx context.Context) (*domain.Report, error)
}
