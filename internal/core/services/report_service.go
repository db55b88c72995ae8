package services

import (
	"context"
	"time"

	"github.com/reportly/backend/internal/core/ports"
	"github.com/reportly/backend/internal/domain"
	"github.com/reportly/backend/internal/infrastructure/logger"
	"golang.org/x/sync/errgroup"
)

type reportService struct {
	tasks  ports.TasksSource
	notes  ports.NotesSource
	logger *logger.Logger
}

type ReportServiceConfig struct {
	Tasks  ports.TasksSource
	Notes  ports.NotesSource
	Logger *logger.Logger
}

func NewReportService(cfg ReportServiceConfig) ports.ReportService {
	return &reportService{
		tasks:  cfg.Tasks,
		notes:  cfg.Notes,
		logger: cfg.Logger,
	}
}

// GenerateReport fans out to both upstreams concurrently. The fetches are
// independent; the first failure cancels the group context so the sibling
// call is not left running, and no partial report is ever produced.
func (s *reportService) GenerateReport(ctx context.Context) (*domain.Report, error) {
	start := time.Now()

	var (
		tasks []domain.Task
		notes []domain.Note
	)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		fetched, err := s.tasks.FetchTasks(ctx)
		if err != nil {
			s.logger.Warnw("report_tasks_fetch_failed", "error", err)
			return err
		}
		tasks = fetched
		return nil
	})

	g.Go(func() error {
		fetched, err := s.notes.FetchNotes(ctx)
		if err != nil {
			s.logger.Warnw("report_notes_fetch_failed", "error", err)
			return err
		}
		notes = fetched
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := BuildReport(tasks, notes)
	s.logger.Infow("report_built",
		"tasks_fetched", len(tasks),
		"notes_fetched", len(notes),
		"completed_tasks", report.CompletedTasksCount,
		"total_notes", report.TotalNotesCount,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return &report, nil
}
