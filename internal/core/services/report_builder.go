package services

import "github.com/reportly/backend/internal/domain"

// BuildReport derives the aggregate counters from the fetched collections.
// Pure computation: no I/O, no failure modes. Malformed records are the
// clients' problem; everything that reaches this point counts.
func BuildReport(tasks []domain.Task, notes []domain.Note) domain.Report {
	completed := 0
	for _, t := range tasks {
		if t.IsCompleted() {
			completed++
		}
	}

	return domain.Report{
		CompletedTasksCount: completed,
		TotalNotesCount:     len(notes),
	}
}
