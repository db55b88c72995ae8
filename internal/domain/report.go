package domain

import "time"

// ==================== ENUMS ====================

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusCancelled  TaskStatus = "cancelled"
)

// ==================== MODELS ====================

// Task is a read-only copy of a record owned by the tasks upstream. It lives
// only for the duration of one report request.
type Task struct {
	ID     int64      `json:"id"`
	Status TaskStatus `json:"status"`
}

func (t Task) IsCompleted() bool {
	return t.Status == TaskStatusCompleted
}

// Note is a read-only copy of a record owned by the notes upstream.
type Note struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// Report holds the aggregate counters derived from one pair of upstream
// fetches. It is a value, constructed fresh per request and never persisted.
type Report struct {
	CompletedTasksCount int `json:"completedTasksCount"`
	TotalNotesCount     int `json:"totalNotesCount"`
}
