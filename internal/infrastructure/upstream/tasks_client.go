package upstream

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/reportly/backend/internal/config"
	"github.com/reportly/backend/internal/core/ports"
	"github.com/reportly/backend/internal/domain"
	"github.com/reportly/backend/internal/infrastructure/logger"
)

type TasksClient struct {
	client
}

func NewTasksClient(cfg config.UpstreamConfig, signer RequestSigner, log *logger.Logger) *TasksClient {
	return &TasksClient{client: newClient("tasks", cfg, signer, log)}
}

var _ ports.TasksSource = (*TasksClient)(nil)

// taskRecord is the wire shape; pointer fields distinguish a missing field
// from a zero value so the record policy can be enforced.
type taskRecord struct {
	ID     *int64  `json:"id"`
	Status *string `json:"status"`
}

func (r *taskRecord) validate() error {
	if r.ID == nil {
		return fmt.Errorf("missing field %q", "id")
	}
	if r.Status == nil {
		return fmt.Errorf("missing field %q", "status")
	}
	return nil
}

func (c *TasksClient) FetchTasks(ctx context.Context) ([]domain.Task, error) {
	body, err := c.get(ctx, "/tasks")
	if err != nil {
		return nil, err
	}

	var records []taskRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("%w: tasks: %v", domain.ErrUpstreamBadResponse, err)
	}

	tasks := make([]domain.Task, 0, len(records))
	for i, rec := range records {
		if err := rec.validate(); err != nil {
			if c.strict {
				return nil, fmt.Errorf("%w: tasks: record %d: %v", domain.ErrUpstreamBadResponse, i, err)
			}
			c.logger.Warnw("upstream_record_skipped", "upstream", c.name, "index", i, "error", err)
			continue
		}
		tasks = append(tasks, domain.Task{
			ID:     *rec.ID,
			Status: domain.TaskStatus(*rec.Status),
		})
	}

	return tasks, nil
}
