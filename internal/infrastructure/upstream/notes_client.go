package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/reportly/backend/internal/config"
	"github.com/reportly/backend/internal/core/ports"
	"github.com/reportly/backend/internal/domain"
	"github.com/reportly/backend/internal/infrastructure/logger"
)

type NotesClient struct {
	client
}

func NewNotesClient(cfg config.UpstreamConfig, signer RequestSigner, log *logger.Logger) *NotesClient {
	return &NotesClient{client: newClient("notes", cfg, signer, log)}
}

var _ ports.NotesSource = (*NotesClient)(nil)

type noteRecord struct {
	ID      *int64  `json:"id"`
	Content *string `json:"content"`
	// createdAt is optional on the wire: aggregation never reads it, so an
	// upstream that omits it should not fail the whole fetch.
	CreatedAt *time.Time `json:"createdAt"`
}

func (r *noteRecord) validate() error {
	if r.ID == nil {
		return fmt.Errorf("missing field %q", "id")
	}
	if r.Content == nil {
		return fmt.Errorf("missing field %q", "content")
	}
	return nil
}

func (c *NotesClient) FetchNotes(ctx context.Context) ([]domain.Note, error) {
	body, err := c.get(ctx, "/notes")
	if err != nil {
		return nil, err
	}

	var records []noteRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("%w: notes: %v", domain.ErrUpstreamBadResponse, err)
	}

	notes := make([]domain.Note, 0, len(records))
	for i, rec := range records {
		if err := rec.validate(); err != nil {
			if c.strict {
				return nil, fmt.Errorf("%w: notes: record %d: %v", domain.ErrUpstreamBadResponse, i, err)
			}
			c.logger.Warnw("upstream_record_skipped", "upstream", c.name, "index", i, "error", err)
			continue
		}
		note := domain.Note{
			ID:      *rec.ID,
			Content: *rec.Content,
		}
		if rec.CreatedAt != nil {
			note.CreatedAt = *rec.CreatedAt
		}
		notes = append(notes, note)
	}

	return notes, nil
}
