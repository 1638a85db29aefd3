package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/calemorrison/funnel-api/internal/entity"
)

type EventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{DB: db}
}

func (r *EventRepository) Create(ctx context.Context, event *entity.Event) error {
	metadata, err := json.Marshal(event.Metadata)
	if err != nil {
		return fmt.Errorf("event metadata marshal failed: %w", err)
	}

	id := uuid.New().String()

	query := `
		INSERT INTO events (id, event_type, funnel_id, page_id, lead_id, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING created_at
	`

	err = r.DB.QueryRowContext(
		ctx,
		query,
		id,
		string(event.EventType),
		event.FunnelID,
		event.PageID,
		event.LeadID,
		metadata,
	).Scan(&event.CreatedAt)
	if err != nil {
		return err
	}

	event.ID = id
	return nil
}
