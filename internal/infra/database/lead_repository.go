package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/calemorrison/funnel-api/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

// Create inserts the lead and fills in the store-assigned identity and
// creation timestamp. Absent optionals go in as explicit NULLs.
func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	metadata, err := json.Marshal(lead.Metadata)
	if err != nil {
		return fmt.Errorf("lead metadata marshal failed: %w", err)
	}

	id := uuid.New().String()

	query := `
		INSERT INTO leads (
			id, name, email, phone, funnel_id, page_id,
			utm_source, utm_medium, utm_campaign, utm_content, utm_term,
			status, metadata, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW())
		RETURNING created_at
	`

	err = r.DB.QueryRowContext(
		ctx,
		query,
		id,
		lead.Name,
		lead.Email,
		lead.Phone,
		lead.FunnelID,
		lead.PageID,
		lead.UTMSource,
		lead.UTMMedium,
		lead.UTMCampaign,
		lead.UTMContent,
		lead.UTMTerm,
		string(lead.Status),
		metadata,
	).Scan(&lead.CreatedAt)
	if err != nil {
		return err
	}

	lead.ID = id
	return nil
}
