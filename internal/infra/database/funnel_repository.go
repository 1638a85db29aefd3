package database

import (
	"context"
	"database/sql"

	"github.com/calemorrison/funnel-api/internal/entity"
)

type FunnelRepository struct {
	DB *sql.DB
}

func NewFunnelRepository(db *sql.DB) *FunnelRepository {
	return &FunnelRepository{DB: db}
}

// FindBySlug returns the active funnel for a landing page, or
// sql.ErrNoRows when the slug is unknown or the campaign was turned off.
func (r *FunnelRepository) FindBySlug(ctx context.Context, slug string) (*entity.Funnel, error) {
	query := `
		SELECT slug, name, headline, COALESCE(video_url, ''), confirmation_path, active, created_at
		FROM funnels
		WHERE slug = $1 AND active = TRUE
	`

	var f entity.Funnel
	err := r.DB.QueryRowContext(ctx, query, slug).Scan(
		&f.Slug,
		&f.Name,
		&f.Headline,
		&f.VideoURL,
		&f.ConfirmationPath,
		&f.Active,
		&f.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &f, nil
}

// ListActive is used by the site's index page.
func (r *FunnelRepository) ListActive(ctx context.Context) ([]entity.Funnel, error) {
	query := `
		SELECT slug, name, headline, COALESCE(video_url, ''), confirmation_path, active, created_at
		FROM funnels
		WHERE active = TRUE
		ORDER BY created_at DESC
	`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var funnels []entity.Funnel
	for rows.Next() {
		var f entity.Funnel
		if err := rows.Scan(&f.Slug, &f.Name, &f.Headline, &f.VideoURL, &f.ConfirmationPath, &f.Active, &f.CreatedAt); err != nil {
			return nil, err
		}
		funnels = append(funnels, f)
	}

	return funnels, rows.Err()
}
