package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/newsdesk-api/internal/database"
	"github.com/newsdesk-api/internal/models"
)

// adRepo is the concrete implementation of AdRepository
type adRepo struct {
	db *database.DB
}

// NewAdRepo creates a new advertisement repository
func NewAdRepo(db *database.DB) AdRepository {
	return &adRepo{db: db}
}

// ListActive retrieves active advertisements whose scheduling window
// contains now. Null bounds leave that side of the window open.
func (r *adRepo) ListActive(ctx context.Context, now time.Time) ([]*models.Advertisement, error) {
	query := `
		SELECT id, title, media_url, target_url, active, starts_at, ends_at, display_order, view_count, click_count
		FROM advertisements
		WHERE active = TRUE
		  AND (starts_at IS NULL OR starts_at <= $1)
		  AND (ends_at IS NULL OR ends_at >= $1)
		ORDER BY display_order ASC
	`
	rows, err := r.db.QueryContext(ctx, query, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ads []*models.Advertisement
	for rows.Next() {
		var ad models.Advertisement
		var startsAt, endsAt sql.NullTime
		err := rows.Scan(
			&ad.ID, &ad.Title, &ad.MediaURL, &ad.TargetURL, &ad.Active,
			&startsAt, &endsAt, &ad.DisplayOrder, &ad.ViewCount, &ad.ClickCount,
		)
		if err != nil {
			return nil, err
		}
		if startsAt.Valid {
			ad.StartsAt = &startsAt.Time
		}
		if endsAt.Valid {
			ad.EndsAt = &endsAt.Time
		}
		ads = append(ads, &ad)
	}
	return ads, rows.Err()
}

// IncrementViews bumps the impression counter. Read-then-write; lost
// updates under concurrency are tolerated for vanity metrics.
func (r *adRepo) IncrementViews(ctx context.Context, id string) error {
	var current int
	err := r.db.QueryRowContext(ctx, "SELECT view_count FROM advertisements WHERE id = $1", id).Scan(&current)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, "UPDATE advertisements SET view_count = $1 WHERE id = $2", current+1, id)
	return err
}

// IncrementClicks bumps the click counter with the same semantics as views
func (r *adRepo) IncrementClicks(ctx context.Context, id string) error {
	var current int
	err := r.db.QueryRowContext(ctx, "SELECT click_count FROM advertisements WHERE id = $1", id).Scan(&current)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, "UPDATE advertisements SET click_count = $1 WHERE id = $2", current+1, id)
	return err
}
