package repository

import (
	"context"

	"github.com/newsdesk-api/internal/database"
	"github.com/newsdesk-api/internal/models"
)

// subscriberRepo is the concrete implementation of SubscriberRepository
type subscriberRepo struct {
	db *database.DB
}

// NewSubscriberRepo creates a new subscriber repository
func NewSubscriberRepo(db *database.DB) SubscriberRepository {
	return &subscriberRepo{db: db}
}

// Upsert inserts a subscriber, keeping the existing row on duplicate
// email so repeat signups stay idempotent.
func (r *subscriberRepo) Upsert(ctx context.Context, sub *models.Subscriber) error {
	query := `
		INSERT INTO subscribers (id, email, confirmed, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query, sub.ID, sub.Email, sub.Confirmed, sub.CreatedAt)
	return err
}

// Count returns the total number of subscribers
func (r *subscriberRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM subscribers").Scan(&count)
	return count, err
}
