package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"
	"github.com/newsdesk-api/internal/database"
	"github.com/newsdesk-api/internal/models"
)

const commentColumns = `id, article_slug, author_name, author_email, body, status, ip_address, created_at`

// commentRepo is the concrete implementation of CommentRepository
type commentRepo struct {
	db *database.DB
}

// NewCommentRepo creates a new comment repository
func NewCommentRepo(db *database.DB) CommentRepository {
	return &commentRepo{db: db}
}

// Create inserts a new comment
func (r *commentRepo) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (id, article_slug, author_name, author_email, body, status, ip_address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		comment.ID, comment.ArticleSlug, comment.AuthorName, comment.AuthorEmail,
		comment.Body, comment.Status, comment.IPAddress, comment.CreatedAt,
	)
	return err
}

// GetByID retrieves a comment by ID
func (r *commentRepo) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE id = $1`

	var comment models.Comment
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&comment.ID, &comment.ArticleSlug, &comment.AuthorName, &comment.AuthorEmail,
		&comment.Body, &comment.Status, &comment.IPAddress, &comment.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// UpdateStatus sets the moderation status of a comment
func (r *commentRepo) UpdateStatus(ctx context.Context, id string, status models.CommentStatus) (bool, error) {
	res, err := r.db.ExecContext(ctx, "UPDATE comments SET status = $1 WHERE id = $2", status, id)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	return rows > 0, err
}

// Delete permanently removes a comment
func (r *commentRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM comments WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	return rows > 0, err
}

// ListApproved retrieves the approved comments for an article, oldest first
func (r *commentRepo) ListApproved(ctx context.Context, articleSlug string) ([]*models.Comment, error) {
	query := `
		SELECT ` + commentColumns + ` FROM comments
		WHERE article_slug = $1 AND status = 'approved'
		ORDER BY created_at ASC
	`
	return r.scanMany(ctx, query, articleSlug)
}

// List retrieves comments for the moderation queue, oldest first
func (r *commentRepo) List(ctx context.Context, filter models.CommentFilter) ([]*models.Comment, error) {
	query := `
		SELECT ` + commentColumns + ` FROM comments
		WHERE ($1 = '' OR status = $1)
		  AND ($2 = '' OR author_name ILIKE '%' || $2 || '%' OR body ILIKE '%' || $2 || '%')
		ORDER BY created_at ASC
		LIMIT $3 OFFSET $4
	`
	return r.scanMany(ctx, query, string(filter.Status), filter.Query, filter.Limit, filter.Offset)
}

// CountRecent counts comments since the given instant whose IP or email
// matches the submitter. The disjunction is the rate-limit key.
func (r *commentRepo) CountRecent(ctx context.Context, ip, email string, since time.Time) (int, error) {
	query := `
		SELECT COUNT(*) FROM comments
		WHERE created_at >= $1
		  AND (ip_address = $2 OR ($3 <> '' AND author_email = $3))
	`
	var count int
	err := r.db.QueryRowContext(ctx, query, since, ip, email).Scan(&count)
	return count, err
}

// ApprovedCountBySlugs returns the approved-comment count per article slug
func (r *commentRepo) ApprovedCountBySlugs(ctx context.Context, slugs []string) (map[string]int, error) {
	counts := make(map[string]int, len(slugs))
	if len(slugs) == 0 {
		return counts, nil
	}

	query := `
		SELECT article_slug, COUNT(*) FROM comments
		WHERE status = 'approved' AND article_slug = ANY($1)
		GROUP BY article_slug
	`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(slugs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var slug string
		var count int
		if err := rows.Scan(&slug, &count); err != nil {
			return nil, err
		}
		counts[slug] = count
	}
	return counts, rows.Err()
}

// Count returns the total number of comments
func (r *commentRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM comments").Scan(&count)
	return count, err
}

func (r *commentRepo) scanMany(ctx context.Context, query string, args ...interface{}) ([]*models.Comment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []*models.Comment
	for rows.Next() {
		var comment models.Comment
		err := rows.Scan(
			&comment.ID, &comment.ArticleSlug, &comment.AuthorName, &comment.AuthorEmail,
			&comment.Body, &comment.Status, &comment.IPAddress, &comment.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		comments = append(comments, &comment)
	}
	return comments, rows.Err()
}
