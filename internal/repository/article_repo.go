package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"
	"github.com/newsdesk-api/internal/database"
	"github.com/newsdesk-api/internal/models"
)

const articleColumns = `id, slug, title, summary, body, author_id, category_id, status, published_at, view_count, created_at, updated_at`

// articleRepo is the concrete implementation of ArticleRepository
type articleRepo struct {
	db *database.DB
}

// NewArticleRepo creates a new article repository
func NewArticleRepo(db *database.DB) ArticleRepository {
	return &articleRepo{db: db}
}

// Create inserts a new article
func (r *articleRepo) Create(ctx context.Context, article *models.Article) error {
	query := `
		INSERT INTO articles (id, slug, title, summary, body, author_id, category_id, status, published_at, view_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.db.ExecContext(ctx, query,
		article.ID, nullString(article.Slug), article.Title, article.Summary, article.Body,
		article.AuthorID, nullString(article.CategoryID), article.Status, article.PublishedAt,
		article.ViewCount, article.CreatedAt, time.Now(),
	)
	return err
}

// GetByID retrieves an article by ID
func (r *articleRepo) GetByID(ctx context.Context, id string) (*models.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// GetOwned retrieves an article only if the given author owns it.
// An ownership miss is indistinguishable from a missing row.
func (r *articleRepo) GetOwned(ctx context.Context, id, authorID string) (*models.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE id = $1 AND author_id = $2`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id, authorID))
}

// GetPublishedBySlug retrieves a published article by slug
func (r *articleRepo) GetPublishedBySlug(ctx context.Context, slug string) (*models.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE slug = $1 AND status = 'published'`
	return r.scanOne(r.db.QueryRowContext(ctx, query, slug))
}

// UpdateWorkflow persists a status transition scoped to the owning author.
// Returns false when no row matched (missing or not owned).
func (r *articleRepo) UpdateWorkflow(ctx context.Context, article *models.Article) (bool, error) {
	query := `
		UPDATE articles SET status = $1, slug = $2, published_at = $3, updated_at = $4
		WHERE id = $5 AND author_id = $6
	`
	res, err := r.db.ExecContext(ctx, query,
		article.Status, nullString(article.Slug), article.PublishedAt, time.Now(),
		article.ID, article.AuthorID,
	)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	return rows > 0, err
}

// UpdateModeration persists an admin decision, restricted to rows still
// awaiting moderation so a live article is never silently un-published.
func (r *articleRepo) UpdateModeration(ctx context.Context, article *models.Article) (bool, error) {
	statuses := make([]string, len(models.ModeratableStatuses))
	for i, s := range models.ModeratableStatuses {
		statuses[i] = string(s)
	}

	query := `
		UPDATE articles SET status = $1, slug = $2, published_at = $3, updated_at = $4
		WHERE id = $5 AND status = ANY($6)
	`
	res, err := r.db.ExecContext(ctx, query,
		article.Status, nullString(article.Slug), article.PublishedAt, time.Now(),
		article.ID, pq.Array(statuses),
	)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	return rows > 0, err
}

// SlugExists checks if an article with the given slug exists
func (r *articleRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM articles WHERE slug = $1)", slug).Scan(&exists)
	return exists, err
}

// ListPublished retrieves the latest published articles. A limit of
// zero or less returns them all.
func (r *articleRepo) ListPublished(ctx context.Context, limit int) ([]*models.Article, error) {
	query := `
		SELECT ` + articleColumns + ` FROM articles
		WHERE status = 'published'
		ORDER BY published_at DESC
	`
	if limit > 0 {
		return r.scanMany(ctx, query+` LIMIT $1`, limit)
	}
	return r.scanMany(ctx, query)
}

// ListPublishedByCategory retrieves the latest published articles in a category
func (r *articleRepo) ListPublishedByCategory(ctx context.Context, categoryID string, limit int) ([]*models.Article, error) {
	query := `
		SELECT ` + articleColumns + ` FROM articles
		WHERE status = 'published' AND category_id = $1
		ORDER BY published_at DESC
		LIMIT $2
	`
	return r.scanMany(ctx, query, categoryID, limit)
}

// Search finds published articles matching the query in title or body,
// returning the page and the total match count.
func (r *articleRepo) Search(ctx context.Context, query string, limit, offset int) ([]*models.Article, int, error) {
	pattern := "%" + query + "%"

	var total int
	countQuery := `
		SELECT COUNT(*) FROM articles
		WHERE status = 'published' AND (title ILIKE $1 OR body ILIKE $1)
	`
	if err := r.db.QueryRowContext(ctx, countQuery, pattern).Scan(&total); err != nil {
		return nil, 0, err
	}

	pageQuery := `
		SELECT ` + articleColumns + ` FROM articles
		WHERE status = 'published' AND (title ILIKE $1 OR body ILIKE $1)
		ORDER BY published_at DESC
		LIMIT $2 OFFSET $3
	`
	articles, err := r.scanMany(ctx, pageQuery, pattern, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return articles, total, nil
}

// IncrementViews bumps the view counter. Read-then-write; a lost update
// under concurrency is tolerated for vanity metrics.
func (r *articleRepo) IncrementViews(ctx context.Context, id string) error {
	var current int
	err := r.db.QueryRowContext(ctx, "SELECT view_count FROM articles WHERE id = $1", id).Scan(&current)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, "UPDATE articles SET view_count = $1 WHERE id = $2", current+1, id)
	return err
}

// Count returns the total number of articles
func (r *articleRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM articles").Scan(&count)
	return count, err
}

func (r *articleRepo) scanOne(row *sql.Row) (*models.Article, error) {
	var article models.Article
	var slug, categoryID sql.NullString
	var publishedAt sql.NullTime

	err := row.Scan(
		&article.ID, &slug, &article.Title, &article.Summary, &article.Body,
		&article.AuthorID, &categoryID, &article.Status, &publishedAt,
		&article.ViewCount, &article.CreatedAt, &article.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	article.Slug = slug.String
	article.CategoryID = categoryID.String
	if publishedAt.Valid {
		article.PublishedAt = &publishedAt.Time
	}
	return &article, nil
}

func (r *articleRepo) scanMany(ctx context.Context, query string, args ...interface{}) ([]*models.Article, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []*models.Article
	for rows.Next() {
		var article models.Article
		var slug, categoryID sql.NullString
		var publishedAt sql.NullTime

		err := rows.Scan(
			&article.ID, &slug, &article.Title, &article.Summary, &article.Body,
			&article.AuthorID, &categoryID, &article.Status, &publishedAt,
			&article.ViewCount, &article.CreatedAt, &article.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		article.Slug = slug.String
		article.CategoryID = categoryID.String
		if publishedAt.Valid {
			article.PublishedAt = &publishedAt.Time
		}
		articles = append(articles, &article)
	}
	return articles, rows.Err()
}

// nullString maps "" to SQL NULL so partial unique indexes stay usable
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
