package repository

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/newsdesk-api/internal/database"
	"github.com/newsdesk-api/internal/models"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetBySessionToken(ctx context.Context, token string) (*models.User, error)
	Count(ctx context.Context) (int, error)
}

// ArticleRepository defines the interface for article data operations
type ArticleRepository interface {
	Create(ctx context.Context, article *models.Article) error
	GetByID(ctx context.Context, id string) (*models.Article, error)
	GetOwned(ctx context.Context, id, authorID string) (*models.Article, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*models.Article, error)
	UpdateWorkflow(ctx context.Context, article *models.Article) (bool, error)
	UpdateModeration(ctx context.Context, article *models.Article) (bool, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	ListPublished(ctx context.Context, limit int) ([]*models.Article, error)
	ListPublishedByCategory(ctx context.Context, categoryID string, limit int) ([]*models.Article, error)
	Search(ctx context.Context, query string, limit, offset int) ([]*models.Article, int, error)
	IncrementViews(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id string) (*models.Comment, error)
	UpdateStatus(ctx context.Context, id string, status models.CommentStatus) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	ListApproved(ctx context.Context, articleSlug string) ([]*models.Comment, error)
	List(ctx context.Context, filter models.CommentFilter) ([]*models.Comment, error)
	CountRecent(ctx context.Context, ip, email string, since time.Time) (int, error)
	ApprovedCountBySlugs(ctx context.Context, slugs []string) (map[string]int, error)
	Count(ctx context.Context) (int, error)
}

// CategoryRepository defines the interface for category data operations
type CategoryRepository interface {
	List(ctx context.Context) ([]*models.Category, error)
}

// AdRepository defines the interface for advertisement data operations
type AdRepository interface {
	ListActive(ctx context.Context, now time.Time) ([]*models.Advertisement, error)
	IncrementViews(ctx context.Context, id string) error
	IncrementClicks(ctx context.Context, id string) error
}

// SubscriberRepository defines the interface for newsletter signups
type SubscriberRepository interface {
	Upsert(ctx context.Context, sub *models.Subscriber) error
	Count(ctx context.Context) (int, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	User       UserRepository
	Article    ArticleRepository
	Comment    CommentRepository
	Category   CategoryRepository
	Ad         AdRepository
	Subscriber SubscriberRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		User:       NewUserRepo(db),
		Article:    NewArticleRepo(db),
		Comment:    NewCommentRepo(db),
		Category:   NewCategoryRepo(db),
		Ad:         NewAdRepo(db),
		Subscriber: NewSubscriberRepo(db),
	}
}

// IsUniqueViolation reports whether err is a PostgreSQL unique
// constraint violation (e.g. a concurrent slug collision).
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
