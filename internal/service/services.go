package service

import (
	"context"

	"github.com/newsdesk-api/internal/config"
	"github.com/newsdesk-api/internal/models"
	"github.com/newsdesk-api/internal/repository"
	"github.com/rs/zerolog"
)

// AuthService resolves session tokens to application identities
type AuthService interface {
	Resolve(ctx context.Context, token string) (*models.Identity, error)
}

// ArticleService defines article workflow and read operations
type ArticleService interface {
	CreateDraft(ctx context.Context, draft *models.ArticleDraft, actor *models.Identity) (*models.Article, error)
	Advance(ctx context.Context, articleID string, actor *models.Identity) (models.ArticleStatus, error)
	Moderate(ctx context.Context, articleID string, action models.ModerationAction, actor *models.Identity) (models.ArticleStatus, error)
	GetPublished(ctx context.Context, slug string) (*models.Article, error)
	Categories(ctx context.Context) ([]*models.CategoryListing, error)
	Search(ctx context.Context, query string, page, pageSize int) (*models.SearchResult, error)
}

// CommentService defines comment submission and moderation operations
type CommentService interface {
	Submit(ctx context.Context, sub *models.CommentSubmission, ip string) (*models.CommentReceipt, error)
	Moderate(ctx context.Context, commentID string, action models.CommentAction, actor *models.Identity) (models.CommentStatus, error)
	List(ctx context.Context, filter models.CommentFilter, actor *models.Identity) ([]*models.Comment, error)
	ListApproved(ctx context.Context, articleSlug string) ([]*models.Comment, error)
}

// AdService defines advertisement rotation and counter operations
type AdService interface {
	Active(ctx context.Context) ([]*models.Advertisement, error)
	Click(ctx context.Context, adID string)
}

// WidgetService proxies third-party weather and stock data
type WidgetService interface {
	Weather(ctx context.Context, city string) (*models.WeatherReport, error)
	Stocks(ctx context.Context, symbols []string) ([]*models.StockQuote, error)
}

// FeedService renders generated site feeds
type FeedService interface {
	RSS(ctx context.Context) (string, error)
	Sitemap(ctx context.Context) ([]byte, error)
}

// NewsletterService handles newsletter signups
type NewsletterService interface {
	Subscribe(ctx context.Context, email string) error
}

// Services holds all service interfaces
type Services struct {
	Auth       AuthService
	Article    ArticleService
	Comment    CommentService
	Ad         AdService
	Widget     WidgetService
	Feed       FeedService
	Newsletter NewsletterService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, cfg *config.Config, log zerolog.Logger) *Services {
	limiter := RateLimiter{
		Window: cfg.RateLimit.Window,
		Limit:  cfg.RateLimit.MaxSubmission,
	}

	return &Services{
		Auth:       newAuthService(repos.User, log),
		Article:    newArticleService(repos, log),
		Comment:    newCommentService(repos.Comment, limiter, log),
		Ad:         newAdService(repos.Ad, log),
		Widget:     newWidgetService(&cfg.Widgets, log),
		Feed:       newFeedService(repos, &cfg.Site, log),
		Newsletter: newNewsletterService(repos.Subscriber, log),
	}
}
