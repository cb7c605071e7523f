package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/newsdesk-api/internal/models"
	"github.com/newsdesk-api/internal/repository"
	"github.com/newsdesk-api/internal/validation"
	"github.com/rs/zerolog"
)

// categoryArticleLimit caps articles shown per category on the front listing
const categoryArticleLimit = 4

// articleService is the concrete implementation of ArticleService
type articleService struct {
	repos *repository.Repositories
	log   zerolog.Logger
}

func newArticleService(repos *repository.Repositories, log zerolog.Logger) *articleService {
	return &articleService{
		repos: repos,
		log:   log.With().Str("service", "article").Logger(),
	}
}

// CreateDraft creates a new draft article owned by the actor
func (s *articleService) CreateDraft(ctx context.Context, draft *models.ArticleDraft, actor *models.Identity) (*models.Article, error) {
	if actor == nil {
		return nil, ErrUnauthorized
	}
	if errs := validation.ValidateArticleDraft(draft); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidArgument, errs[0].Message)
	}

	article := &models.Article{
		ID:         uuid.New().String(),
		Title:      draft.Title,
		Summary:    draft.Summary,
		Body:       draft.Body,
		AuthorID:   actor.UserID,
		CategoryID: draft.CategoryID,
		Status:     models.ArticleStatusDraft,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	if err := s.repos.Article.Create(ctx, article); err != nil {
		return nil, fmt.Errorf("creating draft: %w", err)
	}

	s.log.Info().Str("article_id", article.ID).Str("author_id", actor.UserID).Msg("Draft created")
	return article, nil
}

// Advance moves an article one step along the linear workflow:
// draft -> submitted -> published. Pending counts as submitted here,
// the two are the same stage under different names. A published article
// stays published. The whole operation is scoped to rows owned by the
// actor; an ownership miss reads as not-found rather than forbidden.
func (s *articleService) Advance(ctx context.Context, articleID string, actor *models.Identity) (models.ArticleStatus, error) {
	if actor == nil {
		return "", ErrUnauthorized
	}

	article, err := s.repos.Article.GetOwned(ctx, articleID, actor.UserID)
	if err != nil {
		return "", fmt.Errorf("loading article: %w", err)
	}
	if article == nil {
		return "", ErrNotFound
	}

	switch article.Status {
	case models.ArticleStatusDraft:
		article.Status = models.ArticleStatusSubmitted
	case models.ArticleStatusSubmitted, models.ArticleStatusPending:
		article.Status = models.ArticleStatusPublished
		if err := s.preparePublish(ctx, article); err != nil {
			return "", err
		}
	case models.ArticleStatusPublished:
		return models.ArticleStatusPublished, nil
	default:
		return "", fmt.Errorf("%w: cannot advance from status %q", ErrInvalidArgument, article.Status)
	}

	matched, err := s.repos.Article.UpdateWorkflow(ctx, article)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return "", fmt.Errorf("%w: slug already taken", ErrConflict)
		}
		return "", fmt.Errorf("updating article: %w", err)
	}
	if !matched {
		return "", ErrNotFound
	}

	s.log.Info().
		Str("article_id", article.ID).
		Str("status", string(article.Status)).
		Msg("Article advanced")
	return article.Status, nil
}

// Moderate applies an admin decision to an article still awaiting
// moderation. Published rows are never touched; the update misses them.
func (s *articleService) Moderate(ctx context.Context, articleID string, action models.ModerationAction, actor *models.Identity) (models.ArticleStatus, error) {
	if !actor.IsAdmin() {
		return "", ErrForbidden
	}

	article, err := s.repos.Article.GetByID(ctx, articleID)
	if err != nil {
		return "", fmt.Errorf("loading article: %w", err)
	}
	if article == nil {
		return "", ErrNotFound
	}

	switch action {
	case models.ModerationApprove:
		article.Status = models.ArticleStatusPublished
		if err := s.preparePublish(ctx, article); err != nil {
			return "", err
		}
	case models.ModerationReject:
		article.Status = models.ArticleStatusRejected
	default:
		return "", fmt.Errorf("%w: action must be approve or reject", ErrInvalidArgument)
	}

	matched, err := s.repos.Article.UpdateModeration(ctx, article)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return "", fmt.Errorf("%w: slug already taken", ErrConflict)
		}
		return "", fmt.Errorf("moderating article: %w", err)
	}
	if !matched {
		return "", ErrNotFound
	}

	s.log.Info().
		Str("article_id", article.ID).
		Str("action", string(action)).
		Str("moderator", actor.UserID).
		Msg("Article moderated")
	return article.Status, nil
}

// preparePublish stamps the publish timestamp once and assigns a slug
// when the article does not have one yet.
func (s *articleService) preparePublish(ctx context.Context, article *models.Article) error {
	if article.PublishedAt == nil {
		publishedAt := time.Now()
		article.PublishedAt = &publishedAt
	}
	if article.Slug == "" {
		assigned, err := uniqueSlug(ctx, s.repos.Article, article.Title)
		if err != nil {
			return err
		}
		article.Slug = assigned
	}
	return nil
}

// GetPublished fetches a published article by slug and bumps its view
// counter in the background. Counter failures never block the read.
func (s *articleService) GetPublished(ctx context.Context, slug string) (*models.Article, error) {
	article, err := s.repos.Article.GetPublishedBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("loading article: %w", err)
	}
	if article == nil {
		return nil, ErrNotFound
	}

	go func(id string) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.repos.Article.IncrementViews(ctx, id); err != nil {
			s.log.Debug().Err(err).Str("article_id", id).Msg("View count bump failed")
		}
	}(article.ID)

	return article, nil
}

// Categories returns every category with up to four latest published articles
func (s *articleService) Categories(ctx context.Context) ([]*models.CategoryListing, error) {
	categories, err := s.repos.Category.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}

	listings := make([]*models.CategoryListing, 0, len(categories))
	for _, category := range categories {
		articles, err := s.repos.Article.ListPublishedByCategory(ctx, category.ID, categoryArticleLimit)
		if err != nil {
			return nil, fmt.Errorf("listing articles for category %s: %w", category.Slug, err)
		}
		listings = append(listings, &models.CategoryListing{
			Category: category,
			Articles: articles,
		})
	}
	return listings, nil
}

// Search returns a page of published articles matching the query, each
// annotated with its approved-comment count.
func (s *articleService) Search(ctx context.Context, query string, page, pageSize int) (*models.SearchResult, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	articles, total, err := s.repos.Article.Search(ctx, query, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("searching articles: %w", err)
	}

	slugs := make([]string, 0, len(articles))
	for _, article := range articles {
		if article.Slug != "" {
			slugs = append(slugs, article.Slug)
		}
	}
	counts, err := s.repos.Comment.ApprovedCountBySlugs(ctx, slugs)
	if err != nil {
		return nil, fmt.Errorf("counting comments: %w", err)
	}

	items := make([]*models.SearchItem, 0, len(articles))
	for _, article := range articles {
		items = append(items, &models.SearchItem{
			Article:      article,
			CommentCount: counts[article.Slug],
		})
	}

	return &models.SearchResult{
		Items:    items,
		Page:     page,
		PageSize: pageSize,
		Total:    total,
	}, nil
}
