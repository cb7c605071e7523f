package mocks

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/newsdesk-api/internal/models"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	Users    map[string]*models.User
	Sessions map[string]string // token -> user ID
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users:    make(map[string]*models.User),
		Sessions: make(map[string]string),
	}
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return m.Users[id], nil
}

func (m *MockUserRepository) GetBySessionToken(ctx context.Context, token string) (*models.User, error) {
	userID, ok := m.Sessions[token]
	if !ok {
		return nil, nil
	}
	return m.Users[userID], nil
}

func (m *MockUserRepository) Count(ctx context.Context) (int, error) {
	return len(m.Users), nil
}

// MockArticleRepository is a mock implementation of ArticleRepository
type MockArticleRepository struct {
	Articles    map[string]*models.Article
	UpdateError error
}

func NewMockArticleRepository() *MockArticleRepository {
	return &MockArticleRepository{
		Articles: make(map[string]*models.Article),
	}
}

func (m *MockArticleRepository) Create(ctx context.Context, article *models.Article) error {
	copied := *article
	m.Articles[article.ID] = &copied
	return nil
}

func (m *MockArticleRepository) GetByID(ctx context.Context, id string) (*models.Article, error) {
	article, ok := m.Articles[id]
	if !ok {
		return nil, nil
	}
	copied := *article
	return &copied, nil
}

func (m *MockArticleRepository) GetOwned(ctx context.Context, id, authorID string) (*models.Article, error) {
	article, ok := m.Articles[id]
	if !ok || article.AuthorID != authorID {
		return nil, nil
	}
	copied := *article
	return &copied, nil
}

func (m *MockArticleRepository) GetPublishedBySlug(ctx context.Context, slug string) (*models.Article, error) {
	for _, article := range m.Articles {
		if article.Slug == slug && article.Status == models.ArticleStatusPublished {
			copied := *article
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *MockArticleRepository) UpdateWorkflow(ctx context.Context, article *models.Article) (bool, error) {
	if m.UpdateError != nil {
		return false, m.UpdateError
	}
	stored, ok := m.Articles[article.ID]
	if !ok || stored.AuthorID != article.AuthorID {
		return false, nil
	}
	copied := *article
	m.Articles[article.ID] = &copied
	return true, nil
}

func (m *MockArticleRepository) UpdateModeration(ctx context.Context, article *models.Article) (bool, error) {
	if m.UpdateError != nil {
		return false, m.UpdateError
	}
	stored, ok := m.Articles[article.ID]
	if !ok {
		return false, nil
	}
	moderatable := false
	for _, s := range models.ModeratableStatuses {
		if stored.Status == s {
			moderatable = true
		}
	}
	if !moderatable {
		return false, nil
	}
	copied := *article
	m.Articles[article.ID] = &copied
	return true, nil
}

func (m *MockArticleRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	for _, article := range m.Articles {
		if article.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockArticleRepository) ListPublished(ctx context.Context, limit int) ([]*models.Article, error) {
	var published []*models.Article
	for _, article := range m.Articles {
		if article.Status == models.ArticleStatusPublished {
			published = append(published, article)
		}
	}
	sort.Slice(published, func(i, j int) bool {
		return published[i].ID < published[j].ID
	})
	if limit > 0 && len(published) > limit {
		published = published[:limit]
	}
	return published, nil
}

func (m *MockArticleRepository) ListPublishedByCategory(ctx context.Context, categoryID string, limit int) ([]*models.Article, error) {
	var matched []*models.Article
	for _, article := range m.Articles {
		if article.Status == models.ArticleStatusPublished && article.CategoryID == categoryID {
			matched = append(matched, article)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].ID < matched[j].ID
	})
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (m *MockArticleRepository) Search(ctx context.Context, query string, limit, offset int) ([]*models.Article, int, error) {
	var matched []*models.Article
	needle := strings.ToLower(query)
	for _, article := range m.Articles {
		if article.Status != models.ArticleStatusPublished {
			continue
		}
		if strings.Contains(strings.ToLower(article.Title), needle) ||
			strings.Contains(strings.ToLower(article.Body), needle) {
			matched = append(matched, article)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].ID < matched[j].ID
	})
	total := len(matched)
	if offset >= len(matched) {
		return nil, total, nil
	}
	matched = matched[offset:]
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, total, nil
}

func (m *MockArticleRepository) IncrementViews(ctx context.Context, id string) error {
	if article, ok := m.Articles[id]; ok {
		article.ViewCount++
	}
	return nil
}

func (m *MockArticleRepository) Count(ctx context.Context) (int, error) {
	return len(m.Articles), nil
}

// MockCommentRepository is a mock implementation of CommentRepository
type MockCommentRepository struct {
	Comments    map[string]*models.Comment
	CreateError error
}

func NewMockCommentRepository() *MockCommentRepository {
	return &MockCommentRepository{
		Comments: make(map[string]*models.Comment),
	}
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	copied := *comment
	m.Comments[comment.ID] = &copied
	return nil
}

func (m *MockCommentRepository) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	comment, ok := m.Comments[id]
	if !ok {
		return nil, nil
	}
	copied := *comment
	return &copied, nil
}

func (m *MockCommentRepository) UpdateStatus(ctx context.Context, id string, status models.CommentStatus) (bool, error) {
	comment, ok := m.Comments[id]
	if !ok {
		return false, nil
	}
	comment.Status = status
	return true, nil
}

func (m *MockCommentRepository) Delete(ctx context.Context, id string) (bool, error) {
	if _, ok := m.Comments[id]; !ok {
		return false, nil
	}
	delete(m.Comments, id)
	return true, nil
}

func (m *MockCommentRepository) ListApproved(ctx context.Context, articleSlug string) ([]*models.Comment, error) {
	var approved []*models.Comment
	for _, comment := range m.Comments {
		if comment.ArticleSlug == articleSlug && comment.Status == models.CommentStatusApproved {
			approved = append(approved, comment)
		}
	}
	sort.Slice(approved, func(i, j int) bool {
		return approved[i].CreatedAt.Before(approved[j].CreatedAt)
	})
	return approved, nil
}

func (m *MockCommentRepository) List(ctx context.Context, filter models.CommentFilter) ([]*models.Comment, error) {
	needle := strings.ToLower(filter.Query)
	var matched []*models.Comment
	for _, comment := range m.Comments {
		if filter.Status != "" && comment.Status != filter.Status {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(comment.AuthorName), needle) &&
			!strings.Contains(strings.ToLower(comment.Body), needle) {
			continue
		}
		matched = append(matched, comment)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})
	if filter.Offset > 0 {
		if filter.Offset >= len(matched) {
			return nil, nil
		}
		matched = matched[filter.Offset:]
	}
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}

func (m *MockCommentRepository) CountRecent(ctx context.Context, ip, email string, since time.Time) (int, error) {
	count := 0
	for _, comment := range m.Comments {
		if comment.CreatedAt.Before(since) {
			continue
		}
		if comment.IPAddress == ip || (email != "" && comment.AuthorEmail == email) {
			count++
		}
	}
	return count, nil
}

func (m *MockCommentRepository) ApprovedCountBySlugs(ctx context.Context, slugs []string) (map[string]int, error) {
	counts := make(map[string]int, len(slugs))
	for _, slug := range slugs {
		for _, comment := range m.Comments {
			if comment.ArticleSlug == slug && comment.Status == models.CommentStatusApproved {
				counts[slug]++
			}
		}
	}
	return counts, nil
}

func (m *MockCommentRepository) Count(ctx context.Context) (int, error) {
	return len(m.Comments), nil
}

// MockCategoryRepository is a mock implementation of CategoryRepository
type MockCategoryRepository struct {
	Categories []*models.Category
}

func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{}
}

func (m *MockCategoryRepository) List(ctx context.Context) ([]*models.Category, error) {
	return m.Categories, nil
}

// MockAdRepository is a mock implementation of AdRepository
type MockAdRepository struct {
	Ads            map[string]*models.Advertisement
	IncrementError error
}

func NewMockAdRepository() *MockAdRepository {
	return &MockAdRepository{
		Ads: make(map[string]*models.Advertisement),
	}
}

func (m *MockAdRepository) ListActive(ctx context.Context, now time.Time) ([]*models.Advertisement, error) {
	var active []*models.Advertisement
	for _, ad := range m.Ads {
		if !ad.Active {
			continue
		}
		if ad.StartsAt != nil && ad.StartsAt.After(now) {
			continue
		}
		if ad.EndsAt != nil && ad.EndsAt.Before(now) {
			continue
		}
		copied := *ad
		active = append(active, &copied)
	}
	sort.Slice(active, func(i, j int) bool {
		return active[i].DisplayOrder < active[j].DisplayOrder
	})
	return active, nil
}

func (m *MockAdRepository) IncrementViews(ctx context.Context, id string) error {
	if m.IncrementError != nil {
		return m.IncrementError
	}
	if ad, ok := m.Ads[id]; ok {
		ad.ViewCount++
	}
	return nil
}

func (m *MockAdRepository) IncrementClicks(ctx context.Context, id string) error {
	if m.IncrementError != nil {
		return m.IncrementError
	}
	if ad, ok := m.Ads[id]; ok {
		ad.ClickCount++
	}
	return nil
}

// MockSubscriberRepository is a mock implementation of SubscriberRepository
type MockSubscriberRepository struct {
	Subscribers map[string]*models.Subscriber // keyed by email
}

func NewMockSubscriberRepository() *MockSubscriberRepository {
	return &MockSubscriberRepository{
		Subscribers: make(map[string]*models.Subscriber),
	}
}

func (m *MockSubscriberRepository) Upsert(ctx context.Context, sub *models.Subscriber) error {
	if _, exists := m.Subscribers[sub.Email]; exists {
		return nil
	}
	copied := *sub
	m.Subscribers[sub.Email] = &copied
	return nil
}

func (m *MockSubscriberRepository) Count(ctx context.Context) (int, error) {
	return len(m.Subscribers), nil
}
