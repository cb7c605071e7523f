package models

import (
	"time"
)

// ArticleStatus represents the workflow state of an article
type ArticleStatus string

const (
	ArticleStatusDraft     ArticleStatus = "draft"
	ArticleStatusSubmitted ArticleStatus = "submitted"
	ArticleStatusPending   ArticleStatus = "pending"
	ArticleStatusPublished ArticleStatus = "published"
	ArticleStatusRejected  ArticleStatus = "rejected"
	ArticleStatusArchived  ArticleStatus = "archived"
)

// ModeratableStatuses are the statuses an admin may force-transition.
// Already-published rows are never touched by moderation.
var ModeratableStatuses = []ArticleStatus{
	ArticleStatusSubmitted,
	ArticleStatusPending,
	ArticleStatusDraft,
}

// Article represents an article in the system
type Article struct {
	ID          string        `json:"id" db:"id"`
	Slug        string        `json:"slug,omitempty" db:"slug"`
	Title       string        `json:"title" db:"title"`
	Summary     string        `json:"summary,omitempty" db:"summary"`
	Body        string        `json:"body" db:"body"`
	AuthorID    string        `json:"author_id" db:"author_id"`
	CategoryID  string        `json:"category_id,omitempty" db:"category_id"`
	Status      ArticleStatus `json:"status" db:"status"`
	PublishedAt *time.Time    `json:"published_at,omitempty" db:"published_at"`
	ViewCount   int           `json:"view_count" db:"view_count"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at" db:"updated_at"`
}

// ArticleDraft is the payload for creating a new draft article
type ArticleDraft struct {
	Title      string `json:"title"`
	Summary    string `json:"summary"`
	Body       string `json:"body"`
	CategoryID string `json:"category_id"`
}

// ModerationAction is an admin decision on a submitted article
type ModerationAction string

const (
	ModerationApprove ModerationAction = "approve"
	ModerationReject  ModerationAction = "reject"
)

// SearchResult is a paginated set of article matches
type SearchResult struct {
	Items    []*SearchItem `json:"items"`
	Page     int           `json:"page"`
	PageSize int           `json:"pageSize"`
	Total    int           `json:"total"`
}

// SearchItem pairs an article with its approved-comment count
type SearchItem struct {
	Article      *Article `json:"article"`
	CommentCount int      `json:"comment_count"`
}
