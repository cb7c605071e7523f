package models

import (
	"time"
)

// CommentStatus represents the moderation state of a comment
type CommentStatus string

const (
	CommentStatusPending  CommentStatus = "pending"
	CommentStatusApproved CommentStatus = "approved"
	CommentStatusRejected CommentStatus = "rejected"
)

// CommentAction is an admin decision on a pending comment
type CommentAction string

const (
	CommentActionApprove CommentAction = "approve"
	CommentActionReject  CommentAction = "reject"
	CommentActionDelete  CommentAction = "delete"
)

// Comment represents a visitor comment on an article. Comments are
// submitted anonymously and start out pending moderation.
type Comment struct {
	ID          string        `json:"id" db:"id"`
	ArticleSlug string        `json:"article_slug" db:"article_slug"`
	AuthorName  string        `json:"author_name" db:"author_name"`
	AuthorEmail string        `json:"author_email,omitempty" db:"author_email"`
	Body        string        `json:"body" db:"body"`
	Status      CommentStatus `json:"status" db:"status"`
	IPAddress   string        `json:"-" db:"ip_address"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
}

// CommentSubmission is the public comment form payload. Website is a
// honeypot: legitimate users never fill it.
type CommentSubmission struct {
	ArticleSlug string `json:"article_slug"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Content     string `json:"content"`
	Website     string `json:"website"`
}

// CommentReceipt is returned to the submitter
type CommentReceipt struct {
	ID        string    `json:"id,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	Quota     RateQuota `json:"-"`
}

// RateQuota reports the submitter's remaining rate-limit budget
type RateQuota struct {
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// CommentFilter selects comments for the moderation queue
type CommentFilter struct {
	Status CommentStatus
	Query  string
	Limit  int
	Offset int
}
