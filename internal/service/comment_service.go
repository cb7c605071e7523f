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

// commentService is the concrete implementation of CommentService
type commentService struct {
	comments repository.CommentRepository
	limiter  RateLimiter
	log      zerolog.Logger
}

func newCommentService(comments repository.CommentRepository, limiter RateLimiter, log zerolog.Logger) *commentService {
	return &commentService{
		comments: comments,
		limiter:  limiter,
		log:      log.With().Str("service", "comment").Logger(),
	}
}

// Submit accepts an anonymous comment. A filled honeypot field is
// silently accepted without persisting anything. Real submissions are
// validated, rate limited by IP/email, and stored as pending.
func (s *commentService) Submit(ctx context.Context, sub *models.CommentSubmission, ip string) (*models.CommentReceipt, error) {
	if sub.Website != "" {
		s.log.Debug().Str("ip", ip).Msg("Honeypot tripped, dropping submission")
		return &models.CommentReceipt{
			Quota: models.RateQuota{Limit: s.limiter.Limit, Remaining: s.limiter.Limit},
		}, nil
	}

	if errs := validation.ValidateCommentSubmission(sub); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidArgument, errs[0].Message)
	}

	submittedAt := time.Now()
	prior, err := s.comments.CountRecent(ctx, ip, sub.Email, s.limiter.WindowStart(submittedAt))
	if err != nil {
		return nil, fmt.Errorf("counting recent comments: %w", err)
	}

	quota, allowed := s.limiter.Evaluate(prior)
	if !allowed {
		s.log.Warn().Str("ip", ip).Int("prior", prior).Msg("Comment rate limit exceeded")
		return &models.CommentReceipt{Quota: quota}, ErrTooManyRequests
	}

	comment := &models.Comment{
		ID:          uuid.New().String(),
		ArticleSlug: sub.ArticleSlug,
		AuthorName:  sub.Name,
		AuthorEmail: sub.Email,
		Body:        sub.Content,
		Status:      models.CommentStatusPending,
		IPAddress:   ip,
		CreatedAt:   submittedAt,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("storing comment: %w", err)
	}

	s.log.Info().
		Str("comment_id", comment.ID).
		Str("article_slug", comment.ArticleSlug).
		Msg("Comment submitted")

	return &models.CommentReceipt{
		ID:        comment.ID,
		CreatedAt: comment.CreatedAt,
		Quota:     quota,
	}, nil
}

// Moderate applies an admin decision to a comment. Approve and reject
// update the status; delete removes the row permanently.
func (s *commentService) Moderate(ctx context.Context, commentID string, action models.CommentAction, actor *models.Identity) (models.CommentStatus, error) {
	if !actor.IsAdmin() {
		return "", ErrUnauthorized
	}

	var matched bool
	var err error
	var status models.CommentStatus

	switch action {
	case models.CommentActionApprove:
		status = models.CommentStatusApproved
		matched, err = s.comments.UpdateStatus(ctx, commentID, status)
	case models.CommentActionReject:
		status = models.CommentStatusRejected
		matched, err = s.comments.UpdateStatus(ctx, commentID, status)
	case models.CommentActionDelete:
		matched, err = s.comments.Delete(ctx, commentID)
	default:
		return "", fmt.Errorf("%w: action must be approve, reject or delete", ErrInvalidArgument)
	}

	if err != nil {
		return "", fmt.Errorf("moderating comment: %w", err)
	}
	if !matched {
		return "", ErrNotFound
	}

	s.log.Info().
		Str("comment_id", commentID).
		Str("action", string(action)).
		Str("moderator", actor.UserID).
		Msg("Comment moderated")
	return status, nil
}

// List returns the moderation queue, oldest first within the filter
func (s *commentService) List(ctx context.Context, filter models.CommentFilter, actor *models.Identity) ([]*models.Comment, error) {
	if !actor.IsAdmin() {
		return nil, ErrUnauthorized
	}

	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	comments, err := s.comments.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}
	return comments, nil
}

// ListApproved returns the publicly visible comments for an article
func (s *commentService) ListApproved(ctx context.Context, articleSlug string) ([]*models.Comment, error) {
	comments, err := s.comments.ListApproved(ctx, articleSlug)
	if err != nil {
		return nil, fmt.Errorf("listing approved comments: %w", err)
	}
	return comments, nil
}
