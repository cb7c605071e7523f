package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/newsdesk-api/internal/models"
	"github.com/newsdesk-api/internal/service"
)

func submission() *models.CommentSubmission {
	return &models.CommentSubmission{
		ArticleSlug: "hello-world",
		Name:        "Ann",
		Content:     "Great read",
	}
}

func TestSubmitCommentStoresPending(t *testing.T) {
	services, _, commentRepo := newTestServices()

	receipt, err := services.Comment.Submit(context.Background(), submission(), "203.0.113.7")
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if receipt.ID == "" {
		t.Fatal("Expected a comment ID")
	}
	if receipt.CreatedAt.IsZero() {
		t.Error("Expected a creation timestamp")
	}
	if receipt.Quota.Remaining != 2 {
		t.Errorf("Expected remaining quota 2, got %d", receipt.Quota.Remaining)
	}

	stored := commentRepo.Comments[receipt.ID]
	if stored == nil {
		t.Fatal("Comment should be persisted")
	}
	if stored.Status != models.CommentStatusPending {
		t.Errorf("New comments must start pending, got %s", stored.Status)
	}
	if stored.IPAddress != "203.0.113.7" {
		t.Errorf("Expected submitter IP captured, got %q", stored.IPAddress)
	}
}

func TestSubmitHoneypotDropsSilently(t *testing.T) {
	services, _, commentRepo := newTestServices()

	sub := submission()
	sub.Website = "http://spam.example.com"

	receipt, err := services.Comment.Submit(context.Background(), sub, "203.0.113.7")
	if err != nil {
		t.Fatalf("Honeypot submission must not error: %v", err)
	}
	if receipt.ID != "" {
		t.Error("Honeypot submission must not produce a row ID")
	}
	if len(commentRepo.Comments) != 0 {
		t.Errorf("Honeypot submission must not persist, found %d rows", len(commentRepo.Comments))
	}
}

func TestSubmitValidation(t *testing.T) {
	services, _, _ := newTestServices()

	sub := submission()
	sub.Name = ""

	_, err := services.Comment.Submit(context.Background(), sub, "203.0.113.7")
	if !errors.Is(err, service.ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument for missing name, got %v", err)
	}
}

func TestSubmitPersistenceFailure(t *testing.T) {
	services, _, commentRepo := newTestServices()
	commentRepo.CreateError = errors.New("insert failed")

	receipt, err := services.Comment.Submit(context.Background(), submission(), "203.0.113.7")
	if err == nil {
		t.Fatal("Expected an error when the insert fails")
	}
	if receipt != nil {
		t.Errorf("Failed submission must not produce a receipt, got %+v", receipt)
	}
}

func TestSubmitRateLimitByIP(t *testing.T) {
	services, _, commentRepo := newTestServices()
	now := time.Now()

	for i := 0; i < 3; i++ {
		commentRepo.Comments[string(rune('a'+i))] = &models.Comment{
			ID:          string(rune('a' + i)),
			ArticleSlug: "hello-world",
			AuthorName:  "Prior",
			Body:        "earlier comment",
			Status:      models.CommentStatusPending,
			IPAddress:   "203.0.113.7",
			CreatedAt:   now.Add(-time.Minute),
		}
	}

	receipt, err := services.Comment.Submit(context.Background(), submission(), "203.0.113.7")
	if !errors.Is(err, service.ErrTooManyRequests) {
		t.Fatalf("Expected ErrTooManyRequests, got %v", err)
	}
	if receipt == nil {
		t.Fatal("Rejection must still report quota")
	}
	if receipt.Quota.Remaining != 0 {
		t.Errorf("Expected remaining 0, got %d", receipt.Quota.Remaining)
	}
	if receipt.Quota.RetryAfter != 5*time.Minute {
		t.Errorf("Expected retry after window length, got %v", receipt.Quota.RetryAfter)
	}
	if len(commentRepo.Comments) != 3 {
		t.Errorf("Rejected submission must not persist, found %d rows", len(commentRepo.Comments))
	}
}

func TestSubmitRateLimitMatchesEmailToo(t *testing.T) {
	services, _, commentRepo := newTestServices()
	now := time.Now()

	// Prior submissions from a different IP but the same email
	for i := 0; i < 3; i++ {
		commentRepo.Comments[string(rune('a'+i))] = &models.Comment{
			ID:          string(rune('a' + i)),
			ArticleSlug: "hello-world",
			AuthorName:  "Prior",
			AuthorEmail: "ann@example.com",
			Body:        "earlier comment",
			Status:      models.CommentStatusPending,
			IPAddress:   "198.51.100.1",
			CreatedAt:   now.Add(-time.Minute),
		}
	}

	sub := submission()
	sub.Email = "ann@example.com"

	_, err := services.Comment.Submit(context.Background(), sub, "203.0.113.7")
	if !errors.Is(err, service.ErrTooManyRequests) {
		t.Errorf("Email match must count against the limit, got %v", err)
	}
}

func TestSubmitIgnoresCommentsOutsideWindow(t *testing.T) {
	services, _, commentRepo := newTestServices()
	now := time.Now()

	for i := 0; i < 3; i++ {
		commentRepo.Comments[string(rune('a'+i))] = &models.Comment{
			ID:          string(rune('a' + i)),
			ArticleSlug: "hello-world",
			AuthorName:  "Prior",
			Body:        "stale comment",
			Status:      models.CommentStatusPending,
			IPAddress:   "203.0.113.7",
			CreatedAt:   now.Add(-10 * time.Minute),
		}
	}

	_, err := services.Comment.Submit(context.Background(), submission(), "203.0.113.7")
	if err != nil {
		t.Errorf("Comments outside the window must not count, got %v", err)
	}
}

func TestModerateCommentRequiresAdmin(t *testing.T) {
	services, _, commentRepo := newTestServices()
	commentRepo.Comments["c1"] = &models.Comment{ID: "c1", Status: models.CommentStatusPending}

	_, err := services.Comment.Moderate(context.Background(), "c1", models.CommentActionApprove, reporter())
	if err != service.ErrUnauthorized {
		t.Errorf("Expected ErrUnauthorized for non-admin, got %v", err)
	}
}

func TestModerateCommentApprove(t *testing.T) {
	services, _, commentRepo := newTestServices()
	commentRepo.Comments["c1"] = &models.Comment{ID: "c1", Status: models.CommentStatusPending}

	status, err := services.Comment.Moderate(context.Background(), "c1", models.CommentActionApprove, admin())
	if err != nil {
		t.Fatalf("Moderate failed: %v", err)
	}
	if status != models.CommentStatusApproved {
		t.Errorf("Expected approved, got %s", status)
	}
	if commentRepo.Comments["c1"].Status != models.CommentStatusApproved {
		t.Error("Status change not persisted")
	}
}

func TestModerateCommentDeleteRemovesRow(t *testing.T) {
	services, _, commentRepo := newTestServices()
	commentRepo.Comments["c1"] = &models.Comment{ID: "c1", Status: models.CommentStatusPending}

	_, err := services.Comment.Moderate(context.Background(), "c1", models.CommentActionDelete, admin())
	if err != nil {
		t.Fatalf("Moderate failed: %v", err)
	}
	if _, exists := commentRepo.Comments["c1"]; exists {
		t.Error("Delete must remove the row permanently")
	}
}

func TestModerateCommentUnknownAction(t *testing.T) {
	services, _, commentRepo := newTestServices()
	commentRepo.Comments["c1"] = &models.Comment{ID: "c1", Status: models.CommentStatusPending}

	_, err := services.Comment.Moderate(context.Background(), "c1", "hide", admin())
	if !errors.Is(err, service.ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument, got %v", err)
	}
}

func TestListApprovedExcludesOtherStatuses(t *testing.T) {
	services, _, commentRepo := newTestServices()
	now := time.Now()
	commentRepo.Comments["c1"] = &models.Comment{
		ID: "c1", ArticleSlug: "hello-world", Status: models.CommentStatusApproved, CreatedAt: now,
	}
	commentRepo.Comments["c2"] = &models.Comment{
		ID: "c2", ArticleSlug: "hello-world", Status: models.CommentStatusPending, CreatedAt: now,
	}
	commentRepo.Comments["c3"] = &models.Comment{
		ID: "c3", ArticleSlug: "hello-world", Status: models.CommentStatusRejected, CreatedAt: now,
	}

	comments, err := services.Comment.ListApproved(context.Background(), "hello-world")
	if err != nil {
		t.Fatalf("ListApproved failed: %v", err)
	}
	if len(comments) != 1 || comments[0].ID != "c1" {
		t.Errorf("Expected only the approved comment, got %d rows", len(comments))
	}
}

func TestListModerationQueueRequiresAdmin(t *testing.T) {
	services, _, _ := newTestServices()

	_, err := services.Comment.List(context.Background(), models.CommentFilter{}, reporter())
	if err != service.ErrUnauthorized {
		t.Errorf("Expected ErrUnauthorized, got %v", err)
	}
}

func TestListModerationQueueFilters(t *testing.T) {
	services, _, commentRepo := newTestServices()
	base := time.Now()
	commentRepo.Comments["c1"] = &models.Comment{
		ID: "c1", AuthorName: "Ann", Body: "first", Status: models.CommentStatusPending, CreatedAt: base.Add(-2 * time.Hour),
	}
	commentRepo.Comments["c2"] = &models.Comment{
		ID: "c2", AuthorName: "Bob", Body: "second", Status: models.CommentStatusPending, CreatedAt: base.Add(-time.Hour),
	}
	commentRepo.Comments["c3"] = &models.Comment{
		ID: "c3", AuthorName: "Cleo", Body: "third", Status: models.CommentStatusApproved, CreatedAt: base,
	}

	comments, err := services.Comment.List(context.Background(), models.CommentFilter{
		Status: models.CommentStatusPending,
	}, admin())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(comments) != 2 {
		t.Fatalf("Expected 2 pending comments, got %d", len(comments))
	}
	if comments[0].ID != "c1" {
		t.Error("Expected oldest-first ordering")
	}

	comments, err = services.Comment.List(context.Background(), models.CommentFilter{Query: "BOB"}, admin())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(comments) != 1 || comments[0].ID != "c2" {
		t.Errorf("Expected case-insensitive name match, got %d rows", len(comments))
	}
}
