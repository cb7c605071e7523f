package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/newsdesk-api/internal/config"
	"github.com/newsdesk-api/internal/mocks"
	"github.com/newsdesk-api/internal/repository"
	"github.com/newsdesk-api/internal/service"
	"github.com/rs/zerolog"
)

func TestSubscribeIsIdempotent(t *testing.T) {
	subscriberRepo := mocks.NewMockSubscriberRepository()
	repos := &repository.Repositories{
		User:       mocks.NewMockUserRepository(),
		Article:    mocks.NewMockArticleRepository(),
		Comment:    mocks.NewMockCommentRepository(),
		Category:   mocks.NewMockCategoryRepository(),
		Ad:         mocks.NewMockAdRepository(),
		Subscriber: subscriberRepo,
	}
	cfg := &config.Config{
		RateLimit: config.RateLimitConfig{Window: 5 * time.Minute, MaxSubmission: 3},
		Site:      config.SiteConfig{Name: "Newsdesk", BaseURL: "https://news.example.com"},
	}
	services := service.NewServices(repos, cfg, zerolog.Nop())

	if err := services.Newsletter.Subscribe(context.Background(), "ann@example.com"); err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	if err := services.Newsletter.Subscribe(context.Background(), "ann@example.com"); err != nil {
		t.Fatalf("Duplicate subscribe must succeed: %v", err)
	}
	if len(subscriberRepo.Subscribers) != 1 {
		t.Errorf("Expected 1 subscriber, got %d", len(subscriberRepo.Subscribers))
	}

	err := services.Newsletter.Subscribe(context.Background(), "not-an-email")
	if !errors.Is(err, service.ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument, got %v", err)
	}
}
