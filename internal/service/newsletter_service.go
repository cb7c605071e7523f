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

// newsletterService is the concrete implementation of NewsletterService
type newsletterService struct {
	subscribers repository.SubscriberRepository
	log         zerolog.Logger
}

func newNewsletterService(subscribers repository.SubscriberRepository, log zerolog.Logger) *newsletterService {
	return &newsletterService{
		subscribers: subscribers,
		log:         log.With().Str("service", "newsletter").Logger(),
	}
}

// Subscribe registers an email for the newsletter. Signing up twice
// with the same email is a no-op.
func (s *newsletterService) Subscribe(ctx context.Context, email string) error {
	if !validation.ValidEmail(email) {
		return fmt.Errorf("%w: invalid email format", ErrInvalidArgument)
	}

	sub := &models.Subscriber{
		ID:        uuid.New().String(),
		Email:     email,
		Confirmed: false,
		CreatedAt: time.Now(),
	}
	if err := s.subscribers.Upsert(ctx, sub); err != nil {
		return fmt.Errorf("storing subscriber: %w", err)
	}

	s.log.Info().Str("email", email).Msg("Newsletter signup")
	return nil
}
