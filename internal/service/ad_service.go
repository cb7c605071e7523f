package service

import (
	"context"
	"fmt"
	"time"

	"github.com/newsdesk-api/internal/models"
	"github.com/newsdesk-api/internal/repository"
	"github.com/rs/zerolog"
)

// adService is the concrete implementation of AdService
type adService struct {
	ads repository.AdRepository
	log zerolog.Logger
}

func newAdService(ads repository.AdRepository, log zerolog.Logger) *adService {
	return &adService{
		ads: ads,
		log: log.With().Str("service", "ad").Logger(),
	}
}

// Active returns the currently scheduled advertisements and bumps each
// one's impression counter in the background.
func (s *adService) Active(ctx context.Context) ([]*models.Advertisement, error) {
	ads, err := s.ads.ListActive(ctx, time.Now())
	if err != nil {
		return nil, fmt.Errorf("listing advertisements: %w", err)
	}

	ids := make([]string, len(ads))
	for i, ad := range ads {
		ids[i] = ad.ID
	}
	go s.bumpViews(ids)

	return ads, nil
}

// Click records a click. Failures are swallowed; the caller always
// gets a success so analytics never block the redirect.
func (s *adService) Click(ctx context.Context, adID string) {
	if err := s.ads.IncrementClicks(ctx, adID); err != nil {
		s.log.Debug().Err(err).Str("ad_id", adID).Msg("Click count bump failed")
	}
}

func (s *adService) bumpViews(ids []string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, id := range ids {
		if err := s.ads.IncrementViews(ctx, id); err != nil {
			s.log.Debug().Err(err).Str("ad_id", id).Msg("View count bump failed")
		}
	}
}
