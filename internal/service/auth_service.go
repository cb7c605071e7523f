package service

import (
	"context"
	"fmt"

	"github.com/newsdesk-api/internal/models"
	"github.com/newsdesk-api/internal/repository"
	"github.com/rs/zerolog"
)

// authService resolves session tokens against the users/sessions store
type authService struct {
	users repository.UserRepository
	log   zerolog.Logger
}

func newAuthService(users repository.UserRepository, log zerolog.Logger) *authService {
	return &authService{
		users: users,
		log:   log.With().Str("service", "auth").Logger(),
	}
}

// Resolve maps a session token to an application identity with a role.
// A missing, expired or inactive session is unauthorized.
func (s *authService) Resolve(ctx context.Context, token string) (*models.Identity, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}

	user, err := s.users.GetBySessionToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("resolving session: %w", err)
	}
	if user == nil {
		return nil, ErrUnauthorized
	}

	return &models.Identity{
		UserID: user.ID,
		Name:   user.Name,
		Role:   user.Role,
	}, nil
}
