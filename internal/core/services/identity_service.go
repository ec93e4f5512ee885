package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/linkstash/linkstash_backend/internal/apperrors"
	"github.com/linkstash/linkstash_backend/internal/core/domain"
	portsrepo "github.com/linkstash/linkstash_backend/internal/core/ports/repositories"
	portssvc "github.com/linkstash/linkstash_backend/internal/core/ports/services"
)

type identityService struct {
	identityRepo portsrepo.IdentityRepository
}

// NewIdentityService creates a new instance of identityService.
func NewIdentityService(identityRepo portsrepo.IdentityRepository) portssvc.IdentitySvcFacade {
	return &identityService{identityRepo: identityRepo}
}

// ResolveOrCreateUser returns the user owning the provider identity,
// creating user and identity on first sight. Two concurrent first-logins for
// the same external account race on the unique (provider, provider_subject)
// constraint; the loser retries once and finds the winner's row, so the race
// never surfaces to the caller.
func (s *identityService) ResolveOrCreateUser(ctx context.Context, claims domain.ProviderClaims) (string, error) {
	if claims.Provider == "" || claims.Subject == "" {
		return "", fmt.Errorf("provider and subject are required: %w", apperrors.ErrValidation)
	}

	userID, err := s.identityRepo.ResolveOrCreate(ctx, s.newIdentity(claims))
	if errors.Is(err, apperrors.ErrDuplicate) {
		userID, err = s.identityRepo.ResolveOrCreate(ctx, s.newIdentity(claims))
	}
	if err != nil {
		return "", fmt.Errorf("failed to resolve identity: %w", err)
	}
	return userID, nil
}

func (s *identityService) newIdentity(claims domain.ProviderClaims) domain.Identity {
	return domain.Identity{
		IdentityID:      uuid.NewString(),
		UserID:          uuid.NewString(),
		Provider:        claims.Provider,
		ProviderSubject: claims.Subject,
		Email:           claims.Email,
		Name:            claims.Name,
		AvatarURL:       claims.AvatarURL,
		CreatedAt:       time.Now(),
	}
}

func (s *identityService) ListIdentities(ctx context.Context, userID string) ([]domain.Identity, error) {
	identities, err := s.identityRepo.ListIdentities(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list identities: %w", err)
	}
	return identities, nil
}
