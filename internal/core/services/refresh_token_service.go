package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/linkstash/linkstash_backend/internal/apperrors"
	"github.com/linkstash/linkstash_backend/internal/core/domain"
	portsrepo "github.com/linkstash/linkstash_backend/internal/core/ports/repositories"
	portssvc "github.com/linkstash/linkstash_backend/internal/core/ports/services"
	"github.com/linkstash/linkstash_backend/internal/platform/config"
	"github.com/linkstash/linkstash_backend/internal/utils"
)

// refreshTokenSecretBytes gives a 64-character URL-safe secret.
const refreshTokenSecretBytes = 48

type refreshTokenService struct {
	cfg       *config.Config
	tokenRepo portsrepo.RefreshTokenRepository
}

// NewRefreshTokenService creates a new instance of refreshTokenService.
func NewRefreshTokenService(cfg *config.Config, tokenRepo portsrepo.RefreshTokenRepository) portssvc.RefreshTokenSvcFacade {
	return &refreshTokenService{
		cfg:       cfg,
		tokenRepo: tokenRepo,
	}
}

// Issue generates a high-entropy opaque secret, persists its keyed hash and
// returns the raw secret. The raw value is never stored and never observable
// again after this call.
func (s *refreshTokenService) Issue(ctx context.Context, userID string) (string, error) {
	if s.cfg.JWTSecret == "" {
		return "", fmt.Errorf("JWT_SECRET is not set: %w", apperrors.ErrConfiguration)
	}

	rawToken, err := utils.GenerateSecureRandomString(refreshTokenSecretBytes)
	if err != nil {
		return "", fmt.Errorf("failed to generate refresh token secret: %w", err)
	}

	now := time.Now()
	token := domain.RefreshToken{
		TokenID:   uuid.NewString(),
		UserID:    userID,
		TokenHash: utils.HashRefreshToken(rawToken, s.cfg.JWTSecret),
		IssuedAt:  now,
		ExpiresAt: now.Add(s.cfg.RefreshTokenExpiryDuration),
	}

	if err := s.tokenRepo.Insert(ctx, token); err != nil {
		return "", fmt.Errorf("failed to persist refresh token: %w", err)
	}
	return rawToken, nil
}

// Rotate spends the presented token and issues a fresh one for its owner.
// The repository consumes the matched row atomically, so a token rotated
// once can never be rotated again; a replay of a stolen token therefore
// fails for exactly one of the two holders, which is what makes theft
// detectable.
func (s *refreshTokenService) Rotate(ctx context.Context, rawToken string) (string, string, error) {
	if s.cfg.JWTSecret == "" {
		return "", "", fmt.Errorf("JWT_SECRET is not set: %w", apperrors.ErrConfiguration)
	}

	tokenHash := utils.HashRefreshToken(rawToken, s.cfg.JWTSecret)
	spent, err := s.tokenRepo.Consume(ctx, tokenHash, time.Now())
	if err != nil {
		return "", "", err
	}

	newRawToken, err := s.Issue(ctx, spent.UserID)
	if err != nil {
		return "", "", err
	}
	return spent.UserID, newRawToken, nil
}

func (s *refreshTokenService) RevokeAllForUser(ctx context.Context, userID string) (int64, error) {
	count, err := s.tokenRepo.RevokeAllForUser(ctx, userID, time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to revoke refresh tokens for user: %w", err)
	}
	return count, nil
}
