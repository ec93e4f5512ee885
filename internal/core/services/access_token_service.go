package services

import (
	"context"
	"fmt"

	"github.com/linkstash/linkstash_backend/internal/apperrors"
	portssvc "github.com/linkstash/linkstash_backend/internal/core/ports/services"
	"github.com/linkstash/linkstash_backend/internal/platform/config"
	"github.com/linkstash/linkstash_backend/internal/utils"
)

// accessTokenService mints and verifies the short-lived signed tokens.
// Tokens are not persisted: a valid signature and unexpired claims are the
// whole story, which also means an unexpired leaked token cannot be revoked
// individually. Short TTLs bound the exposure.
type accessTokenService struct {
	cfg *config.Config
}

// NewAccessTokenService creates a new instance of accessTokenService.
func NewAccessTokenService(cfg *config.Config) portssvc.AccessTokenSvcFacade {
	return &accessTokenService{cfg: cfg}
}

func (s *accessTokenService) Mint(ctx context.Context, userID string) (string, error) {
	if s.cfg.JWTSecret == "" {
		return "", fmt.Errorf("JWT_SECRET is not set: %w", apperrors.ErrConfiguration)
	}

	token, err := utils.GenerateJWT(userID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return token, nil
}

// Verify returns the subject user id of a valid token. Every failure mode
// (bad signature, missing claims, expiry, issuer mismatch, wrong type)
// collapses to ErrUnauthorized so the caller can't tell which check failed.
func (s *accessTokenService) Verify(ctx context.Context, tokenString string) (string, error) {
	if s.cfg.JWTSecret == "" {
		return "", fmt.Errorf("JWT_SECRET is not set: %w", apperrors.ErrConfiguration)
	}

	claims, err := utils.ParseAndValidateJWT(tokenString, s.cfg.JWTSecret, s.cfg.JWTIssuer)
	if err != nil {
		return "", fmt.Errorf("access token rejected: %w", apperrors.ErrUnauthorized)
	}
	return claims.Subject, nil
}
