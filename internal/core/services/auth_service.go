package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/linkstash/linkstash_backend/internal/apperrors"
	"github.com/linkstash/linkstash_backend/internal/core/domain"
	portssvc "github.com/linkstash/linkstash_backend/internal/core/ports/services"
	"github.com/linkstash/linkstash_backend/internal/metrics"
	"github.com/linkstash/linkstash_backend/internal/platform/config"
	"github.com/linkstash/linkstash_backend/internal/utils/ratelimit"
)

// refreshKeyPrefixLen bounds the part of the raw token used as the
// rate-limit bucket key. A prefix keeps buckets coarse enough to be useful
// against brute force without keying on full token values.
const refreshKeyPrefixLen = 12

// authService composes identity resolution and the token services for the
// login, exchange, refresh and revoke flows.
type authService struct {
	cfg          *config.Config
	identitySvc  portssvc.IdentitySvcFacade
	accessTokens portssvc.AccessTokenSvcFacade
	refreshSvc   portssvc.RefreshTokenSvcFacade
	limiter      *ratelimit.FixedWindowLimiter
	metrics      metrics.AuthMetrics
	logger       *slog.Logger
}

// NewAuthService creates a new instance of authService.
func NewAuthService(
	cfg *config.Config,
	identitySvc portssvc.IdentitySvcFacade,
	accessTokens portssvc.AccessTokenSvcFacade,
	refreshSvc portssvc.RefreshTokenSvcFacade,
	limiter *ratelimit.FixedWindowLimiter,
	m metrics.AuthMetrics,
	logger *slog.Logger,
) portssvc.AuthSvcFacade {
	return &authService{
		cfg:          cfg,
		identitySvc:  identitySvc,
		accessTokens: accessTokens,
		refreshSvc:   refreshSvc,
		limiter:      limiter,
		metrics:      m,
		logger:       logger,
	}
}

// CompleteLogin resolves the provider claims to a user and hands back a
// bearer token pair.
func (s *authService) CompleteLogin(ctx context.Context, claims domain.ProviderClaims) (string, *domain.TokenPair, error) {
	userID, err := s.identitySvc.ResolveOrCreateUser(ctx, claims)
	if err != nil {
		return "", nil, err
	}

	pair, err := s.issuePair(ctx, userID)
	if err != nil {
		return "", nil, err
	}

	s.metrics.RecordLogin(claims.Provider)
	return userID, pair, nil
}

// ExchangeToken mints a fresh pair for an already-authenticated principal.
func (s *authService) ExchangeToken(ctx context.Context, userID string) (*domain.TokenPair, error) {
	return s.issuePair(ctx, userID)
}

// Refresh rotates the presented refresh token and mints a new access token.
// Rotation failures are collapsed to ErrUnauthorized before leaving this
// method: distinguishing invalid from expired from revoked would hand an
// attacker an oracle. The internal distinction is kept for logs and metrics.
func (s *authService) Refresh(ctx context.Context, rawToken string) (string, *domain.TokenPair, error) {
	if !s.limiter.Allow("auth:refresh:"+tokenPrefix(rawToken), s.cfg.RefreshRateLimit, s.cfg.RefreshRateWindow) {
		s.metrics.RecordRotationDenied("rate_limited")
		return "", nil, apperrors.ErrRateLimited
	}

	userID, newRefresh, err := s.refreshSvc.Rotate(ctx, rawToken)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			s.metrics.RecordRotationDenied("not_found")
			s.logger.WarnContext(ctx, "Refresh rotation rejected: no matching token")
		case errors.Is(err, apperrors.ErrRefreshTokenExpired):
			s.metrics.RecordRotationDenied("expired")
			s.logger.WarnContext(ctx, "Refresh rotation rejected: token expired")
		case errors.Is(err, apperrors.ErrRefreshTokenRevoked):
			s.metrics.RecordRotationDenied("revoked")
			s.logger.WarnContext(ctx, "Refresh rotation rejected: token revoked, possible replay")
		default:
			return "", nil, err
		}
		return "", nil, apperrors.ErrUnauthorized
	}

	accessToken, err := s.accessTokens.Mint(ctx, userID)
	if err != nil {
		return "", nil, err
	}

	s.metrics.RecordRotation()
	return userID, &domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: newRefresh,
		TokenType:    "bearer",
	}, nil
}

// Revoke invalidates every live refresh token for the user ("log out
// everywhere") and returns the number revoked.
func (s *authService) Revoke(ctx context.Context, userID string) (int64, error) {
	count, err := s.refreshSvc.RevokeAllForUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	s.metrics.RecordTokensRevoked(count)
	s.logger.InfoContext(ctx, "Revoked refresh tokens", slog.String("user_id", userID), slog.Int64("count", count))
	return count, nil
}

func (s *authService) issuePair(ctx context.Context, userID string) (*domain.TokenPair, error) {
	accessToken, err := s.accessTokens.Mint(ctx, userID)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.refreshSvc.Issue(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue refresh token: %w", err)
	}

	s.metrics.RecordTokenPairIssued()
	return &domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
	}, nil
}

func tokenPrefix(rawToken string) string {
	if len(rawToken) <= refreshKeyPrefixLen {
		return rawToken
	}
	return rawToken[:refreshKeyPrefixLen]
}
