package services

import (
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/linkstash/linkstash_backend/internal/adapters/database/pgsql"
	portssvc "github.com/linkstash/linkstash_backend/internal/core/ports/services"
	"github.com/linkstash/linkstash_backend/internal/metrics"
	"github.com/linkstash/linkstash_backend/internal/platform/config"
	"github.com/linkstash/linkstash_backend/internal/utils/ratelimit"
)

// NewServiceContainer wires repositories and services together. The rate
// limiter is constructed here and injected, never a package-level singleton,
// so its lifecycle ends with the container.
func NewServiceContainer(cfg *config.Config, dbPool *pgxpool.Pool, m metrics.AuthMetrics, logger *slog.Logger) *portssvc.ServiceContainer {
	identityRepo := pgsql.NewIdentityRepository(dbPool)
	refreshRepo := pgsql.NewRefreshTokenRepository(dbPool)
	bookmarkRepo := pgsql.NewBookmarkRepository(dbPool)

	identitySvc := NewIdentityService(identityRepo)
	accessTokenSvc := NewAccessTokenService(cfg)
	refreshTokenSvc := NewRefreshTokenService(cfg, refreshRepo)
	limiter := ratelimit.NewFixedWindowLimiter()

	return &portssvc.ServiceContainer{
		AccessToken:  accessTokenSvc,
		RefreshToken: refreshTokenSvc,
		Identity:     identitySvc,
		Auth:         NewAuthService(cfg, identitySvc, accessTokenSvc, refreshTokenSvc, limiter, m, logger),
		GoogleOAuth:  NewGoogleOAuthService(cfg),
		Bookmark:     NewBookmarkService(bookmarkRepo),
	}
}
