package services

import (
	"context"

	"github.com/linkstash/linkstash_backend/internal/core/domain"
	"golang.org/x/oauth2"
)

// AccessTokenSvcFacade mints and verifies short-lived signed access tokens.
// Verification is stateless: no store lookup, validity is entirely contained
// in the signature and claims.
type AccessTokenSvcFacade interface {
	Mint(ctx context.Context, userID string) (string, error)
	Verify(ctx context.Context, tokenString string) (string, error)
}

// RefreshTokenSvcFacade issues, rotates and revokes long-lived opaque tokens.
type RefreshTokenSvcFacade interface {
	// Issue returns the raw secret. This is the only time it is observable;
	// only a keyed hash is stored.
	Issue(ctx context.Context, userID string) (string, error)

	// Rotate spends the presented token and issues a replacement for the
	// same user. A token can be rotated at most once.
	Rotate(ctx context.Context, rawToken string) (userID string, newRawToken string, err error)

	RevokeAllForUser(ctx context.Context, userID string) (int64, error)
}

// IdentitySvcFacade resolves provider identities to internal users.
type IdentitySvcFacade interface {
	ResolveOrCreateUser(ctx context.Context, claims domain.ProviderClaims) (string, error)
	ListIdentities(ctx context.Context, userID string) ([]domain.Identity, error)
}

// AuthSvcFacade composes identity resolution and the token services for the
// login, exchange, refresh and revoke flows.
type AuthSvcFacade interface {
	CompleteLogin(ctx context.Context, claims domain.ProviderClaims) (string, *domain.TokenPair, error)
	ExchangeToken(ctx context.Context, userID string) (*domain.TokenPair, error)
	Refresh(ctx context.Context, rawToken string) (string, *domain.TokenPair, error)
	Revoke(ctx context.Context, userID string) (int64, error)
}

// GoogleOAuthSvcFacade is the boundary to Google's OAuth endpoints. On
// success the callback path yields verified ProviderClaims; the core never
// performs the handshake itself.
type GoogleOAuthSvcFacade interface {
	GenerateStateString(ctx context.Context) (string, error)
	GetLoginURL(ctx context.Context, state string) string
	ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error)
	ValidateIDToken(ctx context.Context, idTokenString string) (domain.ProviderClaims, error)
}

// BookmarkSvcFacade manages saved pages.
type BookmarkSvcFacade interface {
	CreateBookmark(ctx context.Context, userID, url string, title, html *string) (*domain.Bookmark, error)
	ListBookmarks(ctx context.Context, userID string, limit int) ([]domain.Bookmark, error)
}
