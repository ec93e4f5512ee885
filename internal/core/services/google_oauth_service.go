package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/linkstash/linkstash_backend/internal/core/domain"
	portssvc "github.com/linkstash/linkstash_backend/internal/core/ports/services"
	"github.com/linkstash/linkstash_backend/internal/platform/config"
	"github.com/linkstash/linkstash_backend/internal/utils"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
)

// googleOAuthService is the boundary to Google's OAuth endpoints. The core
// never performs the handshake itself; on success this service yields
// verified ProviderClaims and everything downstream is provider-agnostic.
type googleOAuthService struct {
	cfg          *config.Config
	oauth2Config *oauth2.Config
}

// NewGoogleOAuthService creates a new instance of googleOAuthService.
func NewGoogleOAuthService(cfg *config.Config) portssvc.GoogleOAuthSvcFacade {
	return &googleOAuthService{
		cfg: cfg,
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

// GenerateStateString creates a secure random string used as a CSRF token for the OAuth flow.
func (s *googleOAuthService) GenerateStateString(ctx context.Context) (string, error) {
	state, err := utils.GenerateSecureRandomString(16)
	if err != nil {
		return "", fmt.Errorf("failed to generate state string for OAuth: %w", err)
	}
	return state, nil
}

// GetLoginURL returns the URL to redirect the user to for Google login.
func (s *googleOAuthService) GetLoginURL(ctx context.Context, state string) string {
	return s.oauth2Config.AuthCodeURL(state)
}

// ExchangeCode exchanges an OAuth authorization code for a token.
func (s *googleOAuthService) ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange oauth code for token: %w", err)
	}
	return token, nil
}

// ValidateIDToken validates an ID token received from Google and decodes the
// verified payload into provider claims. Subject is required; profile fields
// are optional.
func (s *googleOAuthService) ValidateIDToken(ctx context.Context, idTokenString string) (domain.ProviderClaims, error) {
	if s.cfg.GoogleClientID == "" {
		return domain.ProviderClaims{}, errors.New("google client ID is not configured")
	}

	payload, err := idtoken.Validate(ctx, idTokenString, s.cfg.GoogleClientID)
	if err != nil {
		return domain.ProviderClaims{}, fmt.Errorf("google ID token validation failed: %w", err)
	}
	if payload.Subject == "" {
		return domain.ProviderClaims{}, errors.New("google ID token missing subject")
	}

	claims := domain.ProviderClaims{
		Provider: "google",
		Subject:  payload.Subject,
	}
	if email, ok := payload.Claims["email"].(string); ok && email != "" {
		claims.Email = &email
	}
	if name, ok := payload.Claims["name"].(string); ok && name != "" {
		claims.Name = &name
	}
	if picture, ok := payload.Claims["picture"].(string); ok && picture != "" {
		claims.AvatarURL = &picture
	}
	return claims, nil
}
