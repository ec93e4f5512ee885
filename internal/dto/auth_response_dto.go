package dto

import (
	"time"

	"github.com/linkstash/linkstash_backend/internal/core/domain"
)

// TokenPairResponse is returned by the login, exchange and refresh endpoints.
type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// ToTokenPairResponse maps a domain token pair to its response shape.
func ToTokenPairResponse(pair *domain.TokenPair) TokenPairResponse {
	return TokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    pair.TokenType,
	}
}

// RefreshRequest is the body of POST /auth/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// RevokeResponse reports how many refresh tokens a revoke-all invalidated.
type RevokeResponse struct {
	Revoked int64 `json:"revoked"`
}

// IdentityResponse is one linked provider account.
type IdentityResponse struct {
	Provider        string    `json:"provider"`
	ProviderSubject string    `json:"provider_subject"`
	Email           *string   `json:"email,omitempty"`
	Name            *string   `json:"name,omitempty"`
	AvatarURL       *string   `json:"avatar_url,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// MeResponse is the authenticated principal plus linked identities, oldest first.
type MeResponse struct {
	UserID     string             `json:"user_id"`
	Identities []IdentityResponse `json:"identities"`
}

// ToIdentityResponses maps domain identities to their response shape.
func ToIdentityResponses(identities []domain.Identity) []IdentityResponse {
	out := make([]IdentityResponse, 0, len(identities))
	for _, ident := range identities {
		out = append(out, IdentityResponse{
			Provider:        ident.Provider,
			ProviderSubject: ident.ProviderSubject,
			Email:           ident.Email,
			Name:            ident.Name,
			AvatarURL:       ident.AvatarURL,
			CreatedAt:       ident.CreatedAt,
		})
	}
	return out
}
