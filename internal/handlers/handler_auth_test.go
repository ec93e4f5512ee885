package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/linkstash/linkstash_backend/internal/apperrors"
	"github.com/linkstash/linkstash_backend/internal/core/domain"
	"github.com/linkstash/linkstash_backend/internal/dto"
	"github.com/linkstash/linkstash_backend/internal/handlers"
	"github.com/linkstash/linkstash_backend/internal/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mock AuthSvcFacade ---
type MockAuthService struct {
	CompleteLoginFn func(ctx context.Context, claims domain.ProviderClaims) (string, *domain.TokenPair, error)
	ExchangeTokenFn func(ctx context.Context, userID string) (*domain.TokenPair, error)
	RefreshFn       func(ctx context.Context, rawToken string) (string, *domain.TokenPair, error)
	RevokeFn        func(ctx context.Context, userID string) (int64, error)
}

func (m *MockAuthService) CompleteLogin(ctx context.Context, claims domain.ProviderClaims) (string, *domain.TokenPair, error) {
	if m.CompleteLoginFn != nil {
		return m.CompleteLoginFn(ctx, claims)
	}
	return "", nil, apperrors.ErrUnauthorized
}

func (m *MockAuthService) ExchangeToken(ctx context.Context, userID string) (*domain.TokenPair, error) {
	if m.ExchangeTokenFn != nil {
		return m.ExchangeTokenFn(ctx, userID)
	}
	return nil, apperrors.ErrUnauthorized
}

func (m *MockAuthService) Refresh(ctx context.Context, rawToken string) (string, *domain.TokenPair, error) {
	if m.RefreshFn != nil {
		return m.RefreshFn(ctx, rawToken)
	}
	return "", nil, apperrors.ErrUnauthorized
}

func (m *MockAuthService) Revoke(ctx context.Context, userID string) (int64, error) {
	if m.RevokeFn != nil {
		return m.RevokeFn(ctx, userID)
	}
	return 0, nil
}

// --- Mock IdentitySvcFacade ---
type MockIdentityService struct {
	ResolveOrCreateUserFn func(ctx context.Context, claims domain.ProviderClaims) (string, error)
	ListIdentitiesFn      func(ctx context.Context, userID string) ([]domain.Identity, error)
}

func (m *MockIdentityService) ResolveOrCreateUser(ctx context.Context, claims domain.ProviderClaims) (string, error) {
	if m.ResolveOrCreateUserFn != nil {
		return m.ResolveOrCreateUserFn(ctx, claims)
	}
	return "", apperrors.ErrValidation
}

func (m *MockIdentityService) ListIdentities(ctx context.Context, userID string) ([]domain.Identity, error) {
	if m.ListIdentitiesFn != nil {
		return m.ListIdentitiesFn(ctx, userID)
	}
	return nil, nil
}

// --- Mock AccessTokenSvcFacade ---
type MockAccessTokenService struct {
	MintFn   func(ctx context.Context, userID string) (string, error)
	VerifyFn func(ctx context.Context, tokenString string) (string, error)
}

func (m *MockAccessTokenService) Mint(ctx context.Context, userID string) (string, error) {
	if m.MintFn != nil {
		return m.MintFn(ctx, userID)
	}
	return "", apperrors.ErrConfiguration
}

func (m *MockAccessTokenService) Verify(ctx context.Context, tokenString string) (string, error) {
	if m.VerifyFn != nil {
		return m.VerifyFn(ctx, tokenString)
	}
	return "", apperrors.ErrUnauthorized
}

func testPair() *domain.TokenPair {
	return &domain.TokenPair{
		AccessToken:  "access-jwt",
		RefreshToken: "refresh-opaque",
		TokenType:    "bearer",
	}
}

// newAuthRouter mirrors the production wiring: refresh is unauthenticated,
// token/revoke/me sit behind the bearer middleware.
func newAuthRouter(authSvc *MockAuthService, identitySvc *MockIdentityService, tokens *MockAccessTokenService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handlers.NewAuthHandler(authSvc, identitySvc)

	r.POST("/auth/refresh", h.Refresh)

	authed := r.Group("/", middleware.AuthMiddleware(tokens))
	authed.POST("/auth/token", h.ExchangeToken)
	authed.POST("/auth/revoke", h.Revoke)
	authed.GET("/me", h.Me)
	return r
}

func performJSON(r *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRefreshHandlerReturnsNewPair(t *testing.T) {
	authSvc := &MockAuthService{
		RefreshFn: func(ctx context.Context, rawToken string) (string, *domain.TokenPair, error) {
			assert.Equal(t, "refresh-opaque", rawToken)
			return "user-1", testPair(), nil
		},
	}
	r := newAuthRouter(authSvc, &MockIdentityService{}, &MockAccessTokenService{})

	w := performJSON(r, http.MethodPost, "/auth/refresh", dto.RefreshRequest{RefreshToken: "refresh-opaque"}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.TokenPairResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "access-jwt", resp.AccessToken)
	assert.Equal(t, "bearer", resp.TokenType)
}

func TestRefreshHandlerRejectsMissingBody(t *testing.T) {
	r := newAuthRouter(&MockAuthService{}, &MockIdentityService{}, &MockAccessTokenService{})

	w := performJSON(r, http.MethodPost, "/auth/refresh", map[string]string{}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRefreshHandlerMapsUnauthorized(t *testing.T) {
	authSvc := &MockAuthService{
		RefreshFn: func(ctx context.Context, rawToken string) (string, *domain.TokenPair, error) {
			return "", nil, apperrors.ErrUnauthorized
		},
	}
	r := newAuthRouter(authSvc, &MockIdentityService{}, &MockAccessTokenService{})

	w := performJSON(r, http.MethodPost, "/auth/refresh", dto.RefreshRequest{RefreshToken: "spent"}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRefreshHandlerMapsRateLimited(t *testing.T) {
	authSvc := &MockAuthService{
		RefreshFn: func(ctx context.Context, rawToken string) (string, *domain.TokenPair, error) {
			return "", nil, apperrors.ErrRateLimited
		},
	}
	r := newAuthRouter(authSvc, &MockIdentityService{}, &MockAccessTokenService{})

	w := performJSON(r, http.MethodPost, "/auth/refresh", dto.RefreshRequest{RefreshToken: "hammered"}, nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestExchangeTokenRequiresBearer(t *testing.T) {
	r := newAuthRouter(&MockAuthService{}, &MockIdentityService{}, &MockAccessTokenService{})

	w := performJSON(r, http.MethodPost, "/auth/token", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestExchangeTokenIssuesPairForVerifiedUser(t *testing.T) {
	tokens := &MockAccessTokenService{
		VerifyFn: func(ctx context.Context, tokenString string) (string, error) {
			assert.Equal(t, "valid-jwt", tokenString)
			return "user-1", nil
		},
	}
	authSvc := &MockAuthService{
		ExchangeTokenFn: func(ctx context.Context, userID string) (*domain.TokenPair, error) {
			assert.Equal(t, "user-1", userID)
			return testPair(), nil
		},
	}
	r := newAuthRouter(authSvc, &MockIdentityService{}, tokens)

	w := performJSON(r, http.MethodPost, "/auth/token", nil, map[string]string{"Authorization": "Bearer valid-jwt"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.TokenPairResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "refresh-opaque", resp.RefreshToken)
}

func TestRevokeReportsCount(t *testing.T) {
	tokens := &MockAccessTokenService{
		VerifyFn: func(ctx context.Context, tokenString string) (string, error) {
			return "user-1", nil
		},
	}
	authSvc := &MockAuthService{
		RevokeFn: func(ctx context.Context, userID string) (int64, error) {
			assert.Equal(t, "user-1", userID)
			return 3, nil
		},
	}
	r := newAuthRouter(authSvc, &MockIdentityService{}, tokens)

	w := performJSON(r, http.MethodPost, "/auth/revoke", nil, map[string]string{"Authorization": "Bearer valid-jwt"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.RevokeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(3), resp.Revoked)
}

func TestMeListsLinkedIdentities(t *testing.T) {
	tokens := &MockAccessTokenService{
		VerifyFn: func(ctx context.Context, tokenString string) (string, error) {
			return "user-1", nil
		},
	}
	identitySvc := &MockIdentityService{
		ListIdentitiesFn: func(ctx context.Context, userID string) ([]domain.Identity, error) {
			return []domain.Identity{
				{Provider: "google", ProviderSubject: "abc", UserID: userID},
			}, nil
		},
	}
	r := newAuthRouter(&MockAuthService{}, identitySvc, tokens)

	w := performJSON(r, http.MethodGet, "/me", nil, map[string]string{"Authorization": "Bearer valid-jwt"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.MeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "user-1", resp.UserID)
	require.Len(t, resp.Identities, 1)
	assert.Equal(t, "google", resp.Identities[0].Provider)
}
