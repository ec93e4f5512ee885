package services_test

import (
	"context"
	"testing"

	"github.com/linkstash/linkstash_backend/internal/apperrors"
	"github.com/linkstash/linkstash_backend/internal/core/domain"
	"github.com/linkstash/linkstash_backend/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mock IdentityRepository ---
type MockIdentityRepository struct {
	ResolveOrCreateFn func(ctx context.Context, ident domain.Identity) (string, error)
	ListIdentitiesFn  func(ctx context.Context, userID string) ([]domain.Identity, error)
}

func (m *MockIdentityRepository) ResolveOrCreate(ctx context.Context, ident domain.Identity) (string, error) {
	if m.ResolveOrCreateFn != nil {
		return m.ResolveOrCreateFn(ctx, ident)
	}
	return "", apperrors.ErrNotFound
}

func (m *MockIdentityRepository) ListIdentities(ctx context.Context, userID string) ([]domain.Identity, error) {
	if m.ListIdentitiesFn != nil {
		return m.ListIdentitiesFn(ctx, userID)
	}
	return nil, nil
}

func googleClaims(subject string) domain.ProviderClaims {
	email := subject + "@example.com"
	return domain.ProviderClaims{
		Provider: "google",
		Subject:  subject,
		Email:    &email,
	}
}

func TestResolveOrCreateUserIsIdempotent(t *testing.T) {
	// The repository resolves by (provider, subject); repeat calls for the
	// same pair land on the same user.
	known := map[string]string{}
	repo := &MockIdentityRepository{
		ResolveOrCreateFn: func(ctx context.Context, ident domain.Identity) (string, error) {
			key := ident.Provider + ":" + ident.ProviderSubject
			if existing, ok := known[key]; ok {
				return existing, nil
			}
			known[key] = ident.UserID
			return ident.UserID, nil
		},
	}
	svc := services.NewIdentityService(repo)
	ctx := context.Background()

	first, err := svc.ResolveOrCreateUser(ctx, googleClaims("abc"))
	require.NoError(t, err)
	second, err := svc.ResolveOrCreateUser(ctx, googleClaims("abc"))
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, known, 1)
}

func TestResolveOrCreateUserRetriesOnConflict(t *testing.T) {
	// The loser of a concurrent first-login gets ErrDuplicate and must retry
	// the lookup, which then finds the winner's row.
	calls := 0
	repo := &MockIdentityRepository{
		ResolveOrCreateFn: func(ctx context.Context, ident domain.Identity) (string, error) {
			calls++
			if calls == 1 {
				return "", apperrors.ErrDuplicate
			}
			return "winner-user", nil
		},
	}
	svc := services.NewIdentityService(repo)

	userID, err := svc.ResolveOrCreateUser(context.Background(), googleClaims("abc"))
	require.NoError(t, err)
	assert.Equal(t, "winner-user", userID)
	assert.Equal(t, 2, calls)
}

func TestResolveOrCreateUserRequiresProviderAndSubject(t *testing.T) {
	svc := services.NewIdentityService(&MockIdentityRepository{})

	_, err := svc.ResolveOrCreateUser(context.Background(), domain.ProviderClaims{Provider: "google"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.ResolveOrCreateUser(context.Background(), domain.ProviderClaims{Subject: "abc"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestListIdentitiesPassesThrough(t *testing.T) {
	repo := &MockIdentityRepository{
		ListIdentitiesFn: func(ctx context.Context, userID string) ([]domain.Identity, error) {
			return []domain.Identity{
				{Provider: "google", ProviderSubject: "abc", UserID: userID},
			}, nil
		},
	}
	svc := services.NewIdentityService(repo)

	identities, err := svc.ListIdentities(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, identities, 1)
	assert.Equal(t, "google", identities[0].Provider)
}
