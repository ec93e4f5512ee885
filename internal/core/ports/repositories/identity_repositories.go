package repositories

import (
	"context"

	"github.com/linkstash/linkstash_backend/internal/core/domain"
)

// IdentityRepository owns user and identity persistence.
type IdentityRepository interface {
	// ResolveOrCreate looks up the identity by (provider, provider_subject)
	// and returns the owning user id. When no identity exists it inserts the
	// user and identity rows from ident, all inside one transaction.
	// A concurrent first-login race surfaces as apperrors.ErrDuplicate for
	// the loser; callers retry the call, which then finds the winner's row.
	ResolveOrCreate(ctx context.Context, ident domain.Identity) (string, error)

	// ListIdentities returns the identities linked to a user, oldest first.
	ListIdentities(ctx context.Context, userID string) ([]domain.Identity, error)
}
