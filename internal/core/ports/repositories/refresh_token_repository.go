package repositories

import (
	"context"
	"time"

	"github.com/linkstash/linkstash_backend/internal/core/domain"
)

// RefreshTokenRepository persists refresh tokens. Rows are only ever
// inserted or updated (last_used_at / revoked_at); they are never deleted.
type RefreshTokenRepository interface {
	Insert(ctx context.Context, token domain.RefreshToken) error

	// Consume atomically looks up the token by hash and marks it spent
	// (last_used_at = revoked_at = now). The row is locked for the duration
	// of the transaction, so two concurrent rotations of the same token
	// cannot both succeed. Fails with apperrors.ErrNotFound,
	// apperrors.ErrRefreshTokenRevoked or apperrors.ErrRefreshTokenExpired.
	Consume(ctx context.Context, tokenHash string, now time.Time) (*domain.RefreshToken, error)

	// RevokeAllForUser sets revoked_at on every unrevoked token belonging to
	// the user and returns the number of rows affected.
	RevokeAllForUser(ctx context.Context, userID string, now time.Time) (int64, error)
}
