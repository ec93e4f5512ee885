package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/linkstash/linkstash_backend/internal/apperrors"
	"github.com/linkstash/linkstash_backend/internal/core/domain"
	portsrepo "github.com/linkstash/linkstash_backend/internal/core/ports/repositories"
)

type RefreshTokenRepository struct {
	BaseRepository
}

func NewRefreshTokenRepository(db *pgxpool.Pool) *RefreshTokenRepository {
	return &RefreshTokenRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.RefreshTokenRepository = (*RefreshTokenRepository)(nil)

func (r *RefreshTokenRepository) Insert(ctx context.Context, token domain.RefreshToken) error {
	query := `
        INSERT INTO refresh_tokens (id, user_id, token_hash, issued_at, expires_at)
        VALUES ($1, $2, $3, $4, $5);
    `
	_, err := r.Pool.Exec(ctx, query,
		token.TokenID,
		token.UserID,
		token.TokenHash,
		token.IssuedAt,
		token.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert refresh token: %w", err)
	}
	return nil
}

// Consume looks up the token by hash and marks it spent, all while holding a
// row lock. The lock means two concurrent rotations of the same token
// serialize: the second one sees revoked_at set and fails.
func (r *RefreshTokenRepository) Consume(ctx context.Context, tokenHash string, now time.Time) (*domain.RefreshToken, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var token domain.RefreshToken
	err = tx.QueryRow(ctx, `
        SELECT id, user_id, token_hash, issued_at, expires_at, last_used_at, revoked_at
        FROM refresh_tokens
        WHERE token_hash = $1
        FOR UPDATE;
    `, tokenHash).Scan(
		&token.TokenID,
		&token.UserID,
		&token.TokenHash,
		&token.IssuedAt,
		&token.ExpiresAt,
		&token.LastUsedAt,
		&token.RevokedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up refresh token: %w", err)
	}

	if token.IsRevoked() {
		return nil, apperrors.ErrRefreshTokenRevoked
	}
	if token.IsExpired(now) {
		return nil, apperrors.ErrRefreshTokenExpired
	}

	_, err = tx.Exec(ctx, `
        UPDATE refresh_tokens
        SET last_used_at = $2, revoked_at = $2
        WHERE id = $1;
    `, token.TokenID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to mark refresh token spent: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit refresh token consumption: %w", err)
	}

	token.LastUsedAt = &now
	token.RevokedAt = &now
	return &token, nil
}

func (r *RefreshTokenRepository) RevokeAllForUser(ctx context.Context, userID string, now time.Time) (int64, error) {
	cmdTag, err := r.Pool.Exec(ctx, `
        UPDATE refresh_tokens
        SET revoked_at = $2
        WHERE user_id = $1 AND revoked_at IS NULL;
    `, userID, now)
	if err != nil {
		return 0, fmt.Errorf("failed to revoke refresh tokens: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}
