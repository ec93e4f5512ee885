package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/linkstash/linkstash_backend/internal/apperrors"
	"github.com/linkstash/linkstash_backend/internal/core/domain"
	portsrepo "github.com/linkstash/linkstash_backend/internal/core/ports/repositories"
)

type IdentityRepository struct {
	BaseRepository
}

func NewIdentityRepository(db *pgxpool.Pool) *IdentityRepository {
	return &IdentityRepository{BaseRepository: BaseRepository{Pool: db}}
}

// Ensure IdentityRepository implements the port.
var _ portsrepo.IdentityRepository = (*IdentityRepository)(nil)

// ResolveOrCreate returns the user id owning (provider, provider_subject),
// creating the user and identity rows when the pair is unseen. Lookup and
// creation happen in one transaction; the unique constraint on the pair
// makes the loser of a concurrent first-login fail with ErrDuplicate, which
// the service layer treats as "retry the lookup".
//
// Profile fields are first-write-wins: a repeat login never updates them.
func (r *IdentityRepository) ResolveOrCreate(ctx context.Context, ident domain.Identity) (string, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer tx.Rollback(ctx)

	var userID string
	err = tx.QueryRow(ctx, `
        SELECT user_id
        FROM user_identities
        WHERE provider = $1 AND provider_subject = $2;
    `, ident.Provider, ident.ProviderSubject).Scan(&userID)
	if err == nil {
		if err := tx.Commit(ctx); err != nil {
			return "", fmt.Errorf("failed to commit identity lookup: %w", err)
		}
		return userID, nil
	}
	if err != pgx.ErrNoRows {
		return "", fmt.Errorf("failed to look up identity: %w", err)
	}

	_, err = tx.Exec(ctx, `
        INSERT INTO users (id, created_at)
        VALUES ($1, $2);
    `, ident.UserID, ident.CreatedAt)
	if err != nil {
		return "", fmt.Errorf("failed to insert user: %w", err)
	}

	_, err = tx.Exec(ctx, `
        INSERT INTO user_identities (id, user_id, provider, provider_subject, email, name, avatar_url, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
    `,
		ident.IdentityID,
		ident.UserID,
		ident.Provider,
		ident.ProviderSubject,
		ident.Email,
		ident.Name,
		ident.AvatarURL,
		ident.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return "", apperrors.ErrDuplicate
		}
		return "", fmt.Errorf("failed to insert identity: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		if isUniqueViolation(err) {
			return "", apperrors.ErrDuplicate
		}
		return "", fmt.Errorf("failed to commit identity creation: %w", err)
	}
	return ident.UserID, nil
}

func (r *IdentityRepository) ListIdentities(ctx context.Context, userID string) ([]domain.Identity, error) {
	query := `
        SELECT id, user_id, provider, provider_subject, email, name, avatar_url, created_at
        FROM user_identities
        WHERE user_id = $1
        ORDER BY created_at ASC;
    `
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query identities: %w", err)
	}
	defer rows.Close()

	identities := []domain.Identity{}
	for rows.Next() {
		var ident domain.Identity
		err := rows.Scan(
			&ident.IdentityID,
			&ident.UserID,
			&ident.Provider,
			&ident.ProviderSubject,
			&ident.Email,
			&ident.Name,
			&ident.AvatarURL,
			&ident.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan identity row: %w", err)
		}
		identities = append(identities, ident)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating identity rows: %w", rows.Err())
	}

	return identities, nil
}
