package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/linkstash/linkstash_backend/internal/core/domain"
	portsrepo "github.com/linkstash/linkstash_backend/internal/core/ports/repositories"
)

type BookmarkRepository struct {
	BaseRepository
}

func NewBookmarkRepository(db *pgxpool.Pool) *BookmarkRepository {
	return &BookmarkRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.BookmarkRepository = (*BookmarkRepository)(nil)

func (r *BookmarkRepository) Insert(ctx context.Context, bookmark domain.Bookmark) error {
	query := `
        INSERT INTO bookmarks (id, user_id, url, title, html, created_at)
        VALUES ($1, $2, $3, $4, $5, $6);
    `
	_, err := r.Pool.Exec(ctx, query,
		bookmark.BookmarkID,
		bookmark.UserID,
		bookmark.URL,
		bookmark.Title,
		bookmark.HTML,
		bookmark.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert bookmark: %w", err)
	}
	return nil
}

func (r *BookmarkRepository) FindByUserID(ctx context.Context, userID string, limit int) ([]domain.Bookmark, error) {
	query := `
        SELECT id, user_id, url, title, created_at
        FROM bookmarks
        WHERE user_id = $1
        ORDER BY created_at DESC
        LIMIT $2;
    `
	rows, err := r.Pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookmarks: %w", err)
	}
	defer rows.Close()

	bookmarks := []domain.Bookmark{}
	for rows.Next() {
		var b domain.Bookmark
		err := rows.Scan(&b.BookmarkID, &b.UserID, &b.URL, &b.Title, &b.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bookmark row: %w", err)
		}
		bookmarks = append(bookmarks, b)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating bookmark rows: %w", rows.Err())
	}

	return bookmarks, nil
}
