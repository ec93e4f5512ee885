package repositories

import (
	"context"

	"github.com/linkstash/linkstash_backend/internal/core/domain"
)

// BookmarkRepository persists bookmarks.
type BookmarkRepository interface {
	Insert(ctx context.Context, bookmark domain.Bookmark) error
	FindByUserID(ctx context.Context, userID string, limit int) ([]domain.Bookmark, error)
}
