package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/linkstash/linkstash_backend/internal/apperrors"
	"github.com/linkstash/linkstash_backend/internal/core/domain"
	portsrepo "github.com/linkstash/linkstash_backend/internal/core/ports/repositories"
	portssvc "github.com/linkstash/linkstash_backend/internal/core/ports/services"
)

const (
	defaultBookmarkLimit = 50
	maxBookmarkLimit     = 200
)

type bookmarkService struct {
	bookmarkRepo portsrepo.BookmarkRepository
}

// NewBookmarkService creates a new instance of bookmarkService.
func NewBookmarkService(bookmarkRepo portsrepo.BookmarkRepository) portssvc.BookmarkSvcFacade {
	return &bookmarkService{bookmarkRepo: bookmarkRepo}
}

func (s *bookmarkService) CreateBookmark(ctx context.Context, userID, url string, title, html *string) (*domain.Bookmark, error) {
	if url == "" {
		return nil, fmt.Errorf("url is required: %w", apperrors.ErrValidation)
	}

	bookmark := domain.Bookmark{
		BookmarkID: uuid.NewString(),
		UserID:     userID,
		URL:        url,
		Title:      title,
		HTML:       html,
		CreatedAt:  time.Now(),
	}

	if err := s.bookmarkRepo.Insert(ctx, bookmark); err != nil {
		return nil, fmt.Errorf("failed to create bookmark: %w", err)
	}
	return &bookmark, nil
}

func (s *bookmarkService) ListBookmarks(ctx context.Context, userID string, limit int) ([]domain.Bookmark, error) {
	if limit <= 0 {
		limit = defaultBookmarkLimit
	}
	if limit > maxBookmarkLimit {
		limit = maxBookmarkLimit
	}

	bookmarks, err := s.bookmarkRepo.FindByUserID(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookmarks: %w", err)
	}
	return bookmarks, nil
}
