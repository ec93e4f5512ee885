package dto

import (
	"time"

	"github.com/linkstash/linkstash_backend/internal/core/domain"
)

// CreateBookmarkRequest is the body of POST /bookmarks.
type CreateBookmarkRequest struct {
	URL   string  `json:"url" binding:"required,httpurl"`
	Title *string `json:"title"`
	HTML  *string `json:"html"`
}

// BookmarkResponse is one saved bookmark. The captured HTML is never echoed back.
type BookmarkResponse struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Title     *string   `json:"title,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ListBookmarksResponse wraps the bookmark listing.
type ListBookmarksResponse struct {
	Bookmarks []BookmarkResponse `json:"bookmarks"`
}

// ToBookmarkResponse maps a domain bookmark to its response shape.
func ToBookmarkResponse(b domain.Bookmark) BookmarkResponse {
	return BookmarkResponse{
		ID:        b.BookmarkID,
		URL:       b.URL,
		Title:     b.Title,
		CreatedAt: b.CreatedAt,
	}
}

// ToBookmarkResponses maps a slice of domain bookmarks.
func ToBookmarkResponses(bookmarks []domain.Bookmark) []BookmarkResponse {
	out := make([]BookmarkResponse, 0, len(bookmarks))
	for _, b := range bookmarks {
		out = append(out, ToBookmarkResponse(b))
	}
	return out
}
