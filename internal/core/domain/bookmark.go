package domain

import "time"

// Bookmark is a saved page belonging to one user.
type Bookmark struct {
	BookmarkID string    `json:"bookmarkID"`
	UserID     string    `json:"userID"`
	URL        string    `json:"url"`
	Title      *string   `json:"title,omitempty"`
	HTML       *string   `json:"-"`
	CreatedAt  time.Time `json:"createdAt"`
}
