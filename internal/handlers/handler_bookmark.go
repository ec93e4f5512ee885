package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	portssvc "github.com/linkstash/linkstash_backend/internal/core/ports/services"
	"github.com/linkstash/linkstash_backend/internal/dto"
	"github.com/linkstash/linkstash_backend/internal/middleware"
)

// BookmarkHandler handles bookmark CRUD for the authenticated user.
type BookmarkHandler struct {
	bookmarkService portssvc.BookmarkSvcFacade
}

// NewBookmarkHandler creates a new BookmarkHandler.
func NewBookmarkHandler(bookmarkService portssvc.BookmarkSvcFacade) *BookmarkHandler {
	return &BookmarkHandler{bookmarkService: bookmarkService}
}

func (h *BookmarkHandler) CreateBookmark(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Not authenticated"})
		return
	}

	var req dto.CreateBookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	bookmark, err := h.bookmarkService.CreateBookmark(c.Request.Context(), userID, req.URL, req.Title, req.HTML)
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to create bookmark", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create bookmark"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": bookmark.BookmarkID})
}

func (h *BookmarkHandler) ListBookmarks(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Not authenticated"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	bookmarks, err := h.bookmarkService.ListBookmarks(c.Request.Context(), userID, limit)
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to list bookmarks", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list bookmarks"})
		return
	}

	c.JSON(http.StatusOK, dto.ListBookmarksResponse{Bookmarks: dto.ToBookmarkResponses(bookmarks)})
}
