package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linkstash/linkstash_backend/internal/apperrors"
	portssvc "github.com/linkstash/linkstash_backend/internal/core/ports/services"
	"github.com/linkstash/linkstash_backend/internal/dto"
	"github.com/linkstash/linkstash_backend/internal/middleware"
)

// AuthHandler handles token exchange, refresh, revoke and principal lookup.
type AuthHandler struct {
	authService     portssvc.AuthSvcFacade
	identityService portssvc.IdentitySvcFacade
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService portssvc.AuthSvcFacade, identityService portssvc.IdentitySvcFacade) *AuthHandler {
	return &AuthHandler{
		authService:     authService,
		identityService: identityService,
	}
}

// ErrorResponse is a generic error response structure for handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ExchangeToken hands a fresh access/refresh pair to an authenticated principal.
func (h *AuthHandler) ExchangeToken(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Not authenticated"})
		return
	}

	pair, err := h.authService.ExchangeToken(c.Request.Context(), userID)
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to exchange token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to issue tokens"})
		return
	}

	c.JSON(http.StatusOK, dto.ToTokenPairResponse(pair))
}

// Refresh rotates a refresh token. All rotation failures surface as a
// uniform 401; only the rate limit is distinguishable (429) so clients can
// back off.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	_, pair, err := h.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrRateLimited):
			c.JSON(http.StatusTooManyRequests, ErrorResponse{Error: "Rate limit exceeded"})
		case errors.Is(err, apperrors.ErrUnauthorized):
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid refresh token"})
		default:
			logger := middleware.GetLoggerFromCtx(c.Request.Context())
			logger.Error("Refresh failed", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to refresh tokens"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTokenPairResponse(pair))
}

// Revoke invalidates every refresh token belonging to the authenticated user.
func (h *AuthHandler) Revoke(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Not authenticated"})
		return
	}

	count, err := h.authService.Revoke(c.Request.Context(), userID)
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to revoke refresh tokens", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to revoke tokens"})
		return
	}

	c.JSON(http.StatusOK, dto.RevokeResponse{Revoked: count})
}

// Me returns the authenticated user id and linked identities, oldest first.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Not authenticated"})
		return
	}

	identities, err := h.identityService.ListIdentities(c.Request.Context(), userID)
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to list identities", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list identities"})
		return
	}

	c.JSON(http.StatusOK, dto.MeResponse{
		UserID:     userID,
		Identities: dto.ToIdentityResponses(identities),
	})
}
