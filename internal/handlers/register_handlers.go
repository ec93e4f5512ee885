package handlers

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	portssvc "github.com/linkstash/linkstash_backend/internal/core/ports/services"
	"github.com/linkstash/linkstash_backend/internal/dto"
	"github.com/linkstash/linkstash_backend/internal/middleware"
	"github.com/linkstash/linkstash_backend/internal/platform/config"
)

// RegisterRoutes wires every route group onto the engine.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	dto.RegisterCustomValidations()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendBaseURL},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.GET("/healthz", GetHealthz)

	registerGoogleOAuthRoutes(r, services)
	registerAuthAPIRoutes(r, services)
	registerBookmarkRoutes(r, services)
}

// registerGoogleOAuthRoutes sets up the browser-facing OAuth flow. The whole
// group sits behind an IP rate limit.
func registerGoogleOAuthRoutes(r *gin.Engine, services *portssvc.ServiceContainer) {
	h := NewGoogleOAuthHandler(services.GoogleOAuth, services.Auth)

	rate, _ := limiter.NewRateFromFormatted("10-M")
	ipLimiter := limiter.New(memory.NewStore(), rate)

	oauth := r.Group("/auth/google", middleware.RateLimit(ipLimiter))
	{
		oauth.GET("/login", h.LoginGoogle)
		oauth.GET("/callback", h.CallbackGoogle)
	}
}

// registerAuthAPIRoutes sets up the bearer-token API surface.
func registerAuthAPIRoutes(r *gin.Engine, services *portssvc.ServiceContainer) {
	h := NewAuthHandler(services.Auth, services.Identity)

	authRequired := middleware.AuthMiddleware(services.AccessToken)

	v1 := r.Group("/api/v1")
	{
		// Refresh authenticates via the refresh token itself; no bearer required.
		v1.POST("/auth/refresh", h.Refresh)

		v1.POST("/auth/token", authRequired, h.ExchangeToken)
		v1.POST("/auth/revoke", authRequired, h.Revoke)
		v1.GET("/me", authRequired, h.Me)
	}
}

func registerBookmarkRoutes(r *gin.Engine, services *portssvc.ServiceContainer) {
	h := NewBookmarkHandler(services.Bookmark)

	bookmarks := r.Group("/api/v1/bookmarks", middleware.AuthMiddleware(services.AccessToken))
	{
		bookmarks.POST("", h.CreateBookmark)
		bookmarks.GET("", h.ListBookmarks)
	}
}
