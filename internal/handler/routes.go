package handler

import (
	"github.com/dafibh/fortuna/portfolio-backend/internal/middleware"
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up all API routes. Mutations share the rate limiter;
// icon uploads are reserved for admin subjects.
func RegisterRoutes(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rateLimiter *middleware.RateLimiter, adminGuard *middleware.AdminGuard, dashboardHandler *DashboardHandler, settingsHandler *SettingsHandler, bannerHandler *BannerHandler, accountHandler *AccountHandler, wsHandler *WebSocketHandler) {
	// API version 1
	api := e.Group("/api/v1")

	// WebSocket authenticates with the token query parameter
	api.GET("/ws", wsHandler.HandleWS)

	limited := middleware.RateLimitMiddleware(rateLimiter)

	// Dashboard routes (protected)
	dashboard := api.Group("/dashboard")
	dashboard.Use(authMiddleware.Authenticate())
	dashboard.GET("", dashboardHandler.GetDashboard)
	dashboard.GET("/time-ranges", dashboardHandler.GetTimeRanges)

	// Settings routes (protected)
	settings := api.Group("/settings")
	settings.Use(authMiddleware.Authenticate())
	settings.GET("", settingsHandler.GetSettings)
	settings.PUT("", settingsHandler.UpdateSettings, limited)

	// Banner routes (protected)
	banners := api.Group("/banners")
	banners.Use(authMiddleware.Authenticate())
	banners.GET("", bannerHandler.GetBanners)
	banners.POST("/:id/dismiss", bannerHandler.DismissBanner, limited)
	banners.PUT("/:id/icon", bannerHandler.SetBannerIcon, adminGuard.RequireAdmin(), limited)

	// Account routes (protected)
	accounts := api.Group("/accounts")
	accounts.Use(authMiddleware.Authenticate())
	accounts.GET("", accountHandler.GetAccounts)
	accounts.GET("/:id", accountHandler.GetAccount)
}
