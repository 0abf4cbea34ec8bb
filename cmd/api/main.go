package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dafibh/fortuna/portfolio-backend/internal/config"
	"github.com/dafibh/fortuna/portfolio-backend/internal/domain"
	"github.com/dafibh/fortuna/portfolio-backend/internal/handler"
	"github.com/dafibh/fortuna/portfolio-backend/internal/metrics"
	"github.com/dafibh/fortuna/portfolio-backend/internal/middleware"
	"github.com/dafibh/fortuna/portfolio-backend/internal/repository/cache"
	"github.com/dafibh/fortuna/portfolio-backend/internal/repository/postgres"
	"github.com/dafibh/fortuna/portfolio-backend/internal/repository/postgres/migrations"
	"github.com/dafibh/fortuna/portfolio-backend/internal/repository/storage"
	"github.com/dafibh/fortuna/portfolio-backend/internal/service"
	"github.com/dafibh/fortuna/portfolio-backend/internal/websocket"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	echoSwagger "github.com/swaggo/echo-swagger"
)

func main() {
	// Initialize zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	ctx := context.Background()

	// Connect to database
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	// Verify database connection
	if err := pool.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}
	log.Info().Msg("Connected to database")

	if err := postgres.ApplyMigrations(ctx, pool, migrations.FS); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply migrations")
	}

	// Initialize repositories
	workspaceRepo := postgres.NewWorkspaceRepository(pool)
	accountRepo := postgres.NewAccountRepository(pool)
	bannerRepo := postgres.NewBannerRepository(pool)
	countervalueRepo := postgres.NewCountervalueRepository(pool)
	var settingsRepo domain.SettingsRepository = postgres.NewSettingsRepository(pool)

	// Settings cache (optional)
	if cfg.Redis.Enabled() {
		redisCache := cache.NewCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		defer redisCache.Close()
		if err := redisCache.Ping(ctx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis unreachable, settings cache will fail open")
		}
		settingsRepo = cache.NewSettingsRepository(settingsRepo, redisCache, cfg.Redis.TTL, log.Logger)
		log.Info().Str("addr", cfg.Redis.Addr).Dur("ttl", cfg.Redis.TTL).Msg("Settings cache enabled")
	}

	// Icon storage (optional)
	var objectStore storage.ObjectStore
	if cfg.S3.Enabled() {
		s3Store, err := storage.NewS3ObjectStore(ctx, cfg.S3)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize S3 storage")
		}
		objectStore = s3Store
		log.Info().Str("bucket", cfg.S3.Bucket).Msg("Banner icon storage enabled")
	} else {
		log.Warn().Msg("S3 bucket not configured, banner icon uploads disabled")
	}

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.New(registry, log.Logger)

	// WebSocket hub
	hub := websocket.NewHub(log.Logger)
	metrics.RegisterClientGauge(registry, hub.TotalClientCount)

	// Initialize services
	workspaceService := service.NewWorkspaceService(workspaceRepo)
	workspaceService.SetUserRepository(postgres.NewUserRepository(pool))
	accountService := service.NewAccountService(accountRepo)
	iconService := service.NewIconService(objectStore, cfg.S3.PresignExpiry)
	settingsService := service.NewSettingsService(settingsRepo)
	settingsService.SetEventPublisher(hub)
	bannerService := service.NewBannerService(bannerRepo, settingsRepo, iconService)
	bannerService.SetEventPublisher(hub)
	dashboardService := service.NewDashboardService(accountRepo, workspaceRepo, countervalueRepo, settingsService, bannerService)
	dashboardService.SetPageTracker(appMetrics)
	dashboardService.SetRecentOperationsLimit(cfg.RecentOperationsLimit)

	// Background workers
	syncWatcher := service.NewSyncWatchWorker(workspaceRepo, hub, hub, log.Logger, service.DefaultSyncWatchWorkerConfig())
	syncWatcher.Start(ctx)

	// Initialize auth middleware
	authMiddleware, err := middleware.NewAuthMiddleware(cfg.Auth0Domain, cfg.Auth0Audience, workspaceService)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create auth middleware")
	}

	wsValidator, err := websocket.NewAuth0JWTValidator(cfg.Auth0Domain, cfg.Auth0Audience, workspaceService)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create websocket token validator")
	}

	rateLimiter := middleware.NewRateLimiterWithConfig(cfg.RateLimitPerMinute, middleware.DefaultBurstSize)
	rateLimiter.OnLimited = appMetrics.RateLimited
	defer rateLimiter.Stop()

	// Initialize handlers
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	settingsHandler := handler.NewSettingsHandler(settingsService)
	bannerHandler := handler.NewBannerHandler(bannerService, settingsService)
	accountHandler := handler.NewAccountHandler(accountService)
	wsHandler := handler.NewWebSocketHandler(hub, wsValidator, cfg.CORSOrigins)
	openAPIHandler := handler.NewOpenAPI3Handler("http://localhost:" + cfg.Port)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Request ID middleware
	e.Use(echomiddleware.RequestID())

	// CORS middleware
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Security headers middleware (helmet-like)
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		HSTSMaxAge:         31536000,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}))

	// Request logging middleware with zerolog
	e.Use(zerologMiddleware())

	// Request metrics
	e.Use(appMetrics.Middleware())

	// Recovery middleware
	e.Use(echomiddleware.Recover())

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		if err := pool.Ping(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Prometheus scrape endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	// API docs
	e.GET("/swagger/openapi3.json", openAPIHandler.Serve)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Register API routes
	adminGuard := middleware.NewAdminGuard(cfg.AdminSubjects)
	if len(cfg.AdminSubjects) == 0 {
		log.Warn().Msg("ADMIN_SUBJECTS is empty, banner icon uploads are disabled for all users")
	}
	handler.RegisterRoutes(e, authMiddleware, rateLimiter, adminGuard, dashboardHandler, settingsHandler, bannerHandler, accountHandler, wsHandler)

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	syncWatcher.Stop()
	hub.CloseAll()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// zerologMiddleware returns a middleware that logs requests using zerolog
func zerologMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			event := log.Info()
			if res.Status >= http.StatusInternalServerError {
				event = log.Error()
			}
			event.
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Dur("latency", time.Since(start)).
				Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
				Int32("workspace_id", middleware.GetWorkspaceID(c)).
				Msg("request")

			return nil
		}
	}
}
