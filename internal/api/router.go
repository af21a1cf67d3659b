package api

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/linksaver/linksaver/internal/api/handler"
	"github.com/linksaver/linksaver/internal/api/middleware"
	"github.com/linksaver/linksaver/internal/core/ports"
	"github.com/linksaver/linksaver/internal/core/service"
	"github.com/linksaver/linksaver/internal/infrastructure/config"
	"github.com/linksaver/linksaver/internal/infrastructure/db/postgres"
	redisinfra "github.com/linksaver/linksaver/internal/infrastructure/db/redis"
	"github.com/linksaver/linksaver/internal/infrastructure/http/handlers"
	"github.com/linksaver/linksaver/internal/infrastructure/llm"
	"github.com/linksaver/linksaver/internal/infrastructure/ratelimit"
	"github.com/linksaver/linksaver/internal/infrastructure/reader"
	"github.com/linksaver/linksaver/internal/infrastructure/scrape"
)

// NewRouter builds and returns the Echo instance with all routes
// registered. rdb may be nil; the summary rate limiter then falls back
// to the in-process implementation.
func NewRouter(pool *pgxpool.Pool, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("linksaver"))

	// --- Dependencies ---
	authRepo := postgres.NewAuthRepository(pool)
	authService := service.NewAuthService(authRepo, cfg.JWTSecret, 7*24*time.Hour)
	authHandler := handler.NewAuthHandler(authService, cfg.Env == "production")
	authMiddleware := middleware.Auth(cfg.JWTSecret)

	var limiter ports.RateLimiter
	if rdb != nil {
		limiter = redisinfra.NewRateLimiter(rdb, "summary")
	} else {
		limiter = ratelimit.NewLocalLimiter()
	}

	summaryService := service.NewSummaryService(
		limiter,
		reader.NewClient(cfg.Reader.BaseURL, cfg.Reader.APIKey),
		llm.NewSummarizer(cfg.LLM.APIKey, cfg.LLM.BaseURL, cfg.LLM.Model),
		log,
	)

	bookmarkRepo := postgres.NewBookmarkRepository(pool)
	bookmarkService := service.NewBookmarkService(bookmarkRepo, scrape.NewMetadataFetcher(), summaryService, log)
	bookmarkHandler := handler.NewBookmarkHandler(bookmarkService)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout)

	// --- Bookmark routes ---
	b := e.Group("/bookmarks", authMiddleware)
	b.GET("", bookmarkHandler.List)
	b.POST("", bookmarkHandler.Create)
	b.PUT("/reorder", bookmarkHandler.Reorder)
	b.PUT("/:id", bookmarkHandler.Update)
	b.DELETE("/:id", bookmarkHandler.Delete)
	b.POST("/:id/summary", bookmarkHandler.RefreshSummary)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(pool, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
