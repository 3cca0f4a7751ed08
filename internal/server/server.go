// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"context"
	"errors"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	_ "rewear/docs" // swagger docs
	"rewear/internal/cache"
	"rewear/internal/config"
	"rewear/internal/database"
	"rewear/internal/featureflags"
	"rewear/internal/middleware"
	"rewear/internal/models"
	"rewear/internal/notifications"
	"rewear/internal/repository"
	"rewear/internal/service"
	"rewear/internal/swipe"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	cache          *cache.Cache
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	shutdownCtx    context.Context
	shutdownFn     context.CancelFunc
	notifier       *notifications.Notifier
	adminHub       *notifications.AdminHub
	featureFlags   *featureflags.Manager

	userRepo repository.UserRepository
	itemRepo repository.ItemRepository
	swapRepo repository.SwapRepository
	postRepo repository.PostRepository

	catalogService     *service.CatalogService
	listingService     *service.ListingService
	swipeService       *service.SwipeService
	swapService        *service.SwapService
	moderationService  *service.ModerationService
	feedService        *service.FeedService
	dashboardService   *service.DashboardService
	leaderboardService *service.LeaderboardService
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// The bootstrap layer establishes DB/Redis and performs optional seeding;
// redisClient may be nil, in which case caching is disabled and moderation
// events are delivered to the admin stream in-process.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	if db == nil {
		return nil, errors.New("database is required")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	itemRepo := repository.NewItemRepository(db)
	swapRepo := repository.NewSwapRepository(db)
	postRepo := repository.NewPostRepository(db)

	// Initialize Prometheus metrics
	prom := middleware.InitMetrics("rewear-api")

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		cache:          cache.New(redisClient),
		promMiddleware: prom,
		notifier:       notifications.NewNotifier(redisClient),
		adminHub:       notifications.NewAdminHub(),
		featureFlags:   featureflags.NewManager(cfg.FeatureFlags),
		userRepo:       userRepo,
		itemRepo:       itemRepo,
		swapRepo:       swapRepo,
		postRepo:       postRepo,
	}

	server.catalogService = service.NewCatalogService(itemRepo, server.cache)
	server.listingService = service.NewListingService(userRepo, itemRepo, server.cache, server.notifier)
	server.leaderboardService = service.NewLeaderboardService(userRepo, itemRepo, swapRepo, server.cache, server.featureFlags)
	server.swapService = service.NewSwapService(userRepo, itemRepo, swapRepo, server.cache, server.notifier, server.onSwapAccepted)
	server.swipeService = service.NewSwipeService(
		swipe.NewSessions(cfg.SwipeSessionTTL()), server.catalogService, userRepo, server.cache, server.featureFlags, server.notifier)
	server.moderationService = service.NewModerationService(userRepo, itemRepo, postRepo, swapRepo, server.cache, server.notifier)
	server.feedService = service.NewFeedService(userRepo, itemRepo, postRepo, server.cache)
	server.dashboardService = service.NewDashboardService(userRepo, itemRepo, swapRepo)

	return server, nil
}

// onSwapAccepted drops every cache entry an accepted swap makes stale.
func (s *Server) onSwapAccepted(ctx context.Context, req *models.SwapRequest) {
	s.leaderboardService.Invalidate(ctx)
	s.cache.InvalidateItem(ctx, req.ItemID)
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// OpenTelemetry span per request; a no-op tracer when tracing is off
	app.Use(middleware.TracingMiddleware())

	// Viewer identity must be in locals before the context middleware copies it
	app.Use(middleware.Viewer())

	// Context Middleware to propagate Request ID and User ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS middleware should run before middlewares that can short-circuit (e.g. limiter)
	// so browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, " + middleware.ViewerHeader + ", Upgrade, Connection, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they should be handled by CORS.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "ReWear Backend Metrics Dashboard",
	}))

	// Swagger documentation
	api.Get("/swagger/*", swagger.HandlerDefault)

	// Public catalog
	items := api.Group("/items")
	items.Get("/", s.GetItems)
	items.Get("/:id", s.GetItem)
	items.Post("/", middleware.ViewerRequired, middleware.RateLimit(
		s.redis, 10, time.Minute, "list_item"), s.CreateItem)

	// Public runway and impact views
	api.Get("/runway", s.GetRunway)
	api.Get("/leaderboard", s.GetLeaderboard)
	api.Get("/impact", s.GetImpact)

	// Viewer routes
	viewer := api.Group("", middleware.ViewerRequired)

	sessions := viewer.Group("/swipe/sessions")
	sessions.Post("/", s.StartSwipeSession)
	sessions.Post("/:id/decide", middleware.RateLimit(
		s.redis, 120, time.Minute, "swipe"), s.DecideSwipe)
	sessions.Post("/:id/reset", s.ResetSwipeSession)
	sessions.Get("/:id", s.GetSwipeSession)

	swaps := viewer.Group("/swaps")
	swaps.Post("/", middleware.RateLimit(
		s.redis, 20, time.Minute, "swap_request"), s.CreateSwapRequest)
	swaps.Post("/:id/resolve", s.ResolveSwapRequest)

	viewer.Get("/dashboard", s.GetDashboard)

	runway := viewer.Group("/runway")
	runway.Post("/", middleware.RateLimit(
		s.redis, 5, time.Minute, "create_post"), s.CreateRunwayPost)
	runway.Post("/:id/flag", middleware.RateLimit(
		s.redis, 10, time.Minute, "flag_post"), s.FlagRunwayPost)

	// Websocket endpoints - admins only
	ws := api.Group("/ws", middleware.ViewerRequired, s.AdminRequired())
	ws.Get("/admin", s.WebSocketAdminHandler())

	// Admin routes
	admin := viewer.Group("/admin", s.AdminRequired())
	admin.Get("/feature-flags", s.GetFeatureFlags)
	admin.Get("/stats", s.GetAdminStats)
	adminItems := admin.Group("/items")
	adminItems.Get("/", s.GetPendingItems)
	adminItems.Post("/:id/approve", s.ApproveItem)
	adminItems.Post("/:id/reject", s.RejectItem)
	adminFlags := admin.Group("/flags")
	adminFlags.Get("/", s.GetFlaggedPosts)
	adminFlags.Post("/:id/resolve", s.ResolveFlag)
}

// NewApp builds a Fiber app with the middleware chain and every route.
func (s *Server) NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:   "ReWear API",
		BodyLimit: 4 * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				return c.Status(fe.Code).JSON(models.ErrorResponse{Error: fe.Message})
			}
			middleware.Logger.Error("unhandled request error", "path", c.Path(), "error", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// LivenessCheck handles liveness probe requests
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/live [get]
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests. Redis is optional: a
// missing client reports "disabled", a failing one makes the service unready.
// @Summary Readiness probe
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/ready [get]
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	if err := database.Ping(ctx, s.db); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "disabled"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" || redisStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"message": "ReWear",
		"version": "1.0.0",
		"status":  overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// AdminRequired returns middleware that rejects non-admin viewers with 403.
// Must be placed after ViewerRequired so that userID is available in locals.
func (s *Server) AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := middleware.ViewerID(c)

		user, err := s.userRepo.GetByID(c.UserContext(), userID)
		if err != nil {
			if repository.IsNotFound(err) {
				return models.RespondWithError(c, fiber.StatusForbidden,
					models.NewForbiddenError("Admin access required"))
			}
			return models.RespondWithError(c, fiber.StatusInternalServerError, err)
		}
		if !user.IsAdmin {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewForbiddenError("Admin access required"))
		}

		return c.Next()
	}
}

// Start wires the admin stream and serves HTTP until Shutdown.
func (s *Server) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	s.shutdownCtx = ctx
	s.shutdownFn = cancel

	s.app = s.NewApp()

	if err := s.adminHub.StartWiring(s.shutdownCtx, s.notifier); err != nil {
		middleware.Logger.Error("failed to start admin stream wiring", "error", err)
	}

	middleware.Logger.Info("Server starting", "port", s.config.Port)
	return s.app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	// Cancel the server-scoped context to stop the subscriber goroutine
	if s.shutdownFn != nil {
		s.shutdownFn()
	}

	// Close WebSocket connections before the HTTP server so their handlers return
	if err := s.adminHub.Shutdown(ctx); err != nil {
		middleware.Logger.Error("error shutting down admin stream", "error", err)
	}

	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Error("error shutting down HTTP server", "error", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			middleware.Logger.Error("error closing sql DB", "error", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			middleware.Logger.Error("error closing redis", "error", rerr)
		}
	}

	middleware.Logger.Info("Server shutdown complete")
	return nil
}
