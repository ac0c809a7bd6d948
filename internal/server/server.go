// Package server contains the HTTP handlers for the forum's endpoints.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "campusforum/docs" // swagger docs
	"campusforum/internal/auth"
	"campusforum/internal/cache"
	"campusforum/internal/config"
	"campusforum/internal/database"
	"campusforum/internal/featureflags"
	"campusforum/internal/middleware"
	"campusforum/internal/models"
	"campusforum/internal/observability"
	"campusforum/internal/ranking"
	"campusforum/internal/repository"
	"campusforum/internal/service"

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
)

// Server holds all dependencies and provides handlers
type Server struct {
	config          *config.Config
	db              *gorm.DB
	redis           *redis.Client
	app             *fiber.App
	promMiddleware  *fiberprometheus.FiberPrometheus
	tracingShutdown func(context.Context) error
	tokens          *auth.TokenManager
	featureFlags    *featureflags.Manager
	userRepo        repository.UserRepository
	postRepo        repository.PostRepository
	commentRepo     repository.CommentRepository
	rankingFetcher  *ranking.Fetcher
	authService     *service.AuthService
	postService     *service.PostService
	commentService  *service.CommentService
	rankingService  *service.RankingService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	shutdownTracing, err := observability.InitTracing(observability.TracingConfig{
		Enabled:      cfg.TracingEnabled,
		Exporter:     cfg.TracingExporter,
		OTLPEndpoint: cfg.OTLPEndpoint,
		SamplerRatio: cfg.TracingSamplerRatio,
		Environment:  cfg.Env,
	})
	if err != nil {
		return nil, fmt.Errorf("tracing setup failed: %w", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	redisClient := cache.InitRedis(cfg.RedisURL)

	server, err := NewServerWithDeps(cfg, db, redisClient)
	if err != nil {
		return nil, err
	}
	server.tracingShutdown = shutdownTracing
	return server, nil
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis itself.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if db == nil {
		return nil, errors.New("database is required")
	}
	if cache.GetClient() != redisClient {
		cache.SetClient(redisClient)
	}

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics(observability.ServiceName),
		tokens:         auth.NewTokenManager(cfg.JWTSecret, cfg.SessionTTL()),
		featureFlags:   featureflags.NewManager(cfg.FeatureFlags),
		userRepo:       repository.NewUserRepository(db),
		postRepo:       repository.NewPostRepository(db),
		commentRepo:    repository.NewCommentRepository(db),
		rankingFetcher: ranking.NewFetcher(cfg.RankingBaseURL, cfg.RankingTimeout()),
	}

	server.authService = service.NewAuthService(server.userRepo)
	server.postService = service.NewPostService(server.postRepo)
	server.commentService = service.NewCommentService(server.commentRepo, server.postRepo)
	server.rankingService = service.NewRankingService(server.rankingFetcher, cfg.RankingCacheTTL())

	return server, nil
}

// NewApp builds the fiber application with the middleware chain and routes installed.
func (s *Server) NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "Campus Forum API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				return c.Status(fe.Code).JSON(models.ErrorResponse{Error: fe.Message})
			}
			middleware.Logger.ErrorContext(c.UserContext(), "unhandled error",
				slog.String("path", c.Path()),
				slog.String("error", err.Error()),
			)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err), !s.config.IsProduction())
		},
	})

	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.TracingMiddleware())

	// Propagates request, user and trace ids into the request context for logging.
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())

	// CORS runs before the limiter so rejected requests still carry CORS headers.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: origins != "*",
		MaxAge:           86400,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(models.ErrorResponse{
				Error: "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	app.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Campus Forum Metrics Dashboard",
	}))

	app.Get("/swagger/*", swagger.HandlerDefault)

	// Landing, signup and login
	app.Get("/", s.Index)
	app.Post("/", s.Index)
	app.Get("/query_db", s.SignupPage)
	app.Post("/query_db", s.SignupPage)
	app.Get("/signup", s.Index)
	app.Post("/signup", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "signup"), s.Signup)
	app.Post("/login", middleware.RateLimitWithPolicy(
		s.redis, 10, 5*time.Minute, s.loginRatePolicy(), "login"), s.Login)
	app.Post("/logout", middleware.SessionOptional(s.tokens, s.redis), s.Logout)

	dashboard := app.Group("/dashboard", middleware.SessionRequired(s.tokens, s.redis))
	dashboard.Get("/", s.Dashboard)
	dashboard.Get("/mes-posts-et-commentaires", s.ViewerMenu)
	dashboard.Get("/mes-posts", s.GetMyPosts)
	dashboard.Get("/mes-commentaires", s.GetMyComments)
	dashboard.Get("/feature-flags", s.GetFeatureFlags)

	discussion := dashboard.Group("/discussion")
	discussion.Get("/", s.GetDiscussion)
	// Static segments before the generic /:postId routes
	discussion.Get("/recherche", s.SearchPosts)
	discussion.Post("/recherche", middleware.RateLimit(
		s.redis, 10, time.Minute, "search"), s.SearchPosts)
	discussion.Get("/pending", s.NewPostForm)
	discussion.Get("/new_post", s.NewPostForm)
	discussion.Post("/new_post", middleware.RateLimit(
		s.redis, 5, time.Minute, "create_post"), s.CreatePost)
	discussion.Post("/:postId/:commentId/reply", middleware.RateLimit(
		s.redis, 10, time.Minute, "create_comment"), s.CreateReply)
	discussion.Get("/:postId", s.GetPostDetail)
	discussion.Post("/:postId", middleware.RateLimit(
		s.redis, 10, time.Minute, "create_comment"), s.CreateComment)

	course := dashboard.Group("/course", s.FeatureRequired(featureflags.Ranking))
	course.Get("/", s.CourseCatalogue)
	course.Post("/classement", s.Classement)
}

// App returns the server's fiber application, building it on first use.
func (s *Server) App() *fiber.App {
	if s.app == nil {
		s.app = s.NewApp()
	}
	return s.app
}

// Start listens on the configured port. It blocks until the listener is closed.
func (s *Server) Start() error {
	app := s.App()

	middleware.Logger.Info("Server starting", slog.String("port", s.config.Port))
	return app.Listen(":" + s.config.Port)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		redisStatus = "unavailable"
	}

	// Redis only backs caching, rate limits and revocation; the forum works without it.
	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	} else if redisStatus != "healthy" {
		overallStatus = "degraded"
	}

	return c.Status(status).JSON(fiber.Map{
		"service": observability.ServiceName,
		"status":  overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// loginRatePolicy keeps credential guessing blocked in production when the
// rate limit store is down.
func (s *Server) loginRatePolicy() middleware.FailPolicy {
	if s.config.IsProduction() {
		return middleware.FailClosed
	}
	return middleware.FailOpen
}

// FeatureRequired hides a route group behind a feature flag.
func (s *Server) FeatureRequired(flag string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _ := c.Locals(middleware.LocalUserID).(uint)
		if !s.featureFlags.Enabled(flag, userID) {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundError("Feature", flag))
		}
		return c.Next()
	}
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Error("error shutting down HTTP server", slog.String("error", err.Error()))
		}
	}

	if s.tracingShutdown != nil {
		if err := s.tracingShutdown(ctx); err != nil {
			middleware.Logger.Error("error shutting down tracer provider", slog.String("error", err.Error()))
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			middleware.Logger.Error("error closing sql DB", slog.String("error", cerr.Error()))
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			middleware.Logger.Error("error closing redis", slog.String("error", rerr.Error()))
		}
	}

	middleware.Logger.Info("Server shutdown complete")
	return nil
}
