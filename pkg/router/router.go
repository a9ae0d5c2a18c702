package router

import (
	"context"
	"net/http"

	"github.com/Rama-lab79/Chatbot-AI/internal/api"
	"github.com/Rama-lab79/Chatbot-AI/pkg/cache"
	"github.com/Rama-lab79/Chatbot-AI/pkg/di"
	"github.com/Rama-lab79/Chatbot-AI/pkg/errors"
	"github.com/Rama-lab79/Chatbot-AI/pkg/health"
	"github.com/Rama-lab79/Chatbot-AI/pkg/logger"
	"github.com/Rama-lab79/Chatbot-AI/pkg/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

// Router is the main router for the application
type Router struct {
	Engine    *gin.Engine
	Container *di.Container
	Logger    *logger.Logger
	Health    *health.Checker
}

// New creates a new router with the given container
func New(container *di.Container) *Router {
	logger.SetGlobal(container.Logger)

	cfg := container.Config
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Logger first to capture all requests, then error formatting and
	// panic recovery with structured logging.
	engine.Use(logger.Middleware(container.Logger))
	engine.Use(errors.ErrorHandler())
	engine.Use(errors.RecoveryWithLogger())

	rateLimiter := middleware.NewRateLimiter(container.Logger, middleware.RateLimiterOptions{
		Limit:          rate.Limit(cfg.Security.RateLimit),
		Burst:          cfg.Security.RateLimitBurst,
		ExpiryDuration: middleware.DefaultRateLimiterOptions().ExpiryDuration,
		KeyFunc:        middleware.DefaultRateLimiterOptions().KeyFunc,
	})
	engine.Use(rateLimiter.Middleware())

	checker := health.NewChecker(container.Logger, cfg.Server.Timeout)
	checker.RegisterDatabaseCheck(func() error {
		sqlDB, err := container.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Ping()
	})
	registerCacheCheck(checker, container.SummaryCache)

	return &Router{
		Engine:    engine,
		Container: container,
		Logger:    container.Logger,
		Health:    checker,
	}
}

// SetupRoutes registers all application routes
func (r *Router) SetupRoutes() {
	r.Engine.Use(corsMiddleware())

	jwtAuth := middleware.JWTAuthMiddleware(r.Container.JWTService, r.Logger)

	authHandler := api.NewAuthHandler(r.Container.UserService, r.Logger)
	checkinHandler := api.NewCheckinHandler(r.Container.CheckinService, r.Logger)
	chatHandler := api.NewChatHandler(r.Container.ChatService, r.Logger)

	// Prometheus metrics, populated through the otel prometheus exporter.
	r.Engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Engine.Group("/api/v1")

	// Public routes (no auth required)
	v1.GET("/health", r.healthCheckHandler())
	authHandler.RegisterRoutes(v1, jwtAuth)

	// Protected routes (require a resolved user identity)
	protected := v1.Group("/")
	protected.Use(jwtAuth)
	{
		checkinHandler.RegisterRoutes(protected)
		chatHandler.RegisterRoutes(protected)
	}

	r.Health.Start()
}

// registerCacheCheck adds a redis component check when the summary cache is
// redis-backed. The in-memory cache has nothing to probe.
func registerCacheCheck(checker *health.Checker, store cache.Store) {
	redisStore, ok := store.(*cache.Redis)
	if !ok {
		return
	}
	checker.RegisterCheck("redis", func() (health.Status, string, error) {
		if err := redisStore.Ping(context.Background()); err != nil {
			return health.StatusDown, "Redis connection failed", err
		}
		return health.StatusUp, "Redis connection is healthy", nil
	})
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		}
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept, Accept-Encoding, Authorization, Origin, Cache-Control")
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
