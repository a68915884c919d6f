package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shopstack/catalog-api/internal/api/handler"
	"github.com/shopstack/catalog-api/internal/api/middleware"
	"github.com/shopstack/catalog-api/internal/core/ports"
	"github.com/shopstack/catalog-api/internal/core/service"
	"github.com/shopstack/catalog-api/internal/infrastructure/config"
	mongodb "github.com/shopstack/catalog-api/internal/infrastructure/db/mongo"
	redisdb "github.com/shopstack/catalog-api/internal/infrastructure/db/redis"
	"github.com/shopstack/catalog-api/internal/ratelimit"
)

// NewRouter builds and returns the Echo instance with all routes
// registered. rdb may be nil: the service then runs with the in-memory
// rate limiter and without the list cache.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("catalog"))

	// --- Dependencies ---
	var limiter ports.RateLimiter
	var listCache ports.ProductListCache
	if rdb != nil {
		limiter = redisdb.NewRateLimiter(rdb, log)
		listCache = redisdb.NewProductListCache(rdb, cfg.CacheTTL, log)
	} else {
		limiter = ratelimit.NewMemoryLimiter(0)
	}

	tokens := service.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)

	authRepo := mongodb.NewAuthRepository(db)
	authService := service.NewAuthService(authRepo, tokens, log)
	authHandler := handler.NewAuthHandler(authService)

	productRepo := mongodb.NewProductRepository(db)
	productService := service.NewProductService(productRepo, listCache, log)
	productHandler := handler.NewProductHandler(productService, log)

	authGate := middleware.Auth(tokens)
	limit := func(class string, perMinute int64) echo.MiddlewareFunc {
		if !cfg.RateLimitEnabled {
			return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
		}
		return middleware.RateLimit(limiter, class, perMinute, log)
	}

	// --- Public routes ---
	e.POST("/signup", authHandler.Signup, limit(middleware.ClassSignup, middleware.SignupLimit))
	e.POST("/token", authHandler.Token, limit(middleware.ClassLogin, middleware.LoginLimit))

	// --- Protected catalog routes (rate limit runs before the auth gate) ---
	e.POST("/products", productHandler.Create, limit(middleware.ClassMutate, middleware.MutateLimit), authGate)
	e.GET("/products", productHandler.List, limit(middleware.ClassRead, middleware.ReadLimit), authGate)
	e.GET("/products/:id", productHandler.Get, limit(middleware.ClassRead, middleware.ReadLimit), authGate)
	e.PUT("/products/:id", productHandler.Update, limit(middleware.ClassMutate, middleware.MutateLimit), authGate)
	e.DELETE("/products/:id", productHandler.Delete, limit(middleware.ClassMutate, middleware.MutateLimit), authGate)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
