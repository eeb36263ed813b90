package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/ratemystore/rating-system/docs"
	"github.com/ratemystore/rating-system/internal/api/handler"
	"github.com/ratemystore/rating-system/internal/api/middleware"
	"github.com/ratemystore/rating-system/internal/core/domain"
	"github.com/ratemystore/rating-system/internal/core/ports"
	"github.com/ratemystore/rating-system/internal/core/service"
	mongodb "github.com/ratemystore/rating-system/internal/infrastructure/db/mongo"
	redisdb "github.com/ratemystore/rating-system/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(
	db *mongo.Database,
	rdb *redis.Client,
	tokens ports.TokenService,
	dispatcher ports.ActivityDispatcher,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("ratemystore"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	ratingRepo := mongodb.NewRatingRepository(db)
	storeRepo := mongodb.NewStoreRepository(db)
	statsCache := redisdb.NewStatsCache(rdb)

	authService := service.NewAuthService(userRepo, tokens, log)
	ratingService := service.NewRatingService(ratingRepo, statsCache, dispatcher, log)
	storeService := service.NewStoreService(storeRepo, ratingRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	ratingHandler := handler.NewRatingHandler(ratingService)
	storeHandler := handler.NewStoreHandler(storeService)

	authRequired := middleware.Auth(tokens, log)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.PUT("/auth/password", authHandler.UpdatePassword, authRequired)

	// --- Rating routes (all authenticated) ---
	ratings := e.Group("/ratings", authRequired)
	ratings.POST("", ratingHandler.Submit)
	ratings.GET("/user", ratingHandler.ListMine)
	ratings.GET("/store/:store_id", ratingHandler.ListForStore)
	ratings.GET("/store/:store_id/average", ratingHandler.Average)
	ratings.DELETE("/:store_id", ratingHandler.Delete)

	// --- Store routes ---
	e.GET("/stores", storeHandler.List)
	e.GET("/stores/:id", storeHandler.Get)
	e.POST("/stores", storeHandler.Create, authRequired, middleware.RBAC(domain.RoleAdmin, domain.RoleStoreOwner))
	e.PUT("/stores/:id", storeHandler.Update, authRequired, middleware.RBAC(domain.RoleAdmin, domain.RoleStoreOwner))
	e.DELETE("/stores/:id", storeHandler.Delete, authRequired, middleware.RBAC(domain.RoleAdmin, domain.RoleStoreOwner))
	e.GET("/stores/:id/ratings", storeHandler.Ratings, authRequired, middleware.RBAC(domain.RoleAdmin, domain.RoleStoreOwner))

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
