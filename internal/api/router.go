package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/devcircle/social-api/docs"
	"github.com/devcircle/social-api/internal/api/handler"
	"github.com/devcircle/social-api/internal/api/middleware"
	"github.com/devcircle/social-api/internal/core/ports"
	"github.com/devcircle/social-api/internal/core/service"
	mongodb "github.com/devcircle/social-api/internal/infrastructure/db/mongo"
	redisdb "github.com/devcircle/social-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The notification pieces are created by the caller because the dispatcher
// owns background goroutines tied to the process lifecycle.
func NewRouter(
	db *mongo.Database,
	rdb *redis.Client,
	tokens ports.TokenService,
	notifications ports.NotificationService,
	dispatcher service.NotificationDispatcher,
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
	e.Use(echoprometheus.NewMiddleware("social"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	postRepo := mongodb.NewPostRepository(db)
	profiles := redisdb.NewProfileCache(rdb, userRepo, log)

	authService := service.NewAuthService(userRepo, tokens, log)
	postService := service.NewPostService(postRepo, profiles, dispatcher, log)

	authHandler := handler.NewAuthHandler(authService)
	postHandler := handler.NewPostHandler(postService)
	notificationHandler := handler.NewNotificationHandler(notifications)
	authMiddleware := middleware.Auth(tokens)

	// --- User & auth routes ---
	e.POST("/api/users", authHandler.Register)
	e.POST("/api/auth", authHandler.Login)
	e.GET("/api/auth", authHandler.Me, authMiddleware)

	// --- Post routes (all protected) ---
	posts := e.Group("/api/posts", authMiddleware)
	posts.POST("", postHandler.Create)
	posts.GET("", postHandler.List)
	posts.GET("/:id", postHandler.Get)
	posts.DELETE("/:id", postHandler.Delete)
	posts.PUT("/like/:id", postHandler.Like)
	posts.PUT("/unlike/:id", postHandler.Unlike)
	posts.POST("/comment/:id", postHandler.Comment)
	posts.DELETE("/comment/:id/:comment_id", postHandler.DeleteComment)

	// --- Notifications ---
	e.GET("/api/notifications", notificationHandler.List, authMiddleware)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler(db, rdb)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)

	// --- Operational surfaces ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
