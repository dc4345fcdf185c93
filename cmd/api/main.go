package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/devcircle/social-api/internal/api"
	"github.com/devcircle/social-api/internal/core/service"
	mongodb "github.com/devcircle/social-api/internal/infrastructure/db/mongo"
	redisdb "github.com/devcircle/social-api/internal/infrastructure/db/redis"
	"github.com/devcircle/social-api/internal/infrastructure/queue"
	"github.com/devcircle/social-api/internal/pkg/config"
	"github.com/devcircle/social-api/pkg/logger"
)

// @title        Social Network API
// @version      1.0
// @description  REST API for users, posts, likes, comments, and notifications.
//
// @securityDefinitions.apikey TokenAuth
// @in   header
// @name x-auth-token
func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// --- MongoDB ---
	client, db, err := mongodb.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	// --- Redis ---
	rdb, err := redisdb.Connect(ctx, cfg.Redis.Addr, cfg.Redis.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}

	// --- Notification pipeline ---
	tokens := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	notifications := service.NewNotificationService(mongodb.NewNotificationRepository(db), log)
	dispatcher := queue.NewDispatcher(cfg.NotificationWorkers, notifications, log)
	dispatcher.Start(ctx)

	// --- HTTP ---
	e := api.NewRouter(db, rdb, tokens, notifications, dispatcher, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// --- Graceful shutdown ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info().Msg("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}

	cancel() // stops dispatcher workers

	if err := client.Disconnect(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("mongo disconnect failed")
	}
	if err := rdb.Close(); err != nil {
		log.Error().Err(err).Msg("redis close failed")
	}

	log.Info().Msg("shutdown complete")
}
