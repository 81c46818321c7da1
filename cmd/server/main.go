package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"desideri.com/pugliaclub/internal/bootstrap"
	"desideri.com/pugliaclub/internal/config"
	"desideri.com/pugliaclub/internal/server"
	"desideri.com/pugliaclub/pkg/database"
	"desideri.com/pugliaclub/pkg/logger"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	logger.Init(cfg.LogLevel, !cfg.IsProduction())

	cfg.Database.Debug = cfg.LogLevel == "debug"
	db := database.Connect(cfg.Database)

	if err := bootstrap.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}

	ctx := context.Background()
	if err := bootstrap.Seed(ctx, db, !cfg.IsProduction(), cfg.Now); err != nil {
		log.Fatal().Err(err).Msg("failed to seed data")
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid REDIS_URL")
		}
		redisClient = redis.NewClient(opts)

		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Warn().Err(err).Msg("redis unreachable, caching and rate limits may be degraded")
		} else {
			log.Info().Msg("connected to redis")
		}
		cancel()
	} else {
		log.Warn().Msg("REDIS_URL not set, running without cache and pub/sub")
	}

	srv, err := server.NewServer(cfg, db, redisClient)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build server")
	}

	go func() {
		if err := srv.Run(":" + cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("server exited with error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	if redisClient != nil {
		redisClient.Close()
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
