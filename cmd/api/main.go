package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/pageza/blendora/backend/config"
	"github.com/pageza/blendora/backend/internal/api"
	"github.com/pageza/blendora/backend/internal/database"
	"github.com/pageza/blendora/backend/internal/middleware"
	"github.com/pageza/blendora/backend/internal/server"
	"github.com/pageza/blendora/backend/internal/service"
)

func main() {
	logger, err := newLogger()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(logger); err != nil {
		logger.Fatal("server exited with error", zap.Error(err))
	}
	logger.Info("server stopped")
}

// newLogger returns JSON logging at info level in production and the
// console development logger everywhere else.
func newLogger() (*zap.Logger, error) {
	if config.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func run(logger *zap.Logger) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	logger.Info("configuration loaded",
		zap.String("environment", string(config.GetEnvironment())),
		zap.String("db_driver", cfg.DBDriver),
		zap.Bool("redis", cfg.RedisEnabled()),
		zap.Bool("s3", cfg.S3Enabled()),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logger.Warn("failed to close database", zap.Error(err))
		}
	}()

	if err := database.InitDB(ctx, db, logger); err != nil {
		return err
	}

	var (
		redisClient *redis.Client
		cache       service.SnapshotCache
		limiter     *middleware.RateLimiter
	)
	if cfg.RedisEnabled() {
		redisClient, err = database.NewRedisClient(cfg, logger)
		if err != nil {
			// Caching and rate limiting are optional; serve without them.
			logger.Warn("redis unavailable, continuing without cache and rate limiting", zap.Error(err))
		} else {
			defer func() { _ = redisClient.Close() }()
			cache = service.NewRedisSnapshotCache(redisClient, cfg.SnapshotCacheTTL)
			if cfg.FavoriteRateLimit > 0 {
				limiter = middleware.NewFavoriteRateLimiter(redisClient, cfg.FavoriteRateLimit, logger)
			}
		}
	}

	var presigner service.Presigner
	if cfg.S3Enabled() {
		s3cfg, err := config.NewS3Config(ctx, cfg)
		if err != nil {
			return err
		}
		presigner = s3cfg
	}

	srv := server.New(cfg, api.Dependencies{
		DB:              db,
		Redis:           redisClient,
		Recipes:         service.NewRecipeService(db, cache, logger),
		Images:          service.NewImageService(presigner, cfg.ImageURLExpiry),
		FavoriteLimiter: limiter,
		Logger:          logger,
	})
	return srv.Run(ctx)
}
