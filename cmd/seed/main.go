// Command seed loads a recipe catalog into the configured database.
//
//	seed [--json path] [--reset | --no-reset]
//
// Without --json the catalog bundled with the binary is used. --reset (the
// default) clears existing recipes, ingredients and benefits first.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/pageza/blendora/backend/config"
	"github.com/pageza/blendora/backend/internal/database"
	"github.com/pageza/blendora/backend/internal/service"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(context.Background(), os.Args[1:], logger); err != nil {
		logger.Fatal("seed failed", zap.Error(err))
	}
}

type options struct {
	seedPath string
	reset    bool
}

func parseFlags(args []string) (options, error) {
	var opts options
	var noReset bool

	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	fs.StringVar(&opts.seedPath, "json", "", "path to a JSON or YAML seed file (default: bundled catalog)")
	fs.BoolVar(&opts.reset, "reset", true, "clear the existing catalog before seeding")
	fs.BoolVar(&noReset, "no-reset", false, "keep the existing catalog and add to it")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if noReset {
		opts.reset = false
	}
	return opts, nil
}

func run(ctx context.Context, args []string, logger *zap.Logger) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}

	var seed *database.Seed
	if opts.seedPath == "" {
		seed, err = database.DefaultSeed()
	} else {
		seed, err = database.LoadSeedFile(opts.seedPath)
	}
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	db, err := database.New(cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = database.Close(db) }()

	if err := database.RunMigrations(db, logger); err != nil {
		return err
	}
	if err := database.ApplySeed(ctx, db, seed, opts.reset); err != nil {
		return err
	}
	invalidateSnapshot(ctx, cfg, logger)

	logger.Info("catalog seeded",
		zap.String("source", sourceName(opts.seedPath)),
		zap.Bool("reset", opts.reset),
		zap.Int("recipes", len(seed.Recipes)),
		zap.Int("ingredients", len(seed.Ingredients)),
		zap.Int("benefits", len(seed.Benefits)),
	)
	return nil
}

// invalidateSnapshot bumps the cached catalog version so running API servers
// reload the new catalog.
func invalidateSnapshot(ctx context.Context, cfg *config.Config, logger *zap.Logger) {
	if !cfg.RedisEnabled() {
		return
	}
	client, err := database.NewRedisClient(cfg, logger)
	if err != nil {
		logger.Warn("could not reach redis to invalidate snapshot", zap.Error(err))
		return
	}
	defer func() { _ = client.Close() }()

	if err := service.NewRedisSnapshotCache(client, cfg.SnapshotCacheTTL).Invalidate(ctx); err != nil {
		logger.Warn("failed to invalidate snapshot", zap.Error(err))
	}
}

func sourceName(path string) string {
	if path == "" {
		return "bundled"
	}
	return path
}
