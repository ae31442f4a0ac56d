package database

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/blendora/backend/internal/model"
)

// Models lists every table owned by the catalog, parents before links.
var Models = []interface{}{
	&model.Recipe{},
	&model.Ingredient{},
	&model.Benefit{},
	&model.RecipeIngredient{},
	&model.RecipeBenefit{},
}

// RunMigrations creates or updates the catalog schema.
func RunMigrations(db *gorm.DB, log *zap.Logger) error {
	log.Info("running auto-migration", zap.String("dialect", db.Dialector.Name()))
	if err := db.AutoMigrate(Models...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// InitDB migrates the schema and loads the default seed into an empty catalog.
func InitDB(ctx context.Context, db *gorm.DB, log *zap.Logger) error {
	if err := RunMigrations(db, log); err != nil {
		return err
	}

	var count int64
	if err := db.WithContext(ctx).Model(&model.Recipe{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count recipes: %w", err)
	}
	if count > 0 {
		log.Info("catalog already seeded", zap.Int64("recipes", count))
		return nil
	}

	seed, err := DefaultSeed()
	if err != nil {
		return err
	}
	if err := ApplySeed(ctx, db, seed, false); err != nil {
		return err
	}
	log.Info("seeded catalog",
		zap.Int("recipes", len(seed.Recipes)),
		zap.Int("ingredients", len(seed.Ingredients)),
		zap.Int("benefits", len(seed.Benefits)))
	return nil
}
