package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/pageza/blendora/backend/internal/catalog"
	"github.com/pageza/blendora/backend/internal/model"
	"github.com/pageza/blendora/backend/internal/types"
)

// IRecipeService defines the catalog operations the HTTP layer depends on
type IRecipeService interface {
	ListIngredientNames(ctx context.Context) ([]string, error)
	ListBenefits(ctx context.Context) ([]types.Benefit, error)
	ListRecipes(ctx context.Context) ([]*model.Recipe, error)
	GetRecipe(ctx context.Context, id uuid.UUID) (*model.Recipe, error)
	IngredientSetFor(ctx context.Context, id uuid.UUID) (map[string]struct{}, error)
	BenefitRatingsFor(ctx context.Context, id uuid.UUID) (map[string]int, error)
	RecipeIngredients(ctx context.Context, id uuid.UUID, servings int) ([]types.IngredientLine, error)
	RecipeBenefits(ctx context.Context, id uuid.UUID) ([]types.BenefitRating, error)
	IngredientsForRecipes(ctx context.Context, ids []uuid.UUID, servings int) (map[uuid.UUID][]types.IngredientLine, error)
	BenefitsForRecipes(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]types.BenefitRating, error)
	ToggleFavorite(ctx context.Context, id uuid.UUID) (bool, error)
	Snapshot(ctx context.Context) (catalog.Snapshot, error)
}

// IImageService defines the interface for resolving recipe images
type IImageService interface {
	ResolveURL(ctx context.Context, ref string) (string, error)
}

var (
	_ IRecipeService = (*RecipeService)(nil)
	_ IImageService  = (*ImageService)(nil)
	_ SnapshotCache  = (*RedisSnapshotCache)(nil)
)
