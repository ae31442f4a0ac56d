package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/blendora/backend/internal/catalog"
	"github.com/pageza/blendora/backend/internal/model"
	"github.com/pageza/blendora/backend/internal/types"
)

// MockRecipeService is a mock implementation of the recipe service
type MockRecipeService struct {
	mock.Mock
}

// ListIngredientNames mocks the ListIngredientNames method
func (m *MockRecipeService) ListIngredientNames(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// ListBenefits mocks the ListBenefits method
func (m *MockRecipeService) ListBenefits(ctx context.Context) ([]types.Benefit, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Benefit), args.Error(1)
}

// ListRecipes mocks the ListRecipes method
func (m *MockRecipeService) ListRecipes(ctx context.Context) ([]*model.Recipe, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Recipe), args.Error(1)
}

// GetRecipe mocks the GetRecipe method
func (m *MockRecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}

// IngredientSetFor mocks the IngredientSetFor method
func (m *MockRecipeService) IngredientSetFor(ctx context.Context, id uuid.UUID) (map[string]struct{}, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]struct{}), args.Error(1)
}

// BenefitRatingsFor mocks the BenefitRatingsFor method
func (m *MockRecipeService) BenefitRatingsFor(ctx context.Context, id uuid.UUID) (map[string]int, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}

// RecipeIngredients mocks the RecipeIngredients method
func (m *MockRecipeService) RecipeIngredients(ctx context.Context, id uuid.UUID, servings int) ([]types.IngredientLine, error) {
	args := m.Called(ctx, id, servings)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.IngredientLine), args.Error(1)
}

// RecipeBenefits mocks the RecipeBenefits method
func (m *MockRecipeService) RecipeBenefits(ctx context.Context, id uuid.UUID) ([]types.BenefitRating, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.BenefitRating), args.Error(1)
}

// IngredientsForRecipes mocks the IngredientsForRecipes method
func (m *MockRecipeService) IngredientsForRecipes(ctx context.Context, ids []uuid.UUID, servings int) (map[uuid.UUID][]types.IngredientLine, error) {
	args := m.Called(ctx, ids, servings)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID][]types.IngredientLine), args.Error(1)
}

// BenefitsForRecipes mocks the BenefitsForRecipes method
func (m *MockRecipeService) BenefitsForRecipes(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]types.BenefitRating, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID][]types.BenefitRating), args.Error(1)
}

// ToggleFavorite mocks the ToggleFavorite method
func (m *MockRecipeService) ToggleFavorite(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// Snapshot mocks the Snapshot method
func (m *MockRecipeService) Snapshot(ctx context.Context) (catalog.Snapshot, error) {
	args := m.Called(ctx)
	return args.Get(0).(catalog.Snapshot), args.Error(1)
}
