package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/blendora/backend/internal/catalog"
	"github.com/pageza/blendora/backend/internal/model"
	"github.com/pageza/blendora/backend/internal/types"
)

var (
	// ErrRecipeNotFound is returned when a recipe id does not exist in the catalog.
	ErrRecipeNotFound = errors.New("recipe not found")
)

// RecipeService handles recipe catalog operations
type RecipeService struct {
	db     *gorm.DB
	cache  SnapshotCache
	logger *zap.Logger
}

// NewRecipeService creates a new RecipeService instance. cache may be nil.
func NewRecipeService(db *gorm.DB, cache SnapshotCache, logger *zap.Logger) *RecipeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecipeService{
		db:     db,
		cache:  cache,
		logger: logger,
	}
}

// ListIngredientNames returns every ingredient name in alphabetical order
func (s *RecipeService) ListIngredientNames(ctx context.Context) ([]string, error) {
	var names []string
	if err := s.db.WithContext(ctx).Model(&model.Ingredient{}).Order("name").Pluck("name", &names).Error; err != nil {
		return nil, fmt.Errorf("failed to list ingredients: %w", err)
	}
	return names, nil
}

// ListBenefits returns every benefit in alphabetical order
func (s *RecipeService) ListBenefits(ctx context.Context) ([]types.Benefit, error) {
	var benefits []model.Benefit
	if err := s.db.WithContext(ctx).Order("name").Find(&benefits).Error; err != nil {
		return nil, fmt.Errorf("failed to list benefits: %w", err)
	}
	result := make([]types.Benefit, len(benefits))
	for i, b := range benefits {
		result[i] = types.Benefit{Name: b.Name, Description: b.Description}
	}
	return result, nil
}

// ListRecipes returns every recipe in alphabetical order by name
func (s *RecipeService) ListRecipes(ctx context.Context) ([]*model.Recipe, error) {
	var recipes []model.Recipe
	if err := s.db.WithContext(ctx).Order("name").Order("id").Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	result := make([]*model.Recipe, len(recipes))
	for i := range recipes {
		result[i] = &recipes[i]
	}
	return result, nil
}

// GetRecipe retrieves a recipe by ID
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	var recipe model.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}
	return &recipe, nil
}

// IngredientSetFor returns the set of ingredient names used by a recipe
func (s *RecipeService) IngredientSetFor(ctx context.Context, id uuid.UUID) (map[string]struct{}, error) {
	var names []string
	err := s.db.WithContext(ctx).
		Table("recipe_ingredients AS ri").
		Joins("JOIN ingredients i ON i.id = ri.ingredient_id").
		Where("ri.recipe_id = ?", id).
		Pluck("i.name", &names).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load ingredient set: %w", err)
	}
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set, nil
}

// BenefitRatingsFor returns a recipe's ratings keyed by benefit name
func (s *RecipeService) BenefitRatingsFor(ctx context.Context, id uuid.UUID) (map[string]int, error) {
	var rows []benefitRow
	err := s.db.WithContext(ctx).
		Table("recipe_benefits AS rb").
		Select("rb.recipe_id AS recipe_id, b.name AS name, rb.rating AS rating").
		Joins("JOIN benefits b ON b.id = rb.benefit_id").
		Where("rb.recipe_id = ?", id).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load benefit ratings: %w", err)
	}
	ratings := make(map[string]int, len(rows))
	for _, r := range rows {
		ratings[r.Name] = r.Rating
	}
	return ratings, nil
}

// RecipeIngredients returns a recipe's ingredients ordered by name, with the
// quantity for two servings when servings is 2 and for one serving otherwise.
func (s *RecipeService) RecipeIngredients(ctx context.Context, id uuid.UUID, servings int) ([]types.IngredientLine, error) {
	qtyCol := "ri.qty_1"
	if servings == 2 {
		qtyCol = "ri.qty_2"
	}

	var lines []types.IngredientLine
	err := s.db.WithContext(ctx).
		Table("recipe_ingredients AS ri").
		Select("i.name AS name, "+qtyCol+" AS qty, ri.unit AS unit").
		Joins("JOIN ingredients i ON i.id = ri.ingredient_id").
		Where("ri.recipe_id = ?", id).
		Order("i.name").
		Scan(&lines).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load recipe ingredients: %w", err)
	}
	if lines == nil {
		lines = []types.IngredientLine{}
	}
	return lines, nil
}

// RecipeBenefits returns a recipe's benefit ratings ordered by benefit name
func (s *RecipeService) RecipeBenefits(ctx context.Context, id uuid.UUID) ([]types.BenefitRating, error) {
	var ratings []types.BenefitRating
	err := s.db.WithContext(ctx).
		Table("recipe_benefits AS rb").
		Select("b.name AS name, b.description AS description, rb.rating AS rating").
		Joins("JOIN benefits b ON b.id = rb.benefit_id").
		Where("rb.recipe_id = ?", id).
		Order("b.name").
		Scan(&ratings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load recipe benefits: %w", err)
	}
	if ratings == nil {
		ratings = []types.BenefitRating{}
	}
	return ratings, nil
}

type ingredientLineRow struct {
	RecipeID uuid.UUID
	Name     string
	Qty      string
	Unit     *string
}

type benefitRatingRow struct {
	RecipeID    uuid.UUID
	Name        string
	Description string
	Rating      int
}

// IngredientsForRecipes is RecipeIngredients for many recipes at once, keyed
// by recipe id. Recipes without ingredients have no entry.
func (s *RecipeService) IngredientsForRecipes(ctx context.Context, ids []uuid.UUID, servings int) (map[uuid.UUID][]types.IngredientLine, error) {
	lines := make(map[uuid.UUID][]types.IngredientLine, len(ids))
	if len(ids) == 0 {
		return lines, nil
	}

	qtyCol := "ri.qty_1"
	if servings == 2 {
		qtyCol = "ri.qty_2"
	}

	var rows []ingredientLineRow
	err := s.db.WithContext(ctx).
		Table("recipe_ingredients AS ri").
		Select("ri.recipe_id AS recipe_id, i.name AS name, "+qtyCol+" AS qty, ri.unit AS unit").
		Joins("JOIN ingredients i ON i.id = ri.ingredient_id").
		Where("ri.recipe_id IN ?", ids).
		Order("i.name").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load recipe ingredients: %w", err)
	}
	for _, r := range rows {
		lines[r.RecipeID] = append(lines[r.RecipeID], types.IngredientLine{Name: r.Name, Qty: r.Qty, Unit: r.Unit})
	}
	return lines, nil
}

// BenefitsForRecipes is RecipeBenefits for many recipes at once, keyed by
// recipe id. Recipes without ratings have no entry.
func (s *RecipeService) BenefitsForRecipes(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]types.BenefitRating, error) {
	ratings := make(map[uuid.UUID][]types.BenefitRating, len(ids))
	if len(ids) == 0 {
		return ratings, nil
	}

	var rows []benefitRatingRow
	err := s.db.WithContext(ctx).
		Table("recipe_benefits AS rb").
		Select("rb.recipe_id AS recipe_id, b.name AS name, b.description AS description, rb.rating AS rating").
		Joins("JOIN benefits b ON b.id = rb.benefit_id").
		Where("rb.recipe_id IN ?", ids).
		Order("b.name").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load recipe benefits: %w", err)
	}
	for _, r := range rows {
		ratings[r.RecipeID] = append(ratings[r.RecipeID], types.BenefitRating{Name: r.Name, Description: r.Description, Rating: r.Rating})
	}
	return ratings, nil
}

// ToggleFavorite flips a recipe's favorite flag in a single transaction and
// returns the new value.
func (s *RecipeService) ToggleFavorite(ctx context.Context, id uuid.UUID) (bool, error) {
	var favorite bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Recipe{}).
			Where("id = ?", id).
			Update("favorite", gorm.Expr("NOT favorite"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrRecipeNotFound
		}

		var recipe model.Recipe
		if err := tx.Select("favorite").First(&recipe, "id = ?", id).Error; err != nil {
			return err
		}
		favorite = recipe.Favorite
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrRecipeNotFound) {
			return false, err
		}
		return false, fmt.Errorf("failed to toggle favorite: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.logger.Warn("failed to invalidate catalog snapshot", zap.Error(err))
		}
	}
	return favorite, nil
}

type ingredientRow struct {
	RecipeID uuid.UUID
	Name     string
}

type benefitRow struct {
	RecipeID uuid.UUID
	Name     string
	Rating   int
}

// Snapshot returns a read-only view of the whole catalog for the selection
// engine, served from the cache when one is configured.
//
// The catalog version is read before the database so a favorite toggled
// during the load leaves this snapshot cached under the superseded version.
func (s *RecipeService) Snapshot(ctx context.Context) (catalog.Snapshot, error) {
	var (
		version   int64
		cacheable bool
	)
	if s.cache != nil {
		v, err := s.cache.Version(ctx)
		if err != nil {
			s.logger.Warn("catalog version read failed", zap.Error(err))
		} else {
			version, cacheable = v, true
			snap, err := s.cache.Get(ctx, version)
			switch {
			case err == nil:
				return snap, nil
			case !errors.Is(err, ErrCacheMiss):
				s.logger.Warn("catalog snapshot cache read failed", zap.Error(err))
			}
		}
	}

	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return catalog.Snapshot{}, err
	}

	if cacheable {
		if err := s.cache.Set(ctx, version, snap); err != nil {
			s.logger.Warn("catalog snapshot cache write failed", zap.Error(err))
		}
	}
	return snap, nil
}

func (s *RecipeService) loadSnapshot(ctx context.Context) (catalog.Snapshot, error) {
	recipes, err := s.ListRecipes(ctx)
	if err != nil {
		return catalog.Snapshot{}, err
	}

	db := s.db.WithContext(ctx)

	var ingredients []ingredientRow
	if err := db.Table("recipe_ingredients AS ri").
		Select("ri.recipe_id AS recipe_id, i.name AS name").
		Joins("JOIN ingredients i ON i.id = ri.ingredient_id").
		Scan(&ingredients).Error; err != nil {
		return catalog.Snapshot{}, fmt.Errorf("failed to load ingredient links: %w", err)
	}

	var benefits []benefitRow
	if err := db.Table("recipe_benefits AS rb").
		Select("rb.recipe_id AS recipe_id, b.name AS name, rb.rating AS rating").
		Joins("JOIN benefits b ON b.id = rb.benefit_id").
		Scan(&benefits).Error; err != nil {
		return catalog.Snapshot{}, fmt.Errorf("failed to load benefit ratings: %w", err)
	}

	sets := make(map[uuid.UUID]map[string]struct{}, len(recipes))
	for _, row := range ingredients {
		set, ok := sets[row.RecipeID]
		if !ok {
			set = make(map[string]struct{})
			sets[row.RecipeID] = set
		}
		set[row.Name] = struct{}{}
	}
	ratings := make(map[uuid.UUID]map[string]int, len(recipes))
	for _, row := range benefits {
		m, ok := ratings[row.RecipeID]
		if !ok {
			m = make(map[string]int)
			ratings[row.RecipeID] = m
		}
		m[row.Name] = row.Rating
	}

	snap := catalog.Snapshot{Entries: make([]catalog.Entry, 0, len(recipes))}
	for _, r := range recipes {
		entry := catalog.Entry{
			ID:          r.ID,
			Name:        r.Name,
			Favorite:    r.Favorite,
			Ingredients: sets[r.ID],
			Ratings:     ratings[r.ID],
		}
		if entry.Ingredients == nil {
			entry.Ingredients = map[string]struct{}{}
		}
		if entry.Ratings == nil {
			entry.Ratings = map[string]int{}
		}
		snap.Entries = append(snap.Entries, entry)
	}
	return snap, nil
}
