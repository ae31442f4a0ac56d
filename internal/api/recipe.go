package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/blendora/backend/internal/catalog"
	"github.com/pageza/blendora/backend/internal/middleware"
	"github.com/pageza/blendora/backend/internal/model"
	"github.com/pageza/blendora/backend/internal/service"
	"github.com/pageza/blendora/backend/internal/types"
)

const recipesPath = "/api/v1/recipes"

// RecipeHandler serves recipe listings, details and favorite toggles.
type RecipeHandler struct {
	recipes service.IRecipeService
	images  service.IImageService
	logger  *zap.Logger
}

func NewRecipeHandler(recipes service.IRecipeService, images service.IImageService, logger *zap.Logger) *RecipeHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecipeHandler{
		recipes: recipes,
		images:  images,
		logger:  logger,
	}
}

// RegisterRoutes mounts the recipe routes. favoriteMiddleware runs in front of
// the favorite toggle only.
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup, favoriteMiddleware ...gin.HandlerFunc) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/:id", h.GetRecipe)
		recipes.POST("/:id/favorite", append(favoriteMiddleware, h.ToggleFavorite)...)
	}
}

// ListRecipes selects and ranks recipes from the query's criteria.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	var query types.RecipeListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	criteria := catalog.Criteria{
		Include:       parseMultiValue(query.Include),
		Exclude:       parseMultiValue(query.Exclude),
		Have:          parseMultiValue(query.Have),
		FavoritesOnly: parseBool(query.Favorites),
		Prioritize:    parseMultiValue(query.Prioritize),
	}
	servings := parseServings(query.Servings)
	ctx := c.Request.Context()

	snap, err := h.recipes.Snapshot(ctx)
	if err != nil {
		h.fail(c, "Failed to fetch recipes", err)
		return
	}
	ranked := catalog.Rank(snap, criteria)
	middleware.RecordSelection(selectionMode(criteria), len(ranked))

	all, err := h.recipes.ListRecipes(ctx)
	if err != nil {
		h.fail(c, "Failed to fetch recipes", err)
		return
	}
	byID := make(map[uuid.UUID]*model.Recipe, len(all))
	for _, r := range all {
		byID[r.ID] = r
	}

	listed := make([]catalog.Entry, 0, len(ranked))
	ids := make([]uuid.UUID, 0, len(ranked))
	for _, entry := range ranked {
		if _, ok := byID[entry.ID]; !ok {
			// Snapshot served from cache may be ahead of a reseeded table.
			continue
		}
		listed = append(listed, entry)
		ids = append(ids, entry.ID)
	}

	ingredients, err := h.recipes.IngredientsForRecipes(ctx, ids, servings)
	if err != nil {
		h.fail(c, "Failed to fetch recipes", err)
		return
	}
	ratings, err := h.recipes.BenefitsForRecipes(ctx, ids)
	if err != nil {
		h.fail(c, "Failed to fetch recipes", err)
		return
	}

	scored := len(criteria.Prioritize) > 0
	priorities := catalog.NormalizeNames(criteria.Prioritize)
	cards := make([]types.RecipeCard, 0, len(listed))
	for _, entry := range listed {
		card := types.RecipeCard{
			Recipe:      h.toRecipe(ctx, byID[entry.ID]),
			Ingredients: ingredients[entry.ID],
			Benefits:    ratings[entry.ID],
		}
		// The order came from the snapshot, so its flag is the one shown.
		card.Recipe.Favorite = entry.Favorite
		if card.Ingredients == nil {
			card.Ingredients = []types.IngredientLine{}
		}
		if card.Benefits == nil {
			card.Benefits = []types.BenefitRating{}
		}
		if scored {
			score := catalog.Score(entry, priorities)
			card.Score = &score
		}
		cards = append(cards, card)
	}

	names, err := h.recipes.ListIngredientNames(ctx)
	if err != nil {
		h.fail(c, "Failed to fetch ingredients", err)
		return
	}
	benefits, err := h.recipes.ListBenefits(ctx)
	if err != nil {
		h.fail(c, "Failed to fetch benefits", err)
		return
	}
	if names == nil {
		names = []string{}
	}
	if benefits == nil {
		benefits = []types.Benefit{}
	}

	c.JSON(http.StatusOK, types.RecipeListResponse{
		Recipes:       cards,
		Servings:      servings,
		Include:       criteria.Include,
		Exclude:       criteria.Exclude,
		Have:          criteria.Have,
		Prioritize:    criteria.Prioritize,
		FavoritesOnly: criteria.FavoritesOnly,
		Ingredients:   names,
		Benefits:      benefits,
	})
}

// GetRecipe returns one recipe with quantities for the requested servings.
// Unknown or malformed ids redirect to the listing.
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	var query types.ServingsQuery
	_ = c.ShouldBindQuery(&query)
	servings := parseServings(query.Servings)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		redirectToListing(c, servings)
		return
	}

	ctx := c.Request.Context()
	recipe, err := h.recipes.GetRecipe(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrRecipeNotFound) {
			redirectToListing(c, servings)
			return
		}
		h.fail(c, "Failed to fetch recipe", err)
		return
	}

	card, err := h.buildCard(ctx, recipe, servings)
	if err != nil {
		h.fail(c, "Failed to fetch recipe", err)
		return
	}

	c.JSON(http.StatusOK, types.RecipeDetailResponse{
		Recipe:      card.Recipe,
		Servings:    servings,
		Ingredients: card.Ingredients,
		Benefits:    card.Benefits,
	})
}

// ToggleFavorite flips a recipe's favorite flag
func (h *RecipeHandler) ToggleFavorite(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipe ID"})
		return
	}

	favorite, err := h.recipes.ToggleFavorite(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrRecipeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
			return
		}
		h.fail(c, "Failed to update favorite", err)
		return
	}
	middleware.FavoriteToggles.Inc()

	c.JSON(http.StatusOK, types.FavoriteResponse{ID: id, Favorite: favorite})
}

func (h *RecipeHandler) buildCard(ctx context.Context, recipe *model.Recipe, servings int) (types.RecipeCard, error) {
	ingredients, err := h.recipes.RecipeIngredients(ctx, recipe.ID, servings)
	if err != nil {
		return types.RecipeCard{}, err
	}
	benefits, err := h.recipes.RecipeBenefits(ctx, recipe.ID)
	if err != nil {
		return types.RecipeCard{}, err
	}
	return types.RecipeCard{
		Recipe:      h.toRecipe(ctx, recipe),
		Ingredients: ingredients,
		Benefits:    benefits,
	}, nil
}

func (h *RecipeHandler) toRecipe(ctx context.Context, recipe *model.Recipe) types.Recipe {
	instructions := []string(recipe.Instructions)
	if instructions == nil {
		instructions = []string{}
	}
	out := types.Recipe{
		ID:           recipe.ID,
		Name:         recipe.Name,
		Description:  recipe.Description,
		Instructions: instructions,
		Favorite:     recipe.Favorite,
	}
	if h.images != nil && recipe.ImageRef != "" {
		url, err := h.images.ResolveURL(ctx, recipe.ImageRef)
		if err != nil {
			h.logger.Warn("failed to resolve recipe image",
				zap.String("recipe_id", recipe.ID.String()),
				zap.Error(err),
			)
		}
		out.ImageURL = url
	}
	return out
}

func (h *RecipeHandler) fail(c *gin.Context, message string, err error) {
	h.logger.Error(message, zap.Error(err), zap.String("request_id", middleware.GetRequestID(c)))
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": message})
}

func redirectToListing(c *gin.Context, servings int) {
	target := recipesPath
	if servings == 2 {
		target += "?servings=2"
	}
	c.Redirect(http.StatusFound, target)
}

func selectionMode(c catalog.Criteria) string {
	switch {
	case c.FavoritesOnly:
		return "favorites"
	case c.HasIngredientFilter():
		return "filtered"
	default:
		return "all"
	}
}
