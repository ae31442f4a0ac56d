package types

import (
	"github.com/google/uuid"
)

// Recipe represents a recipe as returned by the API
type Recipe struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Instructions []string  `json:"instructions"`
	ImageURL     string    `json:"image_url,omitempty"`
	Favorite     bool      `json:"favorite"`
}

// Benefit is a health benefit recipes can be rated against.
type Benefit struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// IngredientLine is one ingredient of a recipe with the quantity for the
// requested serving size.
type IngredientLine struct {
	Name string  `json:"name"`
	Qty  string  `json:"qty"`
	Unit *string `json:"unit"`
}

// BenefitRating is a recipe's rating for one benefit.
type BenefitRating struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Rating      int    `json:"rating"`
}

// RecipeCard is a recipe with its ingredients and ratings, as shown in listings.
type RecipeCard struct {
	Recipe      Recipe           `json:"recipe"`
	Ingredients []IngredientLine `json:"ingredients"`
	Benefits    []BenefitRating  `json:"benefits"`
	Score       *int             `json:"score,omitempty"`
}

// RecipeListResponse is the body of the recipe listing endpoint.
type RecipeListResponse struct {
	Recipes       []RecipeCard `json:"recipes"`
	Servings      int          `json:"servings"`
	Include       []string     `json:"include"`
	Exclude       []string     `json:"exclude"`
	Have          []string     `json:"have"`
	Prioritize    []string     `json:"prioritize"`
	FavoritesOnly bool         `json:"favorites_only"`
	Ingredients   []string     `json:"ingredients"`
	Benefits      []Benefit    `json:"benefits"`
}

// RecipeDetailResponse is the body of the recipe detail endpoint.
type RecipeDetailResponse struct {
	Recipe      Recipe           `json:"recipe"`
	Servings    int              `json:"servings"`
	Ingredients []IngredientLine `json:"ingredients"`
	Benefits    []BenefitRating  `json:"benefits"`
}

// FavoriteResponse is returned after toggling a recipe's favorite flag.
type FavoriteResponse struct {
	ID       uuid.UUID `json:"id"`
	Favorite bool      `json:"favorite"`
}
