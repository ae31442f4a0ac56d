package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/blendora/backend/internal/service"
)

// CatalogHandler serves the ingredient and benefit vocabularies.
type CatalogHandler struct {
	recipes service.IRecipeService
}

func NewCatalogHandler(recipes service.IRecipeService) *CatalogHandler {
	return &CatalogHandler{recipes: recipes}
}

func (h *CatalogHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/ingredients", h.ListIngredients)
	router.GET("/benefits", h.ListBenefits)
}

func (h *CatalogHandler) ListIngredients(c *gin.Context) {
	names, err := h.recipes.ListIngredientNames(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch ingredients"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ingredients": names})
}

func (h *CatalogHandler) ListBenefits(c *gin.Context) {
	benefits, err := h.recipes.ListBenefits(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch benefits"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"benefits": benefits})
}
