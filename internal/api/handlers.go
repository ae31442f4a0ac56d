package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/blendora/backend/internal/database"
	"github.com/pageza/blendora/backend/internal/middleware"
	"github.com/pageza/blendora/backend/internal/service"
)

// Dependencies are the collaborators the HTTP layer is built from. Redis and
// FavoriteLimiter may be nil.
type Dependencies struct {
	DB              *gorm.DB
	Redis           *redis.Client
	Recipes         service.IRecipeService
	Images          service.IImageService
	FavoriteLimiter *middleware.RateLimiter
	Logger          *zap.Logger
}

// HealthHandler reports whether the service's backing stores are reachable.
type HealthHandler struct {
	db    *gorm.DB
	redis *redis.Client
}

// NewHealthHandler creates a HealthHandler. redisClient may be nil.
func NewHealthHandler(db *gorm.DB, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, redis: redisClient}
}

// HealthCheck returns the health status of the API
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	body := gin.H{"status": "healthy", "database": "ok", "redis": "disabled"}

	if err := database.HealthCheck(ctx, h.db); err != nil {
		status = http.StatusServiceUnavailable
		body["status"] = "unhealthy"
		body["database"] = err.Error()
	}

	if h.redis != nil {
		if err := h.redis.Ping(ctx).Err(); err != nil {
			// The snapshot cache and rate limiter degrade without Redis.
			body["status"] = "degraded"
			body["redis"] = err.Error()
		} else {
			body["redis"] = "ok"
		}
	}

	c.JSON(status, body)
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, deps Dependencies) {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	health := NewHealthHandler(deps.DB, deps.Redis)
	router.GET("/health", health.HealthCheck)
	router.GET("/metrics", middleware.MetricsHandler())

	v1 := router.Group("/api/v1")
	v1.GET("/health", health.HealthCheck)

	var favoriteLimit []gin.HandlerFunc
	if deps.FavoriteLimiter != nil {
		favoriteLimit = append(favoriteLimit, deps.FavoriteLimiter.Middleware())
	}

	NewRecipeHandler(deps.Recipes, deps.Images, logger).RegisterRoutes(v1, favoriteLimit...)
	NewCatalogHandler(deps.Recipes).RegisterRoutes(v1)
}
