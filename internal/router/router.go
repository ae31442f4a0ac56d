package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/blendora/backend/internal/api"
	"github.com/pageza/blendora/backend/internal/middleware"
)

// SetupRouter configures the middleware chain and the application routes
func SetupRouter(deps api.Dependencies, corsOrigins []string) *gin.Engine {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.Metrics(),
	)
	if len(corsOrigins) > 0 {
		router.Use(middleware.CORS(corsOrigins))
	}

	api.RegisterRoutes(router, deps)
	return router
}
