package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/blendora/backend/internal/api"
	"github.com/pageza/blendora/backend/internal/catalog"
	"github.com/pageza/blendora/backend/internal/database"
	"github.com/pageza/blendora/backend/internal/middleware"
	"github.com/pageza/blendora/backend/internal/model"
	"github.com/pageza/blendora/backend/internal/router"
	"github.com/pageza/blendora/backend/internal/service"
	"github.com/pageza/blendora/backend/internal/testhelpers"
	"github.com/pageza/blendora/backend/internal/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestPostgresCatalog(t *testing.T) {
	db := testhelpers.SetupPostgresDatabase(t)
	ctx := context.Background()
	log := testhelpers.Logger()

	require.NoError(t, database.InitDB(ctx, db, log))

	var links int64
	require.NoError(t, db.Model(&model.RecipeIngredient{}).Count(&links).Error)
	assert.EqualValues(t, 48, links)

	svc := service.NewRecipeService(db, nil, log)
	snap, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Entries, 10)

	ranked := catalog.Rank(snap, catalog.Criteria{Include: []string{"Kale"}})
	require.Len(t, ranked, 2)
	assert.Equal(t, "Green Strength", ranked[0].Name)

	fav, err := svc.ToggleFavorite(ctx, ranked[1].ID)
	require.NoError(t, err)
	assert.True(t, fav)

	snap, err = svc.Snapshot(ctx)
	require.NoError(t, err)
	ranked = catalog.Rank(snap, catalog.Criteria{Include: []string{"Kale"}})
	assert.Equal(t, "Tropical Green Wave", ranked[0].Name)

	// Ratings outside 1..5 are rejected by the database itself.
	err = db.Create(&model.RecipeBenefit{RecipeID: ranked[0].ID, BenefitID: 1, Rating: 9}).Error
	assert.Error(t, err)
}

func TestFullStackWithRedis(t *testing.T) {
	db := testhelpers.SetupPostgresDatabase(t)
	redisClient := testhelpers.SetupRedis(t)
	ctx := context.Background()
	log := testhelpers.Logger()

	require.NoError(t, database.InitDB(ctx, db, log))

	cache := service.NewRedisSnapshotCache(redisClient, time.Minute)
	engine := router.SetupRouter(api.Dependencies{
		DB:              db,
		Redis:           redisClient,
		Recipes:         service.NewRecipeService(db, cache, log),
		Images:          service.NewImageService(nil, 0),
		FavoriteLimiter: middleware.NewFavoriteRateLimiter(redisClient, 1, log),
		Logger:          log,
	}, nil)

	get := func(path string) *httptest.ResponseRecorder {
		rr := httptest.NewRecorder()
		engine.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		return rr
	}
	post := func(path string) *httptest.ResponseRecorder {
		rr := httptest.NewRecorder()
		engine.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, path, nil))
		return rr
	}

	rr := get("/api/v1/recipes?exclude=Banana,Honey")
	require.Equal(t, http.StatusOK, rr.Code)
	var list types.RecipeListResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	require.Len(t, list.Recipes, 2)

	version, err := cache.Version(ctx)
	require.NoError(t, err)
	_, err = cache.Get(ctx, version)
	require.NoError(t, err, "listing should populate the snapshot cache")

	target := list.Recipes[1].Recipe.ID.String()
	rr = post("/api/v1/recipes/" + target + "/favorite")
	require.Equal(t, http.StatusOK, rr.Code)

	bumped, err := cache.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, version+1, bumped)
	_, err = cache.Get(ctx, bumped)
	assert.ErrorIs(t, err, service.ErrCacheMiss)

	rr = post("/api/v1/recipes/" + target + "/favorite")
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)

	rr = get("/api/v1/recipes?favorites=true")
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	require.Len(t, list.Recipes, 1)
	assert.Equal(t, target, list.Recipes[0].Recipe.ID.String())

	rr = get("/health")
	assert.JSONEq(t, `{"status":"healthy","database":"ok","redis":"ok"}`, rr.Body.String())
}
