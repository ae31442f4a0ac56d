package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate clears every variable LoadConfig reads so the host environment cannot leak in.
func isolate(t *testing.T) string {
	t.Helper()
	for _, key := range []string{
		"CI", "ENV", "SERVER_HOST", "SERVER_PORT", "SHUTDOWN_TIMEOUT", "CORS_ORIGINS",
		"DB_DRIVER", "DB_PATH", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSL_MODE",
		"REDIS_URL", "REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD", "REDIS_DB",
		"SNAPSHOT_CACHE_TTL", "FAVORITE_RATE_LIMIT", "S3_BUCKET_NAME", "AWS_REGION", "IMAGE_URL_EXPIRY",
	} {
		t.Setenv(key, "")
	}
	dir := t.TempDir()
	t.Setenv("SECRETS_DIR", dir)
	return dir
}

func TestLoadConfigWithDefaults(t *testing.T) {
	isolate(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, filepath.Join("data", "blendora.db"), cfg.DBPath)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, time.Minute, cfg.SnapshotCacheTTL)
	assert.Equal(t, 60, cfg.FavoriteRateLimit)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORSOrigins)
	assert.False(t, cfg.RedisEnabled())
	assert.False(t, cfg.S3Enabled())
}

func TestLoadConfig(t *testing.T) {
	isolate(t)
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_NAME", "smoothies")
	t.Setenv("DB_PASSWORD", "postgres")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
	t.Setenv("SNAPSHOT_CACHE_TTL", "30s")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test ,")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.ServerPort)
	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, "host=db port=5432 user=postgres password=postgres dbname=smoothies sslmode=disable", cfg.PostgresDSN())
	assert.True(t, cfg.RedisEnabled())
	assert.Equal(t, 30*time.Second, cfg.SnapshotCacheTTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
}

func TestSecretsTakePrecedence(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "db_password"), []byte("from-secret\n"), 0o600))
	t.Setenv("DB_PASSWORD", "from-env")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-secret", cfg.DBPassword)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	isolate(t)
	t.Setenv("SNAPSHOT_CACHE_TTL", "soon")

	_, err := LoadConfig()
	require.Error(t, err)
	var verr ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, "SNAPSHOT_CACHE_TTL", verr.Field)
}

func TestValidateConfig(t *testing.T) {
	isolate(t)

	cfg := &Config{DBDriver: "mysql", ServerPort: "8080"}
	err := ValidateConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported driver "mysql"`)

	cfg = &Config{DBDriver: DriverSQLite, DBPath: "x.db", ServerPort: "8080", S3BucketName: "images"}
	err = ValidateConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AWS_REGION")
}

func TestProductionRequiresExplicitSettings(t *testing.T) {
	isolate(t)
	t.Setenv("ENV", "production")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SERVER_PORT")
	assert.True(t, IsProduction())
}
