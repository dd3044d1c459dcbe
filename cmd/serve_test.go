package cmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sidhant-sriv/rentease-api/config"
	"github.com/sidhant-sriv/rentease-api/db/dbtest"
	"github.com/sidhant-sriv/rentease-api/logger"
	"github.com/sidhant-sriv/rentease-api/storage"
)

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.AccessTTL = time.Hour
	cfg.Auth.RefreshTTL = 24 * time.Hour
	return cfg
}

func TestWireWithoutExternalServices(t *testing.T) {
	deps, closeAll, err := wire(testConfig(), dbtest.New(t), logger.Discard())
	require.NoError(t, err)
	defer closeAll()

	assert.IsType(t, storage.DisabledUploader{}, deps.Uploader)
	require.Len(t, deps.Health, 1)
	assert.Equal(t, "database", deps.Health[0].Name)
	assert.NotNil(t, deps.Users)
	assert.NotNil(t, deps.Reports)
}

func TestWireAddsRedisCheck(t *testing.T) {
	cfg := testConfig()
	cfg.Redis.URL = "localhost:6379"

	deps, closeAll, err := wire(cfg, dbtest.New(t), logger.Discard())
	require.NoError(t, err)
	defer closeAll()

	require.Len(t, deps.Health, 2)
	assert.Equal(t, "redis", deps.Health[1].Name)
}
