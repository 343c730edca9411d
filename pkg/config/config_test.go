package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("MONGODB_DATABASE", "")
	t.Setenv("MAX_RECOMMENDATIONS", "")
	t.Setenv("CATALOG_CACHE_TTL_MINUTES", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsDevelopment)
	assert.Equal(t, "mamabot_dev", cfg.MongoDBDatabase)
	assert.Equal(t, "!", cfg.CommandPrefix)
	assert.Equal(t, 10, cfg.MaxRecommendations)
	assert.Equal(t, time.Hour, cfg.CatalogCacheTTL)
}

func TestLoad_ProductionDatabase(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("MONGODB_DATABASE", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction)
	assert.Equal(t, "mamabot", cfg.MongoDBDatabase)
}

func TestLoad_InvalidNumberFallsBack(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("MAX_RECOMMENDATIONS", "lots")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.MaxRecommendations)
}

func TestValidate_RequiresToken(t *testing.T) {
	cfg := &Config{MaxRecommendations: 10, CatalogSyncIntervalMinutes: 60}
	assert.Error(t, cfg.Validate())

	cfg.DiscordToken = "token"
	assert.NoError(t, cfg.Validate())

	cfg.MaxRecommendations = 0
	assert.Error(t, cfg.Validate())
}
