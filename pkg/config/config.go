package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Environment   string
	IsProduction  bool
	IsDevelopment bool

	// Discord Bot Configuration
	DiscordToken  string
	DiscordGuild  string
	CommandPrefix string

	// MongoDB Configuration
	MongoDBURI      string
	MongoDBDatabase string

	// Redis Configuration (catalog cache)
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	CatalogCacheTTL time.Duration

	// Catalog sync
	CatalogSourceURL           string
	CatalogChannelID           string
	CatalogSyncIntervalMinutes int

	// Optional statistical NLU backend
	NLUEndpoint string
	NLUTimeout  time.Duration

	MetricsAddr        string
	MaxRecommendations int
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Environment:      getEnv("ENVIRONMENT", "development"),
		DiscordToken:     getEnv("DISCORD_TOKEN", ""),
		DiscordGuild:     getEnv("DISCORD_GUILD", ""),
		CommandPrefix:    getEnv("COMMAND_PREFIX", "!"),
		MongoDBURI:       getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDBDatabase:  getEnv("MONGODB_DATABASE", ""),
		RedisAddr:        getEnv("REDIS_ADDR", ""),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		CatalogSourceURL: getEnv("CATALOG_SOURCE_URL", ""),
		CatalogChannelID: getEnv("CATALOG_CHANNEL_ID", ""),
		NLUEndpoint:      getEnv("NLU_ENDPOINT", ""),
		MetricsAddr:      getEnv("METRICS_ADDR", ":9090"),
	}

	// Derived properties
	cfg.IsProduction = cfg.Environment == "production"
	cfg.IsDevelopment = !cfg.IsProduction

	if cfg.MongoDBDatabase == "" {
		cfg.MongoDBDatabase = "mamabot"
		if cfg.IsDevelopment {
			cfg.MongoDBDatabase = "mamabot_dev"
		}
	}

	// Parse numeric values
	cfg.RedisDB = getEnvInt("REDIS_DB", 0)
	cfg.CatalogCacheTTL = time.Duration(getEnvInt("CATALOG_CACHE_TTL_MINUTES", 60)) * time.Minute
	cfg.CatalogSyncIntervalMinutes = getEnvInt("CATALOG_SYNC_INTERVAL_MINUTES", 720)
	cfg.NLUTimeout = time.Duration(getEnvInt("NLU_TIMEOUT_SECONDS", 3)) * time.Second
	cfg.MaxRecommendations = getEnvInt("MAX_RECOMMENDATIONS", 10)

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if c.DiscordToken == "" {
		return fmt.Errorf("DISCORD_TOKEN environment variable is required")
	}
	if c.MaxRecommendations < 1 {
		return fmt.Errorf("MAX_RECOMMENDATIONS must be positive, got %d", c.MaxRecommendations)
	}
	if c.CatalogSyncIntervalMinutes < 1 {
		return fmt.Errorf("CATALOG_SYNC_INTERVAL_MINUTES must be positive, got %d", c.CatalogSyncIntervalMinutes)
	}

	return nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt parses an integer variable, falling back to the default on absence or parse error
func getEnvInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(getEnv(key, strconv.Itoa(defaultValue)))
	if err != nil {
		return defaultValue
	}
	return n
}
