package main

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds all configuration for the seller dashboard.
type Config struct {
	Port string
	Env  string
	// Marketplace admin API the dashboard assembles its views from
	MarketplaceAPIURL   string
	MarketplaceAPIToken string
	RedisURL            string
	StagingDir          string
	CacheTTL            time.Duration
	RequestTimeout      time.Duration
	CORSOrigins         []string
}

// LoadConfig reads configuration from environment variables and validates
// the required values.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:                getEnv("PORT", "8095"),
		Env:                 getEnv("ENV", "development"),
		MarketplaceAPIURL:   os.Getenv("MARKETPLACE_API_URL"),
		MarketplaceAPIToken: os.Getenv("MARKETPLACE_API_TOKEN"),
		RedisURL:            os.Getenv("REDIS_URL"),
		StagingDir:          getEnv("STAGING_DIR", "./data/staged_uploads"),
		CacheTTL:            getDurationEnv("CACHE_TTL", 10*time.Minute),
		RequestTimeout:      getDurationEnv("REQUEST_TIMEOUT", 30*time.Second),
		CORSOrigins:         splitEnv("CORS_ORIGINS", "http://localhost:3000"),
	}

	if cfg.MarketplaceAPIURL == "" {
		return nil, fmt.Errorf("MARKETPLACE_API_URL is required")
	}
	if cfg.RedisURL == "" {
		return nil, fmt.Errorf("REDIS_URL is required")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}

func splitEnv(key, fallback string) []string {
	parts := strings.Split(getEnv(key, fallback), ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
