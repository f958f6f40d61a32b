package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds all runtime settings.
type AppConfig struct {
	Port string

	// Outbound HTTP timeout for upstream API calls.
	HTTPTimeout time.Duration

	// TTL for cached upstream payloads.
	CacheTTL time.Duration

	// How often planting windows are recalculated for known villages.
	RecalcInterval time.Duration

	// Upper bound on concurrent soil fetches during grid generation.
	GridMaxConcurrency int64

	// Upstream endpoint overrides; empty means the public endpoints.
	NASAPowerURL string
	SoilGridsURL string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{}
	cfg.Port = getenvDefault("PORT", "8080")
	cfg.NASAPowerURL = os.Getenv("NASA_POWER_API_URL")
	cfg.SoilGridsURL = os.Getenv("SOILGRIDS_API_URL")

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "30s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	ttlStr := getenvDefault("CACHE_TTL", "24h")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL: %w", err)
	}
	cfg.CacheTTL = ttl

	recalcStr := getenvDefault("RECALC_INTERVAL", "24h")
	recalc, err := time.ParseDuration(recalcStr)
	if err != nil {
		return nil, fmt.Errorf("invalid RECALC_INTERVAL: %w", err)
	}
	cfg.RecalcInterval = recalc

	cfg.GridMaxConcurrency = int64(getenvInt("GRID_MAX_CONCURRENCY", 4))

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}
