// Package config loads and validates environment configuration at startup.
// Fail-fast: a missing required variable aborts the process before any
// listener opens.
package config

import (
	"fmt"
	"os"
)

// Supported store drivers.
const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

// Config holds all runtime configuration for the service.
type Config struct {
	Port string

	// Store connection. StoreURL is the endpoint and StoreKey the access
	// credential; the key is injected as the connection password at
	// adapter construction rather than being baked into the URL.
	StoreDriver string
	StoreURL    string
	StoreUser   string
	StoreKey    string
	StoreDB     string

	// Table (collection) names are a deployment-time choice.
	ListingsTable        string
	DefaultLocationTable string

	// Optional listing cache. Empty RedisAddr disables caching.
	RedisAddr string
	RedisPass string
}

// Load reads environment variables and returns a validated Config.
func Load() (*Config, error) {
	storeURL := os.Getenv("STORE_URL")
	if storeURL == "" {
		return nil, fmt.Errorf("STORE_URL is required")
	}

	storeKey := os.Getenv("STORE_KEY")
	if storeKey == "" {
		return nil, fmt.Errorf("STORE_KEY is required")
	}

	cfg := &Config{
		Port:                 envOr("PORT", "8080"),
		StoreDriver:          envOr("STORE_DRIVER", DriverPostgres),
		StoreURL:             storeURL,
		StoreUser:            os.Getenv("STORE_USER"),
		StoreKey:             storeKey,
		StoreDB:              envOr("STORE_DB", "property_map"),
		ListingsTable:        envOr("LISTINGS_TABLE", "properties"),
		DefaultLocationTable: envOr("DEFAULT_LOCATION_TABLE", "default_location"),
		RedisAddr:            os.Getenv("REDIS_ADDR"),
		RedisPass:            os.Getenv("REDIS_PASS"),
	}

	if cfg.StoreDriver != DriverPostgres && cfg.StoreDriver != DriverMongo {
		return nil, fmt.Errorf("unsupported STORE_DRIVER %q", cfg.StoreDriver)
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
