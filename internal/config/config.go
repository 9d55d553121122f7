// Package config loads server configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Cache backends selectable via CACHE_BACKEND.
const (
	CacheBackendMemory    = "memory"
	CacheBackendFile      = "file"
	CacheBackendFirestore = "firestore"
)

type Config struct {
	// HTTP Server
	Port     string
	LogLevel string

	// Link cache
	CacheBackend string
	CachePath    string

	// Google Cloud (firestore cache backend)
	GoogleCloudProject string

	// Known-merchant table: optional JSON file merged over the
	// builtin table
	MerchantsPath string

	// Engine
	SimilarityThreshold int

	// External lookup
	LookupTimeout     time.Duration
	LookupMinInterval time.Duration
	LookupMaxWait     time.Duration
}

// Load reads configuration from the environment, after best-effort
// loading of a local .env file.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:     getEnv("PORT", "8112"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		CacheBackend: getEnv("CACHE_BACKEND", CacheBackendFile),
		CachePath:    getEnv("CACHE_PATH", "./data/link_cache.json"),

		GoogleCloudProject: getEnv("GOOGLE_CLOUD_PROJECT", ""),

		MerchantsPath: getEnv("MERCHANTS_PATH", ""),

		SimilarityThreshold: getEnvInt("SIMILARITY_THRESHOLD", 80),

		LookupTimeout:     getEnvDuration("LOOKUP_TIMEOUT", 10*time.Second),
		LookupMinInterval: getEnvDuration("LOOKUP_MIN_INTERVAL", 2*time.Second),
		LookupMaxWait:     getEnvDuration("LOOKUP_MAX_WAIT", 5*time.Second),
	}
}

// Validate checks the configuration and returns an error describing
// every problem found.
func (c *Config) Validate() error {
	var problems []string

	if _, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("PORT must be numeric, got %q", c.Port))
	}

	switch c.CacheBackend {
	case CacheBackendMemory, CacheBackendFile, CacheBackendFirestore:
	default:
		problems = append(problems, fmt.Sprintf("CACHE_BACKEND must be one of memory|file|firestore, got %q", c.CacheBackend))
	}
	if c.CacheBackend == CacheBackendFile && c.CachePath == "" {
		problems = append(problems, "CACHE_PATH is required with the file cache backend")
	}
	if c.CacheBackend == CacheBackendFirestore && c.GoogleCloudProject == "" {
		problems = append(problems, "GOOGLE_CLOUD_PROJECT is required with the firestore cache backend")
	}

	if c.SimilarityThreshold <= 0 || c.SimilarityThreshold > 100 {
		problems = append(problems, fmt.Sprintf("SIMILARITY_THRESHOLD must be in (0,100], got %d", c.SimilarityThreshold))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
