package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port == "" {
		t.Error("Port default missing")
	}
	if cfg.CacheBackend != CacheBackendFile {
		t.Errorf("CacheBackend = %q, want %q", cfg.CacheBackend, CacheBackendFile)
	}
	if cfg.SimilarityThreshold != 80 {
		t.Errorf("SimilarityThreshold = %d, want 80", cfg.SimilarityThreshold)
	}
	if cfg.LookupMinInterval <= 0 {
		t.Error("LookupMinInterval default must be positive")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config must validate, got %v", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("CACHE_BACKEND", "memory")
	t.Setenv("SIMILARITY_THRESHOLD", "90")
	t.Setenv("LOOKUP_TIMEOUT", "3s")

	cfg := Load()
	if cfg.Port != "9000" {
		t.Errorf("Port = %q, want 9000", cfg.Port)
	}
	if cfg.CacheBackend != CacheBackendMemory {
		t.Errorf("CacheBackend = %q, want memory", cfg.CacheBackend)
	}
	if cfg.SimilarityThreshold != 90 {
		t.Errorf("SimilarityThreshold = %d, want 90", cfg.SimilarityThreshold)
	}
	if cfg.LookupTimeout != 3*time.Second {
		t.Errorf("LookupTimeout = %v, want 3s", cfg.LookupTimeout)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"bad port", func(c *Config) { c.Port = "http" }, "PORT"},
		{"bad backend", func(c *Config) { c.CacheBackend = "redis" }, "CACHE_BACKEND"},
		{"file backend without path", func(c *Config) { c.CacheBackend = CacheBackendFile; c.CachePath = "" }, "CACHE_PATH"},
		{"firestore without project", func(c *Config) { c.CacheBackend = CacheBackendFirestore }, "GOOGLE_CLOUD_PROJECT"},
		{"threshold out of range", func(c *Config) { c.SimilarityThreshold = 101 }, "SIMILARITY_THRESHOLD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Load()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}
