// ABOUTME: Tests for environment-driven configuration
// ABOUTME: Verifies defaults, overrides, and validation bounds

package config

import (
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.ChunkSize != 500 {
		t.Errorf("ChunkSize = %d, want 500", cfg.ChunkSize)
	}
	if cfg.TopK != 3 {
		t.Errorf("TopK = %d, want 3", cfg.TopK)
	}
	if cfg.VectorDimension != 384 {
		t.Errorf("VectorDimension = %d, want 384", cfg.VectorDimension)
	}
	if cfg.EmbeddingModel != "text-embedding-3-small" {
		t.Errorf("EmbeddingModel = %q", cfg.EmbeddingModel)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Timeout)
	}
	if cfg.DocumentsDir != filepath.Join(cfg.DataDir, "documents") {
		t.Errorf("DocumentsDir = %q, want under DataDir", cfg.DocumentsDir)
	}
	if cfg.IndexDir != filepath.Join(cfg.DataDir, "index") {
		t.Errorf("IndexDir = %q, want under DataDir", cfg.IndexDir)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("KENSAKU_DATA_DIR", "/srv/kensaku")
	t.Setenv("KENSAKU_DOCUMENTS_DIR", "/mnt/docs")
	t.Setenv("KENSAKU_CHUNK_SIZE", "200")
	t.Setenv("KENSAKU_TOP_K", "10")
	t.Setenv("KENSAKU_EMBED_TIMEOUT", "5s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.DataDir != "/srv/kensaku" {
		t.Errorf("DataDir = %q", cfg.DataDir)
	}
	if cfg.DocumentsDir != "/mnt/docs" {
		t.Errorf("DocumentsDir = %q, override ignored", cfg.DocumentsDir)
	}
	if cfg.IndexDir != filepath.Join("/srv/kensaku", "index") {
		t.Errorf("IndexDir = %q, want derived from DataDir", cfg.IndexDir)
	}
	if cfg.ChunkSize != 200 {
		t.Errorf("ChunkSize = %d, want 200", cfg.ChunkSize)
	}
	if cfg.TopK != 10 {
		t.Errorf("TopK = %d, want 10", cfg.TopK)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", cfg.Timeout)
	}
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv("KENSAKU_CHUNK_SIZE", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ChunkSize != 500 {
		t.Errorf("ChunkSize = %d, want default 500 on parse failure", cfg.ChunkSize)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{ChunkSize: 500, TopK: 3, VectorDimension: 384, MaxRetries: 3}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"zero chunk size", func(c *Config) { c.ChunkSize = 0 }, true},
		{"negative top-k", func(c *Config) { c.TopK = -1 }, true},
		{"zero dimension", func(c *Config) { c.VectorDimension = 0 }, true},
		{"retries too high", func(c *Config) { c.MaxRetries = 11 }, true},
		{"negative retries", func(c *Config) { c.MaxRetries = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
