// ABOUTME: Centralized configuration for the retrieval engine
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/adrg/xdg"
)

// Config holds all settings for chunking, embedding, and the index.
type Config struct {
	// Directory layout
	DataDir      string
	DocumentsDir string
	IndexDir     string

	// Chunking
	ChunkSize int

	// Retrieval
	TopK int

	// Embedding provider
	OpenAIKey       string
	OpenAIBaseURL   string
	EmbeddingModel  string
	VectorDimension int
	Timeout         time.Duration
	MaxRetries      int
	RetryDelay      time.Duration
}

// Load reads configuration from environment variables. The data
// directory defaults to the XDG data home; documents and the
// persisted index live underneath it unless overridden.
func Load() (*Config, error) {
	dataDir := getEnv("KENSAKU_DATA_DIR", "")
	if dataDir == "" {
		dataHome := os.Getenv("XDG_DATA_HOME")
		if dataHome == "" {
			dataHome = xdg.DataHome
		}
		dataDir = filepath.Join(dataHome, "kensaku")
	}

	cfg := &Config{
		DataDir:         dataDir,
		DocumentsDir:    getEnv("KENSAKU_DOCUMENTS_DIR", filepath.Join(dataDir, "documents")),
		IndexDir:        getEnv("KENSAKU_INDEX_DIR", filepath.Join(dataDir, "index")),
		ChunkSize:       getEnvInt("KENSAKU_CHUNK_SIZE", 500),
		TopK:            getEnvInt("KENSAKU_TOP_K", 3),
		OpenAIKey:       os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:   os.Getenv("OPENAI_BASE_URL"),
		EmbeddingModel:  getEnv("KENSAKU_EMBEDDING_MODEL", "text-embedding-3-small"),
		VectorDimension: getEnvInt("KENSAKU_VECTOR_DIMENSION", 384),
		Timeout:         getEnvDuration("KENSAKU_EMBED_TIMEOUT", 30*time.Second),
		MaxRetries:      getEnvInt("KENSAKU_EMBED_MAX_RETRIES", 3),
		RetryDelay:      getEnvDuration("KENSAKU_EMBED_RETRY_DELAY", 2*time.Second),
	}

	return cfg, cfg.Validate()
}

// Validate rejects settings the engine cannot run with.
func (c *Config) Validate() error {
	if c.ChunkSize <= 0 {
		return fmt.Errorf("KENSAKU_CHUNK_SIZE must be positive, got %d", c.ChunkSize)
	}
	if c.TopK <= 0 {
		return fmt.Errorf("KENSAKU_TOP_K must be positive, got %d", c.TopK)
	}
	if c.VectorDimension <= 0 {
		return fmt.Errorf("KENSAKU_VECTOR_DIMENSION must be positive, got %d", c.VectorDimension)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("KENSAKU_EMBED_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	return nil
}

// EnsureDirs creates the data, documents, and index directories.
func (c *Config) EnsureDirs() error {
	for _, dir := range []string{c.DataDir, c.DocumentsDir, c.IndexDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	return nil
}

// Helper functions

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
