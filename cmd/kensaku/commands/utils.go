// ABOUTME: Shared utility functions for CLI commands
// ABOUTME: Service construction and small display helpers
package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/kensakuhq/kensaku/internal/config"
	"github.com/kensakuhq/kensaku/internal/core"
	"github.com/kensakuhq/kensaku/internal/embed"
	"github.com/kensakuhq/kensaku/internal/index"
	"github.com/kensakuhq/kensaku/internal/ingest"
	"github.com/kensakuhq/kensaku/internal/lang"
)

// newService loads configuration and wires the full engine: embedding
// provider, index, ingestion, retrieval. Called at the top of every
// RunE that needs the engine.
func newService() (*core.Service, *config.Config, error) {
	// Load .env for API keys
	_ = godotenv.Load()

	configureLogging()

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("loading configuration: %w", err)
	}
	if err := cfg.EnsureDirs(); err != nil {
		return nil, nil, err
	}

	provider, err := embed.NewOpenAIProvider(embed.Config{
		APIKey:     cfg.OpenAIKey,
		BaseURL:    cfg.OpenAIBaseURL,
		Model:      cfg.EmbeddingModel,
		Dimension:  cfg.VectorDimension,
		Timeout:    cfg.Timeout,
		MaxRetries: cfg.MaxRetries,
		RetryDelay: cfg.RetryDelay,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("initializing embedding provider: %w", err)
	}

	detector := lang.NewDetector()
	chunker := core.NewTextChunker(cfg.ChunkSize)
	processor := ingest.NewProcessor(chunker, detector)
	ix := index.New(cfg.VectorDimension)

	svc := core.NewService(cfg.DocumentsDir, cfg.IndexDir, ix, provider, processor, detector)
	return svc, cfg, nil
}

// configureLogging sets the slog default level from the global flags.
func configureLogging() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	if quiet {
		level = slog.LevelError
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// truncate shortens a string to maxLen runes, adding "..." if truncated
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// validatePositiveInt returns error if n is not positive
func validatePositiveInt(n int, name string) error {
	if n <= 0 {
		return fmt.Errorf("%s must be positive, got %d", name, n)
	}
	return nil
}
