// ABOUTME: Embedding provider backed by an OpenAI-compatible API
// ABOUTME: Batched requests, retry with backoff, 384-dimension vectors
package embed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/kensakuhq/kensaku/internal/util"
)

// DefaultModel is the default embedding model. text-embedding-3-small
// supports requesting reduced output dimensions, which keeps the index
// at the 384-dimension layout.
const DefaultModel = string(openai.SmallEmbedding3)

// DefaultBatchSize bounds how many texts go into a single API call.
const DefaultBatchSize = 64

// Provider maps text to fixed-dimension vectors. Implementations must
// be deterministic for identical input and model version.
type Provider interface {
	Encode(ctx context.Context, texts []string) ([][]float32, error)
	Dimension() int
}

// Config holds settings for the OpenAI-backed provider.
type Config struct {
	APIKey     string
	BaseURL    string // empty means api.openai.com; any compatible endpoint works
	Model      string
	Dimension  int
	BatchSize  int
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
}

// OpenAIProvider implements Provider on the OpenAI embeddings API.
type OpenAIProvider struct {
	client     *openai.Client
	model      openai.EmbeddingModel
	dimension  int
	batchSize  int
	timeout    time.Duration
	maxRetries int
	retryDelay time.Duration
}

// NewOpenAIProvider creates a provider from cfg. The API key is
// required; everything else has working defaults.
func NewOpenAIProvider(cfg Config) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("embedding API key is required")
	}
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	dimension := cfg.Dimension
	if dimension <= 0 {
		dimension = 384
	}
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	retryDelay := cfg.RetryDelay
	if retryDelay <= 0 {
		retryDelay = 2 * time.Second
	}

	return &OpenAIProvider{
		client:     openai.NewClientWithConfig(clientCfg),
		model:      openai.EmbeddingModel(model),
		dimension:  dimension,
		batchSize:  batchSize,
		timeout:    timeout,
		maxRetries: cfg.MaxRetries,
		retryDelay: retryDelay,
	}, nil
}

// Dimension returns the embedding vector dimension.
func (p *OpenAIProvider) Dimension() int { return p.dimension }

// Encode embeds texts in input order, batching requests. Provider
// failures are not retried beyond the configured budget and propagate
// to the caller untouched.
func (p *OpenAIProvider) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	out := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += p.batchSize {
		end := start + p.batchSize
		if end > len(texts) {
			end = len(texts)
		}
		vectors, err := p.encodeBatch(ctx, texts[start:end])
		if err != nil {
			return nil, fmt.Errorf("embedding batch %d-%d: %w", start, end, err)
		}
		out = append(out, vectors...)
	}
	return out, nil
}

func (p *OpenAIProvider) encodeBatch(ctx context.Context, texts []string) ([][]float32, error) {
	var lastErr error

	for attempt := 0; attempt <= p.maxRetries; attempt++ {
		if attempt > 0 {
			delay := util.Backoff(p.retryDelay, attempt)
			slog.Debug("retrying embedding request", "attempt", attempt, "delay", delay)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		reqCtx, cancel := context.WithTimeout(ctx, p.timeout)
		resp, err := p.client.CreateEmbeddings(reqCtx, openai.EmbeddingRequestStrings{
			Input:      texts,
			Model:      p.model,
			Dimensions: p.dimension,
		})
		cancel()

		if err != nil {
			lastErr = err
			continue
		}
		if len(resp.Data) != len(texts) {
			lastErr = fmt.Errorf("got %d embeddings for %d inputs", len(resp.Data), len(texts))
			continue
		}

		// Restore input order by response index.
		vectors := make([][]float32, len(texts))
		for _, d := range resp.Data {
			if d.Index < 0 || d.Index >= len(vectors) {
				return nil, fmt.Errorf("embedding response index %d out of range", d.Index)
			}
			vectors[d.Index] = d.Embedding
		}
		for i, v := range vectors {
			if len(v) != p.dimension {
				return nil, fmt.Errorf("embedding %d has dimension %d, want %d", i, len(v), p.dimension)
			}
		}
		return vectors, nil
	}

	return nil, fmt.Errorf("after %d attempts: %w", p.maxRetries+1, lastErr)
}
