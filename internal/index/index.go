// ABOUTME: In-memory vector index over parallel chunk/embedding arrays
// ABOUTME: Brute-force cosine search with 2k over-fetch and language filtering
package index

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/kensakuhq/kensaku/internal/models"
)

// DefaultDimension is the embedding space dimension used throughout.
const DefaultDimension = 384

// Encoder turns a batch of texts into embedding vectors, one per
// input, in input order.
type Encoder interface {
	Encode(ctx context.Context, texts []string) ([][]float32, error)
}

// Index holds L2-normalized embeddings and their chunks in parallel
// arrays; position is the only join key. Build and Load replace both
// arrays together under the write lock, so readers always observe a
// complete, consistent snapshot.
type Index struct {
	mu        sync.RWMutex
	dimension int
	vectors   [][]float32
	chunks    []models.Chunk
}

// New creates an empty, not-ready index for the given dimension.
// Non-positive dimensions fall back to DefaultDimension.
func New(dimension int) *Index {
	if dimension <= 0 {
		dimension = DefaultDimension
	}
	return &Index{dimension: dimension}
}

// Dimension returns the embedding space dimension.
func (ix *Index) Dimension() int { return ix.dimension }

// Ready reports whether the index has been built or loaded.
func (ix *Index) Ready() bool {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.vectors) > 0
}

// Count returns the number of indexed chunks.
func (ix *Index) Count() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.chunks)
}

// Chunks returns a copy of the indexed chunk records in insertion
// order. Used for stats and for full rebuilds on document add.
func (ix *Index) Chunks() []models.Chunk {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	out := make([]models.Chunk, len(ix.chunks))
	copy(out, ix.chunks)
	return out
}

// Stats summarizes the indexed corpus by language and source.
func (ix *Index) Stats() models.IndexStats {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	stats := models.IndexStats{
		TotalChunks: len(ix.chunks),
		ByLanguage:  make(map[models.Language]int),
		BySource:    make(map[string]int),
	}
	for _, c := range ix.chunks {
		stats.ByLanguage[c.Language]++
		stats.BySource[c.SourceID]++
	}
	return stats
}

// Build embeds all chunks in one batched call, L2-normalizes the
// vectors, and atomically replaces the index state. An empty chunk
// list is a no-op that leaves the index not ready. The rebuild is
// exclusive: searches block until the swap completes.
func (ix *Index) Build(ctx context.Context, chunks []models.Chunk, enc Encoder) error {
	if len(chunks) == 0 {
		return nil
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("chunk %d (%s): %w", i, c.SourceID, err)
		}
		texts[i] = c.Text
	}

	vectors, err := enc.Encode(ctx, texts)
	if err != nil {
		return fmt.Errorf("embedding %d chunks: %w", len(chunks), err)
	}
	if len(vectors) != len(chunks) {
		return fmt.Errorf("encoder returned %d vectors for %d chunks", len(vectors), len(chunks))
	}
	for i, v := range vectors {
		if len(v) != ix.dimension {
			return fmt.Errorf("vector %d has dimension %d, index expects %d: %w",
				i, len(v), ix.dimension, ErrDimensionMismatch)
		}
		normalizeL2(v)
	}

	stored := make([]models.Chunk, len(chunks))
	copy(stored, chunks)

	ix.mu.Lock()
	ix.vectors = vectors
	ix.chunks = stored
	ix.mu.Unlock()
	return nil
}

// Search ranks every stored embedding by cosine similarity against
// the query vector and returns up to k results. When filter is a
// valid language, it over-fetches 2k ranked candidates and walks them
// discarding non-matching languages, so imbalanced corpora may return
// fewer than k results. Ties break by ascending insertion position.
// Searching an index that is not ready returns an empty slice, not an
// error.
func (ix *Index) Search(queryVector []float32, k int, filter models.Language) ([]models.SearchResult, error) {
	if k <= 0 {
		return nil, nil
	}

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	if len(ix.vectors) == 0 {
		return nil, nil
	}
	if len(queryVector) != ix.dimension {
		return nil, fmt.Errorf("query has dimension %d, index expects %d: %w",
			len(queryVector), ix.dimension, ErrDimensionMismatch)
	}

	// Callers should pass a normalized query; normalize defensively so
	// scores stay true cosine values either way.
	query := make([]float32, len(queryVector))
	copy(query, queryVector)
	normalizeL2(query)

	type scored struct {
		pos   int
		score float64
	}
	all := make([]scored, len(ix.vectors))
	for i, v := range ix.vectors {
		all[i] = scored{pos: i, score: dot(query, v)}
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].score != all[j].score {
			return all[i].score > all[j].score
		}
		return all[i].pos < all[j].pos
	})

	// Over-fetch 2k candidates before filtering; documented tunable,
	// not an exact-k guarantee.
	limit := 2 * k
	if limit > len(all) {
		limit = len(all)
	}
	candidates := all[:limit]

	results := make([]models.SearchResult, 0, k)
	for _, cand := range candidates {
		chunk := ix.chunks[cand.pos]
		if filter.Valid() && chunk.Language != filter {
			continue
		}
		results = append(results, models.SearchResult{Chunk: chunk, Score: cand.score})
		if len(results) == k {
			break
		}
	}
	return results, nil
}

// normalizeL2 scales v to unit length in place. Zero vectors are left
// untouched.
func normalizeL2(v []float32) {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return
	}
	norm := math.Sqrt(sum)
	for i := range v {
		v[i] = float32(float64(v[i]) / norm)
	}
}

// dot accumulates in float64 so rankings are stable across runs.
func dot(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
