// ABOUTME: Retriever runs language-aware top-k search over the vector index
// ABOUTME: Detects query language, embeds the query, formats result context
package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/kensakuhq/kensaku/internal/index"
	"github.com/kensakuhq/kensaku/internal/lang"
	"github.com/kensakuhq/kensaku/internal/models"
)

// DefaultTopK is the default number of results per query.
const DefaultTopK = 3

// Retriever answers queries against a built index. The detected query
// language doubles as the search filter, so English queries pull
// English passages and Japanese queries pull Japanese ones.
type Retriever struct {
	index    *index.Index
	encoder  index.Encoder
	detector lang.Detector
}

// NewRetriever wires a retriever over the given index and encoder.
func NewRetriever(ix *index.Index, enc index.Encoder, det lang.Detector) *Retriever {
	return &Retriever{index: ix, encoder: enc, detector: det}
}

// Retrieve embeds the query and returns up to k chunks in its detected
// language, best first. A blank query or a non-positive k yields no
// results and no error, as does an index with nothing in it.
func (r *Retriever) Retrieve(ctx context.Context, query string, k int) ([]models.SearchResult, models.Language, error) {
	query = strings.TrimSpace(query)
	language := r.detector.Detect(query)
	if query == "" || k <= 0 {
		return nil, language, nil
	}

	vectors, err := r.encoder.Encode(ctx, []string{query})
	if err != nil {
		return nil, language, fmt.Errorf("embedding query: %w", err)
	}
	if len(vectors) != 1 {
		return nil, language, fmt.Errorf("got %d query embeddings, want 1", len(vectors))
	}

	results, err := r.index.Search(vectors[0], k, language)
	if err != nil {
		return nil, language, err
	}
	return results, language, nil
}

// FormatContext renders results as numbered, score-annotated blocks.
// With no results it returns a not-found sentinel in the query's
// language.
func FormatContext(results []models.SearchResult, language models.Language) string {
	if len(results) == 0 {
		if language == models.LanguageJapanese {
			return "関連する情報が見つかりませんでした。"
		}
		return "No relevant information found."
	}

	blocks := make([]string, len(results))
	for i, res := range results {
		blocks[i] = fmt.Sprintf("[Document %d: %s (Score: %.3f)]\n%s",
			i+1, res.Chunk.SourceID, res.Score, res.Chunk.Text)
	}
	return strings.Join(blocks, "\n\n")
}
