// ABOUTME: Search result and index statistics types
// ABOUTME: Score is cosine similarity of L2-normalized vectors, higher is better
package models

// SearchResult pairs a chunk with its similarity score. Score is the
// inner product of L2-normalized vectors, so it lands in [-1, 1].
type SearchResult struct {
	Chunk Chunk   `json:"chunk"`
	Score float64 `json:"score"`
}

// IndexStats summarizes the contents of a built index.
type IndexStats struct {
	TotalChunks int              `json:"total_chunks"`
	ByLanguage  map[Language]int `json:"by_language"`
	BySource    map[string]int   `json:"by_source"`
}
