// ABOUTME: MCP tool handler implementations for the retrieval server
// ABOUTME: Thin adapters from tool arguments to the core service
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/kensakuhq/kensaku/internal/core"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	service *core.Service
}

// IngestDocument handles the ingest_document tool
func (h *Handlers) IngestDocument(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path argument is required and must be a string"), nil
	}

	added, err := h.service.AddDocument(ctx, path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ingest failed: %v", err)), nil
	}

	response := map[string]interface{}{
		"path":         path,
		"chunks_added": added,
		"total_chunks": h.service.Stats().TotalChunks,
	}
	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}

// SearchDocuments handles the search_documents tool
func (h *Handlers) SearchDocuments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}

	limit := request.GetInt("limit", core.DefaultTopK)

	results, language, err := h.service.Ask(ctx, query, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	passages := make([]map[string]interface{}, 0, len(results))
	for _, res := range results {
		passages = append(passages, map[string]interface{}{
			"text":           res.Chunk.Text,
			"source_id":      res.Chunk.SourceID,
			"language":       string(res.Chunk.Language),
			"sequence_index": res.Chunk.SequenceIndex,
			"score":          res.Score,
		})
	}

	response := map[string]interface{}{
		"query":    query,
		"language": string(language),
		"results":  passages,
		"context":  core.FormatContext(results, language),
	}
	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}

// IndexStats handles the index_stats tool
func (h *Handlers) IndexStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats := h.service.Stats()

	response := map[string]interface{}{
		"total_chunks": stats.TotalChunks,
		"by_language":  stats.ByLanguage,
		"by_source":    stats.BySource,
		"ready":        h.service.Ready(),
	}
	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}
