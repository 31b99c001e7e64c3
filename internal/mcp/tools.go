// ABOUTME: MCP tool definitions and registration for the retrieval server
// ABOUTME: Defines JSON schemas for the ingest, search, and stats tools
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/kensakuhq/kensaku/internal/core"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, service *core.Service) *Handlers {
	handlers := &Handlers{service: service}

	// 1. ingest_document - Add a document file to the index
	server.AddTool(mcp.Tool{
		Name:        "ingest_document",
		Description: "Add a document file (.txt or .md) to the search index. The document is chunked, embedded, and persisted; the index is rebuilt to include it.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Filesystem path of the document to ingest",
				},
			},
			Required: []string{"path"},
		},
	}, handlers.IngestDocument)

	// 2. search_documents - Language-filtered semantic search
	server.AddTool(mcp.Tool{
		Name:        "search_documents",
		Description: "Search the indexed documents by semantic similarity. The query language (English or Japanese) is detected automatically and only passages in that language are returned.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Natural-language search query",
				},
				"limit": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of passages to return (default: 3)",
					"default":     core.DefaultTopK,
				},
			},
			Required: []string{"query"},
		},
	}, handlers.SearchDocuments)

	// 3. index_stats - Corpus summary
	server.AddTool(mcp.Tool{
		Name:        "index_stats",
		Description: "Get index statistics: total chunk count and breakdowns by language and source document.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.IndexStats)

	return handlers
}
