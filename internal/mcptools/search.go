package mcptools

import (
	"context"

	"github.com/chris-regnier/calnotes/internal/search"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// SearchHandler returns the handler function for the search_notes MCP tool.
func SearchHandler(store NoteStore) func(ctx context.Context, req *mcp.CallToolRequest, input SearchInput) (*mcp.CallToolResult, SearchOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input SearchInput) (*mcp.CallToolResult, SearchOutput, error) {
		limit := input.Limit
		if limit <= 0 {
			limit = 10
		}

		matches := search.Notes(store.Notes(), input.Query, limit)
		results := make([]NoteResult, len(matches))
		for i, m := range matches {
			results[i] = NoteResult{
				Date:    m.Note.Date.String(),
				Preview: m.Note.Preview(previewLength),
				Score:   m.Score,
			}
		}
		return nil, SearchOutput{Notes: results}, nil
	}
}
