package mcptools

import (
	"context"

	"github.com/chris-regnier/calnotes/internal/note"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// GetNoteHandler returns the handler function for the get_note MCP tool.
func GetNoteHandler(store NoteStore) func(ctx context.Context, req *mcp.CallToolRequest, input NoteInput) (*mcp.CallToolResult, NoteOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input NoteInput) (*mcp.CallToolResult, NoteOutput, error) {
		d, err := note.ParseDate(input.Date)
		if err != nil {
			return nil, NoteOutput{}, err
		}
		text, ok := store.Get(d)
		return nil, NoteOutput{Date: d.String(), Exists: ok, Text: text}, nil
	}
}

// SetNoteHandler returns the handler function for the set_note MCP tool.
func SetNoteHandler(store NoteStore, dataDir string) func(ctx context.Context, req *mcp.CallToolRequest, input SetNoteInput) (*mcp.CallToolResult, NoteOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input SetNoteInput) (*mcp.CallToolResult, NoteOutput, error) {
		d, err := note.ParseDate(input.Date)
		if err != nil {
			return nil, NoteOutput{}, err
		}
		if err := store.Set(d, input.Text); err != nil {
			return nil, NoteOutput{}, err
		}
		if err := persist(store, dataDir, "saving note for "+d.String()); err != nil {
			return nil, NoteOutput{}, err
		}
		text, ok := store.Get(d)
		return nil, NoteOutput{Date: d.String(), Exists: ok, Text: text}, nil
	}
}

// DeleteNotesHandler returns the handler function for the delete_notes MCP tool.
func DeleteNotesHandler(store NoteStore, dataDir string) func(ctx context.Context, req *mcp.CallToolRequest, input DeleteNotesInput) (*mcp.CallToolResult, DeleteNotesOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input DeleteNotesInput) (*mcp.CallToolResult, DeleteNotesOutput, error) {
		dates := make([]note.Date, len(input.Dates))
		for i, s := range input.Dates {
			d, err := note.ParseDate(s)
			if err != nil {
				return nil, DeleteNotesOutput{}, err
			}
			dates[i] = d
		}
		removed, err := store.DeleteMany(dates)
		if err != nil {
			return nil, DeleteNotesOutput{}, err
		}
		if removed > 0 {
			if err := persist(store, dataDir, "deleting notes"); err != nil {
				return nil, DeleteNotesOutput{}, err
			}
		}
		return nil, DeleteNotesOutput{Removed: removed}, nil
	}
}
