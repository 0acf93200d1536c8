package mcptools

import (
	"context"
	"time"

	"github.com/chris-regnier/calnotes/internal/note"
	"github.com/chris-regnier/calnotes/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NoteStore is the note store the tools read and mutate.
type NoteStore interface {
	Get(d note.Date) (string, bool)
	Set(d note.Date, text string) error
	DeleteMany(dates []note.Date) (int, error)
	MonthSummary(year int, month time.Month) (storage.MonthSummary, error)
	Recent(today note.Date, limit int) []storage.RecentNote
	Notes() []note.Note
	Save() error
}

// NewNotesMCPServer creates an in-memory MCP server exposing the note tools.
// Returns the server and a client transport for connecting to it.
func NewNotesMCPServer(store NoteStore, dataDir string) (*mcp.Server, mcp.Transport) {
	clientTransport, serverTransport := mcp.NewInMemoryTransports()

	server := CreateMCPServer(store, dataDir)

	go func() {
		_, _ = server.Connect(context.Background(), serverTransport, nil)
	}()

	return server, clientTransport
}

// CreateMCPServer creates an MCP server with registered note tools.
// dataDir is used for prompt cache invalidation after writes; pass "" to skip.
func CreateMCPServer(store NoteStore, dataDir string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "calnotes",
		Version: "1.0.0",
	}, nil)

	// Read tools
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_note",
		Description: "Get the note for a calendar day (YYYY-MM-DD)",
	}, GetNoteHandler(store))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "month_summary",
		Description: "Count the notes in a month and list the days that have one",
	}, MonthSummaryHandler(store))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "recent_notes",
		Description: "List the notes closest to today, with countdowns",
	}, RecentNotesHandler(store))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_notes",
		Description: "Fuzzy search notes by date and text",
	}, SearchHandler(store))

	// Write tools
	mcp.AddTool(server, &mcp.Tool{
		Name:        "set_note",
		Description: "Write the note for a day; empty text deletes it. Saves immediately.",
	}, SetNoteHandler(store, dataDir))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_notes",
		Description: "Delete the notes for several days at once. Saves immediately.",
	}, DeleteNotesHandler(store, dataDir))

	return server
}
