package mcptools

import (
	"context"
	"time"

	"github.com/chris-regnier/calnotes/internal/note"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// MonthSummaryHandler returns the handler function for the month_summary MCP tool.
func MonthSummaryHandler(store NoteStore) func(ctx context.Context, req *mcp.CallToolRequest, input MonthSummaryInput) (*mcp.CallToolResult, MonthSummaryOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input MonthSummaryInput) (*mcp.CallToolResult, MonthSummaryOutput, error) {
		s, err := store.MonthSummary(input.Year, time.Month(input.Month))
		if err != nil {
			return nil, MonthSummaryOutput{}, err
		}
		return nil, MonthSummaryOutput{
			Year:  s.Year,
			Month: int(s.Month),
			Name:  s.Month.String(),
			Count: s.Count,
			Days:  s.Days,
		}, nil
	}
}

// RecentNotesHandler returns the handler function for the recent_notes MCP tool.
func RecentNotesHandler(store NoteStore) func(ctx context.Context, req *mcp.CallToolRequest, input RecentNotesInput) (*mcp.CallToolResult, RecentNotesOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input RecentNotesInput) (*mcp.CallToolResult, RecentNotesOutput, error) {
		today := note.Today()
		if input.Today != "" {
			d, err := note.ParseDate(input.Today)
			if err != nil {
				return nil, RecentNotesOutput{}, err
			}
			today = d
		}
		limit := input.Limit
		if limit <= 0 {
			limit = 5
		}

		recent := store.Recent(today, limit)
		results := make([]RecentResult, len(recent))
		for i, r := range recent {
			results[i] = RecentResult{
				Date:      r.Date.String(),
				Preview:   r.Preview(previewLength),
				DaysAway:  r.DaysAway,
				Countdown: r.Countdown,
			}
		}
		return nil, RecentNotesOutput{Notes: results}, nil
	}
}
