package mcptools

// NoteInput is the input schema for the get_note MCP tool.
type NoteInput struct {
	Date string `json:"date" jsonschema-description:"Day as YYYY-MM-DD"`
}

// NoteOutput is the output schema for get_note and set_note.
type NoteOutput struct {
	Date   string `json:"date"`
	Exists bool   `json:"exists"`
	Text   string `json:"text"`
}

// SetNoteInput is the input schema for the set_note MCP tool.
type SetNoteInput struct {
	Date string `json:"date" jsonschema-description:"Day as YYYY-MM-DD"`
	Text string `json:"text" jsonschema-description:"Note text; empty or whitespace deletes the note"`
}

// DeleteNotesInput is the input schema for the delete_notes MCP tool.
type DeleteNotesInput struct {
	Dates []string `json:"dates" jsonschema-description:"Days as YYYY-MM-DD; nothing is deleted if any is invalid"`
}

// DeleteNotesOutput is the output schema for the delete_notes MCP tool.
type DeleteNotesOutput struct {
	Removed int `json:"removed"`
}

// MonthSummaryInput is the input schema for the month_summary MCP tool.
type MonthSummaryInput struct {
	Year  int `json:"year" jsonschema-description:"Year, 1 to 9999"`
	Month int `json:"month" jsonschema-description:"Month, 1 to 12"`
}

// MonthSummaryOutput is the output schema for the month_summary MCP tool.
type MonthSummaryOutput struct {
	Year  int    `json:"year"`
	Month int    `json:"month"`
	Name  string `json:"name"`
	Count int    `json:"count"`
	Days  []int  `json:"days"`
}

// RecentNotesInput is the input schema for the recent_notes MCP tool.
type RecentNotesInput struct {
	Today string `json:"today,omitempty" jsonschema-description:"Reference day as YYYY-MM-DD; defaults to the local date"`
	Limit int    `json:"limit,omitempty" jsonschema-description:"Maximum number of notes to return"`
}

// RecentNotesOutput is the output schema for the recent_notes MCP tool.
type RecentNotesOutput struct {
	Notes []RecentResult `json:"notes"`
}

// RecentResult is a note with its distance from the reference day.
type RecentResult struct {
	Date      string `json:"date"`
	Preview   string `json:"preview"`
	DaysAway  int    `json:"days_away"`
	Countdown string `json:"countdown"`
}

// SearchInput is the input schema for the search_notes MCP tool.
type SearchInput struct {
	Query string `json:"query" jsonschema-description:"Text to fuzzy match against the date and note text"`
	Limit int    `json:"limit,omitempty" jsonschema-description:"Maximum number of results to return"`
}

// SearchOutput is the output schema for the search_notes MCP tool.
type SearchOutput struct {
	Notes []NoteResult `json:"notes"`
}

// NoteResult is a search hit.
type NoteResult struct {
	Date    string `json:"date"`
	Preview string `json:"preview"`
	Score   int    `json:"score"`
}
