package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/chris-regnier/calnotes/internal/note"
	"github.com/chris-regnier/calnotes/internal/search"
	"github.com/chris-regnier/calnotes/internal/storage"
)

// FormatNoteSaved formats a save confirmation message.
func FormatNoteSaved(w io.Writer, d note.Date) {
	fmt.Fprintf(w, "Saved note for %s.\n", d)
}

// FormatNoteCleared reports that setting empty text removed a note.
func FormatNoteCleared(w io.Writer, d note.Date) {
	fmt.Fprintf(w, "Cleared note for %s.\n", d)
}

// FormatNoChanges formats a "no changes" message.
func FormatNoChanges(w io.Writer, d note.Date) {
	fmt.Fprintf(w, "No changes to the note for %s.\n", d)
}

// FormatNoNote reports a day without a note.
func FormatNoNote(w io.Writer, d note.Date) {
	fmt.Fprintf(w, "No note for %s.\n", d)
}

// FormatDeleted reports a mass delete.
func FormatDeleted(w io.Writer, removed int) {
	switch removed {
	case 0:
		fmt.Fprintln(w, "No notes deleted.")
	case 1:
		fmt.Fprintln(w, "Deleted 1 note.")
	default:
		fmt.Fprintf(w, "Deleted %d notes.\n", removed)
	}
}

// FormatNoteFull formats a note with its date header, rendering the text as
// markdown in the given glamour style.
func FormatNoteFull(w io.Writer, n note.Note, markdownStyle string) {
	fmt.Fprintf(w, "%s (%s)\n\n", n.Date, n.Date.Time(time.Local).Weekday())
	fmt.Fprintln(w, RenderNote(n.Text, 80, markdownStyle))
}

// FormatMonthSummaries lists months with their note counts and noted days.
// The month containing today is marked with "*".
func FormatMonthSummaries(w io.Writer, months []storage.MonthSummary, today note.Date) {
	for _, m := range months {
		marker := " "
		if m.Year == today.Year && m.Month == today.Month {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %-9s %d  %s", marker, m.Month, m.Year, countLabel(m.Count))
		if len(m.Days) > 0 {
			days := make([]string, len(m.Days))
			for i, d := range m.Days {
				days[i] = fmt.Sprint(d)
			}
			fmt.Fprintf(w, "  [%s]", strings.Join(days, " "))
		}
		fmt.Fprintln(w)
	}
}

// FormatRecent lists the notes nearest today with their countdowns.
func FormatRecent(w io.Writer, recent []storage.RecentNote) {
	if len(recent) == 0 {
		fmt.Fprintln(w, "No notes found.")
		return
	}
	for _, r := range recent {
		fmt.Fprintf(w, "%s  %-22s  %s\n", r.Date, r.Countdown, r.Preview(60))
	}
}

// FormatNoteList formats notes one per line.
func FormatNoteList(w io.Writer, notes []note.Note) {
	if len(notes) == 0 {
		fmt.Fprintln(w, "No notes found.")
		return
	}
	for _, n := range notes {
		fmt.Fprintf(w, "%s  %s\n", n.Date, n.Preview(70))
	}
}

// FormatSearchResults formats fuzzy matches, best first.
func FormatSearchResults(w io.Writer, matches []search.Match) {
	notes := make([]note.Note, len(matches))
	for i, m := range matches {
		notes[i] = m.Note
	}
	FormatNoteList(w, notes)
}

func countLabel(n int) string {
	if n == 1 {
		return "1 note"
	}
	return fmt.Sprintf("%d notes", n)
}

// FormatJSON writes any value as JSON to the writer.
func FormatJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// NoteJSON is the JSON representation of a single day.
type NoteJSON struct {
	Date   string `json:"date"`
	Exists bool   `json:"exists"`
	Text   string `json:"text"`
}

// ToNoteJSON builds the JSON view of a day.
func ToNoteJSON(d note.Date, text string, exists bool) NoteJSON {
	return NoteJSON{Date: d.String(), Exists: exists, Text: text}
}

// DeleteResult is the JSON representation of a mass delete.
type DeleteResult struct {
	Dates   []string `json:"dates"`
	Removed int      `json:"removed"`
}

// MonthJSON is the JSON representation of a month summary.
type MonthJSON struct {
	Year  int    `json:"year"`
	Month int    `json:"month"`
	Name  string `json:"name"`
	Count int    `json:"count"`
	Days  []int  `json:"days"`
}

// ToMonthJSON converts month summaries for JSON output.
func ToMonthJSON(months []storage.MonthSummary) []MonthJSON {
	out := make([]MonthJSON, len(months))
	for i, m := range months {
		out[i] = MonthJSON{
			Year:  m.Year,
			Month: int(m.Month),
			Name:  m.Month.String(),
			Count: m.Count,
			Days:  m.Days,
		}
	}
	return out
}

// RecentJSON is the JSON representation of a note near today.
type RecentJSON struct {
	Date      string `json:"date"`
	Text      string `json:"text"`
	DaysAway  int    `json:"days_away"`
	Countdown string `json:"countdown"`
}

// ToRecentJSON converts recent notes for JSON output.
func ToRecentJSON(recent []storage.RecentNote) []RecentJSON {
	out := make([]RecentJSON, len(recent))
	for i, r := range recent {
		out[i] = RecentJSON{
			Date:      r.Date.String(),
			Text:      r.Text,
			DaysAway:  r.DaysAway,
			Countdown: r.Countdown,
		}
	}
	return out
}
