package search

import (
	"testing"
	"time"

	"github.com/chris-regnier/calnotes/internal/note"
)

func sampleNotes() []note.Note {
	return []note.Note{
		{Date: note.MustDate(2024, time.August, 4), Text: "Doctor appointment"},
		{Date: note.MustDate(2024, time.August, 10), Text: "Dentist\nbring insurance card"},
		{Date: note.MustDate(2024, time.December, 25), Text: "Christmas dinner"},
	}
}

func TestNotesFindsByText(t *testing.T) {
	matches := Notes(sampleNotes(), "dentist", 0)
	if len(matches) == 0 {
		t.Fatal("expected a match for 'dentist'")
	}
	if got := matches[0].Note.Date; got != note.MustDate(2024, time.August, 10) {
		t.Errorf("best match = %s, want 2024-08-10", got)
	}
}

func TestNotesFindsAcrossLines(t *testing.T) {
	matches := Notes(sampleNotes(), "insurance", 0)
	if len(matches) != 1 || matches[0].Note.Date.Day != 10 {
		t.Errorf("matches = %+v", matches)
	}
}

func TestNotesFindsByDate(t *testing.T) {
	matches := Notes(sampleNotes(), "2024-12", 0)
	if len(matches) == 0 || matches[0].Note.Date.Month != time.December {
		t.Errorf("matches = %+v", matches)
	}
}

func TestNotesBlankQuery(t *testing.T) {
	if matches := Notes(sampleNotes(), "   ", 0); matches != nil {
		t.Errorf("expected no matches, got %+v", matches)
	}
}

func TestNotesNoMatch(t *testing.T) {
	if matches := Notes(sampleNotes(), "zzzqqq", 0); len(matches) != 0 {
		t.Errorf("expected no matches, got %+v", matches)
	}
}

func TestNotesLimit(t *testing.T) {
	// every sample note contains "2024"
	matches := Notes(sampleNotes(), "2024", 2)
	if len(matches) != 2 {
		t.Errorf("len = %d, want 2", len(matches))
	}
}
