package storage

import (
	"errors"
	"sort"
	"time"

	"github.com/chris-regnier/calnotes/internal/note"
)

// Sentinel errors for storage operations.
var (
	ErrCorrupt     = errors.New("corrupt notes store")
	ErrPersistence = errors.New("persistence error")
	ErrInvalidDate = note.ErrInvalidDate
)

// Collection maps each date to its note text. Empty text is never stored.
type Collection map[note.Date]string

// Clone returns an independent copy.
func (c Collection) Clone() Collection {
	out := make(Collection, len(c))
	for d, text := range c {
		out[d] = text
	}
	return out
}

// Notes returns the collection as notes sorted by date.
func (c Collection) Notes() []note.Note {
	notes := make([]note.Note, 0, len(c))
	for d, text := range c {
		notes = append(notes, note.Note{Date: d, Text: text})
	}
	sort.Slice(notes, func(i, j int) bool {
		return notes[i].Date.Before(notes[j].Date)
	})
	return notes
}

// Backend persists a whole collection. Load on a missing store returns an
// empty collection and no error.
type Backend interface {
	Load() (Collection, error)
	Save(c Collection) error
	Close() error
}

// MonthSummary is the derived note count and noted days for one month.
type MonthSummary struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Count int        `json:"count"`
	Days  []int      `json:"days"` // ascending
}

// HasDay reports whether day has a note.
func (m MonthSummary) HasDay(day int) bool {
	i := sort.SearchInts(m.Days, day)
	return i < len(m.Days) && m.Days[i] == day
}

// RecentNote is a note with its distance from a reference day.
type RecentNote struct {
	note.Note
	DaysAway  int    `json:"days_away"` // negative for past notes
	Countdown string `json:"countdown"`
}
