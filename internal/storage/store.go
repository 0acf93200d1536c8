package storage

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/chris-regnier/calnotes/internal/note"
)

// Store is the in-memory note collection kept in step with a Backend.
// Mutations mark the store dirty until the next successful Save.
type Store struct {
	mu      sync.RWMutex
	saveMu  sync.Mutex // held from snapshot to backend write
	backend Backend
	notes   Collection
	dirty   bool
}

// NewStore returns an empty store over backend. Call Load to read existing notes.
func NewStore(backend Backend) *Store {
	return &Store{backend: backend, notes: make(Collection)}
}

// Open creates a store and loads it.
func Open(backend Backend) (*Store, error) {
	s := NewStore(backend)
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Load replaces the in-memory collection with the persisted one. On error the
// current collection is left untouched.
func (s *Store) Load() error {
	c, err := s.backend.Load()
	if err != nil {
		return err
	}
	if c == nil {
		c = make(Collection)
	}
	s.mu.Lock()
	s.notes = c
	s.dirty = false
	s.mu.Unlock()
	return nil
}

// Save writes the whole collection to the backend. On failure the in-memory
// notes are kept and the store stays dirty.
func (s *Store) Save() error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.RLock()
	snapshot := s.notes.Clone()
	s.mu.RUnlock()

	if err := s.backend.Save(snapshot); err != nil {
		return err
	}

	s.mu.Lock()
	// A mutation may have landed while the snapshot was being written.
	s.dirty = !sameCollection(snapshot, s.notes)
	s.mu.Unlock()
	return nil
}

// Close releases backend resources. Unsaved changes are not flushed.
func (s *Store) Close() error {
	return s.backend.Close()
}

// Dirty reports whether there are changes not yet saved.
func (s *Store) Dirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dirty
}

// Len returns the number of notes.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.notes)
}

// Get returns the note text for d. It never fails; an invalid or empty date
// yields "", false.
func (s *Store) Get(d note.Date) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	text, ok := s.notes[d]
	return text, ok
}

// Set stores text for d, replacing any existing note. Text that is empty after
// trimming deletes the note instead.
func (s *Store) Set(d note.Date, text string) error {
	if err := d.Validate(); err != nil {
		return err
	}
	text = note.NormalizeText(text)
	if text == "" {
		return s.Delete(d)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.notes[d]; !ok || old != text {
		s.notes[d] = text
		s.dirty = true
	}
	return nil
}

// Delete removes the note for d. Deleting a date without a note is a no-op.
func (s *Store) Delete(d note.Date) error {
	_, err := s.DeleteMany([]note.Date{d})
	return err
}

// DeleteMany removes the notes for every date, or none of them if any date is
// invalid. It returns how many notes were removed.
func (s *Store) DeleteMany(dates []note.Date) (int, error) {
	for _, d := range dates {
		if err := d.Validate(); err != nil {
			return 0, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for _, d := range dates {
		if _, ok := s.notes[d]; ok {
			delete(s.notes, d)
			removed++
		}
	}
	if removed > 0 {
		s.dirty = true
	}
	return removed, nil
}

// Notes returns every note sorted by date.
func (s *Store) Notes() []note.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.notes.Notes()
}

// MonthSummary counts the noted days of one month.
func (s *Store) MonthSummary(year int, month time.Month) (MonthSummary, error) {
	if err := note.ValidateMonth(year, month); err != nil {
		return MonthSummary{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	sum := MonthSummary{Year: year, Month: month, Days: []int{}}
	for d := range s.notes {
		if d.Year == year && d.Month == month {
			sum.Days = append(sum.Days, d.Day)
		}
	}
	sort.Ints(sum.Days)
	sum.Count = len(sum.Days)
	return sum, nil
}

// YearSummary returns the twelve month summaries of year, January first.
func (s *Store) YearSummary(year int) ([]MonthSummary, error) {
	out := make([]MonthSummary, 0, 12)
	for m := time.January; m <= time.December; m++ {
		sum, err := s.MonthSummary(year, m)
		if err != nil {
			return nil, fmt.Errorf("summarizing %d: %w", year, err)
		}
		out = append(out, sum)
	}
	return out, nil
}

// Recent returns up to limit notes closest to today, nearest first. Ties go to
// the earlier date. limit <= 0 returns every note.
func (s *Store) Recent(today note.Date, limit int) []RecentNote {
	notes := s.Notes()
	recent := make([]RecentNote, len(notes))
	for i, n := range notes {
		away := today.DaysUntil(n.Date)
		recent[i] = RecentNote{Note: n, DaysAway: away, Countdown: Countdown(away)}
	}
	// notes is date-ordered, so a stable sort keeps earlier dates first on ties.
	sort.SliceStable(recent, func(i, j int) bool {
		return abs(recent[i].DaysAway) < abs(recent[j].DaysAway)
	})
	if limit > 0 && len(recent) > limit {
		recent = recent[:limit]
	}
	return recent
}

func sameCollection(a, b Collection) bool {
	if len(a) != len(b) {
		return false
	}
	for d, text := range a {
		if b[d] != text {
			return false
		}
	}
	return true
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
