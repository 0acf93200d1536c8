package storage_test

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/chris-regnier/calnotes/internal/note"
	"github.com/chris-regnier/calnotes/internal/storage"
)

// memBackend keeps the last saved collection in memory and can be told to fail.
type memBackend struct {
	saved   storage.Collection
	loadErr error
	saveErr error
	saves   int
}

func (m *memBackend) Load() (storage.Collection, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.saved.Clone(), nil
}

func (m *memBackend) Save(c storage.Collection) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.saved = c.Clone()
	return nil
}

func (m *memBackend) Close() error { return nil }

func newTestStore(t *testing.T) (*storage.Store, *memBackend) {
	t.Helper()
	b := &memBackend{saved: storage.Collection{}}
	s, err := storage.Open(b)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return s, b
}

var aug4 = note.MustDate(2024, time.August, 4)

func TestBasicAdd(t *testing.T) {
	s, _ := newTestStore(t)
	if err := s.Set(aug4, "Doctor appointment"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	sum, err := s.MonthSummary(2024, time.August)
	if err != nil {
		t.Fatalf("MonthSummary: %v", err)
	}
	if sum.Count != 1 || !reflect.DeepEqual(sum.Days, []int{4}) {
		t.Errorf("summary = %+v, want count 1 days [4]", sum)
	}
	if text, ok := s.Get(aug4); !ok || text != "Doctor appointment" {
		t.Errorf("Get = %q, %v", text, ok)
	}
	if !s.Dirty() {
		t.Error("expected store to be dirty after Set")
	}
}

func TestOverwrite(t *testing.T) {
	s, _ := newTestStore(t)
	s.Set(aug4, "Doctor appointment")
	if err := s.Set(aug4, "Dentist"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if text, _ := s.Get(aug4); text != "Dentist" {
		t.Errorf("Get = %q, want Dentist", text)
	}
	sum, _ := s.MonthSummary(2024, time.August)
	if sum.Count != 1 {
		t.Errorf("count = %d, want 1", sum.Count)
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
}

func TestUniquenessLatestWins(t *testing.T) {
	s, _ := newTestStore(t)
	for i := 0; i < 5; i++ {
		s.Set(aug4, fmt.Sprintf("version %d", i))
	}
	s.Set(aug4, "   ")
	s.Set(aug4, "final")
	if s.Len() != 1 {
		t.Fatalf("Len = %d, want 1", s.Len())
	}
	if text, _ := s.Get(aug4); text != "final" {
		t.Errorf("Get = %q, want final", text)
	}
}

func TestSetTrimsText(t *testing.T) {
	s, _ := newTestStore(t)
	s.Set(aug4, "\n  padded note \t\n")
	if text, _ := s.Get(aug4); text != "padded note" {
		t.Errorf("Get = %q", text)
	}
}

func TestDeleteViaEmpty(t *testing.T) {
	for _, empty := range []string{"", "   ", "\n\t\n"} {
		s, _ := newTestStore(t)
		s.Set(aug4, "Doctor appointment")
		s.Set(note.MustDate(2024, time.August, 9), "Other")
		if err := s.Set(aug4, empty); err != nil {
			t.Fatalf("Set(%q): %v", empty, err)
		}
		if text, ok := s.Get(aug4); ok || text != "" {
			t.Errorf("Get after Set(%q) = %q, %v", empty, text, ok)
		}
		sum, _ := s.MonthSummary(2024, time.August)
		if sum.Count != 1 || sum.HasDay(4) {
			t.Errorf("summary after Set(%q) = %+v", empty, sum)
		}
	}
}

func TestSetInvalidDate(t *testing.T) {
	s, _ := newTestStore(t)
	bad := note.Date{Year: 2023, Month: time.February, Day: 29}
	if err := s.Set(bad, "nope"); !errors.Is(err, storage.ErrInvalidDate) {
		t.Errorf("Set error = %v, want ErrInvalidDate", err)
	}
	if err := s.Set(bad, ""); !errors.Is(err, storage.ErrInvalidDate) {
		t.Errorf("Set empty error = %v, want ErrInvalidDate", err)
	}
	if s.Len() != 0 || s.Dirty() {
		t.Error("invalid Set changed the store")
	}
}

func TestGetNeverFails(t *testing.T) {
	s, _ := newTestStore(t)
	if text, ok := s.Get(note.Date{Year: -1, Month: 14, Day: 99}); ok || text != "" {
		t.Errorf("Get(invalid) = %q, %v", text, ok)
	}
	if text, ok := s.Get(aug4); ok || text != "" {
		t.Errorf("Get(absent) = %q, %v", text, ok)
	}
}

func TestIdempotentDelete(t *testing.T) {
	s, b := newTestStore(t)
	s.Set(aug4, "keep")
	if err := s.Save(); err != nil {
		t.Fatal(err)
	}

	if err := s.Delete(note.MustDate(2024, time.August, 5)); err != nil {
		t.Fatalf("Delete absent: %v", err)
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
	if s.Dirty() {
		t.Error("no-op delete marked store dirty")
	}
	if b.saves != 1 {
		t.Errorf("saves = %d", b.saves)
	}
}

func TestDeleteManyAtomic(t *testing.T) {
	s, _ := newTestStore(t)
	s.Set(aug4, "one")
	s.Set(note.MustDate(2024, time.August, 5), "two")

	_, err := s.DeleteMany([]note.Date{aug4, {Year: 2024, Month: time.August, Day: 32}})
	if !errors.Is(err, storage.ErrInvalidDate) {
		t.Fatalf("DeleteMany error = %v, want ErrInvalidDate", err)
	}
	if s.Len() != 2 {
		t.Errorf("Len = %d after failed batch, want 2", s.Len())
	}
	if _, ok := s.Get(aug4); !ok {
		t.Error("valid date in failed batch was deleted")
	}
}

func TestDeleteMany(t *testing.T) {
	s, _ := newTestStore(t)
	for day := 1; day <= 5; day++ {
		s.Set(note.MustDate(2024, time.August, day), fmt.Sprintf("day %d", day))
	}
	n, err := s.DeleteMany([]note.Date{
		note.MustDate(2024, time.August, 2),
		note.MustDate(2024, time.August, 4),
		note.MustDate(2024, time.August, 4),
		note.MustDate(2024, time.August, 20),
	})
	if err != nil {
		t.Fatalf("DeleteMany: %v", err)
	}
	if n != 2 {
		t.Errorf("removed = %d, want 2", n)
	}
	sum, _ := s.MonthSummary(2024, time.August)
	if !reflect.DeepEqual(sum.Days, []int{1, 3, 5}) {
		t.Errorf("days = %v", sum.Days)
	}
}

func TestMonthSummary(t *testing.T) {
	s, _ := newTestStore(t)
	s.Set(note.MustDate(2024, time.August, 20), "late")
	s.Set(note.MustDate(2024, time.August, 3), "early")
	s.Set(note.MustDate(2024, time.September, 1), "next month")
	s.Set(note.MustDate(2023, time.August, 3), "last year")

	sum, err := s.MonthSummary(2024, time.August)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Count != 2 || !reflect.DeepEqual(sum.Days, []int{3, 20}) {
		t.Errorf("summary = %+v", sum)
	}

	empty, _ := s.MonthSummary(2024, time.March)
	if empty.Count != 0 || len(empty.Days) != 0 {
		t.Errorf("empty summary = %+v", empty)
	}

	for _, m := range []time.Month{0, 13} {
		if _, err := s.MonthSummary(2024, m); !errors.Is(err, storage.ErrInvalidDate) {
			t.Errorf("MonthSummary(month %d) error = %v", m, err)
		}
	}
}

func TestYearSummary(t *testing.T) {
	s, _ := newTestStore(t)
	s.Set(note.MustDate(2024, time.January, 1), "a")
	s.Set(note.MustDate(2024, time.December, 24), "b")
	s.Set(note.MustDate(2024, time.December, 25), "c")

	months, err := s.YearSummary(2024)
	if err != nil {
		t.Fatal(err)
	}
	if len(months) != 12 {
		t.Fatalf("len = %d", len(months))
	}
	if months[0].Count != 1 || months[11].Count != 2 || months[5].Count != 0 {
		t.Errorf("counts = %d %d %d", months[0].Count, months[5].Count, months[11].Count)
	}
}

func TestSaveClearsDirty(t *testing.T) {
	s, b := newTestStore(t)
	s.Set(aug4, "Doctor appointment")
	if err := s.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if s.Dirty() {
		t.Error("store still dirty after Save")
	}
	if b.saved[aug4] != "Doctor appointment" {
		t.Errorf("backend holds %v", b.saved)
	}
}

func TestSaveFailureKeepsNotes(t *testing.T) {
	s, b := newTestStore(t)
	s.Set(aug4, "Doctor appointment")
	b.saveErr = fmt.Errorf("%w: disk full", storage.ErrPersistence)

	if err := s.Save(); !errors.Is(err, storage.ErrPersistence) {
		t.Fatalf("Save error = %v, want ErrPersistence", err)
	}
	if !s.Dirty() {
		t.Error("failed save cleared dirty flag")
	}
	if text, _ := s.Get(aug4); text != "Doctor appointment" {
		t.Errorf("note lost after failed save: %q", text)
	}

	b.saveErr = nil
	s.Set(note.MustDate(2024, time.August, 5), "later edit")
	if err := s.Save(); err != nil {
		t.Fatalf("retry Save: %v", err)
	}
	if len(b.saved) != 2 {
		t.Errorf("backend has %d notes, want 2", len(b.saved))
	}
}

func TestLoadCorruptKeepsCollection(t *testing.T) {
	s, b := newTestStore(t)
	s.Set(aug4, "in memory")
	b.loadErr = fmt.Errorf("%w: bad document", storage.ErrCorrupt)

	if err := s.Load(); !errors.Is(err, storage.ErrCorrupt) {
		t.Fatalf("Load error = %v, want ErrCorrupt", err)
	}
	if text, _ := s.Get(aug4); text != "in memory" {
		t.Errorf("collection replaced after failed load: %q", text)
	}

	if _, err := storage.Open(b); !errors.Is(err, storage.ErrCorrupt) {
		t.Errorf("Open error = %v, want ErrCorrupt", err)
	}
}

func TestRoundTripThroughStore(t *testing.T) {
	s, b := newTestStore(t)
	want := sampleCollection()
	for d, text := range want {
		s.Set(d, text)
	}
	if err := s.Save(); err != nil {
		t.Fatal(err)
	}
	reloaded, err := storage.Open(b)
	if err != nil {
		t.Fatal(err)
	}
	got := storage.Collection{}
	for _, n := range reloaded.Notes() {
		got[n.Date] = n.Text
	}
	assertCollection(t, got, want)
}

func TestNotesSorted(t *testing.T) {
	s, _ := newTestStore(t)
	for d, text := range sampleCollection() {
		s.Set(d, text)
	}
	notes := s.Notes()
	for i := 1; i < len(notes); i++ {
		if !notes[i-1].Date.Before(notes[i].Date) {
			t.Errorf("notes out of order at %d: %s then %s", i, notes[i-1].Date, notes[i].Date)
		}
	}
}

func TestRecent(t *testing.T) {
	s, _ := newTestStore(t)
	today := note.MustDate(2024, time.August, 10)
	s.Set(note.MustDate(2024, time.August, 10), "today")
	s.Set(note.MustDate(2024, time.August, 8), "two days ago")
	s.Set(note.MustDate(2024, time.August, 12), "two days ahead")
	s.Set(note.MustDate(2024, time.September, 30), "far ahead")
	s.Set(note.MustDate(2023, time.January, 1), "long ago")

	recent := s.Recent(today, 3)
	if len(recent) != 3 {
		t.Fatalf("len = %d, want 3", len(recent))
	}
	wantTexts := []string{"today", "two days ago", "two days ahead"}
	for i, r := range recent {
		if r.Text != wantTexts[i] {
			t.Errorf("recent[%d] = %q, want %q", i, r.Text, wantTexts[i])
		}
	}
	if recent[0].Countdown != "Today" || recent[1].DaysAway != -2 || recent[2].Countdown != "2 days left" {
		t.Errorf("countdowns = %+v", recent)
	}

	if all := s.Recent(today, 0); len(all) != 5 {
		t.Errorf("Recent(0) len = %d, want 5", len(all))
	}
}

// gatedBackend blocks its first Save until release is closed.
type gatedBackend struct {
	mu      sync.Mutex
	saved   storage.Collection
	calls   int
	entered chan struct{}
	release chan struct{}
}

func (g *gatedBackend) Load() (storage.Collection, error) { return storage.Collection{}, nil }

func (g *gatedBackend) Save(c storage.Collection) error {
	g.mu.Lock()
	g.calls++
	first := g.calls == 1
	g.mu.Unlock()
	if first {
		close(g.entered)
		<-g.release
	}
	g.mu.Lock()
	g.saved = c.Clone()
	g.mu.Unlock()
	return nil
}

func (g *gatedBackend) Close() error { return nil }

func TestOverlappingSavesPersistInOrder(t *testing.T) {
	b := &gatedBackend{entered: make(chan struct{}), release: make(chan struct{})}
	s := storage.NewStore(b)
	aug5 := note.MustDate(2024, time.August, 5)

	if err := s.Set(aug4, "first"); err != nil {
		t.Fatal(err)
	}
	firstDone := make(chan error, 1)
	go func() { firstDone <- s.Save() }()
	<-b.entered

	if err := s.Set(aug5, "second"); err != nil {
		t.Fatal(err)
	}
	secondDone := make(chan error, 1)
	go func() { secondDone <- s.Save() }()

	// Give the second Save a chance to overtake the blocked one.
	time.Sleep(20 * time.Millisecond)
	close(b.release)

	if err := <-firstDone; err != nil {
		t.Fatalf("first Save: %v", err)
	}
	if err := <-secondDone; err != nil {
		t.Fatalf("second Save: %v", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	want := storage.Collection{aug4: "first", aug5: "second"}
	if !reflect.DeepEqual(b.saved, want) {
		t.Errorf("persisted = %v, want %v", b.saved, want)
	}
	if s.Dirty() {
		t.Error("store should be clean after both saves returned")
	}
}
