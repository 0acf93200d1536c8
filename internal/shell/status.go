package shell

import (
	"time"

	"github.com/chris-regnier/calnotes/internal/note"
	"github.com/chris-regnier/calnotes/internal/storage"
)

// StatusSource is the slice of the note store the prompt status reads.
type StatusSource interface {
	Get(d note.Date) (string, bool)
	MonthSummary(year int, month time.Month) (storage.MonthSummary, error)
	Recent(today note.Date, limit int) []storage.RecentNote
}

// ComputeStatus builds a fresh prompt cache for today: whether today has a
// note, how many notes the current month holds, and the nearest upcoming note
// after today.
func ComputeStatus(store StatusSource, today note.Date, backend string, now time.Time) (*PromptCache, error) {
	summary, err := store.MonthSummary(today.Year, today.Month)
	if err != nil {
		return nil, err
	}
	_, hasToday := store.Get(today)

	c := &PromptCache{
		Today:          hasToday,
		MonthCount:     summary.Count,
		TodayDate:      today.String(),
		StorageBackend: backend,
		UpdatedAt:      now,
	}

	var next *storage.RecentNote
	for _, r := range store.Recent(today, 0) {
		if r.DaysAway > 0 && (next == nil || r.DaysAway < next.DaysAway) {
			next = &r
		}
	}
	if next != nil {
		c.NextDate = next.Date.String()
		c.NextCountdown = next.Countdown
	}
	return c, nil
}
