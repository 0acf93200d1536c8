package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/chris-regnier/calnotes/internal/note"
)

var weekdayHeader = []string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"}

// monthWeeks lays a month out in Monday-first weeks. Cells outside the month are 0.
func monthWeeks(year int, month time.Month) [][7]int {
	offset := (int(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday()) + 6) % 7
	days := note.DaysIn(year, month)

	var weeks [][7]int
	var week [7]int
	col := offset
	for day := 1; day <= days; day++ {
		week[col] = day
		col++
		if col == 7 {
			weeks = append(weeks, week)
			week = [7]int{}
			col = 0
		}
	}
	if col > 0 {
		weeks = append(weeks, week)
	}
	return weeks
}

// gridState is what the grid needs to style each cell.
type gridState struct {
	year     int
	month    time.Month
	today    note.Date
	cursor   int
	noted    func(day int) bool
	selected map[int]bool
}

func (t Theme) renderGrid(g gridState) string {
	plain := lipgloss.NewStyle().Foreground(t.Primary).Background(t.Background)
	muted := t.HelpStyle()

	var b strings.Builder
	for i, h := range weekdayHeader {
		if i > 0 {
			b.WriteString(plain.Render(" "))
		}
		b.WriteString(muted.Render(fmt.Sprintf(" %s ", h)))
	}

	for _, week := range monthWeeks(g.year, g.month) {
		b.WriteString("\n")
		for i, day := range week {
			if i > 0 {
				b.WriteString(plain.Render(" "))
			}
			if day == 0 {
				b.WriteString(plain.Render("    "))
				continue
			}
			cell := fmt.Sprintf(" %2d ", day)
			b.WriteString(t.cellStyle(g, day).Render(cell))
		}
	}
	return b.String()
}

// cellStyle picks the style for day; selection wins over cursor, which wins
// over today, which wins over noted.
func (t Theme) cellStyle(g gridState, day int) lipgloss.Style {
	isToday := g.today.Year == g.year && g.today.Month == g.month && g.today.Day == day
	switch {
	case g.selected[day]:
		return t.SelectedStyle()
	case day == g.cursor:
		return t.CursorStyle()
	case isToday:
		return t.TodayStyle()
	case g.noted != nil && g.noted(day):
		return t.NotedStyle()
	default:
		return lipgloss.NewStyle().Foreground(t.Primary).Background(t.Background)
	}
}
