// Package note defines the calendar date key and the note value stored under it.
package note

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Year bounds accepted for a note date.
const (
	MinYear = 1
	MaxYear = 9999
)

// ErrInvalidDate reports a year, month or day outside the Gregorian calendar.
var ErrInvalidDate = errors.New("invalid date")

// Date is a calendar day without time or zone. It is comparable and used
// directly as a map key, so two notes can never share a date.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// Note is user text attached to exactly one calendar date.
type Note struct {
	Date Date   `json:"date"`
	Text string `json:"text"`
}

// NewDate builds a Date and validates it.
func NewDate(year int, month time.Month, day int) (Date, error) {
	d := Date{Year: year, Month: month, Day: day}
	if err := d.Validate(); err != nil {
		return Date{}, err
	}
	return d, nil
}

// MustDate is NewDate for literals known to be valid. It panics otherwise.
func MustDate(year int, month time.Month, day int) Date {
	d, err := NewDate(year, month, day)
	if err != nil {
		panic(err)
	}
	return d
}

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Today returns the local calendar date.
func Today() Date {
	return DateOf(time.Now())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q (use YYYY-MM-DD)", ErrInvalidDate, s)
	}
	d := DateOf(t)
	if err := d.Validate(); err != nil {
		return Date{}, err
	}
	return d, nil
}

// ValidateMonth checks a year/month pair.
func ValidateMonth(year int, month time.Month) error {
	if year < MinYear || year > MaxYear {
		return fmt.Errorf("%w: year %d out of range %d-%d", ErrInvalidDate, year, MinYear, MaxYear)
	}
	if month < time.January || month > time.December {
		return fmt.Errorf("%w: month %d out of range 1-12", ErrInvalidDate, int(month))
	}
	return nil
}

// Validate checks the date against the Gregorian calendar, leap years included.
func (d Date) Validate() error {
	if err := ValidateMonth(d.Year, d.Month); err != nil {
		return err
	}
	if n := DaysIn(d.Year, d.Month); d.Day < 1 || d.Day > n {
		return fmt.Errorf("%w: day %d out of range 1-%d for %d-%02d", ErrInvalidDate, d.Day, n, d.Year, int(d.Month))
	}
	return nil
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	// Day 0 of the next month normalizes to the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Time returns midnight of d in loc.
func (d Date) Time(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// String formats d as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Before reports whether d is earlier than o.
func (d Date) Before(o Date) bool {
	if d.Year != o.Year {
		return d.Year < o.Year
	}
	if d.Month != o.Month {
		return d.Month < o.Month
	}
	return d.Day < o.Day
}

// DaysUntil returns the number of days from d to o, negative when o is earlier.
func (d Date) DaysUntil(o Date) int {
	// Unix seconds rather than Sub: a Duration overflows past ~292 years.
	secs := o.Time(time.UTC).Unix() - d.Time(time.UTC).Unix()
	return int(secs / 86400)
}

// MarshalText encodes d as YYYY-MM-DD.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText decodes a YYYY-MM-DD string.
func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// NormalizeText trims surrounding whitespace. An empty result means "no note".
func NormalizeText(text string) string {
	return strings.TrimSpace(text)
}

// Preview returns a single-line preview of the note text, at most maxLen
// characters long.
func (n Note) Preview(maxLen int) string {
	content := []rune(strings.ReplaceAll(n.Text, "\n", " "))
	if len(content) <= maxLen {
		return string(content)
	}
	if maxLen <= 3 {
		return string(content[:maxLen])
	}
	return string(content[:maxLen-3]) + "..."
}
