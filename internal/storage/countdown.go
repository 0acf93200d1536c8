package storage

import "fmt"

// Countdown describes a distance in days the way the home screen shows it:
// "Today", "3 days left", "2 weeks, 1 day left", "5 days ago".
func Countdown(days int) string {
	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "1 day left"
	case days == -1:
		return "1 day ago"
	case days < 0:
		return fmt.Sprintf("%d days ago", -days)
	case days < 7:
		return fmt.Sprintf("%d days left", days)
	}

	weeks, rest := days/7, days%7
	if rest == 0 {
		return fmt.Sprintf("%s left", plural(weeks, "week"))
	}
	return fmt.Sprintf("%s, %s left", plural(weeks, "week"), plural(rest, "day"))
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
