package ui

import (
	"regexp"
	"strings"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;?]*[a-zA-Z]`)

// stripANSI removes terminal escape sequences so views can be asserted on as text.
func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func countLines(s string) int {
	if s == "" {
		return 0
	}
	return strings.Count(s, "\n") + 1
}
