// Package search ranks notes against a free-text query.
package search

import (
	"strings"

	"github.com/chris-regnier/calnotes/internal/note"
	"github.com/sahilm/fuzzy"
)

// Match is a note that matched a query, best matches first.
type Match struct {
	Note  note.Note
	Score int
}

// notesSource adapts a note slice to fuzzy.Source. Each note is searched as
// "YYYY-MM-DD text" with line breaks flattened.
type notesSource []note.Note

func (s notesSource) String(i int) string {
	return s[i].Date.String() + " " + strings.ReplaceAll(s[i].Text, "\n", " ")
}

func (s notesSource) Len() int { return len(s) }

// Notes returns the notes matching query ordered by score. A blank query
// matches nothing. limit <= 0 returns every match.
func Notes(notes []note.Note, query string, limit int) []Match {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	found := fuzzy.FindFrom(query, notesSource(notes))
	if limit > 0 && len(found) > limit {
		found = found[:limit]
	}
	matches := make([]Match, len(found))
	for i, f := range found {
		matches[i] = Match{Note: notes[f.Index], Score: f.Score}
	}
	return matches
}
