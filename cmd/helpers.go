package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/chris-regnier/calnotes/internal/logs"
	"github.com/chris-regnier/calnotes/internal/note"
	"github.com/chris-regnier/calnotes/internal/shell"
	"github.com/chris-regnier/calnotes/internal/storage"
)

// Exit codes shared by all commands.
const (
	exitInvalid = 1
	exitStorage = 2
	exitEditor  = 3
)

// now is replaced in tests.
var now = time.Now

func today() note.Date {
	return note.DateOf(now())
}

// parseDateArg accepts YYYY-MM-DD or one of today, yesterday and tomorrow.
func parseDateArg(s string) (note.Date, error) {
	t := now()
	switch strings.ToLower(s) {
	case "today":
		return note.DateOf(t), nil
	case "yesterday":
		return note.DateOf(t.AddDate(0, 0, -1)), nil
	case "tomorrow":
		return note.DateOf(t.AddDate(0, 0, 1)), nil
	}
	return note.ParseDate(s)
}

func parseDateArgs(args []string) ([]note.Date, error) {
	dates := make([]note.Date, len(args))
	for i, a := range args {
		d, err := parseDateArg(a)
		if err != nil {
			return nil, err
		}
		dates[i] = d
	}
	return dates, nil
}

// exitCode maps an error to the process exit status.
func exitCode(err error) int {
	switch {
	case errors.Is(err, storage.ErrPersistence), errors.Is(err, storage.ErrCorrupt):
		return exitStorage
	default:
		return exitInvalid
	}
}

// exitOn prints err and exits with its mapped status. A nil error returns.
func exitOn(err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(exitCode(err))
}

// saveStore persists the store and drops the prompt cache.
func saveStore(action string) error {
	if err := store.Save(); err != nil {
		logs.Printf("%s: save failed: %v", action, err)
		return fmt.Errorf("%s: %w", action, err)
	}
	logs.Printf("%s: saved %d notes", action, store.Len())
	if err := shell.InvalidateCache(appConfig.DataDir); err != nil {
		logs.Printf("invalidating prompt cache: %v", err)
	}
	return nil
}

// flushOnExit saves changes still pending when an interactive session or the
// MCP server ends, such as an edit whose save failed inside the TUI.
func flushOnExit() error {
	if store == nil || !store.Dirty() {
		return nil
	}
	return saveStore("exit")
}

// readNoteText joins args into note text. A single "-" reads from in.
func readNoteText(in io.Reader, args []string) (string, error) {
	if len(args) == 1 && args[0] == "-" {
		data, err := io.ReadAll(in)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	return strings.Join(args, " "), nil
}
