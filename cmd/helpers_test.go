package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/chris-regnier/calnotes/internal/config"
	"github.com/chris-regnier/calnotes/internal/storage"
	"github.com/chris-regnier/calnotes/internal/storage/jsonfile"
)

var testNow = time.Date(2024, time.August, 4, 12, 0, 0, 0, time.Local)

func setupTestStore(t *testing.T, dataDir string) *storage.Store {
	t.Helper()
	b, err := jsonfile.New(filepath.Join(dataDir, "notes.json"))
	if err != nil {
		t.Fatalf("creating test storage: %v", err)
	}
	s, err := storage.Open(b)
	if err != nil {
		t.Fatalf("opening test storage: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// setupTestEnv points the command globals at a fresh JSON store in a temp data
// dir with the clock fixed at testNow. It returns the data dir.
func setupTestEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	store = setupTestStore(t, dir)
	appConfig = &config.Config{
		Storage:     config.StorageJSON,
		DataDir:     dir,
		NotesFile:   "notes.json",
		MaxWidth:    100,
		RecentLimit: 5,
		Shell: config.ShellConfig{
			CacheTTL:    "5m",
			TodayIcon:   "T",
			NoTodayIcon: "-",
			MonthIcon:   "m",
		},
	}
	jsonOutput = false
	now = func() time.Time { return testNow }
	t.Cleanup(func() { now = time.Now })
	return dir
}

// editorScript writes an executable shell script that acts as the editor.
func editorScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fake-editor.sh")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0755); err != nil {
		t.Fatal(err)
	}
	return path
}
