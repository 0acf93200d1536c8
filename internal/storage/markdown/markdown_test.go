package markdown

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/chris-regnier/calnotes/internal/note"
	"github.com/chris-regnier/calnotes/internal/storage"
)

func TestLoadRestoresTreeLeftAsideBySave(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	if err != nil {
		t.Fatal(err)
	}
	aug4 := note.MustDate(2024, time.August, 4)
	if err := s.Save(storage.Collection{aug4: "Doctor appointment"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// A Save that stopped between moving the tree aside and installing the
	// new one leaves only the old tree and a staging directory.
	if err := os.Rename(filepath.Join(dir, notesDirName), filepath.Join(dir, oldTreePrefix+"1700000000000000000")); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, ".notes-new-123"), 0755); err != nil {
		t.Fatal(err)
	}

	c, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c[aug4] != "Doctor appointment" {
		t.Errorf("collection = %v, want the note from the previous tree", c)
	}
	if _, err := os.Stat(filepath.Join(dir, notesDirName)); err != nil {
		t.Errorf("notes tree not restored: %v", err)
	}
}

func TestLoadPrefersCurrentTree(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	if err != nil {
		t.Fatal(err)
	}
	aug4 := note.MustDate(2024, time.August, 4)
	if err := s.Save(storage.Collection{aug4: "current"}); err != nil {
		t.Fatal(err)
	}
	stale := filepath.Join(dir, oldTreePrefix+"1")
	if err := os.MkdirAll(filepath.Join(stale, "2024", "08"), 0755); err != nil {
		t.Fatal(err)
	}

	c, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(c) != 1 || c[aug4] != "current" {
		t.Errorf("collection = %v", c)
	}
}

func TestLoadMissingTreeIsEmpty(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	c, err := s.Load()
	if err != nil || len(c) != 0 {
		t.Errorf("Load = %v, %v; want empty", c, err)
	}
}
