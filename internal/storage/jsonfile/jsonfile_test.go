package jsonfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/chris-regnier/calnotes/internal/note"
	"github.com/chris-regnier/calnotes/internal/storage"
)

func TestSaveWritesNestedDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", DefaultFileName)
	s, err := New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	c := storage.Collection{note.MustDate(2024, time.August, 4): "Doctor appointment"}
	if err := s.Save(c); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "{\n  \"2024\": {\n    \"8\": {\n      \"4\": \"Doctor appointment\"\n    }\n  }\n}\n"
	if string(data) != want {
		t.Errorf("document = %q, want %q", data, want)
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := New(filepath.Join(dir, DefaultFileName))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if err := s.Save(storage.Collection{note.MustDate(2024, time.August, 4+i): "x"}); err != nil {
			t.Fatalf("Save %d: %v", i, err)
		}
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != DefaultFileName {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("directory contains %v, want only %s", names, DefaultFileName)
	}
}

func TestSaveFailureLeavesDocumentUnchanged(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	path := filepath.Join(sub, DefaultFileName)
	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}

	// Replace the directory with a plain file so the temp file cannot be created.
	if err := os.RemoveAll(sub); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(sub, []byte("in the way"), 0644); err != nil {
		t.Fatal(err)
	}

	err = s.Save(storage.Collection{note.MustDate(2024, time.August, 4): "x"})
	if !errors.Is(err, storage.ErrPersistence) {
		t.Fatalf("Save error = %v, want ErrPersistence", err)
	}
	data, _ := os.ReadFile(sub)
	if string(data) != "in the way" {
		t.Errorf("blocking file modified: %q", data)
	}
}

func TestLoadUnreadable(t *testing.T) {
	dir := t.TempDir()
	// A directory where the document should be cannot be read as a file.
	path := filepath.Join(dir, DefaultFileName)
	if err := os.Mkdir(path, 0755); err != nil {
		t.Fatal(err)
	}
	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Load(); !errors.Is(err, storage.ErrPersistence) {
		t.Errorf("Load error = %v, want ErrPersistence", err)
	}
}

func TestLoadCorruptNamesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	if err := os.WriteFile(path, []byte(`{"2024": {"8": {"4": 42}}}`), 0644); err != nil {
		t.Fatal(err)
	}
	s, _ := New(path)
	_, err := s.Load()
	if !errors.Is(err, storage.ErrCorrupt) {
		t.Fatalf("Load error = %v, want ErrCorrupt", err)
	}
	if got := err.Error(); len(got) < len(path) || got[:len(path)] != path {
		t.Errorf("error %q does not name %s", got, path)
	}
}
