package logs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitializeWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "calnotes.log")
	if err := Initialize(path); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	Printf("saved %d notes", 3)
	if err := Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	line := string(data)
	if !strings.Contains(line, "[calnotes] ") || !strings.Contains(line, "saved 3 notes") {
		t.Errorf("unexpected log line: %q", line)
	}
	if !strings.Contains(line, "logger_test.go") {
		t.Errorf("expected caller file in log line: %q", line)
	}
}

func TestInitializeEmptyPath(t *testing.T) {
	if err := Initialize(""); err != nil {
		t.Fatalf("Initialize(\"\"): %v", err)
	}
	Printf("dropped")
}

func TestCloseTwice(t *testing.T) {
	if err := Initialize(filepath.Join(t.TempDir(), "a.log")); err != nil {
		t.Fatal(err)
	}
	if err := Close(); err != nil {
		t.Fatal(err)
	}
	if err := Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}
