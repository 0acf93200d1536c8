// Package jsonfile stores notes in a single nested JSON document.
package jsonfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"

	"github.com/chris-regnier/calnotes/internal/storage"
)

// DefaultFileName is the document name inside the data directory.
const DefaultFileName = "notes.json"

// Store implements storage.Backend over one JSON file.
type Store struct {
	path string
}

var _ storage.Backend = (*Store)(nil)

// New returns a backend for the document at path, creating its directory.
func New(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("%w: creating data directory: %v", storage.ErrPersistence, err)
	}
	return &Store{path: path}, nil
}

// Path returns the document location.
func (s *Store) Path() string {
	return s.path
}

// Close is a no-op for the JSON backend.
func (s *Store) Close() error {
	return nil
}

// Load reads and decodes the document. A missing file is an empty store.
func (s *Store) Load() (storage.Collection, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return make(storage.Collection), nil
		}
		return nil, fmt.Errorf("%w: reading %s: %v", storage.ErrPersistence, s.path, err)
	}
	c, err := storage.DecodeJSON(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	return c, nil
}

// Save encodes the collection and atomically replaces the document.
func (s *Store) Save(c storage.Collection) error {
	data, err := storage.EncodeJSON(c)
	if err != nil {
		return fmt.Errorf("%w: encoding document: %v", storage.ErrPersistence, err)
	}
	return atomicWrite(s.path, data)
}

// atomicWrite writes data to a temp file in the target directory then renames
// it over path, so readers see either the old or the new document.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: creating directory: %v", storage.ErrPersistence, err)
	}

	tmp, err := os.CreateTemp(dir, ".notes-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: creating temp file: %v", storage.ErrPersistence, err)
	}
	tmpName := tmp.Name()

	// Lock the temp file during write
	if err := syscall.Flock(int(tmp.Fd()), syscall.LOCK_EX); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: acquiring lock: %v", storage.ErrPersistence, err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: writing temp file: %v", storage.ErrPersistence, err)
	}

	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: syncing temp file: %v", storage.ErrPersistence, err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: closing temp file: %v", storage.ErrPersistence, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: renaming file: %v", storage.ErrPersistence, err)
	}

	return nil
}
