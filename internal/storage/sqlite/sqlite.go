// Package sqlite stores notes in a SQLite database via Turso/libSQL.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chris-regnier/calnotes/internal/note"
	"github.com/chris-regnier/calnotes/internal/storage"
	_ "github.com/tursodatabase/go-libsql"
)

// DBFileName is the database name inside the data directory.
const DBFileName = "calnotes.db"

// Store implements storage.Backend using SQLite.
type Store struct {
	db *sql.DB
}

var _ storage.Backend = (*Store)(nil)

// New creates a new SQLite storage backend.
func New(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: creating data directory: %v", storage.ErrPersistence, err)
	}

	dbPath := filepath.Join(dataDir, DBFileName)
	db, err := sql.Open("libsql", "file:"+dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: opening database: %v", storage.ErrPersistence, err)
	}

	// Enable WAL mode
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: enabling WAL mode: %v", storage.ErrPersistence, err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS notes (
			date  TEXT PRIMARY KEY,
			year  INTEGER NOT NULL,
			month INTEGER NOT NULL,
			day   INTEGER NOT NULL,
			text  TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_notes_month ON notes(year, month);
	`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("%w: creating schema: %v", storage.ErrPersistence, err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Load reads every row. A row whose columns do not form a valid date, or
// disagree with its key, marks the store corrupt.
func (s *Store) Load() (storage.Collection, error) {
	rows, err := s.db.Query("SELECT date, year, month, day, text FROM notes")
	if err != nil {
		return nil, fmt.Errorf("%w: listing notes: %v", storage.ErrPersistence, err)
	}
	defer rows.Close()

	c := make(storage.Collection)
	for rows.Next() {
		var key, text string
		var year, month, day int
		if err := rows.Scan(&key, &year, &month, &day, &text); err != nil {
			return nil, fmt.Errorf("%w: scanning row: %v", storage.ErrCorrupt, err)
		}
		d, err := note.NewDate(year, time.Month(month), day)
		if err != nil {
			return nil, fmt.Errorf("%w: row %q: %v", storage.ErrCorrupt, key, err)
		}
		if d.String() != key {
			return nil, fmt.Errorf("%w: row %q does not match date %s", storage.ErrCorrupt, key, d)
		}
		if text = note.NormalizeText(text); text != "" {
			c[d] = text
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading rows: %v", storage.ErrPersistence, err)
	}
	return c, nil
}

// Save replaces every row in a single transaction.
func (s *Store) Save(c storage.Collection) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: beginning transaction: %v", storage.ErrPersistence, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM notes"); err != nil {
		return fmt.Errorf("%w: clearing notes: %v", storage.ErrPersistence, err)
	}

	stmt, err := tx.Prepare("INSERT INTO notes (date, year, month, day, text) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("%w: preparing insert: %v", storage.ErrPersistence, err)
	}
	defer stmt.Close()

	for _, n := range c.Notes() {
		d := n.Date
		if _, err := stmt.Exec(d.String(), d.Year, int(d.Month), d.Day, n.Text); err != nil {
			return fmt.Errorf("%w: inserting %s: %v", storage.ErrPersistence, d, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing: %v", storage.ErrPersistence, err)
	}
	return nil
}
