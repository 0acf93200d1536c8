// Package markdown stores each noted day as a Markdown file with YAML
// front-matter, laid out as notes/YYYY/MM/DD.md under the data directory.
package markdown

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/chris-regnier/calnotes/internal/note"
	"github.com/chris-regnier/calnotes/internal/storage"
	"gopkg.in/yaml.v3"
)

const (
	notesDirName  = "notes"
	oldTreePrefix = ".notes-old-"
)

// Store implements storage.Backend using a tree of Markdown files.
type Store struct {
	dataDir string
	baseDir string // e.g. ~/.calnotes/notes/
}

var _ storage.Backend = (*Store)(nil)

// New creates a new Markdown file storage backend.
func New(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: creating data directory: %v", storage.ErrPersistence, err)
	}
	return &Store{dataDir: dataDir, baseDir: filepath.Join(dataDir, notesDirName)}, nil
}

// Close is a no-op for the Markdown backend.
func (s *Store) Close() error {
	return nil
}

type frontMatter struct {
	Date string `yaml:"date"`
}

func notePath(base string, d note.Date) string {
	return filepath.Join(base,
		fmt.Sprintf("%04d", d.Year),
		fmt.Sprintf("%02d", int(d.Month)),
		fmt.Sprintf("%02d.md", d.Day))
}

func marshal(n note.Note) ([]byte, error) {
	header, err := yaml.Marshal(frontMatter{Date: n.Date.String()})
	if err != nil {
		return nil, err
	}
	var b bytes.Buffer
	b.WriteString("---\n")
	b.Write(header)
	b.WriteString("---\n\n")
	b.WriteString(n.Text)
	b.WriteString("\n")
	return b.Bytes(), nil
}

func unmarshal(data []byte) (note.Note, error) {
	var fm frontMatter
	content, err := frontmatter.Parse(bytes.NewReader(data), &fm)
	if err != nil {
		return note.Note{}, fmt.Errorf("parsing front-matter: %v", err)
	}
	if fm.Date == "" {
		return note.Note{}, fmt.Errorf("missing date in front-matter")
	}
	d, err := note.ParseDate(fm.Date)
	if err != nil {
		return note.Note{}, err
	}
	return note.Note{Date: d, Text: note.NormalizeText(string(content))}, nil
}

// dateFromPath recovers the date encoded in a YYYY/MM/DD.md relative path.
func dateFromPath(rel string) (note.Date, error) {
	parts := strings.Split(filepath.ToSlash(rel), "/")
	if len(parts) != 3 {
		return note.Date{}, fmt.Errorf("unexpected file location")
	}
	var nums [3]int
	for i, p := range []string{parts[0], parts[1], strings.TrimSuffix(parts[2], ".md")} {
		n, err := strconv.Atoi(p)
		if err != nil {
			return note.Date{}, fmt.Errorf("path segment %q is not a number", p)
		}
		nums[i] = n
	}
	return note.NewDate(nums[0], time.Month(nums[1]), nums[2])
}

// recoverTree puts back a previous tree that a Save moved aside but never
// replaced. It does nothing while the notes tree exists.
func (s *Store) recoverTree() error {
	if _, err := os.Stat(s.baseDir); !errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	leftovers, err := filepath.Glob(filepath.Join(s.dataDir, oldTreePrefix+"*"))
	if err != nil || len(leftovers) == 0 {
		return nil
	}
	sort.Strings(leftovers)
	latest := leftovers[len(leftovers)-1]
	if err := os.Rename(latest, s.baseDir); err != nil {
		return fmt.Errorf("%w: restoring %s: %v", storage.ErrPersistence, latest, err)
	}
	return nil
}

// Load walks the notes tree. A missing tree is an empty store unless an
// interrupted Save left the previous tree aside, in which case it is restored.
func (s *Store) Load() (storage.Collection, error) {
	if err := s.recoverTree(); err != nil {
		return nil, err
	}
	c := make(storage.Collection)
	err := filepath.WalkDir(s.baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && path == s.baseDir {
				return filepath.SkipAll
			}
			return fmt.Errorf("%w: scanning %s: %v", storage.ErrPersistence, path, err)
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}

		rel, err := filepath.Rel(s.baseDir, path)
		if err != nil {
			return fmt.Errorf("%w: %v", storage.ErrPersistence, err)
		}
		date, err := dateFromPath(rel)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", storage.ErrCorrupt, rel, err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("%w: reading %s: %v", storage.ErrPersistence, rel, err)
		}
		n, err := unmarshal(data)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", storage.ErrCorrupt, rel, err)
		}
		if n.Date != date {
			return fmt.Errorf("%w: %s: front-matter date %s does not match path", storage.ErrCorrupt, rel, n.Date)
		}
		if n.Text != "" {
			c[date] = n.Text
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Save writes a fresh tree next to the current one and swaps it into place,
// so a failed save leaves the previous tree intact.
func (s *Store) Save(c storage.Collection) error {
	tmpDir, err := os.MkdirTemp(s.dataDir, ".notes-new-*")
	if err != nil {
		return fmt.Errorf("%w: creating staging directory: %v", storage.ErrPersistence, err)
	}
	defer os.RemoveAll(tmpDir)

	for _, n := range c.Notes() {
		path := notePath(tmpDir, n.Date)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("%w: creating directory: %v", storage.ErrPersistence, err)
		}
		data, err := marshal(n)
		if err != nil {
			return fmt.Errorf("%w: encoding %s: %v", storage.ErrPersistence, n.Date, err)
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("%w: writing %s: %v", storage.ErrPersistence, n.Date, err)
		}
	}

	oldDir := ""
	if _, err := os.Stat(s.baseDir); err == nil {
		oldDir = filepath.Join(s.dataDir, fmt.Sprintf("%s%d", oldTreePrefix, time.Now().UnixNano()))
		if err := os.Rename(s.baseDir, oldDir); err != nil {
			return fmt.Errorf("%w: moving previous notes aside: %v", storage.ErrPersistence, err)
		}
	}

	if err := os.Rename(tmpDir, s.baseDir); err != nil {
		if oldDir != "" {
			// Put the previous tree back.
			os.Rename(oldDir, s.baseDir)
		}
		return fmt.Errorf("%w: installing notes: %v", storage.ErrPersistence, err)
	}

	if oldDir != "" {
		os.RemoveAll(oldDir)
	}
	return nil
}
