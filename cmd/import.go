package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/chris-regnier/calnotes/internal/note"
	"github.com/chris-regnier/calnotes/internal/storage"
	"github.com/chris-regnier/calnotes/internal/ui"
	"github.com/spf13/cobra"
)

var (
	importLegacy  bool
	importReplace bool
)

// ImportResult is the JSON representation of an import.
type ImportResult struct {
	File     string `json:"file"`
	Imported int    `json:"imported"`
	Total    int    `json:"total"`
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Merge notes from a document into the store",
	Long: `Read a notes document and merge it into the store. Imported notes replace
existing notes for the same day; other days are kept unless --replace is given.

Use --legacy for files in the older layout, where months are keyed by name and
each day holds a list of lines.`,
	Example: `  calnotes import backup.json
  calnotes import old-notes.json --legacy`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		exitOn(importRun(cmd.OutOrStdout(), args[0], importLegacy, importReplace))
		return nil
	},
}

func importRun(w io.Writer, path string, legacy, replace bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	decode := storage.DecodeJSON
	if legacy {
		decode = storage.DecodeLegacy
	}
	c, err := decode(data)
	if err != nil {
		return fmt.Errorf("importing %s: %v", path, err)
	}

	if replace {
		existing := store.Notes()
		dates := make([]note.Date, len(existing))
		for i, n := range existing {
			dates[i] = n.Date
		}
		if _, err := store.DeleteMany(dates); err != nil {
			return err
		}
	}
	for _, n := range c.Notes() {
		if err := store.Set(n.Date, n.Text); err != nil {
			return err
		}
	}
	if err := saveStore(fmt.Sprintf("import %d notes from %s", len(c), path)); err != nil {
		return err
	}

	if jsonOutput {
		return ui.FormatJSON(w, ImportResult{File: path, Imported: len(c), Total: store.Len()})
	}
	fmt.Fprintf(w, "Imported %d notes from %s (%d total).\n", len(c), path, store.Len())
	return nil
}

func init() {
	importCmd.Flags().BoolVar(&importLegacy, "legacy", false, "read the older month-name / line-list layout")
	importCmd.Flags().BoolVar(&importReplace, "replace", false, "drop existing notes before importing")
	rootCmd.AddCommand(importCmd)
}
