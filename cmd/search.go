package cmd

import (
	"io"
	"strings"

	"github.com/chris-regnier/calnotes/internal/search"
	"github.com/chris-regnier/calnotes/internal/ui"
	"github.com/spf13/cobra"
)

var searchLimit int

var searchCmd = &cobra.Command{
	Use:   "search <query>...",
	Short: "Fuzzy search notes",
	Long:  "Fuzzy match the query against each note's date and text, best matches first.",
	Example: `  calnotes search doctor
  calnotes search 2024-08 --limit 3 --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return searchRun(cmd.OutOrStdout(), strings.Join(args, " "), searchLimit)
	},
}

func searchRun(w io.Writer, query string, limit int) error {
	matches := search.Notes(store.Notes(), query, limit)
	if jsonOutput {
		out := make([]ui.NoteJSON, len(matches))
		for i, m := range matches {
			out[i] = ui.ToNoteJSON(m.Note.Date, m.Note.Text, true)
		}
		return ui.FormatJSON(w, out)
	}
	ui.FormatSearchResults(w, matches)
	return nil
}

func init() {
	searchCmd.Flags().IntVar(&searchLimit, "limit", 10, "maximum number of results")
	rootCmd.AddCommand(searchCmd)
}
