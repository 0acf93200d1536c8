package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/chris-regnier/calnotes/internal/note"
	"github.com/chris-regnier/calnotes/internal/ui"
	"github.com/spf13/cobra"
)

var forceDelete bool

var deleteCmd = &cobra.Command{
	Use:   "delete <date>...",
	Short: "Delete the notes for one or more days",
	Long: `Delete the notes for the given days in one step. Days without a note are
ignored. If any date is invalid nothing is deleted. Requires confirmation
unless --force is used.`,
	Example: `  calnotes delete 2024-08-04
  calnotes delete 2024-08-04 2024-08-05 2024-08-09 --force`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dates, err := parseDateArgs(args)
		exitOn(err)

		out := cmd.OutOrStdout()
		noted := notedDates(dates)
		if len(noted) == 0 {
			if jsonOutput {
				return ui.FormatJSON(out, ui.DeleteResult{Dates: []string{}, Removed: 0})
			}
			ui.FormatDeleted(out, 0)
			return nil
		}

		// Confirmation
		if !forceDelete {
			for _, d := range noted {
				text, _ := store.Get(d)
				fmt.Fprintf(out, "%s  %s\n", d, note.Note{Date: d, Text: text}.Preview(60))
			}
			fmt.Fprintln(out)

			confirmed, err := ui.Confirm(os.Stdin, out, ui.DeletePrompt(len(noted)), ui.ResolveTheme(appConfig.Theme))
			if err != nil {
				fmt.Fprintln(os.Stderr, "Error:", err)
				os.Exit(exitStorage)
			}
			if !confirmed {
				fmt.Fprintln(out, "Cancelled.")
				return nil
			}
		}

		exitOn(deleteRun(out, dates))
		return nil
	},
}

// notedDates keeps the dates that currently have a note, without duplicates.
func notedDates(dates []note.Date) []note.Date {
	seen := make(map[note.Date]bool, len(dates))
	var out []note.Date
	for _, d := range dates {
		if seen[d] {
			continue
		}
		seen[d] = true
		if _, ok := store.Get(d); ok {
			out = append(out, d)
		}
	}
	return out
}

func deleteRun(w io.Writer, dates []note.Date) error {
	removed, err := store.DeleteMany(dates)
	if err != nil {
		return err
	}
	if removed > 0 {
		if err := saveStore(fmt.Sprintf("delete %d notes", removed)); err != nil {
			return err
		}
	}

	if jsonOutput {
		names := make([]string, len(dates))
		for i, d := range dates {
			names[i] = d.String()
		}
		return ui.FormatJSON(w, ui.DeleteResult{Dates: names, Removed: removed})
	}
	ui.FormatDeleted(w, removed)
	return nil
}

func init() {
	deleteCmd.Flags().BoolVar(&forceDelete, "force", false, "skip confirmation prompt")
	rootCmd.AddCommand(deleteCmd)
}
