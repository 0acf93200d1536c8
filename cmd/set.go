package cmd

import (
	"io"

	"github.com/chris-regnier/calnotes/internal/note"
	"github.com/chris-regnier/calnotes/internal/ui"
	"github.com/spf13/cobra"
)

var setCmd = &cobra.Command{
	Use:   "set <date> [text...]",
	Short: "Write the note for a day",
	Long: `Write the note for a day, replacing any existing note.

Pass "-" as the text to read it from stdin. Empty or whitespace-only text
deletes the note.`,
	Example: `  calnotes set 2024-08-04 Doctor appointment at 10
  echo "Pay rent" | calnotes set tomorrow -
  calnotes set 2024-08-04 ""`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := parseDateArg(args[0])
		exitOn(err)

		text, err := readNoteText(cmd.InOrStdin(), args[1:])
		exitOn(err)

		exitOn(setRun(cmd.OutOrStdout(), d, text))
		return nil
	},
}

func setRun(w io.Writer, d note.Date, text string) error {
	if err := store.Set(d, text); err != nil {
		return err
	}
	if err := saveStore("set " + d.String()); err != nil {
		return err
	}

	stored, ok := store.Get(d)
	if jsonOutput {
		return ui.FormatJSON(w, ui.ToNoteJSON(d, stored, ok))
	}
	if ok {
		ui.FormatNoteSaved(w, d)
	} else {
		ui.FormatNoteCleared(w, d)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(setCmd)
}
