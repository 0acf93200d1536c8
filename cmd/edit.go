package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/chris-regnier/calnotes/internal/editor"
	"github.com/chris-regnier/calnotes/internal/note"
	"github.com/chris-regnier/calnotes/internal/ui"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit [date]",
	Short: "Edit the note for a day in your editor",
	Long: `Open the note for a day in your configured editor. Defaults to today.

Saving an empty file deletes the note.`,
	Example: `  calnotes edit
  calnotes edit 2024-12-25`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d := today()
		if len(args) == 1 {
			var err error
			d, err = parseDateArg(args[0])
			exitOn(err)
		}
		exitOn(editRun(cmd.OutOrStdout(), d, editor.ResolveEditor(appConfig.Editor)))
		return nil
	},
}

func editRun(w io.Writer, d note.Date, editorCmd string) error {
	existing, ok := store.Get(d)

	content, changed, err := editor.Edit(editorCmd, existing)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Editor error:", err)
		os.Exit(exitEditor)
	}

	if !changed {
		if jsonOutput {
			return ui.FormatJSON(w, ui.ToNoteJSON(d, existing, ok))
		}
		ui.FormatNoChanges(w, d)
		return nil
	}

	return setRun(w, d, content)
}

func init() {
	rootCmd.AddCommand(editCmd)
}
