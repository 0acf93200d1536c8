package cmd

import (
	"bytes"
	"fmt"
	"io"

	"github.com/chris-regnier/calnotes/internal/note"
	"github.com/chris-regnier/calnotes/internal/ui"
	"github.com/spf13/cobra"
)

var showContentOnly bool

var showCmd = &cobra.Command{
	Use:   "show [date]",
	Short: "Show the note for a day",
	Long:  "Display the note for a day (YYYY-MM-DD, today, yesterday or tomorrow). Defaults to today.",
	Example: `  calnotes show 2024-08-04
  calnotes show tomorrow --content-only
  calnotes show --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d := today()
		if len(args) == 1 {
			var err error
			d, err = parseDateArg(args[0])
			exitOn(err)
		}
		return showRun(cmd.OutOrStdout(), d, showContentOnly)
	},
}

func showRun(w io.Writer, d note.Date, contentOnly bool) error {
	text, ok := store.Get(d)

	if jsonOutput {
		return ui.FormatJSON(w, ui.ToNoteJSON(d, text, ok))
	}
	if !ok {
		ui.FormatNoNote(w, d)
		return nil
	}
	if contentOnly {
		fmt.Fprintln(w, text)
		return nil
	}

	theme := ui.ResolveTheme(appConfig.Theme)
	var buf bytes.Buffer
	ui.FormatNoteFull(&buf, note.Note{Date: d, Text: text}, theme.MarkdownStyle)

	return ui.Pager{Out: w, MaxWidth: appConfig.MaxWidth, Theme: theme}.Write(buf.String())
}

func init() {
	showCmd.Flags().BoolVar(&showContentOnly, "content-only", false, "print just the note text")
	rootCmd.AddCommand(showCmd)
}
