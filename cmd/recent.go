package cmd

import (
	"io"

	"github.com/chris-regnier/calnotes/internal/ui"
	"github.com/spf13/cobra"
)

var recentLimit int

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List the notes closest to today",
	Long:  "List the notes nearest to today, past or upcoming, with a countdown for each.",
	Example: `  calnotes recent
  calnotes recent --limit 10`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit := recentLimit
		if limit <= 0 {
			limit = appConfig.RecentLimit
		}
		return recentRun(cmd.OutOrStdout(), limit)
	},
}

func recentRun(w io.Writer, limit int) error {
	recent := store.Recent(today(), limit)
	if jsonOutput {
		return ui.FormatJSON(w, ui.ToRecentJSON(recent))
	}
	ui.FormatRecent(w, recent)
	return nil
}

func init() {
	recentCmd.Flags().IntVar(&recentLimit, "limit", 0, "maximum number of notes (default: recent_limit from config)")
	rootCmd.AddCommand(recentCmd)
}
