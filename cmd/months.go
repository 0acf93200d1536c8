package cmd

import (
	"io"

	"github.com/chris-regnier/calnotes/internal/ui"
	"github.com/spf13/cobra"
)

var monthsYear int

var monthsCmd = &cobra.Command{
	Use:   "months",
	Short: "List the months of a year with their note counts",
	Example: `  calnotes months
  calnotes months --year 2023 --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		year := monthsYear
		if year == 0 {
			year = today().Year
		}
		exitOn(monthsRun(cmd.OutOrStdout(), year))
		return nil
	},
}

func monthsRun(w io.Writer, year int) error {
	months, err := store.YearSummary(year)
	if err != nil {
		return err
	}
	if jsonOutput {
		return ui.FormatJSON(w, ui.ToMonthJSON(months))
	}
	ui.FormatMonthSummaries(w, months, today())
	return nil
}

func init() {
	monthsCmd.Flags().IntVar(&monthsYear, "year", 0, "year to list (default: current year)")
	rootCmd.AddCommand(monthsCmd)
}
