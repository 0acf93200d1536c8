package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/chris-regnier/calnotes/internal/shell"
	"github.com/spf13/cobra"
)

// statusData holds the template data for status formatting.
type statusData struct {
	TodayIcon     string
	MonthCount    int
	MonthIcon     string
	NextDate      string
	NextCountdown string
	Backend       string
	HasToday      bool
}

var (
	statusEnv     bool
	statusRefresh bool
	statusFormat  string
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show calendar prompt status",
	Long: `Show calendar status for shell prompt integration.

Outputs today indicator, the current month's note count, and the next upcoming
note. Reads from cache when fresh, queries storage when stale.

Use --env to output shell environment variable assignments.
Use --refresh to force a cache refresh.
Use --format with a Go template for custom output.`,
	Example: `  calnotes status
  calnotes status --env
  calnotes status --refresh
  calnotes status --format "{{.TodayIcon}} {{.MonthCount}}{{.MonthIcon}}"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return statusRun(cmd.OutOrStdout(), statusRefresh, statusEnv, statusFormat)
	},
}

func statusRun(w io.Writer, refresh, env bool, format string) error {
	// Parse cache TTL
	ttl, err := time.ParseDuration(appConfig.Shell.CacheTTL)
	if err != nil {
		ttl = 5 * time.Minute
	}

	t := now()
	cache := shell.ReadCache(appConfig.DataDir)
	if refresh || !cache.IsFresh(ttl, t) {
		cache, err = shell.ComputeStatus(store, today(), appConfig.Storage, t)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error computing status:", err)
			os.Exit(exitStorage)
		}
		if err := shell.WriteCache(appConfig.DataDir, cache); err != nil {
			// Non-fatal: cache write failure shouldn't break the prompt
			fmt.Fprintln(os.Stderr, "Warning: could not write cache:", err)
		}
	}

	data := buildStatusData(cache)

	if env {
		return outputEnv(w, data)
	}
	if format != "" {
		return outputTemplate(w, data, format)
	}
	return outputDefault(w, data)
}

func buildStatusData(cache *shell.PromptCache) statusData {
	icon := appConfig.Shell.NoTodayIcon
	if cache.Today {
		icon = appConfig.Shell.TodayIcon
	}

	return statusData{
		TodayIcon:     icon,
		MonthCount:    cache.MonthCount,
		MonthIcon:     appConfig.Shell.MonthIcon,
		NextDate:      cache.NextDate,
		NextCountdown: cache.NextCountdown,
		Backend:       cache.StorageBackend,
		HasToday:      cache.Today,
	}
}

func outputEnv(w io.Writer, data statusData) error {
	fmt.Fprintf(w, "export CALNOTES_TODAY=%q\n", data.TodayIcon)
	fmt.Fprintf(w, "export CALNOTES_MONTH_COUNT=%q\n", fmt.Sprintf("%d", data.MonthCount))
	fmt.Fprintf(w, "export CALNOTES_MONTH_ICON=%q\n", data.MonthIcon)
	if data.NextDate != "" {
		fmt.Fprintf(w, "export CALNOTES_NEXT=%q\n", data.NextDate)
		fmt.Fprintf(w, "export CALNOTES_NEXT_COUNTDOWN=%q\n", data.NextCountdown)
	}
	if data.Backend != "" {
		fmt.Fprintf(w, "export CALNOTES_BACKEND=%q\n", data.Backend)
	}
	return nil
}

func outputTemplate(w io.Writer, data statusData, format string) error {
	tmpl, err := template.New("status").Parse(format)
	if err != nil {
		return fmt.Errorf("invalid format template: %w", err)
	}
	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("executing format template: %w", err)
	}
	fmt.Fprintln(w)
	return nil
}

func outputDefault(w io.Writer, data statusData) error {
	var parts []string

	// Today indicator + month count
	parts = append(parts, fmt.Sprintf("%s %d%s", data.TodayIcon, data.MonthCount, data.MonthIcon))

	if data.NextDate != "" {
		parts = append(parts, fmt.Sprintf("next %s (%s)", data.NextDate, data.NextCountdown))
	}

	// Optional: backend
	if appConfig.Shell.ShowBackend && data.Backend != "" {
		parts = append(parts, data.Backend)
	}

	fmt.Fprintln(w, strings.Join(parts, " "))
	return nil
}

func init() {
	statusCmd.Flags().BoolVar(&statusEnv, "env", false, "output shell environment variable assignments")
	statusCmd.Flags().BoolVar(&statusRefresh, "refresh", false, "force cache refresh")
	statusCmd.Flags().StringVar(&statusFormat, "format", "", "Go template format string")
	rootCmd.AddCommand(statusCmd)
}
