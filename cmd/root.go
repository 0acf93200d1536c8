package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/chris-regnier/calnotes/internal/config"
	"github.com/chris-regnier/calnotes/internal/editor"
	"github.com/chris-regnier/calnotes/internal/logs"
	"github.com/chris-regnier/calnotes/internal/shell"
	"github.com/chris-regnier/calnotes/internal/storage"
	"github.com/chris-regnier/calnotes/internal/storage/jsonfile"
	"github.com/chris-regnier/calnotes/internal/storage/markdown"
	"github.com/chris-regnier/calnotes/internal/storage/sqlite"
	"github.com/chris-regnier/calnotes/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	cfgFile        string
	jsonOutput     bool
	storageBackend string
	appConfig      *config.Config
	store          *storage.Store
)

// skipStore marks commands that run without opening the notes store.
const skipStore = "skip-store"

var rootCmd = &cobra.Command{
	Use:   "calnotes",
	Short: "A calendar notes CLI tool",
	Long:  "calnotes keeps one note per calendar day, browsable by year and month, with pluggable storage backends.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Load config
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		appConfig = cfg

		// Override storage backend from flag
		if storageBackend != "" {
			appConfig.Storage = storageBackend
		}

		if err := logs.Initialize(appConfig.LogPath()); err != nil {
			fmt.Fprintln(os.Stderr, "Warning: could not open log file:", err)
		}

		if cmd.Annotations[skipStore] == "true" {
			return nil
		}

		backend, location, err := openBackend(appConfig)
		if err != nil {
			return err
		}
		store, err = storage.Open(backend)
		if err != nil {
			backend.Close()
			logs.Printf("opening %s store at %s: %v", appConfig.Storage, location, err)
			if errors.Is(err, storage.ErrCorrupt) {
				fmt.Fprintf(os.Stderr, "Error: notes store %s is corrupt and was left untouched: %v\n", location, err)
			} else {
				fmt.Fprintf(os.Stderr, "Error: reading notes store %s: %v\n", location, err)
			}
			os.Exit(exitStorage)
		}
		logs.Printf("loaded %d notes from %s store at %s", store.Len(), appConfig.Storage, location)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if store != nil {
			store.Close()
		}
		return logs.Close()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			// Non-TTY: fall back to today's note
			return showRun(os.Stdout, today(), false)
		}
		err := ui.RunTUI(store, ui.TUIConfig{
			Editor:      editor.ResolveEditor(appConfig.Editor),
			MaxWidth:    appConfig.MaxWidth,
			RecentLimit: appConfig.RecentLimit,
			Theme:       ui.ResolveTheme(appConfig.Theme),
		})
		exitOn(flushOnExit())
		// The TUI may have saved notes.
		shell.InvalidateCache(appConfig.DataDir)
		return err
	},
}

// openBackend builds the configured storage backend and reports where it keeps
// its data.
func openBackend(cfg *config.Config) (storage.Backend, string, error) {
	switch cfg.Storage {
	case config.StorageJSON, "":
		b, err := jsonfile.New(cfg.NotesPath())
		if err != nil {
			return nil, "", fmt.Errorf("initializing json storage: %w", err)
		}
		return b, cfg.NotesPath(), nil
	case config.StorageMarkdown:
		b, err := markdown.New(cfg.DataDir)
		if err != nil {
			return nil, "", fmt.Errorf("initializing markdown storage: %w", err)
		}
		return b, cfg.DataDir, nil
	case config.StorageSQLite:
		b, err := sqlite.New(cfg.DataDir)
		if err != nil {
			return nil, "", fmt.Errorf("initializing sqlite storage: %w", err)
		}
		return b, cfg.DataDir, nil
	default:
		return nil, "", fmt.Errorf("unknown storage backend: %s", cfg.Storage)
	}
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().StringVar(&storageBackend, "storage", "", "storage backend (json|markdown|sqlite)")

	// Silence Cobra's built-in error and usage printing so we control stderr output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}
