package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Storage backend names.
const (
	StorageJSON     = "json"
	StorageMarkdown = "markdown"
	StorageSQLite   = "sqlite"
)

// ShellConfig holds shell integration configuration.
type ShellConfig struct {
	CacheTTL    string `mapstructure:"cache_ttl"`
	TodayIcon   string `mapstructure:"today_icon"`
	NoTodayIcon string `mapstructure:"no_today_icon"`
	MonthIcon   string `mapstructure:"month_icon"`
	ShowBackend bool   `mapstructure:"show_backend"`
}

// ThemeConfig selects a colour preset and optional per-colour overrides.
type ThemeConfig struct {
	Preset        string `mapstructure:"preset"`
	Primary       string `mapstructure:"primary"`
	Secondary     string `mapstructure:"secondary"`
	Accent        string `mapstructure:"accent"`
	Muted         string `mapstructure:"muted"`
	Danger        string `mapstructure:"danger"`
	Background    string `mapstructure:"background"`
	Highlight     string `mapstructure:"highlight"`
	MarkdownStyle string `mapstructure:"markdown_style"`
}

// Config holds the application configuration.
type Config struct {
	Storage     string      `mapstructure:"storage"`
	DataDir     string      `mapstructure:"data_dir"`
	NotesFile   string      `mapstructure:"notes_file"`
	Editor      string      `mapstructure:"editor"`
	MaxWidth    int         `mapstructure:"max_width"`
	RecentLimit int         `mapstructure:"recent_limit"`
	LogFile     string      `mapstructure:"log_file"`
	Theme       ThemeConfig `mapstructure:"theme"`
	Shell       ShellConfig `mapstructure:"shell"`
}

// NotesPath returns the JSON document path, resolving a relative notes_file
// against the data directory.
func (c *Config) NotesPath() string {
	if filepath.IsAbs(c.NotesFile) {
		return c.NotesFile
	}
	return filepath.Join(c.DataDir, c.NotesFile)
}

// LogPath returns the log file path, resolved like NotesPath. Empty disables logging.
func (c *Config) LogPath() string {
	if c.LogFile == "" || filepath.IsAbs(c.LogFile) {
		return c.LogFile
	}
	return filepath.Join(c.DataDir, c.LogFile)
}

// DefaultDataDir returns the default data directory (~/.calnotes/).
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".calnotes")
	}
	return filepath.Join(home, ".calnotes")
}

// Load reads configuration from file, environment variables, and defaults.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("storage", StorageJSON)
	v.SetDefault("data_dir", DefaultDataDir())
	v.SetDefault("notes_file", "notes.json")
	v.SetDefault("editor", "")
	v.SetDefault("max_width", 100)
	v.SetDefault("recent_limit", 5)
	v.SetDefault("log_file", "calnotes.log")
	v.SetDefault("theme.preset", "default-dark")
	v.SetDefault("shell.cache_ttl", "5m")
	v.SetDefault("shell.today_icon", "📝")
	v.SetDefault("shell.no_today_icon", "·")
	v.SetDefault("shell.month_icon", "🗓")
	v.SetDefault("shell.show_backend", false)

	// Config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// XDG support
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "calnotes"))
		}
		v.AddConfigPath(DefaultDataDir())
		v.SetConfigName("config")
		v.SetConfigType("toml")
	}

	// Environment variables: CALNOTES_STORAGE, CALNOTES_DATA_DIR, etc.
	v.SetEnvPrefix("CALNOTES")
	v.AutomaticEnv()

	// Read config file (ignore not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Only return error if it's not a "file not found" error
			if configPath != "" {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
