// Package config defines the scoreboard configuration, its defaults and
// where it is stored. Values are read through viper, so they can come from
// the config file, SCOREBOARD_* environment variables or flags.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete scoreboard configuration
type Config struct {
	Board   BoardConfig   `mapstructure:"board"`
	Output  OutputConfig  `mapstructure:"output"`
	TUI     TUIConfig     `mapstructure:"tui"`
	Logging LoggingConfig `mapstructure:"logging"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// BoardConfig controls the rules the board enforces
type BoardConfig struct {
	// StrictNames rejects team names containing "-" (default: false)
	StrictNames bool `mapstructure:"strict_names"`
}

// OutputConfig controls how summaries are printed by run and demo
type OutputConfig struct {
	// Format is one of "table", "plain", "json", "yaml" (default: "table")
	Format string `mapstructure:"format"`
}

// TUIConfig controls the interactive terminal UI
type TUIConfig struct {
	// Theme is the color theme (default: "default")
	// Options: "default", "monokai", "nord"
	Theme string `mapstructure:"theme"`
	// ThemeFile is a YAML theme to load at startup. When set it takes
	// precedence over Theme.
	ThemeFile string `mapstructure:"theme_file"`
	// MaxNameWidth truncates team names in the summary table (default: 24, min: 8, max: 64)
	MaxNameWidth int `mapstructure:"max_name_width"`
}

// LoggingConfig controls session logging
type LoggingConfig struct {
	// Enabled controls whether board operations are logged (default: true)
	Enabled bool `mapstructure:"enabled"`
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
	// Dir is where scoreboard.log is written. Empty means {config dir}/logs.
	Dir string `mapstructure:"dir"`
	// MaxSizeMB is the log file size in megabytes that triggers rotation (default: 5)
	MaxSizeMB int `mapstructure:"max_size_mb"`
	// MaxBackups is the number of rotated files to keep (default: 3)
	MaxBackups int `mapstructure:"max_backups"`
	// Compress gzips rotated files (default: false)
	Compress bool `mapstructure:"compress"`
}

// ResolveDir returns the log directory, falling back to {config dir}/logs.
// A leading ~ is expanded to the home directory.
func (l *LoggingConfig) ResolveDir() string {
	if l.Dir == "" {
		return filepath.Join(ConfigDir(), "logs")
	}
	if rest, ok := strings.CutPrefix(l.Dir, "~/"); ok {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, rest)
		}
	}
	return l.Dir
}

// MetricsConfig controls the Prometheus endpoint served during play
type MetricsConfig struct {
	// Address is the host:port to serve /metrics on. Empty disables it.
	Address string `mapstructure:"address"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Board: BoardConfig{
			StrictNames: false,
		},
		Output: OutputConfig{
			Format: FormatTable,
		},
		TUI: TUIConfig{
			Theme:        "default",
			MaxNameWidth: 24,
		},
		Logging: LoggingConfig{
			Enabled:    true,
			Level:      "info",
			MaxSizeMB:  5,
			MaxBackups: 3,
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("board.strict_names", defaults.Board.StrictNames)

	viper.SetDefault("output.format", defaults.Output.Format)

	viper.SetDefault("tui.theme", defaults.TUI.Theme)
	viper.SetDefault("tui.theme_file", defaults.TUI.ThemeFile)
	viper.SetDefault("tui.max_name_width", defaults.TUI.MaxNameWidth)

	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.dir", defaults.Logging.Dir)
	viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
	viper.SetDefault("logging.compress", defaults.Logging.Compress)

	viper.SetDefault("metrics.address", defaults.Metrics.Address)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration, or the defaults if it cannot be
// loaded
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "scoreboard")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".scoreboard"
	}
	return filepath.Join(home, ".config", "scoreboard")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
