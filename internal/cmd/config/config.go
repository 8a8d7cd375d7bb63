// Package config provides CLI commands for managing scoreboard configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	appconfig "github.com/Iron-Ham/scoreboard/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify scoreboard configuration",
	Long: `View or modify scoreboard configuration.

Without arguments, displays the current configuration.
Use subcommands to modify settings or create a config file.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the user's config file.

Keys use dot notation, e.g.:
  scoreboard config set output.format plain
  scoreboard config set tui.theme nord
  scoreboard config set board.strict_names true

Valid keys:
  board.strict_names    - Reject team names containing '-' (true/false)
  output.format         - Summary format: table, plain, json, yaml
  tui.theme             - Color theme: default, monokai, nord
  tui.theme_file        - Path to a custom YAML theme
  tui.max_name_width    - Truncate team names to this many columns (8-64)
  logging.enabled       - Write a session log (true/false)
  logging.level         - Log level: debug, info, warn, error
  logging.dir           - Log directory
  logging.max_size_mb   - Rotate the log at this size
  logging.max_backups   - Rotated logs to keep
  logging.compress      - Gzip rotated logs (true/false)
  metrics.address       - host:port to serve Prometheus metrics during play`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long:  `Create a default config file at ~/.config/scoreboard/config.yaml with all available options.`,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE:  runConfigPath,
}

// Register adds the config command tree to parent.
func Register(parent *cobra.Command) {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(themeCmd)
	parent.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := appconfig.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintln(out)

	// Show where config is being read from
	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "Config file: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintln(out, "Config file: (none - using defaults)")
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "board:")
	fmt.Fprintf(out, "  strict_names: %v\n", cfg.Board.StrictNames)

	fmt.Fprintln(out, "output:")
	fmt.Fprintf(out, "  format: %s\n", cfg.Output.Format)

	fmt.Fprintln(out, "tui:")
	fmt.Fprintf(out, "  theme: %s\n", cfg.TUI.Theme)
	if cfg.TUI.ThemeFile != "" {
		fmt.Fprintf(out, "  theme_file: %s\n", cfg.TUI.ThemeFile)
	}
	fmt.Fprintf(out, "  max_name_width: %d\n", cfg.TUI.MaxNameWidth)

	fmt.Fprintln(out, "logging:")
	fmt.Fprintf(out, "  enabled: %v\n", cfg.Logging.Enabled)
	fmt.Fprintf(out, "  level: %s\n", cfg.Logging.Level)
	fmt.Fprintf(out, "  dir: %s\n", cfg.Logging.ResolveDir())
	fmt.Fprintf(out, "  max_size_mb: %d\n", cfg.Logging.MaxSizeMB)
	fmt.Fprintf(out, "  max_backups: %d\n", cfg.Logging.MaxBackups)
	fmt.Fprintf(out, "  compress: %v\n", cfg.Logging.Compress)

	fmt.Fprintln(out, "metrics:")
	if cfg.Metrics.Address != "" {
		fmt.Fprintf(out, "  address: %s\n", cfg.Metrics.Address)
	} else {
		fmt.Fprintln(out, "  address: (disabled)")
	}

	return nil
}

// validKeys maps settable keys to their value type.
var validKeys = map[string]string{
	"board.strict_names":  "bool",
	"output.format":       "string",
	"tui.theme":           "string",
	"tui.theme_file":      "string",
	"tui.max_name_width":  "int",
	"logging.enabled":     "bool",
	"logging.level":       "string",
	"logging.dir":         "string",
	"logging.max_size_mb": "int",
	"logging.max_backups": "int",
	"logging.compress":    "bool",
	"metrics.address":     "string",
}

// stringOptions lists the accepted values of enumerated string keys.
var stringOptions = map[string]func() []string{
	"output.format": appconfig.ValidOutputFormats,
	"tui.theme":     appconfig.ValidThemes,
	"logging.level": appconfig.ValidLogLevels,
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	value := args[1]

	keyType, ok := validKeys[key]
	if !ok {
		return fmt.Errorf("unknown configuration key: %s\nRun 'scoreboard config set --help' to see valid keys", key)
	}

	// Validate the value based on type
	var typedValue any
	switch keyType {
	case "string":
		if options, ok := stringOptions[key]; ok && !slices.Contains(options(), value) {
			return fmt.Errorf("invalid value for %s: %s\nValid options: %s",
				key, value, strings.Join(options(), ", "))
		}
		typedValue = value
	case "bool":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s: expected true or false", key)
		}
		typedValue = b
	case "int":
		intVal, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s: expected integer", key)
		}
		if intVal < 0 {
			return fmt.Errorf("invalid value for %s: must be non-negative", key)
		}
		typedValue = intVal
	}

	// Check the whole config with the new value before writing it.
	previous := viper.Get(key)
	viper.Set(key, typedValue)
	if _, err := appconfig.Load(); err != nil {
		viper.Set(key, previous)
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}

	configDir := appconfig.ConfigDir()
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		configFile = appconfig.ConfigFile()
	}
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Set %s = %v\n", key, typedValue)
	fmt.Fprintf(out, "Config saved to %s\n", configFile)
	return nil
}

// defaultConfigContent is written by config init.
const defaultConfigContent = `# Scoreboard Configuration

# Board rules
board:
  # Reject team names containing '-'
  strict_names: false

# How run and demo print the summary
# Options: table, plain, json, yaml
output:
  format: table

# TUI (terminal user interface) settings
tui:
  # Options: default, monokai, nord
  theme: default
  # Custom YAML theme; takes precedence over theme when set
  # theme_file: ~/.config/scoreboard/themes/pitch.yaml
  # Truncate long team names in the summary (8-64 columns)
  max_name_width: 24

# Session log
logging:
  enabled: true
  # Options: debug, info, warn, error
  level: info
  # Defaults to ~/.config/scoreboard/logs
  # dir: /var/log/scoreboard
  max_size_mb: 5
  max_backups: 3
  compress: false

# Prometheus metrics served during 'scoreboard play'
metrics:
  # address: localhost:9090
`

func runConfigInit(cmd *cobra.Command, args []string) error {
	configDir := appconfig.ConfigDir()
	configFile := appconfig.ConfigFile()

	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists at %s\nUse 'scoreboard config set' to modify values", configFile)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(configFile, []byte(defaultConfigContent), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created config file at %s\n", configFile)
	fmt.Fprintln(out, "Edit this file to customize the scoreboard.")
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "Active config: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(out, "Default path: %s (not created)\n", appconfig.ConfigFile())
	}

	fmt.Fprintln(out, "\nSearch paths:")
	fmt.Fprintf(out, "  1. %s\n", filepath.Join(appconfig.ConfigDir(), "config.yaml"))
	fmt.Fprintln(out, "  2. ./config.yaml (current directory)")
	fmt.Fprintln(out, "\nEnvironment variables: SCOREBOARD_* (e.g., SCOREBOARD_OUTPUT_FORMAT)")
	return nil
}
