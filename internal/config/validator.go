package config

import (
	"fmt"
	"net"
	"path/filepath"
	"slices"
	"strings"
)

// Output formats accepted by output.format
const (
	FormatTable = "table"
	FormatPlain = "plain"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// Bounds for tui.max_name_width
const (
	MinNameWidth = 8
	MaxNameWidth = 64
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "tui.max_name_width")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d validation errors:\n", len(e))
	for i, err := range e {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// ValidOutputFormats returns the list of valid summary output formats
func ValidOutputFormats() []string {
	return []string{FormatTable, FormatPlain, FormatJSON, FormatYAML}
}

// ValidThemes returns the TUI theme names. It must match the themes
// registered in tui/styles (kept separate to avoid an import cycle).
func ValidThemes() []string {
	return []string{"default", "monokai", "nord"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateOutput()...)
	errors = append(errors, c.validateTUI()...)
	errors = append(errors, c.validateLogging()...)
	errors = append(errors, c.validateMetrics()...)

	return errors
}

func (c *Config) validateOutput() []ValidationError {
	if slices.Contains(ValidOutputFormats(), c.Output.Format) {
		return nil
	}
	return []ValidationError{{
		Field:   "output.format",
		Value:   c.Output.Format,
		Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidOutputFormats(), ", ")),
	}}
}

func (c *Config) validateTUI() []ValidationError {
	var errors []ValidationError

	if c.TUI.Theme != "" && !slices.Contains(ValidThemes(), c.TUI.Theme) {
		errors = append(errors, ValidationError{
			Field:   "tui.theme",
			Value:   c.TUI.Theme,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidThemes(), ", ")),
		})
	}

	if f := c.TUI.ThemeFile; f != "" {
		if ext := strings.ToLower(filepath.Ext(f)); ext != ".yaml" && ext != ".yml" {
			errors = append(errors, ValidationError{
				Field:   "tui.theme_file",
				Value:   f,
				Message: "must be a .yaml or .yml file",
			})
		}
	}

	// 0 means use the default.
	if w := c.TUI.MaxNameWidth; w != 0 && (w < MinNameWidth || w > MaxNameWidth) {
		errors = append(errors, ValidationError{
			Field:   "tui.max_name_width",
			Value:   w,
			Message: fmt.Sprintf("must be between %d and %d columns", MinNameWidth, MaxNameWidth),
		})
	}

	return errors
}

func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), strings.ToLower(c.Logging.Level)) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	if c.Logging.MaxSizeMB < 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: "must be non-negative",
		})
	}

	const maxLogSizeMB = 1000
	if c.Logging.MaxSizeMB > maxLogSizeMB {
		errors = append(errors, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: fmt.Sprintf("exceeds maximum of %dMB", maxLogSizeMB),
		})
	}

	if c.Logging.MaxBackups < 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_backups",
			Value:   c.Logging.MaxBackups,
			Message: "must be non-negative",
		})
	}

	return errors
}

func (c *Config) validateMetrics() []ValidationError {
	if c.Metrics.Address == "" {
		return nil
	}
	if _, _, err := net.SplitHostPort(c.Metrics.Address); err != nil {
		return []ValidationError{{
			Field:   "metrics.address",
			Value:   c.Metrics.Address,
			Message: "must be a host:port address",
		}}
	}
	return nil
}
