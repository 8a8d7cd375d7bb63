package styles

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// ThemeFile is a custom theme definition loaded from YAML.
type ThemeFile struct {
	// Name is the theme's display name
	Name string `yaml:"name"`
	// Description is optional
	Description string `yaml:"description,omitempty"`
	// Version is the theme file format version (currently "1")
	Version string `yaml:"version"`
	// Colors defines the palette. All colors are #RGB or #RRGGBB.
	Colors ThemeColors `yaml:"colors"`
}

// ThemeColors contains the color definitions for a theme.
type ThemeColors struct {
	Primary   string `yaml:"primary"`
	Secondary string `yaml:"secondary"`
	Warning   string `yaml:"warning"`
	Error     string `yaml:"error"`
	Muted     string `yaml:"muted"`
	Surface   string `yaml:"surface"`
	Text      string `yaml:"text"`
	Border    string `yaml:"border"`
	// Leader defaults to Warning when omitted
	Leader string `yaml:"leader,omitempty"`
}

var hexColorRegex = regexp.MustCompile(`^#([0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)

// LoadThemeFile reads and validates a theme from path on fs.
func LoadThemeFile(fs afero.Fs, path string) (*ThemeFile, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading theme file: %w", err)
	}

	var theme ThemeFile
	if err := yaml.Unmarshal(data, &theme); err != nil {
		return nil, fmt.Errorf("parsing theme file: %w", err)
	}

	if err := theme.Validate(); err != nil {
		return nil, fmt.Errorf("invalid theme: %w", err)
	}

	return &theme, nil
}

// Validate checks that the theme file is well-formed.
func (t *ThemeFile) Validate() error {
	if t.Name == "" {
		return errors.New("theme name is required")
	}
	if t.Version != "1" {
		return fmt.Errorf("unsupported theme version: %q (supported: 1)", t.Version)
	}

	required := []struct{ name, value string }{
		{"primary", t.Colors.Primary},
		{"secondary", t.Colors.Secondary},
		{"warning", t.Colors.Warning},
		{"error", t.Colors.Error},
		{"muted", t.Colors.Muted},
		{"surface", t.Colors.Surface},
		{"text", t.Colors.Text},
		{"border", t.Colors.Border},
	}
	for _, c := range required {
		if c.value == "" {
			return fmt.Errorf("color '%s' is required", c.name)
		}
		if !hexColorRegex.MatchString(c.value) {
			return fmt.Errorf("color '%s' has invalid format: %s (expected #RGB or #RRGGBB)", c.name, c.value)
		}
	}
	if t.Colors.Leader != "" && !hexColorRegex.MatchString(t.Colors.Leader) {
		return fmt.Errorf("color 'leader' has invalid format: %s (expected #RGB or #RRGGBB)", t.Colors.Leader)
	}
	return nil
}

// ToPalette converts the theme file to a ColorPalette.
func (t *ThemeFile) ToPalette() *ColorPalette {
	leader := t.Colors.Leader
	if leader == "" {
		leader = t.Colors.Warning
	}
	return &ColorPalette{
		Primary:   lipgloss.Color(t.Colors.Primary),
		Secondary: lipgloss.Color(t.Colors.Secondary),
		Leader:    lipgloss.Color(leader),
		Warning:   lipgloss.Color(t.Colors.Warning),
		Error:     lipgloss.Color(t.Colors.Error),
		Muted:     lipgloss.Color(t.Colors.Muted),
		Surface:   lipgloss.Color(t.Colors.Surface),
		Text:      lipgloss.Color(t.Colors.Text),
		Border:    lipgloss.Color(t.Colors.Border),
	}
}

var (
	customMu     sync.RWMutex
	customThemes = make(map[ThemeName]*ThemeFile)
)

// RegisterThemeFile loads the theme at path and registers it under the
// file's base name without extension. Built-in names cannot be overridden.
func RegisterThemeFile(fs afero.Fs, path string) (ThemeName, error) {
	theme, err := LoadThemeFile(fs, path)
	if err != nil {
		return "", err
	}
	base := filepath.Base(path)
	name := strings.TrimSuffix(strings.TrimSuffix(base, ".yaml"), ".yml")
	if IsBuiltinTheme(name) {
		return "", fmt.Errorf("%s: cannot override built-in theme '%s'", base, name)
	}

	customMu.Lock()
	defer customMu.Unlock()
	customThemes[ThemeName(name)] = theme
	return ThemeName(name), nil
}

// GetCustomTheme returns a registered custom theme, or nil.
func GetCustomTheme(name ThemeName) *ThemeFile {
	customMu.RLock()
	defer customMu.RUnlock()
	return customThemes[name]
}

// ClearCustomThemes removes all registered custom themes.
func ClearCustomThemes() {
	customMu.Lock()
	defer customMu.Unlock()
	customThemes = make(map[ThemeName]*ThemeFile)
}

// IsValidTheme reports whether name is built-in or registered.
func IsValidTheme(name string) bool {
	return slices.Contains(BuiltinThemes(), name) || GetCustomTheme(ThemeName(name)) != nil
}

// ExportTheme renders a theme as YAML, suitable as a starting point for a
// custom theme file.
func ExportTheme(name ThemeName) ([]byte, error) {
	if custom := GetCustomTheme(name); custom != nil {
		return yaml.Marshal(custom)
	}
	if !IsBuiltinTheme(string(name)) {
		return nil, fmt.Errorf("unknown theme: %s", name)
	}
	p := GetPalette(name)
	return yaml.Marshal(&ThemeFile{
		Name:        string(name),
		Description: fmt.Sprintf("Exported from built-in theme '%s'", name),
		Version:     "1",
		Colors: ThemeColors{
			Primary:   string(p.Primary),
			Secondary: string(p.Secondary),
			Warning:   string(p.Warning),
			Error:     string(p.Error),
			Muted:     string(p.Muted),
			Surface:   string(p.Surface),
			Text:      string(p.Text),
			Border:    string(p.Border),
			Leader:    string(p.Leader),
		},
	})
}
