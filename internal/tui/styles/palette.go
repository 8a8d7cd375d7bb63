package styles

import (
	"slices"

	"github.com/charmbracelet/lipgloss"
)

// ThemeName represents a named color theme.
type ThemeName string

// Available theme names.
const (
	ThemeDefault ThemeName = "default" // Purple/green dark theme
	ThemeMonokai ThemeName = "monokai" // Classic Monokai editor colors
	ThemeNord    ThemeName = "nord"    // Cool blue-gray
)

// BuiltinThemes returns all built-in theme names.
func BuiltinThemes() []string {
	return []string{
		string(ThemeDefault),
		string(ThemeMonokai),
		string(ThemeNord),
	}
}

// IsBuiltinTheme checks if a theme name is a built-in theme.
func IsBuiltinTheme(name string) bool {
	return slices.Contains(BuiltinThemes(), name)
}

// ColorPalette defines the color scheme for a theme.
type ColorPalette struct {
	// Primary accent (title, table header)
	Primary lipgloss.Color
	// Secondary accent (confirmations)
	Secondary lipgloss.Color
	// Leader highlights the top-ranked match
	Leader lipgloss.Color
	// Warning color (attention, rejected input)
	Warning lipgloss.Color
	// Error color
	Error lipgloss.Color
	// Muted color (help text, ranks)
	Muted lipgloss.Color
	// Surface color (status bar background)
	Surface lipgloss.Color
	// Text color
	Text lipgloss.Color
	// Border color
	Border lipgloss.Color
}

// DefaultPalette returns the default purple/green dark theme palette.
func DefaultPalette() *ColorPalette {
	return &ColorPalette{
		Primary:   lipgloss.Color("#A78BFA"), // Purple (violet-400)
		Secondary: lipgloss.Color("#10B981"), // Green
		Leader:    lipgloss.Color("#FBBF24"), // Yellow
		Warning:   lipgloss.Color("#F59E0B"), // Amber
		Error:     lipgloss.Color("#F87171"), // Red (red-400)
		Muted:     lipgloss.Color("#9CA3AF"), // Gray
		Surface:   lipgloss.Color("#1F2937"), // Dark surface
		Text:      lipgloss.Color("#F9FAFB"), // Light text
		Border:    lipgloss.Color("#6B7280"), // Gray-500
	}
}

// MonokaiPalette returns the classic Monokai editor theme palette.
func MonokaiPalette() *ColorPalette {
	return &ColorPalette{
		Primary:   lipgloss.Color("#F92672"), // Pink
		Secondary: lipgloss.Color("#A6E22E"), // Green
		Leader:    lipgloss.Color("#E6DB74"), // Yellow
		Warning:   lipgloss.Color("#FD971F"), // Orange
		Error:     lipgloss.Color("#F92672"), // Pink
		Muted:     lipgloss.Color("#75715E"), // Comment gray
		Surface:   lipgloss.Color("#272822"), // Background
		Text:      lipgloss.Color("#F8F8F2"), // Foreground
		Border:    lipgloss.Color("#49483E"), // Selection
	}
}

// NordPalette returns the Nord theme palette.
func NordPalette() *ColorPalette {
	return &ColorPalette{
		Primary:   lipgloss.Color("#88C0D0"), // Frost cyan
		Secondary: lipgloss.Color("#A3BE8C"), // Aurora green
		Leader:    lipgloss.Color("#EBCB8B"), // Aurora yellow
		Warning:   lipgloss.Color("#D08770"), // Aurora orange
		Error:     lipgloss.Color("#BF616A"), // Aurora red
		Muted:     lipgloss.Color("#7B88A1"), // Muted polar night
		Surface:   lipgloss.Color("#3B4252"), // Polar night
		Text:      lipgloss.Color("#ECEFF4"), // Snow storm
		Border:    lipgloss.Color("#4C566A"), // Polar night
	}
}

// GetPalette returns the palette for a theme name, falling back to a
// registered custom theme and then to the default palette.
func GetPalette(name ThemeName) *ColorPalette {
	switch name {
	case ThemeMonokai:
		return MonokaiPalette()
	case ThemeNord:
		return NordPalette()
	case ThemeDefault:
		return DefaultPalette()
	}
	if custom := GetCustomTheme(name); custom != nil {
		return custom.ToPalette()
	}
	return DefaultPalette()
}
