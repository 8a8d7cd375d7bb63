package styles

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// ThemedStyles contains all the lipgloss styles built from a color palette.
// This allows styles to be regenerated when the theme changes.
type ThemedStyles struct {
	Palette ColorPalette

	// Header area
	Title    lipgloss.Style
	Subtitle lipgloss.Style

	// Summary table
	TableHeader lipgloss.Style
	Cell        lipgloss.Style
	Rank        lipgloss.Style
	Leader      lipgloss.Style
	Score       lipgloss.Style
	TableBorder lipgloss.Style

	// Input and feedback
	Prompt  lipgloss.Style
	Info    lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style

	// Help bar
	HelpKey   lipgloss.Style
	HelpDesc  lipgloss.Style
	StatusBar lipgloss.Style
}

// NewThemedStyles builds every style from p.
func NewThemedStyles(p *ColorPalette) *ThemedStyles {
	return &ThemedStyles{
		Palette: *p,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary).
			MarginBottom(1),
		Subtitle: lipgloss.NewStyle().
			Foreground(p.Muted).
			Italic(true),

		TableHeader: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary).
			Padding(0, 1),
		Cell: lipgloss.NewStyle().
			Foreground(p.Text).
			Padding(0, 1),
		Rank: lipgloss.NewStyle().
			Foreground(p.Muted).
			Padding(0, 1),
		Leader: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Leader).
			Padding(0, 1),
		Score: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Text).
			Padding(0, 1),
		TableBorder: lipgloss.NewStyle().
			Foreground(p.Border),

		Prompt: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary),
		Info: lipgloss.NewStyle().
			Foreground(p.Secondary),
		Warning: lipgloss.NewStyle().
			Foreground(p.Warning),
		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Error),
		Muted: lipgloss.NewStyle().
			Foreground(p.Muted),

		HelpKey: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary),
		HelpDesc: lipgloss.NewStyle().
			Foreground(p.Muted),
		StatusBar: lipgloss.NewStyle().
			Foreground(p.Text).
			Background(p.Surface).
			Padding(0, 1),
	}
}

var (
	activeMu    sync.RWMutex
	activeTheme = NewThemedStyles(DefaultPalette())
	activeName  = ThemeDefault
)

// SetActiveTheme switches the styles returned by GetActiveTheme.
func SetActiveTheme(name ThemeName) {
	t := NewThemedStyles(GetPalette(name))

	activeMu.Lock()
	defer activeMu.Unlock()
	activeTheme = t
	activeName = name
}

// GetActiveTheme returns the current styles.
func GetActiveTheme() *ThemedStyles {
	activeMu.RLock()
	defer activeMu.RUnlock()
	return activeTheme
}

// ActiveThemeName returns the name last passed to SetActiveTheme.
func ActiveThemeName() ThemeName {
	activeMu.RLock()
	defer activeMu.RUnlock()
	return activeName
}
