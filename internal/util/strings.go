// Package util provides small text helpers shared by the renderers and the TUI.
package util

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Ellipsis marks truncated text.
const Ellipsis = "…"

// TruncateANSI shortens s to at most maxWidth terminal columns, ending with
// Ellipsis when anything was cut. Escape sequences and wide characters are
// measured the way the terminal draws them. A maxWidth below 1 yields "".
func TruncateANSI(s string, maxWidth int) string {
	if maxWidth < 1 {
		return ""
	}
	if lipgloss.Width(s) <= maxWidth {
		return s
	}
	return ansi.Truncate(s, maxWidth, Ellipsis)
}

// PadRight pads s with spaces to width columns. Strings already at or past
// width are returned unchanged.
func PadRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// MaxWidth returns the widest entry in ss, in terminal columns.
func MaxWidth(ss ...string) int {
	widest := 0
	for _, s := range ss {
		widest = max(widest, lipgloss.Width(s))
	}
	return widest
}
