// Package ui provides the interactive chat interface and its styling.
package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Brand palette, light and dark. The active profile's darkMode setting
// picks the theme.
var (
	lightForeground = lipgloss.Color("#101F38")
	lightAccent     = lipgloss.Color("#8BC34A")
	lightMuted      = lipgloss.Color("#6b7280")
	lightBorder     = lipgloss.Color("#dce0e5")

	darkForeground = lipgloss.Color("#f2f2f2")
	darkAccent     = lipgloss.Color("#8BC34A")
	darkMuted      = lipgloss.Color("#9ca3af")
	darkBorder     = lipgloss.Color("#2a3850")

	warnColor = lipgloss.Color("#FFC107")
	errColor  = lipgloss.Color("#e53935")
)

// Theme holds the styles for one color scheme.
type Theme struct {
	Title      lipgloss.Style
	UserLine   lipgloss.Style
	TutorLine  lipgloss.Style
	Korean     lipgloss.Style
	Correction lipgloss.Style
	Suggestion lipgloss.Style
	Status     lipgloss.Style
	Offline    lipgloss.Style
}

// NewTheme builds the style set for the requested mode.
func NewTheme(darkMode bool) Theme {
	fg, accent, muted, border := lightForeground, lightAccent, lightMuted, lightBorder
	if darkMode {
		fg, accent, muted, border = darkForeground, darkAccent, darkMuted, darkBorder
	}

	return Theme{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(border),
		UserLine:   lipgloss.NewStyle().Foreground(fg).Bold(true),
		TutorLine:  lipgloss.NewStyle().Foreground(fg),
		Korean:     lipgloss.NewStyle().Foreground(muted),
		Correction: lipgloss.NewStyle().Foreground(warnColor),
		Suggestion: lipgloss.NewStyle().Foreground(muted).Italic(true),
		Status:     lipgloss.NewStyle().Foreground(accent),
		Offline:    lipgloss.NewStyle().Foreground(errColor),
	}
}
