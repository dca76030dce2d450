// Package styles provides shared lipgloss styles for UI components.
//
// This package centralizes color definitions and styling to ensure
// visual consistency across the picker and command output.
package styles

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Theme defines the color palette for UI components
type Theme struct {
	Primary color.Color // main accent color (borders, titles)
	Accent  color.Color // highlight color (selected items)
	Success color.Color // success indicators
	Error   color.Color // error messages
	Muted   color.Color // disabled/inactive text
	Normal  color.Color // standard text
	Info    color.Color // informational text
}

// DefaultTheme is the default color scheme
var DefaultTheme = Theme{
	Primary: lipgloss.Color("62"),  // cyan/teal
	Accent:  lipgloss.Color("212"), // pink/magenta
	Success: lipgloss.Color("82"),  // green
	Error:   lipgloss.Color("196"), // red
	Muted:   lipgloss.Color("240"), // dark gray
	Normal:  lipgloss.Color("252"), // light gray
	Info:    lipgloss.Color("244"), // gray
}

// NoneTheme renders without any colors (uses terminal defaults)
// Formatting (bold/italic/underline) is preserved
var NoneTheme = Theme{
	Primary: lipgloss.NoColor{},
	Accent:  lipgloss.NoColor{},
	Success: lipgloss.NoColor{},
	Error:   lipgloss.NoColor{},
	Muted:   lipgloss.NoColor{},
	Normal:  lipgloss.NoColor{},
	Info:    lipgloss.NoColor{},
}

// Shared styles, initialized from DefaultTheme
var (
	Bold   = lipgloss.NewStyle().Bold(true)
	Italic = lipgloss.NewStyle().Italic(true)

	PrimaryStyle lipgloss.Style
	AccentStyle  lipgloss.Style
	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	MutedStyle   lipgloss.Style
	NormalStyle  lipgloss.Style
	InfoStyle    lipgloss.Style

	// HighlightStyle for highlighting matched characters
	HighlightStyle lipgloss.Style

	// BadgeStyle renders decoration badges after an item's name
	BadgeStyle lipgloss.Style
)

func init() {
	Apply(DefaultTheme)
}

// Apply updates all shared style variables to use the given theme
func Apply(t Theme) {
	PrimaryStyle = lipgloss.NewStyle().Foreground(t.Primary)
	AccentStyle = lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	SuccessStyle = lipgloss.NewStyle().Foreground(t.Success)
	ErrorStyle = lipgloss.NewStyle().Foreground(t.Error)
	MutedStyle = lipgloss.NewStyle().Foreground(t.Muted)
	NormalStyle = lipgloss.NewStyle().Foreground(t.Normal)
	InfoStyle = lipgloss.NewStyle().Foreground(t.Info).Italic(true)

	HighlightStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true).
		Underline(true)

	BadgeStyle = lipgloss.NewStyle().Foreground(t.Info)
}

// Badge formats a short decoration label like [git] or [workspace]
func Badge(label string) string {
	return BadgeStyle.Render("[" + label + "]")
}
