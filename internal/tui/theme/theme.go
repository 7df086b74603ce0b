package theme

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/joacominatel/pgmeta/internal/metadata"
)

// Palette.
var (
	ColorPrimary   = lipgloss.Color("33")  // Blue
	ColorSuccess   = lipgloss.Color("42")  // Green
	ColorError     = lipgloss.Color("196") // Red
	ColorBorder    = lipgloss.Color("238") // Dark gray
	ColorMuted     = lipgloss.Color("245") // Light gray
	ColorHighlight = lipgloss.Color("229") // Yellow
)

// Type family colors used for column types.
var familyColors = map[metadata.Family]lipgloss.Color{
	metadata.FamilyCharacter: lipgloss.Color("114"),
	metadata.FamilyNumeric:   lipgloss.Color("75"),
	metadata.FamilyDateTime:  lipgloss.Color("180"),
	metadata.FamilyInterval:  lipgloss.Color("176"),
}

// Shared styles used across TUI components.
var (
	StyleBorder = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder)

	StyleActiveBorder = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(ColorPrimary)

	StyleMuted = lipgloss.NewStyle().
			Foreground(ColorMuted)

	StyleError = lipgloss.NewStyle().
			Foreground(ColorError)

	StyleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Padding(0, 1)
)

// FamilyStyle returns the style for a column type of the given family.
// Types outside the known families render muted.
func FamilyStyle(f metadata.Family) lipgloss.Style {
	if c, ok := familyColors[f]; ok {
		return lipgloss.NewStyle().Foreground(c)
	}
	return StyleMuted
}
