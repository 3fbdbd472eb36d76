package ui

import "github.com/charmbracelet/lipgloss"

// Color palette using ANSI color codes for terminal compatibility.

// Semantic colors for status indication
const (
	ColorSuccess lipgloss.Color = "2" // Green
	ColorError   lipgloss.Color = "1" // Red
	ColorWarning lipgloss.Color = "3" // Yellow
	ColorInfo    lipgloss.Color = "6" // Cyan
)

// Text colors for content hierarchy
const (
	ColorPrimary   lipgloss.Color = "7" // White/default
	ColorSecondary lipgloss.Color = "4" // Blue
	ColorMuted     lipgloss.Color = "8" // Gray (bright black)
)

// Accent colors for the dashboard chrome (256-color palette)
const (
	ColorAccent lipgloss.Color = "205" // Pink, titles
	ColorBorder lipgloss.Color = "240" // Dark gray, card borders
	ColorFocus  lipgloss.Color = "81"  // Light blue, selected card
)

// TrendColor picks green for growth, red for decline, muted for flat.
func TrendColor(delta float64) lipgloss.Color {
	switch {
	case delta > 0:
		return ColorSuccess
	case delta < 0:
		return ColorError
	default:
		return ColorMuted
	}
}
