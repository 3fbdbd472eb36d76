package dashboard

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/rileyhilliard/insights/internal/ui"
)

// Panel widths.
const (
	defaultWidth   = 100
	minPanelWidth  = 30
	gridMinWidth   = 100 // below this, grid mode falls back to one column
	sparklineWidth = 16
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Foreground(ui.ColorAccent).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(ui.ColorMuted)

	valueStyle = lipgloss.NewStyle().
			Foreground(ui.ColorPrimary).
			Bold(true)

	footerStyle = lipgloss.NewStyle().
			Foreground(ui.ColorMuted).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Foreground(ui.ColorInfo)

	statusErrorStyle = lipgloss.NewStyle().
				Foreground(ui.ColorError)

	liveStyle = lipgloss.NewStyle().
			Foreground(ui.ColorSuccess).
			Bold(true)

	pausedStyle = lipgloss.NewStyle().
			Foreground(ui.ColorMuted)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ui.ColorBorder).
			Padding(0, 1).
			MarginRight(1)

	selectedRowStyle = lipgloss.NewStyle().
				Foreground(ui.ColorFocus).
				Bold(true)

	helpBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ui.ColorAccent).
			Padding(1, 2)

	borderStyle = lipgloss.NewStyle().Foreground(ui.ColorBorder)
)

// sectionHeader renders the top border of a section panel with the title on
// the left and a summary value on the right.
// Format: ╭─ Title ───────────────── Value ╮
func sectionHeader(title, value string, width int) string {
	if width < 10 {
		width = 10
	}

	leftWidth := 3 + lipgloss.Width(title) + 1
	rightWidth := 2
	if value != "" {
		rightWidth += 1 + lipgloss.Width(value)
	}

	fill := width - leftWidth - rightWidth
	if fill < 1 {
		fill = 1
	}

	out := borderStyle.Render("╭─ ") +
		titleStyle.Render(title) +
		borderStyle.Render(" "+strings.Repeat("─", fill))
	if value != "" {
		out += " " + statusStyle.Render(value)
	}
	return out + borderStyle.Render(" ╮")
}

// sectionFooter renders the bottom border of a section panel.
func sectionFooter(width int) string {
	if width < 2 {
		width = 2
	}
	return borderStyle.Render("╰" + strings.Repeat("─", width-2) + "╯")
}

// sectionLine renders one content line padded between the panel borders.
func sectionLine(content string, width int) string {
	if width < 4 {
		width = 4
	}
	inner := width - 4
	if lipgloss.Width(content) > inner {
		content = ansi.Truncate(content, inner, "…")
	}
	pad := inner - lipgloss.Width(content)
	if pad < 0 {
		pad = 0
	}
	return borderStyle.Render("│") + " " + content + strings.Repeat(" ", pad) + " " + borderStyle.Render("│")
}

// panel frames lines as a section.
func panel(title, value string, lines []string, width int) string {
	out := make([]string, 0, len(lines)+2)
	out = append(out, sectionHeader(title, value, width))
	for _, l := range lines {
		out = append(out, sectionLine(l, width))
	}
	out = append(out, sectionFooter(width))
	return strings.Join(out, "\n")
}

// truncate shortens text to max display columns, adding an ellipsis.
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	return ansi.Truncate(s, max, "…")
}

// bar renders a horizontal bar of width cells filled in proportion to
// value/max.
func bar(value, max float64, width int) string {
	if width < 1 {
		width = 1
	}
	filled := 0
	if max > 0 && value > 0 {
		filled = int(value / max * float64(width))
		if filled > width {
			filled = width
		}
		if filled == 0 {
			filled = 1
		}
	}
	return lipgloss.NewStyle().Foreground(ui.ColorInfo).Render(strings.Repeat("▰", filled)) +
		borderStyle.Render(strings.Repeat("▱", width-filled))
}
