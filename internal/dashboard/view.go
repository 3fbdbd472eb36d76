package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/rileyhilliard/insights/internal/config"
	"github.com/rileyhilliard/insights/internal/layout"
	"github.com/rileyhilliard/insights/internal/ui"
)

// renderDashboard renders the complete dashboard view.
func (m Model) renderDashboard() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	b.WriteString(m.renderLayoutPanel())
	b.WriteString("\n")

	b.WriteString(m.renderSections())
	b.WriteString("\n")

	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) viewWidth() int {
	if m.width <= 0 {
		return defaultWidth
	}
	return m.width
}

// renderHeader renders the title with refresh state and data freshness.
func (m Model) renderHeader() string {
	title := titleStyle.Render("insights")

	var live string
	if m.scheduler.Running() {
		live = liveStyle.Render(fmt.Sprintf("%s live every %s", ui.SymbolEnabled, m.interval))
	} else {
		live = pausedStyle.Render(ui.SymbolDisabled + " paused")
	}

	updated := "never"
	if !m.feed.updated.IsZero() {
		updated = humanize.RelTime(m.feed.updated, m.now(), "ago", "from now")
	}

	rows := m.Rows()
	stats := labelStyle.Render(fmt.Sprintf(" | %s | updated %s | %d of %s",
		m.layoutMode, updated, len(rows), english.Plural(len(m.feed.dataset.Campaigns), "campaign", "campaigns")))

	return headerStyle.Render(title + " " + live + stats)
}

// renderLayoutPanel lists every section in layout order with the cursor and
// its visibility.
func (m Model) renderLayoutPanel() string {
	width := m.viewWidth()
	snap := m.registry.Snapshot()
	lines := make([]string, 0, len(snap))
	for i, s := range snap {
		mark := pausedStyle.Render(ui.SymbolDisabled)
		if s.Enabled {
			mark = liveStyle.Render(ui.SymbolEnabled)
		}
		cursor := " "
		label := fmt.Sprintf("%d. %s", i+1, s.Title)
		if i == m.selected {
			cursor = selectedRowStyle.Render(ui.SymbolCursor)
			label = selectedRowStyle.Render(label)
		}
		desc := labelStyle.Render(s.Description)
		lines = append(lines, fmt.Sprintf("%s %s %s  %s", cursor, mark, ui.PadRight(label, 26), desc))
	}
	value := fmt.Sprintf("%d/%d shown", len(m.registry.Enabled()), len(snap))
	return panel("Layout", value, lines, width)
}

// renderSections renders the enabled sections in order. Grid mode pairs
// sections side by side when the terminal is wide enough.
func (m Model) renderSections() string {
	enabled := m.registry.Enabled()
	if len(enabled) == 0 {
		return labelStyle.Render("  All sections are hidden. Press space to show the selected one.") + "\n"
	}

	width := m.viewWidth()
	if m.layoutMode != config.LayoutGrid || width < gridMinWidth {
		parts := make([]string, 0, len(enabled))
		for _, s := range enabled {
			parts = append(parts, m.renderSection(s, width))
		}
		return strings.Join(parts, "\n") + "\n"
	}

	colWidth := (width - 1) / 2
	var rows []string
	for i := 0; i < len(enabled); {
		if wide(enabled[i]) || i+1 == len(enabled) || wide(enabled[i+1]) {
			rows = append(rows, m.renderSection(enabled[i], width))
			i++
			continue
		}
		left := m.renderSection(enabled[i], colWidth)
		right := m.renderSection(enabled[i+1], colWidth)
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right))
		i += 2
	}
	return strings.Join(rows, "\n") + "\n"
}

// wide reports whether a section needs the full terminal width.
func wide(s layout.Section) bool {
	return s.ID == layout.CampaignPerformance
}

// renderFooter renders the status line and the short key help.
func (m Model) renderFooter() string {
	var lines []string
	if m.status != "" {
		style := statusStyle
		if m.statusErr {
			style = statusErrorStyle
		}
		lines = append(lines, " "+style.Render(m.status))
	}
	if m.feed.lastErr != nil {
		lines = append(lines, " "+statusErrorStyle.Render(ui.SymbolFail+" refresh failed: "+m.feed.lastErr.Error()))
	}
	lines = append(lines, footerStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp())))
	return strings.Join(lines, "\n")
}

// renderHelpOverlay renders the full shortcut list in a centered box.
func (m Model) renderHelpOverlay() string {
	content := titleStyle.Render("Keyboard Shortcuts") + "\n\n" +
		m.help.FullHelpView(m.keys.FullHelp()) + "\n\n" +
		labelStyle.Render("Press esc or ? to close")
	box := helpBoxStyle.Render(content)

	if m.width == 0 || m.height == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
