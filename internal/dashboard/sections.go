package dashboard

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/insights/internal/campaign"
	"github.com/rileyhilliard/insights/internal/layout"
	"github.com/rileyhilliard/insights/internal/ui"
)

const (
	chartLabelWidth = 18
	chartMaxBars    = 6
	projectionSteps = 12
)

// renderSection renders one enabled section as a framed panel.
func (m Model) renderSection(s layout.Section, width int) string {
	if width < minPanelWidth {
		width = minPanelWidth
	}
	rows := m.Rows()

	var value string
	var lines []string
	switch s.ID {
	case layout.QuickStats:
		lines = m.quickStatsLines(width)
	case layout.PerformanceMetrics:
		lines = performanceLines(rows)
	case layout.AnalyticsCharts:
		value = "revenue by campaign"
		lines = revenueChartLines(rows, width)
	case layout.PageInteractions:
		value = "clicks by source"
		lines = sourceLines(rows, width)
	case layout.CampaignPerformance:
		value = m.sortLabel()
		lines = m.campaignTableLines(rows, width)
	case layout.AIInsights:
		lines = m.insightLines(rows)
	case layout.PredictiveAnalytics:
		value = fmt.Sprintf("%d refreshes ahead", projectionSteps)
		lines = m.predictionLines()
	default:
		lines = []string{labelStyle.Render(s.Description)}
	}
	if len(lines) == 0 {
		lines = []string{labelStyle.Render("No campaigns match the current filters")}
	}
	return panel(s.Title, value, lines, width)
}

func (m Model) quickStatsLines(width int) []string {
	metrics := m.feed.board.Metrics()
	lines := make([]string, 0, len(metrics))
	spark := sparklineWidth
	if width < 70 {
		spark = 8
	}
	for _, mt := range metrics {
		delta := lipgloss.NewStyle().Foreground(ui.TrendColor(mt.Change)).Render(ui.FormatDelta(mt.Change))
		line := ui.PadRight(labelStyle.Render(mt.Title), 16) +
			ui.PadRight(valueStyle.Render(mt.Display()), 12) +
			ui.PadRight(delta, 10) + " " +
			ui.RenderSparkline(m.feed.history.Last(mt.ID, spark), spark)
		lines = append(lines, line)
	}
	return lines
}

func performanceLines(rows []campaign.Row) []string {
	if len(rows) == 0 {
		return nil
	}
	sum := campaign.Summarize(rows)
	kv := func(k, v string) string {
		return ui.PadRight(labelStyle.Render(k), 18) + valueStyle.Render(v)
	}
	return []string{
		kv("Campaigns", ui.FormatCount(float64(sum.Campaigns))),
		kv("Impressions", ui.FormatCompact(float64(sum.Impressions))),
		kv("Clicks", ui.FormatCompact(float64(sum.Clicks))),
		kv("Click-through", ui.FormatPercent(sum.CTR())),
		kv("Conversions", ui.FormatCount(float64(sum.Conversions))),
		kv("Conversion rate", ui.FormatPercent(sum.ConversionRate())),
		kv("Revenue", ui.FormatCurrency(sum.Revenue)),
	}
}

// barLine renders "label ▰▰▰▱▱ value" sized to width.
func barLine(label string, value, max float64, display string, width int) string {
	barWidth := width - 4 - chartLabelWidth - 1 - 10
	if barWidth < 4 {
		barWidth = 4
	}
	return ui.PadRight(truncate(label, chartLabelWidth), chartLabelWidth) + " " +
		bar(value, max, barWidth) + " " + display
}

func revenueChartLines(rows []campaign.Row, width int) []string {
	if len(rows) == 0 {
		return nil
	}
	top := campaign.Sort(rows, &campaign.SortSpec{Key: campaign.FieldRevenue, Direction: campaign.Desc})
	if len(top) > chartMaxBars {
		top = top[:chartMaxBars]
	}
	max := top[0].Revenue
	lines := make([]string, 0, len(top))
	for _, r := range top {
		lines = append(lines, barLine(r.Campaign, r.Revenue, max, ui.FormatCompact(r.Revenue), width))
	}
	return lines
}

type sourceTotal struct {
	source string
	clicks int
}

// clicksBySource sums clicks per traffic source, largest first.
func clicksBySource(rows []campaign.Row) []sourceTotal {
	totals := make(map[string]int)
	for _, r := range rows {
		src := r.Source
		if src == "" {
			src = "unknown"
		}
		totals[src] += r.Clicks
	}
	out := make([]sourceTotal, 0, len(totals))
	for s, c := range totals {
		out = append(out, sourceTotal{source: s, clicks: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].clicks != out[j].clicks {
			return out[i].clicks > out[j].clicks
		}
		return out[i].source < out[j].source
	})
	return out
}

func sourceLines(rows []campaign.Row, width int) []string {
	totals := clicksBySource(rows)
	if len(totals) == 0 {
		return nil
	}
	max := float64(totals[0].clicks)
	lines := make([]string, 0, len(totals))
	for _, t := range totals {
		lines = append(lines, barLine(t.source, float64(t.clicks), max, ui.FormatCompact(float64(t.clicks)), width))
	}
	return lines
}

// sortLabel describes the active sort for the campaign table header.
func (m Model) sortLabel() string {
	if m.sortSpec == nil {
		return "unsorted"
	}
	arrow := ui.SymbolUp
	if m.sortSpec.Direction == campaign.Desc {
		arrow = ui.SymbolDown
	}
	return fmt.Sprintf("sort %s %s", m.sortSpec.Key, arrow)
}

// filterSummary describes the active criteria on one line.
func (m Model) filterSummary() string {
	c := m.criteria
	onOff := func(b bool) string {
		if b {
			return "on"
		}
		return "off"
	}
	parts := []string{
		"period " + string(c.TimePeriod),
		"revenue " + c.RevenueRange,
		"source " + c.TrafficSource,
		"high-value " + onOff(c.HighValue),
		"repeat " + onOff(c.RepeatCustomers),
	}
	if c.Search != "" {
		parts = append(parts, fmt.Sprintf("search %q", c.Search))
	}
	return strings.Join(parts, " · ")
}

var campaignColumns = []ui.TableColumn{
	{Title: "Campaign", Width: 10},
	{Title: "Clicks", Width: 6},
	{Title: "Impr.", Width: 6},
	{Title: "CTR", Width: 5},
	{Title: "Conv.", Width: 5},
	{Title: "Revenue", Width: 8},
	{Title: "Status", Width: 6},
	{Title: "Date", Width: 10},
}

// CampaignTableRows formats rows as table cells in campaignColumns order.
func CampaignTableRows(rows []campaign.Row) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			r.Campaign,
			ui.FormatCount(float64(r.Clicks)),
			ui.FormatCount(float64(r.Impressions)),
			ui.FormatPercent(r.CTR),
			ui.FormatCount(float64(r.Conversions)),
			ui.FormatCurrency(r.Revenue),
			r.Status,
			r.Date,
		})
	}
	return out
}

// CampaignColumns returns the campaign table columns fitted to cells.
func CampaignColumns(cells [][]string) []ui.TableColumn {
	return ui.FitColumns(campaignColumns, cells, 28)
}

func (m Model) campaignTableLines(rows []campaign.Row, width int) []string {
	lines := []string{labelStyle.Render(m.filterSummary())}
	if m.searching {
		lines = append(lines, m.search.View()+labelStyle.Render("  enter keep · esc cancel"))
	}
	if len(rows) == 0 {
		return append(lines, labelStyle.Render("No campaigns match the current filters"))
	}
	cells := CampaignTableRows(rows)
	table := ui.RenderSimpleTable(CampaignColumns(cells), cells)
	return append(lines, strings.Split(strings.TrimRight(table, "\n"), "\n")...)
}

func (m Model) insightLines(rows []campaign.Row) []string {
	if len(rows) == 0 {
		return nil
	}
	var lines []string

	byRevenue := campaign.Sort(rows, &campaign.SortSpec{Key: campaign.FieldRevenue, Direction: campaign.Desc})
	lines = append(lines, fmt.Sprintf("%s %s leads revenue at %s",
		ui.SymbolUp, valueStyle.Render(byRevenue[0].Campaign), ui.FormatCurrency(byRevenue[0].Revenue)))

	byCTR := campaign.Sort(rows, &campaign.SortSpec{Key: campaign.FieldCTR, Direction: campaign.Desc})
	lines = append(lines, fmt.Sprintf("%s %s has the best click-through at %s",
		ui.SymbolUp, valueStyle.Render(byCTR[0].Campaign), ui.FormatPercent(byCTR[0].CTR)))

	if len(rows) > 1 {
		worst := byCTR[len(byCTR)-1]
		lines = append(lines, fmt.Sprintf("%s %s trails at %s click-through",
			ui.SymbolDown, valueStyle.Render(worst.Campaign), ui.FormatPercent(worst.CTR)))
	}

	if totals := clicksBySource(rows); len(totals) > 0 {
		lines = append(lines, fmt.Sprintf("%s %s drives the most clicks", ui.SymbolFlat, valueStyle.Render(totals[0].source)))
	}

	for _, mt := range m.feed.board.Metrics() {
		if mt.Change < 0 {
			lines = append(lines, statusErrorStyle.Render(fmt.Sprintf("%s %s is down %.1f%%", ui.SymbolDown, mt.Title, -mt.Change)))
		}
	}
	return lines
}

// Projection fits a least-squares line through points and extrapolates
// steps samples past the last one. ok is false with fewer than two points.
func Projection(points []float64, steps int) (value, slope float64, ok bool) {
	n := len(points)
	if n < 2 {
		return 0, 0, false
	}
	var sumX, sumY, sumXY, sumXX float64
	for i, y := range points {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}
	fn := float64(n)
	denom := fn*sumXX - sumX*sumX
	if denom == 0 {
		return points[n-1], 0, true
	}
	slope = (fn*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / fn
	return intercept + slope*float64(n-1+steps), slope, true
}

func (m Model) predictionLines() []string {
	var lines []string
	for _, mt := range m.feed.board.Metrics() {
		hist := m.feed.history.Last(mt.ID, DefaultHistorySize)
		projected, slope, ok := Projection(hist, projectionSteps)
		if !ok {
			lines = append(lines, ui.PadRight(labelStyle.Render(mt.Title), 16)+labelStyle.Render("collecting data..."))
			continue
		}
		p := mt
		p.Value = projected
		trend := lipgloss.NewStyle().Foreground(ui.TrendColor(slope)).Render(ui.TrendSymbol(slope))
		lines = append(lines, ui.PadRight(labelStyle.Render(mt.Title), 16)+
			ui.PadRight(valueStyle.Render(p.Display()), 12)+trend)
	}
	return lines
}
