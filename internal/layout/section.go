package layout

// Section is a named, independently toggleable and reorderable region of the dashboard.
type Section struct {
	ID          string `yaml:"id" json:"id" mapstructure:"id"`
	Title       string `yaml:"title" json:"title" mapstructure:"title"`
	Enabled     bool   `yaml:"enabled" json:"enabled" mapstructure:"enabled"`
	Description string `yaml:"description" json:"description" mapstructure:"description"`
	Order       int    `yaml:"order" json:"order" mapstructure:"order"`
}

// Section IDs in the built-in catalog.
const (
	QuickStats          = "quick-stats"
	PerformanceMetrics  = "performance-metrics"
	AnalyticsCharts     = "analytics-charts"
	PageInteractions    = "page-interactions"
	CampaignPerformance = "campaign-performance"
	AIInsights          = "ai-insights"
	PredictiveAnalytics = "predictive-analytics"
)

// DefaultCatalog returns the closed-world section catalog in insertion order.
// A fresh slice is returned on every call.
func DefaultCatalog() []Section {
	return []Section{
		{ID: QuickStats, Title: "Quick Stats", Enabled: true, Description: "Overview of key performance metrics", Order: 0},
		{ID: PerformanceMetrics, Title: "Performance Metrics", Enabled: true, Description: "Detailed performance indicators", Order: 1},
		{ID: AnalyticsCharts, Title: "Analytics Charts", Enabled: true, Description: "Revenue, conversions, and traffic charts", Order: 2},
		{ID: PageInteractions, Title: "Page Interactions", Enabled: true, Description: "User interaction analytics", Order: 3},
		{ID: CampaignPerformance, Title: "Campaign Performance", Enabled: true, Description: "Campaign metrics and results", Order: 4},
		{ID: AIInsights, Title: "AI Insights", Enabled: true, Description: "AI-powered analytics insights", Order: 5},
		{ID: PredictiveAnalytics, Title: "Predictive Analytics", Enabled: true, Description: "Future trend predictions", Order: 6},
	}
}

// IsDense reports whether the section orders are exactly a permutation of 0..N-1.
func IsDense(sections []Section) bool {
	seen := make([]bool, len(sections))
	for _, s := range sections {
		if s.Order < 0 || s.Order >= len(sections) || seen[s.Order] {
			return false
		}
		seen[s.Order] = true
	}
	return true
}
