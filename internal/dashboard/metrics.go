package dashboard

import (
	"math"
	"math/rand/v2"

	"github.com/rileyhilliard/insights/internal/ui"
)

// Format selects how a metric value is displayed.
type Format int

const (
	FormatCurrency Format = iota
	FormatCount
	FormatPercent
)

// Metric IDs on the quick stats board.
const (
	MetricRevenue     = "revenue"
	MetricActiveUsers = "active-users"
	MetricConversions = "conversions"
	MetricGrowthRate  = "growth-rate"
)

// Metric is one quick stats card. Base and BaseChange are the reference
// values each refresh perturbs; Value and Change are what is displayed.
type Metric struct {
	ID         string
	Title      string
	Format     Format
	Base       float64
	BaseChange float64
	Variance   float64
	Value      float64
	Change     float64
}

// Display formats Value for the card.
func (m Metric) Display() string {
	switch m.Format {
	case FormatCurrency:
		return ui.FormatCurrency(m.Value)
	case FormatPercent:
		return ui.FormatPercent(m.Value)
	default:
		return ui.FormatCount(m.Value)
	}
}

// DefaultMetrics returns the four quick stats cards at their reference values.
func DefaultMetrics() []Metric {
	metrics := []Metric{
		{ID: MetricRevenue, Title: "Total Revenue", Format: FormatCurrency, Base: 847329, BaseChange: 12.5, Variance: 0.1},
		{ID: MetricActiveUsers, Title: "Active Users", Format: FormatCount, Base: 24563, BaseChange: 8.2, Variance: 0.1},
		{ID: MetricConversions, Title: "Conversions", Format: FormatCount, Base: 1429, BaseChange: -2.4, Variance: 0.1},
		{ID: MetricGrowthRate, Title: "Growth Rate", Format: FormatPercent, Base: 23.8, BaseChange: 5.7, Variance: 0.05},
	}
	for i := range metrics {
		metrics[i].Value = metrics[i].Base
		metrics[i].Change = metrics[i].BaseChange
	}
	return metrics
}

// Board holds the live metric cards.
type Board struct {
	metrics []Metric
	rng     *rand.Rand
}

// NewBoard creates a board. A nil rng uses a randomly seeded source.
func NewBoard(metrics []Metric, rng *rand.Rand) *Board {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	out := make([]Metric, len(metrics))
	copy(out, metrics)
	return &Board{metrics: out, rng: rng}
}

// Metrics returns a copy of the cards in display order.
func (b *Board) Metrics() []Metric {
	out := make([]Metric, len(b.metrics))
	copy(out, b.metrics)
	return out
}

// Get returns the card with the given id.
func (b *Board) Get(id string) (Metric, bool) {
	for _, m := range b.metrics {
		if m.ID == id {
			return m, true
		}
	}
	return Metric{}, false
}

// Regenerate perturbs every card around its reference values. A value moves
// at most Variance/2 of its base in either direction; the change figure
// moves at most one point.
func (b *Board) Regenerate() {
	for i := range b.metrics {
		m := &b.metrics[i]
		v := m.Base * (1 + (b.rng.Float64()-0.5)*m.Variance)
		if m.Format == FormatPercent {
			m.Value = round1(v)
		} else {
			m.Value = math.Round(v)
		}
		m.Change = round1(m.BaseChange + (b.rng.Float64()-0.5)*2)
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
