package campaign

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCycle(t *testing.T) {
	assert.Equal(t, "0-1000", Cycle(RevenueRanges, All))
	assert.Equal(t, All, Cycle(RevenueRanges, "10000+"), "wraps around")
	assert.Equal(t, All, Cycle(RevenueRanges, "250-750"), "unknown restarts")
	assert.Equal(t, "x", Cycle(nil, "x"))
}

func TestSources(t *testing.T) {
	rows := []Row{
		{Source: "social"},
		{Source: "email"},
		{Source: "social"},
		{Source: ""},
	}
	assert.Equal(t, []string{All, "email", "social"}, Sources(rows))
	assert.Equal(t, []string{All}, Sources(nil))
}

func TestSummarize(t *testing.T) {
	rows := []Row{
		{Clicks: 100, Impressions: 1000, Conversions: 10, Revenue: 500},
		{Clicks: 50, Impressions: 1000, Conversions: 5, Revenue: 250.5},
	}

	s := Summarize(rows)

	assert.Equal(t, 2, s.Campaigns)
	assert.Equal(t, 150, s.Clicks)
	assert.Equal(t, 2000, s.Impressions)
	assert.Equal(t, 15, s.Conversions)
	assert.InDelta(t, 750.5, s.Revenue, 1e-9)
	assert.InDelta(t, 7.5, s.CTR(), 1e-9)
	assert.InDelta(t, 10.0, s.ConversionRate(), 1e-9)

	empty := Summarize(nil)
	assert.Zero(t, empty.CTR())
	assert.Zero(t, empty.ConversionRate())
}
