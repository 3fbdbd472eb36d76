package campaign

import "sort"

// RevenueRanges are the revenue filter choices offered by the dashboard, in
// cycling order.
var RevenueRanges = []string{All, "0-1000", "1000-5000", "5000-10000", "10000+"}

// TrafficSources are the traffic source filter choices, in cycling order.
var TrafficSources = []string{All, "direct", "organic", "referral", "social", "email"}

// Cycle returns the value after current in choices, wrapping around. An
// unknown current value restarts at the first choice.
func Cycle(choices []string, current string) string {
	if len(choices) == 0 {
		return current
	}
	for i, c := range choices {
		if c == current {
			return choices[(i+1)%len(choices)]
		}
	}
	return choices[0]
}

// Sources lists the distinct traffic sources present in rows, sorted, with
// All first. Used when a dataset carries sources outside the presets.
func Sources(rows []Row) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range rows {
		if r.Source == "" || seen[r.Source] {
			continue
		}
		seen[r.Source] = true
		out = append(out, r.Source)
	}
	sort.Strings(out)
	return append([]string{All}, out...)
}

// Summary aggregates a row set for the performance section.
type Summary struct {
	Campaigns   int     `json:"campaigns"`
	Clicks      int     `json:"clicks"`
	Impressions int     `json:"impressions"`
	Conversions int     `json:"conversions"`
	Revenue     float64 `json:"revenue"`
}

// CTR returns clicks per impression as a percentage, or 0 with no impressions.
func (s Summary) CTR() float64 {
	if s.Impressions == 0 {
		return 0
	}
	return float64(s.Clicks) / float64(s.Impressions) * 100
}

// ConversionRate returns conversions per click as a percentage.
func (s Summary) ConversionRate() float64 {
	if s.Clicks == 0 {
		return 0
	}
	return float64(s.Conversions) / float64(s.Clicks) * 100
}

// Summarize totals rows.
func Summarize(rows []Row) Summary {
	s := Summary{Campaigns: len(rows)}
	for _, r := range rows {
		s.Clicks += r.Clicks
		s.Impressions += r.Impressions
		s.Conversions += r.Conversions
		s.Revenue += r.Revenue
	}
	return s
}
