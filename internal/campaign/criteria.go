package campaign

import (
	"fmt"

	"github.com/rileyhilliard/insights/internal/errors"
)

// All is the sentinel that disables the revenue range and traffic source predicates.
const All = "all"

// TimePeriod selects how far back rows are kept.
type TimePeriod string

const (
	Period7Days  TimePeriod = "7d"
	Period30Days TimePeriod = "30d"
	Period90Days TimePeriod = "90d"
	Period1Year  TimePeriod = "1y"
)

// TimePeriods lists the valid periods, shortest first.
var TimePeriods = []TimePeriod{Period7Days, Period30Days, Period90Days, Period1Year}

// Days returns the day threshold for the period. ok is false for unknown periods.
func (p TimePeriod) Days() (days int, ok bool) {
	switch p {
	case Period7Days:
		return 7, true
	case Period30Days:
		return 30, true
	case Period90Days:
		return 90, true
	case Period1Year:
		return 365, true
	}
	return 0, false
}

// Next cycles to the following period, wrapping around.
func (p TimePeriod) Next() TimePeriod {
	for i, tp := range TimePeriods {
		if tp == p {
			return TimePeriods[(i+1)%len(TimePeriods)]
		}
	}
	return TimePeriods[0]
}

// Criteria is the composite filter. It is a value object: edits produce a new
// Criteria via With, never a partial mutation.
type Criteria struct {
	TimePeriod      TimePeriod `yaml:"timePeriod" json:"timePeriod" mapstructure:"timePeriod"`
	RevenueRange    string     `yaml:"revenueRange" json:"revenueRange" mapstructure:"revenueRange"`
	TrafficSource   string     `yaml:"trafficSource" json:"trafficSource" mapstructure:"trafficSource"`
	HighValue       bool       `yaml:"highValue" json:"highValue" mapstructure:"highValue"`
	RepeatCustomers bool       `yaml:"repeatCustomers" json:"repeatCustomers" mapstructure:"repeatCustomers"`
	Search          string     `yaml:"search,omitempty" json:"search,omitempty" mapstructure:"search"`
}

// DefaultCriteria returns the filter the dashboard starts with.
func DefaultCriteria() Criteria {
	return Criteria{
		TimePeriod:    Period7Days,
		RevenueRange:  All,
		TrafficSource: All,
	}
}

// Patch holds optional replacements for individual criteria. Nil fields keep
// the current value.
type Patch struct {
	TimePeriod      *TimePeriod
	RevenueRange    *string
	TrafficSource   *string
	HighValue       *bool
	RepeatCustomers *bool
	Search          *string
}

// With returns a copy of c with the non-nil fields of p applied.
func (c Criteria) With(p Patch) Criteria {
	if p.TimePeriod != nil {
		c.TimePeriod = *p.TimePeriod
	}
	if p.RevenueRange != nil {
		c.RevenueRange = *p.RevenueRange
	}
	if p.TrafficSource != nil {
		c.TrafficSource = *p.TrafficSource
	}
	if p.HighValue != nil {
		c.HighValue = *p.HighValue
	}
	if p.RepeatCustomers != nil {
		c.RepeatCustomers = *p.RepeatCustomers
	}
	if p.Search != nil {
		c.Search = *p.Search
	}
	return c
}

// Validate reports criteria the engine would silently ignore. The engine
// itself never rejects criteria; this is for config and CLI input.
func (c Criteria) Validate() error {
	if c.TimePeriod != "" {
		if _, ok := c.TimePeriod.Days(); !ok {
			return errors.New(errors.ErrFilter,
				fmt.Sprintf("Unknown time period '%s'", c.TimePeriod),
				"Use one of 7d, 30d, 90d, or 1y.")
		}
	}
	if c.RevenueRange != "" && c.RevenueRange != All {
		if _, err := ParseRange(c.RevenueRange); err != nil {
			return err
		}
	}
	return nil
}
