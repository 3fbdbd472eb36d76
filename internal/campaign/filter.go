package campaign

import (
	"strings"
	"time"
)

// Predicate reports whether a row passes one criterion.
type Predicate func(Row) bool

// Predicates builds one predicate per active criterion. Criteria set to their
// sentinel ("all", false, empty) contribute no predicate. A malformed revenue
// range also contributes none, so it never excludes every row.
// asOf anchors the time-period predicate.
func Predicates(c Criteria, asOf time.Time) []Predicate {
	var preds []Predicate

	if days, ok := c.TimePeriod.Days(); ok {
		preds = append(preds, withinDays(days, asOf))
	}

	if c.RevenueRange != "" && c.RevenueRange != All {
		if r, err := ParseRange(c.RevenueRange); err == nil {
			preds = append(preds, func(row Row) bool { return r.Contains(row.Revenue) })
		}
	}

	if c.TrafficSource != "" && c.TrafficSource != All {
		source := c.TrafficSource
		preds = append(preds, func(row Row) bool { return row.Source == source })
	}

	if c.HighValue {
		preds = append(preds, func(row Row) bool { return row.HighValue })
	}

	if c.RepeatCustomers {
		preds = append(preds, func(row Row) bool { return row.RepeatCustomer })
	}

	if q := strings.ToLower(strings.TrimSpace(c.Search)); q != "" {
		preds = append(preds, func(row Row) bool {
			return strings.Contains(strings.ToLower(row.Campaign), q)
		})
	}

	return preds
}

// withinDays keeps rows no older than days. Rows with an unparseable date are kept.
func withinDays(days int, asOf time.Time) Predicate {
	return func(row Row) bool {
		age, ok := row.AgeDays(asOf)
		if !ok {
			return true
		}
		return age <= days
	}
}

// Filter returns the rows that pass every predicate, in input order.
// The input slice is not modified.
func Filter(rows []Row, preds ...Predicate) []Row {
	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		if matchesAll(row, preds) {
			out = append(out, row)
		}
	}
	return out
}

func matchesAll(row Row, preds []Predicate) bool {
	for _, p := range preds {
		if !p(row) {
			return false
		}
	}
	return true
}
