package campaign

import "time"

// View filters rows by criteria, then sorts the survivors by spec.
// It is pure: rows is never modified and identical arguments yield identical results.
func View(rows []Row, c Criteria, spec *SortSpec, asOf time.Time) []Row {
	return Sort(Filter(rows, Predicates(c, asOf)...), spec)
}
