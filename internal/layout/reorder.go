package layout

// Index returns a pointer to i, for use as a Move or Reorder destination.
// A nil destination means the drag was aborted.
func Index(i int) *int {
	return &i
}

// Reorder removes the element at source from the ordered list, reinserts it
// at destination, and assigns Order = position to every element.
//
// A nil destination or an index outside the list is a no-op: a copy of the
// input is returned with its orders untouched. The input slice is never modified.
func Reorder(sections []Section, source int, destination *int) []Section {
	out, _ := reorder(sections, source, destination)
	return out
}

// reorder reports whether the move was applied.
func reorder(sections []Section, source int, destination *int) ([]Section, bool) {
	out := make([]Section, len(sections))
	copy(out, sections)

	if destination == nil {
		return out, false
	}
	dest := *destination
	if source < 0 || source >= len(out) || dest < 0 || dest >= len(out) {
		return out, false
	}

	moved := out[source]
	out = append(out[:source], out[source+1:]...)
	out = append(out[:dest], append([]Section{moved}, out[dest:]...)...)

	for i := range out {
		out[i].Order = i
	}
	return out, true
}
