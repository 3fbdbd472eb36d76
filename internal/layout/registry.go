package layout

import "sort"

// entry pairs a section with its catalog insertion index, which breaks
// order ties deterministically.
type entry struct {
	section Section
	index   int
}

// Registry is the ordered, enabled/disabled catalog of dashboard sections.
// The zero value is an empty registry.
type Registry struct {
	entries []entry // catalog insertion order
}

// Action is a registry mutation that can be applied with Registry.Apply.
type Action interface {
	apply(Registry) Registry
}

// ToggleAction flips the enabled flag of a section.
type ToggleAction struct {
	ID string
}

func (a ToggleAction) apply(r Registry) Registry { return r.Toggle(a.ID) }

// MoveAction moves the section at Source to Destination in the ordered view.
// A nil Destination is an aborted drag.
type MoveAction struct {
	Source      int
	Destination *int
}

func (a MoveAction) apply(r Registry) Registry { return r.Move(a.Source, a.Destination) }

// NewRegistry builds a registry from a catalog. Duplicate IDs keep the first
// occurrence. Orders are normalized to 0..N-1, ties broken by catalog position.
func NewRegistry(catalog []Section) Registry {
	seen := make(map[string]bool, len(catalog))
	entries := make([]entry, 0, len(catalog))
	for _, s := range catalog {
		if seen[s.ID] {
			continue
		}
		seen[s.ID] = true
		entries = append(entries, entry{section: s, index: len(entries)})
	}
	return Registry{entries: entries}.densify()
}

// Restore overlays persisted sections onto the catalog. The catalog is closed:
// saved IDs it does not know are dropped, and catalog sections missing from
// saved are appended after the saved ones. Titles and descriptions always come
// from the catalog; enabled flags and orders come from saved.
func Restore(catalog []Section, saved map[string]Section) Registry {
	base := NewRegistry(catalog)
	if len(saved) == 0 {
		return base
	}

	entries := make([]entry, len(base.entries))
	for i, e := range base.entries {
		if s, ok := saved[e.section.ID]; ok {
			e.section.Enabled = s.Enabled
			e.section.Order = s.Order
		} else {
			e.section.Order = len(base.entries) + i
		}
		entries[i] = e
	}
	return Registry{entries: entries}.densify()
}

// Len returns the number of sections.
func (r Registry) Len() int {
	return len(r.entries)
}

// Has reports whether the catalog contains id.
func (r Registry) Has(id string) bool {
	_, ok := r.Get(id)
	return ok
}

// Get returns the section with the given id.
func (r Registry) Get(id string) (Section, bool) {
	for _, e := range r.entries {
		if e.section.ID == id {
			return e.section, true
		}
	}
	return Section{}, false
}

// Snapshot returns every section ordered by Order ascending, ties broken by
// catalog insertion index. The returned slice is a copy.
func (r Registry) Snapshot() []Section {
	sorted := r.sortedEntries()
	out := make([]Section, len(sorted))
	for i, e := range sorted {
		out[i] = e.section
	}
	return out
}

// Enabled returns the snapshot restricted to enabled sections.
func (r Registry) Enabled() []Section {
	var out []Section
	for _, s := range r.Snapshot() {
		if s.Enabled {
			out = append(out, s)
		}
	}
	return out
}

// Toggle flips Enabled for the section with the given id.
// Unknown ids are ignored and the receiver is returned as is.
func (r Registry) Toggle(id string) Registry {
	s, ok := r.Get(id)
	if !ok {
		return r
	}
	return r.SetEnabled(id, !s.Enabled)
}

// SetEnabled sets Enabled for the section with the given id.
// Unknown ids are ignored.
func (r Registry) SetEnabled(id string, enabled bool) Registry {
	if !r.Has(id) {
		return r
	}
	next := r.clone()
	for i := range next.entries {
		if next.entries[i].section.ID == id {
			next.entries[i].section.Enabled = enabled
		}
	}
	return next
}

// Move relocates the section at position source of the Snapshot to position
// destination and densely reindexes every order. A nil destination or an
// out-of-range index returns the receiver unchanged.
func (r Registry) Move(source int, destination *int) Registry {
	moved, ok := reorder(r.Snapshot(), source, destination)
	if !ok {
		return r
	}
	return r.withOrders(moved)
}

// Apply runs an action against the registry and returns the result.
func (r Registry) Apply(a Action) Registry {
	if a == nil {
		return r
	}
	return a.apply(r)
}

// Sections returns the registry keyed by section id, the shape used by the
// persisted dashboard configuration.
func (r Registry) Sections() map[string]Section {
	out := make(map[string]Section, len(r.entries))
	for _, e := range r.entries {
		out[e.section.ID] = e.section
	}
	return out
}

// IndexOf returns the snapshot position of id, or -1 if unknown.
func (r Registry) IndexOf(id string) int {
	for i, s := range r.Snapshot() {
		if s.ID == id {
			return i
		}
	}
	return -1
}

func (r Registry) clone() Registry {
	entries := make([]entry, len(r.entries))
	copy(entries, r.entries)
	return Registry{entries: entries}
}

func (r Registry) sortedEntries() []entry {
	sorted := make([]entry, len(r.entries))
	copy(sorted, r.entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].section.Order != sorted[j].section.Order {
			return sorted[i].section.Order < sorted[j].section.Order
		}
		return sorted[i].index < sorted[j].index
	})
	return sorted
}

// withOrders copies the Order of each section in ordered onto the matching entry.
func (r Registry) withOrders(ordered []Section) Registry {
	orders := make(map[string]int, len(ordered))
	for _, s := range ordered {
		orders[s.ID] = s.Order
	}
	next := r.clone()
	for i := range next.entries {
		if o, ok := orders[next.entries[i].section.ID]; ok {
			next.entries[i].section.Order = o
		}
	}
	return next
}

// densify rewrites orders to the snapshot positions.
func (r Registry) densify() Registry {
	snap := r.Snapshot()
	for i := range snap {
		snap[i].Order = i
	}
	return r.withOrders(snap)
}
