// Package layout holds the dashboard section catalog and the two operations
// that mutate it: visibility toggles and drag-and-drop style reordering.
//
// A Registry is an immutable value. Every operation returns a new Registry and
// leaves the receiver untouched, so callers apply an action and store the
// result themselves:
//
//	reg = reg.Toggle("ai-insights")
//	reg = reg.Move(0, layout.Index(2))
//
// Readers holding the previous value never observe a partially reindexed
// state. Section orders always form the dense sequence 0..N-1.
package layout
