package ui

// Unicode symbols for status indicators.
const (
	SymbolSuccess  = "✓" // Operation succeeded
	SymbolFail     = "✗" // Operation failed
	SymbolEnabled  = "●" // Section shown
	SymbolDisabled = "○" // Section hidden
	SymbolUp       = "▲" // Metric rising
	SymbolDown     = "▼" // Metric falling
	SymbolFlat     = "■" // Metric unchanged
	SymbolCursor   = "›" // Selected row
)

// TrendSymbol returns the arrow for a change.
func TrendSymbol(delta float64) string {
	switch {
	case delta > 0:
		return SymbolUp
	case delta < 0:
		return SymbolDown
	default:
		return SymbolFlat
	}
}
