// Package ui provides the terminal styling shared by the CLI and dashboard.
//
// # Color Scheme
//
// Colors are ANSI codes for broad terminal compatibility:
//
//	ColorSuccess   (green)  - Rising metrics, successful saves
//	ColorError     (red)    - Falling metrics, failures
//	ColorWarning   (yellow) - Paused refresh, notices
//	ColorInfo      (cyan)   - Informational messages
//	ColorMuted     (gray)   - Secondary text, hidden sections
//	ColorSecondary (blue)   - Taglines
//
// # Tables
//
// NewTable wraps the Bubbles table with the package styling. RenderSimpleTable
// renders the same table as a static string for non-interactive output such
// as 'insights campaigns'.
//
// # Formatting
//
// FormatCurrency, FormatCount, FormatCompact and FormatPercent use
// go-humanize so metric cards and tables agree on number formatting.
package ui
