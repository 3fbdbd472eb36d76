// Package dashboard implements the interactive analytics dashboard TUI.
//
// The dashboard shows the configured sections in layout order: live metric
// cards, performance totals, charts, the filtered campaign table, insights
// and projections. Every section can be hidden or moved without leaving the
// dashboard, and the resulting layout can be saved.
//
// # Architecture
//
// The package uses the Bubble Tea framework (Model-Update-View):
//
//   - Model: layout registry, filter criteria, sort, scheduler and shortcuts
//   - Update: routes key presses through the shortcut dispatcher, applies the
//     resulting Action, and forwards refresh ticks to the scheduler
//   - View: renders the enabled sections for the current terminal size
//
// # Key Components
//
//	Model       - The Bubble Tea model containing all dashboard state
//	Board       - Live metric cards perturbed on every refresh
//	History     - Ring buffers of metric values for sparklines and projections
//	Action      - What a shortcut asks the model to do
//
// # Message Flow
//
// Shortcut handlers never touch the model directly. A key press becomes a
// KeyEvent, the dispatcher finds the binding, and the binding's handler
// returns a command that emits an Action. Update applies the Action on the
// next pass, so every state change goes through the same code path whether
// it came from a key or a test.
//
// Real-time refresh is a refresh.Scheduler. Each refresh.TickMsg that
// belongs to the live schedule regenerates the metrics, records history, and
// re-reads the campaign dataset when it came from a file.
//
// While the search input has focus, key presses skip the dispatcher and
// edit the query instead, so the table filters as the user types. Ctrl+C
// still quits.
//
// # Keyboard Shortcuts
//
//	Ctrl+Alt+R   - Toggle real-time refresh
//	Ctrl+Alt+S   - Save the layout
//	r, F5        - Refresh now
//	↑/↓, k/j     - Select section
//	Shift+↑/↓    - Move the selected section
//	space, x     - Show or hide the selected section
//	l            - Switch between grid and list layout
//	s, S         - Cycle sort column, flip direction
//	p, m, t      - Cycle period, revenue range, traffic source
//	v, c, 0      - High-value, repeat customers, reset filters
//	/, Ctrl+Alt+F - Search campaigns (enter keeps, esc cancels)
//	?, F1        - Toggle help
//	q, Ctrl+C    - Quit
package dashboard
