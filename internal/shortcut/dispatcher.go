package shortcut

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/insights/internal/logger"
)

// Result reports the outcome of a dispatch. When Handled is true the host
// must not apply its own default handling for the key.
type Result struct {
	Handled bool
	Combo   string
}

// Dispatcher routes key events to the currently attached table. It holds no
// state beyond that table.
type Dispatcher struct {
	table *Table
	log   logger.Logger
}

// NewDispatcher creates a dispatcher with no table attached.
func NewDispatcher(log logger.Logger) *Dispatcher {
	return &Dispatcher{log: logger.OrDefault(log)}
}

// Attach swaps in t as the active table, replacing any previous one.
func (d *Dispatcher) Attach(t *Table) {
	d.table = t
}

// Detach removes the active table. Safe to call repeatedly.
func (d *Dispatcher) Detach() {
	d.table = nil
}

// Attached reports whether a table is active.
func (d *Dispatcher) Attached() bool {
	return d.table != nil
}

// Table returns the active table, or nil.
func (d *Dispatcher) Table() *Table {
	return d.table
}

// Dispatch normalizes ev and runs the matching handler exactly once.
// Unmatched events pass through with Handled false.
func (d *Dispatcher) Dispatch(ev KeyEvent) (Result, tea.Cmd) {
	combo := Normalize(ev)
	res := Result{Combo: combo}
	if combo == "" {
		return res, nil
	}

	b, ok := d.table.lookup(combo)
	if !ok {
		return res, nil
	}

	res.Handled = true
	d.log.Debug("shortcut %s: %s", combo, b.Desc)
	if b.Handler == nil {
		return res, nil
	}
	return res, b.Handler(ev)
}

// DispatchKey dispatches a Bubble Tea key message.
func (d *Dispatcher) DispatchKey(msg tea.KeyMsg) (Result, tea.Cmd) {
	return d.Dispatch(FromKeyMsg(msg))
}
