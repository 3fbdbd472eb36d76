package shortcut

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/insights/internal/errors"
	"github.com/rileyhilliard/insights/internal/logger"
)

// Handler runs when its combo is dispatched. The returned command, if any,
// is handed back to the Bubble Tea runtime.
type Handler func(ev KeyEvent) tea.Cmd

// Binding attaches one handler to one or more combos.
type Binding struct {
	Keys    []string
	Desc    string
	Group   string
	Short   bool
	Handler Handler
}

// Bind is shorthand for a Binding with a description.
func Bind(desc string, h Handler, keys ...string) Binding {
	return Binding{Keys: keys, Desc: desc, Handler: h}
}

// InShortHelp marks the binding for the one-line help footer.
func (b Binding) InShortHelp() Binding {
	b.Short = true
	return b
}

// InGroup sets the full-help column the binding is listed under.
func (b Binding) InGroup(g string) Binding {
	b.Group = g
	return b
}

// Table is an immutable combo-to-handler mapping. When two bindings claim
// the same combo, the first registered keeps it.
type Table struct {
	bindings []Binding
	byCombo  map[string]int
	dropped  []string
}

var _ help.KeyMap = (*Table)(nil)

// NewTable normalizes every combo and builds the lookup table. A combo that
// cannot be parsed is a configuration error.
func NewTable(bindings ...Binding) (*Table, error) {
	return newTable(logger.Default(), bindings)
}

// MustTable is NewTable for statically known bindings. It panics on error.
func MustTable(bindings ...Binding) *Table {
	t, err := NewTable(bindings...)
	if err != nil {
		panic(err)
	}
	return t
}

func newTable(log logger.Logger, bindings []Binding) (*Table, error) {
	t := &Table{byCombo: make(map[string]int)}

	for _, b := range bindings {
		if len(b.Keys) == 0 {
			return nil, errors.New(errors.ErrShortcut,
				fmt.Sprintf("Shortcut %q has no keys", b.Desc),
				"Give every binding at least one combo.")
		}

		kept := make([]string, 0, len(b.Keys))
		for _, k := range b.Keys {
			combo, err := NormalizeCombo(k)
			if err != nil {
				return nil, err
			}
			if _, taken := t.byCombo[combo]; taken {
				log.Debug("shortcut %s already bound, ignoring %q", combo, b.Desc)
				t.dropped = append(t.dropped, combo)
				continue
			}
			t.byCombo[combo] = len(t.bindings)
			kept = append(kept, combo)
		}
		if len(kept) == 0 {
			continue
		}

		b.Keys = kept
		t.bindings = append(t.bindings, b)
	}

	return t, nil
}

// Lookup finds the binding for a combo, ignoring case and modifier order.
func (t *Table) Lookup(combo string) (Binding, bool) {
	if t == nil {
		return Binding{}, false
	}
	normalized, err := NormalizeCombo(combo)
	if err != nil {
		return Binding{}, false
	}
	return t.lookup(normalized)
}

func (t *Table) lookup(normalized string) (Binding, bool) {
	if t == nil {
		return Binding{}, false
	}
	i, ok := t.byCombo[normalized]
	if !ok {
		return Binding{}, false
	}
	return t.bindings[i], true
}

// Len returns the number of bound combos.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.byCombo)
}

// Combos lists the bound combos in registration order.
func (t *Table) Combos() []string {
	if t == nil {
		return nil
	}
	out := make([]string, 0, len(t.byCombo))
	for _, b := range t.bindings {
		out = append(out, b.Keys...)
	}
	return out
}

// Shadowed lists combos that were ignored because an earlier binding
// already claimed them.
func (t *Table) Shadowed() []string {
	if t == nil {
		return nil
	}
	return append([]string(nil), t.dropped...)
}

// ShortHelp implements help.KeyMap.
func (t *Table) ShortHelp() []key.Binding {
	if t == nil {
		return nil
	}
	var out []key.Binding
	for _, b := range t.bindings {
		if b.Short {
			out = append(out, helpBinding(b))
		}
	}
	return out
}

// FullHelp implements help.KeyMap. Columns follow the order in which each
// group first appears.
func (t *Table) FullHelp() [][]key.Binding {
	if t == nil {
		return nil
	}
	var (
		order  []string
		groups = make(map[string][]key.Binding)
	)
	for _, b := range t.bindings {
		if _, seen := groups[b.Group]; !seen {
			order = append(order, b.Group)
		}
		groups[b.Group] = append(groups[b.Group], helpBinding(b))
	}

	out := make([][]key.Binding, 0, len(order))
	for _, g := range order {
		out = append(out, groups[g])
	}
	return out
}

func helpBinding(b Binding) key.Binding {
	opts := []key.BindingOpt{
		key.WithKeys(b.Keys...),
		key.WithHelp(strings.Join(b.Keys, "/"), b.Desc),
	}
	if b.Desc == "" {
		opts = append(opts, key.WithDisabled())
	}
	return key.NewBinding(opts...)
}
