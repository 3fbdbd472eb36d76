// Package shortcut maps normalized key combinations to handlers.
//
// A combo is written as modifiers followed by the lower-cased base key, joined
// with "+", with modifiers always in the order ctrl, alt, shift and absent
// modifiers omitted: "ctrl+alt+r", "shift+tab", "f5", "?". The meta (command)
// key counts as ctrl, so one table serves both conventions.
package shortcut

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/insights/internal/errors"
)

// KeyEvent is a raw key press as delivered by the host.
type KeyEvent struct {
	Key   string
	Ctrl  bool
	Meta  bool
	Alt   bool
	Shift bool
}

// Modifier names in canonical order.
const (
	ModCtrl  = "ctrl"
	ModAlt   = "alt"
	ModShift = "shift"
)

var modifierAliases = map[string]string{
	"ctrl":    ModCtrl,
	"control": ModCtrl,
	"meta":    ModCtrl,
	"cmd":     ModCtrl,
	"command": ModCtrl,
	"super":   ModCtrl,
	"alt":     ModAlt,
	"option":  ModAlt,
	"opt":     ModAlt,
	"shift":   ModShift,
}

var keyAliases = map[string]string{
	" ":      "space",
	"escape": "esc",
	"return": "enter",
	"del":    "delete",
}

// Normalize builds the combo string for ev. An event without a base key
// normalizes to "".
func Normalize(ev KeyEvent) string {
	base := normalizeKey(ev.Key)
	if base == "" {
		return ""
	}

	parts := make([]string, 0, 4)
	if ev.Ctrl || ev.Meta {
		parts = append(parts, ModCtrl)
	}
	if ev.Alt {
		parts = append(parts, ModAlt)
	}
	if ev.Shift {
		parts = append(parts, ModShift)
	}
	return strings.Join(append(parts, base), "+")
}

// ParseCombo reads a combo written in any modifier order or case, such as
// "Alt+Ctrl+R" or "cmd+s", into a KeyEvent.
func ParseCombo(s string) (KeyEvent, error) {
	parts := splitCombo(strings.TrimSpace(s))
	if len(parts) == 0 {
		return KeyEvent{}, errors.New(errors.ErrShortcut,
			"Shortcut combo is empty",
			"Write combos like ctrl+alt+r or f5.")
	}

	var ev KeyEvent
	for _, p := range parts[:len(parts)-1] {
		switch modifierAliases[strings.ToLower(strings.TrimSpace(p))] {
		case ModCtrl:
			ev.Ctrl = true
		case ModAlt:
			ev.Alt = true
		case ModShift:
			ev.Shift = true
		default:
			return KeyEvent{}, errors.New(errors.ErrShortcut,
				fmt.Sprintf("Unknown modifier %q in shortcut %q", p, s),
				"Modifiers are ctrl (or meta/cmd), alt (or option), and shift.")
		}
	}

	ev.Key = parts[len(parts)-1]
	if normalizeKey(ev.Key) == "" {
		return KeyEvent{}, errors.New(errors.ErrShortcut,
			fmt.Sprintf("Shortcut %q has no key", s),
			"End the combo with the key to press, e.g. ctrl+alt+r.")
	}
	return ev, nil
}

// NormalizeCombo rewrites a combo string into canonical form.
func NormalizeCombo(s string) (string, error) {
	ev, err := ParseCombo(s)
	if err != nil {
		return "", err
	}
	return Normalize(ev), nil
}

// FromKeyMsg converts a Bubble Tea key message into a KeyEvent. Bubble Tea
// reports ctrl+alt+r as "alt+ctrl+r" and shifted letters as upper case; both
// are folded into explicit modifier flags.
func FromKeyMsg(msg tea.KeyMsg) KeyEvent {
	if msg.Paste {
		return KeyEvent{}
	}

	parts := splitCombo(msg.String())
	if len(parts) == 0 {
		return KeyEvent{}
	}

	var ev KeyEvent
	for _, p := range parts[:len(parts)-1] {
		switch p {
		case "ctrl":
			ev.Ctrl = true
		case "alt":
			ev.Alt = true
		case "shift":
			ev.Shift = true
		}
	}

	ev.Key = parts[len(parts)-1]
	if r := []rune(ev.Key); len(r) == 1 && r[0] >= 'A' && r[0] <= 'Z' {
		ev.Shift = true
	}
	return ev
}

func normalizeKey(k string) string {
	if k == " " {
		return keyAliases[k]
	}
	k = strings.ToLower(strings.TrimSpace(k))
	if alias, ok := keyAliases[k]; ok {
		return alias
	}
	return k
}

// splitCombo splits on "+", treating a trailing "+" as the key itself
// ("+", "ctrl++").
func splitCombo(s string) []string {
	switch {
	case s == "":
		return nil
	case s == "+":
		return []string{"+"}
	case strings.HasSuffix(s, "++"):
		return append(strings.Split(s[:len(s)-2], "+"), "+")
	default:
		return strings.Split(s, "+")
	}
}
