package shortcut

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/insights/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		ev   KeyEvent
		want string
	}{
		{"ctrl alt r", KeyEvent{Key: "r", Ctrl: true, Alt: true}, "ctrl+alt+r"},
		{"meta counts as ctrl", KeyEvent{Key: "s", Meta: true, Alt: true}, "ctrl+alt+s"},
		{"ctrl and meta together", KeyEvent{Key: "s", Ctrl: true, Meta: true}, "ctrl+s"},
		{"all modifiers", KeyEvent{Key: "X", Ctrl: true, Alt: true, Shift: true}, "ctrl+alt+shift+x"},
		{"base key lower-cased", KeyEvent{Key: "F5"}, "f5"},
		{"no modifiers", KeyEvent{Key: "?"}, "?"},
		{"shift only", KeyEvent{Key: "Tab", Shift: true}, "shift+tab"},
		{"space", KeyEvent{Key: " "}, "space"},
		{"escape alias", KeyEvent{Key: "Escape"}, "esc"},
		{"empty key", KeyEvent{Ctrl: true}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.ev))
		})
	}
}

func TestNormalizeCombo(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ctrl+alt+r", "ctrl+alt+r"},
		{"Alt+Ctrl+R", "ctrl+alt+r"},
		{"shift+alt+ctrl+k", "ctrl+alt+shift+k"},
		{"cmd+s", "ctrl+s"},
		{"option+x", "alt+x"},
		{"F1", "f1"},
		{"+", "+"},
		{"ctrl++", "ctrl++"},
		{" ? ", "?"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NormalizeCombo(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeCombo_Invalid(t *testing.T) {
	for _, in := range []string{"", "   ", "ctrl+", "hyper+r"} {
		t.Run(in, func(t *testing.T) {
			_, err := NormalizeCombo(in)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrShortcut))
		})
	}
}

func TestNormalize_AgreesWithNormalizeCombo(t *testing.T) {
	ev := KeyEvent{Key: "R", Ctrl: true, Alt: true}
	combo, err := NormalizeCombo("alt+ctrl+r")
	require.NoError(t, err)
	assert.Equal(t, combo, Normalize(ev))
}

func TestFromKeyMsg(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want string
	}{
		{"ctrl+alt+r", tea.KeyMsg{Type: tea.KeyCtrlR, Alt: true}, "ctrl+alt+r"},
		{"ctrl+s", tea.KeyMsg{Type: tea.KeyCtrlS}, "ctrl+s"},
		{"plain rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}, "j"},
		{"upper-case rune sets shift", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'K'}}, "shift+k"},
		{"question mark", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}}, "?"},
		{"alt rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}, Alt: true}, "alt+x"},
		{"function key", tea.KeyMsg{Type: tea.KeyF5}, "f5"},
		{"shift+tab", tea.KeyMsg{Type: tea.KeyShiftTab}, "shift+tab"},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, "space"},
		{"arrow", tea.KeyMsg{Type: tea.KeyUp}, "up"},
		{"paste ignored", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("abc"), Paste: true}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(FromKeyMsg(tt.msg)))
		})
	}
}
