package terminal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyConstants(t *testing.T) {
	keys := []Key{
		KeyNone, KeyRune, KeyEnter, KeyBackspace, KeyTab, KeyBacktab, KeyEscape,
		KeyUp, KeyDown, KeyLeft, KeyRight, KeyHome, KeyEnd,
		KeyPageUp, KeyPageDown, KeyDelete, KeyInsert,
		KeyF1, KeyF2, KeyF3, KeyF4, KeyF5, KeyF6,
		KeyF7, KeyF8, KeyF9, KeyF10, KeyF11, KeyF12,
	}

	seen := make(map[Key]bool)
	for _, k := range keys {
		if seen[k] {
			t.Errorf("duplicate key constant: %d", k)
		}
		seen[k] = true
		assert.NotContains(t, k.String(), "key(", "key %d has no name", k)
	}
}

func TestEventInterface(t *testing.T) {
	var _ Event = KeyEvent{}
	var _ Event = ResizeEvent{}
	var _ Event = MouseEvent{}
	var _ Event = PasteEvent{}
	var _ Event = FocusEvent{}
}

func TestKeyEventModifiers(t *testing.T) {
	ev := KeyEvent{Key: KeyRune, Rune: 'a', Modifiers: ModAlt | ModShift}

	assert.True(t, ev.Has(ModAlt))
	assert.True(t, ev.Has(ModShift))
	assert.True(t, ev.Has(ModAlt|ModShift))
	assert.False(t, ev.Has(ModCtrl))
	assert.True(t, ev.IsPress())
	assert.False(t, ev.IsRelease())
}

func TestKeyEventString(t *testing.T) {
	tests := []struct {
		name string
		ev   KeyEvent
		want string
	}{
		{name: "plain rune", ev: Char('x'), want: "x"},
		{name: "ctrl rune", ev: Ctrl('c'), want: "ctrl+c"},
		{name: "special key", ev: Press(KeyEnter), want: "enter"},
		{name: "release", ev: KeyEvent{Key: KeyRune, Rune: 'q', Kind: KeyRelease}, want: "q (release)"},
		{name: "alt shift tab", ev: KeyEvent{Key: KeyTab, Modifiers: ModAlt | ModShift}, want: "alt+shift+tab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.ev.String())
		})
	}
}

func TestResizeEvent(t *testing.T) {
	ev := ResizeEvent{Width: 120, Height: 40}

	assert.Equal(t, 120, ev.Width)
	assert.Equal(t, 40, ev.Height)
}
