// Package widgets provides the leaf widgets used by the demo form: buttons,
// text inputs and labels.
package widgets

import (
	"github.com/odvcencio/persistui/pkg/ui/terminal"
	"github.com/odvcencio/persistui/pkg/ui/widget"
)

// Base provides common functionality for widgets.
// Embed this in widget structs to get default implementations.
type Base struct {
	focused bool
}

// Focus marks the widget as focused.
func (b *Base) Focus() {
	b.focused = true
}

// Unfocus marks the widget as unfocused.
func (b *Base) Unfocus() {
	b.focused = false
}

// Focused returns whether the widget is focused.
func (b *Base) Focused() bool {
	return b.focused
}

// HandleKey ignores every key by default.
func (b *Base) HandleKey(terminal.KeyEvent) (widget.Event, bool) {
	return nil, false
}

// Clear drops focus by default.
func (b *Base) Clear(bool) {
	b.focused = false
}

// Len returns 0 by default.
func (b *Base) Len() int {
	return 0
}
