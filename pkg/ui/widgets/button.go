package widgets

import (
	"strings"
	"unicode"

	"github.com/odvcencio/persistui/pkg/ui/backend"
	"github.com/odvcencio/persistui/pkg/ui/terminal"
	"github.com/odvcencio/persistui/pkg/ui/widget"
)

// ButtonState is the visual state of a button.
type ButtonState uint8

const (
	ButtonNormal ButtonState = iota
	ButtonSelected
	ButtonActive
)

func (s ButtonState) String() string {
	switch s {
	case ButtonNormal:
		return "normal"
	case ButtonSelected:
		return "selected"
	case ButtonActive:
		return "active"
	default:
		return "unknown"
	}
}

// Button is a pressable label. It fires on Enter or Space while focused, or
// on its trigger rune at any time.
type Button struct {
	label   string
	trigger rune
	id      string
	theme   backend.Palette
	state   ButtonState
	prev    ButtonState
}

// NewButton creates a button. id names the press event and is upper-cased.
func NewButton(label string, trigger rune, id string) *Button {
	return &Button{
		label:   label,
		trigger: trigger,
		id:      strings.ToUpper(id),
		theme:   ThemeBlue,
	}
}

// WithTheme sets the palette and returns the button.
func (b *Button) WithTheme(p backend.Palette) *Button {
	b.theme = p
	return b
}

// ID returns the press event id.
func (b *Button) ID() string {
	return b.id
}

// Label returns the button text.
func (b *Button) Label() string {
	return b.label
}

// Trigger returns the rune that presses the button without focus.
func (b *Button) Trigger() rune {
	return b.trigger
}

// State returns the current visual state.
func (b *Button) State() ButtonState {
	return b.state
}

// HandleKey presses the button on Enter, Space or the trigger rune and
// restores the previous state on release.
func (b *Button) HandleKey(ev terminal.KeyEvent) (widget.Event, bool) {
	isTrigger := ev.Key == terminal.KeyRune && b.trigger != 0 &&
		!ev.Has(terminal.ModCtrl) && !ev.Has(terminal.ModAlt) &&
		unicode.ToLower(ev.Rune) == unicode.ToLower(b.trigger)
	isConfirm := ev.Key == terminal.KeyEnter || (ev.Key == terminal.KeyRune && ev.Rune == ' ')
	if !isTrigger && !isConfirm {
		return nil, false
	}

	if ev.IsRelease() {
		if b.state == ButtonActive {
			b.state = b.prev
		}
		return nil, false
	}

	// Terminals without release reporting leave the button Active, so an
	// Active button still counts as focused.
	focused := b.state == ButtonSelected || b.state == ButtonActive
	if !focused && !isTrigger {
		return nil, false
	}
	if b.state != ButtonActive {
		b.prev = b.state
	}
	b.state = ButtonActive
	return widget.Button{ID: b.id}, true
}

// Focus selects the button.
func (b *Button) Focus() {
	b.state = ButtonSelected
}

// Unfocus returns the button to normal.
func (b *Button) Unfocus() {
	b.state = ButtonNormal
}

// Clear returns the button to normal.
func (b *Button) Clear(bool) {
	b.state = ButtonNormal
}

// Len returns 0; buttons have no content.
func (b *Button) Len() int {
	return 0
}

// colors returns the fill, text and border colors for the current state.
func (b *Button) colors() (bg, text, border backend.Color) {
	switch b.state {
	case ButtonSelected:
		return b.theme.Highlight, b.theme.Text, b.theme.Shadow
	case ButtonActive:
		return b.theme.Background, b.theme.Text, b.theme.Highlight
	default:
		return b.theme.Background, b.theme.Text, b.theme.Shadow
	}
}

// Draw renders a rounded frame with the trigger rune on the bottom border
// and the label centered inside.
func (b *Button) Draw(area widget.Rect, out backend.RenderTarget, _ *widget.CursorHint) {
	if area.Empty() {
		return
	}
	bg, text, border := b.colors()
	frame := backend.DefaultStyle().Foreground(border).Background(bg)
	inner := backend.DefaultStyle().Foreground(text).Background(bg)

	fill(out, 0, 0, area.Width, area.Height, inner)

	var hint string
	if b.trigger != 0 {
		hint = string(b.trigger)
	}
	box{bottom: hint, style: frame}.draw(out, area.Width, area.Height)

	label := truncate(b.label, max(0, area.Width-2))
	y := max(0, (area.Height-1)/2)
	drawString(out, centerX(label, area.Width), y, area.Width, label, inner.Bold(true))
}
