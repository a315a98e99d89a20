// Package terminal defines the raw terminal input events consumed by the
// event source and routed into the component tree.
package terminal

import (
	"fmt"
	"strings"
)

// Event represents a raw terminal input event.
type Event interface {
	eventMarker()
}

// KeyEvent represents a key press, repeat or release.
type KeyEvent struct {
	Key       Key
	Rune      rune
	Modifiers ModMask
	Kind      KeyKind
}

func (KeyEvent) eventMarker() {}

// IsPress reports whether the event is an initial key press.
func (e KeyEvent) IsPress() bool {
	return e.Kind == KeyPress
}

// IsRelease reports whether the event is a key release.
func (e KeyEvent) IsRelease() bool {
	return e.Kind == KeyRelease
}

// Has reports whether all modifiers in m are held.
func (e KeyEvent) Has(m ModMask) bool {
	return e.Modifiers&m == m
}

// String renders the key the way a user would type it, e.g. "ctrl+c".
func (e KeyEvent) String() string {
	var sb strings.Builder
	if e.Has(ModCtrl) {
		sb.WriteString("ctrl+")
	}
	if e.Has(ModAlt) {
		sb.WriteString("alt+")
	}
	if e.Has(ModMeta) {
		sb.WriteString("meta+")
	}
	if e.Has(ModShift) {
		sb.WriteString("shift+")
	}
	if e.Key == KeyRune {
		sb.WriteRune(e.Rune)
	} else {
		sb.WriteString(e.Key.String())
	}
	if e.Kind != KeyPress {
		sb.WriteString(" (")
		sb.WriteString(e.Kind.String())
		sb.WriteString(")")
	}
	return sb.String()
}

// Char builds a key press event for a printable character.
func Char(r rune) KeyEvent {
	return KeyEvent{Key: KeyRune, Rune: r}
}

// Ctrl builds a key press event for a character with the control modifier.
func Ctrl(r rune) KeyEvent {
	return KeyEvent{Key: KeyRune, Rune: r, Modifiers: ModCtrl}
}

// Press builds a key press event for a special key.
func Press(k Key) KeyEvent {
	return KeyEvent{Key: k}
}

// ResizeEvent indicates terminal size changed.
type ResizeEvent struct {
	Width  int
	Height int
}

func (ResizeEvent) eventMarker() {}

// MouseEvent represents a mouse input event.
type MouseEvent struct {
	X, Y      int
	Button    MouseButton
	Action    MouseAction
	Modifiers ModMask
}

func (MouseEvent) eventMarker() {}

// PasteEvent represents bracketed paste content.
type PasteEvent struct {
	Text string
}

func (PasteEvent) eventMarker() {}

// FocusEvent reports the terminal window gaining or losing focus.
type FocusEvent struct {
	Focused bool
}

func (FocusEvent) eventMarker() {}

// ModMask is a set of key modifiers.
type ModMask uint8

const (
	ModShift ModMask = 1 << iota
	ModCtrl
	ModAlt
	ModMeta

	ModNone ModMask = 0
)

// KeyKind distinguishes press, repeat and release.
type KeyKind uint8

const (
	KeyPress KeyKind = iota
	KeyRepeat
	KeyRelease
)

func (k KeyKind) String() string {
	switch k {
	case KeyPress:
		return "press"
	case KeyRepeat:
		return "repeat"
	case KeyRelease:
		return "release"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// MouseButton identifies which mouse button was involved.
type MouseButton int

const (
	MouseNone MouseButton = iota
	MouseLeft
	MouseMiddle
	MouseRight
	MouseWheelUp
	MouseWheelDown
)

// MouseAction identifies what happened with the mouse.
type MouseAction int

const (
	MousePress MouseAction = iota
	MouseRelease
	MouseMove
)

// Key represents special keys.
type Key int

const (
	KeyNone Key = iota
	KeyRune     // Regular character
	KeyEnter
	KeyBackspace
	KeyTab
	KeyBacktab
	KeyEscape
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyDelete
	KeyInsert
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

var keyNames = map[Key]string{
	KeyNone:      "none",
	KeyRune:      "rune",
	KeyEnter:     "enter",
	KeyBackspace: "backspace",
	KeyTab:       "tab",
	KeyBacktab:   "backtab",
	KeyEscape:    "esc",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyPageUp:    "pgup",
	KeyPageDown:  "pgdown",
	KeyDelete:    "delete",
	KeyInsert:    "insert",
	KeyF1:        "f1",
	KeyF2:        "f2",
	KeyF3:        "f3",
	KeyF4:        "f4",
	KeyF5:        "f5",
	KeyF6:        "f6",
	KeyF7:        "f7",
	KeyF8:        "f8",
	KeyF9:        "f9",
	KeyF10:       "f10",
	KeyF11:       "f11",
	KeyF12:       "f12",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("key(%d)", int(k))
}
