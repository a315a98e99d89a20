// Package events merges timer ticks, raw terminal input and application
// events into one ordered stream.
package events

import (
	"fmt"

	"github.com/odvcencio/persistui/pkg/ui/terminal"
)

// Event is a stream item: a tick, a raw terminal event or an app event.
type Event interface {
	isEvent()
}

// Tick is emitted by the periodic timer.
type Tick struct{}

// Terminal carries a raw non-key terminal event such as a resize or paste.
type Terminal struct {
	Event terminal.Event
}

// App carries an application event.
type App struct {
	Event AppEvent
}

func (Tick) isEvent()     {}
func (Terminal) isEvent() {}
func (App) isEvent()      {}

// AppEvent is an application-level event.
type AppEvent interface {
	isAppEvent()
}

// Quit requests the main loop to exit.
type Quit struct{}

// FocusItem focuses the leaf at Index in iteration order.
type FocusItem struct {
	Index int
}

// Clear resets widgets. Hard also discards their content.
type Clear struct {
	Hard bool
}

// Key is a terminal key event routed to the focused widget.
type Key struct {
	Event terminal.KeyEvent
}

// CustomEvent is a named application event with optional arguments.
// Args is nil when the event carries no arguments.
type CustomEvent struct {
	Name string
	Args []Value
}

func (Quit) isAppEvent()        {}
func (FocusItem) isAppEvent()   {}
func (Clear) isAppEvent()       {}
func (Key) isAppEvent()         {}
func (CustomEvent) isAppEvent() {}

// NewCustom builds a custom event. With no args the event has nil Args.
func NewCustom(name string, args ...Value) CustomEvent {
	if len(args) == 0 {
		return CustomEvent{Name: name}
	}
	return CustomEvent{Name: name, Args: append([]Value(nil), args...)}
}

// HasArgs reports whether the event carries an argument list, possibly empty.
func (c CustomEvent) HasArgs() bool {
	return c.Args != nil
}

func (c CustomEvent) String() string {
	if c.Args == nil {
		return c.Name
	}
	return fmt.Sprintf("%s(%s)", c.Name, FormatValues(c.Args))
}

// FromApp wraps an app event.
func FromApp(ev AppEvent) Event {
	return App{Event: ev}
}

// FromTerminal wraps a raw terminal event without translation.
func FromTerminal(ev terminal.Event) Event {
	return Terminal{Event: ev}
}

// IsQuitKey reports whether k is 'c' or 'C' with exactly the control
// modifier. Any key kind matches.
func IsQuitKey(k terminal.KeyEvent) bool {
	return k.Key == terminal.KeyRune &&
		(k.Rune == 'c' || k.Rune == 'C') &&
		k.Modifiers == terminal.ModCtrl
}

// Translate applies the global key binding to a raw terminal event: ctrl+c
// becomes Quit, other keys become Key, and everything else passes through
// as Terminal.
func Translate(ev terminal.Event) Event {
	k, ok := ev.(terminal.KeyEvent)
	if !ok {
		return Terminal{Event: ev}
	}
	if IsQuitKey(k) {
		return App{Event: Quit{}}
	}
	return App{Event: Key{Event: k}}
}

// Kind returns a short stable name for ev.
func Kind(ev Event) string {
	switch e := ev.(type) {
	case Tick:
		return "tick"
	case Terminal:
		return "terminal"
	case App:
		return AppKind(e.Event)
	default:
		return "unknown"
	}
}

// AppKind returns a short stable name for an app event.
func AppKind(ev AppEvent) string {
	switch ev.(type) {
	case Quit:
		return "quit"
	case FocusItem:
		return "focus"
	case Clear:
		return "clear"
	case Key:
		return "key"
	case CustomEvent:
		return "custom"
	default:
		return "unknown"
	}
}

// Describe renders ev for logs and the event monitor.
func Describe(ev Event) string {
	switch e := ev.(type) {
	case Tick:
		return "tick"
	case Terminal:
		return fmt.Sprintf("terminal %T%+v", e.Event, e.Event)
	case App:
		switch a := e.Event.(type) {
		case Quit:
			return "quit"
		case FocusItem:
			return fmt.Sprintf("focus %d", a.Index)
		case Clear:
			if a.Hard {
				return "clear hard"
			}
			return "clear"
		case Key:
			return "key " + a.Event.String()
		case CustomEvent:
			return "custom " + a.String()
		}
	}
	return "unknown"
}
