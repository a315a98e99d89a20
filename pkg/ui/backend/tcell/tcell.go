// Package tcell adapts gdamore/tcell to the backend interfaces.
package tcell

import (
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/odvcencio/persistui/pkg/ui/backend"
	"github.com/odvcencio/persistui/pkg/ui/terminal"
)

// Options toggles optional terminal features.
type Options struct {
	Mouse bool
	Paste bool
	Focus bool
}

// Backend implements backend.Backend on a tcell screen.
type Backend struct {
	screen tcell.Screen
	opts   Options

	finiOnce sync.Once

	inPaste     bool
	pasteBuffer strings.Builder
}

// New opens the controlling terminal.
func New(opts Options) (*Backend, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Backend{screen: screen, opts: opts}, nil
}

// NewWithScreen wraps an existing screen, typically a simulation screen.
func NewWithScreen(screen tcell.Screen, opts Options) *Backend {
	return &Backend{screen: screen, opts: opts}
}

// Screen exposes the underlying tcell screen.
func (b *Backend) Screen() tcell.Screen {
	return b.screen
}

// Init initializes the screen and enables the configured features.
func (b *Backend) Init() error {
	if err := b.screen.Init(); err != nil {
		return err
	}
	if b.opts.Mouse {
		b.screen.EnableMouse()
	}
	if b.opts.Paste {
		b.screen.EnablePaste()
	}
	if b.opts.Focus {
		b.screen.EnableFocus()
	}
	return nil
}

// Fini restores the terminal. Safe to call more than once.
func (b *Backend) Fini() {
	b.finiOnce.Do(b.screen.Fini)
}

func (b *Backend) Size() (width, height int) {
	return b.screen.Size()
}

func (b *Backend) SetContent(x, y int, mainc rune, comb []rune, style backend.Style) {
	b.screen.SetContent(x, y, mainc, comb, convertStyle(style))
}

func (b *Backend) Show() {
	b.screen.Show()
}

func (b *Backend) Clear() {
	b.screen.Clear()
}

func (b *Backend) HideCursor() {
	b.screen.HideCursor()
}

func (b *Backend) SetCursorPos(x, y int) {
	b.screen.ShowCursor(x, y)
}

func (b *Backend) Sync() {
	b.screen.Sync()
}

// PollEvent blocks for the next event. It returns nil once the screen has
// been finalized. Events tcell reports that have no terminal equivalent are
// skipped.
func (b *Backend) PollEvent() terminal.Event {
	for {
		ev := b.screen.PollEvent()
		if ev == nil {
			return nil
		}

		switch e := ev.(type) {
		case *tcell.EventPaste:
			if e.Start() {
				b.inPaste = true
				b.pasteBuffer.Reset()
				continue
			}
			if e.End() {
				b.inPaste = false
				text := b.pasteBuffer.String()
				b.pasteBuffer.Reset()
				if text != "" {
					return terminal.PasteEvent{Text: text}
				}
				continue
			}

		case *tcell.EventKey:
			if b.inPaste {
				switch e.Key() {
				case tcell.KeyRune:
					b.pasteBuffer.WriteRune(e.Rune())
				case tcell.KeyEnter:
					b.pasteBuffer.WriteRune('\n')
				case tcell.KeyTab:
					b.pasteBuffer.WriteRune('\t')
				}
				continue
			}
		}

		if out := convertEvent(ev); out != nil {
			return out
		}
	}
}

// PostEvent injects a key or resize event into the screen's queue.
func (b *Backend) PostEvent(ev terminal.Event) error {
	if tev := reverseConvertEvent(ev); tev != nil {
		return b.screen.PostEvent(tev)
	}
	return nil
}

func convertStyle(s backend.Style) tcell.Style {
	fg, bg, attrs := s.Decompose()
	return tcell.StyleDefault.
		Foreground(convertColor(fg)).
		Background(convertColor(bg)).
		Bold(attrs&backend.AttrBold != 0).
		Dim(attrs&backend.AttrDim != 0)
}

func convertColor(c backend.Color) tcell.Color {
	if c == backend.ColorDefault {
		return tcell.ColorDefault
	}
	if c.IsRGB() {
		r, g, b := c.RGB()
		return tcell.NewRGBColor(int32(r), int32(g), int32(b))
	}
	return tcell.PaletteColor(int(c))
}

func convertEvent(ev tcell.Event) terminal.Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return convertKeyEvent(e)
	case *tcell.EventResize:
		w, h := e.Size()
		return terminal.ResizeEvent{Width: w, Height: h}
	case *tcell.EventMouse:
		x, y := e.Position()
		return terminal.MouseEvent{
			X:         x,
			Y:         y,
			Button:    convertMouseButton(e.Buttons()),
			Action:    convertMouseAction(e.Buttons()),
			Modifiers: convertMods(e.Modifiers()),
		}
	case *tcell.EventFocus:
		return terminal.FocusEvent{Focused: e.Focused}
	default:
		return nil
	}
}

// convertKeyEvent folds tcell's control-key codes into rune + ModCtrl so
// ctrl+c arrives as {KeyRune, 'c', ModCtrl} regardless of how the terminal
// encoded it. Tab, Enter, Backspace and Escape share codes with ctrl+I, ctrl+M,
// ctrl+H and ctrl+[ and are kept as named keys.
func convertKeyEvent(e *tcell.EventKey) terminal.KeyEvent {
	mods := convertMods(e.Modifiers())
	k := e.Key()

	if k == tcell.KeyRune {
		return terminal.KeyEvent{Key: terminal.KeyRune, Rune: e.Rune(), Modifiers: mods}
	}
	if named := convertKey(k); named != terminal.KeyNone {
		return terminal.KeyEvent{Key: named, Modifiers: mods}
	}
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		r := rune('a' + (k - tcell.KeyCtrlA))
		return terminal.KeyEvent{Key: terminal.KeyRune, Rune: r, Modifiers: mods | terminal.ModCtrl}
	}
	return terminal.KeyEvent{Key: terminal.KeyNone, Rune: e.Rune(), Modifiers: mods}
}

func convertMods(m tcell.ModMask) terminal.ModMask {
	var out terminal.ModMask
	if m&tcell.ModShift != 0 {
		out |= terminal.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		out |= terminal.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		out |= terminal.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		out |= terminal.ModMeta
	}
	return out
}

var keyMap = map[tcell.Key]terminal.Key{
	tcell.KeyUp:         terminal.KeyUp,
	tcell.KeyDown:       terminal.KeyDown,
	tcell.KeyRight:      terminal.KeyRight,
	tcell.KeyLeft:       terminal.KeyLeft,
	tcell.KeyPgUp:       terminal.KeyPageUp,
	tcell.KeyPgDn:       terminal.KeyPageDown,
	tcell.KeyHome:       terminal.KeyHome,
	tcell.KeyEnd:        terminal.KeyEnd,
	tcell.KeyInsert:     terminal.KeyInsert,
	tcell.KeyDelete:     terminal.KeyDelete,
	tcell.KeyBackspace:  terminal.KeyBackspace,
	tcell.KeyBackspace2: terminal.KeyBackspace,
	tcell.KeyTab:        terminal.KeyTab,
	tcell.KeyBacktab:    terminal.KeyBacktab,
	tcell.KeyEnter:      terminal.KeyEnter,
	tcell.KeyEscape:     terminal.KeyEscape,
	tcell.KeyF1:         terminal.KeyF1,
	tcell.KeyF2:         terminal.KeyF2,
	tcell.KeyF3:         terminal.KeyF3,
	tcell.KeyF4:         terminal.KeyF4,
	tcell.KeyF5:         terminal.KeyF5,
	tcell.KeyF6:         terminal.KeyF6,
	tcell.KeyF7:         terminal.KeyF7,
	tcell.KeyF8:         terminal.KeyF8,
	tcell.KeyF9:         terminal.KeyF9,
	tcell.KeyF10:        terminal.KeyF10,
	tcell.KeyF11:        terminal.KeyF11,
	tcell.KeyF12:        terminal.KeyF12,
}

var reverseKeyMap = func() map[terminal.Key]tcell.Key {
	out := make(map[terminal.Key]tcell.Key, len(keyMap))
	for tk, k := range keyMap {
		if tk == tcell.KeyBackspace {
			continue
		}
		out[k] = tk
	}
	return out
}()

func convertKey(k tcell.Key) terminal.Key {
	if out, ok := keyMap[k]; ok {
		return out
	}
	return terminal.KeyNone
}

func convertMouseButton(buttons tcell.ButtonMask) terminal.MouseButton {
	switch {
	case buttons&tcell.WheelUp != 0:
		return terminal.MouseWheelUp
	case buttons&tcell.WheelDown != 0:
		return terminal.MouseWheelDown
	case buttons&tcell.Button1 != 0:
		return terminal.MouseLeft
	case buttons&tcell.Button2 != 0:
		return terminal.MouseMiddle
	case buttons&tcell.Button3 != 0:
		return terminal.MouseRight
	default:
		return terminal.MouseNone
	}
}

func convertMouseAction(buttons tcell.ButtonMask) terminal.MouseAction {
	if buttons == tcell.ButtonNone {
		return terminal.MouseRelease
	}
	return terminal.MousePress
}

func reverseConvertEvent(ev terminal.Event) tcell.Event {
	switch e := ev.(type) {
	case terminal.ResizeEvent:
		return tcell.NewEventResize(e.Width, e.Height)
	case terminal.KeyEvent:
		mods := reverseMods(e.Modifiers)
		if e.Key == terminal.KeyRune {
			return tcell.NewEventKey(tcell.KeyRune, e.Rune, mods)
		}
		if tk, ok := reverseKeyMap[e.Key]; ok {
			return tcell.NewEventKey(tk, 0, mods)
		}
		return nil
	default:
		return nil
	}
}

func reverseMods(m terminal.ModMask) tcell.ModMask {
	var out tcell.ModMask
	if m&terminal.ModShift != 0 {
		out |= tcell.ModShift
	}
	if m&terminal.ModCtrl != 0 {
		out |= tcell.ModCtrl
	}
	if m&terminal.ModAlt != 0 {
		out |= tcell.ModAlt
	}
	if m&terminal.ModMeta != 0 {
		out |= tcell.ModMeta
	}
	return out
}

var _ backend.Backend = (*Backend)(nil)
