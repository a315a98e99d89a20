package widgets

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/persistui/pkg/ui/backend"
	"github.com/odvcencio/persistui/pkg/ui/terminal"
	"github.com/odvcencio/persistui/pkg/ui/widget"
)

// InputMode is whether a text input is accepting keys.
type InputMode uint8

const (
	ModeNormal InputMode = iota
	ModeEditing
)

// InputType selects how the value is displayed.
type InputType uint8

const (
	InputText InputType = iota
	InputPassword
)

// TextInput is a single-line text field framed by a rounded box.
type TextInput struct {
	title        string
	id           string
	kind         InputType
	mode         InputMode
	clearOnEnter bool

	text   []rune
	cursor int

	editStyle backend.Style
}

// NewTextInput creates a text input. id names the submit event and is
// upper-cased.
func NewTextInput(title, id string) *TextInput {
	return &TextInput{
		title:     title,
		id:        strings.ToUpper(id),
		editStyle: backend.DefaultStyle().Foreground(backend.ColorYellow),
	}
}

// Password masks the value when drawn.
func (t *TextInput) Password() *TextInput {
	t.kind = InputPassword
	return t
}

// ClearOnEnter resets the value after each submit when on.
func (t *TextInput) ClearOnEnter(on bool) *TextInput {
	t.clearOnEnter = on
	return t
}

// ID returns the submit event id.
func (t *TextInput) ID() string {
	return t.id
}

// Mode returns the current input mode.
func (t *TextInput) Mode() InputMode {
	return t.mode
}

// Text returns the current value.
func (t *TextInput) Text() string {
	return string(t.text)
}

// SetText replaces the value and moves the cursor to the end.
func (t *TextInput) SetText(s string) {
	t.text = []rune(s)
	t.cursor = len(t.text)
}

// CursorPos returns the cursor position in runes.
func (t *TextInput) CursorPos() int {
	return t.cursor
}

// Paste inserts s at the cursor. Line breaks are dropped.
func (t *TextInput) Paste(s string) {
	s = strings.NewReplacer("\r\n", "", "\n", "", "\r", "").Replace(s)
	for _, r := range s {
		t.insert(r)
	}
}

// Focus starts editing.
func (t *TextInput) Focus() {
	t.mode = ModeEditing
}

// Unfocus stops editing.
func (t *TextInput) Unfocus() {
	t.mode = ModeNormal
}

// Clear stops editing and, when hard, discards the value.
func (t *TextInput) Clear(hard bool) {
	t.mode = ModeNormal
	if hard {
		t.reset()
	}
}

// Len returns the value length in runes.
func (t *TextInput) Len() int {
	return len(t.text)
}

// HandleKey edits the value. Enter submits it.
func (t *TextInput) HandleKey(ev terminal.KeyEvent) (widget.Event, bool) {
	if ev.IsRelease() {
		return nil, false
	}

	switch ev.Key {
	case terminal.KeyEnter:
		if !ev.IsPress() {
			return nil, false
		}
		out := widget.Input{ID: t.id, Text: string(t.text), HasText: true}
		if t.clearOnEnter {
			t.reset()
		}
		return out, true

	case terminal.KeyBackspace:
		if t.cursor > 0 {
			t.text = append(t.text[:t.cursor-1], t.text[t.cursor:]...)
			t.cursor--
		}

	case terminal.KeyDelete:
		if t.cursor < len(t.text) {
			t.text = append(t.text[:t.cursor], t.text[t.cursor+1:]...)
		}

	case terminal.KeyLeft:
		if ev.Has(terminal.ModCtrl) {
			t.cursor = t.wordBoundaryLeft()
		} else if t.cursor > 0 {
			t.cursor--
		}

	case terminal.KeyRight:
		if ev.Has(terminal.ModCtrl) {
			t.cursor = t.wordBoundaryRight()
		} else if t.cursor < len(t.text) {
			t.cursor++
		}

	case terminal.KeyHome:
		t.cursor = 0

	case terminal.KeyEnd:
		t.cursor = len(t.text)

	case terminal.KeyRune:
		if ev.Has(terminal.ModCtrl) || ev.Has(terminal.ModAlt) {
			return nil, false
		}
		t.insert(ev.Rune)
	}
	return nil, false
}

func (t *TextInput) insert(r rune) {
	t.text = append(t.text, 0)
	copy(t.text[t.cursor+1:], t.text[t.cursor:])
	t.text[t.cursor] = r
	t.cursor++
}

func (t *TextInput) reset() {
	t.text = nil
	t.cursor = 0
}

func (t *TextInput) wordBoundaryLeft() int {
	pos := t.cursor - 1
	for pos > 0 && t.text[pos] == ' ' {
		pos--
	}
	for pos > 0 && t.text[pos-1] != ' ' {
		pos--
	}
	return max(pos, 0)
}

func (t *TextInput) wordBoundaryRight() int {
	pos := t.cursor
	for pos < len(t.text) && t.text[pos] != ' ' {
		pos++
	}
	for pos < len(t.text) && t.text[pos] == ' ' {
		pos++
	}
	return pos
}

// display returns the text drawn inside the box. Masked values show one
// '*' per rune.
func (t *TextInput) display() []rune {
	if t.kind == InputPassword {
		return []rune(strings.Repeat("*", len(t.text)))
	}
	return t.text
}

// scroll returns how many cells of the display are hidden on the left so
// that the cursor stays within width cells. The result lands on a rune
// boundary.
func (t *TextInput) scroll(width int) (cells, runes int) {
	shown := t.display()
	cursorCell := runewidth.StringWidth(string(shown[:t.cursor]))
	want := max(cursorCell, width) - width
	for cells < want && runes < len(shown) {
		cells += runewidth.RuneWidth(shown[runes])
		runes++
	}
	return cells, runes
}

// Draw renders the framed field. An empty value shows the title as a
// placeholder; otherwise the title moves to the top border. While editing
// the cursor column is reported through cursor.
func (t *TextInput) Draw(area widget.Rect, out backend.RenderTarget, cursor *widget.CursorHint) {
	if area.Empty() {
		return
	}
	style := backend.DefaultStyle()
	if t.mode == ModeEditing {
		style = t.editStyle
	}

	fill(out, 0, 0, area.Width, area.Height, style)

	width := max(area.Width, 3) - 3
	scrollCells, scrollRunes := t.scroll(width)

	var content, title string
	textStyle := style
	if len(t.text) == 0 {
		content = t.title
		textStyle = style.Dim(true)
	} else {
		content = string(t.display()[scrollRunes:])
		title = t.title
	}

	box{top: title, style: style}.draw(out, area.Width, area.Height)
	if area.Height > 2 {
		drawString(out, 1, 1, area.Width-1, content, textStyle)
	}

	if t.mode == ModeEditing {
		cursorCell := runewidth.StringWidth(string(t.display()[:t.cursor]))
		cursor.ReportAt(max(cursorCell, scrollCells)-scrollCells+1, 1)
	}
}
