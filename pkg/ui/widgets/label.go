package widgets

import (
	"strings"

	"github.com/odvcencio/persistui/pkg/ui/backend"
	"github.com/odvcencio/persistui/pkg/ui/widget"
)

// Label draws static text, one line per row, optionally inside a frame.
// It never takes keys.
type Label struct {
	Base
	text   string
	title  string
	framed bool
	style  backend.Style
}

// NewLabel creates an unframed label.
func NewLabel(text string) *Label {
	return &Label{text: text, style: backend.DefaultStyle()}
}

// Framed draws the label inside a rounded box titled title.
func (l *Label) Framed(title string) *Label {
	l.framed = true
	l.title = title
	return l
}

// WithStyle sets the text style and returns the label.
func (l *Label) WithStyle(s backend.Style) *Label {
	l.style = s
	return l
}

// SetText replaces the text.
func (l *Label) SetText(s string) {
	l.text = s
}

// Text returns the text.
func (l *Label) Text() string {
	return l.text
}

// CanFocus reports false; focus cycling skips labels.
func (l *Label) CanFocus() bool {
	return false
}

// Len returns the text length in runes.
func (l *Label) Len() int {
	return len([]rune(l.text))
}

// Draw renders the text, truncating lines that do not fit.
func (l *Label) Draw(area widget.Rect, out backend.RenderTarget, _ *widget.CursorHint) {
	if area.Empty() {
		return
	}
	fill(out, 0, 0, area.Width, area.Height, l.style)

	x, y, w, h := 0, 0, area.Width, area.Height
	if l.framed {
		box{top: l.title, style: l.style}.draw(out, area.Width, area.Height)
		x, y, w, h = 1, 1, area.Width-2, area.Height-2
	}
	for i, line := range strings.Split(l.text, "\n") {
		if i >= h {
			break
		}
		drawString(out, x, y+i, x+w, truncate(line, w), l.style)
	}
}
