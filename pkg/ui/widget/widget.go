// Package widget defines the capability every leaf of the component tree
// provides: drawing into a region, reacting to keys, focus and clearing.
package widget

import (
	"github.com/odvcencio/persistui/pkg/ui/backend"
	"github.com/odvcencio/persistui/pkg/ui/terminal"
)

// Widget is a renderable, key-interactive leaf.
type Widget interface {
	// Draw renders into out, whose origin is area's top-left corner. A
	// widget that owns the text cursor reports its column through cursor.
	Draw(area Rect, out backend.RenderTarget, cursor *CursorHint)

	// HandleKey processes a key and optionally emits a widget event.
	HandleKey(ev terminal.KeyEvent) (Event, bool)

	Focus()
	Unfocus()

	// Clear resets transient state. hard also discards content.
	Clear(hard bool)

	// Len reports the widget's logical length, for widgets with content.
	Len() int
}

// Event is emitted by a widget in response to a key.
type Event interface {
	isWidgetEvent()
}

// Input is emitted when a text field is submitted.
type Input struct {
	ID      string
	Text    string
	HasText bool
}

// Button is emitted when a button is pressed.
type Button struct {
	ID string
}

func (Input) isWidgetEvent()  {}
func (Button) isWidgetEvent() {}

// CursorHint collects the cursor position a widget wants during Draw.
type CursorHint struct {
	col, row int
	set      bool
}

// Report records col on the area's first row.
func (c *CursorHint) Report(col int) {
	c.ReportAt(col, 0)
}

// ReportAt records (col, row), relative to the drawn area.
func (c *CursorHint) ReportAt(col, row int) {
	if c == nil {
		return
	}
	c.col, c.row = col, row
	c.set = true
}

// Column returns the reported column, if any.
func (c *CursorHint) Column() (int, bool) {
	if c == nil {
		return 0, false
	}
	return c.col, c.set
}

// Position returns the reported column and row, if any.
func (c *CursorHint) Position() (col, row int, ok bool) {
	if c == nil {
		return 0, 0, false
	}
	return c.col, c.row, c.set
}

// Reset forgets any reported position.
func (c *CursorHint) Reset() {
	if c == nil {
		return
	}
	*c = CursorHint{}
}

// Rect is a positioned region on the terminal.
type Rect struct {
	X, Y, Width, Height int
}

// NewRect creates a rect from position and size.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, Width: w, Height: h}
}

// Empty reports whether the rect has no cells.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether (x, y) lies inside the rect.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Inset returns a rect shrunk by the given amounts.
func (r Rect) Inset(top, right, bottom, left int) Rect {
	return Rect{
		X:      r.X + left,
		Y:      r.Y + top,
		Width:  max(0, r.Width-left-right),
		Height: max(0, r.Height-top-bottom),
	}
}

// Centered returns a w by h rect centered inside r, clamped to r.
func (r Rect) Centered(w, h int) Rect {
	w = min(max(w, 0), r.Width)
	h = min(max(h, 0), r.Height)
	return Rect{
		X:      r.X + (r.Width-w)/2,
		Y:      r.Y + (r.Height-h)/2,
		Width:  w,
		Height: h,
	}
}

// SplitRows divides r into n stacked rects of near-equal height. Earlier
// rects absorb the remainder.
func (r Rect) SplitRows(n int) []Rect {
	if n <= 0 {
		return nil
	}
	out := make([]Rect, n)
	y := r.Y
	for i := range out {
		h := r.Height / n
		if i < r.Height%n {
			h++
		}
		out[i] = Rect{X: r.X, Y: y, Width: r.Width, Height: h}
		y += h
	}
	return out
}

// SplitCols divides r into n side-by-side rects of near-equal width.
func (r Rect) SplitCols(n int) []Rect {
	if n <= 0 {
		return nil
	}
	out := make([]Rect, n)
	x := r.X
	for i := range out {
		w := r.Width / n
		if i < r.Width%n {
			w++
		}
		out[i] = Rect{X: x, Y: r.Y, Width: w, Height: r.Height}
		x += w
	}
	return out
}

// Target returns a render target clipped to r within parent.
func (r Rect) Target(parent backend.RenderTarget) *backend.SubTarget {
	return backend.NewSubTarget(parent, r.X, r.Y, r.Width, r.Height)
}
