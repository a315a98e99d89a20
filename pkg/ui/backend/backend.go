// Package backend defines the terminal surface the composition layer draws
// on and reads raw input from. The tcell adapter drives a real terminal; the
// sim adapter wraps a tcell simulation screen for tests.
package backend

import "github.com/odvcencio/persistui/pkg/ui/terminal"

// InputSource yields raw terminal events.
type InputSource interface {
	// PollEvent blocks until an event is available. A nil result means
	// the input stream has closed and no further events will arrive.
	PollEvent() terminal.Event
}

// Backend is the full terminal abstraction: input plus a cell surface.
type Backend interface {
	InputSource

	// Init enters raw mode and the alternate screen.
	Init() error

	// Fini restores the terminal. Pending PollEvent calls return nil.
	Fini()

	Size() (width, height int)

	// SetContent sets a cell at (x, y). comb holds combining runes and may be nil.
	SetContent(x, y int, mainc rune, comb []rune, style Style)

	// Show flushes the cell buffer to the terminal.
	Show()

	Clear()
	HideCursor()
	SetCursorPos(x, y int)

	// PostEvent injects an event into the input stream.
	PostEvent(ev terminal.Event) error

	// Sync forces a full repaint on the next Show.
	Sync()
}

// RenderTarget is the drawing subset of Backend handed to leaf widgets.
type RenderTarget interface {
	Size() (width, height int)
	SetContent(x, y int, mainc rune, comb []rune, style Style)
}

// SubTarget clips and offsets drawing into a region of a parent target.
type SubTarget struct {
	parent  RenderTarget
	offsetX int
	offsetY int
	width   int
	height  int
}

// NewSubTarget creates a region of parent at (x, y) sized w by h.
func NewSubTarget(parent RenderTarget, x, y, w, h int) *SubTarget {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &SubTarget{
		parent:  parent,
		offsetX: x,
		offsetY: y,
		width:   w,
		height:  h,
	}
}

// Size returns the region dimensions.
func (s *SubTarget) Size() (width, height int) {
	return s.width, s.height
}

// Origin returns the region offset within its parent.
func (s *SubTarget) Origin() (x, y int) {
	return s.offsetX, s.offsetY
}

// SetContent draws at region-relative coordinates, discarding cells outside.
func (s *SubTarget) SetContent(x, y int, mainc rune, comb []rune, style Style) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	s.parent.SetContent(s.offsetX+x, s.offsetY+y, mainc, comb, style)
}

// FillRect paints every cell of the target with r.
func FillRect(t RenderTarget, r rune, style Style) {
	w, h := t.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			t.SetContent(x, y, r, nil, style)
		}
	}
}
