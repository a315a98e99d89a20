package runtime

import (
	"github.com/odvcencio/persistui/pkg/ui/component"
	"github.com/odvcencio/persistui/pkg/ui/widget"
)

// Focusable is implemented by leaves that may opt out of focus cycling.
// Leaves without it are focusable.
type Focusable interface {
	CanFocus() bool
}

// FocusRing tracks which leaf of a tree has focus. Positions are traversal
// indices. Cycling wraps around and skips leaves that cannot focus.
type FocusRing struct {
	tree    *component.Tree
	leaves  []component.Handle
	current int // -1 if none
}

// NewFocusRing creates a ring over tree's leaves with nothing focused.
func NewFocusRing(tree *component.Tree) *FocusRing {
	return &FocusRing{
		tree:    tree,
		leaves:  tree.Leaves(),
		current: -1,
	}
}

// Count returns the number of leaves in the ring.
func (f *FocusRing) Count() int {
	return len(f.leaves)
}

// Index returns the focused position, or -1.
func (f *FocusRing) Index() int {
	return f.current
}

// Current returns the focused leaf handle.
func (f *FocusRing) Current() (component.Handle, bool) {
	if f.current < 0 || f.current >= len(f.leaves) {
		return 0, false
	}
	return f.leaves[f.current], true
}

// Widget returns the focused leaf.
func (f *FocusRing) Widget() (widget.Widget, bool) {
	h, ok := f.Current()
	if !ok {
		return nil, false
	}
	return f.tree.Widget(h)
}

// Focus moves focus to the leaf at position i. Out of range positions and
// leaves that cannot focus are ignored. Returns true if focus changed.
func (f *FocusRing) Focus(i int) bool {
	if i < 0 || i >= len(f.leaves) || !f.canFocus(i) {
		return false
	}
	return f.focusIndex(i)
}

// Next moves focus forward, wrapping to the first leaf.
func (f *FocusRing) Next() bool {
	n := len(f.leaves)
	if n == 0 {
		return false
	}
	start := f.current
	for step := 1; step <= n; step++ {
		idx := (start + step + n) % n
		if f.canFocus(idx) {
			return f.focusIndex(idx)
		}
	}
	return false
}

// Prev moves focus backward, wrapping to the last leaf.
func (f *FocusRing) Prev() bool {
	n := len(f.leaves)
	if n == 0 {
		return false
	}
	start := f.current
	if start < 0 {
		start = n
	}
	for step := 1; step <= n; step++ {
		idx := ((start-step)%n + n) % n
		if f.canFocus(idx) {
			return f.focusIndex(idx)
		}
	}
	return false
}

// Reset unfocuses the current leaf and leaves nothing focused.
func (f *FocusRing) Reset() {
	if w, ok := f.Widget(); ok {
		w.Unfocus()
	}
	f.current = -1
}

// Forget drops the focused position without notifying the leaf.
func (f *FocusRing) Forget() {
	f.current = -1
}

func (f *FocusRing) canFocus(i int) bool {
	w, ok := f.tree.Widget(f.leaves[i])
	if !ok {
		return false
	}
	if fc, ok := w.(Focusable); ok {
		return fc.CanFocus()
	}
	return true
}

func (f *FocusRing) focusIndex(i int) bool {
	if i == f.current {
		return false
	}
	if w, ok := f.Widget(); ok {
		w.Unfocus()
	}
	f.current = i
	if w, ok := f.Widget(); ok {
		w.Focus()
	}
	return true
}
