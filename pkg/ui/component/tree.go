package component

import "github.com/odvcencio/persistui/pkg/ui/widget"

// Tree pairs a root node with the arena holding its leaves.
type Tree struct {
	arena *Arena
	root  Component
}

// NewTree creates a tree over root. Every handle in root must come from arena.
func NewTree(arena *Arena, root Component) *Tree {
	if arena == nil {
		arena = NewArena()
	}
	return &Tree{arena: arena, root: root}
}

// Arena returns the leaf store.
func (t *Tree) Arena() *Arena {
	return t.arena
}

// Root returns the root node.
func (t *Tree) Root() Component {
	return t.root
}

// Widget returns the leaf for h.
func (t *Tree) Widget(h Handle) (widget.Widget, bool) {
	return t.arena.Lookup(h)
}

// Lookup resolves a path to a leaf. See Component.Lookup.
func (t *Tree) Lookup(path ...int) (widget.Widget, bool) {
	h, ok := t.root.Lookup(path...)
	if !ok {
		return nil, false
	}
	return t.arena.Lookup(h)
}

// At resolves (row, col) to a leaf. See Component.At.
func (t *Tree) At(row, col int) (widget.Widget, bool) {
	h, ok := t.root.At(row, col)
	if !ok {
		return nil, false
	}
	return t.arena.Lookup(h)
}

// Len returns the number of leaves in the tree.
func (t *Tree) Len() int {
	return t.root.Count()
}

// Leaves returns every leaf handle in traversal order.
func (t *Tree) Leaves() []Handle {
	return t.root.Handles()
}

// Nth returns the handle of the i-th leaf in traversal order.
func (t *Tree) Nth(i int) (Handle, bool) {
	if i < 0 {
		return 0, false
	}
	for pos, h := range t.root.All() {
		if pos == i {
			return h, true
		}
	}
	return 0, false
}

// IndexOf returns the traversal position of h, or -1.
func (t *Tree) IndexOf(h Handle) int {
	for pos, leaf := range t.root.All() {
		if leaf == h {
			return pos
		}
	}
	return -1
}

// ForEach calls fn for every leaf in traversal order until fn returns false.
func (t *Tree) ForEach(fn func(i int, h Handle, w widget.Widget) bool) {
	for pos, h := range t.root.All() {
		w, ok := t.arena.Lookup(h)
		if !ok {
			continue
		}
		if !fn(pos, h, w) {
			return
		}
	}
}

// LeafLen reports the logical length of the leaf at h, or 0.
func (t *Tree) LeafLen(h Handle) int {
	w, ok := t.arena.Lookup(h)
	if !ok {
		return 0
	}
	return w.Len()
}
