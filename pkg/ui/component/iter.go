package component

import "iter"

// frame is one level of the traversal: a list with a position, or a grid
// with a row and column cursor.
type frame struct {
	list []Component
	grid [][]Component
	i, j int
}

// next returns the next child at this level.
func (f *frame) next() (Component, bool) {
	if f.grid != nil {
		for f.i < len(f.grid) && f.j >= len(f.grid[f.i]) {
			f.i++
			f.j = 0
		}
		if f.i >= len(f.grid) {
			return Component{}, false
		}
		c := f.grid[f.i][f.j]
		f.j++
		return c, true
	}
	if f.i >= len(f.list) {
		return Component{}, false
	}
	c := f.list[f.i]
	f.i++
	return c, true
}

// Iterator walks the leaves of a tree depth-first, visiting list children
// in order and grid cells in row-major order. The stack grows with tree
// depth only.
type Iterator struct {
	stack []frame
	index int
}

// Iter returns a fresh iterator over c's leaves.
func (c Component) Iter() *Iterator {
	return &Iterator{
		stack: []frame{{list: []Component{c}}},
	}
}

// Next returns the next leaf handle, or false when the walk is done.
func (it *Iterator) Next() (Handle, bool) {
	for len(it.stack) > 0 {
		child, ok := it.stack[len(it.stack)-1].next()
		if !ok {
			it.stack = it.stack[:len(it.stack)-1]
			continue
		}
		switch child.kind {
		case KindWidget, KindFloating:
			it.index++
			return child.leaf, true
		case KindList:
			it.stack = append(it.stack, frame{list: child.items})
		case KindGrid:
			it.stack = append(it.stack, frame{grid: child.rows})
		}
	}
	return 0, false
}

// Visited returns how many leaves Next has produced.
func (it *Iterator) Visited() int {
	return it.index
}

// All yields (position, handle) for every leaf in traversal order.
func (c Component) All() iter.Seq2[int, Handle] {
	return func(yield func(int, Handle) bool) {
		it := c.Iter()
		for i := 0; ; i++ {
			h, ok := it.Next()
			if !ok || !yield(i, h) {
				return
			}
		}
	}
}

// Handles returns every leaf handle in traversal order.
func (c Component) Handles() []Handle {
	out := make([]Handle, 0, c.Count())
	for _, h := range c.All() {
		out = append(out, h)
	}
	return out
}
