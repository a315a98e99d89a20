// Package component arranges leaf widgets into lists, grids and floating
// overlays. A tree's shape is fixed once built; only leaf state changes.
//
// Leaves live in an Arena and nodes refer to them by Handle, so a leaf
// reached through iteration and the same leaf reached through addressing are
// one object.
package component

import "slices"

// Kind identifies the variant of a Component.
type Kind uint8

const (
	KindList Kind = iota
	KindWidget
	KindGrid
	KindFloating
)

func (k Kind) String() string {
	switch k {
	case KindWidget:
		return "widget"
	case KindList:
		return "list"
	case KindGrid:
		return "grid"
	case KindFloating:
		return "floating"
	default:
		return "unknown"
	}
}

// Component is a node of the tree. The zero value is an empty list.
type Component struct {
	kind  Kind
	leaf  Handle
	items []Component
	rows  [][]Component
}

// Leaf returns an in-flow leaf node.
func Leaf(h Handle) Component {
	return Component{kind: KindWidget, leaf: h}
}

// Float returns an overlay leaf node. It is addressed like Leaf.
func Float(h Handle) Component {
	return Component{kind: KindFloating, leaf: h}
}

// List returns an ordered list of children.
func List(children ...Component) Component {
	return Component{kind: KindList, items: slices.Clone(children)}
}

// Grid returns rows of children. Rows need not have equal length.
func Grid(rows ...[]Component) Component {
	out := make([][]Component, len(rows))
	for i, r := range rows {
		out[i] = slices.Clone(r)
	}
	return Component{kind: KindGrid, rows: out}
}

// Kind returns the node variant.
func (c Component) Kind() Kind {
	return c.kind
}

// IsLeaf reports whether c is a widget or floating leaf.
func (c Component) IsLeaf() bool {
	return c.kind == KindWidget || c.kind == KindFloating
}

// Handle returns the leaf handle of a leaf node.
func (c Component) Handle() (Handle, bool) {
	if !c.IsLeaf() {
		return 0, false
	}
	return c.leaf, true
}

// Items returns a copy of a list's children. Nil for other kinds.
func (c Component) Items() []Component {
	if c.kind != KindList {
		return nil
	}
	return slices.Clone(c.items)
}

// Row returns a copy of a grid row, or nil if out of range.
func (c Component) Row(row int) []Component {
	if c.kind != KindGrid || row < 0 || row >= len(c.rows) {
		return nil
	}
	return slices.Clone(c.rows[row])
}

// Child returns the i-th child of a list.
func (c Component) Child(i int) (Component, bool) {
	if c.kind != KindList || i < 0 || i >= len(c.items) {
		return Component{}, false
	}
	return c.items[i], true
}

// Cell returns the node at (row, col) of a grid.
func (c Component) Cell(row, col int) (Component, bool) {
	if c.kind != KindGrid || row < 0 || row >= len(c.rows) {
		return Component{}, false
	}
	cells := c.rows[row]
	if col < 0 || col >= len(cells) {
		return Component{}, false
	}
	return cells[col], true
}

// Lookup descends one index per level and returns the first leaf reached.
// A grid consumes two indices, row then column. Indices left over once a
// leaf is reached are ignored. The path misses if it is exhausted on a
// container or any index is out of range.
func (c Component) Lookup(path ...int) (Handle, bool) {
	cur := c
	for {
		switch cur.kind {
		case KindWidget, KindFloating:
			return cur.leaf, true
		case KindList:
			if len(path) == 0 {
				return 0, false
			}
			next, ok := cur.Child(path[0])
			if !ok {
				return 0, false
			}
			cur, path = next, path[1:]
		case KindGrid:
			if len(path) < 2 {
				return 0, false
			}
			next, ok := cur.Cell(path[0], path[1])
			if !ok {
				return 0, false
			}
			cur, path = next, path[2:]
		default:
			return 0, false
		}
	}
}

// At addresses a leaf two levels down. On a grid it is the cell at
// (row, col). On a list, row selects a child: a list child is indexed by
// col, a leaf child is a one-cell row, and a grid child has no cells. The
// addressed node must itself be a leaf.
func (c Component) At(row, col int) (Handle, bool) {
	var target Component
	switch c.kind {
	case KindGrid:
		cell, ok := c.Cell(row, col)
		if !ok {
			return 0, false
		}
		target = cell
	case KindList:
		child, ok := c.Child(row)
		if !ok {
			return 0, false
		}
		switch {
		case child.IsLeaf():
			if col != 0 {
				return 0, false
			}
			target = child
		case child.kind == KindList:
			inner, ok := child.Child(col)
			if !ok {
				return 0, false
			}
			target = inner
		default:
			return 0, false
		}
	default:
		return 0, false
	}
	return target.Handle()
}

// Rows returns the number of direct children of c: list items or grid rows.
func (c Component) Rows() int {
	switch c.kind {
	case KindList:
		return len(c.items)
	case KindGrid:
		return len(c.rows)
	default:
		return 0
	}
}

// Cols returns the number of cells in row: the grid row's length, or for a
// list the child's own width (1 for a leaf, item count for a list, row count
// for a grid). Out of range rows have no cells.
func (c Component) Cols(row int) int {
	switch c.kind {
	case KindGrid:
		if row < 0 || row >= len(c.rows) {
			return 0
		}
		return len(c.rows[row])
	case KindList:
		child, ok := c.Child(row)
		if !ok {
			return 0
		}
		if child.IsLeaf() {
			return 1
		}
		return child.Rows()
	default:
		return 0
	}
}

// Count returns the number of leaves in the tree.
func (c Component) Count() int {
	switch c.kind {
	case KindWidget, KindFloating:
		return 1
	case KindList:
		n := 0
		for _, child := range c.items {
			n += child.Count()
		}
		return n
	case KindGrid:
		n := 0
		for _, row := range c.rows {
			for _, cell := range row {
				n += cell.Count()
			}
		}
		return n
	default:
		return 0
	}
}

// Depth returns the number of levels from c to its deepest leaf. A leaf
// has depth 1 and an empty container depth 0.
func (c Component) Depth() int {
	best := 0
	switch c.kind {
	case KindWidget, KindFloating:
		return 1
	case KindList:
		for _, child := range c.items {
			best = max(best, child.Depth())
		}
	case KindGrid:
		for _, row := range c.rows {
			for _, cell := range row {
				best = max(best, cell.Depth())
			}
		}
	}
	if best == 0 {
		return 0
	}
	return best + 1
}
