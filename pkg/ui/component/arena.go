package component

import "github.com/odvcencio/persistui/pkg/ui/widget"

// Handle is a stable reference to a leaf stored in an Arena.
type Handle int

// Arena owns the leaves of one or more trees. Leaves are never removed; a
// tree is rebuilt rather than edited.
type Arena struct {
	leaves []widget.Widget
}

// NewArena creates an empty arena.
func NewArena() *Arena {
	return &Arena{}
}

// Add stores w and returns its handle.
func (a *Arena) Add(w widget.Widget) Handle {
	a.leaves = append(a.leaves, w)
	return Handle(len(a.leaves) - 1)
}

// Get returns the leaf for h, or nil if h was not issued by this arena.
func (a *Arena) Get(h Handle) widget.Widget {
	w, _ := a.Lookup(h)
	return w
}

// Lookup returns the leaf for h.
func (a *Arena) Lookup(h Handle) (widget.Widget, bool) {
	if a == nil || h < 0 || int(h) >= len(a.leaves) {
		return nil, false
	}
	return a.leaves[h], true
}

// Len returns the number of stored leaves.
func (a *Arena) Len() int {
	if a == nil {
		return 0
	}
	return len(a.leaves)
}

// Widget stores w and returns it as an in-flow leaf.
func (a *Arena) Widget(w widget.Widget) Component {
	return Leaf(a.Add(w))
}

// Floating stores w and returns it as an overlay leaf.
func (a *Arena) Floating(w widget.Widget) Component {
	return Float(a.Add(w))
}

// ListOf stores each widget and returns them as a list of leaves.
func ListOf[W widget.Widget](a *Arena, ws []W) Component {
	items := make([]Component, len(ws))
	for i, w := range ws {
		items[i] = a.Widget(w)
	}
	return Component{kind: KindList, items: items}
}

// NestedOf builds a list whose children are lists of leaves.
func NestedOf[W widget.Widget](a *Arena, groups [][]W) Component {
	items := make([]Component, len(groups))
	for i, g := range groups {
		items[i] = ListOf(a, g)
	}
	return Component{kind: KindList, items: items}
}

// GridOf builds a grid whose cells are leaves. Rows may differ in length.
func GridOf[W widget.Widget](a *Arena, rows [][]W) Component {
	out := make([][]Component, len(rows))
	for r, row := range rows {
		cells := make([]Component, len(row))
		for c, w := range row {
			cells[c] = a.Widget(w)
		}
		out[r] = cells
	}
	return Component{kind: KindGrid, rows: out}
}
