package runtime

import (
	"github.com/odvcencio/persistui/pkg/ui/component"
	"github.com/odvcencio/persistui/pkg/ui/widget"
)

// Placement is the region assigned to one leaf.
type Placement struct {
	Handle   component.Handle
	Area     widget.Rect
	Floating bool
}

// Layout assigns regions to the leaves of a tree.
type Layout interface {
	Arrange(root component.Component, area widget.Rect) []Placement
}

// SplitLayout divides space evenly. Grid rows share the height and each
// row's cells share its width. Lists stack their children vertically at
// even depths and side by side at odd depths. Floating leaves take no flow
// space and are centered over the whole area.
type SplitLayout struct {
	// FloatWidth and FloatHeight size overlays. Zero means half the width
	// and three rows.
	FloatWidth  int
	FloatHeight int
}

// Arrange returns in-flow placements in traversal order followed by
// floating placements in traversal order.
func (l SplitLayout) Arrange(root component.Component, area widget.Rect) []Placement {
	var flow, floats []Placement
	l.arrange(root, area, area, 0, &flow, &floats)
	return append(flow, floats...)
}

func (l SplitLayout) arrange(c component.Component, area, screen widget.Rect, depth int, flow, floats *[]Placement) {
	switch c.Kind() {
	case component.KindWidget:
		h, _ := c.Handle()
		*flow = append(*flow, Placement{Handle: h, Area: area})

	case component.KindFloating:
		h, _ := c.Handle()
		*floats = append(*floats, Placement{Handle: h, Area: l.overlay(screen), Floating: true})

	case component.KindList:
		items := c.Items()
		regions := split(area, countFlow(items), depth%2 == 1)
		next := 0
		for _, child := range items {
			if child.Kind() == component.KindFloating {
				l.arrange(child, widget.Rect{}, screen, depth+1, flow, floats)
				continue
			}
			l.arrange(child, regions[next], screen, depth+1, flow, floats)
			next++
		}

	case component.KindGrid:
		rows := area.SplitRows(c.Rows())
		for r := range rows {
			cells := c.Row(r)
			cols := split(rows[r], countFlow(cells), true)
			next := 0
			for _, cell := range cells {
				if cell.Kind() == component.KindFloating {
					l.arrange(cell, widget.Rect{}, screen, depth+1, flow, floats)
					continue
				}
				l.arrange(cell, cols[next], screen, depth+1, flow, floats)
				next++
			}
		}
	}
}

func (l SplitLayout) overlay(screen widget.Rect) widget.Rect {
	w, h := l.FloatWidth, l.FloatHeight
	if w <= 0 {
		w = screen.Width / 2
	}
	if h <= 0 {
		h = 3
	}
	return screen.Centered(w, h)
}

func split(area widget.Rect, n int, horizontal bool) []widget.Rect {
	if horizontal {
		return area.SplitCols(n)
	}
	return area.SplitRows(n)
}

func countFlow(nodes []component.Component) int {
	n := 0
	for _, c := range nodes {
		if c.Kind() != component.KindFloating {
			n++
		}
	}
	return n
}
