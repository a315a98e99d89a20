package component

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odvcencio/persistui/pkg/ui/backend"
	"github.com/odvcencio/persistui/pkg/ui/terminal"
	"github.com/odvcencio/persistui/pkg/ui/widget"
)

// stub is a minimal leaf that records calls.
type stub struct {
	name    string
	focused bool
	cleared int
	length  int
}

func (s *stub) Draw(widget.Rect, backend.RenderTarget, *widget.CursorHint) {}
func (s *stub) HandleKey(terminal.KeyEvent) (widget.Event, bool)          { return nil, false }
func (s *stub) Focus()                                                    { s.focused = true }
func (s *stub) Unfocus()                                                  { s.focused = false }
func (s *stub) Clear(bool)                                                { s.cleared++ }
func (s *stub) Len() int                                                  { return s.length }

func stubs(names ...string) []*stub {
	out := make([]*stub, len(names))
	for i, n := range names {
		out[i] = &stub{name: n}
	}
	return out
}

func names(t *testing.T, tree *Tree) []string {
	t.Helper()
	var out []string
	tree.ForEach(func(_ int, _ Handle, w widget.Widget) bool {
		out = append(out, w.(*stub).name)
		return true
	})
	return out
}

// mixedTree builds:
//
//	list
//	├── a
//	├── grid [[b, c], [d]]
//	├── list [e, list [f]]
//	└── floating g
func mixedTree() *Tree {
	a := NewArena()
	ws := stubs("a", "b", "c", "d", "e", "f", "g")
	root := List(
		a.Widget(ws[0]),
		Grid(
			[]Component{a.Widget(ws[1]), a.Widget(ws[2])},
			[]Component{a.Widget(ws[3])},
		),
		List(a.Widget(ws[4]), List(a.Widget(ws[5]))),
		a.Floating(ws[6]),
	)
	return NewTree(a, root)
}

func TestIter_DepthFirstRowMajor(t *testing.T) {
	tree := mixedTree()

	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f", "g"}, names(t, tree))
	assert.Equal(t, 7, tree.Len())
	assert.Equal(t, 7, tree.Root().Count())
	assert.Len(t, tree.Leaves(), 7)
}

func TestIter_EachLeafOnce(t *testing.T) {
	tree := mixedTree()
	seen := make(map[Handle]int)
	it := tree.Root().Iter()
	for {
		h, ok := it.Next()
		if !ok {
			break
		}
		seen[h]++
	}
	assert.Len(t, seen, tree.Len())
	for h, n := range seen {
		assert.Equal(t, 1, n, "handle %d visited %d times", h, n)
	}
	assert.Equal(t, tree.Len(), it.Visited())

	_, ok := it.Next()
	assert.False(t, ok, "exhausted iterator stays exhausted")
}

func TestIter_FreshIteratorRestarts(t *testing.T) {
	root := mixedTree().Root()
	assert.Equal(t, root.Handles(), root.Handles())
}

func TestIter_LeafRootAndEmpty(t *testing.T) {
	a := NewArena()
	leaf := a.Widget(&stub{name: "solo"})
	assert.Equal(t, []Handle{0}, leaf.Handles())

	assert.Empty(t, List().Handles())
	assert.Empty(t, Grid().Handles())
	assert.Empty(t, Grid([]Component{}, []Component{}).Handles())
	assert.Empty(t, Component{}.Handles())
}

func TestIter_RaggedGridSkipsEmptyRows(t *testing.T) {
	a := NewArena()
	ws := stubs("x", "y")
	root := Grid(nil, []Component{a.Widget(ws[0])}, nil, []Component{a.Widget(ws[1])})
	tree := NewTree(a, root)

	assert.Equal(t, []string{"x", "y"}, names(t, tree))
}

func TestAll_StopsEarly(t *testing.T) {
	root := mixedTree().Root()
	var got []int
	for i := range root.All() {
		got = append(got, i)
		if i == 2 {
			break
		}
	}
	assert.Equal(t, []int{0, 1, 2}, got)
}

func TestGrid2x2_AtMatchesIteration(t *testing.T) {
	a := NewArena()
	ws := stubs("r0c0", "r0c1", "r1c0", "r1c1")
	tree := NewTree(a, GridOf(a, [][]*stub{{ws[0], ws[1]}, {ws[2], ws[3]}}))

	byAddr, ok := tree.Root().At(1, 0)
	require.True(t, ok)
	byIter, ok := tree.Nth(2)
	require.True(t, ok)
	assert.Equal(t, byIter, byAddr)

	w, ok := tree.At(1, 0)
	require.True(t, ok)
	w.Focus()
	viaIter, _ := tree.Widget(byIter)
	assert.True(t, viaIter.(*stub).focused, "both paths observe the same leaf state")
	assert.Same(t, ws[2], w)
}

func TestLookup(t *testing.T) {
	tree := mixedTree()
	root := tree.Root()

	tests := []struct {
		name string
		path []int
		want string
	}{
		{name: "first leaf", path: []int{0}, want: "a"},
		{name: "grid cell", path: []int{1, 0, 1}, want: "c"},
		{name: "grid second row", path: []int{1, 1, 0}, want: "d"},
		{name: "nested list", path: []int{2, 1, 0}, want: "f"},
		{name: "floating", path: []int{3}, want: "g"},
		{name: "extra indices ignored", path: []int{0, 9, 9}, want: "a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, ok := root.Lookup(tt.path...)
			require.True(t, ok)
			w, _ := tree.Widget(h)
			assert.Equal(t, tt.want, w.(*stub).name)
		})
	}
}

func TestLookup_Misses(t *testing.T) {
	root := mixedTree().Root()

	misses := [][]int{
		{},
		{4},
		{-1},
		{1},
		{1, 0},
		{1, 1, 1},
		{1, 2, 0},
		{1, -1, 0},
		{2},
		{2, 1},
		{2, 1, 3},
	}
	for _, path := range misses {
		_, ok := root.Lookup(path...)
		assert.False(t, ok, "path %v", path)
	}
}

func TestLookup_LeafRoot(t *testing.T) {
	a := NewArena()
	root := a.Widget(&stub{name: "solo"})

	h, ok := root.Lookup()
	require.True(t, ok)
	assert.Equal(t, Handle(0), h)

	_, ok = root.Lookup(5)
	assert.True(t, ok)
}

func TestLookup_AgreesWithIteration(t *testing.T) {
	tree := mixedTree()
	paths := [][]int{{0}, {1, 0, 0}, {1, 0, 1}, {1, 1, 0}, {2, 0}, {2, 1, 0}, {3}}

	for i, path := range paths {
		byPath, ok := tree.Root().Lookup(path...)
		require.True(t, ok, "path %v", path)
		byIter, ok := tree.Nth(i)
		require.True(t, ok)
		assert.Equal(t, byIter, byPath, "path %v", path)
		assert.Equal(t, i, tree.IndexOf(byPath))
	}
}

func TestAt_ListRoot(t *testing.T) {
	tree := mixedTree()
	root := tree.Root()

	h, ok := root.At(0, 0)
	require.True(t, ok)
	w, _ := tree.Widget(h)
	assert.Equal(t, "a", w.(*stub).name)

	h, ok = root.At(2, 0)
	require.True(t, ok)
	w, _ = tree.Widget(h)
	assert.Equal(t, "e", w.(*stub).name)

	w, ok = tree.At(3, 0)
	require.True(t, ok)
	assert.Equal(t, "g", w.(*stub).name)

	_, ok = root.At(0, 1)
	assert.False(t, ok, "leaf row has a single cell")
	_, ok = root.At(1, 0)
	assert.False(t, ok, "grid child has no cells")
	_, ok = root.At(2, 1)
	assert.False(t, ok, "nested list is not a leaf")
	_, ok = root.At(4, 0)
	assert.False(t, ok)
	_, ok = root.At(-1, 0)
	assert.False(t, ok)
}

func TestAt_GridAndLeafRoots(t *testing.T) {
	a := NewArena()
	grid := GridOf(a, [][]*stub{stubs("a", "b"), stubs("c")})

	_, ok := grid.At(1, 1)
	assert.False(t, ok, "ragged row")
	_, ok = grid.At(2, 0)
	assert.False(t, ok)
	_, ok = grid.At(0, -1)
	assert.False(t, ok)
	_, ok = grid.At(0, 1)
	assert.True(t, ok)

	leaf := a.Widget(&stub{})
	_, ok = leaf.At(0, 0)
	assert.False(t, ok)
}

func TestAt_GridCellNotLeaf(t *testing.T) {
	a := NewArena()
	inner := ListOf(a, stubs("x"))
	grid := Grid([]Component{inner})

	_, ok := grid.At(0, 0)
	assert.False(t, ok)
}

func TestRowsAndCols(t *testing.T) {
	root := mixedTree().Root()

	assert.Equal(t, 4, root.Rows())
	assert.Equal(t, 1, root.Cols(0), "leaf child")
	assert.Equal(t, 2, root.Cols(1), "grid child counts rows")
	assert.Equal(t, 2, root.Cols(2), "list child counts items")
	assert.Equal(t, 1, root.Cols(3), "floating child")
	assert.Equal(t, 0, root.Cols(4))
	assert.Equal(t, 0, root.Cols(-1))

	a := NewArena()
	grid := GridOf(a, [][]*stub{stubs("a", "b", "c"), stubs("d")})
	assert.Equal(t, 2, grid.Rows())
	assert.Equal(t, 3, grid.Cols(0))
	assert.Equal(t, 1, grid.Cols(1))
	assert.Equal(t, 0, grid.Cols(2))

	leaf := a.Widget(&stub{})
	assert.Equal(t, 0, leaf.Rows())
	assert.Equal(t, 0, leaf.Cols(0))
}

func TestCount_MatchesStructure(t *testing.T) {
	a := NewArena()
	grid := GridOf(a, [][]*stub{stubs("a", "b"), stubs("c", "d")})

	total := 0
	for r := 0; r < grid.Rows(); r++ {
		total += grid.Cols(r)
	}
	assert.Equal(t, total, grid.Count())
	assert.Equal(t, len(grid.Handles()), grid.Count())
}

func TestDepth(t *testing.T) {
	assert.Equal(t, 4, mixedTree().Root().Depth())
	assert.Equal(t, 0, List().Depth())
	assert.Equal(t, 1, Leaf(0).Depth())
}

func TestConstructors_CopyInput(t *testing.T) {
	a := NewArena()
	children := []Component{a.Widget(&stub{name: "x"})}
	list := List(children...)
	children[0] = a.Widget(&stub{name: "y"})

	h, ok := list.Lookup(0)
	require.True(t, ok)
	assert.Equal(t, Handle(0), h)

	items := list.Items()
	items[0] = Leaf(99)
	h, _ = list.Lookup(0)
	assert.Equal(t, Handle(0), h)
}

func TestNestedOf(t *testing.T) {
	a := NewArena()
	tree := NewTree(a, NestedOf(a, [][]*stub{stubs("a", "b"), stubs("c")}))

	assert.Equal(t, []string{"a", "b", "c"}, names(t, tree))
	w, ok := tree.At(1, 0)
	require.True(t, ok)
	assert.Equal(t, "c", w.(*stub).name)
	assert.Equal(t, KindList, tree.Root().Kind())
}

func TestKindAndHandle(t *testing.T) {
	assert.Equal(t, KindList, Component{}.Kind())
	assert.Equal(t, "floating", Float(1).Kind().String())

	h, ok := Float(3).Handle()
	assert.True(t, ok)
	assert.Equal(t, Handle(3), h)

	_, ok = List().Handle()
	assert.False(t, ok)
	assert.Nil(t, List().Row(0))
	assert.Nil(t, Grid().Items())
}

func TestTree_LeafLen(t *testing.T) {
	a := NewArena()
	h := a.Add(&stub{length: 12})
	tree := NewTree(a, Leaf(h))

	assert.Equal(t, 12, tree.LeafLen(h))
	assert.Equal(t, 0, tree.LeafLen(Handle(7)))
	_, ok := tree.Nth(-1)
	assert.False(t, ok)
	_, ok = tree.Nth(1)
	assert.False(t, ok)
	assert.Equal(t, -1, tree.IndexOf(Handle(7)))
}

func TestArena_Lookup(t *testing.T) {
	a := NewArena()
	s := &stub{}
	h := a.Add(s)

	assert.Same(t, s, a.Get(h))
	assert.Nil(t, a.Get(-1))
	assert.Nil(t, a.Get(5))
	assert.Equal(t, 1, a.Len())

	var nilArena *Arena
	_, ok := nilArena.Lookup(0)
	assert.False(t, ok)
	assert.Equal(t, 0, nilArena.Len())
}
