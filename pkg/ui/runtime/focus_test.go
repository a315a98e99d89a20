package runtime

import (
	"testing"

	"github.com/odvcencio/persistui/pkg/ui/backend"
	"github.com/odvcencio/persistui/pkg/ui/component"
	"github.com/odvcencio/persistui/pkg/ui/terminal"
	"github.com/odvcencio/persistui/pkg/ui/widget"
)

// testLeaf records what the runtime does to it.
type testLeaf struct {
	name     string
	mark     rune
	noFocus  bool
	focused  bool
	cleared  int
	hard     bool
	keys     []terminal.KeyEvent
	emit     map[terminal.Key]widget.Event
	trigger  rune
	cursor   int
	pasted   string
	drawArea widget.Rect
}

func newLeaf(name string) *testLeaf {
	return &testLeaf{name: name, mark: rune(name[0]), cursor: -1}
}

func (l *testLeaf) Draw(area widget.Rect, out backend.RenderTarget, cursor *widget.CursorHint) {
	l.drawArea = area
	out.SetContent(0, 0, l.mark, nil, backend.DefaultStyle())
	if l.cursor >= 0 {
		cursor.Report(l.cursor)
	}
}

func (l *testLeaf) HandleKey(ev terminal.KeyEvent) (widget.Event, bool) {
	l.keys = append(l.keys, ev)
	if out, ok := l.emit[ev.Key]; ok {
		return out, true
	}
	return nil, false
}

func (l *testLeaf) Focus() { l.focused = true }
func (l *testLeaf) Unfocus() { l.focused = false }
func (l *testLeaf) Clear(hard bool) {
	l.focused = false
	l.cleared++
	l.hard = hard
}
func (l *testLeaf) Len() int { return len(l.name) }
func (l *testLeaf) CanFocus() bool { return !l.noFocus }
func (l *testLeaf) Paste(s string) { l.pasted += s }
func (l *testLeaf) Trigger() rune { return l.trigger }

func leafTree(leaves ...*testLeaf) *component.Tree {
	arena := component.NewArena()
	return component.NewTree(arena, component.ListOf(arena, leaves))
}

func TestFocusRing_New(t *testing.T) {
	ring := NewFocusRing(leafTree(newLeaf("a"), newLeaf("b")))

	if ring.Count() != 2 {
		t.Errorf("Count() = %d, want 2", ring.Count())
	}
	if ring.Index() != -1 {
		t.Errorf("Index() = %d, want -1", ring.Index())
	}
	if _, ok := ring.Current(); ok {
		t.Error("Current() should report nothing focused")
	}
}

func TestFocusRing_Focus(t *testing.T) {
	a, b := newLeaf("a"), newLeaf("b")
	ring := NewFocusRing(leafTree(a, b))

	if !ring.Focus(1) {
		t.Fatal("Focus(1) should change focus")
	}
	if !b.focused || a.focused {
		t.Errorf("expected only b focused, a=%v b=%v", a.focused, b.focused)
	}
	if ring.Focus(1) {
		t.Error("refocusing the same leaf should report no change")
	}

	ring.Focus(0)
	if !a.focused || b.focused {
		t.Errorf("expected only a focused, a=%v b=%v", a.focused, b.focused)
	}
}

func TestFocusRing_FocusOutOfRange(t *testing.T) {
	a := newLeaf("a")
	ring := NewFocusRing(leafTree(a))
	ring.Focus(0)

	for _, i := range []int{-1, 1, 100} {
		if ring.Focus(i) {
			t.Errorf("Focus(%d) should be ignored", i)
		}
	}
	if ring.Index() != 0 || !a.focused {
		t.Error("focus should be unchanged")
	}
}

func TestFocusRing_NextWraps(t *testing.T) {
	a, b, c := newLeaf("a"), newLeaf("b"), newLeaf("c")
	ring := NewFocusRing(leafTree(a, b, c))

	want := []int{0, 1, 2, 0, 1}
	for i, w := range want {
		ring.Next()
		if ring.Index() != w {
			t.Fatalf("step %d: Index() = %d, want %d", i, ring.Index(), w)
		}
	}
	if !b.focused || a.focused || c.focused {
		t.Error("only b should be focused")
	}
}

func TestFocusRing_PrevWraps(t *testing.T) {
	ring := NewFocusRing(leafTree(newLeaf("a"), newLeaf("b"), newLeaf("c")))

	want := []int{2, 1, 0, 2}
	for i, w := range want {
		ring.Prev()
		if ring.Index() != w {
			t.Fatalf("step %d: Index() = %d, want %d", i, ring.Index(), w)
		}
	}
}

func TestFocusRing_SkipsUnfocusable(t *testing.T) {
	a, b, c := newLeaf("a"), newLeaf("b"), newLeaf("c")
	b.noFocus = true
	ring := NewFocusRing(leafTree(a, b, c))

	ring.Next()
	ring.Next()
	if ring.Index() != 2 {
		t.Errorf("Index() = %d, want 2", ring.Index())
	}
	ring.Prev()
	if ring.Index() != 0 {
		t.Errorf("Index() = %d, want 0", ring.Index())
	}
	if ring.Focus(1) {
		t.Error("Focus on an unfocusable leaf should be ignored")
	}
}

func TestFocusRing_Empty(t *testing.T) {
	ring := NewFocusRing(component.NewTree(nil, component.List()))
	if ring.Next() || ring.Prev() || ring.Focus(0) {
		t.Error("empty ring should never change focus")
	}
}

func TestFocusRing_SingleLeaf(t *testing.T) {
	a := newLeaf("a")
	ring := NewFocusRing(leafTree(a))
	ring.Next()
	if ring.Next() {
		t.Error("cycling a single leaf should not report a change")
	}
	if ring.Index() != 0 || !a.focused {
		t.Error("single leaf should stay focused")
	}
}

func TestFocusRing_ResetAndForget(t *testing.T) {
	a := newLeaf("a")
	ring := NewFocusRing(leafTree(a))

	ring.Focus(0)
	ring.Reset()
	if a.focused || ring.Index() != -1 {
		t.Error("Reset should unfocus and clear the index")
	}

	ring.Focus(0)
	ring.Forget()
	if !a.focused {
		t.Error("Forget should not notify the leaf")
	}
	if ring.Index() != -1 {
		t.Error("Forget should clear the index")
	}
}

func TestFocusRing_FollowsTraversalOrder(t *testing.T) {
	arena := component.NewArena()
	a, b, c := newLeaf("a"), newLeaf("b"), newLeaf("c")
	root := component.List(
		component.GridOf(arena, [][]*testLeaf{{a}, {b}}),
		arena.Widget(c),
	)
	ring := NewFocusRing(component.NewTree(arena, root))

	ring.Focus(1)
	if !b.focused {
		t.Error("index 1 should be the second grid row")
	}
	ring.Next()
	if !c.focused {
		t.Error("next after the grid should be the trailing leaf")
	}
}
