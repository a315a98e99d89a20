package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type cell struct {
	r     rune
	style Style
}

type gridTarget struct {
	w, h  int
	cells map[[2]int]cell
}

func newGridTarget(w, h int) *gridTarget {
	return &gridTarget{w: w, h: h, cells: make(map[[2]int]cell)}
}

func (g *gridTarget) Size() (int, int) { return g.w, g.h }

func (g *gridTarget) SetContent(x, y int, r rune, _ []rune, style Style) {
	g.cells[[2]int{x, y}] = cell{r: r, style: style}
}

func TestSubTarget_OffsetsAndClips(t *testing.T) {
	parent := newGridTarget(10, 5)
	sub := NewSubTarget(parent, 2, 1, 3, 2)

	sub.SetContent(0, 0, 'a', nil, DefaultStyle())
	sub.SetContent(2, 1, 'b', nil, DefaultStyle())
	sub.SetContent(3, 0, 'x', nil, DefaultStyle())
	sub.SetContent(-1, 0, 'x', nil, DefaultStyle())

	assert.Equal(t, 'a', parent.cells[[2]int{2, 1}].r)
	assert.Equal(t, 'b', parent.cells[[2]int{4, 2}].r)
	assert.Len(t, parent.cells, 2)

	w, h := sub.Size()
	assert.Equal(t, 3, w)
	assert.Equal(t, 2, h)
	x, y := sub.Origin()
	assert.Equal(t, 2, x)
	assert.Equal(t, 1, y)
}

func TestSubTarget_NegativeSize(t *testing.T) {
	sub := NewSubTarget(newGridTarget(4, 4), 0, 0, -2, -1)
	w, h := sub.Size()
	assert.Zero(t, w)
	assert.Zero(t, h)
}

func TestFillRect(t *testing.T) {
	parent := newGridTarget(3, 2)
	FillRect(parent, '.', DefaultStyle())
	assert.Len(t, parent.cells, 6)
}

func TestColorRGB(t *testing.T) {
	c := ColorRGB(48, 72, 144)
	assert.True(t, c.IsRGB())
	r, g, b := c.RGB()
	assert.Equal(t, [3]uint8{48, 72, 144}, [3]uint8{r, g, b})

	assert.False(t, ColorDefault.IsRGB())
	assert.False(t, ColorBlue.IsRGB())
}

func TestStyleAttributes(t *testing.T) {
	s := DefaultStyle().Foreground(ColorRed).Background(ColorBlue)
	fg, bg, attrs := s.Decompose()
	assert.Equal(t, ColorRed, fg)
	assert.Equal(t, ColorBlue, bg)
	assert.Zero(t, attrs)

	bold := s.Bold(true).Dim(true)
	assert.True(t, bold.Has(AttrBold|AttrDim))
	assert.False(t, bold.Bold(false).Has(AttrBold))
	assert.True(t, bold.Bold(false).Has(AttrDim))
	assert.Equal(t, ColorRed, bold.FG())
}
