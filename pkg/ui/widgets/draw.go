package widgets

import (
	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/persistui/pkg/ui/backend"
)

const ellipsis = "…"

// drawString writes s starting at (x, y) and stops at maxX. Wide runes take
// two cells; a wide rune that would straddle maxX is dropped. Returns the
// column after the last cell written.
func drawString(out backend.RenderTarget, x, y, maxX int, s string, style backend.Style) int {
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > maxX {
			break
		}
		out.SetContent(x, y, r, nil, style)
		if w == 2 {
			out.SetContent(x+1, y, ' ', nil, style)
		}
		x += w
	}
	return x
}

// truncate shortens s to fit width cells, ending in an ellipsis when cut.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, ellipsis)
}

// centerX returns the column at which s is centered in width cells.
func centerX(s string, width int) int {
	return max(0, (width-runewidth.StringWidth(s))/2)
}

// fill paints a w by h rect at (x, y) with blanks in style.
func fill(out backend.RenderTarget, x, y, w, h int, style backend.Style) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			out.SetContent(col, row, ' ', nil, style)
		}
	}
}

// box describes a rounded frame with optional titles on either border.
type box struct {
	top    string
	bottom string
	style  backend.Style
}

// draw frames the w by h rect at the origin of out. Titles are inset by one
// cell from the left corner and truncated to fit.
func (b box) draw(out backend.RenderTarget, w, h int) {
	if w < 2 || h < 2 {
		return
	}
	right, bottom := w-1, h-1

	out.SetContent(0, 0, '╭', nil, b.style)
	out.SetContent(right, 0, '╮', nil, b.style)
	out.SetContent(0, bottom, '╰', nil, b.style)
	out.SetContent(right, bottom, '╯', nil, b.style)

	for x := 1; x < right; x++ {
		out.SetContent(x, 0, '─', nil, b.style)
		out.SetContent(x, bottom, '─', nil, b.style)
	}
	for y := 1; y < bottom; y++ {
		out.SetContent(0, y, '│', nil, b.style)
		out.SetContent(right, y, '│', nil, b.style)
	}

	if b.top != "" {
		drawString(out, 1, 0, right, truncate(b.top, right-1), b.style)
	}
	if b.bottom != "" {
		drawString(out, 1, bottom, right, truncate(b.bottom, right-1), b.style)
	}
}
