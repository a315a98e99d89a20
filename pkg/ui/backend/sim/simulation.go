// Package sim provides a simulation backend for testing.
package sim

import (
	"strings"
	"sync"

	tcellv2 "github.com/gdamore/tcell/v2"

	"github.com/odvcencio/persistui/pkg/ui/backend"
	"github.com/odvcencio/persistui/pkg/ui/backend/tcell"
	"github.com/odvcencio/persistui/pkg/ui/terminal"
)

// Backend is a testable backend using tcell's simulation screen.
type Backend struct {
	*tcell.Backend
	screen tcellv2.SimulationScreen
	mu     sync.Mutex
}

// New creates a simulation backend with the given dimensions.
func New(width, height int) *Backend {
	screen := tcellv2.NewSimulationScreen("")
	screen.SetSize(width, height)

	return &Backend{
		Backend: tcell.NewWithScreen(screen, tcell.Options{Paste: true}),
		screen:  screen,
	}
}

// Resize changes the simulation screen size without posting an event.
func (s *Backend) Resize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.screen.SetSize(width, height)
}

// InjectKey queues a key event.
func (s *Backend) InjectKey(ev terminal.KeyEvent) error {
	return s.PostEvent(ev)
}

// InjectKeyRune queues a printable character.
func (s *Backend) InjectKeyRune(r rune) error {
	return s.InjectKey(terminal.Char(r))
}

// InjectCtrl queues r with the control modifier.
func (s *Backend) InjectCtrl(r rune) error {
	return s.InjectKey(terminal.Ctrl(r))
}

// InjectKeyString queues each rune of str in order.
func (s *Backend) InjectKeyString(str string) error {
	for _, r := range str {
		if err := s.InjectKeyRune(r); err != nil {
			return err
		}
	}
	return nil
}

// InjectResize resizes the screen and queues the matching resize event.
func (s *Backend) InjectResize(width, height int) error {
	s.Resize(width, height)
	return s.PostEvent(terminal.ResizeEvent{Width: width, Height: height})
}

// Capture returns the screen content, one line per row.
func (s *Backend) Capture() string {
	w, h := s.Size()
	return s.CaptureRegion(0, 0, w, h)
}

// CaptureCell returns the content and style of a single cell.
func (s *Backend) CaptureCell(x, y int) (mainc rune, comb []rune, style backend.Style) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, c, tcStyle, _ := s.screen.GetContent(x, y)
	return m, c, convertTcellStyle(tcStyle)
}

// CaptureRegion captures a rectangular region of the screen.
func (s *Backend) CaptureRegion(x, y, w, h int) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := make([]string, 0, h)
	for row := y; row < y+h; row++ {
		var line strings.Builder
		for col := x; col < x+w; col++ {
			mainc, comb, _, _ := s.screen.GetContent(col, row)
			if mainc == 0 {
				mainc = ' '
			}
			line.WriteRune(mainc)
			for _, c := range comb {
				line.WriteRune(c)
			}
		}
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}

// Cursor reports the simulated cursor position and visibility.
func (s *Backend) Cursor() (x, y int, visible bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.screen.GetCursor()
}

// FindText returns the position of text on screen, or -1, -1.
func (s *Backend) FindText(text string) (x, y int) {
	for row, line := range strings.Split(s.Capture(), "\n") {
		if col := strings.Index(line, text); col >= 0 {
			return len([]rune(line[:col])), row
		}
	}
	return -1, -1
}

// ContainsText reports whether text appears anywhere on screen.
func (s *Backend) ContainsText(text string) bool {
	x, _ := s.FindText(text)
	return x >= 0
}

func convertTcellStyle(ts tcellv2.Style) backend.Style {
	fg, bg, attrs := ts.Decompose()
	return backend.DefaultStyle().
		Foreground(convertTcellColor(fg)).
		Background(convertTcellColor(bg)).
		Bold(attrs&tcellv2.AttrBold != 0).
		Dim(attrs&tcellv2.AttrDim != 0)
}

func convertTcellColor(tc tcellv2.Color) backend.Color {
	if tc == tcellv2.ColorDefault {
		return backend.ColorDefault
	}
	if tc&tcellv2.ColorIsRGB != 0 {
		r, g, b := tc.RGB()
		return backend.ColorRGB(uint8(r), uint8(g), uint8(b))
	}
	return backend.Color(tc & 0xFF)
}

var _ backend.Backend = (*Backend)(nil)
