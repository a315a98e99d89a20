// Package runtime drives a component tree from an event stream: it pulls
// events, routes keys to the focused leaf, turns widget events into custom
// app events and draws the tree on a backend.
package runtime

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
	"unicode"

	"github.com/odvcencio/persistui/pkg/errors"
	"github.com/odvcencio/persistui/pkg/events"
	"github.com/odvcencio/persistui/pkg/logging"
	"github.com/odvcencio/persistui/pkg/ui/backend"
	"github.com/odvcencio/persistui/pkg/ui/component"
	"github.com/odvcencio/persistui/pkg/ui/terminal"
	"github.com/odvcencio/persistui/pkg/ui/widget"
)

// CustomHandler reacts to a custom app event. Returning true quits.
type CustomHandler func(app *App, ev events.CustomEvent) bool

// Paster is implemented by leaves that accept bracketed paste text.
type Paster interface {
	Paste(text string)
}

// Shortcut is implemented by leaves bound to a rune. While nothing has
// focus, a key matching the rune goes to that leaf.
type Shortcut interface {
	Trigger() rune
}

// AppConfig configures a runtime App.
type AppConfig struct {
	Backend backend.Backend
	Tree    *component.Tree
	Layout  Layout

	// TickRate is ticks per second. Zero means events.DefaultTickRate.
	TickRate float64
	// TickInterval overrides TickRate when positive.
	TickInterval time.Duration

	// InitialFocus is the traversal index focused at start, or -1.
	InitialFocus int

	OnCustom CustomHandler
	// OnEvent observes every event before it is dispatched.
	OnEvent func(ev events.Event)

	Logger  *logging.Logger
	Metrics *events.Metrics
}

// App runs a component tree against a terminal backend.
type App struct {
	backend  backend.Backend
	tree     *component.Tree
	layout   Layout
	focus    *FocusRing
	onCustom CustomHandler
	onEvent  func(events.Event)
	log      *logging.Logger
	metrics  *events.Metrics

	tickRate     float64
	tickInterval time.Duration
	initialFocus int

	handler   atomic.Pointer[events.Handler]
	ready     chan struct{}
	readyOnce sync.Once

	placements []Placement
	dirty      atomic.Bool
}

// NewApp creates a new App from config.
func NewApp(cfg AppConfig) *App {
	tree := cfg.Tree
	if tree == nil {
		tree = component.NewTree(nil, component.List())
	}
	layout := cfg.Layout
	if layout == nil {
		layout = SplitLayout{}
	}
	app := &App{
		backend:      cfg.Backend,
		tree:         tree,
		layout:       layout,
		focus:        NewFocusRing(tree),
		onCustom:     cfg.OnCustom,
		onEvent:      cfg.OnEvent,
		log:          cfg.Logger.WithComponent("runtime"),
		metrics:      cfg.Metrics,
		tickRate:     cfg.TickRate,
		tickInterval: cfg.TickInterval,
		initialFocus: cfg.InitialFocus,
		ready:        make(chan struct{}),
	}
	app.dirty.Store(true)
	return app
}

// Tree returns the component tree.
func (a *App) Tree() *component.Tree {
	return a.tree
}

// Focus returns the focus ring.
func (a *App) Focus() *FocusRing {
	return a.focus
}

// Ready is closed once Run has started the event stream.
func (a *App) Ready() <-chan struct{} {
	return a.ready
}

// Sender returns a producer for the running event stream. It drops
// everything before Ready.
func (a *App) Sender() events.Sender {
	h := a.handler.Load()
	if h == nil {
		return events.Sender{}
	}
	return h.Sender()
}

// Post enqueues an app event on the running stream.
func (a *App) Post(ev events.AppEvent) {
	a.Sender().App().Send(ev)
}

// Invalidate schedules a redraw on the next tick.
func (a *App) Invalidate() {
	a.dirty.Store(true)
}

// Run initializes the backend and processes events until Quit, context
// cancellation or the end of the stream.
func (a *App) Run(ctx context.Context) error {
	if a.backend == nil {
		return errors.New(errors.ErrCodeInvalidInput, "backend is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := a.backend.Init(); err != nil {
		return errors.Wrap(err, errors.ErrCodeBackendInit, "init backend")
	}
	defer a.backend.Fini()

	a.backend.HideCursor()
	handler := a.start()
	defer func() {
		handler.Stop()
		handler.Close()
	}()

	if a.initialFocus >= 0 {
		a.focusItem(a.initialFocus)
	}
	a.render()

	for {
		ev, err := handler.Next(ctx)
		if err != nil {
			if errors.Is(err, events.ErrStreamEnded) {
				return errors.Wrap(err, errors.ErrCodeStreamEnded, "event loop")
			}
			return err
		}
		if a.Dispatch(ev) {
			a.log.Debug("quit requested")
			return nil
		}
		if _, ok := ev.(events.Tick); ok && a.dirty.Load() {
			a.render()
		}
	}
}

func (a *App) start() *events.Handler {
	opts := []events.Option{
		events.WithLogger(a.log),
		events.WithMetrics(a.metrics),
	}
	switch {
	case a.tickInterval > 0:
		opts = append(opts, events.WithTickInterval(a.tickInterval))
	case a.tickRate > 0:
		opts = append(opts, events.WithTickRate(a.tickRate))
	}
	h := events.NewHandler(a.backend, opts...)
	a.handler.Store(h)
	a.readyOnce.Do(func() { close(a.ready) })
	return h
}

// Dispatch applies one event to the tree. It returns true when the event
// asks the loop to quit.
func (a *App) Dispatch(ev events.Event) bool {
	if a.onEvent != nil {
		a.onEvent(ev)
	}

	switch e := ev.(type) {
	case events.Tick:
		return false
	case events.Terminal:
		a.handleTerminal(e.Event)
		return false
	case events.App:
		return a.handleApp(e.Event)
	default:
		return false
	}
}

func (a *App) handleApp(ev events.AppEvent) bool {
	switch e := ev.(type) {
	case events.Quit:
		return true

	case events.FocusItem:
		a.focusItem(e.Index)

	case events.Clear:
		a.tree.ForEach(func(_ int, _ component.Handle, w widget.Widget) bool {
			w.Clear(e.Hard)
			return true
		})
		a.focus.Forget()
		a.dirty.Store(true)

	case events.Key:
		a.handleKey(e.Event)

	case events.CustomEvent:
		if a.onCustom != nil && a.onCustom(a, e) {
			return true
		}
		a.dirty.Store(true)
	}
	return false
}

func (a *App) focusItem(i int) {
	from := a.focus.Index()
	if a.focus.Focus(i) {
		a.log.FocusChanged(from, i)
		a.dirty.Store(true)
	}
}

func (a *App) handleKey(key terminal.KeyEvent) {
	if key.IsRelease() {
		// Releases only matter to the leaf that saw the press.
		if w, ok := a.focus.Widget(); ok {
			w.HandleKey(key)
			a.dirty.Store(true)
		}
		return
	}

	switch {
	case key.Key == terminal.KeyBacktab,
		key.Key == terminal.KeyTab && key.Has(terminal.ModShift):
		a.cycleFocus(a.focus.Prev)
		return
	case key.Key == terminal.KeyTab:
		a.cycleFocus(a.focus.Next)
		return
	}

	if w, ok := a.focus.Widget(); ok {
		if out, ok := w.HandleKey(key); ok {
			a.emit(out)
		}
		a.dirty.Store(true)
		return
	}

	// Nothing focused: the first leaf bound to this rune takes it.
	if key.Key != terminal.KeyRune {
		return
	}
	a.tree.ForEach(func(_ int, _ component.Handle, w widget.Widget) bool {
		sc, ok := w.(Shortcut)
		if !ok || unicode.ToLower(sc.Trigger()) != unicode.ToLower(key.Rune) {
			return true
		}
		if out, ok := w.HandleKey(key); ok {
			a.emit(out)
		}
		a.dirty.Store(true)
		return false
	})
}

func (a *App) cycleFocus(move func() bool) {
	from := a.focus.Index()
	if move() {
		a.log.FocusChanged(from, a.focus.Index())
		a.dirty.Store(true)
	}
}

// emit re-injects a widget event as a custom app event.
func (a *App) emit(out widget.Event) {
	ev, ok := CustomFromWidget(out)
	if !ok {
		return
	}
	a.log.WidgetEvent(ev.Name, len(ev.Args))
	a.Post(ev)
}

// CustomFromWidget converts a widget event to the custom app event it is
// reported as: an input submit carries its text, a button press carries
// nothing.
func CustomFromWidget(out widget.Event) (events.CustomEvent, bool) {
	switch e := out.(type) {
	case widget.Input:
		if !e.HasText {
			return events.NewCustom(e.ID), true
		}
		return events.NewCustom(e.ID, events.TextValue(e.Text)), true
	case widget.Button:
		return events.NewCustom(e.ID), true
	default:
		return events.CustomEvent{}, false
	}
}

func (a *App) handleTerminal(ev terminal.Event) {
	switch e := ev.(type) {
	case terminal.ResizeEvent:
		a.log.Debug("resize", "width", e.Width, "height", e.Height)
		if a.backend != nil {
			a.backend.Sync()
		}
		a.dirty.Store(true)

	case terminal.PasteEvent:
		if w, ok := a.focus.Widget(); ok {
			if p, ok := w.(Paster); ok {
				p.Paste(e.Text)
				a.dirty.Store(true)
			}
		}

	case terminal.MouseEvent:
		if e.Button != terminal.MouseLeft || e.Action != terminal.MousePress {
			return
		}
		if pos, ok := a.hit(e.X, e.Y); ok {
			a.focusItem(pos)
		}

	case terminal.FocusEvent:
		a.log.Debug("terminal focus", "focused", e.Focused)
	}
}

// hit returns the traversal index of the leaf drawn at (x, y). Overlays are
// checked first.
func (a *App) hit(x, y int) (int, bool) {
	for i := len(a.placements) - 1; i >= 0; i-- {
		p := a.placements[i]
		if p.Area.Contains(x, y) {
			pos := a.tree.IndexOf(p.Handle)
			return pos, pos >= 0
		}
	}
	return 0, false
}

func (a *App) render() {
	w, h := a.backend.Size()
	a.backend.Clear()

	a.placements = a.layout.Arrange(a.tree.Root(), widget.NewRect(0, 0, w, h))
	focused, hasFocus := a.focus.Current()

	cursorSet := false
	for _, p := range a.placements {
		leaf, ok := a.tree.Widget(p.Handle)
		if !ok || p.Area.Empty() {
			continue
		}
		var hint widget.CursorHint
		leaf.Draw(p.Area, p.Area.Target(a.backend), &hint)

		if !hasFocus || p.Handle != focused {
			continue
		}
		if col, row, ok := hint.Position(); ok && col < p.Area.Width && row < p.Area.Height {
			a.backend.SetCursorPos(p.Area.X+col, p.Area.Y+row)
			cursorSet = true
		}
	}
	if !cursorSet {
		a.backend.HideCursor()
	}

	a.backend.Show()
	a.dirty.Store(false)
}
