package runtime

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odvcencio/persistui/pkg/errors"
	"github.com/odvcencio/persistui/pkg/events"
	"github.com/odvcencio/persistui/pkg/ui/backend/sim"
	"github.com/odvcencio/persistui/pkg/ui/component"
	"github.com/odvcencio/persistui/pkg/ui/terminal"
	"github.com/odvcencio/persistui/pkg/ui/widget"
	"github.com/odvcencio/persistui/pkg/ui/widgets"
)

const testTick = 5 * time.Millisecond

// customLog collects custom events delivered to OnCustom.
type customLog struct {
	mu  sync.Mutex
	got []events.CustomEvent
}

func (c *customLog) handler(quitOn string) CustomHandler {
	return func(_ *App, ev events.CustomEvent) bool {
		c.mu.Lock()
		c.got = append(c.got, ev)
		c.mu.Unlock()
		return ev.Name == quitOn
	}
}

func (c *customLog) events() []events.CustomEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]events.CustomEvent(nil), c.got...)
}

func startApp(t *testing.T, app *App) <-chan error {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	select {
	case <-app.Ready():
	case <-time.After(2 * time.Second):
		t.Fatal("app did not start")
	}
	return done
}

func waitDone(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(3 * time.Second):
		t.Fatal("app did not exit")
		return nil
	}
}

func TestApp_RunQuitOnCtrlC(t *testing.T) {
	be := sim.New(20, 5)
	app := NewApp(AppConfig{
		Backend:      be,
		Tree:         leafTree(newLeaf("a")),
		TickInterval: testTick,
	})

	done := startApp(t, app)
	require.NoError(t, be.InjectCtrl('c'))
	assert.NoError(t, waitDone(t, done))
}

func TestApp_RunRequiresBackend(t *testing.T) {
	err := NewApp(AppConfig{}).Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidInput))
}

func TestApp_RunContextCancel(t *testing.T) {
	be := sim.New(20, 5)
	app := NewApp(AppConfig{Backend: be, TickInterval: testTick})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()
	<-app.Ready()
	cancel()

	assert.ErrorIs(t, waitDone(t, done), context.Canceled)
}

func TestApp_RunDrawsLeaves(t *testing.T) {
	be := sim.New(20, 4)
	app := NewApp(AppConfig{
		Backend:      be,
		Tree:         leafTree(newLeaf("x"), newLeaf("y")),
		TickInterval: testTick,
	})

	done := startApp(t, app)
	require.Eventually(t, func() bool {
		return be.ContainsText("x") && be.ContainsText("y")
	}, 2*time.Second, testTick)

	x, y := be.FindText("y")
	assert.Equal(t, 0, x)
	assert.Equal(t, 2, y)

	require.NoError(t, be.InjectCtrl('c'))
	assert.NoError(t, waitDone(t, done))
}

func TestApp_FormSubmitBecomesCustomEvent(t *testing.T) {
	be := sim.New(30, 9)
	name := widgets.NewTextInput("Name", "name")
	save := widgets.NewButton("Save", 's', "save")

	arena := component.NewArena()
	tree := component.NewTree(arena, component.List(arena.Widget(name), arena.Widget(save)))

	var log customLog
	app := NewApp(AppConfig{
		Backend:      be,
		Tree:         tree,
		TickInterval: testTick,
		OnCustom:     log.handler("SAVE"),
	})

	done := startApp(t, app)
	require.NoError(t, be.InjectKeyString("ada"))
	require.NoError(t, be.InjectKey(terminal.Press(terminal.KeyEnter)))
	require.NoError(t, be.InjectKey(terminal.Press(terminal.KeyTab)))
	require.NoError(t, be.InjectKey(terminal.Press(terminal.KeyEnter)))

	assert.NoError(t, waitDone(t, done))

	got := log.events()
	require.Len(t, got, 2)
	assert.Equal(t, "NAME", got[0].Name)
	require.Len(t, got[0].Args, 1)
	assert.Equal(t, events.Text("ada"), got[0].Args[0])
	assert.Equal(t, "SAVE", got[1].Name)
	assert.Nil(t, got[1].Args)
	assert.Equal(t, "ada", name.Text())
}

func TestApp_CursorFollowsFocusedInput(t *testing.T) {
	be := sim.New(20, 6)
	in := widgets.NewTextInput("Name", "name")
	arena := component.NewArena()
	tree := component.NewTree(arena, component.List(arena.Widget(widgets.NewLabel("top")), arena.Widget(in)))

	app := NewApp(AppConfig{
		Backend:      be,
		Tree:         tree,
		TickInterval: testTick,
		InitialFocus: 1,
	})

	done := startApp(t, app)
	require.NoError(t, be.InjectKeyString("ab"))

	require.Eventually(t, func() bool {
		x, y, visible := be.Cursor()
		return visible && x == 3 && y == 4
	}, 2*time.Second, testTick)

	require.NoError(t, be.InjectCtrl('c'))
	assert.NoError(t, waitDone(t, done))
}

func newDispatchApp(leaves ...*testLeaf) *App {
	return NewApp(AppConfig{Tree: leafTree(leaves...), InitialFocus: -1})
}

func key(k terminal.Key) events.Event {
	return events.FromApp(events.Key{Event: terminal.Press(k)})
}

func TestDispatch_Quit(t *testing.T) {
	app := newDispatchApp(newLeaf("a"))
	assert.True(t, app.Dispatch(events.FromApp(events.Quit{})))
	assert.False(t, app.Dispatch(events.Tick{}))
}

func TestDispatch_FocusItem(t *testing.T) {
	a, b := newLeaf("a"), newLeaf("b")
	app := newDispatchApp(a, b)

	app.Dispatch(events.FromApp(events.FocusItem{Index: 1}))
	assert.True(t, b.focused)
	assert.Equal(t, 1, app.Focus().Index())

	app.Dispatch(events.FromApp(events.FocusItem{Index: 7}))
	assert.Equal(t, 1, app.Focus().Index(), "out of range focus is ignored")
}

func TestDispatch_TabCycles(t *testing.T) {
	a, b, c := newLeaf("a"), newLeaf("b"), newLeaf("c")
	app := newDispatchApp(a, b, c)

	app.Dispatch(key(terminal.KeyTab))
	app.Dispatch(key(terminal.KeyTab))
	assert.Equal(t, 1, app.Focus().Index())

	app.Dispatch(key(terminal.KeyBacktab))
	app.Dispatch(key(terminal.KeyBacktab))
	assert.Equal(t, 2, app.Focus().Index(), "backtab wraps to the last leaf")

	shiftTab := terminal.Press(terminal.KeyTab)
	shiftTab.Modifiers = terminal.ModShift
	app.Dispatch(events.FromApp(events.Key{Event: shiftTab}))
	assert.Equal(t, 1, app.Focus().Index())

	assert.Empty(t, b.keys, "tab is not routed to leaves")
}

func TestDispatch_KeyRoutedToFocusedLeaf(t *testing.T) {
	a, b := newLeaf("a"), newLeaf("b")
	app := newDispatchApp(a, b)
	app.Dispatch(events.FromApp(events.FocusItem{Index: 1}))

	app.Dispatch(events.FromApp(events.Key{Event: terminal.Char('z')}))
	assert.Empty(t, a.keys)
	require.Len(t, b.keys, 1)
	assert.Equal(t, 'z', b.keys[0].Rune)
}

func TestDispatch_ShortcutWithoutFocus(t *testing.T) {
	a, b := newLeaf("a"), newLeaf("b")
	b.trigger = 'q'
	app := newDispatchApp(a, b)

	app.Dispatch(events.FromApp(events.Key{Event: terminal.Char('Q')}))
	assert.Empty(t, a.keys)
	assert.Len(t, b.keys, 1)

	app.Dispatch(events.FromApp(events.Key{Event: terminal.Char('x')}))
	assert.Len(t, b.keys, 1, "unbound runes are dropped while nothing has focus")
}

func TestDispatch_ReleaseGoesToFocused(t *testing.T) {
	a := newLeaf("a")
	app := newDispatchApp(a)
	app.Dispatch(events.FromApp(events.FocusItem{Index: 0}))

	release := terminal.Press(terminal.KeyTab)
	release.Kind = terminal.KeyRelease
	app.Dispatch(events.FromApp(events.Key{Event: release}))
	assert.Equal(t, 0, app.Focus().Index(), "a tab release does not cycle")
	assert.Len(t, a.keys, 1)
}

func TestDispatch_Clear(t *testing.T) {
	a, b := newLeaf("a"), newLeaf("b")
	app := newDispatchApp(a, b)
	app.Dispatch(events.FromApp(events.FocusItem{Index: 0}))

	app.Dispatch(events.FromApp(events.Clear{Hard: true}))
	assert.Equal(t, 1, a.cleared)
	assert.Equal(t, 1, b.cleared)
	assert.True(t, a.hard)
	assert.False(t, a.focused)
	assert.Equal(t, -1, app.Focus().Index())

	app.Dispatch(key(terminal.KeyTab))
	assert.Equal(t, 0, app.Focus().Index(), "tab after clear starts from the first leaf")
}

func TestDispatch_CustomHook(t *testing.T) {
	var log customLog
	app := NewApp(AppConfig{Tree: leafTree(newLeaf("a")), OnCustom: log.handler("BYE")})

	assert.False(t, app.Dispatch(events.FromApp(events.NewCustom("HELLO"))))
	assert.True(t, app.Dispatch(events.FromApp(events.NewCustom("BYE"))))
	assert.Len(t, log.events(), 2)
}

func TestDispatch_OnEventObservesAll(t *testing.T) {
	var kinds []string
	app := NewApp(AppConfig{
		Tree:    leafTree(newLeaf("a")),
		OnEvent: func(ev events.Event) { kinds = append(kinds, events.Kind(ev)) },
	})

	app.Dispatch(events.Tick{})
	app.Dispatch(events.FromTerminal(terminal.ResizeEvent{Width: 1, Height: 1}))
	app.Dispatch(events.FromApp(events.Quit{}))
	assert.Equal(t, []string{"tick", "terminal", "quit"}, kinds)
}

func TestDispatch_PasteToFocused(t *testing.T) {
	a := newLeaf("a")
	app := newDispatchApp(a)

	app.Dispatch(events.FromTerminal(terminal.PasteEvent{Text: "lost"}))
	assert.Empty(t, a.pasted)

	app.Dispatch(events.FromApp(events.FocusItem{Index: 0}))
	app.Dispatch(events.FromTerminal(terminal.PasteEvent{Text: "kept"}))
	assert.Equal(t, "kept", a.pasted)
}

func TestDispatch_MouseClickFocuses(t *testing.T) {
	be := sim.New(10, 4)
	require.NoError(t, be.Init())
	t.Cleanup(be.Fini)

	a, b := newLeaf("a"), newLeaf("b")
	app := NewApp(AppConfig{Backend: be, Tree: leafTree(a, b), InitialFocus: -1})
	app.render()

	app.Dispatch(events.FromTerminal(terminal.MouseEvent{
		X: 3, Y: 3, Button: terminal.MouseLeft, Action: terminal.MousePress,
	}))
	assert.True(t, b.focused)
	assert.Equal(t, widget.NewRect(0, 2, 10, 2), b.drawArea)
}

func TestCustomFromWidget(t *testing.T) {
	ev, ok := CustomFromWidget(widget.Input{ID: "NAME", Text: "x", HasText: true})
	require.True(t, ok)
	assert.Equal(t, events.NewCustom("NAME", events.TextValue("x")), ev)

	ev, ok = CustomFromWidget(widget.Input{ID: "NAME"})
	require.True(t, ok)
	assert.False(t, ev.HasArgs())

	ev, ok = CustomFromWidget(widget.Button{ID: "GO"})
	require.True(t, ok)
	assert.Equal(t, "GO", ev.Name)
	assert.False(t, ev.HasArgs())
}

func TestApp_SenderBeforeRunDrops(t *testing.T) {
	app := NewApp(AppConfig{})
	assert.NotPanics(t, func() { app.Post(events.Quit{}) })
}
