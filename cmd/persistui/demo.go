package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/odvcencio/persistui/pkg/events"
	"github.com/odvcencio/persistui/pkg/logging"
	"github.com/odvcencio/persistui/pkg/ui/component"
	"github.com/odvcencio/persistui/pkg/ui/runtime"
	"github.com/odvcencio/persistui/pkg/ui/widgets"
)

// Custom event names produced by the demo form.
const (
	eventName           = "NAME"
	eventPassword       = "PASSWORD"
	eventSave           = "SAVE"
	eventReset          = "RESET"
	eventQuit           = "QUIT"
	eventSaved          = "SAVED"
	eventConfigReloaded = "CONFIG_RELOADED"
	eventStatus         = "STATUS"
)

// publishFunc mirrors a custom event somewhere outside the process.
type publishFunc func(ctx context.Context, ev events.CustomEvent) error

// demoForm is a two-field login form with Save, Reset and Quit buttons
// and a floating status line.
type demoForm struct {
	tree *component.Tree

	name     *widgets.TextInput
	password *widgets.TextInput
	save     *widgets.Button
	reset    *widgets.Button
	quit     *widgets.Button
	status   *widgets.Label

	savedName string
	passLen   int
}

func newDemoForm() *demoForm {
	f := &demoForm{
		name:     widgets.NewTextInput("Name", eventName),
		password: widgets.NewTextInput("Password", eventPassword).Password(),
		save:     widgets.NewButton("Save", 's', eventSave).WithTheme(widgets.ThemeBlue),
		reset:    widgets.NewButton("Reset", 'r', eventReset).WithTheme(widgets.ThemeRed),
		quit:     widgets.NewButton("Quit", 'q', eventQuit).WithTheme(widgets.ThemeGreen),
		status:   widgets.NewLabel("Tab moves focus, Enter submits, Ctrl+C quits").Framed("status"),
	}

	arena := component.NewArena()
	root := component.List(
		component.Grid(
			[]component.Component{arena.Widget(f.name), arena.Widget(f.password)},
			[]component.Component{arena.Widget(f.save), arena.Widget(f.reset), arena.Widget(f.quit)},
		),
		arena.Floating(f.status),
	)
	f.tree = component.NewTree(arena, root)
	return f
}

func (f *demoForm) layout() runtime.Layout {
	return runtime.SplitLayout{FloatWidth: 48, FloatHeight: 3}
}

func (f *demoForm) setStatus(format string, args ...any) {
	f.status.SetText(fmt.Sprintf(format, args...))
}

// handler reacts to the form's custom events. Every custom event is also
// handed to publish when it is set.
func (f *demoForm) handler(ctx context.Context, publish publishFunc, log *logging.Logger) runtime.CustomHandler {
	return func(app *runtime.App, ev events.CustomEvent) bool {
		if publish != nil {
			if err := publish(ctx, ev); err != nil {
				log.Error(err, "publish custom event", "event", ev.Name)
			}
		}
		defer app.Invalidate()

		switch ev.Name {
		case eventName:
			f.savedName = firstText(ev)
			f.setStatus("name: %s", f.savedName)
		case eventPassword:
			f.passLen = len([]rune(firstText(ev)))
			f.setStatus("password: %s", strings.Repeat("*", f.passLen))
		case eventSave:
			if f.savedName == "" {
				f.setStatus("enter a name first")
				return false
			}
			f.setStatus("saved %s", f.savedName)
			app.Post(events.NewCustom(eventSaved, events.TextValue(f.savedName), events.UintValue(uint(f.passLen))))
		case eventSaved:
		case eventReset:
			f.savedName, f.passLen = "", 0
			app.Post(events.Clear{Hard: true})
			f.setStatus("cleared")
		case eventQuit:
			return true
		case eventConfigReloaded:
			f.setStatus("config reloaded: %s", firstText(ev))
		case eventStatus:
			f.setStatus("%s", firstText(ev))
		default:
			f.setStatus("%s", ev.String())
		}
		return false
	}
}

func firstText(ev events.CustomEvent) string {
	if len(ev.Args) == 0 {
		return ""
	}
	if t, ok := ev.Args[0].(events.Text); ok {
		return string(t)
	}
	return ev.Args[0].String()
}
