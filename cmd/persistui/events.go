package main

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/odvcencio/persistui/pkg/config"
	"github.com/odvcencio/persistui/pkg/console"
	"github.com/odvcencio/persistui/pkg/errors"
	"github.com/odvcencio/persistui/pkg/events"
	"github.com/odvcencio/persistui/pkg/logging"
	"github.com/odvcencio/persistui/pkg/ui/component"
	"github.com/odvcencio/persistui/pkg/ui/runtime"
	"github.com/odvcencio/persistui/pkg/ui/widgets"
)

const monitorHistory = 200

type eventsOptions struct {
	ticks    bool
	duration time.Duration
}

func newEventsCmd(flags *rootFlags) *cobra.Command {
	opts := &eventsOptions{}

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Show the live event stream",
		Long: `Draw every event the stream delivers, newest at the bottom, until
Ctrl+C. A per-kind summary is printed on exit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireTerminal("events"); err != nil {
				return err
			}
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			log, closeLog, err := newLogger(cfg, "events")
			if err != nil {
				return err
			}
			defer closeLog()

			mon, err := runMonitor(cmd.Context(), cfg, opts, log)
			if mon != nil {
				mon.summary(console.NewWithOutput(cmd.OutOrStdout()))
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&opts.ticks, "ticks", false, "Also list tick events (they are always counted)")
	cmd.Flags().DurationVar(&opts.duration, "duration", 0, "Stop after this long (0 runs until Ctrl+C)")

	return cmd
}

// monitor records events for display and for the exit summary.
type monitor struct {
	mu      sync.Mutex
	counts  map[string]uint64
	lines   []string
	ticks   bool
	started time.Time
	view    *widgets.Label
}

func newMonitor(showTicks bool) *monitor {
	return &monitor{
		counts:  make(map[string]uint64),
		ticks:   showTicks,
		started: time.Now(),
		view:    widgets.NewLabel("waiting for events").Framed("events (Ctrl+C quits)"),
	}
}

func (m *monitor) tree() *component.Tree {
	arena := component.NewArena()
	return component.NewTree(arena, arena.Widget(m.view))
}

// observe counts ev and appends it to the history. It returns true when
// the view changed.
func (m *monitor) observe(ev events.Event) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.counts[events.Kind(ev)]++
	if _, ok := ev.(events.Tick); ok && !m.ticks {
		return false
	}

	line := fmt.Sprintf("%s  %s", time.Since(m.started).Truncate(time.Millisecond), events.Describe(ev))
	m.lines = append(m.lines, line)
	if len(m.lines) > monitorHistory {
		m.lines = m.lines[len(m.lines)-monitorHistory:]
	}
	return true
}

// visible returns the newest lines that fit in height rows.
func (m *monitor) visible(height int) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	lines := m.lines
	if height > 0 && len(lines) > height {
		lines = lines[len(lines)-height:]
	}
	return strings.Join(lines, "\n")
}

func (m *monitor) snapshot() map[string]uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]uint64, len(m.counts))
	for k, v := range m.counts {
		out[k] = v
	}
	return out
}

func (m *monitor) summary(out *console.Writer) {
	counts := m.snapshot()
	kinds := make([]string, 0, len(counts))
	var total uint64
	for kind, n := range counts {
		kinds = append(kinds, kind)
		total += n
	}
	sort.Strings(kinds)

	rows := make([][]string, 0, len(kinds)+1)
	for _, kind := range kinds {
		rows = append(rows, []string{kind, strconv.FormatUint(counts[kind], 10)})
	}
	rows = append(rows, []string{"total", strconv.FormatUint(total, 10)})

	out.Header("Event summary")
	out.Table([]string{"kind", "count"}, rows)
	out.Dim("observed for %s", time.Since(m.started).Truncate(time.Millisecond))
}

func runMonitor(ctx context.Context, cfg *config.Config, opts *eventsOptions, log *logging.Logger) (*monitor, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.duration)
		defer cancel()
	}

	be, err := newBackendFn(cfg)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeBackendInit, "open terminal")
	}

	mon := newMonitor(opts.ticks)
	var app *runtime.App
	app = newAppFn(runtime.AppConfig{
		Backend:      be,
		Tree:         mon.tree(),
		TickRate:     cfg.UI.TickRate,
		InitialFocus: -1,
		OnEvent: func(ev events.Event) {
			if mon.observe(ev) {
				_, h := be.Size()
				mon.view.SetText(mon.visible(h - 2))
				app.Invalidate()
			}
		},
		Logger: log,
	})

	err = app.Run(ctx)
	if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
		err = nil
	}
	return mon, err
}
