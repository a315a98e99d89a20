package main

import (
	"context"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/odvcencio/persistui/pkg/bus"
	"github.com/odvcencio/persistui/pkg/config"
	"github.com/odvcencio/persistui/pkg/errors"
	"github.com/odvcencio/persistui/pkg/events"
	"github.com/odvcencio/persistui/pkg/logging"
	"github.com/odvcencio/persistui/pkg/ui/backend"
	tcellbackend "github.com/odvcencio/persistui/pkg/ui/backend/tcell"
	"github.com/odvcencio/persistui/pkg/ui/bridge"
	"github.com/odvcencio/persistui/pkg/ui/runtime"
)

// newBackendFn allows tests to substitute a simulation backend.
var newBackendFn = func(cfg *config.Config) (backend.Backend, error) {
	return tcellbackend.New(tcellbackend.Options{
		Mouse: cfg.UI.Mouse,
		Paste: cfg.UI.Paste,
		Focus: true,
	})
}

// newBusFn allows tests to substitute an in-memory bus.
var newBusFn = func(cfg *config.Config) (bus.MessageBus, error) {
	return bus.NewNATSBus(bus.Config{
		URL:  cfg.Bridge.URL,
		Name: cfg.Bridge.Prefix + "-" + cfg.Bridge.Name,
	})
}

// newAppFn allows tests to observe the app once it is built.
var newAppFn = runtime.NewApp

func newRunCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the demo form",
		Long: `Run a small form built from the component tree: two text inputs,
three buttons and a floating status line. Tab cycles focus, Enter submits
and Ctrl+C quits. With bridge.enabled every custom event is published to
NATS and events published to <prefix>.<name>.inject are injected.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireTerminal("run"); err != nil {
				return err
			}
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			log, closeLog, err := newLogger(cfg, "run")
			if err != nil {
				return err
			}
			defer closeLog()
			return runDemo(cmd.Context(), cfg, flags.configPath, log)
		},
	}
}

// runDemo wires the form to the configured backend, metrics endpoint,
// bridge and config watcher and blocks until the form quits.
func runDemo(ctx context.Context, cfg *config.Config, configPath string, log *logging.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	be, err := newBackendFn(cfg)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeBackendInit, "open terminal")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	metrics := events.NewMetrics(reg)

	var (
		br      *bridge.Bridge
		publish publishFunc
	)
	if cfg.Bridge.Enabled {
		nb, err := newBusFn(cfg)
		if err != nil {
			return err
		}
		defer nb.Close()
		br = newBridge(nb, cfg, log)
		publish = br.Publish
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	form := newDemoForm()
	app := newAppFn(runtime.AppConfig{
		Backend:  be,
		Tree:     form.tree,
		Layout:   form.layout(),
		TickRate: cfg.UI.TickRate,
		OnCustom: form.handler(ctx, publish, log),
		Logger:   log,
		Metrics:  metrics,
	})

	var ready atomic.Bool
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer cancel()
		err := app.Run(gctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	g.Go(func() error {
		select {
		case <-app.Ready():
			ready.Store(true)
		case <-gctx.Done():
		}
		return nil
	})

	if cfg.Metrics.Enabled {
		g.Go(func() error {
			return serveMetrics(gctx, cfg.Metrics.Listen, newMetricsRouter(reg, &ready), log)
		})
	}

	if br != nil {
		g.Go(func() error {
			select {
			case <-app.Ready():
			case <-gctx.Done():
				return nil
			}
			return br.Run(gctx, app.Sender().App())
		})
	}

	// Only bridge.rate and bridge.burst apply to a running demo; every other
	// setting takes effect on the next start.
	if configPath != "" {
		g.Go(func() error {
			select {
			case <-app.Ready():
			case <-gctx.Done():
				return nil
			}
			return config.Watch(gctx, configPath, func(next *config.Config, err error) {
				if err != nil {
					log.Error(err, "config reload failed")
					app.Post(events.NewCustom(eventStatus, events.TextValue("config error: "+err.Error())))
					return
				}
				if br != nil {
					br.SetRateLimit(rate.Limit(next.Bridge.Rate), next.Bridge.Burst)
				}
				app.Post(events.NewCustom(eventConfigReloaded, events.TextValue(configPath)))
			})
		})
	}

	return g.Wait()
}

func newBridge(b bus.MessageBus, cfg *config.Config, log *logging.Logger) *bridge.Bridge {
	return bridge.New(b, bridge.Options{
		Prefix:    cfg.Bridge.Prefix,
		Name:      cfg.Bridge.Name,
		Logger:    log,
		RateLimit: rate.Limit(cfg.Bridge.Rate),
		Burst:     cfg.Bridge.Burst,
	})
}
