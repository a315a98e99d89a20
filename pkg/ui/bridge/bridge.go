// Package bridge mirrors custom events onto a message bus and injects bus
// messages back into an event stream as custom events.
package bridge

import (
	"context"
	"sync/atomic"

	"golang.org/x/time/rate"

	"github.com/odvcencio/persistui/pkg/bus"
	"github.com/odvcencio/persistui/pkg/events"
	"github.com/odvcencio/persistui/pkg/logging"
)

// DefaultPrefix is the first subject token used when Options.Prefix is empty.
const DefaultPrefix = "persistui"

// Options configures a Bridge.
type Options struct {
	Prefix string
	Name   string
	// Source tags outbound envelopes. Inbound envelopes with the same source
	// are ignored. Defaults to Name.
	Source string
	Logger *logging.Logger
	// RateLimit bounds injected events per second. Zero means unlimited.
	RateLimit rate.Limit
	Burst     int
}

// Bridge connects one event stream to a bus.
type Bridge struct {
	bus     bus.MessageBus
	opts    Options
	limiter *rate.Limiter
	log     *logging.Logger

	published atomic.Uint64
	injected  atomic.Uint64
	dropped   atomic.Uint64
	rejected  atomic.Uint64
}

// New creates a bridge over b.
func New(b bus.MessageBus, opts Options) *Bridge {
	if opts.Prefix == "" {
		opts.Prefix = DefaultPrefix
	}
	if opts.Name == "" {
		opts.Name = "default"
	}
	if opts.Source == "" {
		opts.Source = opts.Name
	}

	limit, burst := limits(opts.RateLimit, opts.Burst)
	return &Bridge{
		bus:     b,
		opts:    opts,
		limiter: rate.NewLimiter(limit, burst),
		log:     opts.Logger.WithComponent("bridge"),
	}
}

func limits(limit rate.Limit, burst int) (rate.Limit, int) {
	if limit <= 0 {
		limit = rate.Inf
	}
	if burst <= 0 {
		burst = 1
	}
	return limit, burst
}

// SetRateLimit replaces the injection limit. Zero means unlimited.
func (b *Bridge) SetRateLimit(limit rate.Limit, burst int) {
	limit, burst = limits(limit, burst)
	b.limiter.SetLimit(limit)
	b.limiter.SetBurst(burst)
	b.log.Debug("bridge rate limit changed", "limit", float64(limit), "burst", burst)
}

// EventsSubject is where published custom events go.
func (b *Bridge) EventsSubject() string {
	return b.opts.Prefix + "." + b.opts.Name + ".events"
}

// InjectSubject is where the bridge listens for events to inject.
func (b *Bridge) InjectSubject() string {
	return b.opts.Prefix + "." + b.opts.Name + ".inject"
}

// Publish encodes ev and publishes it on EventsSubject.
func (b *Bridge) Publish(ctx context.Context, ev events.CustomEvent) error {
	data, err := Encode(ev, b.opts.Source)
	if err != nil {
		return err
	}
	if err := b.bus.Publish(ctx, b.EventsSubject(), data); err != nil {
		return err
	}
	b.published.Add(1)
	return nil
}

// Listen subscribes to InjectSubject and forwards decoded events to out.
// Malformed messages are logged and skipped; messages over the rate limit
// are dropped.
func (b *Bridge) Listen(ctx context.Context, out events.AppSender) (bus.Subscription, error) {
	sub, err := b.bus.Subscribe(ctx, b.InjectSubject(), func(msg *bus.Message) {
		b.inject(msg, out)
	})
	if err != nil {
		return nil, err
	}
	b.log.Debug("bridge listening", "subject", sub.Subject())
	return sub, nil
}

// Run listens until ctx is done.
func (b *Bridge) Run(ctx context.Context, out events.AppSender) error {
	sub, err := b.Listen(ctx, out)
	if err != nil {
		return err
	}
	defer sub.Unsubscribe()

	<-ctx.Done()
	return nil
}

func (b *Bridge) inject(msg *bus.Message, out events.AppSender) {
	env, ev, err := Decode(msg.Data)
	if err != nil {
		b.rejected.Add(1)
		b.log.Warn("bridge rejected message", "subject", msg.Subject, "error", err.Error())
		return
	}
	if env.Source != "" && env.Source == b.opts.Source {
		return
	}
	if !b.limiter.Allow() {
		b.dropped.Add(1)
		b.log.Warn("bridge rate limited", "event", ev.Name)
		return
	}
	out.Send(ev)
	b.injected.Add(1)
}

// Stats reports bridge counters.
type Stats struct {
	Published uint64
	Injected  uint64
	Dropped   uint64
	Rejected  uint64
}

// Stats returns a snapshot of the bridge counters.
func (b *Bridge) Stats() Stats {
	return Stats{
		Published: b.published.Load(),
		Injected:  b.injected.Load(),
		Dropped:   b.dropped.Load(),
		Rejected:  b.rejected.Load(),
	}
}
