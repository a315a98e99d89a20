package events

import (
	"context"
	"crypto/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/odvcencio/persistui/pkg/errors"
	"github.com/odvcencio/persistui/pkg/logging"
	"github.com/odvcencio/persistui/pkg/ui/backend"
	"github.com/odvcencio/persistui/pkg/ui/terminal"
)

// DefaultTickRate is the number of Tick events emitted per second.
const DefaultTickRate = 30

// ErrStreamEnded is reported by Next once no more events can arrive.
var ErrStreamEnded = errors.New(errors.ErrCodeStreamEnded, "event stream ended")

// Option configures a Handler.
type Option func(*Handler)

// WithTickRate sets ticks per second. Non-positive rates are ignored.
func WithTickRate(perSecond float64) Option {
	return func(h *Handler) {
		if perSecond > 0 {
			h.tick = time.Duration(float64(time.Second) / perSecond)
		}
	}
}

// WithTickInterval sets the tick period directly. Non-positive values are ignored.
func WithTickInterval(d time.Duration) Option {
	return func(h *Handler) {
		if d > 0 {
			h.tick = d
		}
	}
}

// WithLogger attaches a logger. The stream id is added to every entry.
func WithLogger(l *logging.Logger) Option {
	return func(h *Handler) {
		h.log = l
	}
}

// WithMetrics attaches stream metrics.
func WithMetrics(m *Metrics) Option {
	return func(h *Handler) {
		h.metrics = m
	}
}

// Handler owns the event source task and the consumer end of its stream.
// Next must be called from a single goroutine; Send and the senders may be
// used from any goroutine.
type Handler struct {
	id      string
	tick    time.Duration
	q       *queue
	log     *logging.Logger
	metrics *Metrics

	cancel  context.CancelFunc
	stopped chan struct{}

	delivered atomic.Uint64
	closeOnce sync.Once
}

// NewHandler starts the source task. src may be nil, in which case the
// stream carries only ticks and sent events.
func NewHandler(src backend.InputSource, opts ...Option) *Handler {
	h := &Handler{
		id:      ulid.MustNew(ulid.Now(), rand.Reader).String(),
		tick:    time.Second / DefaultTickRate,
		q:       newQueue(),
		stopped: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.log = h.log.WithComponent("events").WithStream(h.id)

	ctx, cancel := context.WithCancel(context.Background())
	h.cancel = cancel

	var input <-chan terminal.Event
	if src != nil {
		input = pump(ctx, src)
	}
	h.log.StreamStarted(h.tick, src != nil)
	go h.run(ctx, input)
	return h
}

// pump moves blocking PollEvent results onto a channel, closing it when the
// source reports the end of input. A PollEvent in flight when ctx is
// cancelled finishes in the background; its result is discarded.
func pump(ctx context.Context, src backend.InputSource) <-chan terminal.Event {
	out := make(chan terminal.Event)
	go func() {
		defer close(out)
		for {
			ev := src.PollEvent()
			if ev == nil {
				return
			}
			select {
			case out <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

func (h *Handler) run(ctx context.Context, input <-chan terminal.Event) {
	ticker := time.NewTicker(h.tick)
	reason := "stopped"
	defer func() {
		ticker.Stop()
		h.log.StreamStopped(reason, h.delivered.Load())
		close(h.stopped)
	}()

	for {
		// Shutdown takes priority over ready sources.
		select {
		case <-ctx.Done():
			return
		case <-h.q.Done():
			reason = "consumer closed"
			return
		default:
		}

		select {
		case <-ctx.Done():
			return
		case <-h.q.Done():
			reason = "consumer closed"
			return
		case <-ticker.C:
			if !h.enqueue(Tick{}) {
				reason = "consumer closed"
				return
			}
		case ev, ok := <-input:
			if !ok {
				h.log.Debug("terminal input closed")
				input = nil
				continue
			}
			if !h.enqueue(Translate(ev)) {
				reason = "consumer closed"
				return
			}
		}
	}
}

func (h *Handler) enqueue(ev Event) bool {
	depth, ok := h.q.push(ev)
	if !ok {
		h.metrics.observeDropped()
		return false
	}
	h.delivered.Add(1)
	h.metrics.observeEnqueued(ev, depth)
	return true
}

// ID returns the stream id attached to log entries.
func (h *Handler) ID() string {
	return h.id
}

// TickInterval returns the tick period.
func (h *Handler) TickInterval() time.Duration {
	return h.tick
}

// Next returns the oldest pending event, blocking until one is available.
// It returns ctx.Err() if ctx ends first and ErrStreamEnded once the stream
// is drained and either the task has stopped or the handle is closed. After
// the task stops, the first ErrStreamEnded also closes the stream, so sends
// from then on are dropped and every later Next reports the end again.
func (h *Handler) Next(ctx context.Context) (Event, error) {
	return h.q.next(ctx, h.stopped, h.metrics)
}

// Pending reports how many events are queued.
func (h *Handler) Pending() int {
	return h.q.len()
}

// Send enqueues an app event. Sends after Close are dropped.
func (h *Handler) Send(ev AppEvent) {
	h.Sender().Send(App{Event: ev})
}

// Sender returns a producer handle for the stream.
func (h *Handler) Sender() Sender {
	return Sender{q: h.q, metrics: h.metrics}
}

// AppSender returns a producer handle restricted to app events.
func (h *Handler) AppSender() AppSender {
	return h.Sender().App()
}

// Stop cancels the source task. Events already queued remain readable.
func (h *Handler) Stop() {
	h.cancel()
}

// Close releases the consumer side. Producers observe the stream as closed
// and the source task exits. Queued events remain readable.
func (h *Handler) Close() {
	h.closeOnce.Do(h.q.close)
}

// Stopped is closed once the source task has exited.
func (h *Handler) Stopped() <-chan struct{} {
	return h.stopped
}

// Sender enqueues events onto a stream. The zero value drops everything.
type Sender struct {
	q       *queue
	metrics *Metrics
}

// Send enqueues ev without blocking. It is a no-op once the stream is closed.
func (s Sender) Send(ev Event) {
	if s.q == nil {
		return
	}
	depth, ok := s.q.push(ev)
	if !ok {
		s.metrics.observeDropped()
		return
	}
	s.metrics.observeEnqueued(ev, depth)
}

// App narrows s to app events.
func (s Sender) App() AppSender {
	return AppSender{s: s}
}

// AppSender enqueues app events onto a stream.
type AppSender struct {
	s Sender
}

// Send enqueues ev without blocking.
func (a AppSender) Send(ev AppEvent) {
	a.s.Send(App{Event: ev})
}

// Receiver is the consumer end of a stream without a source task.
type Receiver struct {
	q *queue
}

// NewTestSender returns a connected sender and receiver with no ticks and no
// terminal input, for exercising producers in isolation.
func NewTestSender() (Sender, *Receiver) {
	q := newQueue()
	return Sender{q: q}, &Receiver{q: q}
}

// Next blocks for the oldest event. It returns ErrStreamEnded after Close
// once drained.
func (r *Receiver) Next(ctx context.Context) (Event, error) {
	return r.q.next(ctx, nil, nil)
}

// TryNext returns the oldest event without blocking.
func (r *Receiver) TryNext() (Event, bool) {
	ev, _, ok := r.q.pop()
	return ev, ok
}

// Drain returns every queued event in order.
func (r *Receiver) Drain() []Event {
	var out []Event
	for {
		ev, ok := r.TryNext()
		if !ok {
			return out
		}
		out = append(out, ev)
	}
}

// Close closes the consumer side.
func (r *Receiver) Close() {
	r.q.close()
}
