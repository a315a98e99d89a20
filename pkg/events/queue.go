package events

import (
	"context"
	"sync"
)

// queue is an unbounded multi-producer, single-consumer FIFO. Producers never
// block. Once the consumer closes it, pushes are refused.
type queue struct {
	mu     sync.Mutex
	items  []Event
	head   int
	closed bool

	// ready holds at most one pending wake-up for the consumer.
	ready chan struct{}
	done  chan struct{}
}

func newQueue() *queue {
	return &queue{
		ready: make(chan struct{}, 1),
		done:  make(chan struct{}),
	}
}

// push appends ev and reports the resulting depth. ok is false once closed.
func (q *queue) push(ev Event) (depth int, ok bool) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return 0, false
	}
	q.items = append(q.items, ev)
	depth = len(q.items) - q.head
	q.mu.Unlock()

	select {
	case q.ready <- struct{}{}:
	default:
	}
	return depth, true
}

// pop removes the oldest event without blocking.
func (q *queue) pop() (Event, int, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.head == len(q.items) {
		return nil, 0, false
	}
	ev := q.items[q.head]
	q.items[q.head] = nil
	q.head++

	switch {
	case q.head == len(q.items):
		q.items = q.items[:0]
		q.head = 0
	case q.head > 64 && q.head*2 > len(q.items):
		n := copy(q.items, q.items[q.head:])
		clear(q.items[n:])
		q.items = q.items[:n]
		q.head = 0
	}
	return ev, len(q.items) - q.head, true
}

func (q *queue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items) - q.head
}

// close marks the consumer gone. Queued events stay poppable.
func (q *queue) close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	close(q.done)
}

// finish closes the queue if nothing is pending and reports whether it did.
// Once finished, later pushes are refused so the end of the stream is final.
func (q *queue) finish() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.head != len(q.items) {
		return false
	}
	if !q.closed {
		q.closed = true
		close(q.done)
	}
	return true
}

func (q *queue) isClosed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}

// Done is closed when the consumer closes the queue.
func (q *queue) Done() <-chan struct{} {
	return q.done
}

// next blocks for the oldest event. It reports ErrStreamEnded once the queue
// is empty and either the consumer closed it or ended fires; in the latter
// case the queue is closed so no producer can extend the stream.
func (q *queue) next(ctx context.Context, ended <-chan struct{}, m *Metrics) (Event, error) {
	for {
		if ev, depth, ok := q.pop(); ok {
			m.observeDepth(depth)
			return ev, nil
		}
		if q.isClosed() {
			return nil, ErrStreamEnded
		}
		select {
		case <-q.ready:
		case <-ended:
			if q.finish() {
				return nil, ErrStreamEnded
			}
		case <-q.done:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}
