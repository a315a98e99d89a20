// Package bus provides the publish/subscribe transport the event bridge
// mirrors custom events over. The NATS implementation talks to a server; the
// in-memory one serves tests and single-process use.
package bus

import (
	"context"
	"time"

	"github.com/odvcencio/persistui/pkg/errors"
)

// ErrClosed is returned when operating on a closed bus.
var ErrClosed = errors.New(errors.ErrCodeBusClosed, "bus closed")

// MessageBus is a subject-addressed publish/subscribe transport.
// Implementations must be safe for concurrent use.
type MessageBus interface {
	// Publish sends data to every subscriber of subject. It does not wait
	// for delivery.
	Publish(ctx context.Context, subject string, data []byte) error

	// Subscribe calls handler for every message on subject. Messages to one
	// subscription are delivered in publish order. Supports wildcards:
	// "persistui.*.custom" matches "persistui.demo.custom".
	Subscribe(ctx context.Context, subject string, handler MessageHandler) (Subscription, error)

	// Close shuts down the bus and all subscriptions.
	Close() error
}

// MessageHandler processes one incoming message.
type MessageHandler func(msg *Message)

// Message is a message received from the bus.
type Message struct {
	Subject string
	Data    []byte
}

// Subscription is an active subscription.
type Subscription interface {
	Unsubscribe() error
	Subject() string
}

// Config holds configuration for creating a NATS bus.
type Config struct {
	// URL is the NATS server URL (e.g., "nats://localhost:4222").
	URL string

	// Name is a client identifier for debugging/monitoring.
	Name string

	// Timeout bounds the initial connection.
	Timeout time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		URL:     "nats://localhost:4222",
		Name:    "persistui",
		Timeout: 5 * time.Second,
	}
}
