// Package events provides the typed, single-consumer channels widgets and
// their host use to talk to each other. Delivery is synchronous: Emit runs
// the consumer to completion and hands its error back to the emitter.
package events

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrConsumerExists is returned when a second consumer subscribes.
	ErrConsumerExists = errors.New("events: channel already has a consumer")
	// ErrNilConsumer is returned when Subscribe receives a nil handler.
	ErrNilConsumer = errors.New("events: consumer is nil")
)

// Handler consumes a single message.
type Handler[T any] func(T) error

// Channel delivers messages of type T to exactly one consumer.
type Channel[T any] struct {
	mu       sync.Mutex
	name     string
	consumer Handler[T]
}

// NewChannel creates an unsubscribed channel identified by name.
func NewChannel[T any](name string) *Channel[T] {
	return &Channel[T]{name: name}
}

// Name returns the event name carried by the channel.
func (c *Channel[T]) Name() string {
	if c == nil {
		return ""
	}
	return c.name
}

// Subscribe registers the consumer. Only one consumer is allowed.
func (c *Channel[T]) Subscribe(fn Handler[T]) error {
	if c == nil {
		return fmt.Errorf("events: channel is nil")
	}
	if fn == nil {
		return ErrNilConsumer
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.consumer != nil {
		return fmt.Errorf("%w: %q", ErrConsumerExists, c.name)
	}
	c.consumer = fn
	return nil
}

// Unsubscribe removes the current consumer, if any.
func (c *Channel[T]) Unsubscribe() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.consumer = nil
	c.mu.Unlock()
}

// Subscribed reports whether a consumer is registered.
func (c *Channel[T]) Subscribed() bool {
	if c == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.consumer != nil
}

// Emit delivers msg to the consumer and returns its error. Emitting on a
// channel without a consumer is a no-op.
func (c *Channel[T]) Emit(msg T) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	consumer := c.consumer
	c.mu.Unlock()

	if consumer == nil {
		return nil
	}
	return consumer(msg)
}
