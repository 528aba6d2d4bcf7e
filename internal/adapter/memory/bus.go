package memory

import (
	"context"
	"sync"
)

// Bus is an in-process event bus used when no broker is configured. It
// fans each published event out to the handlers subscribed to its topic,
// synchronously and in subscription order.
type Bus struct {
	mu       sync.Mutex
	handlers map[string][]func(ctx context.Context, event any) error
}

// NewBus returns a bus with no subscribers.
func NewBus() *Bus {
	return &Bus{handlers: make(map[string][]func(ctx context.Context, event any) error)}
}

// Subscribe registers a handler for a topic.
func (b *Bus) Subscribe(topic string, handler func(ctx context.Context, event any) error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[topic] = append(b.handlers[topic], handler)
}

// Publish delivers the event to every subscriber of the topic. The
// first handler error is returned; later handlers still run.
func (b *Bus) Publish(ctx context.Context, topic string, event any) error {
	b.mu.Lock()
	handlers := b.handlers[topic]
	b.mu.Unlock()

	var firstErr error
	for _, h := range handlers {
		if err := h(ctx, event); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
