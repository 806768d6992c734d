// Package notify implements the in-process notification signal that
// delivers newly created messages to interested listeners.
package notify

import (
	"sync"

	"github.com/ainnoce10/ebf-console/internal/models"
)

// Handler receives a published message.
type Handler func(models.Message)

// Broker is a synchronous publish/subscribe fan-out for new messages.
// Delivery is in-process and same-call: a subscriber registered after a
// publish never sees that event. The message store owns the broker used
// for collection changes; other components subscribe through it.
type Broker struct {
	mu       sync.Mutex
	handlers map[int]Handler
	next     int
}

// NewBroker creates an empty broker.
func NewBroker() *Broker {
	return &Broker{handlers: make(map[int]Handler)}
}

// Subscribe registers a handler and returns its disposer. The disposer
// must be called when the listener goes away to avoid leaks across
// remounts; calling it more than once is harmless.
func (b *Broker) Subscribe(h Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.next
	b.next++
	b.handlers[id] = h

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.handlers, id)
	}
}

// Publish delivers msg to every current subscriber before returning.
// Dispatch order between subscribers is unspecified. Messages are
// passed by value so subscribers cannot mutate the canonical record.
func (b *Broker) Publish(msg models.Message) {
	b.mu.Lock()
	handlers := make([]Handler, 0, len(b.handlers))
	for _, h := range b.handlers {
		handlers = append(handlers, h)
	}
	b.mu.Unlock()

	for _, h := range handlers {
		h(msg)
	}
}

// Len returns the number of active subscribers.
func (b *Broker) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.handlers)
}
