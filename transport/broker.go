// Package transport provides the named-event channels a chat session talks
// through: a websocket client and an in-memory channel for tests and offline runs.
package transport

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
)

type Set map[chan json.RawMessage]struct{}

// broker dispatches inbound payloads to the listeners of their event name.
// Delivery is best effort: a listener whose buffer is full misses the payload.
type broker struct {
	mu         sync.RWMutex
	log        *slog.Logger
	bufferSize int
	listeners  map[string]Set // map event name -> listeners
	closed     bool
}

func newBroker(log *slog.Logger, bufferSize int) *broker {
	return &broker{
		log:        log,
		bufferSize: bufferSize,
		listeners:  make(map[string]Set),
	}
}

// Listen registers a listener that sees payloads published from now on.
// The channel is closed when ctx is done or the broker closes.
func (b *broker) Listen(ctx context.Context, name string) <-chan json.RawMessage {
	ch := make(chan json.RawMessage, b.bufferSize)

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		close(ch)
		return ch
	}
	if _, ok := b.listeners[name]; !ok {
		b.listeners[name] = make(Set)
	}
	b.listeners[name][ch] = struct{}{}
	b.mu.Unlock()

	context.AfterFunc(ctx, func() { b.unsubscribe(name, ch) })
	return ch
}

// unsubscribe removes the listener and drops empty sets so the map does not grow.
func (b *broker) unsubscribe(name string, ch chan json.RawMessage) {
	b.mu.Lock()
	defer b.mu.Unlock()

	members, ok := b.listeners[name]
	if !ok {
		return
	}
	if _, ok := members[ch]; !ok {
		return
	}
	delete(members, ch)
	close(ch)
	if len(members) == 0 {
		delete(b.listeners, name)
	}
}

// Publish hands the payload to every current listener of name and returns
// how many received it.
func (b *broker) Publish(name string, payload json.RawMessage) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	delivered := 0
	for ch := range b.listeners[name] {
		select {
		case ch <- payload:
			delivered++
		default:
			b.log.Warn("Listener too slow, payload dropped", "event", name)
		}
	}
	return delivered
}

// close closes every listener. Later Listen calls get a closed channel.
func (b *broker) close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for name, members := range b.listeners {
		for ch := range members {
			close(ch)
		}
		delete(b.listeners, name)
	}
}
