package transport

import (
	"chat-sync/contract"
	"chat-sync/errors"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"sync"
)

var _ contract.Transport = (*Memory)(nil)

// Emission is one event sent through a Memory transport.
type Emission struct {
	Event   string
	Payload any
}

// Memory is an in-process transport. Emitted events are recorded, inbound
// events are injected with Deliver.
type Memory struct {
	*broker
	mu        sync.Mutex
	emitted   []Emission
	ready     chan struct{}
	readyOnce sync.Once
	done      chan struct{}
	closeOnce sync.Once
}

func NewMemory(log *slog.Logger, bufferSize int) *Memory {
	return &Memory{
		broker: newBroker(log, bufferSize),
		ready:  make(chan struct{}),
		done:   make(chan struct{}),
	}
}

func (m *Memory) Emit(ctx context.Context, name string, payload any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case <-m.done:
		return errors.ErrTransportClosed
	default:
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.emitted = append(m.emitted, Emission{Event: name, Payload: payload})
	return nil
}

// Emitted returns a copy of everything emitted so far, in order.
func (m *Memory) Emitted() []Emission {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.emitted)
}

// Deliver simulates an inbound event from the server. The payload is
// marshalled to JSON first, json.RawMessage is passed through untouched.
func (m *Memory) Deliver(name string, payload any) (int, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("could not marshal %s payload: %w", name, err)
	}
	return m.Publish(name, raw), nil
}

func (m *Memory) Ready() <-chan struct{} {
	return m.ready
}

// MarkReady signals the connection is up. Calling it twice is harmless.
func (m *Memory) MarkReady() {
	m.readyOnce.Do(func() { close(m.ready) })
}

func (m *Memory) Close() error {
	m.closeOnce.Do(func() {
		close(m.done)
		m.broker.close()
	})
	return nil
}
