// Package runtime drives a chat session: it serializes every local intent,
// inbound event and timer expiry through a single dispatcher and publishes
// the resulting state. It holds no chat rule itself.
package runtime

import (
	"chat-sync/domain/event"
	"chat-sync/errors"
	"chat-sync/projection"
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
)

// Stopper is implemented by handlers owning timers.
type Stopper interface {
	Stop()
}

// Engine owns the chat state. Handlers only ever run on the Run goroutine,
// one event at a time; everybody else posts events and reads snapshots.
type Engine struct {
	log          *slog.Logger
	events       chan event.DomainEvent
	handlers     []event.Handler
	contributors []projection.Contributor
	state        atomic.Pointer[projection.State]
	changes      chan struct{}
	done         chan struct{}
	shutdownOnce sync.Once
}

func NewEngine(log *slog.Logger, bufferSize int) *Engine {
	e := &Engine{
		log:     log,
		events:  make(chan event.DomainEvent, bufferSize),
		changes: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	e.state.Store(&projection.State{})
	return e
}

// Register adds handlers in dispatch order. Handlers that also contribute
// to the state are picked up for the snapshots. Must be called before Run.
func (e *Engine) Register(handlers ...event.Handler) *Engine {
	for _, handler := range handlers {
		e.handlers = append(e.handlers, handler)
		if contributor, ok := handler.(projection.Contributor); ok {
			e.contributors = append(e.contributors, contributor)
		}
	}
	e.publish()
	return e
}

// Post queues an event for the dispatcher. It blocks while the queue is full
// and fails with ErrSessionClosed once the engine stopped.
func (e *Engine) Post(evt event.DomainEvent) error {
	select {
	case <-e.done:
		return errors.ErrSessionClosed
	default:
	}
	select {
	case e.events <- evt:
		return nil
	case <-e.done:
		return errors.ErrSessionClosed
	}
}

// Run dispatches queued events until ctx is done. Events still queued at
// that point are discarded.
func (e *Engine) Run(ctx context.Context) error {
	defer e.shutdown()
	for {
		select {
		case <-ctx.Done():
			e.log.Debug("Context done, stopping engine")
			return nil
		case evt := <-e.events:
			if ctx.Err() != nil {
				return nil
			}
			if b, ok := evt.(barrier); ok {
				close(b.done)
				continue
			}
			e.dispatch(ctx, evt)
		}
	}
}

// barrier is released by the dispatcher once every event queued before it
// has been handled. Handlers never see it.
type barrier struct {
	done chan struct{}
}

func (barrier) Kind() string { return "barrier" }

// Sync waits until every event posted before the call has been handled.
func (e *Engine) Sync(ctx context.Context) error {
	b := barrier{done: make(chan struct{})}
	if err := e.Post(b); err != nil {
		return err
	}
	select {
	case <-b.done:
		return nil
	case <-e.done:
		return errors.ErrSessionClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (e *Engine) dispatch(ctx context.Context, evt event.DomainEvent) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("Handler panicked, event skipped", "event", evt.Kind(), "panic", r)
		}
		e.publish()
	}()
	for _, handler := range e.handlers {
		handler.Handle(ctx, evt)
	}
}

// publish rebuilds the snapshot and wakes up readers. Notifications coalesce:
// a reader that was busy sees one signal and reads the latest snapshot.
func (e *Engine) publish() {
	state := &projection.State{}
	for _, contributor := range e.contributors {
		contributor.Contribute(state)
	}
	e.state.Store(state)
	select {
	case e.changes <- struct{}{}:
	default:
	}
}

// shutdown refuses further events and stops every pending timer.
func (e *Engine) shutdown() {
	e.shutdownOnce.Do(func() {
		close(e.done)
		for _, handler := range e.handlers {
			if stopper, ok := handler.(Stopper); ok {
				stopper.Stop()
			}
		}
		e.log.Debug("Engine stopped")
	})
}

// Snapshot returns the state as of the last processed event.
func (e *Engine) Snapshot() projection.State {
	return *e.state.Load()
}

func (e *Engine) Changes() <-chan struct{} {
	return e.changes
}

// Done is closed once the engine stopped accepting events.
func (e *Engine) Done() <-chan struct{} {
	return e.done
}
