//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"chat-sync/domain"
	"chat-sync/domain/event"
	"context"
	"encoding/json"
	"reflect"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// Emitter sends a named event to the server. Fire-and-forget: no ack, no retry.
type Emitter interface {
	Emit(ctx context.Context, event string, payload any) error
}

// Transport is the bidirectional named-event channel to the server.
// Listen returns an independent subscription that only sees events published
// after the call; it is released when ctx is done and closed when the
// transport closes.
type Transport interface {
	Emitter
	Listen(ctx context.Context, event string) <-chan json.RawMessage
	Ready() <-chan struct{}
}

// IdentityProvider gives synchronous access to the current participant.
type IdentityProvider interface {
	Get() domain.Identity
}

// EventPoster queues an event for the single dispatcher.
type EventPoster interface {
	Post(evt event.DomainEvent) error
}
