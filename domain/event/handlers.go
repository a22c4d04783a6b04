package event

import "context"

// Handler Each component has its own handler
// Based on the Chain of responsibility pattern: every handler sees every
// event and ignores the kinds it does not own.
type Handler interface {
	Handle(ctx context.Context, evt DomainEvent)
}
