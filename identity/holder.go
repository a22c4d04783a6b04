// Package identity holds the single participant identity of a session.
package identity

import (
	"chat-sync/contract"
	"chat-sync/domain"
	"context"
	"sync"
)

var _ contract.IdentityProvider = (*Holder)(nil)

// Holder keeps the current Identity and notifies subscribers of every change.
// New subscribers immediately receive the latest value (replay-one).
// Holder performs no validation: an empty name is the caller's problem.
type Holder struct {
	mu          sync.RWMutex
	current     domain.Identity
	subscribers map[chan domain.Identity]struct{}
}

func NewHolder(initial domain.Identity) *Holder {
	return &Holder{
		current:     initial,
		subscribers: make(map[chan domain.Identity]struct{}),
	}
}

// Set replaces the identity as a whole and notifies every subscriber.
func (h *Holder) Set(identity domain.Identity) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.current = identity
	for ch := range h.subscribers {
		offerLatest(ch, identity)
	}
}

func (h *Holder) Get() domain.Identity {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}

// Subscribe returns a stream replaying the current identity then the later ones.
// Delivery is latest-wins, not a queue: a reader that falls behind skips the
// intermediate identities and only observes the newest one. Identities change
// a handful of times per session and readers only care about the current one.
// The stream is closed once ctx is done.
func (h *Holder) Subscribe(ctx context.Context) <-chan domain.Identity {
	ch := make(chan domain.Identity, 1)

	h.mu.Lock()
	ch <- h.current
	h.subscribers[ch] = struct{}{}
	h.mu.Unlock()

	go func() {
		<-ctx.Done()
		h.mu.Lock()
		delete(h.subscribers, ch)
		close(ch)
		h.mu.Unlock()
	}()
	return ch
}

// offerLatest replaces whatever is still buffered with identity.
// Only called with the write lock held, so nobody else sends on ch.
func offerLatest(ch chan domain.Identity, identity domain.Identity) {
	select {
	case <-ch:
	default:
	}
	ch <- identity
}
