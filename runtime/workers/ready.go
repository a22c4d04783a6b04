package workers

import (
	"chat-sync/contract"
	"chat-sync/domain"
	"chat-sync/domain/event"
	"context"
	"log/slog"
)

// ReadyWorker posts TransportReady once the transport is connected.
type ReadyWorker struct {
	log    *slog.Logger
	ready  <-chan struct{}
	poster contract.EventPoster
}

func NewReadyWorker(log *slog.Logger, ready <-chan struct{}, poster contract.EventPoster) *ReadyWorker {
	return &ReadyWorker{log: log, ready: ready, poster: poster}
}

func (w *ReadyWorker) Run(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return nil
	case <-w.ready:
		w.log.Debug("Transport ready")
		if err := w.poster.Post(event.TransportReady{}); err != nil {
			w.log.Debug("Ready signal dropped", "error", err)
		}
		return nil
	}
}

// IdentityWorker forwards identity changes to the engine so the published
// state follows renames.
type IdentityWorker struct {
	log     *slog.Logger
	updates <-chan domain.Identity
	poster  contract.EventPoster
}

func NewIdentityWorker(log *slog.Logger, updates <-chan domain.Identity, poster contract.EventPoster) *IdentityWorker {
	return &IdentityWorker{log: log, updates: updates, poster: poster}
}

func (w *IdentityWorker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case identity, ok := <-w.updates:
			if !ok {
				return nil
			}
			if err := w.poster.Post(event.IdentityChanged{Identity: identity}); err != nil {
				w.log.Debug("Identity change dropped", "error", err)
				return nil
			}
		}
	}
}
