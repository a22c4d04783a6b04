// Package services holds the handlers that turn local intents and inbound
// events into outbound events and projection updates. Every handler runs on
// the engine goroutine, one event at a time.
package services

import (
	"chat-sync/contract"
	"chat-sync/domain/event"
	"context"
	"log/slog"
)

// emit is fire-and-forget: a failed send is logged and forgotten.
func emit(ctx context.Context, log *slog.Logger, emitter contract.Emitter, name string, payload any) {
	if err := emitter.Emit(ctx, name, payload); err != nil {
		log.Warn("Failed to emit event", "event", name, "error", err)
	}
}

// expireInto builds a countdown callback posting the expiry back to the engine.
func expireInto(log *slog.Logger, poster contract.EventPoster, timer event.TimerKind) func(uint64) {
	return func(generation uint64) {
		if err := poster.Post(event.TimerExpired{Timer: timer, Generation: generation}); err != nil {
			log.Debug("Timer expiry dropped", "timer", timer, "error", err)
		}
	}
}
