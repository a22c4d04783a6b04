package workers

import (
	"chat-sync/contract"
	"chat-sync/domain/event"
	"chat-sync/errors"
	"context"
	"encoding/json"
	errs "errors"
	"log/slog"
)

// InboundWorker turns the raw payloads of one server event into domain
// events for the engine. Payloads that do not decode or validate are dropped.
// One worker per event name keeps the arrival order of that event.
type InboundWorker struct {
	log     *slog.Logger
	name    string
	source  <-chan json.RawMessage
	decoder *event.Decoder
	poster  contract.EventPoster
}

func NewInboundWorker(
	log *slog.Logger,
	name string,
	source <-chan json.RawMessage,
	decoder *event.Decoder,
	poster contract.EventPoster,
) *InboundWorker {
	return &InboundWorker{log: log, name: name, source: source, decoder: decoder, poster: poster}
}

// Run returns nil when ctx is done or the transport closed the subscription.
func (w *InboundWorker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case raw, ok := <-w.source:
			if !ok {
				w.log.Debug("Subscription closed", "event", w.name)
				return nil
			}
			evt, err := w.decoder.Decode(w.name, raw)
			if err != nil {
				w.log.Warn("Dropping inbound payload", "event", w.name, "error", err)
				continue
			}
			if err := w.poster.Post(evt); err != nil {
				if errs.Is(err, errors.ErrSessionClosed) {
					return nil
				}
				return err
			}
		}
	}
}
