package services

import (
	"chat-sync/contract"
	"chat-sync/domain"
	"chat-sync/domain/event"
	"chat-sync/projection"
	"context"
	"log/slog"

	"github.com/jonboulle/clockwork"
)

var _ event.Handler = (*ConversationService)(nil)

// ConversationService owns the conversation log and the session phase.
type ConversationService struct {
	log      *slog.Logger
	clock    clockwork.Clock
	emitter  contract.Emitter
	identity contract.IdentityProvider
	timeline *projection.Timeline
	phase    domain.Phase
	hasSent  bool
}

func NewConversationService(
	log *slog.Logger,
	clock clockwork.Clock,
	emitter contract.Emitter,
	identity contract.IdentityProvider,
	timeline *projection.Timeline,
) *ConversationService {
	return &ConversationService{
		log:      log,
		clock:    clock,
		emitter:  emitter,
		identity: identity,
		timeline: timeline,
		phase:    domain.Uninitialized,
	}
}

func (s *ConversationService) Handle(ctx context.Context, evt event.DomainEvent) {
	switch e := evt.(type) {
	case event.TransportReady:
		if s.phase == domain.Uninitialized {
			s.moveTo(domain.AwaitingHistory)
		}
	case event.HistoryReceived:
		s.timeline.ReplaceAll(e.Messages)
		s.moveTo(domain.Live)
	case event.MessageReceived:
		s.timeline.Append(e.Message)
	case event.SendRequested:
		s.send(ctx, e.Text)
	}
}

// send echoes the message locally without waiting for the server, then
// publishes it and clears our own typing indicator on the other side.
func (s *ConversationService) send(ctx context.Context, text string) {
	if domain.IsBlank(text) {
		return
	}
	message := domain.NewMessage(s.identity.Get(), text, s.clock.Now())
	s.hasSent = true
	s.timeline.Append(message)
	emit(ctx, s.log, s.emitter, event.ReceivedMessage, event.FromMessage(message))
	emit(ctx, s.log, s.emitter, event.Stop, event.StopPayload{})
}

func (s *ConversationService) moveTo(phase domain.Phase) {
	if s.phase == phase {
		return
	}
	s.log.Debug("Session phase changed", "from", s.phase, "to", phase)
	s.phase = phase
}

func (s *ConversationService) Contribute(state *projection.State) {
	state.Phase = s.phase
	state.Identity = s.identity.Get()
	state.Messages = s.timeline.Entries()
	state.HasSent = s.hasSent
}
