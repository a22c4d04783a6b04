package services

import (
	"chat-sync/contract"
	"chat-sync/domain"
	"chat-sync/domain/event"
	"chat-sync/pacing"
	"chat-sync/projection"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
)

const (
	// AttentionText is broadcast with every attention call.
	AttentionText = "is calling for your attention!"
	vocative      = "Hey, %s %s"
)

var _ event.Handler = (*AttentionService)(nil)

// AttentionService broadcasts attention calls and flashes the ones of the others.
type AttentionService struct {
	log      *slog.Logger
	clock    clockwork.Clock
	emitter  contract.Emitter
	identity contract.IdentityProvider
	timeline *projection.Timeline
	flag     *projection.AttentionFlag
	decay    *pacing.Countdown
}

func NewAttentionService(
	log *slog.Logger,
	clock clockwork.Clock,
	emitter contract.Emitter,
	identity contract.IdentityProvider,
	poster contract.EventPoster,
	timeline *projection.Timeline,
	decay time.Duration,
) *AttentionService {
	return &AttentionService{
		log:      log,
		clock:    clock,
		emitter:  emitter,
		identity: identity,
		timeline: timeline,
		flag:     projection.NewAttentionFlag(),
		decay:    pacing.NewCountdown(clock, decay, expireInto(log, poster, event.AttentionDecayTimer)),
	}
}

func (s *AttentionService) Handle(ctx context.Context, evt event.DomainEvent) {
	switch e := evt.(type) {
	case event.AttentionRequested:
		call := domain.NewMessage(s.identity.Get(), AttentionText, s.clock.Now())
		call.Attention = true
		emit(ctx, s.log, s.emitter, event.Attention, event.FromMessage(call))
	case event.AttentionReceived:
		self := s.identity.Get()
		if self.IsSelf(e.Message.Name) {
			return
		}
		s.flag.Raise()
		s.decay.Start()
		s.timeline.Append(personalize(e.Message, self.Name))
	case event.TimerExpired:
		if e.Timer == event.AttentionDecayTimer && s.decay.Expired(e.Generation) {
			s.flag.Lower()
		}
	}
}

// personalize addresses the call to the receiver, whatever the sender wrote.
func personalize(call domain.Message, receiver string) domain.Message {
	call.Message = fmt.Sprintf(vocative, receiver, call.Message)
	return call
}

func (s *AttentionService) Contribute(state *projection.State) {
	state.Attention = s.flag.Raised()
}

func (s *AttentionService) Stop() {
	s.decay.Stop()
}
