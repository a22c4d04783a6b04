package services

import (
	"chat-sync/contract"
	"chat-sync/domain"
	"chat-sync/domain/event"
	"chat-sync/pacing"
	"chat-sync/projection"
	"context"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
)

var _ event.Handler = (*TypingService)(nil)

type TypingConfig struct {
	Throttle   time.Duration
	Debounce   time.Duration
	ClearDelay time.Duration
}

// TypingService derives the typing pulse and stop notice from the draft changes
// and merges the typing events of the others into a single status line.
type TypingService struct {
	log       *slog.Logger
	emitter   contract.Emitter
	identity  contract.IdentityProvider
	indicator *projection.TypingIndicator
	throttle  *pacing.Throttle
	pulses    pacing.Distinct[string]
	debounce  *pacing.Countdown
	stops     pacing.Distinct[string]
	clear     *pacing.Countdown // nil: stopTyping clears right away
	draft     string
}

func NewTypingService(
	log *slog.Logger,
	clock clockwork.Clock,
	emitter contract.Emitter,
	identity contract.IdentityProvider,
	poster contract.EventPoster,
	config TypingConfig,
) *TypingService {
	s := &TypingService{
		log:       log,
		emitter:   emitter,
		identity:  identity,
		indicator: projection.NewTypingIndicator(),
		throttle:  pacing.NewThrottle(clock, config.Throttle),
		debounce:  pacing.NewCountdown(clock, config.Debounce, expireInto(log, poster, event.StopNoticeTimer)),
	}
	if config.ClearDelay > 0 {
		s.clear = pacing.NewCountdown(clock, config.ClearDelay, expireInto(log, poster, event.TypingClearTimer))
	}
	return s
}

func (s *TypingService) Handle(ctx context.Context, evt event.DomainEvent) {
	switch e := evt.(type) {
	case event.InputChanged:
		s.onInput(ctx, e.Value)
	case event.SendRequested:
		if !domain.IsBlank(e.Text) {
			s.resetDraft()
		}
	case event.TypingStarted:
		s.onTypingStarted(e.Author)
	case event.TypingStopped:
		s.onTypingStopped()
	case event.TimerExpired:
		s.onTimer(ctx, e)
	}
}

func (s *TypingService) onInput(ctx context.Context, value string) {
	s.draft = value
	if s.throttle.Allow() && s.pulses.Changed(value) {
		emit(ctx, s.log, s.emitter, event.Typing, event.TypingPayload{Author: s.identity.Get().Name})
	}
	s.debounce.Start()
}

// resetDraft follows a successful send, which already told the others we stopped.
func (s *TypingService) resetDraft() {
	s.draft = ""
	s.debounce.Stop()
	s.throttle.Reset()
	s.pulses.Forget()
	s.stops.Forget()
}

func (s *TypingService) onTypingStarted(author string) {
	if s.identity.Get().IsSelf(author) {
		return
	}
	if s.clear != nil {
		s.clear.Stop()
	}
	s.indicator.Show(author)
}

func (s *TypingService) onTypingStopped() {
	if s.clear == nil {
		s.indicator.Clear()
		return
	}
	s.clear.Start()
}

func (s *TypingService) onTimer(ctx context.Context, e event.TimerExpired) {
	switch e.Timer {
	case event.StopNoticeTimer:
		if s.debounce.Expired(e.Generation) && s.stops.Changed(s.draft) {
			emit(ctx, s.log, s.emitter, event.Stop, event.StopPayload{})
		}
	case event.TypingClearTimer:
		if s.clear != nil && s.clear.Expired(e.Generation) {
			s.indicator.Clear()
		}
	}
}

func (s *TypingService) Contribute(state *projection.State) {
	state.Typing = s.indicator.Status()
	state.Draft = s.draft
}

func (s *TypingService) Stop() {
	s.debounce.Stop()
	if s.clear != nil {
		s.clear.Stop()
	}
}
