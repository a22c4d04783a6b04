package services

import (
	"chat-sync/contract"
	"chat-sync/domain"
	"chat-sync/domain/event"
	"chat-sync/projection"
	"context"
	"log/slog"
)

var _ event.Handler = (*PresenceService)(nil)

// PresenceService announces our visibility and collects "just joined" toasts.
type PresenceService struct {
	log           *slog.Logger
	emitter       contract.Emitter
	identity      contract.IdentityProvider
	notifications *projection.Notifications
}

func NewPresenceService(log *slog.Logger, emitter contract.Emitter, identity contract.IdentityProvider) *PresenceService {
	return &PresenceService{
		log:           log,
		emitter:       emitter,
		identity:      identity,
		notifications: projection.NewNotifications(),
	}
}

func (s *PresenceService) Handle(ctx context.Context, evt event.DomainEvent) {
	switch e := evt.(type) {
	case event.VisibilityToggled:
		emit(ctx, s.log, s.emitter, event.StatusChanged, event.StatusPayload{
			Author:  s.identity.Get().Name,
			Visible: event.VisibilityOf(e.Visible),
		})
	case event.StatusReceived:
		if s.identity.Get().IsSelf(e.Author) || e.Visible != event.VisibleOn {
			return
		}
		s.notifications.Add(domain.NewJoinedNotification(e.Author))
	case event.NotificationDismissed:
		if !s.notifications.Remove(e.ID) {
			s.log.Debug("Notification already gone", "id", e.ID)
		}
	case event.NotificationDismissedAt:
		if !s.notifications.RemoveAt(e.Index) {
			s.log.Debug("No notification at position", "index", e.Index)
		}
	}
}

func (s *PresenceService) Contribute(state *projection.State) {
	state.Notifications = s.notifications.List()
}
