package event

import (
	"chat-sync/domain"

	"github.com/google/uuid"
)

// DomainEvent is anything the engine processes: an inbound server event,
// a local intent or a timer expiry.
type DomainEvent interface {
	Kind() string
}

// TransportReady is posted once the transport channel is connected.
type TransportReady struct{}

func (TransportReady) Kind() string { return "transportReady" }

type HistoryReceived struct {
	Messages []domain.Message
}

func (HistoryReceived) Kind() string { return PreviousMessages }

type MessageReceived struct {
	Message domain.Message
}

func (MessageReceived) Kind() string { return NewMessage }

type TypingStarted struct {
	Author string
}

func (TypingStarted) Kind() string { return IsTyping }

type TypingStopped struct{}

func (TypingStopped) Kind() string { return StopTyping }

type StatusReceived struct {
	Author  string
	Visible Visibility
}

func (StatusReceived) Kind() string { return NewStatus }

type AttentionReceived struct {
	Message domain.Message
}

func (AttentionReceived) Kind() string { return Attention }

// Local intents.

type InputChanged struct {
	Value string
}

func (InputChanged) Kind() string { return "inputChanged" }

type SendRequested struct {
	Text string
}

func (SendRequested) Kind() string { return "sendRequested" }

type VisibilityToggled struct {
	Visible bool
}

func (VisibilityToggled) Kind() string { return "visibilityToggled" }

type AttentionRequested struct{}

func (AttentionRequested) Kind() string { return "attentionRequested" }

type NotificationDismissed struct {
	ID uuid.UUID
}

func (NotificationDismissed) Kind() string { return "notificationDismissed" }

type NotificationDismissedAt struct {
	Index int
}

func (NotificationDismissedAt) Kind() string { return "notificationDismissedAt" }

// IdentityChanged is posted when the participant renames or recolors itself,
// so the published state picks the new identity up.
type IdentityChanged struct {
	Identity domain.Identity
}

func (IdentityChanged) Kind() string { return "identityChanged" }
