package event

import (
	"chat-sync/domain"
)

// Wire names of the events exchanged with the server.
const (
	PreviousMessages = "previousMessages"
	NewMessage       = "newMessage"
	ReceivedMessage  = "receivedMessage"
	Typing           = "typing"
	IsTyping         = "isTyping"
	Stop             = "stop"
	StopTyping       = "stopTyping"
	StatusChanged    = "statusChanged"
	NewStatus        = "newStatus"
	Attention        = "attention"
)

type Visibility string

const (
	VisibleOn  Visibility = "on"
	VisibleOff Visibility = "off"
)

func VisibilityOf(visible bool) Visibility {
	if visible {
		return VisibleOn
	}
	return VisibleOff
}

type TypingPayload struct {
	Author string `json:"author" validate:"required"`
}

type StopPayload struct{}

type StatusPayload struct {
	Author  string     `json:"author" validate:"required"`
	Visible Visibility `json:"visible" validate:"required"`
}

// MessagePayload is the wire shape of a domain.Message.
type MessagePayload struct {
	Name      string `json:"name" validate:"required"`
	Message   string `json:"message"`
	Color     string `json:"color"`
	Hour      string `json:"hour"`
	Attention bool   `json:"attention,omitempty"`
}

func FromMessage(m domain.Message) MessagePayload {
	return MessagePayload{
		Name:      m.Name,
		Message:   m.Message,
		Color:     m.Color,
		Hour:      m.Hour,
		Attention: m.Attention,
	}
}

func (p MessagePayload) ToMessage() domain.Message {
	return domain.Message{
		Name:      p.Name,
		Message:   p.Message,
		Color:     p.Color,
		Hour:      p.Hour,
		Attention: p.Attention,
	}
}
