// Package projection builds the local, UI-observable views of a chat session.
// Views are written by a single handler each and never emit events or talk to the UI.
package projection

import (
	"chat-sync/domain"
	"slices"
)

// Timeline holds the conversation log in arrival order.
// Entries are never reordered or removed, except by ReplaceAll.
type Timeline struct {
	Messages []domain.Message
}

func NewTimeline() *Timeline {
	return &Timeline{}
}

// ReplaceAll overwrites the whole log with the history sent by the server.
func (t *Timeline) ReplaceAll(messages []domain.Message) {
	t.Messages = slices.Clone(messages)
}

func (t *Timeline) Append(message domain.Message) {
	t.Messages = append(t.Messages, message)
}

// Entries returns a copy safe to hand out of the engine goroutine.
func (t *Timeline) Entries() []domain.Message {
	return slices.Clone(t.Messages)
}
