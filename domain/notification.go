package domain

import "github.com/google/uuid"

// JoinedText is shown for every participant that just came online.
const JoinedText = "just joined!"

// Notification is a dismissible presence toast.
type Notification struct {
	ID     uuid.UUID
	Author string
	Text   string
}

func NewJoinedNotification(author string) Notification {
	return Notification{
		ID:     uuid.New(),
		Author: author,
		Text:   JoinedText,
	}
}
