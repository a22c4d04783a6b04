package projection

import "chat-sync/domain"

// State is an immutable snapshot of everything a UI renders.
// It is rebuilt after every event processed by the engine.
type State struct {
	Phase         domain.Phase
	Identity      domain.Identity
	Messages      []domain.Message
	Typing        string
	Draft         string
	Notifications []domain.Notification
	Attention     bool
	HasSent       bool
}

// Contributor fills its own part of a State snapshot.
type Contributor interface {
	Contribute(state *State)
}
