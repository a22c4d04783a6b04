package projection

import (
	"chat-sync/domain"
	"slices"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Notifications is the ordered list of presence toasts.
// Entries only leave the list through an explicit dismissal.
type Notifications struct {
	items []domain.Notification
}

func NewNotifications() *Notifications {
	return &Notifications{}
}

func (n *Notifications) Add(notification domain.Notification) {
	n.items = append(n.items, notification)
}

// Remove dismisses the notification carrying id. Unknown ids are ignored.
func (n *Notifications) Remove(id uuid.UUID) bool {
	before := len(n.items)
	n.items = lo.Filter(n.items, func(item domain.Notification, _ int) bool {
		return item.ID != id
	})
	return len(n.items) != before
}

// RemoveAt dismisses by position. The position is only meaningful for the
// list the caller looked at: appends in between shift it.
func (n *Notifications) RemoveAt(index int) bool {
	if index < 0 || index >= len(n.items) {
		return false
	}
	n.items = slices.Delete(n.items, index, index+1)
	return true
}

func (n *Notifications) List() []domain.Notification {
	return slices.Clone(n.items)
}
