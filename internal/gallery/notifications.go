package gallery

import (
	"sync"

	"github.com/mmcdole/openview/internal/domain"
)

// Notifications relays user-facing messages to whoever renders them.
// Nothing is kept after delivery.
type Notifications struct {
	mu          sync.Mutex
	subscribers []func(domain.Notification)
}

// NewNotifications creates an empty relay.
func NewNotifications() *Notifications {
	return &Notifications{}
}

// Subscribe registers fn for every future message.
func (n *Notifications) Subscribe(fn func(domain.Notification)) {
	n.mu.Lock()
	n.subscribers = append(n.subscribers, fn)
	n.mu.Unlock()
}

// Send delivers msg to all subscribers in registration order.
func (n *Notifications) Send(msg domain.Notification) {
	n.mu.Lock()
	subs := n.subscribers
	n.mu.Unlock()

	for _, fn := range subs {
		fn(msg)
	}
}
