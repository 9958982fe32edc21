package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/openview/internal/domain"
)

// EventQueue adapts domain.GalleryObserver for Bubble Tea. Session events
// are queued as messages and drained by Update in the order they were emitted.
type EventQueue struct {
	mu      sync.Mutex
	pending []tea.Msg
}

// NewEventQueue creates an empty queue.
func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

func (q *EventQueue) push(msg tea.Msg) {
	q.mu.Lock()
	q.pending = append(q.pending, msg)
	q.mu.Unlock()
}

// OnDirectories queues a directory batch.
func (q *EventQueue) OnDirectories(batch []domain.DirectoryEntry) {
	q.push(DirectoriesAddedMsg{Directories: batch})
}

// OnImages queues an image batch.
func (q *EventQueue) OnImages(batch []domain.ImageEntry) {
	q.push(ImagesAddedMsg{Images: batch})
}

// OnStateChanged queues a state transition.
func (q *EventQueue) OnStateChanged(state domain.PageState) {
	q.push(PageStateMsg{State: state})
}

// OnNotification queues a notification.
func (q *EventQueue) OnNotification(n domain.Notification) {
	q.push(NotificationMsg{Notification: n})
}

// RequestLoad queues an implicit load request.
func (q *EventQueue) RequestLoad() {
	q.push(LoadRequestMsg{Explicit: false})
}

// Drain removes and returns everything queued so far.
func (q *EventQueue) Drain() []tea.Msg {
	q.mu.Lock()
	defer q.mu.Unlock()
	msgs := q.pending
	q.pending = nil
	return msgs
}

var _ domain.GalleryObserver = (*EventQueue)(nil)
