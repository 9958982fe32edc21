// Package gallery holds the pagination core of a directory session:
// addressing, the load state machine, accumulated items, breadcrumbs and
// user notifications. Views consume it through observers and never mutate it.
package gallery

import (
	"log/slog"
	"sync"

	"github.com/mmcdole/openview/internal/domain"
)

// Options tunes a session.
type Options struct {
	PageSize int // items per server page, 0 = server default
}

// Model is one directory session. It is discarded when the user navigates.
type Model struct {
	URLs          *URLs
	State         *State
	Notifications *Notifications
	Items         *Items
	Fragments     *Fragments

	readyOnce sync.Once
	ready     chan struct{}
	mu        sync.Mutex
	onReady   []func()
	logger    *slog.Logger
}

// New composes a session for loc, fetching pages through repo.
func New(loc Location, repo domain.ListingRepository, logger *slog.Logger, opts Options) *Model {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("directory", "/"+loc.Directory())

	urls := NewURLs(loc).WithPageSize(opts.PageSize)
	state := NewState(logger)
	notifications := NewNotifications()

	return &Model{
		URLs:          urls,
		State:         state,
		Notifications: notifications,
		Items:         NewItems(state, notifications, urls, repo, logger),
		Fragments:     NewFragments(urls),
		ready:         make(chan struct{}),
		logger:        logger,
	}
}

// Subscribe connects obs to every event stream of the session.
func (m *Model) Subscribe(obs domain.GalleryObserver) {
	m.Items.SubscribeDirectories(obs.OnDirectories)
	m.Items.SubscribeImages(obs.OnImages)
	m.State.Subscribe(obs.OnStateChanged)
	m.Notifications.Subscribe(obs.OnNotification)
}

// OnReady registers fn to run once when the view has finished initializing.
// Registering after MarkReady runs fn immediately.
func (m *Model) OnReady(fn func()) {
	m.mu.Lock()
	select {
	case <-m.ready:
		m.mu.Unlock()
		fn()
		return
	default:
	}
	m.onReady = append(m.onReady, fn)
	m.mu.Unlock()
}

// Ready returns a channel closed once the session is ready.
func (m *Model) Ready() <-chan struct{} {
	return m.ready
}

// MarkReady signals readiness. Only the first call has any effect.
func (m *Model) MarkReady() {
	m.readyOnce.Do(func() {
		m.mu.Lock()
		close(m.ready)
		callbacks := m.onReady
		m.onReady = nil
		m.mu.Unlock()

		m.logger.Debug("session ready")
		for _, fn := range callbacks {
			fn()
		}
	})
}
