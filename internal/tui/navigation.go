package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/openview/internal/domain"
	"github.com/mmcdole/openview/internal/gallery"
	"github.com/mmcdole/openview/internal/tui/components"
)

// startSession discards the current directory session and builds a new one
// for loc. Results of fetches started by the old session are ignored.
func (m *Model) startSession(loc gallery.StaticLocation) {
	m.sessionID++
	m.Location = loc
	m.events = NewEventQueue()
	m.session = gallery.New(loc, m.Repo, m.logger, gallery.Options{PageSize: m.opts.PageSize})
	m.session.Subscribe(m.events)
	m.session.OnReady(m.events.RequestLoad)
	m.PageState = m.session.State.Current()

	m.Grid.Reset()
	m.Inspector.Clear()
	m.Slideshow.Hide()
	if m.State == StateSlideshow {
		m.State = StateBrowsing
	}

	m.logger.Info("browsing directory", "directory", "/"+loc.Directory(), "session", m.sessionID)
}

// navigateTo opens dir as a new session. The view is already initialized,
// so the session is ready at once and starts loading.
func (m *Model) navigateTo(dir string) tea.Cmd {
	m.startSession(m.Location.WithDirectory(dir))
	m.session.MarkReady()
	return m.processEvents()
}

// navigateParent goes one breadcrumb up. At Home it does nothing.
func (m *Model) navigateParent() tea.Cmd {
	path := m.session.Fragments.Path()
	if len(path) < 2 {
		return nil
	}
	return m.navigateTo(path[len(path)-2])
}

// processEvents drains the session's event queue. Handling an event may
// call back into the session, which queues more events; those are handled
// in the same pass so delivery order is preserved.
func (m *Model) processEvents() tea.Cmd {
	var cmds []tea.Cmd
	for {
		msgs := m.events.Drain()
		if len(msgs) == 0 {
			break
		}
		for _, msg := range msgs {
			cmds = append(cmds, m.handleEvent(msg))
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleEvent(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case DirectoriesAddedMsg:
		m.Grid.AppendDirectories(msg.Directories)
		m.updateInspector()

	case ImagesAddedMsg:
		m.Grid.AppendImages(msg.Images)
		m.updateInspector()
		m.updateSlideshowProgress()

	case PageStateMsg:
		m.PageState = msg.State
		m.updateSlideshowProgress()
		if msg.State == domain.StateReady {
			// A page that still fits on screen asks for the next one.
			return m.maybeLoadMore()
		}

	case NotificationMsg:
		return m.setStatus(msg.Notification.Text, msg.Notification.Kind)

	case LoadRequestMsg:
		return m.loadMore(msg.Explicit)
	}
	return nil
}

// loadMore asks the session for another page. A rejected request is a no-op.
// Admission emits no state event, so the LOADING state is read back here.
func (m *Model) loadMore(explicit bool) tea.Cmd {
	fetch := m.session.Items.LoadMore(explicit)
	if fetch == nil {
		return nil
	}
	m.PageState = m.session.State.Current()
	m.updateSlideshowProgress()
	return FetchPageCmd(m.sessionID, fetch, m.opts.FetchTimeout)
}

// maybeLoadMore loads implicitly when the user has reached the bottom of the list
func (m *Model) maybeLoadMore() tea.Cmd {
	if m.State != StateBrowsing || !m.Grid.AtBottom() {
		return nil
	}
	return m.loadMore(false)
}

// updateInspector shows the grid selection in the inspector
func (m *Model) updateInspector() {
	dir, img := m.Grid.Selected()
	switch {
	case img != nil:
		size := gallery.ThumbnailSize(m.opts.PreviewSize)
		m.Inspector.SetImage(components.ImageDetails{
			Image:         *img,
			ThumbnailURL:  m.session.URLs.ImageThumbnailURL(img.RelativePath, size),
			ThumbnailSize: size,
		})
	case dir != nil:
		m.Inspector.SetDirectory(*dir)
	default:
		m.Inspector.Clear()
	}
}

// showSlide opens the slideshow on the image with the given session index.
// Showing the last loaded image asks for more, the way scrolling to the
// bottom of the list does.
func (m *Model) showSlide(index int) tea.Cmd {
	img, ok := m.session.Items.Image(index)
	if !ok {
		return nil
	}

	w, h := gallery.SlideshowSize(img.Width, img.Height)
	m.Slideshow.Show(components.Slide{
		Image:     img,
		URL:       m.session.URLs.ImageThumbnailURL(img.RelativePath, gallery.SlideshowMaxSize),
		FitWidth:  w,
		FitHeight: h,
	})
	m.State = StateSlideshow
	m.Grid.SelectImage(index)
	m.updateInspector()
	m.updateSlideshowProgress()

	if index == m.session.Items.ImageCount()-1 {
		return m.loadMore(false)
	}
	return nil
}

func (m *Model) updateSlideshowProgress() {
	more := m.PageState != domain.StateEnd
	m.Slideshow.SetProgress(m.session.Items.ImageCount(), more, m.PageState == domain.StateLoading)
}

// openImage launches the external viewer on the slideshow-sized image
func (m *Model) openImage(img domain.ImageEntry) tea.Cmd {
	if m.Opener == nil {
		return m.setStatus("No image viewer configured", domain.NotificationError)
	}
	url := m.session.URLs.ImageThumbnailURL(img.RelativePath, gallery.SlideshowMaxSize)
	return OpenImageCmd(m.Opener, img, url)
}
