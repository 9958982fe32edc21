package tui

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/openview/internal/domain"
	"github.com/mmcdole/openview/internal/gallery"
	"github.com/mmcdole/openview/internal/log"
)

// fakeRepo serves listings keyed by "directory|token".
type fakeRepo struct {
	mu       sync.Mutex
	pages    map[string]*domain.Listing
	failures int // fail this many requests before serving pages
	calls    []string
}

func (f *fakeRepo) GetListing(ctx context.Context, infoURL string) (*domain.Listing, error) {
	u, err := url.Parse(infoURL)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, infoURL)
	if f.failures > 0 {
		f.failures--
		return nil, domain.ErrServerOffline
	}
	key := strings.Trim(u.Path, "/") + "|" + u.Query().Get("page_token")
	listing, ok := f.pages[key]
	if !ok {
		return nil, fmt.Errorf("%w: no page %s", domain.ErrUnexpectedStatus, key)
	}
	return listing, nil
}

func (f *fakeRepo) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeOpener struct {
	urls []string
	err  error
}

func (f *fakeOpener) Open(url string) error {
	f.urls = append(f.urls, url)
	return f.err
}

func images(dir, prefix string, n int) []domain.ListingItem {
	items := make([]domain.ListingItem, n)
	for i := range items {
		name := fmt.Sprintf("%s%02d.jpg", prefix, i)
		items[i] = domain.ListingItem{Name: name, RelativePath: strings.TrimPrefix(dir+"/"+name, "/"), Width: 400, Height: 300}
	}
	return items
}

func newTestModel(t *testing.T, repo *fakeRepo, opener ImageOpener) Model {
	t.Helper()
	loc, err := gallery.NewLocation("http://example.com", "")
	if err != nil {
		t.Fatalf("NewLocation: %v", err)
	}
	return NewModel(loc, repo, opener, Options{PreviewSize: 300}, log.NullLogger())
}

// collect runs cmd and returns the messages it produces. Commands that do
// not finish quickly (ticks) are skipped.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	select {
	case msg := <-done:
		if batch, ok := msg.(tea.BatchMsg); ok {
			var out []tea.Msg
			for _, c := range batch {
				out = append(out, collect(c)...)
			}
			return out
		}
		if msg == nil {
			return nil
		}
		return []tea.Msg{msg}
	case <-time.After(50 * time.Millisecond):
		return nil
	}
}

// send delivers msg and feeds completed page loads back into the model
// until none are left. Other produced messages are returned.
func send(t *testing.T, m Model, msg tea.Msg) (Model, []tea.Msg) {
	t.Helper()
	var other []tea.Msg
	queue := []tea.Msg{msg}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		updated, cmd := m.Update(next)
		m = updated.(Model)
		for _, out := range collect(cmd) {
			if _, ok := out.(PageLoadedMsg); ok {
				queue = append(queue, out)
			} else {
				other = append(other, out)
			}
		}
	}
	return m, other
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var bigWindow = tea.WindowSizeMsg{Width: 120, Height: 40}

func TestModel_ReadyLoadsUntilScreenIsFull(t *testing.T) {
	repo := &fakeRepo{pages: map[string]*domain.Listing{
		"|":   {Images: images("", "a", 2), NextPageToken: "p2"},
		"|p2": {Directories: []domain.ListingItem{{Name: "sub", RelativePath: "sub"}}, Images: images("", "b", 1)},
	}}
	m := newTestModel(t, repo, nil)

	if got := repo.callCount(); got != 0 {
		t.Fatalf("requests before ready = %d, want 0", got)
	}

	m, _ = send(t, m, bigWindow)

	if got := repo.callCount(); got != 2 {
		t.Errorf("requests = %d, want 2", got)
	}
	if m.PageState != domain.StateEnd {
		t.Errorf("state = %v, want end", m.PageState)
	}
	if m.Grid.DirectoryCount() != 1 || m.Grid.ImageCount() != 3 {
		t.Errorf("grid = %d dirs %d images, want 1 and 3", m.Grid.DirectoryCount(), m.Grid.ImageCount())
	}
	if hint := m.loadHint(); hint != "" {
		t.Errorf("load hint at end = %q, want empty", hint)
	}

	// The late directory batch does not move the selection off a00.
	if _, img := m.Grid.Selected(); img == nil || img.Name != "a00.jpg" {
		t.Errorf("selected = %v, want a00.jpg", img)
	}

	// Directories are listed before images.
	m.Grid.SetCursor(0)
	if dir, _ := m.Grid.Selected(); dir == nil || dir.Name != "sub" {
		t.Errorf("first entry = %v, want directory sub", dir)
	}
}

func TestModel_FailureNotifiesAndWaitsForExplicitRetry(t *testing.T) {
	repo := &fakeRepo{
		failures: 1,
		pages: map[string]*domain.Listing{
			"|": {Images: images("", "a", 2)},
		},
	}
	m := newTestModel(t, repo, nil)

	m, _ = send(t, m, bigWindow)

	if m.PageState != domain.StateFailed {
		t.Fatalf("state = %v, want failed", m.PageState)
	}
	if m.StatusMsg != gallery.RetryMessage || m.StatusKind != domain.NotificationError {
		t.Errorf("status = %q (%s), want retry message as error", m.StatusMsg, m.StatusKind)
	}
	if !strings.Contains(m.loadHint(), "retry") {
		t.Errorf("load hint = %q, want a retry hint", m.loadHint())
	}

	// Implicit triggers do not retry.
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	if got := repo.callCount(); got != 1 {
		t.Fatalf("requests after resize = %d, want 1", got)
	}

	m, _ = send(t, m, keyMsg("m"))

	if got := repo.callCount(); got != 2 {
		t.Errorf("requests after retry = %d, want 2", got)
	}
	if m.PageState != domain.StateEnd {
		t.Errorf("state = %v, want end", m.PageState)
	}
	if m.Grid.ImageCount() != 2 {
		t.Errorf("images = %d, want 2", m.Grid.ImageCount())
	}
}

func TestModel_LoadHintShowsPendingLoad(t *testing.T) {
	repo := &fakeRepo{
		failures: 1,
		pages: map[string]*domain.Listing{
			"|": {Images: images("", "a", 2)},
		},
	}
	m := newTestModel(t, repo, nil)

	// The fetch is returned but not run yet.
	updated, cmd := m.Update(bigWindow)
	m = updated.(Model)
	if m.PageState != domain.StateLoading {
		t.Fatalf("state while fetching = %v, want loading", m.PageState)
	}
	if !strings.Contains(m.loadHint(), "Loading") {
		t.Errorf("load hint = %q, want Loading", m.loadHint())
	}

	for _, msg := range collect(cmd) {
		if loaded, ok := msg.(PageLoadedMsg); ok {
			m, _ = send(t, m, loaded)
		}
	}
	if m.PageState != domain.StateFailed {
		t.Fatalf("state = %v, want failed", m.PageState)
	}

	// An explicit retry replaces the failure hint while it is in flight.
	updated, cmd = m.Update(keyMsg("m"))
	m = updated.(Model)
	if hint := m.loadHint(); !strings.Contains(hint, "Loading") || strings.Contains(hint, "retry") {
		t.Errorf("load hint during retry = %q, want Loading", hint)
	}

	for _, msg := range collect(cmd) {
		if loaded, ok := msg.(PageLoadedMsg); ok {
			m, _ = send(t, m, loaded)
		}
	}
	if m.PageState != domain.StateEnd || m.Grid.ImageCount() != 2 {
		t.Errorf("after retry: state = %v, images = %d; want end and 2", m.PageState, m.Grid.ImageCount())
	}
}

func TestModel_CursorAtBottomLoadsMore(t *testing.T) {
	repo := &fakeRepo{pages: map[string]*domain.Listing{
		"|":   {Images: images("", "a", 30), NextPageToken: "p2"},
		"|p2": {Images: images("", "b", 5)},
	}}
	m := newTestModel(t, repo, nil)

	m, _ = send(t, m, tea.WindowSizeMsg{Width: 80, Height: 20})

	if got := repo.callCount(); got != 1 {
		t.Fatalf("requests = %d, want 1 while the page overflows the screen", got)
	}
	if m.PageState != domain.StateReady {
		t.Fatalf("state = %v, want ready", m.PageState)
	}

	m, _ = send(t, m, keyMsg("j"))
	if got := repo.callCount(); got != 1 {
		t.Fatalf("requests after one step = %d, want 1", got)
	}

	m, _ = send(t, m, keyMsg("G"))

	if got := repo.callCount(); got != 2 {
		t.Errorf("requests = %d, want 2", got)
	}
	if m.Grid.ImageCount() != 35 {
		t.Errorf("images = %d, want 35", m.Grid.ImageCount())
	}
	if got := m.Grid.Cursor(); got != 29 {
		t.Errorf("cursor = %d, want 29 (unchanged by the new batch)", got)
	}
}

func TestModel_ExplicitLoadMore(t *testing.T) {
	repo := &fakeRepo{pages: map[string]*domain.Listing{
		"|":   {Images: images("", "a", 30), NextPageToken: "p2"},
		"|p2": {Images: images("", "b", 5)},
	}}
	m := newTestModel(t, repo, nil)
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 80, Height: 20})

	m, _ = send(t, m, keyMsg("m"))

	if m.Grid.ImageCount() != 35 {
		t.Errorf("images = %d, want 35", m.Grid.ImageCount())
	}

	// Nothing left: further requests are rejected without a fetch.
	m, _ = send(t, m, keyMsg("m"))
	if got := repo.callCount(); got != 2 {
		t.Errorf("requests = %d, want 2", got)
	}
}

func TestModel_DirectoryNavigation(t *testing.T) {
	repo := &fakeRepo{pages: map[string]*domain.Listing{
		"|":    {Directories: []domain.ListingItem{{Name: "sub", RelativePath: "sub"}}},
		"sub|": {Images: images("sub", "s", 1)},
	}}
	m := newTestModel(t, repo, nil)
	m, _ = send(t, m, bigWindow)

	m, _ = send(t, m, keyMsg("enter"))

	if got := m.Location.Directory(); got != "sub" {
		t.Fatalf("directory = %q, want sub", got)
	}
	if m.Grid.DirectoryCount() != 0 || m.Grid.ImageCount() != 1 {
		t.Errorf("grid = %d dirs %d images, want 0 and 1", m.Grid.DirectoryCount(), m.Grid.ImageCount())
	}
	if got := m.breadcrumb(); got != "Home / sub" {
		t.Errorf("breadcrumb = %q, want %q", got, "Home / sub")
	}
	_, img := m.Grid.Selected()
	if img == nil || img.Index != 0 || img.URL != "http://example.com/sub/s00.jpg" {
		t.Errorf("selected = %+v, want first image of sub", img)
	}

	m, _ = send(t, m, keyMsg("backspace"))

	if got := m.Location.Directory(); got != "" {
		t.Errorf("directory after back = %q, want root", got)
	}
	if m.Grid.DirectoryCount() != 1 || m.Grid.ImageCount() != 0 {
		t.Errorf("grid = %d dirs %d images, want 1 and 0", m.Grid.DirectoryCount(), m.Grid.ImageCount())
	}
	if got := repo.callCount(); got != 3 {
		t.Errorf("requests = %d, want 3", got)
	}
}

func TestModel_IgnoresPagesFromClosedSession(t *testing.T) {
	repo := &fakeRepo{pages: map[string]*domain.Listing{
		"|":    {Directories: []domain.ListingItem{{Name: "sub", RelativePath: "sub"}}},
		"sub|": {Images: images("sub", "s", 1)},
	}}
	m := newTestModel(t, repo, nil)
	m, _ = send(t, m, bigWindow)
	m, _ = send(t, m, keyMsg("enter"))

	stale := PageLoadedMsg{Session: 1, Result: gallery.Result{Listing: &domain.Listing{
		Images: images("", "old", 3),
	}}}
	m, _ = send(t, m, stale)

	if m.Grid.ImageCount() != 1 {
		t.Errorf("images = %d, want 1", m.Grid.ImageCount())
	}
	if m.PageState != domain.StateEnd {
		t.Errorf("state = %v, want end", m.PageState)
	}
}

func TestModel_Slideshow(t *testing.T) {
	repo := &fakeRepo{pages: map[string]*domain.Listing{
		"|": {Images: images("", "a", 3)},
	}}
	opener := &fakeOpener{}
	m := newTestModel(t, repo, opener)
	m, _ = send(t, m, bigWindow)

	m, _ = send(t, m, keyMsg("enter"))
	if m.State != StateSlideshow {
		t.Fatalf("state = %v, want slideshow", m.State)
	}
	if got := m.Slideshow.Current().Index; got != 0 {
		t.Fatalf("slide = %d, want 0", got)
	}

	m, _ = send(t, m, keyMsg("l"))
	m, _ = send(t, m, keyMsg("l"))
	m, _ = send(t, m, keyMsg("l")) // already on the last image
	if got := m.Slideshow.Current().Index; got != 2 {
		t.Errorf("slide = %d, want 2", got)
	}
	m, _ = send(t, m, keyMsg("h"))
	if got := m.Slideshow.Current().Index; got != 1 {
		t.Errorf("slide = %d, want 1", got)
	}

	m, out := send(t, m, keyMsg("o"))
	if len(opener.urls) != 1 || opener.urls[0] != "http://example.com/a01.jpg?size=2048" {
		t.Errorf("opened = %v, want the 2048px image", opener.urls)
	}
	if len(out) != 1 {
		t.Fatalf("messages = %v, want one ImageOpenedMsg", out)
	}
	if _, ok := out[0].(ImageOpenedMsg); !ok {
		t.Errorf("message = %T, want ImageOpenedMsg", out[0])
	}

	m, _ = send(t, m, keyMsg("esc"))
	if m.State != StateBrowsing {
		t.Errorf("state = %v, want browsing", m.State)
	}
	if _, img := m.Grid.Selected(); img == nil || img.Index != 1 {
		t.Errorf("grid selection = %v, want the last shown image", img)
	}
}

func TestModel_SlideshowLastImageLoadsMore(t *testing.T) {
	repo := &fakeRepo{pages: map[string]*domain.Listing{
		"|":   {Images: images("", "a", 30), NextPageToken: "p2"},
		"|p2": {Images: images("", "b", 2)},
	}}
	m := newTestModel(t, repo, nil)
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 80, Height: 20})
	m.Grid.SetCursor(29)

	m, _ = send(t, m, keyMsg("enter"))

	if got := repo.callCount(); got != 2 {
		t.Fatalf("requests = %d, want 2", got)
	}
	if m.State != StateSlideshow {
		t.Fatalf("state = %v, want slideshow", m.State)
	}

	m, _ = send(t, m, keyMsg("l"))
	if got := m.Slideshow.Current().Name; got != "b00.jpg" {
		t.Errorf("slide = %s, want b00.jpg", got)
	}
	if got := m.Slideshow.Current().Index; got != 30 {
		t.Errorf("index = %d, want 30", got)
	}
}

func TestModel_OpenErrorShowsStatus(t *testing.T) {
	repo := &fakeRepo{pages: map[string]*domain.Listing{
		"|": {Images: images("", "a", 1)},
	}}
	m := newTestModel(t, repo, &fakeOpener{err: errors.New("no viewer")})
	m, _ = send(t, m, bigWindow)

	m, out := send(t, m, keyMsg("o"))
	if len(out) != 1 {
		t.Fatalf("messages = %v, want one ErrMsg", out)
	}
	m, _ = send(t, m, out[0])

	if m.StatusKind != domain.NotificationError || !strings.Contains(m.StatusMsg, "no viewer") {
		t.Errorf("status = %q (%s), want the viewer error", m.StatusMsg, m.StatusKind)
	}
}

func TestModel_FindOpensSlideshow(t *testing.T) {
	repo := &fakeRepo{pages: map[string]*domain.Listing{
		"|": {Images: []domain.ListingItem{
			{Name: "a.jpg", RelativePath: "a.jpg"},
			{Name: "beach.jpg", RelativePath: "beach.jpg"},
			{Name: "c.jpg", RelativePath: "c.jpg"},
		}},
	}}
	m := newTestModel(t, repo, nil)
	m, _ = send(t, m, bigWindow)

	m, _ = send(t, m, keyMsg("f"))
	if m.State != StateFinding {
		t.Fatalf("state = %v, want finding", m.State)
	}
	m, _ = send(t, m, keyMsg("beach"))
	if got := len(m.Finder.Results()); got != 1 {
		t.Fatalf("results = %d, want 1", got)
	}

	m, _ = send(t, m, keyMsg("enter"))

	if m.State != StateSlideshow {
		t.Fatalf("state = %v, want slideshow", m.State)
	}
	if got := m.Slideshow.Current().Name; got != "beach.jpg" {
		t.Errorf("slide = %s, want beach.jpg", got)
	}
}

func TestModel_FilterDoesNotTriggerLoads(t *testing.T) {
	repo := &fakeRepo{pages: map[string]*domain.Listing{
		"|":   {Images: images("", "a", 30), NextPageToken: "p2"},
		"|p2": {Images: images("", "b", 5)},
	}}
	m := newTestModel(t, repo, nil)
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 80, Height: 20})

	m, _ = send(t, m, keyMsg("/"))
	m, _ = send(t, m, keyMsg("a05"))

	if got := m.Grid.Len(); got != 1 {
		t.Fatalf("filtered entries = %d, want 1", got)
	}
	if got := repo.callCount(); got != 1 {
		t.Errorf("requests = %d, want 1", got)
	}

	m, _ = send(t, m, keyMsg("esc"))
	if m.Grid.IsFiltering() {
		t.Error("filter still active after esc")
	}
	if got := m.Grid.Len(); got != 30 {
		t.Errorf("entries = %d, want 30", got)
	}
}

func TestEventQueue_DrainKeepsOrder(t *testing.T) {
	q := NewEventQueue()
	q.OnStateChanged(domain.StateLoading)
	q.OnImages([]domain.ImageEntry{{Name: "a"}})
	q.OnNotification(domain.Notification{Text: "hi"})
	q.RequestLoad()

	msgs := q.Drain()
	if len(msgs) != 4 {
		t.Fatalf("drained %d messages, want 4", len(msgs))
	}
	if _, ok := msgs[0].(PageStateMsg); !ok {
		t.Errorf("msgs[0] = %T, want PageStateMsg", msgs[0])
	}
	if _, ok := msgs[1].(ImagesAddedMsg); !ok {
		t.Errorf("msgs[1] = %T, want ImagesAddedMsg", msgs[1])
	}
	if _, ok := msgs[2].(NotificationMsg); !ok {
		t.Errorf("msgs[2] = %T, want NotificationMsg", msgs[2])
	}
	if req, ok := msgs[3].(LoadRequestMsg); !ok || req.Explicit {
		t.Errorf("msgs[3] = %#v, want implicit LoadRequestMsg", msgs[3])
	}
	if rest := q.Drain(); len(rest) != 0 {
		t.Errorf("second drain = %v, want empty", rest)
	}
}
