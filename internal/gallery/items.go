package gallery

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/mmcdole/openview/internal/domain"
)

// RetryMessage is shown when a page could not be loaded.
const RetryMessage = "Sorry, something went wrong... try again?"

// Fetch performs one admitted listing request. It touches no session
// state, so it may run on any goroutine.
type Fetch func(ctx context.Context) Result

// Result is the outcome of a Fetch, to be applied with Items.Complete.
type Result struct {
	Listing *domain.Listing
	Err     error
}

// Items accumulates the directories and images of a directory session.
// Both collections are append-only and kept in server order.
type Items struct {
	state         *State
	notifications *Notifications
	urls          *URLs
	repo          domain.ListingRepository
	logger        *slog.Logger

	mu          sync.Mutex
	images      []domain.ImageEntry
	directories []domain.DirectoryEntry

	imageSubs     []func([]domain.ImageEntry)
	directorySubs []func([]domain.DirectoryEntry)
}

// NewItems wires the item collections to their collaborators.
func NewItems(state *State, notifications *Notifications, urls *URLs, repo domain.ListingRepository, logger *slog.Logger) *Items {
	if logger == nil {
		logger = slog.Default()
	}
	return &Items{
		state:         state,
		notifications: notifications,
		urls:          urls,
		repo:          repo,
		logger:        logger,
	}
}

// SubscribeImages registers fn for every non-empty batch of new images.
func (it *Items) SubscribeImages(fn func([]domain.ImageEntry)) {
	it.mu.Lock()
	it.imageSubs = append(it.imageSubs, fn)
	it.mu.Unlock()
}

// SubscribeDirectories registers fn for every non-empty batch of new directories.
func (it *Items) SubscribeDirectories(fn func([]domain.DirectoryEntry)) {
	it.mu.Lock()
	it.directorySubs = append(it.directorySubs, fn)
	it.mu.Unlock()
}

// LoadMore asks the state machine for permission to load the next page.
// It returns nil when the request is rejected (already loading, finished,
// or failed without an explicit retry). Otherwise the returned Fetch must
// be run and its Result passed to Complete.
func (it *Items) LoadMore(explicit bool) Fetch {
	if !it.state.RequestLoad(explicit) {
		return nil
	}

	infoURL := it.urls.DirectoryInfoURL(string(it.state.NextToken()))
	it.logger.Debug("loading page", "url", infoURL, "explicit", explicit)

	return func(ctx context.Context) Result {
		listing, err := it.repo.GetListing(ctx, infoURL)
		if err == nil && listing == nil {
			err = domain.ErrMalformedListing
		}
		return Result{Listing: listing, Err: err}
	}
}

// Load runs LoadMore, the fetch and Complete in sequence. It reports
// whether a request was made.
func (it *Items) Load(ctx context.Context, explicit bool) bool {
	fetch := it.LoadMore(explicit)
	if fetch == nil {
		return false
	}
	it.Complete(fetch(ctx))
	return true
}

// Complete applies the result of an admitted fetch.
func (it *Items) Complete(res Result) {
	if it.state.Current() != domain.StateLoading {
		it.logger.Warn("dropping result without a pending load", "state", it.state.Current())
		return
	}

	if res.Err != nil {
		it.fail(res.Err)
		return
	}

	listing := res.Listing

	newDirectories := make([]domain.DirectoryEntry, 0, len(listing.Directories))
	for _, d := range listing.Directories {
		newDirectories = append(newDirectories, domain.DirectoryEntry{
			Name:         d.Name,
			RelativePath: d.RelativePath,
			URL:          it.urls.DirectoryURL(d.RelativePath),
		})
	}

	it.mu.Lock()
	baseIndex := len(it.images)
	newImages := make([]domain.ImageEntry, 0, len(listing.Images))
	for i, img := range listing.Images {
		newImages = append(newImages, domain.ImageEntry{
			Name:         img.Name,
			RelativePath: img.RelativePath,
			Width:        img.Width,
			Height:       img.Height,
			URL:          it.urls.ImageURL(img.RelativePath),
			Index:        baseIndex + i,
		})
	}
	it.directories = append(it.directories, newDirectories...)
	it.images = append(it.images, newImages...)
	dirSubs, imageSubs := it.directorySubs, it.imageSubs
	it.mu.Unlock()

	it.logger.Debug("page loaded",
		"directories", len(newDirectories),
		"images", len(newImages),
		"end", listing.NextPageToken.IsZero())

	// Empty batches are not announced.
	if len(newDirectories) > 0 {
		for _, fn := range dirSubs {
			fn(newDirectories)
		}
	}
	if len(newImages) > 0 {
		for _, fn := range imageSubs {
			fn(newImages)
		}
	}

	it.state.ReportSuccess(listing.NextPageToken)
}

func (it *Items) fail(err error) {
	if errors.Is(err, context.Canceled) {
		it.logger.Debug("page load cancelled", "error", err)
	} else {
		it.logger.Error("failed to load page", "error", err)
	}
	it.state.ReportFailure()
	it.notifications.Send(domain.Notification{
		Text: RetryMessage,
		Kind: domain.NotificationError,
	})
}

// Images returns a copy of every image loaded so far.
func (it *Items) Images() []domain.ImageEntry {
	it.mu.Lock()
	defer it.mu.Unlock()
	out := make([]domain.ImageEntry, len(it.images))
	copy(out, it.images)
	return out
}

// Directories returns a copy of every directory loaded so far.
func (it *Items) Directories() []domain.DirectoryEntry {
	it.mu.Lock()
	defer it.mu.Unlock()
	out := make([]domain.DirectoryEntry, len(it.directories))
	copy(out, it.directories)
	return out
}

// Image returns the image at a session index.
func (it *Items) Image(index int) (domain.ImageEntry, bool) {
	it.mu.Lock()
	defer it.mu.Unlock()
	if index < 0 || index >= len(it.images) {
		return domain.ImageEntry{}, false
	}
	return it.images[index], true
}

// ImageCount returns the number of images loaded so far.
func (it *Items) ImageCount() int {
	it.mu.Lock()
	defer it.mu.Unlock()
	return len(it.images)
}
