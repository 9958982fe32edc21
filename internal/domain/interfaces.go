package domain

// GalleryObserver receives everything a directory session emits.
// Calls arrive on the goroutine that applied the change, in emission order.
type GalleryObserver interface {
	OnDirectories(batch []DirectoryEntry)
	OnImages(batch []ImageEntry)
	OnStateChanged(state PageState)
	OnNotification(n Notification)
}

// NoOpObserver discards all events (for testing/batch operations).
type NoOpObserver struct{}

func (NoOpObserver) OnDirectories([]DirectoryEntry) {}
func (NoOpObserver) OnImages([]ImageEntry)          {}
func (NoOpObserver) OnStateChanged(PageState)       {}
func (NoOpObserver) OnNotification(Notification)    {}
