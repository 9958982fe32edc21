package tui

import (
	"github.com/mmcdole/openview/internal/domain"
	"github.com/mmcdole/openview/internal/gallery"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// PageLoadedMsg carries the result of a page fetch back to Update.
// Session identifies the directory session that started the fetch.
type PageLoadedMsg struct {
	Session int
	Result  gallery.Result
}

// DirectoriesAddedMsg is a batch of directories appended to the session
type DirectoriesAddedMsg struct {
	Directories []domain.DirectoryEntry
}

// ImagesAddedMsg is a batch of images appended to the session
type ImagesAddedMsg struct {
	Images []domain.ImageEntry
}

// PageStateMsg reports a pagination state transition
type PageStateMsg struct {
	State domain.PageState
}

// NotificationMsg is a user-facing message from the session
type NotificationMsg struct {
	Notification domain.Notification
}

// LoadRequestMsg asks the session for another page
type LoadRequestMsg struct {
	Explicit bool
}

// ImageOpenedMsg signals that an external viewer was launched
type ImageOpenedMsg struct {
	Image domain.ImageEntry
}

// TickMsg is a general tick message for animations
type TickMsg struct{}

// ClearStatusMsg clears the status bar message if it is still the one
// identified by Seq
type ClearStatusMsg struct {
	Seq int
}
