package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/openview/internal/domain"
	"github.com/mmcdole/openview/internal/gallery"
)

// defaultFetchTimeout bounds a single page request when none is configured
const defaultFetchTimeout = 30 * time.Second

// ImageOpener launches an external viewer for an image URL.
type ImageOpener interface {
	Open(url string) error
}

// FetchPageCmd runs an admitted fetch off the render loop and returns its
// result tagged with the session that started it
func FetchPageCmd(session int, fetch gallery.Fetch, timeout time.Duration) tea.Cmd {
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return PageLoadedMsg{Session: session, Result: fetch(ctx)}
	}
}

// OpenImageCmd opens an image in the external viewer
func OpenImageCmd(opener ImageOpener, img domain.ImageEntry, url string) tea.Cmd {
	return func() tea.Msg {
		if err := opener.Open(url); err != nil {
			return ErrMsg{Err: err, Context: "Failed to open " + img.Name}
		}
		return ImageOpenedMsg{Image: img}
	}
}

// TickCmd returns a command that sends a tick after a delay
func TickCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return TickMsg{}
	})
}

// ClearStatusCmd clears the status message identified by seq after a delay
func ClearStatusCmd(seq int, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{Seq: seq}
	})
}
