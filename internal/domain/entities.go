package domain

// PageState is the pagination status of a directory session.
type PageState int

const (
	// StateReady means another page may be requested.
	StateReady PageState = iota
	// StateLoading means a request for more items is in flight.
	StateLoading
	// StateFailed means the last request failed. Only an explicit retry may load again.
	StateFailed
	// StateEnd means the server has no more items.
	StateEnd
)

func (s PageState) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateLoading:
		return "loading"
	case StateFailed:
		return "failed"
	case StateEnd:
		return "end"
	default:
		return "unknown"
	}
}

// PageToken is the server-issued continuation token. It is opaque to the
// client; the empty token means there is nothing left to fetch.
type PageToken string

// IsZero reports whether the token is absent.
func (t PageToken) IsZero() bool { return t == "" }

// ImageEntry is an image in the current directory.
// Index is the position in the session's image sequence and is never reused.
type ImageEntry struct {
	Name         string `json:"name"`
	RelativePath string `json:"relative_path"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	URL          string `json:"url"`
	Index        int    `json:"index"`
}

// AspectRatio returns width/height, or 1 when the height is unknown.
func (e ImageEntry) AspectRatio() float64 {
	if e.Height <= 0 || e.Width <= 0 {
		return 1
	}
	return float64(e.Width) / float64(e.Height)
}

// DirectoryEntry is a subdirectory of the current directory.
type DirectoryEntry struct {
	Name         string `json:"name"`
	RelativePath string `json:"relative_path"`
	URL          string `json:"url"`
}

// NotificationKind classifies a user-facing message
type NotificationKind string

const (
	NotificationError   NotificationKind = "error"
	NotificationInfo    NotificationKind = "info"
	NotificationSuccess NotificationKind = "success"
)

// Notification is an ephemeral user-facing message.
type Notification struct {
	Text string
	Kind NotificationKind
}

// Fragment is one breadcrumb segment of the current directory path.
type Fragment struct {
	Name string
	URL  string
}

// ListingItem is a directory or image as sent by the server.
type ListingItem struct {
	Name         string
	RelativePath string
	Width        int // images only
	Height       int // images only
}

// Listing is one page of a directory listing.
type Listing struct {
	Directories   []ListingItem
	Images        []ListingItem
	NextPageToken PageToken
}
