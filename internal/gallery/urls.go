package gallery

import (
	"net/url"
	"path"
	"strconv"
	"strings"
)

// Location is the source of the "current location" the URLs are built against.
type Location interface {
	// Base returns the server origin plus any base path the gallery is mounted at
	Base() url.URL
	// Directory returns the current directory, relative to Base, without slashes at either end
	Directory() string
}

// StaticLocation is a fixed Location: one server, one directory.
type StaticLocation struct {
	base url.URL
	dir  string
}

// NewLocation parses the server URL and pins the directory being browsed.
func NewLocation(serverURL, dir string) (StaticLocation, error) {
	u, err := url.Parse(strings.TrimRight(serverURL, "/"))
	if err != nil {
		return StaticLocation{}, err
	}
	base := url.URL{Scheme: u.Scheme, Host: u.Host, Path: u.Path}
	return StaticLocation{base: base, dir: cleanDir(dir)}, nil
}

func (l StaticLocation) Base() url.URL     { return l.base }
func (l StaticLocation) Directory() string { return l.dir }

// WithDirectory returns the same server location pointed at another directory.
func (l StaticLocation) WithDirectory(dir string) StaticLocation {
	l.dir = cleanDir(dir)
	return l
}

func cleanDir(dir string) string {
	return strings.Trim(dir, "/")
}

// URLs builds request and resource URLs for the current location.
type URLs struct {
	loc      Location
	pageSize int // 0 = server default
}

// NewURLs creates an addressing service bound to loc.
func NewURLs(loc Location) *URLs {
	return &URLs{loc: loc}
}

// WithPageSize asks the server for pages of n items (0 leaves the server default).
func (u *URLs) WithPageSize(n int) *URLs {
	u.pageSize = n
	return u
}

// Directory returns the current directory path.
func (u *URLs) Directory() string {
	return u.loc.Directory()
}

// DirectoryURL returns the browsable URL of a directory.
func (u *URLs) DirectoryURL(relativePath string) string {
	return u.resolve(relativePath, nil)
}

// DirectoryInfoURL returns the listing request for the current directory,
// resuming at token.
func (u *URLs) DirectoryInfoURL(token string) string {
	q := url.Values{}
	q.Set("action", "info")
	q.Set("page_token", token)
	if u.pageSize > 0 {
		q.Set("page_size", strconv.Itoa(u.pageSize))
	}
	return u.resolve(u.loc.Directory(), q)
}

// ImageURL returns the full-size image URL.
func (u *URLs) ImageURL(relativePath string) string {
	return u.resolve(relativePath, nil)
}

// ImageThumbnailURL returns the URL of a server-rendered thumbnail.
func (u *URLs) ImageThumbnailURL(relativePath string, size int) string {
	q := url.Values{}
	q.Set("size", strconv.Itoa(size))
	return u.resolve(relativePath, q)
}

func (u *URLs) resolve(relativePath string, query url.Values) string {
	base := u.loc.Base()
	out := url.URL{
		Scheme: base.Scheme,
		Host:   base.Host,
		Path:   path.Join("/", base.Path, relativePath),
	}
	if query != nil {
		out.RawQuery = query.Encode()
	}
	return out.String()
}
