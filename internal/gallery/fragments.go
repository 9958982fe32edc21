package gallery

import (
	"strings"

	"github.com/mmcdole/openview/internal/domain"
)

// HomeName is the label of the root breadcrumb.
const HomeName = "Home"

// Fragments derives breadcrumbs from the current location.
type Fragments struct {
	urls *URLs
}

// NewFragments creates a breadcrumb builder over urls.
func NewFragments(urls *URLs) *Fragments {
	return &Fragments{urls: urls}
}

// Fragments returns one breadcrumb per path segment of the current
// directory. Each URL points at the directory up to and including that
// segment. Empty segments (leading, trailing or doubled slashes) are skipped.
func (f *Fragments) Fragments() []domain.Fragment {
	var names []string
	for _, name := range strings.Split(f.urls.Directory(), "/") {
		if name != "" {
			names = append(names, name)
		}
	}

	fragments := make([]domain.Fragment, len(names))
	for i, name := range names {
		fragments[i] = domain.Fragment{
			Name: name,
			URL:  f.urls.DirectoryURL(strings.Join(names[:i+1], "/")),
		}
	}
	return fragments
}

// Home returns the breadcrumb for the gallery root.
func (f *Fragments) Home() domain.Fragment {
	return domain.Fragment{Name: HomeName, URL: f.urls.DirectoryURL("")}
}

// Path returns the relative directory path of each breadcrumb, Home first.
func (f *Fragments) Path() []string {
	paths := []string{""}
	var acc []string
	for _, name := range strings.Split(f.urls.Directory(), "/") {
		if name == "" {
			continue
		}
		acc = append(acc, name)
		paths = append(paths, strings.Join(acc, "/"))
	}
	return paths
}
