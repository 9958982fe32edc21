package gallery

import (
	"reflect"
	"testing"

	"github.com/mmcdole/openview/internal/domain"
)

func TestFragments(t *testing.T) {
	tests := []struct {
		dir  string
		want []domain.Fragment
	}{
		{"", []domain.Fragment{}},
		{"/", []domain.Fragment{}},
		{"2017", []domain.Fragment{{Name: "2017", URL: "http://example.com/2017"}}},
		{"/2017/summer/", []domain.Fragment{
			{Name: "2017", URL: "http://example.com/2017"},
			{Name: "summer", URL: "http://example.com/2017/summer"},
		}},
	}

	for _, tt := range tests {
		f := NewFragments(NewURLs(mustLocation(t, "http://example.com", tt.dir)))
		got := f.Fragments()
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Fragments() for %q = %+v, want %+v", tt.dir, got, tt.want)
		}
	}
}

func TestFragments_Home(t *testing.T) {
	f := NewFragments(NewURLs(mustLocation(t, "http://example.com", "a/b")))

	home := f.Home()
	if home.Name != "Home" || home.URL != "http://example.com/" {
		t.Errorf("Home() = %+v", home)
	}

	want := []string{"", "a", "a/b"}
	if got := f.Path(); !reflect.DeepEqual(got, want) {
		t.Errorf("Path() = %v, want %v", got, want)
	}
}
