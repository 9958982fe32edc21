package gallery

import (
	"testing"
	"time"

	"github.com/mmcdole/openview/internal/log"
)

func TestModel_ReadyFiresOnce(t *testing.T) {
	m := New(mustLocation(t, "http://example.com", ""), &fakeRepo{}, log.NullLogger(), Options{})

	calls := 0
	m.OnReady(func() { calls++ })

	select {
	case <-m.Ready():
		t.Fatal("ready before MarkReady")
	default:
	}

	m.MarkReady()
	m.MarkReady()

	select {
	case <-m.Ready():
	case <-time.After(time.Second):
		t.Fatal("Ready() not closed")
	}
	if calls != 1 {
		t.Errorf("callback ran %d times, want 1", calls)
	}

	late := 0
	m.OnReady(func() { late++ })
	if late != 1 {
		t.Errorf("late callback ran %d times, want 1", late)
	}
}

func TestModel_PageSizeOption(t *testing.T) {
	repo := &fakeRepo{}
	m := New(mustLocation(t, "http://example.com", "d"), repo, log.NullLogger(), Options{PageSize: 10})

	if got, want := m.URLs.DirectoryInfoURL(""), "http://example.com/d?action=info&page_size=10&page_token="; got != want {
		t.Errorf("DirectoryInfoURL = %q, want %q", got, want)
	}
}
