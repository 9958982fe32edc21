package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mmcdole/openview/internal/gallery"
	"github.com/mmcdole/openview/internal/log"
	"github.com/mmcdole/openview/internal/server"
)

// newGalleryServer serves a two-page root listing.
func newGalleryServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("action") != "info" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("page_token") {
		case "":
			w.Write([]byte(`{"directories":[{"name":"trips","relative_path":"trips"}],
				"images":[{"name":"beach.jpg","relative_path":"beach.jpg","width":800,"height":600}],
				"next_page_token":"p2"}`))
		case "p2":
			w.Write([]byte(`{"directories":[],
				"images":[{"name":"forest.jpg","relative_path":"forest.jpg","width":600,"height":800}],
				"next_page_token":null}`))
		default:
			http.Error(w, "bad token", http.StatusBadRequest)
		}
	}))
}

func TestRunList(t *testing.T) {
	srv := newGalleryServer(t)
	defer srv.Close()

	loc, err := gallery.NewLocation(srv.URL, "")
	if err != nil {
		t.Fatalf("NewLocation: %v", err)
	}
	client := server.NewClient(log.NullLogger())

	var out bytes.Buffer
	if err := runList(context.Background(), &out, loc, client, 0, "", log.NullLogger()); err != nil {
		t.Fatalf("runList: %v", err)
	}

	want := strings.Join([]string{
		"d\ttrips/\t" + srv.URL + "/trips",
		"i\tbeach.jpg\t" + srv.URL + "/beach.jpg",
		"i\tforest.jpg\t" + srv.URL + "/forest.jpg",
	}, "\n") + "\n"
	if got := out.String(); got != want {
		t.Errorf("output =\n%s\nwant\n%s", got, want)
	}
}

func TestRunList_Filter(t *testing.T) {
	srv := newGalleryServer(t)
	defer srv.Close()

	loc, err := gallery.NewLocation(srv.URL, "")
	if err != nil {
		t.Fatalf("NewLocation: %v", err)
	}

	var out bytes.Buffer
	if err := runList(context.Background(), &out, loc, server.NewClient(log.NullLogger()), 0, "frst", log.NullLogger()); err != nil {
		t.Fatalf("runList: %v", err)
	}

	want := "i\tforest.jpg\t" + srv.URL + "/forest.jpg\n"
	if got := out.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestRunList_Failure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	loc, err := gallery.NewLocation(srv.URL, "photos")
	if err != nil {
		t.Fatalf("NewLocation: %v", err)
	}

	var out bytes.Buffer
	err = runList(context.Background(), &out, loc, server.NewClient(log.NullLogger()), 0, "", log.NullLogger())
	if err == nil {
		t.Fatal("runList succeeded against a failing server")
	}
	if !strings.Contains(err.Error(), gallery.RetryMessage) || !strings.Contains(err.Error(), "/photos") {
		t.Errorf("error = %v, want the directory and retry message", err)
	}
	if out.Len() != 0 {
		t.Errorf("output = %q, want none", out.String())
	}
}
