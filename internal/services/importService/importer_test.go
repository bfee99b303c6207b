package importservice

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newGitHub(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	var base string

	mux.HandleFunc("/o/r/raw/main/a.py", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "nbview-test" {
			http.Error(w, "missing user agent", http.StatusForbidden)
			return
		}
		fmt.Fprint(w, "print(1)")
	})
	mux.HandleFunc("/repos/o/r/contents/nb", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("ref") != "main" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprintf(w, `[
			{"name": "x.ipynb", "path": "nb/x.ipynb", "type": "file", "download_url": "%[1]s/dl/x.ipynb"},
			{"name": "y.txt", "path": "nb/y.txt", "type": "file", "download_url": "%[1]s/dl/y.txt"},
			{"name": "sub", "path": "nb/sub", "type": "dir", "download_url": null},
			{"name": "z.md", "path": "nb/z.md", "type": "file", "download_url": "%[1]s/dl/z.md"},
			{"name": "gone.py", "path": "nb/gone.py", "type": "file", "download_url": "%[1]s/dl/gone.py"}
		]`, base)
	})
	mux.HandleFunc("/dl/x.ipynb", func(w http.ResponseWriter, r *http.Request) { fmt.Fprint(w, `{"cells": []}`) })
	mux.HandleFunc("/dl/z.md", func(w http.ResponseWriter, r *http.Request) { fmt.Fprint(w, "# z") })
	mux.HandleFunc("/dl/y.txt", func(w http.ResponseWriter, r *http.Request) {
		t.Error("non-importable file was fetched")
	})

	srv := httptest.NewServer(mux)
	base = srv.URL
	t.Cleanup(srv.Close)
	return srv
}

func newTestImporter(srv *httptest.Server) *Importer {
	return NewImporter(NewHTTPFetcher(5*time.Second, "nbview-test"), srv.URL, nil)
}

func TestResolveSingleFile(t *testing.T) {
	srv := newGitHub(t)
	items, err := newTestImporter(srv).Resolve(context.Background(), srv.URL+"/o/r/blob/main/a.py")
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].Name != "a.py" || items[0].Content != "print(1)" {
		t.Fatalf("items = %+v", items)
	}
}

func TestResolveDirectoryFilters(t *testing.T) {
	srv := newGitHub(t)
	items, err := newTestImporter(srv).Resolve(context.Background(), srv.URL+"/o/r/tree/main/nb")
	if err != nil {
		t.Fatal(err)
	}

	var names []string
	for _, it := range items {
		names = append(names, it.Name)
	}
	if fmt.Sprint(names) != "[x.ipynb z.md gone.py]" {
		t.Fatalf("names = %v", names)
	}
	if items[0].Content != `{"cells": []}` || items[1].Content != "# z" {
		t.Errorf("contents = %q, %q", items[0].Content, items[1].Content)
	}

	var fe *FetchError
	if !errors.As(items[2].Err, &fe) || fe.Status != http.StatusNotFound {
		t.Errorf("gone.py err = %v", items[2].Err)
	}
	if !errors.Is(items[2].Err, ErrFetchFailed) {
		t.Error("FetchError should match ErrFetchFailed")
	}
}

func TestResolveErrors(t *testing.T) {
	srv := newGitHub(t)
	im := newTestImporter(srv)

	if _, err := im.Resolve(context.Background(), "https://github.com/o/r"); !errors.Is(err, ErrInvalidURLFormat) {
		t.Errorf("expected ErrInvalidURLFormat, got %v", err)
	}
	if _, err := im.Resolve(context.Background(), srv.URL+"/o/r/blob/main/missing.py"); !errors.Is(err, ErrFetchFailed) {
		t.Errorf("expected ErrFetchFailed for missing file, got %v", err)
	}
	if _, err := im.Resolve(context.Background(), srv.URL+"/o/r/tree/dev/nb"); !errors.Is(err, ErrFetchFailed) {
		t.Errorf("expected ErrFetchFailed for missing listing, got %v", err)
	}
}

func TestResolveBadListing(t *testing.T) {
	f := FetcherFunc(func(ctx context.Context, url string) ([]byte, error) {
		return []byte(`{"message": "this is a file"}`), nil
	})
	_, err := NewImporter(f, "", nil).Resolve(context.Background(), "https://github.com/o/r/tree/main/a.py")
	if !errors.Is(err, ErrFetchFailed) {
		t.Errorf("expected ErrFetchFailed, got %v", err)
	}
}
