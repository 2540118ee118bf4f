package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
)

func newTestClient(ts *httptest.Server) *Client {
	return NewClient(ts.URL+"/api/search", 2*time.Second, 0)
}

func TestSearchRequestShape(t *testing.T) {
	var gotQuery, gotAccept, gotPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("q")
		gotAccept = r.Header.Get("Accept")
		w.Write([]byte(`{"q":"blue widget","results":{}}`))
	}))
	defer ts.Close()

	c := newTestClient(ts)
	if _, err := c.Search(context.Background(), "blue widget"); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if gotPath != "/api/search" {
		t.Errorf("path = %q", gotPath)
	}
	if gotQuery != "blue widget" {
		t.Errorf("q = %q, want %q", gotQuery, "blue widget")
	}
	if gotAccept != "application/json" {
		t.Errorf("Accept = %q", gotAccept)
	}
}

func TestSearchPreservesEndpointParams(t *testing.T) {
	var gotRaw url.Values
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRaw = r.URL.Query()
		w.Write([]byte(`{"results":{}}`))
	}))
	defer ts.Close()

	c := NewClient(ts.URL+"/api/search?scope=all", 2*time.Second, 0)
	if _, err := c.Search(context.Background(), "bolt"); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if gotRaw.Get("scope") != "all" || gotRaw.Get("q") != "bolt" {
		t.Errorf("query params = %v", gotRaw)
	}
}

func TestSearchParsesGroups(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"q": "widget",
			"results": {
				"catalog":   [{"url": "/catalog/7", "title": "Blue Widget", "subtitle": "SKU 7"}],
				"purchases": [{"url": "/po/4", "title": "PO-4"}],
				"sales":     []
			}
		}`))
	}))
	defer ts.Close()

	c := newTestClient(ts)
	resp, err := c.Search(context.Background(), "widget")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got := len(resp.Group(GroupCatalog)); got != 1 {
		t.Errorf("catalog items = %d, want 1", got)
	}
	if it := resp.Group(GroupCatalog)[0]; it.Title != "Blue Widget" || it.Subtitle != "SKU 7" {
		t.Errorf("catalog item = %+v", it)
	}
	if got := len(resp.Group(GroupPurchases)); got != 1 {
		t.Errorf("purchases items = %d, want 1", got)
	}
	if resp.Empty() {
		t.Error("response should not be empty")
	}
	if resp.Total() != 2 {
		t.Errorf("total = %d, want 2", resp.Total())
	}
}

func TestSearchMissingResultsIsEmptyNotError(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no results key", `{"q": "x"}`},
		{"null results", `{"q": "x", "results": null}`},
		{"empty object", `{}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer ts.Close()

			resp, err := newTestClient(ts).Search(context.Background(), "xy")
			if err != nil {
				t.Fatalf("Search: %v", err)
			}
			if !resp.Empty() {
				t.Errorf("expected empty response, got %+v", resp)
			}
			if resp.Groups == nil {
				t.Error("Groups should be an empty map, not nil")
			}
		})
	}
}

func TestSearchErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantSub string
	}{
		{
			"server error",
			func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
			"500",
		},
		{
			"not found",
			func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "gone", http.StatusNotFound)
			},
			"404",
		},
		{
			"malformed body",
			func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"results": `))
			},
			"decode",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(tt.handler)
			defer ts.Close()

			_, err := newTestClient(ts).Search(context.Background(), "xy")
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error %q missing %q", err, tt.wantSub)
			}
		})
	}
}

func TestSearchHonorsContextCancellation(t *testing.T) {
	started := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	if _, err := newTestClient(ts).Search(ctx, "xy"); err == nil {
		t.Error("expected error after cancellation")
	}
}

func TestSearchUsesCache(t *testing.T) {
	hits := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(`{"results": {"catalog": [{"url": "/c/1", "title": "Hit"}]}}`))
	}))
	defer ts.Close()

	c := NewClient(ts.URL, 2*time.Second, 30*time.Second)
	for _, q := range []string{"widget", "widget", "  Widget "} {
		resp, err := c.Search(context.Background(), q)
		if err != nil {
			t.Fatalf("Search(%q): %v", q, err)
		}
		if resp.Total() != 1 {
			t.Errorf("Search(%q) total = %d", q, resp.Total())
		}
	}
	if hits != 1 {
		t.Errorf("backend hit %d times, want 1 (cache should absorb repeats)", hits)
	}
}
