package tenor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type fixedRand struct{ n int }

func (r fixedRand) Intn(n int) int {
	if r.n >= n {
		return n - 1
	}
	return r.n
}

func newTestClient(apiKey string, search, fallback http.HandlerFunc) (*Client, func()) {
	searchSrv := httptest.NewServer(search)
	fallbackSrv := httptest.NewServer(fallback)
	c := &Client{
		apiKey:      apiKey,
		httpClient:  &http.Client{Timeout: 5 * time.Second},
		rng:         fixedRand{1},
		searchURL:   searchSrv.URL,
		fallbackURL: fallbackSrv.URL,
	}
	return c, func() {
		searchSrv.Close()
		fallbackSrv.Close()
	}
}

func TestSearchPicksTenorResult(t *testing.T) {
	search := func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "happy cat" {
			t.Errorf("expected query 'happy cat', got %q", got)
		}
		w.Write([]byte(`{"results":[
			{"itemurl":"https://tenor.example/item0","media_formats":{"gif":{"url":"https://tenor.example/gif0"}}},
			{"itemurl":"https://tenor.example/item1","media_formats":{"gif":{"url":"https://tenor.example/gif1"}}}
		]}`))
	}
	fallback := func(w http.ResponseWriter, r *http.Request) {
		t.Error("fallback should not be hit when Tenor has results")
	}
	c, done := newTestClient("key", search, fallback)
	defer done()

	gifURL, err := c.Search(context.Background(), "happy cat")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if gifURL != "https://tenor.example/gif1" {
		t.Fatalf("unexpected pick: %q", gifURL)
	}
}

func TestSearchUsesItemURLWithoutGifFormat(t *testing.T) {
	search := func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[{"itemurl":"https://tenor.example/item0","media_formats":{}}]}`))
	}
	c, done := newTestClient("key", search, func(w http.ResponseWriter, r *http.Request) {})
	defer done()

	gifURL, err := c.Search(context.Background(), "cat")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if gifURL != "https://tenor.example/item0" {
		t.Fatalf("expected itemurl fallback, got %q", gifURL)
	}
}

func TestSearchFallsBackWithoutKey(t *testing.T) {
	search := func(w http.ResponseWriter, r *http.Request) {
		t.Error("Tenor should not be queried without an API key")
	}
	fallback := func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("gif bytes"))
	}
	c, done := newTestClient("", search, fallback)
	defer done()

	gifURL, err := c.Search(context.Background(), "cat")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if gifURL != c.fallbackURL {
		t.Fatalf("expected fallback URL %q, got %q", c.fallbackURL, gifURL)
	}
}

func TestSearchFallsBackOnEmptyResults(t *testing.T) {
	search := func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[]}`))
	}
	fallback := func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("gif bytes"))
	}
	c, done := newTestClient("key", search, fallback)
	defer done()

	gifURL, err := c.Search(context.Background(), "nothing matches this")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if gifURL != c.fallbackURL {
		t.Fatalf("expected fallback URL, got %q", gifURL)
	}
}

func TestSearchReturnsEmptyWhenAllMiss(t *testing.T) {
	miss := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}
	c, done := newTestClient("key", miss, miss)
	defer done()

	gifURL, err := c.Search(context.Background(), "cat")
	if err != nil {
		t.Fatalf("expected soft miss, got error: %v", err)
	}
	if gifURL != "" {
		t.Fatalf("expected empty result, got %q", gifURL)
	}
}
