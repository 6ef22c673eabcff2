// Package tenor looks up GIFs. With an API key it searches Tenor; without
// one (or with no results) it falls back to a random cat GIF from cataas,
// which needs no credentials.
package tenor

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"
)

const (
	defaultSearchURL   = "https://tenor.googleapis.com/v2/search"
	defaultFallbackURL = "https://cataas.com/cat/gif"
)

// Rand supplies the result pick. *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Client is the GIF lookup client.
type Client struct {
	apiKey     string
	httpClient *http.Client

	mu  sync.Mutex
	rng Rand

	searchURL   string
	fallbackURL string
}

// NewClient creates a client. An empty apiKey disables Tenor search and
// only the fallback endpoint is used.
func NewClient(apiKey string, rng Rand) *Client {
	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
		rng:         rng,
		searchURL:   defaultSearchURL,
		fallbackURL: defaultFallbackURL,
	}
}

type searchResponse struct {
	Results []searchResult `json:"results"`
}

type searchResult struct {
	ItemURL      string                 `json:"itemurl"`
	MediaFormats map[string]mediaFormat `json:"media_formats"`
}

type mediaFormat struct {
	URL string `json:"url"`
}

// Search returns a GIF URL for the query, or "" when nothing was found.
// Tenor failures degrade to the fallback; only a fallback transport
// failure surfaces as an error.
func (c *Client) Search(ctx context.Context, query string) (string, error) {
	if c.apiKey != "" {
		if gifURL := c.searchTenor(ctx, query); gifURL != "" {
			return gifURL, nil
		}
	}
	return c.fallback(ctx)
}

func (c *Client) searchTenor(ctx context.Context, query string) string {
	params := url.Values{}
	params.Set("q", query)
	params.Set("key", c.apiKey)
	params.Set("limit", "10")
	params.Set("contentfilter", "medium")
	params.Set("media_filter", "gif")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.searchURL+"?"+params.Encode(), nil)
	if err != nil {
		return ""
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return ""
	}

	var data searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return ""
	}
	if len(data.Results) == 0 {
		return ""
	}

	picked := data.Results[c.pick(len(data.Results))]
	if gif, ok := picked.MediaFormats["gif"]; ok && gif.URL != "" {
		return gif.URL
	}
	return picked.ItemURL
}

func (c *Client) fallback(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.fallbackURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fallback request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", nil
	}
	// The endpoint redirects to the actual image; report where we ended up.
	return resp.Request.URL.String(), nil
}

// pick serializes access to the random source; GIF lookups can run
// concurrently across commands.
func (c *Client) pick(n int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rng.Intn(n)
}
