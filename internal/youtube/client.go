// Package youtube fetches a channel's upload feed and extracts the newest
// entry. It only needs the public Atom feed, no API key.
package youtube

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const defaultFeedBaseURL = "https://www.youtube.com/feeds/videos.xml"

// Video is the newest upload of a channel.
type Video struct {
	ID    string
	Title string
}

// Client fetches YouTube channel upload feeds.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a feed client with a bounded request timeout so one
// slow feed cannot stall the poll tick.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
		baseURL: defaultFeedBaseURL,
	}
}

type atomFeed struct {
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	VideoID string `xml:"videoId"`
	Title   string `xml:"title"`
}

// LatestVideo returns the first entry of the channel's upload feed. A
// non-success status, malformed document, or missing id/title all yield a
// nil video without error; only transport failures return an error.
func (c *Client) LatestVideo(ctx context.Context, channelID string) (*Video, error) {
	feedURL := fmt.Sprintf("%s?channel_id=%s", c.baseURL, url.QueryEscape(channelID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("feed request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, nil
	}

	var feed atomFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, nil
	}
	if len(feed.Entries) == 0 {
		return nil, nil
	}

	entry := feed.Entries[0]
	if entry.VideoID == "" || entry.Title == "" {
		return nil, nil
	}
	return &Video{ID: entry.VideoID, Title: entry.Title}, nil
}

// WatchURL returns the canonical watch page for a video id.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}
