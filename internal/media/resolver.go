// Package media resolves a link or search query to a streamable audio URL
// via yt-dlp. The bot never downloads media itself; ffmpeg streams straight
// from the resolved URL.
package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
)

// Track is a resolved, playable audio source.
type Track struct {
	Title     string
	StreamURL string
}

// Resolver shells out to yt-dlp for extraction.
type Resolver struct {
	ytdlpPath string
}

// NewResolver creates a resolver using the given yt-dlp binary.
func NewResolver(ytdlpPath string) *Resolver {
	return &Resolver{ytdlpPath: ytdlpPath}
}

// Resolve turns a URL or free-text query into a Track. Free text is routed
// through a single-result YouTube search.
func (r *Resolver) Resolve(ctx context.Context, query string) (*Track, error) {
	cmd := exec.CommandContext(ctx, r.ytdlpPath,
		"-j",
		"--no-playlist",
		"-f", "bestaudio/best",
		searchTarget(query),
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("yt-dlp failed: %s", firstLine(msg))
		}
		return nil, fmt.Errorf("yt-dlp failed: %w", err)
	}

	return parseTrack(out)
}

// searchTarget passes URLs through untouched and wraps anything else in a
// single-result search.
func searchTarget(query string) string {
	if strings.HasPrefix(query, "http") {
		return query
	}
	return "ytsearch1:" + query
}

func parseTrack(out []byte) (*Track, error) {
	var info struct {
		Title string `json:"title"`
		URL   string `json:"url"`
	}
	// -j emits one JSON document per entry; with --no-playlist and
	// ytsearch1 there is exactly one.
	if err := json.Unmarshal([]byte(firstLine(string(bytes.TrimSpace(out)))), &info); err != nil {
		return nil, fmt.Errorf("failed to parse yt-dlp output: %w", err)
	}
	if info.URL == "" {
		return nil, fmt.Errorf("yt-dlp returned no playable URL")
	}
	if info.Title == "" {
		info.Title = "Untitled"
	}
	return &Track{Title: info.Title, StreamURL: info.URL}, nil
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx]
	}
	return s
}
