package poller

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/zytang71/Discord-Bot-With-Vibe-Coding/internal/feed"
	"github.com/zytang71/Discord-Bot-With-Vibe-Coding/internal/youtube"
)

// Fetcher provides the latest upload of a YouTube channel. A nil video
// with nil error means "no result right now".
type Fetcher interface {
	LatestVideo(ctx context.Context, channelID string) (*youtube.Video, error)
}

// Notifier delivers one announcement to a Discord text channel.
type Notifier interface {
	Notify(channelID, content string) error
}

// Poller periodically checks every feed subscription for new uploads
type Poller struct {
	store    *feed.Store
	fetcher  Fetcher
	notifier Notifier
	interval time.Duration

	stopChan chan struct{}
	wg       sync.WaitGroup
}

// New creates a new Poller
func New(store *feed.Store, fetcher Fetcher, notifier Notifier, interval time.Duration) *Poller {
	return &Poller{
		store:    store,
		fetcher:  fetcher,
		notifier: notifier,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

// Start begins the polling loop. Ticks run sequentially, so a slow poll
// delays the next tick rather than overlapping it.
func (p *Poller) Start(ctx context.Context) {
	slog.Info("Starting feed poller", "interval", p.interval)

	p.wg.Add(1)
	defer p.wg.Done()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	// Initial poll
	p.poll(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Feed poller stopped (context cancelled)")
			return
		case <-p.stopChan:
			slog.Info("Feed poller stopped")
			return
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

// Stop signals the poller to stop
func (p *Poller) Stop() {
	close(p.stopChan)
	p.wg.Wait()
}

// poll checks every (guild, subscription) pair once
func (p *Poller) poll(ctx context.Context) {
	subs := p.store.Snapshot()
	if len(subs) == 0 {
		slog.Debug("No feed subscriptions to poll")
		return
	}

	for guildID, guildSubs := range subs {
		for _, sub := range guildSubs {
			select {
			case <-ctx.Done():
				return
			default:
				p.checkSubscription(ctx, guildID, sub)
			}
		}
	}
}

// checkSubscription fetches one channel's feed and announces a changed
// latest video. Failures are logged and skipped; the next tick retries.
func (p *Poller) checkSubscription(ctx context.Context, guildID string, sub feed.Subscription) {
	video, err := p.fetcher.LatestVideo(ctx, sub.ChannelID)
	if err != nil {
		slog.Error("Failed to fetch feed", "channel", sub.ChannelID, "error", err)
		return
	}
	if video == nil {
		slog.Warn("Feed yielded no video", "channel", sub.ChannelID)
		return
	}

	if video.ID == sub.LastVideoID {
		slog.Debug("No new video", "channel", sub.ChannelID)
		return
	}

	slog.Info("New video detected", "channel", sub.ChannelID, "video", video.ID)

	// Record first so a notification failure cannot repeat on later ticks.
	p.store.SetLastVideo(guildID, sub.ChannelID, video.ID)

	content := fmt.Sprintf("New video out: %s\n%s", video.Title, youtube.WatchURL(video.ID))
	if err := p.notifier.Notify(sub.TargetID, content); err != nil {
		slog.Error("Failed to send notification", "guild", guildID, "channel", sub.ChannelID, "error", err)
	}
}
