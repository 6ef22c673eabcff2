package poller

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/zytang71/Discord-Bot-With-Vibe-Coding/internal/feed"
	"github.com/zytang71/Discord-Bot-With-Vibe-Coding/internal/youtube"
)

type fakeFetcher struct {
	videos map[string]*youtube.Video
	errs   map[string]error
	calls  int
}

func (f *fakeFetcher) LatestVideo(ctx context.Context, channelID string) (*youtube.Video, error) {
	f.calls++
	if err := f.errs[channelID]; err != nil {
		return nil, err
	}
	return f.videos[channelID], nil
}

type sentMessage struct {
	channelID string
	content   string
}

type fakeNotifier struct {
	sent []sentMessage
	err  error
}

func (n *fakeNotifier) Notify(channelID, content string) error {
	n.sent = append(n.sent, sentMessage{channelID, content})
	return n.err
}

func newTestPoller(fetcher Fetcher, notifier Notifier) (*Poller, *feed.Store) {
	store := feed.NewStore()
	return New(store, fetcher, notifier, time.Minute), store
}

func TestPollNoChangeNoNotification(t *testing.T) {
	fetcher := &fakeFetcher{videos: map[string]*youtube.Video{
		"yt1": {ID: "v1", Title: "Old"},
	}}
	notifier := &fakeNotifier{}
	p, store := newTestPoller(fetcher, notifier)
	store.Set("g1", feed.Subscription{ChannelID: "yt1", TargetID: "chan1", LastVideoID: "v1"})

	p.poll(context.Background())
	p.poll(context.Background())

	if len(notifier.sent) != 0 {
		t.Fatalf("expected no notifications for unchanged id, got %d", len(notifier.sent))
	}
}

func TestPollNewVideoNotifiesOnce(t *testing.T) {
	fetcher := &fakeFetcher{videos: map[string]*youtube.Video{
		"yt1": {ID: "v2", Title: "Fresh Upload"},
	}}
	notifier := &fakeNotifier{}
	p, store := newTestPoller(fetcher, notifier)
	store.Set("g1", feed.Subscription{ChannelID: "yt1", TargetID: "chan1", LastVideoID: "v1"})

	p.poll(context.Background())

	if len(notifier.sent) != 1 {
		t.Fatalf("expected exactly one notification, got %d", len(notifier.sent))
	}
	msg := notifier.sent[0]
	if msg.channelID != "chan1" {
		t.Fatalf("notification sent to %q, want chan1", msg.channelID)
	}
	wantContent := "New video out: Fresh Upload\nhttps://www.youtube.com/watch?v=v2"
	if msg.content != wantContent {
		t.Fatalf("unexpected content:\n got %q\nwant %q", msg.content, wantContent)
	}
	if got := store.List("g1")[0].LastVideoID; got != "v2" {
		t.Fatalf("last video not updated, got %q", got)
	}

	// The same id again is a no-op.
	p.poll(context.Background())
	if len(notifier.sent) != 1 {
		t.Fatalf("expected no repeat notification, got %d", len(notifier.sent))
	}
}

func TestPollFailureIsolation(t *testing.T) {
	fetcher := &fakeFetcher{
		videos: map[string]*youtube.Video{
			"yt-good": {ID: "v2", Title: "Works"},
		},
		errs: map[string]error{
			"yt-bad": errors.New("connection reset"),
		},
	}
	notifier := &fakeNotifier{}
	p, store := newTestPoller(fetcher, notifier)
	store.Set("g1", feed.Subscription{ChannelID: "yt-bad", TargetID: "chan1", LastVideoID: "v1"})
	store.Set("g1", feed.Subscription{ChannelID: "yt-good", TargetID: "chan2", LastVideoID: "v1"})

	p.poll(context.Background())

	if fetcher.calls != 2 {
		t.Fatalf("expected both pairs checked, got %d calls", fetcher.calls)
	}
	if len(notifier.sent) != 1 || notifier.sent[0].channelID != "chan2" {
		t.Fatalf("expected one notification for the healthy pair, got %+v", notifier.sent)
	}
}

func TestPollNoResultLeavesStateAlone(t *testing.T) {
	fetcher := &fakeFetcher{} // every fetch yields nil video
	notifier := &fakeNotifier{}
	p, store := newTestPoller(fetcher, notifier)
	store.Set("g1", feed.Subscription{ChannelID: "yt1", TargetID: "chan1", LastVideoID: "v1"})

	p.poll(context.Background())

	if len(notifier.sent) != 0 {
		t.Fatalf("expected no notifications, got %d", len(notifier.sent))
	}
	if got := store.List("g1")[0].LastVideoID; got != "v1" {
		t.Fatalf("no-result fetch changed last video: %q", got)
	}
}

func TestPollNotificationFailureStillAdvances(t *testing.T) {
	fetcher := &fakeFetcher{videos: map[string]*youtube.Video{
		"yt1": {ID: "v2", Title: "Fresh"},
	}}
	notifier := &fakeNotifier{err: errors.New("missing permissions")}
	p, store := newTestPoller(fetcher, notifier)
	store.Set("g1", feed.Subscription{ChannelID: "yt1", TargetID: "chan1", LastVideoID: "v1"})

	p.poll(context.Background())

	if got := store.List("g1")[0].LastVideoID; got != "v2" {
		t.Fatalf("failed notification should not block dedup, got %q", got)
	}
}

func TestStartStop(t *testing.T) {
	fetcher := &fakeFetcher{}
	p, _ := newTestPoller(fetcher, &fakeNotifier{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go p.Start(ctx)

	// Stop must return promptly once the loop observes the signal.
	done := make(chan struct{})
	go func() {
		p.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return")
	}
}
