package feed

import "testing"

func TestSetAndList(t *testing.T) {
	s := NewStore()
	s.Set("g1", Subscription{ChannelID: "yt1", TargetID: "chan1", LastVideoID: "v1"})
	s.Set("g1", Subscription{ChannelID: "yt2", TargetID: "chan2", LastVideoID: "v2"})
	s.Set("g2", Subscription{ChannelID: "yt1", TargetID: "chan3", LastVideoID: "v1"})

	if got := s.List("g1"); len(got) != 2 {
		t.Fatalf("expected 2 subscriptions for g1, got %d", len(got))
	}
	if got := s.List("g3"); len(got) != 0 {
		t.Fatalf("expected no subscriptions for g3, got %d", len(got))
	}
}

func TestSetOverwritesAndReseeds(t *testing.T) {
	s := NewStore()
	s.Set("g1", Subscription{ChannelID: "yt1", TargetID: "chan1", LastVideoID: "v1"})
	s.Set("g1", Subscription{ChannelID: "yt1", TargetID: "chan9", LastVideoID: "v5"})

	subs := s.List("g1")
	if len(subs) != 1 {
		t.Fatalf("expected overwrite, got %d subscriptions", len(subs))
	}
	if subs[0].TargetID != "chan9" || subs[0].LastVideoID != "v5" {
		t.Fatalf("overwrite did not take: %+v", subs[0])
	}
}

func TestRemove(t *testing.T) {
	s := NewStore()
	s.Set("g1", Subscription{ChannelID: "yt1", TargetID: "chan1"})

	if !s.Remove("g1", "yt1") {
		t.Fatal("expected removal of existing subscription")
	}
	if s.Remove("g1", "yt1") {
		t.Fatal("second removal should report absence")
	}
	if s.Remove("g2", "yt1") {
		t.Fatal("unknown guild should report absence")
	}
}

func TestSetLastVideo(t *testing.T) {
	s := NewStore()
	s.Set("g1", Subscription{ChannelID: "yt1", TargetID: "chan1", LastVideoID: "v1"})

	s.SetLastVideo("g1", "yt1", "v2")
	if got := s.List("g1")[0].LastVideoID; got != "v2" {
		t.Fatalf("expected last video v2, got %q", got)
	}

	// Updating a removed subscription must not resurrect it.
	s.Remove("g1", "yt1")
	s.SetLastVideo("g1", "yt1", "v3")
	if got := s.List("g1"); len(got) != 0 {
		t.Fatalf("removed subscription resurrected: %+v", got)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	s := NewStore()
	s.Set("g1", Subscription{ChannelID: "yt1", TargetID: "chan1", LastVideoID: "v1"})

	snap := s.Snapshot()
	if len(snap["g1"]) != 1 {
		t.Fatalf("unexpected snapshot: %v", snap)
	}

	snap["g1"][0].LastVideoID = "mutated"
	if got := s.List("g1")[0].LastVideoID; got != "v1" {
		t.Fatalf("snapshot mutation leaked into store: %q", got)
	}
}
