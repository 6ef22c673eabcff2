// Package feed keeps the per-guild YouTube channel subscriptions. State is
// memory-resident only and lost on restart.
package feed

import "sync"

// Subscription tracks one YouTube channel for one guild.
type Subscription struct {
	ChannelID   string // YouTube channel ID
	TargetID    string // Discord text channel to announce in
	LastVideoID string // last video announced (or seen at add time)
}

// Store is the in-memory subscription registry, keyed guild ID then
// YouTube channel ID.
type Store struct {
	mu   sync.Mutex
	subs map[string]map[string]Subscription
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{subs: make(map[string]map[string]Subscription)}
}

// Set adds or replaces a subscription for a guild.
func (s *Store) Set(guildID string, sub Subscription) {
	s.mu.Lock()
	defer s.mu.Unlock()

	guild, ok := s.subs[guildID]
	if !ok {
		guild = make(map[string]Subscription)
		s.subs[guildID] = guild
	}
	guild[sub.ChannelID] = sub
}

// Remove deletes a subscription and reports whether it existed.
func (s *Store) Remove(guildID, channelID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	guild, ok := s.subs[guildID]
	if !ok {
		return false
	}
	if _, ok := guild[channelID]; !ok {
		return false
	}
	delete(guild, channelID)
	return true
}

// List returns all subscriptions for a guild.
func (s *Store) List(guildID string) []Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()

	guild := s.subs[guildID]
	out := make([]Subscription, 0, len(guild))
	for _, sub := range guild {
		out = append(out, sub)
	}
	return out
}

// Snapshot returns a copy of every subscription grouped by guild, for the
// poller to walk without holding the lock.
func (s *Store) Snapshot() map[string][]Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string][]Subscription, len(s.subs))
	for guildID, guild := range s.subs {
		for _, sub := range guild {
			out[guildID] = append(out[guildID], sub)
		}
	}
	return out
}

// SetLastVideo records the most recently announced video for a
// subscription. A subscription removed since the snapshot is left alone.
func (s *Store) SetLastVideo(guildID, channelID, videoID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	guild, ok := s.subs[guildID]
	if !ok {
		return
	}
	sub, ok := guild[channelID]
	if !ok {
		return
	}
	sub.LastVideoID = videoID
	guild[channelID] = sub
}
