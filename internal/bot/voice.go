package bot

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/jonas747/dca"
	"github.com/zytang71/Discord-Bot-With-Vibe-Coding/internal/media"
)

// Typed playback failures; handlers map these to distinct user messages.
var (
	ErrNoVoiceChannel = errors.New("user is not in a voice channel")
	ErrVoiceConnect   = errors.New("could not connect to voice channel")
	ErrPlayback       = errors.New("audio playback failed to start")
)

// playback is one guild's in-flight audio stream.
type playback struct {
	encode *dca.EncodeSession
	voice  *discordgo.VoiceConnection
}

// voiceChannelOf finds the voice channel a guild member currently sits in.
func (b *Bot) voiceChannelOf(guildID, userID string) (string, error) {
	guild, err := b.session.State.Guild(guildID)
	if err != nil {
		return "", ErrNoVoiceChannel
	}
	for _, vs := range guild.VoiceStates {
		if vs.UserID == userID {
			return vs.ChannelID, nil
		}
	}
	return "", ErrNoVoiceChannel
}

// play joins the voice channel and streams the track. Any track already
// playing in the guild is stopped first. Completion is observed on the
// stream's done channel and logged.
func (b *Bot) play(guildID, voiceChannelID string, track *media.Track) error {
	b.stopPlayback(guildID)

	vc, err := b.session.ChannelVoiceJoin(guildID, voiceChannelID, false, true)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrVoiceConnect, err)
	}

	// ffmpeg streams straight from the resolved URL; nothing is downloaded
	opts := *dca.StdEncodeOptions
	opts.RawOutput = true
	opts.Bitrate = 96

	encode, err := dca.EncodeFile(track.StreamURL, &opts)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPlayback, err)
	}

	b.mu.Lock()
	b.playing[guildID] = &playback{encode: encode, voice: vc}
	b.mu.Unlock()

	vc.Speaking(true)
	done := make(chan error)
	dca.NewStream(encode, vc, done)

	go func() {
		streamErr := <-done
		if streamErr != nil && !errors.Is(streamErr, io.EOF) {
			slog.Error("Playback ended with error", "guild", guildID, "title", track.Title, "error", streamErr)
		} else {
			slog.Info("Playback finished", "guild", guildID, "title", track.Title)
		}
		vc.Speaking(false)
		encode.Cleanup()

		b.mu.Lock()
		if cur, ok := b.playing[guildID]; ok && cur.encode == encode {
			delete(b.playing, guildID)
		}
		b.mu.Unlock()
	}()

	return nil
}

// stopPlayback kills the guild's current stream, if any. Cleanup tears
// down the encoder, which unblocks the stream goroutine.
func (b *Bot) stopPlayback(guildID string) {
	b.mu.Lock()
	cur := b.playing[guildID]
	delete(b.playing, guildID)
	b.mu.Unlock()

	if cur != nil {
		cur.encode.Cleanup()
	}
}

// stopAllPlayback stops every guild's stream during shutdown.
func (b *Bot) stopAllPlayback() {
	b.mu.Lock()
	all := make([]*playback, 0, len(b.playing))
	for guildID, cur := range b.playing {
		all = append(all, cur)
		delete(b.playing, guildID)
	}
	b.mu.Unlock()

	for _, cur := range all {
		cur.encode.Cleanup()
	}
}
