package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/zytang71/Discord-Bot-With-Vibe-Coding/internal/feed"
)

var jokes = []string{
	"I asked my computer if I could shut it down. It replied: Ctrl+Alt+Del, do it yourself.",
	"Why do programmers love nature? It's full of trees and roots.",
	"Engineer self-care: when life goes sideways, git revert.",
	"A program without bugs isn't necessarily good, but a program with tests sleeps better at night.",
	"One day 0 ran into 8 and said: nice belt!",
}

var rpgActionChoices = []string{
	"start", "help", "explore", "fight", "flee", "rest", "potion", "shop", "status",
}

var answerLabels = []string{"A", "B", "C", "D"}

func rpgChoices() []*discordgo.ApplicationCommandOptionChoice {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, len(rpgActionChoices))
	for i, action := range rpgActionChoices {
		choices[i] = &discordgo.ApplicationCommandOptionChoice{Name: action, Value: action}
	}
	return choices
}

func labelChoices() []*discordgo.ApplicationCommandOptionChoice {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, len(answerLabels))
	for i, label := range answerLabels {
		choices[i] = &discordgo.ApplicationCommandOptionChoice{Name: label, Value: label}
	}
	return choices
}

// Slash command definitions
func (b *Bot) getCommandDefinitions() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "joke",
			Description: "Get a random joke",
		},
		{
			Name:        "gif",
			Description: "Find a GIF for a prompt",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "prompt",
					Description: "What you want to see, e.g. happy cat",
					Required:    true,
				},
			},
		},
		{
			Name:        "play",
			Description: "Play music in your voice channel (link or search keywords)",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "query",
					Description: "A YouTube link, or keywords to search for",
					Required:    true,
				},
			},
		},
		{
			Name:        "rpg",
			Description: "A tiny text RPG",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "action",
					Description: "What to do",
					Required:    true,
					Choices:     rpgChoices(),
				},
			},
		},
		{
			Name:        "trivia",
			Description: "Casual trivia quiz",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "ask",
					Description: "Ask a new question",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "answer",
					Description: "Answer the current question",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "choice",
							Description: "Your answer",
							Required:    true,
							Choices:     labelChoices(),
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "score",
					Description: "Show this server's leaderboard (top 10)",
				},
			},
		},
		{
			Name:        "autofeed",
			Description: "Announce new YouTube uploads automatically",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "add",
					Description: "Track a YouTube channel",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "channel_id",
							Description: "The YouTube channel ID",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionChannel,
							Name:        "target",
							Description: "The text channel to announce in",
							Required:    true,
							ChannelTypes: []discordgo.ChannelType{
								discordgo.ChannelTypeGuildText,
							},
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "remove",
					Description: "Stop tracking a YouTube channel",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "channel_id",
							Description: "The YouTube channel ID",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "list",
					Description: "List tracked YouTube channels",
				},
			},
		},
	}
}

// registerCommands registers all slash commands with Discord
func (b *Bot) registerCommands() error {
	slog.Info("Registering slash commands")

	commandDefinitions := b.getCommandDefinitions()
	registeredCommands := make([]*discordgo.ApplicationCommand, 0, len(commandDefinitions))

	for _, cmd := range commandDefinitions {
		registered, err := b.session.ApplicationCommandCreate(
			b.session.State.User.ID,
			"", // Empty string = global command
			cmd,
		)
		if err != nil {
			return fmt.Errorf("failed to register command %s: %w", cmd.Name, err)
		}
		registeredCommands = append(registeredCommands, registered)
		slog.Debug("Registered command", "name", cmd.Name)
	}

	b.commands = registeredCommands
	slog.Info("Slash commands registered", "count", len(registeredCommands))
	return nil
}

// removeCommands removes all registered slash commands
func (b *Bot) removeCommands() {
	for _, cmd := range b.commands {
		err := b.session.ApplicationCommandDelete(b.session.State.User.ID, "", cmd.ID)
		if err != nil {
			slog.Error("Failed to remove command", "name", cmd.Name, "error", err)
		}
	}
}

// handleJoke handles the /joke command
func (b *Bot) handleJoke(s *discordgo.Session, i *discordgo.InteractionCreate) {
	respondWithMessage(s, i, jokes[rand.Intn(len(jokes))])
}

// handleGif handles the /gif command
func (b *Bot) handleGif(s *discordgo.Session, i *discordgo.InteractionCreate) {
	prompt := i.ApplicationCommandData().Options[0].StringValue()

	// Respond immediately to avoid timeout
	s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	gifURL, err := b.gifs.Search(ctx, prompt)
	if err != nil {
		slog.Error("GIF lookup failed", "prompt", prompt, "error", err)
	}
	if gifURL == "" {
		b.editResponse(s, i, "No GIF found for that prompt.")
		return
	}

	embed := &discordgo.MessageEmbed{
		Title: "GIF: " + prompt,
		Image: &discordgo.MessageEmbedImage{URL: gifURL},
	}
	s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{embed},
	})
}

// handlePlay handles the /play command
func (b *Bot) handlePlay(s *discordgo.Session, i *discordgo.InteractionCreate) {
	query := i.ApplicationCommandData().Options[0].StringValue()

	if i.Member == nil {
		respondWithMessage(s, i, "This command only works inside a server.")
		return
	}

	voiceChannelID, err := b.voiceChannelOf(i.GuildID, i.Member.User.ID)
	if err != nil {
		respondWithMessage(s, i, "Join a voice channel first.")
		return
	}

	s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	track, err := b.resolver.Resolve(ctx, query)
	if err != nil {
		slog.Error("Failed to resolve media", "query", query, "error", err)
		b.editResponse(s, i, "Could not resolve that query. Try a different link or keywords.")
		return
	}

	if err := b.play(i.GuildID, voiceChannelID, track); err != nil {
		slog.Error("Failed to start playback", "query", query, "error", err)
		switch {
		case errors.Is(err, ErrVoiceConnect):
			b.editResponse(s, i, "Could not connect to the voice channel. Check my permissions.")
		case errors.Is(err, ErrPlayback):
			b.editResponse(s, i, "Audio playback failed to start. Is ffmpeg installed and on PATH?")
		default:
			b.editResponse(s, i, "Something went wrong starting playback.")
		}
		return
	}

	b.editResponse(s, i, "Now playing: "+track.Title)
}

// handleRPG handles the /rpg command
func (b *Bot) handleRPG(s *discordgo.Session, i *discordgo.InteractionCreate) {
	action := i.ApplicationCommandData().Options[0].StringValue()
	user := interactionUser(i)
	if user == nil {
		return
	}

	result := b.rpg.Apply(user.ID, action)
	s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content:    result,
			Components: rpgComponents(user.ID, time.Now()),
		},
	})
}

// handleTrivia handles the /trivia subcommands
func (b *Bot) handleTrivia(s *discordgo.Session, i *discordgo.InteractionCreate) {
	sub := i.ApplicationCommandData().Options[0]

	switch sub.Name {
	case "ask":
		q := b.trivia.Ask(i.ChannelID)
		var sb strings.Builder
		fmt.Fprintf(&sb, "Question: %s\n", q.Text)
		for idx, label := range answerLabels {
			fmt.Fprintf(&sb, "%s. %s\n", label, q.Choices[idx])
		}
		sb.WriteString("Answer with `/trivia answer`.")
		respondWithMessage(s, i, sb.String())

	case "answer":
		label := sub.Options[0].StringValue()
		user := interactionUser(i)
		if user == nil {
			return
		}
		result, ok := b.trivia.Answer(i.ChannelID, i.GuildID, user.ID, label)
		if !ok {
			respondEphemeral(s, i, "There is no active question. Use `/trivia ask` first.")
			return
		}
		if result.Correct {
			respondWithMessage(s, i, "Correct! +1 point")
		} else {
			respondWithMessage(s, i, fmt.Sprintf("Not quite — the answer was %s.", result.CorrectLabel))
		}

	case "score":
		ranked := b.trivia.Scores(i.GuildID)
		if len(ranked) == 0 {
			respondWithMessage(s, i, "No scores yet. Play a few rounds!")
			return
		}
		var sb strings.Builder
		sb.WriteString("Leaderboard (top 10):\n")
		for idx, row := range ranked {
			fmt.Fprintf(&sb, "%d. <@%s>: %d points\n", idx+1, row.UserID, row.Points)
		}
		respondWithMessage(s, i, sb.String())
	}
}

// handleAutofeed handles the /autofeed subcommands
func (b *Bot) handleAutofeed(s *discordgo.Session, i *discordgo.InteractionCreate) {
	sub := i.ApplicationCommandData().Options[0]

	switch sub.Name {
	case "add":
		channelID := sub.Options[0].StringValue()
		target := sub.Options[1].ChannelValue(s)

		s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Flags: discordgo.MessageFlagsEphemeral,
			},
		})

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()

		video, err := b.feeds.LatestVideo(ctx, channelID)
		if err != nil {
			slog.Error("Seed fetch failed", "channel", channelID, "error", err)
		}
		if video == nil {
			b.editResponse(s, i, "Could not fetch the latest video. Check the channel ID.")
			return
		}

		b.subs.Set(i.GuildID, feed.Subscription{
			ChannelID:   channelID,
			TargetID:    target.ID,
			LastVideoID: video.ID,
		})
		b.editResponse(s, i, fmt.Sprintf("Now tracking channel %s; latest video: %s", channelID, video.Title))

	case "remove":
		channelID := sub.Options[0].StringValue()
		if b.subs.Remove(i.GuildID, channelID) {
			respondEphemeral(s, i, "Removed.")
		} else {
			respondEphemeral(s, i, "That channel is not tracked.")
		}

	case "list":
		subs := b.subs.List(i.GuildID)
		if len(subs) == 0 {
			respondWithMessage(s, i, "No channels are tracked yet.")
			return
		}
		var sb strings.Builder
		for _, entry := range subs {
			fmt.Fprintf(&sb, "ID: %s -> <#%s> (last seen: %s)\n", entry.ChannelID, entry.TargetID, entry.LastVideoID)
		}
		respondWithMessage(s, i, sb.String())
	}
}

// Helper functions

func respondWithMessage(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
		},
	})
}

func respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

func (b *Bot) editResponse(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Content: &content,
	})
}
