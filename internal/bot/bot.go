package bot

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/zytang71/Discord-Bot-With-Vibe-Coding/internal/config"
	"github.com/zytang71/Discord-Bot-With-Vibe-Coding/internal/feed"
	"github.com/zytang71/Discord-Bot-With-Vibe-Coding/internal/media"
	"github.com/zytang71/Discord-Bot-With-Vibe-Coding/internal/poller"
	"github.com/zytang71/Discord-Bot-With-Vibe-Coding/internal/rpg"
	"github.com/zytang71/Discord-Bot-With-Vibe-Coding/internal/tenor"
	"github.com/zytang71/Discord-Bot-With-Vibe-Coding/internal/trivia"
	"github.com/zytang71/Discord-Bot-With-Vibe-Coding/internal/youtube"
)

// Bot represents the Discord bot instance
type Bot struct {
	config   *config.Config
	session  *discordgo.Session
	rpg      *rpg.Engine
	trivia   *trivia.Engine
	subs     *feed.Store
	feeds    *youtube.Client
	gifs     *tenor.Client
	resolver *media.Resolver
	poller   *poller.Poller
	commands []*discordgo.ApplicationCommand

	mu      sync.Mutex
	playing map[string]*playback // guild ID -> active track
}

// New creates a new Bot instance
func New(cfg *config.Config) (*Bot, error) {
	// Create Discord session
	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	// Set intents; voice states are needed to find where /play invokers sit
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildVoiceStates

	b := &Bot{
		config:   cfg,
		session:  session,
		rpg:      rpg.NewEngine(rand.New(rand.NewSource(time.Now().UnixNano()))),
		trivia:   trivia.NewEngine(rand.New(rand.NewSource(time.Now().UnixNano()))),
		subs:     feed.NewStore(),
		feeds:    youtube.NewClient(),
		gifs:     tenor.NewClient(cfg.TenorAPIKey, rand.New(rand.NewSource(time.Now().UnixNano()))),
		resolver: media.NewResolver(cfg.YTDLPPath),
		playing:  make(map[string]*playback),
	}

	// Register command handlers
	b.registerHandlers()

	return b, nil
}

// Start opens the Discord connection and starts background tasks
func (b *Bot) Start(ctx context.Context) error {
	// Open Discord connection
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	slog.Info("Connected to Discord", "user", b.session.State.User.Username)

	// Register slash commands
	if err := b.registerCommands(); err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}

	// Start the feed poller
	interval := time.Duration(b.config.PollingIntervalSeconds) * time.Second
	b.poller = poller.New(b.subs, b.feeds, &sessionNotifier{session: b.session}, interval)
	go b.poller.Start(ctx)

	return nil
}

// Stop gracefully shuts down the bot
func (b *Bot) Stop() error {
	// Stop the poller
	if b.poller != nil {
		b.poller.Stop()
	}

	// Kill any in-flight audio
	b.stopAllPlayback()

	// Close Discord session
	if b.session != nil {
		return b.session.Close()
	}

	return nil
}

// registerHandlers sets up Discord event handlers
func (b *Bot) registerHandlers() {
	b.session.AddHandler(b.handleInteraction)
	b.session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		slog.Info("Bot is ready", "guilds", len(r.Guilds))
		if err := s.UpdateGameStatus(0, "having fun"); err != nil {
			slog.Warn("Failed to set presence", "error", err)
		}
	})
}

// handleInteraction routes slash commands and component presses
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		data := i.ApplicationCommandData()
		slog.Debug("Received command", "command", data.Name, "guild", i.GuildID)

		switch data.Name {
		case "joke":
			b.handleJoke(s, i)
		case "gif":
			b.handleGif(s, i)
		case "play":
			b.handlePlay(s, i)
		case "rpg":
			b.handleRPG(s, i)
		case "trivia":
			b.handleTrivia(s, i)
		case "autofeed":
			b.handleAutofeed(s, i)
		default:
			slog.Warn("Unknown command", "command", data.Name)
		}
	case discordgo.InteractionMessageComponent:
		b.handleRPGButton(s, i)
	}
}

// sessionNotifier adapts the Discord session to the poller's sink
type sessionNotifier struct {
	session *discordgo.Session
}

func (n *sessionNotifier) Notify(channelID, content string) error {
	_, err := n.session.ChannelMessageSend(channelID, content)
	return err
}

// interactionUser returns the invoking user for guild and DM interactions
func interactionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil {
		return i.Member.User
	}
	return i.User
}
