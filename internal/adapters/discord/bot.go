package discord

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/log"

	"github.com/vtstv/EventBot/internal/application"
	"github.com/vtstv/EventBot/internal/config"
	"github.com/vtstv/EventBot/internal/infrastructure/metrics"
	"github.com/vtstv/EventBot/internal/ports/output"
	"github.com/vtstv/EventBot/internal/templates"
)

// Bot is the Discord adapter.
type Bot struct {
	session *discordgo.Session
	config  *config.Config
	handler *Handler
	log     *log.Logger
}

// NewBot creates a Bot and wires ports: session → gateway → view sync →
// application services → handler.
func NewBot(
	cfg *config.Config,
	eventRepo output.EventRepository,
	participantRepo output.ParticipantRepository,
	guildRepo output.GuildSettingsRepository,
	catalog *templates.Catalog,
	translator output.T,
	m *metrics.Metrics,
	logger *log.Logger,
) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentMessageContent

	gateway := NewGateway(session, logger)
	renderer := application.NewRenderer(eventRepo, participantRepo, catalog)
	syncer := application.NewViewSync(eventRepo, guildRepo, renderer, catalog, gateway, m, logger)
	eventUC := application.NewEventService(eventRepo, participantRepo, catalog, gateway, syncer, translator, m, cfg.OwnerID, logger)
	rosterUC := application.NewRosterService(eventRepo, participantRepo, catalog, renderer, syncer, m, logger)

	handler := NewHandler(eventUC, rosterUC, guildRepo, catalog, translator, logger)

	bot := &Bot{
		session: session,
		config:  cfg,
		handler: handler,
		log:     logger,
	}
	session.AddHandler(bot.handleInteraction)
	session.AddHandler(bot.handleMessage)
	return bot, nil
}

func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		switch i.ApplicationCommandData().Name {
		case "create_event":
			b.handler.HandleCreateEvent(s, i)
		case "edit_event":
			b.handler.HandleEditEvent(s, i)
		case "close_event":
			b.handler.HandleCloseEvent(s, i)
		case "open_event":
			b.handler.HandleOpenEvent(s, i)
		case "delete_event":
			b.handler.HandleDeleteEvent(s, i)
		case "setup":
			b.handler.HandleSetup(s, i)
		}
	case discordgo.InteractionMessageComponent:
		customID := i.MessageComponentData().CustomID
		if strings.HasPrefix(customID, "signup_") || strings.HasPrefix(customID, "cancel_") {
			b.handler.HandleComponent(s, i)
		}
	}
}

// handleMessage feeds direct messages into running dialog sessions.
func (b *Bot) handleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot || m.GuildID != "" {
		return
	}
	b.handler.dialogs.deliver(m.Author.ID, m.Content)
}

// Start runs the bot until interrupted.
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open session: %w", err)
	}
	defer b.session.Close()

	for _, cmd := range commandDefinitions() {
		if _, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, b.config.GuildID, cmd); err != nil {
			b.log.Warn("could not register command", "command", cmd.Name, "error", err)
		}
	}

	b.log.Info("bot is online, press CTRL+C to exit")
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	return nil
}
