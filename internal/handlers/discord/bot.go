package discord

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/KirkDiggler/pokerledger/internal/services/ledger"
	"github.com/KirkDiggler/pokerledger/internal/services/messaging"
	"github.com/bwmarrin/discordgo"
)

// Bot represents the Discord bot instance
type Bot struct {
	session    *discordgo.Session
	commands   map[string]CommandHandler
	commandIDs map[string]string // Maps command name to command ID
	config     *Config
	logger     *slog.Logger
}

// Config holds the configuration for the bot
type Config struct {
	// Discord bot token
	Token string

	// Application ID for the bot
	ApplicationID string

	// Optional guild ID for development (server-specific commands)
	GuildID string

	LedgerService    ledger.Service
	MessagingService messaging.Service

	Logger *slog.Logger
}

// New creates a new Discord bot
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Token == "" {
		return nil, errors.New("token cannot be empty")
	}

	if cfg.LedgerService == nil {
		return nil, errors.New("ledger service cannot be nil")
	}

	if cfg.MessagingService == nil {
		return nil, errors.New("messaging service cannot be nil")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	// Create a new Discord session
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	bot := &Bot{
		session:    session,
		commands:   make(map[string]CommandHandler),
		commandIDs: make(map[string]string),
		config:     cfg,
		logger:     logger.With("component", "discord"),
	}

	// Register the interaction handler
	session.AddHandler(bot.handleInteraction)

	return bot, nil
}

// Session exposes the underlying Discord session, which can also execute webhooks
func (b *Bot) Session() *discordgo.Session {
	return b.session
}

// Start initializes the Discord connection and registers commands
func (b *Bot) Start() error {
	// Open the websocket connection to Discord
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	pokerCmd := NewPokerCommand(&PokerCommandConfig{
		LedgerService:    b.config.LedgerService,
		MessagingService: b.config.MessagingService,
		Logger:           b.logger,
	})
	if err := b.RegisterCommand(pokerCmd); err != nil {
		return fmt.Errorf("failed to register poker command: %w", err)
	}

	b.logger.Info("bot is running")
	return nil
}

// Stop removes registered commands and closes the Discord connection
func (b *Bot) Stop() error {
	appID := b.appID()

	for cmdName, cmdID := range b.commandIDs {
		if err := b.session.ApplicationCommandDelete(appID, b.config.GuildID, cmdID); err != nil {
			b.logger.Warn("failed to delete command", "command", cmdName, "command_id", cmdID, "error", err)
		} else {
			b.logger.Info("deleted command", "command", cmdName, "command_id", cmdID)
		}
	}

	return b.session.Close()
}

// RegisterCommand registers a command with Discord. Commands are registered
// for GuildID when set, otherwise globally.
func (b *Bot) RegisterCommand(cmd CommandHandler) error {
	createdCmd, err := b.session.ApplicationCommandCreate(b.appID(), b.config.GuildID, cmd.GetCommand())
	if err != nil {
		return fmt.Errorf("failed to create command %s: %w", cmd.GetName(), err)
	}

	b.commands[cmd.GetName()] = cmd
	b.commandIDs[cmd.GetName()] = createdCmd.ID
	b.logger.Info("registered command",
		"command", cmd.GetName(),
		"command_id", createdCmd.ID,
		"guild_id", b.config.GuildID)

	return nil
}

func (b *Bot) appID() string {
	if b.config.ApplicationID != "" {
		return b.config.ApplicationID
	}
	// Fall back to session user ID if application ID is not provided
	return b.session.State.User.ID
}

// handleInteraction handles Discord interactions
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	name := i.ApplicationCommandData().Name
	if h, ok := b.commands[name]; ok {
		if err := h.Handle(s, i); err != nil {
			b.logger.Error("error handling command", "command", name, "error", err)
		}
	}
}
