package discord

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	ledgerCore "github.com/KirkDiggler/pokerledger/internal/ledger"
	"github.com/KirkDiggler/pokerledger/internal/models"
	"github.com/KirkDiggler/pokerledger/internal/services/ledger"
	"github.com/KirkDiggler/pokerledger/internal/services/messaging"
	"github.com/bwmarrin/discordgo"
	"github.com/shopspring/decimal"
)

// commandTimeout bounds the service calls made for one interaction
const commandTimeout = 10 * time.Second

// DefaultQuickBuyIn is the buy-in used when add or join leaves it out
const DefaultQuickBuyIn = 400

// Subcommand names
const (
	SubcommandNew     = "new"
	SubcommandLoad    = "load"
	SubcommandAdd     = "add"
	SubcommandJoin    = "join"
	SubcommandBuyIn   = "buyin"
	SubcommandCashOut = "cashout"
	SubcommandEnd     = "end"
	SubcommandCounts  = "counts"
	SubcommandResume  = "resume"
	SubcommandStatus  = "status"
)

// PokerCommandConfig holds the dependencies of the poker command
type PokerCommandConfig struct {
	LedgerService    ledger.Service
	MessagingService messaging.Service
	Logger           *slog.Logger
}

// PokerCommand handles the /poker command
type PokerCommand struct {
	BaseCommand
	ledgerService    ledger.Service
	messagingService messaging.Service
	logger           *slog.Logger

	// channel ID to the session played there
	mu       sync.RWMutex
	channels map[string]string
}

// NewPokerCommand creates a new poker command handler
func NewPokerCommand(cfg *PokerCommandConfig) *PokerCommand {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	playerOption := func(name, description string, required bool) *discordgo.ApplicationCommandOption {
		return &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        name,
			Description: description,
			Required:    required,
		}
	}
	amountOption := func(name, description string, required bool) *discordgo.ApplicationCommandOption {
		return &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        name,
			Description: description,
			Required:    required,
		}
	}

	return &PokerCommand{
		BaseCommand: BaseCommand{
			Name:        "poker",
			Description: "Poker night ledger",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        SubcommandNew,
					Description: "Start a new session in this channel",
					Options: []*discordgo.ApplicationCommandOption{
						playerOption("chip_value", "Currency value of one chip, default 0.5", false),
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        SubcommandLoad,
					Description: "Continue an existing session in this channel",
					Options: []*discordgo.ApplicationCommandOption{
						playerOption("session_id", "Session ID, e.g. 20250614-1", true),
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        SubcommandAdd,
					Description: "Add a guest player",
					Options: []*discordgo.ApplicationCommandOption{
						playerOption("name", "Player name", true),
						amountOption("buyin", "Chips from the box, default 400", false),
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        SubcommandJoin,
					Description: "Join the game yourself or claim a guest seat",
					Options: []*discordgo.ApplicationCommandOption{
						playerOption("player", "Guest seat to claim", false),
						amountOption("buyin", "Chips from the box", false),
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        SubcommandBuyIn,
					Description: "Buy chips from the box or another player",
					Options: []*discordgo.ApplicationCommandOption{
						playerOption("player", "Buyer", true),
						amountOption("amount", "Chips bought", true),
						playerOption("from", "Seller, leave out to buy from the box", false),
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        SubcommandCashOut,
					Description: "Return chips to the box",
					Options: []*discordgo.ApplicationCommandOption{
						playerOption("player", "Player cashing out", true),
						amountOption("amount", "Chips returned", true),
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        SubcommandEnd,
					Description: "End the game and collect final counts",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        SubcommandCounts,
					Description: "Submit final chip counts and settle",
					Options: []*discordgo.ApplicationCommandOption{
						playerOption("counts", "e.g. Alice=600, Bob=200", true),
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        SubcommandResume,
					Description: "Return to the game from the summary",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        SubcommandStatus,
					Description: "Show the session in this channel",
				},
			},
		},
		ledgerService:    cfg.LedgerService,
		messagingService: cfg.MessagingService,
		logger:           logger,
		channels:         make(map[string]string),
	}
}

// options indexes a subcommand's options by name
type options map[string]*discordgo.ApplicationCommandInteractionDataOption

func (o options) str(name string) string {
	if opt, ok := o[name]; ok {
		return strings.TrimSpace(opt.StringValue())
	}
	return ""
}

func (o options) integer(name string, defaultValue int64) int64 {
	if opt, ok := o[name]; ok {
		return opt.IntValue()
	}
	return defaultValue
}

// SessionForChannel returns the session played in a channel
func (c *PokerCommand) SessionForChannel(channelID string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	id, ok := c.channels[channelID]
	return id, ok
}

func (c *PokerCommand) setChannelSession(channelID, sessionID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.channels[channelID] = sessionID
}

// Handle processes a Discord interaction for the poker command
func (c *PokerCommand) Handle(s Responder, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	data := i.ApplicationCommandData()
	if data.Name != c.Name || len(data.Options) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	sub := data.Options[0]
	opts := make(options, len(sub.Options))
	for _, opt := range sub.Options {
		opts[opt.Name] = opt
	}

	switch sub.Name {
	case SubcommandNew:
		return c.handleNew(ctx, s, i, opts)
	case SubcommandLoad:
		return c.handleLoad(ctx, s, i, opts)
	}

	sessionID, ok := c.SessionForChannel(i.ChannelID)
	if !ok {
		return RespondWithEphemeralMessage(s, i, "No session in this channel. Use `/poker new` or `/poker load` first.")
	}

	switch sub.Name {
	case SubcommandAdd:
		return c.handleAdd(ctx, s, i, sessionID, opts)
	case SubcommandJoin:
		return c.handleJoin(ctx, s, i, sessionID, opts)
	case SubcommandBuyIn:
		return c.handleBuyIn(ctx, s, i, sessionID, opts)
	case SubcommandCashOut:
		return c.handleCashOut(ctx, s, i, sessionID, opts)
	case SubcommandEnd:
		return c.handleEnd(ctx, s, i, sessionID)
	case SubcommandCounts:
		return c.handleCounts(ctx, s, i, sessionID, opts)
	case SubcommandResume:
		return c.handleResume(ctx, s, i, sessionID)
	case SubcommandStatus:
		return c.respondStatus(ctx, s, i, sessionID)
	}

	return fmt.Errorf("unknown subcommand %q", sub.Name)
}

func (c *PokerCommand) handleNew(ctx context.Context, s Responder, i *discordgo.InteractionCreate, opts options) error {
	var chipValue decimal.Decimal
	if raw := opts.str("chip_value"); raw != "" {
		v, err := decimal.NewFromString(raw)
		if err != nil || !v.IsPositive() {
			return c.respondError(ctx, s, i, &ledgerCore.ValidationError{Field: "chipValue", Err: ledgerCore.ErrInvalidChipValue})
		}
		chipValue = v
	}

	_, actor := identityFromInteraction(i)
	out, err := c.ledgerService.StartSession(ctx, &ledger.StartSessionInput{
		Actor:     actor,
		ChipValue: chipValue,
	})
	if err != nil {
		return c.respondError(ctx, s, i, err)
	}

	c.setChannelSession(i.ChannelID, out.Session.ID)

	return c.respondStatus(ctx, s, i, out.Session.ID)
}

func (c *PokerCommand) handleLoad(ctx context.Context, s Responder, i *discordgo.InteractionCreate, opts options) error {
	sessionID := opts.str("session_id")

	if _, err := c.ledgerService.GetSession(ctx, &ledger.GetSessionInput{SessionID: sessionID}); err != nil {
		return c.respondError(ctx, s, i, err)
	}

	c.setChannelSession(i.ChannelID, sessionID)

	return c.respondStatus(ctx, s, i, sessionID)
}

func (c *PokerCommand) handleAdd(ctx context.Context, s Responder, i *discordgo.InteractionCreate, sessionID string, opts options) error {
	_, actor := identityFromInteraction(i)
	if _, err := c.ledgerService.AddPlayer(ctx, &ledger.AddPlayerInput{
		SessionID: sessionID,
		Name:      opts.str("name"),
		BuyIn:     opts.integer("buyin", DefaultQuickBuyIn),
		Actor:     actor,
	}); err != nil {
		return c.respondError(ctx, s, i, err)
	}

	return c.respondLatestEntry(ctx, s, i, sessionID)
}

func (c *PokerCommand) handleJoin(ctx context.Context, s Responder, i *discordgo.InteractionCreate, sessionID string, opts options) error {
	userID, displayName := identityFromInteraction(i)

	input := &ledger.JoinGameInput{
		SessionID: sessionID,
		Identity:  models.Identity{UserID: userID, DisplayName: displayName},
		BuyIn:     opts.integer("buyin", 0),
	}

	if name := opts.str("player"); name != "" {
		current, err := c.ledgerService.GetSession(ctx, &ledger.GetSessionInput{SessionID: sessionID})
		if err != nil {
			return c.respondError(ctx, s, i, err)
		}
		player, err := findPlayer(current.Session.Players, name)
		if err != nil {
			return c.respondError(ctx, s, i, err)
		}
		input.PlayerID = player.ID
	} else if input.BuyIn == 0 {
		input.BuyIn = DefaultQuickBuyIn
	}

	out, err := c.ledgerService.JoinGame(ctx, input)
	if err != nil {
		return c.respondError(ctx, s, i, err)
	}

	// Claiming a seat without chips logs nothing
	if input.PlayerID != "" && input.BuyIn == 0 {
		return RespondWithEphemeralMessage(s, i, fmt.Sprintf("You are now playing as %s.", out.Player.Name))
	}

	return c.respondLatestEntry(ctx, s, i, sessionID)
}

func (c *PokerCommand) handleBuyIn(ctx context.Context, s Responder, i *discordgo.InteractionCreate, sessionID string, opts options) error {
	current, err := c.ledgerService.GetSession(ctx, &ledger.GetSessionInput{SessionID: sessionID})
	if err != nil {
		return c.respondError(ctx, s, i, err)
	}

	buyer, err := findPlayer(current.Session.Players, opts.str("player"))
	if err != nil {
		return c.respondError(ctx, s, i, err)
	}

	sellerID := ""
	if name := opts.str("from"); name != "" {
		seller, err := findPlayer(current.Session.Players, name)
		if err != nil {
			return c.respondError(ctx, s, i, err)
		}
		sellerID = seller.ID
	}

	_, actor := identityFromInteraction(i)
	out, err := c.ledgerService.BuyIn(ctx, &ledger.BuyInInput{
		SessionID: sessionID,
		BuyerID:   buyer.ID,
		Amount:    opts.integer("amount", 0),
		SellerID:  sellerID,
		Actor:     actor,
	})
	if err != nil {
		return c.respondError(ctx, s, i, err)
	}

	return c.respondEntry(ctx, s, i, sessionID, out.Entry)
}

func (c *PokerCommand) handleCashOut(ctx context.Context, s Responder, i *discordgo.InteractionCreate, sessionID string, opts options) error {
	current, err := c.ledgerService.GetSession(ctx, &ledger.GetSessionInput{SessionID: sessionID})
	if err != nil {
		return c.respondError(ctx, s, i, err)
	}

	player, err := findPlayer(current.Session.Players, opts.str("player"))
	if err != nil {
		return c.respondError(ctx, s, i, err)
	}

	_, actor := identityFromInteraction(i)
	out, err := c.ledgerService.CashOut(ctx, &ledger.CashOutInput{
		SessionID: sessionID,
		PlayerID:  player.ID,
		Amount:    opts.integer("amount", 0),
		Actor:     actor,
	})
	if err != nil {
		return c.respondError(ctx, s, i, err)
	}

	return c.respondEntry(ctx, s, i, sessionID, out.Entry)
}

func (c *PokerCommand) handleEnd(ctx context.Context, s Responder, i *discordgo.InteractionCreate, sessionID string) error {
	_, actor := identityFromInteraction(i)
	if _, err := c.ledgerService.EndGame(ctx, &ledger.EndGameInput{SessionID: sessionID, Actor: actor}); err != nil {
		return c.respondError(ctx, s, i, err)
	}

	return c.respondStatus(ctx, s, i, sessionID)
}

func (c *PokerCommand) handleCounts(ctx context.Context, s Responder, i *discordgo.InteractionCreate, sessionID string, opts options) error {
	current, err := c.ledgerService.GetSession(ctx, &ledger.GetSessionInput{SessionID: sessionID})
	if err != nil {
		return c.respondError(ctx, s, i, err)
	}

	counts, err := parseChipCounts(opts.str("counts"), current.Session.Players)
	if err != nil {
		return c.respondError(ctx, s, i, err)
	}

	_, actor := identityFromInteraction(i)
	if _, err := c.ledgerService.SubmitFinalCounts(ctx, &ledger.SubmitFinalCountsInput{
		SessionID: sessionID,
		Counts:    counts,
		Actor:     actor,
	}); err != nil {
		return c.respondError(ctx, s, i, err)
	}

	return c.respondLatestEntry(ctx, s, i, sessionID)
}

func (c *PokerCommand) handleResume(ctx context.Context, s Responder, i *discordgo.InteractionCreate, sessionID string) error {
	_, actor := identityFromInteraction(i)
	if _, err := c.ledgerService.ResumeGame(ctx, &ledger.ResumeGameInput{SessionID: sessionID, Actor: actor}); err != nil {
		return c.respondError(ctx, s, i, err)
	}

	return c.respondStatus(ctx, s, i, sessionID)
}

func (c *PokerCommand) respondStatus(ctx context.Context, s Responder, i *discordgo.InteractionCreate, sessionID string) error {
	current, err := c.ledgerService.GetSession(ctx, &ledger.GetSessionInput{SessionID: sessionID})
	if err != nil {
		return c.respondError(ctx, s, i, err)
	}

	out, err := c.messagingService.GetSessionEmbed(ctx, &messaging.GetSessionEmbedInput{
		Session: current.Session,
		InPlay:  current.Totals.InPlay(),
	})
	if err != nil {
		return err
	}

	return RespondWithEmbed(s, i, out.Embed)
}

// respondLatestEntry announces the entry a command just appended
func (c *PokerCommand) respondLatestEntry(ctx context.Context, s Responder, i *discordgo.InteractionCreate, sessionID string) error {
	current, err := c.ledgerService.GetSession(ctx, &ledger.GetSessionInput{SessionID: sessionID})
	if err != nil {
		return c.respondError(ctx, s, i, err)
	}

	log := current.Session.TransactionLog
	if len(log) == 0 {
		return c.respondStatus(ctx, s, i, sessionID)
	}

	return c.renderEntry(ctx, s, i, current.Session, log[len(log)-1])
}

func (c *PokerCommand) respondEntry(ctx context.Context, s Responder, i *discordgo.InteractionCreate, sessionID string, entry *models.LogEntry) error {
	current, err := c.ledgerService.GetSession(ctx, &ledger.GetSessionInput{SessionID: sessionID})
	if err != nil {
		return c.respondError(ctx, s, i, err)
	}

	return c.renderEntry(ctx, s, i, current.Session, entry)
}

func (c *PokerCommand) renderEntry(ctx context.Context, s Responder, i *discordgo.InteractionCreate, session *models.Session, entry *models.LogEntry) error {
	out, err := c.messagingService.GetEntryEmbed(ctx, &messaging.GetEntryEmbedInput{
		SessionID: session.ID,
		Entry:     entry,
		ChipValue: session.ChipValue,
		Players:   session.Players,
	})
	if err != nil {
		return err
	}

	return RespondWithEmbed(s, i, out.Embed)
}

// respondError shows the user a friendly, ephemeral error
func (c *PokerCommand) respondError(ctx context.Context, s Responder, i *discordgo.InteractionCreate, err error) error {
	c.logger.Debug("command failed", "channel_id", i.ChannelID, "error", err)

	msg, msgErr := c.messagingService.GetErrorMessage(ctx, &messaging.GetErrorMessageInput{
		Err:           err,
		PreferredTone: messaging.ToneFunny,
	})
	if msgErr != nil {
		return RespondWithError(s, i, err.Error())
	}

	return RespondWithError(s, i, msg.Message)
}
