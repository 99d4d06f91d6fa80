package messaging

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/KirkDiggler/pokerledger/internal/common/money"
	"github.com/KirkDiggler/pokerledger/internal/ledger"
	"github.com/KirkDiggler/pokerledger/internal/models"
	sessionRepo "github.com/KirkDiggler/pokerledger/internal/repositories/session"
	"github.com/KirkDiggler/pokerledger/internal/settlement"
	"github.com/bwmarrin/discordgo"
	"github.com/shopspring/decimal"
)

// service implements the Service interface
type service struct {
	formatter       *money.Formatter
	paymentLinkBase string

	// Random number generator for selecting messages
	mu   sync.Mutex
	rand *rand.Rand
}

// New creates a new messaging service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.Formatter == nil {
		return nil, errors.New("formatter cannot be nil")
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &service{
		formatter:       cfg.Formatter,
		paymentLinkBase: cfg.PaymentLinkBase,
		rand:            rand.New(rand.NewSource(seed)),
	}, nil
}

// GetEntryEmbed builds the per-entry webhook embed
func (s *service) GetEntryEmbed(ctx context.Context, input *GetEntryEmbedInput) (*GetEntryEmbedOutput, error) {
	if input == nil || input.Entry == nil || input.Entry.Event == nil {
		return nil, errors.New("input and entry cannot be nil")
	}

	entry := input.Entry
	embed := &discordgo.MessageEmbed{
		Title:     "Transaction: " + entry.Type().Title(),
		Color:     ColorDefault,
		Timestamp: entry.Timestamp.UTC().Format(time.RFC3339),
		Fields:    []*discordgo.MessageEmbedField{},
		Footer:    &discordgo.MessageEmbedFooter{Text: footer(input.SessionID, entry.Actor)},
	}

	switch ev := entry.Event.(type) {
	case models.InitialBuyIn:
		embed.Fields = movementFields(ev.Player, ev.Amount, ev.Source)
		embed.Color = sourceColor(ev.Source)
	case models.PlayerBuyIn:
		embed.Fields = movementFields(ev.Player, ev.Amount, ev.Source)
		embed.Color = sourceColor(ev.Source)
	case models.CashOut:
		embed.Fields = movementFields(ev.Player, ev.Amount, "")
		embed.Color = ColorCashOut
	case models.SessionStarted:
		embed.Description = ev.Message
	case models.GameResumed:
		embed.Description = ev.Message
	case models.GameEndSummary:
		embed.Title = "Game Over - Final Results"
		embed.Description = fmt.Sprintf("Summary for session **%s**.", input.SessionID)
		embed.Fields = s.summaryFields(ctx, ev.Summary, input.ChipValue, input.Players)
	}

	return &GetEntryEmbedOutput{
		Embed: embed,
	}, nil
}

// GetSessionEmbed describes who is playing and, once finished, who pays whom
func (s *service) GetSessionEmbed(ctx context.Context, input *GetSessionEmbedInput) (*GetSessionEmbedOutput, error) {
	if input == nil || input.Session == nil {
		return nil, errors.New("input and session cannot be nil")
	}
	session := input.Session

	embed := &discordgo.MessageEmbed{
		Title:  "Session " + session.ID,
		Color:  ColorDefault,
		Fields: []*discordgo.MessageEmbedField{},
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("1 chip = %s", s.formatter.Format(1, session.ChipValue)),
		},
	}

	switch session.GameState {
	case models.GameStateInProgress:
		embed.Description = fmt.Sprintf("Game in progress. Total in play (from box): **%d chips**", input.InPlay)
	case models.GameStateAwaitingCounts:
		embed.Description = "Game ended. Waiting for final chip counts."
		embed.Color = ColorCashOut
	case models.GameStateFinished:
		embed.Description = "Game over. Final tally below."
		embed.Color = ColorCentralBox
	}

	if session.GameState == models.GameStateFinished && session.FinalCalculations != nil {
		embed.Fields = s.summaryFields(ctx, session.FinalCalculations, session.ChipValue, session.Players)
		return &GetSessionEmbedOutput{Embed: embed}, nil
	}

	if len(session.Players) == 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Players",
			Value: "No players yet. Add some with `/poker add`.",
		})
	}
	for _, p := range session.Players {
		status := "guest"
		if p.Status == models.PlayerStatusJoined {
			status = "joined"
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   fmt.Sprintf("%s (%s)", p.Name, status),
			Value:  fmt.Sprintf("Net buy-in: **%d chips**", p.BuyIn),
			Inline: true,
		})
	}

	return &GetSessionEmbedOutput{
		Embed: embed,
	}, nil
}

// GetSettlementLines renders each transfer in currency
func (s *service) GetSettlementLines(ctx context.Context, input *GetSettlementLinesInput) (*GetSettlementLinesOutput, error) {
	if input == nil || input.Settlement == nil {
		return nil, errors.New("input and settlement cannot be nil")
	}

	paymentIDs := make(map[string]string, len(input.Players))
	for _, p := range input.Players {
		paymentIDs[p.ID] = p.PaymentID
	}

	lines := make([]*SettlementLine, 0, len(input.Settlement.Transactions))
	for _, t := range input.Settlement.Transactions {
		line := &SettlementLine{
			Text: fmt.Sprintf("**%s** pays **%s** `%s`", t.From, t.To, s.formatter.Format(t.Amount, input.ChipValue)),
		}
		if s.paymentLinkBase != "" {
			line.PaymentLink = money.PaymentLink(s.paymentLinkBase, paymentIDs[t.ToID], t.Amount, input.ChipValue)
		}
		lines = append(lines, line)
	}

	return &GetSettlementLinesOutput{
		Lines: lines,
	}, nil
}

// GetErrorMessage returns a user-friendly error message
func (s *service) GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error) {
	if input == nil || input.Err == nil {
		return nil, errors.New("input and error cannot be nil")
	}

	tone := input.PreferredTone
	if tone == "" {
		tone = ToneNeutral
	}

	// Mismatches carry numbers the organizer needs, so they are never joked about
	var mismatch *settlement.BalanceMismatchError
	if errors.As(input.Err, &mismatch) {
		return &GetErrorMessageOutput{
			Message: fmt.Sprintf("Balance mismatch! Total final chips (%d) do not equal total net buy-ins (%d). Off by %+d chips.",
				mismatch.TotalFinalChips, mismatch.TotalBuyIn, mismatch.Difference()),
			Tone: ToneNeutral,
		}, nil
	}

	var validation *ledger.ValidationError
	if errors.As(input.Err, &validation) {
		return &GetErrorMessageOutput{
			Message: validationMessage(validation),
			Tone:    ToneNeutral,
		}, nil
	}

	var messages []string
	switch {
	case errors.Is(input.Err, ledger.ErrInvalidGameState):
		messages = []string{
			"Can't do that right now. " + capitalize(input.Err.Error()) + ".",
		}
		if tone == ToneFunny {
			messages = append(messages,
				"Whoa there, the game isn't in the right state for that.",
				"Nice try, but the cards say no. "+capitalize(input.Err.Error())+".",
			)
		}
	case errors.Is(input.Err, sessionRepo.ErrStateConflict):
		messages = []string{
			"Someone else changed the game at the same moment. Check the latest state and try again.",
		}
	case errors.Is(input.Err, sessionRepo.ErrSessionNotFound):
		messages = []string{
			"That session doesn't exist. Check the session ID.",
		}
		if tone == ToneFunny {
			messages = append(messages, "No such game. Did it ever really happen?")
		}
	default:
		messages = []string{
			"Something went wrong! Try again later.",
		}
		if tone == ToneFunny {
			messages = append(messages,
				"The dealer dropped the deck. Try again.",
				"Technical difficulties! Shuffling up and dealing again shortly.",
			)
		}
	}

	return &GetErrorMessageOutput{
		Message: s.pick(messages),
		Tone:    tone,
	}, nil
}

func (s *service) summaryFields(ctx context.Context, summary *models.Settlement, chipValue decimal.Decimal, players []*models.Player) []*discordgo.MessageEmbedField {
	if summary == nil {
		return []*discordgo.MessageEmbedField{}
	}

	fields := make([]*discordgo.MessageEmbedField, 0, len(summary.Players)+1)
	for _, p := range summary.Players {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name: p.Name,
			Value: fmt.Sprintf("Profit/Loss: **%s**\n(Final: %d, Buy-in: %d)",
				s.formatter.FormatSigned(p.Balance, chipValue), p.FinalChips, p.BuyIn),
		})
	}

	value := "Everyone broke even!"
	out, err := s.GetSettlementLines(ctx, &GetSettlementLinesInput{
		Settlement: summary,
		ChipValue:  chipValue,
		Players:    players,
	})
	if err == nil && len(out.Lines) > 0 {
		texts := make([]string, 0, len(out.Lines))
		for _, line := range out.Lines {
			if line.PaymentLink != "" {
				texts = append(texts, fmt.Sprintf("%s [pay](%s)", line.Text, line.PaymentLink))
				continue
			}
			texts = append(texts, line.Text)
		}
		value = strings.Join(texts, "\n")
	}

	return append(fields, &discordgo.MessageEmbedField{
		Name:  "--- Settlements ---",
		Value: value,
	})
}

func (s *service) pick(messages []string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return messages[s.rand.Intn(len(messages))]
}

func movementFields(player string, amount int64, source string) []*discordgo.MessageEmbedField {
	fields := []*discordgo.MessageEmbedField{}
	if player != "" {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Player", Value: player, Inline: true})
	}
	if amount != 0 {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Amount", Value: fmt.Sprintf("%d chips", amount), Inline: true})
	}
	if source != "" {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Source", Value: source, Inline: true})
	}
	return fields
}

func sourceColor(source string) int {
	if source == models.SourceCentralBox {
		return ColorCentralBox
	}
	return ColorPeer
}

func footer(sessionID, actor string) string {
	if actor == "" {
		return "Session ID: " + sessionID
	}
	return fmt.Sprintf("Session ID: %s | By: %s", sessionID, actor)
}

func validationMessage(err *ledger.ValidationError) string {
	switch {
	case errors.Is(err, ledger.ErrDuplicateName):
		return "There's already a player with that name."
	case errors.Is(err, ledger.ErrEmptyName):
		return "Please enter a name."
	case errors.Is(err, ledger.ErrExceedsBuyIn):
		return "Can't cash out more chips than the player's net buy-in."
	case errors.Is(err, ledger.ErrAmountTooLarge):
		return "That chip amount is too large."
	case errors.Is(err, ledger.ErrInvalidAmount):
		return "Please enter a valid chip amount."
	case errors.Is(err, ledger.ErrPlayerNotFound):
		return "That player isn't in this session."
	case errors.Is(err, ledger.ErrSelfSale):
		return "A player can't buy chips from themselves."
	case errors.Is(err, ledger.ErrAlreadyJoined):
		return "You've already joined this game."
	case errors.Is(err, ledger.ErrPlayerClaimed):
		return "Someone has already joined as that player."
	case errors.Is(err, ledger.ErrInvalidChipValue):
		return "Chip and currency amounts must both be greater than zero."
	}
	return capitalize(err.Error()) + "."
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
