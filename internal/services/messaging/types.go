package messaging

import (
	"github.com/KirkDiggler/pokerledger/internal/common/money"
	"github.com/KirkDiggler/pokerledger/internal/models"
	"github.com/bwmarrin/discordgo"
	"github.com/shopspring/decimal"
)

// MessageTone represents the tone of a message
type MessageTone string

const (
	// ToneNeutral is a neutral tone
	ToneNeutral MessageTone = "neutral"

	// ToneFunny is a humorous tone
	ToneFunny MessageTone = "funny"
)

// Embed colors
const (
	ColorCentralBox = 0x57F287
	ColorPeer       = 0x3498DB
	ColorCashOut    = 0xED4245
	ColorDefault    = 0x5865F2
)

// Config holds configuration for the messaging service
type Config struct {
	// Formatter renders chip amounts as currency
	Formatter *money.Formatter

	// PaymentLinkBase is the prefix for payment links, empty disables them
	PaymentLinkBase string

	// Seed makes message selection repeatable; zero seeds from the clock
	Seed int64
}

// GetEntryEmbedInput contains parameters for announcing a ledger entry
type GetEntryEmbedInput struct {
	SessionID string
	Entry     *models.LogEntry
	ChipValue decimal.Decimal

	// Players are used to find payment IDs for settlement lines
	Players []*models.Player
}

// GetEntryEmbedOutput contains the embed for a ledger entry
type GetEntryEmbedOutput struct {
	Embed *discordgo.MessageEmbed
}

// GetSessionEmbedInput contains parameters for describing a session
type GetSessionEmbedInput struct {
	Session *models.Session

	// InPlay is the number of box chips currently held by players
	InPlay int64
}

// GetSessionEmbedOutput contains the session embed
type GetSessionEmbedOutput struct {
	Embed *discordgo.MessageEmbed
}

// GetSettlementLinesInput contains parameters for rendering payments
type GetSettlementLinesInput struct {
	Settlement *models.Settlement
	ChipValue  decimal.Decimal
	Players    []*models.Player
}

// SettlementLine is one rendered payment
type SettlementLine struct {
	// Text is markdown, e.g. **Bob** pays **Alice** `฿100.00`
	Text string

	// PaymentLink is empty when the recipient has no payment ID
	PaymentLink string
}

// GetSettlementLinesOutput contains the rendered payments
type GetSettlementLinesOutput struct {
	Lines []*SettlementLine
}

// GetErrorMessageInput contains parameters for getting an error message
type GetErrorMessageInput struct {
	Err error

	// PreferredTone is the preferred tone for the message (optional)
	PreferredTone MessageTone
}

// GetErrorMessageOutput contains the result of getting an error message
type GetErrorMessageOutput struct {
	Message string
	Tone    MessageTone
}
