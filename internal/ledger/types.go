package ledger

import (
	"github.com/KirkDiggler/pokerledger/internal/common/clock"
	"github.com/KirkDiggler/pokerledger/internal/common/uuid"
	"github.com/KirkDiggler/pokerledger/internal/models"
	"github.com/shopspring/decimal"
)

// Config holds the dependencies of a session aggregate
type Config struct {
	// Clock stamps ledger entries
	Clock clock.Clock

	// UUIDGenerator assigns player and entry IDs
	UUIDGenerator uuid.UUID
}

// NewSessionInput defines the input for starting a session
type NewSessionInput struct {
	// ID is the allocated YYYYMMDD-N identifier
	ID string

	// DatePrefix is the YYYYMMDD part of ID
	DatePrefix string

	// ChipValue is the starting exchange rate; zero means the default
	ChipValue decimal.Decimal

	// CreatedBy is the identity starting the session
	CreatedBy string
}

// NewSessionOutput defines the output of starting a session
type NewSessionOutput struct {
	Session *Session
	Entry   *models.LogEntry
}

// AddPlayerInput defines the input for adding a guest row
type AddPlayerInput struct {
	Name string

	// BuyIn is taken from the central box, zero is allowed
	BuyIn int64

	// PaymentID is copied from the player's profile
	PaymentID string

	Actor string
}

// AddPlayerOutput defines the output of adding a guest row
type AddPlayerOutput struct {
	Player *models.Player
	Entry  *models.LogEntry
}

// JoinPlayerInput defines the input for a user joining the game
type JoinPlayerInput struct {
	Identity models.Identity

	// PlayerID claims an existing guest row; empty creates a new row named after the user
	PlayerID string

	BuyIn     int64
	PaymentID string
}

// JoinPlayerOutput defines the output of joining
type JoinPlayerOutput struct {
	Player *models.Player

	// Entry is nil when a claimed row bought no chips
	Entry *models.LogEntry
}

// RecordInitialBuyInInput defines the input for a player's first chips
type RecordInitialBuyInInput struct {
	PlayerID string
	Amount   int64
	Actor    string
}

// RecordPlayerBuyInInput defines the input for a later chip purchase
type RecordPlayerBuyInInput struct {
	BuyerID string
	Amount  int64

	// SellerID is another player selling chips; empty means the central box
	SellerID string

	Actor string
}

// RecordCashOutInput defines the input for returning chips to the box
type RecordCashOutInput struct {
	PlayerID string
	Amount   int64
	Actor    string
}

// SubmitFinalCountsInput defines the input for settling the game
type SubmitFinalCountsInput struct {
	// Counts maps player ID to final chips; players left out count as zero
	Counts map[string]int64

	Actor string
}

// SubmitFinalCountsOutput defines the output of a successful settlement
type SubmitFinalCountsOutput struct {
	Settlement *models.Settlement
	Entry      *models.LogEntry
}

// Totals summarises chip movement against the central box
type Totals struct {
	// IssuedFromBox is every chip handed out by the box
	IssuedFromBox int64

	// CashedOut is every chip returned to the box
	CashedOut int64
}

// InPlay is the number of box chips currently held by players
func (t Totals) InPlay() int64 {
	return t.IssuedFromBox - t.CashedOut
}
