package ledger

import (
	"log/slog"
	"time"

	"github.com/KirkDiggler/pokerledger/internal/common/clock"
	"github.com/KirkDiggler/pokerledger/internal/common/uuid"
	ledgerCore "github.com/KirkDiggler/pokerledger/internal/ledger"
	"github.com/KirkDiggler/pokerledger/internal/models"
	playerRepo "github.com/KirkDiggler/pokerledger/internal/repositories/player"
	sessionRepo "github.com/KirkDiggler/pokerledger/internal/repositories/session"
	statsRepo "github.com/KirkDiggler/pokerledger/internal/repositories/stats"
	"github.com/KirkDiggler/pokerledger/internal/services/notification"
	"github.com/shopspring/decimal"
)

// Config holds configuration for the ledger service
type Config struct {
	// Repository dependencies
	SessionRepo sessionRepo.Repository
	PlayerRepo  playerRepo.Repository
	StatsRepo   statsRepo.Repository

	// Service dependencies
	NotificationService notification.Service

	// Utility dependencies
	Clock         clock.Clock
	UUIDGenerator uuid.UUID
	Logger        *slog.Logger

	// SaveDebounce is how long a session must be idle before it is saved.
	// Zero or less saves after every command.
	SaveDebounce time.Duration

	// RecentSessionDays is the default window for ListRecentSessions
	RecentSessionDays int

	// DefaultChipValue is used for new sessions; zero means 0.5
	DefaultChipValue decimal.Decimal
}

// DefaultRecentSessionDays is used when Config.RecentSessionDays is unset
const DefaultRecentSessionDays = 30

// StartSessionInput defines the input for starting a session
type StartSessionInput struct {
	// Actor is the identity starting the session
	Actor string

	// ChipValue overrides the configured default when set
	ChipValue decimal.Decimal
}

// StartSessionOutput defines the output of starting a session
type StartSessionOutput struct {
	Session *models.Session
}

// GetSessionInput defines the input for reading a session
type GetSessionInput struct {
	SessionID string
}

// GetSessionOutput defines the output of reading a session
type GetSessionOutput struct {
	Session *models.Session
	Totals  ledgerCore.Totals
}

// ListRecentSessionsInput defines the input for listing recent sessions
type ListRecentSessionsInput struct {
	// Days overrides the configured window when positive
	Days int

	// Limit caps the number returned, zero means no cap
	Limit int64
}

// ListRecentSessionsOutput defines the output of listing recent sessions
type ListRecentSessionsOutput struct {
	SessionIDs []string
}

// AddPlayerInput defines the input for adding a guest player
type AddPlayerInput struct {
	SessionID string
	Name      string
	BuyIn     int64
	Actor     string
}

// AddPlayerOutput defines the output of adding a guest player
type AddPlayerOutput struct {
	Player *models.Player
}

// JoinGameInput defines the input for joining a game
type JoinGameInput struct {
	SessionID string
	Identity  models.Identity

	// PlayerID claims a guest row; empty joins as a new player
	PlayerID string

	BuyIn int64
}

// JoinGameOutput defines the output of joining a game
type JoinGameOutput struct {
	Player *models.Player
}

// BuyInInput defines the input for buying chips
type BuyInInput struct {
	SessionID string
	BuyerID   string
	Amount    int64

	// SellerID is another player; empty buys from the central box
	SellerID string

	Actor string
}

// BuyInOutput defines the output of buying chips
type BuyInOutput struct {
	Entry *models.LogEntry
}

// CashOutInput defines the input for cashing out
type CashOutInput struct {
	SessionID string
	PlayerID  string
	Amount    int64
	Actor     string
}

// CashOutOutput defines the output of cashing out
type CashOutOutput struct {
	Entry *models.LogEntry
}

// EndGameInput defines the input for ending a game
type EndGameInput struct {
	SessionID string
	Actor     string
}

// EndGameOutput defines the output of ending a game
type EndGameOutput struct {
	Session *models.Session
}

// SubmitFinalCountsInput defines the input for settling a game
type SubmitFinalCountsInput struct {
	SessionID string

	// Counts maps player ID to final chips; missing players count as zero
	Counts map[string]int64

	Actor string
}

// SubmitFinalCountsOutput defines the output of settling a game
type SubmitFinalCountsOutput struct {
	Settlement *models.Settlement
}

// ResumeGameInput defines the input for resuming a finished game
type ResumeGameInput struct {
	SessionID string
	Actor     string
}

// ResumeGameOutput defines the output of resuming a game
type ResumeGameOutput struct {
	Session *models.Session
}

// SetChipValueInput defines the input for setting the exchange rate
type SetChipValueInput struct {
	SessionID string

	// Chips are worth Currency in total
	Chips    int64
	Currency decimal.Decimal
}

// SetChipValueOutput defines the output of setting the exchange rate
type SetChipValueOutput struct {
	ChipValue decimal.Decimal
}

// UpdatePaymentIDInput defines the input for updating a payment ID
type UpdatePaymentIDInput struct {
	SessionID string
	PlayerID  string
	PaymentID string
}

// UpdatePaymentIDOutput defines the output of updating a payment ID
type UpdatePaymentIDOutput struct {
	Player *models.Player
}

// ToggleQuickAddInput defines the input for toggling quick-add
type ToggleQuickAddInput struct {
	Name string
}

// ToggleQuickAddOutput defines the output of toggling quick-add
type ToggleQuickAddOutput struct {
	QuickAdd bool
}

// ListQuickAddInput defines the input for listing quick-add names
type ListQuickAddInput struct{}

// ListQuickAddOutput defines the output of listing quick-add names
type ListQuickAddOutput struct {
	Names []string
}

// GetLeaderboardInput defines the input for the leaderboard
type GetLeaderboardInput struct {
	Limit int64
}

// GetLeaderboardOutput defines the output of the leaderboard
type GetLeaderboardOutput struct {
	Leaderboard *models.Leaderboard
}

// GetPlayerHistoryInput defines the input for a player's history
type GetPlayerHistoryInput struct {
	SessionID string
	PlayerID  string
}

// GetPlayerHistoryOutput defines the output of a player's history
type GetPlayerHistoryOutput struct {
	Player  *models.Player
	Entries []*models.LogEntry
}

// SubscribeInput defines the input for watching a session
type SubscribeInput struct {
	SessionID string
}
