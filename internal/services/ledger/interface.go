package ledger

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/pokerledger/internal/services/ledger Service

import (
	"context"

	sessionRepo "github.com/KirkDiggler/pokerledger/internal/repositories/session"
)

// Service owns active poker sessions and exposes their commands
type Service interface {
	// StartSession creates a new session with the next ID for today
	StartSession(ctx context.Context, input *StartSessionInput) (*StartSessionOutput, error)

	// GetSession returns the current state of a session
	GetSession(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error)

	// ListRecentSessions returns IDs of recently created sessions, newest first
	ListRecentSessions(ctx context.Context, input *ListRecentSessionsInput) (*ListRecentSessionsOutput, error)

	// AddPlayer adds a guest player, optionally with an initial buy-in
	AddPlayer(ctx context.Context, input *AddPlayerInput) (*AddPlayerOutput, error)

	// JoinGame links the caller to a guest row or a new row of their own
	JoinGame(ctx context.Context, input *JoinGameInput) (*JoinGameOutput, error)

	// BuyIn records chips bought from the box or from another player
	BuyIn(ctx context.Context, input *BuyInInput) (*BuyInOutput, error)

	// CashOut records chips returned to the box
	CashOut(ctx context.Context, input *CashOutInput) (*CashOutOutput, error)

	// EndGame stops play and starts collecting final counts
	EndGame(ctx context.Context, input *EndGameInput) (*EndGameOutput, error)

	// SubmitFinalCounts settles the game
	SubmitFinalCounts(ctx context.Context, input *SubmitFinalCountsInput) (*SubmitFinalCountsOutput, error)

	// ResumeGame reopens a finished game
	ResumeGame(ctx context.Context, input *ResumeGameInput) (*ResumeGameOutput, error)

	// SetChipValue sets the session's exchange rate
	SetChipValue(ctx context.Context, input *SetChipValueInput) (*SetChipValueOutput, error)

	// UpdatePaymentID changes a player's payment ID in the session and their profile
	UpdatePaymentID(ctx context.Context, input *UpdatePaymentIDInput) (*UpdatePaymentIDOutput, error)

	// ToggleQuickAdd flips a name on or off the quick-add roster
	ToggleQuickAdd(ctx context.Context, input *ToggleQuickAddInput) (*ToggleQuickAddOutput, error)

	// ListQuickAdd returns the quick-add roster
	ListQuickAdd(ctx context.Context, input *ListQuickAddInput) (*ListQuickAddOutput, error)

	// GetLeaderboard returns lifetime standings
	GetLeaderboard(ctx context.Context, input *GetLeaderboardInput) (*GetLeaderboardOutput, error)

	// GetPlayerHistory returns the entries concerning one player
	GetPlayerHistory(ctx context.Context, input *GetPlayerHistoryInput) (*GetPlayerHistoryOutput, error)

	// Subscribe streams the session document as it is saved
	Subscribe(ctx context.Context, input *SubscribeInput) (*sessionRepo.Subscription, error)

	// Flush persists every session with unsaved changes
	Flush(ctx context.Context) error

	// Close flushes and stops accepting commands
	Close(ctx context.Context) error
}
