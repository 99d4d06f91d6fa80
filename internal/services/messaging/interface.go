package messaging

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/pokerledger/internal/services/messaging Service

import "context"

// Service is the interface for the messaging service
type Service interface {
	// GetEntryEmbed returns the Discord embed announcing a ledger entry
	GetEntryEmbed(ctx context.Context, input *GetEntryEmbedInput) (*GetEntryEmbedOutput, error)

	// GetSessionEmbed returns an embed describing the current state of a session
	GetSessionEmbed(ctx context.Context, input *GetSessionEmbedInput) (*GetSessionEmbedOutput, error)

	// GetSettlementLines returns one line per payment, with a payment link when the recipient has one
	GetSettlementLines(ctx context.Context, input *GetSettlementLinesInput) (*GetSettlementLinesOutput, error)

	// GetErrorMessage returns a user-friendly error message
	GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error)
}
