package player

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/pokerledger/internal/repositories/player Repository

import (
	"context"

	"github.com/KirkDiggler/pokerledger/internal/models"
)

// Repository defines the interface for player profile persistence. Profiles
// are keyed by display name and outlive any single session.
type Repository interface {
	// GetProfile retrieves a profile by name
	GetProfile(ctx context.Context, input *GetProfileInput) (*models.PlayerProfile, error)

	// SavePaymentID sets the payment ID on a profile, creating it if needed
	SavePaymentID(ctx context.Context, input *SavePaymentIDInput) error

	// ToggleQuickAdd flips a name on or off the quick-add roster
	ToggleQuickAdd(ctx context.Context, input *ToggleQuickAddInput) (*ToggleQuickAddOutput, error)

	// ListQuickAdd returns the quick-add roster sorted by name
	ListQuickAdd(ctx context.Context, input *ListQuickAddInput) (*ListQuickAddOutput, error)
}
