package session

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/pokerledger/internal/repositories/session Repository

import (
	"context"

	"github.com/KirkDiggler/pokerledger/internal/models"
)

// Repository defines the interface for session document persistence
type Repository interface {
	// NextSessionID allocates the next YYYYMMDD-N identifier for a day
	NextSessionID(ctx context.Context, input *NextSessionIDInput) (*NextSessionIDOutput, error)

	// CreateSession stores a new session document, failing if the ID is taken
	CreateSession(ctx context.Context, input *CreateSessionInput) error

	// GetSession loads a session document
	GetSession(ctx context.Context, input *GetSessionInput) (*models.Session, error)

	// SaveSession merges the document into the stored one. It never writes
	// gameState or finalCalculations; those change only through TransitionGameState.
	// With ExpectedState set it returns ErrStateConflict once the stored state
	// has moved on.
	SaveSession(ctx context.Context, input *SaveSessionInput) error

	// TransitionGameState writes the whole document if the stored game state
	// still equals From, otherwise returns ErrStateConflict
	TransitionGameState(ctx context.Context, input *TransitionGameStateInput) error

	// ListSessions returns session IDs created since a point in time, newest first
	ListSessions(ctx context.Context, input *ListSessionsInput) (*ListSessionsOutput, error)

	// Subscribe streams the session document every time it is written
	Subscribe(ctx context.Context, input *SubscribeInput) (*Subscription, error)
}
