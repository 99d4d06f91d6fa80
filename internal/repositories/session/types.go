package session

import (
	"time"

	"github.com/KirkDiggler/pokerledger/internal/models"
)

// NextSessionIDInput contains parameters for allocating a session ID
type NextSessionIDInput struct {
	// Date picks the day the ID belongs to
	Date time.Time
}

// NextSessionIDOutput contains an allocated session ID
type NextSessionIDOutput struct {
	SessionID  string
	DatePrefix string
}

// CreateSessionInput contains parameters for creating a session
type CreateSessionInput struct {
	Session *models.Session
}

// GetSessionInput contains parameters for loading a session
type GetSessionInput struct {
	SessionID string
}

// SaveSessionInput contains parameters for a merge save
type SaveSessionInput struct {
	Session *models.Session

	// ExpectedState, when set, is the state the stored document must be in
	// for the merge to apply. Empty skips the check.
	ExpectedState models.GameState
}

// TransitionGameStateInput contains parameters for a compare-and-set save
type TransitionGameStateInput struct {
	// Session is the full document after the transition
	Session *models.Session

	// From is the state the stored document must still be in
	From models.GameState
}

// ListSessionsInput contains parameters for listing sessions
type ListSessionsInput struct {
	// Since excludes sessions created before this time
	Since time.Time

	// Limit caps the number of IDs returned, zero means no cap
	Limit int64
}

// ListSessionsOutput contains session IDs, newest first
type ListSessionsOutput struct {
	SessionIDs []string
}

// SubscribeInput contains parameters for watching a session
type SubscribeInput struct {
	SessionID string
}

// Subscription delivers session documents as they change
type Subscription struct {
	// Updates is closed when the subscription ends
	Updates <-chan *models.Session

	close func() error
}

// NewSubscription wraps an update channel and the function that ends it
func NewSubscription(updates <-chan *models.Session, closeFn func() error) *Subscription {
	return &Subscription{Updates: updates, close: closeFn}
}

// Close ends the subscription
func (s *Subscription) Close() error {
	if s == nil || s.close == nil {
		return nil
	}
	return s.close()
}
