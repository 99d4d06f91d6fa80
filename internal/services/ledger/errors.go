package ledger

import sessionRepo "github.com/KirkDiggler/pokerledger/internal/repositories/session"

// ServiceError is a custom error type for ledger service errors
type ServiceError string

// Error implements the error interface
func (e ServiceError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNilConfig              ServiceError = "config cannot be nil"
	ErrNilSessionRepo         ServiceError = "session repository cannot be nil"
	ErrNilPlayerRepo          ServiceError = "player repository cannot be nil"
	ErrNilStatsRepo           ServiceError = "stats repository cannot be nil"
	ErrNilNotificationService ServiceError = "notification service cannot be nil"
	ErrNilClock               ServiceError = "clock cannot be nil"
	ErrNilUUIDGenerator       ServiceError = "UUID generator cannot be nil"
	ErrEmptySessionID         ServiceError = "session ID is required"
	ErrClosed                 ServiceError = "ledger service is closed"
)

// Repository errors callers need to tell apart
var (
	ErrSessionNotFound = sessionRepo.ErrSessionNotFound
	ErrStateConflict   = sessionRepo.ErrStateConflict
)
