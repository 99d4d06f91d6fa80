package ledger

import "fmt"

// LedgerError is a custom error type for ledger errors
type LedgerError string

// Error implements the error interface
func (e LedgerError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrValidation        LedgerError = "validation failed"
	ErrInvalidAmount     LedgerError = "invalid amount"
	ErrAmountTooLarge    LedgerError = "amount too large"
	ErrEmptyName         LedgerError = "name is required"
	ErrDuplicateName     LedgerError = "player name already taken"
	ErrPlayerNotFound    LedgerError = "player not found"
	ErrExceedsBuyIn      LedgerError = "cash out exceeds net buy-in"
	ErrSelfSale          LedgerError = "player cannot buy chips from themselves"
	ErrAlreadyJoined     LedgerError = "user already has a player in this session"
	ErrPlayerClaimed     LedgerError = "player is already joined"
	ErrUnknownEventType  LedgerError = "not a lifecycle event type"
	ErrInvalidGameState  LedgerError = "action not allowed in current game state"
	ErrNilConfig         LedgerError = "config cannot be nil"
	ErrNilClock          LedgerError = "clock cannot be nil"
	ErrNilUUIDGenerator  LedgerError = "UUID generator cannot be nil"
	ErrNilDocument       LedgerError = "session document cannot be nil"
	ErrEmptySessionID    LedgerError = "session ID is required"
	ErrInvalidChipValue  LedgerError = "chip value must be positive"
	ErrMissingIdentity   LedgerError = "user identity is required"
	ErrInvalidStoredData LedgerError = "stored session is invalid"
)

// ValidationError is a caller-facing rejection of bad input. Nothing has been
// mutated when one is returned.
type ValidationError struct {
	// Field names the offending input
	Field string

	// Err is the specific reason, one of the LedgerError values
	Err error
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

// Unwrap exposes the specific reason to errors.Is
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is matches ErrValidation for any validation error
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(field string, err error) error {
	return &ValidationError{Field: field, Err: err}
}

// StateError reports an action attempted in the wrong game state
type StateError struct {
	Action string
	State  string
}

// Error implements the error interface
func (e *StateError) Error() string {
	return fmt.Sprintf("cannot %s while game is %s", e.Action, e.State)
}

// Is matches ErrInvalidGameState
func (e *StateError) Is(target error) bool {
	return target == ErrInvalidGameState
}
