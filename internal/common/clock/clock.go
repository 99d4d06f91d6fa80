package clock

import "time"

// Clock is the time source for ledger timestamps and session IDs
//
//go:generate mockgen -package=mocks -destination=mocks/mock_clock.go github.com/KirkDiggler/pokerledger/internal/common/clock Clock
type Clock interface {
	Now() time.Time
}

// DefaultClock implements the Clock interface using the system clock
type DefaultClock struct{}

// New returns the system clock
func New() *DefaultClock {
	return &DefaultClock{}
}

// Now returns the current time
func (c *DefaultClock) Now() time.Time {
	return time.Now()
}

// Fixed always returns the same instant. Useful for offline runs and tests.
type Fixed time.Time

// Now returns the fixed instant
func (f Fixed) Now() time.Time {
	return time.Time(f)
}
