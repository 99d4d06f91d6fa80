package uuid

import "github.com/google/uuid"

// UUID generates identifiers for player rows and ledger entries
//
//go:generate mockgen -package=mocks -destination=mocks/mock_uuid.go github.com/KirkDiggler/pokerledger/internal/common/uuid UUID
type UUID interface {
	NewUUID() string
}

// DefaultUUID implements the UUID interface using random v4 UUIDs
type DefaultUUID struct{}

func New() *DefaultUUID {
	return &DefaultUUID{}
}

// NewUUID returns a new UUID
func (d *DefaultUUID) NewUUID() string {
	return uuid.New().String()
}

// TimeOrdered returns v7 UUIDs, which sort by creation time
type TimeOrdered struct{}

// NewUUID returns a new time-ordered UUID, falling back to v4 if the clock read fails
func (TimeOrdered) NewUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
