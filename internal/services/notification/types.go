package notification

import (
	"log/slog"
	"time"

	"github.com/KirkDiggler/pokerledger/internal/models"
	"github.com/shopspring/decimal"
)

// NotifyInput is one ledger entry and the session context needed to render it
type NotifyInput struct {
	SessionID string
	Entry     *models.LogEntry
	ChipValue decimal.Decimal

	// Players is a snapshot of the session's players when the entry was appended
	Players []*models.Player
}

// Config holds configuration for the notification service
type Config struct {
	// Sinks receive every entry in order
	Sinks []Sink

	// Timeout bounds each delivery to each sink
	Timeout time.Duration

	// QueueSize is the number of entries buffered before new ones are dropped
	QueueSize int

	// Logger is optional; defaults to slog.Default()
	Logger *slog.Logger
}

const (
	defaultTimeout   = 10 * time.Second
	defaultQueueSize = 256
)
