package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// GameState represents where a session is in its lifecycle
type GameState string

const (
	// GameStateInProgress is normal play; buy-ins, cash-outs and joins are allowed
	GameStateInProgress GameState = "in_progress"

	// GameStateAwaitingCounts indicates the organizer ended the game and final counts are being collected
	GameStateAwaitingCounts GameState = "awaiting_counts"

	// GameStateFinished indicates settlement has been computed
	GameStateFinished GameState = "finished"
)

// IsValid reports whether the state is one of the known game states
func (s GameState) IsValid() bool {
	switch s {
	case GameStateInProgress, GameStateAwaitingCounts, GameStateFinished:
		return true
	}
	return false
}

// BlindLevel is one step of the blind schedule
type BlindLevel struct {
	SmallBlind int64 `json:"sb"`
	BigBlind   int64 `json:"bb"`
}

// DefaultBlinds is the schedule a new session starts with
func DefaultBlinds() []BlindLevel {
	return []BlindLevel{
		{SmallBlind: 5, BigBlind: 10},
		{SmallBlind: 10, BigBlind: 20},
		{SmallBlind: 15, BigBlind: 30},
		{SmallBlind: 20, BigBlind: 40},
		{SmallBlind: 25, BigBlind: 50},
		{SmallBlind: 30, BigBlind: 60},
	}
}

// DefaultTimerDuration is the length of one blind level
const DefaultTimerDuration = 8 * time.Minute

// Session is one poker game, persisted as a single document
type Session struct {
	// ID is the date-prefixed, sequence-suffixed identifier (YYYYMMDD-N)
	ID string `json:"id"`

	// DatePrefix is the YYYYMMDD part of the ID
	DatePrefix string `json:"datePrefix"`

	// Players in insertion order
	Players []*Player `json:"players"`

	// TransactionLog is the append-only ledger
	TransactionLog []*LogEntry `json:"transactionLog"`

	// ChipValue is the currency value of one chip
	ChipValue decimal.Decimal `json:"chipValue"`

	// GameState is the current lifecycle state
	GameState GameState `json:"gameState"`

	// FinalCalculations is set only while GameState is finished
	FinalCalculations *Settlement `json:"finalCalculations"`

	// Blinds is the blind schedule for the session
	Blinds []BlindLevel `json:"blinds"`

	// TimerDuration is the length of one blind level
	TimerDuration time.Duration `json:"timerDuration"`

	// CreatedAt is when the session was started
	CreatedAt time.Time `json:"createdAt"`

	// CreatedBy is the identity that started the session
	CreatedBy string `json:"createdBy"`

	// UpdatedAt is when the session was last changed
	UpdatedAt time.Time `json:"updatedAt"`
}

// TotalBuyIn returns the sum of every player's net buy-in
func (s *Session) TotalBuyIn() int64 {
	var total int64
	for _, p := range s.Players {
		total += p.BuyIn
	}
	return total
}

// Clone returns a deep copy of the session. Log entries and the settlement are
// immutable once created, so they are shared.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	out := *s
	out.Players = make([]*Player, len(s.Players))
	for i, p := range s.Players {
		out.Players[i] = p.Clone()
	}
	out.TransactionLog = append([]*LogEntry(nil), s.TransactionLog...)
	out.Blinds = append([]BlindLevel(nil), s.Blinds...)
	return &out
}
