package api

import (
	"github.com/KirkDiggler/pokerledger/internal/models"
	"github.com/shopspring/decimal"
)

// StartSessionRequest is the body of POST /sessions
type StartSessionRequest struct {
	ChipValue decimal.Decimal `json:"chipValue"`
}

// AddPlayerRequest is the body of POST /sessions/{id}/players
type AddPlayerRequest struct {
	Name  string `json:"name"`
	BuyIn int64  `json:"buyIn"`
}

// JoinRequest is the body of POST /sessions/{id}/join
type JoinRequest struct {
	// PlayerID claims a guest row; empty joins as a new player
	PlayerID string `json:"playerId"`
	BuyIn    int64  `json:"buyIn"`
}

// BuyInRequest is the body of POST /sessions/{id}/buyins
type BuyInRequest struct {
	BuyerID string `json:"buyerId"`
	Amount  int64  `json:"amount"`

	// SellerID is empty when buying from the central box
	SellerID string `json:"sellerId"`
}

// CashOutRequest is the body of POST /sessions/{id}/cashouts
type CashOutRequest struct {
	PlayerID string `json:"playerId"`
	Amount   int64  `json:"amount"`
}

// FinalCountsRequest is the body of POST /sessions/{id}/counts
type FinalCountsRequest struct {
	// Counts maps player ID to final chips
	Counts map[string]int64 `json:"counts"`
}

// ChipValueRequest is the body of PUT /sessions/{id}/chip-value
type ChipValueRequest struct {
	Chips    int64           `json:"chips"`
	Currency decimal.Decimal `json:"currency"`
}

// PaymentIDRequest is the body of PUT /sessions/{id}/players/{playerId}/payment-id
type PaymentIDRequest struct {
	PaymentID string `json:"paymentId"`
}

// SessionResponse is a session with its live totals
type SessionResponse struct {
	Session *models.Session `json:"session"`
	InPlay  int64           `json:"inPlay"`
}

// SessionListResponse lists session IDs, newest first
type SessionListResponse struct {
	SessionIDs []string `json:"sessionIds"`
}

// EntryResponse wraps one ledger entry
type EntryResponse struct {
	Entry *models.LogEntry `json:"entry"`
}

// HistoryResponse is one player's part of the ledger
type HistoryResponse struct {
	Player  *models.Player     `json:"player"`
	Entries []*models.LogEntry `json:"entries"`
}

// ChipValueResponse is the session's new exchange rate
type ChipValueResponse struct {
	ChipValue decimal.Decimal `json:"chipValue"`
}

// QuickAddResponse is the quick-add roster
type QuickAddResponse struct {
	Names []string `json:"names"`
}

// QuickAddToggleResponse is one name's new quick-add flag
type QuickAddToggleResponse struct {
	Name     string `json:"name"`
	QuickAdd bool   `json:"quickAdd"`
}
