package models

// PlayerResult is one player's outcome at game end
type PlayerResult struct {
	// PlayerID is the ID of the player row
	PlayerID string `json:"id"`

	// Name is the player's display name
	Name string `json:"name"`

	// BuyIn is the net chips the player contributed
	BuyIn int64 `json:"buyIn"`

	// FinalChips is the player's chip count at game end
	FinalChips int64 `json:"finalChips"`

	// Balance is FinalChips - BuyIn; positive is a profit
	Balance int64 `json:"balance"`
}

// Transfer is a directed payment instruction that settles part of a debt
type Transfer struct {
	FromID string `json:"fromId"`
	From   string `json:"from"`
	ToID   string `json:"toId"`
	To     string `json:"to"`
	Amount int64  `json:"amount"`
}

// Settlement is the result of settling a session
type Settlement struct {
	// Players sorted by balance, largest profit first
	Players []*PlayerResult `json:"players"`

	// Transactions in the order they were produced
	Transactions []*Transfer `json:"transactions"`
}
