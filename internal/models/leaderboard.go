package models

// PlayerStats represents a player's results across all settled sessions
type PlayerStats struct {
	// Name is the display name of the player
	Name string `json:"name"`

	// Games is the number of settled sessions the player took part in
	Games int64 `json:"games"`

	// NetChips is the sum of the player's balances
	NetChips int64 `json:"netChips"`

	// Wins counts sessions that ended with a positive balance
	Wins int64 `json:"wins"`

	// Losses counts sessions that ended with a negative balance
	Losses int64 `json:"losses"`

	// BreakEvens counts sessions that ended with a zero balance
	BreakEvens int64 `json:"breakEvens"`
}

// Leaderboard represents lifetime standings
type Leaderboard struct {
	// Entries sorted by NetChips, highest first
	Entries []*PlayerStats `json:"entries"`
}
