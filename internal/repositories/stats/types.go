package stats

import "github.com/KirkDiggler/pokerledger/internal/models"

// RecordSettlementInput contains parameters for recording a settled session
type RecordSettlementInput struct {
	SessionID  string
	Settlement *models.Settlement
}

// GetPlayerStatsInput contains parameters for retrieving one player's stats
type GetPlayerStatsInput struct {
	Name string
}

// GetLeaderboardInput contains parameters for retrieving the leaderboard
type GetLeaderboardInput struct {
	// Limit caps the number of entries, zero means all
	Limit int64
}

// contribution is what one session added to one player's stats
type contribution struct {
	Name    string `json:"name"`
	Balance int64  `json:"balance"`
}
