package stats

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/pokerledger/internal/repositories/stats Repository

import (
	"context"

	"github.com/KirkDiggler/pokerledger/internal/models"
)

// Repository aggregates settled sessions into lifetime player stats
type Repository interface {
	// RecordSettlement adds a session's results. Recording the same session
	// again replaces its earlier contribution.
	RecordSettlement(ctx context.Context, input *RecordSettlementInput) error

	// GetPlayerStats retrieves lifetime stats for one player name
	GetPlayerStats(ctx context.Context, input *GetPlayerStatsInput) (*models.PlayerStats, error)

	// GetLeaderboard retrieves players ordered by net chips
	GetLeaderboard(ctx context.Context, input *GetLeaderboardInput) (*models.Leaderboard, error)
}
