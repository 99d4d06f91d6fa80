package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/KirkDiggler/pokerledger/internal/models"
	statsRepo "github.com/KirkDiggler/pokerledger/internal/repositories/stats"
)

// StatsConfig holds configuration for the stats sink
type StatsConfig struct {
	StatsRepo statsRepo.Repository
}

// StatsSink folds game end summaries into lifetime player stats
type StatsSink struct {
	repo statsRepo.Repository
}

// NewStats creates a stats sink
func NewStats(cfg *StatsConfig) (*StatsSink, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.StatsRepo == nil {
		return nil, errors.New("stats repository cannot be nil")
	}
	return &StatsSink{repo: cfg.StatsRepo}, nil
}

// Name implements Sink
func (s *StatsSink) Name() string {
	return "stats"
}

// Send implements Sink. Entries other than game end summaries are ignored.
func (s *StatsSink) Send(ctx context.Context, input *NotifyInput) error {
	summary, ok := input.Entry.Event.(models.GameEndSummary)
	if !ok || summary.Summary == nil {
		return nil
	}

	err := s.repo.RecordSettlement(ctx, &statsRepo.RecordSettlementInput{
		SessionID:  input.SessionID,
		Settlement: summary.Summary,
	})
	if err != nil {
		return fmt.Errorf("failed to record settlement: %w", err)
	}

	return nil
}
