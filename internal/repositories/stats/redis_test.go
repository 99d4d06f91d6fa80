package stats

import (
	"context"
	"testing"

	"github.com/KirkDiggler/pokerledger/internal/models"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr     *miniredis.Miniredis
	client *redis.Client
	repo   Repository
	ctx    context.Context
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	repo, err := NewRedis(&Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.repo = repo
	s.ctx = context.Background()
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func settled(results ...*models.PlayerResult) *models.Settlement {
	return &models.Settlement{Players: results}
}

func result(name string, balance int64) *models.PlayerResult {
	return &models.PlayerResult{PlayerID: name, Name: name, Balance: balance}
}

func (s *RedisRepositoryTestSuite) TestRecordAcrossSessions() {
	s.Require().NoError(s.repo.RecordSettlement(s.ctx, &RecordSettlementInput{
		SessionID:  "20250614-1",
		Settlement: settled(result("Alice", 200), result("Bob", -200), result("Carol", 0)),
	}))
	s.Require().NoError(s.repo.RecordSettlement(s.ctx, &RecordSettlementInput{
		SessionID:  "20250615-1",
		Settlement: settled(result("alice", -50), result("Bob", 50)),
	}))

	alice, err := s.repo.GetPlayerStats(s.ctx, &GetPlayerStatsInput{Name: "ALICE"})
	s.Require().NoError(err)
	s.Equal(&models.PlayerStats{Name: "Alice", Games: 2, NetChips: 150, Wins: 1, Losses: 1}, alice)

	carol, err := s.repo.GetPlayerStats(s.ctx, &GetPlayerStatsInput{Name: "Carol"})
	s.Require().NoError(err)
	s.Equal(int64(1), carol.BreakEvens)

	board, err := s.repo.GetLeaderboard(s.ctx, &GetLeaderboardInput{})
	s.Require().NoError(err)
	s.Require().Len(board.Entries, 3)
	s.Equal("Alice", board.Entries[0].Name)
	s.Equal("Carol", board.Entries[1].Name)
	s.Equal("Bob", board.Entries[2].Name)
	s.Equal(int64(-150), board.Entries[2].NetChips)

	top, err := s.repo.GetLeaderboard(s.ctx, &GetLeaderboardInput{Limit: 1})
	s.Require().NoError(err)
	s.Len(top.Entries, 1)
}

func (s *RedisRepositoryTestSuite) TestRecordingASessionAgainReplacesIt() {
	s.Require().NoError(s.repo.RecordSettlement(s.ctx, &RecordSettlementInput{
		SessionID:  "20250614-1",
		Settlement: settled(result("Alice", 200), result("Bob", -200)),
	}))

	// Resumed and settled again with a different outcome and without Bob
	s.Require().NoError(s.repo.RecordSettlement(s.ctx, &RecordSettlementInput{
		SessionID:  "20250614-1",
		Settlement: settled(result("Alice", -100), result("Dan", 100)),
	}))

	alice, err := s.repo.GetPlayerStats(s.ctx, &GetPlayerStatsInput{Name: "Alice"})
	s.Require().NoError(err)
	s.Equal(&models.PlayerStats{Name: "Alice", Games: 1, NetChips: -100, Losses: 1}, alice)

	_, err = s.repo.GetPlayerStats(s.ctx, &GetPlayerStatsInput{Name: "Bob"})
	s.ErrorIs(err, ErrStatsNotFound)

	board, err := s.repo.GetLeaderboard(s.ctx, &GetLeaderboardInput{})
	s.Require().NoError(err)
	s.Require().Len(board.Entries, 2)
	s.Equal("Dan", board.Entries[0].Name)
	s.Equal("Alice", board.Entries[1].Name)
}

func (s *RedisRepositoryTestSuite) TestEmptyLeaderboard() {
	board, err := s.repo.GetLeaderboard(s.ctx, &GetLeaderboardInput{})
	s.Require().NoError(err)
	s.Empty(board.Entries)
}
