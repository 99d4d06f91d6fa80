package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/pokerledger/internal/common/clock"
	"github.com/KirkDiggler/pokerledger/internal/common/uuid"
	ledgerCore "github.com/KirkDiggler/pokerledger/internal/ledger"
	"github.com/KirkDiggler/pokerledger/internal/models"
	playerRepo "github.com/KirkDiggler/pokerledger/internal/repositories/player"
	sessionRepo "github.com/KirkDiggler/pokerledger/internal/repositories/session"
	statsRepo "github.com/KirkDiggler/pokerledger/internal/repositories/stats"
	notificationMocks "github.com/KirkDiggler/pokerledger/internal/services/notification/mocks"
)

// SharedStoreTestSuite runs two service instances against one Redis, the way
// the bot and the API share a store
type SharedStoreTestSuite struct {
	suite.Suite
	mr       *miniredis.Miniredis
	client   *redis.Client
	mockCtrl *gomock.Controller
	repo     sessionRepo.Repository
	ctx      context.Context
}

func (s *SharedStoreTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr
	s.client = redis.NewClient(&redis.Options{Addr: s.mr.Addr()})
	s.mockCtrl = gomock.NewController(s.T())
	s.ctx = context.Background()

	repo, err := sessionRepo.NewRedis(&sessionRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *SharedStoreTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
	s.client.Close()
	s.mr.Close()
}

func TestSharedStoreTestSuite(t *testing.T) {
	suite.Run(t, new(SharedStoreTestSuite))
}

func (s *SharedStoreTestSuite) newService(debounce time.Duration) *service {
	players, err := playerRepo.NewRedis(&playerRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)
	stats, err := statsRepo.NewRedis(&statsRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)

	notifier := notificationMocks.NewMockService(s.mockCtrl)
	notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).AnyTimes()

	svc, err := New(&Config{
		SessionRepo:         s.repo,
		PlayerRepo:          players,
		StatsRepo:           stats,
		NotificationService: notifier,
		Clock:               clock.New(),
		UUIDGenerator:       uuid.New(),
		SaveDebounce:        debounce,
	})
	s.Require().NoError(err)
	return svc
}

// startWithAlice starts a session on a and seats Alice with 400 chips
func (s *SharedStoreTestSuite) startWithAlice(a *service) (sessionID, aliceID string) {
	started, err := a.StartSession(s.ctx, &StartSessionInput{Actor: "organizer"})
	s.Require().NoError(err)

	added, err := a.AddPlayer(s.ctx, &AddPlayerInput{
		SessionID: started.Session.ID,
		Name:      "Alice",
		BuyIn:     400,
	})
	s.Require().NoError(err)
	s.Require().NoError(a.Flush(s.ctx))

	return started.Session.ID, added.Player.ID
}

func (s *SharedStoreTestSuite) stored(sessionID string) *models.Session {
	doc, err := s.repo.GetSession(s.ctx, &sessionRepo.GetSessionInput{SessionID: sessionID})
	s.Require().NoError(err)
	return doc
}

func (s *SharedStoreTestSuite) TestBuyInAfterGameEndedElsewhere() {
	a := s.newService(0)
	b := s.newService(0)
	sessionID, aliceID := s.startWithAlice(a)

	_, err := b.EndGame(s.ctx, &EndGameInput{SessionID: sessionID})
	s.Require().NoError(err)

	// a still holds the in-progress copy
	_, err = a.BuyIn(s.ctx, &BuyInInput{SessionID: sessionID, BuyerID: aliceID, Amount: 100})
	s.ErrorIs(err, ErrStateConflict)

	doc := s.stored(sessionID)
	s.Equal(models.GameStateAwaitingCounts, doc.GameState)
	s.Equal(int64(400), doc.TotalBuyIn())

	// After the reload a sees the ended game and refuses the buy-in outright
	_, err = a.BuyIn(s.ctx, &BuyInInput{SessionID: sessionID, BuyerID: aliceID, Amount: 100})
	var stateErr *ledgerCore.StateError
	s.ErrorAs(err, &stateErr)
	s.Equal(int64(400), s.stored(sessionID).TotalBuyIn())
}

func (s *SharedStoreTestSuite) TestDebouncedBuyInAfterGameEndedElsewhere() {
	a := s.newService(time.Hour)
	b := s.newService(0)
	sessionID, aliceID := s.startWithAlice(a)

	_, err := b.EndGame(s.ctx, &EndGameInput{SessionID: sessionID})
	s.Require().NoError(err)

	_, err = a.BuyIn(s.ctx, &BuyInInput{SessionID: sessionID, BuyerID: aliceID, Amount: 100})
	s.Require().NoError(err)

	// The pending merge is refused when it finally goes out
	s.ErrorIs(a.Flush(s.ctx), ErrStateConflict)

	doc := s.stored(sessionID)
	s.Equal(models.GameStateAwaitingCounts, doc.GameState)
	s.Equal(int64(400), doc.TotalBuyIn())

	got, err := a.GetSession(s.ctx, &GetSessionInput{SessionID: sessionID})
	s.Require().NoError(err)
	s.Equal(models.GameStateAwaitingCounts, got.Session.GameState)
}

func (s *SharedStoreTestSuite) TestMergeSaveStillAppliesInSameState() {
	a := s.newService(0)
	b := s.newService(0)
	sessionID, aliceID := s.startWithAlice(a)

	_, err := b.GetSession(s.ctx, &GetSessionInput{SessionID: sessionID})
	s.Require().NoError(err)

	_, err = a.BuyIn(s.ctx, &BuyInInput{SessionID: sessionID, BuyerID: aliceID, Amount: 100})
	s.Require().NoError(err)

	s.Equal(int64(500), s.stored(sessionID).TotalBuyIn())
}
