package session

import (
	"context"
	"testing"
	"time"

	"github.com/KirkDiggler/pokerledger/internal/models"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	client  *redis.Client
	repo    Repository
	ctx     context.Context
	testNow time.Time
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	// Create a new miniredis server for each test
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	// Create a Redis client connected to the miniredis server
	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	// Create the repository
	repo, err := NewRedis(&Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.repo = repo

	s.ctx = context.Background()
	s.testNow = time.Date(2025, 6, 14, 20, 0, 0, 0, time.UTC)
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) newSession(id string, createdAt time.Time) *models.Session {
	final := int64(600)
	return &models.Session{
		ID:         id,
		DatePrefix: createdAt.Format("20060102"),
		Players: []*models.Player{
			{ID: "p1", Name: "Alice", BuyIn: 400, FinalChips: &final, Status: models.PlayerStatusJoined, OwnerRef: "u1"},
			{ID: "p2", Name: "Bob", BuyIn: 400, Status: models.PlayerStatusGuest},
		},
		TransactionLog: []*models.LogEntry{
			{ID: "e1", Seq: 1, Timestamp: createdAt, Event: models.SessionStarted{Message: "Session " + id + " started."}},
			{ID: "e2", Seq: 2, Timestamp: createdAt, Actor: "u1", Event: models.InitialBuyIn{PlayerID: "p1", Player: "Alice", Amount: 400, Source: models.SourceCentralBox}},
		},
		ChipValue:     decimal.RequireFromString("0.5"),
		GameState:     models.GameStateInProgress,
		Blinds:        models.DefaultBlinds(),
		TimerDuration: models.DefaultTimerDuration,
		CreatedAt:     createdAt,
		CreatedBy:     "u1",
		UpdatedAt:     createdAt,
	}
}

func (s *RedisRepositoryTestSuite) TestNextSessionIDIsPerDay() {
	first, err := s.repo.NextSessionID(s.ctx, &NextSessionIDInput{Date: s.testNow})
	s.Require().NoError(err)
	s.Equal("20250614-1", first.SessionID)
	s.Equal("20250614", first.DatePrefix)

	second, err := s.repo.NextSessionID(s.ctx, &NextSessionIDInput{Date: s.testNow.Add(time.Hour)})
	s.Require().NoError(err)
	s.Equal("20250614-2", second.SessionID)

	nextDay, err := s.repo.NextSessionID(s.ctx, &NextSessionIDInput{Date: s.testNow.AddDate(0, 0, 1)})
	s.Require().NoError(err)
	s.Equal("20250615-1", nextDay.SessionID)
}

func (s *RedisRepositoryTestSuite) TestCreateAndGetSession() {
	session := s.newSession("20250614-1", s.testNow)

	err := s.repo.CreateSession(s.ctx, &CreateSessionInput{Session: session})
	s.Require().NoError(err)

	loaded, err := s.repo.GetSession(s.ctx, &GetSessionInput{SessionID: session.ID})
	s.Require().NoError(err)

	s.Equal(session.ID, loaded.ID)
	s.Equal(session.DatePrefix, loaded.DatePrefix)
	s.Equal(session.Players, loaded.Players)
	s.Equal(session.Blinds, loaded.Blinds)
	s.Equal(session.TimerDuration, loaded.TimerDuration)
	s.Equal(models.GameStateInProgress, loaded.GameState)
	s.True(session.ChipValue.Equal(loaded.ChipValue))
	s.True(session.CreatedAt.Equal(loaded.CreatedAt))
	s.Nil(loaded.FinalCalculations)

	s.Require().Len(loaded.TransactionLog, 2)
	s.Equal(session.TransactionLog[1].Event, loaded.TransactionLog[1].Event)
	s.Equal("u1", loaded.TransactionLog[1].Actor)

	// Same ID again is refused
	err = s.repo.CreateSession(s.ctx, &CreateSessionInput{Session: session})
	s.ErrorIs(err, ErrSessionExists)
}

func (s *RedisRepositoryTestSuite) TestGetSessionNotFound() {
	_, err := s.repo.GetSession(s.ctx, &GetSessionInput{SessionID: "missing"})
	s.ErrorIs(err, ErrSessionNotFound)
}

func (s *RedisRepositoryTestSuite) TestSaveSessionDoesNotTouchState() {
	session := s.newSession("20250614-1", s.testNow)
	s.Require().NoError(s.repo.CreateSession(s.ctx, &CreateSessionInput{Session: session}))

	// A stale copy still thinks the game is in progress while the stored one moved on
	stale := s.newSession(session.ID, s.testNow)
	ended := s.newSession(session.ID, s.testNow)
	ended.GameState = models.GameStateAwaitingCounts
	s.Require().NoError(s.repo.TransitionGameState(s.ctx, &TransitionGameStateInput{
		Session: ended,
		From:    models.GameStateInProgress,
	}))

	stale.Players[1].BuyIn = 500
	stale.ChipValue = decimal.RequireFromString("1")
	s.Require().NoError(s.repo.SaveSession(s.ctx, &SaveSessionInput{Session: stale}))

	loaded, err := s.repo.GetSession(s.ctx, &GetSessionInput{SessionID: session.ID})
	s.Require().NoError(err)
	s.Equal(models.GameStateAwaitingCounts, loaded.GameState)
	s.Equal(int64(500), loaded.Players[1].BuyIn)
	s.True(decimal.NewFromInt(1).Equal(loaded.ChipValue))
}

func (s *RedisRepositoryTestSuite) TestSaveSessionExpectedStateConflict() {
	session := s.newSession("20250614-1", s.testNow)
	s.Require().NoError(s.repo.CreateSession(s.ctx, &CreateSessionInput{Session: session}))

	ended := s.newSession(session.ID, s.testNow)
	ended.GameState = models.GameStateAwaitingCounts
	s.Require().NoError(s.repo.TransitionGameState(s.ctx, &TransitionGameStateInput{
		Session: ended,
		From:    models.GameStateInProgress,
	}))

	// A buy-in recorded against the in-progress copy must not land after the game ended
	stale := s.newSession(session.ID, s.testNow)
	stale.Players[1].BuyIn = 500
	err := s.repo.SaveSession(s.ctx, &SaveSessionInput{
		Session:       stale,
		ExpectedState: models.GameStateInProgress,
	})
	s.ErrorIs(err, ErrStateConflict)

	loaded, err := s.repo.GetSession(s.ctx, &GetSessionInput{SessionID: session.ID})
	s.Require().NoError(err)
	s.Equal(models.GameStateAwaitingCounts, loaded.GameState)
	s.Equal(int64(400), loaded.Players[1].BuyIn)
}

func (s *RedisRepositoryTestSuite) TestSaveSessionExpectedStateMatches() {
	session := s.newSession("20250614-1", s.testNow)
	s.Require().NoError(s.repo.CreateSession(s.ctx, &CreateSessionInput{Session: session}))

	updated := s.newSession(session.ID, s.testNow)
	updated.Players[1].BuyIn = 500
	s.Require().NoError(s.repo.SaveSession(s.ctx, &SaveSessionInput{
		Session:       updated,
		ExpectedState: models.GameStateInProgress,
	}))

	loaded, err := s.repo.GetSession(s.ctx, &GetSessionInput{SessionID: session.ID})
	s.Require().NoError(err)
	s.Equal(int64(500), loaded.Players[1].BuyIn)

	err = s.repo.SaveSession(s.ctx, &SaveSessionInput{
		Session:       s.newSession("ghost", s.testNow),
		ExpectedState: models.GameStateInProgress,
	})
	s.ErrorIs(err, ErrSessionNotFound)
}

func (s *RedisRepositoryTestSuite) TestSaveSessionRequiresExistingDocument() {
	err := s.repo.SaveSession(s.ctx, &SaveSessionInput{Session: s.newSession("ghost", s.testNow)})
	s.ErrorIs(err, ErrSessionNotFound)
}

func (s *RedisRepositoryTestSuite) TestTransitionGameState() {
	session := s.newSession("20250614-1", s.testNow)
	s.Require().NoError(s.repo.CreateSession(s.ctx, &CreateSessionInput{Session: session}))

	finished := s.newSession(session.ID, s.testNow)
	finished.GameState = models.GameStateFinished
	finished.FinalCalculations = &models.Settlement{
		Players: []*models.PlayerResult{
			{PlayerID: "p1", Name: "Alice", BuyIn: 400, FinalChips: 600, Balance: 200},
			{PlayerID: "p2", Name: "Bob", BuyIn: 400, FinalChips: 200, Balance: -200},
		},
		Transactions: []*models.Transfer{
			{FromID: "p2", From: "Bob", ToID: "p1", To: "Alice", Amount: 200},
		},
	}

	// Wrong expected state
	err := s.repo.TransitionGameState(s.ctx, &TransitionGameStateInput{
		Session: finished,
		From:    models.GameStateAwaitingCounts,
	})
	s.ErrorIs(err, ErrStateConflict)

	err = s.repo.TransitionGameState(s.ctx, &TransitionGameStateInput{
		Session: finished,
		From:    models.GameStateInProgress,
	})
	s.Require().NoError(err)

	loaded, err := s.repo.GetSession(s.ctx, &GetSessionInput{SessionID: session.ID})
	s.Require().NoError(err)
	s.Equal(models.GameStateFinished, loaded.GameState)
	s.Equal(finished.FinalCalculations, loaded.FinalCalculations)

	// A second organizer settling from the same starting state loses
	err = s.repo.TransitionGameState(s.ctx, &TransitionGameStateInput{
		Session: finished,
		From:    models.GameStateInProgress,
	})
	s.ErrorIs(err, ErrStateConflict)

	err = s.repo.TransitionGameState(s.ctx, &TransitionGameStateInput{
		Session: s.newSession("ghost", s.testNow),
		From:    models.GameStateInProgress,
	})
	s.ErrorIs(err, ErrSessionNotFound)
}

func (s *RedisRepositoryTestSuite) TestListSessionsNewestFirst() {
	old := s.newSession("20250501-1", s.testNow.AddDate(0, 0, -44))
	mid := s.newSession("20250610-1", s.testNow.AddDate(0, 0, -4))
	recent := s.newSession("20250614-1", s.testNow)
	for _, session := range []*models.Session{old, mid, recent} {
		s.Require().NoError(s.repo.CreateSession(s.ctx, &CreateSessionInput{Session: session}))
	}

	out, err := s.repo.ListSessions(s.ctx, &ListSessionsInput{Since: s.testNow.AddDate(0, 0, -30)})
	s.Require().NoError(err)
	s.Equal([]string{"20250614-1", "20250610-1"}, out.SessionIDs)

	out, err = s.repo.ListSessions(s.ctx, &ListSessionsInput{Limit: 1})
	s.Require().NoError(err)
	s.Equal([]string{"20250614-1"}, out.SessionIDs)

	out, err = s.repo.ListSessions(s.ctx, &ListSessionsInput{})
	s.Require().NoError(err)
	s.Len(out.SessionIDs, 3)
}

func (s *RedisRepositoryTestSuite) TestSubscribeReceivesSaves() {
	session := s.newSession("20250614-1", s.testNow)
	s.Require().NoError(s.repo.CreateSession(s.ctx, &CreateSessionInput{Session: session}))

	ctx, cancel := context.WithCancel(s.ctx)
	defer cancel()

	sub, err := s.repo.Subscribe(ctx, &SubscribeInput{SessionID: session.ID})
	s.Require().NoError(err)
	defer sub.Close()

	session.Players[0].BuyIn = 800
	s.Require().NoError(s.repo.SaveSession(s.ctx, &SaveSessionInput{Session: session}))

	select {
	case update := <-sub.Updates:
		s.Require().NotNil(update)
		s.Equal(int64(800), update.Players[0].BuyIn)
	case <-time.After(2 * time.Second):
		s.Fail("timed out waiting for session update")
	}

	cancel()
	s.Eventually(func() bool {
		select {
		case _, ok := <-sub.Updates:
			return !ok
		default:
			return false
		}
	}, 2*time.Second, 10*time.Millisecond)
}
