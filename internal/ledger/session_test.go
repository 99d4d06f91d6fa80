package ledger

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"testing"
	"time"

	clockMocks "github.com/KirkDiggler/pokerledger/internal/common/clock/mocks"
	uuidMocks "github.com/KirkDiggler/pokerledger/internal/common/uuid/mocks"
	"github.com/KirkDiggler/pokerledger/internal/models"
	"github.com/KirkDiggler/pokerledger/internal/settlement"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type SessionTestSuite struct {
	suite.Suite
	mockCtrl  *gomock.Controller
	mockClock *clockMocks.MockClock
	mockUUID  *uuidMocks.MockUUID
	config    *Config
	testTime  time.Time
	nextID    int

	session *Session
}

func (s *SessionTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)
	s.mockUUID = uuidMocks.NewMockUUID(s.mockCtrl)
	s.testTime = time.Date(2025, 6, 14, 20, 0, 0, 0, time.UTC)
	s.nextID = 0

	s.mockClock.EXPECT().Now().Return(s.testTime).AnyTimes()
	s.mockUUID.EXPECT().NewUUID().DoAndReturn(func() string {
		s.nextID++
		return fmt.Sprintf("id-%d", s.nextID)
	}).AnyTimes()

	s.config = &Config{
		Clock:         s.mockClock,
		UUIDGenerator: s.mockUUID,
	}

	out, err := NewSession(s.config, &NewSessionInput{
		ID:         "20250614-1",
		DatePrefix: "20250614",
		CreatedBy:  "organizer",
	})
	s.Require().NoError(err)
	s.session = out.Session
}

func (s *SessionTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestSessionTestSuite(t *testing.T) {
	suite.Run(t, new(SessionTestSuite))
}

func (s *SessionTestSuite) addPlayer(name string, buyIn int64) *models.Player {
	out, err := s.session.AddPlayer(&AddPlayerInput{Name: name, BuyIn: buyIn, Actor: "organizer"})
	s.Require().NoError(err)
	return out.Player
}

func (s *SessionTestSuite) requireValidation(err error, reason error) {
	s.Require().Error(err)
	s.True(errors.Is(err, ErrValidation), "expected validation error, got %v", err)
	s.True(errors.Is(err, reason), "expected %v, got %v", reason, err)
}

func (s *SessionTestSuite) TestNewSessionDefaults() {
	snap := s.session.Snapshot()

	s.Equal("20250614-1", snap.ID)
	s.Equal(models.GameStateInProgress, snap.GameState)
	s.True(decimal.RequireFromString("0.5").Equal(snap.ChipValue))
	s.Len(snap.Blinds, 6)
	s.Equal(8*time.Minute, snap.TimerDuration)
	s.Empty(snap.Players)
	s.Nil(snap.FinalCalculations)

	s.Require().Len(snap.TransactionLog, 1)
	started, ok := snap.TransactionLog[0].Event.(models.SessionStarted)
	s.Require().True(ok)
	s.Equal("Session 20250614-1 started.", started.Message)
	s.Equal(int64(1), snap.TransactionLog[0].Seq)
}

func (s *SessionTestSuite) TestNewSessionRequiresConfig() {
	_, err := NewSession(nil, &NewSessionInput{ID: "x"})
	s.Equal(ErrNilConfig, err)

	_, err = NewSession(&Config{UUIDGenerator: s.mockUUID}, &NewSessionInput{ID: "x"})
	s.Equal(ErrNilClock, err)

	_, err = NewSession(&Config{Clock: s.mockClock}, &NewSessionInput{ID: "x"})
	s.Equal(ErrNilUUIDGenerator, err)

	_, err = NewSession(s.config, &NewSessionInput{})
	s.Equal(ErrEmptySessionID, err)
}

func (s *SessionTestSuite) TestAddPlayerLogsInitialBuyIn() {
	player := s.addPlayer("  Alice ", 400)

	s.Equal("Alice", player.Name)
	s.Equal(int64(400), player.BuyIn)
	s.Equal(models.PlayerStatusGuest, player.Status)
	s.Nil(player.FinalChips)

	snap := s.session.Snapshot()
	s.Require().Len(snap.TransactionLog, 2)
	entry := snap.TransactionLog[1]
	s.Equal(int64(2), entry.Seq)
	s.Equal("organizer", entry.Actor)
	s.Equal(models.InitialBuyIn{
		PlayerID: player.ID,
		Player:   "Alice",
		Amount:   400,
		Source:   models.SourceCentralBox,
	}, entry.Event)
}

func (s *SessionTestSuite) TestAddPlayerWithZeroBuyIn() {
	player := s.addPlayer("Alice", 0)
	s.Equal(int64(0), player.BuyIn)

	snap := s.session.Snapshot()
	s.Require().Len(snap.TransactionLog, 2)
	s.Equal(models.EntryTypeInitialBuyIn, snap.TransactionLog[1].Type())
}

func (s *SessionTestSuite) TestAddPlayerRejectsBadInput() {
	s.addPlayer("Alice", 400)
	before := s.session.Snapshot()

	_, err := s.session.AddPlayer(&AddPlayerInput{Name: "ALICE"})
	s.requireValidation(err, ErrDuplicateName)

	_, err = s.session.AddPlayer(&AddPlayerInput{Name: "   "})
	s.requireValidation(err, ErrEmptyName)

	_, err = s.session.AddPlayer(&AddPlayerInput{Name: "Bob", BuyIn: -1})
	s.requireValidation(err, ErrInvalidAmount)

	s.Equal(before, s.session.Snapshot())
}

func (s *SessionTestSuite) TestPeerBuyIn() {
	buyer := s.addPlayer("Buyer", 400)
	seller := s.addPlayer("Seller", 400)
	totalBefore := s.session.Snapshot().TotalBuyIn()

	entry, err := s.session.RecordPlayerBuyIn(&RecordPlayerBuyInInput{
		BuyerID:  buyer.ID,
		Amount:   100,
		SellerID: seller.ID,
	})
	s.Require().NoError(err)

	s.Equal(models.PlayerBuyIn{
		PlayerID: buyer.ID,
		Player:   "Buyer",
		Amount:   100,
		SellerID: seller.ID,
		Source:   "from Seller",
	}, entry.Event)

	updatedBuyer, _ := s.session.Player(buyer.ID)
	updatedSeller, _ := s.session.Player(seller.ID)
	s.Equal(int64(500), updatedBuyer.BuyIn)
	s.Equal(int64(300), updatedSeller.BuyIn)
	s.Equal(totalBefore, s.session.Snapshot().TotalBuyIn())

	peerEntries := 0
	for _, e := range s.session.Snapshot().TransactionLog {
		if e.Type() == models.EntryTypePlayerBuyIn {
			peerEntries++
		}
	}
	s.Equal(1, peerEntries)
}

func (s *SessionTestSuite) TestBoxBuyIn() {
	player := s.addPlayer("Alice", 400)

	entry, err := s.session.RecordPlayerBuyIn(&RecordPlayerBuyInInput{BuyerID: player.ID, Amount: 200})
	s.Require().NoError(err)

	ev := entry.Event.(models.PlayerBuyIn)
	s.Equal(models.SourceCentralBox, ev.Source)
	s.Empty(ev.SellerID)

	updated, _ := s.session.Player(player.ID)
	s.Equal(int64(600), updated.BuyIn)
}

func (s *SessionTestSuite) TestBuyInRejectsBadInput() {
	alice := s.addPlayer("Alice", 400)
	before := s.session.Snapshot()

	_, err := s.session.RecordPlayerBuyIn(&RecordPlayerBuyInInput{BuyerID: alice.ID, Amount: 0})
	s.requireValidation(err, ErrInvalidAmount)

	_, err = s.session.RecordPlayerBuyIn(&RecordPlayerBuyInInput{BuyerID: "nobody", Amount: 10})
	s.requireValidation(err, ErrPlayerNotFound)

	_, err = s.session.RecordPlayerBuyIn(&RecordPlayerBuyInInput{BuyerID: alice.ID, Amount: 10, SellerID: "nobody"})
	s.requireValidation(err, ErrPlayerNotFound)

	_, err = s.session.RecordPlayerBuyIn(&RecordPlayerBuyInInput{BuyerID: alice.ID, Amount: 10, SellerID: alice.ID})
	s.requireValidation(err, ErrSelfSale)

	s.Equal(before, s.session.Snapshot())
}

func (s *SessionTestSuite) TestCashOut() {
	player := s.addPlayer("Alice", 400)

	entry, err := s.session.RecordCashOut(&RecordCashOutInput{PlayerID: player.ID, Amount: 400})
	s.Require().NoError(err)
	s.Equal(models.CashOut{PlayerID: player.ID, Player: "Alice", Amount: 400}, entry.Event)

	updated, _ := s.session.Player(player.ID)
	s.Equal(int64(0), updated.BuyIn)
}

func (s *SessionTestSuite) TestCashOutCannotExceedBuyIn() {
	player := s.addPlayer("Alice", 400)
	before := s.session.Snapshot()

	_, err := s.session.RecordCashOut(&RecordCashOutInput{PlayerID: player.ID, Amount: 401})
	s.requireValidation(err, ErrExceedsBuyIn)

	_, err = s.session.RecordCashOut(&RecordCashOutInput{PlayerID: player.ID, Amount: -5})
	s.requireValidation(err, ErrInvalidAmount)

	s.Equal(before, s.session.Snapshot())
}

func (s *SessionTestSuite) TestJoinClaimsGuestRow() {
	guest := s.addPlayer("Alice", 0)

	out, err := s.session.JoinPlayer(&JoinPlayerInput{
		Identity: models.Identity{UserID: "user-1", DisplayName: "alice"},
		PlayerID: guest.ID,
		BuyIn:    400,
	})
	s.Require().NoError(err)

	s.Equal(models.PlayerStatusJoined, out.Player.Status)
	s.Equal("user-1", out.Player.OwnerRef)
	s.Equal(int64(400), out.Player.BuyIn)
	s.Require().NotNil(out.Entry)
	s.Equal("user-1", out.Entry.Actor)

	_, err = s.session.JoinPlayer(&JoinPlayerInput{
		Identity: models.Identity{UserID: "user-2", DisplayName: "Someone"},
		PlayerID: guest.ID,
	})
	s.requireValidation(err, ErrPlayerClaimed)
}

func (s *SessionTestSuite) TestJoinClaimWithoutBuyInLogsNothing() {
	guest := s.addPlayer("Alice", 400)
	logLen := len(s.session.Snapshot().TransactionLog)

	out, err := s.session.JoinPlayer(&JoinPlayerInput{
		Identity: models.Identity{UserID: "user-1"},
		PlayerID: guest.ID,
	})
	s.Require().NoError(err)
	s.Nil(out.Entry)
	s.Len(s.session.Snapshot().TransactionLog, logLen)
}

func (s *SessionTestSuite) TestSelfJoin() {
	out, err := s.session.JoinPlayer(&JoinPlayerInput{
		Identity: models.Identity{UserID: "user-1", DisplayName: "Carol"},
		BuyIn:    300,
	})
	s.Require().NoError(err)
	s.Equal("Carol", out.Player.Name)
	s.Equal(models.PlayerStatusJoined, out.Player.Status)

	owned, ok := s.session.PlayerByOwner("user-1")
	s.Require().True(ok)
	s.Equal(out.Player.ID, owned.ID)

	// One row per user
	_, err = s.session.JoinPlayer(&JoinPlayerInput{
		Identity: models.Identity{UserID: "user-1", DisplayName: "Carol Again"},
	})
	s.requireValidation(err, ErrAlreadyJoined)

	_, err = s.session.JoinPlayer(&JoinPlayerInput{})
	s.requireValidation(err, ErrMissingIdentity)
}

func (s *SessionTestSuite) TestStateMachine() {
	alice := s.addPlayer("Alice", 400)
	bob := s.addPlayer("Bob", 400)

	s.Require().NoError(s.session.EndGame())
	s.Equal(models.GameStateAwaitingCounts, s.session.State())

	// No chip movement while waiting for counts
	_, err := s.session.RecordPlayerBuyIn(&RecordPlayerBuyInInput{BuyerID: alice.ID, Amount: 10})
	s.True(errors.Is(err, ErrInvalidGameState))
	_, err = s.session.RecordCashOut(&RecordCashOutInput{PlayerID: alice.ID, Amount: 10})
	s.True(errors.Is(err, ErrInvalidGameState))
	_, err = s.session.AddPlayer(&AddPlayerInput{Name: "Carol"})
	s.True(errors.Is(err, ErrInvalidGameState))
	s.True(errors.Is(s.session.EndGame(), ErrInvalidGameState))
	_, err = s.session.Resume("organizer")
	s.True(errors.Is(err, ErrInvalidGameState))

	out, err := s.session.SubmitFinalCounts(&SubmitFinalCountsInput{
		Counts: map[string]int64{alice.ID: 600, bob.ID: 200},
		Actor:  "organizer",
	})
	s.Require().NoError(err)
	s.Equal(models.GameStateFinished, s.session.State())
	s.Require().Len(out.Settlement.Transactions, 1)
	s.Equal(int64(200), out.Settlement.Transactions[0].Amount)

	summary, ok := out.Entry.Event.(models.GameEndSummary)
	s.Require().True(ok)
	s.Equal(out.Settlement, summary.Summary)

	snap := s.session.Snapshot()
	s.Equal(out.Settlement, snap.FinalCalculations)
	s.Require().NotNil(snap.Players[0].FinalChips)
	s.Equal(int64(600), *snap.Players[0].FinalChips)

	_, err = s.session.SubmitFinalCounts(&SubmitFinalCountsInput{})
	s.True(errors.Is(err, ErrInvalidGameState))

	// Resume keeps the log and buy-ins
	logLen := len(snap.TransactionLog)
	entry, err := s.session.Resume("organizer")
	s.Require().NoError(err)
	s.Equal(models.GameResumed{Message: ResumeMessage}, entry.Event)

	resumed := s.session.Snapshot()
	s.Equal(models.GameStateInProgress, resumed.GameState)
	s.Nil(resumed.FinalCalculations)
	s.Len(resumed.TransactionLog, logLen+1)
	s.Equal(int64(400), resumed.Players[0].BuyIn)
	s.Equal(int64(400), resumed.Players[1].BuyIn)
}

func (s *SessionTestSuite) TestMismatchLeavesSessionAwaitingCounts() {
	a := s.addPlayer("A", 400)
	b := s.addPlayer("B", 400)
	c := s.addPlayer("C", 400)
	s.Require().NoError(s.session.EndGame())
	before := s.session.Snapshot()

	counts := map[string]int64{a.ID: 300, b.ID: 350, c.ID: 300}
	_, err := s.session.SubmitFinalCounts(&SubmitFinalCountsInput{Counts: counts})
	s.Require().Error(err)

	var mismatch *settlement.BalanceMismatchError
	s.Require().True(errors.As(err, &mismatch))
	s.Equal(int64(950), mismatch.TotalFinalChips)
	s.Equal(int64(1200), mismatch.TotalBuyIn)

	s.Equal(before, s.session.Snapshot())
	s.Equal(models.GameStateAwaitingCounts, s.session.State())

	// Corrected counts go through
	counts[b.ID] = 600
	_, err = s.session.SubmitFinalCounts(&SubmitFinalCountsInput{Counts: counts})
	s.Require().NoError(err)
}

func (s *SessionTestSuite) TestMissingCountsDefaultToZero() {
	a := s.addPlayer("A", 400)
	s.addPlayer("B", 0)
	s.Require().NoError(s.session.EndGame())

	out, err := s.session.SubmitFinalCounts(&SubmitFinalCountsInput{
		Counts: map[string]int64{a.ID: 400},
	})
	s.Require().NoError(err)
	s.Empty(out.Settlement.Transactions)
}

func (s *SessionTestSuite) TestFinalCountsValidation() {
	a := s.addPlayer("A", 400)
	s.Require().NoError(s.session.EndGame())

	_, err := s.session.SubmitFinalCounts(&SubmitFinalCountsInput{
		Counts: map[string]int64{"ghost": 400},
	})
	s.requireValidation(err, ErrPlayerNotFound)

	_, err = s.session.SubmitFinalCounts(&SubmitFinalCountsInput{
		Counts: map[string]int64{a.ID: -1},
	})
	s.requireValidation(err, ErrInvalidAmount)
}

func (s *SessionTestSuite) TestFinalCountsValidationIsStable() {
	a := s.addPlayer("A", 400)
	s.Require().NoError(s.session.EndGame())

	// id-1 sorts before zz-ghost, so the negative count is always reported
	for i := 0; i < 50; i++ {
		_, err := s.session.SubmitFinalCounts(&SubmitFinalCountsInput{
			Counts: map[string]int64{a.ID: -1, "zz-ghost": 400},
		})
		s.requireValidation(err, ErrInvalidAmount)
	}
	s.Equal(models.GameStateAwaitingCounts, s.session.State())
}

func (s *SessionTestSuite) TestFinalCountsRejectOverflowingTotal() {
	a := s.addPlayer("A", 400)
	b := s.addPlayer("B", 0)
	s.Require().NoError(s.session.EndGame())

	_, err := s.session.SubmitFinalCounts(&SubmitFinalCountsInput{
		Counts: map[string]int64{a.ID: math.MaxInt64, b.ID: 1},
	})
	s.requireValidation(err, ErrAmountTooLarge)
}

func (s *SessionTestSuite) TestBoxCreditRejectsOverflow() {
	a := s.addPlayer("A", math.MaxInt64)

	_, err := s.session.RecordPlayerBuyIn(&RecordPlayerBuyInInput{BuyerID: a.ID, Amount: 1})
	s.requireValidation(err, ErrAmountTooLarge)

	_, err = s.session.RecordInitialBuyIn(&RecordInitialBuyInInput{PlayerID: a.ID, Amount: 1})
	s.requireValidation(err, ErrAmountTooLarge)

	// The box total is bounded too, even for a fresh row
	_, err = s.session.AddPlayer(&AddPlayerInput{Name: "B", BuyIn: 1})
	s.requireValidation(err, ErrAmountTooLarge)

	_, err = s.session.JoinPlayer(&JoinPlayerInput{
		Identity: models.Identity{UserID: "u-1", DisplayName: "Carol"},
		BuyIn:    1,
	})
	s.requireValidation(err, ErrAmountTooLarge)

	snap := s.session.Snapshot()
	s.Len(snap.Players, 1)
	s.Equal(int64(math.MaxInt64), snap.Players[0].BuyIn)
	s.Len(snap.TransactionLog, 1)
	s.Equal(int64(math.MaxInt64), s.session.Totals().IssuedFromBox)
}

func (s *SessionTestSuite) TestPeerBuyInRejectsOverflow() {
	a := s.addPlayer("A", 0)
	b := s.addPlayer("B", 0)
	c := s.addPlayer("C", 0)

	_, err := s.session.RecordPlayerBuyIn(&RecordPlayerBuyInInput{BuyerID: a.ID, SellerID: b.ID, Amount: math.MaxInt64})
	s.Require().NoError(err)

	// Buyer would overflow
	_, err = s.session.RecordPlayerBuyIn(&RecordPlayerBuyInInput{BuyerID: a.ID, SellerID: c.ID, Amount: 1})
	s.requireValidation(err, ErrAmountTooLarge)

	// Seller would underflow
	_, err = s.session.RecordPlayerBuyIn(&RecordPlayerBuyInInput{BuyerID: c.ID, SellerID: b.ID, Amount: 2})
	s.requireValidation(err, ErrAmountTooLarge)

	buyer, err := s.session.Player(a.ID)
	s.Require().NoError(err)
	s.Equal(int64(math.MaxInt64), buyer.BuyIn)
	seller, err := s.session.Player(b.ID)
	s.Require().NoError(err)
	s.Equal(int64(-math.MaxInt64), seller.BuyIn)
	other, err := s.session.Player(c.ID)
	s.Require().NoError(err)
	s.Zero(other.BuyIn)
}

func (s *SessionTestSuite) TestHistoryIncludesChipsSold() {
	alice := s.addPlayer("Alice", 400)
	bob := s.addPlayer("Bob", 400)

	_, err := s.session.RecordPlayerBuyIn(&RecordPlayerBuyInInput{BuyerID: bob.ID, Amount: 50, SellerID: alice.ID})
	s.Require().NoError(err)
	_, err = s.session.RecordCashOut(&RecordCashOutInput{PlayerID: bob.ID, Amount: 50})
	s.Require().NoError(err)

	history, err := s.session.History(alice.ID)
	s.Require().NoError(err)
	s.Require().Len(history, 2)
	s.Equal(models.EntryTypeInitialBuyIn, history[0].Type())
	s.Equal(models.EntryTypePlayerBuyIn, history[1].Type())

	history, err = s.session.History(bob.ID)
	s.Require().NoError(err)
	s.Len(history, 3)

	_, err = s.session.History("ghost")
	s.requireValidation(err, ErrPlayerNotFound)
}

func (s *SessionTestSuite) TestAppendLifecycleEvent() {
	entry, err := s.session.AppendLifecycleEvent(models.EntryTypeGameResumed, "back", "organizer")
	s.Require().NoError(err)
	s.Equal(models.GameResumed{Message: "back"}, entry.Event)

	_, err = s.session.AppendLifecycleEvent(models.EntryTypeCashOut, "nope", "organizer")
	s.requireValidation(err, ErrUnknownEventType)
}

func (s *SessionTestSuite) TestSetChipValue() {
	rate, err := s.session.SetChipValue(400, decimal.NewFromInt(300))
	s.Require().NoError(err)
	s.True(decimal.RequireFromString("0.75").Equal(rate))
	s.True(rate.Equal(s.session.Snapshot().ChipValue))

	_, err = s.session.SetChipValue(0, decimal.NewFromInt(300))
	s.requireValidation(err, ErrInvalidChipValue)
}

func (s *SessionTestSuite) TestLoadContinuesSequence() {
	s.addPlayer("Alice", 400)
	doc := s.session.Snapshot()

	loaded, err := Load(s.config, doc)
	s.Require().NoError(err)

	entry, err := loaded.AppendLifecycleEvent(models.EntryTypeGameResumed, "again", "")
	s.Require().NoError(err)
	s.Equal(int64(3), entry.Seq)

	_, err = Load(s.config, &models.Session{ID: "x", GameState: "paused"})
	s.True(errors.Is(err, ErrInvalidStoredData))
}

func (s *SessionTestSuite) TestConservationUnderRandomPlay() {
	rng := rand.New(rand.NewSource(7))
	var ids []string
	for i := 0; i < 5; i++ {
		ids = append(ids, s.addPlayer(fmt.Sprintf("P%d", i), int64(rng.Intn(5))*100).ID)
	}

	for step := 0; step < 300; step++ {
		id := ids[rng.Intn(len(ids))]
		switch rng.Intn(3) {
		case 0:
			_, _ = s.session.RecordPlayerBuyIn(&RecordPlayerBuyInInput{BuyerID: id, Amount: int64(rng.Intn(200)) - 20})
		case 1:
			seller := ids[rng.Intn(len(ids))]
			_, _ = s.session.RecordPlayerBuyIn(&RecordPlayerBuyInInput{BuyerID: id, Amount: int64(rng.Intn(200)) + 1, SellerID: seller})
		case 2:
			_, _ = s.session.RecordCashOut(&RecordCashOutInput{PlayerID: id, Amount: int64(rng.Intn(300)) - 20})
		}

		totals := s.session.Totals()
		s.Require().Equal(totals.InPlay(), s.session.Snapshot().TotalBuyIn(), "step %d", step)
	}
}
