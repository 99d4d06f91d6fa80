package ledger

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/KirkDiggler/pokerledger/internal/common/clock"
	"github.com/KirkDiggler/pokerledger/internal/common/money"
	"github.com/KirkDiggler/pokerledger/internal/common/uuid"
	ledgerCore "github.com/KirkDiggler/pokerledger/internal/ledger"
	"github.com/KirkDiggler/pokerledger/internal/models"
	playerRepo "github.com/KirkDiggler/pokerledger/internal/repositories/player"
	sessionRepo "github.com/KirkDiggler/pokerledger/internal/repositories/session"
	statsRepo "github.com/KirkDiggler/pokerledger/internal/repositories/stats"
	"github.com/KirkDiggler/pokerledger/internal/services/notification"
	"github.com/shopspring/decimal"
)

// flushTimeout bounds a save started by the debounce timer
const flushTimeout = 10 * time.Second

// defaultRetryDelay is how long a failed save waits before trying again when
// saves are not debounced
const defaultRetryDelay = time.Second

// lockAttempts bounds how often a command chases a session that keeps being
// reloaded under it
const lockAttempts = 3

// activeSession is a loaded aggregate plus its persistence bookkeeping.
// mu serializes every command against the aggregate.
type activeSession struct {
	mu      sync.Mutex
	session *ledgerCore.Session

	// storedState is the gameState last written to the repository
	storedState models.GameState

	dirty bool
	timer *time.Timer

	// evicted is set once the session is dropped from the cache. Commands that
	// were waiting on mu must reload instead of mutating it.
	evicted bool
}

// service implements the Service interface
type service struct {
	sessionRepo         sessionRepo.Repository
	playerRepo          playerRepo.Repository
	statsRepo           statsRepo.Repository
	notificationService notification.Service
	clock               clock.Clock
	uuidGenerator       uuid.UUID
	logger              *slog.Logger

	saveDebounce     time.Duration
	retryDelay       time.Duration
	recentDays       int
	defaultChipValue decimal.Decimal

	mu     sync.Mutex
	active map[string]*activeSession
	closed bool
}

// New creates a new ledger service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.SessionRepo == nil {
		return nil, ErrNilSessionRepo
	}
	if cfg.PlayerRepo == nil {
		return nil, ErrNilPlayerRepo
	}
	if cfg.StatsRepo == nil {
		return nil, ErrNilStatsRepo
	}
	if cfg.NotificationService == nil {
		return nil, ErrNilNotificationService
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}
	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	recentDays := cfg.RecentSessionDays
	if recentDays <= 0 {
		recentDays = DefaultRecentSessionDays
	}

	chipValue := cfg.DefaultChipValue
	if !chipValue.IsPositive() {
		chipValue = money.DefaultChipValue
	}

	return &service{
		sessionRepo:         cfg.SessionRepo,
		playerRepo:          cfg.PlayerRepo,
		statsRepo:           cfg.StatsRepo,
		notificationService: cfg.NotificationService,
		clock:               cfg.Clock,
		uuidGenerator:       cfg.UUIDGenerator,
		logger:              logger.With("component", "ledger"),
		saveDebounce:        cfg.SaveDebounce,
		retryDelay:          defaultRetryDelay,
		recentDays:          recentDays,
		defaultChipValue:    chipValue,
		active:              make(map[string]*activeSession),
	}, nil
}

// StartSession creates a new session with the next ID for today
func (s *service) StartSession(ctx context.Context, input *StartSessionInput) (*StartSessionOutput, error) {
	if input == nil {
		input = &StartSessionInput{}
	}
	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	idOutput, err := s.sessionRepo.NextSessionID(ctx, &sessionRepo.NextSessionIDInput{
		Date: s.clock.Now(),
	})
	if err != nil {
		return nil, err
	}

	chipValue := input.ChipValue
	if chipValue.IsZero() {
		chipValue = s.defaultChipValue
	}

	created, err := ledgerCore.NewSession(s.ledgerConfig(), &ledgerCore.NewSessionInput{
		ID:         idOutput.SessionID,
		DatePrefix: idOutput.DatePrefix,
		ChipValue:  chipValue,
		CreatedBy:  input.Actor,
	})
	if err != nil {
		return nil, err
	}

	doc := created.Session.Snapshot()
	if err := s.sessionRepo.CreateSession(ctx, &sessionRepo.CreateSessionInput{Session: doc}); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.active[doc.ID] = &activeSession{
		session:     created.Session,
		storedState: doc.GameState,
	}
	s.mu.Unlock()

	s.logger.Info("session started", "session_id", doc.ID, "actor", input.Actor)
	s.notify(ctx, doc, created.Entry)

	return &StartSessionOutput{Session: doc}, nil
}

// GetSession returns the current state of a session
func (s *service) GetSession(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error) {
	if input == nil {
		return nil, ErrEmptySessionID
	}

	active, err := s.lockActive(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	defer active.mu.Unlock()

	return &GetSessionOutput{
		Session: active.session.Snapshot(),
		Totals:  active.session.Totals(),
	}, nil
}

// ListRecentSessions returns IDs of recently created sessions, newest first
func (s *service) ListRecentSessions(ctx context.Context, input *ListRecentSessionsInput) (*ListRecentSessionsOutput, error) {
	if input == nil {
		input = &ListRecentSessionsInput{}
	}

	days := input.Days
	if days <= 0 {
		days = s.recentDays
	}

	output, err := s.sessionRepo.ListSessions(ctx, &sessionRepo.ListSessionsInput{
		Since: s.clock.Now().AddDate(0, 0, -days),
		Limit: input.Limit,
	})
	if err != nil {
		return nil, err
	}

	return &ListRecentSessionsOutput{SessionIDs: output.SessionIDs}, nil
}

// AddPlayer adds a guest player, copying the payment ID from their profile
func (s *service) AddPlayer(ctx context.Context, input *AddPlayerInput) (*AddPlayerOutput, error) {
	if input == nil {
		return nil, ErrEmptySessionID
	}

	paymentID := s.lookupPaymentID(ctx, input.Name)

	active, err := s.lockActive(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	defer active.mu.Unlock()

	added, err := active.session.AddPlayer(&ledgerCore.AddPlayerInput{
		Name:      input.Name,
		BuyIn:     input.BuyIn,
		PaymentID: paymentID,
		Actor:     input.Actor,
	})
	if err != nil {
		return nil, err
	}

	if err := s.afterAppend(ctx, input.SessionID, active, added.Entry); err != nil {
		return nil, err
	}

	return &AddPlayerOutput{Player: added.Player}, nil
}

// JoinGame links the caller to a guest row or a new row of their own
func (s *service) JoinGame(ctx context.Context, input *JoinGameInput) (*JoinGameOutput, error) {
	if input == nil {
		return nil, ErrEmptySessionID
	}

	active, err := s.lockActive(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	defer active.mu.Unlock()

	// A claimed row keeps its own payment ID unless the profile has one
	paymentID := ""
	if input.PlayerID == "" {
		paymentID = s.lookupPaymentID(ctx, input.Identity.DisplayName)
	} else if player, err := active.session.Player(input.PlayerID); err == nil {
		paymentID = s.lookupPaymentID(ctx, player.Name)
	}

	joined, err := active.session.JoinPlayer(&ledgerCore.JoinPlayerInput{
		Identity:  input.Identity,
		PlayerID:  input.PlayerID,
		BuyIn:     input.BuyIn,
		PaymentID: paymentID,
	})
	if err != nil {
		return nil, err
	}

	if err := s.afterAppend(ctx, input.SessionID, active, joined.Entry); err != nil {
		return nil, err
	}

	return &JoinGameOutput{Player: joined.Player}, nil
}

// BuyIn records chips bought from the box or from another player
func (s *service) BuyIn(ctx context.Context, input *BuyInInput) (*BuyInOutput, error) {
	if input == nil {
		return nil, ErrEmptySessionID
	}

	active, err := s.lockActive(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	defer active.mu.Unlock()

	entry, err := active.session.RecordPlayerBuyIn(&ledgerCore.RecordPlayerBuyInInput{
		BuyerID:  input.BuyerID,
		Amount:   input.Amount,
		SellerID: input.SellerID,
		Actor:    input.Actor,
	})
	if err != nil {
		return nil, err
	}

	if err := s.afterAppend(ctx, input.SessionID, active, entry); err != nil {
		return nil, err
	}

	return &BuyInOutput{Entry: entry}, nil
}

// CashOut records chips returned to the box
func (s *service) CashOut(ctx context.Context, input *CashOutInput) (*CashOutOutput, error) {
	if input == nil {
		return nil, ErrEmptySessionID
	}

	active, err := s.lockActive(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	defer active.mu.Unlock()

	entry, err := active.session.RecordCashOut(&ledgerCore.RecordCashOutInput{
		PlayerID: input.PlayerID,
		Amount:   input.Amount,
		Actor:    input.Actor,
	})
	if err != nil {
		return nil, err
	}

	if err := s.afterAppend(ctx, input.SessionID, active, entry); err != nil {
		return nil, err
	}

	return &CashOutOutput{Entry: entry}, nil
}

// EndGame stops play and starts collecting final counts
func (s *service) EndGame(ctx context.Context, input *EndGameInput) (*EndGameOutput, error) {
	if input == nil {
		return nil, ErrEmptySessionID
	}

	active, err := s.lockActive(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	defer active.mu.Unlock()

	if err := active.session.EndGame(); err != nil {
		return nil, err
	}

	if err := s.commitTransition(ctx, input.SessionID, active); err != nil {
		return nil, err
	}

	s.logger.Info("game ended", "session_id", input.SessionID, "actor", input.Actor)

	return &EndGameOutput{Session: active.session.Snapshot()}, nil
}

// SubmitFinalCounts settles the game. A balance mismatch leaves the session
// awaiting counts so the organizer can correct them.
func (s *service) SubmitFinalCounts(ctx context.Context, input *SubmitFinalCountsInput) (*SubmitFinalCountsOutput, error) {
	if input == nil {
		return nil, ErrEmptySessionID
	}

	active, err := s.lockActive(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	defer active.mu.Unlock()

	settled, err := active.session.SubmitFinalCounts(&ledgerCore.SubmitFinalCountsInput{
		Counts: input.Counts,
		Actor:  input.Actor,
	})
	if err != nil {
		return nil, err
	}

	if err := s.commitTransition(ctx, input.SessionID, active); err != nil {
		return nil, err
	}

	s.logger.Info("game settled",
		"session_id", input.SessionID,
		"transactions", len(settled.Settlement.Transactions))
	s.notify(ctx, active.session.Snapshot(), settled.Entry)

	return &SubmitFinalCountsOutput{Settlement: settled.Settlement}, nil
}

// ResumeGame reopens a finished game
func (s *service) ResumeGame(ctx context.Context, input *ResumeGameInput) (*ResumeGameOutput, error) {
	if input == nil {
		return nil, ErrEmptySessionID
	}

	active, err := s.lockActive(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	defer active.mu.Unlock()

	entry, err := active.session.Resume(input.Actor)
	if err != nil {
		return nil, err
	}

	if err := s.commitTransition(ctx, input.SessionID, active); err != nil {
		return nil, err
	}

	doc := active.session.Snapshot()
	s.notify(ctx, doc, entry)

	return &ResumeGameOutput{Session: doc}, nil
}

// SetChipValue sets the session's exchange rate
func (s *service) SetChipValue(ctx context.Context, input *SetChipValueInput) (*SetChipValueOutput, error) {
	if input == nil {
		return nil, ErrEmptySessionID
	}

	active, err := s.lockActive(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	defer active.mu.Unlock()

	rate, err := active.session.SetChipValue(input.Chips, input.Currency)
	if err != nil {
		return nil, err
	}

	if err := s.markDirty(ctx, input.SessionID, active); err != nil {
		return nil, err
	}

	return &SetChipValueOutput{ChipValue: rate}, nil
}

// UpdatePaymentID changes a player's payment ID in the session and their profile
func (s *service) UpdatePaymentID(ctx context.Context, input *UpdatePaymentIDInput) (*UpdatePaymentIDOutput, error) {
	if input == nil {
		return nil, ErrEmptySessionID
	}

	active, err := s.lockActive(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	defer active.mu.Unlock()

	player, err := active.session.Player(input.PlayerID)
	if err != nil {
		return nil, err
	}

	paymentID := strings.TrimSpace(input.PaymentID)
	if err := s.playerRepo.SavePaymentID(ctx, &playerRepo.SavePaymentIDInput{
		Name:      player.Name,
		PaymentID: paymentID,
	}); err != nil {
		return nil, err
	}

	updated, err := active.session.SetPaymentID(input.PlayerID, paymentID)
	if err != nil {
		return nil, err
	}

	if err := s.markDirty(ctx, input.SessionID, active); err != nil {
		return nil, err
	}

	return &UpdatePaymentIDOutput{Player: updated}, nil
}

// ToggleQuickAdd flips a name on or off the quick-add roster
func (s *service) ToggleQuickAdd(ctx context.Context, input *ToggleQuickAddInput) (*ToggleQuickAddOutput, error) {
	if input == nil {
		input = &ToggleQuickAddInput{}
	}

	output, err := s.playerRepo.ToggleQuickAdd(ctx, &playerRepo.ToggleQuickAddInput{Name: input.Name})
	if err != nil {
		return nil, err
	}

	return &ToggleQuickAddOutput{QuickAdd: output.QuickAdd}, nil
}

// ListQuickAdd returns the quick-add roster
func (s *service) ListQuickAdd(ctx context.Context, input *ListQuickAddInput) (*ListQuickAddOutput, error) {
	output, err := s.playerRepo.ListQuickAdd(ctx, &playerRepo.ListQuickAddInput{})
	if err != nil {
		return nil, err
	}

	return &ListQuickAddOutput{Names: output.Names}, nil
}

// GetLeaderboard returns lifetime standings
func (s *service) GetLeaderboard(ctx context.Context, input *GetLeaderboardInput) (*GetLeaderboardOutput, error) {
	if input == nil {
		input = &GetLeaderboardInput{}
	}

	leaderboard, err := s.statsRepo.GetLeaderboard(ctx, &statsRepo.GetLeaderboardInput{Limit: input.Limit})
	if err != nil {
		return nil, err
	}

	return &GetLeaderboardOutput{Leaderboard: leaderboard}, nil
}

// GetPlayerHistory returns the entries concerning one player
func (s *service) GetPlayerHistory(ctx context.Context, input *GetPlayerHistoryInput) (*GetPlayerHistoryOutput, error) {
	if input == nil {
		return nil, ErrEmptySessionID
	}

	active, err := s.lockActive(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	defer active.mu.Unlock()

	player, err := active.session.Player(input.PlayerID)
	if err != nil {
		return nil, err
	}

	entries, err := active.session.History(input.PlayerID)
	if err != nil {
		return nil, err
	}

	return &GetPlayerHistoryOutput{
		Player:  player,
		Entries: entries,
	}, nil
}

// Subscribe streams the session document as it is saved
func (s *service) Subscribe(ctx context.Context, input *SubscribeInput) (*sessionRepo.Subscription, error) {
	if input == nil || input.SessionID == "" {
		return nil, ErrEmptySessionID
	}

	return s.sessionRepo.Subscribe(ctx, &sessionRepo.SubscribeInput{SessionID: input.SessionID})
}

// Flush persists every session with unsaved changes
func (s *service) Flush(ctx context.Context) error {
	s.mu.Lock()
	pending := make(map[string]*activeSession, len(s.active))
	for id, active := range s.active {
		pending[id] = active
	}
	s.mu.Unlock()

	var errs []error
	for id, active := range pending {
		active.mu.Lock()
		if active.timer != nil {
			active.timer.Stop()
		}
		if err := s.persistLocked(ctx, active); err != nil {
			s.handlePersistError(id, active, err)
			errs = append(errs, err)
		}
		active.mu.Unlock()
	}

	return errors.Join(errs...)
}

// Close flushes and stops accepting commands
func (s *service) Close(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.closed = true
	s.mu.Unlock()

	return s.Flush(ctx)
}

func (s *service) ledgerConfig() *ledgerCore.Config {
	return &ledgerCore.Config{
		Clock:         s.clock,
		UUIDGenerator: s.uuidGenerator,
	}
}

func (s *service) checkOpen() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	return nil
}

// getActive returns the loaded session, reading it from the repository on first use
func (s *service) getActive(ctx context.Context, sessionID string) (*activeSession, error) {
	if sessionID == "" {
		return nil, ErrEmptySessionID
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrClosed
	}
	if active, ok := s.active[sessionID]; ok {
		s.mu.Unlock()
		return active, nil
	}
	s.mu.Unlock()

	doc, err := s.sessionRepo.GetSession(ctx, &sessionRepo.GetSessionInput{SessionID: sessionID})
	if err != nil {
		return nil, err
	}

	loaded, err := ledgerCore.Load(s.ledgerConfig(), doc)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another caller may have loaded it while we were reading
	if active, ok := s.active[sessionID]; ok {
		return active, nil
	}

	active := &activeSession{
		session:     loaded,
		storedState: loaded.State(),
	}
	s.active[sessionID] = active

	return active, nil
}

// lockActive returns the loaded session with its mu held. A session evicted
// while the caller waited for mu is reloaded rather than mutated.
func (s *service) lockActive(ctx context.Context, sessionID string) (*activeSession, error) {
	for attempt := 0; attempt < lockAttempts; attempt++ {
		active, err := s.getActive(ctx, sessionID)
		if err != nil {
			return nil, err
		}

		active.mu.Lock()
		if !active.evicted {
			return active, nil
		}
		active.mu.Unlock()
	}
	return nil, ErrStateConflict
}

// evict drops a session so the next command reloads it. Its unsaved changes
// are discarded so a timer already in flight writes nothing. Caller holds active.mu.
func (s *service) evict(sessionID string, active *activeSession) {
	active.evicted = true
	active.dirty = false
	if active.timer != nil {
		active.timer.Stop()
	}

	s.mu.Lock()
	if s.active[sessionID] == active {
		delete(s.active, sessionID)
	}
	s.mu.Unlock()
}

// lookupPaymentID returns the profile's payment ID, or empty when there is none
func (s *service) lookupPaymentID(ctx context.Context, name string) string {
	if strings.TrimSpace(name) == "" {
		return ""
	}

	profile, err := s.playerRepo.GetProfile(ctx, &playerRepo.GetProfileInput{Name: name})
	if err != nil {
		if !errors.Is(err, playerRepo.ErrProfileNotFound) {
			s.logger.Warn("profile lookup failed", "name", name, "error", err)
		}
		return ""
	}

	return profile.PaymentID
}

// afterAppend schedules a save and notifies sinks. Caller holds active.mu.
func (s *service) afterAppend(ctx context.Context, sessionID string, active *activeSession, entry *models.LogEntry) error {
	if err := s.markDirty(ctx, sessionID, active); err != nil {
		return err
	}
	if entry != nil {
		s.notify(ctx, active.session.Snapshot(), entry)
	}
	return nil
}

func (s *service) notify(ctx context.Context, doc *models.Session, entry *models.LogEntry) {
	s.notificationService.Notify(ctx, &notification.NotifyInput{
		SessionID: doc.ID,
		Entry:     entry,
		ChipValue: doc.ChipValue,
		Players:   doc.Players,
	})
}

// markDirty saves now or (re)arms the debounce timer. Only a lost state race
// is returned; the session has been dropped by then. Caller holds active.mu.
func (s *service) markDirty(ctx context.Context, sessionID string, active *activeSession) error {
	active.dirty = true

	if s.saveDebounce > 0 {
		s.scheduleSave(sessionID, active, s.saveDebounce)
		return nil
	}
	return s.saveNow(ctx, sessionID, active)
}

// scheduleSave arms the session's save timer. Caller holds active.mu.
func (s *service) scheduleSave(sessionID string, active *activeSession, delay time.Duration) {
	if active.timer == nil {
		active.timer = time.AfterFunc(delay, func() {
			s.flushSession(sessionID, active)
		})
		return
	}
	active.timer.Reset(delay)
}

// retryAfter is the wait before a failed save is tried again
func (s *service) retryAfter() time.Duration {
	if s.saveDebounce > 0 {
		return s.saveDebounce
	}
	return s.retryDelay
}

func (s *service) flushSession(sessionID string, active *activeSession) {
	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()

	active.mu.Lock()
	defer active.mu.Unlock()

	err := s.persistLocked(ctx, active)
	if err == nil {
		return
	}
	s.handlePersistError(sessionID, active, err)
	if !errors.Is(err, ErrStateConflict) && s.checkOpen() == nil {
		s.scheduleSave(sessionID, active, s.retryAfter())
	}
}

// commitTransition writes a gameState change immediately through the
// repository's compare-and-set. A lost race evicts the session and returns
// ErrStateConflict; any other failure is logged and retried on a timer.
func (s *service) commitTransition(ctx context.Context, sessionID string, active *activeSession) error {
	active.dirty = true
	return s.saveNow(ctx, sessionID, active)
}

// saveNow persists unsaved changes. A failure other than a lost state race
// keeps the changes and arms a retry. Caller holds active.mu.
func (s *service) saveNow(ctx context.Context, sessionID string, active *activeSession) error {
	err := s.persistLocked(ctx, active)
	if err == nil {
		return nil
	}

	s.handlePersistError(sessionID, active, err)
	if errors.Is(err, ErrStateConflict) {
		return err
	}
	s.scheduleSave(sessionID, active, s.retryAfter())
	return nil
}

// persistLocked writes unsaved changes. A changed gameState goes through the
// compare-and-set, everything else through the merge save. Caller holds active.mu.
func (s *service) persistLocked(ctx context.Context, active *activeSession) error {
	if !active.dirty {
		return nil
	}

	doc := active.session.Snapshot()

	var err error
	if doc.GameState != active.storedState {
		err = s.sessionRepo.TransitionGameState(ctx, &sessionRepo.TransitionGameStateInput{
			Session: doc,
			From:    active.storedState,
		})
	} else {
		err = s.sessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{
			Session:       doc,
			ExpectedState: active.storedState,
		})
	}
	if err != nil {
		return err
	}

	active.dirty = false
	active.storedState = doc.GameState

	return nil
}

// handlePersistError logs a failed save. Unsaved changes stay dirty so the
// next save retries them, except after a lost state race where the session
// is dropped and reloaded. Caller holds active.mu.
func (s *service) handlePersistError(sessionID string, active *activeSession, err error) {
	if errors.Is(err, ErrStateConflict) {
		s.logger.Warn("session changed elsewhere, reloading",
			"session_id", sessionID,
			"error", err)
		s.evict(sessionID, active)
		return
	}

	s.logger.Error("failed to save session",
		"session_id", sessionID,
		"game_state", active.session.State(),
		"error", err)
}
