// Package ledger holds a poker session as an explicit aggregate: the append-only
// transaction log, per-player net buy-ins and the game state machine.
//
// A Session is not safe for concurrent use. Callers own one per active session
// and serialize access to it.
package ledger

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/KirkDiggler/pokerledger/internal/common/clock"
	"github.com/KirkDiggler/pokerledger/internal/common/money"
	"github.com/KirkDiggler/pokerledger/internal/common/uuid"
	"github.com/KirkDiggler/pokerledger/internal/models"
	"github.com/KirkDiggler/pokerledger/internal/settlement"
	"github.com/shopspring/decimal"
)

// ResumeMessage is logged when a finished game goes back into play
const ResumeMessage = "Returned to game from summary."

// Session is the aggregate for one poker game
type Session struct {
	clock         clock.Clock
	uuidGenerator uuid.UUID
	doc           *models.Session
	seq           int64
}

func validateConfig(cfg *Config) error {
	if cfg == nil {
		return ErrNilConfig
	}
	if cfg.Clock == nil {
		return ErrNilClock
	}
	if cfg.UUIDGenerator == nil {
		return ErrNilUUIDGenerator
	}
	return nil
}

// NewSession starts an empty session in progress and logs its start
func NewSession(cfg *Config, input *NewSessionInput) (*NewSessionOutput, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	if input == nil || input.ID == "" {
		return nil, ErrEmptySessionID
	}
	if input.ChipValue.IsNegative() {
		return nil, invalid("chipValue", ErrInvalidChipValue)
	}

	chipValue := input.ChipValue
	if chipValue.IsZero() {
		chipValue = money.DefaultChipValue
	}

	now := cfg.Clock.Now()
	s := &Session{
		clock:         cfg.Clock,
		uuidGenerator: cfg.UUIDGenerator,
		doc: &models.Session{
			ID:             input.ID,
			DatePrefix:     input.DatePrefix,
			Players:        []*models.Player{},
			TransactionLog: []*models.LogEntry{},
			ChipValue:      chipValue,
			GameState:      models.GameStateInProgress,
			Blinds:         models.DefaultBlinds(),
			TimerDuration:  models.DefaultTimerDuration,
			CreatedAt:      now,
			CreatedBy:      input.CreatedBy,
			UpdatedAt:      now,
		},
	}

	entry := s.append(input.CreatedBy, models.SessionStarted{
		Message: fmt.Sprintf("Session %s started.", input.ID),
	})

	return &NewSessionOutput{
		Session: s,
		Entry:   entry,
	}, nil
}

// Load wraps a stored document. The aggregate takes ownership of doc.
func Load(cfg *Config, doc *models.Session) (*Session, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, ErrNilDocument
	}
	if doc.ID == "" {
		return nil, ErrEmptySessionID
	}
	if !doc.GameState.IsValid() {
		return nil, fmt.Errorf("%w: unknown game state %q", ErrInvalidStoredData, doc.GameState)
	}

	if doc.Players == nil {
		doc.Players = []*models.Player{}
	}
	if doc.TransactionLog == nil {
		doc.TransactionLog = []*models.LogEntry{}
	}

	var seq int64
	for _, entry := range doc.TransactionLog {
		if entry.Seq > seq {
			seq = entry.Seq
		}
	}

	return &Session{
		clock:         cfg.Clock,
		uuidGenerator: cfg.UUIDGenerator,
		doc:           doc,
		seq:           seq,
	}, nil
}

// ID returns the session identifier
func (s *Session) ID() string {
	return s.doc.ID
}

// State returns the current game state
func (s *Session) State() models.GameState {
	return s.doc.GameState
}

// Snapshot returns a copy of the session document that the caller may keep
func (s *Session) Snapshot() *models.Session {
	return s.doc.Clone()
}

// Player returns a copy of one player row
func (s *Session) Player(playerID string) (*models.Player, error) {
	p := s.findPlayer(playerID)
	if p == nil {
		return nil, invalid("playerId", ErrPlayerNotFound)
	}
	return p.Clone(), nil
}

// PlayerByOwner returns the row owned by userID, if any
func (s *Session) PlayerByOwner(userID string) (*models.Player, bool) {
	for _, p := range s.doc.Players {
		if userID != "" && p.OwnerRef == userID {
			return p.Clone(), true
		}
	}
	return nil, false
}

// AddPlayer adds a guest row and logs its initial buy-in from the box
func (s *Session) AddPlayer(input *AddPlayerInput) (*AddPlayerOutput, error) {
	if input == nil {
		return nil, invalid("name", ErrEmptyName)
	}
	if err := s.requireState("add a player", models.GameStateInProgress); err != nil {
		return nil, err
	}

	name, err := s.validateNewName(input.Name)
	if err != nil {
		return nil, err
	}
	if input.BuyIn < 0 {
		return nil, invalid("buyIn", ErrInvalidAmount)
	}
	if err := s.checkBoxCredit(nil, "buyIn", input.BuyIn); err != nil {
		return nil, err
	}

	player := &models.Player{
		ID:        s.uuidGenerator.NewUUID(),
		Name:      name,
		Status:    models.PlayerStatusGuest,
		PaymentID: input.PaymentID,
	}
	s.doc.Players = append(s.doc.Players, player)

	entry := s.creditFromBox(player, input.BuyIn, input.Actor)

	return &AddPlayerOutput{
		Player: player.Clone(),
		Entry:  entry,
	}, nil
}

// JoinPlayer links a user to the game, either by claiming a guest row or by
// creating a new joined row named after them. A user owns at most one row.
func (s *Session) JoinPlayer(input *JoinPlayerInput) (*JoinPlayerOutput, error) {
	if input == nil || input.Identity.UserID == "" {
		return nil, invalid("identity", ErrMissingIdentity)
	}
	if err := s.requireState("join", models.GameStateInProgress); err != nil {
		return nil, err
	}
	if input.BuyIn < 0 {
		return nil, invalid("buyIn", ErrInvalidAmount)
	}
	if _, owned := s.PlayerByOwner(input.Identity.UserID); owned {
		return nil, invalid("identity", ErrAlreadyJoined)
	}

	actor := input.Identity.UserID

	// Claim an existing guest row
	if input.PlayerID != "" {
		player := s.findPlayer(input.PlayerID)
		if player == nil {
			return nil, invalid("playerId", ErrPlayerNotFound)
		}
		if player.Status == models.PlayerStatusJoined {
			return nil, invalid("playerId", ErrPlayerClaimed)
		}
		if err := s.checkBoxCredit(player, "buyIn", input.BuyIn); err != nil {
			return nil, err
		}

		player.Status = models.PlayerStatusJoined
		player.OwnerRef = input.Identity.UserID
		if input.PaymentID != "" {
			player.PaymentID = input.PaymentID
		}

		var entry *models.LogEntry
		if input.BuyIn > 0 {
			entry = s.creditFromBox(player, input.BuyIn, actor)
		} else {
			s.touch()
		}

		return &JoinPlayerOutput{
			Player: player.Clone(),
			Entry:  entry,
		}, nil
	}

	// Self join as a new row
	name, err := s.validateNewName(input.Identity.DisplayName)
	if err != nil {
		return nil, err
	}
	if err := s.checkBoxCredit(nil, "buyIn", input.BuyIn); err != nil {
		return nil, err
	}

	player := &models.Player{
		ID:        s.uuidGenerator.NewUUID(),
		Name:      name,
		Status:    models.PlayerStatusJoined,
		OwnerRef:  input.Identity.UserID,
		PaymentID: input.PaymentID,
	}
	s.doc.Players = append(s.doc.Players, player)

	entry := s.creditFromBox(player, input.BuyIn, actor)

	return &JoinPlayerOutput{
		Player: player.Clone(),
		Entry:  entry,
	}, nil
}

// RecordInitialBuyIn gives a player chips from the central box as their entry
// into the game. An amount of zero is allowed.
func (s *Session) RecordInitialBuyIn(input *RecordInitialBuyInInput) (*models.LogEntry, error) {
	if input == nil {
		return nil, invalid("playerId", ErrPlayerNotFound)
	}
	if err := s.requireState("buy in", models.GameStateInProgress); err != nil {
		return nil, err
	}
	if input.Amount < 0 {
		return nil, invalid("amount", ErrInvalidAmount)
	}
	player := s.findPlayer(input.PlayerID)
	if player == nil {
		return nil, invalid("playerId", ErrPlayerNotFound)
	}
	if err := s.checkBoxCredit(player, "amount", input.Amount); err != nil {
		return nil, err
	}

	return s.creditFromBox(player, input.Amount, input.Actor), nil
}

// RecordPlayerBuyIn adds chips to a buyer. When a seller is named the seller's
// net buy-in drops by the same amount, so the pool total does not change.
func (s *Session) RecordPlayerBuyIn(input *RecordPlayerBuyInInput) (*models.LogEntry, error) {
	if input == nil {
		return nil, invalid("buyerId", ErrPlayerNotFound)
	}
	if err := s.requireState("buy in", models.GameStateInProgress); err != nil {
		return nil, err
	}
	if input.Amount <= 0 {
		return nil, invalid("amount", ErrInvalidAmount)
	}

	buyer := s.findPlayer(input.BuyerID)
	if buyer == nil {
		return nil, invalid("buyerId", ErrPlayerNotFound)
	}

	// Buying from the central box
	if input.SellerID == "" {
		if err := s.checkBoxCredit(buyer, "amount", input.Amount); err != nil {
			return nil, err
		}
		buyer.BuyIn += input.Amount
		return s.append(input.Actor, models.PlayerBuyIn{
			PlayerID: buyer.ID,
			Player:   buyer.Name,
			Amount:   input.Amount,
			Source:   models.SourceCentralBox,
		}), nil
	}

	// Buying from another player
	if input.SellerID == buyer.ID {
		return nil, invalid("sellerId", ErrSelfSale)
	}
	seller := s.findPlayer(input.SellerID)
	if seller == nil {
		return nil, invalid("sellerId", ErrPlayerNotFound)
	}
	if buyer.BuyIn > math.MaxInt64-input.Amount || seller.BuyIn < math.MinInt64+input.Amount {
		return nil, invalid("amount", ErrAmountTooLarge)
	}

	buyer.BuyIn += input.Amount
	seller.BuyIn -= input.Amount

	return s.append(input.Actor, models.PlayerBuyIn{
		PlayerID: buyer.ID,
		Player:   buyer.Name,
		Amount:   input.Amount,
		SellerID: seller.ID,
		Source:   models.SellerSource(seller.Name),
	}), nil
}

// RecordCashOut returns chips to the box. A player can never cash out more than
// their net buy-in.
func (s *Session) RecordCashOut(input *RecordCashOutInput) (*models.LogEntry, error) {
	if input == nil {
		return nil, invalid("playerId", ErrPlayerNotFound)
	}
	if err := s.requireState("cash out", models.GameStateInProgress); err != nil {
		return nil, err
	}
	if input.Amount <= 0 {
		return nil, invalid("amount", ErrInvalidAmount)
	}
	player := s.findPlayer(input.PlayerID)
	if player == nil {
		return nil, invalid("playerId", ErrPlayerNotFound)
	}
	if input.Amount > player.BuyIn {
		return nil, invalid("amount", ErrExceedsBuyIn)
	}

	player.BuyIn -= input.Amount

	return s.append(input.Actor, models.CashOut{
		PlayerID: player.ID,
		Player:   player.Name,
		Amount:   input.Amount,
	}), nil
}

// AppendLifecycleEvent records a session start or resume with no balance effect
func (s *Session) AppendLifecycleEvent(entryType models.EntryType, message, actor string) (*models.LogEntry, error) {
	switch entryType {
	case models.EntryTypeSessionStarted:
		return s.append(actor, models.SessionStarted{Message: message}), nil
	case models.EntryTypeGameResumed:
		return s.append(actor, models.GameResumed{Message: message}), nil
	}
	return nil, invalid("type", ErrUnknownEventType)
}

// EndGame stops play so final counts can be collected
func (s *Session) EndGame() error {
	if err := s.requireState("end the game", models.GameStateInProgress); err != nil {
		return err
	}
	s.doc.GameState = models.GameStateAwaitingCounts
	s.touch()
	return nil
}

// SubmitFinalCounts settles the game. On any error the session is unchanged
// and stays awaiting counts so the counts can be corrected.
func (s *Session) SubmitFinalCounts(input *SubmitFinalCountsInput) (*SubmitFinalCountsOutput, error) {
	if input == nil {
		input = &SubmitFinalCountsInput{}
	}
	if err := s.requireState("submit final counts", models.GameStateAwaitingCounts); err != nil {
		return nil, err
	}

	// Sorted so the same bad submission always reports the same problem
	ids := make([]string, 0, len(input.Counts))
	for playerID := range input.Counts {
		ids = append(ids, playerID)
	}
	sort.Strings(ids)

	var total int64
	for _, playerID := range ids {
		count := input.Counts[playerID]
		if s.findPlayer(playerID) == nil {
			return nil, invalid("counts", ErrPlayerNotFound)
		}
		if count < 0 {
			return nil, invalid("counts", ErrInvalidAmount)
		}
		if count > math.MaxInt64-total {
			return nil, invalid("counts", ErrAmountTooLarge)
		}
		total += count
	}

	inputs := make([]settlement.Input, 0, len(s.doc.Players))
	for _, p := range s.doc.Players {
		inputs = append(inputs, settlement.Input{
			PlayerID:   p.ID,
			Name:       p.Name,
			BuyIn:      p.BuyIn,
			FinalChips: input.Counts[p.ID],
		})
	}

	result, err := settlement.Settle(inputs)
	if err != nil {
		return nil, err
	}

	for _, p := range s.doc.Players {
		final := input.Counts[p.ID]
		p.FinalChips = &final
	}
	s.doc.FinalCalculations = result
	s.doc.GameState = models.GameStateFinished

	entry := s.append(input.Actor, models.GameEndSummary{Summary: result})

	return &SubmitFinalCountsOutput{
		Settlement: result,
		Entry:      entry,
	}, nil
}

// Resume reopens a finished game. The log and buy-ins are kept; the settlement
// is cleared.
func (s *Session) Resume(actor string) (*models.LogEntry, error) {
	if err := s.requireState("resume", models.GameStateFinished); err != nil {
		return nil, err
	}
	s.doc.FinalCalculations = nil
	s.doc.GameState = models.GameStateInProgress
	return s.append(actor, models.GameResumed{Message: ResumeMessage}), nil
}

// SetChipValue sets the exchange rate to currency / chips
func (s *Session) SetChipValue(chips int64, currency decimal.Decimal) (decimal.Decimal, error) {
	rate, err := money.ChipValueFrom(chips, currency)
	if err != nil {
		return decimal.Zero, invalid("chipValue", ErrInvalidChipValue)
	}
	s.doc.ChipValue = rate
	s.touch()
	return rate, nil
}

// SetPaymentID updates a player's payment ID
func (s *Session) SetPaymentID(playerID, paymentID string) (*models.Player, error) {
	player := s.findPlayer(playerID)
	if player == nil {
		return nil, invalid("playerId", ErrPlayerNotFound)
	}
	player.PaymentID = strings.TrimSpace(paymentID)
	s.touch()
	return player.Clone(), nil
}

// History returns the entries that concern a player, oldest first
func (s *Session) History(playerID string) ([]*models.LogEntry, error) {
	if s.findPlayer(playerID) == nil {
		return nil, invalid("playerId", ErrPlayerNotFound)
	}
	history := make([]*models.LogEntry, 0)
	for _, entry := range s.doc.TransactionLog {
		if entry.Concerns(playerID) {
			history = append(history, entry)
		}
	}
	return history, nil
}

// Totals replays the log to count chips issued by and returned to the box
func (s *Session) Totals() Totals {
	var t Totals
	for _, entry := range s.doc.TransactionLog {
		switch ev := entry.Event.(type) {
		case models.InitialBuyIn:
			t.IssuedFromBox += ev.Amount
		case models.PlayerBuyIn:
			if ev.SellerID == "" {
				t.IssuedFromBox += ev.Amount
			}
		case models.CashOut:
			t.CashedOut += ev.Amount
		}
	}
	return t
}

// checkBoxCredit rejects a box credit that would overflow the player's net
// buy-in or the total issued from the box. player may be nil for a new row.
func (s *Session) checkBoxCredit(player *models.Player, field string, amount int64) error {
	if amount <= 0 {
		return nil
	}
	if player != nil && player.BuyIn > math.MaxInt64-amount {
		return invalid(field, ErrAmountTooLarge)
	}
	if s.Totals().IssuedFromBox > math.MaxInt64-amount {
		return invalid(field, ErrAmountTooLarge)
	}
	return nil
}

func (s *Session) creditFromBox(player *models.Player, amount int64, actor string) *models.LogEntry {
	player.BuyIn += amount
	return s.append(actor, models.InitialBuyIn{
		PlayerID: player.ID,
		Player:   player.Name,
		Amount:   amount,
		Source:   models.SourceCentralBox,
	})
}

func (s *Session) append(actor string, event models.Event) *models.LogEntry {
	s.seq++
	entry := &models.LogEntry{
		ID:        s.uuidGenerator.NewUUID(),
		Seq:       s.seq,
		Timestamp: s.clock.Now(),
		Actor:     actor,
		Event:     event,
	}
	s.doc.TransactionLog = append(s.doc.TransactionLog, entry)
	s.doc.UpdatedAt = entry.Timestamp
	return entry
}

func (s *Session) touch() {
	s.doc.UpdatedAt = s.clock.Now()
}

func (s *Session) requireState(action string, want models.GameState) error {
	if s.doc.GameState != want {
		return &StateError{Action: action, State: string(s.doc.GameState)}
	}
	return nil
}

func (s *Session) validateNewName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", invalid("name", ErrEmptyName)
	}
	for _, p := range s.doc.Players {
		if strings.EqualFold(p.Name, trimmed) {
			return "", invalid("name", ErrDuplicateName)
		}
	}
	return trimmed, nil
}

func (s *Session) findPlayer(playerID string) *models.Player {
	if playerID == "" {
		return nil
	}
	for _, p := range s.doc.Players {
		if p.ID == playerID {
			return p
		}
	}
	return nil
}
