package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// EntryType identifies the kind of event a ledger entry records
type EntryType string

const (
	// EntryTypeInitialBuyIn records a player entering the game with chips from the box
	EntryTypeInitialBuyIn EntryType = "initial_buy_in"

	// EntryTypePlayerBuyIn records a later purchase from the box or from another player
	EntryTypePlayerBuyIn EntryType = "player_buy_in"

	// EntryTypeCashOut records chips returned to the box
	EntryTypeCashOut EntryType = "cash_out"

	// EntryTypeGameEndSummary records the settlement result
	EntryTypeGameEndSummary EntryType = "game_end_summary"

	// EntryTypeSessionStarted records the creation of a session
	EntryTypeSessionStarted EntryType = "session_started"

	// EntryTypeGameResumed records a return from the summary to play
	EntryTypeGameResumed EntryType = "game_resumed"
)

// Title returns the human readable name of the entry type
func (t EntryType) Title() string {
	switch t {
	case EntryTypeInitialBuyIn:
		return "Initial Buy-in"
	case EntryTypePlayerBuyIn:
		return "Player Buy-in"
	case EntryTypeCashOut:
		return "Cash Out"
	case EntryTypeGameEndSummary:
		return "Game End Summary"
	case EntryTypeSessionStarted:
		return "New Game"
	case EntryTypeGameResumed:
		return "Game Resumed"
	}
	return string(t)
}

// SourceCentralBox is the source of chips bought from the shared reserve
const SourceCentralBox = "Central Box"

// SellerSource returns the source tag for chips bought from another player
func SellerSource(sellerName string) string {
	return "from " + sellerName
}

// Event is the type-specific payload of a ledger entry. The set of
// implementations is closed; switch on the concrete type.
type Event interface {
	EntryType() EntryType
	isEvent()
}

// InitialBuyIn is a player entering the game
type InitialBuyIn struct {
	PlayerID string `json:"playerId"`
	Player   string `json:"player"`
	Amount   int64  `json:"amount"`
	Source   string `json:"source"`
}

// PlayerBuyIn is a purchase of chips after entering the game
type PlayerBuyIn struct {
	PlayerID string `json:"playerId"`
	Player   string `json:"player"`
	Amount   int64  `json:"amount"`

	// SellerID is empty when the chips came from the central box
	SellerID string `json:"sellerId,omitempty"`
	Source   string `json:"source"`
}

// CashOut is chips returned to the central box
type CashOut struct {
	PlayerID string `json:"playerId"`
	Player   string `json:"player"`
	Amount   int64  `json:"amount"`
}

// GameEndSummary carries the full settlement result
type GameEndSummary struct {
	Summary *Settlement `json:"summary"`
}

// SessionStarted marks the start of a session
type SessionStarted struct {
	Message string `json:"message"`
}

// GameResumed marks a return to play after a summary
type GameResumed struct {
	Message string `json:"message"`
}

// EntryType implements Event
func (InitialBuyIn) EntryType() EntryType { return EntryTypeInitialBuyIn }

// EntryType implements Event
func (PlayerBuyIn) EntryType() EntryType { return EntryTypePlayerBuyIn }

// EntryType implements Event
func (CashOut) EntryType() EntryType { return EntryTypeCashOut }

// EntryType implements Event
func (GameEndSummary) EntryType() EntryType { return EntryTypeGameEndSummary }

// EntryType implements Event
func (SessionStarted) EntryType() EntryType { return EntryTypeSessionStarted }

// EntryType implements Event
func (GameResumed) EntryType() EntryType { return EntryTypeGameResumed }

func (InitialBuyIn) isEvent()   {}
func (PlayerBuyIn) isEvent()    {}
func (CashOut) isEvent()        {}
func (GameEndSummary) isEvent() {}
func (SessionStarted) isEvent() {}
func (GameResumed) isEvent()    {}

// LogEntry is one immutable record in a session's transaction log
type LogEntry struct {
	// ID is the unique identifier for the entry
	ID string

	// Seq is the local append order, starting at 1
	Seq int64

	// Timestamp is when the entry was appended
	Timestamp time.Time

	// Actor is the identity that caused the entry, if known
	Actor string

	// Event is the type-specific payload
	Event Event
}

// Type returns the entry type of the payload
func (e *LogEntry) Type() EntryType {
	if e.Event == nil {
		return ""
	}
	return e.Event.EntryType()
}

// Concerns reports whether the entry involves the player, either as the
// subject or as the seller in a peer buy-in
func (e *LogEntry) Concerns(playerID string) bool {
	switch ev := e.Event.(type) {
	case InitialBuyIn:
		return ev.PlayerID == playerID
	case PlayerBuyIn:
		return ev.PlayerID == playerID || ev.SellerID == playerID
	case CashOut:
		return ev.PlayerID == playerID
	}
	return false
}

type logEntryJSON struct {
	ID        string          `json:"id"`
	Seq       int64           `json:"seq"`
	Timestamp time.Time       `json:"timestamp"`
	Actor     string          `json:"actor,omitempty"`
	Type      EntryType       `json:"type"`
	Data      json.RawMessage `json:"data"`
}

// MarshalJSON encodes the entry with its type tag and payload
func (e *LogEntry) MarshalJSON() ([]byte, error) {
	if e.Event == nil {
		return nil, fmt.Errorf("log entry %s has no event", e.ID)
	}
	data, err := json.Marshal(e.Event)
	if err != nil {
		return nil, err
	}
	return json.Marshal(logEntryJSON{
		ID:        e.ID,
		Seq:       e.Seq,
		Timestamp: e.Timestamp,
		Actor:     e.Actor,
		Type:      e.Event.EntryType(),
		Data:      data,
	})
}

// UnmarshalJSON decodes an entry, choosing the payload type from the tag
func (e *LogEntry) UnmarshalJSON(b []byte) error {
	var raw logEntryJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	var event Event
	var err error
	switch raw.Type {
	case EntryTypeInitialBuyIn:
		event, err = decodeEvent[InitialBuyIn](raw.Data)
	case EntryTypePlayerBuyIn:
		event, err = decodeEvent[PlayerBuyIn](raw.Data)
	case EntryTypeCashOut:
		event, err = decodeEvent[CashOut](raw.Data)
	case EntryTypeGameEndSummary:
		event, err = decodeEvent[GameEndSummary](raw.Data)
	case EntryTypeSessionStarted:
		event, err = decodeEvent[SessionStarted](raw.Data)
	case EntryTypeGameResumed:
		event, err = decodeEvent[GameResumed](raw.Data)
	default:
		return fmt.Errorf("unknown log entry type %q", raw.Type)
	}
	if err != nil {
		return fmt.Errorf("failed to decode %s entry: %w", raw.Type, err)
	}

	*e = LogEntry{
		ID:        raw.ID,
		Seq:       raw.Seq,
		Timestamp: raw.Timestamp,
		Actor:     raw.Actor,
		Event:     event,
	}
	return nil
}

func decodeEvent[T Event](data json.RawMessage) (Event, error) {
	var ev T
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, err
	}
	return ev, nil
}
