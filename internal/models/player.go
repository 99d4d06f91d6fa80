package models

// PlayerStatus describes how a player row is tied to an account
type PlayerStatus string

const (
	// PlayerStatusGuest indicates a row added by an organizer with no linked account
	PlayerStatusGuest PlayerStatus = "guest"

	// PlayerStatusJoined indicates a row owned by an authenticated participant
	PlayerStatusJoined PlayerStatus = "joined"
)

// Player represents one seat in a poker session
type Player struct {
	// ID is the unique identifier for the player row
	ID string `json:"id"`

	// Name is the display name, unique within a session ignoring case
	Name string `json:"name"`

	// BuyIn is the net number of chips this player has contributed to the pool
	BuyIn int64 `json:"buyIn"`

	// FinalChips is the chip count entered at the end of the game, nil until then
	FinalChips *int64 `json:"finalChips"`

	// Status is guest or joined
	Status PlayerStatus `json:"status"`

	// OwnerRef is the identity that owns this row, set only when Status is joined
	OwnerRef string `json:"ownerRef,omitempty"`

	// PaymentID is the player's PromptPay ID, copied from their profile
	PaymentID string `json:"paymentId,omitempty"`
}

// Balance returns FinalChips - BuyIn. The second value is false until final chips are set.
func (p *Player) Balance() (int64, bool) {
	if p.FinalChips == nil {
		return 0, false
	}
	return *p.FinalChips - p.BuyIn, true
}

// Clone returns a copy of the player that shares no memory with the original
func (p *Player) Clone() *Player {
	if p == nil {
		return nil
	}
	out := *p
	if p.FinalChips != nil {
		final := *p.FinalChips
		out.FinalChips = &final
	}
	return &out
}

// Identity is the authenticated caller as supplied by the identity collaborator
type Identity struct {
	// UserID is an opaque identifier for the caller
	UserID string

	// DisplayName is the caller's preferred display name
	DisplayName string
}
