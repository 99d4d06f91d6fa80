package models

// PlayerProfile holds the per-name details that outlive a single session
type PlayerProfile struct {
	// Name is the display name the profile belongs to
	Name string `json:"name"`

	// PaymentID is the PromptPay ID used to build payment links
	PaymentID string `json:"paymentId,omitempty"`

	// QuickAdd marks the name for the organizer's quick-add list
	QuickAdd bool `json:"isQuickAdd"`
}
