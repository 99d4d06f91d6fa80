package player

// GetProfileInput contains parameters for retrieving a profile
type GetProfileInput struct {
	Name string
}

// SavePaymentIDInput contains parameters for updating a payment ID
type SavePaymentIDInput struct {
	Name      string
	PaymentID string
}

// ToggleQuickAddInput contains parameters for toggling quick-add
type ToggleQuickAddInput struct {
	Name string
}

// ToggleQuickAddOutput contains the new quick-add flag
type ToggleQuickAddOutput struct {
	QuickAdd bool
}

// ListQuickAddInput contains parameters for listing the quick-add roster
type ListQuickAddInput struct{}

// ListQuickAddOutput contains the quick-add roster
type ListQuickAddOutput struct {
	Names []string
}
