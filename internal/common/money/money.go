package money

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultChipValue is the currency value of one chip in a new session
var DefaultChipValue = decimal.RequireFromString("0.5")

// ErrInvalidRate is returned when a chip value cannot be derived
var ErrInvalidRate = errors.New("chip and currency amounts must be positive")

// Formatter converts chip amounts to currency strings
type Formatter struct {
	// Symbol is prefixed to every formatted amount
	Symbol string
}

// NewFormatter creates a formatter for the given currency symbol
func NewFormatter(symbol string) *Formatter {
	return &Formatter{Symbol: symbol}
}

// Value converts chips to currency
func Value(chips int64, chipValue decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(chips).Mul(chipValue)
}

// Format renders chips as currency with two decimals, e.g. ฿100.00 or -฿50.00
func (f *Formatter) Format(chips int64, chipValue decimal.Decimal) string {
	value := Value(chips, chipValue)
	if value.IsNegative() {
		return "-" + f.Symbol + value.Abs().StringFixed(2)
	}
	return f.Symbol + value.StringFixed(2)
}

// FormatSigned is Format with an explicit plus sign on profits
func (f *Formatter) FormatSigned(chips int64, chipValue decimal.Decimal) string {
	if chips > 0 {
		return "+" + f.Format(chips, chipValue)
	}
	return f.Format(chips, chipValue)
}

// ChipValueFrom derives the value of one chip from "chips are worth currency"
func ChipValueFrom(chips int64, currency decimal.Decimal) (decimal.Decimal, error) {
	if chips <= 0 || !currency.IsPositive() {
		return decimal.Zero, ErrInvalidRate
	}
	return currency.Div(decimal.NewFromInt(chips)), nil
}

// PaymentLink builds a PromptPay link for paying chips at the given rate.
// It returns an empty string when there is no payment ID.
func PaymentLink(base, paymentID string, chips int64, chipValue decimal.Decimal) string {
	paymentID = strings.TrimSpace(paymentID)
	if paymentID == "" || base == "" {
		return ""
	}
	return strings.TrimSuffix(base, "/") + "/" + paymentID + "/" + Value(chips, chipValue).StringFixed(2)
}
