package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	f := NewFormatter("฿")
	rate := decimal.RequireFromString("0.5")

	assert.Equal(t, "฿100.00", f.Format(200, rate))
	assert.Equal(t, "-฿50.00", f.Format(-100, rate))
	assert.Equal(t, "฿0.00", f.Format(0, rate))
	assert.Equal(t, "+฿100.00", f.FormatSigned(200, rate))
	assert.Equal(t, "-฿100.00", f.FormatSigned(-200, rate))
}

func TestChipValueFrom(t *testing.T) {
	rate, err := ChipValueFrom(400, decimal.NewFromInt(300))
	require.NoError(t, err)
	assert.Equal(t, "0.75", rate.String())

	_, err = ChipValueFrom(0, decimal.NewFromInt(300))
	assert.ErrorIs(t, err, ErrInvalidRate)

	_, err = ChipValueFrom(400, decimal.Zero)
	assert.ErrorIs(t, err, ErrInvalidRate)
}

func TestPaymentLink(t *testing.T) {
	rate := decimal.RequireFromString("0.5")

	assert.Equal(t, "https://promptpay.io/0812345678/150.00",
		PaymentLink("https://promptpay.io/", "0812345678", 300, rate))
	assert.Empty(t, PaymentLink("https://promptpay.io", "  ", 300, rate))
}
