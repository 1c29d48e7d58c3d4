package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAmountsEqual(t *testing.T) {
	assert.True(t, AmountsEqual(100, 100))
	assert.True(t, AmountsEqual(100, 100.009))
	assert.True(t, AmountsEqual(99.995, 100))
	assert.False(t, AmountsEqual(100, 100.01), "tolerance is exclusive")
	assert.False(t, AmountsEqual(100, 99.98))
}

func TestStatusForPayment(t *testing.T) {
	assert.Equal(t, InvoiceStatusDue, StatusForPayment(100, 0))
	assert.Equal(t, InvoiceStatusDue, StatusForPayment(100, -5))
	assert.Equal(t, InvoiceStatusPartial, StatusForPayment(100, 60))
	assert.Equal(t, InvoiceStatusPaid, StatusForPayment(100, 100))
	assert.Equal(t, InvoiceStatusPaid, StatusForPayment(100, 99.995), "within tolerance counts as paid")
	assert.Equal(t, InvoiceStatusPartial, StatusForPayment(100, 99.98))
}

func TestRemainingBalanceClamps(t *testing.T) {
	inv := &Invoice{TotalAmount: 100, AmountPaid: 60}
	assert.InDelta(t, 40, inv.RemainingBalance(), 1e-9)

	inv.AmountPaid = 100.009
	assert.Equal(t, float64(0), inv.RemainingBalance(), "never negative")
}
