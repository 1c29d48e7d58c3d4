// Package domain contains the payment ledger records. A payment row is an
// append-only fact; invoice amount_paid is derived state.
package domain

import (
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
)

type PaymentRecord struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	TenantID  snowflake.ID `gorm:"not null;index" json:"tenant_id"`
	InvoiceID snowflake.ID `gorm:"not null;index" json:"invoice_id"`
	Amount    float64      `gorm:"not null" json:"amount"`
	Method    string       `gorm:"type:varchar(30);not null;default:'CASH'" json:"method"`
	Reference string       `gorm:"type:text;not null" json:"reference"`
	PaidAt    time.Time    `gorm:"not null" json:"paid_at"`
	Notes     string       `gorm:"type:text" json:"notes"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (PaymentRecord) TableName() string { return "payments" }

// OverpaymentError rejects a payment that would push the invoice past its
// total; MaxPayable tells the caller the largest amount still accepted.
type OverpaymentError struct {
	MaxPayable float64
}

func (e *OverpaymentError) Error() string {
	return fmt.Sprintf("payment exceeds remaining balance; max payable is %.2f", e.MaxPayable)
}
