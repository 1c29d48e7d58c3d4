// Package domain contains the invoice model and its status machine. Status is
// always derived from amount_paid against total_amount; it is never an input.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type InvoiceStatus string

const (
	InvoiceStatusDue     InvoiceStatus = "DUE"
	InvoiceStatusPartial InvoiceStatus = "PARTIAL"
	InvoiceStatusPaid    InvoiceStatus = "PAID"
	InvoiceStatusVoid    InvoiceStatus = "VOID"
)

// Invoice totals are float64 with a 0.01 absolute comparison tolerance; see
// AmountsEqual.
type Invoice struct {
	ID          snowflake.ID  `gorm:"primaryKey" json:"id"`
	TenantID    snowflake.ID  `gorm:"not null;index" json:"tenant_id"`
	CustomerID  *snowflake.ID `gorm:"index" json:"customer_id,omitempty"`
	Number      string        `gorm:"type:text;not null;index" json:"number"`
	TotalAmount float64       `gorm:"not null" json:"total_amount"`
	AmountPaid  float64       `gorm:"not null;default:0" json:"amount_paid"`
	Status      InvoiceStatus `gorm:"type:varchar(20);not null;default:'DUE'" json:"status"`
	IssuedAt    time.Time     `gorm:"not null" json:"issued_at"`
	DueAt       *time.Time    `json:"due_at,omitempty"`
	Notes       string        `gorm:"type:text" json:"notes"`
	CreatedAt   time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Invoice) TableName() string { return "invoices" }

// AmountTolerance is the absolute tolerance for monetary comparisons.
const AmountTolerance = 0.01

// AmountsEqual reports whether two amounts match within AmountTolerance.
func AmountsEqual(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < AmountTolerance
}

// StatusForPayment derives the invoice status from a new paid total.
func StatusForPayment(totalAmount, amountPaid float64) InvoiceStatus {
	switch {
	case amountPaid <= 0:
		return InvoiceStatusDue
	case AmountsEqual(amountPaid, totalAmount):
		return InvoiceStatusPaid
	default:
		return InvoiceStatusPartial
	}
}

// RemainingBalance never goes below zero.
func (i *Invoice) RemainingBalance() float64 {
	r := i.TotalAmount - i.AmountPaid
	if r < 0 {
		return 0
	}
	return r
}
