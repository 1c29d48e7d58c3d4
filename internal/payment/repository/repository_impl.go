package repository

import (
	"context"

	paymentdomain "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/payment/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

const paymentColumns = `id, tenant_id, invoice_id, amount, method, reference, paid_at, notes, created_at`

type repo struct{}

func Provide() paymentdomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, payment *paymentdomain.PaymentRecord) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO payments (
			id, tenant_id, invoice_id, amount, method, reference, paid_at, notes, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		payment.ID,
		payment.TenantID,
		payment.InvoiceID,
		payment.Amount,
		payment.Method,
		payment.Reference,
		payment.PaidAt,
		payment.Notes,
		payment.CreatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*paymentdomain.PaymentRecord, error) {
	var payment paymentdomain.PaymentRecord
	err := db.WithContext(ctx).Raw(
		`SELECT `+paymentColumns+` FROM payments WHERE id = ?`,
		id,
	).Scan(&payment).Error
	if err != nil {
		return nil, err
	}
	if payment.ID == 0 {
		return nil, nil
	}
	return &payment, nil
}

func (r *repo) ListByInvoice(ctx context.Context, db *gorm.DB, invoiceID snowflake.ID) ([]paymentdomain.PaymentRecord, error) {
	var payments []paymentdomain.PaymentRecord
	err := db.WithContext(ctx).Raw(
		`SELECT `+paymentColumns+` FROM payments WHERE invoice_id = ? ORDER BY paid_at ASC, id ASC`,
		invoiceID,
	).Scan(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *repo) Delete(ctx context.Context, tx *gorm.DB, id snowflake.ID) error {
	return tx.WithContext(ctx).Exec(`DELETE FROM payments WHERE id = ?`, id).Error
}

func (r *repo) SumByInvoice(ctx context.Context, tx *gorm.DB, invoiceID snowflake.ID) (float64, error) {
	var sum float64
	err := tx.WithContext(ctx).Raw(
		`SELECT COALESCE(SUM(amount), 0) FROM payments WHERE invoice_id = ?`,
		invoiceID,
	).Scan(&sum).Error
	return sum, err
}
