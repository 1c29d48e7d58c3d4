package repository

import (
	"context"

	invoicedomain "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/invoice/domain"
	pkgdb "github.com/Web-of-Shafiuddin/quick-memo-sub002/pkg/db"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

const invoiceColumns = `id, tenant_id, customer_id, number, total_amount, amount_paid,
 status, issued_at, due_at, notes, created_at, updated_at`

type repo struct{}

func Provide() invoicedomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, invoice *invoicedomain.Invoice) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO invoices (
			id, tenant_id, customer_id, number, total_amount, amount_paid,
			status, issued_at, due_at, notes, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		invoice.ID,
		invoice.TenantID,
		invoice.CustomerID,
		invoice.Number,
		invoice.TotalAmount,
		invoice.AmountPaid,
		invoice.Status,
		invoice.IssuedAt,
		invoice.DueAt,
		invoice.Notes,
		invoice.CreatedAt,
		invoice.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*invoicedomain.Invoice, error) {
	return r.findByID(ctx, db, id, "")
}

func (r *repo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id snowflake.ID) (*invoicedomain.Invoice, error) {
	return r.findByID(ctx, tx, id, pkgdb.LockForUpdate(tx))
}

func (r *repo) findByID(ctx context.Context, db *gorm.DB, id snowflake.ID, lock string) (*invoicedomain.Invoice, error) {
	var invoice invoicedomain.Invoice
	err := db.WithContext(ctx).Raw(
		`SELECT `+invoiceColumns+` FROM invoices WHERE id = ?`+lock,
		id,
	).Scan(&invoice).Error
	if err != nil {
		return nil, err
	}
	if invoice.ID == 0 {
		return nil, nil
	}
	return &invoice, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, tenantID snowflake.ID) ([]invoicedomain.Invoice, error) {
	var invoices []invoicedomain.Invoice
	err := db.WithContext(ctx).Raw(
		`SELECT `+invoiceColumns+` FROM invoices WHERE tenant_id = ? ORDER BY issued_at DESC`,
		tenantID,
	).Scan(&invoices).Error
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

func (r *repo) UpdatePaymentState(ctx context.Context, tx *gorm.DB, id snowflake.ID, amountPaid float64, status invoicedomain.InvoiceStatus) error {
	return tx.WithContext(ctx).Exec(
		`UPDATE invoices SET amount_paid = ?, status = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		amountPaid, status, id,
	).Error
}

// MarkVoid only succeeds while the invoice is still DUE; false means the row
// was in another status.
func (r *repo) MarkVoid(ctx context.Context, tx *gorm.DB, id snowflake.ID) (bool, error) {
	res := tx.WithContext(ctx).Exec(
		`UPDATE invoices SET status = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND status = ?`,
		invoicedomain.InvoiceStatusVoid, id, invoicedomain.InvoiceStatusDue,
	)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repo) CountPayments(ctx context.Context, db *gorm.DB, invoiceID snowflake.ID) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Raw(
		`SELECT COUNT(*) FROM payments WHERE invoice_id = ?`,
		invoiceID,
	).Scan(&count).Error
	return count, err
}
