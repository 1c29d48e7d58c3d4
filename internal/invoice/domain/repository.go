package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, invoice *Invoice) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Invoice, error)
	// FindByIDForUpdate locks the invoice row for the duration of the
	// enclosing transaction.
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id snowflake.ID) (*Invoice, error)
	List(ctx context.Context, db *gorm.DB, tenantID snowflake.ID) ([]Invoice, error)
	UpdatePaymentState(ctx context.Context, tx *gorm.DB, id snowflake.ID, amountPaid float64, status InvoiceStatus) error
	MarkVoid(ctx context.Context, tx *gorm.DB, id snowflake.ID) (bool, error)
	CountPayments(ctx context.Context, db *gorm.DB, invoiceID snowflake.ID) (int64, error)
}
