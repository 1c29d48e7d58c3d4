package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, payment *PaymentRecord) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*PaymentRecord, error)
	ListByInvoice(ctx context.Context, db *gorm.DB, invoiceID snowflake.ID) ([]PaymentRecord, error)
	Delete(ctx context.Context, tx *gorm.DB, id snowflake.ID) error
	// SumByInvoice recomputes the paid total from the surviving rows.
	SumByInvoice(ctx context.Context, tx *gorm.DB, invoiceID snowflake.ID) (float64, error)
}
