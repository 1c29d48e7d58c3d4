package service

import (
	"context"
	"fmt"

	"github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/clock"
	invoicedomain "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/invoice/domain"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  invoicedomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  invoicedomain.Repository
}

func NewService(p Params) *Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("invoice.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

type CreateInvoiceInput struct {
	CustomerID  *snowflake.ID `json:"customer_id,omitempty"`
	Number      string        `json:"number,omitempty"`
	TotalAmount float64       `json:"total_amount" binding:"required"`
	DueAt       *string       `json:"due_at,omitempty"`
	Notes       string        `json:"notes,omitempty"`
}

// Create opens a new invoice in DUE with nothing paid. The total is immutable
// after this point.
func (s *Service) Create(ctx context.Context, tenantID snowflake.ID, in CreateInvoiceInput) (*invoicedomain.Invoice, error) {
	if in.TotalAmount <= 0 {
		return nil, invoicedomain.ErrInvalidTotal
	}

	now := s.clock.Now()
	id := s.genID.Generate()
	number := in.Number
	if number == "" {
		number = fmt.Sprintf("INV-%s", id.String())
	}
	invoice := &invoicedomain.Invoice{
		ID:          id,
		TenantID:    tenantID,
		CustomerID:  in.CustomerID,
		Number:      number,
		TotalAmount: in.TotalAmount,
		AmountPaid:  0,
		Status:      invoicedomain.InvoiceStatusDue,
		IssuedAt:    now,
		Notes:       in.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Insert(ctx, s.db, invoice); err != nil {
		return nil, err
	}

	s.log.Info("invoice created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("invoice_id", invoice.ID.String()),
		zap.Float64("total_amount", invoice.TotalAmount),
	)
	return invoice, nil
}

func (s *Service) GetByID(ctx context.Context, tenantID, id snowflake.ID) (*invoicedomain.Invoice, error) {
	invoice, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, invoicedomain.ErrInvoiceNotFound
	}
	if invoice.TenantID != tenantID {
		return nil, invoicedomain.ErrForbidden
	}
	return invoice, nil
}

func (s *Service) List(ctx context.Context, tenantID snowflake.ID) ([]invoicedomain.Invoice, error) {
	return s.repo.List(ctx, s.db, tenantID)
}

// Void cancels an invoice that has no payments on record. The check and the
// status flip run under the invoice row lock so a concurrent payment cannot
// slip in between.
func (s *Service) Void(ctx context.Context, tenantID, id snowflake.ID) (*invoicedomain.Invoice, error) {
	var voided *invoicedomain.Invoice
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		invoice, err := s.repo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}
		if invoice == nil {
			return invoicedomain.ErrInvoiceNotFound
		}
		if invoice.TenantID != tenantID {
			return invoicedomain.ErrForbidden
		}
		if invoice.Status == invoicedomain.InvoiceStatusVoid {
			return invoicedomain.ErrInvoiceVoid
		}
		count, err := s.repo.CountPayments(ctx, tx, invoice.ID)
		if err != nil {
			return err
		}
		if count > 0 {
			return invoicedomain.ErrInvoiceHasPayments
		}
		ok, err := s.repo.MarkVoid(ctx, tx, invoice.ID)
		if err != nil {
			return err
		}
		if !ok {
			return invoicedomain.ErrInvoiceHasPayments
		}
		invoice.Status = invoicedomain.InvoiceStatusVoid
		voided = invoice
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("invoice voided",
		zap.String("tenant_id", tenantID.String()),
		zap.String("invoice_id", voided.ID.String()),
	)
	return voided, nil
}
