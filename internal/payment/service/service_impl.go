package service

import (
	"context"

	"github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/clock"
	invoicedomain "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/invoice/domain"
	"github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/observability/metrics"
	paymentdomain "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/payment/domain"
	"github.com/bwmarrin/snowflake"
	"github.com/oklog/ulid/v2"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Clock       clock.Clock
	Repo        paymentdomain.Repository
	InvoiceRepo invoicedomain.Repository
	Metrics     *metrics.Metrics `optional:"true"`
}

// Ledger records and removes payments against invoices, keeping the invoice's
// amount_paid and status consistent under concurrent writers.
type Ledger struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	clock       clock.Clock
	repo        paymentdomain.Repository
	invoiceRepo invoicedomain.Repository
	metrics     *metrics.Metrics
}

func NewLedger(p Params) *Ledger {
	return &Ledger{
		db:          p.DB,
		log:         p.Log.Named("payment.service"),
		genID:       p.GenID,
		clock:       p.Clock,
		repo:        p.Repo,
		invoiceRepo: p.InvoiceRepo,
		metrics:     p.Metrics,
	}
}

type AddPaymentInput struct {
	Amount    float64 `json:"amount" binding:"required"`
	Method    string  `json:"method,omitempty"`
	Reference string  `json:"reference,omitempty"`
	Notes     string  `json:"notes,omitempty"`
}

// AddPaymentResult mirrors the invoice state after the payment landed.
type AddPaymentResult struct {
	Payment          *paymentdomain.PaymentRecord `json:"payment"`
	InvoiceStatus    invoicedomain.InvoiceStatus  `json:"invoice_status"`
	AmountPaid       float64                      `json:"amount_paid"`
	RemainingBalance float64                      `json:"remaining_balance"`
}

// AddPayment appends a payment to the invoice's ledger. The invoice row is
// locked for the whole read-check-write sequence so two concurrent payments
// cannot both read the same amount_paid.
func (l *Ledger) AddPayment(ctx context.Context, tenantID, invoiceID snowflake.ID, in AddPaymentInput) (*AddPaymentResult, error) {
	if in.Amount <= 0 {
		return nil, paymentdomain.ErrInvalidAmount
	}

	var result *AddPaymentResult
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		invoice, err := l.invoiceRepo.FindByIDForUpdate(ctx, tx, invoiceID)
		if err != nil {
			return err
		}
		if invoice == nil {
			return paymentdomain.ErrInvoiceNotFound
		}
		if invoice.TenantID != tenantID {
			return paymentdomain.ErrForbidden
		}
		if invoice.Status == invoicedomain.InvoiceStatusVoid {
			return paymentdomain.ErrInvoiceVoid
		}
		if invoice.Status == invoicedomain.InvoiceStatusPaid {
			return paymentdomain.ErrInvoicePaid
		}

		newTotalPaid := invoice.AmountPaid + in.Amount
		if newTotalPaid > invoice.TotalAmount && !invoicedomain.AmountsEqual(newTotalPaid, invoice.TotalAmount) {
			return &paymentdomain.OverpaymentError{MaxPayable: invoice.RemainingBalance()}
		}

		now := l.clock.Now()
		method := in.Method
		if method == "" {
			method = "CASH"
		}
		reference := in.Reference
		if reference == "" {
			reference = ulid.Make().String()
		}
		payment := &paymentdomain.PaymentRecord{
			ID:        l.genID.Generate(),
			TenantID:  tenantID,
			InvoiceID: invoice.ID,
			Amount:    in.Amount,
			Method:    method,
			Reference: reference,
			PaidAt:    now,
			Notes:     in.Notes,
			CreatedAt: now,
		}
		if err := l.repo.Insert(ctx, tx, payment); err != nil {
			return err
		}

		status := invoicedomain.StatusForPayment(invoice.TotalAmount, newTotalPaid)
		if err := l.invoiceRepo.UpdatePaymentState(ctx, tx, invoice.ID, newTotalPaid, status); err != nil {
			return err
		}

		invoice.AmountPaid = newTotalPaid
		invoice.Status = status
		result = &AddPaymentResult{
			Payment:          payment,
			InvoiceStatus:    status,
			AmountPaid:       newTotalPaid,
			RemainingBalance: invoice.RemainingBalance(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.metrics.RecordPaymentEvent("payment_added", string(result.InvoiceStatus))
	l.log.Info("payment recorded",
		zap.String("tenant_id", tenantID.String()),
		zap.String("invoice_id", invoiceID.String()),
		zap.String("payment_id", result.Payment.ID.String()),
		zap.Float64("amount", in.Amount),
		zap.String("invoice_status", string(result.InvoiceStatus)),
	)
	return result, nil
}

// DeletePaymentResult mirrors the invoice state after the recompute.
type DeletePaymentResult struct {
	NewAmountPaid float64                     `json:"new_amount_paid"`
	NewStatus     invoicedomain.InvoiceStatus `json:"new_status"`
}

// DeletePayment removes a ledger entry and recomputes the invoice's paid
// total from scratch, never by subtraction, so the derived state self-heals.
func (l *Ledger) DeletePayment(ctx context.Context, tenantID, paymentID snowflake.ID) (*DeletePaymentResult, error) {
	payment, err := l.repo.FindByID(ctx, l.db, paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, paymentdomain.ErrPaymentNotFound
	}
	if payment.TenantID != tenantID {
		return nil, paymentdomain.ErrForbidden
	}

	var result *DeletePaymentResult
	err = l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		invoice, err := l.invoiceRepo.FindByIDForUpdate(ctx, tx, payment.InvoiceID)
		if err != nil {
			return err
		}
		if invoice == nil {
			return paymentdomain.ErrInvoiceNotFound
		}
		if err := l.repo.Delete(ctx, tx, payment.ID); err != nil {
			return err
		}
		newTotalPaid, err := l.repo.SumByInvoice(ctx, tx, invoice.ID)
		if err != nil {
			return err
		}
		status := invoicedomain.StatusForPayment(invoice.TotalAmount, newTotalPaid)
		if err := l.invoiceRepo.UpdatePaymentState(ctx, tx, invoice.ID, newTotalPaid, status); err != nil {
			return err
		}
		result = &DeletePaymentResult{NewAmountPaid: newTotalPaid, NewStatus: status}
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.metrics.RecordPaymentEvent("payment_deleted", string(result.NewStatus))
	l.log.Info("payment deleted",
		zap.String("tenant_id", tenantID.String()),
		zap.String("payment_id", paymentID.String()),
		zap.String("invoice_status", string(result.NewStatus)),
		zap.Float64("new_amount_paid", result.NewAmountPaid),
	)
	return result, nil
}

// ListByInvoice returns the invoice's ledger after a tenant check.
func (l *Ledger) ListByInvoice(ctx context.Context, tenantID, invoiceID snowflake.ID) ([]paymentdomain.PaymentRecord, error) {
	invoice, err := l.invoiceRepo.FindByID(ctx, l.db, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, paymentdomain.ErrInvoiceNotFound
	}
	if invoice.TenantID != tenantID {
		return nil, paymentdomain.ErrForbidden
	}
	return l.repo.ListByInvoice(ctx, l.db, invoiceID)
}
