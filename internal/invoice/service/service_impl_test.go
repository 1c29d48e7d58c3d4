package service

import (
	"context"
	"testing"
	"time"

	"github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/clock"
	invoicedomain "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/invoice/domain"
	invoicerepo "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/invoice/repository"
	paymentdomain "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/payment/domain"
	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupInvoiceTest(t *testing.T) (*Service, *gorm.DB, *snowflake.Node) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&invoicedomain.Invoice{}, &paymentdomain.PaymentRecord{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := NewService(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: clock.NewFakeClock(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)),
		Repo:  invoicerepo.Provide(),
	})
	return svc, db, node
}

func TestCreateInvoice(t *testing.T) {
	svc, _, node := setupInvoiceTest(t)
	tenantID := node.Generate()

	invoice, err := svc.Create(context.Background(), tenantID, CreateInvoiceInput{TotalAmount: 150})
	require.NoError(t, err)
	assert.Equal(t, invoicedomain.InvoiceStatusDue, invoice.Status)
	assert.Equal(t, float64(0), invoice.AmountPaid)
	assert.NotEmpty(t, invoice.Number)

	got, err := svc.GetByID(context.Background(), tenantID, invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, invoice.Number, got.Number)
}

func TestCreateInvoiceRejectsNonPositiveTotal(t *testing.T) {
	svc, _, node := setupInvoiceTest(t)
	tenantID := node.Generate()

	_, err := svc.Create(context.Background(), tenantID, CreateInvoiceInput{TotalAmount: 0})
	assert.ErrorIs(t, err, invoicedomain.ErrInvalidTotal)

	_, err = svc.Create(context.Background(), tenantID, CreateInvoiceInput{TotalAmount: -10})
	assert.ErrorIs(t, err, invoicedomain.ErrInvalidTotal)
}

func TestGetByIDCrossTenant(t *testing.T) {
	svc, _, node := setupInvoiceTest(t)
	owner := node.Generate()
	stranger := node.Generate()

	invoice, err := svc.Create(context.Background(), owner, CreateInvoiceInput{TotalAmount: 50})
	require.NoError(t, err)

	_, err = svc.GetByID(context.Background(), stranger, invoice.ID)
	assert.ErrorIs(t, err, invoicedomain.ErrForbidden)

	_, err = svc.GetByID(context.Background(), owner, node.Generate())
	assert.ErrorIs(t, err, invoicedomain.ErrInvoiceNotFound)
}

func TestVoidInvoice(t *testing.T) {
	svc, _, node := setupInvoiceTest(t)
	tenantID := node.Generate()

	invoice, err := svc.Create(context.Background(), tenantID, CreateInvoiceInput{TotalAmount: 50})
	require.NoError(t, err)

	voided, err := svc.Void(context.Background(), tenantID, invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, invoicedomain.InvoiceStatusVoid, voided.Status)

	_, err = svc.Void(context.Background(), tenantID, invoice.ID)
	assert.ErrorIs(t, err, invoicedomain.ErrInvoiceVoid)
}

func TestVoidInvoiceWithPaymentsRejected(t *testing.T) {
	svc, db, node := setupInvoiceTest(t)
	tenantID := node.Generate()

	invoice, err := svc.Create(context.Background(), tenantID, CreateInvoiceInput{TotalAmount: 50})
	require.NoError(t, err)

	require.NoError(t, db.Create(&paymentdomain.PaymentRecord{
		ID:        node.Generate(),
		TenantID:  tenantID,
		InvoiceID: invoice.ID,
		Amount:    20,
		Method:    "CASH",
		PaidAt:    time.Date(2026, 3, 1, 11, 0, 0, 0, time.UTC),
		CreatedAt: time.Date(2026, 3, 1, 11, 0, 0, 0, time.UTC),
	}).Error)

	_, err = svc.Void(context.Background(), tenantID, invoice.ID)
	assert.ErrorIs(t, err, invoicedomain.ErrInvoiceHasPayments)

	got, err := svc.GetByID(context.Background(), tenantID, invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, invoicedomain.InvoiceStatusDue, got.Status, "failed void must not change status")
}

func TestVoidCrossTenant(t *testing.T) {
	svc, _, node := setupInvoiceTest(t)
	owner := node.Generate()

	invoice, err := svc.Create(context.Background(), owner, CreateInvoiceInput{TotalAmount: 50})
	require.NoError(t, err)

	_, err = svc.Void(context.Background(), node.Generate(), invoice.ID)
	assert.ErrorIs(t, err, invoicedomain.ErrForbidden)
}
