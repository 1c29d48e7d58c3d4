package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	catalogdomain "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/catalog/domain"
	catalogrepo "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/catalog/repository"
	catalogservice "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/catalog/service"
	"github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/clock"
	"github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/config"
	invoicedomain "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/invoice/domain"
	invoicerepo "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/invoice/repository"
	invoiceservice "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/invoice/service"
	notificationdomain "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/notification/domain"
	notificationrepo "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/notification/repository"
	notificationservice "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/notification/service"
	orderdomain "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/order/domain"
	orderrepo "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/order/repository"
	orderservice "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/order/service"
	paymentdomain "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/payment/domain"
	paymentrepo "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/payment/repository"
	paymentservice "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/payment/service"
	plandomain "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/plan/domain"
	planrepo "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/plan/repository"
	quotaservice "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/quota/service"
	subscriptiondomain "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/subscription/domain"
	subscriptionrepo "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/subscription/repository"
	subscriptionservice "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/subscription/service"
	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type apiFixture struct {
	server *Server
	db     *gorm.DB
	node   *snowflake.Node
	now    time.Time
}

// newAPIFixture wires the full handler stack on an in-memory database with a
// bare engine: just recovery and the error renderer, no metrics or tracing.
func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&plandomain.Plan{},
		&subscriptiondomain.Subscription{},
		&catalogdomain.Category{},
		&catalogdomain.Product{},
		&catalogdomain.ProductImage{},
		&orderdomain.Customer{},
		&orderdomain.Order{},
		&orderdomain.OrderItem{},
		&invoicedomain.Invoice{},
		&paymentdomain.PaymentRecord{},
		&notificationdomain.Notification{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	fakeClock := clock.NewFakeClock(now)
	log := zap.NewNop()

	resolver := quotaservice.NewResolver(quotaservice.ResolverParams{DB: db, Clock: fakeClock})
	counter := quotaservice.NewCounter(quotaservice.CounterParams{DB: db, Clock: fakeClock})
	gate := quotaservice.NewGate(quotaservice.GateParams{Log: log, Resolver: resolver, Counter: counter})

	invoiceRepo := invoicerepo.Provide()
	catalogRepo := catalogrepo.Provide()

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(ErrorHandlingMiddleware())

	srv := NewServer(ServerParams{
		Gin: engine,
		Cfg: config.Config{},
		SubscriptionSvc: subscriptionservice.NewService(subscriptionservice.Params{
			DB: db, Log: log, GenID: node, Clock: fakeClock,
			Repo: subscriptionrepo.Provide(), PlanRepo: planrepo.Provide(),
		}),
		CatalogSvc: catalogservice.NewService(catalogservice.Params{
			DB: db, Log: log, GenID: node, Clock: fakeClock,
			Repo: catalogRepo, Gate: gate,
		}),
		OrderSvc: orderservice.NewService(orderservice.Params{
			DB: db, Log: log, GenID: node, Clock: fakeClock,
			Repo: orderrepo.Provide(), CatalogRepo: catalogRepo, Gate: gate,
		}),
		InvoiceSvc: invoiceservice.NewService(invoiceservice.Params{
			DB: db, Log: log, GenID: node, Clock: fakeClock,
			Repo: invoiceRepo,
		}),
		PaymentLedger: paymentservice.NewLedger(paymentservice.Params{
			DB: db, Log: log, GenID: node, Clock: fakeClock,
			Repo: paymentrepo.Provide(), InvoiceRepo: invoiceRepo,
		}),
		NotificationSvc: notificationservice.NewService(notificationservice.Params{
			DB: db, Log: log, GenID: node, Clock: fakeClock,
			Repo: notificationrepo.Provide(),
		}),
		Resolver: resolver,
		Counter:  counter,
	})

	return &apiFixture{server: srv, db: db, node: node, now: now}
}

func (f *apiFixture) subscribe(t *testing.T, tenantID snowflake.ID, maxProducts int64) {
	t.Helper()
	plan := &plandomain.Plan{
		ID:                f.node.Generate(),
		Code:              fmt.Sprintf("plan-%d", f.node.Generate()),
		Name:              "Starter",
		MaxCategories:     5,
		MaxProducts:       maxProducts,
		MaxOrdersPerMonth: -1,
		CanUploadImages:   false,
		DurationDays:      30,
		CreatedAt:         f.now,
	}
	require.NoError(t, f.db.Create(plan).Error)
	require.NoError(t, f.db.Create(&subscriptiondomain.Subscription{
		ID:        f.node.Generate(),
		TenantID:  tenantID,
		PlanID:    plan.ID,
		Status:    subscriptiondomain.SubscriptionStatusActive,
		StartDate: f.now.AddDate(0, 0, -1),
		EndDate:   f.now.AddDate(0, 0, 29),
		CreatedAt: f.now,
		UpdatedAt: f.now,
	}).Error)
}

func (f *apiFixture) request(t *testing.T, method, path string, tenantID string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if tenantID != "" {
		req.Header.Set(tenantHeader, tenantID)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	f.server.Engine().ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Error
}

func TestTenantHeaderRequired(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.request(t, http.MethodGet, "/api/products", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "UNAUTHORIZED", decodeError(t, rec).Code)

	rec = f.request(t, http.MethodGet, "/api/products", "not-a-number", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProductLimitContract(t *testing.T) {
	f := newAPIFixture(t)
	tenantID := f.node.Generate()
	f.subscribe(t, tenantID, 1)
	tenant := tenantID.String()

	rec := f.request(t, http.MethodPost, "/api/products", tenant, gin.H{"name": "Widget"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = f.request(t, http.MethodPost, "/api/products", tenant, gin.H{"name": "Gadget"})
	require.Equal(t, http.StatusForbidden, rec.Code, rec.Body.String())
	body := decodeError(t, rec)
	assert.Equal(t, "PRODUCT_LIMIT_REACHED", body.Code)
	require.NotNil(t, body.Limit)
	require.NotNil(t, body.Current)
	assert.Equal(t, int64(1), *body.Limit)
	assert.Equal(t, int64(1), *body.Current)
}

func TestNoSubscriptionContract(t *testing.T) {
	f := newAPIFixture(t)
	tenant := f.node.Generate().String()

	rec := f.request(t, http.MethodPost, "/api/categories", tenant, gin.H{"name": "Drinks"})
	require.Equal(t, http.StatusForbidden, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "NO_SUBSCRIPTION", body.Code)
	assert.Nil(t, body.Limit, "non-limit denials carry no numbers")
	assert.Nil(t, body.Current)
}

func TestPaymentFlowContracts(t *testing.T) {
	f := newAPIFixture(t)
	tenant := f.node.Generate().String()

	rec := f.request(t, http.MethodPost, "/api/invoices", tenant, gin.H{"total_amount": 100})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var invoice invoicedomain.Invoice
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &invoice))

	payURL := fmt.Sprintf("/api/invoices/%s/payments", invoice.ID)
	rec = f.request(t, http.MethodPost, payURL, tenant, gin.H{"amount": 60})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var result paymentservice.AddPaymentResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, invoicedomain.InvoiceStatusPartial, result.InvoiceStatus)
	assert.InDelta(t, 40, result.RemainingBalance, 1e-9)

	rec = f.request(t, http.MethodPost, payURL, tenant, gin.H{"amount": 50})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
	body := decodeError(t, rec)
	assert.Equal(t, "OVERPAYMENT", body.Code)
	require.NotNil(t, body.MaxPayable)
	assert.InDelta(t, 40, *body.MaxPayable, 1e-9)

	// An invoice with payments on record cannot be voided.
	rec = f.request(t, http.MethodPost, fmt.Sprintf("/api/invoices/%s/void", invoice.ID), tenant, nil)
	assert.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())
}

func TestCrossTenantInvoiceHidden(t *testing.T) {
	f := newAPIFixture(t)
	owner := f.node.Generate().String()

	rec := f.request(t, http.MethodPost, "/api/invoices", owner, gin.H{"total_amount": 100})
	require.Equal(t, http.StatusCreated, rec.Code)
	var invoice invoicedomain.Invoice
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &invoice))

	rec = f.request(t, http.MethodGet, fmt.Sprintf("/api/invoices/%s", invoice.ID), f.node.Generate().String(), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "FORBIDDEN", decodeError(t, rec).Code)
}

func TestUsageEndpoint(t *testing.T) {
	f := newAPIFixture(t)
	tenantID := f.node.Generate()
	f.subscribe(t, tenantID, 10)
	tenant := tenantID.String()

	rec := f.request(t, http.MethodPost, "/api/products", tenant, gin.H{"name": "Widget"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = f.request(t, http.MethodGet, "/api/usage", tenant, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var usage usageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &usage))
	assert.Equal(t, "Starter", usage.PlanName)
	assert.False(t, usage.CanUploadImages)
	assert.Equal(t, int64(10), usage.Usage["products"].Limit)
	assert.Equal(t, int64(1), usage.Usage["products"].Current)
	assert.Equal(t, int64(-1), usage.Usage["orders_this_month"].Limit, "unlimited serializes as -1")
}

func TestUsageWithoutSubscription(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.request(t, http.MethodGet, "/api/usage", f.node.Generate().String(), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "NO_SUBSCRIPTION", decodeError(t, rec).Code)
}

func TestMarkUnknownNotificationRead(t *testing.T) {
	f := newAPIFixture(t)
	tenant := f.node.Generate().String()

	rec := f.request(t, http.MethodPost, fmt.Sprintf("/api/notifications/%s/read", f.node.Generate()), tenant, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
