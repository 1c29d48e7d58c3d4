package service

import (
	"context"
	"testing"
	"time"

	catalogdomain "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/catalog/domain"
	catalogrepo "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/catalog/repository"
	"github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/clock"
	orderdomain "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/order/domain"
	orderrepo "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/order/repository"
	plandomain "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/plan/domain"
	quotadomain "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/quota/domain"
	quotaservice "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/quota/service"
	subscriptiondomain "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/subscription/domain"
	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type orderFixture struct {
	svc   *Service
	db    *gorm.DB
	node  *snowflake.Node
	clock *clock.FakeClock
	now   time.Time
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&plandomain.Plan{},
		&subscriptiondomain.Subscription{},
		&catalogdomain.Category{},
		&catalogdomain.Product{},
		&orderdomain.Customer{},
		&orderdomain.Order{},
		&orderdomain.OrderItem{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	fakeClock := clock.NewFakeClock(now)

	gate := quotaservice.NewGate(quotaservice.GateParams{
		Log:      zap.NewNop(),
		Resolver: quotaservice.NewResolver(quotaservice.ResolverParams{DB: db, Clock: fakeClock}),
		Counter:  quotaservice.NewCounter(quotaservice.CounterParams{DB: db, Clock: fakeClock}),
	})

	svc := NewService(Params{
		DB:          db,
		Log:         zap.NewNop(),
		GenID:       node,
		Clock:       fakeClock,
		Repo:        orderrepo.Provide(),
		CatalogRepo: catalogrepo.Provide(),
		Gate:        gate,
	})
	return &orderFixture{svc: svc, db: db, node: node, clock: fakeClock, now: now}
}

// subscribe puts the tenant on a plan capped at 2 orders per month. The
// subscription outlives the clock advances the tests perform.
func (f *orderFixture) subscribe(t *testing.T, tenantID snowflake.ID) {
	t.Helper()
	plan := &plandomain.Plan{
		ID:                f.node.Generate(),
		Code:              "starter",
		Name:              "Starter",
		MaxCategories:     10,
		MaxProducts:       10,
		MaxOrdersPerMonth: 2,
		DurationDays:      90,
		CreatedAt:         f.now,
	}
	require.NoError(t, f.db.Create(plan).Error)
	require.NoError(t, f.db.Create(&subscriptiondomain.Subscription{
		ID:        f.node.Generate(),
		TenantID:  tenantID,
		PlanID:    plan.ID,
		Status:    subscriptiondomain.SubscriptionStatusActive,
		StartDate: f.now.AddDate(0, 0, -1),
		EndDate:   f.now.AddDate(0, 0, 89),
		CreatedAt: f.now,
		UpdatedAt: f.now,
	}).Error)
}

func (f *orderFixture) seedProduct(t *testing.T, tenantID snowflake.ID, name string, price float64) *catalogdomain.Product {
	t.Helper()
	product := &catalogdomain.Product{
		ID:        f.node.Generate(),
		TenantID:  tenantID,
		Name:      name,
		Slug:      name,
		Price:     price,
		CreatedAt: f.now,
		UpdatedAt: f.now,
	}
	require.NoError(t, f.db.Create(product).Error)
	return product
}

func TestCreateOrderSnapshotsItems(t *testing.T) {
	f := newOrderFixture(t)
	tenantID := f.node.Generate()
	f.subscribe(t, tenantID)
	coffee := f.seedProduct(t, tenantID, "coffee", 3.5)
	cake := f.seedProduct(t, tenantID, "cake", 12)
	ctx := context.Background()

	order, err := f.svc.CreateOrder(ctx, tenantID, CreateOrderInput{Items: []CreateOrderItemInput{
		{ProductID: coffee.ID, Quantity: 2},
		{ProductID: cake.ID, Quantity: 1},
	}})
	require.NoError(t, err)
	assert.Equal(t, orderdomain.OrderStatusPending, order.Status)
	assert.InDelta(t, 19, order.TotalAmount, 1e-9)
	require.Len(t, order.Items, 2)
	assert.Equal(t, "coffee", order.Items[0].ProductName)
	assert.InDelta(t, 3.5, order.Items[0].UnitPrice, 1e-9)

	// Later price changes must not rewrite history.
	require.NoError(t, f.db.Model(&catalogdomain.Product{}).Where("id = ?", coffee.ID).Update("price", 99).Error)
	got, err := f.svc.GetOrder(ctx, tenantID, order.ID)
	require.NoError(t, err)
	assert.InDelta(t, 19, got.TotalAmount, 1e-9)
	assert.InDelta(t, 3.5, got.Items[0].UnitPrice, 1e-9)
}

func TestCreateOrderValidation(t *testing.T) {
	f := newOrderFixture(t)
	tenantID := f.node.Generate()
	f.subscribe(t, tenantID)
	product := f.seedProduct(t, tenantID, "coffee", 3.5)
	ctx := context.Background()

	_, err := f.svc.CreateOrder(ctx, tenantID, CreateOrderInput{})
	assert.ErrorIs(t, err, orderdomain.ErrEmptyOrder)

	_, err = f.svc.CreateOrder(ctx, tenantID, CreateOrderInput{Items: []CreateOrderItemInput{
		{ProductID: product.ID, Quantity: 0},
	}})
	assert.ErrorIs(t, err, orderdomain.ErrInvalidQuantity)

	_, err = f.svc.CreateOrder(ctx, tenantID, CreateOrderInput{Items: []CreateOrderItemInput{
		{ProductID: f.node.Generate(), Quantity: 1},
	}})
	assert.ErrorIs(t, err, catalogdomain.ErrProductNotFound)
}

func TestCreateOrderForeignProductRejected(t *testing.T) {
	f := newOrderFixture(t)
	tenantID := f.node.Generate()
	f.subscribe(t, tenantID)
	foreign := f.seedProduct(t, f.node.Generate(), "foreign", 5)

	_, err := f.svc.CreateOrder(context.Background(), tenantID, CreateOrderInput{Items: []CreateOrderItemInput{
		{ProductID: foreign.ID, Quantity: 1},
	}})
	assert.ErrorIs(t, err, orderdomain.ErrForbidden)
}

func TestMonthlyOrderQuotaResets(t *testing.T) {
	f := newOrderFixture(t)
	tenantID := f.node.Generate()
	f.subscribe(t, tenantID)
	product := f.seedProduct(t, tenantID, "coffee", 3.5)
	ctx := context.Background()
	items := []CreateOrderItemInput{{ProductID: product.ID, Quantity: 1}}

	for i := 0; i < 2; i++ {
		_, err := f.svc.CreateOrder(ctx, tenantID, CreateOrderInput{Items: items})
		require.NoError(t, err)
	}

	_, err := f.svc.CreateOrder(ctx, tenantID, CreateOrderInput{Items: items})
	var denied *quotadomain.DeniedError
	require.ErrorAs(t, err, &denied)
	assert.Equal(t, quotadomain.ReasonOrderLimitReached, denied.Decision.Reason)
	assert.Equal(t, int64(2), denied.Decision.Limit)
	assert.Equal(t, int64(2), denied.Decision.Current)

	// The window is the calendar month, so April starts from zero.
	f.clock.Set(time.Date(2026, 4, 1, 0, 30, 0, 0, time.UTC))
	_, err = f.svc.CreateOrder(ctx, tenantID, CreateOrderInput{Items: items})
	require.NoError(t, err)
}

func TestOrderStatusTransitions(t *testing.T) {
	f := newOrderFixture(t)
	tenantID := f.node.Generate()
	f.subscribe(t, tenantID)
	product := f.seedProduct(t, tenantID, "coffee", 3.5)
	ctx := context.Background()
	items := []CreateOrderItemInput{{ProductID: product.ID, Quantity: 1}}

	order, err := f.svc.CreateOrder(ctx, tenantID, CreateOrderInput{Items: items})
	require.NoError(t, err)

	completed, err := f.svc.CompleteOrder(ctx, tenantID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, orderdomain.OrderStatusCompleted, completed.Status)

	_, err = f.svc.CompleteOrder(ctx, tenantID, order.ID)
	assert.ErrorIs(t, err, orderdomain.ErrInvalidStatus)

	_, err = f.svc.CancelOrder(ctx, tenantID, order.ID)
	assert.ErrorIs(t, err, orderdomain.ErrInvalidStatus)
}

func TestCreateCustomerValidation(t *testing.T) {
	f := newOrderFixture(t)
	tenantID := f.node.Generate()

	_, err := f.svc.CreateCustomer(context.Background(), tenantID, CreateCustomerInput{Name: "  "})
	assert.ErrorIs(t, err, orderdomain.ErrInvalidName)

	customer, err := f.svc.CreateCustomer(context.Background(), tenantID, CreateCustomerInput{Name: "Ada"})
	require.NoError(t, err)
	assert.Equal(t, "Ada", customer.Name)
}
