package service

import (
	"context"
	"testing"
	"time"

	catalogdomain "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/catalog/domain"
	catalogrepo "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/catalog/repository"
	"github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/clock"
	orderdomain "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/order/domain"
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

type catalogFixture struct {
	svc  *Service
	db   *gorm.DB
	node *snowflake.Node
	now  time.Time
}

func newCatalogFixture(t *testing.T) *catalogFixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&plandomain.Plan{},
		&subscriptiondomain.Subscription{},
		&catalogdomain.Category{},
		&catalogdomain.Product{},
		&catalogdomain.ProductImage{},
		&orderdomain.Order{},
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
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: fakeClock,
		Repo:  catalogrepo.Provide(),
		Gate:  gate,
	})
	return &catalogFixture{svc: svc, db: db, node: node, now: now}
}

// subscribe puts the tenant on a small plan: 2 categories, 2 products, no
// image uploads.
func (f *catalogFixture) subscribe(t *testing.T, tenantID snowflake.ID) {
	t.Helper()
	plan := &plandomain.Plan{
		ID:                f.node.Generate(),
		Code:              "starter",
		Name:              "Starter",
		MaxCategories:     2,
		MaxProducts:       2,
		MaxOrdersPerMonth: 20,
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

func requireDenied(t *testing.T, err error, reason quotadomain.Reason) *quotadomain.DeniedError {
	t.Helper()
	var denied *quotadomain.DeniedError
	require.ErrorAs(t, err, &denied)
	assert.Equal(t, reason, denied.Decision.Reason)
	return denied
}

func TestCreateCategoryQuota(t *testing.T) {
	f := newCatalogFixture(t)
	tenantID := f.node.Generate()
	f.subscribe(t, tenantID)
	ctx := context.Background()

	for _, name := range []string{"Drinks", "Snacks"} {
		_, err := f.svc.CreateCategory(ctx, tenantID, CreateCategoryInput{Name: name})
		require.NoError(t, err)
	}

	_, err := f.svc.CreateCategory(ctx, tenantID, CreateCategoryInput{Name: "One Too Many"})
	denied := requireDenied(t, err, quotadomain.ReasonCategoryLimitReached)
	assert.Equal(t, int64(2), denied.Decision.Limit)
	assert.Equal(t, int64(2), denied.Decision.Current)
}

func TestCreateProductWithoutSubscription(t *testing.T) {
	f := newCatalogFixture(t)

	_, err := f.svc.CreateProduct(context.Background(), f.node.Generate(), CreateProductInput{Name: "Widget"})
	requireDenied(t, err, quotadomain.ReasonNoSubscription)
}

func TestCreateProductSlugAndValidation(t *testing.T) {
	f := newCatalogFixture(t)
	tenantID := f.node.Generate()
	f.subscribe(t, tenantID)
	ctx := context.Background()

	_, err := f.svc.CreateProduct(ctx, tenantID, CreateProductInput{Name: "   "})
	assert.ErrorIs(t, err, catalogdomain.ErrInvalidName)

	product, err := f.svc.CreateProduct(ctx, tenantID, CreateProductInput{Name: "Iced Coffee 250ml", Price: 3.5})
	require.NoError(t, err)
	assert.Equal(t, "iced-coffee-250ml", product.Slug)
}

func TestAddProductImageDeniedByPlanFlag(t *testing.T) {
	f := newCatalogFixture(t)
	tenantID := f.node.Generate()
	f.subscribe(t, tenantID)
	ctx := context.Background()

	product, err := f.svc.CreateProduct(ctx, tenantID, CreateProductInput{Name: "Widget"})
	require.NoError(t, err)

	_, err = f.svc.AddProductImage(ctx, tenantID, product.ID, AddProductImageInput{FileName: "widget.png"})
	requireDenied(t, err, quotadomain.ReasonImageUploadNotAllowed)
}

func TestGetProductCrossTenant(t *testing.T) {
	f := newCatalogFixture(t)
	owner := f.node.Generate()
	f.subscribe(t, owner)

	product, err := f.svc.CreateProduct(context.Background(), owner, CreateProductInput{Name: "Widget"})
	require.NoError(t, err)

	_, err = f.svc.GetProduct(context.Background(), f.node.Generate(), product.ID)
	assert.ErrorIs(t, err, catalogdomain.ErrForbidden)

	_, err = f.svc.GetProduct(context.Background(), owner, f.node.Generate())
	assert.ErrorIs(t, err, catalogdomain.ErrProductNotFound)
}
