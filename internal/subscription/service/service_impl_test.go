package service

import (
	"context"
	"testing"
	"time"

	"github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/clock"
	plandomain "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/plan/domain"
	planrepo "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/plan/repository"
	subscriptiondomain "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/subscription/domain"
	subscriptionrepo "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/subscription/repository"
	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupSubscriptionTest(t *testing.T) (*Service, *gorm.DB, *snowflake.Node, *clock.FakeClock) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&plandomain.Plan{}, &subscriptiondomain.Subscription{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	fakeClock := clock.NewFakeClock(time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))

	svc := NewService(Params{
		DB:       db,
		Log:      zap.NewNop(),
		GenID:    node,
		Clock:    fakeClock,
		Repo:     subscriptionrepo.Provide(),
		PlanRepo: planrepo.Provide(),
	})
	return svc, db, node, fakeClock
}

func seedPlan(t *testing.T, db *gorm.DB, node *snowflake.Node, code string, durationDays int) *plandomain.Plan {
	t.Helper()
	plan := &plandomain.Plan{
		ID:           node.Generate(),
		Code:         code,
		Name:         code,
		DurationDays: durationDays,
		CreatedAt:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Create(plan).Error)
	return plan
}

func TestRenewCreatesActiveTerm(t *testing.T) {
	svc, db, node, fakeClock := setupSubscriptionTest(t)
	seedPlan(t, db, node, "basic", 30)
	tenantID := node.Generate()

	sub, err := svc.Renew(context.Background(), tenantID, "basic", time.Time{})
	require.NoError(t, err)
	assert.Equal(t, subscriptiondomain.SubscriptionStatusActive, sub.Status)
	assert.Equal(t, fakeClock.Now(), sub.StartDate)
	assert.Equal(t, fakeClock.Now().AddDate(0, 0, 30), sub.EndDate)
}

func TestRenewUnknownPlan(t *testing.T) {
	svc, _, node, _ := setupSubscriptionTest(t)

	_, err := svc.Renew(context.Background(), node.Generate(), "nope", time.Time{})
	assert.ErrorIs(t, err, subscriptiondomain.ErrPlanNotFound)
}

func TestRenewZeroDurationPlanRejected(t *testing.T) {
	svc, db, node, _ := setupSubscriptionTest(t)
	seedPlan(t, db, node, "broken", 0)

	_, err := svc.Renew(context.Background(), node.Generate(), "broken", time.Time{})
	assert.ErrorIs(t, err, subscriptiondomain.ErrInvalidTerm)
}

func TestRenewLeavesOldRowUntouched(t *testing.T) {
	svc, db, node, fakeClock := setupSubscriptionTest(t)
	seedPlan(t, db, node, "basic", 30)
	tenantID := node.Generate()

	old := &subscriptiondomain.Subscription{
		ID:        node.Generate(),
		TenantID:  tenantID,
		PlanID:    node.Generate(),
		Status:    subscriptiondomain.SubscriptionStatusGracePeriod,
		StartDate: fakeClock.Now().AddDate(0, 0, -40),
		EndDate:   fakeClock.Now().AddDate(0, 0, -10),
		CreatedAt: fakeClock.Now().AddDate(0, 0, -40),
		UpdatedAt: fakeClock.Now().AddDate(0, 0, -40),
	}
	require.NoError(t, db.Create(old).Error)

	renewed, err := svc.Renew(context.Background(), tenantID, "basic", time.Time{})
	require.NoError(t, err)

	var oldRow subscriptiondomain.Subscription
	require.NoError(t, db.First(&oldRow, "id = ?", old.ID).Error)
	assert.Equal(t, subscriptiondomain.SubscriptionStatusGracePeriod, oldRow.Status,
		"renewal inserts a fresh row; the lifecycle engine owns the old one")

	view, err := svc.Current(context.Background(), tenantID)
	require.NoError(t, err)
	assert.Equal(t, renewed.ID, view.Subscription.ID)
	require.NotNil(t, view.Plan)
	assert.Equal(t, "basic", view.Plan.Code)
}

func TestCurrentNotFound(t *testing.T) {
	svc, _, node, _ := setupSubscriptionTest(t)

	_, err := svc.Current(context.Background(), node.Generate())
	assert.ErrorIs(t, err, subscriptiondomain.ErrSubscriptionNotFound)
}
