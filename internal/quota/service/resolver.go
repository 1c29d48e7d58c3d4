package service

import (
	"context"

	"github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/clock"
	plandomain "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/plan/domain"
	quotadomain "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/quota/domain"
	subscriptiondomain "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/subscription/domain"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

type ResolverParams struct {
	fx.In

	DB    *gorm.DB
	Clock clock.Clock
}

type resolver struct {
	db    *gorm.DB
	clock clock.Clock
}

func NewResolver(p ResolverParams) quotadomain.Resolver {
	return &resolver{db: p.DB, clock: p.Clock}
}

type limitsRow struct {
	SubscriptionID    snowflake.ID
	PlanName          string
	MaxCategories     int64
	MaxProducts       int64
	MaxOrdersPerMonth int64
	CanUploadImages   bool
}

// Resolve joins the tenant's subscription to its plan, filtered to
// status = ACTIVE AND end_date > now. Grace-period rows do not qualify: quota
// enforcement cliffs off when grace starts.
func (r *resolver) Resolve(ctx context.Context, tenantID snowflake.ID) (*quotadomain.Limits, error) {
	var row limitsRow
	err := r.db.WithContext(ctx).Raw(
		`SELECT s.id AS subscription_id, p.name AS plan_name, p.max_categories,
		        p.max_products, p.max_orders_per_month, p.can_upload_images
		 FROM subscriptions s
		 JOIN subscription_plans p ON p.id = s.plan_id
		 WHERE s.tenant_id = ? AND s.status = ? AND s.end_date > ?
		 ORDER BY s.end_date DESC
		 LIMIT 1`,
		tenantID,
		subscriptiondomain.SubscriptionStatusActive,
		r.clock.Now(),
	).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.SubscriptionID == 0 {
		return nil, quotadomain.ErrNoActiveSubscription
	}

	return &quotadomain.Limits{
		PlanName:        row.PlanName,
		Categories:      plandomain.LimitFromSentinel(row.MaxCategories),
		Products:        plandomain.LimitFromSentinel(row.MaxProducts),
		OrdersPerMonth:  plandomain.LimitFromSentinel(row.MaxOrdersPerMonth),
		CanUploadImages: row.CanUploadImages,
	}, nil
}
