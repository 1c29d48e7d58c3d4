package repository

import (
	"context"
	"time"

	subscriptiondomain "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/subscription/domain"
	pkgdb "github.com/Web-of-Shafiuddin/quick-memo-sub002/pkg/db"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

const subscriptionColumns = `id, tenant_id, plan_id, status, start_date, end_date,
	 grace_period_days, grace_period_end, created_at, updated_at`

type repo struct{}

func Provide() subscriptiondomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, subscription *subscriptiondomain.Subscription) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO subscriptions (
			id, tenant_id, plan_id, status, start_date, end_date,
			grace_period_days, grace_period_end, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		subscription.ID,
		subscription.TenantID,
		subscription.PlanID,
		subscription.Status,
		subscription.StartDate,
		subscription.EndDate,
		subscription.GracePeriodDays,
		subscription.GracePeriodEnd,
		subscription.CreatedAt,
		subscription.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, tenantID, id snowflake.ID) (*subscriptiondomain.Subscription, error) {
	var subscription subscriptiondomain.Subscription
	err := db.WithContext(ctx).Raw(
		`SELECT `+subscriptionColumns+`
		 FROM subscriptions WHERE tenant_id = ? AND id = ?`,
		tenantID,
		id,
	).Scan(&subscription).Error
	if err != nil {
		return nil, err
	}
	if subscription.ID == 0 {
		return nil, nil
	}
	return &subscription, nil
}

func (r *repo) FindActiveByTenant(ctx context.Context, db *gorm.DB, tenantID snowflake.ID, now time.Time) (*subscriptiondomain.Subscription, error) {
	var subscription subscriptiondomain.Subscription
	err := db.WithContext(ctx).Raw(
		`SELECT `+subscriptionColumns+`
		 FROM subscriptions
		 WHERE tenant_id = ? AND status = ? AND end_date > ?
		 ORDER BY end_date DESC
		 LIMIT 1`,
		tenantID,
		subscriptiondomain.SubscriptionStatusActive,
		now,
	).Scan(&subscription).Error
	if err != nil {
		return nil, err
	}
	if subscription.ID == 0 {
		return nil, nil
	}
	return &subscription, nil
}

func (r *repo) FindCurrentByTenant(ctx context.Context, db *gorm.DB, tenantID snowflake.ID) (*subscriptiondomain.Subscription, error) {
	var subscription subscriptiondomain.Subscription
	err := db.WithContext(ctx).Raw(
		`SELECT `+subscriptionColumns+`
		 FROM subscriptions
		 WHERE tenant_id = ?
		 ORDER BY end_date DESC, created_at DESC
		 LIMIT 1`,
		tenantID,
	).Scan(&subscription).Error
	if err != nil {
		return nil, err
	}
	if subscription.ID == 0 {
		return nil, nil
	}
	return &subscription, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, tenantID snowflake.ID) ([]subscriptiondomain.Subscription, error) {
	var subscriptions []subscriptiondomain.Subscription
	err := db.WithContext(ctx).Raw(
		`SELECT `+subscriptionColumns+`
		 FROM subscriptions WHERE tenant_id = ? ORDER BY created_at ASC`,
		tenantID,
	).Scan(&subscriptions).Error
	if err != nil {
		return nil, err
	}
	return subscriptions, nil
}

func (r *repo) FetchDueForGrace(ctx context.Context, tx *gorm.DB, now time.Time, limit int) ([]subscriptiondomain.Subscription, error) {
	var subscriptions []subscriptiondomain.Subscription
	err := tx.WithContext(ctx).Raw(
		`SELECT `+subscriptionColumns+`
		 FROM subscriptions
		 WHERE status = ? AND end_date < ? AND grace_period_end IS NULL
		 ORDER BY id
		 LIMIT ?`+pkgdb.LockForUpdateSkipLocked(tx),
		subscriptiondomain.SubscriptionStatusActive,
		now,
		limit,
	).Scan(&subscriptions).Error
	if err != nil {
		return nil, err
	}
	return subscriptions, nil
}

func (r *repo) FetchDueForExpiry(ctx context.Context, tx *gorm.DB, now time.Time, limit int) ([]subscriptiondomain.Subscription, error) {
	var subscriptions []subscriptiondomain.Subscription
	err := tx.WithContext(ctx).Raw(
		`SELECT `+subscriptionColumns+`
		 FROM subscriptions
		 WHERE status = ? AND grace_period_end < ?
		 ORDER BY id
		 LIMIT ?`+pkgdb.LockForUpdateSkipLocked(tx),
		subscriptiondomain.SubscriptionStatusGracePeriod,
		now,
		limit,
	).Scan(&subscriptions).Error
	if err != nil {
		return nil, err
	}
	return subscriptions, nil
}

func (r *repo) FetchExpiringOn(ctx context.Context, db *gorm.DB, dayStart time.Time, afterID snowflake.ID, limit int) ([]subscriptiondomain.Subscription, error) {
	dayEnd := dayStart.Add(24 * time.Hour)
	var subscriptions []subscriptiondomain.Subscription
	err := db.WithContext(ctx).Raw(
		`SELECT `+subscriptionColumns+`
		 FROM subscriptions
		 WHERE status = ? AND end_date >= ? AND end_date < ? AND id > ?
		 ORDER BY id
		 LIMIT ?`,
		subscriptiondomain.SubscriptionStatusActive,
		dayStart,
		dayEnd,
		afterID,
		limit,
	).Scan(&subscriptions).Error
	if err != nil {
		return nil, err
	}
	return subscriptions, nil
}

func (r *repo) MarkGracePeriod(ctx context.Context, tx *gorm.DB, id snowflake.ID, graceEnd, now time.Time) (bool, error) {
	result := tx.WithContext(ctx).Exec(
		`UPDATE subscriptions
		 SET status = ?, grace_period_end = ?, updated_at = ?
		 WHERE id = ? AND status = ? AND grace_period_end IS NULL`,
		subscriptiondomain.SubscriptionStatusGracePeriod,
		graceEnd,
		now,
		id,
		subscriptiondomain.SubscriptionStatusActive,
	)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repo) MarkExpired(ctx context.Context, tx *gorm.DB, id snowflake.ID, now time.Time) (bool, error) {
	result := tx.WithContext(ctx).Exec(
		`UPDATE subscriptions
		 SET status = ?, updated_at = ?
		 WHERE id = ? AND status = ?`,
		subscriptiondomain.SubscriptionStatusExpired,
		now,
		id,
		subscriptiondomain.SubscriptionStatusGracePeriod,
	)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
