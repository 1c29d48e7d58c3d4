package service

import (
	"context"
	"time"

	"github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/clock"
	quotadomain "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/quota/domain"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

type CounterParams struct {
	fx.In

	DB    *gorm.DB
	Clock clock.Clock
}

type counter struct {
	db    *gorm.DB
	clock clock.Clock
}

func NewCounter(p CounterParams) quotadomain.Counter {
	return &counter{db: p.DB, clock: p.Clock}
}

// Count computes the tenant's live consumption. No caching: the counts guard
// mutations, so correctness beats the extra aggregate queries.
func (c *counter) Count(ctx context.Context, tenantID snowflake.ID) (quotadomain.UsageCounts, error) {
	var counts quotadomain.UsageCounts

	if err := c.db.WithContext(ctx).Raw(
		`SELECT COUNT(1) FROM products WHERE tenant_id = ?`,
		tenantID,
	).Scan(&counts.ProductCount).Error; err != nil {
		return quotadomain.UsageCounts{}, err
	}

	if err := c.db.WithContext(ctx).Raw(
		`SELECT COUNT(1) FROM categories WHERE tenant_id = ?`,
		tenantID,
	).Scan(&counts.CategoryCount).Error; err != nil {
		return quotadomain.UsageCounts{}, err
	}

	if err := c.db.WithContext(ctx).Raw(
		`SELECT COUNT(1) FROM orders WHERE tenant_id = ? AND order_date >= ?`,
		tenantID,
		firstOfMonth(c.clock.Now()),
	).Scan(&counts.MonthlyOrderCount).Error; err != nil {
		return quotadomain.UsageCounts{}, err
	}

	return counts, nil
}

func firstOfMonth(now time.Time) time.Time {
	now = now.UTC()
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
}
