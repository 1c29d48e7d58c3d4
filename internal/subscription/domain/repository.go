package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, subscription *Subscription) error
	FindByID(ctx context.Context, db *gorm.DB, tenantID, id snowflake.ID) (*Subscription, error)
	// FindActiveByTenant matches status = ACTIVE AND end_date > now. Rows in
	// GRACE_PERIOD deliberately do not qualify.
	FindActiveByTenant(ctx context.Context, db *gorm.DB, tenantID snowflake.ID, now time.Time) (*Subscription, error)
	// FindCurrentByTenant returns the most recent row regardless of status.
	FindCurrentByTenant(ctx context.Context, db *gorm.DB, tenantID snowflake.ID) (*Subscription, error)
	List(ctx context.Context, db *gorm.DB, tenantID snowflake.ID) ([]Subscription, error)

	// Scheduler work claims. Each fetch takes row locks (SKIP LOCKED where the
	// dialect supports it) and must run inside the caller's transaction.
	FetchDueForGrace(ctx context.Context, tx *gorm.DB, now time.Time, limit int) ([]Subscription, error)
	FetchDueForExpiry(ctx context.Context, tx *gorm.DB, now time.Time, limit int) ([]Subscription, error)
	// FetchExpiringOn matches ACTIVE rows whose end_date falls on the given
	// calendar day (half-open [dayStart, dayStart+24h) window). Rows come back
	// in id order starting after afterID so callers can page through a day
	// with more matches than one batch holds.
	FetchExpiringOn(ctx context.Context, db *gorm.DB, dayStart time.Time, afterID snowflake.ID, limit int) ([]Subscription, error)

	MarkGracePeriod(ctx context.Context, tx *gorm.DB, id snowflake.ID, graceEnd, now time.Time) (bool, error)
	MarkExpired(ctx context.Context, tx *gorm.DB, id snowflake.ID, now time.Time) (bool, error)
}
