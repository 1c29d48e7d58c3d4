// Package domain contains persistence models for tenant subscriptions.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// SubscriptionStatus represents lifecycle states for a subscription.
type SubscriptionStatus string

const (
	SubscriptionStatusActive      SubscriptionStatus = "ACTIVE"
	SubscriptionStatusGracePeriod SubscriptionStatus = "GRACE_PERIOD"
	SubscriptionStatusExpired     SubscriptionStatus = "EXPIRED"
	SubscriptionStatusCancelled   SubscriptionStatus = "CANCELLED"
)

// Subscription binds a tenant to a plan for one term. Renewal inserts a new
// row; status only ever moves forward (ACTIVE -> GRACE_PERIOD -> EXPIRED) and
// rows are never physically deleted.
type Subscription struct {
	ID              snowflake.ID       `gorm:"primaryKey" json:"id"`
	TenantID        snowflake.ID       `gorm:"not null;index" json:"tenant_id"`
	PlanID          snowflake.ID       `gorm:"not null;index" json:"plan_id"`
	Status          SubscriptionStatus `gorm:"type:text;not null" json:"status"`
	StartDate       time.Time          `gorm:"not null" json:"start_date"`
	EndDate         time.Time          `gorm:"not null" json:"end_date"`
	GracePeriodDays *int               `gorm:"" json:"grace_period_days,omitempty"`
	GracePeriodEnd  *time.Time         `gorm:"" json:"grace_period_end,omitempty"`
	CreatedAt       time.Time          `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt       time.Time          `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Subscription) TableName() string { return "subscriptions" }

// GraceDaysOrDefault resolves the row override against the configured default.
func (s Subscription) GraceDaysOrDefault(def int) int {
	if s.GracePeriodDays != nil && *s.GracePeriodDays > 0 {
		return *s.GracePeriodDays
	}
	return def
}
