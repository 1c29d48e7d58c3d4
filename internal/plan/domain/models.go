// Package domain contains the subscription plan catalog models.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Plan is an immutable catalog entry describing a subscription tier.
type Plan struct {
	ID                snowflake.ID `gorm:"primaryKey" json:"id"`
	Code              string       `gorm:"type:text;not null;uniqueIndex" json:"code"`
	Name              string       `gorm:"type:text;not null" json:"name"`
	MaxCategories     int64        `gorm:"not null" json:"max_categories"`
	MaxProducts       int64        `gorm:"not null" json:"max_products"`
	MaxOrdersPerMonth int64        `gorm:"not null" json:"max_orders_per_month"`
	CanUploadImages   bool         `gorm:"not null;default:false" json:"can_upload_images"`
	Price             float64      `gorm:"not null;default:0" json:"price"`
	DurationDays      int          `gorm:"not null;default:30" json:"duration_days"`
	CreatedAt         time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (Plan) TableName() string { return "subscription_plans" }

// CategoryLimit returns the category cap as a tagged Limit.
func (p Plan) CategoryLimit() Limit { return LimitFromSentinel(p.MaxCategories) }

// ProductLimit returns the product cap as a tagged Limit.
func (p Plan) ProductLimit() Limit { return LimitFromSentinel(p.MaxProducts) }

// MonthlyOrderLimit returns the monthly order cap as a tagged Limit.
func (p Plan) MonthlyOrderLimit() Limit { return LimitFromSentinel(p.MaxOrdersPerMonth) }
