// Package domain contains in-app notification records. Metadata is
// schemaless JSON; expiry warnings use it to carry days_remaining and
// subscription_id for dedup.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type NotificationType string

const (
	TypeSubscriptionExpiring    NotificationType = "SUBSCRIPTION_EXPIRING"
	TypeSubscriptionGracePeriod NotificationType = "SUBSCRIPTION_GRACE_PERIOD"
	TypeSubscriptionExpired     NotificationType = "SUBSCRIPTION_EXPIRED"
)

type Notification struct {
	ID        snowflake.ID      `gorm:"primaryKey" json:"id"`
	TenantID  snowflake.ID      `gorm:"not null;index" json:"tenant_id"`
	Type      NotificationType  `gorm:"type:varchar(40);not null;index" json:"type"`
	Title     string            `gorm:"type:text;not null" json:"title"`
	Message   string            `gorm:"type:text" json:"message"`
	Metadata  datatypes.JSONMap `json:"metadata,omitempty"`
	IsRead    bool              `gorm:"not null;default:false" json:"is_read"`
	CreatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (Notification) TableName() string { return "notifications" }

// MetadataInt reads an integer out of the JSON metadata, tolerating the
// numeric types different drivers decode into.
func (n *Notification) MetadataInt(key string) (int64, bool) {
	if n.Metadata == nil {
		return 0, false
	}
	switch v := n.Metadata[key].(type) {
	case float64:
		return int64(v), true
	case int64:
		return v, true
	case int:
		return int64(v), true
	default:
		return 0, false
	}
}
