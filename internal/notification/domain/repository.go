package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, notification *Notification) error
	// List returns the tenant's feed newest-first. A non-zero beforeID
	// restricts to rows older than the cursor; limit caps the result.
	List(ctx context.Context, db *gorm.DB, tenantID snowflake.ID, unreadOnly bool, beforeID snowflake.ID, limit int) ([]Notification, error)
	MarkRead(ctx context.Context, db *gorm.DB, tenantID, id snowflake.ID) (bool, error)
	DeleteRead(ctx context.Context, db *gorm.DB, tenantID snowflake.ID) (int64, error)
	// FindRecentByType returns notifications of one type created at or after
	// since, newest first. Metadata filtering happens in the caller.
	FindRecentByType(ctx context.Context, db *gorm.DB, tenantID snowflake.ID, typ NotificationType, since time.Time) ([]Notification, error)
}
