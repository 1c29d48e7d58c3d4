package repository

import (
	"context"
	"time"

	notificationdomain "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/notification/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

const notificationColumns = `id, tenant_id, type, title, message, metadata, is_read, created_at`

type repo struct{}

func Provide() notificationdomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, notification *notificationdomain.Notification) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO notifications (
			id, tenant_id, type, title, message, metadata, is_read, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		notification.ID,
		notification.TenantID,
		notification.Type,
		notification.Title,
		notification.Message,
		notification.Metadata,
		notification.IsRead,
		notification.CreatedAt,
	).Error
}

func (r *repo) List(ctx context.Context, db *gorm.DB, tenantID snowflake.ID, unreadOnly bool, beforeID snowflake.ID, limit int) ([]notificationdomain.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE tenant_id = ?`
	args := []any{tenantID}
	if unreadOnly {
		query += ` AND is_read = ?`
		args = append(args, false)
	}
	if beforeID > 0 {
		query += ` AND id < ?`
		args = append(args, beforeID)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	var notifications []notificationdomain.Notification
	err := db.WithContext(ctx).Raw(query, args...).Scan(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *repo) MarkRead(ctx context.Context, db *gorm.DB, tenantID, id snowflake.ID) (bool, error) {
	res := db.WithContext(ctx).Exec(
		`UPDATE notifications SET is_read = ? WHERE id = ? AND tenant_id = ?`,
		true, id, tenantID,
	)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repo) DeleteRead(ctx context.Context, db *gorm.DB, tenantID snowflake.ID) (int64, error) {
	res := db.WithContext(ctx).Exec(
		`DELETE FROM notifications WHERE tenant_id = ? AND is_read = ?`,
		tenantID, true,
	)
	return res.RowsAffected, res.Error
}

func (r *repo) FindRecentByType(ctx context.Context, db *gorm.DB, tenantID snowflake.ID, typ notificationdomain.NotificationType, since time.Time) ([]notificationdomain.Notification, error) {
	var notifications []notificationdomain.Notification
	err := db.WithContext(ctx).Raw(
		`SELECT `+notificationColumns+` FROM notifications
		 WHERE tenant_id = ? AND type = ? AND created_at >= ?
		 ORDER BY created_at DESC`,
		tenantID, typ, since,
	).Scan(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}
